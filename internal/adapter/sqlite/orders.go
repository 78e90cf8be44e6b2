package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/neomorfeo/bookmart/internal/domain"
)

const orderColumns = `id, book_id, buyer_id, seller_id, price, status, tracking_number, tracking_url,
	shipped_at, delivered_at, created_at, updated_at`

func (s *Store) CreateOrder(ctx context.Context, o domain.Order) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO orders (`+orderColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		o.ID, o.BookID, o.BuyerID, o.SellerID, o.Price.StringFixed(2), string(o.Status),
		o.TrackingNumber, o.TrackingURL,
		formatNullTime(o.ShippedAt), formatNullTime(o.DeliveredAt),
		formatTime(o.CreatedAt), formatTime(o.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting order: %w", err)
	}
	return nil
}

func (s *Store) GetOrderByID(ctx context.Context, id string) (domain.Order, error) {
	o, err := scanOrder(s.db.QueryRowContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id = ?`, id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	return o, err
}

func (s *Store) ListOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders`
	var where []string
	var args []any

	if filter.BuyerID != "" {
		where = append(where, `buyer_id = ?`)
		args = append(args, filter.BuyerID)
	}
	if filter.SellerID != "" {
		where = append(where, `seller_id = ?`)
		args = append(args, filter.SellerID)
	}
	if filter.Status != nil {
		where = append(where, `status = ?`)
		args = append(args, string(*filter.Status))
	}
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, ` AND `)
	}

	query += ` ORDER BY created_at DESC, id`
	query, args = paginate(query, args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, rows.Err()
}

// UpdateStatus writes the lifecycle fields of o only while the stored status
// is still expected, so two racing transitions cannot both commit.
func (s *Store) UpdateStatus(ctx context.Context, o domain.Order, expected domain.Status) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE orders SET status = ?, tracking_number = ?, tracking_url = ?,
		 shipped_at = ?, delivered_at = ?, updated_at = ?
		 WHERE id = ? AND status = ?`,
		string(o.Status), o.TrackingNumber, o.TrackingURL,
		formatNullTime(o.ShippedAt), formatNullTime(o.DeliveredAt), formatTime(o.UpdatedAt),
		o.ID, string(expected),
	)
	if err != nil {
		return fmt.Errorf("updating order status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows > 0 {
		return nil
	}

	current, err := s.GetOrderByID(ctx, o.ID)
	if err != nil {
		return err
	}
	return &domain.StatusConflictError{Expected: expected, Actual: current.Status}
}

// SalesSummary counts the seller's listings and every non-canceled order placed on them.
func (s *Store) SalesSummary(ctx context.Context, sellerID string) (domain.SalesSummary, error) {
	summary := domain.SalesSummary{Revenue: decimal.Zero}

	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(published), 0) FROM books WHERE seller_id = ?`, sellerID,
	).Scan(&summary.TotalBooks, &summary.PublishedBooks)
	if err != nil {
		return domain.SalesSummary{}, fmt.Errorf("counting books: %w", err)
	}

	// Prices are summed in Go; SQLite would add the TEXT values as floats.
	rows, err := s.db.QueryContext(ctx,
		`SELECT price FROM orders WHERE seller_id = ? AND status != ?`,
		sellerID, string(domain.StatusCanceled),
	)
	if err != nil {
		return domain.SalesSummary{}, fmt.Errorf("reading sales: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var price string
		if err := rows.Scan(&price); err != nil {
			return domain.SalesSummary{}, fmt.Errorf("scanning sale: %w", err)
		}
		amount, err := decimal.NewFromString(price)
		if err != nil {
			return domain.SalesSummary{}, fmt.Errorf("parsing sale price: %w", err)
		}
		summary.TotalSales++
		summary.Revenue = summary.Revenue.Add(amount)
	}

	return summary, rows.Err()
}

func scanOrder(row scanner) (domain.Order, error) {
	var o domain.Order
	var price, status, createdAt, updatedAt string
	var shippedAt, deliveredAt sql.NullString

	err := row.Scan(&o.ID, &o.BookID, &o.BuyerID, &o.SellerID, &price, &status,
		&o.TrackingNumber, &o.TrackingURL, &shippedAt, &deliveredAt, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Order{}, err
		}
		return domain.Order{}, fmt.Errorf("scanning order: %w", err)
	}

	if o.Status, err = domain.ParseStatus(status); err != nil {
		return domain.Order{}, fmt.Errorf("order %s: %w", o.ID, err)
	}
	if o.Price, err = decimal.NewFromString(price); err != nil {
		return domain.Order{}, fmt.Errorf("parsing price of order %s: %w", o.ID, err)
	}
	if o.ShippedAt, err = parseNullTime(shippedAt); err != nil {
		return domain.Order{}, fmt.Errorf("order %s shipped_at: %w", o.ID, err)
	}
	if o.DeliveredAt, err = parseNullTime(deliveredAt); err != nil {
		return domain.Order{}, fmt.Errorf("order %s delivered_at: %w", o.ID, err)
	}
	if o.CreatedAt, err = parseTime(createdAt); err != nil {
		return domain.Order{}, fmt.Errorf("order %s created_at: %w", o.ID, err)
	}
	if o.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return domain.Order{}, fmt.Errorf("order %s updated_at: %w", o.ID, err)
	}
	return o, nil
}
