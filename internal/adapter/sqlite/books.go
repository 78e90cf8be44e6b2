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

const bookColumns = `id, seller_id, title, author, description, category, price, published,
	image_url, image_key, created_at, updated_at`

func (s *Store) CreateBook(ctx context.Context, b domain.Book) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO books (`+bookColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ID, b.SellerID, b.Title, b.Author, b.Description, b.Category,
		b.Price.StringFixed(2), b.Published, b.ImageURL, b.ImageKey,
		formatTime(b.CreatedAt), formatTime(b.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting book: %w", err)
	}
	return nil
}

func (s *Store) GetBookByID(ctx context.Context, id string) (domain.Book, error) {
	b, err := scanBook(s.db.QueryRowContext(ctx,
		`SELECT `+bookColumns+` FROM books WHERE id = ?`, id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Book{}, domain.ErrBookNotFound
	}
	return b, err
}

func (s *Store) ListBooks(ctx context.Context, filter domain.BookFilter) ([]domain.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books`
	var where []string
	var args []any

	if filter.SellerID != "" {
		where = append(where, `seller_id = ?`)
		args = append(args, filter.SellerID)
	}
	if filter.Category != "" {
		where = append(where, `category = ?`)
		args = append(args, filter.Category)
	}
	if filter.PublishedOnly {
		where = append(where, `published = 1`)
	}
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, ` AND `)
	}

	query += ` ORDER BY created_at DESC, id`
	query, args = paginate(query, args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing books: %w", err)
	}
	defer rows.Close()

	var books []domain.Book
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		books = append(books, b)
	}

	return books, rows.Err()
}

func (s *Store) UpdateBook(ctx context.Context, b domain.Book) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE books SET title = ?, author = ?, description = ?, category = ?, price = ?,
		 published = ?, updated_at = ?
		 WHERE id = ?`,
		b.Title, b.Author, b.Description, b.Category, b.Price.StringFixed(2),
		b.Published, formatTime(b.UpdatedAt), b.ID,
	)
	if err != nil {
		return fmt.Errorf("updating book: %w", err)
	}
	return requireRow(result, domain.ErrBookNotFound)
}

// SwapBookImage points the book at b's image only if no other replacement
// committed since previousKey was read.
func (s *Store) SwapBookImage(ctx context.Context, b domain.Book, previousKey string) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE books SET image_url = ?, image_key = ?, updated_at = ?
		 WHERE id = ? AND image_key = ?`,
		b.ImageURL, b.ImageKey, formatTime(b.UpdatedAt), b.ID, previousKey,
	)
	if err != nil {
		return fmt.Errorf("updating book image: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows > 0 {
		return nil
	}

	if _, err := s.GetBookByID(ctx, b.ID); err != nil {
		return err
	}
	return domain.ErrImageChanged
}

func (s *Store) DeleteBook(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM books WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting book: %w", err)
	}
	return requireRow(result, domain.ErrBookNotFound)
}

func scanBook(row scanner) (domain.Book, error) {
	var b domain.Book
	var price, createdAt, updatedAt string

	err := row.Scan(&b.ID, &b.SellerID, &b.Title, &b.Author, &b.Description, &b.Category,
		&price, &b.Published, &b.ImageURL, &b.ImageKey, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Book{}, err
		}
		return domain.Book{}, fmt.Errorf("scanning book: %w", err)
	}

	if b.Price, err = decimal.NewFromString(price); err != nil {
		return domain.Book{}, fmt.Errorf("parsing price of book %s: %w", b.ID, err)
	}
	if b.CreatedAt, err = parseTime(createdAt); err != nil {
		return domain.Book{}, fmt.Errorf("book %s created_at: %w", b.ID, err)
	}
	if b.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return domain.Book{}, fmt.Errorf("book %s updated_at: %w", b.ID, err)
	}
	return b, nil
}

// requireRow returns notFound when an UPDATE or DELETE touched nothing.
func requireRow(result sql.Result, notFound error) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return notFound
	}
	return nil
}
