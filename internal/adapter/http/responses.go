package http

import (
	"time"

	"github.com/neomorfeo/bookmart/internal/domain"
)

const timestampFormat = time.RFC3339

// UserResponse is the API representation of an account. The password hash is never exposed.
type UserResponse struct {
	ID        string `json:"id" doc:"Unique identifier"`
	Username  string `json:"username" doc:"Login name"`
	Email     string `json:"email" doc:"Email address"`
	FirstName string `json:"first_name" doc:"Given name"`
	LastName  string `json:"last_name" doc:"Family name"`
	Role      string `json:"role" doc:"seller or buyer"`
	CreatedAt string `json:"created_at" doc:"Registration timestamp (RFC 3339)"`
}

func toUserResponse(u domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt.Format(timestampFormat),
	}
}

// BookResponse is the API representation of a listing.
type BookResponse struct {
	ID          string `json:"id" doc:"Unique identifier"`
	SellerID    string `json:"seller_id" doc:"Owning seller"`
	Title       string `json:"title"`
	Author      string `json:"author"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Price       string `json:"price" doc:"Decimal price with two places" example:"9.99"`
	Published   bool   `json:"published" doc:"Visible in the public catalog"`
	ImageURL    string `json:"image_url,omitempty" doc:"Cover image URL"`
	CreatedAt   string `json:"created_at" doc:"Creation timestamp (RFC 3339)"`
	UpdatedAt   string `json:"updated_at" doc:"Last update timestamp (RFC 3339)"`
}

func toBookResponse(b domain.Book) BookResponse {
	return BookResponse{
		ID:          b.ID,
		SellerID:    b.SellerID,
		Title:       b.Title,
		Author:      b.Author,
		Description: b.Description,
		Category:    b.Category,
		Price:       b.Price.StringFixed(2),
		Published:   b.Published,
		ImageURL:    b.ImageURL,
		CreatedAt:   b.CreatedAt.Format(timestampFormat),
		UpdatedAt:   b.UpdatedAt.Format(timestampFormat),
	}
}

func toBookResponses(books []domain.Book) []BookResponse {
	resp := make([]BookResponse, len(books))
	for i, b := range books {
		resp[i] = toBookResponse(b)
	}
	return resp
}

// OrderResponse is the API representation of an order.
type OrderResponse struct {
	ID             string  `json:"id" doc:"Unique identifier"`
	BookID         string  `json:"book_id"`
	BuyerID        string  `json:"buyer_id"`
	SellerID       string  `json:"seller_id"`
	Price          string  `json:"price" doc:"Price captured when the order was placed" example:"9.99"`
	Status         string  `json:"status" doc:"Lifecycle state" enum:"pending,accepted,shipped,delivered,canceled"`
	TrackingNumber string  `json:"tracking_number,omitempty"`
	TrackingURL    string  `json:"tracking_url,omitempty"`
	ShippedAt      *string `json:"shipped_at,omitempty" doc:"Shipment timestamp (RFC 3339)"`
	DeliveredAt    *string `json:"delivered_at,omitempty" doc:"Delivery timestamp (RFC 3339)"`
	CreatedAt      string  `json:"created_at"`
	UpdatedAt      string  `json:"updated_at"`
}

func toOrderResponse(o domain.Order) OrderResponse {
	return OrderResponse{
		ID:             o.ID,
		BookID:         o.BookID,
		BuyerID:        o.BuyerID,
		SellerID:       o.SellerID,
		Price:          o.Price.StringFixed(2),
		Status:         string(o.Status),
		TrackingNumber: o.TrackingNumber,
		TrackingURL:    o.TrackingURL,
		ShippedAt:      formatOptional(o.ShippedAt),
		DeliveredAt:    formatOptional(o.DeliveredAt),
		CreatedAt:      o.CreatedAt.Format(timestampFormat),
		UpdatedAt:      o.UpdatedAt.Format(timestampFormat),
	}
}

func toOrderResponses(orders []domain.Order) []OrderResponse {
	resp := make([]OrderResponse, len(orders))
	for i, o := range orders {
		resp[i] = toOrderResponse(o)
	}
	return resp
}

func formatOptional(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(timestampFormat)
	return &s
}

// SummaryResponse is a seller's dashboard summary.
type SummaryResponse struct {
	TotalBooks     int    `json:"total_books"`
	PublishedBooks int    `json:"published_books"`
	TotalSales     int    `json:"total_sales" doc:"Orders placed on the seller's books, excluding canceled ones"`
	Revenue        string `json:"revenue" example:"42.00"`
}

func toSummaryResponse(s domain.SalesSummary) SummaryResponse {
	return SummaryResponse{
		TotalBooks:     s.TotalBooks,
		PublishedBooks: s.PublishedBooks,
		TotalSales:     s.TotalSales,
		Revenue:        s.Revenue.StringFixed(2),
	}
}
