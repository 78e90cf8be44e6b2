package river

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/riverqueue/river"

	"github.com/neomorfeo/bookmart/internal/domain"
)

// Compile-time check: Publisher implements domain.EventPublisher.
var _ domain.EventPublisher = (*Publisher)(nil)

// OrderEventJobArgs carries a snapshot of an order at the moment an event
// happened to it, so the worker never needs to query the database.
type OrderEventJobArgs struct {
	Event          string    `json:"event"`
	OrderID        string    `json:"order_id"`
	BookID         string    `json:"book_id"`
	BuyerID        string    `json:"buyer_id"`
	SellerID       string    `json:"seller_id"`
	Price          string    `json:"price"`
	Status         string    `json:"status"`
	TrackingNumber string    `json:"tracking_number,omitempty"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// Kind returns the unique job type identifier used by River's job routing.
func (OrderEventJobArgs) Kind() string { return "order.event" }

// Client is the River client type parameterized for SQLite (*sql.Tx).
type Client = river.Client[*sql.Tx]

// Publisher implements domain.EventPublisher by enqueuing River jobs.
type Publisher struct {
	client *Client
}

// NewPublisher creates a publisher backed by the given River client.
func NewPublisher(client *Client) *Publisher {
	return &Publisher{client: client}
}

// Publish enqueues an order event as an async job in River.
func (p *Publisher) Publish(ctx context.Context, event domain.Event, order domain.Order) error {
	_, err := p.client.Insert(ctx, OrderEventJobArgs{
		Event:          string(event),
		OrderID:        order.ID,
		BookID:         order.BookID,
		BuyerID:        order.BuyerID,
		SellerID:       order.SellerID,
		Price:          order.Price.StringFixed(2),
		Status:         string(order.Status),
		TrackingNumber: order.TrackingNumber,
		OccurredAt:     order.UpdatedAt,
	}, nil)
	if err != nil {
		return fmt.Errorf("enqueuing order event job: %w", err)
	}
	return nil
}
