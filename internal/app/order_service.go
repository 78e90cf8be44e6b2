package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/neomorfeo/bookmart/internal/domain"
)

// OrderService drives orders through their lifecycle. Every transition checks
// the caller's party on the order before the order's status, so a caller
// outside the order never learns its state.
type OrderService struct {
	orders    domain.OrderRepository
	books     domain.BookRepository
	publisher domain.EventPublisher
	validator domain.TransitionValidator
	now       func() time.Time
}

// NewOrderService creates a service with the given adapters.
func NewOrderService(orders domain.OrderRepository, books domain.BookRepository, publisher domain.EventPublisher, validator domain.TransitionValidator) *OrderService {
	return &OrderService{
		orders:    orders,
		books:     books,
		publisher: publisher,
		validator: validator,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Create places a pending order for a published book on behalf of buyerID.
func (s *OrderService) Create(ctx context.Context, bookID, buyerID string) (domain.Order, error) {
	book, err := s.books.GetBookByID(ctx, bookID)
	if err != nil {
		return domain.Order{}, err
	}
	if !book.Published {
		return domain.Order{}, domain.ErrBookNotFound
	}

	id, err := generateID()
	if err != nil {
		return domain.Order{}, fmt.Errorf("generating order id: %w", err)
	}

	order := domain.NewOrder(id, book, buyerID)

	if err := s.orders.CreateOrder(ctx, order); err != nil {
		return domain.Order{}, fmt.Errorf("creating order: %w", err)
	}

	s.publish(ctx, domain.EventPlace, order)

	return order, nil
}

// Get returns an order to one of its parties.
func (s *OrderService) Get(ctx context.Context, id, actorID string) (domain.Order, error) {
	order, err := s.orders.GetOrderByID(ctx, id)
	if err != nil {
		return domain.Order{}, err
	}
	if _, ok := order.PartyOf(actorID); !ok {
		return domain.Order{}, &domain.UnauthorizedError{Action: "view", ActorID: actorID}
	}
	return order, nil
}

// ListForSeller returns the orders placed on sellerID's books, newest first.
func (s *OrderService) ListForSeller(ctx context.Context, sellerID string) ([]domain.Order, error) {
	return s.orders.ListOrders(ctx, domain.OrderFilter{SellerID: sellerID})
}

// ListForBuyer returns the orders placed by buyerID, newest first.
func (s *OrderService) ListForBuyer(ctx context.Context, buyerID string) ([]domain.Order, error) {
	return s.orders.ListOrders(ctx, domain.OrderFilter{BuyerID: buyerID})
}

// SellerSummary reports catalog size, sales count and revenue for sellerID.
func (s *OrderService) SellerSummary(ctx context.Context, sellerID string) (domain.SalesSummary, error) {
	return s.orders.SalesSummary(ctx, sellerID)
}

// Accept moves a pending order to accepted. Only the order's seller may accept.
func (s *OrderService) Accept(ctx context.Context, orderID, sellerID string) (domain.Order, error) {
	return s.transition(ctx, orderID, sellerID, domain.EventAccept, nil)
}

// Ship moves an accepted order to shipped and records its tracking details.
// An empty tracking number is rejected before the order is read.
func (s *OrderService) Ship(ctx context.Context, orderID, sellerID, trackingNumber, trackingURL string) (domain.Order, error) {
	trackingNumber = strings.TrimSpace(trackingNumber)
	if trackingNumber == "" {
		return domain.Order{}, &domain.ValidationError{Field: "tracking_number", Reason: "must not be empty"}
	}

	return s.transition(ctx, orderID, sellerID, domain.EventShip, func(o domain.Order) domain.Order {
		o.TrackingNumber = trackingNumber
		o.TrackingURL = strings.TrimSpace(trackingURL)
		return o
	})
}

// Deliver moves a shipped order to delivered. Either party may confirm delivery.
func (s *OrderService) Deliver(ctx context.Context, orderID, actorID string) (domain.Order, error) {
	return s.transition(ctx, orderID, actorID, domain.EventDeliver, nil)
}

func (s *OrderService) transition(ctx context.Context, orderID, actorID string, event domain.Event, effect func(domain.Order) domain.Order) (domain.Order, error) {
	order, err := s.orders.GetOrderByID(ctx, orderID)
	if err != nil {
		return domain.Order{}, err
	}

	party, ok := order.PartyOf(actorID)
	if !ok || !domain.MayTrigger(event, party) {
		return domain.Order{}, &domain.UnauthorizedError{Action: string(event), ActorID: actorID}
	}

	dst, err := s.validator.Apply(ctx, order.Status, event)
	if err != nil {
		return domain.Order{}, err
	}

	next := order.Advance(dst, s.now())
	if effect != nil {
		next = effect(next)
	}

	if err := s.orders.UpdateStatus(ctx, next, order.Status); err != nil {
		var conflict *domain.StatusConflictError
		if errors.As(err, &conflict) {
			return domain.Order{}, &domain.TransitionError{Event: event, Current: conflict.Actual}
		}
		return domain.Order{}, fmt.Errorf("updating order: %w", err)
	}

	s.publish(ctx, event, next)

	return next, nil
}

// publish emits an order event. The order change is already committed, so a
// failure is logged rather than returned.
func (s *OrderService) publish(ctx context.Context, event domain.Event, order domain.Order) {
	if err := s.publisher.Publish(ctx, event, order); err != nil {
		slog.WarnContext(ctx, "publishing order event failed",
			"event", event,
			"order_id", order.ID,
			"error", err,
		)
	}
}
