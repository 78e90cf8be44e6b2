package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Status represents the lifecycle state of an order.
type Status string

const (
	StatusPending   Status = "pending"
	StatusAccepted  Status = "accepted"
	StatusShipped   Status = "shipped"
	StatusDelivered Status = "delivered"
	StatusCanceled  Status = "canceled"
)

// ParseStatus converts a stored value into a Status, rejecting unknown values.
func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusPending, StatusAccepted, StatusShipped, StatusDelivered, StatusCanceled:
		return st, nil
	}
	return "", fmt.Errorf("unknown order status %q", s)
}

// Terminal reports whether no transition leaves s.
func (s Status) Terminal() bool {
	switch s {
	case StatusDelivered, StatusCanceled:
		return true
	case StatusPending, StatusAccepted, StatusShipped:
		return false
	}
	return false
}

// Event represents an action on an order.
type Event string

const (
	EventPlace   Event = "place"
	EventAccept  Event = "accept"
	EventShip    Event = "ship"
	EventDeliver Event = "deliver"
)

// Party is the side an identity takes on a particular order.
type Party string

const (
	PartyBuyer  Party = "buyer"
	PartySeller Party = "seller"
)

// Transition defines a valid state change and the order parties allowed to trigger it.
type Transition struct {
	Event  Event
	Src    Status
	Dst    Status
	Actors []Party
}

// Transitions defines every status change reachable through order operations.
// Placing an order creates it in StatusPending and is not a transition.
var Transitions = []Transition{
	{Event: EventAccept, Src: StatusPending, Dst: StatusAccepted, Actors: []Party{PartySeller}},
	{Event: EventShip, Src: StatusAccepted, Dst: StatusShipped, Actors: []Party{PartySeller}},
	{Event: EventDeliver, Src: StatusShipped, Dst: StatusDelivered, Actors: []Party{PartyBuyer, PartySeller}},
}

// MayTrigger reports whether party is allowed to trigger event on an order,
// independently of the order's current status.
func MayTrigger(event Event, party Party) bool {
	for _, t := range Transitions {
		if t.Event != event {
			continue
		}
		for _, p := range t.Actors {
			if p == party {
				return true
			}
		}
	}
	return false
}

// Order is a purchase of one book by one buyer from its seller.
type Order struct {
	ID             string
	BookID         string
	BuyerID        string
	SellerID       string
	Price          decimal.Decimal
	Status         Status
	TrackingNumber string
	TrackingURL    string
	ShippedAt      *time.Time
	DeliveredAt    *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewOrder creates a pending order for book, capturing its seller and current price.
func NewOrder(id string, book Book, buyerID string) Order {
	now := time.Now().UTC()
	return Order{
		ID:        id,
		BookID:    book.ID,
		BuyerID:   buyerID,
		SellerID:  book.SellerID,
		Price:     book.Price,
		Status:    StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// PartyOf returns the side userID takes on o. The boolean is false for non-participants.
func (o Order) PartyOf(userID string) (Party, bool) {
	switch userID {
	case "":
		return "", false
	case o.SellerID:
		return PartySeller, true
	case o.BuyerID:
		return PartyBuyer, true
	}
	return "", false
}

// Advance returns o moved to status dst at the given time, stamping the
// shipment and delivery timestamps that belong to dst.
func (o Order) Advance(dst Status, at time.Time) Order {
	o.Status = dst
	o.UpdatedAt = at
	switch dst {
	case StatusShipped:
		o.ShippedAt = &at
	case StatusDelivered:
		o.DeliveredAt = &at
	case StatusPending, StatusAccepted, StatusCanceled:
	}
	return o
}

// OrderFilter holds optional criteria for listing orders.
type OrderFilter struct {
	BuyerID  string
	SellerID string
	Status   *Status
	Limit    int
	Offset   int
}

// SalesSummary aggregates a seller's catalog and sales.
type SalesSummary struct {
	TotalBooks     int
	PublishedBooks int
	TotalSales     int
	Revenue        decimal.Decimal
}
