package domain

import "context"

// UserRepository defines the persistence contract for users.
type UserRepository interface {
	CreateUser(ctx context.Context, user User) error
	GetUserByID(ctx context.Context, id string) (User, error)
	GetUserByUsername(ctx context.Context, username string) (User, error)
}

// BookFilter holds optional criteria for listing books.
type BookFilter struct {
	SellerID      string
	Category      string
	PublishedOnly bool
	Limit         int
	Offset        int
}

// BookRepository defines the persistence contract for listings.
type BookRepository interface {
	CreateBook(ctx context.Context, book Book) error
	GetBookByID(ctx context.Context, id string) (Book, error)
	ListBooks(ctx context.Context, filter BookFilter) ([]Book, error)
	// UpdateBook writes the seller-editable details and updated_at. The image
	// reference is left untouched; see SwapBookImage.
	UpdateBook(ctx context.Context, book Book) error
	// SwapBookImage records book's image reference only while the stored
	// image key still equals previousKey. Otherwise it returns ErrImageChanged.
	SwapBookImage(ctx context.Context, book Book, previousKey string) error
	DeleteBook(ctx context.Context, id string) error
}

// OrderRepository defines the persistence contract for orders.
type OrderRepository interface {
	CreateOrder(ctx context.Context, order Order) error
	GetOrderByID(ctx context.Context, id string) (Order, error)
	ListOrders(ctx context.Context, filter OrderFilter) ([]Order, error)
	// UpdateStatus writes the mutable fields of order only if the stored
	// status still equals expected. It returns ErrOrderNotFound or a
	// *StatusConflictError carrying the stored status otherwise.
	UpdateStatus(ctx context.Context, order Order, expected Status) error
	SalesSummary(ctx context.Context, sellerID string) (SalesSummary, error)
}

// TransitionValidator checks whether an event is legal from a status.
type TransitionValidator interface {
	Apply(ctx context.Context, current Status, event Event) (Status, error)
}

// EventPublisher defines the contract for emitting order events.
type EventPublisher interface {
	Publish(ctx context.Context, event Event, order Order) error
}

// IdentityResolver turns a session token into the caller's identity.
type IdentityResolver interface {
	Resolve(ctx context.Context, token string) (Identity, error)
}

// Asset is a stored file and the URL it is served from.
type Asset struct {
	Key string
	URL string
}

// AssetStore keeps cover images outside the database.
type AssetStore interface {
	Put(ctx context.Context, name, contentType string, data []byte) (Asset, error)
	Delete(ctx context.Context, key string) error
}
