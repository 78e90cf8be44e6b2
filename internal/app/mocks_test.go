package app_test

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/neomorfeo/bookmart/internal/domain"
)

// --- Orders ---

type mockOrderRepo struct {
	mu     sync.Mutex
	orders map[string]domain.Order
	books  *mockBookRepo
}

func newMockOrderRepo(books *mockBookRepo) *mockOrderRepo {
	return &mockOrderRepo{orders: make(map[string]domain.Order), books: books}
}

func (m *mockOrderRepo) CreateOrder(_ context.Context, o domain.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders[o.ID] = o
	return nil
}

func (m *mockOrderRepo) GetOrderByID(_ context.Context, id string) (domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	return o, nil
}

func (m *mockOrderRepo) ListOrders(_ context.Context, f domain.OrderFilter) ([]domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Order
	for _, o := range m.orders {
		if f.BuyerID != "" && o.BuyerID != f.BuyerID {
			continue
		}
		if f.SellerID != "" && o.SellerID != f.SellerID {
			continue
		}
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *mockOrderRepo) UpdateStatus(_ context.Context, o domain.Order, expected domain.Status) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.orders[o.ID]
	if !ok {
		return domain.ErrOrderNotFound
	}
	if stored.Status != expected {
		return &domain.StatusConflictError{Expected: expected, Actual: stored.Status}
	}
	m.orders[o.ID] = o
	return nil
}

func (m *mockOrderRepo) SalesSummary(ctx context.Context, sellerID string) (domain.SalesSummary, error) {
	books, _ := m.books.ListBooks(ctx, domain.BookFilter{SellerID: sellerID})
	orders, _ := m.ListOrders(ctx, domain.OrderFilter{SellerID: sellerID})

	summary := domain.SalesSummary{TotalBooks: len(books), Revenue: decimal.Zero}
	for _, b := range books {
		if b.Published {
			summary.PublishedBooks++
		}
	}
	for _, o := range orders {
		if o.Status == domain.StatusCanceled {
			continue
		}
		summary.TotalSales++
		summary.Revenue = summary.Revenue.Add(o.Price)
	}
	return summary, nil
}

// slowOrderRepo widens the window between reading and writing an order so
// that concurrent transitions overlap.
type slowOrderRepo struct {
	*mockOrderRepo
	delay time.Duration
}

func (r *slowOrderRepo) GetOrderByID(ctx context.Context, id string) (domain.Order, error) {
	o, err := r.mockOrderRepo.GetOrderByID(ctx, id)
	time.Sleep(r.delay)
	return o, err
}

// --- Books ---

type mockBookRepo struct {
	mu    sync.Mutex
	books map[string]domain.Book
	// failUpdate makes UpdateBook fail when set.
	failUpdate error
}

func newMockBookRepo() *mockBookRepo {
	return &mockBookRepo{books: make(map[string]domain.Book)}
}

func (m *mockBookRepo) CreateBook(_ context.Context, b domain.Book) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.books[b.ID] = b
	return nil
}

func (m *mockBookRepo) GetBookByID(_ context.Context, id string) (domain.Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.books[id]
	if !ok {
		return domain.Book{}, domain.ErrBookNotFound
	}
	return b, nil
}

func (m *mockBookRepo) ListBooks(_ context.Context, f domain.BookFilter) ([]domain.Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Book
	for _, b := range m.books {
		if f.SellerID != "" && b.SellerID != f.SellerID {
			continue
		}
		if f.Category != "" && b.Category != f.Category {
			continue
		}
		if f.PublishedOnly && !b.Published {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (m *mockBookRepo) UpdateBook(_ context.Context, b domain.Book) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failUpdate != nil {
		return m.failUpdate
	}
	stored, ok := m.books[b.ID]
	if !ok {
		return domain.ErrBookNotFound
	}
	b.ImageKey, b.ImageURL = stored.ImageKey, stored.ImageURL
	m.books[b.ID] = b
	return nil
}

func (m *mockBookRepo) SwapBookImage(_ context.Context, b domain.Book, previousKey string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failUpdate != nil {
		return m.failUpdate
	}
	stored, ok := m.books[b.ID]
	if !ok {
		return domain.ErrBookNotFound
	}
	if stored.ImageKey != previousKey {
		return domain.ErrImageChanged
	}
	stored.ImageKey = b.ImageKey
	stored.ImageURL = b.ImageURL
	stored.UpdatedAt = b.UpdatedAt
	m.books[b.ID] = stored
	return nil
}

func (m *mockBookRepo) DeleteBook(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.books[id]; !ok {
		return domain.ErrBookNotFound
	}
	delete(m.books, id)
	return nil
}

// --- Users ---

type mockUserRepo struct {
	users map[string]domain.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]domain.User)}
}

func (m *mockUserRepo) CreateUser(_ context.Context, u domain.User) error {
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return &domain.UserConflictError{Field: "email", Value: u.Email}
		}
	}
	m.users[u.ID] = u
	return nil
}

func (m *mockUserRepo) GetUserByID(_ context.Context, id string) (domain.User, error) {
	u, ok := m.users[id]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound
	}
	return u, nil
}

func (m *mockUserRepo) GetUserByUsername(_ context.Context, username string) (domain.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return domain.User{}, domain.ErrUserNotFound
}

// --- Publisher ---

type mockPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
	err    error
}

type publishedEvent struct {
	event domain.Event
	order domain.Order
}

func (m *mockPublisher) Publish(_ context.Context, e domain.Event, o domain.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.events = append(m.events, publishedEvent{event: e, order: o})
	return nil
}

// --- Validator ---

// tableValidator walks domain.Transitions directly.
type tableValidator struct{}

func (tableValidator) Apply(_ context.Context, current domain.Status, event domain.Event) (domain.Status, error) {
	for _, t := range domain.Transitions {
		if t.Event == event && t.Src == current {
			return t.Dst, nil
		}
	}
	return "", &domain.TransitionError{Event: event, Current: current}
}

// --- Assets ---

type mockAssets struct {
	mu      sync.Mutex
	stored  map[string][]byte
	deleted []string
	putErr  error
	delErr  error
}

func newMockAssets() *mockAssets {
	return &mockAssets{stored: make(map[string][]byte)}
}

func (m *mockAssets) Put(_ context.Context, name, _ string, data []byte) (domain.Asset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.putErr != nil {
		return domain.Asset{}, m.putErr
	}
	m.stored[name] = data
	return domain.Asset{Key: name, URL: "/assets/" + name}, nil
}

func (m *mockAssets) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleted = append(m.deleted, key)
	if m.delErr != nil {
		return m.delErr
	}
	delete(m.stored, key)
	return nil
}

// --- Credentials ---

type plainHasher struct{}

func (plainHasher) Hash(p string) (string, error) { return "hashed:" + p, nil }
func (plainHasher) Compare(h, p string) bool       { return h == "hashed:"+p }

type failingHasher struct{}

func (failingHasher) Hash(string) (string, error) { return "", errors.New("hash failed") }
func (failingHasher) Compare(string, string) bool { return false }

type stubTokens struct{}

func (stubTokens) Issue(id domain.Identity) (string, time.Time, error) {
	return "token-" + id.ID, time.Now().Add(time.Hour), nil
}
