package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/neomorfeo/bookmart/internal/adapter/assets"
	"github.com/neomorfeo/bookmart/internal/adapter/auth"
	"github.com/neomorfeo/bookmart/internal/adapter/fsm"
	adapter "github.com/neomorfeo/bookmart/internal/adapter/http"
	"github.com/neomorfeo/bookmart/internal/adapter/sqlite"
	"github.com/neomorfeo/bookmart/internal/app"
	"github.com/neomorfeo/bookmart/internal/domain"
)

const testSecret = "test-secret-key-with-at-least-32-bytes"

// noopPublisher is a no-op EventPublisher for tests.
type noopPublisher struct{}

func (p *noopPublisher) Publish(_ context.Context, _ domain.Event, _ domain.Order) error {
	return nil
}

type testServer struct {
	*httptest.Server
	assetDir string
}

// newTestServer creates a full-stack httptest.Server with SQLite in-memory.
func newTestServer(t *testing.T) *testServer {
	t.Helper()

	store, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("creating test store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	assetDir := t.TempDir()
	images, err := assets.NewFSStore(assetDir, "/assets")
	if err != nil {
		t.Fatalf("creating asset store: %v", err)
	}

	tokens := auth.NewTokenService(testSecret, time.Hour)
	deps := adapter.Deps{
		Auth:       app.NewAuthService(store, auth.NewHasher(bcrypt.MinCost), tokens),
		Catalog:    app.NewCatalogService(store, images),
		Orders:     app.NewOrderService(store, store, &noopPublisher{}, fsm.New()),
		Identities: tokens,
	}

	router := chi.NewMux()
	api := humachi.New(router, adapter.APIConfig("bookmart", "0.1.0"))
	adapter.Register(api, deps)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return &testServer{Server: srv, assetDir: assetDir}
}

// doRequest performs a JSON request with an optional bearer token.
func doRequest(t *testing.T, method, url, token, body string) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req, err := http.NewRequestWithContext(context.Background(), method, url, reader)
	if err != nil {
		t.Fatalf("creating request: %v", err)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, url, err)
	}
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()

	var v T
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	return v
}

func expectStatus(t *testing.T, resp *http.Response, want int) {
	t.Helper()
	if resp.StatusCode != want {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("%s %s: status = %d, want %d (body %s)", resp.Request.Method, resp.Request.URL.Path, resp.StatusCode, want, body)
	}
}

// expectError checks the status and that the problem detail mentions want.
func expectError(t *testing.T, resp *http.Response, status int, want string) {
	t.Helper()
	expectStatus(t, resp, status)

	problem := decode[struct {
		Detail string `json:"detail"`
	}](t, resp)
	if !strings.Contains(problem.Detail, want) {
		t.Errorf("detail = %q, want it to contain %q", problem.Detail, want)
	}
}

func mustRegister(t *testing.T, srv *testServer, username, role string) adapter.UserResponse {
	t.Helper()

	body := fmt.Sprintf(`{"username":%q,"email":%q,"password":"secret-pw","role":%q}`,
		username, username+"@example.com", role)
	resp := doRequest(t, http.MethodPost, srv.URL+"/api/v1/auth/register", "", body)
	expectStatus(t, resp, http.StatusCreated)
	return decode[adapter.UserResponse](t, resp)
}

type loginBody struct {
	Token     string               `json:"token"`
	ExpiresAt string               `json:"expires_at"`
	User      adapter.UserResponse `json:"user"`
}

func mustLogin(t *testing.T, srv *testServer, username string) string {
	t.Helper()

	body := fmt.Sprintf(`{"username":%q,"password":"secret-pw"}`, username)
	resp := doRequest(t, http.MethodPost, srv.URL+"/api/v1/auth/login", "", body)
	expectStatus(t, resp, http.StatusOK)
	return decode[loginBody](t, resp).Token
}

// mustAccount registers and logs in, returning the session token.
func mustAccount(t *testing.T, srv *testServer, username, role string) string {
	t.Helper()
	mustRegister(t, srv, username, role)
	return mustLogin(t, srv, username)
}

func mustCreateBook(t *testing.T, srv *testServer, token, body string) adapter.BookResponse {
	t.Helper()

	resp := doRequest(t, http.MethodPost, srv.URL+"/api/v1/books", token, body)
	expectStatus(t, resp, http.StatusCreated)
	return decode[adapter.BookResponse](t, resp)
}

const novel = `{"title":"Dune","author":"Frank Herbert","category":"scifi","price":12.5}`

func mustPlaceOrder(t *testing.T, srv *testServer, token, bookID string) adapter.OrderResponse {
	t.Helper()

	resp := doRequest(t, http.MethodPost, srv.URL+"/api/v1/orders", token, fmt.Sprintf(`{"book_id":%q}`, bookID))
	expectStatus(t, resp, http.StatusCreated)
	return decode[adapter.OrderResponse](t, resp)
}

// --- Accounts ---

func TestRegister(t *testing.T) {
	srv := newTestServer(t)
	user := mustRegister(t, srv, "alice", "seller")

	if user.ID == "" {
		t.Error("ID should not be empty")
	}
	if user.Role != "seller" {
		t.Errorf("Role = %q, want %q", user.Role, "seller")
	}
	if user.Email != "alice@example.com" {
		t.Errorf("Email = %q, want %q", user.Email, "alice@example.com")
	}
}

func TestRegister_Errors(t *testing.T) {
	srv := newTestServer(t)
	mustRegister(t, srv, "alice", "seller")

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"duplicate username", `{"username":"alice","email":"other@example.com","password":"secret-pw","role":"buyer"}`, http.StatusConflict},
		{"duplicate email", `{"username":"bob","email":"alice@example.com","password":"secret-pw","role":"buyer"}`, http.StatusConflict},
		{"short password", `{"username":"carol","email":"carol@example.com","password":"abc","role":"buyer"}`, http.StatusBadRequest},
		{"unknown role", `{"username":"dave","email":"dave@example.com","password":"secret-pw","role":"admin"}`, http.StatusUnprocessableEntity},
		{"missing email", `{"username":"erin","password":"secret-pw","role":"buyer"}`, http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doRequest(t, http.MethodPost, srv.URL+"/api/v1/auth/register", "", tt.body)
			defer resp.Body.Close()
			expectStatus(t, resp, tt.status)
		})
	}
}

func TestLogin_SetsSessionCookie(t *testing.T) {
	srv := newTestServer(t)
	mustRegister(t, srv, "alice", "buyer")

	resp := doRequest(t, http.MethodPost, srv.URL+"/api/v1/auth/login", "", `{"username":"alice","password":"secret-pw"}`)
	expectStatus(t, resp, http.StatusOK)

	var session *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == adapter.SessionCookie {
			session = c
		}
	}
	body := decode[loginBody](t, resp)

	if session == nil {
		t.Fatal("login should set the session cookie")
	}
	if !session.HttpOnly {
		t.Error("session cookie should be HttpOnly")
	}
	if session.Value != body.Token {
		t.Error("cookie value should match the returned token")
	}
	if body.User.Username != "alice" {
		t.Errorf("User.Username = %q, want %q", body.User.Username, "alice")
	}

	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, srv.URL+"/api/v1/auth/me", nil)
	if err != nil {
		t.Fatalf("creating request: %v", err)
	}
	req.AddCookie(session)
	me, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET /auth/me: %v", err)
	}
	expectStatus(t, me, http.StatusOK)
	if got := decode[adapter.UserResponse](t, me); got.ID != body.User.ID {
		t.Errorf("me.ID = %q, want %q", got.ID, body.User.ID)
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	srv := newTestServer(t)
	mustRegister(t, srv, "alice", "buyer")

	for _, body := range []string{
		`{"username":"alice","password":"wrong-pw"}`,
		`{"username":"nobody","password":"secret-pw"}`,
	} {
		resp := doRequest(t, http.MethodPost, srv.URL+"/api/v1/auth/login", "", body)
		expectError(t, resp, http.StatusUnauthorized, domain.ErrInvalidCredentials.Error())
	}
}

func TestLogout_ClearsCookie(t *testing.T) {
	srv := newTestServer(t)

	resp := doRequest(t, http.MethodPost, srv.URL+"/api/v1/auth/logout", "", "")
	defer resp.Body.Close()
	expectStatus(t, resp, http.StatusNoContent)

	cookies := resp.Cookies()
	if len(cookies) != 1 || cookies[0].Name != adapter.SessionCookie {
		t.Fatalf("cookies = %v, want one session cookie", cookies)
	}
	if cookies[0].MaxAge >= 0 || cookies[0].Value != "" {
		t.Errorf("session cookie should be expired and empty, got %+v", cookies[0])
	}
}

func TestMe_RequiresSession(t *testing.T) {
	srv := newTestServer(t)

	resp := doRequest(t, http.MethodGet, srv.URL+"/api/v1/auth/me", "", "")
	defer resp.Body.Close()
	expectStatus(t, resp, http.StatusUnauthorized)

	resp = doRequest(t, http.MethodGet, srv.URL+"/api/v1/auth/me", "not-a-token", "")
	defer resp.Body.Close()
	expectStatus(t, resp, http.StatusUnauthorized)
}

// --- Books ---

func TestCreateBook(t *testing.T) {
	srv := newTestServer(t)
	seller := mustRegister(t, srv, "alice", "seller")
	token := mustLogin(t, srv, "alice")

	book := mustCreateBook(t, srv, token, novel)

	if book.SellerID != seller.ID {
		t.Errorf("SellerID = %q, want %q", book.SellerID, seller.ID)
	}
	if book.Price != "12.50" {
		t.Errorf("Price = %q, want %q", book.Price, "12.50")
	}
	if !book.Published {
		t.Error("books should be published by default")
	}
}

func TestCreateBook_Errors(t *testing.T) {
	srv := newTestServer(t)
	seller := mustAccount(t, srv, "alice", "seller")
	buyer := mustAccount(t, srv, "bob", "buyer")

	tests := []struct {
		name   string
		token  string
		body   string
		status int
	}{
		{"no session", "", novel, http.StatusUnauthorized},
		{"buyer account", buyer, novel, http.StatusForbidden},
		{"blank title", seller, `{"title":"  ","author":"A","category":"c","price":1}`, http.StatusBadRequest},
		{"negative price", seller, `{"title":"T","author":"A","category":"c","price":-1}`, http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doRequest(t, http.MethodPost, srv.URL+"/api/v1/books", tt.token, tt.body)
			defer resp.Body.Close()
			expectStatus(t, resp, tt.status)
		})
	}
}

func TestListBooks_PublishedOnly(t *testing.T) {
	srv := newTestServer(t)
	token := mustAccount(t, srv, "alice", "seller")

	mustCreateBook(t, srv, token, novel)
	mustCreateBook(t, srv, token, `{"title":"Emma","author":"Jane Austen","category":"classics","price":8}`)
	mustCreateBook(t, srv, token, `{"title":"Draft","author":"Me","category":"scifi","price":1,"published":false}`)

	resp := doRequest(t, http.MethodGet, srv.URL+"/api/v1/books", "", "")
	expectStatus(t, resp, http.StatusOK)
	if books := decode[[]adapter.BookResponse](t, resp); len(books) != 2 {
		t.Errorf("len(books) = %d, want 2", len(books))
	}

	resp = doRequest(t, http.MethodGet, srv.URL+"/api/v1/books?category=scifi", "", "")
	expectStatus(t, resp, http.StatusOK)
	books := decode[[]adapter.BookResponse](t, resp)
	if len(books) != 1 || books[0].Title != "Dune" {
		t.Errorf("scifi books = %+v, want only Dune", books)
	}

	resp = doRequest(t, http.MethodGet, srv.URL+"/api/v1/seller/books", token, "")
	expectStatus(t, resp, http.StatusOK)
	if own := decode[[]adapter.BookResponse](t, resp); len(own) != 3 {
		t.Errorf("len(seller books) = %d, want 3", len(own))
	}
}

func TestGetBook_NotFound(t *testing.T) {
	srv := newTestServer(t)

	resp := doRequest(t, http.MethodGet, srv.URL+"/api/v1/books/nonexistent", "", "")
	expectError(t, resp, http.StatusNotFound, domain.ErrBookNotFound.Error())
}

func TestUpdateBook(t *testing.T) {
	srv := newTestServer(t)
	token := mustAccount(t, srv, "alice", "seller")
	book := mustCreateBook(t, srv, token, novel)

	resp := doRequest(t, http.MethodPatch, srv.URL+"/api/v1/books/"+book.ID, token, `{"price":15,"published":false}`)
	expectStatus(t, resp, http.StatusOK)
	updated := decode[adapter.BookResponse](t, resp)

	if updated.Price != "15.00" {
		t.Errorf("Price = %q, want %q", updated.Price, "15.00")
	}
	if updated.Published {
		t.Error("Published should be false")
	}
	if updated.Title != book.Title {
		t.Errorf("Title = %q, want unchanged %q", updated.Title, book.Title)
	}
}

func TestUpdateBook_NotOwner(t *testing.T) {
	srv := newTestServer(t)
	owner := mustAccount(t, srv, "alice", "seller")
	other := mustAccount(t, srv, "mallory", "seller")
	book := mustCreateBook(t, srv, owner, novel)

	resp := doRequest(t, http.MethodPatch, srv.URL+"/api/v1/books/"+book.ID, other, `{"price":1}`)
	expectError(t, resp, http.StatusForbidden, domain.ErrForbidden.Error())

	resp = doRequest(t, http.MethodDelete, srv.URL+"/api/v1/books/"+book.ID, other, "")
	defer resp.Body.Close()
	expectStatus(t, resp, http.StatusForbidden)
}

func TestDeleteBook(t *testing.T) {
	srv := newTestServer(t)
	token := mustAccount(t, srv, "alice", "seller")
	book := mustCreateBook(t, srv, token, novel)

	resp := doRequest(t, http.MethodDelete, srv.URL+"/api/v1/books/"+book.ID, token, "")
	defer resp.Body.Close()
	expectStatus(t, resp, http.StatusNoContent)

	resp = doRequest(t, http.MethodGet, srv.URL+"/api/v1/books/"+book.ID, "", "")
	defer resp.Body.Close()
	expectStatus(t, resp, http.StatusNotFound)
}

func putImage(t *testing.T, srv *testServer, token, bookID, contentType string, data []byte) *http.Response {
	t.Helper()

	req, err := http.NewRequestWithContext(context.Background(), http.MethodPut,
		srv.URL+"/api/v1/books/"+bookID+"/image", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("creating request: %v", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("PUT image: %v", err)
	}
	return resp
}

func TestReplaceImage(t *testing.T) {
	srv := newTestServer(t)
	token := mustAccount(t, srv, "alice", "seller")
	book := mustCreateBook(t, srv, token, novel)

	resp := putImage(t, srv, token, book.ID, "image/png", []byte("first"))
	expectStatus(t, resp, http.StatusOK)
	first := decode[adapter.BookResponse](t, resp)

	if !strings.HasPrefix(first.ImageURL, "/assets/books/"+book.ID+"/") {
		t.Fatalf("ImageURL = %q, want it under /assets/books/%s/", first.ImageURL, book.ID)
	}
	firstPath := filepath.Join(srv.assetDir, strings.TrimPrefix(first.ImageURL, "/assets/"))
	if data, err := os.ReadFile(firstPath); err != nil || string(data) != "first" {
		t.Fatalf("stored image = %q, %v; want %q", data, err, "first")
	}

	resp = putImage(t, srv, token, book.ID, "image/png", []byte("second"))
	expectStatus(t, resp, http.StatusOK)
	second := decode[adapter.BookResponse](t, resp)

	if second.ImageURL == first.ImageURL {
		t.Error("replacement should store a new asset")
	}
	if _, err := os.Stat(firstPath); !os.IsNotExist(err) {
		t.Errorf("previous image should be removed, stat err = %v", err)
	}
}

func TestReplaceImage_Rejected(t *testing.T) {
	srv := newTestServer(t)
	owner := mustAccount(t, srv, "alice", "seller")
	other := mustAccount(t, srv, "mallory", "seller")
	book := mustCreateBook(t, srv, owner, novel)

	resp := putImage(t, srv, owner, book.ID, "text/plain", []byte("hello"))
	defer resp.Body.Close()
	expectStatus(t, resp, http.StatusBadRequest)

	resp = putImage(t, srv, other, book.ID, "image/png", []byte("img"))
	defer resp.Body.Close()
	expectStatus(t, resp, http.StatusForbidden)
}

// --- Orders ---

func TestOrderLifecycle(t *testing.T) {
	srv := newTestServer(t)
	seller := mustAccount(t, srv, "alice", "seller")
	buyer := mustAccount(t, srv, "bob", "buyer")
	book := mustCreateBook(t, srv, seller, novel)

	order := mustPlaceOrder(t, srv, buyer, book.ID)
	if order.Status != "pending" {
		t.Fatalf("Status = %q, want %q", order.Status, "pending")
	}
	if order.Price != "12.50" || order.SellerID != book.SellerID {
		t.Errorf("order = %+v, want price 12.50 and seller %s", order, book.SellerID)
	}

	base := srv.URL + "/api/v1/orders/" + order.ID

	resp := doRequest(t, http.MethodPost, base+"/accept", seller, "")
	expectStatus(t, resp, http.StatusOK)
	if got := decode[adapter.OrderResponse](t, resp); got.Status != "accepted" {
		t.Fatalf("Status = %q, want %q", got.Status, "accepted")
	}

	resp = doRequest(t, http.MethodPost, base+"/ship", seller, `{"tracking_number":"TRK-1","tracking_url":"https://carrier.example/TRK-1"}`)
	expectStatus(t, resp, http.StatusOK)
	shipped := decode[adapter.OrderResponse](t, resp)
	if shipped.Status != "shipped" || shipped.TrackingNumber != "TRK-1" || shipped.ShippedAt == nil {
		t.Fatalf("shipped order = %+v", shipped)
	}

	resp = doRequest(t, http.MethodPost, base+"/deliver", buyer, "")
	expectStatus(t, resp, http.StatusOK)
	delivered := decode[adapter.OrderResponse](t, resp)
	if delivered.Status != "delivered" || delivered.DeliveredAt == nil {
		t.Fatalf("delivered order = %+v", delivered)
	}

	resp = doRequest(t, http.MethodPost, base+"/ship", seller, `{"tracking_number":"TRK-2"}`)
	expectError(t, resp, http.StatusConflict, "cannot ship: order is delivered")

	resp = doRequest(t, http.MethodPost, base+"/deliver", seller, "")
	expectError(t, resp, http.StatusConflict, "cannot deliver: order is delivered")

	resp = doRequest(t, http.MethodGet, srv.URL+"/api/v1/seller/summary", seller, "")
	expectStatus(t, resp, http.StatusOK)
	summary := decode[adapter.SummaryResponse](t, resp)
	if summary.TotalBooks != 1 || summary.TotalSales != 1 || summary.Revenue != "12.50" {
		t.Errorf("summary = %+v", summary)
	}
}

func TestCreateOrder_Errors(t *testing.T) {
	srv := newTestServer(t)
	seller := mustAccount(t, srv, "alice", "seller")
	buyer := mustAccount(t, srv, "bob", "buyer")
	draft := mustCreateBook(t, srv, seller, `{"title":"Draft","author":"Me","category":"c","price":1,"published":false}`)

	tests := []struct {
		name   string
		token  string
		bookID string
		status int
	}{
		{"seller account", seller, draft.ID, http.StatusForbidden},
		{"unknown book", buyer, "nonexistent", http.StatusNotFound},
		{"unpublished book", buyer, draft.ID, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doRequest(t, http.MethodPost, srv.URL+"/api/v1/orders", tt.token, fmt.Sprintf(`{"book_id":%q}`, tt.bookID))
			defer resp.Body.Close()
			expectStatus(t, resp, tt.status)
		})
	}
}

func TestOrderActions_WrongParty(t *testing.T) {
	srv := newTestServer(t)
	seller := mustAccount(t, srv, "alice", "seller")
	rival := mustAccount(t, srv, "mallory", "seller")
	buyer := mustAccount(t, srv, "bob", "buyer")
	stranger := mustAccount(t, srv, "eve", "buyer")
	book := mustCreateBook(t, srv, seller, novel)
	order := mustPlaceOrder(t, srv, buyer, book.ID)

	base := srv.URL + "/api/v1/orders/" + order.ID

	resp := doRequest(t, http.MethodPost, base+"/accept", buyer, "")
	defer resp.Body.Close()
	expectStatus(t, resp, http.StatusForbidden)

	resp = doRequest(t, http.MethodPost, base+"/accept", rival, "")
	defer resp.Body.Close()
	expectStatus(t, resp, http.StatusForbidden)

	resp = doRequest(t, http.MethodGet, base, stranger, "")
	defer resp.Body.Close()
	expectStatus(t, resp, http.StatusForbidden)

	resp = doRequest(t, http.MethodGet, base, buyer, "")
	expectStatus(t, resp, http.StatusOK)
	if got := decode[adapter.OrderResponse](t, resp); got.Status != "pending" {
		t.Errorf("Status = %q, want unchanged %q", got.Status, "pending")
	}
}

func TestShipOrder_Validation(t *testing.T) {
	srv := newTestServer(t)
	seller := mustAccount(t, srv, "alice", "seller")
	buyer := mustAccount(t, srv, "bob", "buyer")
	book := mustCreateBook(t, srv, seller, novel)
	order := mustPlaceOrder(t, srv, buyer, book.ID)

	base := srv.URL + "/api/v1/orders/" + order.ID

	resp := doRequest(t, http.MethodPost, base+"/ship", seller, `{"tracking_number":"TRK-1"}`)
	expectError(t, resp, http.StatusConflict, "cannot ship: order is pending")

	resp = doRequest(t, http.MethodPost, base+"/accept", seller, "")
	defer resp.Body.Close()
	expectStatus(t, resp, http.StatusOK)

	resp = doRequest(t, http.MethodPost, base+"/ship", seller, `{"tracking_number":""}`)
	defer resp.Body.Close()
	expectStatus(t, resp, http.StatusBadRequest)
}

func TestGetOrder_NotFound(t *testing.T) {
	srv := newTestServer(t)
	buyer := mustAccount(t, srv, "bob", "buyer")

	resp := doRequest(t, http.MethodGet, srv.URL+"/api/v1/orders/nonexistent", buyer, "")
	expectError(t, resp, http.StatusNotFound, domain.ErrOrderNotFound.Error())
}

func TestOrderLists(t *testing.T) {
	srv := newTestServer(t)
	seller := mustAccount(t, srv, "alice", "seller")
	buyer := mustAccount(t, srv, "bob", "buyer")
	other := mustAccount(t, srv, "carol", "buyer")
	book := mustCreateBook(t, srv, seller, novel)

	mustPlaceOrder(t, srv, buyer, book.ID)
	mustPlaceOrder(t, srv, buyer, book.ID)
	mustPlaceOrder(t, srv, other, book.ID)

	resp := doRequest(t, http.MethodGet, srv.URL+"/api/v1/seller/orders", seller, "")
	expectStatus(t, resp, http.StatusOK)
	if sales := decode[[]adapter.OrderResponse](t, resp); len(sales) != 3 {
		t.Errorf("len(seller orders) = %d, want 3", len(sales))
	}

	resp = doRequest(t, http.MethodGet, srv.URL+"/api/v1/buyer/orders", buyer, "")
	expectStatus(t, resp, http.StatusOK)
	if purchases := decode[[]adapter.OrderResponse](t, resp); len(purchases) != 2 {
		t.Errorf("len(buyer orders) = %d, want 2", len(purchases))
	}

	resp = doRequest(t, http.MethodGet, srv.URL+"/api/v1/buyer/orders", seller, "")
	defer resp.Body.Close()
	expectStatus(t, resp, http.StatusForbidden)
}
