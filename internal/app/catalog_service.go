package app

import (
	"context"
	"fmt"
	"log/slog"
	"mime"
	"strings"
	"time"

	"github.com/neomorfeo/bookmart/internal/domain"
)

// MaxImageBytes bounds the size of an uploaded cover image.
const MaxImageBytes = 5 << 20

// CatalogService manages book listings and their cover images.
type CatalogService struct {
	books  domain.BookRepository
	assets domain.AssetStore
}

// NewCatalogService creates a service with the given adapters.
func NewCatalogService(books domain.BookRepository, assets domain.AssetStore) *CatalogService {
	return &CatalogService{books: books, assets: assets}
}

// AuthorizeListingMutation fails with domain.ErrForbidden unless actorID owns book.
func AuthorizeListingMutation(book domain.Book, actorID string) error {
	if actorID == "" || book.SellerID != actorID {
		return domain.ErrForbidden
	}
	return nil
}

// Create adds a listing owned by sellerID.
func (s *CatalogService) Create(ctx context.Context, sellerID string, details domain.BookDetails) (domain.Book, error) {
	if err := details.Validate(); err != nil {
		return domain.Book{}, err
	}

	id, err := generateID()
	if err != nil {
		return domain.Book{}, fmt.Errorf("generating book id: %w", err)
	}

	book := domain.NewBook(id, sellerID, details)
	if err := s.books.CreateBook(ctx, book); err != nil {
		return domain.Book{}, fmt.Errorf("creating book: %w", err)
	}
	return book, nil
}

// Get returns a listing by id.
func (s *CatalogService) Get(ctx context.Context, id string) (domain.Book, error) {
	return s.books.GetBookByID(ctx, id)
}

// List returns published listings, optionally restricted to a category.
func (s *CatalogService) List(ctx context.Context, category string) ([]domain.Book, error) {
	return s.books.ListBooks(ctx, domain.BookFilter{Category: category, PublishedOnly: true})
}

// ListBySeller returns every listing of sellerID, published or not.
func (s *CatalogService) ListBySeller(ctx context.Context, sellerID string) ([]domain.Book, error) {
	return s.books.ListBooks(ctx, domain.BookFilter{SellerID: sellerID})
}

// Update applies patch to a listing owned by actorID.
func (s *CatalogService) Update(ctx context.Context, id, actorID string, patch domain.BookPatch) (domain.Book, error) {
	book, err := s.books.GetBookByID(ctx, id)
	if err != nil {
		return domain.Book{}, err
	}
	if err := AuthorizeListingMutation(book, actorID); err != nil {
		return domain.Book{}, err
	}

	updated := patch.Apply(book)
	if err := updated.Details().Validate(); err != nil {
		return domain.Book{}, err
	}
	updated.UpdatedAt = time.Now().UTC()

	if err := s.books.UpdateBook(ctx, updated); err != nil {
		return domain.Book{}, fmt.Errorf("updating book: %w", err)
	}
	return updated, nil
}

// Delete removes a listing owned by actorID, then its stored image.
func (s *CatalogService) Delete(ctx context.Context, id, actorID string) error {
	book, err := s.books.GetBookByID(ctx, id)
	if err != nil {
		return err
	}
	if err := AuthorizeListingMutation(book, actorID); err != nil {
		return err
	}

	if err := s.books.DeleteBook(ctx, id); err != nil {
		return fmt.Errorf("deleting book: %w", err)
	}

	s.discardAsset(ctx, book.ImageKey)
	return nil
}

// ReplaceImage stores a new cover image for a listing owned by actorID.
// The book record only switches to the new asset once it is stored, and the
// previous asset is removed after the record is committed. If another
// replacement committed first, the new asset is discarded and
// domain.ErrImageChanged is returned.
func (s *CatalogService) ReplaceImage(ctx context.Context, id, actorID, contentType string, data []byte) (domain.Book, error) {
	if err := validateImage(contentType, data); err != nil {
		return domain.Book{}, err
	}

	book, err := s.books.GetBookByID(ctx, id)
	if err != nil {
		return domain.Book{}, err
	}
	if err := AuthorizeListingMutation(book, actorID); err != nil {
		return domain.Book{}, err
	}

	name, err := imageName(book.ID, contentType)
	if err != nil {
		return domain.Book{}, err
	}

	asset, err := s.assets.Put(ctx, name, contentType, data)
	if err != nil {
		return domain.Book{}, fmt.Errorf("storing image: %w", err)
	}

	previous := book.ImageKey
	book.ImageKey = asset.Key
	book.ImageURL = asset.URL
	book.UpdatedAt = time.Now().UTC()

	if err := s.books.SwapBookImage(ctx, book, previous); err != nil {
		s.discardAsset(ctx, asset.Key)
		return domain.Book{}, fmt.Errorf("recording image: %w", err)
	}

	s.discardAsset(ctx, previous)
	return book, nil
}

// discardAsset deletes a stored asset, logging instead of failing.
func (s *CatalogService) discardAsset(ctx context.Context, key string) {
	if key == "" {
		return
	}
	if err := s.assets.Delete(ctx, key); err != nil {
		slog.WarnContext(ctx, "deleting stored image failed", "key", key, "error", err)
	}
}

func validateImage(contentType string, data []byte) error {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil || !strings.HasPrefix(mediaType, "image/") {
		return &domain.ValidationError{Field: "image", Reason: "content type must be an image"}
	}
	if len(data) == 0 {
		return &domain.ValidationError{Field: "image", Reason: "must not be empty"}
	}
	if len(data) > MaxImageBytes {
		return &domain.ValidationError{Field: "image", Reason: fmt.Sprintf("must be at most %d bytes", MaxImageBytes)}
	}
	return nil
}

func imageName(bookID, contentType string) (string, error) {
	id, err := generateID()
	if err != nil {
		return "", fmt.Errorf("generating image id: %w", err)
	}
	name := "books/" + bookID + "/" + id
	mediaType, _, _ := mime.ParseMediaType(contentType)
	if exts, _ := mime.ExtensionsByType(mediaType); len(exts) > 0 {
		name += exts[0]
	}
	return name, nil
}
