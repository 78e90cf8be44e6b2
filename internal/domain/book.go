package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Book is a listing offered for sale by a seller.
type Book struct {
	ID          string
	SellerID    string
	Title       string
	Author      string
	Description string
	Category    string
	Price       decimal.Decimal
	Published   bool
	ImageURL    string
	ImageKey    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// BookDetails holds the seller-editable fields of a listing.
type BookDetails struct {
	Title       string
	Author      string
	Description string
	Category    string
	Price       decimal.Decimal
	Published   bool
}

// BookPatch holds optional changes to a listing. Nil fields are left untouched.
type BookPatch struct {
	Title       *string
	Author      *string
	Description *string
	Category    *string
	Price       *decimal.Decimal
	Published   *bool
}

// NewBook creates a listing owned by sellerID. The price is rounded to cents.
func NewBook(id, sellerID string, d BookDetails) Book {
	now := time.Now().UTC()
	return Book{
		ID:          id,
		SellerID:    sellerID,
		Title:       d.Title,
		Author:      d.Author,
		Description: d.Description,
		Category:    d.Category,
		Price:       d.Price.Round(2),
		Published:   d.Published,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Validate checks the required listing fields.
func (d BookDetails) Validate() error {
	switch {
	case strings.TrimSpace(d.Title) == "":
		return &ValidationError{Field: "title", Reason: "must not be empty"}
	case strings.TrimSpace(d.Author) == "":
		return &ValidationError{Field: "author", Reason: "must not be empty"}
	case strings.TrimSpace(d.Category) == "":
		return &ValidationError{Field: "category", Reason: "must not be empty"}
	case d.Price.IsNegative():
		return &ValidationError{Field: "price", Reason: "must not be negative"}
	}
	return nil
}

// Apply returns b with the patch applied.
func (p BookPatch) Apply(b Book) Book {
	if p.Title != nil {
		b.Title = *p.Title
	}
	if p.Author != nil {
		b.Author = *p.Author
	}
	if p.Description != nil {
		b.Description = *p.Description
	}
	if p.Category != nil {
		b.Category = *p.Category
	}
	if p.Price != nil {
		b.Price = p.Price.Round(2)
	}
	if p.Published != nil {
		b.Published = *p.Published
	}
	return b
}

// Details extracts the editable fields of b.
func (b Book) Details() BookDetails {
	return BookDetails{
		Title:       b.Title,
		Author:      b.Author,
		Description: b.Description,
		Category:    b.Category,
		Price:       b.Price,
		Published:   b.Published,
	}
}
