package http

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/shopspring/decimal"

	"github.com/neomorfeo/bookmart/internal/app"
	"github.com/neomorfeo/bookmart/internal/domain"
)

// --- Create ---

type CreateBookInput struct {
	Body struct {
		Title       string  `json:"title" maxLength:"255" doc:"Book title"`
		Author      string  `json:"author" maxLength:"255"`
		Description string  `json:"description,omitempty"`
		Category    string  `json:"category" maxLength:"100"`
		Price       float64 `json:"price" minimum:"0" doc:"Price, rounded to cents" example:"9.99"`
		Published   *bool   `json:"published,omitempty" doc:"Visible in the public catalog (default true)"`
	}
}

type BookOutput struct {
	Body BookResponse
}

// --- Get / Delete ---

type BookIDInput struct {
	ID string `path:"id" doc:"Book ID"`
}

// --- List ---

type ListBooksInput struct {
	Category string `query:"category" doc:"Only books in this category"`
}

type BookListOutput struct {
	Body []BookResponse
}

// --- Update ---

type UpdateBookInput struct {
	ID   string `path:"id" doc:"Book ID"`
	Body struct {
		Title       *string  `json:"title,omitempty" maxLength:"255"`
		Author      *string  `json:"author,omitempty" maxLength:"255"`
		Description *string  `json:"description,omitempty"`
		Category    *string  `json:"category,omitempty" maxLength:"100"`
		Price       *float64 `json:"price,omitempty" minimum:"0"`
		Published   *bool    `json:"published,omitempty"`
	}
}

// --- Image ---

type ReplaceImageInput struct {
	ID          string `path:"id" doc:"Book ID"`
	ContentType string `header:"Content-Type" doc:"Image media type, e.g. image/png"`
	RawBody     []byte
}

func registerBooks(api huma.API, d Deps) {
	huma.Register(api, huma.Operation{
		OperationID: "list-books",
		Method:      http.MethodGet,
		Path:        "/api/v1/books",
		Summary:     "List published books",
		Tags:        []string{"Books"},
	}, func(ctx context.Context, input *ListBooksInput) (*BookListOutput, error) {
		books, err := d.Catalog.List(ctx, input.Category)
		if err != nil {
			return nil, toHumaError(ctx, err)
		}
		return &BookListOutput{Body: toBookResponses(books)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-book",
		Method:      http.MethodGet,
		Path:        "/api/v1/books/{id}",
		Summary:     "Get a book",
		Tags:        []string{"Books"},
	}, func(ctx context.Context, input *BookIDInput) (*BookOutput, error) {
		book, err := d.Catalog.Get(ctx, input.ID)
		if err != nil {
			return nil, toHumaError(ctx, err)
		}
		return &BookOutput{Body: toBookResponse(book)}, nil
	})

	sellerOnly, sellerSecurity := guard(api, d, domain.RoleSeller)

	huma.Register(api, huma.Operation{
		OperationID:   "create-book",
		Method:        http.MethodPost,
		Path:          "/api/v1/books",
		Summary:       "Create a listing",
		Tags:          []string{"Books"},
		DefaultStatus: http.StatusCreated,
		Middlewares:   sellerOnly,
		Security:      sellerSecurity,
	}, func(ctx context.Context, input *CreateBookInput) (*BookOutput, error) {
		identity, err := mustIdentity(ctx)
		if err != nil {
			return nil, toHumaError(ctx, err)
		}

		published := true
		if input.Body.Published != nil {
			published = *input.Body.Published
		}
		book, err := d.Catalog.Create(ctx, identity.ID, domain.BookDetails{
			Title:       input.Body.Title,
			Author:      input.Body.Author,
			Description: input.Body.Description,
			Category:    input.Body.Category,
			Price:       decimal.NewFromFloat(input.Body.Price),
			Published:   published,
		})
		if err != nil {
			return nil, toHumaError(ctx, err)
		}
		return &BookOutput{Body: toBookResponse(book)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "seller-books",
		Method:      http.MethodGet,
		Path:        "/api/v1/seller/books",
		Summary:     "List the caller's listings",
		Description: "Includes unpublished listings.",
		Tags:        []string{"Seller"},
		Middlewares: sellerOnly,
		Security:    sellerSecurity,
	}, func(ctx context.Context, _ *struct{}) (*BookListOutput, error) {
		identity, err := mustIdentity(ctx)
		if err != nil {
			return nil, toHumaError(ctx, err)
		}
		books, err := d.Catalog.ListBySeller(ctx, identity.ID)
		if err != nil {
			return nil, toHumaError(ctx, err)
		}
		return &BookListOutput{Body: toBookResponses(books)}, nil
	})

	// Ownership is checked per listing, so any authenticated caller may try.
	authed, authedSecurity := guard(api, d, "")

	huma.Register(api, huma.Operation{
		OperationID: "update-book",
		Method:      http.MethodPatch,
		Path:        "/api/v1/books/{id}",
		Summary:     "Update a listing",
		Tags:        []string{"Books"},
		Middlewares: authed,
		Security:    authedSecurity,
	}, func(ctx context.Context, input *UpdateBookInput) (*BookOutput, error) {
		identity, err := mustIdentity(ctx)
		if err != nil {
			return nil, toHumaError(ctx, err)
		}

		patch := domain.BookPatch{
			Title:       input.Body.Title,
			Author:      input.Body.Author,
			Description: input.Body.Description,
			Category:    input.Body.Category,
			Published:   input.Body.Published,
		}
		if input.Body.Price != nil {
			price := decimal.NewFromFloat(*input.Body.Price)
			patch.Price = &price
		}

		book, err := d.Catalog.Update(ctx, input.ID, identity.ID, patch)
		if err != nil {
			return nil, toHumaError(ctx, err)
		}
		return &BookOutput{Body: toBookResponse(book)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "delete-book",
		Method:        http.MethodDelete,
		Path:          "/api/v1/books/{id}",
		Summary:       "Delete a listing",
		Tags:          []string{"Books"},
		DefaultStatus: http.StatusNoContent,
		Middlewares:   authed,
		Security:      authedSecurity,
	}, func(ctx context.Context, input *BookIDInput) (*struct{}, error) {
		identity, err := mustIdentity(ctx)
		if err != nil {
			return nil, toHumaError(ctx, err)
		}
		if err := d.Catalog.Delete(ctx, input.ID, identity.ID); err != nil {
			return nil, toHumaError(ctx, err)
		}
		return nil, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:  "replace-book-image",
		Method:       http.MethodPut,
		Path:         "/api/v1/books/{id}/image",
		Summary:      "Replace the cover image",
		Description:  "The request body is the raw image.",
		Tags:         []string{"Books"},
		MaxBodyBytes: app.MaxImageBytes,
		Middlewares:  authed,
		Security:     authedSecurity,
	}, func(ctx context.Context, input *ReplaceImageInput) (*BookOutput, error) {
		identity, err := mustIdentity(ctx)
		if err != nil {
			return nil, toHumaError(ctx, err)
		}
		book, err := d.Catalog.ReplaceImage(ctx, input.ID, identity.ID, input.ContentType, input.RawBody)
		if err != nil {
			return nil, toHumaError(ctx, err)
		}
		return &BookOutput{Body: toBookResponse(book)}, nil
	})
}
