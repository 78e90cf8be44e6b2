package otel

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/neomorfeo/bookmart/internal/domain"
)

const instrumentationName = "github.com/neomorfeo/bookmart/internal/adapter/otel"

// finish records err on span, if any, and ends it.
func finish(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// TracingOrderRepository wraps a domain.OrderRepository with OpenTelemetry tracing.
// Each method creates a span with order attributes and records errors.
type TracingOrderRepository struct {
	next   domain.OrderRepository
	tracer trace.Tracer
}

// Compile-time check: TracingOrderRepository implements domain.OrderRepository.
var _ domain.OrderRepository = (*TracingOrderRepository)(nil)

// NewTracingOrderRepository creates a tracing decorator around the given repository.
func NewTracingOrderRepository(next domain.OrderRepository) *TracingOrderRepository {
	return &TracingOrderRepository{
		next:   next,
		tracer: otel.Tracer(instrumentationName),
	}
}

func (r *TracingOrderRepository) CreateOrder(ctx context.Context, order domain.Order) error {
	ctx, span := r.tracer.Start(ctx, "OrderRepository.CreateOrder",
		trace.WithAttributes(
			attribute.String("order.id", order.ID),
			attribute.String("book.id", order.BookID),
		),
	)
	err := r.next.CreateOrder(ctx, order)
	finish(span, err)
	return err
}

func (r *TracingOrderRepository) GetOrderByID(ctx context.Context, id string) (domain.Order, error) {
	ctx, span := r.tracer.Start(ctx, "OrderRepository.GetOrderByID",
		trace.WithAttributes(attribute.String("order.id", id)),
	)
	order, err := r.next.GetOrderByID(ctx, id)
	if err == nil {
		span.SetAttributes(attribute.String("order.status", string(order.Status)))
	}
	finish(span, err)
	return order, err
}

func (r *TracingOrderRepository) ListOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	ctx, span := r.tracer.Start(ctx, "OrderRepository.ListOrders",
		trace.WithAttributes(
			attribute.Int("filter.limit", filter.Limit),
			attribute.Int("filter.offset", filter.Offset),
		),
	)
	if filter.Status != nil {
		span.SetAttributes(attribute.String("filter.status", string(*filter.Status)))
	}

	orders, err := r.next.ListOrders(ctx, filter)
	if err == nil {
		span.SetAttributes(attribute.Int("result.count", len(orders)))
	}
	finish(span, err)
	return orders, err
}

func (r *TracingOrderRepository) UpdateStatus(ctx context.Context, order domain.Order, expected domain.Status) error {
	ctx, span := r.tracer.Start(ctx, "OrderRepository.UpdateStatus",
		trace.WithAttributes(
			attribute.String("order.id", order.ID),
			attribute.String("order.status", string(order.Status)),
			attribute.String("order.expected_status", string(expected)),
		),
	)
	err := r.next.UpdateStatus(ctx, order, expected)
	finish(span, err)
	return err
}

func (r *TracingOrderRepository) SalesSummary(ctx context.Context, sellerID string) (domain.SalesSummary, error) {
	ctx, span := r.tracer.Start(ctx, "OrderRepository.SalesSummary",
		trace.WithAttributes(attribute.String("seller.id", sellerID)),
	)
	summary, err := r.next.SalesSummary(ctx, sellerID)
	finish(span, err)
	return summary, err
}

// TracingBookRepository wraps a domain.BookRepository with OpenTelemetry tracing.
type TracingBookRepository struct {
	next   domain.BookRepository
	tracer trace.Tracer
}

var _ domain.BookRepository = (*TracingBookRepository)(nil)

// NewTracingBookRepository creates a tracing decorator around the given repository.
func NewTracingBookRepository(next domain.BookRepository) *TracingBookRepository {
	return &TracingBookRepository{
		next:   next,
		tracer: otel.Tracer(instrumentationName),
	}
}

func (r *TracingBookRepository) CreateBook(ctx context.Context, book domain.Book) error {
	ctx, span := r.tracer.Start(ctx, "BookRepository.CreateBook",
		trace.WithAttributes(
			attribute.String("book.id", book.ID),
			attribute.String("seller.id", book.SellerID),
		),
	)
	err := r.next.CreateBook(ctx, book)
	finish(span, err)
	return err
}

func (r *TracingBookRepository) GetBookByID(ctx context.Context, id string) (domain.Book, error) {
	ctx, span := r.tracer.Start(ctx, "BookRepository.GetBookByID",
		trace.WithAttributes(attribute.String("book.id", id)),
	)
	book, err := r.next.GetBookByID(ctx, id)
	finish(span, err)
	return book, err
}

func (r *TracingBookRepository) ListBooks(ctx context.Context, filter domain.BookFilter) ([]domain.Book, error) {
	ctx, span := r.tracer.Start(ctx, "BookRepository.ListBooks",
		trace.WithAttributes(
			attribute.String("filter.category", filter.Category),
			attribute.Bool("filter.published_only", filter.PublishedOnly),
		),
	)
	books, err := r.next.ListBooks(ctx, filter)
	if err == nil {
		span.SetAttributes(attribute.Int("result.count", len(books)))
	}
	finish(span, err)
	return books, err
}

func (r *TracingBookRepository) UpdateBook(ctx context.Context, book domain.Book) error {
	ctx, span := r.tracer.Start(ctx, "BookRepository.UpdateBook",
		trace.WithAttributes(attribute.String("book.id", book.ID)),
	)
	err := r.next.UpdateBook(ctx, book)
	finish(span, err)
	return err
}

func (r *TracingBookRepository) SwapBookImage(ctx context.Context, book domain.Book, previousKey string) error {
	ctx, span := r.tracer.Start(ctx, "BookRepository.SwapBookImage",
		trace.WithAttributes(
			attribute.String("book.id", book.ID),
			attribute.String("image.key", book.ImageKey),
		),
	)
	err := r.next.SwapBookImage(ctx, book, previousKey)
	finish(span, err)
	return err
}

func (r *TracingBookRepository) DeleteBook(ctx context.Context, id string) error {
	ctx, span := r.tracer.Start(ctx, "BookRepository.DeleteBook",
		trace.WithAttributes(attribute.String("book.id", id)),
	)
	err := r.next.DeleteBook(ctx, id)
	finish(span, err)
	return err
}
