package otel

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/neomorfeo/bookmart/internal/domain"
)

// OrderEventsMetric counts order events handed to the publisher.
const OrderEventsMetric = "bookmart.order.events"

// TracingPublisher wraps a domain.EventPublisher with a span per event and
// an event counter labelled by event and outcome.
type TracingPublisher struct {
	next   domain.EventPublisher
	tracer trace.Tracer
	events metric.Int64Counter
}

// Compile-time check: TracingPublisher implements domain.EventPublisher.
var _ domain.EventPublisher = (*TracingPublisher)(nil)

// NewTracingPublisher creates a decorator around the given publisher using
// the global tracer and meter providers.
func NewTracingPublisher(next domain.EventPublisher) (*TracingPublisher, error) {
	events, err := otel.Meter(instrumentationName).Int64Counter(OrderEventsMetric,
		metric.WithDescription("Order lifecycle events published"),
		metric.WithUnit("{event}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", OrderEventsMetric, err)
	}

	return &TracingPublisher{
		next:   next,
		tracer: otel.Tracer(instrumentationName),
		events: events,
	}, nil
}

func (p *TracingPublisher) Publish(ctx context.Context, event domain.Event, order domain.Order) error {
	ctx, span := p.tracer.Start(ctx, "EventPublisher.Publish",
		trace.WithAttributes(
			attribute.String("event.type", string(event)),
			attribute.String("order.id", order.ID),
			attribute.String("order.status", string(order.Status)),
		),
	)

	err := p.next.Publish(ctx, event, order)

	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	p.events.Add(ctx, 1, metric.WithAttributes(
		attribute.String("event.type", string(event)),
		attribute.String("outcome", outcome),
	))

	finish(span, err)
	return err
}
