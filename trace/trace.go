// Package trace wraps Playables and Resolvers so that every interaction is
// traced with open telemetry.
package trace

import (
	"context"

	pl "github.com/regionplay/go-playable"
	"github.com/regionplay/go-playable/adapter"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	otel "go.opentelemetry.io/otel/trace"
)

// New returns a new traced Playable.
func New(p pl.Playable, tracer otel.Tracer) *Playable {
	return &Playable{p: p, tracer: tracer}
}

// Playable is an adapter that traces inner Play calls.
type Playable struct {
	p      pl.Playable
	tracer otel.Tracer
}

var _ pl.Shim = (*Playable)(nil)

// Play implements the pl.Playable interface.
func (t *Playable) Play(ctx context.Context) (pl.Output, error) {
	ctx, span := t.tracer.Start(ctx, "Play", otel.WithAttributes(originAttributes(t.p)...))
	defer span.End()

	out, err := t.p.Play(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return out, err
	}
	span.SetAttributes(attribute.String("state", out.State))
	return out, nil
}

// Children implements pl.Shim
func (t *Playable) Children() []pl.Playable {
	return []pl.Playable{t.p}
}

// NewResolver returns a Resolver that traces resolution and traces every
// Playable it hands out.
func NewResolver(r pl.Resolver, tracer otel.Tracer) *Resolver {
	return &Resolver{r: r, tracer: tracer}
}

// Resolver is an adapter that traces inner Resolve calls.
type Resolver struct {
	r      pl.Resolver
	tracer otel.Tracer
}

var _ pl.Resolver = (*Resolver)(nil)

// Resolve implements the pl.Resolver interface.
func (t *Resolver) Resolve(ctx context.Context, a pl.Adaptee) (pl.Playable, error) {
	var attrs []attribute.KeyValue
	if !pl.IsNil(a) {
		attrs = adapteeAttributes(a)
	}
	ctx, span := t.tracer.Start(ctx, "Resolve", otel.WithAttributes(attrs...))
	defer span.End()

	p, err := t.r.Resolve(ctx, a)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if id, ok := adapter.IDOf(p); ok {
		span.SetAttributes(attribute.String("adapter.id", id.String()))
	}
	return New(p, t.tracer), nil
}

func adapteeAttributes(a pl.Adaptee) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("title", a.Title().Name()),
		attribute.String("variant", a.Variant().String()),
	}
}

func originAttributes(p pl.Playable) []attribute.KeyValue {
	var attrs []attribute.KeyValue
	if a, ok := pl.Origin(p); ok && !pl.IsNil(a) {
		attrs = adapteeAttributes(a)
	}
	if id, ok := adapter.IDOf(p); ok {
		attrs = append(attrs, attribute.String("adapter.id", id.String()))
	}
	return attrs
}
