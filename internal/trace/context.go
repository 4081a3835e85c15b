package trace

import "context"

// binding is what a context carries for tracing: the tracer and the span
// new spans should nest under.
type binding struct {
	tracer Tracer
	span   uint64
}

type bindingKey struct{}

func bound(ctx context.Context) binding {
	if ctx == nil {
		return binding{tracer: Nop}
	}
	b, ok := ctx.Value(bindingKey{}).(binding)
	if !ok || b.tracer == nil {
		b.tracer = Nop
	}
	return b
}

func bind(ctx context.Context, b binding) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, bindingKey{}, b)
}

// FromContext returns the tracer bound to ctx, or Nop.
func FromContext(ctx context.Context) Tracer {
	return bound(ctx).tracer
}

// WithTracer binds t to ctx. The enclosing span, if any, is kept.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	b := bound(ctx)
	b.tracer = t
	if t == nil {
		b.tracer = Nop
	}
	return bind(ctx, b)
}

// SpanContext names the span that nested work reports under.
type SpanContext struct {
	SpanID uint64
}

// CurrentSpan returns the enclosing span of ctx; zero at the top level.
func CurrentSpan(ctx context.Context) SpanContext {
	return SpanContext{SpanID: bound(ctx).span}
}

// WithSpanContext nests later spans under sc. The bound tracer is kept.
func WithSpanContext(ctx context.Context, sc SpanContext) context.Context {
	b := bound(ctx)
	b.span = sc.SpanID
	return bind(ctx, b)
}
