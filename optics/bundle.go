package optics

import (
	"context"
	"errors"
	"runtime"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
)

// Bundle is a fan of parallel rays whose heights evenly span [-HalfWidth, HalfWidth]
type Bundle struct {
	HalfWidth float64
	Rays      int
}

// Offsets returns the initial height of each ray. A bundle of one ray is on the axis.
func (b Bundle) Offsets() ([]float64, error) {
	switch {
	case b.Rays <= 0:
		return nil, invalidf("bundle needs at least one ray, got %d", b.Rays)
	case b.HalfWidth < 0 || !finite(b.HalfWidth):
		return nil, invalidf("bundle half width must be non-negative, got %g", b.HalfWidth)
	case b.Rays == 1:
		return []float64{0}, nil
	}
	return floats.Span(make([]float64, b.Rays), -b.HalfWidth, b.HalfWidth), nil
}

// Result is the outcome of tracing one ray of a bundle. Trace holds every state recorded before
// Err, if any.
type Result[T any] struct {
	Offset float64
	Trace  T
	Err    error
}

// Ok reports whether the ray went through every element
func (r Result[T]) Ok() bool {
	return r.Err == nil
}

// TraceBundle traces every ray of the bundle through elements. start builds the initial ray
// for a height.
//
// Rays are traced by up to workers goroutines (runtime.NumCPU() when workers <= 0), each with
// its own propagator. A ray that fails does not stop the others. Results are in offset order.
// The returned error is only set when ctx is done or the bundle itself is invalid.
func TraceBundle(ctx context.Context, b Bundle, start func(y float64) InitialRay, params Params, elements []Element, workers int) ([]Result[Trace], error) {
	return traceBundle(ctx, b, workers, func(y float64) (Trace, error) {
		p, err := NewPropagator(start(y), params)
		if err != nil {
			return nil, err
		}
		err = p.Run(elements)
		return p.History(), atOffset(err, y)
	})
}

// TraceAngleBundle is TraceBundle for angle-form elements
func TraceAngleBundle(ctx context.Context, b Bundle, start func(y float64) AngleState, params AngleParams, elements []AngleElement, workers int) ([]Result[AngleTrace], error) {
	return traceBundle(ctx, b, workers, func(y float64) (AngleTrace, error) {
		t, err := NewAngleTracer(start(y), params)
		if err != nil {
			return nil, err
		}
		err = t.Run(elements)
		return t.History(), atOffset(err, y)
	})
}

// atOffset labels a *TraceError with the bundle offset of its ray so it matches Result.Offset
func atOffset(err error, offset float64) error {
	var traceErr *TraceError
	if errors.As(err, &traceErr) {
		traceErr.Ray = offset
	}
	return err
}

func traceBundle[T any](ctx context.Context, b Bundle, workers int, trace func(y float64) (T, error)) ([]Result[T], error) {
	offsets, err := b.Offsets()
	if err != nil {
		return nil, err
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	results := make([]Result[T], len(offsets))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, y := range offsets {
		if gctx.Err() != nil {
			break
		}
		i, y := i, y
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			t, err := trace(y)
			results[i] = Result[T]{Offset: y, Trace: t, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
