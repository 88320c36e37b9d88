// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package pathtrie

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	noopmetric "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"
)

// instrumentationName identifies this package's spans and metric
// instruments to an OpenTelemetry backend.
const instrumentationName = "github.com/coriolis-dev/pathtrie"

func defaultTracer() trace.Tracer {
	return nooptrace.NewTracerProvider().Tracer(instrumentationName)
}

func defaultMeter() metric.Meter {
	return noopmetric.NewMeterProvider().Meter(instrumentationName)
}

// initInstruments creates the operation counter and latency histogram from
// t.meter. Errors from instrument creation (only possible with a
// misbehaving SDK) leave the instrument nil, which recordMetric treats as
// "don't record".
func (t *Tree[T]) initInstruments() {
	if counter, err := t.meter.Int64Counter(
		"pathtrie.operations",
		metric.WithDescription("Count of pathtrie operations by kind and result"),
	); err == nil {
		t.opCounter = counter
	}

	if hist, err := t.meter.Float64Histogram(
		"pathtrie.operation.duration",
		metric.WithDescription("Duration of pathtrie operations"),
		metric.WithUnit("ms"),
	); err == nil {
		t.opHistogram = hist
	}
}

// startSpan opens a span for one of the four trie operations, tagged with
// the method and segment count per §4.10.
func (t *Tree[T]) startSpan(ctx context.Context, name, method string, segmentCount int) (context.Context, trace.Span) {
	ctx, span := t.tracer.Start(ctx, name, trace.WithSpanKind(trace.SpanKindInternal))
	span.SetAttributes(
		attribute.String("pathtrie.method", method),
		attribute.Int("pathtrie.segment_count", segmentCount),
	)
	return ctx, span
}

// finishSpan tags the span with its result (ok/hit/miss/static_hit/error)
// and ends it.
func (t *Tree[T]) finishSpan(span trace.Span, result string, err error) {
	span.SetAttributes(attribute.String("pathtrie.result", result))
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// recordMetric increments the operation counter and records the latency
// histogram. Both are no-ops when no meter was configured, since the
// instruments are created against the no-op meter's no-op implementations.
func (t *Tree[T]) recordMetric(ctx context.Context, op, result string, elapsed time.Duration) {
	if t.opCounter != nil {
		t.opCounter.Add(ctx, 1, metric.WithAttributes(
			attribute.String("pathtrie.operation", op),
			attribute.String("pathtrie.result", result),
		))
	}
	if t.opHistogram != nil {
		t.opHistogram.Record(ctx, float64(elapsed.Microseconds())/1000, metric.WithAttributes(
			attribute.String("pathtrie.operation", op),
		))
	}
}
