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

package pathtrie_test

import (
	"context"
	"fmt"
	"os"

	promclient "github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/coriolis-dev/pathtrie"
)

// ExampleNew demonstrates basic construction, insertion, and lookup.
func ExampleNew() {
	tree := pathtrie.New[string]()

	_ = tree.Insert("GET", "/users/:id", "get-user")

	payload, params, err := tree.FindOne("GET", "/users/42", true)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Println(payload, params["id"])
	// Output: get-user 42
}

// ExampleWithMeter demonstrates wiring a Prometheus-backed meter into a
// Tree so operation counts and latencies are exported on a Prometheus
// registry alongside the rest of a service's metrics.
func ExampleWithMeter() {
	registry := promclient.NewRegistry()

	exporter, err := prometheus.New(prometheus.WithRegisterer(registry))
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	meterProvider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter))
	defer func() { _ = meterProvider.Shutdown(context.Background()) }()

	tree := pathtrie.New[string](pathtrie.WithMeter[string](meterProvider.Meter("pathtrie-example")))
	_ = tree.Insert("GET", "/users/:id", "get-user")

	_, _, _ = tree.FindOne("GET", "/users/7", false)

	fmt.Println(tree.Len())
	// Output: 1
}

// ExampleWithMeter_development demonstrates the lighter-weight stdout
// metric exporter, useful in development when a Prometheus scrape target
// isn't available. The exporter writes to stderr, so the metrics it flushes
// on shutdown stay apart from the program's own output.
func ExampleWithMeter_development() {
	exporter, err := stdoutmetric.New(stdoutmetric.WithoutTimestamps(), stdoutmetric.WithWriter(os.Stderr))
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	meterProvider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter)))
	defer func() { _ = meterProvider.Shutdown(context.Background()) }()

	tree := pathtrie.New[string](pathtrie.WithMeter[string](meterProvider.Meter("pathtrie-example")))
	_ = tree.Insert("GET", "/users/:id", "get-user")

	fmt.Println(tree.Len())
	// Output: 1
}

// ExampleWithTracer demonstrates wiring a stdout span exporter so every
// Insert/FindOne/FindAll/Remove call emits a trace span. The exporter writes
// to stderr, so the spans it flushes on shutdown stay apart from the
// program's own output.
func ExampleWithTracer() {
	exporter, err := stdouttrace.New(stdouttrace.WithPrettyPrint(), stdouttrace.WithWriter(os.Stderr))
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	tracerProvider := sdktrace.NewTracerProvider(sdktrace.WithBatcher(exporter))
	defer func() { _ = tracerProvider.Shutdown(context.Background()) }()

	tree := pathtrie.New[string](pathtrie.WithTracer[string](tracerProvider.Tracer("pathtrie-example")))
	_ = tree.Insert("GET", "/health", "health-check")

	fmt.Println(tree.Len())
	// Output: 1
}
