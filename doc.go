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

// Package pathtrie implements the core of a URL-path router: a trie that
// maps a (method, path) pair to a generic payload through a compiled set of
// path patterns.
//
// # Key Features
//
//   - Literal, single-segment parameter (:name, *), and multi-segment
//     wildcard (**:name, **) pattern elements, plus optional trailing
//     elements (a trailing "?" on the last segment)
//   - Priority-ordered matching: static > parameter > wildcard
//   - A bloom-filter-accelerated static fast path for purely literal patterns
//   - Deterministic, de-duplicated all-matches enumeration
//   - OpenTelemetry tracing and metrics around every operation, no-op by
//     default
//
// # Constructor Pattern
//
// New returns *Tree[T] directly (no error) because construction cannot
// fail: it allocates memory and applies options, with no I/O or external
// resources involved. Options that need validation (e.g. bloom filter
// sizing) clamp to a sane range rather than reject.
//
// # Quick Start
//
//	package main
//
//	import "github.com/coriolis-dev/pathtrie"
//
//	func main() {
//	    t := pathtrie.New[string]()
//
//	    _ = t.Insert("GET", "/users/:id", "get-user")
//	    _ = t.Insert("GET", "/users/:id/posts/**:rest", "get-user-posts")
//
//	    payload, params, err := t.FindOne("GET", "/users/42", true)
//	    if err != nil {
//	        panic(err)
//	    }
//	    _ = payload
//	    _ = params["id"] // "42"
//	}
//
// # Observability
//
//	t := pathtrie.New[string](
//	    pathtrie.WithTracer[string](tracer),
//	    pathtrie.WithMeter[string](meter),
//	    pathtrie.WithDiagnostics[string](pathtrie.DiagnosticHandlerFunc(func(e pathtrie.DiagnosticEvent) {
//	        slog.Warn(e.Message, "kind", e.Kind, "fields", e.Fields)
//	    })),
//	)
package pathtrie
