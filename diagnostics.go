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

// DiagnosticEvent represents a valid-but-interesting condition encountered
// during Insert. These are informational: the tree's behavior is unchanged
// whether diagnostics are collected or not.
type DiagnosticEvent struct {
	Kind    DiagnosticKind
	Message string
	Fields  map[string]any
}

// DiagnosticKind categorizes diagnostic events.
type DiagnosticKind string

const (
	// DiagRedundantRegistration fires when the same method/pattern is
	// inserted more than once (open question 1: later records accumulate
	// but only the first is ever reachable from FindOne).
	DiagRedundantRegistration DiagnosticKind = "redundant_registration"

	// DiagMidPatternOptionalMarker fires when a trailing "?" is seen on a
	// segment that isn't the last element of the pattern (open question 2:
	// the marker is accepted but has no effect on matching there).
	DiagMidPatternOptionalMarker DiagnosticKind = "mid_pattern_optional_marker"

	// DiagExcessiveDepth fires when a pattern's segment count exceeds the
	// configured WithMaxDepthWarning threshold. No hard cap is imposed;
	// this is visibility only.
	DiagExcessiveDepth DiagnosticKind = "excessive_trie_depth"
)

// DiagnosticHandler receives diagnostic events from a Tree. Implementations
// may log, emit metrics, trace events, or ignore them.
//
// This interface is optional: if not provided (see WithDiagnostics),
// diagnostics are silently dropped.
//
// Example with logging:
//
//	handler := pathtrie.DiagnosticHandlerFunc(func(e pathtrie.DiagnosticEvent) {
//	    slog.Warn(e.Message, "kind", e.Kind, "fields", e.Fields)
//	})
//	t := pathtrie.New[string](pathtrie.WithDiagnostics[string](handler))
type DiagnosticHandler interface {
	OnDiagnostic(DiagnosticEvent)
}

// DiagnosticHandlerFunc is a function adapter for DiagnosticHandler.
type DiagnosticHandlerFunc func(DiagnosticEvent)

func (f DiagnosticHandlerFunc) OnDiagnostic(e DiagnosticEvent) {
	f(e)
}

func (t *Tree[T]) emitDiagnostic(kind DiagnosticKind, message string, fields map[string]any) {
	if t.diagnostics == nil {
		return
	}
	t.diagnostics.OnDiagnostic(DiagnosticEvent{Kind: kind, Message: message, Fields: fields})
}
