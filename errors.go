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
	"errors"
	"fmt"
)

// Static errors for errors.Is-style handling. These should be wrapped with
// %w when context (segment, method, path) is needed; see InvalidSegmentError,
// InvalidPathError, and RouteNotFoundError below for the structured form.
var (
	// ErrInvalidPath is reserved for future path-level rejections; the
	// analyzer currently only emits ErrInvalidSegment failures.
	ErrInvalidPath = errors.New("pathtrie: invalid path")

	// ErrInvalidSegment is returned when the pattern analyzer rejects a
	// segment (e.g. a wildcard that isn't the last element).
	ErrInvalidSegment = errors.New("pathtrie: invalid pattern segment")

	// ErrRouteNotFound is returned by FindOne when no handler record
	// matches the given method and path.
	ErrRouteNotFound = errors.New("pathtrie: route not found")
)

// InvalidPathError wraps ErrInvalidPath with a human-readable description.
type InvalidPathError struct {
	Description string
}

func (e *InvalidPathError) Error() string {
	return fmt.Sprintf("pathtrie: invalid path: %s", e.Description)
}

func (e *InvalidPathError) Unwrap() error { return ErrInvalidPath }

// InvalidSegmentError wraps ErrInvalidSegment with the offending segment and
// the reason it was rejected, per the pattern analyzer's recognition rules.
type InvalidSegmentError struct {
	Segment string
	Reason  string
}

func (e *InvalidSegmentError) Error() string {
	return fmt.Sprintf("pathtrie: invalid segment %q: %s", e.Segment, e.Reason)
}

func (e *InvalidSegmentError) Unwrap() error { return ErrInvalidSegment }

// RouteNotFoundError wraps ErrRouteNotFound with the method and the
// caller-supplied (un-normalized) path that failed to match.
type RouteNotFoundError struct {
	Method string
	Path   string
}

func (e *RouteNotFoundError) Error() string {
	return fmt.Sprintf("pathtrie: route not found: %s %s", e.Method, e.Path)
}

func (e *RouteNotFoundError) Unwrap() error { return ErrRouteNotFound }
