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

// Params holds the segment and wildcard bindings produced by extracting a
// matched pattern's parameter plan against a request path. Key ordering is
// not observable and is not guaranteed.
type Params map[string]string

// Get returns the value bound to name and whether it was present.
func (p Params) Get(name string) (string, bool) {
	v, ok := p[name]
	return v, ok
}

// Match is one surviving record from an all-matches lookup.
type Match[T comparable] struct {
	Payload T
	Params  Params
}
