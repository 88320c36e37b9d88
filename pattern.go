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
	"strings"
)

// normalize collapses a raw path into its canonical segment list: empty
// segments (leading, trailing, or from consecutive separators) are dropped
// everywhere. The canonical form of "", "/", and "///" is the empty list.
// normalize is idempotent: joining and re-normalizing its own output is a
// no-op.
func normalize(path string) []string {
	if path == "" {
		return nil
	}

	raw := strings.Split(path, "/")
	segments := make([]string, 0, len(raw))
	for _, s := range raw {
		if s == "" {
			continue
		}
		segments = append(segments, s)
	}

	return segments
}

// elementKind distinguishes the three closed pattern-element variants. The
// set is closed, so it's modeled as a tag on a single struct rather than an
// interface with three implementations.
type elementKind uint8

const (
	elemLiteral elementKind = iota
	elemParam
	elemWildcard
)

// PatternElement is one segment of an analyzed pattern.
type PatternElement struct {
	Kind     elementKind
	Literal  string // set when Kind == elemLiteral
	Name     string // set when Kind == elemParam or elemWildcard
	Optional bool
}

// DirectiveKind distinguishes the two dynamic directive variants that make
// up a parameter plan.
type DirectiveKind uint8

const (
	DirectiveParam DirectiveKind = iota
	DirectiveWildcard
)

// Directive is one extraction instruction in a parameter plan: a
// (segment_index, name, optional) for a parameter, or a
// (start_index, name, optional) for a wildcard.
type Directive struct {
	Kind     DirectiveKind
	Index    int
	Name     string
	Optional bool
}

// Plan is the ordered list of extraction directives for a pattern's dynamic
// elements. A purely static pattern has a nil Plan.
type Plan []Directive

// lastOptional reports whether the plan's last directive is marked
// optional; this is the optional-last-element test from §4.5, used to gate
// the terminal-case fallthrough to param/wildcard children.
func (p Plan) lastOptional() bool {
	if len(p) == 0 {
		return false
	}
	return p[len(p)-1].Optional
}

// analyzePattern parses a pattern's canonical segment list into a node-path
// (elements, used to walk the trie) and a parameter plan (the dynamic
// extraction directives). hadMidOptional reports whether a trailing "?" was
// seen on a non-last segment — accepted, per existing behavior, but
// reported so callers can surface it as a diagnostic.
func analyzePattern(segments []string) (elements []PatternElement, plan Plan, hadMidOptional bool, err error) {
	elements = make([]PatternElement, 0, len(segments))

	for i, seg := range segments {
		isLast := i == len(segments)-1

		body, optional := stripOptionalMarker(seg)
		if optional && !isLast {
			hadMidOptional = true
		}

		el, classifyErr := classifySegment(body, optional, isLast)
		if classifyErr != nil {
			return nil, nil, hadMidOptional, &InvalidSegmentError{Segment: seg, Reason: classifyErr.Error()}
		}

		elements = append(elements, el)

		switch el.Kind {
		case elemParam:
			plan = append(plan, Directive{Kind: DirectiveParam, Index: i, Name: el.Name, Optional: el.Optional})
		case elemWildcard:
			plan = append(plan, Directive{Kind: DirectiveWildcard, Index: i, Name: el.Name, Optional: el.Optional})
		}
	}

	return elements, plan, hadMidOptional, nil
}

// stripOptionalMarker removes a trailing "?" from a segment, reporting
// whether one was present.
func stripOptionalMarker(seg string) (string, bool) {
	if strings.HasSuffix(seg, "?") {
		return seg[:len(seg)-1], true
	}
	return seg, false
}

// classifySegment recognizes a single (marker-stripped) segment body per the
// analyzer's recognition rules, applied in order.
func classifySegment(body string, optional, isLast bool) (PatternElement, error) {
	if strings.HasPrefix(body, "**") {
		rest := body[2:]

		if rest == "" {
			if !isLast {
				return PatternElement{}, errors.New("wildcard must be last")
			}
			return PatternElement{Kind: elemWildcard, Name: "_", Optional: optional}, nil
		}

		if strings.HasPrefix(rest, ":") {
			name := rest[1:]
			if name == "" {
				return PatternElement{}, errors.New("named wildcard must have a name")
			}
			if !isLast {
				return PatternElement{}, errors.New("wildcard must be last")
			}
			return PatternElement{Kind: elemWildcard, Name: name, Optional: optional}, nil
		}

		return PatternElement{}, errors.New("invalid wildcard format")
	}

	if strings.HasPrefix(body, ":") {
		name := body[1:]
		if name == "" {
			return PatternElement{}, errors.New("named parameter must have a name")
		}
		return PatternElement{Kind: elemParam, Name: name, Optional: optional}, nil
	}

	if body == "*" {
		return PatternElement{Kind: elemParam, Name: "_", Optional: optional}, nil
	}

	if idx := strings.IndexAny(body, ":*"); idx >= 0 {
		return PatternElement{}, errors.New("parameter/wildcard characters must appear at the start")
	}

	return PatternElement{Kind: elemLiteral, Literal: body}, nil
}

// extractParams binds plan directives against segments. A Param directive
// whose index falls outside segments is skipped (this only happens when the
// directive is the optional last element of a match). A Wildcard directive
// always binds, to the joined suffix or to "" when no suffix remains. nil is
// returned if no bindings were produced.
func extractParams(segments []string, plan Plan) Params {
	if len(plan) == 0 {
		return nil
	}

	var params Params
	for _, d := range plan {
		switch d.Kind {
		case DirectiveParam:
			if d.Index < len(segments) {
				if params == nil {
					params = make(Params, len(plan))
				}
				params[d.Name] = segments[d.Index]
			}
		case DirectiveWildcard:
			if params == nil {
				params = make(Params, len(plan))
			}
			if d.Index < len(segments) {
				params[d.Name] = strings.Join(segments[d.Index:], "/")
			} else {
				params[d.Name] = ""
			}
		}
	}

	return params
}
