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

// handlerRecord is a (payload, parameter plan) pair stored on a node under a
// method. A nil Plan means the record's pattern is purely static at this
// node.
type handlerRecord[T comparable] struct {
	payload T
	plan    Plan
}

// hasOptionalLastElement is the optional-last-element test (§4.5): true
// when the record's plan is present, non-empty, and its last directive is
// marked optional.
func (r handlerRecord[T]) hasOptionalLastElement() bool {
	return r.plan.lastOptional()
}

// anyOptionalLastElement reports whether any record in recs passes the
// optional-last-element test. §4.4/§4.7 gate the param-child fallthrough on
// "one of its handler records has an optional last directive", not
// specifically the first — a node/method can hold a mix of optional and
// non-optional records side by side.
func anyOptionalLastElement[T comparable](recs []handlerRecord[T]) bool {
	for _, r := range recs {
		if r.hasOptionalLastElement() {
			return true
		}
	}
	return false
}

// node is one node of the trie. It has three child kinds — a literal
// segment map, at most one parameter child, at most one wildcard child —
// and a mapping from method string to an ordered list of handler records.
// Nodes are exclusively owned by their parent; the root is owned by Tree.
// There are no back-references.
type node[T comparable] struct {
	methods        map[string][]handlerRecord[T]
	staticChildren map[string]*node[T]
	paramChild     *node[T]
	wildcardChild  *node[T]
}

// isEmpty reports whether n has no handler records and no children, i.e.
// whether it's unreachable and must be pruned (invariant 1).
func (n *node[T]) isEmpty() bool {
	return len(n.methods) == 0 && len(n.staticChildren) == 0 && n.paramChild == nil && n.wildcardChild == nil
}

// methodRecords returns the handler record list preferred for method,
// falling back to the any-method ("") entry. The empty method string
// denotes an any-method fallback handler (invariant 5); a specific method is
// always preferred over it.
func (n *node[T]) methodRecords(method string) ([]handlerRecord[T], bool) {
	if recs, ok := n.methods[method]; ok && len(recs) > 0 {
		return recs, true
	}
	if method != "" {
		if recs, ok := n.methods[""]; ok && len(recs) > 0 {
			return recs, true
		}
	}
	return nil, false
}

// appendRecord appends rec to methods[method] in insertion order. Repeated
// inserts of the same method/pattern accumulate records rather than
// overwrite.
func (n *node[T]) appendRecord(method string, rec handlerRecord[T]) {
	if n.methods == nil {
		n.methods = make(map[string][]handlerRecord[T])
	}
	n.methods[method] = append(n.methods[method], rec)
}

// insertPath walks/creates the child chain for elements and returns the
// terminal node. On reaching a wildcard element the descent terminates
// immediately — no further elements are walked — matching the wildcard's
// must-be-last contract enforced by the pattern analyzer.
func (n *node[T]) insertPath(elements []PatternElement) *node[T] {
	cur := n

	for _, el := range elements {
		switch el.Kind {
		case elemLiteral:
			child, ok := cur.staticChildren[el.Literal]
			if !ok {
				if cur.staticChildren == nil {
					cur.staticChildren = make(map[string]*node[T])
				}
				child = &node[T]{}
				cur.staticChildren[el.Literal] = child
			}
			cur = child

		case elemParam:
			if cur.paramChild == nil {
				cur.paramChild = &node[T]{}
			}
			cur = cur.paramChild

		case elemWildcard:
			if cur.wildcardChild == nil {
				cur.wildcardChild = &node[T]{}
			}
			return cur.wildcardChild
		}
	}

	return cur
}

// removePath descends along the elements-directed path, clears methods[method]
// at the terminal node, then prunes any child that becomes empty on the way
// back up. It reports whether anything was changed.
func (n *node[T]) removePath(elements []PatternElement, method string) bool {
	if len(elements) == 0 {
		return n.clearMethod(method)
	}

	el := elements[0]
	switch el.Kind {
	case elemLiteral:
		child, ok := n.staticChildren[el.Literal]
		if !ok {
			return false
		}
		changed := child.removePath(elements[1:], method)
		if changed && child.isEmpty() {
			delete(n.staticChildren, el.Literal)
		}
		return changed

	case elemParam:
		if n.paramChild == nil {
			return false
		}
		changed := n.paramChild.removePath(elements[1:], method)
		if changed && n.paramChild.isEmpty() {
			n.paramChild = nil
		}
		return changed

	case elemWildcard:
		if n.wildcardChild == nil {
			return false
		}
		changed := n.wildcardChild.clearMethod(method)
		if changed && n.wildcardChild.isEmpty() {
			n.wildcardChild = nil
		}
		return changed
	}

	return false
}

// clearMethod deletes methods[method] entirely, reporting whether it existed.
func (n *node[T]) clearMethod(method string) bool {
	if _, ok := n.methods[method]; !ok {
		return false
	}
	delete(n.methods, method)
	return true
}

// findOne is the single-best-match matcher (§4.4). At the terminal case
// (i == len(segments)) it tries, in order: this node's own methods, an
// optional-last-element param child, then a wildcard child. In the
// recursive case it tries static, then param, then wildcard — backtracking
// to the next priority whenever a branch's subtree yields no match, so that
// a dead-end static descent doesn't shadow a viable param/wildcard match.
func (n *node[T]) findOne(segments []string, i int, method string) (handlerRecord[T], bool) {
	if i == len(segments) {
		if recs, ok := n.methodRecords(method); ok {
			return recs[0], true
		}
		if n.paramChild != nil {
			if recs, ok := n.paramChild.methodRecords(method); ok && anyOptionalLastElement(recs) {
				return recs[0], true
			}
		}
		if n.wildcardChild != nil {
			if recs, ok := n.wildcardChild.methodRecords(method); ok {
				return recs[0], true
			}
		}
		return handlerRecord[T]{}, false
	}

	seg := segments[i]

	if child, ok := n.staticChildren[seg]; ok {
		if rec, ok := child.findOne(segments, i+1, method); ok {
			return rec, true
		}
	}

	if n.paramChild != nil {
		if rec, ok := n.paramChild.findOne(segments, i+1, method); ok {
			return rec, true
		}
	}

	if n.wildcardChild != nil {
		if recs, ok := n.wildcardChild.methodRecords(method); ok {
			return recs[0], true
		}
	}

	return handlerRecord[T]{}, false
}

// findAll is the all-matches traversal (§4.7). It accumulates into out every
// handler record reachable by a path-consistent match, in the traversal
// order the spec prescribes: wildcard child first, then param child, then
// static child, then (at path exhaustion) this node's own methods.
// De-duplication by payload happens once at the Tree level, after the full
// walk.
func (n *node[T]) findAll(segments []string, i int, method string, out *[]handlerRecord[T]) {
	if n.wildcardChild != nil {
		if recs, ok := n.wildcardChild.methodRecords(method); ok {
			*out = append(*out, recs...)
		}
	}

	if n.paramChild != nil {
		if i < len(segments) {
			n.paramChild.findAll(segments, i+1, method, out)
		} else if recs, ok := n.paramChild.methodRecords(method); ok && anyOptionalLastElement(recs) {
			*out = append(*out, recs...)
		}
	}

	if i < len(segments) {
		if child, ok := n.staticChildren[segments[i]]; ok {
			child.findAll(segments, i+1, method, out)
		}
	}

	if i == len(segments) {
		if recs, ok := n.methodRecords(method); ok {
			*out = append(*out, recs...)
		}
	}
}

// countTerminals counts nodes with at least one method entry — distinct
// static+dynamic terminal patterns, for Tree.Len.
func countTerminals[T comparable](n *node[T]) int {
	count := 0
	if len(n.methods) > 0 {
		count++
	}
	for _, child := range n.staticChildren {
		count += countTerminals(child)
	}
	if n.paramChild != nil {
		count += countTerminals(n.paramChild)
	}
	if n.wildcardChild != nil {
		count += countTerminals(n.wildcardChild)
	}
	return count
}

// statsWalk counts total nodes and the maximum depth below n (n itself at
// depth), for Tree.Stats.
func statsWalk[T comparable](n *node[T], depth int) (count, maxDepth int) {
	count = 1
	maxDepth = depth

	for _, child := range n.staticChildren {
		c, d := statsWalk(child, depth+1)
		count += c
		if d > maxDepth {
			maxDepth = d
		}
	}
	if n.paramChild != nil {
		c, d := statsWalk(n.paramChild, depth+1)
		count += c
		if d > maxDepth {
			maxDepth = d
		}
	}
	if n.wildcardChild != nil {
		c, d := statsWalk(n.wildcardChild, depth+1)
		count += c
		if d > maxDepth {
			maxDepth = d
		}
	}

	return count, maxDepth
}
