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
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTreeInsertFindOneStatic(t *testing.T) {
	t.Parallel()

	tr := New[string]()
	require.NoError(t, tr.Insert("GET", "/users/static", "static-handler"))

	payload, params, err := tr.FindOne("GET", "/users/static", true)
	require.NoError(t, err)
	assert.Equal(t, "static-handler", payload)
	assert.Nil(t, params)
}

func TestTreeInsertFindOneParam(t *testing.T) {
	t.Parallel()

	tr := New[string]()
	require.NoError(t, tr.Insert("GET", "/users/:id", "get-user"))

	payload, params, err := tr.FindOne("GET", "/users/42", true)
	require.NoError(t, err)
	assert.Equal(t, "get-user", payload)
	assert.Equal(t, "42", params["id"])
}

func TestTreeFindOneNotFound(t *testing.T) {
	t.Parallel()

	tr := New[string]()
	require.NoError(t, tr.Insert("GET", "/users/:id", "get-user"))

	_, _, err := tr.FindOne("GET", "/posts/1", false)
	require.Error(t, err)

	var notFound *RouteNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.ErrorIs(t, err, ErrRouteNotFound)
	assert.Equal(t, "GET", notFound.Method)
}

func TestTreeInsertInvalidPattern(t *testing.T) {
	t.Parallel()

	tr := New[string]()
	err := tr.Insert("GET", "/files/**/more", "bad")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidSegment)
}

func TestTreeFindAllDeduplicatesByPayload(t *testing.T) {
	t.Parallel()

	tr := New[string]()
	require.NoError(t, tr.Insert("GET", "/users/:id", "dup-handler"))
	require.NoError(t, tr.Insert("GET", "/users/:id", "dup-handler"))
	require.NoError(t, tr.Insert("GET", "/users/**:rest", "wildcard-handler"))

	matches := tr.FindAll("GET", "/users/42", false)
	require.Len(t, matches, 2)

	payloads := map[string]bool{}
	for _, m := range matches {
		payloads[m.Payload] = true
	}
	assert.True(t, payloads["dup-handler"])
	assert.True(t, payloads["wildcard-handler"])
}

func TestTreeFindAllEmptyIsNonNil(t *testing.T) {
	t.Parallel()

	tr := New[string]()
	matches := tr.FindAll("GET", "/nothing/here", false)
	assert.NotNil(t, matches)
	assert.Empty(t, matches)
}

func TestTreeRemoveStaticClearsBothIndexes(t *testing.T) {
	t.Parallel()

	tr := New[string]()
	require.NoError(t, tr.Insert("GET", "/users/static", "static-handler"))

	changed, err := tr.Remove("GET", "/users/static")
	require.NoError(t, err)
	assert.True(t, changed)

	_, _, err = tr.FindOne("GET", "/users/static", false)
	assert.Error(t, err)
}

func TestTreeRemoveLeavesShadowedDynamicRouteReachable(t *testing.T) {
	t.Parallel()

	tr := New[string]()
	require.NoError(t, tr.Insert("GET", "/users/:id", "param-handler"))
	require.NoError(t, tr.Insert("GET", "/users/42", "static-handler"))

	changed, err := tr.Remove("GET", "/users/42")
	require.NoError(t, err)
	assert.True(t, changed)

	payload, params, err := tr.FindOne("GET", "/users/42", true)
	require.NoError(t, err)
	assert.Equal(t, "param-handler", payload)
	assert.Equal(t, "42", params["id"])
}

func TestTreeRemoveMissingReturnsFalse(t *testing.T) {
	t.Parallel()

	tr := New[string]()
	changed, err := tr.Remove("GET", "/nope")
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestTreeLenCountsDistinctTerminals(t *testing.T) {
	t.Parallel()

	tr := New[string]()
	require.NoError(t, tr.Insert("GET", "/users/:id", "a"))
	require.NoError(t, tr.Insert("POST", "/users/:id", "b"))
	require.NoError(t, tr.Insert("GET", "/posts", "c"))

	assert.Equal(t, 2, tr.Len())
}

func TestTreeStats(t *testing.T) {
	t.Parallel()

	tr := New[string]()
	require.NoError(t, tr.Insert("GET", "/users/:id", "a"))
	require.NoError(t, tr.Insert("GET", "/posts/static", "b"))

	stats := tr.Stats()
	assert.Positive(t, stats.NodeCount)
	assert.Positive(t, stats.MaxDepth)
	assert.Equal(t, 1, stats.StaticCacheSize)
}

func TestTreeDiagnosticsRedundantRegistration(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	var events []DiagnosticEvent

	tr := New[string](WithDiagnostics[string](DiagnosticHandlerFunc(func(e DiagnosticEvent) {
		mu.Lock()
		defer mu.Unlock()
		events = append(events, e)
	})))

	require.NoError(t, tr.Insert("GET", "/users/:id", "a"))
	require.NoError(t, tr.Insert("GET", "/users/:id", "b"))

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, events, 1)
	assert.Equal(t, DiagRedundantRegistration, events[0].Kind)
}

func TestTreeDiagnosticsMidPatternOptionalMarker(t *testing.T) {
	t.Parallel()

	var events []DiagnosticEvent
	tr := New[string](WithDiagnostics[string](DiagnosticHandlerFunc(func(e DiagnosticEvent) {
		events = append(events, e)
	})))

	require.NoError(t, tr.Insert("GET", "/users/:id?/posts", "a"))

	require.Len(t, events, 1)
	assert.Equal(t, DiagMidPatternOptionalMarker, events[0].Kind)
}

func TestTreeDiagnosticsExcessiveDepth(t *testing.T) {
	t.Parallel()

	var events []DiagnosticEvent
	tr := New[string](
		WithMaxDepthWarning[string](2),
		WithDiagnostics[string](DiagnosticHandlerFunc(func(e DiagnosticEvent) {
			events = append(events, e)
		})),
	)

	require.NoError(t, tr.Insert("GET", "/a/b/c", "handler"))

	require.Len(t, events, 1)
	assert.Equal(t, DiagExcessiveDepth, events[0].Kind)
}

func TestTreeConcurrentInsertAndFindOne(t *testing.T) {
	t.Parallel()

	tr := New[int]()
	var wg sync.WaitGroup

	for i := range 50 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = tr.Insert("GET", pathFor(i), i)
		}(i)
	}
	wg.Wait()

	for i := range 50 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _, _ = tr.FindOne("GET", pathFor(i), false)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 50, tr.Len())
}

func pathFor(i int) string {
	return "/items/" + string(rune('a'+i%26)) + "/" + itoa(i)
}

func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	digits := ""
	for i > 0 {
		digits = string(rune('0'+i%10)) + digits
		i /= 10
	}
	return digits
}

func TestErrorsUnwrap(t *testing.T) {
	t.Parallel()

	err := error(&InvalidSegmentError{Segment: "**", Reason: "wildcard must be last"})
	assert.True(t, errors.Is(err, ErrInvalidSegment))
}
