package artifacts

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/LegacyCodeHQ/buildgraph/component"
)

// SelectionCache memoizes Select results of one VisitedArtifactsResults by view name.
// A view name must always be used with the same order, filter and selector.
// Failed selections are not cached.
type SelectionCache struct {
	results *VisitedArtifactsResults
	cache   *lru.Cache[string, *SelectedArtifactResults]
}

// NewSelectionCache creates a cache holding at most size views.
func NewSelectionCache(results *VisitedArtifactsResults, size int) (*SelectionCache, error) {
	cache, err := lru.New[string, *SelectedArtifactResults](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create selection cache: %w", err)
	}
	return &SelectionCache{results: results, cache: cache}, nil
}

// Select returns the cached selection for view, computing it on a miss. The boolean
// reports whether the result came from the cache.
func (c *SelectionCache) Select(view string, filter component.Filter, selector VariantSelector) (*SelectedArtifactResults, bool, error) {
	return c.SelectInOrder(view, ConsumerFirst, filter, selector)
}

// SelectInOrder is Select with an explicit iteration order.
func (c *SelectionCache) SelectInOrder(view string, order IterationOrder, filter component.Filter, selector VariantSelector) (*SelectedArtifactResults, bool, error) {
	if selected, ok := c.cache.Get(view); ok {
		return selected, true, nil
	}

	selected, err := c.results.SelectInOrder(order, filter, selector)
	if err != nil {
		return nil, false, err
	}
	c.cache.Add(view, selected)
	return selected, false, nil
}

// Results returns the visited results the cache selects from.
func (c *SelectionCache) Results() *VisitedArtifactsResults {
	return c.results
}

// Len returns the number of cached views.
func (c *SelectionCache) Len() int {
	return c.cache.Len()
}
