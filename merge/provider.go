package merge

import (
	"context"
	"fmt"
	"sync"
)

type baseCacheKey struct {
	projectID string
	revision  int
}

type baseCacheEntry struct {
	meta *ProjectSyncMetadata
	err  error
}

// MemoizeBaseProvider wraps p so repeated calls for the same
// (projectID, revision) pair within a batch hit the underlying provider
// at most once. A batch merging many components of the same project
// would otherwise re-fetch identical base metadata once per component.
func MemoizeBaseProvider(p BaseProvider) BaseProvider {
	var mu sync.Mutex
	cache := make(map[baseCacheKey]baseCacheEntry)

	return func(ctx context.Context, projectID string, revision int) (*ProjectSyncMetadata, error) {
		key := baseCacheKey{projectID: projectID, revision: revision}

		mu.Lock()
		if entry, ok := cache[key]; ok {
			mu.Unlock()
			return entry.meta, entry.err
		}
		mu.Unlock()

		meta, err := p(ctx, projectID, revision)
		if err != nil {
			err = fmt.Errorf("merge: fetching base metadata for project %s at revision %d: %w", projectID, revision, err)
		}

		mu.Lock()
		cache[key] = baseCacheEntry{meta: meta, err: err}
		mu.Unlock()

		return meta, err
	}
}
