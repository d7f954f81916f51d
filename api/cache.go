package api

import (
	"context"
	"encoding/json"
	"time"

	"github.com/skymesh/routegraph/pkg/cache"
)

// cachedJSON fills dest through the cache manager when one is configured,
// and computes directly otherwise. The marshal round trip in the direct
// path keeps both paths producing identical values.
func cachedJSON(ctx context.Context, mgr *cache.Manager, key string, ttl time.Duration, dest interface{}, fn func() (interface{}, error)) error {
	if mgr != nil {
		return mgr.GetOrSetJSON(ctx, key, ttl, dest, fn)
	}

	value, err := fn()
	if err != nil {
		return err
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dest)
}
