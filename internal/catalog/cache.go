package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rizqapp/rizq/internal/constants"
	"github.com/rizqapp/rizq/internal/logger"
	"github.com/rizqapp/rizq/internal/models"
)

// Cache is a read-through file cache over a Fetcher with a TTL and a
// stale-while-revalidate policy: a fresh snapshot is served directly, an
// expired one triggers a re-fetch, and a failed or cancelled re-fetch falls
// back to the stale snapshot instead of erroring. Cache writes go through a
// temp file and rename, so a cancelled fetch can never leave a partial
// catalog behind.
type Cache struct {
	dir     string
	fetcher Fetcher
	ttl     time.Duration
}

func NewCache(dir string, fetcher Fetcher, ttl time.Duration) *Cache {
	return &Cache{
		dir:     dir,
		fetcher: fetcher,
		ttl:     ttl,
	}
}

func (c *Cache) path() string {
	return filepath.Join(c.dir, constants.CacheFileName)
}

// Get returns the catalog, fetching only when the cached snapshot is
// missing or older than the TTL.
func (c *Cache) Get(ctx context.Context) (models.Catalog, error) {
	cached, ok := c.load()
	if ok && time.Since(cached.FetchedAt) < c.ttl {
		return cached, nil
	}

	fetched, err := c.fetcher.FetchCatalog(ctx)
	if err != nil {
		if ok {
			logger.Warn("Catalog fetch failed, serving stale cache",
				"age", time.Since(cached.FetchedAt).Round(time.Second), "error", err)
			return cached, nil
		}
		return models.Catalog{}, fmt.Errorf("failed to fetch catalog: %w", err)
	}

	if err := c.write(fetched); err != nil {
		logger.Warn("Failed to write catalog cache", "error", err)
	}
	return fetched, nil
}

// Refresh fetches unconditionally and replaces the cached snapshot.
func (c *Cache) Refresh(ctx context.Context) (models.Catalog, error) {
	fetched, err := c.fetcher.FetchCatalog(ctx)
	if err != nil {
		return models.Catalog{}, fmt.Errorf("failed to fetch catalog: %w", err)
	}
	if err := c.write(fetched); err != nil {
		return models.Catalog{}, err
	}
	return fetched, nil
}

// Age returns how old the cached snapshot is. ok is false when no snapshot
// exists.
func (c *Cache) Age() (age time.Duration, ok bool) {
	cached, ok := c.load()
	if !ok {
		return 0, false
	}
	return time.Since(cached.FetchedAt), true
}

func (c *Cache) load() (models.Catalog, bool) {
	data, err := os.ReadFile(c.path())
	if err != nil {
		return models.Catalog{}, false
	}

	var cat models.Catalog
	if err := json.Unmarshal(data, &cat); err != nil {
		logger.Warn("Catalog cache is corrupt, ignoring", "path", c.path(), "error", err)
		return models.Catalog{}, false
	}
	if cat.FetchedAt.IsZero() {
		return models.Catalog{}, false
	}
	return cat, true
}

func (c *Cache) write(cat models.Catalog) error {
	if err := os.MkdirAll(c.dir, 0700); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	data, err := json.MarshalIndent(cat, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize catalog: %w", err)
	}

	tmp, err := os.CreateTemp(c.dir, "catalog-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp cache file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write cache: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close cache file: %w", err)
	}

	if err := os.Rename(tmpName, c.path()); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace cache file: %w", err)
	}
	return nil
}
