package catalog

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rizqapp/rizq/internal/constants"
	"github.com/rizqapp/rizq/internal/models"
)

type fakeFetcher struct {
	catalog models.Catalog
	err     error
	calls   int
}

func (f *fakeFetcher) FetchCatalog(_ context.Context) (models.Catalog, error) {
	f.calls++
	if f.err != nil {
		return models.Catalog{}, f.err
	}
	cat := f.catalog
	cat.FetchedAt = time.Now()
	return cat, nil
}

func (f *fakeFetcher) FetchAllDuas(_ context.Context) ([]models.Dua, error) {
	return f.catalog.Duas, f.err
}

func (f *fakeFetcher) FetchJourneyWithDuas(_ context.Context, id string) (models.JourneyWithDuas, error) {
	return models.JourneyWithDuas{}, f.err
}

func (f *fakeFetcher) FetchJourneysWithDuas(_ context.Context, ids []string) ([]models.JourneyWithDuas, error) {
	return nil, f.err
}

func testCatalogData() models.Catalog {
	return models.Catalog{
		Duas: []models.Dua{
			{ID: 1, Slug: "morning-protection", Title: "Morning Protection", XPValue: 10},
		},
		Journeys: []models.JourneyWithDuas{
			{Journey: models.Journey{ID: "j1", Slug: "gratitude", Name: "Gratitude"}},
		},
	}
}

func TestCacheGet_FreshHitSkipsFetch(t *testing.T) {
	dir := t.TempDir()
	fetcher := &fakeFetcher{catalog: testCatalogData()}
	cache := NewCache(dir, fetcher, time.Hour)

	if _, err := cache.Get(context.Background()); err != nil {
		t.Fatalf("first get: %v", err)
	}
	if fetcher.calls != 1 {
		t.Fatalf("expected one fetch, got %d", fetcher.calls)
	}

	cat, err := cache.Get(context.Background())
	if err != nil {
		t.Fatalf("second get: %v", err)
	}
	if fetcher.calls != 1 {
		t.Errorf("fresh cache must not re-fetch, got %d calls", fetcher.calls)
	}
	if len(cat.Duas) != 1 || cat.Duas[0].Slug != "morning-protection" {
		t.Errorf("unexpected catalog: %+v", cat.Duas)
	}
}

func TestCacheGet_ExpiredRefetches(t *testing.T) {
	dir := t.TempDir()
	fetcher := &fakeFetcher{catalog: testCatalogData()}
	cache := NewCache(dir, fetcher, time.Nanosecond)

	if _, err := cache.Get(context.Background()); err != nil {
		t.Fatal(err)
	}
	time.Sleep(time.Millisecond)
	if _, err := cache.Get(context.Background()); err != nil {
		t.Fatal(err)
	}

	if fetcher.calls != 2 {
		t.Errorf("expired cache should re-fetch, got %d calls", fetcher.calls)
	}
}

func TestCacheGet_FailureServesStale(t *testing.T) {
	dir := t.TempDir()
	fetcher := &fakeFetcher{catalog: testCatalogData()}
	cache := NewCache(dir, fetcher, time.Nanosecond)

	if _, err := cache.Get(context.Background()); err != nil {
		t.Fatal(err)
	}

	time.Sleep(time.Millisecond)
	fetcher.err = errors.New("connection refused")
	cat, err := cache.Get(context.Background())
	if err != nil {
		t.Fatalf("stale snapshot should be served without error, got %v", err)
	}
	if len(cat.Duas) != 1 {
		t.Errorf("expected stale catalog content, got %+v", cat.Duas)
	}
}

func TestCacheGet_FailureWithoutCacheErrors(t *testing.T) {
	dir := t.TempDir()
	fetcher := &fakeFetcher{err: errors.New("connection refused")}
	cache := NewCache(dir, fetcher, time.Hour)

	if _, err := cache.Get(context.Background()); err == nil {
		t.Error("expected error with no cache to fall back to")
	}
}

func TestCacheRefresh_AlwaysFetches(t *testing.T) {
	dir := t.TempDir()
	fetcher := &fakeFetcher{catalog: testCatalogData()}
	cache := NewCache(dir, fetcher, time.Hour)

	if _, err := cache.Get(context.Background()); err != nil {
		t.Fatal(err)
	}
	if _, err := cache.Refresh(context.Background()); err != nil {
		t.Fatal(err)
	}

	if fetcher.calls != 2 {
		t.Errorf("refresh must bypass the TTL, got %d calls", fetcher.calls)
	}
}

func TestCacheGet_CorruptFileTreatedAsMiss(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, constants.CacheFileName)
	if err := os.WriteFile(path, []byte("{broken"), 0600); err != nil {
		t.Fatalf("write: %v", err)
	}

	fetcher := &fakeFetcher{catalog: testCatalogData()}
	cache := NewCache(dir, fetcher, time.Hour)

	cat, err := cache.Get(context.Background())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if fetcher.calls != 1 {
		t.Errorf("corrupt cache must trigger a fetch, got %d calls", fetcher.calls)
	}
	if len(cat.Duas) != 1 {
		t.Errorf("unexpected catalog: %+v", cat.Duas)
	}
}

func TestCacheAge(t *testing.T) {
	dir := t.TempDir()
	fetcher := &fakeFetcher{catalog: testCatalogData()}
	cache := NewCache(dir, fetcher, time.Hour)

	if _, ok := cache.Age(); ok {
		t.Error("expected no age before first fetch")
	}

	if _, err := cache.Get(context.Background()); err != nil {
		t.Fatal(err)
	}

	age, ok := cache.Age()
	if !ok {
		t.Fatal("expected an age after fetch")
	}
	if age < 0 || age > time.Minute {
		t.Errorf("implausible age %v", age)
	}
}
