package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	errors "github.com/Laisky/errors/v2"
	"github.com/stretchr/testify/require"

	"fileserver/internal/web/files/model"
	"fileserver/library/db/redis"
)

// mapCache is an in-memory Cache for decorator tests.
type mapCache struct {
	store   map[string][]byte
	ttls    map[string]time.Duration
	failing bool
}

func newMapCache() *mapCache {
	return &mapCache{store: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (m *mapCache) Get(_ context.Context, key string) ([]byte, error) {
	if m.failing {
		return nil, errors.New("cache unreachable")
	}
	raw, ok := m.store[key]
	if !ok {
		return nil, redis.ErrCacheMiss
	}
	return raw, nil
}

func (m *mapCache) Set(_ context.Context, key string, val []byte, ttl time.Duration) error {
	if m.failing {
		return errors.New("cache unreachable")
	}
	m.store[key] = val
	m.ttls[key] = ttl
	return nil
}

// TestListCacheMissThenHit verifies a miss stores the marshalled page and
// a warm key is served without touching the store again.
func TestListCacheMissThenHit(t *testing.T) {
	cache := newMapCache()
	router := newTestRouter(t, cache)
	token := obtainToken(t, router, "alice")

	resp := uploadMultipart(t, router, token, "docs/data.txt", "upload.bin", []byte("payload"))
	require.Equal(t, http.StatusCreated, resp.Code)

	resp = doJSON(t, router, http.MethodGet, "/api/v1/files/list", nil, token)
	require.Equal(t, http.StatusOK, resp.Code)
	require.Len(t, cache.store, 1)

	var key string
	for stored := range cache.store {
		key = stored
	}
	require.Equal(t, cacheTTL, cache.ttls[key])

	var listed []model.File
	require.NoError(t, json.Unmarshal(cache.store[key], &listed))
	require.Len(t, listed, 1)

	// poison the entry to prove the second request answers from cache
	cache.store[key] = []byte(`[]`)
	resp = doJSON(t, router, http.MethodGet, "/api/v1/files/list", nil, token)
	require.Equal(t, http.StatusOK, resp.Code)
	require.Equal(t, `[]`, resp.Body.String())
}

// TestListCacheFailureFallsThrough verifies an unreachable cache never
// fails the request.
func TestListCacheFailureFallsThrough(t *testing.T) {
	cache := newMapCache()
	cache.failing = true
	router := newTestRouter(t, cache)
	token := obtainToken(t, router, "alice")

	resp := uploadMultipart(t, router, token, "docs/data.txt", "upload.bin", []byte("payload"))
	require.Equal(t, http.StatusCreated, resp.Code)

	resp = doJSON(t, router, http.MethodGet, "/api/v1/files/list", nil, token)
	require.Equal(t, http.StatusOK, resp.Code)

	var listed []model.File
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &listed))
	require.Len(t, listed, 1)
	require.Empty(t, cache.store)
}
