package places

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/fixpoints/fixpoints-api/internal/cache"
	"github.com/fixpoints/fixpoints-api/internal/entity"
)

// CachedSource serves repeated queries from a cache. Only successful
// responses are stored; cache failures fall through to the wrapped source.
type CachedSource struct {
	source Source
	store  cache.Store
	ttl    time.Duration
}

// NewCachedSource wraps source with store. A zero ttl disables caching.
func NewCachedSource(source Source, store cache.Store, ttl time.Duration) *CachedSource {
	return &CachedSource{source: source, store: store, ttl: ttl}
}

// Search returns cached listings when present, otherwise queries the source.
func (s *CachedSource) Search(ctx context.Context, q Query) ([]entity.Listing, error) {
	q = q.Normalize()
	if s.store == nil || s.ttl <= 0 {
		return s.source.Search(ctx, q)
	}

	key := CacheKey(q)
	if raw, err := s.store.Get(ctx, key); err == nil {
		var listings []entity.Listing
		if err := json.Unmarshal(raw, &listings); err == nil {
			return listings, nil
		}
		log.Ctx(ctx).Warn().Str("key", key).Msg("evicting undecodable places cache entry")
		if err := s.store.Delete(ctx, key); err != nil {
			log.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("failed to evict places cache entry")
		}
	}

	listings, err := s.source.Search(ctx, q)
	if err != nil {
		return nil, err
	}

	raw, err := json.Marshal(listings)
	if err == nil {
		err = s.store.Set(ctx, key, raw, s.ttl)
	}
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("failed to cache places response")
	}
	return listings, nil
}

// CacheKey derives a stable key from the normalised query.
func CacheKey(q Query) string {
	raw := fmt.Sprintf("%s|%s|%d", strings.ToLower(q.Category), strings.ToLower(q.Location), q.Radius)
	sum := sha256.Sum256([]byte(raw))
	return "places:" + hex.EncodeToString(sum[:16])
}
