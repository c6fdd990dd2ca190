package skills

import (
	"context"
	"time"

	"jobboard/internal/domain/policy"

	"github.com/google/uuid"
)

// Cache is the subset of the redis cache the directory decorator needs.
type Cache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
}

const (
	catalogCacheKey         = "skills:catalog"
	completedCacheKeyPrefix = "skills:completed:"
)

// CachedDirectory memoizes directory lookups with a TTL. Staleness up to
// the TTL is acceptable: completion data is a UX filter, not a security
// boundary.
type CachedDirectory struct {
	next  Directory
	cache Cache
	ttl   time.Duration
}

func NewCachedDirectory(next Directory, cache Cache, ttl time.Duration) *CachedDirectory {
	return &CachedDirectory{next: next, cache: cache, ttl: ttl}
}

func (d *CachedDirectory) CatalogIDs(ctx context.Context) (policy.SkillSet, error) {
	return d.cached(ctx, catalogCacheKey, func() (policy.SkillSet, error) {
		return d.next.CatalogIDs(ctx)
	})
}

func (d *CachedDirectory) CompletedSkills(ctx context.Context, userID uuid.UUID) (policy.SkillSet, error) {
	return d.cached(ctx, completedCacheKeyPrefix+userID.String(), func() (policy.SkillSet, error) {
		return d.next.CompletedSkills(ctx, userID)
	})
}

func (d *CachedDirectory) cached(ctx context.Context, key string, fetch func() (policy.SkillSet, error)) (policy.SkillSet, error) {
	if d.cache != nil {
		var ids []string
		hit, err := d.cache.GetJSON(ctx, key, &ids)
		if err == nil && hit {
			return policy.NewSkillSet(ids), nil
		}
	}

	set, err := fetch()
	if err != nil {
		return nil, err
	}

	if d.cache != nil {
		ids := make([]string, 0, len(set))
		for id := range set {
			ids = append(ids, id)
		}
		_ = d.cache.SetJSON(ctx, key, ids, d.ttl)
	}
	return set, nil
}

var _ Directory = (*CachedDirectory)(nil)
