package memory

import (
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// DefaultNotebookCache remembers each user's default notebook id. The default
// notebook can never be renamed or deleted, so an entry never goes stale.
type DefaultNotebookCache struct {
	cache *cache.Cache
}

func NewDefaultNotebookCache() *DefaultNotebookCache {
	// Entries expire after 1 hour of no refresh; purge every 10 minutes.
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &DefaultNotebookCache{
		cache: c,
	}
}

func (r *DefaultNotebookCache) Save(userId, notebookId uuid.UUID) {
	r.cache.Set(userId.String(), notebookId, cache.DefaultExpiration)
}

func (r *DefaultNotebookCache) Get(userId uuid.UUID) (uuid.UUID, bool) {
	if x, found := r.cache.Get(userId.String()); found {
		return x.(uuid.UUID), true
	}
	return uuid.Nil, false
}

func (r *DefaultNotebookCache) Delete(userId uuid.UUID) {
	r.cache.Delete(userId.String())
}
