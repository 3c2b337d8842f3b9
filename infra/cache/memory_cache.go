package cache

import (
	"context"
	"strings"
	"sync"

	"github.com/amirasaad/moneyrates/pkg/domain"
	"github.com/amirasaad/moneyrates/pkg/repository"
	gocache "github.com/patrickmn/go-cache"
)

// MemorySymbolCache implements SymbolRepository in process memory.
// A reset fills a fresh store and swaps it in, so readers see either the old
// set or the new one.
type MemorySymbolCache struct {
	mu    sync.RWMutex
	store *gocache.Cache
}

// NewMemorySymbolCache creates an empty in-memory symbol cache.
func NewMemorySymbolCache() *MemorySymbolCache {
	return &MemorySymbolCache{store: newStore()}
}

func newStore() *gocache.Cache {
	return gocache.New(gocache.NoExpiration, 0)
}

// Reset replaces the stored symbols.
func (c *MemorySymbolCache) Reset(ctx context.Context, items []domain.Symbol) error {
	if err := ctx.Err(); err != nil {
		return &domain.CacheWriteError{Err: err}
	}
	next := newStore()
	for _, s := range domain.UniqueSymbols(items) {
		next.Set(s.Code, s, gocache.NoExpiration)
	}

	c.mu.Lock()
	c.store = next
	c.mu.Unlock()
	return nil
}

// GetAll returns every symbol ordered by code.
func (c *MemorySymbolCache) GetAll(_ context.Context) ([]domain.Symbol, error) {
	return c.collect(func(domain.Symbol) bool { return true }), nil
}

// GetByCode looks a symbol up by its code.
func (c *MemorySymbolCache) GetByCode(_ context.Context, code string) (*domain.Symbol, error) {
	c.mu.RLock()
	v, ok := c.store.Get(code)
	c.mu.RUnlock()
	if !ok {
		return nil, domain.ErrSymbolNotFound
	}
	s := v.(domain.Symbol)
	return &s, nil
}

// Filter returns symbols whose description contains text.
func (c *MemorySymbolCache) Filter(_ context.Context, text string) ([]domain.Symbol, error) {
	return c.collect(func(s domain.Symbol) bool {
		return strings.Contains(s.Description, text)
	}), nil
}

// Count returns the number of stored symbols.
func (c *MemorySymbolCache) Count(_ context.Context) (int, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.store.ItemCount(), nil
}

func (c *MemorySymbolCache) collect(keep func(domain.Symbol) bool) []domain.Symbol {
	c.mu.RLock()
	items := c.store.Items()
	c.mu.RUnlock()

	out := make([]domain.Symbol, 0, len(items))
	for _, item := range items {
		s := item.Object.(domain.Symbol)
		if keep(s) {
			out = append(out, s)
		}
	}
	domain.SortByCode(out)
	return out
}

// Ensure MemorySymbolCache implements repository.SymbolRepository
var _ repository.SymbolRepository = (*MemorySymbolCache)(nil)
