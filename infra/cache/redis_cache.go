package cache

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/amirasaad/moneyrates/pkg/domain"
	"github.com/amirasaad/moneyrates/pkg/repository"
	"github.com/redis/go-redis/v9"
)

// RedisSymbolCache implements SymbolRepository on a single Redis hash
// (code -> description).
type RedisSymbolCache struct {
	client *redis.Client
	key    string
	logger *slog.Logger
}

// NewRedisSymbolCache creates a RedisSymbolCache storing its hash under prefix+"symbols".
func NewRedisSymbolCache(client *redis.Client, prefix string, logger *slog.Logger) *RedisSymbolCache {
	return &RedisSymbolCache{
		client: client,
		key:    prefix + "symbols",
		logger: logger.With("component", "redis-symbol-cache"),
	}
}

// NewRedisSymbolCacheFromURL parses a redis:// URL and creates a cache on it.
func NewRedisSymbolCacheFromURL(url, prefix string, logger *slog.Logger) (*RedisSymbolCache, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return NewRedisSymbolCache(redis.NewClient(opt), prefix, logger), nil
}

// Reset replaces the hash inside MULTI/EXEC so no partial set is ever visible.
func (r *RedisSymbolCache) Reset(ctx context.Context, items []domain.Symbol) error {
	unique := domain.UniqueSymbols(items)
	fields := make(map[string]any, len(unique))
	for _, s := range unique {
		fields[s.Code] = s.Description
	}

	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, r.key)
		if len(fields) > 0 {
			pipe.HSet(ctx, r.key, fields)
		}
		return nil
	})
	if err != nil {
		r.logger.Error("Redis symbol reset failed", "key", r.key, "error", err)
		return &domain.CacheWriteError{Err: err}
	}
	r.logger.Debug("Redis symbol cache reset", "key", r.key, "count", len(fields))
	return nil
}

func (r *RedisSymbolCache) GetAll(ctx context.Context) ([]domain.Symbol, error) {
	return r.collect(ctx, func(string) bool { return true })
}

func (r *RedisSymbolCache) GetByCode(ctx context.Context, code string) (*domain.Symbol, error) {
	desc, err := r.client.HGet(ctx, r.key, code).Result()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrSymbolNotFound
	}
	if err != nil {
		r.logger.Error("Redis symbol get error", "code", code, "error", err)
		return nil, err
	}
	return &domain.Symbol{Code: code, Description: desc}, nil
}

func (r *RedisSymbolCache) Filter(ctx context.Context, text string) ([]domain.Symbol, error) {
	return r.collect(ctx, func(desc string) bool { return strings.Contains(desc, text) })
}

func (r *RedisSymbolCache) Count(ctx context.Context) (int, error) {
	n, err := r.client.HLen(ctx, r.key).Result()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

// Close releases the underlying client.
func (r *RedisSymbolCache) Close() error {
	return r.client.Close()
}

func (r *RedisSymbolCache) collect(ctx context.Context, keep func(desc string) bool) ([]domain.Symbol, error) {
	all, err := r.client.HGetAll(ctx, r.key).Result()
	if err != nil {
		r.logger.Error("Redis symbol scan error", "key", r.key, "error", err)
		return nil, err
	}
	out := make([]domain.Symbol, 0, len(all))
	for code, desc := range all {
		if keep(desc) {
			out = append(out, domain.Symbol{Code: code, Description: desc})
		}
	}
	domain.SortByCode(out)
	return out, nil
}

var _ repository.SymbolRepository = (*RedisSymbolCache)(nil)
