package repository

import (
	"context"

	"github.com/amirasaad/moneyrates/pkg/domain"
)

// SymbolRepository is the local symbol table. Reset is the only mutator and
// replaces the stored set atomically: when it fails, the previous set stays
// visible and the error wraps domain.ErrCacheWrite.
type SymbolRepository interface {
	Reset(ctx context.Context, items []domain.Symbol) error
	// GetAll returns every stored symbol ordered by code.
	GetAll(ctx context.Context) ([]domain.Symbol, error)
	// GetByCode returns domain.ErrSymbolNotFound when the code is unknown.
	GetByCode(ctx context.Context, code string) (*domain.Symbol, error)
	// Filter returns symbols whose description contains text (case-sensitive),
	// ordered by code. Empty text matches everything.
	Filter(ctx context.Context, text string) ([]domain.Symbol, error)
	Count(ctx context.Context) (int, error)
}
