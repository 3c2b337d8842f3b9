// Package repositorytest holds behaviour checks shared by every
// SymbolRepository implementation.
package repositorytest

import (
	"context"
	"testing"

	"github.com/amirasaad/moneyrates/pkg/domain"
	"github.com/amirasaad/moneyrates/pkg/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Fixture is the two-symbol table used across the checks.
var Fixture = []domain.Symbol{
	{Code: "USD", Description: "United States Dollar"},
	{Code: "EUR", Description: "Euro"},
}

// RunSymbolRepository runs the shared checks. newRepo must return an empty
// repository each time it is called.
func RunSymbolRepository(t *testing.T, newRepo func(t *testing.T) repository.SymbolRepository) {
	ctx := context.Background()

	t.Run("empty", func(t *testing.T) {
		repo := newRepo(t)
		n, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Zero(t, n)

		all, err := repo.GetAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, all)

		_, err = repo.GetByCode(ctx, "USD")
		assert.ErrorIs(t, err, domain.ErrSymbolNotFound)
	})

	t.Run("reset populates and orders by code", func(t *testing.T) {
		repo := newRepo(t)
		require.NoError(t, repo.Reset(ctx, Fixture))

		n, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, n)

		all, err := repo.GetAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, []domain.Symbol{Fixture[1], Fixture[0]}, all)

		usd, err := repo.GetByCode(ctx, "USD")
		require.NoError(t, err)
		assert.Equal(t, Fixture[0], *usd)
	})

	t.Run("filter is case-sensitive substring on description", func(t *testing.T) {
		repo := newRepo(t)
		require.NoError(t, repo.Reset(ctx, Fixture))

		got, err := repo.Filter(ctx, "Dollar")
		require.NoError(t, err)
		assert.Equal(t, []domain.Symbol{Fixture[0]}, got)

		got, err = repo.Filter(ctx, "")
		require.NoError(t, err)
		assert.Len(t, got, 2)

		got, err = repo.Filter(ctx, "dollar")
		require.NoError(t, err)
		assert.Empty(t, got)

		got, err = repo.Filter(ctx, "USD")
		require.NoError(t, err)
		assert.Empty(t, got, "codes are not matched")

		got, err = repo.Filter(ctx, "%")
		require.NoError(t, err)
		assert.Empty(t, got, "pattern characters are literal")
	})

	t.Run("reset replaces the whole set", func(t *testing.T) {
		repo := newRepo(t)
		require.NoError(t, repo.Reset(ctx, Fixture))
		require.NoError(t, repo.Reset(ctx, []domain.Symbol{{Code: "JPY", Description: "Japanese Yen"}}))

		all, err := repo.GetAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, []domain.Symbol{{Code: "JPY", Description: "Japanese Yen"}}, all)

		_, err = repo.GetByCode(ctx, "USD")
		assert.ErrorIs(t, err, domain.ErrSymbolNotFound)
	})

	t.Run("reset twice with the same set leaves exactly that set", func(t *testing.T) {
		repo := newRepo(t)
		require.NoError(t, repo.Reset(ctx, Fixture))
		require.NoError(t, repo.Reset(ctx, Fixture))

		n, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, n)
	})

	t.Run("duplicate codes keep the last entry", func(t *testing.T) {
		repo := newRepo(t)
		require.NoError(t, repo.Reset(ctx, []domain.Symbol{
			{Code: "USD", Description: "stale"},
			{Code: "USD", Description: "United States Dollar"},
		}))

		usd, err := repo.GetByCode(ctx, "USD")
		require.NoError(t, err)
		assert.Equal(t, "United States Dollar", usd.Description)
	})

	t.Run("reset with nothing empties the cache", func(t *testing.T) {
		repo := newRepo(t)
		require.NoError(t, repo.Reset(ctx, Fixture))
		require.NoError(t, repo.Reset(ctx, nil))

		n, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Zero(t, n)
	})
}
