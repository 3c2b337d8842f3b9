package symbol

import (
	"context"
	"errors"
	"fmt"

	"github.com/amirasaad/moneyrates/pkg/domain"
	"github.com/amirasaad/moneyrates/pkg/repository"
	"gorm.io/gorm"
)

const insertBatchSize = 200

type symbolRepository struct {
	db *gorm.DB
}

// New creates a gorm backed SymbolRepository. The symbols table must exist;
// see Migrate.
func New(db *gorm.DB) repository.SymbolRepository {
	return &symbolRepository{db: db}
}

// Migrate creates or updates the symbols table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Symbol{})
}

// Reset deletes every row and inserts items in one transaction.
func (r *symbolRepository) Reset(ctx context.Context, items []domain.Symbol) error {
	unique := domain.UniqueSymbols(items)
	rows := make([]Symbol, 0, len(unique))
	for _, s := range unique {
		rows = append(rows, toModel(s))
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&Symbol{}).Error; err != nil {
			return fmt.Errorf("clear symbols: %w", err)
		}
		if len(rows) == 0 {
			return nil
		}
		if err := tx.CreateInBatches(rows, insertBatchSize).Error; err != nil {
			return fmt.Errorf("insert symbols: %w", err)
		}
		return nil
	})
	if err != nil {
		return &domain.CacheWriteError{Err: err}
	}
	return nil
}

func (r *symbolRepository) GetAll(ctx context.Context) ([]domain.Symbol, error) {
	var rows []Symbol
	if err := r.db.WithContext(ctx).Order("code").Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainList(rows), nil
}

func (r *symbolRepository) GetByCode(ctx context.Context, code string) (*domain.Symbol, error) {
	var row Symbol
	err := r.db.WithContext(ctx).Where("code = ?", code).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrSymbolNotFound
	}
	if err != nil {
		return nil, err
	}
	s := row.toDomain()
	return &s, nil
}

// Filter matches with instr/strpos instead of LIKE: LIKE folds ASCII case on
// sqlite and treats % and _ as wildcards.
func (r *symbolRepository) Filter(ctx context.Context, text string) ([]domain.Symbol, error) {
	if text == "" {
		return r.GetAll(ctx)
	}
	var rows []Symbol
	q := r.db.WithContext(ctx)
	switch q.Dialector.Name() {
	case "postgres":
		q = q.Where("strpos(description, ?) > 0", text)
	default:
		q = q.Where("instr(description, ?) > 0", text)
	}
	if err := q.Order("code").Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainList(rows), nil
}

func (r *symbolRepository) Count(ctx context.Context) (int, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&Symbol{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return int(n), nil
}

func toDomainList(rows []Symbol) []domain.Symbol {
	out := make([]domain.Symbol, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out
}
