package symbol

import "github.com/amirasaad/moneyrates/pkg/domain"

// Symbol represents a cached currency symbol row.
type Symbol struct {
	Code        string `gorm:"type:varchar(16);primaryKey"`
	Description string `gorm:"type:varchar(255);not null"`
}

// TableName specifies the table name for the Symbol model.
func (Symbol) TableName() string {
	return "symbols"
}

func toModel(s domain.Symbol) Symbol {
	return Symbol{Code: s.Code, Description: s.Description}
}

func (m Symbol) toDomain() domain.Symbol {
	return domain.Symbol{Code: m.Code, Description: m.Description}
}
