package models

import (
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Profile holds the user's display name and cash balance. There is
// exactly one profile per instance, created on first access.
type Profile struct {
	DefaultModel
	Name    string          `json:"name" example:"มะลิ"`
	Balance decimal.Decimal `json:"balance" gorm:"type:DECIMAL(20,8)" example:"5000"` // Cash on hand, may go negative
}

func (p *Profile) BeforeSave(_ *gorm.DB) error {
	p.Name = strings.TrimSpace(p.Name)
	return nil
}
