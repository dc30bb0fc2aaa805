package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a completed payment made by a payer.
type Transaction struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	Date      time.Time       `gorm:"not null" json:"date"`
	Amount    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	PayerID   uint            `gorm:"index;not null" json:"payer"`
	CreatedAt time.Time       `gorm:"autoCreateTime" json:"-"`

	Payer *Payer `gorm:"foreignKey:PayerID;constraint:OnDelete:CASCADE" json:"-"`
}
