package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment is a scheduled charge under a plan: the date it is due and the
// amount due on that date. It is an expectation, not a completed payment.
type Payment struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	DateDue       time.Time       `gorm:"not null" json:"date_due"`
	AmountDue     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount_due"`
	PaymentPlanID *uint           `gorm:"index;default:null" json:"payment_plan"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"-"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"-"`

	PaymentPlan *PlanOption `gorm:"foreignKey:PaymentPlanID;constraint:OnDelete:CASCADE" json:"-"`
}
