package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Payer is a single member of an organization following one of its plans.
//
// A payer has no profile column of its own. The owning profile is always the
// profile of its plan, see ProfileID.
type Payer struct {
	ID            uint                `gorm:"primaryKey" json:"id"`
	FirstName     string              `gorm:"type:varchar(64);not null" json:"first_name" validate:"required,max=64"`
	LastName      string              `gorm:"type:varchar(64);not null" json:"last_name" validate:"required,max=64"`
	PaymentPlanID uint                `gorm:"index;not null" json:"payment_plan" validate:"required"`
	VenmoUsername *string             `gorm:"type:varchar(100);uniqueIndex;default:null" json:"venmo_username" validate:"omitempty,max=100"`
	Email         string              `gorm:"type:varchar(254);not null" json:"email" validate:"required,email,max=254"`
	PhoneNumber   string              `gorm:"type:varchar(32);not null" json:"phone_number" validate:"required,max=32"`
	DateCreated   time.Time           `gorm:"autoCreateTime" json:"date_created"`
	LastPayDate   *time.Time          `gorm:"default:null" json:"last_pay_date"`
	LastPayAmount decimal.NullDecimal `gorm:"type:decimal(12,2);default:null" json:"last_pay_amount"`
	NextPayDate   *time.Time          `gorm:"default:null" json:"next_pay_date"`
	NextPayAmount decimal.NullDecimal `gorm:"type:decimal(12,2);default:null" json:"next_pay_amount"`
	TotalPaid     decimal.Decimal     `gorm:"type:decimal(12,2);not null;default:0" json:"total_paid"`
	UpdatedAt     time.Time           `gorm:"autoUpdateTime" json:"-"`

	PaymentPlan  *PlanOption   `gorm:"foreignKey:PaymentPlanID;constraint:OnDelete:CASCADE" json:"-"`
	Transactions []Transaction `gorm:"foreignKey:PayerID" json:"transactions"`
}

func (p *Payer) Validate() error {
	v := validator.New()
	return v.Struct(p)
}

// ProfileID derives the owning profile from the payer's plan. The plan must
// be loaded.
func (p *Payer) ProfileID() (uint, error) {
	if p.PaymentPlan == nil || p.PaymentPlan.ID != p.PaymentPlanID {
		return 0, ErrNoPlanLoaded
	}
	return p.PaymentPlan.ProfileID, nil
}
