package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// PlanOption is a payment plan a payer picks when filling out the survey.
type PlanOption struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	OptionName  string    `gorm:"type:varchar(50);not null" json:"option_name" validate:"required,max=50"`
	Description string    `gorm:"type:text" json:"description"`
	ProfileID   uint      `gorm:"index;not null" json:"-"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"-"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"-"`

	Profile  *Profile  `gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE" json:"-"`
	Payments []Payment `gorm:"foreignKey:PaymentPlanID" json:"payments"`
	Payers   []Payer   `gorm:"foreignKey:PaymentPlanID" json:"-"`
}

// TableName keeps the table name stable regardless of the struct name.
func (PlanOption) TableName() string {
	return "plan_options"
}

func (p *PlanOption) Validate() error {
	v := validator.New()
	return v.Struct(p)
}
