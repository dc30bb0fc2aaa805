package models

import "time"

// Profile is the organizer-facing container for payment plans and payers.
// The venmo credentials are reserved for the wallet integration and are never
// serialized.
type Profile struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	AccountID         uint      `gorm:"uniqueIndex;not null" json:"user"`
	VenmoHandle       string    `gorm:"type:varchar(100);default:''" json:"venmo_handle" validate:"max=100"`
	VenmoAuthToken    *string   `gorm:"type:text;default:null" json:"-"`
	VenmoRefreshToken *string   `gorm:"type:text;default:null" json:"-"`
	SurveyCode        string    `gorm:"type:char(10);uniqueIndex;not null" json:"survey_code"`
	CreatedAt         time.Time `gorm:"autoCreateTime" json:"-"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime" json:"-"`

	Account      Account      `gorm:"foreignKey:AccountID;constraint:OnDelete:CASCADE" json:"-"`
	PaymentPlans []PlanOption `gorm:"foreignKey:ProfileID" json:"payment_plans"`
}
