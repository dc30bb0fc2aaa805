package viewmodel

import (
	"github.com/ManuelReschke/PayPlan/app/models"
)

// Payment is the wire form of a scheduled payment.
type Payment struct {
	ID          uint   `json:"id"`
	DateDue     string `json:"date_due"`
	AmountDue   string `json:"amount_due"`
	PaymentPlan *uint  `json:"payment_plan"`
}

// PlanOption is the wire form of a plan with its payments nested. The owning
// profile is implicit and never part of the output.
type PlanOption struct {
	ID          uint      `json:"id"`
	OptionName  string    `json:"option_name"`
	Description string    `json:"description"`
	Payments    []Payment `json:"payments"`
}

// Transaction is the wire form of a completed transaction.
type Transaction struct {
	ID     uint   `json:"id"`
	Date   string `json:"date"`
	Amount string `json:"amount"`
	Payer  uint   `json:"payer"`
}

// Payer is the wire form of a payer with its transactions nested.
type Payer struct {
	ID            uint          `json:"id"`
	FirstName     string        `json:"first_name"`
	LastName      string        `json:"last_name"`
	PaymentPlan   uint          `json:"payment_plan"`
	VenmoUsername *string       `json:"venmo_username"`
	Email         string        `json:"email"`
	PhoneNumber   string        `json:"phone_number"`
	DateCreated   string        `json:"date_created"`
	LastPayDate   *string       `json:"last_pay_date"`
	LastPayAmount *string       `json:"last_pay_amount"`
	NextPayDate   *string       `json:"next_pay_date"`
	NextPayAmount *string       `json:"next_pay_amount"`
	TotalPaid     string        `json:"total_paid"`
	Transactions  []Transaction `json:"transactions"`
}

// Profile is the wire form of the caller's profile. The wallet tokens are
// never included.
type Profile struct {
	ID           uint         `json:"id"`
	User         uint         `json:"user"`
	VenmoHandle  string       `json:"venmo_handle"`
	SurveyCode   string       `json:"survey_code"`
	PaymentPlans []PlanOption `json:"payment_plans"`
	Payers       []Payer      `json:"payers"`
}

func NewPayment(m *models.Payment) Payment {
	return Payment{
		ID:          m.ID,
		DateDue:     FormatTimestamp(m.DateDue),
		AmountDue:   FormatAmount(m.AmountDue),
		PaymentPlan: m.PaymentPlanID,
	}
}

func NewPlanOption(m *models.PlanOption) PlanOption {
	payments := make([]Payment, 0, len(m.Payments))
	for i := range m.Payments {
		payments = append(payments, NewPayment(&m.Payments[i]))
	}
	return PlanOption{
		ID:          m.ID,
		OptionName:  m.OptionName,
		Description: m.Description,
		Payments:    payments,
	}
}

func NewTransaction(m *models.Transaction) Transaction {
	return Transaction{
		ID:     m.ID,
		Date:   FormatTimestamp(m.Date),
		Amount: FormatAmount(m.Amount),
		Payer:  m.PayerID,
	}
}

func NewPayer(m *models.Payer) Payer {
	transactions := make([]Transaction, 0, len(m.Transactions))
	for i := range m.Transactions {
		transactions = append(transactions, NewTransaction(&m.Transactions[i]))
	}
	return Payer{
		ID:            m.ID,
		FirstName:     m.FirstName,
		LastName:      m.LastName,
		PaymentPlan:   m.PaymentPlanID,
		VenmoUsername: m.VenmoUsername,
		Email:         m.Email,
		PhoneNumber:   m.PhoneNumber,
		DateCreated:   FormatTimestamp(m.DateCreated),
		LastPayDate:   formatTimePtr(m.LastPayDate),
		LastPayAmount: formatNullAmount(m.LastPayAmount),
		NextPayDate:   formatTimePtr(m.NextPayDate),
		NextPayAmount: formatNullAmount(m.NextPayAmount),
		TotalPaid:     FormatAmount(m.TotalPaid),
		Transactions:  transactions,
	}
}

// NewProfile nests the profile's plans (with payments) and its payers (with
// transactions).
func NewProfile(m *models.Profile, payers []models.Payer) Profile {
	plans := make([]PlanOption, 0, len(m.PaymentPlans))
	for i := range m.PaymentPlans {
		plans = append(plans, NewPlanOption(&m.PaymentPlans[i]))
	}
	out := make([]Payer, 0, len(payers))
	for i := range payers {
		out = append(out, NewPayer(&payers[i]))
	}
	return Profile{
		ID:           m.ID,
		User:         m.AccountID,
		VenmoHandle:  m.VenmoHandle,
		SurveyCode:   m.SurveyCode,
		PaymentPlans: plans,
		Payers:       out,
	}
}
