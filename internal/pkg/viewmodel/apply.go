package viewmodel

import (
	"github.com/ManuelReschke/PayPlan/app/models"
)

// The Apply functions copy the fields present in a payload onto a model.
// With partial set (PATCH) missing fields are left alone; otherwise (POST,
// PUT) every required field must be present. Read-only fields such as id,
// date_created and the nested lists are ignored, and so is any client
// supplied owner reference. References to other records are only checked for
// shape here; the caller verifies they are in scope.

// ApplyPlanOption applies option_name and description.
func ApplyPlanOption(p Payload, m *models.PlanOption, partial bool) error {
	errs := FieldErrors{}
	if v, ok := p.String("option_name", !partial, false, errs); ok {
		m.OptionName = v
	}
	if v, ok := p.String("description", false, true, errs); ok {
		m.Description = v
	}
	if len(errs) == 0 {
		validateModel(m, errs)
	}
	return errs.Err()
}

// ApplyPayment applies date_due, amount_due and payment_plan.
func ApplyPayment(p Payload, m *models.Payment, partial bool) error {
	errs := FieldErrors{}
	if v, ok := p.Time("date_due", !partial, false, errs); ok {
		m.DateDue = *v
	}
	if v, ok := p.Decimal("amount_due", !partial, false, errs); ok {
		m.AmountDue = v.Decimal
	}
	if v, ok := p.ID("payment_plan", false, true, errs); ok {
		m.PaymentPlanID = v
	}
	return errs.Err()
}

// ApplyPayer applies the payer fields. survey_code is not a payer field and
// is read by the caller before.
func ApplyPayer(p Payload, m *models.Payer, partial bool) error {
	errs := FieldErrors{}
	required := !partial
	if v, ok := p.String("first_name", required, false, errs); ok {
		m.FirstName = v
	}
	if v, ok := p.String("last_name", required, false, errs); ok {
		m.LastName = v
	}
	if v, ok := p.ID("payment_plan", required, false, errs); ok {
		m.PaymentPlanID = *v
	}
	if p.IsNull("venmo_username") {
		m.VenmoUsername = nil
	} else if v, ok := p.String("venmo_username", false, true, errs); ok {
		if v == "" {
			m.VenmoUsername = nil
		} else {
			m.VenmoUsername = &v
		}
	}
	if v, ok := p.String("email", required, false, errs); ok {
		m.Email = v
	}
	if v, ok := p.String("phone_number", required, false, errs); ok {
		m.PhoneNumber = v
	}
	if v, ok := p.Time("last_pay_date", false, true, errs); ok {
		m.LastPayDate = v
	}
	if v, ok := p.Decimal("last_pay_amount", false, true, errs); ok {
		m.LastPayAmount = v
	}
	if v, ok := p.Time("next_pay_date", false, true, errs); ok {
		m.NextPayDate = v
	}
	if v, ok := p.Decimal("next_pay_amount", false, true, errs); ok {
		m.NextPayAmount = v
	}
	if v, ok := p.Decimal("total_paid", false, false, errs); ok {
		m.TotalPaid = v.Decimal
	}
	if len(errs) == 0 {
		validateModel(m, errs)
	}
	return errs.Err()
}

// ApplyTransaction applies date, amount and payer.
func ApplyTransaction(p Payload, m *models.Transaction, partial bool) error {
	errs := FieldErrors{}
	required := !partial
	if v, ok := p.Time("date", required, false, errs); ok {
		m.Date = *v
	}
	if v, ok := p.Decimal("amount", required, false, errs); ok {
		m.Amount = v.Decimal
	}
	if v, ok := p.ID("payer", required, false, errs); ok {
		m.PayerID = *v
	}
	return errs.Err()
}
