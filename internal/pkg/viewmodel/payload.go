package viewmodel

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ErrNotAnObject is returned for request bodies that are not a JSON object.
var ErrNotAnObject = errors.New("request body must be a JSON object")

const (
	maxDecimalPlaces = 2
	maxIntegerDigits = 10
)

// timestampLayouts are the accepted input formats for datetimes.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Payload is a decoded request object keyed by field name. It keeps track of
// which fields were sent and which were sent as null, so that PATCH can apply
// only what is present.
type Payload map[string]json.RawMessage

// ParsePayload decodes a JSON object.
func ParsePayload(body []byte) (Payload, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return Payload{}, nil
	}
	if trimmed[0] != '{' {
		return nil, ErrNotAnObject
	}
	var p Payload
	if err := json.Unmarshal(trimmed, &p); err != nil {
		return nil, err
	}
	return p, nil
}

// PayloadFromForm builds a payload from form values. An empty value is
// treated as null, as HTML forms cannot express null otherwise.
func PayloadFromForm(values map[string]string) Payload {
	p := make(Payload, len(values))
	for k, v := range values {
		if v == "" {
			p[k] = json.RawMessage("null")
			continue
		}
		raw, _ := json.Marshal(v)
		p[k] = raw
	}
	return p
}

func (p Payload) Has(field string) bool {
	_, ok := p[field]
	return ok
}

func (p Payload) IsNull(field string) bool {
	raw, ok := p[field]
	return ok && bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// present checks presence and nullability shared by all typed getters. It
// reports whether a value should be decoded.
func (p Payload) present(field string, required, nullable bool, errs FieldErrors) bool {
	if !p.Has(field) {
		if required {
			errs.Add(field, msgRequired)
		}
		return false
	}
	if p.IsNull(field) {
		if !nullable {
			errs.Add(field, msgNull)
		}
		return false
	}
	return true
}

// String decodes a string field. ok is false if the field is absent, null or
// invalid.
func (p Payload) String(field string, required, allowBlank bool, errs FieldErrors) (value string, ok bool) {
	if !p.present(field, required, false, errs) {
		return "", false
	}
	if err := json.Unmarshal(p[field], &value); err != nil {
		errs.Add(field, "Not a valid string.")
		return "", false
	}
	value = strings.TrimSpace(value)
	if value == "" && !allowBlank {
		errs.Add(field, msgBlank)
		return "", false
	}
	return value, true
}

// Secret decodes a required string without trimming it, for passwords.
func (p Payload) Secret(field string, errs FieldErrors) (value string, ok bool) {
	if !p.present(field, true, false, errs) {
		return "", false
	}
	if err := json.Unmarshal(p[field], &value); err != nil {
		errs.Add(field, "Not a valid string.")
		return "", false
	}
	if value == "" {
		errs.Add(field, msgBlank)
		return "", false
	}
	return value, true
}

// ID decodes a primary key reference given as number or numeric string.
func (p Payload) ID(field string, required, nullable bool, errs FieldErrors) (value *uint, ok bool) {
	if !p.present(field, required, nullable, errs) {
		return nil, p.IsNull(field) && nullable
	}
	var n json.Number
	if err := json.Unmarshal(p[field], &n); err != nil {
		var s string
		if err := json.Unmarshal(p[field], &s); err != nil {
			errs.Add(field, "Incorrect type. Expected pk value.")
			return nil, false
		}
		n = json.Number(strings.TrimSpace(s))
	}
	id, err := strconv.ParseUint(n.String(), 10, 64)
	if err != nil || id == 0 {
		errs.Add(field, "Incorrect type. Expected pk value.")
		return nil, false
	}
	v := uint(id)
	return &v, true
}

// Decimal decodes a money amount with at most two decimal places.
func (p Payload) Decimal(field string, required, nullable bool, errs FieldErrors) (value decimal.NullDecimal, ok bool) {
	if !p.present(field, required, nullable, errs) {
		return decimal.NullDecimal{}, p.IsNull(field) && nullable
	}
	var d decimal.Decimal
	if err := d.UnmarshalJSON(p[field]); err != nil {
		errs.Add(field, "A valid number is required.")
		return decimal.NullDecimal{}, false
	}
	if !d.Equal(d.Truncate(maxDecimalPlaces)) {
		errs.Add(field, "Ensure that there are no more than 2 decimal places.")
		return decimal.NullDecimal{}, false
	}
	if d.Abs().GreaterThanOrEqual(decimal.New(1, maxIntegerDigits)) {
		errs.Add(field, "Ensure that there are no more than 10 digits before the decimal point.")
		return decimal.NullDecimal{}, false
	}
	return decimal.NullDecimal{Decimal: d, Valid: true}, true
}

// Time decodes a datetime in one of the accepted layouts.
func (p Payload) Time(field string, required, nullable bool, errs FieldErrors) (value *time.Time, ok bool) {
	if !p.present(field, required, nullable, errs) {
		return nil, p.IsNull(field) && nullable
	}
	var s string
	if err := json.Unmarshal(p[field], &s); err != nil {
		errs.Add(field, "Datetime has wrong format.")
		return nil, false
	}
	t, err := ParseTimestamp(s)
	if err != nil {
		errs.Add(field, "Datetime has wrong format. Use one of these formats instead: YYYY-MM-DDThh:mm[:ss[.uuuuuu]][+HH:MM|-HH:MM|Z].")
		return nil, false
	}
	return &t, true
}

// ParseTimestamp parses s in any accepted layout. Values without a zone are
// taken as UTC.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	var lastErr error
	for _, layout := range timestampLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t.UTC(), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// FormatTimestamp renders a datetime for output.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := FormatTimestamp(*t)
	return &s
}

// FormatAmount renders money with exactly two decimals.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(maxDecimalPlaces)
}

func formatNullAmount(d decimal.NullDecimal) *string {
	if !d.Valid {
		return nil
	}
	s := FormatAmount(d.Decimal)
	return &s
}
