package validation

import (
	"fmt"
	"net/mail"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	errors "github.com/frahmantamala/ponto-eletronico/internal"
)

type ValidatorFunc func(interface{}) *errors.AppError

type FieldValidator struct {
	FieldName  string
	Value      interface{}
	Validators []ValidatorFunc
	optional   bool
}

type ValidationBuilder struct {
	fields []*FieldValidator
}

func NewValidator() *ValidationBuilder {
	return &ValidationBuilder{
		fields: make([]*FieldValidator, 0),
	}
}

func (v *ValidationBuilder) Field(name string, value interface{}) *FieldValidator {
	fv := &FieldValidator{
		FieldName:  name,
		Value:      value,
		Validators: make([]ValidatorFunc, 0),
	}
	v.fields = append(v.fields, fv)
	return fv
}

// Optional skips the remaining rules of the field when its value is empty.
func (fv *FieldValidator) Optional() *FieldValidator {
	fv.optional = true
	return fv
}

func (fv *FieldValidator) Required(message string) *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.AppError {
		if isEmpty(value) {
			return errors.NewValidationFieldError(fv.FieldName, message, errors.ErrCodeValidationFailed)
		}
		return nil
	})
	return fv
}

// Length checks the rune count of a non-empty string value against [min, max].
func (fv *FieldValidator) Length(min, max int, message string) *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.AppError {
		s, ok := stringValue(value)
		if !ok || s == "" {
			return nil
		}
		n := utf8.RuneCountInString(s)
		if n < min || n > max {
			return errors.NewValidationFieldError(fv.FieldName, message, errors.ErrCodeValidationFailed)
		}
		return nil
	})
	return fv
}

// MaxBytes checks the byte length of a string value, for limits that count
// bytes rather than characters.
func (fv *FieldValidator) MaxBytes(max int, message string) *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.AppError {
		s, ok := stringValue(value)
		if !ok || len(s) <= max {
			return nil
		}
		return errors.NewValidationFieldError(fv.FieldName, message, errors.ErrCodeValidationFailed)
	})
	return fv
}

func (fv *FieldValidator) Email(message string) *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.AppError {
		s, ok := stringValue(value)
		if !ok || s == "" {
			return nil
		}
		if !IsEmail(s) {
			return errors.NewValidationFieldError(fv.FieldName, message, errors.ErrCodeInvalidEmail)
		}
		return nil
	})
	return fv
}

func (fv *FieldValidator) CPF(message string) *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.AppError {
		s, ok := stringValue(value)
		if !ok || s == "" {
			return nil
		}
		if !IsCPF(s) {
			return errors.NewValidationFieldError(fv.FieldName, message, errors.ErrCodeInvalidDocument)
		}
		return nil
	})
	return fv
}

func (fv *FieldValidator) CNPJ(message string) *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.AppError {
		s, ok := stringValue(value)
		if !ok || s == "" {
			return nil
		}
		if !IsCNPJ(s) {
			return errors.NewValidationFieldError(fv.FieldName, message, errors.ErrCodeInvalidDocument)
		}
		return nil
	})
	return fv
}

// Decimal accepts strings holding a non-negative decimal number.
func (fv *FieldValidator) Decimal(message string) *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.AppError {
		s, ok := stringValue(value)
		if !ok || s == "" {
			return nil
		}
		if _, err := ParseDecimal(s); err != nil {
			return errors.NewValidationFieldError(fv.FieldName, message, errors.ErrCodeInvalidNumber)
		}
		return nil
	})
	return fv
}

func (fv *FieldValidator) Custom(validator func(interface{}) *errors.AppError) *FieldValidator {
	fv.Validators = append(fv.Validators, validator)
	return fv
}

func (v *ValidationBuilder) Validate() *errors.AppError {
	var validationErrors []errors.ValidationError

	for _, field := range v.fields {
		if field.optional && isEmpty(field.Value) {
			continue
		}
		for _, validator := range field.Validators {
			err := validator(field.Value)
			if err == nil {
				continue
			}
			if details, ok := err.Details.(errors.ValidationErrors); ok {
				validationErrors = append(validationErrors, details.Errors...)
				continue
			}
			validationErrors = append(validationErrors, errors.ValidationError{
				Field:   field.FieldName,
				Message: err.Message,
				Code:    string(err.Code),
			})
		}
	}

	if len(validationErrors) > 0 {
		return errors.NewValidationError("Validation failed", errors.ErrCodeValidationFailed).
			WithDetails(errors.ValidationErrors{Errors: validationErrors})
	}

	return nil
}

// ----------------- RESULT -----------------

// Result accumulates field errors across the shape and business validation
// steps of a request. It is inspected once, right before persisting.
type Result struct {
	errs []errors.ValidationError
}

func NewResult() *Result {
	return &Result{}
}

func (r *Result) AddError(field, message string) {
	r.errs = append(r.errs, errors.ValidationError{Field: field, Message: message})
}

// Merge appends the field errors carried by an error returned from Validate.
func (r *Result) Merge(err *errors.AppError) {
	if err == nil {
		return
	}
	if details, ok := err.Details.(errors.ValidationErrors); ok {
		r.errs = append(r.errs, details.Errors...)
		return
	}
	r.errs = append(r.errs, errors.ValidationError{Message: err.Message, Code: string(err.Code)})
}

func (r *Result) HasErrors() bool {
	return len(r.errs) > 0
}

func (r *Result) Errors() []errors.ValidationError {
	return r.errs
}

func (r *Result) Messages() []string {
	messages := make([]string, len(r.errs))
	for i, e := range r.errs {
		messages[i] = e.Message
	}
	return messages
}

// Err converts the accumulated errors into a single validation AppError, or nil.
func (r *Result) Err() *errors.AppError {
	if !r.HasErrors() {
		return nil
	}
	return errors.NewValidationError("Validation failed", errors.ErrCodeValidationFailed).
		WithDetails(errors.ValidationErrors{Errors: r.errs})
}

// ----------------- RULES -----------------

func IsEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return false
	}
	at := strings.LastIndex(s, "@")
	return at > 0 && at < len(s)-1
}

// IsCPF validates the two check digits of an individual taxpayer number.
// Punctuation is ignored.
func IsCPF(s string) bool {
	d := digits(s)
	if len(d) != 11 || allEqual(d) {
		return false
	}
	return checkDigit(d[:9], 10) == d[9] && checkDigit(d[:10], 11) == d[10]
}

// IsCNPJ validates the two check digits of a company taxpayer number.
// Punctuation is ignored.
func IsCNPJ(s string) bool {
	d := digits(s)
	if len(d) != 14 || allEqual(d) {
		return false
	}
	w1 := []int{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	w2 := []int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	return weightedDigit(d[:12], w1) == d[12] && weightedDigit(d[:13], w2) == d[13]
}

// OnlyDigits strips everything but 0-9 from a document number.
func OnlyDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// MaxDecimal bounds decimal inputs to what a NUMERIC(10,2) column holds.
const MaxDecimal = 1e8

var plainDecimal = regexp.MustCompile(`^[0-9]+(\.[0-9]+)?$`)

// ParseDecimal accepts plain non-negative decimals below MaxDecimal. Signs,
// exponents, hex floats, NaN and Inf are rejected.
func ParseDecimal(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if !plainDecimal.MatchString(s) {
		return 0, fmt.Errorf("invalid decimal %q", s)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if f >= MaxDecimal {
		return 0, fmt.Errorf("decimal %q out of range", s)
	}
	return f, nil
}

// ParseTimestamp parses the wire timestamp layout in UTC.
func ParseTimestamp(s string) (time.Time, error) {
	return time.ParseInLocation(TimestampLayout, s, time.UTC)
}

func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

const TimestampLayout = "2006-01-02 15:04:05"

func digits(s string) []int {
	out := make([]int, 0, len(s))
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			out = append(out, int(r-'0'))
		case r == '.' || r == '-' || r == '/' || r == ' ':
		default:
			return nil
		}
	}
	return out
}

func allEqual(d []int) bool {
	for _, x := range d[1:] {
		if x != d[0] {
			return false
		}
	}
	return true
}

func checkDigit(d []int, weight int) int {
	sum := 0
	for _, x := range d {
		sum += x * weight
		weight--
	}
	rest := (sum * 10) % 11
	if rest == 10 {
		return 0
	}
	return rest
}

func weightedDigit(d, weights []int) int {
	sum := 0
	for i, x := range d {
		sum += x * weights[i]
	}
	rest := sum % 11
	if rest < 2 {
		return 0
	}
	return 11 - rest
}

func stringValue(value interface{}) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case *string:
		if v == nil {
			return "", true
		}
		return *v, true
	}
	return "", false
}

func isEmpty(value interface{}) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	case *string:
		return v == nil || strings.TrimSpace(*v) == ""
	case int64:
		return v == 0
	case *int64:
		return v == nil
	}
	return false
}
