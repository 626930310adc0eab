package csvimport

import (
	"fmt"
	"net/mail"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FieldType represents the expected type of a field
type FieldType string

const (
	TypeString  FieldType = "string"
	TypeInt     FieldType = "int"
	TypeDecimal FieldType = "decimal"
	TypeDate    FieldType = "date"
	TypeEmail   FieldType = "email"
	TypeUUID    FieldType = "uuid"
)

// DateFormats are the layouts accepted for date columns.
var DateFormats = []string{"2006-01-02", "2006/01/02", "2006/1/2"}

// FieldRule defines validation rules for a field
type FieldRule struct {
	Column    string
	Type      FieldType
	Required  bool
	MaxLength int
	MinValue  *decimal.Decimal
	OneOf     []string
	Unique    bool
}

// FieldRuleBuilder helps build field rules fluently
type FieldRuleBuilder struct {
	rule FieldRule
}

// Field creates a new field rule builder
func Field(column string) *FieldRuleBuilder {
	return &FieldRuleBuilder{rule: FieldRule{Column: column, Type: TypeString}}
}

func (b *FieldRuleBuilder) Required() *FieldRuleBuilder {
	b.rule.Required = true
	return b
}

func (b *FieldRuleBuilder) Int() *FieldRuleBuilder {
	b.rule.Type = TypeInt
	return b
}

func (b *FieldRuleBuilder) Decimal() *FieldRuleBuilder {
	b.rule.Type = TypeDecimal
	return b
}

func (b *FieldRuleBuilder) Date() *FieldRuleBuilder {
	b.rule.Type = TypeDate
	return b
}

func (b *FieldRuleBuilder) Email() *FieldRuleBuilder {
	b.rule.Type = TypeEmail
	return b
}

func (b *FieldRuleBuilder) UUID() *FieldRuleBuilder {
	b.rule.Type = TypeUUID
	return b
}

// MaxLength limits the value length in characters.
func (b *FieldRuleBuilder) MaxLength(n int) *FieldRuleBuilder {
	b.rule.MaxLength = n
	return b
}

// MinValue sets the minimum numeric value
func (b *FieldRuleBuilder) MinValue(v decimal.Decimal) *FieldRuleBuilder {
	b.rule.MinValue = &v
	return b
}

// OneOf restricts the value to an enumeration.
func (b *FieldRuleBuilder) OneOf(values ...string) *FieldRuleBuilder {
	b.rule.OneOf = values
	return b
}

// Unique marks the field as unique within the file
func (b *FieldRuleBuilder) Unique() *FieldRuleBuilder {
	b.rule.Unique = true
	return b
}

// Build returns the built field rule
func (b *FieldRuleBuilder) Build() FieldRule {
	return b.rule
}

// FieldValidator validates rows against an ordered set of rules.
type FieldValidator struct {
	rules       []FieldRule
	uniqueCheck map[string]map[string]int
	errors      *ErrorCollection
}

// NewFieldValidator creates a new field validator
func NewFieldValidator(rules []FieldRule, errs *ErrorCollection) *FieldValidator {
	if errs == nil {
		errs = NewErrorCollection(0)
	}
	return &FieldValidator{
		rules:       rules,
		uniqueCheck: make(map[string]map[string]int),
		errors:      errs,
	}
}

// RequiredColumns returns the columns flagged as required.
func (v *FieldValidator) RequiredColumns() []string {
	var cols []string
	for _, r := range v.rules {
		if r.Required {
			cols = append(cols, r.Column)
		}
	}
	return cols
}

// ValidateRow records every rule violation in the row and reports whether
// the row is clean.
func (v *FieldValidator) ValidateRow(row *Row) bool {
	ok := true
	for _, rule := range v.rules {
		value := row.Get(rule.Column)
		if value == "" {
			if rule.Required {
				v.errors.Add(NewRowError(row.LineNumber, rule.Column, ErrCodeImportRequiredField,
					fmt.Sprintf("field '%s' is required", rule.Column)))
				ok = false
			}
			continue
		}

		if err := validateType(value, rule.Type); err != nil {
			v.errors.Add(RowError{Row: row.LineNumber, Column: rule.Column, Code: ErrCodeImportInvalidType,
				Message: fmt.Sprintf("expected %s", rule.Type), Value: value})
			ok = false
			continue
		}

		if rule.MaxLength > 0 && utf8.RuneCountInString(value) > rule.MaxLength {
			v.errors.Add(NewRowError(row.LineNumber, rule.Column, ErrCodeImportInvalidLength,
				fmt.Sprintf("length must be at most %d", rule.MaxLength)))
			ok = false
		}

		if rule.MinValue != nil {
			if d, err := decimal.NewFromString(value); err == nil && d.LessThan(*rule.MinValue) {
				v.errors.Add(RowError{Row: row.LineNumber, Column: rule.Column, Code: ErrCodeImportInvalidRange,
					Message: fmt.Sprintf("value must be at least %s", rule.MinValue.String()), Value: value})
				ok = false
			}
		}

		if len(rule.OneOf) > 0 && !contains(rule.OneOf, value) {
			v.errors.Add(RowError{Row: row.LineNumber, Column: rule.Column, Code: ErrCodeImportInvalidValue,
				Message: fmt.Sprintf("must be one of %s", strings.Join(rule.OneOf, ", ")), Value: value})
			ok = false
		}

		if rule.Unique {
			seen := v.uniqueCheck[rule.Column]
			if seen == nil {
				seen = make(map[string]int)
				v.uniqueCheck[rule.Column] = seen
			}
			if first, exists := seen[value]; exists {
				v.errors.Add(RowError{Row: row.LineNumber, Column: rule.Column, Code: ErrCodeImportDuplicateInFile,
					Message: fmt.Sprintf("duplicate value (first seen in row %d)", first), Value: value})
				ok = false
			} else {
				seen[value] = row.LineNumber
			}
		}
	}
	return ok
}

// Errors returns the error collection
func (v *FieldValidator) Errors() *ErrorCollection {
	return v.errors
}

func validateType(value string, fieldType FieldType) error {
	switch fieldType {
	case TypeInt:
		_, err := strconv.ParseInt(value, 10, 64)
		return err
	case TypeDecimal:
		_, err := decimal.NewFromString(value)
		return err
	case TypeDate:
		_, err := ParseDate(value)
		return err
	case TypeEmail:
		_, err := mail.ParseAddress(value)
		return err
	case TypeUUID:
		_, err := uuid.Parse(value)
		return err
	}
	return nil
}

// ParseDate parses a date column in any of DateFormats.
func ParseDate(value string) (time.Time, error) {
	var lastErr error
	for _, layout := range DateFormats {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}
