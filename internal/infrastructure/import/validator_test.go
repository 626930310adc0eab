package csvimport

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kioskRules() []FieldRule {
	return []FieldRule{
		Field("serial_number").Required().MaxLength(50).Unique().Build(),
		Field("status").OneOf("in_stock", "installed").Build(),
		Field("list_price").Decimal().MinValue(decimal.Zero).Build(),
		Field("installed_at").Date().Build(),
	}
}

func row(line int, data map[string]string) *Row {
	return &Row{LineNumber: line, Data: data}
}

func TestFieldValidator_ValidateRow(t *testing.T) {
	v := NewFieldValidator(kioskRules(), nil)
	assert.Equal(t, []string{"serial_number"}, v.RequiredColumns())

	assert.True(t, v.ValidateRow(row(2, map[string]string{
		"serial_number": "K-1", "status": "in_stock", "list_price": "1200000", "installed_at": "2024/4/1",
	})))
	assert.False(t, v.Errors().HasErrors())

	assert.False(t, v.ValidateRow(row(3, map[string]string{"serial_number": ""})))
	assert.False(t, v.ValidateRow(row(4, map[string]string{"serial_number": "K-1"})))
	assert.False(t, v.ValidateRow(row(5, map[string]string{"serial_number": "K-5", "status": "gone"})))
	assert.False(t, v.ValidateRow(row(6, map[string]string{"serial_number": "K-6", "list_price": "-1"})))
	assert.False(t, v.ValidateRow(row(7, map[string]string{"serial_number": "K-7", "list_price": "abc"})))
	assert.False(t, v.ValidateRow(row(8, map[string]string{"serial_number": "K-8", "installed_at": "04-01-2024"})))

	errs := v.Errors().Errors()
	require.Len(t, errs, 6)
	codes := make([]string, len(errs))
	for i, e := range errs {
		codes[i] = e.Code
	}
	assert.Equal(t, []string{
		ErrCodeImportRequiredField,
		ErrCodeImportDuplicateInFile,
		ErrCodeImportInvalidValue,
		ErrCodeImportInvalidRange,
		ErrCodeImportInvalidType,
		ErrCodeImportInvalidType,
	}, codes)
	assert.Equal(t, "row 3, column 'serial_number': field 'serial_number' is required", errs[0].Error())
}

func TestErrorCollection_Truncates(t *testing.T) {
	ec := NewErrorCollection(2)
	for i := 0; i < 5; i++ {
		ec.Add(NewRowError(i, "", ErrCodeImportSave, "x"))
	}
	assert.Len(t, ec.Errors(), 2)
	assert.Equal(t, 5, ec.TotalCount())
	assert.True(t, ec.IsTruncated())
}
