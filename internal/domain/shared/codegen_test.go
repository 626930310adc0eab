package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextCode(t *testing.T) {
	tests := []struct {
		name     string
		prefix   string
		width    int
		existing []string
		want     string
	}{
		{"gap is not filled", "FC", 3, []string{"FC001", "FC003"}, "FC004"},
		{"no codes", "FC", 3, nil, "FC001"},
		{"unordered input", "BR", 3, []string{"BR010", "BR002", "BR009"}, "BR011"},
		{"other prefixes ignored", "CP", 3, []string{"FC050", "CP004"}, "CP005"},
		{"codes without digits ignored", "FC", 3, []string{"FC", "FCX", "FC002"}, "FC003"},
		{"overflow keeps digits", "FC", 3, []string{"FC999"}, "FC1000"},
		{"wider width", "OD", 5, []string{"OD00041"}, "OD00042"},
		{"non-positive width uses default", "PT", 0, nil, "PT001"},
		{"suffix after letters", "FC", 3, []string{"FC-A007"}, "FC008"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextCode(tt.prefix, tt.width, tt.existing))
		})
	}
}
