package csvimport

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateJSON_Partners(t *testing.T) {
	t.Run("valid document", func(t *testing.T) {
		errs, err := ValidateJSON(SchemaPartners, []byte(`[{"code":"PT001","name":"Acme","type":"agency"}]`))
		require.NoError(t, err)
		assert.Empty(t, errs)
	})

	t.Run("row errors carry index and column", func(t *testing.T) {
		doc := `[{"code":"PT001","name":"Acme","type":"agency"},{"code":"PT002","name":"Beta","type":"shop","email":1}]`
		errs, err := ValidateJSON(SchemaPartners, []byte(doc))
		require.NoError(t, err)
		require.Len(t, errs, 2)
		for _, e := range errs {
			assert.Equal(t, 2, e.Row)
			assert.Equal(t, ErrCodeImportSchema, e.Code)
		}
		columns := []string{errs[0].Column, errs[1].Column}
		assert.ElementsMatch(t, []string{"type", "email"}, columns)
	})

	t.Run("missing required field", func(t *testing.T) {
		errs, err := ValidateJSON(SchemaPartners, []byte(`[{"code":"PT001","type":"agency"}]`))
		require.NoError(t, err)
		require.Len(t, errs, 1)
		assert.Equal(t, 1, errs[0].Row)
	})

	t.Run("not an array", func(t *testing.T) {
		errs, err := ValidateJSON(SchemaPartners, []byte(`{"code":"PT001"}`))
		require.NoError(t, err)
		require.Len(t, errs, 1)
		assert.Equal(t, 0, errs[0].Row)
	})

	t.Run("malformed JSON", func(t *testing.T) {
		_, err := ValidateJSON(SchemaPartners, []byte(`[{`))
		assert.ErrorIs(t, err, ErrInvalidJSON)
	})

	t.Run("unknown schema", func(t *testing.T) {
		_, err := ValidateJSON("ghosts", []byte(`[]`))
		assert.ErrorIs(t, err, ErrUnknownSchema)
	})
}
