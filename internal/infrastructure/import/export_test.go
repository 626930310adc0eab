package csvimport

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteCSV_WithBOM(t *testing.T) {
	var buf bytes.Buffer
	err := WriteCSV(&buf, Table{
		Headers: []string{"code", "name"},
		Rows:    [][]string{{"PT001", "株式会社サンプル"}, {"PT002", "a,b"}},
	})
	require.NoError(t, err)

	out := buf.Bytes()
	assert.Equal(t, utf8BOM, out[:3])
	assert.Equal(t, "code,name\nPT001,株式会社サンプル\nPT002,\"a,b\"\n", string(out[3:]))

	// Round trip through the parser.
	parser, err := NewCSVParser(bytes.NewReader(out))
	require.NoError(t, err)
	require.NoError(t, parser.ParseHeader())
	rows, err := parser.ReadAllRows()
	require.NoError(t, err)
	assert.Equal(t, "a,b", rows[1].Get("name"))
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatJSON, Table{Records: []map[string]string{{"code": "PT001"}}}))

	var got []map[string]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "PT001", got[0]["code"])

	buf.Reset()
	require.NoError(t, WriteJSON(&buf, Table{}))
	assert.Equal(t, "[]", strings.TrimSpace(buf.String()))
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, f)
	assert.Equal(t, "text/csv; charset=utf-8", f.ContentType())

	f, err = ParseFormat("json")
	require.NoError(t, err)
	assert.Equal(t, "json", f.Extension())

	_, err = ParseFormat("xlsx")
	assert.Error(t, err)
}
