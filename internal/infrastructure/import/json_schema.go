package csvimport

import (
	"embed"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schemas/*.schema.json
var schemaFS embed.FS

// SchemaPartners validates a JSON array of partner records.
const SchemaPartners = "partners"

var (
	schemaMu    sync.Mutex
	schemaCache = map[string]*gojsonschema.Schema{}
)

func loadSchema(name string) (*gojsonschema.Schema, error) {
	schemaMu.Lock()
	defer schemaMu.Unlock()

	if s, ok := schemaCache[name]; ok {
		return s, nil
	}
	raw, err := schemaFS.ReadFile("schemas/" + name + ".schema.json")
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSchema, name)
	}
	s, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return nil, fmt.Errorf("compile schema %s: %w", name, err)
	}
	schemaCache[name] = s
	return s, nil
}

// ValidateJSON checks a document against an embedded schema. Violations are
// returned as row errors, where the row is the 1-based array index (0 for
// document-level problems). A malformed document yields ErrInvalidJSON.
func ValidateJSON(schemaName string, document []byte) ([]RowError, error) {
	schema, err := loadSchema(schemaName)
	if err != nil {
		return nil, err
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(document))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	if result.Valid() {
		return nil, nil
	}

	out := make([]RowError, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		row, column := splitField(desc.Field())
		out = append(out, RowError{
			Row:     row,
			Column:  column,
			Code:    ErrCodeImportSchema,
			Message: desc.Description(),
		})
	}
	return out, nil
}

// splitField turns a gojsonschema field path such as "3.email" into the
// 1-based row and the column name.
func splitField(field string) (int, string) {
	if field == "" || field == "(root)" {
		return 0, ""
	}
	idx, rest, _ := strings.Cut(field, ".")
	n, err := strconv.Atoi(idx)
	if err != nil {
		return 0, field
	}
	return n + 1, rest
}
