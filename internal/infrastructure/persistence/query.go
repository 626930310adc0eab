package persistence

import (
	"strings"

	"github.com/kioskcrm/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// ValidateSortOrder normalizes the sort order to ASC or DESC, defaulting to DESC.
func ValidateSortOrder(orderDir string) string {
	if strings.ToUpper(strings.TrimSpace(orderDir)) == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField returns sortField when it is whitelisted, otherwise defaultField.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed != "" && allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// listSpec describes how a repository turns a shared.Filter into SQL.
type listSpec struct {
	// searchColumns are matched case-insensitively against Filter.Search.
	searchColumns []string
	// sortFields whitelists Filter.OrderBy.
	sortFields map[string]bool
	// filterColumns maps Filter.Filters keys to columns compared with "=".
	filterColumns map[string]string
	defaultSort   string
}

func sortFields(extra ...string) map[string]bool {
	m := map[string]bool{"id": true, "created_at": true, "updated_at": true}
	for _, f := range extra {
		m[f] = true
	}
	return m
}

// where applies search and equality filters without paging or ordering.
func (s listSpec) where(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if search := strings.TrimSpace(filter.Search); search != "" && len(s.searchColumns) > 0 {
		pattern := "%" + strings.ToLower(search) + "%"
		clauses := make([]string, len(s.searchColumns))
		args := make([]any, len(s.searchColumns))
		for i, col := range s.searchColumns {
			clauses[i] = "LOWER(" + col + ") LIKE ?"
			args[i] = pattern
		}
		query = query.Where("("+strings.Join(clauses, " OR ")+")", args...)
	}
	for key, value := range filter.Filters {
		col, ok := s.filterColumns[key]
		if !ok || isBlank(value) {
			continue
		}
		query = query.Where(col+" = ?", value)
	}
	return query
}

// apply adds where, ordering and paging.
func (s listSpec) apply(query *gorm.DB, filter shared.Filter) *gorm.DB {
	filter = filter.Normalize()
	query = s.where(query, filter)

	defaultSort := s.defaultSort
	if defaultSort == "" {
		defaultSort = "created_at"
	}
	orderBy := ValidateSortField(filter.OrderBy, s.sortFields, defaultSort)
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	return query.Offset(filter.Offset()).Limit(filter.PageSize)
}

func isBlank(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(t) == ""
	}
	return false
}

// prefixPattern escapes LIKE wildcards in prefix and appends %.
func prefixPattern(prefix string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(prefix) + "%"
}
