package shared

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Code prefixes and widths for sequentially allocated business codes.
const (
	CodePrefixFC          = "FC"
	CodePrefixCorporation = "CP"
	CodePrefixBranch      = "BR"
	CodePrefixPartner     = "PT"
	CodePrefixOrder       = "OD"

	DefaultCodeWidth = 3
	OrderCodeWidth   = 5
)

var trailingDigits = regexp.MustCompile(`(\d+)$`)

// NextCode returns the code following the highest numeric suffix among the
// existing codes that start with prefix. Codes without a trailing number
// count as zero. The result is zero-padded to width; larger numbers keep
// all their digits.
func NextCode(prefix string, width int, existing []string) string {
	maxN := 0
	for _, code := range existing {
		if !strings.HasPrefix(code, prefix) {
			continue
		}
		m := trailingDigits.FindStringSubmatch(code[len(prefix):])
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if n > maxN {
			maxN = n
		}
	}
	if width < 1 {
		width = DefaultCodeWidth
	}
	return fmt.Sprintf("%s%0*d", prefix, width, maxN+1)
}
