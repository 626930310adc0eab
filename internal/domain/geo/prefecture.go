// Package geo derives prefecture, city, region and area from Japanese postal
// addresses.
package geo

import (
	"regexp"
	"strings"

	"golang.org/x/text/width"
)

// Prefectures lists the 47 prefectures of Japan in JIS X 0401 order.
// Extraction scans this slice front to back.
var Prefectures = []string{
	"北海道",
	"青森県", "岩手県", "宮城県", "秋田県", "山形県", "福島県",
	"茨城県", "栃木県", "群馬県", "埼玉県", "千葉県", "東京都", "神奈川県",
	"新潟県", "富山県", "石川県", "福井県", "山梨県", "長野県", "岐阜県", "静岡県", "愛知県",
	"三重県", "滋賀県", "京都府", "大阪府", "兵庫県", "奈良県", "和歌山県",
	"鳥取県", "島根県", "岡山県", "広島県", "山口県",
	"徳島県", "香川県", "愛媛県", "高知県",
	"福岡県", "佐賀県", "長崎県", "熊本県", "大分県", "宮崎県", "鹿児島県",
	"沖縄県",
}

var prefectureSet = func() map[string]struct{} {
	m := make(map[string]struct{}, len(Prefectures))
	for _, p := range Prefectures {
		m[p] = struct{}{}
	}
	return m
}()

// cityPattern matches the shortest leading run that ends in a municipality
// suffix. At least one character must precede the suffix.
var cityPattern = regexp.MustCompile(`^(.+?[市区町村])`)

// IsPrefecture reports whether name is one of the 47 prefectures.
func IsPrefecture(name string) bool {
	_, ok := prefectureSet[name]
	return ok
}

// NormalizeAddress folds full-width alphanumerics to ASCII, half-width kana
// to full-width and trims surrounding whitespace, including U+3000.
func NormalizeAddress(address string) string {
	return strings.TrimSpace(width.Fold.String(address))
}

// ExtractPrefecture returns the first prefecture in Prefectures that occurs
// anywhere in address.
func ExtractPrefecture(address string) (string, bool) {
	if address == "" {
		return "", false
	}
	for _, p := range Prefectures {
		if strings.Contains(address, p) {
			return p, true
		}
	}
	return "", false
}

// ExtractCity returns the municipality that follows prefecture in address:
// the shortest prefix of the remainder that ends in 市, 区, 町 or 村.
func ExtractCity(address, prefecture string) (string, bool) {
	if prefecture == "" {
		return "", false
	}
	idx := strings.Index(address, prefecture)
	if idx < 0 {
		return "", false
	}
	rest := strings.TrimSpace(address[idx+len(prefecture):])
	m := cityPattern.FindStringSubmatch(rest)
	if m == nil {
		return "", false
	}
	return m[1], true
}
