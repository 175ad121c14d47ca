package slugify

import (
	"regexp"
	"strings"
)

var (
	turkishReplacer = strings.NewReplacer(
		"İ", "i", "I", "i", "ı", "i",
		"Ş", "s", "ş", "s",
		"Ğ", "g", "ğ", "g",
		"Ü", "u", "ü", "u",
		"Ö", "o", "ö", "o",
		"Ç", "c", "ç", "c",
	)
	nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)
	dashRuns     = regexp.MustCompile(`-{2,}`)
)

// Slug verilen Türkçe başlıktan URL dostu bir slug üretir.
func Slug(title string) string {
	s := strings.ToLower(turkishReplacer.Replace(strings.TrimSpace(title)))
	s = nonSlugChars.ReplaceAllString(s, "-")
	s = dashRuns.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
