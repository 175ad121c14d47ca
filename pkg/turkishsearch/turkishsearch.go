package turkishsearch

import "strings"

// Türkçe'ye özgü büyük/küçük harf eşleşmeleri (İ/i, I/ı) standart lower()
// ile doğru çalışmadığı için arama hem uygulama hem SQL tarafında aksan ve
// harf katlamasıyla yapılır.

var foldReplacer = strings.NewReplacer(
	"İ", "i", "I", "i", "ı", "i",
	"Ş", "s", "ş", "s",
	"Ğ", "g", "ğ", "g",
	"Ü", "u", "ü", "u",
	"Ö", "o", "ö", "o",
	"Ç", "c", "ç", "c",
)

// Fold verilen metni Türkçe karakterleri sadeleştirilmiş, küçük harfli
// biçimine çevirir.
func Fold(s string) string {
	return strings.ToLower(foldReplacer.Replace(s))
}

// Contains haystack içinde needle'ı Türkçe duyarsız biçimde arar.
func Contains(haystack, needle string) bool {
	return strings.Contains(Fold(haystack), Fold(needle))
}

// SQLFilter verilen sütun için Türkçe duyarsız LIKE filtresi üretir.
// Dönen fragment WHERE koşulu olarak, args ise parametre olarak kullanılır.
func SQLFilter(column, term string) (string, []interface{}) {
	folded := "%" + Fold(term) + "%"
	expr := column
	for _, pair := range [][2]string{
		{"İ", "i"}, {"I", "i"}, {"ı", "i"},
		{"Ş", "s"}, {"ş", "s"},
		{"Ğ", "g"}, {"ğ", "g"},
		{"Ü", "u"}, {"ü", "u"},
		{"Ö", "o"}, {"ö", "o"},
		{"Ç", "c"}, {"ç", "c"},
	} {
		expr = "replace(" + expr + ", '" + pair[0] + "', '" + pair[1] + "')"
	}
	return "lower(" + expr + ") LIKE ?", []interface{}{folded}
}
