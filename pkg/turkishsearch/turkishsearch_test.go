package turkishsearch

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFold(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"İstanbul", "istanbul"},
		{"IŞIK", "isik"},
		{"Kaygı Bozukluğu", "kaygi bozuklugu"},
		{"ÇÖĞÜŞI", "cogusi"},
		{"hello", "hello"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Fold(tt.in), "Fold(%q)", tt.in)
	}
}

func TestContains(t *testing.T) {
	assert.True(t, Contains("Kaygı Bozukluğu ile Başa Çıkma", "KAYGI"))
	assert.True(t, Contains("İletişim", "iletisim"))
	assert.True(t, Contains("depresyon", "PRES"))
	assert.False(t, Contains("Kaygı", "depresyon"))
}

func TestSQLFilter(t *testing.T) {
	expr, args := SQLFilter("name", "Kaygı")

	assert.True(t, strings.HasPrefix(expr, "lower("))
	assert.True(t, strings.HasSuffix(expr, "LIKE ?"))
	assert.Contains(t, expr, "replace(")
	assert.Equal(t, []interface{}{"%kaygi%"}, args)
}
