package slugify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlug(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Kaygı Bozukluğu ile Başa Çıkma", "kaygi-bozuklugu-ile-basa-cikma"},
		{"İlişkilerde Güven", "iliskilerde-guven"},
		{"  Çocuk & Ergen Terapisi  ", "cocuk-ergen-terapisi"},
		{"Zaten-tireli---başlık", "zaten-tireli-baslik"},
		{"2024 Yılına Bakış", "2024-yilina-bakis"},
		{"???", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Slug(tt.in), "Slug(%q)", tt.in)
	}
}
