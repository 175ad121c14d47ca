package services

import (
	"testing"

	"psikolog.link/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSettingFixture(t *testing.T) ISettingService {
	setupTestDB(t)
	return NewSettingServiceWith(repositories.NewSettingRepository())
}

func TestSettingSaveAndGet(t *testing.T) {
	svc := newSettingFixture(t)

	require.NoError(t, svc.Save(testCtx(), "site_title", "Uzm. Psk. Deniz Arslan"))

	value, err := svc.Get(testCtx(), "site_title")
	require.NoError(t, err)
	assert.Equal(t, "Uzm. Psk. Deniz Arslan", value)

	// Aynı anahtara yazmak değeri günceller.
	require.NoError(t, svc.Save(testCtx(), "site_title", "Yeni Başlık"))
	value, err = svc.Get(testCtx(), "site_title")
	require.NoError(t, err)
	assert.Equal(t, "Yeni Başlık", value)
}

func TestSettingGet_MissingKeyReturnsEmpty(t *testing.T) {
	svc := newSettingFixture(t)

	value, err := svc.Get(testCtx(), "tanimsiz_anahtar")
	require.NoError(t, err)
	assert.Empty(t, value)
}

func TestSettingSave_KeyRequired(t *testing.T) {
	svc := newSettingFixture(t)
	assert.ErrorIs(t, svc.Save(testCtx(), "  ", "deger"), ErrSettingKeyRequired)
}

func TestSettingSaveAll(t *testing.T) {
	svc := newSettingFixture(t)

	err := svc.SaveAll(testCtx(), map[string]string{
		"site_title":    "Başlık",
		"contact_email": "info@example.com",
	})
	require.NoError(t, err)

	all, err := svc.GetAll(testCtx())
	require.NoError(t, err)
	assert.Equal(t, "Başlık", all["site_title"])
	assert.Equal(t, "info@example.com", all["contact_email"])
}
