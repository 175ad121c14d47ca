package services

import (
	"testing"

	"psikolog.link/models"
	"psikolog.link/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPublicationFixture(t *testing.T) IPublicationService {
	setupTestDB(t)
	return NewPublicationServiceWith(repositories.NewPublicationRepository())
}

func TestCreatePublication(t *testing.T) {
	svc := newPublicationFixture(t)

	publication, err := svc.CreatePublication(testCtx(), PublicationInput{
		Title: " İyi Hissetme Rehberi ",
		Type:  "kitap",
		Date:  "2023-05-01",
	})
	require.NoError(t, err)
	assert.Equal(t, "İyi Hissetme Rehberi", publication.Title)
	assert.Equal(t, models.PublicationTypeBook, publication.Type)
	require.NotNil(t, publication.Date)
	assert.Equal(t, "2023-05-01", publication.Date.Format("2006-01-02"))
}

func TestCreatePublication_Validation(t *testing.T) {
	svc := newPublicationFixture(t)

	_, err := svc.CreatePublication(testCtx(), PublicationInput{Title: " ", Type: "kitap"})
	assert.ErrorIs(t, err, ErrPublicationTitleRequired)

	_, err = svc.CreatePublication(testCtx(), PublicationInput{Title: "Başlık", Type: "dergi"})
	assert.ErrorIs(t, err, ErrPublicationInvalidType)

	_, err = svc.CreatePublication(testCtx(), PublicationInput{Title: "Başlık", Type: "kitap", Date: "01.05.2023"})
	assert.ErrorIs(t, err, ErrPublicationInvalidDate)
}

func TestUpdatePublication_ClearsDate(t *testing.T) {
	svc := newPublicationFixture(t)

	publication, err := svc.CreatePublication(testCtx(), PublicationInput{
		Title: "Makale", Type: "makale", Date: "2024-01-15",
	})
	require.NoError(t, err)

	require.NoError(t, svc.UpdatePublication(testCtx(), publication.ID, PublicationInput{
		Title: "Makale (güncel)", Type: "makale",
	}))

	updated, err := svc.GetPublicationByID(testCtx(), publication.ID)
	require.NoError(t, err)
	assert.Equal(t, "Makale (güncel)", updated.Title)
	assert.Nil(t, updated.Date)

	assert.ErrorIs(t, svc.UpdatePublication(testCtx(), 9999, PublicationInput{Title: "X", Type: "kitap"}), ErrPublicationNotFound)
}

func TestGetPublicationsGrouped(t *testing.T) {
	svc := newPublicationFixture(t)

	seed := []PublicationInput{
		{Title: "Kitap 1", Type: "kitap"},
		{Title: "Makale 1", Type: "makale"},
		{Title: "Makale 2", Type: "makale"},
		{Title: "Podcast Konuğu", Type: "podcast"},
	}
	for _, input := range seed {
		_, err := svc.CreatePublication(testCtx(), input)
		require.NoError(t, err)
	}

	grouped, err := svc.GetPublicationsGrouped(testCtx())
	require.NoError(t, err)
	assert.Len(t, grouped[models.PublicationTypeBook], 1)
	assert.Len(t, grouped[models.PublicationTypeArticle], 2)
	assert.Len(t, grouped[models.PublicationTypePodcast], 1)

	articles, err := svc.GetPublicationsByType(testCtx(), models.PublicationTypeArticle)
	require.NoError(t, err)
	assert.Len(t, articles, 2)
}

func TestDeletePublication(t *testing.T) {
	svc := newPublicationFixture(t)

	publication, err := svc.CreatePublication(testCtx(), PublicationInput{Title: "Silinecek", Type: "kitap"})
	require.NoError(t, err)

	require.NoError(t, svc.DeletePublication(testCtx(), publication.ID))
	assert.ErrorIs(t, svc.DeletePublication(testCtx(), publication.ID), ErrPublicationNotFound)
}
