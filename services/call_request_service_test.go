package services

import (
	"testing"

	"psikolog.link/models"
	"psikolog.link/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newCallRequestFixture(t *testing.T) (ICallRequestService, *gorm.DB) {
	db := setupTestDB(t)
	svc := NewCallRequestServiceWith(repositories.NewCallRequestRepositoryTx(db))
	return svc, db
}

func TestSubmitCallRequest(t *testing.T) {
	svc, _ := newCallRequestFixture(t)

	request, err := svc.SubmitCallRequest(testCtx(), CallRequestInput{
		Name:          " Fatma Kaya ",
		Phone:         "+90 555 111 22 33",
		PreferredTime: "hafta içi 09-12",
	})
	require.NoError(t, err)
	assert.Equal(t, "Fatma Kaya", request.Name)
	assert.Equal(t, models.CallRequestStatusPending, request.Status)
	assert.Nil(t, request.CalledAt)
}

func TestSubmitCallRequest_Validation(t *testing.T) {
	svc, _ := newCallRequestFixture(t)

	_, err := svc.SubmitCallRequest(testCtx(), CallRequestInput{Name: " ", Phone: "+905551112233"})
	assert.ErrorIs(t, err, ErrCallRequestNameRequired)

	invalidPhones := []string{"", "123", "telefon yok", "+90555111223344556677889900"}
	for _, phone := range invalidPhones {
		_, err := svc.SubmitCallRequest(testCtx(), CallRequestInput{Name: "Ad", Phone: phone})
		assert.ErrorIs(t, err, ErrCallRequestPhoneInvalid, "phone: %q", phone)
	}
}

func TestMarkCalled(t *testing.T) {
	svc, db := newCallRequestFixture(t)

	request, err := svc.SubmitCallRequest(testCtx(), CallRequestInput{Name: "Ad", Phone: "+905551112233"})
	require.NoError(t, err)

	require.NoError(t, svc.MarkCalled(testCtx(), request.ID))

	var stored models.CallRequest
	require.NoError(t, db.First(&stored, request.ID).Error)
	assert.Equal(t, models.CallRequestStatusCalled, stored.Status)
	assert.NotNil(t, stored.CalledAt)

	assert.ErrorIs(t, svc.MarkCalled(testCtx(), 9999), ErrCallRequestNotFound)
}

func TestDeleteCallRequest(t *testing.T) {
	svc, _ := newCallRequestFixture(t)

	request, err := svc.SubmitCallRequest(testCtx(), CallRequestInput{Name: "Ad", Phone: "+905551112233"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteCallRequest(testCtx(), request.ID))
	assert.ErrorIs(t, svc.DeleteCallRequest(testCtx(), request.ID), ErrCallRequestNotFound)
}
