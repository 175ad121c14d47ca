package services

import (
	"strings"
	"testing"

	"psikolog.link/models"
	"psikolog.link/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newCommentFixture(t *testing.T) (ICommentService, *gorm.DB) {
	db := setupTestDB(t)
	svc := NewCommentServiceWith(
		repositories.NewCommentRepositoryTx(db),
		repositories.NewBlogRepositoryTx(db),
	)
	return svc, db
}

func seedPublishedPost(t *testing.T, db *gorm.DB, slug string) models.BlogPost {
	t.Helper()
	post := models.BlogPost{Title: "Yazı: " + slug, Slug: slug, Status: models.PostStatusPublished}
	require.NoError(t, db.Create(&post).Error)
	return post
}

func validComment(slug string) CommentInput {
	return CommentInput{
		PostSlug:   slug,
		AuthorName: "Ali Veli",
		Email:      "Ali@Example.com",
		Content:    "Çok faydalı bir yazı, teşekkürler.",
	}
}

func TestSubmitComment_PendingByDefault(t *testing.T) {
	svc, db := newCommentFixture(t)
	post := seedPublishedPost(t, db, "kaygi")

	comment, err := svc.SubmitComment(testCtx(), validComment("kaygi"))
	require.NoError(t, err)
	assert.Equal(t, post.ID, comment.PostID)
	assert.Equal(t, models.CommentStatusPending, comment.Status)
	assert.Equal(t, "ali@example.com", comment.AuthorEmail)
	assert.False(t, comment.IsRead)
}

func TestSubmitComment_Validation(t *testing.T) {
	svc, db := newCommentFixture(t)
	seedPublishedPost(t, db, "kaygi")

	tests := []struct {
		name    string
		mutate  func(*CommentInput)
		wantErr error
	}{
		{"isim boş", func(in *CommentInput) { in.AuthorName = "  " }, ErrCommentNameRequired},
		{"e-posta geçersiz", func(in *CommentInput) { in.Email = "gecersiz" }, ErrCommentEmailInvalid},
		{"içerik boş", func(in *CommentInput) { in.Content = "   " }, ErrCommentContentEmpty},
		{"içerik çok uzun", func(in *CommentInput) { in.Content = strings.Repeat("a", maxCommentLength+1) }, ErrCommentContentTooLong},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validComment("kaygi")
			tt.mutate(&input)
			_, err := svc.SubmitComment(testCtx(), input)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestSubmitComment_OnlyPublishedPosts(t *testing.T) {
	svc, db := newCommentFixture(t)

	draft := models.BlogPost{Title: "Taslak", Slug: "taslak", Status: models.PostStatusDraft}
	require.NoError(t, db.Create(&draft).Error)

	_, err := svc.SubmitComment(testCtx(), validComment("taslak"))
	assert.ErrorIs(t, err, ErrCommentPostNotFound)

	_, err = svc.SubmitComment(testCtx(), validComment("hic-yok"))
	assert.ErrorIs(t, err, ErrCommentPostNotFound)
}

func TestModerate_AndApprovedListing(t *testing.T) {
	svc, db := newCommentFixture(t)
	post := seedPublishedPost(t, db, "kaygi")

	first, err := svc.SubmitComment(testCtx(), validComment("kaygi"))
	require.NoError(t, err)
	second, err := svc.SubmitComment(testCtx(), validComment("kaygi"))
	require.NoError(t, err)

	// Bekleyen yorumlar public listede görünmez.
	approved, err := svc.GetApprovedByPost(testCtx(), post.ID)
	require.NoError(t, err)
	assert.Empty(t, approved)

	require.NoError(t, svc.Moderate(testCtx(), first.ID, models.CommentStatusApproved))
	require.NoError(t, svc.Moderate(testCtx(), second.ID, models.CommentStatusRejected))

	approved, err = svc.GetApprovedByPost(testCtx(), post.ID)
	require.NoError(t, err)
	require.Len(t, approved, 1)
	assert.Equal(t, first.ID, approved[0].ID)
}

func TestModerate_InvalidStatus(t *testing.T) {
	svc, db := newCommentFixture(t)
	seedPublishedPost(t, db, "kaygi")

	comment, err := svc.SubmitComment(testCtx(), validComment("kaygi"))
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Moderate(testCtx(), comment.ID, models.CommentStatusPending), ErrCommentInvalidStatus)
	assert.ErrorIs(t, svc.Moderate(testCtx(), comment.ID, "silinmis"), ErrCommentInvalidStatus)
	assert.ErrorIs(t, svc.Moderate(testCtx(), 9999, models.CommentStatusApproved), ErrCommentNotFound)
}

func TestCommentMarkRead_KeepsModerationStatus(t *testing.T) {
	svc, db := newCommentFixture(t)
	seedPublishedPost(t, db, "kaygi")

	comment, err := svc.SubmitComment(testCtx(), validComment("kaygi"))
	require.NoError(t, err)

	require.NoError(t, svc.MarkRead(testCtx(), comment.ID))

	var stored models.BlogComment
	require.NoError(t, db.First(&stored, comment.ID).Error)
	assert.True(t, stored.IsRead)
	assert.Equal(t, models.CommentStatusPending, stored.Status)
}

func TestDeleteComment(t *testing.T) {
	svc, db := newCommentFixture(t)
	seedPublishedPost(t, db, "kaygi")

	comment, err := svc.SubmitComment(testCtx(), validComment("kaygi"))
	require.NoError(t, err)

	require.NoError(t, svc.DeleteComment(testCtx(), comment.ID))
	assert.ErrorIs(t, svc.DeleteComment(testCtx(), comment.ID), ErrCommentNotFound)
}
