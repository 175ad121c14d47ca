package services

import (
	"testing"
	"time"

	"psikolog.link/models"
	"psikolog.link/pkg/queryparams"
	"psikolog.link/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newBlogFixture(t *testing.T) (IBlogService, *gorm.DB) {
	db := setupTestDB(t)
	svc := NewBlogServiceWith(repositories.NewBlogRepositoryTx(db), fixedNow)
	return svc, db
}

func TestCreatePost_SlugFromTitle(t *testing.T) {
	svc, _ := newBlogFixture(t)

	post, err := svc.CreatePost(testCtx(), PostInput{
		Title:  "Kaygı Bozukluğu ile Başa Çıkma",
		Status: "published",
	})
	require.NoError(t, err)
	assert.Equal(t, "kaygi-bozuklugu-ile-basa-cikma", post.Slug)
	assert.Equal(t, models.PostStatusPublished, post.Status)
	require.NotNil(t, post.PublishedAt)
	assert.True(t, post.PublishedAt.Equal(fixedNow()))
}

func TestCreatePost_SlugCollision(t *testing.T) {
	svc, _ := newBlogFixture(t)

	first, err := svc.CreatePost(testCtx(), PostInput{Title: "Uyku Hijyeni"})
	require.NoError(t, err)
	second, err := svc.CreatePost(testCtx(), PostInput{Title: "Uyku Hijyeni"})
	require.NoError(t, err)
	third, err := svc.CreatePost(testCtx(), PostInput{Title: "Uyku Hijyeni"})
	require.NoError(t, err)

	assert.Equal(t, "uyku-hijyeni", first.Slug)
	assert.Equal(t, "uyku-hijyeni-2", second.Slug)
	assert.Equal(t, "uyku-hijyeni-3", third.Slug)
}

func TestCreatePost_Validation(t *testing.T) {
	svc, _ := newBlogFixture(t)

	_, err := svc.CreatePost(testCtx(), PostInput{Title: "   "})
	assert.ErrorIs(t, err, ErrBlogTitleRequired)

	_, err = svc.CreatePost(testCtx(), PostInput{Title: "Başlık", Status: "archived"})
	assert.ErrorIs(t, err, ErrBlogInvalidStatus)

	_, err = svc.CreatePost(testCtx(), PostInput{Title: "Başlık", FAQItems: "{bozuk json"})
	assert.ErrorIs(t, err, ErrBlogInvalidJSONField)
}

func TestCreatePost_DefaultsToDraft(t *testing.T) {
	svc, _ := newBlogFixture(t)

	post, err := svc.CreatePost(testCtx(), PostInput{Title: "Taslak Yazı"})
	require.NoError(t, err)
	assert.Equal(t, models.PostStatusDraft, post.Status)
	assert.Nil(t, post.PublishedAt)
}

func TestUpdatePost_PublishedAtStampedOnce(t *testing.T) {
	db := setupTestDB(t)
	current := fixedNow()
	svc := NewBlogServiceWith(repositories.NewBlogRepositoryTx(db), func() time.Time { return current })

	post, err := svc.CreatePost(testCtx(), PostInput{Title: "Yazı"})
	require.NoError(t, err)

	published, err := svc.UpdatePost(testCtx(), post.ID, PostInput{Title: "Yazı", Status: "published"})
	require.NoError(t, err)
	require.NotNil(t, published.PublishedAt)
	firstStamp := *published.PublishedAt

	// Saat ilerlese bile ilk yayın damgası korunur.
	current = current.Add(48 * time.Hour)
	again, err := svc.UpdatePost(testCtx(), post.ID, PostInput{Title: "Yazı v2", Status: "published"})
	require.NoError(t, err)
	require.NotNil(t, again.PublishedAt)
	assert.True(t, firstStamp.Equal(*again.PublishedAt))
}

func TestUpdatePost_KeepsOwnSlug(t *testing.T) {
	svc, _ := newBlogFixture(t)

	post, err := svc.CreatePost(testCtx(), PostInput{Title: "Sabit Yazı"})
	require.NoError(t, err)

	// Kendi slug'ı çakışma sayılmaz, sayısal ek almaz.
	updated, err := svc.UpdatePost(testCtx(), post.ID, PostInput{Title: "Sabit Yazı"})
	require.NoError(t, err)
	assert.Equal(t, "sabit-yazi", updated.Slug)
}

func TestGetPostBySlug_PublishedOnly(t *testing.T) {
	svc, _ := newBlogFixture(t)

	draft, err := svc.CreatePost(testCtx(), PostInput{Title: "Gizli Taslak"})
	require.NoError(t, err)

	_, err = svc.GetPostBySlug(testCtx(), draft.Slug, true)
	assert.ErrorIs(t, err, ErrBlogPostNotFound)

	found, err := svc.GetPostBySlug(testCtx(), draft.Slug, false)
	require.NoError(t, err)
	assert.Equal(t, draft.ID, found.ID)
}

func TestGetPostsPaginated_PublishedOnly(t *testing.T) {
	svc, _ := newBlogFixture(t)

	_, err := svc.CreatePost(testCtx(), PostInput{Title: "Yayında", Status: "published"})
	require.NoError(t, err)
	_, err = svc.CreatePost(testCtx(), PostInput{Title: "Taslak"})
	require.NoError(t, err)

	params := queryparams.DefaultListParams("")
	result, err := svc.GetPostsPaginated(testCtx(), params, true)
	require.NoError(t, err)
	assert.EqualValues(t, 1, result.Meta.TotalItems)

	all, err := svc.GetPostsPaginated(testCtx(), params, false)
	require.NoError(t, err)
	assert.EqualValues(t, 2, all.Meta.TotalItems)
}

func TestCategories_CRUD(t *testing.T) {
	svc, _ := newBlogFixture(t)

	cat, err := svc.CreateCategory(testCtx(), "Kaygı")
	require.NoError(t, err)
	assert.Equal(t, "kaygi", cat.Slug)

	_, err = svc.CreateCategory(testCtx(), "  ")
	assert.ErrorIs(t, err, ErrBlogCategoryNameEmpty)

	require.NoError(t, svc.UpdateCategory(testCtx(), cat.ID, "Kaygı ve Stres"))
	cats, err := svc.GetCategories(testCtx())
	require.NoError(t, err)
	require.Len(t, cats, 1)
	assert.Equal(t, "Kaygı ve Stres", cats[0].Name)

	assert.ErrorIs(t, svc.UpdateCategory(testCtx(), 9999, "Yok"), ErrBlogCategoryNotFound)

	require.NoError(t, svc.DeleteCategory(testCtx(), cat.ID))
	cats, err = svc.GetCategories(testCtx())
	require.NoError(t, err)
	assert.Empty(t, cats)
}

func TestDeletePost(t *testing.T) {
	svc, _ := newBlogFixture(t)

	post, err := svc.CreatePost(testCtx(), PostInput{Title: "Silinecek"})
	require.NoError(t, err)

	require.NoError(t, svc.DeletePost(testCtx(), post.ID, 1))
	_, err = svc.GetPostByID(testCtx(), post.ID)
	assert.ErrorIs(t, err, ErrBlogPostNotFound)

	assert.ErrorIs(t, svc.DeletePost(testCtx(), 9999, 1), ErrBlogPostNotFound)
}
