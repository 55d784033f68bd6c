package services_test

import (
	"context"
	"testing"

	"github.com/akinalp/okundu/models"
	"github.com/akinalp/okundu/pkg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCommentPendingByDefault(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	admin := env.createUser(t, "admin", "admin@example.test", true)
	reader := env.createUser(t, "reader", "reader@example.test", false)
	subscriber := env.createUser(t, "subscriber", "subscriber@example.test", false)
	blog := env.createActiveBlog(t, "devlog")
	post := env.createPost(t, blog.ID, admin.ID, "first")

	require.NoError(t, env.subs.Subscribe(ctx, subscriber.ID, post.ID))

	comment, err := env.comments.CreateComment(ctx, reader.ID, post.ID,
		&models.CreateCommentRequest{Content: "nice"}, "")
	require.NoError(t, err)
	assert.Equal(t, models.CommentStatusPending, comment.Status)

	// Bekleyen yorum yan etki tetiklemez: mail yok
	assert.Empty(t, env.sender.sent())
}

func TestCreateCommentSuperadminPublishesImmediately(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	admin := env.createUser(t, "admin", "admin@example.test", true)
	subscriber := env.createUser(t, "subscriber", "subscriber@example.test", false)
	blog := env.createActiveBlog(t, "devlog")
	post := env.createPost(t, blog.ID, admin.ID, "first")

	// Abone yazıyı comment türünde okumuş olsun — yayın sıfırlamalı
	reset := true
	_, err := env.prefs.Update(ctx, subscriber.ID, &models.UpdatePrefsRequest{CommentReset: &reset})
	require.NoError(t, err)
	require.NoError(t, env.tracking.MarkRead(ctx, subscriber.ID, post.ID))
	require.NoError(t, env.subs.Subscribe(ctx, subscriber.ID, post.ID))

	comment, err := env.comments.CreateComment(ctx, admin.ID, post.ID,
		&models.CreateCommentRequest{Content: "announcement"}, "198.51.100.4")
	require.NoError(t, err)
	assert.Equal(t, models.CommentStatusPublished, comment.Status)

	// Yan etki 1: comment türü okuma kaydı silindi
	read, err := env.tracking.IsRead(ctx, subscriber.ID, post.ID)
	require.NoError(t, err)
	assert.False(t, read)

	// Yan etki 2: abone bilgilendirildi (yazar hariç)
	messages := env.sender.sent()
	require.Len(t, messages, 1)
	assert.Equal(t, "subscriber@example.test", messages[0].To)
}

func TestPublishCommentFiresEffectsOnce(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	admin := env.createUser(t, "admin", "admin@example.test", true)
	reader := env.createUser(t, "reader", "reader@example.test", false)
	subscriber := env.createUser(t, "subscriber", "subscriber@example.test", false)
	blog := env.createActiveBlog(t, "devlog")
	post := env.createPost(t, blog.ID, admin.ID, "first")

	require.NoError(t, env.subs.Subscribe(ctx, subscriber.ID, post.ID))

	comment, err := env.comments.CreateComment(ctx, reader.ID, post.ID,
		&models.CreateCommentRequest{Content: "pending one"}, "")
	require.NoError(t, err)
	require.Empty(t, env.sender.sent())

	published, err := env.comments.PublishComment(ctx, comment.ID, "")
	require.NoError(t, err)
	assert.Equal(t, models.CommentStatusPublished, published.Status)
	assert.Len(t, env.sender.sent(), 1)

	// Zaten yayındaki yorumu tekrar yayınlamak yan etkileri tekrarlamaz
	_, err = env.comments.PublishComment(ctx, comment.ID, "")
	require.NoError(t, err)
	assert.Len(t, env.sender.sent(), 1)
}

func TestDeleteCommentAuthorization(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	admin := env.createUser(t, "admin", "admin@example.test", true)
	author := env.createUser(t, "author", "author@example.test", false)
	other := env.createUser(t, "other", "other@example.test", false)
	blog := env.createActiveBlog(t, "devlog")
	post := env.createPost(t, blog.ID, admin.ID, "first")

	comment, err := env.comments.CreateComment(ctx, author.ID, post.ID,
		&models.CreateCommentRequest{Content: "mine"}, "")
	require.NoError(t, err)

	// Başkasının yorumunu sıradan kullanıcı silemez
	err = env.comments.DeleteComment(ctx, other.ID, comment.ID)
	assert.ErrorIs(t, err, pkg.ErrForbidden)

	// Yazar kendi yorumunu silebilir
	require.NoError(t, env.comments.DeleteComment(ctx, author.ID, comment.ID))

	_, err = env.comments.GetComments(ctx, post.ID)
	require.NoError(t, err)
}

func TestCreateCommentValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	admin := env.createUser(t, "admin", "admin@example.test", true)
	blog := env.createActiveBlog(t, "devlog")
	post := env.createPost(t, blog.ID, admin.ID, "first")

	_, err := env.comments.CreateComment(ctx, admin.ID, post.ID,
		&models.CreateCommentRequest{Content: "   "}, "")
	assert.ErrorIs(t, err, pkg.ErrBadRequest)

	_, err = env.comments.CreateComment(ctx, admin.ID, 9999,
		&models.CreateCommentRequest{Content: "hello"}, "")
	assert.ErrorIs(t, err, pkg.ErrNotFound)
}
