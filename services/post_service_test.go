package services_test

import (
	"context"
	"testing"

	"github.com/akinalp/okundu/models"
	"github.com/akinalp/okundu/pkg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViewPostMarksRead(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	admin := env.createUser(t, "admin", "admin@example.test", true)
	reader := env.createUser(t, "reader", "reader@example.test", false)
	blog := env.createActiveBlog(t, "devlog")
	post := env.createPost(t, blog.ID, admin.ID, "first")

	// Görüntülemek = okumak
	viewed, err := env.posts.ViewPost(ctx, reader.ID, post.ID)
	require.NoError(t, err)
	assert.Equal(t, post.ID, viewed.ID)
	assert.Equal(t, "first", viewed.Title)

	read, err := env.tracking.IsRead(ctx, reader.ID, post.ID)
	require.NoError(t, err)
	assert.True(t, read)
}

func TestViewPostOnInactiveBlog(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	admin := env.createUser(t, "admin", "admin@example.test", true)
	reader := env.createUser(t, "reader", "reader@example.test", false)
	blog := env.createBlog(t, "quiet") // takip kapalı
	post := env.createPost(t, blog.ID, admin.ID, "first")

	// Takip kapalıyken görüntüleme çalışır, kayıt düşmez
	_, err := env.posts.ViewPost(ctx, reader.ID, post.ID)
	require.NoError(t, err)

	read, err := env.tracking.IsRead(ctx, reader.ID, post.ID)
	require.NoError(t, err)
	assert.False(t, read)
}

func TestListPostsDecoratesForViewer(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	admin := env.createUser(t, "admin", "admin@example.test", true)
	reader := env.createUser(t, "reader", "reader@example.test", false)
	blog := env.createActiveBlog(t, "devlog")
	p1 := env.createPost(t, blog.ID, admin.ID, "first")
	env.createPost(t, blog.ID, admin.ID, "second")

	env.enableArtifact(t, reader.ID)
	require.NoError(t, env.tracking.MarkRead(ctx, reader.ID, p1.ID))

	posts, err := env.posts.ListPosts(ctx, reader.ID, blog.ID)
	require.NoError(t, err)
	require.Len(t, posts, 2)

	byTitle := make(map[string]models.DecoratedPost, len(posts))
	for _, p := range posts {
		byTitle[p.Title] = p
	}
	assert.True(t, byTitle["first"].Read)
	assert.Empty(t, byTitle["first"].Artifact)
	assert.False(t, byTitle["second"].Read)
	assert.NotEmpty(t, byTitle["second"].Artifact)
}

func TestDeletePostCascadesTracking(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	admin := env.createUser(t, "admin", "admin@example.test", true)
	reader := env.createUser(t, "reader", "reader@example.test", false)
	blog := env.createActiveBlog(t, "devlog")
	post := env.createPost(t, blog.ID, admin.ID, "first")

	require.NoError(t, env.tracking.MarkRead(ctx, reader.ID, post.ID))
	require.NoError(t, env.subs.Subscribe(ctx, reader.ID, post.ID))

	// Sıradan kullanıcı başkasının yazısını silemez
	err := env.posts.DeletePost(ctx, reader.ID, post.ID)
	assert.ErrorIs(t, err, pkg.ErrForbidden)

	require.NoError(t, env.posts.DeletePost(ctx, admin.ID, post.ID))

	// Takip ve abonelik satırları yazıyla birlikte gider (ON DELETE CASCADE)
	var count int
	require.NoError(t, env.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM tracking WHERE post_id = ?", post.ID).Scan(&count))
	assert.Zero(t, count)
}
