package services_test

import (
	"context"
	"testing"

	"github.com/akinalp/okundu/models"
	"github.com/akinalp/okundu/ws"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrefsDefaultsWithoutRow(t *testing.T) {
	env := newTestEnv(t)

	reader := env.createUser(t, "reader", "reader@example.test", false)

	prefs, err := env.prefs.Get(context.Background(), reader.ID)
	require.NoError(t, err)

	// Satır yoksa varsayılanlar döner: glyph kapalı, yorum sıfırlaması kapalı
	assert.False(t, prefs.ShowArtifact)
	assert.False(t, prefs.CommentReset)
	assert.Equal(t, models.TrackKindPost, prefs.PreferredKind())
}

func TestPrefsUpdateShowArtifact(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	reader := env.createUser(t, "reader", "reader@example.test", false)

	show := true
	updated, err := env.prefs.Update(ctx, reader.ID, &models.UpdatePrefsRequest{ShowArtifact: &show})
	require.NoError(t, err)
	assert.True(t, updated.ShowArtifact)
	assert.False(t, updated.CommentReset)

	// Kalıcı mı?
	stored, err := env.prefs.Get(ctx, reader.ID)
	require.NoError(t, err)
	assert.True(t, stored.ShowArtifact)

	events := env.hub.userEvents(reader.ID)
	require.NotEmpty(t, events)
	assert.Equal(t, ws.OpPrefsUpdate, events[len(events)-1].Op)
}

func TestPrefsCommentResetMigratesTrackingKind(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	admin := env.createUser(t, "admin", "admin@example.test", true)
	reader := env.createUser(t, "reader", "reader@example.test", false)
	blog := env.createActiveBlog(t, "devlog")
	post := env.createPost(t, blog.ID, admin.ID, "first")

	require.NoError(t, env.tracking.MarkRead(ctx, reader.ID, post.ID))

	// Tercih değişince mevcut okuma kayıtları yeni türe taşınır —
	// okunmuşluk kaybolmaz.
	reset := true
	_, err := env.prefs.Update(ctx, reader.ID, &models.UpdatePrefsRequest{CommentReset: &reset})
	require.NoError(t, err)

	read, err := env.tracking.IsRead(ctx, reader.ID, post.ID)
	require.NoError(t, err)
	assert.True(t, read)

	// Kayıt artık "comment" türünde: yeni yorum yayını sıfırlar
	require.NoError(t, env.tracking.OnCommentCreated(ctx, post.ID))

	read, err = env.tracking.IsRead(ctx, reader.ID, post.ID)
	require.NoError(t, err)
	assert.False(t, read)
}

func TestPrefsCommentResetBackToPostKind(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	admin := env.createUser(t, "admin", "admin@example.test", true)
	reader := env.createUser(t, "reader", "reader@example.test", false)
	blog := env.createActiveBlog(t, "devlog")
	post := env.createPost(t, blog.ID, admin.ID, "first")

	reset := true
	_, err := env.prefs.Update(ctx, reader.ID, &models.UpdatePrefsRequest{CommentReset: &reset})
	require.NoError(t, err)

	require.NoError(t, env.tracking.MarkRead(ctx, reader.ID, post.ID))

	// Tercih geri kapatılınca kayıt "post" türüne döner ve yorum
	// yayını artık sıfırlamaz
	reset = false
	_, err = env.prefs.Update(ctx, reader.ID, &models.UpdatePrefsRequest{CommentReset: &reset})
	require.NoError(t, err)

	require.NoError(t, env.tracking.OnCommentCreated(ctx, post.ID))

	read, err := env.tracking.IsRead(ctx, reader.ID, post.ID)
	require.NoError(t, err)
	assert.True(t, read)
}
