package services_test

import (
	"context"
	"testing"

	"github.com/akinalp/okundu/models"
	"github.com/akinalp/okundu/pkg"
	"github.com/akinalp/okundu/ws"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkReadAndIsRead(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	admin := env.createUser(t, "admin", "admin@example.test", true)
	reader := env.createUser(t, "reader", "reader@example.test", false)
	blog := env.createActiveBlog(t, "devlog")
	post := env.createPost(t, blog.ID, admin.ID, "first")

	read, err := env.tracking.IsRead(ctx, reader.ID, post.ID)
	require.NoError(t, err)
	assert.False(t, read)

	require.NoError(t, env.tracking.MarkRead(ctx, reader.ID, post.ID))

	read, err = env.tracking.IsRead(ctx, reader.ID, post.ID)
	require.NoError(t, err)
	assert.True(t, read)

	// İkinci işaretleme idempotent — hata yok, durum aynı
	require.NoError(t, env.tracking.MarkRead(ctx, reader.ID, post.ID))
	read, err = env.tracking.IsRead(ctx, reader.ID, post.ID)
	require.NoError(t, err)
	assert.True(t, read)

	// Okuma event'i sadece o kullanıcıya gitmeli
	events := env.hub.userEvents(reader.ID)
	require.NotEmpty(t, events)
	assert.Equal(t, ws.OpPostRead, events[0].Op)
}

func TestMarkReadInactiveBlogIsSilent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	admin := env.createUser(t, "admin", "admin@example.test", true)
	reader := env.createUser(t, "reader", "reader@example.test", false)
	blog := env.createBlog(t, "quiet") // takip kapalı
	post := env.createPost(t, blog.ID, admin.ID, "hidden")

	// Hata dönmez, kayıt da oluşmaz
	require.NoError(t, env.tracking.MarkRead(ctx, reader.ID, post.ID))

	read, err := env.tracking.IsRead(ctx, reader.ID, post.ID)
	require.NoError(t, err)
	assert.False(t, read)
}

func TestMarkReadMissingPost(t *testing.T) {
	env := newTestEnv(t)

	reader := env.createUser(t, "reader", "reader@example.test", false)

	err := env.tracking.MarkRead(context.Background(), reader.ID, 9999)
	assert.ErrorIs(t, err, pkg.ErrNotFound)
}

func TestArtifact(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	admin := env.createUser(t, "admin", "admin@example.test", true)
	reader := env.createUser(t, "reader", "reader@example.test", false)
	blog := env.createActiveBlog(t, "devlog")
	post := env.createPost(t, blog.ID, admin.ID, "first")

	// Tercih kapalıyken glyph boş döner
	glyph, err := env.tracking.Artifact(ctx, reader.ID, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "", glyph)

	// Tercih açık + okunmamış → yapılandırılmış glyph
	env.enableArtifact(t, reader.ID)
	glyph, err = env.tracking.Artifact(ctx, reader.ID, post.ID)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultArtifact, glyph)

	// Okunduktan sonra boş
	require.NoError(t, env.tracking.MarkRead(ctx, reader.ID, post.ID))
	glyph, err = env.tracking.Artifact(ctx, reader.ID, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "", glyph)

	// Var olmayan yazı → not found
	_, err = env.tracking.Artifact(ctx, reader.ID, 9999)
	assert.ErrorIs(t, err, pkg.ErrNotFound)
}

func TestArtifactInactiveBlog(t *testing.T) {
	env := newTestEnv(t)

	admin := env.createUser(t, "admin", "admin@example.test", true)
	reader := env.createUser(t, "reader", "reader@example.test", false)
	blog := env.createBlog(t, "quiet")
	post := env.createPost(t, blog.ID, admin.ID, "hidden")
	env.enableArtifact(t, reader.ID)

	// Takip pasif blogda endpoint yok gibi davranır
	_, err := env.tracking.Artifact(context.Background(), reader.ID, post.ID)
	assert.ErrorIs(t, err, pkg.ErrNotFound)
}

func TestUseArtifactConditions(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	reader := env.createUser(t, "reader", "reader@example.test", false)
	blog := env.createActiveBlog(t, "devlog")

	// Tercih kapalı → false
	use, err := env.tracking.UseArtifact(ctx, reader.ID, blog.ID)
	require.NoError(t, err)
	assert.False(t, use)

	// Tercih açık → true
	env.enableArtifact(t, reader.ID)
	use, err = env.tracking.UseArtifact(ctx, reader.ID, blog.ID)
	require.NoError(t, err)
	assert.True(t, use)

	// Glyph boşaltılınca → false (takip yine açık)
	empty := ""
	_, err = env.settings.Update(ctx, blog.ID, &models.UpdateSettingsRequest{Artifact: &empty})
	require.NoError(t, err)
	use, err = env.tracking.UseArtifact(ctx, reader.ID, blog.ID)
	require.NoError(t, err)
	assert.False(t, use)

	// Takip kapatılınca → false
	glyph := models.DefaultArtifact
	inactive := false
	_, err = env.settings.Update(ctx, blog.ID, &models.UpdateSettingsRequest{
		Active:   &inactive,
		Artifact: &glyph,
	})
	require.NoError(t, err)
	use, err = env.tracking.UseArtifact(ctx, reader.ID, blog.ID)
	require.NoError(t, err)
	assert.False(t, use)
}

func TestOnCommentCreatedResetsOnlyCommentKind(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	admin := env.createUser(t, "admin", "admin@example.test", true)
	walls := env.createUser(t, "walls", "walls@example.test", false)
	fixed := env.createUser(t, "fixed", "fixed@example.test", false)
	blog := env.createActiveBlog(t, "devlog")
	post := env.createPost(t, blog.ID, admin.ID, "first")

	// walls: yeni yorumda sıfırlansın istiyor → comment türü kayıt
	on := true
	_, err := env.prefs.Update(ctx, walls.ID, &models.UpdatePrefsRequest{CommentReset: &on})
	require.NoError(t, err)

	require.NoError(t, env.tracking.MarkRead(ctx, walls.ID, post.ID))
	require.NoError(t, env.tracking.MarkRead(ctx, fixed.ID, post.ID))

	require.NoError(t, env.tracking.OnCommentCreated(ctx, post.ID))

	// walls için yazı tekrar okunmamış, fixed için hâlâ okunmuş
	read, err := env.tracking.IsRead(ctx, walls.ID, post.ID)
	require.NoError(t, err)
	assert.False(t, read)

	read, err = env.tracking.IsRead(ctx, fixed.ID, post.ID)
	require.NoError(t, err)
	assert.True(t, read)

	// post_unread herkese yayınlanır — silme tüm kullanıcıları etkiler
	events := env.hub.allEvents()
	require.NotEmpty(t, events)
	assert.Equal(t, ws.OpPostUnread, events[len(events)-1].Op)
}

func TestMarkAllReadAndResetAll(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	admin := env.createUser(t, "admin", "admin@example.test", true)
	reader := env.createUser(t, "reader", "reader@example.test", false)
	blog := env.createActiveBlog(t, "devlog")
	p1 := env.createPost(t, blog.ID, admin.ID, "first")
	p2 := env.createPost(t, blog.ID, admin.ID, "second")
	p3 := env.createPost(t, blog.ID, admin.ID, "third")

	require.NoError(t, env.tracking.MarkAllRead(ctx, reader.ID, reader.ID, blog.ID))

	for _, id := range []int64{p1.ID, p2.ID, p3.ID} {
		read, err := env.tracking.IsRead(ctx, reader.ID, id)
		require.NoError(t, err)
		assert.True(t, read, "post %d should be read", id)
	}

	// Abonelik okuma sıfırlamasından etkilenmez
	require.NoError(t, env.subs.Subscribe(ctx, reader.ID, p1.ID))

	require.NoError(t, env.tracking.ResetAll(ctx, reader.ID, reader.ID, blog.ID))

	for _, id := range []int64{p1.ID, p2.ID, p3.ID} {
		read, err := env.tracking.IsRead(ctx, reader.ID, id)
		require.NoError(t, err)
		assert.False(t, read, "post %d should be unread after reset", id)
	}

	subscribed, err := env.subs.IsSubscribed(ctx, reader.ID, p1.ID)
	require.NoError(t, err)
	assert.True(t, subscribed)
}

func TestMarkAllReadAuthorization(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	admin := env.createUser(t, "admin", "admin@example.test", true)
	alice := env.createUser(t, "alice", "alice@example.test", false)
	bob := env.createUser(t, "bob", "bob@example.test", false)
	blog := env.createActiveBlog(t, "devlog")
	post := env.createPost(t, blog.ID, admin.ID, "first")

	// Sıradan kullanıcı başkası adına işlem yapamaz
	err := env.tracking.MarkAllRead(ctx, alice.ID, bob.ID, blog.ID)
	assert.ErrorIs(t, err, pkg.ErrForbidden)

	// Superadmin yapabilir
	require.NoError(t, env.tracking.MarkAllRead(ctx, admin.ID, bob.ID, blog.ID))

	read, err := env.tracking.IsRead(ctx, bob.ID, post.ID)
	require.NoError(t, err)
	assert.True(t, read)
}

func TestSwitchTrackingKindPreservesReadSet(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	admin := env.createUser(t, "admin", "admin@example.test", true)
	reader := env.createUser(t, "reader", "reader@example.test", false)
	blog := env.createActiveBlog(t, "devlog")
	p1 := env.createPost(t, blog.ID, admin.ID, "first")
	p2 := env.createPost(t, blog.ID, admin.ID, "second")

	require.NoError(t, env.tracking.MarkRead(ctx, reader.ID, p1.ID))
	require.NoError(t, env.tracking.MarkRead(ctx, reader.ID, p2.ID))

	require.NoError(t, env.tracking.SwitchTrackingKind(
		ctx, reader.ID, models.TrackKindPost, models.TrackKindComment,
	))

	// Okunmuş küme aynı kalır, tür değişmiştir: yeni yorum artık sıfırlar
	for _, id := range []int64{p1.ID, p2.ID} {
		read, err := env.tracking.IsRead(ctx, reader.ID, id)
		require.NoError(t, err)
		assert.True(t, read)
	}

	require.NoError(t, env.tracking.OnCommentCreated(ctx, p1.ID))

	read, err := env.tracking.IsRead(ctx, reader.ID, p1.ID)
	require.NoError(t, err)
	assert.False(t, read)
}

func TestSwitchTrackingKindRejectsMailKind(t *testing.T) {
	env := newTestEnv(t)
	reader := env.createUser(t, "reader", "reader@example.test", false)

	err := env.tracking.SwitchTrackingKind(
		context.Background(), reader.ID, models.TrackKindMail, models.TrackKindPost,
	)
	assert.ErrorIs(t, err, pkg.ErrBadRequest)
}

func TestDecoratePosts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	admin := env.createUser(t, "admin", "admin@example.test", true)
	reader := env.createUser(t, "reader", "reader@example.test", false)
	blog := env.createActiveBlog(t, "devlog")
	p1 := env.createPost(t, blog.ID, admin.ID, "first")
	p2 := env.createPost(t, blog.ID, admin.ID, "second")

	env.enableArtifact(t, reader.ID)
	require.NoError(t, env.tracking.MarkRead(ctx, reader.ID, p1.ID))

	decorated, err := env.tracking.DecoratePosts(ctx, reader.ID, blog.ID)
	require.NoError(t, err)
	require.Len(t, decorated, 2)

	byID := make(map[int64]models.DecoratedPost, len(decorated))
	for _, d := range decorated {
		byID[d.ID] = d
	}

	assert.True(t, byID[p1.ID].Read)
	assert.Equal(t, "", byID[p1.ID].Artifact)

	assert.False(t, byID[p2.ID].Read)
	assert.Equal(t, models.DefaultArtifact, byID[p2.ID].Artifact)
}
