package services_test

import (
	"context"
	"strings"
	"testing"

	"github.com/akinalp/okundu/models"
	"github.com/akinalp/okundu/pkg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscribeIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	admin := env.createUser(t, "admin", "admin@example.test", true)
	reader := env.createUser(t, "reader", "reader@example.test", false)
	blog := env.createActiveBlog(t, "devlog")
	post := env.createPost(t, blog.ID, admin.ID, "first")

	require.NoError(t, env.subs.Subscribe(ctx, reader.ID, post.ID))
	require.NoError(t, env.subs.Subscribe(ctx, reader.ID, post.ID))

	subscribed, err := env.subs.IsSubscribed(ctx, reader.ID, post.ID)
	require.NoError(t, err)
	assert.True(t, subscribed)

	subscribers, err := env.subs.ListSubscribers(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, subscribers, 1)
	assert.Equal(t, reader.ID, subscribers[0].UserID)
	assert.Equal(t, "reader@example.test", subscribers[0].Email)
}

func TestSubscribeMissingPost(t *testing.T) {
	env := newTestEnv(t)
	reader := env.createUser(t, "reader", "reader@example.test", false)

	err := env.subs.Subscribe(context.Background(), reader.ID, 9999)
	assert.ErrorIs(t, err, pkg.ErrNotFound)
}

func TestUnsubscribeIsSilentWhenNotSubscribed(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	admin := env.createUser(t, "admin", "admin@example.test", true)
	reader := env.createUser(t, "reader", "reader@example.test", false)
	blog := env.createActiveBlog(t, "devlog")
	post := env.createPost(t, blog.ID, admin.ID, "first")

	// Hiç abone olmadan unsubscribe — sessiz no-op
	require.NoError(t, env.subs.Unsubscribe(ctx, reader.ID, post.ID))

	require.NoError(t, env.subs.Subscribe(ctx, reader.ID, post.ID))
	require.NoError(t, env.subs.Unsubscribe(ctx, reader.ID, post.ID))

	subscribed, err := env.subs.IsSubscribed(ctx, reader.ID, post.ID)
	require.NoError(t, err)
	assert.False(t, subscribed)
}

func TestUnsubscribeAllRemovesOnlyMailRows(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	admin := env.createUser(t, "admin", "admin@example.test", true)
	reader := env.createUser(t, "reader", "reader@example.test", false)
	blog := env.createActiveBlog(t, "devlog")
	p1 := env.createPost(t, blog.ID, admin.ID, "first")
	p2 := env.createPost(t, blog.ID, admin.ID, "second")

	require.NoError(t, env.subs.Subscribe(ctx, reader.ID, p1.ID))
	require.NoError(t, env.subs.Subscribe(ctx, reader.ID, p2.ID))
	require.NoError(t, env.tracking.MarkRead(ctx, reader.ID, p1.ID))

	require.NoError(t, env.subs.UnsubscribeAll(ctx, reader.ID, blog.ID))

	for _, id := range []int64{p1.ID, p2.ID} {
		subscribed, err := env.subs.IsSubscribed(ctx, reader.ID, id)
		require.NoError(t, err)
		assert.False(t, subscribed)
	}

	// Okuma kaydı abonelik temizliğinden etkilenmez
	read, err := env.tracking.IsRead(ctx, reader.ID, p1.ID)
	require.NoError(t, err)
	assert.True(t, read)
}

func TestNotifySubscribers(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	admin := env.createUser(t, "admin", "admin@example.test", true)
	commenter := env.createUser(t, "commenter", "commenter@example.test", false)
	alice := env.createUser(t, "alice", "alice@example.test", false)
	bob := env.createUser(t, "bob", "bob@example.test", false)
	blog := env.createActiveBlog(t, "devlog")
	post := env.createPost(t, blog.ID, admin.ID, "release-notes")

	for _, u := range []*models.User{commenter, alice, bob} {
		require.NoError(t, env.subs.Subscribe(ctx, u.ID, post.ID))
	}

	comment := &models.Comment{
		PostID:   post.ID,
		AuthorID: commenter.ID,
		Content:  "great post",
		Status:   models.CommentStatusPublished,
	}
	require.NoError(t, env.repos.comment.Create(ctx, comment))

	sent, err := env.subs.NotifySubscribers(ctx, comment, "203.0.113.7")
	require.NoError(t, err)

	// Yorumun yazarı bildirim almaz
	assert.Equal(t, 2, sent)
	messages := env.sender.sent()
	require.Len(t, messages, 2)

	recipients := []string{messages[0].To, messages[1].To}
	assert.ElementsMatch(t, []string{"alice@example.test", "bob@example.test"}, recipients)

	for _, msg := range messages {
		assert.Contains(t, msg.Subject, "release-notes")
		assert.Contains(t, msg.From, blog.Name)
		assert.Equal(t, blog.ID, msg.Headers["X-Blog-Id"])
		assert.Equal(t, "203.0.113.7", msg.Headers["X-Originating-IP"])
		assert.NotEmpty(t, msg.Headers["X-Entity-Ref-ID"])

		// Gövde 80 sütuna katlanmış olmalı
		for _, line := range strings.Split(msg.Text, "\n") {
			assert.LessOrEqual(t, len([]rune(line)), 80)
		}
	}

	// Selamlama alıcının kullanıcı adıyla kişiselleştirilir
	for _, msg := range messages {
		switch msg.To {
		case "alice@example.test":
			assert.Contains(t, msg.Text, "alice")
		case "bob@example.test":
			assert.Contains(t, msg.Text, "bob")
		}
	}
}

func TestNotifySubscribersEmptySenderAddress(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	admin := env.createUser(t, "admin", "admin@example.test", true)
	reader := env.createUser(t, "reader", "reader@example.test", false)
	blog := env.createBlog(t, "quiet")

	// Takip açık ama gönderici adresi boş — mail tamamen kapalı
	active := true
	_, err := env.settings.Update(ctx, blog.ID, &models.UpdateSettingsRequest{Active: &active})
	require.NoError(t, err)

	post := env.createPost(t, blog.ID, admin.ID, "first")
	require.NoError(t, env.subs.Subscribe(ctx, reader.ID, post.ID))

	comment := &models.Comment{PostID: post.ID, AuthorID: admin.ID, Content: "hi", Status: models.CommentStatusPublished}
	require.NoError(t, env.repos.comment.Create(ctx, comment))

	sent, err := env.subs.NotifySubscribers(ctx, comment, "")
	require.NoError(t, err)
	assert.Zero(t, sent)
	assert.Empty(t, env.sender.sent())
}

func TestNotifySubscribersSkipsFailedRecipient(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	admin := env.createUser(t, "admin", "admin@example.test", true)
	alice := env.createUser(t, "alice", "alice@example.test", false)
	bob := env.createUser(t, "bob", "bob@example.test", false)
	blog := env.createActiveBlog(t, "devlog")
	post := env.createPost(t, blog.ID, admin.ID, "first")

	require.NoError(t, env.subs.Subscribe(ctx, alice.ID, post.ID))
	require.NoError(t, env.subs.Subscribe(ctx, bob.ID, post.ID))

	env.sender.failTo = "alice@example.test"

	comment := &models.Comment{PostID: post.ID, AuthorID: admin.ID, Content: "hi", Status: models.CommentStatusPublished}
	require.NoError(t, env.repos.comment.Create(ctx, comment))

	// Bir alıcıya gönderim hatası diğerini durdurmaz
	sent, err := env.subs.NotifySubscribers(ctx, comment, "")
	require.NoError(t, err)
	assert.Equal(t, 1, sent)

	messages := env.sender.sent()
	require.Len(t, messages, 1)
	assert.Equal(t, "bob@example.test", messages[0].To)
}
