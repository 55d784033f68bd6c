package services_test

// Service testleri gerçek bir in-memory SQLite üzerinde koşar.
// MarkRead gibi operasyonlar transaction içinde tx'e bağlı repository
// oluşturduğu için repo seviyesinde fake yeterli olmaz — şemayı gömülü
// migration'dan yükleyip gerçek SQL yolunu test ediyoruz.

import (
	"context"
	"database/sql"
	"io/fs"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/akinalp/okundu/database"
	"github.com/akinalp/okundu/models"
	"github.com/akinalp/okundu/pkg/cache"
	"github.com/akinalp/okundu/pkg/email"
	"github.com/akinalp/okundu/pkg/i18n"
	"github.com/akinalp/okundu/repository"
	"github.com/akinalp/okundu/services"
	"github.com/akinalp/okundu/ws"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

// Bildirim mailleri Localizer üzerinden yazılır; çeviriler yüklenmezse
// metin yerine anahtar döner. Testler gerçek metinleri doğruladığı için
// gömülü locale'leri bir kere yüklüyoruz.
func TestMain(m *testing.M) {
	localesFS, err := fs.Sub(i18n.EmbeddedLocales, "locales")
	if err != nil {
		panic(err)
	}
	if err := i18n.Load(localesFS); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

// newTestDB, gömülü migration şemasıyla in-memory SQLite açar.
//
// MaxOpenConns(1) kritik: her yeni bağlantı ayrı bir :memory: veritabanı
// demektir — pool tek bağlantıya sabitlenmezse tablolar "kaybolur".
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:?_pragma=foreign_keys(1)")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	schema, err := fs.ReadFile(database.EmbeddedMigrations, "migrations/001_init.sql")
	require.NoError(t, err)

	_, err = db.Exec(string(schema))
	require.NoError(t, err)

	return db
}

// fakeHub, ws.EventPublisher'ın test kaydedicisi — yayınlanan event'leri toplar.
type fakeHub struct {
	mu     sync.Mutex
	all    []ws.Event
	byUser map[string][]ws.Event
}

func newFakeHub() *fakeHub {
	return &fakeHub{byUser: make(map[string][]ws.Event)}
}

func (h *fakeHub) BroadcastToAll(event ws.Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.all = append(h.all, event)
}

func (h *fakeHub) BroadcastToUser(userID string, event ws.Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.byUser[userID] = append(h.byUser[userID], event)
}

func (h *fakeHub) GetOnlineUserIDs() []string { return nil }

func (h *fakeHub) userEvents(userID string) []ws.Event {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]ws.Event(nil), h.byUser[userID]...)
}

func (h *fakeHub) allEvents() []ws.Event {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]ws.Event(nil), h.all...)
}

// fakeSender, email.EmailSender'ın test kaydedicisi.
type fakeSender struct {
	mu       sync.Mutex
	messages []email.Message
	failTo   string // bu adrese gönderim hata döner
}

func (s *fakeSender) Send(ctx context.Context, msg *email.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failTo != "" && msg.To == s.failTo {
		return context.DeadlineExceeded
	}
	s.messages = append(s.messages, *msg)
	return nil
}

func (s *fakeSender) sent() []email.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]email.Message(nil), s.messages...)
}

// testEnv, service testlerinin ortak kurulumu: şemalı DB, gerçek
// repository'ler ve kayıt yapan fake'ler.
type testEnv struct {
	db       *sql.DB
	repos    *reposBundle
	hub      *fakeHub
	sender   *fakeSender
	settings services.SettingsService
	tracking services.TrackingService
	subs     services.SubscriptionService
	prefs    services.PrefsService
	posts    services.PostService
	comments services.CommentService
}

type reposBundle struct {
	user     repository.UserRepository
	blog     repository.BlogRepository
	settings repository.SettingsRepository
	post     repository.PostRepository
	comment  repository.CommentRepository
	tracking repository.TrackingRepository
	prefs    repository.PrefsRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := newTestDB(t)
	repos := &reposBundle{
		user:     repository.NewSQLiteUserRepo(db),
		blog:     repository.NewSQLiteBlogRepo(db),
		settings: repository.NewSQLiteSettingsRepo(db),
		post:     repository.NewSQLitePostRepo(db),
		comment:  repository.NewSQLiteCommentRepo(db),
		tracking: repository.NewSQLiteTrackingRepo(db),
		prefs:    repository.NewSQLitePrefsRepo(db),
	}

	hub := newFakeHub()
	sender := &fakeSender{}

	settingsCache := cache.New[string, *models.BlogSettings](time.Minute, time.Minute)
	t.Cleanup(settingsCache.Close)

	settingsService := services.NewSettingsService(repos.settings, settingsCache)
	trackingService := services.NewTrackingService(
		db, repos.tracking, repos.post, repos.prefs, repos.user, settingsService, hub,
	)
	subscriptionService := services.NewSubscriptionService(
		repos.tracking, repos.post, repos.blog, settingsService, sender,
	)
	prefsService := services.NewPrefsService(repos.prefs, trackingService, hub)
	postService := services.NewPostService(repos.post, repos.user, repos.blog, trackingService)
	commentService := services.NewCommentService(
		repos.comment, repos.post, repos.user, trackingService, subscriptionService,
	)

	return &testEnv{
		db:       db,
		repos:    repos,
		hub:      hub,
		sender:   sender,
		settings: settingsService,
		tracking: trackingService,
		subs:     subscriptionService,
		prefs:    prefsService,
		posts:    postService,
		comments: commentService,
	}
}

// ─── Seed helpers ───

func (e *testEnv) createUser(t *testing.T, username, emailAddr string, superadmin bool) *models.User {
	t.Helper()
	user := &models.User{
		Username:     username,
		Email:        emailAddr,
		PasswordHash: "x",
		Language:     "en",
		IsSuperadmin: superadmin,
	}
	require.NoError(t, e.repos.user.Create(context.Background(), user))
	return user
}

func (e *testEnv) createBlog(t *testing.T, name string) *models.Blog {
	t.Helper()
	blog := &models.Blog{Name: name, URL: "https://" + name + ".example"}
	require.NoError(t, e.repos.blog.Create(context.Background(), blog))
	return blog
}

// createActiveBlog, takibi açık ve gönderici adresi tanımlı blog kurar.
func (e *testEnv) createActiveBlog(t *testing.T, name string) *models.Blog {
	t.Helper()
	blog := e.createBlog(t, name)

	active := true
	from := "notify@" + name + ".example"
	_, err := e.settings.Update(context.Background(), blog.ID, &models.UpdateSettingsRequest{
		Active:    &active,
		EmailFrom: &from,
	})
	require.NoError(t, err)
	return blog
}

func (e *testEnv) createPost(t *testing.T, blogID, authorID, title string) *models.Post {
	t.Helper()
	post := &models.Post{
		BlogID:   blogID,
		AuthorID: authorID,
		Title:    title,
		Content:  "content",
		URL:      "https://example.test/" + title,
	}
	require.NoError(t, e.repos.post.Create(context.Background(), post))
	return post
}

// enableArtifact, kullanıcının glyph gösterim tercihini açar.
func (e *testEnv) enableArtifact(t *testing.T, userID string) {
	t.Helper()
	require.NoError(t, e.repos.prefs.Upsert(context.Background(), &models.UserPrefs{
		UserID:       userID,
		ShowArtifact: true,
	}))
}
