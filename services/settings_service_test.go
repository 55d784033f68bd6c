package services_test

import (
	"context"
	"testing"

	"github.com/akinalp/okundu/models"
	"github.com/akinalp/okundu/pkg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsDefaults(t *testing.T) {
	env := newTestEnv(t)

	blog := env.createBlog(t, "devlog")

	settings, err := env.settings.Get(context.Background(), blog.ID)
	require.NoError(t, err)

	// Takip kapalı gelir, blog sahibi açar
	assert.False(t, settings.Active)
	assert.Equal(t, models.DefaultArtifact, settings.Artifact)
	assert.Empty(t, settings.EmailFrom)
}

func TestSettingsUpdateArtifact(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	blog := env.createBlog(t, "devlog")

	star := "★"
	updated, err := env.settings.Update(ctx, blog.ID, &models.UpdateSettingsRequest{Artifact: &star})
	require.NoError(t, err)
	assert.Equal(t, "★", updated.Artifact)

	// Boş glyph geçerli — dekorasyon kapalı
	none := ""
	updated, err = env.settings.Update(ctx, blog.ID, &models.UpdateSettingsRequest{Artifact: &none})
	require.NoError(t, err)
	assert.Empty(t, updated.Artifact)

	// Listede olmayan glyph reddedilir
	bogus := "?"
	_, err = env.settings.Update(ctx, blog.ID, &models.UpdateSettingsRequest{Artifact: &bogus})
	assert.ErrorIs(t, err, pkg.ErrBadRequest)
}

func TestSettingsUpdateEmailFrom(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	blog := env.createBlog(t, "devlog")

	bad := "not-an-address"
	_, err := env.settings.Update(ctx, blog.ID, &models.UpdateSettingsRequest{EmailFrom: &bad})
	assert.ErrorIs(t, err, pkg.ErrBadRequest)

	good := "notify@devlog.example"
	updated, err := env.settings.Update(ctx, blog.ID, &models.UpdateSettingsRequest{EmailFrom: &good})
	require.NoError(t, err)
	assert.Equal(t, good, updated.EmailFrom)
}

func TestSettingsUpdateInvalidatesCache(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	blog := env.createBlog(t, "devlog")

	// Get cache'i doldurur
	before, err := env.settings.Get(ctx, blog.ID)
	require.NoError(t, err)
	require.False(t, before.Active)

	active := true
	_, err = env.settings.Update(ctx, blog.ID, &models.UpdateSettingsRequest{Active: &active})
	require.NoError(t, err)

	// Update sonrası Get bayat kaydı değil yeni değeri döner
	after, err := env.settings.Get(ctx, blog.ID)
	require.NoError(t, err)
	assert.True(t, after.Active)
}

func TestRegisterURLType(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	blog := env.createBlog(t, "devlog")

	types, err := env.settings.URLTypes(ctx, blog.ID)
	require.NoError(t, err)
	assert.Contains(t, types, "post")
	base := len(types)

	require.NoError(t, env.settings.RegisterURLType(ctx, blog.ID, "Gallery"))

	types, err = env.settings.URLTypes(ctx, blog.ID)
	require.NoError(t, err)
	assert.Len(t, types, base+1)
	assert.Contains(t, types, "gallery") // normalize: lowercase

	// Aynı türü tekrar kaydetmek no-op
	require.NoError(t, env.settings.RegisterURLType(ctx, blog.ID, "gallery"))
	types, err = env.settings.URLTypes(ctx, blog.ID)
	require.NoError(t, err)
	assert.Len(t, types, base+1)

	err = env.settings.RegisterURLType(ctx, blog.ID, "   ")
	assert.ErrorIs(t, err, pkg.ErrBadRequest)
}
