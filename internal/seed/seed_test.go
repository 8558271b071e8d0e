package seed

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"seedbed/internal/database"
	"seedbed/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func TestSeedPopulatesAllTables(t *testing.T) {
	db := openTestDB(t)

	opts := Options{
		NumUsers:        5,
		NumPosts:        12,
		CommentsPerPost: 3,
		LikeRatio:       0.5,
		GardenerRatio:   1.0,
		SkipBcrypt:      true,
		MaxDays:         7,
	}
	require.NoError(t, NewSeeder(db, opts).Seed())

	var users, posts, comments int64
	db.Model(&models.User{}).Count(&users)
	db.Model(&models.Post{}).Count(&posts)
	db.Model(&models.Comment{}).Count(&comments)

	assert.Equal(t, int64(5), users)
	assert.Equal(t, int64(12), posts)
	assert.Greater(t, comments, int64(0), "every post gets gardener comments at ratio 1.0")
}

func TestSeedGardenerCommentsCarryMarker(t *testing.T) {
	db := openTestDB(t)

	opts := Options{
		NumUsers:        2,
		NumPosts:        4,
		CommentsPerPost: 0,
		GardenerRatio:   1.0,
		SkipBcrypt:      true,
	}
	require.NoError(t, NewSeeder(db, opts).Seed())

	var comments []models.Comment
	require.NoError(t, db.Find(&comments).Error)
	require.NotEmpty(t, comments)
	for _, c := range comments {
		assert.True(t, c.IsAIComment(), "comment %q should carry the gardener marker", c.Content)
	}
}

func TestFactoryUserNamesAreValidLength(t *testing.T) {
	db := openTestDB(t)
	f := NewFactory(db, Options{SkipBcrypt: true})

	for i := 0; i < 20; i++ {
		user, err := f.CreateUser()
		require.NoError(t, err)
		n := len([]rune(user.Name))
		assert.GreaterOrEqual(t, n, 2)
		assert.LessOrEqual(t, n, 10)
	}
}

func TestFactoryLikeIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	f := NewFactory(db, Options{SkipBcrypt: true})

	user, err := f.CreateUser()
	require.NoError(t, err)
	post := f.BuildPost(user)
	require.NoError(t, f.CreatePostsBatch([]*models.Post{post}))

	require.NoError(t, f.CreateLike(user, post))
	require.NoError(t, f.CreateLike(user, post))

	var likes int64
	db.Model(&models.Like{}).Count(&likes)
	assert.Equal(t, int64(1), likes)
}

func TestClearAllRemovesEverything(t *testing.T) {
	db := openTestDB(t)

	s := NewSeeder(db, Options{NumUsers: 3, NumPosts: 5, CommentsPerPost: 2, SkipBcrypt: true})
	require.NoError(t, s.Seed())
	require.NoError(t, s.ClearAll())

	var users, posts int64
	db.Model(&models.User{}).Count(&users)
	db.Model(&models.Post{}).Count(&posts)
	assert.Zero(t, users)
	assert.Zero(t, posts)
}

func TestLoadPresets(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "presets.yml")
	content := strings.TrimSpace(`
presets:
  - name: qa
    users: 7
    posts: 21
    comments_per_post: 2
    like_ratio: 0.25
    gardener_ratio: 0.5
    skip_bcrypt: true
`)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	presets, err := LoadPresets(path)
	require.NoError(t, err)
	require.Len(t, presets, 1)

	p, ok := FindPreset("qa", presets)
	require.True(t, ok)
	opts := p.Options()
	assert.Equal(t, 7, opts.NumUsers)
	assert.Equal(t, 21, opts.NumPosts)
	assert.True(t, opts.SkipBcrypt)
}

func TestFindPresetFallsBackToBuiltins(t *testing.T) {
	p, ok := FindPreset("demo", nil)
	require.True(t, ok)
	assert.Equal(t, 20, p.Users)

	_, ok = FindPreset("nonexistent", nil)
	assert.False(t, ok)
}
