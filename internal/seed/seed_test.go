package seed

import (
	"strings"
	"testing"
	"time"

	"devconnector/internal/auth"
	"devconnector/internal/models"
	"devconnector/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPresets(t *testing.T) {
	presets := DefaultPresets()
	assert.Equal(t, []string{"demo", "small"}, PresetNames(presets))
	assert.Equal(t, 5, presets["small"].Users)
}

func TestLoadPresets_Invalid(t *testing.T) {
	_, err := LoadPresets(strings.NewReader("presets:\n  bad:\n    users: 0\n"))
	assert.Error(t, err)

	_, err = LoadPresets(strings.NewReader("presets: {}\n"))
	assert.Error(t, err)

	_, err = LoadPresets(strings.NewReader("presets:\n  odd:\n    users: 2\n    profile_ratio: 1.5\n"))
	assert.Error(t, err)
}

func TestBuildPost_TextAndTimestamp(t *testing.T) {
	f := NewFactory(nil, Options{DryRun: true, MaxDays: 30, RandSeed: 42})
	author := &models.User{ID: 1, Name: "Ada", Avatar: "//www.gravatar.com/avatar/x"}

	for i := 0; i < 20; i++ {
		p := f.BuildPost(author)
		assert.GreaterOrEqual(t, len(p.Text), 10)
		assert.LessOrEqual(t, len(p.Text), 300)
		assert.Equal(t, "Ada", p.Name)
		assert.WithinDuration(t, time.Now(), p.CreatedAt, 31*24*time.Hour)
	}
}

func TestBuildProfile_EntriesNewestFirst(t *testing.T) {
	f := NewFactory(nil, Options{DryRun: true, RandSeed: 7})
	user, err := f.CreateUser(3)
	require.NoError(t, err)

	p := f.BuildProfile(user)
	assert.NotEmpty(t, p.Handle)
	assert.LessOrEqual(t, len(p.Handle), 40)
	assert.NotEmpty(t, p.Skills)
	require.NotEmpty(t, p.Experience)
	assert.True(t, p.Experience[0].Current)
	for i := 1; i < len(p.Experience); i++ {
		assert.True(t, p.Experience[i-1].From.After(p.Experience[i].From))
	}
}

func TestSeeder_DryRun(t *testing.T) {
	s := NewSeeder(nil, Options{DryRun: true, SkipBcrypt: true, RandSeed: 1})
	sum, err := s.Apply(Preset{Users: 4, ProfileRatio: 0.5, PostsPerUser: 2, MaxLikesPerPost: 10, MaxCommentsPerPost: 1})
	require.NoError(t, err)
	assert.Equal(t, 4, sum.Users)
	assert.Equal(t, 2, sum.Profiles)
	assert.Equal(t, 8, sum.Posts)
	assert.LessOrEqual(t, sum.Likes, 8*4)
}

func TestSeeder_SQLite(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	s := NewSeeder(db, Options{SkipBcrypt: true, RandSeed: 99})

	sum, err := s.Apply(DefaultPresets()["small"])
	require.NoError(t, err)

	var users, profiles, posts, likes, comments int64
	require.NoError(t, db.Model(&models.User{}).Count(&users).Error)
	require.NoError(t, db.Model(&models.Profile{}).Count(&profiles).Error)
	require.NoError(t, db.Model(&models.Post{}).Count(&posts).Error)
	require.NoError(t, db.Model(&models.Like{}).Count(&likes).Error)
	require.NoError(t, db.Model(&models.Comment{}).Count(&comments).Error)
	assert.Equal(t, int64(sum.Users), users)
	assert.Equal(t, int64(sum.Profiles), profiles)
	assert.Equal(t, int64(sum.Posts), posts)
	assert.Equal(t, int64(sum.Likes), likes)
	assert.Equal(t, int64(sum.Comments), comments)

	var u models.User
	require.NoError(t, db.First(&u).Error)
	assert.True(t, auth.CheckPassword(u.Password, DefaultPassword))

	require.NoError(t, s.ClearAll())
	require.NoError(t, db.Model(&models.User{}).Count(&users).Error)
	require.NoError(t, db.Model(&models.Post{}).Count(&posts).Error)
	assert.Zero(t, users)
	assert.Zero(t, posts)
}
