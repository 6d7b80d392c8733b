package repository

import (
	"context"
	"testing"
	"time"

	"devconnector/internal/models"
	"devconnector/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileRepository_Lifecycle(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	ctx := context.Background()
	repo := NewProfileRepository(db)

	user := seedUser(t, db, "dev@example.com")

	profile := &models.Profile{
		UserID: user.ID,
		Handle: "dev",
		Status: "Developer",
		Skills: models.StringList{"go", "sql"},
		Social: models.Social{Twitter: "https://twitter.com/dev"},
	}
	require.NoError(t, repo.Create(ctx, profile))

	got, err := repo.GetByHandle(ctx, "dev")
	require.NoError(t, err)
	require.NotNil(t, got.User)
	assert.Equal(t, user.ID, got.User.ID)
	assert.Equal(t, user.Name, got.User.Name)
	assert.Equal(t, []string{"go", "sql"}, []string(got.Skills))
	assert.Equal(t, "https://twitter.com/dev", got.Social.Twitter)
	assert.Empty(t, got.Experience)
	assert.NotNil(t, got.Experience)

	got.Company = "Acme"
	got.Social.Youtube = "https://youtube.com/dev"
	require.NoError(t, repo.Update(ctx, got))

	updated, err := repo.GetByUserID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme", updated.Company)
	assert.Equal(t, "https://twitter.com/dev", updated.Social.Twitter)
	assert.Equal(t, "https://youtube.com/dev", updated.Social.Youtube)

	_, err = repo.GetByHandle(ctx, "missing")
	assert.True(t, IsNotFound(err))
}

func TestProfileRepository_HandleUnique(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	ctx := context.Background()
	repo := NewProfileRepository(db)

	a := seedUser(t, db, "a@example.com")
	b := seedUser(t, db, "b@example.com")

	require.NoError(t, repo.Create(ctx, &models.Profile{UserID: a.ID, Handle: "taken", Status: "Dev"}))

	taken, err := repo.HandleTaken(ctx, "taken", b.ID)
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = repo.HandleTaken(ctx, "taken", a.ID)
	require.NoError(t, err)
	assert.False(t, taken)

	err = repo.Create(ctx, &models.Profile{UserID: b.ID, Handle: "taken", Status: "Dev"})
	require.Error(t, err)
	assert.True(t, IsUniqueViolation(err))
}

func TestProfileRepository_Entries(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	ctx := context.Background()
	repo := NewProfileRepository(db)

	user := seedUser(t, db, "entries@example.com")
	profile := &models.Profile{UserID: user.ID, Handle: "entries", Status: "Dev"}
	require.NoError(t, repo.Create(ctx, profile))

	from := time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC)
	first := &models.Experience{ProfileID: profile.ID, Title: "Junior", Company: "Acme", From: from}
	second := &models.Experience{ProfileID: profile.ID, Title: "Senior", Company: "Acme", From: from, Current: true}
	require.NoError(t, repo.AddExperience(ctx, first))
	require.NoError(t, repo.AddExperience(ctx, second))

	edu := &models.Education{ProfileID: profile.ID, School: "Uni", Degree: "BSc", FieldOfStudy: "CS", From: from}
	require.NoError(t, repo.AddEducation(ctx, edu))

	got, err := repo.GetByUserID(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, got.Experience, 2)
	assert.Equal(t, "Senior", got.Experience[0].Title, "newest entry first")
	assert.Equal(t, "Junior", got.Experience[1].Title)
	require.Len(t, got.Education, 1)

	removed, err := repo.RemoveExperience(ctx, profile.ID, first.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = repo.RemoveExperience(ctx, profile.ID, first.ID)
	require.NoError(t, err)
	assert.False(t, removed)

	removed, err = repo.RemoveEducation(ctx, profile.ID+1, edu.ID)
	require.NoError(t, err)
	assert.False(t, removed, "entries of another profile are untouched")

	removed, err = repo.RemoveEducation(ctx, profile.ID, edu.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	got, err = repo.GetByUserID(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, got.Experience, 1)
	assert.Equal(t, second.ID, got.Experience[0].ID)
	assert.Empty(t, got.Education)
}

func TestProfileRepository_List(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	ctx := context.Background()
	repo := NewProfileRepository(db)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	for _, email := range []string{"one@example.com", "two@example.com"} {
		u := seedUser(t, db, email)
		require.NoError(t, repo.Create(ctx, &models.Profile{UserID: u.ID, Handle: email[:3], Status: "Dev"}))
	}

	list, err = repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "one", list[0].Handle)
	assert.NotNil(t, list[1].User)
}
