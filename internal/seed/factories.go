// Package seed creates development and demo data: users with developer
// profiles, posts, likes and comments. It is intended for local databases
// and tests only.
package seed

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"devconnector/internal/auth"
	"devconnector/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DefaultPassword is the password of every seeded user.
const DefaultPassword = "password123"

// Options tunes how factories build records.
type Options struct {
	// SkipBcrypt hashes the password once and reuses it for every user.
	SkipBcrypt bool
	// DryRun assigns synthetic ids and never touches the database.
	DryRun bool
	// MaxDays bounds how far back post and comment dates are spread.
	MaxDays int
	// RandSeed makes generated content reproducible when non-zero.
	RandSeed int64
}

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db   *gorm.DB
	opts Options
	fake *gofakeit.Faker
	hash string
	// synthetic ID counter when running in DryRun mode
	nextID uint
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	seed := opts.RandSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if opts.MaxDays <= 0 {
		opts.MaxDays = 90
	}
	return &Factory{db: db, opts: opts, fake: gofakeit.New(seed), nextID: 1000}
}

func (f *Factory) password() (string, error) {
	if f.hash != "" && f.opts.SkipBcrypt {
		return f.hash, nil
	}
	hash, err := auth.HashPassword(DefaultPassword)
	if err != nil {
		return "", err
	}
	f.hash = hash
	return hash, nil
}

func (f *Factory) syntheticID() uint {
	f.nextID++
	return f.nextID
}

// pastTime returns a moment within the configured MaxDays window.
func (f *Factory) pastTime() time.Time {
	minutes := f.fake.Number(0, f.opts.MaxDays*24*60)
	return time.Now().Add(-time.Duration(minutes) * time.Minute)
}

// postText returns text that satisfies the post length rule.
func (f *Factory) postText() string {
	text := f.fake.Sentence(f.fake.Number(4, 30))
	for len(text) < 10 {
		text += " " + f.fake.Word()
	}
	if len(text) > 300 {
		text = strings.TrimSpace(text[:300])
	}
	return text
}

// BuildUser constructs a user without persisting it. The index keeps emails
// unique across one seeding run.
func (f *Factory) BuildUser(index int) (*models.User, error) {
	hash, err := f.password()
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	first, last := f.fake.FirstName(), f.fake.LastName()
	email := strings.ToLower(fmt.Sprintf("%s.%s%d@example.com", first, last, index))
	return &models.User{
		Name:     first + " " + last,
		Email:    email,
		Password: hash,
		Avatar:   auth.GravatarURL(email),
	}, nil
}

// CreateUser constructs and persists a sample user. Override functions may
// modify the generated user before saving.
func (f *Factory) CreateUser(index int, overrides ...func(*models.User)) (*models.User, error) {
	user, err := f.BuildUser(index)
	if err != nil {
		return nil, err
	}
	for _, override := range overrides {
		override(user)
	}

	if f.opts.DryRun {
		user.ID = f.syntheticID()
		slog.Debug("[dry-run] CreateUser", slog.String("email", user.Email))
		return user, nil
	}
	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// BuildProfile constructs a profile for user with a few experience and
// education entries, newest first.
func (f *Factory) BuildProfile(user *models.User) *models.Profile {
	local := strings.SplitN(user.Email, "@", 2)[0]
	handle := strings.NewReplacer(".", "", "_", "").Replace(local)
	if len(handle) > 40 {
		handle = handle[:40]
	}

	skills := make(models.StringList, 0, 4)
	for i := f.fake.Number(1, 4); i > 0; i-- {
		skills = append(skills, f.fake.ProgrammingLanguage())
	}

	profile := &models.Profile{
		UserID:         user.ID,
		Handle:         handle,
		Company:        f.fake.Company(),
		Website:        "https://" + f.fake.DomainName(),
		Location:       f.fake.City(),
		Status:         f.fake.RandomString([]string{"Developer", "Junior Developer", "Senior Developer", "Manager", "Student or Learning", "Instructor", "Intern"}),
		Skills:         skills,
		Bio:            f.fake.Sentence(12),
		GithubUsername: handle,
		Social: models.Social{
			Twitter:  "https://twitter.com/" + handle,
			Linkedin: "https://linkedin.com/in/" + handle,
		},
	}

	start := time.Now().AddDate(-f.fake.Number(4, 12), 0, 0)
	jobs := f.fake.Number(1, 3)
	for i := 0; i < jobs; i++ {
		end := start.AddDate(f.fake.Number(1, 3), 0, 0)
		exp := models.Experience{
			Title:   f.fake.JobTitle(),
			Company: f.fake.Company(),
			From:    start,
		}
		if i == jobs-1 || end.After(time.Now()) {
			exp.Current = true
		} else {
			to := end
			exp.To = &to
		}
		profile.Experience = append([]models.Experience{exp}, profile.Experience...)
		if exp.Current {
			break
		}
		start = end
	}

	from := time.Now().AddDate(-f.fake.Number(13, 20), 0, 0)
	to := from.AddDate(4, 0, 0)
	profile.Education = []models.Education{{
		School:       f.fake.Company() + " University",
		Degree:       f.fake.RandomString([]string{"BSc", "BA", "MSc", "Bootcamp"}),
		FieldOfStudy: "Computer Science",
		From:         from,
		To:           &to,
	}}

	return profile
}

// CreateProfile persists a generated profile and its entries.
func (f *Factory) CreateProfile(user *models.User, overrides ...func(*models.Profile)) (*models.Profile, error) {
	profile := f.BuildProfile(user)
	for _, override := range overrides {
		override(profile)
	}

	if f.opts.DryRun {
		profile.ID = f.syntheticID()
		return profile, nil
	}

	err := f.db.Transaction(func(tx *gorm.DB) error {
		entries, schools := profile.Experience, profile.Education
		profile.Experience, profile.Education = nil, nil
		if err := tx.Omit(clause.Associations).Create(profile).Error; err != nil {
			return err
		}
		// Insert oldest first so ids grow towards the newest entry.
		for i := len(entries) - 1; i >= 0; i-- {
			entries[i].ProfileID = profile.ID
			if err := tx.Create(&entries[i]).Error; err != nil {
				return err
			}
		}
		for i := len(schools) - 1; i >= 0; i-- {
			schools[i].ProfileID = profile.ID
			if err := tx.Create(&schools[i]).Error; err != nil {
				return err
			}
		}
		profile.Experience, profile.Education = entries, schools
		return nil
	})
	if err != nil {
		return nil, err
	}
	return profile, nil
}

// BuildPost constructs a post by author without persisting it.
func (f *Factory) BuildPost(author *models.User) *models.Post {
	return &models.Post{
		UserID:    author.ID,
		Text:      f.postText(),
		Name:      author.Name,
		Avatar:    author.Avatar,
		CreatedAt: f.pastTime(),
	}
}

// CreatePost constructs and persists a sample post for author.
func (f *Factory) CreatePost(author *models.User, overrides ...func(*models.Post)) (*models.Post, error) {
	post := f.BuildPost(author)
	for _, override := range overrides {
		override(post)
	}

	if f.opts.DryRun {
		post.ID = f.syntheticID()
		return post, nil
	}
	if err := f.db.Omit(clause.Associations).Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// CreateComment persists a comment by author on post.
func (f *Factory) CreateComment(author *models.User, post *models.Post) (*models.Comment, error) {
	comment := &models.Comment{
		PostID:    post.ID,
		UserID:    author.ID,
		Text:      f.postText(),
		Name:      author.Name,
		Avatar:    author.Avatar,
		CreatedAt: post.CreatedAt.Add(time.Duration(f.fake.Number(1, 48*60)) * time.Minute),
	}

	if f.opts.DryRun {
		comment.ID = f.syntheticID()
		return comment, nil
	}
	if err := f.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// CreateLike persists a like from user on post.
func (f *Factory) CreateLike(user *models.User, post *models.Post) error {
	if f.opts.DryRun {
		return nil
	}
	return f.db.Create(&models.Like{PostID: post.ID, UserID: user.ID}).Error
}
