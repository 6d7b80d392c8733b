package seed

import (
	"embed"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"sort"

	"devconnector/internal/models"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

//go:embed presets/presets.yaml
var presetFS embed.FS

// Preset describes how much data one seeding run generates.
type Preset struct {
	Users              int     `yaml:"users"`
	ProfileRatio       float64 `yaml:"profile_ratio"`
	PostsPerUser       int     `yaml:"posts_per_user"`
	MaxLikesPerPost    int     `yaml:"max_likes_per_post"`
	MaxCommentsPerPost int     `yaml:"max_comments_per_post"`
}

// Validate rejects presets that cannot be applied.
func (p Preset) Validate() error {
	if p.Users <= 0 {
		return fmt.Errorf("users must be positive, got %d", p.Users)
	}
	if p.ProfileRatio < 0 || p.ProfileRatio > 1 {
		return fmt.Errorf("profile_ratio must be between 0 and 1, got %v", p.ProfileRatio)
	}
	if p.PostsPerUser < 0 || p.MaxLikesPerPost < 0 || p.MaxCommentsPerPost < 0 {
		return fmt.Errorf("counts must not be negative")
	}
	return nil
}

type presetFile struct {
	Presets map[string]Preset `yaml:"presets"`
}

// LoadPresets decodes a presets document.
func LoadPresets(r io.Reader) (map[string]Preset, error) {
	var doc presetFile
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode presets: %w", err)
	}
	if len(doc.Presets) == 0 {
		return nil, fmt.Errorf("no presets defined")
	}
	for name, p := range doc.Presets {
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("preset %q: %w", name, err)
		}
	}
	return doc.Presets, nil
}

// LoadPresetsFile reads presets from a YAML file on disk.
func LoadPresetsFile(path string) (map[string]Preset, error) {
	f, err := os.Open(path) // #nosec G304: operator supplied path
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return LoadPresets(f)
}

// DefaultPresets returns the built-in presets.
func DefaultPresets() map[string]Preset {
	f, err := presetFS.Open("presets/presets.yaml")
	if err != nil {
		panic(err)
	}
	defer func() { _ = f.Close() }()
	presets, err := LoadPresets(f)
	if err != nil {
		panic(err)
	}
	return presets
}

// PresetNames lists preset names in a stable order.
func PresetNames(presets map[string]Preset) []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Summary counts what a run created.
type Summary struct {
	Users    int
	Profiles int
	Posts    int
	Likes    int
	Comments int
}

// Seeder applies presets through a Factory.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
}

// NewSeeder returns a Seeder writing to db.
func NewSeeder(db *gorm.DB, opts Options) *Seeder {
	return &Seeder{db: db, factory: NewFactory(db, opts)}
}

// ClearAll removes every row the application owns, children first.
func (s *Seeder) ClearAll() error {
	if s.factory.opts.DryRun {
		return nil
	}
	slog.Info("Clearing existing data")
	return s.db.Transaction(func(tx *gorm.DB) error {
		for _, model := range []any{
			&models.Like{},
			&models.Comment{},
			&models.Post{},
			&models.Experience{},
			&models.Education{},
			&models.Profile{},
			&models.User{},
		} {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
				return fmt.Errorf("clear %T: %w", model, err)
			}
		}
		return nil
	})
}

// Apply generates the data described by p.
func (s *Seeder) Apply(p Preset) (*Summary, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	f := s.factory
	sum := &Summary{}

	users := make([]*models.User, 0, p.Users)
	for i := 0; i < p.Users; i++ {
		u, err := f.CreateUser(i)
		if err != nil {
			return sum, fmt.Errorf("create user: %w", err)
		}
		users = append(users, u)
	}
	sum.Users = len(users)
	slog.Info("Seeded users", slog.Int("count", sum.Users))

	withProfile := int(math.Round(float64(len(users)) * p.ProfileRatio))
	for _, u := range users[:withProfile] {
		if _, err := f.CreateProfile(u); err != nil {
			return sum, fmt.Errorf("create profile: %w", err)
		}
		sum.Profiles++
	}
	slog.Info("Seeded profiles", slog.Int("count", sum.Profiles))

	for _, author := range users {
		for i := 0; i < p.PostsPerUser; i++ {
			post, err := f.CreatePost(author)
			if err != nil {
				return sum, fmt.Errorf("create post: %w", err)
			}
			sum.Posts++

			likes := f.fake.Number(0, min(p.MaxLikesPerPost, len(users)))
			for _, idx := range f.pick(len(users), likes) {
				if err := f.CreateLike(users[idx], post); err != nil {
					return sum, fmt.Errorf("create like: %w", err)
				}
				sum.Likes++
			}

			comments := f.fake.Number(0, p.MaxCommentsPerPost)
			for j := 0; j < comments; j++ {
				commenter := users[f.fake.Number(0, len(users)-1)]
				if _, err := f.CreateComment(commenter, post); err != nil {
					return sum, fmt.Errorf("create comment: %w", err)
				}
				sum.Comments++
			}
		}
	}
	slog.Info("Seeded posts",
		slog.Int("posts", sum.Posts),
		slog.Int("likes", sum.Likes),
		slog.Int("comments", sum.Comments),
	)
	return sum, nil
}

// pick returns k distinct indexes in [0, n).
func (f *Factory) pick(n, k int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	f.fake.ShuffleAnySlice(idx)
	return idx[:k]
}
