// Package seed provides database seeding utilities for development and
// testing. All generated accounts share the password "password123".
package seed

import (
	"fmt"
	"log"
	"math/rand"

	"seedbed/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder.
type Options struct {
	NumUsers        int
	NumPosts        int
	CommentsPerPost int
	// LikeRatio is the fraction of user/post pairs that get a like.
	LikeRatio float64
	// GardenerRatio is the fraction of posts that receive AI gardener
	// comments, up to the per-post cap.
	GardenerRatio float64
	ShouldClean   bool
	// SkipBcrypt stores a plaintext marker instead of a real hash. Much
	// faster for large seeds; the accounts cannot log in.
	SkipBcrypt bool
	// MaxDays spreads created_at timestamps over the past N days.
	MaxDays int
}

// DefaultOptions are sized for a small local development database.
func DefaultOptions() Options {
	return Options{
		NumUsers:        20,
		NumPosts:        60,
		CommentsPerPost: 4,
		LikeRatio:       0.15,
		GardenerRatio:   0.3,
		ShouldClean:     true,
		MaxDays:         90,
	}
}

// Seeder populates the database with generated content.
type Seeder struct {
	db      *gorm.DB
	opts    Options
	factory *Factory
	rng     *rand.Rand
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB, opts Options) *Seeder {
	return &Seeder{
		db:      db,
		opts:    opts,
		factory: NewFactory(db, opts),
		rng:     rand.New(rand.NewSource(rand.Int63())),
	}
}

// ClearAll removes all seeded domain data, children first.
func (s *Seeder) ClearAll() error {
	for _, table := range []string{"likes", "comments", "posts", "users"} {
		if err := s.db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	return nil
}

// Seed populates the database with users, posts, comments, and likes.
func (s *Seeder) Seed() error {
	log.Printf("🌱 Seeding %d users and %d posts...", s.opts.NumUsers, s.opts.NumPosts)

	if s.opts.ShouldClean {
		if err := s.ClearAll(); err != nil {
			return fmt.Errorf("clean before seed: %w", err)
		}
	}

	users, err := s.seedUsers()
	if err != nil {
		return fmt.Errorf("seed users: %w", err)
	}
	log.Printf("✓ %d users created", len(users))

	posts, err := s.seedPosts(users)
	if err != nil {
		return fmt.Errorf("seed posts: %w", err)
	}
	log.Printf("✓ %d posts created", len(posts))

	comments, err := s.seedComments(users, posts)
	if err != nil {
		return fmt.Errorf("seed comments: %w", err)
	}
	log.Printf("✓ %d comments created", comments)

	likes, err := s.seedLikes(users, posts)
	if err != nil {
		return fmt.Errorf("seed likes: %w", err)
	}
	log.Printf("✓ %d likes created", likes)

	return nil
}

func (s *Seeder) seedUsers(n ...int) ([]*models.User, error) {
	count := s.opts.NumUsers
	if len(n) > 0 {
		count = n[0]
	}

	users := make([]*models.User, 0, count)
	for i := 0; i < count; i++ {
		user, err := s.factory.CreateUser()
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

func (s *Seeder) seedPosts(users []*models.User) ([]*models.Post, error) {
	if len(users) == 0 {
		return nil, nil
	}

	posts := make([]*models.Post, 0, s.opts.NumPosts)
	for i := 0; i < s.opts.NumPosts; i++ {
		author := users[s.rng.Intn(len(users))]
		posts = append(posts, s.factory.BuildPost(author))
	}
	if err := s.factory.CreatePostsBatch(posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (s *Seeder) seedComments(users []*models.User, posts []*models.Post) (int, error) {
	if len(users) == 0 || len(posts) == 0 {
		return 0, nil
	}

	created := 0
	for _, post := range posts {
		n := s.rng.Intn(s.opts.CommentsPerPost + 1)
		for i := 0; i < n; i++ {
			author := users[s.rng.Intn(len(users))]
			if _, err := s.factory.CreateComment(author, post); err != nil {
				return created, err
			}
			created++
		}

		if s.rng.Float64() < s.opts.GardenerRatio {
			gardener := users[s.rng.Intn(len(users))]
			count := 1 + s.rng.Intn(3)
			for i := 0; i < count; i++ {
				if _, err := s.factory.CreateGardenerComment(gardener, post); err != nil {
					return created, err
				}
				created++
			}
		}
	}
	return created, nil
}

func (s *Seeder) seedLikes(users []*models.User, posts []*models.Post) (int, error) {
	created := 0
	for _, post := range posts {
		for _, user := range users {
			if s.rng.Float64() >= s.opts.LikeRatio {
				continue
			}
			if err := s.factory.CreateLike(user, post); err != nil {
				return created, err
			}
			created++
		}
	}
	return created, nil
}
