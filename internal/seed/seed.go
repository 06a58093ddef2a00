// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"linknet/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
}

var headlines = []string{
	"Software Engineer", "Senior Backend Developer", "Product Manager",
	"Data Scientist", "Engineering Manager", "DevOps Engineer",
	"Frontend Developer", "UX Designer", "Solutions Architect",
	"Technical Writer", "QA Engineer", "Site Reliability Engineer",
}

var skills = []string{
	"Go", "Python", "TypeScript", "Kubernetes", "PostgreSQL", "Redis",
	"React", "Terraform", "AWS", "GCP", "Docker", "gRPC", "Kafka",
	"System Design", "Leadership", "Public Speaking",
}

// Seeder populates the database with realistic test data.
type Seeder struct {
	db  *gorm.DB
	rng *rand.Rand
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{
		db:  db,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Seed runs the full pipeline: users with profiles, a connection mesh,
// message threads between connected pairs, and posts with engagement.
func (s *Seeder) Seed(opts Options) error {
	if opts.ShouldClean {
		if err := s.ClearAll(); err != nil {
			log.Println("Warning: could not clear all existing data, continuing anyway...")
		}
	}

	users, err := s.SeedUsers(opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("created %d users with profiles", len(users))

	connected, err := s.SeedConnections(users)
	if err != nil {
		return fmt.Errorf("failed to create connections: %w", err)
	}
	log.Printf("created %d connections", len(connected))

	if err := s.SeedMessages(connected); err != nil {
		return fmt.Errorf("failed to create messages: %w", err)
	}

	if err := s.SeedEngagement(users, opts.NumPosts); err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}
	log.Printf("created %d posts with engagement", opts.NumPosts)

	return nil
}

// ClearAll truncates every seeded table.
func (s *Seeder) ClearAll() error {
	log.Println("Clearing existing data...")
	sql := `TRUNCATE TABLE comments, likes, posts, messages, connections, profiles, users RESTART IDENTITY CASCADE;`
	return s.db.Exec(sql).Error
}

// SeedUsers creates n users, each with a populated profile.
// All seed users share the password "Password123!seed".
func (s *Seeder) SeedUsers(n int) ([]models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("Password123!seed"), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	users := make([]models.User, 0, n)
	for i := 0; i < n; i++ {
		first := gofakeit.FirstName()
		last := gofakeit.LastName()
		username := strings.ToLower(fmt.Sprintf("%s_%s%d", first, last, s.rng.Intn(1000)))

		user := models.User{
			Username: username,
			Email:    fmt.Sprintf("%s@%s", username, gofakeit.DomainName()),
			Password: string(hashed),
		}
		if err := s.db.Create(&user).Error; err != nil {
			return nil, err
		}

		profile := models.Profile{
			UserID:    user.ID,
			FirstName: first,
			LastName:  last,
			Headline:  headlines[s.rng.Intn(len(headlines))],
			Location:  gofakeit.City() + ", " + gofakeit.Country(),
			About:     gofakeit.Paragraph(1, 3, 8, " "),
			Skills:    s.pickSkills(),
			Experience: []models.Experience{
				{
					Title:     headlines[s.rng.Intn(len(headlines))],
					Company:   gofakeit.Company(),
					StartDate: fmt.Sprintf("%d-0%d", 2015+s.rng.Intn(8), 1+s.rng.Intn(9)),
				},
			},
		}
		if err := s.db.Create(&profile).Error; err != nil {
			return nil, err
		}

		users = append(users, user)
	}
	return users, nil
}

// connectedPair is an accepted connection used for message seeding.
type connectedPair struct {
	A, B uint
}

// SeedConnections builds a mesh of requests across the user set: most
// accepted, some left pending, a few rejected.
func (s *Seeder) SeedConnections(users []models.User) ([]connectedPair, error) {
	var accepted []connectedPair
	for i := range users {
		// Each user reaches out to a handful of later users, so every
		// generated pair is unique without extra bookkeeping.
		targets := s.rng.Intn(4) + 1
		for t := 0; t < targets && i+t+1 < len(users); t++ {
			j := i + t + 1

			status := models.ConnectionStatusAccepted
			switch s.rng.Intn(10) {
			case 0:
				status = models.ConnectionStatusRejected
			case 1, 2:
				status = models.ConnectionStatusPending
			}

			conn := models.Connection{
				RequesterID: users[i].ID,
				RecipientID: users[j].ID,
				Status:      status,
			}
			if err := s.db.Create(&conn).Error; err != nil {
				return nil, err
			}
			if status == models.ConnectionStatusAccepted {
				accepted = append(accepted, connectedPair{A: users[i].ID, B: users[j].ID})
			}
		}
	}
	return accepted, nil
}

// SeedMessages writes short threads between connected pairs. Roughly a third
// of received messages stay unread.
func (s *Seeder) SeedMessages(pairs []connectedPair) error {
	for _, pair := range pairs {
		if s.rng.Intn(3) == 0 {
			continue
		}
		count := s.rng.Intn(8) + 2
		when := time.Now().Add(-time.Duration(s.rng.Intn(72)) * time.Hour)
		for m := 0; m < count; m++ {
			senderID, recipientID := pair.A, pair.B
			if s.rng.Intn(2) == 0 {
				senderID, recipientID = pair.B, pair.A
			}
			msg := models.Message{
				SenderID:    senderID,
				RecipientID: recipientID,
				Content:     gofakeit.Sentence(s.rng.Intn(12) + 3),
				IsRead:      s.rng.Intn(3) != 0,
				CreatedAt:   when,
			}
			if err := s.db.Create(&msg).Error; err != nil {
				return err
			}
			when = when.Add(time.Duration(s.rng.Intn(30)+1) * time.Minute)
		}
	}
	return nil
}

// SeedEngagement creates posts with likes and comments, keeping the
// persisted counters in line with the rows it writes.
func (s *Seeder) SeedEngagement(users []models.User, numPosts int) error {
	if len(users) == 0 {
		return nil
	}
	types := []models.PostType{
		models.PostTypeText, models.PostTypeText, models.PostTypeText,
		models.PostTypeImage, models.PostTypeArticle,
	}

	for p := 0; p < numPosts; p++ {
		author := users[s.rng.Intn(len(users))]
		post := models.Post{
			AuthorID:  author.ID,
			Content:   gofakeit.Paragraph(1, 2, 10, " "),
			Type:      types[s.rng.Intn(len(types))],
			CreatedAt: time.Now().Add(-time.Duration(s.rng.Intn(90*24)) * time.Hour),
		}
		if post.Type == models.PostTypeArticle {
			post.Title = gofakeit.Sentence(5)
		}
		if err := s.db.Create(&post).Error; err != nil {
			return err
		}

		// Likes from a random prefix of the user set; shuffle so the same
		// users are not always the likers.
		likers := s.rng.Perm(len(users))[:s.rng.Intn(min(len(users), 12))]
		for _, idx := range likers {
			like := models.Like{PostID: post.ID, UserID: users[idx].ID}
			if err := s.db.Create(&like).Error; err != nil {
				return err
			}
		}

		numComments := s.rng.Intn(4)
		for cm := 0; cm < numComments; cm++ {
			comment := models.Comment{
				PostID:   post.ID,
				AuthorID: users[s.rng.Intn(len(users))].ID,
				Content:  gofakeit.Sentence(s.rng.Intn(10) + 2),
			}
			if err := s.db.Create(&comment).Error; err != nil {
				return err
			}
		}

		if err := s.db.Model(&models.Post{}).Where("id = ?", post.ID).Updates(map[string]interface{}{
			"likes_count":    len(likers),
			"comments_count": numComments,
		}).Error; err != nil {
			return err
		}
	}
	return nil
}

func (s *Seeder) pickSkills() []string {
	n := s.rng.Intn(5) + 2
	perm := s.rng.Perm(len(skills))
	picked := make([]string, 0, n)
	for _, idx := range perm[:n] {
		picked = append(picked, skills[idx])
	}
	return picked
}
