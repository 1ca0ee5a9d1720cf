package main

import (
	"log"
	"log/slog"
	"time"

	"github.com/circle-umd/circleup-v2/internal/auth"
	"github.com/circle-umd/circleup-v2/internal/config"
	"github.com/circle-umd/circleup-v2/internal/database"
	"github.com/circle-umd/circleup-v2/internal/event"
	"github.com/circle-umd/circleup-v2/internal/friendship"
	"github.com/circle-umd/circleup-v2/internal/profile"
	"github.com/circle-umd/circleup-v2/internal/rsvp"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func strPtr(s string) *string { return &s }

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	slog.Info("Starting database seeding...")

	// Connect to database
	db, err := database.NewPostgresConnection(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	slog.Info("Database connection established")

	// Seed test users with profiles
	slog.Info("Creating test users...")

	testUsers := []struct {
		email     string
		username  string
		firstName string
		lastName  string
		bio       string
	}{
		{"alice@circleup.dev", "alice_w", "Alice", "Walker", "Always up for live music."},
		{"bob@circleup.dev", "bob_s", "Bob", "Smith", "Intramural soccer and board games."},
		{"charlie@circleup.dev", "charlie_d", "Charlie", "Diaz", ""},
		{"dana@circleup.dev", "dana_k", "Dana", "Kim", "CS senior, coffee enthusiast."},
	}

	userIDs := make(map[string]string, len(testUsers))
	for _, u := range testUsers {
		hashed, _ := bcrypt.GenerateFromPassword([]byte("123456"), bcrypt.DefaultCost)
		user := auth.User{ID: uuid.New().String(), Email: u.email, Password: string(hashed)}

		err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&user).Error
		if err != nil {
			slog.Warn("User might already exist", "email", u.email, "error", err)
			continue
		}
		userIDs[u.username] = user.ID

		prof := profile.Profile{
			ID:        user.ID,
			Username:  strPtr(u.username),
			FirstName: strPtr(u.firstName),
			LastName:  strPtr(u.lastName),
		}
		if u.bio != "" {
			prof.Bio = strPtr(u.bio)
		}
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&prof).Error; err != nil {
			slog.Warn("Profile might already exist", "username", u.username, "error", err)
		} else {
			slog.Info("Created user", "username", u.username, "id", user.ID)
		}
	}

	// Seed upcoming events
	slog.Info("Creating events...")

	now := time.Now()
	events := []event.Event{
		{
			ID:            uuid.New().String(),
			Title:         "Sunset Rooftop Mixer",
			Description:   "Meet people from across campus over snacks and a skyline view.",
			Location:      "Stamp Student Union Rooftop",
			StartTime:     now.Add(48 * time.Hour),
			OrganizerName: strPtr("Campus Events Board"),
		},
		{
			ID:          uuid.New().String(),
			Title:       "Morning Trail Run",
			Description: "Easy 5k around the lake, all paces welcome.",
			Location:    "Lake Artemesia",
			StartTime:   now.Add(72 * time.Hour),
		},
		{
			ID:            uuid.New().String(),
			Title:         "Indie Film Night",
			Description:   "Double feature with a discussion after.",
			Location:      "Hoff Theater",
			StartTime:     now.Add(96 * time.Hour),
			OrganizerName: strPtr("Film Society"),
		},
		{
			ID:          uuid.New().String(),
			Title:       "Pickup Volleyball",
			Description: "Bring a friend, nets go up at 6.",
			Location:    "Eppley Recreation Center",
			StartTime:   now.Add(120 * time.Hour),
		},
	}
	for i := range events {
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&events[i]).Error; err != nil {
			slog.Warn("Event might already exist", "title", events[i].Title, "error", err)
		}
	}

	// Friendships: alice <-> bob accepted, charlie -> alice pending
	slog.Info("Creating friendships...")

	alice, bob, charlie := userIDs["alice_w"], userIDs["bob_s"], userIDs["charlie_d"]
	if alice != "" && bob != "" {
		pairs := []friendship.Friendship{
			{UserID: alice, FriendID: bob, Status: friendship.StatusAccepted},
			{UserID: bob, FriendID: alice, Status: friendship.StatusAccepted},
		}
		if err := db.Transaction(func(tx *gorm.DB) error {
			for i := range pairs {
				if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&pairs[i]).Error; err != nil {
					return err
				}
			}
			return nil
		}); err != nil {
			slog.Warn("Friendship might already exist", "error", err)
		}
	}
	if charlie != "" && alice != "" {
		pending := friendship.Friendship{UserID: charlie, FriendID: alice, Status: friendship.StatusPending}
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&pending).Error; err != nil {
			slog.Warn("Pending request might already exist", "error", err)
		}
	}

	// RSVPs so the popular-with-friends feed has data
	slog.Info("Creating RSVPs...")

	if bob != "" && len(events) > 0 {
		rsvps := []rsvp.EventRSVP{
			{UserID: bob, EventID: events[0].ID, Status: rsvp.StatusInterested, Visibility: rsvp.VisibilityPublic},
			{UserID: bob, EventID: events[2].ID, Status: rsvp.StatusGoing, Visibility: rsvp.VisibilityPublic},
		}
		for i := range rsvps {
			if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&rsvps[i]).Error; err != nil {
				slog.Warn("RSVP might already exist", "error", err)
			}
		}
	}

	slog.Info("Database seeding completed!")
}
