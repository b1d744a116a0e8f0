package main

import (
	"context"
	"errors"
	"log"
	"time"

	"eventtix/internal/config"
	"eventtix/internal/database"
	"eventtix/internal/domain"
	"eventtix/internal/repository"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	ctx := context.Background()
	userRepo := repository.NewUserRepository(db)
	eventRepo := repository.NewEventRepository(db)

	seedUser(ctx, userRepo, "admin@eventtix.local", "admin123", "Admin", domain.RoleAdmin)
	seedUser(ctx, userRepo, "alice@example.com", "secret123", "Alice", domain.RoleUser)
	seedUser(ctx, userRepo, "bob@example.com", "secret123", "Bob", domain.RoleUser)

	events := []domain.Event{
		{
			Name:       "Arena Rock Night",
			Date:       upcoming(14),
			Time:       "19:30",
			Venue:      "City Arena",
			Category:   "music",
			Price:      2500,
			TotalSeats: 40,
		},
		{
			Name:       "Standup Special",
			Date:       upcoming(7),
			Time:       "20:00",
			Venue:      "Comedy Cellar",
			Category:   "comedy",
			Price:      1200,
			TotalSeats: 25,
		},
		{
			Name:       "Indie Film Premiere",
			Date:       upcoming(21),
			Time:       "18:00",
			Venue:      "Grand Cinema",
			Category:   "film",
			Price:      800,
			TotalSeats: 30,
		},
	}
	for i := range events {
		ev := &events[i]
		ev.AvailableSeats = ev.TotalSeats
		ev.EnsureSeatsInitialized()
		if err := eventRepo.Create(ctx, ev); err != nil {
			log.Printf("seed event %q: %v", ev.Name, err)
			continue
		}
		log.Printf("seeded event %q (%d seats)", ev.Name, ev.TotalSeats)
	}
}

func seedUser(ctx context.Context, repo *repository.UserRepository, email, password, name string, role domain.UserRole) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	u := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         role,
		Status:       domain.UserActive,
	}
	if err := repo.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			log.Printf("user %s already exists, skipping", email)
			return
		}
		log.Fatalf("seed user %s: %v", email, err)
	}
	log.Printf("seeded user %s (%s)", email, role)
}

func upcoming(days int) time.Time {
	return time.Now().UTC().AddDate(0, 0, days).Truncate(24 * time.Hour)
}
