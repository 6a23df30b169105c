package main

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"github.com/joho/godotenv"

	"github.com/oksasatya/go-session-profile/config"
	"github.com/oksasatya/go-session-profile/internal/domain/entity"
	"github.com/oksasatya/go-session-profile/internal/domain/repository"
	pginfra "github.com/oksasatya/go-session-profile/internal/infrastructure/postgres"
	"github.com/oksasatya/go-session-profile/pkg/helpers"
)

func main() {
	username := flag.String("username", "demoUser", "username to seed")
	password := flag.String("password", "password123", "password for the seeded user")
	status := flag.String("status", "Hello from the seed script", "initial status")
	del := flag.Bool("delete", false, "delete the user instead of seeding it")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)
	ctx := context.Background()

	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), pginfra.PoolOptions{MaxConns: 2})
	if err != nil {
		logger.WithError(err).Fatal("failed to connect to postgres")
	}
	defer pool.Close()

	if err := pginfra.RunMigrations(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
		logger.WithError(err).Fatal("migration failed")
	}

	repo := pginfra.NewUserRepository(pool)

	if *del {
		err := repo.Delete(ctx, *username)
		if errors.Is(err, repository.ErrUserNotFound) {
			fmt.Printf("no user %q to delete\n", *username)
			return
		}
		if err != nil {
			logger.WithError(err).Fatal("failed to delete user")
		}
		// sessions still naming this user are cleaned up on their next request
		fmt.Printf("deleted user %q\n", *username)
		return
	}

	hash, err := helpers.HashPassword(*password, cfg.SaltRounds)
	if err != nil {
		logger.WithError(err).Fatal("failed to hash password")
	}

	// recreate so the password always matches the flag
	if err := repo.Delete(ctx, *username); err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		logger.WithError(err).Fatal("failed to reset user")
	}
	u := &entity.User{Username: *username, PasswordHash: hash, Status: *status}
	if err := repo.Create(ctx, u); err != nil {
		logger.WithError(err).Fatal("failed to seed user")
	}
	fmt.Printf("seeded user: id=%s username=%s password=%s\n", u.ID, u.Username, *password)
}
