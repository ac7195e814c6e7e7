// Command createadmin bootstraps an admin account. Registration through
// the API only ever creates user-role accounts, so the first admin (and
// any later ones) is created out of band with this tool.
//
//	createadmin -email admin@example.com -password s3cret -name "Head Librarian"
package main

import (
	"context"
	"flag"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/openshelf/library-system/internal/core/domain"
	"github.com/openshelf/library-system/internal/infrastructure/config"
	mongoinfra "github.com/openshelf/library-system/internal/infrastructure/db/mongo"
	"github.com/openshelf/library-system/pkg/logger"
)

func main() {
	email := flag.String("email", "", "admin email (required)")
	password := flag.String("password", "", "admin password (required)")
	name := flag.String("name", "", "display name")
	flag.Parse()

	cfg := config.Load()
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true})

	if *email == "" || *password == "" {
		log.Fatal().Msg("-email and -password are required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, db, err := mongoinfra.Connect(ctx, mongoinfra.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to MongoDB")
	}
	defer func() {
		_ = client.Disconnect(ctx)
	}()

	repo := mongoinfra.NewAuthRepository(db)
	if err := repo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to create indexes")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to hash password")
	}

	now := time.Now().UTC()
	admin, err := repo.Create(ctx, &domain.User{
		Email:        *email,
		Name:         *name,
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		log.Fatal().Err(err).Str("email", *email).Msg("failed to create admin")
	}

	log.Info().Str("id", admin.ID).Str("email", admin.Email).Msg("admin user created")
}
