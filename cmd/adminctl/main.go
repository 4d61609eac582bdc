// Command adminctl provisions back-office operator accounts.  There is
// no registration endpoint: operators are created from the command line
// by someone with database credentials.
//
// Usage:
//
//	adminctl -email ops@pgclosets.com -password 's3cret'
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/pgclosets/booking-api/internal/config"
	"github.com/pgclosets/booking-api/internal/database"
	"github.com/pgclosets/booking-api/internal/model"
	"github.com/pgclosets/booking-api/internal/repository"
	"github.com/pgclosets/booking-api/internal/utils"
)

func main() {
	email := flag.String("email", "", "operator login email")
	password := flag.String("password", "", "operator password")
	flag.Parse()

	if *email == "" || *password == "" {
		log.Fatal("both -email and -password are required")
	}
	if len(*password) < 8 {
		log.Fatal("password must be at least 8 characters")
	}

	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	hash, err := utils.HashPassword(*password, cfg.BcryptCost)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	u := &model.AdminUser{Email: *email, PasswordHash: hash}
	if err := repository.NewAdminUserRepo(db).Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			log.Fatalf("account %s already exists", *email)
		}
		log.Fatalf("create account: %v", err)
	}
	log.Printf("created operator account %s (id=%d)", u.Email, u.ID)
}
