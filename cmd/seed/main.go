// Command seed installs the default company policy and an initial admin
// account on a fresh database. Safe to run repeatedly.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/attendly/attendly-backend-go/internal/config"
	"github.com/attendly/attendly-backend-go/internal/domain/policy"
	"github.com/attendly/attendly-backend-go/internal/domain/profile"
	"github.com/attendly/attendly-backend-go/internal/domain/user"
	"github.com/attendly/attendly-backend-go/internal/fixtures"
	"github.com/attendly/attendly-backend-go/internal/pkg/database"
	"github.com/attendly/attendly-backend-go/internal/repository/postgresql"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		os.Exit(1)
	}
	defer db.Close()

	ctx := context.Background()

	if err := seedPolicy(ctx, db); err != nil {
		fmt.Println("Error seeding policy:", err)
		os.Exit(1)
	}

	if err := seedAdmin(ctx, db); err != nil {
		fmt.Println("Error seeding admin:", err)
		os.Exit(1)
	}

	fmt.Println("Seeding complete")
}

func seedPolicy(ctx context.Context, db *database.DB) error {
	policyRepo := postgresql.NewPolicyRepository(db)

	_, err := policyRepo.Get(ctx)
	if err == nil {
		fmt.Println("Policy already present, skipping")
		return nil
	}
	if !errors.Is(err, policy.ErrPolicyNotFound) {
		return err
	}

	if _, err := policyRepo.Upsert(ctx, fixtures.DefaultPolicy()); err != nil {
		return err
	}
	fmt.Println("Default policy created")
	return nil
}

func seedAdmin(ctx context.Context, db *database.DB) error {
	userRepo := postgresql.NewUserRepository(db)
	profileRepo := postgresql.NewProfileRepository(db)

	exists, err := userRepo.ExistsByEmail(ctx, fixtures.AdminEmail)
	if err != nil {
		return err
	}
	if exists {
		fmt.Println("Admin account already present, skipping")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(fixtures.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	passwordHash := string(hash)

	return postgresql.WithTransaction(ctx, db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		created, err := userRepo.Create(txCtx, user.User{
			Email:        fixtures.AdminEmail,
			PasswordHash: &passwordHash,
		})
		if err != nil {
			return err
		}

		_, err = profileRepo.Create(txCtx, profile.Profile{
			UserID:           created.ID,
			FullName:         fixtures.AdminFullName,
			Email:            fixtures.AdminEmail,
			Role:             user.RoleAdmin,
			EmploymentStatus: profile.StatusActive,
		})
		if err != nil {
			return err
		}

		fmt.Println("Admin account created:", fixtures.AdminEmail)
		return nil
	})
}
