// seed inserts default statuses, an admin role and an admin user with a
// password into the local dev database. Safe to re-run.
// Run: go run ./cmd/seed
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/ErlanBelekov/dashboard-api/internal/domain"
	"github.com/ErlanBelekov/dashboard-api/internal/infrastructure/postgres"
	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

const (
	defaultAdminEmail    = "admin@dashboard.local"
	defaultAdminPassword = "admin-password"
	adminRoleName        = "admin"
)

type statusSeed struct {
	name  string
	color string
	order int
}

var statuses = []statusSeed{
	{"À faire", "#6b7280", 0},
	{"En cours", "#3b82f6", 1},
	{"En revue", "#f59e0b", 2},
	{"Terminé", "#22c55e", 3},
}

func main() {
	ctx := context.Background()
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}
	email := envOr("SEED_ADMIN_EMAIL", defaultAdminEmail)
	password := envOr("SEED_ADMIN_PASSWORD", defaultAdminPassword)

	pool, err := postgres.NewPool(ctx, dbURL)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		pool.Close()
		log.Fatalf("migrate: %v", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		pool.Close()
		log.Fatalf("hash password: %v", err)
	}

	var userID string
	var inserted int
	err = pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
		for _, s := range statuses {
			tag, err := tx.Exec(ctx, `
				INSERT INTO statuses (name, color, "order")
				SELECT $1, $2, $3
				WHERE NOT EXISTS (SELECT 1 FROM statuses WHERE name = $1)`,
				s.name, s.color, s.order,
			)
			if err != nil {
				return fmt.Errorf("insert status %q: %w", s.name, err)
			}
			inserted += int(tag.RowsAffected())
		}

		var roleID string
		err := tx.QueryRow(ctx, `
			INSERT INTO custom_roles (name, permissions)
			VALUES ($1, $2)
			ON CONFLICT (name) DO UPDATE SET permissions = EXCLUDED.permissions
			RETURNING id`,
			adminRoleName, []string{domain.PermManageRoles},
		).Scan(&roleID)
		if err != nil {
			return fmt.Errorf("upsert admin role: %w", err)
		}

		err = tx.QueryRow(ctx, `
			INSERT INTO users (name, email, active, role, custom_role_id)
			VALUES ('Admin', $1, TRUE, $2, $3)
			ON CONFLICT (email) DO UPDATE
				SET custom_role_id = EXCLUDED.custom_role_id, updated_at = NOW()
			RETURNING id`,
			email, string(domain.SystemRoleAdmin), roleID,
		).Scan(&userID)
		if err != nil {
			return fmt.Errorf("upsert admin user: %w", err)
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO accounts (user_id, provider, account_id, password_hash)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (provider, account_id) DO UPDATE SET password_hash = EXCLUDED.password_hash`,
			userID, string(domain.ProviderCredential), userID, string(hash),
		)
		if err != nil {
			return fmt.Errorf("upsert credential account: %w", err)
		}
		return nil
	})
	if err != nil {
		pool.Close()
		log.Fatalf("seed: %v", err)
	}

	fmt.Println("Seed complete")
	fmt.Println()
	fmt.Printf("  Admin:            %s / %s\n", email, password)
	fmt.Printf("  Admin user ID:    %s\n", userID)
	fmt.Printf("  Statuses created: %d  (skipped %d already existing)\n", inserted, len(statuses)-inserted)
	fmt.Println()
	fmt.Println("How to test:")
	fmt.Println()
	fmt.Println("  curl -s -c cookies.txt -X POST http://localhost:8080/api/auth/sign-in \\")
	fmt.Println("    -H 'Content-Type: application/json' \\")
	fmt.Printf("    -d '{\"email\":\"%s\",\"password\":\"%s\"}'\n", email, password)
	fmt.Println()
	fmt.Println("  curl -s -b cookies.txt http://localhost:8080/api/users/me")
	fmt.Println("  curl -s -b cookies.txt http://localhost:8080/api/users/list")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
