package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/skillink/skillink-api/config"
	"github.com/skillink/skillink-api/internal/infrastructure/memstore"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	dsn := cfg.PostgresDSN()
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	for _, u := range memstore.SeedUsers() {
		// database/sql has no native text[] support; hand pgx an array literal.
		roles := "{"
		for i, r := range u.Roles {
			if i > 0 {
				roles += ","
			}
			roles += string(r)
		}
		roles += "}"
		var location []byte
		if u.Location != nil {
			location, err = json.Marshal(u.Location)
			if err != nil {
				log.Fatalf("failed to marshal location for %s: %v", u.ID, err)
			}
		}

		_, err = db.Exec(`
			INSERT INTO users (id, name, phone, email, roles, location, profile_image, verified, trust_score, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5::text[], $6, $7, $8, $9, $10, $11)
			ON CONFLICT (id) DO UPDATE SET
				name = EXCLUDED.name,
				phone = EXCLUDED.phone,
				email = EXCLUDED.email,
				roles = EXCLUDED.roles,
				location = EXCLUDED.location,
				verified = EXCLUDED.verified,
				trust_score = EXCLUDED.trust_score,
				updated_at = EXCLUDED.updated_at
		`, u.ID, u.Name, u.Phone, u.Email, roles, location, u.ProfileImage, u.Verified, u.TrustScore, u.CreatedAt, u.UpdatedAt)
		if err != nil {
			log.Fatalf("failed to seed user %s: %v", u.ID, err)
		}
		fmt.Printf("seeded user: id=%s phone=%s name=%s roles=%v\n", u.ID, u.Phone, u.Name, roles)
	}
}
