package main

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/mcomanduci/diario-de-gratidao/internal/domain/entity"
	"github.com/mcomanduci/diario-de-gratidao/pkg/helpers"

	"github.com/mcomanduci/diario-de-gratidao/config"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	email := "demo@diario.local"
	password := "password123"
	name := "Demo"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var id string
	err = db.QueryRow(`
		INSERT INTO users (email, password, name, avatar_url)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (email) DO UPDATE SET name=EXCLUDED.name
		RETURNING id
	`, email, hash, name, "").Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%s email=%s password=%s\n", id, email, password)

	samples := []struct {
		title    string
		desc     string
		category entity.Category
		daysAgo  int
	}{
		{"Almoço em família", "Domingo todos juntos na casa da vó.", entity.CategoryFamily, 2},
		{"Projeto entregue", "Fechamos a sprint sem pendências.", entity.CategoryWork, 1},
		{"Culto da manhã", "Mensagem sobre gratidão.", entity.CategoryReligious, 1},
		{"Pôr do sol", "Caminhada no parque no fim do dia.", entity.CategoryOther, 0},
	}

	for _, s := range samples {
		createdAt := time.Now().UTC().AddDate(0, 0, -s.daysAgo)
		if _, err := db.Exec(`
			INSERT INTO diarios (id, user_id, title, description, category, image_url, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
			ON CONFLICT (id) DO NOTHING
		`, uuid.NewString(), id, s.title, s.desc, string(s.category), "https://res.cloudinary.com/demo/image/upload/sample.jpg", createdAt); err != nil {
			log.Fatalf("failed to seed diary: %v", err)
		}
	}
	fmt.Printf("seeded %d diary entries\n", len(samples))

	if _, err := db.Exec(`
		UPDATE users SET streak = 2, last_log_date = $2 WHERE id = $1
	`, id, time.Now().UTC()); err != nil {
		log.Fatalf("failed to seed streak: %v", err)
	}
	fmt.Println("seeded streak for demo user")
}
