package main

import (
	"database/sql"
	"log"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to ping DB: %v", err)
	}

	seedProducts(db)

	log.Println("Seeding completed successfully!")
}

func seedProducts(db *sql.DB) {
	products := []struct {
		Title       string
		Slug        string
		UnitPrice   float64
		BundlePromo bool
		LegacyPromo bool
	}{
		{"Classic Forge Tee", "classic-forge-tee", 20.00, false, false},
		{"Workshop Print Tee", "workshop-print-tee", 22.50, true, false},
		{"Anvil Graphic Tee", "anvil-graphic-tee", 24.00, false, true},
		{"Maker Mark Hoodie", "maker-mark-hoodie", 45.00, false, false},
		{"Bundle Special Tee", "bundle-special-tee", 28.00, true, true},
		{"Custom Design Blank", "custom-design-blank", 18.00, false, false},
	}

	log.Println("Seeding products...")
	for _, p := range products {
		_, err := db.Exec(`
			INSERT INTO products (title, slug, unit_price, bundle_promo, legacy_bundle_promo)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (slug) DO UPDATE SET
				title = EXCLUDED.title,
				unit_price = EXCLUDED.unit_price,
				bundle_promo = EXCLUDED.bundle_promo,
				legacy_bundle_promo = EXCLUDED.legacy_bundle_promo,
				updated_at = NOW()
		`, p.Title, p.Slug, p.UnitPrice, p.BundlePromo, p.LegacyPromo)
		if err != nil {
			log.Fatalf("Failed to seed product %s: %v", p.Slug, err)
		}
	}
}
