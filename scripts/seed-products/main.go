package main

import (
	"database/sql"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

const numProductsPerCategory = 8

var db *sql.DB

// materials per category slug, picked at random for each product
var materials = map[string][]string{
	"jewelry":    {"Sterling Silver", "14k Gold", "Copper", "Brass", "Glass Beads"},
	"pottery":    {"Stoneware", "Porcelain", "Terracotta", "Earthenware"},
	"textiles":   {"Merino Wool", "Organic Cotton", "Linen", "Alpaca"},
	"paintings":  {"Oil on Canvas", "Acrylic", "Watercolor", "Mixed Media"},
	"home-decor": {"Reclaimed Oak", "Walnut", "Ceramic", "Woven Rattan"},
	"gifts":      {"Beeswax", "Soy Wax", "Cedar", "Leather"},
}

var nouns = map[string][]string{
	"jewelry":    {"Ring", "Necklace", "Bracelet", "Pendant", "Earrings"},
	"pottery":    {"Bowl", "Mug", "Vase", "Planter", "Serving Dish"},
	"textiles":   {"Scarf", "Throw Blanket", "Table Runner", "Wall Hanging"},
	"paintings":  {"Landscape", "Still Life", "Abstract Piece", "Portrait"},
	"home-decor": {"Candle Holder", "Coaster Set", "Shelf", "Mirror Frame"},
	"gifts":      {"Candle", "Soap Set", "Journal", "Keychain"},
}

func main() {
	gofakeit.Seed(time.Now().UnixNano())

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "./db/artisan-market.db"
	}

	var err error
	db, err = sql.Open("sqlite3", dbPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	fmt.Println("🌱 Seeding products...")

	categories := loadCategories()
	if len(categories) == 0 {
		log.Fatal("❌ No categories found. Run migrations first.")
	}

	total := 0
	for slug, categoryID := range categories {
		for i := 0; i < numProductsPerCategory; i++ {
			if err := seedProduct(slug, categoryID); err != nil {
				log.Fatalf("Failed to seed product: %v", err)
			}
			total++
		}
	}

	fmt.Printf("✅ Seeded %d products across %d categories\n", total, len(categories))
}

func loadCategories() map[string]string {
	rows, err := db.Query("SELECT slug, id FROM categories")
	if err != nil {
		log.Fatalf("Failed to load categories: %v", err)
	}
	defer rows.Close()

	categories := make(map[string]string)
	for rows.Next() {
		var slug, id string
		if err := rows.Scan(&slug, &id); err != nil {
			log.Printf("Error scanning category: %v", err)
			continue
		}
		categories[slug] = id
	}
	return categories
}

func seedProduct(slug, categoryID string) error {
	material := pick(materials[slug])
	name := fmt.Sprintf("%s %s %s", gofakeit.AdjectiveDescriptive(), material, pick(nouns[slug]))

	priceCents := int64(gofakeit.Number(1500, 25000))
	lengthCM := 2 + rand.Float64()*38
	widthCM := 2 + rand.Float64()*28

	_, err := db.Exec(`
		INSERT INTO products (id, name, category_id, price_cents, material, length_cm, width_cm, description)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		uuid.New().String(),
		name,
		categoryID,
		priceCents,
		material,
		lengthCM,
		widthCM,
		gofakeit.Sentence(14),
	)
	return err
}

func pick(options []string) string {
	return options[rand.Intn(len(options))]
}
