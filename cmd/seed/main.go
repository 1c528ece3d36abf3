package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"travelagency/internal/database"
	"travelagency/internal/domain"
	"travelagency/internal/repository"
)

func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "agency.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := repository.Migrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	ctx := context.Background()
	now := time.Now()

	offerRepo := repository.NewOfferRepository(db)
	destinationRepo := repository.NewDestinationRepository(db)
	adminRepo := repository.NewAdminUserRepository(db)

	log.Println("Seeding destinations...")
	destinations := []*domain.Destination{
		{Name: "Santorini", Country: "Greece", Region: "Cyclades", Blurb: "Whitewashed villages above a volcanic caldera.", CreatedAt: now},
		{Name: "Kyoto", Country: "Japan", Region: "Kansai", Blurb: "Temples, gardens and tea houses.", CreatedAt: now},
		{Name: "Patagonia", Country: "Argentina", Blurb: "Glaciers and granite peaks at the end of the world.", CreatedAt: now},
		{Name: "Zanzibar", Country: "Tanzania", Blurb: "Spice markets and Indian Ocean beaches.", CreatedAt: now},
	}
	for _, d := range destinations {
		if err := destinationRepo.Create(ctx, d); err != nil {
			log.Printf("seed destination %s: %v", d.Name, err)
		}
	}

	log.Println("Seeding offers...")
	offers := []*domain.Offer{
		{Title: "Santorini Sunset Escape", Destination: "Santorini", Summary: "Five nights in Oia with a catamaran day.", PriceFrom: 1290, DurationDays: 6, Featured: true, CreatedAt: now, UpdatedAt: now},
		{Title: "Classic Kyoto & Nara", Destination: "Kyoto", Summary: "Guided week through old Japan.", PriceFrom: 2150, DurationDays: 8, Featured: true, CreatedAt: now, UpdatedAt: now},
		{Title: "Patagonia Trekking Camp", Destination: "Patagonia", Summary: "Ten days around Fitz Roy and Perito Moreno.", PriceFrom: 2890, DurationDays: 10, CreatedAt: now, UpdatedAt: now},
		{Title: "Zanzibar Beach Week", Destination: "Zanzibar", Summary: "Stone Town plus seven nights on Nungwi beach.", PriceFrom: 1640, DurationDays: 9, CreatedAt: now, UpdatedAt: now},
	}
	for _, o := range offers {
		if err := offerRepo.Create(ctx, o); err != nil {
			log.Printf("seed offer %s: %v", o.Title, err)
		}
	}

	adminEmail := os.Getenv("SEED_ADMIN_EMAIL")
	if adminEmail == "" {
		adminEmail = "admin@example.travel"
	}
	adminPassword := os.Getenv("SEED_ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "admin12345"
	}

	existing, err := adminRepo.GetByEmail(ctx, adminEmail)
	if err != nil {
		log.Fatal("lookup admin:", err)
	}
	if existing == nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
		if err != nil {
			log.Fatal("hash admin password:", err)
		}
		if err := adminRepo.Create(ctx, &domain.AdminUser{
			Email:        adminEmail,
			Name:         "Agency Admin",
			PasswordHash: string(hash),
			Role:         domain.RoleAdmin,
			CreatedAt:    now,
			UpdatedAt:    now,
		}); err != nil {
			log.Fatal("seed admin:", err)
		}
		log.Printf("Created admin user %s", adminEmail)
	} else {
		log.Printf("Admin user %s already exists, skipping", adminEmail)
	}

	log.Println("Seed complete")
}
