package main

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"travelagency/internal/config"
	"travelagency/internal/database"
	"travelagency/internal/middleware"
	"travelagency/internal/modules/admin"
	"travelagency/internal/modules/catalog"
	"travelagency/internal/modules/enquiry"
	"travelagency/internal/modules/feed"
	jwtsvc "travelagency/internal/pkg/jwt"
	"travelagency/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}

	enquiryRepo := repository.NewEnquiryRepository(db)
	offerRepo := repository.NewOfferRepository(db)
	destinationRepo := repository.NewDestinationRepository(db)
	adminRepo := repository.NewAdminUserRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTAccessTTL)

	hub := feed.NewHub()
	defer hub.Close()

	gate := enquiry.NewGate(cfg.MinFillDuration, cfg.MinResubmitInterval)
	coordinator := enquiry.NewCoordinator(cfg.CRMBaseURL, cfg.CRMBearerSecret, cfg.DeliveryTimeout)
	persister := enquiry.NewPersister(enquiryRepo)

	sessions := enquiry.NewSessionManager(cfg.SessionTTL, func() *enquiry.Orchestrator {
		return enquiry.NewOrchestrator(gate, coordinator, persister, hub, cfg.AutoResetDelay)
	})
	stopCleanup := sessions.ScheduleCleanup(5 * time.Minute)
	defer close(stopCleanup)

	enquiryHandler := enquiry.NewHandler(sessions, offerRepo)

	catalogService := catalog.NewService(offerRepo, destinationRepo)
	catalogHandler := catalog.NewHandler(catalogService)

	adminService := admin.NewService(adminRepo, enquiryRepo, j)
	adminHandler := admin.NewHandler(adminService)

	feedHandler := feed.NewHandler(hub)

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	v1 := r.Group("/api/v1")
	{
		// public
		enquiry.RegisterPublicRoutes(v1, enquiryHandler)
		catalog.RegisterRoutes(v1, catalogHandler)
		admin.RegisterPublicRoutes(v1, adminHandler)

		// protected (back office)
		protected := v1.Group("/")
		protected.Use(middleware.Auth(j))
		{
			admin.RegisterProtectedRoutes(protected, adminHandler)
			feed.RegisterRoutes(protected, feedHandler)
		}
	}

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
