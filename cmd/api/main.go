package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"moffatbay/internal/config"
	"moffatbay/internal/database"
	"moffatbay/internal/middleware"
	"moffatbay/internal/modules/auth"
	"moffatbay/internal/modules/availability"
	"moffatbay/internal/modules/events"
	"moffatbay/internal/modules/notify"
	"moffatbay/internal/modules/reservation"
	jwtsvc "moffatbay/internal/pkg/jwt"
	"moffatbay/internal/pkg/mail"
	"moffatbay/internal/repository"
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
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	roomTypeRepo := repository.NewRoomTypeRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	reservationRepo := repository.NewReservationRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTAccessTTL)

	var mailer mail.Mailer
	if cfg.SMTPAddr != "" {
		mailer = mail.NewSMTPMailer(cfg.SMTPAddr, cfg.SMTPUsername, cfg.SMTPPassword)
	} else {
		mailer = mail.NewDevConsoleMailer(true)
	}
	dispatcher := notify.NewDispatcher(mailer, cfg.MailFrom)

	hub := events.NewHub()
	var publisher *events.Publisher
	if cfg.AMQPURL != "" {
		publisher = events.NewPublisher(cfg.AMQPURL)
	}
	sink := events.NewSink(hub, publisher)

	authService := auth.NewService(userRepo, customerRepo, j)
	authHandler := auth.NewHandler(authService)

	availabilityService := availability.NewService(roomTypeRepo, roomRepo, reservationRepo)
	availabilityHandler := availability.NewHandler(availabilityService, customerRepo)

	reservationService := reservation.NewService(
		reservationRepo,
		roomTypeRepo,
		customerRepo,
		availabilityService,
		dispatcher,
		sink,
		cfg.HoldTTL,
		cfg.PublicIDPrefix,
	)
	reservationHandler := reservation.NewHandler(reservationService)

	eventsHandler := events.NewHandler(hub)

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(middleware.ErrorLogger())
	r.Use(middleware.CORS())

	rdb := middleware.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword)

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterPublic(v1)

		// public with optional identity (guest booking, overlap warnings)
		open := v1.Group("/")
		open.Use(middleware.OptionalAuth(j))
		open.Use(middleware.ResponseCache(rdb, cfg.CacheTTL))
		{
			availabilityHandler.RegisterRoutes(open)
			reservationHandler.RegisterPublic(open)
		}

		// protected
		protected := v1.Group("/")
		protected.Use(middleware.Auth(j))
		{
			authHandler.RegisterProtected(protected)
			reservationHandler.RegisterProtected(protected)
		}

		// staff
		staff := v1.Group("/")
		staff.Use(middleware.Auth(j), middleware.RequireStaff())
		{
			eventsHandler.RegisterRoutes(staff)
		}
	}

	log.Printf("listening on %s", cfg.HTTPAddr)
	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatal(err)
	}
}
