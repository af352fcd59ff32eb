package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"homesweethome/config"
	"homesweethome/database"
	bookingRepo "homesweethome/database/repository/booking"
	listingRepo "homesweethome/database/repository/listing"
	userRepo "homesweethome/database/repository/user"
	"homesweethome/handlers"
	"homesweethome/middleware"
	"homesweethome/resolvers"
	"homesweethome/routes"
	"homesweethome/services/auth"
	"homesweethome/services/booking"
	"homesweethome/services/events"
	"homesweethome/services/geocoder"
	"homesweethome/services/identity"
	"homesweethome/services/listing"
	"homesweethome/services/payment"
	"homesweethome/services/storage"
	"homesweethome/services/user"
	"homesweethome/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("main: failed to load config: %v", err)
	}
	logger, err := utils.NewLogger(cfg)
	if err != nil {
		log.Fatalf("main: failed to build logger: %v", err)
	}
	defer logger.Sync()

	rootCtx, stop := context.WithCancel(context.Background())
	defer stop()

	mongoClient, err := database.Connect(rootCtx, cfg, logger)
	if err != nil {
		logger.Fatal("main: failed to connect to MongoDB", zap.Error(err))
	}
	db := mongoClient.Database(cfg.DatabaseName)

	// The geocode cache is optional; without Redis every lookup goes upstream.
	var geo geocoder.Geocoder = geocoder.NewNominatimGeocoder(cfg.GeocoderURL, cfg.GeocoderTimeout)
	var redisPinger utils.Pinger
	cacheClient, err := utils.NewCacheClient(rootCtx, cfg)
	if err != nil {
		logger.Warn("main: Redis unavailable, geocode cache disabled", zap.Error(err))
	} else {
		defer cacheClient.Close()
		geo = geocoder.NewCachedGeocoder(geo, cacheClient, cfg.GeocodeCacheTTL, logger)
		redisPinger = utils.PingFunc(func(ctx context.Context) error { return cacheClient.Ping(ctx).Err() })
	}

	var publisher events.Publisher = events.NopPublisher{}
	if cfg.NatsURL != "" {
		natsPublisher, err := events.NewNATSPublisher(cfg.NatsURL, logger)
		if err != nil {
			logger.Warn("main: NATS unavailable, events disabled", zap.Error(err))
		} else {
			publisher = natsPublisher
		}
	}
	defer publisher.Close()

	images, err := storage.NewCloudinaryUploader(cfg)
	if err != nil {
		logger.Fatal("main: failed to initialize cloudinary", zap.Error(err))
	}

	// repositories.
	users := userRepo.NewMongoUserRepo(db, logger)
	listings := listingRepo.NewMongoListingRepo(db, logger)
	bookings := bookingRepo.NewMongoBookingRepo(db, cfg.MongoTransactions, logger)

	// services.
	payments := payment.NewStripeProvider(cfg, logger)
	gate := auth.NewGate(
		users,
		identity.NewGoogleProvider(cfg),
		auth.NewCookieSigner(cfg.CookieSecret, cfg.CookieMaxAge(), cfg.IsProduction()),
		cfg.GuestUserID,
		logger,
	)
	userService := &user.DefaultUserService{
		Auth:     gate,
		Users:    users,
		Listings: listings,
		Bookings: bookings,
		Payments: payments,
		Logger:   logger,
	}
	listingService := &listing.DefaultListingService{
		Auth:     gate,
		Listings: listings,
		Users:    users,
		Bookings: bookings,
		Geocoder: geo,
		Images:   images,
		Events:   publisher,
		Logger:   logger,
	}
	bookingService := &booking.DefaultBookingService{
		Auth:           gate,
		Listings:       listings,
		Users:          users,
		Bookings:       bookings,
		Payments:       payments,
		Events:         publisher,
		Logger:         logger,
		PaymentTimeout: cfg.PaymentTimeout,
	}

	schema, err := resolvers.NewSchema(&resolvers.Resolver{
		Sessions:       gate,
		UserService:    userService,
		ListingService: listingService,
		BookingService: bookingService,
		Logger:         logger,
	})
	if err != nil {
		logger.Fatal("main: failed to parse GraphQL schema", zap.Error(err))
	}

	monitor := utils.NewHealthMonitor(utils.PingFunc(database.PingFunc(mongoClient)), redisPinger, 30*time.Second)
	monitor.Start(rootCtx)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(utils.ErrorHandler(logger))
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.RateLimitMiddleware(cfg.MaxRequestsPerMin, logger))

	handlerBundle := &handlers.HandlerBundle{
		GraphQLHandler: handlers.NewGraphQLHandler(schema, logger).Serve,
		HealthHandler:  handlers.NewHealthHandler(monitor).Serve,
	}
	routes.RegisterRoutes(router, handlerBundle, cfg.ClientOrigin)

	srv := &http.Server{
		Addr:    "0.0.0.0:" + cfg.AppPort,
		Handler: router,
	}

	logger.Info("Starting server", zap.String("addr", srv.Addr))
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("main: server failed to start", zap.Error(err))
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("main: server is shutting down...")
	stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("main: server forced to shutdown", zap.Error(err))
	}
	if err := mongoClient.Disconnect(ctx); err != nil {
		logger.Error("main: failed to disconnect from MongoDB", zap.Error(err))
	}

	logger.Info("main: server stopped gracefully")
}
