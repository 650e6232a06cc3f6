package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"

	"drivebook/config"
	"drivebook/cron"
	"drivebook/database"
	availabilityRepo "drivebook/database/repository/availability"
	instructorRepoPkg "drivebook/database/repository/instructor"
	learnerRepoPkg "drivebook/database/repository/learner"
	lessonRepoPkg "drivebook/database/repository/lesson"
	"drivebook/handlers"
	"drivebook/middleware"
	"drivebook/routes"
	"drivebook/services/availability"
	"drivebook/services/booking"
	"drivebook/services/events"
	"drivebook/services/instructor"
	"drivebook/services/learner"
	"drivebook/services/payment"
	"drivebook/services/tasks"
	"drivebook/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitAuthCache()

	stripe.Key = config.AppConfig.StripeKey

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	instructorRepo := instructorRepoPkg.NewMongoInstructorRepo()
	learnerRepo := learnerRepoPkg.NewMongoLearnerRepo()
	lessonRepo := lessonRepoPkg.NewMongoLessonRepo()
	overrideRepo := availabilityRepo.NewMongoOverrideRepo()

	// services.
	instructorService := &instructor.DefaultInstructorService{Repo: instructorRepo}
	learnerService := &learner.DefaultLearnerService{Repo: learnerRepo}

	availabilityService := &availability.DefaultAvailabilityService{
		Instructors: instructorRepo,
		Overrides:   overrideRepo,
		Lessons:     lessonRepo,
		Cache:       utils.GetCacheClient(),
	}

	paymentHandler := payment.NewStripePaymentHandler(logger, learnerRepo)

	var lessonEvents events.Publisher
	publisher, err := events.NewKafkaPublisher(config.KafkaBrokerList(), config.AppConfig.KafkaLessonTopic)
	if err != nil {
		logger.Sugar().Warnf("main: lesson events disabled: %v", err)
	} else {
		lessonEvents = publisher
	}

	bookingService := &booking.DefaultBookingService{
		Lessons:      lessonRepo,
		Instructors:  instructorRepo,
		Learners:     learnerRepo,
		Availability: availabilityService,
		Payment:      paymentHandler,
		Events:       lessonEvents,
		Reminders:    tasks.NewScheduler(),
		Currency:     config.AppConfig.Currency,
	}

	// Background reminder worker.
	go cron.InitReminderWorker(lessonRepo)

	// Assemble the handler bundle and register routes.
	handlerBundle := handlers.NewHandlerBundle(
		instructorRepo,
		learnerRepo,
		handlers.NewInstructorHandler(instructorService),
		handlers.NewLearnerHandler(learnerService),
		handlers.NewAvailabilityHandler(availabilityService),
		handlers.NewBookingHandler(bookingService),
	)
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	if publisher != nil {
		if err := publisher.Close(); err != nil {
			logger.Sugar().Warnf("main: failed to close event publisher: %v", err)
		}
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
