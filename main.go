package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"campfinder/config"
	"campfinder/database"
	bootcampRepoPkg "campfinder/database/repository/bootcamp"
	courseRepoPkg "campfinder/database/repository/course"
	reviewRepoPkg "campfinder/database/repository/review"
	userRepoPkg "campfinder/database/repository/user"
	"campfinder/handlers"
	"campfinder/routes"
	bootcampService "campfinder/services/bootcamp"
	courseService "campfinder/services/course"
	"campfinder/services/geocode"
	reviewService "campfinder/services/review"
	"campfinder/services/storage"
	"campfinder/services/tasks"
	userService "campfinder/services/user"
	"campfinder/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	client, err := database.Connect()
	if err != nil {
		logger.Sugar().Fatalf("main: failed to connect to mongodb: %v", err)
	}
	defer func() {
		if err := database.Disconnect(client); err != nil {
			logger.Sugar().Errorf("main: mongodb disconnect failed: %v", err)
		}
	}()

	utils.InitCache()

	storageService, err := storage.NewCloudinaryStorage()
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize cloudinary storage: %v", err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())

	// repositories.
	dbName := config.AppConfig.MongoDB
	bootcampRepo := bootcampRepoPkg.NewMongoBootcampRepo(client, dbName)
	courseRepo := courseRepoPkg.NewMongoCourseRepo(client, dbName)
	reviewRepo := reviewRepoPkg.NewMongoReviewRepo(client, dbName)
	userRepo := userRepoPkg.NewMongoUserRepo(client, dbName)

	// Background email delivery.
	taskClient := asynq.NewClient(tasks.RedisOpt())
	defer taskClient.Close()
	worker := tasks.StartWorker(userRepo)
	defer worker.Shutdown()

	// services.
	usersSvc := &userService.DefaultUserService{
		Repo:  userRepo,
		Tasks: taskClient,
	}
	bootcampsSvc := &bootcampService.DefaultBootcampService{
		Repo:     bootcampRepo,
		Courses:  courseRepo,
		Reviews:  reviewRepo,
		Geocoder: geocode.NewMapQuestGeocoder(utils.GetCacheClient()),
		Storage:  storageService,
	}
	coursesSvc := &courseService.DefaultCourseService{
		Repo:      courseRepo,
		Bootcamps: bootcampRepo,
	}
	reviewsSvc := &reviewService.DefaultReviewService{
		Repo:      reviewRepo,
		Bootcamps: bootcampRepo,
	}

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		UserRepo:  userRepo,
		Auth:      &handlers.AuthHandler{Users: usersSvc},
		Bootcamps: &handlers.BootcampHandler{Bootcamps: bootcampsSvc},
		Courses:   &handlers.CourseHandler{Courses: coursesSvc},
		Reviews:   &handlers.ReviewHandler{Reviews: reviewsSvc},
		Users:     &handlers.UserHandler{Users: usersSvc},
	}

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

	logger.Sugar().Info("main: server stopped gracefully")
}
