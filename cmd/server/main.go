package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/dkenzhe/netbuddy/internal/config"
	"github.com/dkenzhe/netbuddy/internal/database"
	"github.com/dkenzhe/netbuddy/internal/handlers"
	"github.com/dkenzhe/netbuddy/internal/repository"
	"github.com/dkenzhe/netbuddy/internal/services"
	"github.com/dkenzhe/netbuddy/pkg/logger"
	"github.com/dkenzhe/netbuddy/pkg/middleware"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

func main() {
	// Load configuration from .env file
	cfg := config.LoadConfig()

	logger.InitLogger()
	logger.Log.Info("Logger initialized")

	// Connect to MongoDB
	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("Database connection error: %v", err)
	}
	defer database.Disconnect(db)

	// --- Repositories ---
	userRepo := repository.NewUserRepository(db)
	requestRepo := repository.NewRequestRepository(db)
	groupRepo := repository.NewGroupRepository(db)
	txRunner := database.NewTxRunner(db)

	// --- Services ---
	userService := services.NewUserService(userRepo)
	buddyService := services.NewBuddyService(userRepo, requestRepo, txRunner)
	blockService := services.NewBlockService(userRepo)
	groupService := services.NewGroupService(groupRepo)
	pingService := services.NewPingService(userRepo, groupRepo)

	// --- Handlers ---
	userHandler := handlers.NewUserHandler(userService, cfg)
	buddyHandler := handlers.NewBuddyHandler(buddyService)
	blockHandler := handlers.NewBlockHandler(blockService)
	groupHandler := handlers.NewGroupHandler(groupService)
	presenceHandler := handlers.NewPresenceHandler(pingService)

	// Initialize Gorilla Mux router
	router := mux.NewRouter()

	router.HandleFunc("/health", handlers.HealthHandler).Methods("GET")

	// Public account routes
	router.HandleFunc("/users/register", userHandler.RegisterHandler).Methods("POST")
	router.HandleFunc("/users/login", userHandler.LoginHandler).Methods("POST")

	// Protected account routes
	protectedUserRoutes := router.PathPrefix("/users").Subrouter()
	protectedUserRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	protectedUserRoutes.HandleFunc("/logout", userHandler.LogoutHandler).Methods("POST")
	protectedUserRoutes.HandleFunc("/me", userHandler.MeHandler).Methods("GET")
	protectedUserRoutes.HandleFunc("/me", userHandler.UpdateProfileHandler).Methods("PATCH")

	// Presence polling
	presenceRoutes := router.PathPrefix("/presence").Subrouter()
	presenceRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	presenceRoutes.HandleFunc("/ping", presenceHandler.PingHandler).Methods("POST")

	// Buddy routes
	buddyRoutes := router.PathPrefix("/buddies").Subrouter()
	buddyRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	buddyRoutes.HandleFunc("", buddyHandler.ListBuddiesHandler).Methods("GET")
	buddyRoutes.HandleFunc("/request", buddyHandler.SendRequestHandler).Methods("POST")
	buddyRoutes.HandleFunc("/requests", buddyHandler.PendingRequestsHandler).Methods("GET")
	buddyRoutes.HandleFunc("/requests/{id}/respond", buddyHandler.RespondToRequestHandler).Methods("POST")
	buddyRoutes.HandleFunc("/{username}", buddyHandler.RemoveBuddyHandler).Methods("DELETE")

	// Block list routes
	blockRoutes := router.PathPrefix("/blocked").Subrouter()
	blockRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	blockRoutes.HandleFunc("", blockHandler.ListBlockedHandler).Methods("GET")
	blockRoutes.HandleFunc("", blockHandler.BlockHandler).Methods("POST")
	blockRoutes.HandleFunc("/{username}", blockHandler.UnblockHandler).Methods("DELETE")

	// Buddy group routes
	groupRoutes := router.PathPrefix("/groups").Subrouter()
	groupRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	groupRoutes.HandleFunc("", groupHandler.CreateGroupHandler).Methods("POST")
	groupRoutes.HandleFunc("", groupHandler.ListGroupsHandler).Methods("GET")
	groupRoutes.HandleFunc("/{id}", groupHandler.UpdateGroupHandler).Methods("PUT")
	groupRoutes.HandleFunc("/{id}", groupHandler.DeleteGroupHandler).Methods("DELETE")

	// Apply middleware for logging
	router.Use(middleware.LoggingMiddleware)

	// Start the HTTP server
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.CORSOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	handler := c.Handler(router)

	fmt.Printf("Server running on port %s\n", cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, handler))
}
