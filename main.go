package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"

	"campuslink_server/routes"
	"campuslink_server/services"
	"campuslink_server/socket"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load environment variables from .env if present
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment")
	}

	// Initialize DynamoDB client and service
	log.Println("Initializing DynamoDB client...")
	dynamoClient := services.InitializeDynamoDBClient()
	dynamoService := &services.DynamoService{Client: dynamoClient}
	log.Println("DynamoDB client initialized.")

	// Connection registry and socket server (presence + broadcast)
	registry := socket.NewRegistry()
	socketServer := socket.NewSocketServer(registry)
	go func() {
		if err := socketServer.Serve(); err != nil {
			log.Fatalf("Socket server error: %v", err)
		}
	}()
	defer socketServer.Close()

	// Initialize Services
	userProfileService := &services.UserProfileService{Dynamo: dynamoService}
	postService := &services.PostService{Dynamo: dynamoService}
	feedService := &services.FeedService{Posts: postService, Profiles: userProfileService}
	notificationService := &services.NotificationService{Dynamo: dynamoService, Registry: registry}
	matchRankService := &services.MatchRankService{
		Dynamo:   dynamoService,
		Profiles: userProfileService,
		Presence: registry,
	}
	swipeService := &services.SwipeService{
		Store:    &services.DynamoSwipeStore{Dynamo: dynamoService},
		Notifier: notificationService,
	}

	// Set up the server port
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Using server port: %s\n", port)

	// Initialize the router
	r := mux.NewRouter()

	// Register a welcome route
	r.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "Welcome to CampusLink")
	}).Methods("GET")

	// Register a health check endpoint
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		response := map[string]string{"status": "healthy"}
		json.NewEncoder(w).Encode(response)
	}).Methods("GET")

	// Register routes
	routes.RegisterUserProfileRoutes(r, userProfileService)
	routes.RegisterPostRoutes(r, postService)
	routes.RegisterFeedRoutes(r, feedService)
	routes.RegisterMatchRoutes(r, matchRankService)
	routes.RegisterSwipeRoutes(r, swipeService)
	routes.RegisterNotificationRoutes(r, notificationService)
	routes.RegisterS3Routes(r)

	// Mount the socket.io endpoint
	r.PathPrefix("/socket.io/").Handler(socketServer)

	// Add CORS middleware
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"}, // Adjust for specific domains if needed
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(r)

	// Start the HTTP server
	log.Printf("Starting server on port %s...\n", port)
	log.Fatal(http.ListenAndServe(":"+port, corsHandler))
}
