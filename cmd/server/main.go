// ./wisdomcell-backend/cmd/server/main.go
package main

import (
	"context"
	"encoding/base64"
	"log"
	"net/http"
	"os"

	"wisdomcell/backend/internal/database"
	"wisdomcell/backend/internal/handlers"
	"wisdomcell/backend/internal/middleware"
	"wisdomcell/backend/internal/services"

	firebase "firebase.google.com/go/v4"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"google.golang.org/api/option"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	// Initialize Database
	database.ConnectDB()
	db := database.DB()

	ctx := context.Background()
	if err := database.EnsureIndexes(ctx, db); err != nil {
		log.Fatalf("Failed to ensure indexes: %v", err)
	}

	// Initialize Firebase Admin SDK from Environment Variable
	keyData := os.Getenv("FB_SERVICE_KEY")
	if keyData == "" {
		log.Fatal("FB_SERVICE_KEY environment variable not set")
	}
	serviceAccount, err := base64.StdEncoding.DecodeString(keyData)
	if err != nil {
		log.Fatalf("error decoding service key: %v\n", err)
	}
	opt := option.WithCredentialsJSON(serviceAccount)
	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		log.Fatalf("error initializing app: %v\n", err)
	}
	authClient, err := app.Auth(ctx)
	if err != nil {
		log.Fatalf("error getting Auth client: %v\n", err)
	}

	// Stores and core services
	lessonStore := services.NewLessonStore(db)
	userStore := services.NewUserStore(db)
	favoriteStore := services.NewFavoriteStore(db)
	reportStore := services.NewReportStore(db)
	paymentStore := services.NewPaymentStore(db)

	lessonSvc := &services.Lessons{Lessons: lessonStore, Users: userStore}
	engagementSvc := &services.Engagement{Lessons: lessonStore, Favorites: favoriteStore}
	reportSvc := &services.Reports{Reports: reportStore, Lessons: lessonStore, Users: userStore}
	paymentSvc := &services.Payments{
		Payments: paymentStore,
		Users:    userStore,
		Provider: services.NewStripeProvider(os.Getenv("STRIPE_SECRET_KEY"), os.Getenv("CLIENT_DOMAIN")),
	}

	// Initialize Gin Router
	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{os.Getenv("CLIENT_DOMAIN")},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "WisdomCell Server is Run")
	})

	// LESSON ROUTES
	router.POST("/lessons", handlers.CreateLesson(lessonSvc))
	router.GET("/lessons", handlers.ListLessons(db))
	router.GET("/lesson-details/:id", handlers.LessonDetails(db))
	router.GET("/lessons/similar", handlers.SimilarLessons(db))
	router.GET("/lessons/featured", handlers.FeaturedLessons(db))
	router.GET("/my-lessons/:email", handlers.MyLessons(db))
	router.PATCH("/my-lesson/:id", handlers.UpdateLesson(db))
	router.DELETE("/my-lesson/:id", handlers.DeleteLesson(lessonSvc))

	// AUTHOR ROUTES
	router.GET("/author/:email", handlers.GetAuthor(db))
	router.GET("/lessons/author/:email", handlers.AuthorLessons(db))

	// COMMENT ROUTES
	router.POST("/comments", handlers.CreateComment(db))
	router.GET("/comments/:id", handlers.GetComments(db))

	// REPORT ROUTES
	router.POST("/reports", handlers.SubmitReport(reportSvc))
	router.GET("/reports", handlers.ListReports(db))
	router.GET("/reports/:lessonId", handlers.GetReport(db))

	// PAYMENT ROUTES
	router.POST("/create-checkout-session", handlers.CreateCheckoutSession(paymentSvc))
	router.POST("/payment-success", handlers.PaymentSuccess(paymentSvc))

	protected := router.Group("/").Use(middleware.AuthMiddleware(authClient))
	{
		protected.POST("/lesson/:id/like", handlers.ToggleLike(engagementSvc))
		protected.POST("/lesson/:id/favorite", handlers.ToggleFavorite(engagementSvc))
		protected.GET("/favorites/:email", handlers.ListFavorites(db))
		protected.DELETE("/my-favorites/:id", handlers.DeleteFavorite(engagementSvc))

		protected.POST("/user", handlers.UpsertUser(db))
		protected.GET("/user/role", handlers.GetUserRole(db))
	}

	admin := router.Group("/").Use(middleware.AuthMiddleware(authClient), middleware.RequireAdmin(userStore))
	{
		admin.GET("/users", handlers.ListUsers(db))
		admin.DELETE("/users/:email", handlers.DeleteUser(db))
		admin.PATCH("/update-role", handlers.UpdateRole(db))

		admin.PATCH("/lesson/:id/feature", handlers.FeatureLesson(db))
		admin.PATCH("/lesson/:id/reviewed", handlers.ReviewLesson(db))

		admin.DELETE("/reports/:lessonId", handlers.DeleteReported(reportSvc))
		admin.PATCH("/reports/ignore/:lessonId", handlers.IgnoreReport(reportSvc))
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}
	log.Printf("Server starting on port %s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
