// ./wisdomcell-backend/internal/handlers/user_handler.go
package handlers

import (
	"context"
	"net/http"
	"time"

	"wisdomcell/backend/internal/middleware"
	"wisdomcell/backend/internal/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UpsertUserPayload is the login-time profile snapshot from the client.
type UpsertUserPayload struct {
	Email       string `json:"email" binding:"required,email"`
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	Image       string `json:"image"`
	PhotoURL    string `json:"photoURL"`
}

// UpsertUser saves a user on first sight and refreshes last_loggedIn on every
// later call. Email is the natural key; the unique index makes concurrent
// first logins collapse to one record.
func UpsertUser(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		var payload UpsertUserPayload
		if err := c.ShouldBindJSON(&payload); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload: " + err.Error()})
			return
		}

		now := time.Now().UTC().Format(time.RFC3339)
		filter := bson.M{"email": payload.Email}
		update := bson.M{
			"$set": bson.M{
				"last_loggedIn": now,
			},
			"$setOnInsert": bson.M{
				"email":       payload.Email,
				"name":        payload.Name,
				"displayName": payload.DisplayName,
				"image":       payload.Image,
				"photoURL":    payload.PhotoURL,
				"role":        "user",
				"isPremium":   false,
				"lessonCount": 0,
				"created_at":  now,
			},
		}
		opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var user models.User
		if err := db.Collection("users").FindOneAndUpdate(ctx, filter, update, opts).Decode(&user); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save user"})
			return
		}
		c.JSON(http.StatusOK, user)
	}
}

// ListUsers returns every user except the caller. Admin-only.
func ListUsers(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		adminEmail := middleware.EmailFromContext(c.Request.Context())

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		cursor, err := db.Collection("users").Find(ctx, bson.M{"email": bson.M{"$ne": adminEmail}})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
			return
		}
		defer cursor.Close(ctx)

		var users []models.User
		if err = cursor.All(ctx, &users); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode users"})
			return
		}
		if users == nil {
			users = make([]models.User, 0)
		}
		c.JSON(http.StatusOK, users)
	}
}

// DeleteUser removes a user by email. Admin-only.
func DeleteUser(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.Param("email")

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		result, err := db.Collection("users").DeleteOne(ctx, bson.M{"email": email})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
			return
		}
		if result.DeletedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
	}
}

// UpdateRolePayload names the user and the role to assign.
type UpdateRolePayload struct {
	Email string `json:"email" binding:"required,email"`
	Role  string `json:"role" binding:"required,oneof=user admin"`
}

// UpdateRole changes a user's role. Admin-only.
func UpdateRole(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		var payload UpdateRolePayload
		if err := c.ShouldBindJSON(&payload); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload: " + err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		filter := bson.M{"email": payload.Email}
		update := bson.M{"$set": bson.M{"role": payload.Role}}
		result, err := db.Collection("users").UpdateOne(ctx, filter, update)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update role"})
			return
		}
		if result.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

// GetUserRole returns the caller's role and premium state.
func GetUserRole(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := middleware.EmailFromContext(c.Request.Context())

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var user models.User
		if err := db.Collection("users").FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"role":      user.Role,
			"isPremium": user.IsPremium,
		})
	}
}

// GetAuthor returns an author's public card, tolerating both name/displayName
// and image/photoURL field pairs.
func GetAuthor(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.Param("email")

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var author models.User
		if err := db.Collection("users").FindOne(ctx, bson.M{"email": email}).Decode(&author); err != nil {
			c.JSON(http.StatusNotFound, gin.H{})
			return
		}

		name := author.Name
		if name == "" {
			name = author.DisplayName
		}
		photoURL := author.Image
		if photoURL == "" {
			photoURL = author.PhotoURL
		}
		c.JSON(http.StatusOK, gin.H{
			"name":      name,
			"email":     author.Email,
			"photoURL":  photoURL,
			"isPremium": author.IsPremium,
		})
	}
}
