// ./wisdomcell-backend/internal/handlers/favorite_handler.go
package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"wisdomcell/backend/internal/models"
	"wisdomcell/backend/internal/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// FavoritePayload carries the actor plus the lesson snapshot stored on the
// favorite when the toggle lands on "saved".
type FavoritePayload struct {
	UserEmail     string `json:"userEmail" binding:"required,email"`
	Title         string `json:"title"`
	AccessLevel   string `json:"accessLevel"`
	Category      string `json:"category"`
	EmotionalTone string `json:"emotionalTone"`
}

// ToggleFavorite flips the caller's favorite on a lesson and returns the new
// count and engagement state.
func ToggleFavorite(svc *services.Engagement) gin.HandlerFunc {
	return func(c *gin.Context) {
		lessonID := c.Param("id")
		if _, err := primitive.ObjectIDFromHex(lessonID); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid lesson ID"})
			return
		}
		var payload FavoritePayload
		if err := c.ShouldBindJSON(&payload); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		result, err := svc.ToggleFavorite(ctx, models.Favorite{
			LessonID:      lessonID,
			UserEmail:     payload.UserEmail,
			Title:         payload.Title,
			AccessLevel:   payload.AccessLevel,
			Category:      payload.Category,
			EmotionalTone: payload.EmotionalTone,
		})
		if err != nil {
			if errors.Is(err, services.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Lesson not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to toggle favorite"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":        true,
			"favoritesCount": result.Count,
			"userFavorited":  result.Engaged,
		})
	}
}

// ListFavorites returns a user's saved lessons.
func ListFavorites(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.Param("email")

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		cursor, err := db.Collection("favorites").Find(ctx, bson.M{"userEmail": email})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch favorites"})
			return
		}
		defer cursor.Close(ctx)

		var favorites []models.Favorite
		if err = cursor.All(ctx, &favorites); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode favorites"})
			return
		}
		if favorites == nil {
			favorites = make([]models.Favorite, 0)
		}
		c.JSON(http.StatusOK, favorites)
	}
}

// DeleteFavorite removes a favorite by its own id; the lesson's
// favoritesCount decrement happens inside the service.
func DeleteFavorite(svc *services.Engagement) gin.HandlerFunc {
	return func(c *gin.Context) {
		favoriteID := c.Param("id")
		if _, err := primitive.ObjectIDFromHex(favoriteID); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid favorite ID"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := svc.RemoveFavorite(ctx, favoriteID); err != nil {
			if errors.Is(err, services.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"message": "Favorite not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete favorite"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Favorite deleted successfully"})
	}
}
