// ./wisdomcell-backend/internal/handlers/comment_handler.go
package handlers

import (
	"context"
	"net/http"
	"time"

	"wisdomcell/backend/internal/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// CreateCommentPayload defines the expected JSON for posting a comment.
type CreateCommentPayload struct {
	LessonID  string `json:"lessonId" binding:"required"`
	Comment   string `json:"comment" binding:"required"`
	UserEmail string `json:"userEmail" binding:"required,email"`
	UserName  string `json:"userName"`
	UserPhoto string `json:"userPhoto"`
}

// CreateComment stores a comment on a lesson.
func CreateComment(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		var payload CreateCommentPayload
		if err := c.ShouldBindJSON(&payload); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload: " + err.Error()})
			return
		}

		comment := models.Comment{
			ID:        primitive.NewObjectID(),
			LessonID:  payload.LessonID,
			Comment:   payload.Comment,
			UserEmail: payload.UserEmail,
			UserName:  payload.UserName,
			UserPhoto: payload.UserPhoto,
			CreatedAt: time.Now().UTC(),
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if _, err := db.Collection("comments").InsertOne(ctx, comment); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save comment"})
			return
		}
		c.JSON(http.StatusCreated, comment)
	}
}

// GetComments returns the comments for a lesson.
func GetComments(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		lessonID := c.Param("id")

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		cursor, err := db.Collection("comments").Find(ctx, bson.M{"lessonId": lessonID})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch comments"})
			return
		}
		defer cursor.Close(ctx)

		var comments []models.Comment
		if err = cursor.All(ctx, &comments); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode comments"})
			return
		}
		if comments == nil {
			comments = make([]models.Comment, 0)
		}
		c.JSON(http.StatusOK, comments)
	}
}
