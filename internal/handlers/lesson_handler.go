// ./wisdomcell-backend/internal/handlers/lesson_handler.go
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
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateLessonPayload defines the expected JSON for publishing a lesson.
type CreateLessonPayload struct {
	Title         string `json:"title" binding:"required"`
	Description   string `json:"description" binding:"required"`
	Image         string `json:"image"`
	Category      string `json:"category" binding:"required"`
	EmotionalTone string `json:"emotionalTone" binding:"required"`
	Privacy       string `json:"privacy" binding:"required"`
	AccessLevel   string `json:"accessLevel"`
	AuthorEmail   string `json:"authorEmail" binding:"required,email"`
	AuthorName    string `json:"authorName"`
	AuthorPhoto   string `json:"authorPhoto"`
}

// CreateLesson publishes a lesson; the author's lessonCount snapshot and
// increment happen inside the service.
func CreateLesson(svc *services.Lessons) gin.HandlerFunc {
	return func(c *gin.Context) {
		var payload CreateLessonPayload
		if err := c.ShouldBindJSON(&payload); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload: " + err.Error()})
			return
		}

		lesson := models.Lesson{
			Title:         payload.Title,
			Description:   payload.Description,
			Image:         payload.Image,
			Category:      payload.Category,
			EmotionalTone: payload.EmotionalTone,
			Privacy:       payload.Privacy,
			AccessLevel:   payload.AccessLevel,
			AuthorEmail:   payload.AuthorEmail,
			AuthorName:    payload.AuthorName,
			AuthorPhoto:   payload.AuthorPhoto,
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := svc.Create(ctx, &lesson); err != nil {
			if errors.Is(err, services.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Author not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create lesson"})
			return
		}
		c.JSON(http.StatusCreated, lesson)
	}
}

// ListLessons serves the lesson catalog with filtering, search, sorting and
// pagination. reportedOnly narrows to lessons that currently hold a report
// record.
func ListLessons(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := parseListLessonsQuery(c)

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		var reportedIDs []primitive.ObjectID
		if q.ReportedOnly {
			rawIDs, err := db.Collection("reports").Distinct(ctx, "lessonId", bson.M{})
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reports"})
				return
			}
			for _, raw := range rawIDs {
				hex, ok := raw.(string)
				if !ok {
					continue
				}
				if oid, err := primitive.ObjectIDFromHex(hex); err == nil {
					reportedIDs = append(reportedIDs, oid)
				}
			}
		}

		opts := options.Find().SetSort(lessonsSort(q.SortBy))
		if q.Limit > 0 {
			opts.SetLimit(q.Limit)
		}
		if q.Skip > 0 {
			opts.SetSkip(q.Skip)
		}

		cursor, err := db.Collection("lessons").Find(ctx, lessonsFilter(q, reportedIDs), opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch lessons"})
			return
		}
		defer cursor.Close(ctx)

		var lessons []models.Lesson
		if err = cursor.All(ctx, &lessons); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode lessons"})
			return
		}
		if lessons == nil {
			lessons = make([]models.Lesson, 0)
		}
		c.JSON(http.StatusOK, lessons)
	}
}

// LessonDetails returns a single lesson by id.
func LessonDetails(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		lessonID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid lesson ID"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var lesson models.Lesson
		if err := db.Collection("lessons").FindOne(ctx, bson.M{"_id": lessonID}).Decode(&lesson); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Lesson not found"})
			return
		}
		c.JSON(http.StatusOK, lesson)
	}
}

// SimilarLessons returns up to 6 public lessons sharing a category or
// emotional tone with the given lesson, excluding the lesson itself.
func SimilarLessons(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		category := c.Query("category")
		emotionalTone := c.Query("emotionalTone")

		if category == "" && emotionalTone == "" {
			c.JSON(http.StatusOK, []models.Lesson{})
			return
		}

		filter := bson.M{
			"privacy": "public",
			"$or": []bson.M{
				{"category": category},
				{"emotionalTone": emotionalTone},
			},
		}
		if selfID, err := primitive.ObjectIDFromHex(c.Query("lessonId")); err == nil {
			filter["_id"] = bson.M{"$ne": selfID}
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		cursor, err := db.Collection("lessons").Find(ctx, filter, options.Find().SetLimit(6))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch similar lessons"})
			return
		}
		defer cursor.Close(ctx)

		var lessons []models.Lesson
		if err = cursor.All(ctx, &lessons); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode lessons"})
			return
		}
		if lessons == nil {
			lessons = make([]models.Lesson, 0)
		}
		c.JSON(http.StatusOK, lessons)
	}
}

// FeaturedLessons returns the public lessons a moderator has featured.
func FeaturedLessons(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		filter := bson.M{"privacy": "public", "isFeatured": true}
		cursor, err := db.Collection("lessons").Find(ctx, filter)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch featured lessons"})
			return
		}
		defer cursor.Close(ctx)

		var lessons []models.Lesson
		if err = cursor.All(ctx, &lessons); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode lessons"})
			return
		}
		if lessons == nil {
			lessons = make([]models.Lesson, 0)
		}
		c.JSON(http.StatusOK, lessons)
	}
}

// MyLessons returns every lesson by the given author, private ones included.
func MyLessons(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.Param("email")

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		cursor, err := db.Collection("lessons").Find(ctx, bson.M{"authorEmail": email})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch lessons"})
			return
		}
		defer cursor.Close(ctx)

		var lessons []models.Lesson
		if err = cursor.All(ctx, &lessons); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode lessons"})
			return
		}
		if lessons == nil {
			lessons = make([]models.Lesson, 0)
		}
		c.JSON(http.StatusOK, lessons)
	}
}

// AuthorLessons returns an author's public lessons.
func AuthorLessons(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.Param("email")

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		filter := bson.M{"authorEmail": email, "privacy": "public"}
		cursor, err := db.Collection("lessons").Find(ctx, filter)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch lessons"})
			return
		}
		defer cursor.Close(ctx)

		var lessons []models.Lesson
		if err = cursor.All(ctx, &lessons); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode lessons"})
			return
		}
		if lessons == nil {
			lessons = make([]models.Lesson, 0)
		}
		c.JSON(http.StatusOK, lessons)
	}
}

// UpdateLessonPayload defines the editable lesson fields.
type UpdateLessonPayload struct {
	Title         string `json:"title" binding:"required"`
	Description   string `json:"description" binding:"required"`
	Category      string `json:"category" binding:"required"`
	EmotionalTone string `json:"emotionalTone" binding:"required"`
	Privacy       string `json:"privacy" binding:"required"`
	AccessLevel   string `json:"accessLevel"`
	Image         string `json:"image"`
}

// UpdateLesson edits a lesson's content fields and stamps last_update_at.
func UpdateLesson(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		lessonID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid lesson ID"})
			return
		}
		var payload UpdateLessonPayload
		if err := c.ShouldBindJSON(&payload); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload"})
			return
		}

		set := bson.M{
			"title":          payload.Title,
			"description":    payload.Description,
			"category":       payload.Category,
			"emotionalTone":  payload.EmotionalTone,
			"privacy":        payload.Privacy,
			"accessLevel":    payload.AccessLevel,
			"last_update_at": time.Now().UTC(),
		}
		if payload.Image != "" {
			set["image"] = payload.Image
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		result, err := db.Collection("lessons").UpdateOne(ctx, bson.M{"_id": lessonID}, bson.M{"$set": set})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update lesson"})
			return
		}
		if result.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Lesson not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Lesson updated successfully"})
	}
}

// DeleteLesson removes a lesson; the author's lessonCount decrement happens
// inside the service.
func DeleteLesson(svc *services.Lessons) gin.HandlerFunc {
	return func(c *gin.Context) {
		lessonID := c.Param("id")
		if _, err := primitive.ObjectIDFromHex(lessonID); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid lesson ID"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := svc.Delete(ctx, lessonID); err != nil {
			if errors.Is(err, services.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Lesson not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete lesson"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Lesson deleted successfully"})
	}
}

// LikePayload identifies the actor of a like toggle.
type LikePayload struct {
	UserEmail string `json:"userEmail" binding:"required,email"`
}

// ToggleLike flips the caller's like on a lesson and returns the new count
// and engagement state.
func ToggleLike(svc *services.Engagement) gin.HandlerFunc {
	return func(c *gin.Context) {
		lessonID := c.Param("id")
		if _, err := primitive.ObjectIDFromHex(lessonID); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid lesson ID"})
			return
		}
		var payload LikePayload
		if err := c.ShouldBindJSON(&payload); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		result, err := svc.ToggleLike(ctx, lessonID, payload.UserEmail)
		if err != nil {
			if errors.Is(err, services.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Lesson not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to toggle like"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":    true,
			"likesCount": result.Count,
			"userLiked":  result.Engaged,
		})
	}
}

// FlagPayload is a single admin-set boolean flag.
type FlagPayload struct {
	Value *bool `json:"value" binding:"required"`
}

// FeatureLesson sets a lesson's isFeatured flag. Admin-only.
func FeatureLesson(db *mongo.Database) gin.HandlerFunc {
	return setLessonFlag(db, "isFeatured")
}

// ReviewLesson sets a lesson's isReviewed flag. Admin-only.
func ReviewLesson(db *mongo.Database) gin.HandlerFunc {
	return setLessonFlag(db, "isReviewed")
}

func setLessonFlag(db *mongo.Database, field string) gin.HandlerFunc {
	return func(c *gin.Context) {
		lessonID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid lesson ID"})
			return
		}
		var payload FlagPayload
		if err := c.ShouldBindJSON(&payload); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		update := bson.M{"$set": bson.M{field: *payload.Value}}
		result, err := db.Collection("lessons").UpdateOne(ctx, bson.M{"_id": lessonID}, update)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update lesson"})
			return
		}
		if result.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Lesson not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}
