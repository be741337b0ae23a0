// ./wisdomcell-backend/internal/handlers/report_handler.go
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
	"go.mongodb.org/mongo-driver/mongo"
)

// SubmitReportPayload is one complaint against a lesson.
type SubmitReportPayload struct {
	LessonID      string `json:"lessonId"`
	LessonTitle   string `json:"lessonTitle"`
	ReporterEmail string `json:"reporterEmail"`
	ReporterName  string `json:"reporterName"`
	Reason        string `json:"reason"`
}

// SubmitReport files a complaint; the service folds it into the lesson's
// aggregate report record. Field validation lives in the service so the 400
// covers JSON that parsed but came in incomplete.
func SubmitReport(svc *services.Reports) gin.HandlerFunc {
	return func(c *gin.Context) {
		var payload SubmitReportPayload
		if err := c.ShouldBindJSON(&payload); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Missing fields"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		created, err := svc.Submit(ctx, payload.LessonID, payload.LessonTitle,
			payload.ReporterEmail, payload.ReporterName, payload.Reason)
		if err != nil {
			if errors.Is(err, services.ErrMissingFields) {
				c.JSON(http.StatusBadRequest, gin.H{"message": "Missing fields"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save report"})
			return
		}

		if created {
			c.JSON(http.StatusCreated, gin.H{"message": "Lesson reported"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Report added to existing lesson"})
	}
}

// ListReports returns every open report record.
func ListReports(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		cursor, err := db.Collection("reports").Find(ctx, bson.M{})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reports"})
			return
		}
		defer cursor.Close(ctx)

		var reports []models.Report
		if err = cursor.All(ctx, &reports); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode reports"})
			return
		}
		if reports == nil {
			reports = make([]models.Report, 0)
		}
		c.JSON(http.StatusOK, reports)
	}
}

// GetReport returns the report record for one lesson, or an empty object when
// the lesson has no open report.
func GetReport(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		lessonID := c.Param("lessonId")

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var report models.Report
		err := db.Collection("reports").FindOne(ctx, bson.M{"lessonId": lessonID}).Decode(&report)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusOK, gin.H{})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch report"})
			return
		}
		c.JSON(http.StatusOK, report)
	}
}

// DeleteReported is the moderator's "remove" verdict: the lesson and its
// report record both go away. Admin-only.
func DeleteReported(svc *services.Reports) gin.HandlerFunc {
	return func(c *gin.Context) {
		lessonID := c.Param("lessonId")

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := svc.ResolveRemove(ctx, lessonID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete reported lesson"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

// IgnoreReport is the moderator's "ignore" verdict: the report record goes
// away, the lesson stays. Admin-only.
func IgnoreReport(svc *services.Reports) gin.HandlerFunc {
	return func(c *gin.Context) {
		lessonID := c.Param("lessonId")

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := svc.ResolveIgnore(ctx, lessonID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to ignore report"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Report ignored & removed"})
	}
}
