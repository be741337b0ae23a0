// ./wisdomcell-backend/internal/handlers/lesson_query.go
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ListLessonsQuery carries the parsed query params of GET /lessons.
type ListLessonsQuery struct {
	Limit         int64
	Skip          int64
	Category      string
	EmotionalTone string
	SortBy        string // newest | mostSaved | title
	Search        string
	Admin         bool
	ReportedOnly  bool
}

func parseListLessonsQuery(c *gin.Context) ListLessonsQuery {
	q := ListLessonsQuery{
		Category:      c.Query("category"),
		EmotionalTone: c.Query("emotionalTone"),
		SortBy:        c.Query("sortBy"),
		Search:        c.Query("search"),
		Admin:         c.Query("admin") == "true",
		ReportedOnly:  c.Query("reportedOnly") == "true",
	}
	if limit, err := strconv.ParseInt(c.Query("limit"), 10, 64); err == nil && limit > 0 {
		q.Limit = limit
	}
	if skip, err := strconv.ParseInt(c.Query("skip"), 10, 64); err == nil && skip > 0 {
		q.Skip = skip
	}
	return q
}

// lessonsFilter builds the Mongo filter for a lesson listing. Non-admin
// callers only ever see public lessons. reportedIDs is the id set of lessons
// with a live report record; it is only consulted when ReportedOnly is set.
func lessonsFilter(q ListLessonsQuery, reportedIDs []primitive.ObjectID) bson.M {
	filter := bson.M{}
	if !q.Admin {
		filter["privacy"] = "public"
	}
	if q.Category != "" {
		filter["category"] = q.Category
	}
	if q.EmotionalTone != "" {
		filter["emotionalTone"] = q.EmotionalTone
	}
	if q.Search != "" {
		filter["title"] = bson.M{"$regex": q.Search, "$options": "i"}
	}
	if q.ReportedOnly {
		if reportedIDs == nil {
			reportedIDs = []primitive.ObjectID{}
		}
		filter["_id"] = bson.M{"$in": reportedIDs}
	}
	return filter
}

func lessonsSort(sortBy string) bson.D {
	switch sortBy {
	case "mostSaved":
		return bson.D{{Key: "favoritesCount", Value: -1}}
	case "title":
		return bson.D{{Key: "title", Value: 1}}
	default: // newest
		return bson.D{{Key: "createdAt", Value: -1}}
	}
}
