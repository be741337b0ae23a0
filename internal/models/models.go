// ./wisdomcell-backend/internal/models/models.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Lesson is a user-authored entry. likesCount mirrors len(likes) and
// favoritesCount mirrors the live favorite records for this lesson; both are
// maintained by the services package, never recomputed in the background.
type Lesson struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Title             string             `bson:"title" json:"title"`
	Description       string             `bson:"description" json:"description"`
	Image             string             `bson:"image,omitempty" json:"image,omitempty"`
	Category          string             `bson:"category" json:"category"`
	EmotionalTone     string             `bson:"emotionalTone" json:"emotionalTone"`
	Privacy           string             `bson:"privacy" json:"privacy"` // "public" or "private"
	AccessLevel       string             `bson:"accessLevel" json:"accessLevel"`
	AuthorEmail       string             `bson:"authorEmail" json:"authorEmail"`
	AuthorName        string             `bson:"authorName,omitempty" json:"authorName,omitempty"`
	AuthorPhoto       string             `bson:"authorPhoto,omitempty" json:"authorPhoto,omitempty"`
	AuthorLessonCount int                `bson:"authorLessonCount" json:"authorLessonCount"` // snapshot at creation, not kept in sync
	Likes             []string           `bson:"likes" json:"likes"`
	LikesCount        int                `bson:"likesCount" json:"likesCount"`
	FavoritesCount    int                `bson:"favoritesCount" json:"favoritesCount"`
	IsFeatured        bool               `bson:"isFeatured" json:"isFeatured"`
	IsReviewed        bool               `bson:"isReviewed" json:"isReviewed"`
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt"`
	LastUpdateAt      *time.Time         `bson:"last_update_at,omitempty" json:"last_update_at,omitempty"`
}

// User is keyed by the email the identity provider vouches for. Name/DisplayName
// and Image/PhotoURL are alternate field pairs coming from different clients;
// readers must tolerate either.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Email        string             `bson:"email" json:"email"`
	Name         string             `bson:"name,omitempty" json:"name,omitempty"`
	DisplayName  string             `bson:"displayName,omitempty" json:"displayName,omitempty"`
	Image        string             `bson:"image,omitempty" json:"image,omitempty"`
	PhotoURL     string             `bson:"photoURL,omitempty" json:"photoURL,omitempty"`
	Role         string             `bson:"role" json:"role"` // "user" or "admin"
	IsPremium    bool               `bson:"isPremium" json:"isPremium"`
	LessonCount  int                `bson:"lessonCount" json:"lessonCount"`
	CreatedAt    string             `bson:"created_at,omitempty" json:"created_at,omitempty"`
	LastLoggedIn string             `bson:"last_loggedIn,omitempty" json:"last_loggedIn,omitempty"`
	PremiumSince *time.Time         `bson:"premiumSince,omitempty" json:"premiumSince,omitempty"`
}

// Favorite references a lesson; the lesson fields are a snapshot captured at
// save time and are not updated when the lesson is edited later.
type Favorite struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	LessonID      string             `bson:"lessonId" json:"lessonId"`
	UserEmail     string             `bson:"userEmail" json:"userEmail"`
	Title         string             `bson:"title" json:"title"`
	AccessLevel   string             `bson:"accessLevel" json:"accessLevel"`
	Category      string             `bson:"category" json:"category"`
	EmotionalTone string             `bson:"emotionalTone" json:"emotionalTone"`
	SavedAt       time.Time          `bson:"saved_at" json:"saved_at"`
}

type Comment struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	LessonID  string             `bson:"lessonId" json:"lessonId"`
	Comment   string             `bson:"comment" json:"comment"`
	UserEmail string             `bson:"userEmail" json:"userEmail"`
	UserName  string             `bson:"userName,omitempty" json:"userName,omitempty"`
	UserPhoto string             `bson:"userPhoto,omitempty" json:"userPhoto,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// ReportEntry is one complaint against a lesson.
type ReportEntry struct {
	ReporterEmail string    `bson:"reporterEmail" json:"reporterEmail"`
	ReporterName  string    `bson:"reporterName" json:"reporterName"`
	Reason        string    `bson:"reason" json:"reason"`
	ReportedAt    time.Time `bson:"reportedAt" json:"reportedAt"`
}

// Report aggregates all complaints for one lesson. TotalReports always equals
// len(ReportReasons); lessonId and lessonTitle are fixed when the first report
// arrives.
type Report struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	LessonID      string             `bson:"lessonId" json:"lessonId"`
	LessonTitle   string             `bson:"lessonTitle" json:"lessonTitle"`
	TotalReports  int                `bson:"totalReports" json:"totalReports"`
	ReportReasons []ReportEntry      `bson:"reportReasons" json:"reportReasons"`
}

// Payment records one completed checkout. TransactionID is the payment
// provider's payment-intent id and acts as the idempotency key.
type Payment struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	TransactionID string             `bson:"transactionId" json:"transactionId"`
	UserEmail     string             `bson:"userEmail" json:"userEmail"`
	UserName      string             `bson:"userName" json:"userName"`
	Amount        float64            `bson:"amount" json:"amount"`
	Currency      string             `bson:"currency" json:"currency"`
	PaidAt        time.Time          `bson:"paidAt" json:"paidAt"`
}
