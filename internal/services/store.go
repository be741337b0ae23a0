// ./wisdomcell-backend/internal/services/store.go
package services

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"wisdomcell/backend/internal/models"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrMissingFields     = errors.New("missing fields")
	ErrPaymentIncomplete = errors.New("payment not completed")
)

// LessonStore is the slice of the lessons collection the core services touch.
// SetLike pairs the set mutation with the counter $inc in one store call so the
// two can never move independently.
type LessonStore interface {
	FindByID(ctx context.Context, id string) (*models.Lesson, error)
	Insert(ctx context.Context, lesson *models.Lesson) (primitive.ObjectID, error)
	Delete(ctx context.Context, id string) error
	SetLike(ctx context.Context, id, email string, add bool) error
	LikesCount(ctx context.Context, id string) (int, error)
	IncFavoritesCount(ctx context.Context, id string, delta int) error
	FavoritesCount(ctx context.Context, id string) (int, error)
}

type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	IncLessonCount(ctx context.Context, email string, delta int) error
	SetPremium(ctx context.Context, email string, since time.Time) error
}

type FavoriteStore interface {
	FindByPair(ctx context.Context, lessonID, email string) (*models.Favorite, error)
	FindByID(ctx context.Context, id string) (*models.Favorite, error)
	Insert(ctx context.Context, fav *models.Favorite) error
	DeleteByPair(ctx context.Context, lessonID, email string) error
	DeleteByID(ctx context.Context, id string) error
}

// ReportStore: Append pairs the entry $push with the totalReports $inc in one
// update; totalReports is never written directly after the first insert.
type ReportStore interface {
	FindByLessonID(ctx context.Context, lessonID string) (*models.Report, error)
	Insert(ctx context.Context, report *models.Report) error
	Append(ctx context.Context, lessonID string, entry models.ReportEntry) error
	DeleteByLessonID(ctx context.Context, lessonID string) error
}

type PaymentStore interface {
	FindByTransactionID(ctx context.Context, transactionID string) (*models.Payment, error)
	Insert(ctx context.Context, payment *models.Payment) error
}

// --- Mongo implementations ---

type MongoLessonStore struct {
	col *mongo.Collection
}

func NewLessonStore(db *mongo.Database) *MongoLessonStore {
	return &MongoLessonStore{col: db.Collection("lessons")}
}

func (s *MongoLessonStore) FindByID(ctx context.Context, id string) (*models.Lesson, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	var lesson models.Lesson
	err = s.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&lesson)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &lesson, nil
}

func (s *MongoLessonStore) Insert(ctx context.Context, lesson *models.Lesson) (primitive.ObjectID, error) {
	result, err := s.col.InsertOne(ctx, lesson)
	if err != nil {
		return primitive.NilObjectID, err
	}
	oid, _ := result.InsertedID.(primitive.ObjectID)
	return oid, nil
}

func (s *MongoLessonStore) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	result, err := s.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoLessonStore) SetLike(ctx context.Context, id, email string, add bool) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	update := bson.M{
		"$pull": bson.M{"likes": email},
		"$inc":  bson.M{"likesCount": -1},
	}
	if add {
		update = bson.M{
			"$push": bson.M{"likes": email},
			"$inc":  bson.M{"likesCount": 1},
		}
	}
	result, err := s.col.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoLessonStore) LikesCount(ctx context.Context, id string) (int, error) {
	lesson, err := s.FindByID(ctx, id)
	if err != nil {
		return 0, err
	}
	return lesson.LikesCount, nil
}

func (s *MongoLessonStore) IncFavoritesCount(ctx context.Context, id string, delta int) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	result, err := s.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$inc": bson.M{"favoritesCount": delta}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoLessonStore) FavoritesCount(ctx context.Context, id string) (int, error) {
	lesson, err := s.FindByID(ctx, id)
	if err != nil {
		return 0, err
	}
	return lesson.FavoritesCount, nil
}

type MongoUserStore struct {
	col *mongo.Collection
}

func NewUserStore(db *mongo.Database) *MongoUserStore {
	return &MongoUserStore{col: db.Collection("users")}
}

func (s *MongoUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.col.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *MongoUserStore) IncLessonCount(ctx context.Context, email string, delta int) error {
	result, err := s.col.UpdateOne(ctx, bson.M{"email": email}, bson.M{"$inc": bson.M{"lessonCount": delta}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoUserStore) SetPremium(ctx context.Context, email string, since time.Time) error {
	update := bson.M{"$set": bson.M{
		"isPremium":    true,
		"premiumSince": since,
	}}
	_, err := s.col.UpdateOne(ctx, bson.M{"email": email}, update)
	return err
}

// RoleByEmail satisfies the middleware's role lookup.
func (s *MongoUserStore) RoleByEmail(ctx context.Context, email string) (string, error) {
	user, err := s.FindByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	return user.Role, nil
}

type MongoFavoriteStore struct {
	col *mongo.Collection
}

func NewFavoriteStore(db *mongo.Database) *MongoFavoriteStore {
	return &MongoFavoriteStore{col: db.Collection("favorites")}
}

func (s *MongoFavoriteStore) FindByPair(ctx context.Context, lessonID, email string) (*models.Favorite, error) {
	var fav models.Favorite
	err := s.col.FindOne(ctx, bson.M{"lessonId": lessonID, "userEmail": email}).Decode(&fav)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &fav, nil
}

func (s *MongoFavoriteStore) FindByID(ctx context.Context, id string) (*models.Favorite, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	var fav models.Favorite
	err = s.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&fav)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &fav, nil
}

func (s *MongoFavoriteStore) Insert(ctx context.Context, fav *models.Favorite) error {
	result, err := s.col.InsertOne(ctx, fav)
	if err != nil {
		return err
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		fav.ID = oid
	}
	return nil
}

func (s *MongoFavoriteStore) DeleteByPair(ctx context.Context, lessonID, email string) error {
	_, err := s.col.DeleteOne(ctx, bson.M{"lessonId": lessonID, "userEmail": email})
	return err
}

func (s *MongoFavoriteStore) DeleteByID(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	_, err = s.col.DeleteOne(ctx, bson.M{"_id": oid})
	return err
}

type MongoReportStore struct {
	col *mongo.Collection
}

func NewReportStore(db *mongo.Database) *MongoReportStore {
	return &MongoReportStore{col: db.Collection("reports")}
}

func (s *MongoReportStore) FindByLessonID(ctx context.Context, lessonID string) (*models.Report, error) {
	var report models.Report
	err := s.col.FindOne(ctx, bson.M{"lessonId": lessonID}).Decode(&report)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (s *MongoReportStore) Insert(ctx context.Context, report *models.Report) error {
	result, err := s.col.InsertOne(ctx, report)
	if err != nil {
		return err
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		report.ID = oid
	}
	return nil
}

func (s *MongoReportStore) Append(ctx context.Context, lessonID string, entry models.ReportEntry) error {
	update := bson.M{
		"$inc":  bson.M{"totalReports": 1},
		"$push": bson.M{"reportReasons": entry},
	}
	result, err := s.col.UpdateOne(ctx, bson.M{"lessonId": lessonID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoReportStore) DeleteByLessonID(ctx context.Context, lessonID string) error {
	_, err := s.col.DeleteOne(ctx, bson.M{"lessonId": lessonID})
	return err
}

type MongoPaymentStore struct {
	col *mongo.Collection
}

func NewPaymentStore(db *mongo.Database) *MongoPaymentStore {
	return &MongoPaymentStore{col: db.Collection("payments")}
}

func (s *MongoPaymentStore) FindByTransactionID(ctx context.Context, transactionID string) (*models.Payment, error) {
	var payment models.Payment
	err := s.col.FindOne(ctx, bson.M{"transactionId": transactionID}).Decode(&payment)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (s *MongoPaymentStore) Insert(ctx context.Context, payment *models.Payment) error {
	result, err := s.col.InsertOne(ctx, payment)
	if err != nil {
		return err
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		payment.ID = oid
	}
	return nil
}
