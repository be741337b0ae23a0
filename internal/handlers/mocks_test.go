package handlers

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"wisdomcell/backend/internal/models"
	"wisdomcell/backend/internal/services"
)

// Test errors
var (
	errMockStore    = errors.New("store error")
	errMockProvider = errors.New("provider error")
)

// mockLessonStore implements services.LessonStore with overridable funcs.
type mockLessonStore struct {
	FindByIDFunc          func(ctx context.Context, id string) (*models.Lesson, error)
	InsertFunc            func(ctx context.Context, lesson *models.Lesson) (primitive.ObjectID, error)
	DeleteFunc            func(ctx context.Context, id string) error
	SetLikeFunc           func(ctx context.Context, id, email string, add bool) error
	LikesCountFunc        func(ctx context.Context, id string) (int, error)
	IncFavoritesCountFunc func(ctx context.Context, id string, delta int) error
	FavoritesCountFunc    func(ctx context.Context, id string) (int, error)
}

func (m *mockLessonStore) FindByID(ctx context.Context, id string) (*models.Lesson, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, services.ErrNotFound
}

func (m *mockLessonStore) Insert(ctx context.Context, lesson *models.Lesson) (primitive.ObjectID, error) {
	if m.InsertFunc != nil {
		return m.InsertFunc(ctx, lesson)
	}
	return primitive.NewObjectID(), nil
}

func (m *mockLessonStore) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *mockLessonStore) SetLike(ctx context.Context, id, email string, add bool) error {
	if m.SetLikeFunc != nil {
		return m.SetLikeFunc(ctx, id, email, add)
	}
	return nil
}

func (m *mockLessonStore) LikesCount(ctx context.Context, id string) (int, error) {
	if m.LikesCountFunc != nil {
		return m.LikesCountFunc(ctx, id)
	}
	return 0, nil
}

func (m *mockLessonStore) IncFavoritesCount(ctx context.Context, id string, delta int) error {
	if m.IncFavoritesCountFunc != nil {
		return m.IncFavoritesCountFunc(ctx, id, delta)
	}
	return nil
}

func (m *mockLessonStore) FavoritesCount(ctx context.Context, id string) (int, error) {
	if m.FavoritesCountFunc != nil {
		return m.FavoritesCountFunc(ctx, id)
	}
	return 0, nil
}

// mockFavoriteStore implements services.FavoriteStore with overridable funcs.
type mockFavoriteStore struct {
	FindByPairFunc   func(ctx context.Context, lessonID, email string) (*models.Favorite, error)
	FindByIDFunc     func(ctx context.Context, id string) (*models.Favorite, error)
	InsertFunc       func(ctx context.Context, fav *models.Favorite) error
	DeleteByPairFunc func(ctx context.Context, lessonID, email string) error
	DeleteByIDFunc   func(ctx context.Context, id string) error
}

func (m *mockFavoriteStore) FindByPair(ctx context.Context, lessonID, email string) (*models.Favorite, error) {
	if m.FindByPairFunc != nil {
		return m.FindByPairFunc(ctx, lessonID, email)
	}
	return nil, services.ErrNotFound
}

func (m *mockFavoriteStore) FindByID(ctx context.Context, id string) (*models.Favorite, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, services.ErrNotFound
}

func (m *mockFavoriteStore) Insert(ctx context.Context, fav *models.Favorite) error {
	if m.InsertFunc != nil {
		return m.InsertFunc(ctx, fav)
	}
	return nil
}

func (m *mockFavoriteStore) DeleteByPair(ctx context.Context, lessonID, email string) error {
	if m.DeleteByPairFunc != nil {
		return m.DeleteByPairFunc(ctx, lessonID, email)
	}
	return nil
}

func (m *mockFavoriteStore) DeleteByID(ctx context.Context, id string) error {
	if m.DeleteByIDFunc != nil {
		return m.DeleteByIDFunc(ctx, id)
	}
	return nil
}

// mockReportStore implements services.ReportStore with overridable funcs.
type mockReportStore struct {
	FindByLessonIDFunc   func(ctx context.Context, lessonID string) (*models.Report, error)
	InsertFunc           func(ctx context.Context, report *models.Report) error
	AppendFunc           func(ctx context.Context, lessonID string, entry models.ReportEntry) error
	DeleteByLessonIDFunc func(ctx context.Context, lessonID string) error
}

func (m *mockReportStore) FindByLessonID(ctx context.Context, lessonID string) (*models.Report, error) {
	if m.FindByLessonIDFunc != nil {
		return m.FindByLessonIDFunc(ctx, lessonID)
	}
	return nil, services.ErrNotFound
}

func (m *mockReportStore) Insert(ctx context.Context, report *models.Report) error {
	if m.InsertFunc != nil {
		return m.InsertFunc(ctx, report)
	}
	return nil
}

func (m *mockReportStore) Append(ctx context.Context, lessonID string, entry models.ReportEntry) error {
	if m.AppendFunc != nil {
		return m.AppendFunc(ctx, lessonID, entry)
	}
	return nil
}

func (m *mockReportStore) DeleteByLessonID(ctx context.Context, lessonID string) error {
	if m.DeleteByLessonIDFunc != nil {
		return m.DeleteByLessonIDFunc(ctx, lessonID)
	}
	return nil
}

// mockUserStore implements services.UserStore with overridable funcs.
type mockUserStore struct {
	FindByEmailFunc    func(ctx context.Context, email string) (*models.User, error)
	IncLessonCountFunc func(ctx context.Context, email string, delta int) error
	SetPremiumFunc     func(ctx context.Context, email string, since time.Time) error
}

func (m *mockUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	return nil, services.ErrNotFound
}

func (m *mockUserStore) IncLessonCount(ctx context.Context, email string, delta int) error {
	if m.IncLessonCountFunc != nil {
		return m.IncLessonCountFunc(ctx, email, delta)
	}
	return nil
}

func (m *mockUserStore) SetPremium(ctx context.Context, email string, since time.Time) error {
	if m.SetPremiumFunc != nil {
		return m.SetPremiumFunc(ctx, email, since)
	}
	return nil
}

// mockPaymentStore implements services.PaymentStore with overridable funcs.
type mockPaymentStore struct {
	FindByTransactionIDFunc func(ctx context.Context, transactionID string) (*models.Payment, error)
	InsertFunc              func(ctx context.Context, payment *models.Payment) error
}

func (m *mockPaymentStore) FindByTransactionID(ctx context.Context, transactionID string) (*models.Payment, error) {
	if m.FindByTransactionIDFunc != nil {
		return m.FindByTransactionIDFunc(ctx, transactionID)
	}
	return nil, services.ErrNotFound
}

func (m *mockPaymentStore) Insert(ctx context.Context, payment *models.Payment) error {
	if m.InsertFunc != nil {
		return m.InsertFunc(ctx, payment)
	}
	return nil
}

// mockProvider implements services.CheckoutProvider with overridable funcs.
type mockProvider struct {
	CreateSessionFunc   func(ctx context.Context, in services.CheckoutInput) (*services.CheckoutSession, error)
	RetrieveSessionFunc func(ctx context.Context, sessionID string) (*services.CheckoutSession, error)
}

func (m *mockProvider) CreateSession(ctx context.Context, in services.CheckoutInput) (*services.CheckoutSession, error) {
	if m.CreateSessionFunc != nil {
		return m.CreateSessionFunc(ctx, in)
	}
	return nil, errMockProvider
}

func (m *mockProvider) RetrieveSession(ctx context.Context, sessionID string) (*services.CheckoutSession, error) {
	if m.RetrieveSessionFunc != nil {
		return m.RetrieveSessionFunc(ctx, sessionID)
	}
	return nil, errMockProvider
}
