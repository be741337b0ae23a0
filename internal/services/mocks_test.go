package services

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"wisdomcell/backend/internal/models"
)

// Common test errors
var (
	ErrMockStore    = errors.New("mock store error")
	ErrMockProvider = errors.New("mock provider error")
)

// fakeLessonStore is an in-memory LessonStore keyed by lesson id hex. SetLike
// applies the paired set+counter mutation the Mongo implementation performs in
// one update.
type fakeLessonStore struct {
	lessons map[string]*models.Lesson
}

func newFakeLessonStore(lessons ...*models.Lesson) *fakeLessonStore {
	s := &fakeLessonStore{lessons: make(map[string]*models.Lesson)}
	for _, l := range lessons {
		if l.ID.IsZero() {
			l.ID = primitive.NewObjectID()
		}
		s.lessons[l.ID.Hex()] = l
	}
	return s
}

func (s *fakeLessonStore) FindByID(ctx context.Context, id string) (*models.Lesson, error) {
	lesson, ok := s.lessons[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *lesson
	copied.Likes = append([]string(nil), lesson.Likes...)
	return &copied, nil
}

func (s *fakeLessonStore) Insert(ctx context.Context, lesson *models.Lesson) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	lesson.ID = id
	copied := *lesson
	s.lessons[id.Hex()] = &copied
	return id, nil
}

func (s *fakeLessonStore) Delete(ctx context.Context, id string) error {
	if _, ok := s.lessons[id]; !ok {
		return ErrNotFound
	}
	delete(s.lessons, id)
	return nil
}

func (s *fakeLessonStore) SetLike(ctx context.Context, id, email string, add bool) error {
	lesson, ok := s.lessons[id]
	if !ok {
		return ErrNotFound
	}
	if add {
		lesson.Likes = append(lesson.Likes, email)
		lesson.LikesCount++
		return nil
	}
	kept := lesson.Likes[:0]
	for _, e := range lesson.Likes {
		if e != email {
			kept = append(kept, e)
		}
	}
	lesson.Likes = kept
	lesson.LikesCount--
	return nil
}

func (s *fakeLessonStore) LikesCount(ctx context.Context, id string) (int, error) {
	lesson, ok := s.lessons[id]
	if !ok {
		return 0, ErrNotFound
	}
	return lesson.LikesCount, nil
}

func (s *fakeLessonStore) IncFavoritesCount(ctx context.Context, id string, delta int) error {
	lesson, ok := s.lessons[id]
	if !ok {
		return ErrNotFound
	}
	lesson.FavoritesCount += delta
	return nil
}

func (s *fakeLessonStore) FavoritesCount(ctx context.Context, id string) (int, error) {
	lesson, ok := s.lessons[id]
	if !ok {
		return 0, ErrNotFound
	}
	return lesson.FavoritesCount, nil
}

type fakeUserStore struct {
	users           map[string]*models.User
	setPremiumCalls int
}

func newFakeUserStore(users ...*models.User) *fakeUserStore {
	s := &fakeUserStore{users: make(map[string]*models.User)}
	for _, u := range users {
		s.users[u.Email] = u
	}
	return s
}

func (s *fakeUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	user, ok := s.users[email]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (s *fakeUserStore) IncLessonCount(ctx context.Context, email string, delta int) error {
	user, ok := s.users[email]
	if !ok {
		return ErrNotFound
	}
	user.LessonCount += delta
	return nil
}

func (s *fakeUserStore) SetPremium(ctx context.Context, email string, since time.Time) error {
	s.setPremiumCalls++
	user, ok := s.users[email]
	if !ok {
		return nil
	}
	user.IsPremium = true
	user.PremiumSince = &since
	return nil
}

type fakeFavoriteStore struct {
	favorites map[string]*models.Favorite // keyed by id hex
}

func newFakeFavoriteStore() *fakeFavoriteStore {
	return &fakeFavoriteStore{favorites: make(map[string]*models.Favorite)}
}

func (s *fakeFavoriteStore) FindByPair(ctx context.Context, lessonID, email string) (*models.Favorite, error) {
	for _, fav := range s.favorites {
		if fav.LessonID == lessonID && fav.UserEmail == email {
			copied := *fav
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

func (s *fakeFavoriteStore) FindByID(ctx context.Context, id string) (*models.Favorite, error) {
	fav, ok := s.favorites[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *fav
	return &copied, nil
}

func (s *fakeFavoriteStore) Insert(ctx context.Context, fav *models.Favorite) error {
	fav.ID = primitive.NewObjectID()
	copied := *fav
	s.favorites[fav.ID.Hex()] = &copied
	return nil
}

func (s *fakeFavoriteStore) DeleteByPair(ctx context.Context, lessonID, email string) error {
	for id, fav := range s.favorites {
		if fav.LessonID == lessonID && fav.UserEmail == email {
			delete(s.favorites, id)
			return nil
		}
	}
	return nil
}

func (s *fakeFavoriteStore) DeleteByID(ctx context.Context, id string) error {
	delete(s.favorites, id)
	return nil
}

type fakeReportStore struct {
	reports map[string]*models.Report // keyed by lessonId
}

func newFakeReportStore() *fakeReportStore {
	return &fakeReportStore{reports: make(map[string]*models.Report)}
}

func (s *fakeReportStore) FindByLessonID(ctx context.Context, lessonID string) (*models.Report, error) {
	report, ok := s.reports[lessonID]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *report
	copied.ReportReasons = append([]models.ReportEntry(nil), report.ReportReasons...)
	return &copied, nil
}

func (s *fakeReportStore) Insert(ctx context.Context, report *models.Report) error {
	report.ID = primitive.NewObjectID()
	copied := *report
	s.reports[report.LessonID] = &copied
	return nil
}

func (s *fakeReportStore) Append(ctx context.Context, lessonID string, entry models.ReportEntry) error {
	report, ok := s.reports[lessonID]
	if !ok {
		return ErrNotFound
	}
	report.ReportReasons = append(report.ReportReasons, entry)
	report.TotalReports++
	return nil
}

func (s *fakeReportStore) DeleteByLessonID(ctx context.Context, lessonID string) error {
	delete(s.reports, lessonID)
	return nil
}

type fakePaymentStore struct {
	payments map[string]*models.Payment // keyed by transactionId
}

func newFakePaymentStore() *fakePaymentStore {
	return &fakePaymentStore{payments: make(map[string]*models.Payment)}
}

func (s *fakePaymentStore) FindByTransactionID(ctx context.Context, transactionID string) (*models.Payment, error) {
	payment, ok := s.payments[transactionID]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *payment
	return &copied, nil
}

func (s *fakePaymentStore) Insert(ctx context.Context, payment *models.Payment) error {
	payment.ID = primitive.NewObjectID()
	copied := *payment
	s.payments[payment.TransactionID] = &copied
	return nil
}

// fakeProvider implements CheckoutProvider with canned sessions.
type fakeProvider struct {
	sessions map[string]*CheckoutSession
	created  []CheckoutInput
}

func newFakeProvider(sessions ...*CheckoutSession) *fakeProvider {
	p := &fakeProvider{sessions: make(map[string]*CheckoutSession)}
	for _, s := range sessions {
		p.sessions[s.ID] = s
	}
	return p
}

func (p *fakeProvider) CreateSession(ctx context.Context, in CheckoutInput) (*CheckoutSession, error) {
	p.created = append(p.created, in)
	return &CheckoutSession{ID: "cs_test_1", URL: "https://checkout.example/cs_test_1"}, nil
}

func (p *fakeProvider) RetrieveSession(ctx context.Context, sessionID string) (*CheckoutSession, error) {
	session, ok := p.sessions[sessionID]
	if !ok {
		return nil, ErrMockProvider
	}
	return session, nil
}
