// ./wisdomcell-backend/internal/services/lessons.go
package services

import (
	"context"
	"time"

	"wisdomcell/backend/internal/models"
)

// Lessons owns the author lessonCount bookkeeping around lesson creation and
// deletion. The snapshot-then-increment on create is two store calls, not one
// atomic step.
type Lessons struct {
	Lessons LessonStore
	Users   UserStore
}

// Create stamps the author's lesson-count snapshot on the new lesson,
// increments the author's stored lessonCount, then inserts the lesson.
// Fails with ErrNotFound (nothing written) when the author is unknown.
func (s *Lessons) Create(ctx context.Context, lesson *models.Lesson) error {
	author, err := s.Users.FindByEmail(ctx, lesson.AuthorEmail)
	if err != nil {
		return err
	}

	lesson.AuthorLessonCount = author.LessonCount + 1
	lesson.Likes = []string{}
	lesson.LikesCount = 0
	lesson.FavoritesCount = 0
	lesson.IsFeatured = false
	lesson.IsReviewed = false
	lesson.CreatedAt = time.Now().UTC()

	if err := s.Users.IncLessonCount(ctx, lesson.AuthorEmail, 1); err != nil {
		return err
	}

	id, err := s.Lessons.Insert(ctx, lesson)
	if err != nil {
		return err
	}
	lesson.ID = id
	return nil
}

// Delete removes the lesson and decrements its author's lessonCount. A missing
// lesson is ErrNotFound and leaves all counts untouched.
func (s *Lessons) Delete(ctx context.Context, id string) error {
	lesson, err := s.Lessons.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.Lessons.Delete(ctx, id); err != nil {
		return err
	}
	return s.Users.IncLessonCount(ctx, lesson.AuthorEmail, -1)
}
