// ./wisdomcell-backend/internal/services/engagement.go
package services

import (
	"context"
	"errors"
	"time"

	"wisdomcell/backend/internal/models"
)

// ToggleResult reports the state after a toggle: the authoritative counter
// value re-read from the store, and whether the actor is now engaged.
type ToggleResult struct {
	Count   int
	Engaged bool
}

// Engagement implements the like/favorite toggle: presence check, flip, then
// re-read of the counter. The flip itself is a single store call pairing the
// membership mutation with the counter increment.
type Engagement struct {
	Lessons   LessonStore
	Favorites FavoriteStore
}

// ToggleLike flips the (lesson, user) like state. The client never says which
// direction; the lesson's likes set is the source of truth.
func (s *Engagement) ToggleLike(ctx context.Context, lessonID, email string) (ToggleResult, error) {
	lesson, err := s.Lessons.FindByID(ctx, lessonID)
	if err != nil {
		return ToggleResult{}, err
	}

	alreadyLiked := false
	for _, e := range lesson.Likes {
		if e == email {
			alreadyLiked = true
			break
		}
	}

	if err := s.Lessons.SetLike(ctx, lessonID, email, !alreadyLiked); err != nil {
		return ToggleResult{}, err
	}

	count, err := s.Lessons.LikesCount(ctx, lessonID)
	if err != nil {
		return ToggleResult{}, err
	}
	return ToggleResult{Count: count, Engaged: !alreadyLiked}, nil
}

// ToggleFavorite flips the (lesson, user) favorite state. fav carries the
// denormalized lesson fields to snapshot when the toggle lands on "engaged".
func (s *Engagement) ToggleFavorite(ctx context.Context, fav models.Favorite) (ToggleResult, error) {
	existing, err := s.Favorites.FindByPair(ctx, fav.LessonID, fav.UserEmail)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return ToggleResult{}, err
	}

	if existing != nil {
		if err := s.Favorites.DeleteByPair(ctx, fav.LessonID, fav.UserEmail); err != nil {
			return ToggleResult{}, err
		}
		if err := s.Lessons.IncFavoritesCount(ctx, fav.LessonID, -1); err != nil {
			return ToggleResult{}, err
		}
	} else {
		fav.SavedAt = time.Now().UTC()
		if err := s.Favorites.Insert(ctx, &fav); err != nil {
			return ToggleResult{}, err
		}
		if err := s.Lessons.IncFavoritesCount(ctx, fav.LessonID, 1); err != nil {
			return ToggleResult{}, err
		}
	}

	count, err := s.Lessons.FavoritesCount(ctx, fav.LessonID)
	if err != nil {
		return ToggleResult{}, err
	}
	return ToggleResult{Count: count, Engaged: existing == nil}, nil
}

// RemoveFavorite deletes a favorite by its own id (the "my favorites" list
// path) and decrements the referenced lesson's counter, mirroring the toggle's
// un-engage branch.
func (s *Engagement) RemoveFavorite(ctx context.Context, favoriteID string) error {
	fav, err := s.Favorites.FindByID(ctx, favoriteID)
	if err != nil {
		return err
	}
	if err := s.Favorites.DeleteByID(ctx, favoriteID); err != nil {
		return err
	}
	return s.Lessons.IncFavoritesCount(ctx, fav.LessonID, -1)
}
