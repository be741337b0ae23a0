// ./wisdomcell-backend/internal/services/reports.go
package services

import (
	"context"
	"errors"
	"time"

	"wisdomcell/backend/internal/models"
)

// Reports drives the per-lesson report lifecycle: accumulate complaints into
// one aggregate record, then resolve it terminally (remove the lesson, or
// ignore and drop only the record).
type Reports struct {
	Reports ReportStore
	Lessons LessonStore
	Users   UserStore
}

// Submit records one complaint. The first report for a lesson creates the
// aggregate record; later ones append the entry and bump totalReports in the
// same update. Returns whether a new record was created. Repeat reports from
// the same reporter are accepted.
func (s *Reports) Submit(ctx context.Context, lessonID, lessonTitle, reporterEmail, reporterName, reason string) (bool, error) {
	if lessonID == "" || reporterEmail == "" || reporterName == "" || reason == "" {
		return false, ErrMissingFields
	}

	entry := models.ReportEntry{
		ReporterEmail: reporterEmail,
		ReporterName:  reporterName,
		Reason:        reason,
		ReportedAt:    time.Now().UTC(),
	}

	_, err := s.Reports.FindByLessonID(ctx, lessonID)
	if errors.Is(err, ErrNotFound) {
		report := &models.Report{
			LessonID:      lessonID,
			LessonTitle:   lessonTitle,
			TotalReports:  1,
			ReportReasons: []models.ReportEntry{entry},
		}
		return true, s.Reports.Insert(ctx, report)
	}
	if err != nil {
		return false, err
	}
	return false, s.Reports.Append(ctx, lessonID, entry)
}

// ResolveRemove is the moderator's "remove" verdict: the lesson is deleted
// (with the author's lessonCount decremented, same as any other deletion) and
// the report record goes away. A lesson already gone still clears the report.
func (s *Reports) ResolveRemove(ctx context.Context, lessonID string) error {
	lesson, err := s.Lessons.FindByID(ctx, lessonID)
	if err == nil {
		if err := s.Lessons.Delete(ctx, lessonID); err != nil {
			return err
		}
		if err := s.Users.IncLessonCount(ctx, lesson.AuthorEmail, -1); err != nil && !errors.Is(err, ErrNotFound) {
			return err
		}
	} else if !errors.Is(err, ErrNotFound) {
		return err
	}
	return s.Reports.DeleteByLessonID(ctx, lessonID)
}

// ResolveIgnore drops the report record and leaves the lesson untouched.
func (s *Reports) ResolveIgnore(ctx context.Context, lessonID string) error {
	return s.Reports.DeleteByLessonID(ctx, lessonID)
}
