// file: internals/features/lessons/service/lesson_service.go
package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	m "tutorku_backend/internals/features/lessons/model"
	repo "tutorku_backend/internals/features/lessons/repository"
)

const minCancellationReasonLen = 5

/* =======================================================
   LessonService — operasi interaktif satu lesson.

   Semua mutasi yang sensitif bentrok (create, reschedule,
   makeup) masuk lewat lock kelas yang sama dengan generator.
   ======================================================= */

type LessonService struct {
	Lessons  repo.LessonRepository
	Classes  ClassSource
	Detector *ConflictDetector
	Window   *ConductWindowPolicy
	Makeup   *MakeupLinker

	Now func() time.Time // injectable
}

func NewLessonService(lessons repo.LessonRepository, classes ClassSource, detector *ConflictDetector, window *ConductWindowPolicy, makeup *MakeupLinker) *LessonService {
	return &LessonService{
		Lessons:  lessons,
		Classes:  classes,
		Detector: detector,
		Window:   window,
		Makeup:   makeup,
		Now:      time.Now,
	}
}

func (s *LessonService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

/* =========================
   Create (manual)
   ========================= */

func (s *LessonService) CreateLesson(ctx context.Context, classID uuid.UUID, date, start, end time.Time, notes *string) (*m.LessonModel, error) {
	if !end.After(start) {
		return nil, NewValidationError("end_time", "must be after start_time")
	}
	if combineLocalDateAndTOD(date, end).Before(s.now()) {
		return nil, NewValidationError("date", "cannot create a lesson entirely in the past")
	}

	cls, err := s.Classes.ClassByID(ctx, classID)
	if err != nil {
		return nil, wrapStorage("resolve class", err)
	}

	var created *m.LessonModel
	err = s.Lessons.WithClassLock(ctx, classID, func(tx repo.LessonRepository) error {
		report, err := s.Detector.WithRepo(tx).Check(ctx, ConflictCandidate{
			ClassID:   classID,
			Date:      date,
			StartTime: start,
			EndTime:   end,
		})
		if err != nil {
			return err
		}
		if report.HasConflicts() {
			return &ConflictError{Conflicts: report.Conflicts, Suggestions: report.Suggestions}
		}

		lesson := &m.LessonModel{
			LessonID:               uuid.New(),
			LessonClassID:          classID,
			LessonDate:             date,
			LessonStartTime:        start,
			LessonEndTime:          end,
			LessonTeacherID:        cls.ClassTeacherID,
			LessonClassroomID:      cls.ClassClassroomID,
			LessonStatus:           m.LessonStatusScheduled,
			LessonGenerationSource: m.GenerationSourceManual,
			LessonNotes:            notes,
		}
		if err := tx.Create(ctx, lesson); err != nil {
			return wrapStorage("create lesson", err)
		}
		created = lesson
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

/* =========================
   Cancel (+ optional makeup chain)
   ========================= */

// CancelOutcome: cancel-nya sendiri sudah commit; kegagalan makeup
// berantai (mis. slot bentrok) dilaporkan terpisah, tidak membatalkan
// pembatalannya.
type CancelOutcome struct {
	Lesson    *m.LessonModel
	Makeup    *m.LessonModel
	MakeupErr error
}

func (s *LessonService) CancelLesson(ctx context.Context, lessonID uuid.UUID, reason string, makeupSlot *MakeupSlot) (*CancelOutcome, error) {
	if len(strings.TrimSpace(reason)) < minCancellationReasonLen {
		return nil, NewValidationError("cancellation_reason", "reason too short")
	}

	lesson, err := s.Lessons.FindByID(ctx, lessonID)
	if err != nil {
		return nil, wrapStorage("load lesson", err)
	}
	if err := Transition(lesson, m.LessonStatusCancelled); err != nil {
		return nil, err
	}
	lesson.LessonCancellationReason = &reason
	if err := s.Lessons.Save(ctx, lesson); err != nil {
		return nil, wrapStorage("save cancelled lesson", err)
	}

	out := &CancelOutcome{Lesson: lesson}
	if makeupSlot != nil {
		makeup, mkErr := s.Makeup.CreateMakeup(ctx, lesson.LessonID, *makeupSlot, nil)
		if mkErr != nil {
			out.MakeupErr = mkErr
		} else {
			out.Makeup = makeup
			lesson.LessonMakeupLessonID = &makeup.LessonID
		}
	}
	return out, nil
}

/* =========================
   Conduct
   ========================= */

func (s *LessonService) ConductLesson(ctx context.Context, lessonID uuid.UUID, notes *string) (*m.LessonModel, error) {
	lesson, err := s.Lessons.FindByID(ctx, lessonID)
	if err != nil {
		return nil, wrapStorage("load lesson", err)
	}
	if !lesson.LessonStatus.IsUpcoming() {
		return nil, &InvalidTransitionError{From: lesson.LessonStatus, To: m.LessonStatusConducted}
	}
	if !s.Window.CanConduct(lesson) {
		return nil, NewValidationError("time", "lesson has not entered its conduct window yet")
	}
	if err := Transition(lesson, m.LessonStatusConducted); err != nil {
		return nil, err
	}
	now := s.now()
	lesson.LessonConductedAt = &now
	if notes != nil {
		lesson.LessonNotes = notes
	}
	if err := s.Lessons.Save(ctx, lesson); err != nil {
		return nil, wrapStorage("save conducted lesson", err)
	}
	return lesson, nil
}

/* =========================
   Reschedule
   ========================= */

func (s *LessonService) RescheduleLesson(ctx context.Context, lessonID uuid.UUID, newDate, newStart, newEnd time.Time, reason *string) (*m.LessonModel, error) {
	if !newEnd.After(newStart) {
		return nil, NewValidationError("end_time", "must be after start_time")
	}

	lesson, err := s.Lessons.FindByID(ctx, lessonID)
	if err != nil {
		return nil, wrapStorage("load lesson", err)
	}
	// reschedule tetap di status semula (scheduled->scheduled, makeup->makeup)
	if err := Transition(lesson, lesson.LessonStatus); err != nil {
		return nil, err
	}

	sameSlot := sameDate(lesson.LessonDate, newDate) &&
		minutesOfDay(lesson.LessonStartTime) == minutesOfDay(newStart) &&
		minutesOfDay(lesson.LessonEndTime) == minutesOfDay(newEnd)
	if sameSlot {
		return nil, NewValidationError("date", "new slot is identical to the current slot")
	}
	if combineLocalDateAndTOD(newDate, newEnd).Before(s.now()) {
		return nil, NewValidationError("date", "cannot reschedule into the past")
	}

	err = s.Lessons.WithClassLock(ctx, lesson.LessonClassID, func(tx repo.LessonRepository) error {
		report, err := s.Detector.WithRepo(tx).Check(ctx, ConflictCandidate{
			ClassID:         lesson.LessonClassID,
			Date:            newDate,
			StartTime:       newStart,
			EndTime:         newEnd,
			ExcludeLessonID: &lesson.LessonID,
		})
		if err != nil {
			return err
		}
		if report.HasConflicts() {
			return &ConflictError{Conflicts: report.Conflicts, Suggestions: report.Suggestions}
		}

		lesson.LessonDate = newDate
		lesson.LessonStartTime = newStart
		lesson.LessonEndTime = newEnd
		if reason != nil {
			lesson.LessonNotes = reason
		}
		if err := tx.Save(ctx, lesson); err != nil {
			return wrapStorage("save rescheduled lesson", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return lesson, nil
}

/* =========================
   No-show
   ========================= */

func (s *LessonService) MarkNoShow(ctx context.Context, lessonID uuid.UUID, notes *string) (*m.LessonModel, error) {
	lesson, err := s.Lessons.FindByID(ctx, lessonID)
	if err != nil {
		return nil, wrapStorage("load lesson", err)
	}
	if err := Transition(lesson, m.LessonStatusNoShow); err != nil {
		return nil, err
	}
	if notes != nil {
		lesson.LessonNotes = notes
	}
	if err := s.Lessons.Save(ctx, lesson); err != nil {
		return nil, wrapStorage("save no-show lesson", err)
	}
	return lesson, nil
}
