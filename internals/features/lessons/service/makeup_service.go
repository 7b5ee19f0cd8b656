// file: internals/features/lessons/service/makeup_service.go
package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	m "tutorku_backend/internals/features/lessons/model"
	repo "tutorku_backend/internals/features/lessons/repository"
)

/* =======================================================
   MakeupLinker — relasi 1:1 lesson cancelled <-> makeup.

   Dua tulisan (insert makeup + set pointer di cancelled)
   harus atomik; retry setelah sukses harus ditolak, bukan
   digandakan.
   ======================================================= */

type MakeupSlot struct {
	Date      time.Time
	StartTime time.Time
	EndTime   time.Time

	// opsional: override snapshot resource dari lesson asal
	TeacherID   *uuid.UUID
	ClassroomID *uuid.UUID
}

type MakeupLinker struct {
	Lessons  repo.LessonRepository
	Detector *ConflictDetector
}

func NewMakeupLinker(lessons repo.LessonRepository, detector *ConflictDetector) *MakeupLinker {
	return &MakeupLinker{Lessons: lessons, Detector: detector}
}

// CreateMakeup membuat lesson pengganti untuk lesson yang dibatalkan dan
// menautkan keduanya dua arah. Semua cek (status, belum punya makeup,
// slot bebas bentrok) diulang di dalam lock kelas supaya race dengan
// generate/mutasi lain tidak bisa menyelundupkan duplikat.
func (s *MakeupLinker) CreateMakeup(ctx context.Context, cancelledID uuid.UUID, slot MakeupSlot, notes *string) (*m.LessonModel, error) {
	if !slot.EndTime.After(slot.StartTime) {
		return nil, NewValidationError("end_time", "must be after start_time")
	}

	orig, err := s.Lessons.FindByID(ctx, cancelledID)
	if err != nil {
		return nil, wrapStorage("load cancelled lesson", err)
	}
	if orig.LessonStatus != m.LessonStatusCancelled {
		return nil, &InvalidTransitionError{From: orig.LessonStatus, To: m.LessonStatusMakeUp}
	}
	if orig.LessonMakeupLessonID != nil {
		return nil, ErrAlreadyHasMakeup
	}

	var created *m.LessonModel
	err = s.Lessons.WithClassLock(ctx, orig.LessonClassID, func(tx repo.LessonRepository) error {
		// re-check di dalam lock
		cur, err := tx.FindByID(ctx, cancelledID)
		if err != nil {
			return wrapStorage("reload cancelled lesson", err)
		}
		if cur.LessonStatus != m.LessonStatusCancelled {
			return &InvalidTransitionError{From: cur.LessonStatus, To: m.LessonStatusMakeUp}
		}
		if cur.LessonMakeupLessonID != nil {
			return ErrAlreadyHasMakeup
		}

		teacherID := cur.LessonTeacherID
		if slot.TeacherID != nil {
			teacherID = *slot.TeacherID
		}
		classroomID := cur.LessonClassroomID
		if slot.ClassroomID != nil {
			classroomID = *slot.ClassroomID
		}

		// cek bentrok pakai resource EFEKTIF makeup (setelah override),
		// bukan snapshot default kelasnya
		report, err := s.Detector.WithRepo(tx).Check(ctx, ConflictCandidate{
			ClassID:     cur.LessonClassID,
			Date:        slot.Date,
			StartTime:   slot.StartTime,
			EndTime:     slot.EndTime,
			TeacherID:   &teacherID,
			ClassroomID: &classroomID,
		})
		if err != nil {
			return err
		}
		if report.HasConflicts() {
			return &ConflictError{Conflicts: report.Conflicts, Suggestions: report.Suggestions}
		}

		makeup := &m.LessonModel{
			LessonID:               uuid.New(),
			LessonClassID:          cur.LessonClassID,
			LessonDate:             slot.Date,
			LessonStartTime:        slot.StartTime,
			LessonEndTime:          slot.EndTime,
			LessonTeacherID:        teacherID,
			LessonClassroomID:      classroomID,
			LessonStatus:           m.LessonStatusMakeUp,
			LessonOriginalLessonID: &cur.LessonID,
			LessonGenerationSource: m.GenerationSourceMakeup,
			LessonNotes:            notes,
		}
		if err := tx.CreateMakeupPair(ctx, cur, makeup); err != nil {
			return wrapStorage("create makeup pair", err)
		}
		created = makeup
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}
