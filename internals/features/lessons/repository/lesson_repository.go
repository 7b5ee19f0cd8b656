// file: internals/features/lessons/repository/lesson_repository.go
package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	m "tutorku_backend/internals/features/lessons/model"
)

/* =========================
   Query shapes
   ========================= */

type LessonFilter struct {
	ClassID *uuid.UUID
	From    *time.Time
	To      *time.Time
	Status  *m.LessonStatus
	Limit   int
	Offset  int
}

// OverlapQuery: kandidat konflik pada satu tanggal — lesson yang memakai
// teacher ATAU classroom yang sama, atau kelasnya punya irisan roster.
// Lesson berstatus cancelled tidak pernah ikut.
type OverlapQuery struct {
	Date            time.Time
	TeacherID       uuid.UUID
	ClassroomID     uuid.UUID
	StudentIDs      []string
	ExcludeLessonID *uuid.UUID
}

/* =========================
   Repository contract
   ========================= */

type LessonRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*m.LessonModel, error)
	List(ctx context.Context, f LessonFilter) ([]m.LessonModel, int64, error)
	Create(ctx context.Context, l *m.LessonModel) error
	Save(ctx context.Context, l *m.LessonModel) error

	FindOverlapCandidates(ctx context.Context, q OverlapQuery) ([]m.LessonModel, error)

	// WithClassLock menserialisasi generate + mutasi yang sensitif konflik
	// per kelas. fn menerima repository yang terikat pada transaksi/lock.
	WithClassLock(ctx context.Context, classID uuid.UUID, fn func(tx LessonRepository) error) error

	// CreateMakeupPair: tulis dua baris secara atomik — buat lesson makeup
	// dan set makeup_lesson_id pada lesson yang dibatalkan.
	CreateMakeupPair(ctx context.Context, cancelled *m.LessonModel, makeup *m.LessonModel) error

	CreateGenerationRun(ctx context.Context, run *m.GenerationRunModel) error
	FindGenerationRun(ctx context.Context, id uuid.UUID) (*m.GenerationRunModel, error)
}
