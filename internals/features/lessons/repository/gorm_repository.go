// file: internals/features/lessons/repository/gorm_repository.go
package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	m "tutorku_backend/internals/features/lessons/model"
)

/* =========================
   GORM implementation
   ========================= */

type GormLessonRepository struct {
	DB *gorm.DB
}

func NewGormLessonRepository(db *gorm.DB) *GormLessonRepository {
	return &GormLessonRepository{DB: db}
}

var _ LessonRepository = (*GormLessonRepository)(nil)

func (r *GormLessonRepository) FindByID(ctx context.Context, id uuid.UUID) (*m.LessonModel, error) {
	var row m.LessonModel
	if err := r.DB.WithContext(ctx).
		Where("lesson_id = ?", id).
		First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *GormLessonRepository) List(ctx context.Context, f LessonFilter) ([]m.LessonModel, int64, error) {
	db := r.DB.WithContext(ctx).Model(&m.LessonModel{})

	if f.ClassID != nil {
		db = db.Where("lesson_class_id = ?", *f.ClassID)
	}
	if f.From != nil {
		db = db.Where("lesson_date >= ?", *f.From)
	}
	if f.To != nil {
		db = db.Where("lesson_date <= ?", *f.To)
	}
	if f.Status != nil {
		db = db.Where("lesson_status = ?", *f.Status)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := f.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	offset := f.Offset
	if offset < 0 {
		offset = 0
	}

	var rows []m.LessonModel
	if err := db.
		Order("lesson_date ASC, lesson_start_time ASC").
		Limit(limit).Offset(offset).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *GormLessonRepository) Create(ctx context.Context, l *m.LessonModel) error {
	return r.DB.WithContext(ctx).Create(l).Error
}

func (r *GormLessonRepository) Save(ctx context.Context, l *m.LessonModel) error {
	return r.DB.WithContext(ctx).Save(l).Error
}

func (r *GormLessonRepository) FindOverlapCandidates(ctx context.Context, q OverlapQuery) ([]m.LessonModel, error) {
	db := r.DB.WithContext(ctx).Model(&m.LessonModel{}).
		Where("lesson_date = ?", q.Date).
		Where("lesson_status <> ?", m.LessonStatusCancelled)

	if q.ExcludeLessonID != nil {
		db = db.Where("lesson_id <> ?", *q.ExcludeLessonID)
	}

	// teacher / classroom sama, atau roster kelas beririsan (&& = array overlap)
	if len(q.StudentIDs) > 0 {
		db = db.Where(
			"(lesson_teacher_id = ? OR lesson_classroom_id = ? OR lesson_class_id IN (SELECT class_id FROM classes WHERE class_deleted_at IS NULL AND class_student_ids && ?))",
			q.TeacherID, q.ClassroomID, pq.StringArray(q.StudentIDs),
		)
	} else {
		db = db.Where("(lesson_teacher_id = ? OR lesson_classroom_id = ?)", q.TeacherID, q.ClassroomID)
	}

	var rows []m.LessonModel
	if err := db.Order("lesson_start_time ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// WithClassLock: advisory lock per kelas di level transaksi — generate dan
// mutasi interaktif untuk kelas yang sama antri, kelas lain jalan paralel.
func (r *GormLessonRepository) WithClassLock(ctx context.Context, classID uuid.UUID, fn func(tx LessonRepository) error) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", classID.String()).Error; err != nil {
			return err
		}
		return fn(&GormLessonRepository{DB: tx})
	})
}

func (r *GormLessonRepository) CreateMakeupPair(ctx context.Context, cancelled *m.LessonModel, makeup *m.LessonModel) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(makeup).Error; err != nil {
			return err
		}
		cancelled.LessonMakeupLessonID = &makeup.LessonID
		return tx.Save(cancelled).Error
	})
}

func (r *GormLessonRepository) CreateGenerationRun(ctx context.Context, run *m.GenerationRunModel) error {
	return r.DB.WithContext(ctx).Create(run).Error
}

func (r *GormLessonRepository) FindGenerationRun(ctx context.Context, id uuid.UUID) (*m.GenerationRunModel, error) {
	var row m.GenerationRunModel
	if err := r.DB.WithContext(ctx).
		Where("generation_run_id = ?", id).
		First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}
