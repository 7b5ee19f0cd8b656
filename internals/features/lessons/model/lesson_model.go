// file: internals/features/lessons/model/lesson_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* =======================================================
   Enum status (selaras dengan lesson_status_enum di DB)
   ======================================================= */

type LessonStatus string

const (
	LessonStatusScheduled LessonStatus = "scheduled"
	LessonStatusConducted LessonStatus = "conducted"
	LessonStatusCancelled LessonStatus = "cancelled"
	LessonStatusMakeUp    LessonStatus = "makeup"
	LessonStatusNoShow    LessonStatus = "no_show"
)

// IsUpcoming: scheduled & makeup adalah state "belum selesai" yang setara
// untuk keperluan transisi.
func (s LessonStatus) IsUpcoming() bool {
	return s == LessonStatusScheduled || s == LessonStatusMakeUp
}

/* =======================================================
   Enum generation source
   ======================================================= */

type GenerationSource string

const (
	GenerationSourceManual    GenerationSource = "manual"
	GenerationSourceAutomatic GenerationSource = "automatic"
	GenerationSourceMakeup    GenerationSource = "makeup"
)

/* =======================================================
   LessonModel — map ke tabel lessons
   ======================================================= */

type LessonModel struct {
	// PK
	LessonID uuid.UUID `json:"lesson_id" gorm:"type:uuid;primaryKey;column:lesson_id;default:gen_random_uuid()"`

	// Induk kelas
	LessonClassID uuid.UUID `json:"lesson_class_id" gorm:"type:uuid;not null;column:lesson_class_id"`

	// Jadwal (tanggal + jam dinding pada hari yang sama)
	LessonDate      time.Time `json:"lesson_date"       gorm:"type:date;not null;column:lesson_date"`
	LessonStartTime time.Time `json:"lesson_start_time" gorm:"type:time;not null;column:lesson_start_time"`
	LessonEndTime   time.Time `json:"lesson_end_time"   gorm:"type:time;not null;column:lesson_end_time"`

	// Snapshot resource dari kelas saat dibuat
	LessonTeacherID   uuid.UUID `json:"lesson_teacher_id"   gorm:"type:uuid;not null;column:lesson_teacher_id"`
	LessonClassroomID uuid.UUID `json:"lesson_classroom_id" gorm:"type:uuid;not null;column:lesson_classroom_id"`

	// Lifecycle
	LessonStatus LessonStatus `json:"lesson_status" gorm:"type:text;not null;default:'scheduled';column:lesson_status"`

	// Link makeup (pasangan dua arah: A.makeup = B <=> B.original = A)
	LessonMakeupLessonID   *uuid.UUID `json:"lesson_makeup_lesson_id,omitempty"   gorm:"type:uuid;column:lesson_makeup_lesson_id"`
	LessonOriginalLessonID *uuid.UUID `json:"lesson_original_lesson_id,omitempty" gorm:"type:uuid;column:lesson_original_lesson_id"`

	// Provenance
	LessonGenerationSource GenerationSource `json:"lesson_generation_source" gorm:"type:text;not null;default:'manual';column:lesson_generation_source"`

	// Narasi
	LessonNotes              *string    `json:"lesson_notes,omitempty"               gorm:"type:text;column:lesson_notes"`
	LessonCancellationReason *string    `json:"lesson_cancellation_reason,omitempty" gorm:"type:text;column:lesson_cancellation_reason"`
	LessonConductedAt        *time.Time `json:"lesson_conducted_at,omitempty"        gorm:"type:timestamptz;column:lesson_conducted_at"`

	// Timestamps eksplisit (auto create/update)
	LessonCreatedAt time.Time      `json:"lesson_created_at" gorm:"column:lesson_created_at;not null;autoCreateTime"`
	LessonUpdatedAt time.Time      `json:"lesson_updated_at" gorm:"column:lesson_updated_at;not null;autoUpdateTime"`
	LessonDeletedAt gorm.DeletedAt `json:"lesson_deleted_at" gorm:"column:lesson_deleted_at;index"`
}

/* =======================================================
   Table name
   ======================================================= */

func (LessonModel) TableName() string {
	return "lessons"
}
