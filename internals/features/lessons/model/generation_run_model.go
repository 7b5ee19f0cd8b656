// file: internals/features/lessons/model/generation_run_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

/* =======================================================
   Enum mode generate
   ======================================================= */

type GenerationMode string

const (
	GenerationModeCustomRange GenerationMode = "custom_range"
	GenerationModeMonth       GenerationMode = "month"
	GenerationModeSemester    GenerationMode = "semester"
	GenerationModeFullYear    GenerationMode = "full_year"
)

/* =======================================================
   GenerationRunModel — laporan hasil bulk generate
   (disimpan supaya ringkasannya bisa diambil ulang)
   ======================================================= */

type GenerationRunModel struct {
	// PK
	GenerationRunID uuid.UUID `json:"generation_run_id" gorm:"type:uuid;primaryKey;column:generation_run_id;default:gen_random_uuid()"`

	// Kelas + rentang efektif
	GenerationRunClassID   uuid.UUID      `json:"generation_run_class_id"   gorm:"type:uuid;not null;column:generation_run_class_id"`
	GenerationRunMode      GenerationMode `json:"generation_run_mode"       gorm:"type:text;not null;column:generation_run_mode"`
	GenerationRunStartDate time.Time      `json:"generation_run_start_date" gorm:"type:date;not null;column:generation_run_start_date"`
	GenerationRunEndDate   time.Time      `json:"generation_run_end_date"   gorm:"type:date;not null;column:generation_run_end_date"`

	// Tally
	GenerationRunGeneratedCount     int `json:"generation_run_generated_count"      gorm:"not null;default:0;column:generation_run_generated_count"`
	GenerationRunSkippedCount       int `json:"generation_run_skipped_count"        gorm:"not null;default:0;column:generation_run_skipped_count"`
	GenerationRunHolidaySkips       int `json:"generation_run_holiday_skips"        gorm:"not null;default:0;column:generation_run_holiday_skips"`
	GenerationRunTeachingBreakSkips int `json:"generation_run_teaching_break_skips" gorm:"not null;default:0;column:generation_run_teaching_break_skips"`
	GenerationRunConflictCount      int `json:"generation_run_conflict_count"       gorm:"not null;default:0;column:generation_run_conflict_count"`

	// Detail skip per tanggal (urut kronologis)
	GenerationRunSkippedDetails datatypes.JSON `json:"generation_run_skipped_details" gorm:"type:jsonb;column:generation_run_skipped_details"`

	// Audit
	GenerationRunCreatedAt time.Time `json:"generation_run_created_at" gorm:"column:generation_run_created_at;not null;autoCreateTime"`
}

func (GenerationRunModel) TableName() string {
	return "lesson_generation_runs"
}
