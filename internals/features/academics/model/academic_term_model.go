// file: internals/features/academics/model/academic_term_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* =======================================================
   AcademicYearModel — map ke tabel academic_years
   ======================================================= */

type AcademicYearModel struct {
	// PK
	AcademicYearID uuid.UUID `json:"academic_year_id" gorm:"type:uuid;primaryKey;column:academic_year_id;default:gen_random_uuid()"`

	// Identitas (mis. "2026/2027")
	AcademicYearName string `json:"academic_year_name" gorm:"type:varchar(80);not null;column:academic_year_name"`

	// Batas berlaku
	AcademicYearStartDate time.Time `json:"academic_year_start_date" gorm:"type:date;not null;column:academic_year_start_date"`
	AcademicYearEndDate   time.Time `json:"academic_year_end_date"   gorm:"type:date;not null;column:academic_year_end_date"`

	AcademicYearIsActive bool `json:"academic_year_is_active" gorm:"type:boolean;not null;default:true;column:academic_year_is_active"`

	// Audit
	AcademicYearCreatedAt time.Time      `json:"academic_year_created_at" gorm:"column:academic_year_created_at;not null;autoCreateTime"`
	AcademicYearUpdatedAt time.Time      `json:"academic_year_updated_at" gorm:"column:academic_year_updated_at;not null;autoUpdateTime"`
	AcademicYearDeletedAt gorm.DeletedAt `json:"academic_year_deleted_at" gorm:"column:academic_year_deleted_at;index"`
}

func (AcademicYearModel) TableName() string {
	return "academic_years"
}

/* =======================================================
   SemesterModel — map ke tabel semesters
   ======================================================= */

type SemesterModel struct {
	// PK
	SemesterID uuid.UUID `json:"semester_id" gorm:"type:uuid;primaryKey;column:semester_id;default:gen_random_uuid()"`

	// Induk tahun ajaran
	SemesterAcademicYearID uuid.UUID `json:"semester_academic_year_id" gorm:"type:uuid;not null;column:semester_academic_year_id"`

	SemesterName string `json:"semester_name" gorm:"type:varchar(80);not null;column:semester_name"`

	// Batas berlaku
	SemesterStartDate time.Time `json:"semester_start_date" gorm:"type:date;not null;column:semester_start_date"`
	SemesterEndDate   time.Time `json:"semester_end_date"   gorm:"type:date;not null;column:semester_end_date"`

	// Audit
	SemesterCreatedAt time.Time      `json:"semester_created_at" gorm:"column:semester_created_at;not null;autoCreateTime"`
	SemesterUpdatedAt time.Time      `json:"semester_updated_at" gorm:"column:semester_updated_at;not null;autoUpdateTime"`
	SemesterDeletedAt gorm.DeletedAt `json:"semester_deleted_at" gorm:"column:semester_deleted_at;index"`
}

func (SemesterModel) TableName() string {
	return "semesters"
}
