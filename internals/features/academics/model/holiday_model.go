// file: internals/features/academics/model/holiday_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* =======================================================
   PublicHolidayModel — libur nasional (rentang tanggal;
   satu hari = start = end)
   ======================================================= */

type PublicHolidayModel struct {
	// PK
	PublicHolidayID uuid.UUID `json:"public_holiday_id" gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:public_holiday_id"`

	// Tanggal (rentang inklusif)
	PublicHolidayStartDate time.Time `json:"public_holiday_start_date" gorm:"type:date;not null;column:public_holiday_start_date"`
	PublicHolidayEndDate   time.Time `json:"public_holiday_end_date"   gorm:"type:date;not null;column:public_holiday_end_date"`

	// Informasi
	PublicHolidayTitle  string  `json:"public_holiday_title"            gorm:"type:varchar(200);not null;column:public_holiday_title"`
	PublicHolidayReason *string `json:"public_holiday_reason,omitempty" gorm:"type:text;column:public_holiday_reason"`

	// Flags
	PublicHolidayIsActive          bool `json:"public_holiday_is_active"           gorm:"not null;default:true;column:public_holiday_is_active"`
	PublicHolidayIsRecurringYearly bool `json:"public_holiday_is_recurring_yearly" gorm:"not null;default:false;column:public_holiday_is_recurring_yearly"`

	// Audit
	PublicHolidayCreatedAt time.Time      `json:"public_holiday_created_at" gorm:"type:timestamptz;not null;default:now();autoCreateTime;column:public_holiday_created_at"`
	PublicHolidayUpdatedAt time.Time      `json:"public_holiday_updated_at" gorm:"type:timestamptz;default:now();autoUpdateTime;column:public_holiday_updated_at"`
	PublicHolidayDeletedAt gorm.DeletedAt `json:"public_holiday_deleted_at" gorm:"column:public_holiday_deleted_at"`
}

func (PublicHolidayModel) TableName() string { return "public_holidays" }

/* =======================================================
   TeachingBreakModel — jeda mengajar non-libur-nasional
   (ujian, libur semester, acara sekolah, dll.)
   ======================================================= */

type BreakType string

const (
	BreakTypeHoliday  BreakType = "holiday" // libur internal lembaga
	BreakTypeTermGap  BreakType = "term_gap"
	BreakTypeExamWeek BreakType = "exam_week"
	BreakTypeEvent    BreakType = "event"
)

type TeachingBreakModel struct {
	// PK
	TeachingBreakID uuid.UUID `json:"teaching_break_id" gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:teaching_break_id"`

	// Tanggal rentang (wajib, inklusif)
	TeachingBreakStartDate time.Time `json:"teaching_break_start_date" gorm:"type:date;not null;column:teaching_break_start_date"`
	TeachingBreakEndDate   time.Time `json:"teaching_break_end_date"   gorm:"type:date;not null;column:teaching_break_end_date"`

	// Judul, tipe & catatan
	TeachingBreakTitle string    `json:"teaching_break_title"           gorm:"type:varchar(200);not null;column:teaching_break_title"`
	TeachingBreakType  BreakType `json:"teaching_break_type"            gorm:"type:text;not null;default:'term_gap';column:teaching_break_type"`
	TeachingBreakNotes *string   `json:"teaching_break_notes,omitempty" gorm:"type:text;column:teaching_break_notes"`

	// Status
	TeachingBreakIsActive bool `json:"teaching_break_is_active" gorm:"type:boolean;not null;default:true;column:teaching_break_is_active"`

	// Audit
	TeachingBreakCreatedAt time.Time      `json:"teaching_break_created_at" gorm:"type:timestamptz;not null;default:now();autoCreateTime;column:teaching_break_created_at"`
	TeachingBreakUpdatedAt time.Time      `json:"teaching_break_updated_at" gorm:"type:timestamptz;default:now();autoUpdateTime;column:teaching_break_updated_at"`
	TeachingBreakDeletedAt gorm.DeletedAt `json:"teaching_break_deleted_at" gorm:"column:teaching_break_deleted_at"`
}

func (TeachingBreakModel) TableName() string { return "teaching_breaks" }

/* =======================================================
   NonTeachingDay — proyeksi read-only per hari (gabungan
   holiday + break yang sudah di-expand)
   ======================================================= */

type NonTeachingDayKind string

const (
	NonTeachingPublicHoliday NonTeachingDayKind = "public_holiday"
	NonTeachingTeachingBreak NonTeachingDayKind = "teaching_break"
)

type NonTeachingDay struct {
	Date      time.Time          `json:"date"`
	Kind      NonTeachingDayKind `json:"kind"`
	Name      string             `json:"name"`
	BreakType BreakType          `json:"break_type,omitempty"`
	Notes     *string            `json:"notes,omitempty"`
}
