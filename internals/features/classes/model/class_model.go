// file: internals/features/classes/model/class_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

/* =======================================================
   ClassModel — map ke tabel classes
   Pola mingguan sederhana: satu slot per pekan
   (day_of_week 1..7, ISO; 1=Senin)
   ======================================================= */

type ClassModel struct {
	// PK
	ClassID uuid.UUID `json:"class_id" gorm:"type:uuid;primaryKey;column:class_id;default:gen_random_uuid()"`

	// Identitas
	ClassName string `json:"class_name" gorm:"type:varchar(160);not null;column:class_name"`

	// Resource tetap kelas (di-snapshot ke lesson saat dibuat)
	ClassTeacherID   uuid.UUID `json:"class_teacher_id"   gorm:"type:uuid;not null;column:class_teacher_id"`
	ClassClassroomID uuid.UUID `json:"class_classroom_id" gorm:"type:uuid;not null;column:class_classroom_id"`

	// Pola berulang mingguan
	ClassDayOfWeek int       `json:"class_day_of_week" gorm:"type:int;not null;column:class_day_of_week"` // 1..7
	ClassStartTime time.Time `json:"class_start_time"  gorm:"type:time;not null;column:class_start_time"`
	ClassEndTime   time.Time `json:"class_end_time"    gorm:"type:time;not null;column:class_end_time"`

	// Roster siswa (denormalized; uuid dalam bentuk text[])
	ClassStudentIDs pq.StringArray `json:"class_student_ids" gorm:"type:text[];column:class_student_ids"`

	// Status
	ClassIsActive bool `json:"class_is_active" gorm:"type:boolean;not null;default:true;column:class_is_active"`

	// Timestamps eksplisit (auto create/update)
	ClassCreatedAt time.Time      `json:"class_created_at" gorm:"column:class_created_at;not null;autoCreateTime"`
	ClassUpdatedAt time.Time      `json:"class_updated_at" gorm:"column:class_updated_at;not null;autoUpdateTime"`
	ClassDeletedAt gorm.DeletedAt `json:"class_deleted_at" gorm:"column:class_deleted_at;index"`
}

func (ClassModel) TableName() string {
	return "classes"
}

// HasStudentOverlap: apakah roster dua kelas beririsan.
func (c *ClassModel) HasStudentOverlap(other *ClassModel) bool {
	if c == nil || other == nil {
		return false
	}
	set := make(map[string]struct{}, len(c.ClassStudentIDs))
	for _, s := range c.ClassStudentIDs {
		set[s] = struct{}{}
	}
	for _, s := range other.ClassStudentIDs {
		if _, ok := set[s]; ok {
			return true
		}
	}
	return false
}
