// internals/features/classes/dto/class_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	model "tutorku_backend/internals/features/classes/model"
)

/* =========================================================
   Helpers
   ========================================================= */

// "15:04" atau "15:04:05"; dipetakan ke tanggal fix 2000-01-01
func parseTOD(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"15:04", "15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(2000, 1, 1, t.Hour(), t.Minute(), t.Second(), 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

func fmtTOD(t time.Time) string { return t.Format("15:04") }

/* =========================================================
   1) REQUESTS
   ========================================================= */

type CreateClassRequest struct {
	ClassName        string   `json:"class_name"         validate:"required,max=160"`
	ClassTeacherID   string   `json:"class_teacher_id"   validate:"required,uuid"`
	ClassClassroomID string   `json:"class_classroom_id" validate:"required,uuid"`
	ClassDayOfWeek   int      `json:"class_day_of_week"  validate:"required,min=1,max=7"`
	ClassStartTime   string   `json:"class_start_time"   validate:"required"`
	ClassEndTime     string   `json:"class_end_time"     validate:"required"`
	ClassStudentIDs  []string `json:"class_student_ids"  validate:"omitempty,dive,uuid"`
}

func (r CreateClassRequest) ToModel() (model.ClassModel, bool) {
	teacherID, err1 := uuid.Parse(strings.TrimSpace(r.ClassTeacherID))
	classroomID, err2 := uuid.Parse(strings.TrimSpace(r.ClassClassroomID))
	start, okS := parseTOD(r.ClassStartTime)
	end, okE := parseTOD(r.ClassEndTime)
	if err1 != nil || err2 != nil || !okS || !okE || !end.After(start) {
		return model.ClassModel{}, false
	}
	return model.ClassModel{
		ClassName:        strings.TrimSpace(r.ClassName),
		ClassTeacherID:   teacherID,
		ClassClassroomID: classroomID,
		ClassDayOfWeek:   r.ClassDayOfWeek,
		ClassStartTime:   start,
		ClassEndTime:     end,
		ClassStudentIDs:  pq.StringArray(r.ClassStudentIDs),
		ClassIsActive:    true,
	}, true
}

// Update (partial)
type UpdateClassRequest struct {
	ClassName        *string   `json:"class_name"         validate:"omitempty,max=160"`
	ClassTeacherID   *string   `json:"class_teacher_id"   validate:"omitempty,uuid"`
	ClassClassroomID *string   `json:"class_classroom_id" validate:"omitempty,uuid"`
	ClassDayOfWeek   *int      `json:"class_day_of_week"  validate:"omitempty,min=1,max=7"`
	ClassStartTime   *string   `json:"class_start_time"   validate:"omitempty"`
	ClassEndTime     *string   `json:"class_end_time"     validate:"omitempty"`
	ClassStudentIDs  *[]string `json:"class_student_ids"  validate:"omitempty,dive,uuid"`
	ClassIsActive    *bool     `json:"class_is_active"    validate:"omitempty"`
}

func (r UpdateClassRequest) Apply(m *model.ClassModel) bool {
	if r.ClassName != nil {
		m.ClassName = strings.TrimSpace(*r.ClassName)
	}
	if r.ClassTeacherID != nil {
		id, err := uuid.Parse(strings.TrimSpace(*r.ClassTeacherID))
		if err != nil {
			return false
		}
		m.ClassTeacherID = id
	}
	if r.ClassClassroomID != nil {
		id, err := uuid.Parse(strings.TrimSpace(*r.ClassClassroomID))
		if err != nil {
			return false
		}
		m.ClassClassroomID = id
	}
	if r.ClassDayOfWeek != nil {
		m.ClassDayOfWeek = *r.ClassDayOfWeek
	}
	if r.ClassStartTime != nil {
		t, ok := parseTOD(*r.ClassStartTime)
		if !ok {
			return false
		}
		m.ClassStartTime = t
	}
	if r.ClassEndTime != nil {
		t, ok := parseTOD(*r.ClassEndTime)
		if !ok {
			return false
		}
		m.ClassEndTime = t
	}
	if r.ClassStudentIDs != nil {
		m.ClassStudentIDs = pq.StringArray(*r.ClassStudentIDs)
	}
	if r.ClassIsActive != nil {
		m.ClassIsActive = *r.ClassIsActive
	}
	return m.ClassEndTime.After(m.ClassStartTime)
}

/* =========================================================
   2) RESPONSE
   ========================================================= */

type ClassResponse struct {
	ClassID          uuid.UUID `json:"class_id"`
	ClassName        string    `json:"class_name"`
	ClassTeacherID   uuid.UUID `json:"class_teacher_id"`
	ClassClassroomID uuid.UUID `json:"class_classroom_id"`
	ClassDayOfWeek   int       `json:"class_day_of_week"`
	ClassStartTime   string    `json:"class_start_time"`
	ClassEndTime     string    `json:"class_end_time"`
	ClassStudentIDs  []string  `json:"class_student_ids"`
	ClassIsActive    bool      `json:"class_is_active"`
	ClassCreatedAt   time.Time `json:"class_created_at"`
	ClassUpdatedAt   time.Time `json:"class_updated_at"`
}

func FromClassModel(m *model.ClassModel) ClassResponse {
	return ClassResponse{
		ClassID:          m.ClassID,
		ClassName:        m.ClassName,
		ClassTeacherID:   m.ClassTeacherID,
		ClassClassroomID: m.ClassClassroomID,
		ClassDayOfWeek:   m.ClassDayOfWeek,
		ClassStartTime:   fmtTOD(m.ClassStartTime),
		ClassEndTime:     fmtTOD(m.ClassEndTime),
		ClassStudentIDs:  []string(m.ClassStudentIDs),
		ClassIsActive:    m.ClassIsActive,
		ClassCreatedAt:   m.ClassCreatedAt,
		ClassUpdatedAt:   m.ClassUpdatedAt,
	}
}

func FromClassModels(rows []model.ClassModel) []ClassResponse {
	out := make([]ClassResponse, 0, len(rows))
	for i := range rows {
		out = append(out, FromClassModel(&rows[i]))
	}
	return out
}
