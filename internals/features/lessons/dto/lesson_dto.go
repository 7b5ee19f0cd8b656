// internals/features/lessons/dto/lesson_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	model "tutorku_backend/internals/features/lessons/model"
)

/* =========================================================
   Helpers
   ========================================================= */

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func parseDateYYYYMMDD(s string) (time.Time, bool) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

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

func fmtDate(t time.Time) string { return t.Format("2006-01-02") }
func fmtTOD(t time.Time) string  { return t.Format("15:04") }

/* =========================================================
   1) REQUESTS
   ========================================================= */

type CreateLessonRequest struct {
	LessonClassID   string  `json:"lesson_class_id"   validate:"required,uuid"`
	LessonDate      string  `json:"lesson_date"       validate:"required,datetime=2006-01-02"`
	LessonStartTime string  `json:"lesson_start_time" validate:"required"`
	LessonEndTime   string  `json:"lesson_end_time"   validate:"required"`
	LessonNotes     *string `json:"lesson_notes"      validate:"omitempty,max=2000"`
}

func (r CreateLessonRequest) Parse() (classID uuid.UUID, date, start, end time.Time, notes *string, ok bool) {
	classID, err := uuid.Parse(strings.TrimSpace(r.LessonClassID))
	if err != nil {
		return uuid.Nil, time.Time{}, time.Time{}, time.Time{}, nil, false
	}
	date, okD := parseDateYYYYMMDD(r.LessonDate)
	start, okS := parseTOD(r.LessonStartTime)
	end, okE := parseTOD(r.LessonEndTime)
	if !okD || !okS || !okE {
		return uuid.Nil, time.Time{}, time.Time{}, time.Time{}, nil, false
	}
	return classID, date, start, end, trimPtr(r.LessonNotes), true
}

type CancelLessonRequest struct {
	LessonCancellationReason string `json:"lesson_cancellation_reason" validate:"required,min=5,max=500"`

	// opsional: langsung jadwalkan makeup di slot ini
	MakeupDate      *string `json:"makeup_date"       validate:"omitempty,datetime=2006-01-02"`
	MakeupStartTime *string `json:"makeup_start_time" validate:"omitempty"`
	MakeupEndTime   *string `json:"makeup_end_time"   validate:"omitempty"`
}

func (r CancelLessonRequest) HasMakeupSlot() bool {
	return r.MakeupDate != nil && r.MakeupStartTime != nil && r.MakeupEndTime != nil
}

func (r CancelLessonRequest) ParseMakeupSlot() (date, start, end time.Time, ok bool) {
	if !r.HasMakeupSlot() {
		return time.Time{}, time.Time{}, time.Time{}, false
	}
	date, okD := parseDateYYYYMMDD(*r.MakeupDate)
	start, okS := parseTOD(*r.MakeupStartTime)
	end, okE := parseTOD(*r.MakeupEndTime)
	if !okD || !okS || !okE {
		return time.Time{}, time.Time{}, time.Time{}, false
	}
	return date, start, end, true
}

type ConductLessonRequest struct {
	LessonNotes *string `json:"lesson_notes" validate:"omitempty,max=2000"`
}

type RescheduleLessonRequest struct {
	LessonDate      string  `json:"lesson_date"       validate:"required,datetime=2006-01-02"`
	LessonStartTime string  `json:"lesson_start_time" validate:"required"`
	LessonEndTime   string  `json:"lesson_end_time"   validate:"required"`
	Reason          *string `json:"reason"            validate:"omitempty,max=500"`
}

func (r RescheduleLessonRequest) Parse() (date, start, end time.Time, ok bool) {
	date, okD := parseDateYYYYMMDD(r.LessonDate)
	start, okS := parseTOD(r.LessonStartTime)
	end, okE := parseTOD(r.LessonEndTime)
	if !okD || !okS || !okE {
		return time.Time{}, time.Time{}, time.Time{}, false
	}
	return date, start, end, true
}

type NoShowLessonRequest struct {
	LessonNotes *string `json:"lesson_notes" validate:"omitempty,max=2000"`
}

type CreateMakeupRequest struct {
	MakeupDate      string  `json:"makeup_date"       validate:"required,datetime=2006-01-02"`
	MakeupStartTime string  `json:"makeup_start_time" validate:"required"`
	MakeupEndTime   string  `json:"makeup_end_time"   validate:"required"`
	TeacherID       *string `json:"teacher_id"        validate:"omitempty,uuid"`
	ClassroomID     *string `json:"classroom_id"      validate:"omitempty,uuid"`
	LessonNotes     *string `json:"lesson_notes"      validate:"omitempty,max=2000"`
}

func (r CreateMakeupRequest) Parse() (date, start, end time.Time, teacherID, classroomID *uuid.UUID, ok bool) {
	date, okD := parseDateYYYYMMDD(r.MakeupDate)
	start, okS := parseTOD(r.MakeupStartTime)
	end, okE := parseTOD(r.MakeupEndTime)
	if !okD || !okS || !okE {
		return time.Time{}, time.Time{}, time.Time{}, nil, nil, false
	}
	if r.TeacherID != nil {
		id, err := uuid.Parse(strings.TrimSpace(*r.TeacherID))
		if err != nil {
			return time.Time{}, time.Time{}, time.Time{}, nil, nil, false
		}
		teacherID = &id
	}
	if r.ClassroomID != nil {
		id, err := uuid.Parse(strings.TrimSpace(*r.ClassroomID))
		if err != nil {
			return time.Time{}, time.Time{}, time.Time{}, nil, nil, false
		}
		classroomID = &id
	}
	return date, start, end, teacherID, classroomID, true
}

/* =========================================================
   2) LIST QUERY
   ========================================================= */

type ListLessonQuery struct {
	Limit   *int    `query:"limit"    validate:"omitempty,min=1,max=200"`
	Offset  *int    `query:"offset"   validate:"omitempty,min=0"`
	ClassID *string `query:"class_id" validate:"omitempty,uuid"`
	Status  *string `query:"status"   validate:"omitempty,oneof=scheduled conducted cancelled makeup no_show"`

	DateFrom *string `query:"date_from" validate:"omitempty,datetime=2006-01-02"`
	DateTo   *string `query:"date_to"   validate:"omitempty,datetime=2006-01-02"`
}

/* =========================================================
   3) RESPONSE
   ========================================================= */

type LessonResponse struct {
	LessonID      uuid.UUID `json:"lesson_id"`
	LessonClassID uuid.UUID `json:"lesson_class_id"`

	LessonDate      string `json:"lesson_date"`
	LessonStartTime string `json:"lesson_start_time"`
	LessonEndTime   string `json:"lesson_end_time"`

	LessonTeacherID   uuid.UUID `json:"lesson_teacher_id"`
	LessonClassroomID uuid.UUID `json:"lesson_classroom_id"`

	LessonStatus           model.LessonStatus     `json:"lesson_status"`
	LessonGenerationSource model.GenerationSource `json:"lesson_generation_source"`

	LessonMakeupLessonID   *uuid.UUID `json:"lesson_makeup_lesson_id,omitempty"`
	LessonOriginalLessonID *uuid.UUID `json:"lesson_original_lesson_id,omitempty"`

	LessonNotes              *string    `json:"lesson_notes,omitempty"`
	LessonCancellationReason *string    `json:"lesson_cancellation_reason,omitempty"`
	LessonConductedAt        *time.Time `json:"lesson_conducted_at,omitempty"`

	LessonCreatedAt time.Time `json:"lesson_created_at"`
	LessonUpdatedAt time.Time `json:"lesson_updated_at"`
}

func FromLessonModel(m *model.LessonModel) LessonResponse {
	return LessonResponse{
		LessonID:                 m.LessonID,
		LessonClassID:            m.LessonClassID,
		LessonDate:               fmtDate(m.LessonDate),
		LessonStartTime:          fmtTOD(m.LessonStartTime),
		LessonEndTime:            fmtTOD(m.LessonEndTime),
		LessonTeacherID:          m.LessonTeacherID,
		LessonClassroomID:        m.LessonClassroomID,
		LessonStatus:             m.LessonStatus,
		LessonGenerationSource:   m.LessonGenerationSource,
		LessonMakeupLessonID:     m.LessonMakeupLessonID,
		LessonOriginalLessonID:   m.LessonOriginalLessonID,
		LessonNotes:              m.LessonNotes,
		LessonCancellationReason: m.LessonCancellationReason,
		LessonConductedAt:        m.LessonConductedAt,
		LessonCreatedAt:          m.LessonCreatedAt,
		LessonUpdatedAt:          m.LessonUpdatedAt,
	}
}

func FromLessonModels(rows []model.LessonModel) []LessonResponse {
	out := make([]LessonResponse, 0, len(rows))
	for i := range rows {
		out = append(out, FromLessonModel(&rows[i]))
	}
	return out
}
