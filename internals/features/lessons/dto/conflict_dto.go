// internals/features/lessons/dto/conflict_dto.go
package dto

import (
	"strings"

	"github.com/google/uuid"

	service "tutorku_backend/internals/features/lessons/service"
)

/* =========================================================
   Cek bentrok spekulatif (query murni, boleh dipanggil
   berulang oleh UI yang men-debounce)
   ========================================================= */

type CheckConflictRequest struct {
	ClassID         string  `json:"class_id"          validate:"required,uuid"`
	LessonDate      string  `json:"lesson_date"       validate:"required,datetime=2006-01-02"`
	LessonStartTime string  `json:"lesson_start_time" validate:"required"`
	LessonEndTime   string  `json:"lesson_end_time"   validate:"required"`
	ExcludeLessonID *string `json:"exclude_lesson_id" validate:"omitempty,uuid"`
}

func (r CheckConflictRequest) ToCandidate() (service.ConflictCandidate, bool) {
	classID, err := uuid.Parse(strings.TrimSpace(r.ClassID))
	if err != nil {
		return service.ConflictCandidate{}, false
	}
	date, okD := parseDateYYYYMMDD(r.LessonDate)
	start, okS := parseTOD(r.LessonStartTime)
	end, okE := parseTOD(r.LessonEndTime)
	if !okD || !okS || !okE {
		return service.ConflictCandidate{}, false
	}
	c := service.ConflictCandidate{
		ClassID:   classID,
		Date:      date,
		StartTime: start,
		EndTime:   end,
	}
	if r.ExcludeLessonID != nil {
		id, err := uuid.Parse(strings.TrimSpace(*r.ExcludeLessonID))
		if err != nil {
			return service.ConflictCandidate{}, false
		}
		c.ExcludeLessonID = &id
	}
	return c, true
}

type ConflictResponse struct {
	Kind        service.ConflictKind `json:"kind"`
	LessonID    uuid.UUID            `json:"lesson_id"`
	ClassID     uuid.UUID            `json:"class_id"`
	ClassName   string               `json:"class_name"`
	TeacherID   uuid.UUID            `json:"teacher_id"`
	ClassroomID uuid.UUID            `json:"classroom_id"`
	Date        string               `json:"date"`
	StartTime   string               `json:"start_time"`
	EndTime     string               `json:"end_time"`
	Status      string               `json:"status"`
}

type SlotSuggestionResponse struct {
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type CheckConflictResponse struct {
	HasConflicts bool                     `json:"has_conflicts"`
	Conflicts    []ConflictResponse       `json:"conflicts"`
	Suggestions  []SlotSuggestionResponse `json:"suggestions"`
}

func FromConflictReport(rep *service.ConflictReport) CheckConflictResponse {
	out := CheckConflictResponse{
		HasConflicts: rep.HasConflicts(),
		Conflicts:    make([]ConflictResponse, 0, len(rep.Conflicts)),
		Suggestions:  make([]SlotSuggestionResponse, 0, len(rep.Suggestions)),
	}
	for _, c := range rep.Conflicts {
		out.Conflicts = append(out.Conflicts, fromConflict(c))
	}
	for _, s := range rep.Suggestions {
		out.Suggestions = append(out.Suggestions, SlotSuggestionResponse{
			Date:      fmtDate(s.Date),
			StartTime: fmtTOD(s.StartTime),
			EndTime:   fmtTOD(s.EndTime),
		})
	}
	return out
}

func fromConflict(c service.Conflict) ConflictResponse {
	return ConflictResponse{
		Kind:        c.Kind,
		LessonID:    c.LessonID,
		ClassID:     c.ClassID,
		ClassName:   c.ClassName,
		TeacherID:   c.TeacherID,
		ClassroomID: c.ClassroomID,
		Date:        fmtDate(c.Date),
		StartTime:   fmtTOD(c.StartTime),
		EndTime:     fmtTOD(c.EndTime),
		Status:      string(c.Status),
	}
}
