// internals/features/lessons/dto/generate_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	model "tutorku_backend/internals/features/lessons/model"
	service "tutorku_backend/internals/features/lessons/service"
)

/* =========================================================
   Bulk generate
   ========================================================= */

type GenerateLessonsRequest struct {
	ClassID        string  `json:"class_id"        validate:"required,uuid"`
	GenerationMode string  `json:"generation_mode" validate:"required,oneof=custom_range month semester full_year"`
	StartDate      *string `json:"start_date"      validate:"omitempty,datetime=2006-01-02"`
	EndDate        *string `json:"end_date"        validate:"omitempty,datetime=2006-01-02"`

	// periode rujukan untuk mode semester/full_year; kosong = periode aktif
	AcademicYearID *string `json:"academic_year_id" validate:"omitempty,uuid"`
	SemesterID     *string `json:"semester_id"      validate:"omitempty,uuid"`

	RespectHolidays *bool `json:"respect_holidays" validate:"omitempty"`
	RespectBreaks   *bool `json:"respect_breaks"   validate:"omitempty"`
}

func (r GenerateLessonsRequest) ToOptions() (service.GenerateOptions, bool) {
	classID, err := uuid.Parse(strings.TrimSpace(r.ClassID))
	if err != nil {
		return service.GenerateOptions{}, false
	}
	opt := service.GenerateOptions{
		ClassID:         classID,
		Mode:            model.GenerationMode(strings.TrimSpace(r.GenerationMode)),
		RespectHolidays: true,
		RespectBreaks:   true,
	}
	if r.RespectHolidays != nil {
		opt.RespectHolidays = *r.RespectHolidays
	}
	if r.RespectBreaks != nil {
		opt.RespectBreaks = *r.RespectBreaks
	}
	if r.StartDate != nil {
		t, ok := parseDateYYYYMMDD(*r.StartDate)
		if !ok {
			return service.GenerateOptions{}, false
		}
		opt.StartDate = &t
	}
	if r.EndDate != nil {
		t, ok := parseDateYYYYMMDD(*r.EndDate)
		if !ok {
			return service.GenerateOptions{}, false
		}
		opt.EndDate = &t
	}
	if r.AcademicYearID != nil {
		id, err := uuid.Parse(strings.TrimSpace(*r.AcademicYearID))
		if err != nil {
			return service.GenerateOptions{}, false
		}
		opt.AcademicYearID = &id
	}
	if r.SemesterID != nil {
		id, err := uuid.Parse(strings.TrimSpace(*r.SemesterID))
		if err != nil {
			return service.GenerateOptions{}, false
		}
		opt.SemesterID = &id
	}
	return opt, true
}

type SkippedLessonResponse struct {
	Date       string             `json:"date"`
	DayOfWeek  int                `json:"day_of_week"`
	StartTime  string             `json:"start_time"`
	EndTime    string             `json:"end_time"`
	SkipReason service.SkipReason `json:"skip_reason"`

	BreakType *string            `json:"break_type,omitempty"`
	BreakName *string            `json:"break_name,omitempty"`
	Notes     *string            `json:"notes,omitempty"`
	Conflicts []ConflictResponse `json:"conflicts,omitempty"`
}

type GenerationResultResponse struct {
	RunID     uuid.UUID `json:"run_id"`
	ClassID   uuid.UUID `json:"class_id"`
	StartDate string    `json:"start_date"`
	EndDate   string    `json:"end_date"`

	GeneratedCount     int `json:"generated_count"`
	SkippedCount       int `json:"skipped_count"`
	PublicHolidaySkips int `json:"public_holiday_skips"`
	TeachingBreakSkips int `json:"teaching_break_skips"`
	ConflictCount      int `json:"conflict_count"`

	Generated []LessonResponse        `json:"generated"`
	Skipped   []SkippedLessonResponse `json:"skipped"`
}

func FromGenerationResult(res *service.GenerationResult) GenerationResultResponse {
	out := GenerationResultResponse{
		RunID:              res.RunID,
		ClassID:            res.ClassID,
		StartDate:          fmtDate(res.StartDate),
		EndDate:            fmtDate(res.EndDate),
		GeneratedCount:     res.GeneratedCount,
		SkippedCount:       res.SkippedCount,
		PublicHolidaySkips: res.PublicHolidaySkips,
		TeachingBreakSkips: res.TeachingBreakSkips,
		ConflictCount:      res.ConflictCount,
		Generated:          FromLessonModels(res.Generated),
		Skipped:            make([]SkippedLessonResponse, 0, len(res.Skipped)),
	}
	for _, sk := range res.Skipped {
		row := SkippedLessonResponse{
			Date:       fmtDate(sk.Date),
			DayOfWeek:  sk.DayOfWeek,
			StartTime:  fmtTOD(sk.StartTime),
			EndTime:    fmtTOD(sk.EndTime),
			SkipReason: sk.SkipReason,
		}
		if bd := sk.Details.BreakDetails; bd != nil {
			bt := string(bd.BreakType)
			name := bd.Name
			row.BreakType = &bt
			row.BreakName = &name
			row.Notes = bd.Notes
		}
		for _, c := range sk.Details.Conflicts {
			row.Conflicts = append(row.Conflicts, fromConflict(c))
		}
		out.Skipped = append(out.Skipped, row)
	}
	return out
}

type GenerationRunResponse struct {
	RunID     uuid.UUID            `json:"run_id"`
	ClassID   uuid.UUID            `json:"class_id"`
	Mode      model.GenerationMode `json:"mode"`
	StartDate string               `json:"start_date"`
	EndDate   string               `json:"end_date"`

	GeneratedCount     int `json:"generated_count"`
	SkippedCount       int `json:"skipped_count"`
	PublicHolidaySkips int `json:"public_holiday_skips"`
	TeachingBreakSkips int `json:"teaching_break_skips"`
	ConflictCount      int `json:"conflict_count"`

	SkippedDetails interface{} `json:"skipped_details,omitempty"`
	CreatedAt      time.Time   `json:"created_at"`
}

func FromGenerationRunModel(m *model.GenerationRunModel, details interface{}) GenerationRunResponse {
	return GenerationRunResponse{
		RunID:              m.GenerationRunID,
		ClassID:            m.GenerationRunClassID,
		Mode:               m.GenerationRunMode,
		StartDate:          fmtDate(m.GenerationRunStartDate),
		EndDate:            fmtDate(m.GenerationRunEndDate),
		GeneratedCount:     m.GenerationRunGeneratedCount,
		SkippedCount:       m.GenerationRunSkippedCount,
		PublicHolidaySkips: m.GenerationRunHolidaySkips,
		TeachingBreakSkips: m.GenerationRunTeachingBreakSkips,
		ConflictCount:      m.GenerationRunConflictCount,
		SkippedDetails:     details,
		CreatedAt:          m.GenerationRunCreatedAt,
	}
}
