// internals/features/academics/dto/academic_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	model "tutorku_backend/internals/features/academics/model"
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

func fmtDate(t time.Time) string { return t.Format("2006-01-02") }

/* =========================================================
   Academic year
   ========================================================= */

type CreateAcademicYearRequest struct {
	AcademicYearName      string `json:"academic_year_name"       validate:"required,max=80"`
	AcademicYearStartDate string `json:"academic_year_start_date" validate:"required,datetime=2006-01-02"`
	AcademicYearEndDate   string `json:"academic_year_end_date"   validate:"required,datetime=2006-01-02"`
	AcademicYearIsActive  *bool  `json:"academic_year_is_active"  validate:"omitempty"`
}

func (r CreateAcademicYearRequest) ToModel() (model.AcademicYearModel, bool) {
	start, okS := parseDateYYYYMMDD(r.AcademicYearStartDate)
	end, okE := parseDateYYYYMMDD(r.AcademicYearEndDate)
	if !okS || !okE || end.Before(start) {
		return model.AcademicYearModel{}, false
	}
	isActive := true
	if r.AcademicYearIsActive != nil {
		isActive = *r.AcademicYearIsActive
	}
	return model.AcademicYearModel{
		AcademicYearName:      strings.TrimSpace(r.AcademicYearName),
		AcademicYearStartDate: start,
		AcademicYearEndDate:   end,
		AcademicYearIsActive:  isActive,
	}, true
}

type AcademicYearResponse struct {
	AcademicYearID        uuid.UUID `json:"academic_year_id"`
	AcademicYearName      string    `json:"academic_year_name"`
	AcademicYearStartDate string    `json:"academic_year_start_date"`
	AcademicYearEndDate   string    `json:"academic_year_end_date"`
	AcademicYearIsActive  bool      `json:"academic_year_is_active"`
}

func FromAcademicYearModel(m *model.AcademicYearModel) AcademicYearResponse {
	return AcademicYearResponse{
		AcademicYearID:        m.AcademicYearID,
		AcademicYearName:      m.AcademicYearName,
		AcademicYearStartDate: fmtDate(m.AcademicYearStartDate),
		AcademicYearEndDate:   fmtDate(m.AcademicYearEndDate),
		AcademicYearIsActive:  m.AcademicYearIsActive,
	}
}

/* =========================================================
   Semester
   ========================================================= */

type CreateSemesterRequest struct {
	SemesterAcademicYearID string `json:"semester_academic_year_id" validate:"required,uuid"`
	SemesterName           string `json:"semester_name"             validate:"required,max=80"`
	SemesterStartDate      string `json:"semester_start_date"       validate:"required,datetime=2006-01-02"`
	SemesterEndDate        string `json:"semester_end_date"         validate:"required,datetime=2006-01-02"`
}

func (r CreateSemesterRequest) ToModel() (model.SemesterModel, bool) {
	yearID, err := uuid.Parse(strings.TrimSpace(r.SemesterAcademicYearID))
	start, okS := parseDateYYYYMMDD(r.SemesterStartDate)
	end, okE := parseDateYYYYMMDD(r.SemesterEndDate)
	if err != nil || !okS || !okE || end.Before(start) {
		return model.SemesterModel{}, false
	}
	return model.SemesterModel{
		SemesterAcademicYearID: yearID,
		SemesterName:           strings.TrimSpace(r.SemesterName),
		SemesterStartDate:      start,
		SemesterEndDate:        end,
	}, true
}

type SemesterResponse struct {
	SemesterID             uuid.UUID `json:"semester_id"`
	SemesterAcademicYearID uuid.UUID `json:"semester_academic_year_id"`
	SemesterName           string    `json:"semester_name"`
	SemesterStartDate      string    `json:"semester_start_date"`
	SemesterEndDate        string    `json:"semester_end_date"`
}

func FromSemesterModel(m *model.SemesterModel) SemesterResponse {
	return SemesterResponse{
		SemesterID:             m.SemesterID,
		SemesterAcademicYearID: m.SemesterAcademicYearID,
		SemesterName:           m.SemesterName,
		SemesterStartDate:      fmtDate(m.SemesterStartDate),
		SemesterEndDate:        fmtDate(m.SemesterEndDate),
	}
}

/* =========================================================
   Public holiday
   ========================================================= */

type CreatePublicHolidayRequest struct {
	PublicHolidayTitle             string  `json:"public_holiday_title"               validate:"required,max=200"`
	PublicHolidayStartDate         string  `json:"public_holiday_start_date"          validate:"required,datetime=2006-01-02"`
	PublicHolidayEndDate           string  `json:"public_holiday_end_date"            validate:"required,datetime=2006-01-02"`
	PublicHolidayReason            *string `json:"public_holiday_reason"              validate:"omitempty,max=500"`
	PublicHolidayIsRecurringYearly *bool   `json:"public_holiday_is_recurring_yearly" validate:"omitempty"`
}

func (r CreatePublicHolidayRequest) ToModel() (model.PublicHolidayModel, bool) {
	start, okS := parseDateYYYYMMDD(r.PublicHolidayStartDate)
	end, okE := parseDateYYYYMMDD(r.PublicHolidayEndDate)
	if !okS || !okE || end.Before(start) {
		return model.PublicHolidayModel{}, false
	}
	recurring := false
	if r.PublicHolidayIsRecurringYearly != nil {
		recurring = *r.PublicHolidayIsRecurringYearly
	}
	return model.PublicHolidayModel{
		PublicHolidayTitle:             strings.TrimSpace(r.PublicHolidayTitle),
		PublicHolidayStartDate:         start,
		PublicHolidayEndDate:           end,
		PublicHolidayReason:            trimPtr(r.PublicHolidayReason),
		PublicHolidayIsActive:          true,
		PublicHolidayIsRecurringYearly: recurring,
	}, true
}

type PublicHolidayResponse struct {
	PublicHolidayID                uuid.UUID `json:"public_holiday_id"`
	PublicHolidayTitle             string    `json:"public_holiday_title"`
	PublicHolidayStartDate         string    `json:"public_holiday_start_date"`
	PublicHolidayEndDate           string    `json:"public_holiday_end_date"`
	PublicHolidayReason            *string   `json:"public_holiday_reason,omitempty"`
	PublicHolidayIsActive          bool      `json:"public_holiday_is_active"`
	PublicHolidayIsRecurringYearly bool      `json:"public_holiday_is_recurring_yearly"`
}

func FromPublicHolidayModel(m *model.PublicHolidayModel) PublicHolidayResponse {
	return PublicHolidayResponse{
		PublicHolidayID:                m.PublicHolidayID,
		PublicHolidayTitle:             m.PublicHolidayTitle,
		PublicHolidayStartDate:         fmtDate(m.PublicHolidayStartDate),
		PublicHolidayEndDate:           fmtDate(m.PublicHolidayEndDate),
		PublicHolidayReason:            m.PublicHolidayReason,
		PublicHolidayIsActive:          m.PublicHolidayIsActive,
		PublicHolidayIsRecurringYearly: m.PublicHolidayIsRecurringYearly,
	}
}

/* =========================================================
   Teaching break
   ========================================================= */

type CreateTeachingBreakRequest struct {
	TeachingBreakTitle     string  `json:"teaching_break_title"      validate:"required,max=200"`
	TeachingBreakType      string  `json:"teaching_break_type"       validate:"omitempty,oneof=holiday term_gap exam_week event"`
	TeachingBreakStartDate string  `json:"teaching_break_start_date" validate:"required,datetime=2006-01-02"`
	TeachingBreakEndDate   string  `json:"teaching_break_end_date"   validate:"required,datetime=2006-01-02"`
	TeachingBreakNotes     *string `json:"teaching_break_notes"      validate:"omitempty,max=500"`
}

func (r CreateTeachingBreakRequest) ToModel() (model.TeachingBreakModel, bool) {
	start, okS := parseDateYYYYMMDD(r.TeachingBreakStartDate)
	end, okE := parseDateYYYYMMDD(r.TeachingBreakEndDate)
	if !okS || !okE || end.Before(start) {
		return model.TeachingBreakModel{}, false
	}
	bt := model.BreakTypeTermGap
	if v := strings.TrimSpace(r.TeachingBreakType); v != "" {
		bt = model.BreakType(v)
	}
	return model.TeachingBreakModel{
		TeachingBreakTitle:     strings.TrimSpace(r.TeachingBreakTitle),
		TeachingBreakType:      bt,
		TeachingBreakStartDate: start,
		TeachingBreakEndDate:   end,
		TeachingBreakNotes:     trimPtr(r.TeachingBreakNotes),
		TeachingBreakIsActive:  true,
	}, true
}

type TeachingBreakResponse struct {
	TeachingBreakID        uuid.UUID       `json:"teaching_break_id"`
	TeachingBreakTitle     string          `json:"teaching_break_title"`
	TeachingBreakType      model.BreakType `json:"teaching_break_type"`
	TeachingBreakStartDate string          `json:"teaching_break_start_date"`
	TeachingBreakEndDate   string          `json:"teaching_break_end_date"`
	TeachingBreakNotes     *string         `json:"teaching_break_notes,omitempty"`
	TeachingBreakIsActive  bool            `json:"teaching_break_is_active"`
}

func FromTeachingBreakModel(m *model.TeachingBreakModel) TeachingBreakResponse {
	return TeachingBreakResponse{
		TeachingBreakID:        m.TeachingBreakID,
		TeachingBreakTitle:     m.TeachingBreakTitle,
		TeachingBreakType:      m.TeachingBreakType,
		TeachingBreakStartDate: fmtDate(m.TeachingBreakStartDate),
		TeachingBreakEndDate:   fmtDate(m.TeachingBreakEndDate),
		TeachingBreakNotes:     m.TeachingBreakNotes,
		TeachingBreakIsActive:  m.TeachingBreakIsActive,
	}
}

/* =========================================================
   Non-teaching day projection
   ========================================================= */

type NonTeachingDayResponse struct {
	Date      string                   `json:"date"`
	Kind      model.NonTeachingDayKind `json:"kind"`
	Name      string                   `json:"name"`
	BreakType *string                  `json:"break_type,omitempty"`
	Notes     *string                  `json:"notes,omitempty"`
}

func FromNonTeachingDays(days []model.NonTeachingDay) []NonTeachingDayResponse {
	out := make([]NonTeachingDayResponse, 0, len(days))
	for _, day := range days {
		row := NonTeachingDayResponse{
			Date:  fmtDate(day.Date),
			Kind:  day.Kind,
			Name:  day.Name,
			Notes: day.Notes,
		}
		if day.BreakType != "" {
			bt := string(day.BreakType)
			row.BreakType = &bt
		}
		out = append(out, row)
	}
	return out
}
