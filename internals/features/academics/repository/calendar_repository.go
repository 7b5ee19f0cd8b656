// file: internals/features/academics/repository/calendar_repository.go
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	m "tutorku_backend/internals/features/academics/model"
)

var ErrNoActiveTerm = errors.New("no active academic term covers the requested date")

type GormCalendarRepository struct {
	DB *gorm.DB
}

func NewGormCalendarRepository(db *gorm.DB) *GormCalendarRepository {
	return &GormCalendarRepository{DB: db}
}

// NonTeachingDays memuat semua hari non-KBM dalam rentang [from, to], maksimal
// satu entri per (tanggal, jenis). Tanggal yang sekaligus libur nasional DAN
// jeda KBM muncul dua kali supaya konsumen bisa menyaring per jenis. Libur
// nasional yang berulang tahunan di-expand ke setiap tahun di rentang.
func (r *GormCalendarRepository) NonTeachingDays(ctx context.Context, from, to time.Time) ([]m.NonTeachingDay, error) {
	from = startOfDay(from)
	to = startOfDay(to)
	if to.Before(from) {
		return nil, nil
	}

	holidayByDate := map[string]m.NonTeachingDay{}
	breakByDate := map[string]m.NonTeachingDay{}

	var breaks []m.TeachingBreakModel
	if err := r.DB.WithContext(ctx).
		Where("teaching_break_is_active = TRUE").
		Where("teaching_break_start_date <= ? AND teaching_break_end_date >= ?", to, from).
		Find(&breaks).Error; err != nil {
		return nil, err
	}
	for i := range breaks {
		b := &breaks[i]
		for d := maxDate(startOfDay(b.TeachingBreakStartDate), from); !d.After(minDate(startOfDay(b.TeachingBreakEndDate), to)); d = d.AddDate(0, 0, 1) {
			breakByDate[dateKey(d)] = m.NonTeachingDay{
				Date:      d,
				Kind:      m.NonTeachingTeachingBreak,
				Name:      b.TeachingBreakTitle,
				BreakType: b.TeachingBreakType,
				Notes:     b.TeachingBreakNotes,
			}
		}
	}

	var holidays []m.PublicHolidayModel
	if err := r.DB.WithContext(ctx).
		Where("public_holiday_is_active = TRUE").
		Find(&holidays).Error; err != nil {
		return nil, err
	}
	for i := range holidays {
		h := &holidays[i]
		for _, span := range holidaySpans(h, from.Year(), to.Year()) {
			for d := maxDate(span.start, from); !d.After(minDate(span.end, to)); d = d.AddDate(0, 0, 1) {
				holidayByDate[dateKey(d)] = m.NonTeachingDay{
					Date: d,
					Kind: m.NonTeachingPublicHoliday,
					Name: h.PublicHolidayTitle,
				}
			}
		}
	}

	out := make([]m.NonTeachingDay, 0, len(holidayByDate)+len(breakByDate))
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if day, ok := holidayByDate[dateKey(d)]; ok {
			out = append(out, day)
		}
		if day, ok := breakByDate[dateKey(d)]; ok {
			out = append(out, day)
		}
	}
	return out, nil
}

// AcademicYearBounds mengembalikan rentang tahun ajaran yang mencakup `at`.
func (r *GormCalendarRepository) AcademicYearBounds(ctx context.Context, at time.Time) (time.Time, time.Time, error) {
	var row m.AcademicYearModel
	err := r.DB.WithContext(ctx).
		Where("academic_year_is_active = TRUE").
		Where("academic_year_start_date <= ? AND academic_year_end_date >= ?", at, at).
		Order("academic_year_start_date DESC").
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return time.Time{}, time.Time{}, ErrNoActiveTerm
	}
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return startOfDay(row.AcademicYearStartDate), startOfDay(row.AcademicYearEndDate), nil
}

// SemesterBounds mengembalikan rentang semester yang mencakup `at`.
func (r *GormCalendarRepository) SemesterBounds(ctx context.Context, at time.Time) (time.Time, time.Time, error) {
	var row m.SemesterModel
	err := r.DB.WithContext(ctx).
		Where("semester_start_date <= ? AND semester_end_date >= ?", at, at).
		Order("semester_start_date DESC").
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return time.Time{}, time.Time{}, ErrNoActiveTerm
	}
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return startOfDay(row.SemesterStartDate), startOfDay(row.SemesterEndDate), nil
}

// AcademicYearBoundsByID mengembalikan rentang tahun ajaran yang dirujuk.
func (r *GormCalendarRepository) AcademicYearBoundsByID(ctx context.Context, id uuid.UUID) (time.Time, time.Time, error) {
	var row m.AcademicYearModel
	err := r.DB.WithContext(ctx).
		Where("academic_year_id = ?", id).
		First(&row).Error
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return startOfDay(row.AcademicYearStartDate), startOfDay(row.AcademicYearEndDate), nil
}

// SemesterBoundsByID mengembalikan rentang semester yang dirujuk.
func (r *GormCalendarRepository) SemesterBoundsByID(ctx context.Context, id uuid.UUID) (time.Time, time.Time, error) {
	var row m.SemesterModel
	err := r.DB.WithContext(ctx).
		Where("semester_id = ?", id).
		First(&row).Error
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return startOfDay(row.SemesterStartDate), startOfDay(row.SemesterEndDate), nil
}

/* =========================
   Helpers
   ========================= */

type dateSpan struct{ start, end time.Time }

// holidaySpans: libur biasa = satu span apa adanya; libur berulang tahunan
// digeser ke tiap tahun dalam [fromYear, toYear].
func holidaySpans(h *m.PublicHolidayModel, fromYear, toYear int) []dateSpan {
	start := startOfDay(h.PublicHolidayStartDate)
	end := startOfDay(h.PublicHolidayEndDate)
	if !h.PublicHolidayIsRecurringYearly {
		return []dateSpan{{start: start, end: end}}
	}
	spanDays := int(end.Sub(start).Hours() / 24)
	var spans []dateSpan
	for y := fromYear; y <= toYear; y++ {
		s := time.Date(y, start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
		spans = append(spans, dateSpan{start: s, end: s.AddDate(0, 0, spanDays)})
	}
	return spans
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func dateKey(t time.Time) string { return t.Format("2006-01-02") }

func maxDate(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func minDate(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
