// file: internals/features/lessons/service/calendar_gate.go
package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	am "tutorku_backend/internals/features/academics/model"
)

// CalendarSource: kalender akademik read-only yang dikonsumsi engine.
type CalendarSource interface {
	NonTeachingDays(ctx context.Context, from, to time.Time) ([]am.NonTeachingDay, error)
	AcademicYearBounds(ctx context.Context, at time.Time) (time.Time, time.Time, error)
	AcademicYearBoundsByID(ctx context.Context, id uuid.UUID) (time.Time, time.Time, error)
	SemesterBounds(ctx context.Context, at time.Time) (time.Time, time.Time, error)
	SemesterBoundsByID(ctx context.Context, id uuid.UUID) (time.Time, time.Time, error)
}

/* =======================================================
   CalendarGate — "tanggal ini boleh diisi KBM atau tidak?"

   Dipreload sekali per rentang generate supaya loop per
   tanggal tidak bolak-balik ke storage.
   ======================================================= */

// Satu tanggal bisa sekaligus libur nasional DAN jeda KBM; keduanya
// disimpan terpisah supaya gate yang satu bisa dimatikan tanpa
// menyembunyikan yang lain.
type CalendarGate struct {
	holidays map[string]am.NonTeachingDay
	breaks   map[string]am.NonTeachingDay
}

func LoadCalendarGate(ctx context.Context, src CalendarSource, from, to time.Time) (*CalendarGate, error) {
	days, err := src.NonTeachingDays(ctx, from, to)
	if err != nil {
		return nil, wrapStorage("load non-teaching days", err)
	}
	g := &CalendarGate{
		holidays: map[string]am.NonTeachingDay{},
		breaks:   map[string]am.NonTeachingDay{},
	}
	for _, d := range days {
		switch d.Kind {
		case am.NonTeachingPublicHoliday:
			g.holidays[d.Date.Format("2006-01-02")] = d
		case am.NonTeachingTeachingBreak:
			g.breaks[d.Date.Format("2006-01-02")] = d
		}
	}
	return g, nil
}

// HolidayOn: tanggal jatuh di libur nasional.
func (g *CalendarGate) HolidayOn(date time.Time) (am.NonTeachingDay, bool) {
	d, ok := g.holidays[date.Format("2006-01-02")]
	return d, ok
}

// BreakOn: tanggal jatuh di jeda KBM non-libur-nasional.
func (g *CalendarGate) BreakOn(date time.Time) (am.NonTeachingDay, bool) {
	d, ok := g.breaks[date.Format("2006-01-02")]
	return d, ok
}

// IsTeachable: true kalau tanggal tidak ditandai libur maupun jeda.
func (g *CalendarGate) IsTeachable(date time.Time) bool {
	key := date.Format("2006-01-02")
	_, holiday := g.holidays[key]
	_, brk := g.breaks[key]
	return !holiday && !brk
}
