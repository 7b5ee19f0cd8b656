package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	am "tutorku_backend/internals/features/academics/model"
)

func TestCalendarGateClassifiesDays(t *testing.T) {
	cal := &memCalendar{
		days: []am.NonTeachingDay{
			{Date: mustDate("2025-09-08"), Kind: am.NonTeachingPublicHoliday, Name: "Hari Libur"},
			{Date: mustDate("2025-09-15"), Kind: am.NonTeachingTeachingBreak, Name: "Ujian Tengah Semester", BreakType: am.BreakTypeExamWeek},
		},
	}

	gate, err := LoadCalendarGate(context.Background(), cal, mustDate("2025-09-01"), mustDate("2025-09-30"))
	assert.NoError(t, err)

	holiday, ok := gate.HolidayOn(mustDate("2025-09-08"))
	assert.True(t, ok)
	assert.Equal(t, "Hari Libur", holiday.Name)
	_, ok = gate.BreakOn(mustDate("2025-09-08"))
	assert.False(t, ok, "holiday is not a teaching break")

	brk, ok := gate.BreakOn(mustDate("2025-09-15"))
	assert.True(t, ok)
	assert.Equal(t, am.BreakTypeExamWeek, brk.BreakType)
	_, ok = gate.HolidayOn(mustDate("2025-09-15"))
	assert.False(t, ok)

	assert.False(t, gate.IsTeachable(mustDate("2025-09-08")))
	assert.False(t, gate.IsTeachable(mustDate("2025-09-15")))
	assert.True(t, gate.IsTeachable(mustDate("2025-09-22")))
}

func TestCalendarGateKeepsBothKindsOnSameDate(t *testing.T) {
	cal := &memCalendar{
		days: []am.NonTeachingDay{
			{Date: mustDate("2025-09-08"), Kind: am.NonTeachingPublicHoliday, Name: "Hari Libur"},
			{Date: mustDate("2025-09-08"), Kind: am.NonTeachingTeachingBreak, Name: "Pekan Ujian", BreakType: am.BreakTypeExamWeek},
		},
	}

	gate, err := LoadCalendarGate(context.Background(), cal, mustDate("2025-09-01"), mustDate("2025-09-30"))
	assert.NoError(t, err)

	_, holiday := gate.HolidayOn(mustDate("2025-09-08"))
	assert.True(t, holiday)
	brk, ok := gate.BreakOn(mustDate("2025-09-08"))
	assert.True(t, ok, "break stays visible even when the date is also a holiday")
	assert.Equal(t, am.BreakTypeExamWeek, brk.BreakType)
	assert.False(t, gate.IsTeachable(mustDate("2025-09-08")))
}

func TestCalendarGateOutsideRangeIsTeachable(t *testing.T) {
	cal := &memCalendar{
		days: []am.NonTeachingDay{
			{Date: mustDate("2025-12-25"), Kind: am.NonTeachingPublicHoliday, Name: "Natal"},
		},
	}

	gate, err := LoadCalendarGate(context.Background(), cal, mustDate("2025-09-01"), mustDate("2025-09-30"))
	assert.NoError(t, err)

	assert.True(t, gate.IsTeachable(mustDate("2025-12-25")), "day outside the preloaded range is not marked")
}
