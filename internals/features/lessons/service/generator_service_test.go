package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	am "tutorku_backend/internals/features/academics/model"
	m "tutorku_backend/internals/features/lessons/model"
)

func holidayOn(date, name string) am.NonTeachingDay {
	return am.NonTeachingDay{Date: mustDate(date), Kind: am.NonTeachingPublicHoliday, Name: name}
}

func breakOn(date, name string, bt am.BreakType) am.NonTeachingDay {
	return am.NonTeachingDay{Date: mustDate(date), Kind: am.NonTeachingTeachingBreak, Name: name, BreakType: bt}
}

func TestGenerateSeptemberMondaysSkipsHoliday(t *testing.T) {
	s := newMemStore()
	lessons, classes, det := newTestEngine(s)

	// kelas Senin 09:00-10:00; September 2025 punya 5 Senin (1,8,15,22,29),
	// Senin 8 September libur nasional
	cls := newTestClass(s, "Matematika A", 1, "09:00", "10:00")
	cal := &memCalendar{days: []am.NonTeachingDay{holidayOn("2025-09-08", "Hari Libur Nasional")}}

	gen := NewGenerator(lessons, classes, cal, det)
	start := mustDate("2025-09-01")
	end := mustDate("2025-09-30")

	res, err := gen.Generate(context.Background(), GenerateOptions{
		ClassID:         cls.ClassID,
		Mode:            m.GenerationModeCustomRange,
		StartDate:       &start,
		EndDate:         &end,
		RespectHolidays: true,
		RespectBreaks:   true,
	})

	assert.NoError(t, err)
	assert.Equal(t, 4, res.GeneratedCount)
	assert.Equal(t, 1, res.SkippedCount)
	assert.Equal(t, 1, res.PublicHolidaySkips)
	assert.Equal(t, 0, res.ConflictCount)

	if assert.Len(t, res.Skipped, 1) {
		sk := res.Skipped[0]
		assert.True(t, sameDate(sk.Date, mustDate("2025-09-08")))
		assert.Equal(t, SkipReasonTeachingBreak, sk.SkipReason)
		if assert.NotNil(t, sk.Details.BreakDetails) {
			assert.Equal(t, am.BreakTypeHoliday, sk.Details.BreakDetails.BreakType)
		}
	}

	// urut kronologis dan semua hasil generate berstatus scheduled/automatic
	var prev time.Time
	for _, l := range res.Generated {
		assert.Equal(t, m.LessonStatusScheduled, l.LessonStatus)
		assert.Equal(t, m.GenerationSourceAutomatic, l.LessonGenerationSource)
		assert.True(t, prev.Before(l.LessonDate))
		prev = l.LessonDate
	}

	// laporan run tersimpan
	run, err := lessons.FindGenerationRun(context.Background(), res.RunID)
	assert.NoError(t, err)
	assert.Equal(t, 4, run.GenerationRunGeneratedCount)
	assert.Equal(t, 1, run.GenerationRunHolidaySkips)
}

func TestGenerateSkipsTeachingBreakWithOwnType(t *testing.T) {
	s := newMemStore()
	lessons, classes, det := newTestEngine(s)

	cls := newTestClass(s, "Fisika", 1, "09:00", "10:00")
	cal := &memCalendar{days: []am.NonTeachingDay{breakOn("2025-09-15", "Pekan Ujian", am.BreakTypeExamWeek)}}

	gen := NewGenerator(lessons, classes, cal, det)
	start := mustDate("2025-09-08")
	end := mustDate("2025-09-21")

	res, err := gen.Generate(context.Background(), GenerateOptions{
		ClassID:         cls.ClassID,
		Mode:            m.GenerationModeCustomRange,
		StartDate:       &start,
		EndDate:         &end,
		RespectHolidays: true,
		RespectBreaks:   true,
	})

	assert.NoError(t, err)
	assert.Equal(t, 1, res.GeneratedCount) // 8 Sep
	assert.Equal(t, 1, res.TeachingBreakSkips)
	if assert.Len(t, res.Skipped, 1) {
		assert.Equal(t, am.BreakTypeExamWeek, res.Skipped[0].Details.BreakDetails.BreakType)
	}
}

func TestGenerateIgnoresBreaksWhenFlagsOff(t *testing.T) {
	s := newMemStore()
	lessons, classes, det := newTestEngine(s)

	cls := newTestClass(s, "Kimia", 1, "09:00", "10:00")
	cal := &memCalendar{days: []am.NonTeachingDay{holidayOn("2025-09-08", "Hari Libur Nasional")}}

	gen := NewGenerator(lessons, classes, cal, det)
	start := mustDate("2025-09-01")
	end := mustDate("2025-09-14")

	res, err := gen.Generate(context.Background(), GenerateOptions{
		ClassID:         cls.ClassID,
		Mode:            m.GenerationModeCustomRange,
		StartDate:       &start,
		EndDate:         &end,
		RespectHolidays: false,
		RespectBreaks:   false,
	})

	assert.NoError(t, err)
	assert.Equal(t, 2, res.GeneratedCount)
	assert.Equal(t, 0, res.SkippedCount)
}

func TestGenerateRecordsConflictSkip(t *testing.T) {
	s := newMemStore()
	lessons, classes, det := newTestEngine(s)

	cls := newTestClass(s, "Biologi", 1, "09:00", "10:00")
	// booking manual sudah ada di Senin pertama
	newTestLesson(s, cls, "2025-09-01", "09:30", "10:30", m.LessonStatusScheduled)

	cal := &memCalendar{}
	gen := NewGenerator(lessons, classes, cal, det)
	start := mustDate("2025-09-01")
	end := mustDate("2025-09-14")

	res, err := gen.Generate(context.Background(), GenerateOptions{
		ClassID:         cls.ClassID,
		Mode:            m.GenerationModeCustomRange,
		StartDate:       &start,
		EndDate:         &end,
		RespectHolidays: true,
		RespectBreaks:   true,
	})

	assert.NoError(t, err)
	assert.Equal(t, 1, res.GeneratedCount) // 8 Sep
	assert.Equal(t, 1, res.ConflictCount)
	if assert.Len(t, res.Skipped, 1) {
		assert.Equal(t, SkipReasonConflict, res.Skipped[0].SkipReason)
		assert.NotEmpty(t, res.Skipped[0].Details.Conflicts)
	}
}

func TestGenerateStructuralErrors(t *testing.T) {
	s := newMemStore()
	lessons, classes, det := newTestEngine(s)
	cls := newTestClass(s, "Sejarah", 1, "09:00", "10:00")
	gen := NewGenerator(lessons, classes, &memCalendar{}, det)

	start := mustDate("2025-09-30")
	end := mustDate("2025-09-01")

	var vErr *ValidationError

	// end sebelum start
	_, err := gen.Generate(context.Background(), GenerateOptions{
		ClassID: cls.ClassID, Mode: m.GenerationModeCustomRange, StartDate: &start, EndDate: &end,
	})
	assert.ErrorAs(t, err, &vErr)

	// custom_range tanpa tanggal
	_, err = gen.Generate(context.Background(), GenerateOptions{
		ClassID: cls.ClassID, Mode: m.GenerationModeCustomRange,
	})
	assert.ErrorAs(t, err, &vErr)

	// mode tidak dikenal
	_, err = gen.Generate(context.Background(), GenerateOptions{
		ClassID: cls.ClassID, Mode: m.GenerationMode("weekly"),
	})
	assert.ErrorAs(t, err, &vErr)
}

func TestGenerateSemesterModeUsesCalendarBounds(t *testing.T) {
	s := newMemStore()
	lessons, classes, det := newTestEngine(s)

	cls := newTestClass(s, "Geografi", 1, "09:00", "10:00")
	cal := &memCalendar{
		semesterStart: mustDate("2025-09-01"),
		semesterEnd:   mustDate("2025-09-14"),
	}
	gen := NewGenerator(lessons, classes, cal, det)
	gen.Now = fixedClock("2025-09-03 08:00")

	res, err := gen.Generate(context.Background(), GenerateOptions{
		ClassID:         cls.ClassID,
		Mode:            m.GenerationModeSemester,
		RespectHolidays: true,
		RespectBreaks:   true,
	})

	assert.NoError(t, err)
	assert.Equal(t, 2, res.GeneratedCount) // Senin 1 & 8 Sep
	assert.True(t, sameDate(res.StartDate, mustDate("2025-09-01")))
	assert.True(t, sameDate(res.EndDate, mustDate("2025-09-14")))
}

func TestGenerateSemesterByIDOverridesActiveTerm(t *testing.T) {
	s := newMemStore()
	lessons, classes, det := newTestEngine(s)

	cls := newTestClass(s, "Nahwu", 1, "09:00", "10:00")
	semID := uuid.New()
	cal := &memCalendar{
		// periode aktif (Oktober) sengaja beda dari periode yang dirujuk
		semesterStart: mustDate("2025-10-01"),
		semesterEnd:   mustDate("2025-10-14"),
		semestersByID: map[uuid.UUID][2]time.Time{
			semID: {mustDate("2025-09-01"), mustDate("2025-09-14")},
		},
	}
	gen := NewGenerator(lessons, classes, cal, det)
	gen.Now = fixedClock("2025-10-05 08:00")

	res, err := gen.Generate(context.Background(), GenerateOptions{
		ClassID:         cls.ClassID,
		Mode:            m.GenerationModeSemester,
		SemesterID:      &semID,
		RespectHolidays: true,
		RespectBreaks:   true,
	})

	assert.NoError(t, err)
	assert.Equal(t, 2, res.GeneratedCount) // Senin 1 & 8 Sep, bukan Oktober
	assert.True(t, sameDate(res.StartDate, mustDate("2025-09-01")))
	assert.True(t, sameDate(res.EndDate, mustDate("2025-09-14")))
}

func TestGenerateRejectsUnknownTermIDs(t *testing.T) {
	s := newMemStore()
	lessons, classes, det := newTestEngine(s)
	cls := newTestClass(s, "Shorof", 1, "09:00", "10:00")
	gen := NewGenerator(lessons, classes, &memCalendar{}, det)

	var vErr *ValidationError

	unknown := uuid.New()
	_, err := gen.Generate(context.Background(), GenerateOptions{
		ClassID: cls.ClassID, Mode: m.GenerationModeSemester, SemesterID: &unknown,
	})
	assert.ErrorAs(t, err, &vErr)
	assert.Equal(t, "semester_id", vErr.Field)

	_, err = gen.Generate(context.Background(), GenerateOptions{
		ClassID: cls.ClassID, Mode: m.GenerationModeFullYear, AcademicYearID: &unknown,
	})
	assert.ErrorAs(t, err, &vErr)
	assert.Equal(t, "academic_year_id", vErr.Field)
}

func TestGenerateFullYearByID(t *testing.T) {
	s := newMemStore()
	lessons, classes, det := newTestEngine(s)

	cls := newTestClass(s, "Balaghah", 1, "09:00", "10:00")
	yearID := uuid.New()
	cal := &memCalendar{
		yearsByID: map[uuid.UUID][2]time.Time{
			yearID: {mustDate("2025-09-01"), mustDate("2025-09-28")},
		},
	}
	gen := NewGenerator(lessons, classes, cal, det)

	res, err := gen.Generate(context.Background(), GenerateOptions{
		ClassID:         cls.ClassID,
		Mode:            m.GenerationModeFullYear,
		AcademicYearID:  &yearID,
		RespectHolidays: true,
		RespectBreaks:   true,
	})

	assert.NoError(t, err)
	assert.Equal(t, 4, res.GeneratedCount) // Senin 1, 8, 15, 22 Sep
}

func TestGenerateBreakStillGatesWhenHolidayFlagOff(t *testing.T) {
	s := newMemStore()
	lessons, classes, det := newTestEngine(s)

	cls := newTestClass(s, "Hadits", 1, "09:00", "10:00")
	// Senin 8 Sep sekaligus libur nasional DAN pekan ujian
	cal := &memCalendar{days: []am.NonTeachingDay{
		holidayOn("2025-09-08", "Hari Libur Nasional"),
		breakOn("2025-09-08", "Pekan Ujian", am.BreakTypeExamWeek),
	}}

	gen := NewGenerator(lessons, classes, cal, det)
	start := mustDate("2025-09-01")
	end := mustDate("2025-09-14")

	res, err := gen.Generate(context.Background(), GenerateOptions{
		ClassID:         cls.ClassID,
		Mode:            m.GenerationModeCustomRange,
		StartDate:       &start,
		EndDate:         &end,
		RespectHolidays: false,
		RespectBreaks:   true,
	})

	assert.NoError(t, err)
	assert.Equal(t, 1, res.GeneratedCount) // hanya 1 Sep
	assert.Equal(t, 1, res.TeachingBreakSkips)
	if assert.Len(t, res.Skipped, 1) {
		assert.Equal(t, am.BreakTypeExamWeek, res.Skipped[0].Details.BreakDetails.BreakType)
	}
}
