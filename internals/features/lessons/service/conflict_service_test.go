package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	m "tutorku_backend/internals/features/lessons/model"
)

func TestCheckReportsTeacherAndClassroomConflicts(t *testing.T) {
	s := newMemStore()
	_, _, det := newTestEngine(s)

	clsA := newTestClass(s, "Matematika A", 1, "09:00", "10:00")
	newTestLesson(s, clsA, "2025-09-01", "09:00", "10:00", m.LessonStatusScheduled)

	// kandidat slot kelas yang sama: guru DAN ruang sama-sama tabrakan
	report, err := det.Check(context.Background(), ConflictCandidate{
		ClassID:   clsA.ClassID,
		Date:      mustDate("2025-09-01"),
		StartTime: tod("09:30"),
		EndTime:   tod("10:30"),
	})

	assert.NoError(t, err)
	assert.True(t, report.HasConflicts())

	kinds := map[ConflictKind]bool{}
	for _, c := range report.Conflicts {
		kinds[c.Kind] = true
	}
	assert.True(t, kinds[ConflictKindTeacher])
	assert.True(t, kinds[ConflictKindClassroom])
}

func TestCheckHalfOpenIntervalTouchingIsNotConflict(t *testing.T) {
	s := newMemStore()
	_, _, det := newTestEngine(s)

	cls := newTestClass(s, "Fisika", 1, "09:00", "10:00")
	newTestLesson(s, cls, "2025-09-01", "09:00", "10:00", m.LessonStatusScheduled)

	// [10:00,11:00) menempel di ujung [09:00,10:00) -> bukan bentrok
	report, err := det.Check(context.Background(), ConflictCandidate{
		ClassID:   cls.ClassID,
		Date:      mustDate("2025-09-01"),
		StartTime: tod("10:00"),
		EndTime:   tod("11:00"),
	})

	assert.NoError(t, err)
	assert.False(t, report.HasConflicts())
}

func TestCheckIgnoresCancelledAndExcluded(t *testing.T) {
	s := newMemStore()
	_, _, det := newTestEngine(s)

	cls := newTestClass(s, "Kimia", 1, "09:00", "10:00")
	cancelled := newTestLesson(s, cls, "2025-09-01", "09:00", "10:00", m.LessonStatusCancelled)
	own := newTestLesson(s, cls, "2025-09-01", "10:00", "11:00", m.LessonStatusScheduled)

	_ = cancelled

	// slot milik lesson sendiri, dengan exclude id-nya: harus bersih
	report, err := det.Check(context.Background(), ConflictCandidate{
		ClassID:         cls.ClassID,
		Date:            mustDate("2025-09-01"),
		StartTime:       tod("09:30"),
		EndTime:         tod("11:00"),
		ExcludeLessonID: &own.LessonID,
	})

	assert.NoError(t, err)
	assert.False(t, report.HasConflicts())
}

func TestCheckReportsStudentRosterConflict(t *testing.T) {
	s := newMemStore()
	_, _, det := newTestEngine(s)

	shared := "11111111-1111-1111-1111-111111111111"
	clsA := newTestClass(s, "Bahasa Inggris", 1, "09:00", "10:00", shared, "22222222-2222-2222-2222-222222222222")
	clsB := newTestClass(s, "Bahasa Arab", 1, "09:00", "10:00", shared)

	newTestLesson(s, clsB, "2025-09-01", "09:00", "10:00", m.LessonStatusScheduled)

	report, err := det.Check(context.Background(), ConflictCandidate{
		ClassID:   clsA.ClassID,
		Date:      mustDate("2025-09-01"),
		StartTime: tod("09:00"),
		EndTime:   tod("10:00"),
	})

	assert.NoError(t, err)
	assert.True(t, report.HasConflicts())
	assert.Equal(t, ConflictKindStudent, report.Conflicts[0].Kind)
	assert.Equal(t, "Bahasa Arab", report.Conflicts[0].ClassName)
}

func TestSuggestionsNextHalfHourSameDay(t *testing.T) {
	s := newMemStore()
	_, _, det := newTestEngine(s)

	cls := newTestClass(s, "Biologi", 1, "09:00", "10:00")
	newTestLesson(s, cls, "2025-09-01", "09:00", "10:00", m.LessonStatusScheduled)

	report, err := det.Check(context.Background(), ConflictCandidate{
		ClassID:   cls.ClassID,
		Date:      mustDate("2025-09-01"),
		StartTime: tod("09:00"),
		EndTime:   tod("10:00"),
	})

	assert.NoError(t, err)
	assert.True(t, report.HasConflicts())
	if assert.NotEmpty(t, report.Suggestions) {
		assert.LessOrEqual(t, len(report.Suggestions), 3)
		// boundary 30 menit pertama setelah 09:00 yang bebas adalah 10:00
		first := report.Suggestions[0]
		assert.Equal(t, "10:00", first.StartTime.Format("15:04"))
		assert.Equal(t, "11:00", first.EndTime.Format("15:04"))
		assert.True(t, sameDate(first.Date, mustDate("2025-09-01")))
	}
}

func TestSuggestionsFallBackToNextWeekWhenDayIsFull(t *testing.T) {
	s := newMemStore()
	_, _, det := newTestEngine(s)

	cls := newTestClass(s, "Sejarah", 1, "07:00", "21:00")
	// satu lesson memenuhi seluruh jendela harian
	newTestLesson(s, cls, "2025-09-01", "07:00", "21:00", m.LessonStatusScheduled)

	report, err := det.Check(context.Background(), ConflictCandidate{
		ClassID:   cls.ClassID,
		Date:      mustDate("2025-09-01"),
		StartTime: tod("09:00"),
		EndTime:   tod("10:00"),
	})

	assert.NoError(t, err)
	assert.True(t, report.HasConflicts())
	if assert.Len(t, report.Suggestions, 1) {
		sug := report.Suggestions[0]
		assert.True(t, sameDate(sug.Date, mustDate("2025-09-08")), "same weekday one week later")
		assert.Equal(t, "09:00", sug.StartTime.Format("15:04"))
	}
}

func TestSuggestionsAvoidAllSameDayBookings(t *testing.T) {
	s := newMemStore()
	_, _, det := newTestEngine(s)

	cls := newTestClass(s, "Tahfidz", 1, "09:00", "10:00")
	newTestLesson(s, cls, "2025-09-01", "09:00", "10:00", m.LessonStatusScheduled)
	// booking kedua TIDAK tabrakan dengan slot yang diminta, tapi saran
	// tetap harus menghindarinya
	newTestLesson(s, cls, "2025-09-01", "10:00", "11:00", m.LessonStatusScheduled)

	report, err := det.Check(context.Background(), ConflictCandidate{
		ClassID:   cls.ClassID,
		Date:      mustDate("2025-09-01"),
		StartTime: tod("09:00"),
		EndTime:   tod("10:00"),
	})

	assert.NoError(t, err)
	assert.True(t, report.HasConflicts())
	if assert.NotEmpty(t, report.Suggestions) {
		first := report.Suggestions[0]
		assert.Equal(t, "11:00", first.StartTime.Format("15:04"))
		assert.Equal(t, "12:00", first.EndTime.Format("15:04"))
		// tiap saran harus lolos cek bentrok kalau diperiksa ulang
		for _, sug := range report.Suggestions {
			re, err := det.Check(context.Background(), ConflictCandidate{
				ClassID:   cls.ClassID,
				Date:      sug.Date,
				StartTime: sug.StartTime,
				EndTime:   sug.EndTime,
			})
			assert.NoError(t, err)
			assert.False(t, re.HasConflicts(), "suggested slot %s-%s must be free",
				sug.StartTime.Format("15:04"), sug.EndTime.Format("15:04"))
		}
	}
}

func TestSuggestionsEmptyWhenNextWeekAlsoBooked(t *testing.T) {
	s := newMemStore()
	_, _, det := newTestEngine(s)

	cls := newTestClass(s, "Fiqih", 1, "07:00", "21:00")
	newTestLesson(s, cls, "2025-09-01", "07:00", "21:00", m.LessonStatusScheduled)
	newTestLesson(s, cls, "2025-09-08", "09:00", "10:00", m.LessonStatusScheduled)

	report, err := det.Check(context.Background(), ConflictCandidate{
		ClassID:   cls.ClassID,
		Date:      mustDate("2025-09-01"),
		StartTime: tod("09:00"),
		EndTime:   tod("10:00"),
	})

	assert.NoError(t, err)
	assert.True(t, report.HasConflicts())
	assert.Empty(t, report.Suggestions)
}

func TestCheckRejectsInvertedTimes(t *testing.T) {
	s := newMemStore()
	_, _, det := newTestEngine(s)
	cls := newTestClass(s, "Geografi", 1, "09:00", "10:00")

	_, err := det.Check(context.Background(), ConflictCandidate{
		ClassID:   cls.ClassID,
		Date:      mustDate("2025-09-01"),
		StartTime: tod("10:00"),
		EndTime:   tod("09:00"),
	})

	var vErr *ValidationError
	assert.ErrorAs(t, err, &vErr)
}
