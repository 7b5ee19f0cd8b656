package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	m "tutorku_backend/internals/features/lessons/model"
)

func lessonAt(date, start, end string, status m.LessonStatus) *m.LessonModel {
	return &m.LessonModel{
		LessonDate:      mustDate(date),
		LessonStartTime: tod(start),
		LessonEndTime:   tod(end),
		LessonStatus:    status,
	}
}

func TestCanConductGraceBoundary(t *testing.T) {
	// lesson 10:00-11:00, grace 15 menit: jendela terbuka tepat di 09:45
	l := lessonAt("2025-09-01", "10:00", "11:00", m.LessonStatusScheduled)
	p := NewConductWindowPolicy(15)

	p.Now = fixedClock("2025-09-01 09:44")
	assert.False(t, p.CanConduct(l))

	p.Now = fixedClock("2025-09-01 09:45")
	assert.True(t, p.CanConduct(l))

	p.Now = fixedClock("2025-09-01 09:46")
	assert.True(t, p.CanConduct(l))
}

func TestCanConductNoUpperBoundWhileUpcoming(t *testing.T) {
	l := lessonAt("2025-09-01", "10:00", "11:00", m.LessonStatusScheduled)
	p := NewConductWindowPolicy(15)

	// jauh setelah jam selesai, selama masih upcoming tetap bisa didokumentasikan
	p.Now = fixedClock("2025-09-02 10:00")
	assert.True(t, p.CanConduct(l))
	assert.True(t, p.IsPastUnstarted(l))
}

func TestIsPastUnstarted(t *testing.T) {
	p := NewConductWindowPolicy(15)
	p.Now = fixedClock("2025-09-01 11:01")

	cases := []struct {
		name   string
		lesson *m.LessonModel
		want   bool
	}{
		{"scheduled past end", lessonAt("2025-09-01", "10:00", "11:00", m.LessonStatusScheduled), true},
		{"makeup past end", lessonAt("2025-09-01", "10:00", "11:00", m.LessonStatusMakeUp), true},
		{"still inside window", lessonAt("2025-09-01", "10:30", "11:30", m.LessonStatusScheduled), false},
		{"conducted is resolved", lessonAt("2025-09-01", "10:00", "11:00", m.LessonStatusConducted), false},
		{"cancelled is resolved", lessonAt("2025-09-01", "10:00", "11:00", m.LessonStatusCancelled), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, p.IsPastUnstarted(tc.lesson))
		})
	}
}

func TestCannotConductReason(t *testing.T) {
	p := NewConductWindowPolicy(15)

	tooEarly := lessonAt("2025-09-01", "10:00", "11:00", m.LessonStatusScheduled)
	p.Now = fixedClock("2025-09-01 08:00")
	if r := p.CannotConductReason(tooEarly); assert.NotNil(t, r) {
		assert.Equal(t, "too early", *r)
	}

	resolved := lessonAt("2025-09-01", "10:00", "11:00", m.LessonStatusConducted)
	p.Now = fixedClock("2025-09-01 10:30")
	if r := p.CannotConductReason(resolved); assert.NotNil(t, r) {
		assert.Equal(t, "already resolved", *r)
	}

	allowed := lessonAt("2025-09-01", "10:00", "11:00", m.LessonStatusScheduled)
	p.Now = fixedClock("2025-09-01 09:45")
	assert.Nil(t, p.CannotConductReason(allowed))
}
