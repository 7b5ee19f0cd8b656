package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	m "tutorku_backend/internals/features/lessons/model"
)

func newMakeupFixture(t *testing.T) (*memStore, *MakeupLinker, m.LessonModel) {
	t.Helper()
	s := newMemStore()
	lessons, _, det := newTestEngine(s)

	cls := newTestClass(s, "Matematika A", 1, "09:00", "10:00")
	cancelled := newTestLesson(s, cls, "2025-09-01", "09:00", "10:00", m.LessonStatusCancelled)

	return s, NewMakeupLinker(lessons, det), cancelled
}

func TestCreateMakeupLinksBothDirections(t *testing.T) {
	s, linker, cancelled := newMakeupFixture(t)

	makeup, err := linker.CreateMakeup(context.Background(), cancelled.LessonID, MakeupSlot{
		Date:      mustDate("2025-09-08"),
		StartTime: tod("09:00"),
		EndTime:   tod("10:00"),
	}, nil)

	assert.NoError(t, err)
	assert.Equal(t, m.LessonStatusMakeUp, makeup.LessonStatus)
	assert.Equal(t, m.GenerationSourceMakeup, makeup.LessonGenerationSource)
	assert.Equal(t, cancelled.LessonClassID, makeup.LessonClassID)
	assert.Equal(t, cancelled.LessonTeacherID, makeup.LessonTeacherID)
	assert.Equal(t, cancelled.LessonClassroomID, makeup.LessonClassroomID)

	// simetri link: A.makeup = B <=> B.original = A
	stored := s.lessons[cancelled.LessonID]
	if assert.NotNil(t, stored.LessonMakeupLessonID) {
		assert.Equal(t, makeup.LessonID, *stored.LessonMakeupLessonID)
	}
	if assert.NotNil(t, makeup.LessonOriginalLessonID) {
		assert.Equal(t, cancelled.LessonID, *makeup.LessonOriginalLessonID)
	}
}

func TestCreateMakeupSecondCallRejected(t *testing.T) {
	_, linker, cancelled := newMakeupFixture(t)

	slot := MakeupSlot{Date: mustDate("2025-09-08"), StartTime: tod("09:00"), EndTime: tod("10:00")}
	_, err := linker.CreateMakeup(context.Background(), cancelled.LessonID, slot, nil)
	assert.NoError(t, err)

	slot2 := MakeupSlot{Date: mustDate("2025-09-15"), StartTime: tod("09:00"), EndTime: tod("10:00")}
	_, err = linker.CreateMakeup(context.Background(), cancelled.LessonID, slot2, nil)
	assert.ErrorIs(t, err, ErrAlreadyHasMakeup)
}

func TestCreateMakeupRequiresCancelledStatus(t *testing.T) {
	s := newMemStore()
	lessons, _, det := newTestEngine(s)
	cls := newTestClass(s, "Fisika", 1, "09:00", "10:00")
	scheduled := newTestLesson(s, cls, "2025-09-01", "09:00", "10:00", m.LessonStatusScheduled)

	linker := NewMakeupLinker(lessons, det)
	_, err := linker.CreateMakeup(context.Background(), scheduled.LessonID, MakeupSlot{
		Date:      mustDate("2025-09-08"),
		StartTime: tod("09:00"),
		EndTime:   tod("10:00"),
	}, nil)

	var tErr *InvalidTransitionError
	assert.ErrorAs(t, err, &tErr)
}

func TestCreateMakeupRejectsConflictingSlotAndLeavesLinkUnset(t *testing.T) {
	s, linker, cancelled := newMakeupFixture(t)

	// slot makeup tabrakan dengan booking lain milik guru yang sama
	cls := s.classes[cancelled.LessonClassID]
	newTestLesson(s, cls, "2025-09-08", "09:00", "10:00", m.LessonStatusScheduled)

	_, err := linker.CreateMakeup(context.Background(), cancelled.LessonID, MakeupSlot{
		Date:      mustDate("2025-09-08"),
		StartTime: tod("09:00"),
		EndTime:   tod("10:00"),
	}, nil)

	var cErr *ConflictError
	assert.ErrorAs(t, err, &cErr)
	assert.NotEmpty(t, cErr.Conflicts)

	// tidak ada partial link
	stored := s.lessons[cancelled.LessonID]
	assert.Nil(t, stored.LessonMakeupLessonID)
}

func TestCreateMakeupChecksOverriddenTeacher(t *testing.T) {
	s, linker, cancelled := newMakeupFixture(t)

	// guru pengganti sudah punya booking di kelas lain pada slot itu;
	// guru default kelasnya sendiri kosong
	clsB := newTestClass(s, "Tajwid", 1, "09:00", "10:00")
	newTestLesson(s, clsB, "2025-09-08", "09:00", "10:00", m.LessonStatusScheduled)

	_, err := linker.CreateMakeup(context.Background(), cancelled.LessonID, MakeupSlot{
		Date:      mustDate("2025-09-08"),
		StartTime: tod("09:00"),
		EndTime:   tod("10:00"),
		TeacherID: &clsB.ClassTeacherID,
	}, nil)

	var cErr *ConflictError
	assert.ErrorAs(t, err, &cErr)
	if assert.NotEmpty(t, cErr.Conflicts) {
		assert.Equal(t, ConflictKindTeacher, cErr.Conflicts[0].Kind)
	}

	stored := s.lessons[cancelled.LessonID]
	assert.Nil(t, stored.LessonMakeupLessonID)
}

func TestCreateMakeupOverrideFreesDefaultTeacher(t *testing.T) {
	s, linker, cancelled := newMakeupFixture(t)

	// guru & ruang default sibuk di slot itu; override ke resource kosong
	cls := s.classes[cancelled.LessonClassID]
	newTestLesson(s, cls, "2025-09-08", "09:00", "10:00", m.LessonStatusScheduled)

	subTeacher := newTestClass(s, "Kelas Pengganti", 1, "13:00", "14:00")

	makeup, err := linker.CreateMakeup(context.Background(), cancelled.LessonID, MakeupSlot{
		Date:        mustDate("2025-09-08"),
		StartTime:   tod("09:00"),
		EndTime:     tod("10:00"),
		TeacherID:   &subTeacher.ClassTeacherID,
		ClassroomID: &subTeacher.ClassClassroomID,
	}, nil)

	assert.NoError(t, err)
	assert.Equal(t, subTeacher.ClassTeacherID, makeup.LessonTeacherID)
	assert.Equal(t, subTeacher.ClassClassroomID, makeup.LessonClassroomID)
}
