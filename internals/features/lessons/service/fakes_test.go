package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	am "tutorku_backend/internals/features/academics/model"
	cm "tutorku_backend/internals/features/classes/model"
	m "tutorku_backend/internals/features/lessons/model"
	repo "tutorku_backend/internals/features/lessons/repository"
)

/* =========================
   In-memory fakes
   ========================= */

type memStore struct {
	mu      sync.Mutex
	lessons map[uuid.UUID]m.LessonModel
	classes map[uuid.UUID]cm.ClassModel
	runs    map[uuid.UUID]m.GenerationRunModel
}

func newMemStore() *memStore {
	return &memStore{
		lessons: map[uuid.UUID]m.LessonModel{},
		classes: map[uuid.UUID]cm.ClassModel{},
		runs:    map[uuid.UUID]m.GenerationRunModel{},
	}
}

type memLessonRepo struct {
	s *memStore
}

var _ repo.LessonRepository = (*memLessonRepo)(nil)

func (r *memLessonRepo) FindByID(_ context.Context, id uuid.UUID) (*m.LessonModel, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	row, ok := r.s.lessons[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := row
	return &cp, nil
}

func (r *memLessonRepo) List(_ context.Context, f repo.LessonFilter) ([]m.LessonModel, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []m.LessonModel
	for _, row := range r.s.lessons {
		if f.ClassID != nil && row.LessonClassID != *f.ClassID {
			continue
		}
		if f.Status != nil && row.LessonStatus != *f.Status {
			continue
		}
		out = append(out, row)
	}
	return out, int64(len(out)), nil
}

func (r *memLessonRepo) Create(_ context.Context, l *m.LessonModel) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if l.LessonID == uuid.Nil {
		l.LessonID = uuid.New()
	}
	r.s.lessons[l.LessonID] = *l
	return nil
}

func (r *memLessonRepo) Save(_ context.Context, l *m.LessonModel) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.lessons[l.LessonID] = *l
	return nil
}

func (r *memLessonRepo) FindOverlapCandidates(_ context.Context, q repo.OverlapQuery) ([]m.LessonModel, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	wantStudents := map[string]bool{}
	for _, id := range q.StudentIDs {
		wantStudents[id] = true
	}

	var out []m.LessonModel
	for _, row := range r.s.lessons {
		if !sameDate(row.LessonDate, q.Date) {
			continue
		}
		if row.LessonStatus == m.LessonStatusCancelled {
			continue
		}
		if q.ExcludeLessonID != nil && row.LessonID == *q.ExcludeLessonID {
			continue
		}
		match := row.LessonTeacherID == q.TeacherID || row.LessonClassroomID == q.ClassroomID
		if !match && len(wantStudents) > 0 {
			if cls, ok := r.s.classes[row.LessonClassID]; ok {
				for _, sid := range cls.ClassStudentIDs {
					if wantStudents[sid] {
						match = true
						break
					}
				}
			}
		}
		if match {
			out = append(out, row)
		}
	}
	return out, nil
}

func (r *memLessonRepo) WithClassLock(_ context.Context, _ uuid.UUID, fn func(tx repo.LessonRepository) error) error {
	return fn(r)
}

func (r *memLessonRepo) CreateMakeupPair(_ context.Context, cancelled *m.LessonModel, makeup *m.LessonModel) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.lessons[makeup.LessonID] = *makeup
	cancelled.LessonMakeupLessonID = &makeup.LessonID
	r.s.lessons[cancelled.LessonID] = *cancelled
	return nil
}

func (r *memLessonRepo) CreateGenerationRun(_ context.Context, run *m.GenerationRunModel) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if run.GenerationRunID == uuid.Nil {
		run.GenerationRunID = uuid.New()
	}
	r.s.runs[run.GenerationRunID] = *run
	return nil
}

func (r *memLessonRepo) FindGenerationRun(_ context.Context, id uuid.UUID) (*m.GenerationRunModel, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	row, ok := r.s.runs[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := row
	return &cp, nil
}

type memClassSource struct {
	s *memStore
}

func (c *memClassSource) ClassByID(_ context.Context, id uuid.UUID) (*cm.ClassModel, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	row, ok := c.s.classes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := row
	return &cp, nil
}

func (c *memClassSource) ClassesByIDs(_ context.Context, ids []uuid.UUID) ([]cm.ClassModel, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	var out []cm.ClassModel
	for _, id := range ids {
		if row, ok := c.s.classes[id]; ok {
			out = append(out, row)
		}
	}
	return out, nil
}

type memCalendar struct {
	days          []am.NonTeachingDay
	yearStart     time.Time
	yearEnd       time.Time
	semesterStart time.Time
	semesterEnd   time.Time

	yearsByID     map[uuid.UUID][2]time.Time
	semestersByID map[uuid.UUID][2]time.Time
}

func (c *memCalendar) NonTeachingDays(_ context.Context, from, to time.Time) ([]am.NonTeachingDay, error) {
	var out []am.NonTeachingDay
	for _, d := range c.days {
		if !d.Date.Before(from) && !d.Date.After(to) {
			out = append(out, d)
		}
	}
	return out, nil
}

func (c *memCalendar) AcademicYearBounds(_ context.Context, _ time.Time) (time.Time, time.Time, error) {
	return c.yearStart, c.yearEnd, nil
}

func (c *memCalendar) SemesterBounds(_ context.Context, _ time.Time) (time.Time, time.Time, error) {
	return c.semesterStart, c.semesterEnd, nil
}

func (c *memCalendar) AcademicYearBoundsByID(_ context.Context, id uuid.UUID) (time.Time, time.Time, error) {
	if b, ok := c.yearsByID[id]; ok {
		return b[0], b[1], nil
	}
	return time.Time{}, time.Time{}, gorm.ErrRecordNotFound
}

func (c *memCalendar) SemesterBoundsByID(_ context.Context, id uuid.UUID) (time.Time, time.Time, error) {
	if b, ok := c.semestersByID[id]; ok {
		return b[0], b[1], nil
	}
	return time.Time{}, time.Time{}, gorm.ErrRecordNotFound
}

/* =========================
   Builders
   ========================= */

func mustDate(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func tod(s string) time.Time {
	t, err := time.Parse("15:04", s)
	if err != nil {
		panic(err)
	}
	return time.Date(2000, 1, 1, t.Hour(), t.Minute(), 0, 0, time.UTC)
}

func newTestClass(s *memStore, name string, dayOfWeek int, start, end string, students ...string) cm.ClassModel {
	cls := cm.ClassModel{
		ClassID:          uuid.New(),
		ClassName:        name,
		ClassTeacherID:   uuid.New(),
		ClassClassroomID: uuid.New(),
		ClassDayOfWeek:   dayOfWeek,
		ClassStartTime:   tod(start),
		ClassEndTime:     tod(end),
		ClassStudentIDs:  pq.StringArray(students),
		ClassIsActive:    true,
	}
	s.classes[cls.ClassID] = cls
	return cls
}

func newTestLesson(s *memStore, cls cm.ClassModel, date string, start, end string, status m.LessonStatus) m.LessonModel {
	l := m.LessonModel{
		LessonID:               uuid.New(),
		LessonClassID:          cls.ClassID,
		LessonDate:             mustDate(date),
		LessonStartTime:        tod(start),
		LessonEndTime:          tod(end),
		LessonTeacherID:        cls.ClassTeacherID,
		LessonClassroomID:      cls.ClassClassroomID,
		LessonStatus:           status,
		LessonGenerationSource: m.GenerationSourceManual,
	}
	s.lessons[l.LessonID] = l
	return l
}

func newTestEngine(s *memStore) (*memLessonRepo, *memClassSource, *ConflictDetector) {
	lessons := &memLessonRepo{s: s}
	classes := &memClassSource{s: s}
	return lessons, classes, NewConflictDetector(lessons, classes)
}

func fixedClock(s string) func() time.Time {
	t, err := time.Parse("2006-01-02 15:04", s)
	if err != nil {
		panic(err)
	}
	return func() time.Time { return t }
}
