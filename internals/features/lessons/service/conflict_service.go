// file: internals/features/lessons/service/conflict_service.go
package service

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	cm "tutorku_backend/internals/features/classes/model"
	m "tutorku_backend/internals/features/lessons/model"
	repo "tutorku_backend/internals/features/lessons/repository"
)

// ClassSource: resolusi kelas (guru, ruang, roster) yang dikonsumsi engine.
type ClassSource interface {
	ClassByID(ctx context.Context, id uuid.UUID) (*cm.ClassModel, error)
	ClassesByIDs(ctx context.Context, ids []uuid.UUID) ([]cm.ClassModel, error)
}

/* =======================================================
   Tipe hasil deteksi bentrok
   ======================================================= */

type ConflictKind string

const (
	ConflictKindTeacher   ConflictKind = "teacher_conflict"
	ConflictKindClassroom ConflictKind = "classroom_conflict"
	ConflictKindStudent   ConflictKind = "student_conflict"
)

type Conflict struct {
	Kind        ConflictKind   `json:"kind"`
	LessonID    uuid.UUID      `json:"lesson_id"`
	ClassID     uuid.UUID      `json:"class_id"`
	ClassName   string         `json:"class_name"`
	TeacherID   uuid.UUID      `json:"teacher_id"`
	ClassroomID uuid.UUID      `json:"classroom_id"`
	Date        time.Time      `json:"date"`
	StartTime   time.Time      `json:"start_time"`
	EndTime     time.Time      `json:"end_time"`
	Status      m.LessonStatus `json:"status"`
}

type SlotSuggestion struct {
	Date      time.Time `json:"date"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

type ConflictReport struct {
	Conflicts   []Conflict       `json:"conflicts"`
	Suggestions []SlotSuggestion `json:"suggestions"`
}

func (r *ConflictReport) HasConflicts() bool { return len(r.Conflicts) > 0 }

type ConflictCandidate struct {
	ClassID         uuid.UUID
	Date            time.Time
	StartTime       time.Time
	EndTime         time.Time
	ExcludeLessonID *uuid.UUID

	// override resource kelas (dipakai makeup yang pindah guru/ruang);
	// nil = pakai guru/ruang default kelasnya
	TeacherID   *uuid.UUID
	ClassroomID *uuid.UUID
}

/* =======================================================
   ConflictDetector — query murni, tanpa side effect.
   Aman dipanggil spekulatif/berulang dan paralel.
   ======================================================= */

type ConflictDetector struct {
	Lessons repo.LessonRepository
	Classes ClassSource

	// jendela harian untuk saran slot, menit sejak 00:00
	DayWindowStartMin int
	DayWindowEndMin   int
	MaxSuggestions    int
}

func NewConflictDetector(lessons repo.LessonRepository, classes ClassSource) *ConflictDetector {
	return &ConflictDetector{
		Lessons:           lessons,
		Classes:           classes,
		DayWindowStartMin: 7 * 60,  // 07:00
		DayWindowEndMin:   21 * 60, // 21:00
		MaxSuggestions:    3,
	}
}

// WithRepo: salinan detector yang terikat ke repo lain (mis. repo dalam
// transaksi kelas yang sedang dikunci).
func (d *ConflictDetector) WithRepo(r repo.LessonRepository) *ConflictDetector {
	cp := *d
	cp.Lessons = r
	return &cp
}

// Check memuat lesson sehari yang berbagi resource dengan kandidat, lalu
// mengklasifikasi tiap overlap half-open [start,end). Satu lesson bisa
// muncul di lebih dari satu klasifikasi kalau lebih dari satu resource
// yang tabrakan.
func (d *ConflictDetector) Check(ctx context.Context, c ConflictCandidate) (*ConflictReport, error) {
	if !c.EndTime.After(c.StartTime) {
		return nil, NewValidationError("end_time", "must be after start_time")
	}

	cls, err := d.Classes.ClassByID(ctx, c.ClassID)
	if err != nil {
		return nil, wrapStorage("resolve class", err)
	}

	teacherID := cls.ClassTeacherID
	if c.TeacherID != nil {
		teacherID = *c.TeacherID
	}
	classroomID := cls.ClassClassroomID
	if c.ClassroomID != nil {
		classroomID = *c.ClassroomID
	}

	candidates, err := d.Lessons.FindOverlapCandidates(ctx, repo.OverlapQuery{
		Date:            c.Date,
		TeacherID:       teacherID,
		ClassroomID:     classroomID,
		StudentIDs:      cls.ClassStudentIDs,
		ExcludeLessonID: c.ExcludeLessonID,
	})
	if err != nil {
		return nil, wrapStorage("load overlap candidates", err)
	}

	wantStart, wantEnd := minutesOfDay(c.StartTime), minutesOfDay(c.EndTime)

	overlapped := make([]m.LessonModel, 0, len(candidates))
	classIDs := make([]uuid.UUID, 0, len(candidates))
	seenClass := map[uuid.UUID]bool{}
	for _, other := range candidates {
		if !overlaps(wantStart, wantEnd, minutesOfDay(other.LessonStartTime), minutesOfDay(other.LessonEndTime)) {
			continue
		}
		overlapped = append(overlapped, other)
		if !seenClass[other.LessonClassID] {
			seenClass[other.LessonClassID] = true
			classIDs = append(classIDs, other.LessonClassID)
		}
	}

	otherClasses := map[uuid.UUID]*cm.ClassModel{}
	if len(classIDs) > 0 {
		rows, err := d.Classes.ClassesByIDs(ctx, classIDs)
		if err != nil {
			return nil, wrapStorage("resolve conflicting classes", err)
		}
		for i := range rows {
			otherClasses[rows[i].ClassID] = &rows[i]
		}
	}

	report := &ConflictReport{}
	for _, other := range overlapped {
		oc := otherClasses[other.LessonClassID]
		name := ""
		if oc != nil {
			name = oc.ClassName
		}
		add := func(kind ConflictKind) {
			report.Conflicts = append(report.Conflicts, Conflict{
				Kind:        kind,
				LessonID:    other.LessonID,
				ClassID:     other.LessonClassID,
				ClassName:   name,
				TeacherID:   other.LessonTeacherID,
				ClassroomID: other.LessonClassroomID,
				Date:        other.LessonDate,
				StartTime:   other.LessonStartTime,
				EndTime:     other.LessonEndTime,
				Status:      other.LessonStatus,
			})
		}
		if other.LessonTeacherID == teacherID {
			add(ConflictKindTeacher)
		}
		if other.LessonClassroomID == classroomID {
			add(ConflictKindClassroom)
		}
		if oc != nil && oc.ClassID != cls.ClassID && cls.HasStudentOverlap(oc) {
			add(ConflictKindStudent)
		}
	}

	if report.HasConflicts() {
		// busy = SEMUA lesson sehari yang berbagi resource, bukan hanya yang
		// tabrakan dengan slot diminta; saran harus bebas dari semuanya
		report.Suggestions = d.suggest(ctx, c, teacherID, classroomID, cls.ClassStudentIDs, candidates)
	}
	return report, nil
}

/* =======================================================
   Saran slot alternatif.

   Durasi sama, boundary 30 menit berikutnya di hari yang
   sama dalam jendela harian; kalau tidak ada yang muat,
   slot yang sama seminggu kemudian. Maksimal MaxSuggestions,
   urut dari yang paling dekat ke permintaan awal.
   ======================================================= */

func (d *ConflictDetector) suggest(ctx context.Context, c ConflictCandidate, teacherID, classroomID uuid.UUID, studentIDs []string, busy []m.LessonModel) []SlotSuggestion {
	wantStart, wantEnd := minutesOfDay(c.StartTime), minutesOfDay(c.EndTime)
	dur := wantEnd - wantStart

	type span struct{ start, end int }
	busySpans := make([]span, 0, len(busy))
	for _, b := range busy {
		busySpans = append(busySpans, span{minutesOfDay(b.LessonStartTime), minutesOfDay(b.LessonEndTime)})
	}
	sort.Slice(busySpans, func(i, j int) bool { return busySpans[i].start < busySpans[j].start })

	free := func(start int) bool {
		if start < d.DayWindowStartMin || start+dur > d.DayWindowEndMin {
			return false
		}
		for _, s := range busySpans {
			if overlaps(start, start+dur, s.start, s.end) {
				return false
			}
		}
		return true
	}

	var out []SlotSuggestion
	// boundary 30 menit pertama setelah jam mulai yang diminta
	for start := ((wantStart / 30) + 1) * 30; start+dur <= d.DayWindowEndMin && len(out) < d.MaxSuggestions; start += 30 {
		if free(start) {
			out = append(out, SlotSuggestion{
				Date:      c.Date,
				StartTime: todFromMinutes(start),
				EndTime:   todFromMinutes(start + dur),
			})
		}
	}
	if len(out) > 0 {
		return out
	}

	// fallback: slot sama minggu depan; satu query overlap langsung,
	// tanpa lewat Check supaya tidak beranak-pinak minggu demi minggu
	nextWeek := c.Date.AddDate(0, 0, 7)
	rows, err := d.Lessons.FindOverlapCandidates(ctx, repo.OverlapQuery{
		Date:            nextWeek,
		TeacherID:       teacherID,
		ClassroomID:     classroomID,
		StudentIDs:      studentIDs,
		ExcludeLessonID: c.ExcludeLessonID,
	})
	if err != nil {
		return out
	}
	for _, b := range rows {
		if overlaps(wantStart, wantEnd, minutesOfDay(b.LessonStartTime), minutesOfDay(b.LessonEndTime)) {
			return out
		}
	}
	return append(out, SlotSuggestion{Date: nextWeek, StartTime: c.StartTime, EndTime: c.EndTime})
}
