// file: internals/features/lessons/service/generator_service.go
package service

import (
	"context"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"gorm.io/datatypes"

	am "tutorku_backend/internals/features/academics/model"
	cm "tutorku_backend/internals/features/classes/model"
	m "tutorku_backend/internals/features/lessons/model"
	repo "tutorku_backend/internals/features/lessons/repository"
)

// Guard: tolak rentang generate yang tidak masuk akal panjangnya.
const maxGenerateDays = 370

/* =======================================================
   BulkGenerator — materialisasi lesson berulang per kelas.

   Per tanggal kandidat urutannya tetap:
   libur nasional -> jeda KBM -> cek bentrok -> create.
   Skip per hari bukan error; hanya input struktural yang
   menggagalkan seluruh run.
   ======================================================= */

type GenerateOptions struct {
	ClassID   uuid.UUID
	Mode      m.GenerationMode
	StartDate *time.Time // wajib untuk custom_range
	EndDate   *time.Time // wajib untuk custom_range

	// periode rujukan untuk mode semester/full_year; nil = periode
	// aktif yang mencakup hari ini
	AcademicYearID *uuid.UUID
	SemesterID     *uuid.UUID

	RespectHolidays bool
	RespectBreaks   bool
}

type SkipReason string

const (
	SkipReasonTeachingBreak SkipReason = "teaching_break"
	SkipReasonConflict      SkipReason = "existing_lesson_conflict"
)

type BreakDetails struct {
	BreakType am.BreakType `json:"break_type"`
	Name      string       `json:"name"`
	Notes     *string      `json:"notes,omitempty"`
}

type SkipDetails struct {
	BreakDetails *BreakDetails `json:"break_details,omitempty"`
	Conflicts    []Conflict    `json:"conflicts,omitempty"`
}

type SkippedLesson struct {
	Date       time.Time   `json:"date"`
	DayOfWeek  int         `json:"day_of_week"` // ISO, Senin=1
	StartTime  time.Time   `json:"start_time"`
	EndTime    time.Time   `json:"end_time"`
	SkipReason SkipReason  `json:"skip_reason"`
	Details    SkipDetails `json:"skip_details"`
}

type GenerationResult struct {
	RunID     uuid.UUID `json:"run_id"`
	ClassID   uuid.UUID `json:"class_id"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`

	GeneratedCount     int `json:"generated_count"`
	SkippedCount       int `json:"skipped_count"`
	PublicHolidaySkips int `json:"public_holiday_skips"`
	TeachingBreakSkips int `json:"teaching_break_skips"`
	ConflictCount      int `json:"conflict_count"`

	Generated []m.LessonModel `json:"generated"`
	Skipped   []SkippedLesson `json:"skipped"`
}

type Generator struct {
	Lessons  repo.LessonRepository
	Classes  ClassSource
	Calendar CalendarSource
	Detector *ConflictDetector

	Now func() time.Time // injectable
}

func NewGenerator(lessons repo.LessonRepository, classes ClassSource, calendar CalendarSource, detector *ConflictDetector) *Generator {
	return &Generator{
		Lessons:  lessons,
		Classes:  classes,
		Calendar: calendar,
		Detector: detector,
		Now:      time.Now,
	}
}

func (g *Generator) now() time.Time {
	if g.Now != nil {
		return g.Now()
	}
	return time.Now()
}

// Generate menjalankan satu run untuk satu kelas. Seluruh run berjalan di
// dalam lock kelas supaya create/reschedule interaktif untuk kelas yang
// sama tidak balapan dengan generator.
func (g *Generator) Generate(ctx context.Context, opt GenerateOptions) (*GenerationResult, error) {
	cls, err := g.Classes.ClassByID(ctx, opt.ClassID)
	if err != nil {
		return nil, wrapStorage("resolve class", err)
	}
	if cls.ClassDayOfWeek < 1 || cls.ClassDayOfWeek > 7 {
		return nil, NewValidationError("class", "class has no valid weekly schedule")
	}

	start, end, err := g.effectiveRange(ctx, opt)
	if err != nil {
		return nil, err
	}
	if int(end.Sub(start).Hours()/24)+1 > maxGenerateDays {
		return nil, NewValidationError("date_range", "range too long for one generation run")
	}

	gate, err := LoadCalendarGate(ctx, g.Calendar, start, end)
	if err != nil {
		return nil, err
	}

	res := &GenerationResult{
		ClassID:   opt.ClassID,
		StartDate: start,
		EndDate:   end,
	}

	err = g.Lessons.WithClassLock(ctx, opt.ClassID, func(tx repo.LessonRepository) error {
		detector := g.Detector.WithRepo(tx)

		for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
			if isoWeekday(d) != cls.ClassDayOfWeek {
				continue
			}

			if opt.RespectHolidays {
				if day, ok := gate.HolidayOn(d); ok {
					res.Skipped = append(res.Skipped, g.skipBreak(cls, d, am.BreakTypeHoliday, day.Name, nil))
					res.SkippedCount++
					res.PublicHolidaySkips++
					continue
				}
			}
			if opt.RespectBreaks {
				if day, ok := gate.BreakOn(d); ok {
					res.Skipped = append(res.Skipped, g.skipBreak(cls, d, day.BreakType, day.Name, day.Notes))
					res.SkippedCount++
					res.TeachingBreakSkips++
					continue
				}
			}

			report, err := detector.Check(ctx, ConflictCandidate{
				ClassID:   cls.ClassID,
				Date:      d,
				StartTime: cls.ClassStartTime,
				EndTime:   cls.ClassEndTime,
			})
			if err != nil {
				return err
			}
			if report.HasConflicts() {
				res.Skipped = append(res.Skipped, SkippedLesson{
					Date:       d,
					DayOfWeek:  isoWeekday(d),
					StartTime:  cls.ClassStartTime,
					EndTime:    cls.ClassEndTime,
					SkipReason: SkipReasonConflict,
					Details:    SkipDetails{Conflicts: report.Conflicts},
				})
				res.SkippedCount++
				res.ConflictCount++
				continue
			}

			lesson := &m.LessonModel{
				LessonID:               uuid.New(),
				LessonClassID:          cls.ClassID,
				LessonDate:             d,
				LessonStartTime:        cls.ClassStartTime,
				LessonEndTime:          cls.ClassEndTime,
				LessonTeacherID:        cls.ClassTeacherID,
				LessonClassroomID:      cls.ClassClassroomID,
				LessonStatus:           m.LessonStatusScheduled,
				LessonGenerationSource: m.GenerationSourceAutomatic,
			}
			if err := tx.Create(ctx, lesson); err != nil {
				return wrapStorage("create generated lesson", err)
			}
			res.Generated = append(res.Generated, *lesson)
			res.GeneratedCount++
		}

		run, err := g.buildRun(opt, res)
		if err != nil {
			return err
		}
		if err := tx.CreateGenerationRun(ctx, run); err != nil {
			return wrapStorage("persist generation run", err)
		}
		res.RunID = run.GenerationRunID
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (g *Generator) skipBreak(cls *cm.ClassModel, date time.Time, breakType am.BreakType, name string, notes *string) SkippedLesson {
	return SkippedLesson{
		Date:       date,
		DayOfWeek:  isoWeekday(date),
		StartTime:  cls.ClassStartTime,
		EndTime:    cls.ClassEndTime,
		SkipReason: SkipReasonTeachingBreak,
		Details: SkipDetails{
			BreakDetails: &BreakDetails{BreakType: breakType, Name: name, Notes: notes},
		},
	}
}

/* =======================================================
   Resolusi rentang efektif per mode
   ======================================================= */

func (g *Generator) effectiveRange(ctx context.Context, opt GenerateOptions) (time.Time, time.Time, error) {
	now := g.now()
	switch opt.Mode {
	case m.GenerationModeCustomRange:
		if opt.StartDate == nil || opt.EndDate == nil {
			return time.Time{}, time.Time{}, NewValidationError("date_range", "start_date and end_date are required for custom_range")
		}
		start := startOfDayInLoc(*opt.StartDate, opt.StartDate.Location())
		end := startOfDayInLoc(*opt.EndDate, opt.EndDate.Location())
		if end.Before(start) {
			return time.Time{}, time.Time{}, NewValidationError("date_range", "end_date before start_date")
		}
		return start, end, nil
	case m.GenerationModeMonth:
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		end := start.AddDate(0, 1, -1)
		return start, end, nil
	case m.GenerationModeSemester:
		if opt.SemesterID != nil {
			start, end, err := g.Calendar.SemesterBoundsByID(ctx, *opt.SemesterID)
			if err != nil {
				return time.Time{}, time.Time{}, NewValidationError("semester_id", "semester not found")
			}
			return start, end, nil
		}
		start, end, err := g.Calendar.SemesterBounds(ctx, now)
		if err != nil {
			return time.Time{}, time.Time{}, NewValidationError("semester", "no semester covers the current date")
		}
		return start, end, nil
	case m.GenerationModeFullYear:
		if opt.AcademicYearID != nil {
			start, end, err := g.Calendar.AcademicYearBoundsByID(ctx, *opt.AcademicYearID)
			if err != nil {
				return time.Time{}, time.Time{}, NewValidationError("academic_year_id", "academic year not found")
			}
			return start, end, nil
		}
		start, end, err := g.Calendar.AcademicYearBounds(ctx, now)
		if err != nil {
			return time.Time{}, time.Time{}, NewValidationError("academic_year", "no academic year covers the current date")
		}
		return start, end, nil
	default:
		return time.Time{}, time.Time{}, NewValidationError("generation_mode", "unknown generation mode")
	}
}

func (g *Generator) buildRun(opt GenerateOptions, res *GenerationResult) (*m.GenerationRunModel, error) {
	details, err := sonic.Marshal(res.Skipped)
	if err != nil {
		return nil, NewValidationError("skipped_details", "cannot encode skip details")
	}
	return &m.GenerationRunModel{
		GenerationRunID:                 uuid.New(),
		GenerationRunClassID:            opt.ClassID,
		GenerationRunMode:               opt.Mode,
		GenerationRunStartDate:          res.StartDate,
		GenerationRunEndDate:            res.EndDate,
		GenerationRunGeneratedCount:     res.GeneratedCount,
		GenerationRunSkippedCount:       res.SkippedCount,
		GenerationRunHolidaySkips:       res.PublicHolidaySkips,
		GenerationRunTeachingBreakSkips: res.TeachingBreakSkips,
		GenerationRunConflictCount:      res.ConflictCount,
		GenerationRunSkippedDetails:     datatypes.JSON(details),
	}, nil
}
