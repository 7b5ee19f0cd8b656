// file: internals/features/lessons/controller/lesson_controller.go
package controller

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	helper "tutorku_backend/internals/helpers"

	acadrepo "tutorku_backend/internals/features/academics/repository"
	classrepo "tutorku_backend/internals/features/classes/repository"
	d "tutorku_backend/internals/features/lessons/dto"
	m "tutorku_backend/internals/features/lessons/model"
	repo "tutorku_backend/internals/features/lessons/repository"
	svc "tutorku_backend/internals/features/lessons/service"
)

/* =========================
   Controller & Constructor
   ========================= */

type LessonController struct {
	DB       *gorm.DB
	Validate *validator.Validate

	Lessons   repo.LessonRepository
	Detector  *svc.ConflictDetector
	Window    *svc.ConductWindowPolicy
	Service   *svc.LessonService
	Generator *svc.Generator
}

func New(db *gorm.DB, v *validator.Validate, graceMinutes int) *LessonController {
	lessons := repo.NewGormLessonRepository(db)
	classes := classrepo.NewGormClassRepository(db)
	calendar := acadrepo.NewGormCalendarRepository(db)

	detector := svc.NewConflictDetector(lessons, classes)
	window := svc.NewConductWindowPolicy(graceMinutes)
	makeup := svc.NewMakeupLinker(lessons, detector)

	return &LessonController{
		DB:        db,
		Validate:  v,
		Lessons:   lessons,
		Detector:  detector,
		Window:    window,
		Service:   svc.NewLessonService(lessons, classes, detector, window, makeup),
		Generator: svc.NewGenerator(lessons, classes, calendar, detector),
	}
}

/* =========================
   Helpers
   ========================= */

func parseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	idStr := strings.TrimSpace(c.Params(name))
	if idStr == "" {
		return uuid.Nil, fmt.Errorf("%s is required", name)
	}
	return uuid.Parse(idStr)
}

// --- PG error mapping ---

type pgSQLErr interface {
	SQLState() string
	Error() string
}

func mapPGError(err error) (int, string) {
	// 23P01 = exclusion_violation
	// 23503 = foreign_key_violation
	// 23505 = unique_violation
	var pgErr pgSQLErr
	if errors.As(err, &pgErr) {
		switch pgErr.SQLState() {
		case "23P01":
			return http.StatusConflict, "Bentrok jadwal: time range overlap."
		case "23503":
			return http.StatusBadRequest, "Referensi tidak ditemukan (FK violation)."
		case "23505":
			return http.StatusConflict, "Data duplikat (unique violation)."
		}
	}
	return http.StatusInternalServerError, err.Error()
}

// writeEngineError memetakan taksonomi error engine ke envelope JSON.
func writeEngineError(c *fiber.Ctx, err error) error {
	var vErr *svc.ValidationError
	if errors.As(err, &vErr) {
		return helper.JsonError(c, fiber.StatusBadRequest, vErr.Error())
	}
	var cErr *svc.ConflictError
	if errors.As(err, &cErr) {
		return helper.ErrorWithDetails(c, fiber.StatusConflict, "Slot bentrok dengan lesson lain.",
			d.FromConflictReport(&svc.ConflictReport{Conflicts: cErr.Conflicts, Suggestions: cErr.Suggestions}))
	}
	var tErr *svc.InvalidTransitionError
	if errors.As(err, &tErr) {
		return helper.JsonError(c, fiber.StatusConflict, tErr.Error())
	}
	if errors.Is(err, svc.ErrAlreadyHasMakeup) {
		return helper.JsonError(c, fiber.StatusConflict, "Lesson ini sudah punya makeup.")
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.JsonError(c, fiber.StatusNotFound, "Lesson tidak ditemukan.")
	}
	var sErr *svc.StorageError
	if errors.As(err, &sErr) {
		if errors.Is(sErr.Err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Data tidak ditemukan.")
		}
		code, msg := mapPGError(sErr.Err)
		return helper.JsonError(c, code, msg)
	}
	code, msg := mapPGError(err)
	return helper.JsonError(c, code, msg)
}

/* =========================
   List & Detail
   ========================= */

// GET /api/a/lessons
func (ctl *LessonController) List(c *fiber.Ctx) error {
	var q d.ListLessonQuery
	if err := c.QueryParser(&q); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Query tidak valid.")
	}
	if err := ctl.Validate.Struct(q); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	p := helper.ResolvePaging(c, 25, 200)

	f := repo.LessonFilter{Limit: p.Limit, Offset: p.Offset}
	if q.ClassID != nil {
		id, err := uuid.Parse(*q.ClassID)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "class_id tidak valid.")
		}
		f.ClassID = &id
	}
	if q.Status != nil {
		st := m.LessonStatus(*q.Status)
		f.Status = &st
	}
	if q.DateFrom != nil {
		if t, err := time.Parse("2006-01-02", *q.DateFrom); err == nil {
			f.From = &t
		}
	}
	if q.DateTo != nil {
		if t, err := time.Parse("2006-01-02", *q.DateTo); err == nil {
			f.To = &t
		}
	}

	rows, total, err := ctl.Lessons.List(c.Context(), f)
	if err != nil {
		code, msg := mapPGError(err)
		return helper.JsonError(c, code, msg)
	}
	return helper.JsonList(c, "OK", d.FromLessonModels(rows),
		helper.BuildPaginationFromOffset(total, p.Offset, p.Limit))
}

// GET /api/a/lessons/:id
func (ctl *LessonController) GetByID(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid.")
	}
	row, err := ctl.Lessons.FindByID(c.Context(), id)
	if err != nil {
		return writeEngineError(c, err)
	}
	return helper.JsonOK(c, "OK", d.FromLessonModel(row))
}

/* =========================
   Create (manual)
   ========================= */

// POST /api/a/lessons
func (ctl *LessonController) Create(c *fiber.Ctx) error {
	var req d.CreateLessonRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid.")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	classID, date, start, end, notes, ok := req.Parse()
	if !ok {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format tanggal/jam tidak valid.")
	}

	lesson, err := ctl.Service.CreateLesson(c.Context(), classID, date, start, end, notes)
	if err != nil {
		return writeEngineError(c, err)
	}
	return helper.JsonCreated(c, "Lesson dibuat.", d.FromLessonModel(lesson))
}

/* =========================
   Lifecycle
   ========================= */

// POST /api/a/lessons/:id/cancel
func (ctl *LessonController) Cancel(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid.")
	}
	var req d.CancelLessonRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid.")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var slot *svc.MakeupSlot
	if req.HasMakeupSlot() {
		date, start, end, ok := req.ParseMakeupSlot()
		if !ok {
			return helper.JsonError(c, fiber.StatusBadRequest, "Format slot makeup tidak valid.")
		}
		slot = &svc.MakeupSlot{Date: date, StartTime: start, EndTime: end}
	}

	out, err := ctl.Service.CancelLesson(c.Context(), id, req.LessonCancellationReason, slot)
	if err != nil {
		return writeEngineError(c, err)
	}

	body := fiber.Map{"lesson": d.FromLessonModel(out.Lesson)}
	if out.Makeup != nil {
		body["makeup"] = d.FromLessonModel(out.Makeup)
	}
	if out.MakeupErr != nil {
		// cancel sudah commit; kegagalan makeup dilaporkan tanpa menggagalkan respons
		var cErr *svc.ConflictError
		if errors.As(out.MakeupErr, &cErr) {
			body["makeup_error"] = d.FromConflictReport(&svc.ConflictReport{Conflicts: cErr.Conflicts, Suggestions: cErr.Suggestions})
		} else {
			body["makeup_error"] = out.MakeupErr.Error()
		}
	}
	return helper.JsonUpdated(c, "Lesson dibatalkan.", body)
}

// POST /api/a/lessons/:id/conduct
func (ctl *LessonController) Conduct(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid.")
	}
	var req d.ConductLessonRequest
	_ = c.BodyParser(&req) // body opsional

	lesson, err := ctl.Service.ConductLesson(c.Context(), id, req.LessonNotes)
	if err != nil {
		return writeEngineError(c, err)
	}
	return helper.JsonUpdated(c, "Lesson ditandai conducted.", d.FromLessonModel(lesson))
}

// POST /api/a/lessons/:id/reschedule
func (ctl *LessonController) Reschedule(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid.")
	}
	var req d.RescheduleLessonRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid.")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	date, start, end, ok := req.Parse()
	if !ok {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format tanggal/jam tidak valid.")
	}

	lesson, err := ctl.Service.RescheduleLesson(c.Context(), id, date, start, end, req.Reason)
	if err != nil {
		return writeEngineError(c, err)
	}
	return helper.JsonUpdated(c, "Lesson dijadwalkan ulang.", d.FromLessonModel(lesson))
}

// POST /api/a/lessons/:id/no-show
func (ctl *LessonController) NoShow(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid.")
	}
	var req d.NoShowLessonRequest
	_ = c.BodyParser(&req) // body opsional

	lesson, err := ctl.Service.MarkNoShow(c.Context(), id, req.LessonNotes)
	if err != nil {
		return writeEngineError(c, err)
	}
	return helper.JsonUpdated(c, "Lesson ditandai no-show.", d.FromLessonModel(lesson))
}

// POST /api/a/lessons/:id/makeup
func (ctl *LessonController) CreateMakeup(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid.")
	}
	var req d.CreateMakeupRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid.")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	date, start, end, teacherID, classroomID, ok := req.Parse()
	if !ok {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format tanggal/jam tidak valid.")
	}

	makeup, err := ctl.Service.Makeup.CreateMakeup(c.Context(), id, svc.MakeupSlot{
		Date:        date,
		StartTime:   start,
		EndTime:     end,
		TeacherID:   teacherID,
		ClassroomID: classroomID,
	}, req.LessonNotes)
	if err != nil {
		return writeEngineError(c, err)
	}
	return helper.JsonCreated(c, "Makeup lesson dibuat.", d.FromLessonModel(makeup))
}

/* =========================
   Conflict check & generate
   ========================= */

// POST /api/a/lessons/check-conflicts
func (ctl *LessonController) CheckConflicts(c *fiber.Ctx) error {
	var req d.CheckConflictRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid.")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	cand, ok := req.ToCandidate()
	if !ok {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format tanggal/jam tidak valid.")
	}

	report, err := ctl.Detector.Check(c.Context(), cand)
	if err != nil {
		return writeEngineError(c, err)
	}
	return helper.JsonOK(c, "OK", d.FromConflictReport(report))
}

// POST /api/a/lessons/generate
func (ctl *LessonController) Generate(c *fiber.Ctx) error {
	var req d.GenerateLessonsRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid.")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	opt, ok := req.ToOptions()
	if !ok {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format request generate tidak valid.")
	}

	res, err := ctl.Generator.Generate(c.Context(), opt)
	if err != nil {
		return writeEngineError(c, err)
	}
	return helper.JsonCreated(c, "Generate selesai.", d.FromGenerationResult(res))
}

// GET /api/a/lessons/generation-runs/:id
func (ctl *LessonController) GetGenerationRun(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid.")
	}
	run, err := ctl.Lessons.FindGenerationRun(c.Context(), id)
	if err != nil {
		return writeEngineError(c, err)
	}

	var details interface{}
	if len(run.GenerationRunSkippedDetails) > 0 {
		_ = sonic.Unmarshal(run.GenerationRunSkippedDetails, &details)
	}
	return helper.JsonOK(c, "OK", d.FromGenerationRunModel(run, details))
}
