// file: internals/features/academics/controller/academic_controller.go
package controller

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	helper "tutorku_backend/internals/helpers"

	d "tutorku_backend/internals/features/academics/dto"
	m "tutorku_backend/internals/features/academics/model"
	repo "tutorku_backend/internals/features/academics/repository"
)

/* =========================
   Controller & Constructor
   ========================= */

type AcademicController struct {
	DB       *gorm.DB
	Validate *validator.Validate
	Calendar *repo.GormCalendarRepository
}

func New(db *gorm.DB, v *validator.Validate) *AcademicController {
	return &AcademicController{DB: db, Validate: v, Calendar: repo.NewGormCalendarRepository(db)}
}

type pgSQLErr interface {
	SQLState() string
	Error() string
}

func mapPGError(err error) (int, string) {
	var pgErr pgSQLErr
	if errors.As(err, &pgErr) {
		switch pgErr.SQLState() {
		case "23503":
			return http.StatusBadRequest, "Referensi tidak ditemukan (FK violation)."
		case "23505":
			return http.StatusConflict, "Data duplikat (unique violation)."
		}
	}
	return http.StatusInternalServerError, err.Error()
}

/* =========================
   Academic years
   ========================= */

// POST /api/a/academics/years
func (ctl *AcademicController) CreateAcademicYear(c *fiber.Ctx) error {
	var req d.CreateAcademicYearRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid.")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	row, ok := req.ToModel()
	if !ok {
		return helper.JsonError(c, fiber.StatusBadRequest, "Rentang tanggal tidak valid.")
	}
	if err := ctl.DB.WithContext(c.Context()).Create(&row).Error; err != nil {
		code, msg := mapPGError(err)
		return helper.JsonError(c, code, msg)
	}
	return helper.JsonCreated(c, "Tahun ajaran dibuat.", d.FromAcademicYearModel(&row))
}

// GET /api/a/academics/years
func (ctl *AcademicController) ListAcademicYears(c *fiber.Ctx) error {
	var rows []m.AcademicYearModel
	if err := ctl.DB.WithContext(c.Context()).
		Order("academic_year_start_date DESC").
		Find(&rows).Error; err != nil {
		code, msg := mapPGError(err)
		return helper.JsonError(c, code, msg)
	}
	out := make([]d.AcademicYearResponse, 0, len(rows))
	for i := range rows {
		out = append(out, d.FromAcademicYearModel(&rows[i]))
	}
	return helper.JsonOK(c, "OK", out)
}

/* =========================
   Semesters
   ========================= */

// POST /api/a/academics/semesters
func (ctl *AcademicController) CreateSemester(c *fiber.Ctx) error {
	var req d.CreateSemesterRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid.")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	row, ok := req.ToModel()
	if !ok {
		return helper.JsonError(c, fiber.StatusBadRequest, "Rentang tanggal tidak valid.")
	}
	if err := ctl.DB.WithContext(c.Context()).Create(&row).Error; err != nil {
		code, msg := mapPGError(err)
		return helper.JsonError(c, code, msg)
	}
	return helper.JsonCreated(c, "Semester dibuat.", d.FromSemesterModel(&row))
}

// GET /api/a/academics/semesters
func (ctl *AcademicController) ListSemesters(c *fiber.Ctx) error {
	db := ctl.DB.WithContext(c.Context()).Model(&m.SemesterModel{})
	if v := strings.TrimSpace(c.Query("academic_year_id")); v != "" {
		db = db.Where("semester_academic_year_id = ?", v)
	}
	var rows []m.SemesterModel
	if err := db.Order("semester_start_date DESC").Find(&rows).Error; err != nil {
		code, msg := mapPGError(err)
		return helper.JsonError(c, code, msg)
	}
	out := make([]d.SemesterResponse, 0, len(rows))
	for i := range rows {
		out = append(out, d.FromSemesterModel(&rows[i]))
	}
	return helper.JsonOK(c, "OK", out)
}

/* =========================
   Public holidays
   ========================= */

// POST /api/a/academics/holidays
func (ctl *AcademicController) CreatePublicHoliday(c *fiber.Ctx) error {
	var req d.CreatePublicHolidayRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid.")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	row, ok := req.ToModel()
	if !ok {
		return helper.JsonError(c, fiber.StatusBadRequest, "Rentang tanggal tidak valid.")
	}
	if err := ctl.DB.WithContext(c.Context()).Create(&row).Error; err != nil {
		code, msg := mapPGError(err)
		return helper.JsonError(c, code, msg)
	}
	return helper.JsonCreated(c, "Libur nasional dibuat.", d.FromPublicHolidayModel(&row))
}

// GET /api/a/academics/holidays
func (ctl *AcademicController) ListPublicHolidays(c *fiber.Ctx) error {
	var rows []m.PublicHolidayModel
	if err := ctl.DB.WithContext(c.Context()).
		Order("public_holiday_start_date ASC").
		Find(&rows).Error; err != nil {
		code, msg := mapPGError(err)
		return helper.JsonError(c, code, msg)
	}
	out := make([]d.PublicHolidayResponse, 0, len(rows))
	for i := range rows {
		out = append(out, d.FromPublicHolidayModel(&rows[i]))
	}
	return helper.JsonOK(c, "OK", out)
}

/* =========================
   Teaching breaks
   ========================= */

// POST /api/a/academics/breaks
func (ctl *AcademicController) CreateTeachingBreak(c *fiber.Ctx) error {
	var req d.CreateTeachingBreakRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid.")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	row, ok := req.ToModel()
	if !ok {
		return helper.JsonError(c, fiber.StatusBadRequest, "Rentang tanggal tidak valid.")
	}
	if err := ctl.DB.WithContext(c.Context()).Create(&row).Error; err != nil {
		code, msg := mapPGError(err)
		return helper.JsonError(c, code, msg)
	}
	return helper.JsonCreated(c, "Jeda KBM dibuat.", d.FromTeachingBreakModel(&row))
}

// GET /api/a/academics/breaks
func (ctl *AcademicController) ListTeachingBreaks(c *fiber.Ctx) error {
	var rows []m.TeachingBreakModel
	if err := ctl.DB.WithContext(c.Context()).
		Order("teaching_break_start_date ASC").
		Find(&rows).Error; err != nil {
		code, msg := mapPGError(err)
		return helper.JsonError(c, code, msg)
	}
	out := make([]d.TeachingBreakResponse, 0, len(rows))
	for i := range rows {
		out = append(out, d.FromTeachingBreakModel(&rows[i]))
	}
	return helper.JsonOK(c, "OK", out)
}

/* =========================
   Non-teaching days projection
   ========================= */

// GET /api/a/academics/non-teaching-days?from=YYYY-MM-DD&to=YYYY-MM-DD
func (ctl *AcademicController) ListNonTeachingDays(c *fiber.Ctx) error {
	from, err1 := time.Parse("2006-01-02", strings.TrimSpace(c.Query("from")))
	to, err2 := time.Parse("2006-01-02", strings.TrimSpace(c.Query("to")))
	if err1 != nil || err2 != nil || to.Before(from) {
		return helper.JsonError(c, fiber.StatusBadRequest, "Query from/to wajib format YYYY-MM-DD dan berurutan.")
	}
	days, err := ctl.Calendar.NonTeachingDays(c.Context(), from, to)
	if err != nil {
		code, msg := mapPGError(err)
		return helper.JsonError(c, code, msg)
	}
	return helper.JsonOK(c, "OK", d.FromNonTeachingDays(days))
}
