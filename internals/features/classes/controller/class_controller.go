// file: internals/features/classes/controller/class_controller.go
package controller

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	helper "tutorku_backend/internals/helpers"

	d "tutorku_backend/internals/features/classes/dto"
	m "tutorku_backend/internals/features/classes/model"
)

/* =========================
   Controller & Constructor
   ========================= */

type ClassController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func New(db *gorm.DB, v *validator.Validate) *ClassController {
	return &ClassController{DB: db, Validate: v}
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

// kolom sort yang boleh dipakai klien
var classSortColumns = map[string]string{
	"name":        "class_name",
	"day_of_week": "class_day_of_week",
	"created_at":  "class_created_at",
}

/* =========================
   Handlers
   ========================= */

// GET /api/a/classes
func (ctl *ClassController) List(c *fiber.Ctx) error {
	p := helper.ParseFiber(c, "name", "asc", helper.DefaultOpts)

	order, err := p.SafeOrderClause(classSortColumns, "name")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Parameter sort tidak valid.")
	}

	db := ctl.DB.WithContext(c.Context()).Model(&m.ClassModel{})
	if q := strings.TrimSpace(c.Query("q")); q != "" {
		db = db.Where("class_name ILIKE ?", "%"+q+"%")
	}
	if v := strings.TrimSpace(c.Query("is_active")); v != "" {
		db = db.Where("class_is_active = ?", v == "true")
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		code, msg := mapPGError(err)
		return helper.Error(c, code, msg)
	}

	var rows []m.ClassModel
	if err := db.
		Order(strings.TrimPrefix(order, "ORDER BY ")).
		Limit(p.Limit()).Offset(p.Offset()).
		Find(&rows).Error; err != nil {
		code, msg := mapPGError(err)
		return helper.Error(c, code, msg)
	}
	return helper.Success(c, "OK", fiber.Map{
		"classes": d.FromClassModels(rows),
		"meta":    helper.BuildMeta(total, p),
	})
}

// GET /api/a/classes/:id
func (ctl *ClassController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "ID tidak valid.")
	}
	var row m.ClassModel
	if err := ctl.DB.WithContext(c.Context()).
		Where("class_id = ?", id).
		First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Kelas tidak ditemukan.")
		}
		code, msg := mapPGError(err)
		return helper.Error(c, code, msg)
	}
	return helper.Success(c, "OK", d.FromClassModel(&row))
}

// POST /api/a/classes
func (ctl *ClassController) Create(c *fiber.Ctx) error {
	var req d.CreateClassRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid.")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	row, ok := req.ToModel()
	if !ok {
		return helper.Error(c, fiber.StatusBadRequest, "Jadwal kelas tidak valid (jam selesai harus setelah jam mulai).")
	}

	if err := ctl.DB.WithContext(c.Context()).Create(&row).Error; err != nil {
		code, msg := mapPGError(err)
		return helper.Error(c, code, msg)
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Kelas dibuat.", d.FromClassModel(&row))
}

// PATCH /api/a/classes/:id
func (ctl *ClassController) Patch(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "ID tidak valid.")
	}
	var req d.UpdateClassRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid.")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var row m.ClassModel
	if err := ctl.DB.WithContext(c.Context()).
		Where("class_id = ?", id).
		First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Kelas tidak ditemukan.")
		}
		code, msg := mapPGError(err)
		return helper.Error(c, code, msg)
	}
	if !req.Apply(&row) {
		return helper.Error(c, fiber.StatusBadRequest, "Jadwal kelas tidak valid.")
	}

	if err := ctl.DB.WithContext(c.Context()).Save(&row).Error; err != nil {
		code, msg := mapPGError(err)
		return helper.Error(c, code, msg)
	}
	return helper.Success(c, "Kelas diperbarui.", d.FromClassModel(&row))
}

// DELETE /api/a/classes/:id (soft delete)
func (ctl *ClassController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "ID tidak valid.")
	}
	res := ctl.DB.WithContext(c.Context()).
		Where("class_id = ?", id).
		Delete(&m.ClassModel{})
	if res.Error != nil {
		code, msg := mapPGError(res.Error)
		return helper.Error(c, code, msg)
	}
	if res.RowsAffected == 0 {
		return helper.Error(c, fiber.StatusNotFound, "Kelas tidak ditemukan.")
	}
	return helper.Success(c, "Kelas dihapus.", fiber.Map{"class_id": id})
}
