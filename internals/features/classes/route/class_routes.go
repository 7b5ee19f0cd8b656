// file: internals/features/classes/route/class_routes.go
package route

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	classctl "tutorku_backend/internals/features/classes/controller"
)

// ClassAdminRoutes mendaftarkan CRUD kelas untuk panel admin.
func ClassAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctl := classctl.New(db, validator.New())

	grp := admin.Group("/classes")
	grp.Get("/", ctl.List)
	grp.Get("/:id", ctl.GetByID)
	grp.Post("/", ctl.Create)
	grp.Patch("/:id", ctl.Patch)
	grp.Delete("/:id", ctl.Delete)
}
