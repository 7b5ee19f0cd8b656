// file: internals/features/lessons/route/lesson_routes.go
package route

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	lessonctl "tutorku_backend/internals/features/lessons/controller"
	"tutorku_backend/internals/features/lessons/service"
	"tutorku_backend/internals/middlewares"
)

// LessonAdminRoutes mendaftarkan seluruh operasi lesson untuk panel admin.
func LessonAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctl := lessonctl.New(db, validator.New(), service.DefaultGraceMinutes)

	grp := admin.Group("/lessons")

	grp.Get("/", ctl.List)
	grp.Post("/", ctl.Create)

	// query murni, aman dipanggil spekulatif oleh UI
	grp.Post("/check-conflicts", ctl.CheckConflicts)

	// bulk generate per kelas + laporan run (dibatasi, operasi berat)
	grp.Post("/generate", middlewares.GenerateRateLimiter(), ctl.Generate)
	grp.Get("/generation-runs/:id", ctl.GetGenerationRun)

	grp.Get("/:id", ctl.GetByID)
	grp.Post("/:id/cancel", ctl.Cancel)
	grp.Post("/:id/conduct", ctl.Conduct)
	grp.Post("/:id/reschedule", ctl.Reschedule)
	grp.Post("/:id/no-show", ctl.NoShow)
	grp.Post("/:id/makeup", ctl.CreateMakeup)
}
