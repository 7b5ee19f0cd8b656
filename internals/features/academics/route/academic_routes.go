// file: internals/features/academics/route/academic_routes.go
package route

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	acadctl "tutorku_backend/internals/features/academics/controller"
)

// AcademicAdminRoutes mendaftarkan kalender akademik untuk panel admin.
func AcademicAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctl := acadctl.New(db, validator.New())

	grp := admin.Group("/academics")

	grp.Post("/years", ctl.CreateAcademicYear)
	grp.Get("/years", ctl.ListAcademicYears)

	grp.Post("/semesters", ctl.CreateSemester)
	grp.Get("/semesters", ctl.ListSemesters)

	grp.Post("/holidays", ctl.CreatePublicHoliday)
	grp.Get("/holidays", ctl.ListPublicHolidays)

	grp.Post("/breaks", ctl.CreateTeachingBreak)
	grp.Get("/breaks", ctl.ListTeachingBreaks)

	grp.Get("/non-teaching-days", ctl.ListNonTeachingDays)
}
