// file: internals/route/index.go
package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	acadroute "tutorku_backend/internals/features/academics/route"
	classroute "tutorku_backend/internals/features/classes/route"
	lessonroute "tutorku_backend/internals/features/lessons/route"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	BaseRoutes(app, db)

	// ===================== ADMIN =====================
	log.Println("[INFO] Setting up ADMIN group...")
	admin := app.Group("/api/a")

	log.Println("[INFO] Mounting Class routes...")
	classroute.ClassAdminRoutes(admin, db)

	log.Println("[INFO] Mounting Academic calendar routes...")
	acadroute.AcademicAdminRoutes(admin, db)

	log.Println("[INFO] Mounting Lesson routes...")
	lessonroute.LessonAdminRoutes(admin, db)
}
