// file: internals/features/lessons/service/conduct_window.go
package service

import (
	"time"

	m "tutorku_backend/internals/features/lessons/model"
)

const DefaultGraceMinutes = 15

/* =======================================================
   Kebijakan jendela conduct.

   Lesson boleh ditandai conducted mulai graceMinutes sebelum
   jam mulai. Tidak ada batas atas selama masih upcoming;
   begitu jam selesai lewat, lesson jadi "past unstarted" dan
   wajib didokumentasikan manual (conduct/cancel/no-show).
   ======================================================= */

type ConductWindowPolicy struct {
	GraceMinutes int
	Now          func() time.Time // injectable
}

func NewConductWindowPolicy(graceMinutes int) *ConductWindowPolicy {
	if graceMinutes <= 0 {
		graceMinutes = DefaultGraceMinutes
	}
	return &ConductWindowPolicy{GraceMinutes: graceMinutes, Now: time.Now}
}

func (p *ConductWindowPolicy) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}

// CanConduct: status upcoming dan sudah masuk jendela (start - grace).
func (p *ConductWindowPolicy) CanConduct(l *m.LessonModel) bool {
	if !l.LessonStatus.IsUpcoming() {
		return false
	}
	start := combineLocalDateAndTOD(l.LessonDate, l.LessonStartTime)
	windowOpen := start.Add(-time.Duration(p.GraceMinutes) * time.Minute)
	return !p.now().Before(windowOpen)
}

// IsPastUnstarted: jam selesai sudah lewat tapi statusnya masih upcoming.
func (p *ConductWindowPolicy) IsPastUnstarted(l *m.LessonModel) bool {
	if !l.LessonStatus.IsUpcoming() {
		return false
	}
	end := combineLocalDateAndTOD(l.LessonDate, l.LessonEndTime)
	return p.now().After(end)
}

// CannotConductReason: alasan readable kalau CanConduct false dan lesson
// bukan past-unstarted; nil kalau conduct diizinkan.
func (p *ConductWindowPolicy) CannotConductReason(l *m.LessonModel) *string {
	if p.CanConduct(l) {
		return nil
	}
	reason := "too early"
	if !l.LessonStatus.IsUpcoming() {
		reason = "already resolved"
	}
	return &reason
}
