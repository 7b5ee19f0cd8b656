// file: internals/features/lessons/service/status_machine.go
package service

import (
	m "tutorku_backend/internals/features/lessons/model"
)

/* =======================================================
   Mesin status lesson.

   scheduled dan makeup sama-sama "upcoming": keduanya boleh
   di-conduct, dibatalkan, di-no-show, atau di-reschedule
   (reschedule tetap di status semula). Selain itu ditolak.
   ======================================================= */

type statusPair struct {
	from m.LessonStatus
	to   m.LessonStatus
}

var allowedTransitions = map[statusPair]bool{
	{m.LessonStatusScheduled, m.LessonStatusConducted}: true,
	{m.LessonStatusScheduled, m.LessonStatusCancelled}: true,
	{m.LessonStatusScheduled, m.LessonStatusNoShow}:    true,
	{m.LessonStatusScheduled, m.LessonStatusScheduled}: true, // reschedule
	{m.LessonStatusMakeUp, m.LessonStatusConducted}:    true,
	{m.LessonStatusMakeUp, m.LessonStatusCancelled}:    true,
	{m.LessonStatusMakeUp, m.LessonStatusNoShow}:       true,
	{m.LessonStatusMakeUp, m.LessonStatusMakeUp}:       true, // reschedule
}

// CanTransition melaporkan apakah perpindahan from -> to diizinkan.
func CanTransition(from, to m.LessonStatus) bool {
	return allowedTransitions[statusPair{from: from, to: to}]
}

// Transition memvalidasi lalu menerapkan status baru ke lesson.
// Field turunan (conducted_at, cancellation_reason) diurus pemanggil.
func Transition(l *m.LessonModel, to m.LessonStatus) error {
	if !CanTransition(l.LessonStatus, to) {
		return &InvalidTransitionError{From: l.LessonStatus, To: to}
	}
	l.LessonStatus = to
	return nil
}
