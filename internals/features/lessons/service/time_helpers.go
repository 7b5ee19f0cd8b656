// file: internals/features/lessons/service/time_helpers.go
package service

import "time"

/* =======================================================
   Helper waktu bersama.

   Kolom jam (time) disimpan sebagai time.Time dengan tanggal
   fix 2000-01-01; yang dipakai hanya komponen jam dindingnya.
   ======================================================= */

// isoWeekday: Senin=1 .. Minggu=7.
func isoWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

func startOfDayInLoc(t time.Time, loc *time.Location) time.Time {
	tt := t.In(loc)
	return time.Date(tt.Year(), tt.Month(), tt.Day(), 0, 0, 0, 0, loc)
}

// minutesOfDay mengabaikan tanggal, hanya jam dinding.
func minutesOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// todFromMinutes: balikkan menit-sejak-tengah-malam ke kolom time (tanggal fix).
func todFromMinutes(min int) time.Time {
	return time.Date(2000, 1, 1, min/60, min%60, 0, 0, time.UTC)
}

// combineLocalDateAndTOD: tanggal dari `date`, jam dinding dari `tod`,
// di lokasi tanggalnya.
func combineLocalDateAndTOD(date time.Time, tod time.Time) time.Time {
	return time.Date(
		date.Year(), date.Month(), date.Day(),
		tod.Hour(), tod.Minute(), tod.Second(), 0,
		date.Location(),
	)
}

func sameDate(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// overlaps: interval half-open [aStart,aEnd) vs [bStart,bEnd) dalam menit.
func overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && bStart < aEnd
}
