package calculator

import "github.com/mmynk/mokkicalc/internal/models"

// RecomputeAttendance refreshes Day.AttendanceCounts for every day and meal.
//
// A meal that is not served on a day cannot be claimed: every person's
// attendance flag for it is cleared and the day's count is reset to zero.
// For served meals the count is the number of present people eating it.
//
// People must be aligned with Days (see models.Trip.Validate).
func RecomputeAttendance(t *models.Trip) {
	for i := range t.Days {
		day := &t.Days[i]
		for _, meal := range models.AllMeals {
			if !day.Servings.Has(meal) {
				for p := range t.People {
					t.People[p].Attendance[i].Servings.Set(meal, false)
				}
				day.AttendanceCounts.Set(meal, 0)
				continue
			}

			count := 0
			for _, p := range t.People {
				a := p.Attendance[i]
				if a.Present && a.Servings.Has(meal) {
					count++
				}
			}
			day.AttendanceCounts.Set(meal, count)
		}
	}
}
