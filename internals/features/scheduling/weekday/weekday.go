// Package weekday maps the free-text schedule day stored on a class to a
// canonical two-letter code and a time.Weekday index.
package weekday

import (
	"strings"
	"time"
)

type Day struct {
	Code  string       // SU, MO, TU, WE, TH, FR, SA
	Index time.Weekday // Sunday = 0
}

var (
	sunday    = Day{Code: "SU", Index: time.Sunday}
	monday    = Day{Code: "MO", Index: time.Monday}
	tuesday   = Day{Code: "TU", Index: time.Tuesday}
	wednesday = Day{Code: "WE", Index: time.Wednesday}
	thursday  = Day{Code: "TH", Index: time.Thursday}
	friday    = Day{Code: "FR", Index: time.Friday}
	saturday  = Day{Code: "SA", Index: time.Saturday}
)

var dayCodes = map[string]Day{
	"SU": sunday, "SUN": sunday, "SUNDAY": sunday, "MINGGU": sunday,
	"MO": monday, "MON": monday, "MONDAY": monday, "SENIN": monday,
	"TU": tuesday, "TUE": tuesday, "TUESDAY": tuesday, "SELASA": tuesday,
	"WE": wednesday, "WED": wednesday, "WEDNESDAY": wednesday, "RABU": wednesday,
	"TH": thursday, "THU": thursday, "THURSDAY": thursday, "KAMIS": thursday,
	"FR": friday, "FRI": friday, "FRIDAY": friday, "JUMAT": friday, "JUM'AT": friday,
	"SA": saturday, "SAT": saturday, "SATURDAY": saturday, "SABTU": saturday,
}

// Normalize is case and whitespace insensitive. ok is false for anything it
// does not recognise.
func Normalize(text string) (Day, bool) {
	d, ok := dayCodes[strings.ToUpper(strings.TrimSpace(text))]
	return d, ok
}
