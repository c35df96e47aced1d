// file: internals/helpers/dbtime/clock.go
package dbtime

import (
	"strings"
	"time"
)

// Clock dipakai semua perhitungan horizon/backfill supaya "sekarang" bisa dipin di test.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

type FixedClock struct{ T time.Time }

func (c FixedClock) Now() time.Time { return c.T }

// fallback kalau tzdata tidak tersedia di container
var jakartaFixed = time.FixedZone("WIB", 7*60*60)

// LoadScheduleLocation:
// 1) nama zona dari config (mis. "Asia/Jakarta")
// 2) fallback ke Asia/Jakarta
// 3) fallback terakhir: offset tetap +07:00
func LoadScheduleLocation(name string) *time.Location {
	if s := strings.TrimSpace(name); s != "" {
		if loc, err := time.LoadLocation(s); err == nil {
			return loc
		}
	}
	if loc, err := time.LoadLocation("Asia/Jakarta"); err == nil {
		return loc
	}
	return jakartaFixed
}

// DateOf: tanggal sipil dari t di loc, jam 00:00.
func DateOf(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	lt := t.In(loc)
	return time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, loc)
}

// CivilDate: ambil Y/M/D apa adanya (kolom DATE tidak punya zona) lalu tempel ke loc.
func CivilDate(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

func AddWeeks(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, 7*n)
}

// AlignToWeekday: maju ke hari target pertama (hari yang sama tidak bergeser).
func AlignToWeekday(d time.Time, target time.Weekday) time.Time {
	delta := (int(target) - int(d.Weekday()) + 7) % 7
	return d.AddDate(0, 0, delta)
}

func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}
