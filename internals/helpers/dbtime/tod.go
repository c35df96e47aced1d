// file: internals/helpers/dbtime/tod.go
package dbtime

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Tod: jam mulai kelas (HH:mm[:ss]) tanpa tanggal & zona.
type Tod struct {
	Hour   int
	Minute int
	Second int
}

func ParseTod(s string) (Tod, error) {
	var t Tod
	return t, t.parse(s)
}

func MustTod(s string) Tod {
	t, err := ParseTod(s)
	if err != nil {
		panic(err)
	}
	return t
}

func (t *Tod) parse(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		*t = Tod{}
		return nil
	}
	if len(s) == 5 { // "HH:MM"
		s += ":00"
	}
	// postgres kadang kirim "HH:MM:SS.ffffff"
	if i := strings.IndexByte(s, '.'); i > 0 {
		s = s[:i]
	}
	tt, err := time.Parse("15:04:05", s)
	if err != nil {
		return fmt.Errorf("tod: invalid time %q (want HH:mm or HH:mm:ss)", s)
	}
	*t = Tod{Hour: tt.Hour(), Minute: tt.Minute(), Second: tt.Second()}
	return nil
}

// On menempelkan jam ini ke tanggal sipil d di loc.
func (t Tod) On(d time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(d.Year(), d.Month(), d.Day(), t.Hour, t.Minute, t.Second, 0, loc)
}

func (t Tod) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
}

// Scan: terima time.Time atau string ("HH:MM[:SS]")
func (t *Tod) Scan(v any) error {
	switch x := v.(type) {
	case time.Time:
		*t = Tod{Hour: x.Hour(), Minute: x.Minute(), Second: x.Second()}
		return nil
	case []byte:
		return t.parse(string(x))
	case string:
		return t.parse(x)
	case nil:
		*t = Tod{}
		return nil
	default:
		return fmt.Errorf("tod: unsupported Scan type %T", v)
	}
}

// Value: kirim "HH:MM:SS" agar Postgres TIME paham
func (t Tod) Value() (driver.Value, error) {
	return t.String(), nil
}

func (t Tod) MarshalJSON() ([]byte, error) {
	return json.Marshal(fmt.Sprintf("%02d:%02d", t.Hour, t.Minute))
}

func (t *Tod) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	return t.parse(s)
}
