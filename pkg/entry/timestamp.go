package entry

import (
	"encoding/json"
	"fmt"
	"time"
)

// LayoutISO is the wire format for entry dates: UTC with millisecond
// precision and a literal Z.
const LayoutISO = "2006-01-02T15:04:05.000Z"

const layoutDisplay = "Jan 2, 2006, 03:04 PM"

func ParseTime(v string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, v)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

// Timestamp is a creation time that serializes as an ISO-8601 string.
type Timestamp struct {
	time.Time
}

// NewTimestamp truncates t to milliseconds in UTC so the value survives a
// JSON round trip unchanged.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t.UTC().Truncate(time.Millisecond)}
}

func (t Timestamp) SameDay(then time.Time) bool {
	if t.Local().Day() == then.Local().Day() &&
		t.Local().Month() == then.Local().Month() &&
		t.Local().Year() == then.Local().Year() {
		return true
	}
	return false
}

// ISO returns the stored string form. Date filters match against its prefix.
func (t Timestamp) ISO() string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(LayoutISO)
}

// Display formats the timestamp for humans in local time.
func (t Timestamp) Display() string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(layoutDisplay)
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", t.ISO())), nil
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	var timestamp string
	if err := json.Unmarshal(b, &timestamp); err != nil {
		return err
	}
	if timestamp == "" {
		t.Time = time.Time{}
		return nil
	}
	var err error
	t.Time, err = ParseTime(timestamp)
	return err
}

func (t Timestamp) String() string {
	return t.ISO()
}
