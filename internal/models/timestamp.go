package models

import (
	"strconv"
	"time"
)

// Timestamp is an instant with microsecond resolution. On the wire it is an
// integer count of microseconds since the Unix epoch.
type Timestamp time.Time

// FromMicros returns the Timestamp us microseconds after the epoch.
// Every int64 value is representable, including negative ones.
func FromMicros(us int64) Timestamp {
	return Timestamp(time.UnixMicro(us).UTC())
}

// Micros returns the number of microseconds since the epoch.
func (t Timestamp) Micros() int64 {
	return time.Time(t).UnixMicro()
}

// Time returns t as a time.Time in UTC.
func (t Timestamp) Time() time.Time {
	return time.Time(t)
}

// IsZeroEpoch reports whether t is exactly the Unix epoch.
func (t Timestamp) IsZeroEpoch() bool {
	return t.Micros() == 0
}

// MarshalJSON implements the json.Marshaler interface.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return strconv.AppendInt(nil, t.Micros(), 10), nil
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if isNull(data) {
		return nil
	}
	us, err := parseInt("", "", data)
	if err != nil {
		return err
	}
	*t = FromMicros(us)
	return nil
}
