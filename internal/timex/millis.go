package timex

import (
	"encoding/json"
	"time"
)

// Millis is a point in time persisted as epoch milliseconds.
type Millis struct {
	time.Time
}

// FromTime truncates t to millisecond precision.
func FromTime(t time.Time) Millis {
	return Millis{Time: time.UnixMilli(t.UnixMilli())}
}

func (m Millis) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.UnixMilli())
}

func (m *Millis) UnmarshalJSON(b []byte) error {
	var ms int64
	if err := json.Unmarshal(b, &ms); err != nil {
		return err
	}
	m.Time = time.UnixMilli(ms)
	return nil
}
