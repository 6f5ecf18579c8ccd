package utils

import (
	"encoding/json"
	"fmt"
	"time"
)

// Duration reads and writes durations as Go duration strings, "500ms" or "10s".
type Duration time.Duration

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

func (d *Duration) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return fmt.Errorf("duration must be a string: %w", err)
	}
	val, err := time.ParseDuration(str)
	if err != nil {
		return err
	}
	*d = Duration(val)
	return nil
}

func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

type Time struct {
	time.Time
}

func (t Time) MarshalJSON() ([]byte, error) {
	formatted := t.UTC().Format("2006-01-02T15:04:05.000Z07:00")
	return []byte(`"` + formatted + `"`), nil
}
