package steps

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"
)

func (fc *FeatureContext) waitForDuration(duration string) error {
	d, err := time.ParseDuration(strings.TrimSpace(duration))
	if err != nil {
		return fmt.Errorf("parsing wait %q: %w", duration, err)
	}
	time.Sleep(d)
	return nil
}

func (fc *FeatureContext) theResponseStatusCodeShouldBe(code int) error {
	if fc.response == nil {
		return fmt.Errorf("no response recorded, expected status %d", code)
	}
	fc.require.Equal(code, fc.response.StatusCode, "unexpected status code")
	return nil
}

func (fc *FeatureContext) decodeBody(body io.ReadCloser, v any) error {
	defer body.Close()
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decoding %q: %w", string(data), err)
	}
	return nil
}

// eventually polls check until it returns nil or the timeout expires.
func eventually(timeout time.Duration, check func() error) error {
	deadline := time.Now().Add(timeout)
	for {
		err := check()
		if err == nil {
			return nil
		}
		if time.Now().After(deadline) {
			return err
		}
		time.Sleep(pollInterval)
	}
}
