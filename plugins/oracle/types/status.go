package types

import (
	"encoding/json"
	"fmt"
)

// StatusText is the lifecycle state of a prophecy
type StatusText int

const (
	PendingStatusText StatusText = iota
	SuccessStatusText
	FailedStatusText
)

var statusTextToString = [...]string{"pending", "success", "failed"}

func (text StatusText) String() string {
	if text < PendingStatusText || text > FailedStatusText {
		return "unknown"
	}
	return statusTextToString[text]
}

func StatusTextFromString(s string) (StatusText, error) {
	for i, str := range statusTextToString {
		if str == s {
			return StatusText(i), nil
		}
	}
	return PendingStatusText, fmt.Errorf("unknown prophecy status %q", s)
}

func (text StatusText) MarshalJSON() ([]byte, error) {
	return json.Marshal(text.String())
}

func (text *StatusText) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := StatusTextFromString(s)
	if err != nil {
		return err
	}
	*text = parsed
	return nil
}
