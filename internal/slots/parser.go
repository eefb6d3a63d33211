package slots

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"
)

var (
	// ErrMalformedReply means the reply is not a JSON array of "HH:MM" strings.
	ErrMalformedReply = errors.New("malformed slot reply")
	// ErrNoSlots means the reply was a valid but empty array.
	ErrNoSlots = errors.New("no slots in reply")
)

// clock matches zero-padded 24-hour times; "24:00" stands for midnight at
// the Friday and Saturday close.
var clock = regexp.MustCompile(`^(?:(?:[01][0-9]|2[0-3]):[0-5][0-9]|24:00)$`)

// ParseSlots decodes a generator reply.  Order is preserved.
func ParseSlots(raw string) ([]string, error) {
	var times []string
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &times); err != nil {
		return nil, ErrMalformedReply
	}
	if len(times) == 0 {
		return nil, ErrNoSlots
	}
	for i, t := range times {
		t = strings.TrimSpace(t)
		if !clock.MatchString(t) {
			return nil, ErrMalformedReply
		}
		times[i] = t
	}
	return times, nil
}
