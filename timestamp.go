package sigserlic

import (
	"errors"
	"time"
)

// Timestamps travel as RFC 3339 UTC text: unambiguous, sortable, and
// byte-stable across the signing and verifying sides. Sub-second digits
// are kept when present.

// timeNow is the wall-clock capability. Overridden in tests.
var timeNow = func() time.Time { return time.Now().UTC() }

// Bounds of the representable calendar range. Unix seconds outside of
// them cannot be rendered as RFC 3339 text and are rejected up front.
var (
	minTimestamp = time.Date(1, time.January, 1, 0, 0, 0, 0, time.UTC)
	maxTimestamp = time.Date(9999, time.December, 31, 23, 59, 59, 0, time.UTC)
)

func parseUnixTimestamp(sec int64) (time.Time, error) {
	ts := time.Unix(sec, 0).UTC()
	if ts.Before(minTimestamp) || ts.After(maxTimestamp) {
		return time.Time{}, &TimestampError{Unix: sec, cause: errors.New("outside representable range")}
	}
	return ts, nil
}

func formatTimestamp(ts time.Time) string {
	return ts.UTC().Format(time.RFC3339Nano)
}

// parseTimestampText decodes the required form: absent (empty) or
// unparsable text is a hard failure.
func parseTimestampText(text string) (time.Time, error) {
	ts, err := time.Parse(time.RFC3339Nano, text)
	if err != nil {
		return time.Time{}, &TimestampError{Text: text, cause: err}
	}
	return ts.UTC(), nil
}

// parseOptionalTimestampText decodes the optional form: a missing value
// is simply unset, but a present unparsable value is still a hard
// failure. Partial tolerance would silently widen validity windows.
func parseOptionalTimestampText(text *string) (*time.Time, error) {
	if text == nil {
		return nil, nil
	}
	ts, err := parseTimestampText(*text)
	if err != nil {
		return nil, err
	}
	return &ts, nil
}

func optionalTimestampText(ts *time.Time) *string {
	if ts == nil {
		return nil
	}
	text := formatTimestamp(*ts)
	return &text
}
