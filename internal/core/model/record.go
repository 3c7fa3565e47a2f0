package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrMalformedRecord indicates a persisted line that cannot be decoded.
var ErrMalformedRecord = errors.New("malformed session record")

// RecordTimeLayout is the ISO local date-time written for each record.
// Fractional seconds are emitted only when present.
const RecordTimeLayout = "2006-01-02T15:04:05.999999999"

// Record is the persisted summary of one finished session.
type Record struct {
	Timestamp    time.Time
	Goal         string
	FocusMinutes int64
	Intervals    int
}

// Line encodes the record without the trailing newline:
// timestamp,goal,focusMinutes,intervals with `\` and `,` escaped in goal.
func (record Record) Line() string {
	return strings.Join([]string{
		record.Timestamp.Format(RecordTimeLayout),
		escapeField(record.Goal),
		strconv.FormatInt(record.FocusMinutes, 10),
		strconv.Itoa(record.Intervals),
	}, ",")
}

// ParseRecord decodes one line in the local time zone. Fields after the
// fourth are ignored.
func ParseRecord(line string) (Record, error) {
	return ParseRecordIn(line, time.Local)
}

// ParseRecordIn decodes one line, interpreting the timestamp in location.
func ParseRecordIn(line string, location *time.Location) (Record, error) {
	fields := splitEscaped(line)
	if len(fields) < 4 {
		return Record{}, fmt.Errorf("%w: expected 4 fields, got %d", ErrMalformedRecord, len(fields))
	}

	timestamp, err := parseLocalDateTime(fields[0], location)
	if err != nil {
		return Record{}, fmt.Errorf("%w: timestamp %q", ErrMalformedRecord, fields[0])
	}
	minutes, err := strconv.ParseInt(strings.TrimSpace(fields[2]), 10, 64)
	if err != nil {
		return Record{}, fmt.Errorf("%w: focus minutes %q", ErrMalformedRecord, fields[2])
	}
	intervals, err := strconv.Atoi(strings.TrimSpace(fields[3]))
	if err != nil {
		return Record{}, fmt.Errorf("%w: intervals %q", ErrMalformedRecord, fields[3])
	}

	return Record{
		Timestamp:    timestamp,
		Goal:         fields[1],
		FocusMinutes: minutes,
		Intervals:    intervals,
	}, nil
}

func parseLocalDateTime(value string, location *time.Location) (time.Time, error) {
	// Parsing accepts a fractional second even when the layout omits it.
	parsed, err := time.ParseInLocation("2006-01-02T15:04:05", value, location)
	if err == nil {
		return parsed, nil
	}
	return time.ParseInLocation("2006-01-02T15:04", value, location)
}

var lineBreaks = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ")

// SingleLine replaces line breaks with spaces. A goal is stored on one log
// line, so it cannot hold a break.
func SingleLine(text string) string {
	return lineBreaks.Replace(text)
}

func escapeField(text string) string {
	text = SingleLine(text)
	text = strings.ReplaceAll(text, `\`, `\\`)
	return strings.ReplaceAll(text, ",", `\,`)
}

// splitEscaped splits on unescaped commas and unescapes each field.
func splitEscaped(line string) []string {
	var fields []string
	var current strings.Builder
	escaping := false
	for _, ch := range line {
		switch {
		case escaping:
			current.WriteRune(ch)
			escaping = false
		case ch == '\\':
			escaping = true
		case ch == ',':
			fields = append(fields, current.String())
			current.Reset()
		default:
			current.WriteRune(ch)
		}
	}
	return append(fields, current.String())
}
