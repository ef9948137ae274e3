package model

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Status mirrors the closed Status enum of the remote contract.
// Zero means unspecified.
type Status int32

const (
	StatusUnspecified Status = 0
	StatusOpen        Status = 1
	StatusInProgress  Status = 2
	StatusDone        Status = 3
)

var statusNames = map[Status]string{
	StatusUnspecified: "STATUS_UNSPECIFIED",
	StatusOpen:        "STATUS_OPEN",
	StatusInProgress:  "STATUS_IN_PROGRESS",
	StatusDone:        "STATUS_DONE",
}

// Statuses lists every known status in enum order.
func Statuses() []Status {
	return []Status{StatusUnspecified, StatusOpen, StatusInProgress, StatusDone}
}

// Known reports whether s is one of the enumerated values.
func (s Status) Known() bool {
	_, ok := statusNames[s]
	return ok
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return strconv.Itoa(int(s))
}

// Label is the short lower-case form used by the terminal front ends.
func (s Status) Label() string {
	if !s.Known() {
		return strconv.Itoa(int(s))
	}
	return strings.ToLower(strings.TrimPrefix(s.String(), "STATUS_"))
}

// ParseStatus accepts a number ("2"), the enum name ("STATUS_IN_PROGRESS")
// or the short label ("in_progress"), case-insensitively. Only known values
// are returned.
func ParseStatus(text string) (Status, error) {
	if n, err := strconv.ParseInt(text, 10, 32); err == nil {
		s := Status(n)
		if !s.Known() {
			return StatusUnspecified, fmt.Errorf("unknown status %d", n)
		}
		return s, nil
	}
	norm := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(text), "-", "_"))
	if !strings.HasPrefix(norm, "STATUS_") {
		norm = "STATUS_" + norm
	}
	for s, name := range statusNames {
		if name == norm {
			return s, nil
		}
	}
	return StatusUnspecified, fmt.Errorf("unknown status %q", text)
}

// MarshalJSON writes the enum name, the way protojson does.
func (s Status) MarshalJSON() ([]byte, error) {
	if !s.Known() {
		return []byte(strconv.Itoa(int(s))), nil
	}
	return json.Marshal(s.String())
}

// UnmarshalJSON accepts either the enum name or its number. Numbers are kept
// as sent, like the binary decoder does. A name this client does not know
// decodes as StatusUnspecified; the service owns the enum and may add values.
func (s *Status) UnmarshalJSON(b []byte) error {
	var n int32
	if err := json.Unmarshal(b, &n); err == nil {
		*s = Status(n)
		return nil
	}
	var name string
	if err := json.Unmarshal(b, &name); err != nil {
		return fmt.Errorf("status: %w", err)
	}
	*s = StatusUnspecified
	for v, known := range statusNames {
		if known == name {
			*s = v
		}
	}
	return nil
}
