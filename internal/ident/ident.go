// Package ident converts between the text form of an item identifier, as
// typed into a form field, and the 64-bit integer the wire protocol carries.
package ident

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidIdentifier matches every failure returned by Encode.
var ErrInvalidIdentifier = errors.New("invalid identifier")

// Error describes why a piece of text is not an identifier.
type Error struct {
	Text   string
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("invalid identifier %q: %s", e.Text, e.Reason)
}

func (e *Error) Is(target error) bool { return target == ErrInvalidIdentifier }

// Encode parses a decimal string into an identifier. It never truncates or
// wraps: anything outside the int64 range is rejected. Only the canonical
// form is accepted, so Decode(Encode(text)) == text for every accepted text:
// no sign other than a leading '-', no leading zeros and no "-0".
func Encode(text string) (int64, error) {
	if text == "" {
		return 0, &Error{Text: text, Reason: "empty"}
	}
	if text[0] == '+' {
		return 0, &Error{Text: text, Reason: "not a number"}
	}
	if digits := strings.TrimPrefix(text, "-"); len(digits) > 0 && digits[0] == '0' && text != "0" {
		return 0, &Error{Text: text, Reason: "not canonical"}
	}
	id, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, &Error{Text: text, Reason: "out of range"}
		}
		return 0, &Error{Text: text, Reason: "not a number"}
	}
	return id, nil
}

// Decode renders an identifier for display.
func Decode(id int64) string {
	return strconv.FormatInt(id, 10)
}
