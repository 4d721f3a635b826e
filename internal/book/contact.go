// Package book implements the contact store: an ordered name → numbers
// mapping, its line-oriented file codec, and a file-backed loader/saver.
package book

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Name length bounds, in characters.
const (
	MinNameLen = 2
	MaxNameLen = 50
)

var (
	// ErrNotFound indicates no contact exists under the given name.
	ErrNotFound = errors.New("book: contact not found")

	// ErrNumberNotFound indicates the contact does not list the given number.
	ErrNumberNotFound = errors.New("book: number not found")

	// ErrInvalidName indicates a name outside 2-50 characters or containing a comma or quote.
	ErrInvalidName = errors.New("book: invalid name")

	// ErrInvalidNumber indicates a number that does not match the number pattern.
	ErrInvalidNumber = errors.New("book: invalid number")
)

// numberPattern accepts an optional leading '+' followed by digits and spaces,
// 3 to 25 characters in total.
var numberPattern = regexp.MustCompile(`^(\+[0-9 ]{2,24}|[0-9 ]{3,25})$`)

// Contact is a named entry owning an ordered list of unique numbers.
type Contact struct {
	Name    string
	Numbers []string
}

// Match is a single (name, number) hit returned by Find.
type Match struct {
	Name   string
	Number string
}

// ValidateName checks the length and character restrictions on a contact name.
// Commas and double quotes are rejected because the file format cannot escape
// them, and surrounding whitespace because input lines are trimmed.
func ValidateName(name string) error {
	n := utf8.RuneCountInString(name)
	if n < MinNameLen || n > MaxNameLen {
		return fmt.Errorf("%w: %q must be %d-%d characters", ErrInvalidName, name, MinNameLen, MaxNameLen)
	}
	if strings.ContainsAny(name, `,"`) {
		return fmt.Errorf("%w: %q must not contain ',' or '\"'", ErrInvalidName, name)
	}
	if strings.TrimSpace(name) != name {
		return fmt.Errorf("%w: %q has surrounding whitespace", ErrInvalidName, name)
	}
	return nil
}

// ValidateNumber checks a number against the number pattern. Surrounding
// spaces are rejected since the file codec does not preserve them.
func ValidateNumber(number string) error {
	if !numberPattern.MatchString(number) || strings.TrimSpace(number) != number {
		return fmt.Errorf("%w: %q", ErrInvalidNumber, number)
	}
	return nil
}
