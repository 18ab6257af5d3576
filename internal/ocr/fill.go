package ocr

import (
	"fmt"
)

// FillSession is the manual-fill state: a list of token candidates, a
// set of named fields and one active target. Tapping a token appends
// it to the active field, separated by a single space when the field
// already holds text. There is no per-token undo, only whole-field
// clear, matching the screen it models.
type FillSession struct {
	Tokens []string

	fields map[string]string
	order  []string
	active string
}

// NewFillSession tokenizes raw OCR text and registers the target
// fields in the given order.
func NewFillSession(rawText string, fieldNames ...string) *FillSession {
	s := &FillSession{
		Tokens: Tokenize(rawText),
		fields: make(map[string]string, len(fieldNames)),
		order:  append([]string(nil), fieldNames...),
	}
	for _, name := range fieldNames {
		s.fields[name] = ""
	}
	return s
}

// Select makes the named field the target for subsequent taps.
func (s *FillSession) Select(field string) error {
	if _, ok := s.fields[field]; !ok {
		return fmt.Errorf("unknown field %q", field)
	}
	s.active = field
	return nil
}

// Active returns the currently selected field, or "" when none is.
func (s *FillSession) Active() string { return s.active }

// Tap appends the token text to the active field. Taps with no active
// field are ignored, as on the screen.
func (s *FillSession) Tap(token string) {
	if s.active == "" {
		return
	}
	cur := s.fields[s.active]
	if cur != "" {
		s.fields[s.active] = cur + " " + token
		return
	}
	s.fields[s.active] = token
}

// Value returns the current text of the named field.
func (s *FillSession) Value(field string) string { return s.fields[field] }

// Clear empties the named field.
func (s *FillSession) Clear(field string) {
	if _, ok := s.fields[field]; ok {
		s.fields[field] = ""
	}
}

// Set overwrites a field directly, for prefilled values.
func (s *FillSession) Set(field, value string) {
	if _, ok := s.fields[field]; ok {
		s.fields[field] = value
	}
}

// Fields returns the registered field names in registration order.
func (s *FillSession) Fields() []string {
	return append([]string(nil), s.order...)
}

// Values returns a copy of all field values.
func (s *FillSession) Values() map[string]string {
	out := make(map[string]string, len(s.fields))
	for k, v := range s.fields {
		out[k] = v
	}
	return out
}
