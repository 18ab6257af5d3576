package ocr

import (
	"reflect"
	"testing"
)

func TestFillSessionTapFlow(t *testing.T) {
	s := NewFillSession("John Smith\nAcme Corp", "firstName", "lastName", "company")

	if err := s.Select("firstName"); err != nil {
		t.Fatal(err)
	}
	s.Tap("John")

	if err := s.Select("lastName"); err != nil {
		t.Fatal(err)
	}
	s.Tap("Smith")

	if err := s.Select("company"); err != nil {
		t.Fatal(err)
	}
	s.Tap("Acme")
	s.Tap("Corp")

	want := map[string]string{
		"firstName": "John",
		"lastName":  "Smith",
		"company":   "Acme Corp",
	}
	if got := s.Values(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Values() = %v, want %v", got, want)
	}
}

func TestFillSessionTapWithoutActiveField(t *testing.T) {
	s := NewFillSession("John Smith", "firstName")

	s.Tap("John")
	if got := s.Value("firstName"); got != "" {
		t.Fatalf("tap without selection wrote %q", got)
	}
}

func TestFillSessionSelectUnknownField(t *testing.T) {
	s := NewFillSession("John Smith", "firstName")

	if err := s.Select("salary"); err == nil {
		t.Fatal("expected error for unknown field")
	}
	if s.Active() != "" {
		t.Fatalf("failed select changed active field to %q", s.Active())
	}
}

func TestFillSessionClearAndSet(t *testing.T) {
	s := NewFillSession("", "notes")

	s.Set("notes", "met at conference")
	if got := s.Value("notes"); got != "met at conference" {
		t.Fatalf("Set failed, got %q", got)
	}

	s.Clear("notes")
	if got := s.Value("notes"); got != "" {
		t.Fatalf("Clear failed, got %q", got)
	}
}

func TestFillSessionFieldsOrder(t *testing.T) {
	s := NewFillSession("", "firstName", "lastName", "phone")

	want := []string{"firstName", "lastName", "phone"}
	if got := s.Fields(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Fields() = %v, want %v", got, want)
	}
}
