package models

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
)

func TestFullName(t *testing.T) {
	cases := []struct {
		first, last, want string
	}{
		{"Jane", "Doe", "Jane Doe"},
		{"Jane", "", "Jane"},
		{"", "Doe", "Doe"},
		{"", "", ""},
	}
	for _, c := range cases {
		got := Contact{FirstName: c.first, LastName: c.last}.FullName()
		if got != c.want {
			t.Errorf("FullName(%q, %q) = %q, want %q", c.first, c.last, got, c.want)
		}
	}
}

func TestAllNumbers(t *testing.T) {
	c := Contact{
		Phone:            "081-234-5678",
		AdditionalPhones: []string{" 02-123-4567 ", "081-234-5678", "", "02-123-4567"},
	}

	want := []string{"081-234-5678", "02-123-4567"}
	if got := c.AllNumbers(); !reflect.DeepEqual(got, want) {
		t.Fatalf("AllNumbers() = %v, want %v", got, want)
	}
}

func TestContactWireFormat(t *testing.T) {
	c := Contact{ID: "abc", UserID: "owner", FirstName: "Jane"}

	data, err := json.Marshal(c)
	if err != nil {
		t.Fatal(err)
	}
	s := string(data)

	if !strings.Contains(s, `"_id":"abc"`) {
		t.Errorf("id not serialized as _id: %s", s)
	}
	if strings.Contains(s, "owner") {
		t.Errorf("user id leaked into wire format: %s", s)
	}
}
