package ocr

import "testing"

func TestParseFieldsFullCard(t *testing.T) {
	raw := "Jane Doe\nSales Manager\nAcme Co., Ltd.\nTel: 081-234-5678\njane@acme.com\nwww.acme.com"

	p := ParseFields(raw)

	if p.FirstName.Value != "Jane" || p.LastName.Value != "Doe" {
		t.Errorf("name = %q %q, want Jane Doe", p.FirstName.Value, p.LastName.Value)
	}
	if p.Position.Value != "Sales Manager" {
		t.Errorf("position = %q, want Sales Manager", p.Position.Value)
	}
	if p.Company.Value != "Acme Co., Ltd." {
		t.Errorf("company = %q", p.Company.Value)
	}
	if p.Phone.Value != "081-234-5678" {
		t.Errorf("phone = %q", p.Phone.Value)
	}
	if p.Email.Value != "jane@acme.com" {
		t.Errorf("email = %q", p.Email.Value)
	}
	if p.Website.Value != "www.acme.com" {
		t.Errorf("website = %q", p.Website.Value)
	}
}

func TestParseFieldsPositionBeforeName(t *testing.T) {
	// "Sales Manager" is two alphabetic words but must land in
	// position, not the name.
	p := ParseFields("Sales Manager\nJane Doe")

	if p.Position.Value != "Sales Manager" {
		t.Errorf("position = %q", p.Position.Value)
	}
	if p.FirstName.Value != "Jane" || p.LastName.Value != "Doe" {
		t.Errorf("name = %q %q", p.FirstName.Value, p.LastName.Value)
	}
}

func TestParseFieldsAdditionalPhones(t *testing.T) {
	p := ParseFields("Office 02-123-4567 x 081-999-8888")

	if p.Phone.Value != "02-123-4567" {
		t.Fatalf("phone = %q", p.Phone.Value)
	}
	if len(p.AdditionalPhones) != 1 || p.AdditionalPhones[0].Value != "081-999-8888" {
		t.Fatalf("additional phones = %v", p.AdditionalPhones)
	}
}

func TestParseFieldsShortNumbersIgnored(t *testing.T) {
	// fewer than seven digits is a postcode or house number, not a
	// phone
	p := ParseFields("Suite 120 400\nJane Doe")

	if p.Phone.Value != "" {
		t.Errorf("phone = %q, want empty", p.Phone.Value)
	}
}

func TestParseFieldsEmpty(t *testing.T) {
	p := ParseFields("")

	if p.FirstName.Value != "" || p.Email.Value != "" || p.Phone.Value != "" {
		t.Errorf("expected zero value, got %+v", p)
	}
}
