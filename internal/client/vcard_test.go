package client

import (
	"strings"
	"testing"

	"github.com/cardlink/cardlink-services/internal/apisvc/models"
)

func TestVCardFullContact(t *testing.T) {
	c := models.Contact{
		FirstName:        "Jane",
		LastName:         "Doe",
		Nickname:         "JD",
		Position:         "Sales Manager",
		Company:          "Acme",
		Phone:            "081-234-5678",
		AdditionalPhones: []string{"02-123-4567", " "},
		Email:            "jane@acme.com",
		Website:          "www.acme.com",
		Notes:            "met at expo",
	}

	card := VCard(c)

	for _, want := range []string{
		"BEGIN:VCARD\r\n",
		"VERSION:3.0\r\n",
		"N:Doe;Jane;;;\r\n",
		"FN:Jane Doe\r\n",
		"NICKNAME:JD\r\n",
		"ORG:Acme\r\n",
		"TITLE:Sales Manager\r\n",
		"TEL;TYPE=CELL:081-234-5678\r\n",
		"TEL;TYPE=VOICE:02-123-4567\r\n",
		"EMAIL:jane@acme.com\r\n",
		"URL:www.acme.com\r\n",
		"NOTE:met at expo\r\n",
		"END:VCARD\r\n",
	} {
		if !strings.Contains(card, want) {
			t.Errorf("vCard missing %q:\n%s", want, card)
		}
	}

	if strings.Count(card, "TEL;TYPE=VOICE") != 1 {
		t.Error("blank additional phone should be skipped")
	}
}

func TestVCardEscapesSpecials(t *testing.T) {
	c := models.Contact{FirstName: "Acme", LastName: "Co; Ltd", Notes: "line1\nline2"}

	card := VCard(c)
	if !strings.Contains(card, "N:Co\\; Ltd;Acme;;;") {
		t.Errorf("semicolon not escaped:\n%s", card)
	}
	if !strings.Contains(card, "NOTE:line1\\nline2") {
		t.Errorf("newline not escaped:\n%s", card)
	}
}

func TestVCardOmitsEmptyFields(t *testing.T) {
	card := VCard(models.Contact{FirstName: "Solo"})

	for _, absent := range []string{"NICKNAME", "ORG", "TITLE", "TEL", "EMAIL", "URL", "NOTE", "PHOTO"} {
		if strings.Contains(card, absent) {
			t.Errorf("empty field %s rendered:\n%s", absent, card)
		}
	}
}
