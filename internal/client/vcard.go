package client

import (
	"strings"

	"github.com/cardlink/cardlink-services/internal/apisvc/models"
)

// VCard renders a contact as a vCard 3.0 document, the portable way to
// hand a record to the device's address book.
func VCard(c models.Contact) string {
	var b strings.Builder
	writeLine := func(key, value string) {
		if value == "" {
			return
		}
		b.WriteString(key)
		b.WriteString(":")
		b.WriteString(escapeVCard(value))
		b.WriteString("\r\n")
	}

	b.WriteString("BEGIN:VCARD\r\n")
	b.WriteString("VERSION:3.0\r\n")
	b.WriteString("N:" + escapeVCard(c.LastName) + ";" + escapeVCard(c.FirstName) + ";;;\r\n")
	writeLine("FN", c.FullName())
	writeLine("NICKNAME", c.Nickname)
	writeLine("ORG", c.Company)
	writeLine("TITLE", c.Position)
	if c.Phone != "" {
		writeLine("TEL;TYPE=CELL", c.Phone)
	}
	for _, n := range c.AdditionalPhones {
		if strings.TrimSpace(n) != "" {
			writeLine("TEL;TYPE=VOICE", n)
		}
	}
	writeLine("EMAIL", c.Email)
	writeLine("URL", c.Website)
	writeLine("NOTE", c.Notes)
	writeLine("PHOTO;VALUE=URI", c.CardImage)
	b.WriteString("END:VCARD\r\n")
	return b.String()
}

func escapeVCard(s string) string {
	r := strings.NewReplacer(
		"\\", "\\\\",
		";", "\\;",
		",", "\\,",
		"\n", "\\n",
	)
	return r.Replace(s)
}
