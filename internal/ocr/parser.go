package ocr

import (
	"regexp"
	"strings"
)

// FieldValue wraps a single extracted field, matching the wire shape
// the client expects: {"firstName": {"value": "Jane"}, ...}.
type FieldValue struct {
	Value string `json:"value" bson:"value"`
}

// Parsed holds the per-field extraction result for one card.
type Parsed struct {
	FirstName        FieldValue   `json:"firstName" bson:"firstName"`
	LastName         FieldValue   `json:"lastName" bson:"lastName"`
	Nickname         FieldValue   `json:"nickname" bson:"nickname"`
	Position         FieldValue   `json:"position" bson:"position"`
	Phone            FieldValue   `json:"phone" bson:"phone"`
	AdditionalPhones []FieldValue `json:"additionalPhones" bson:"additionalPhones"`
	Email            FieldValue   `json:"email" bson:"email"`
	Company          FieldValue   `json:"company" bson:"company"`
	Website          FieldValue   `json:"website" bson:"website"`
	Notes            FieldValue   `json:"notes" bson:"notes"`
}

var (
	emailRe   = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)
	websiteRe = regexp.MustCompile(`(?i)\b(?:https?://|www\.)[^\s,;]+`)

	positionWords = []string{
		"manager", "director", "engineer", "developer", "designer",
		"consultant", "officer", "president", "founder", "partner",
		"ceo", "cto", "cfo", "coo", "sales", "marketing", "head of",
	}
	companyWords = []string{
		"co.", "ltd", "inc", "llc", "corp", "company", "limited",
		"gmbh", "group", "studio", "agency",
	}
)

// ParseFields extracts contact fields from raw OCR text with simple
// line heuristics: first email and website matches win, phone-shaped
// substrings become primary plus additional phones, the first line of
// two alphabetic words becomes the name, and lines carrying job-title
// or company keywords fill position and company. Unclaimed lines are
// left out rather than guessed; the user fixes gaps in manual fill.
func ParseFields(rawText string) Parsed {
	var p Parsed

	if m := emailRe.FindString(rawText); m != "" {
		p.Email.Value = m
	}
	if m := websiteRe.FindString(rawText); m != "" {
		p.Website.Value = strings.TrimRight(m, ".")
	}

	var phones []string
	for _, m := range phoneLikeRe.FindAllString(rawText, -1) {
		n := strings.TrimSpace(m)
		if digitCount(n) >= 7 {
			phones = append(phones, n)
		}
	}
	if len(phones) > 0 {
		p.Phone.Value = phones[0]
		for _, n := range phones[1:] {
			p.AdditionalPhones = append(p.AdditionalPhones, FieldValue{Value: n})
		}
	}

	for _, line := range strings.Split(rawText, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || emailRe.MatchString(line) || websiteRe.MatchString(line) {
			continue
		}
		lower := strings.ToLower(line)

		// keyword checks run first so "Sales Manager" is a position,
		// not a name
		if p.Position.Value == "" && containsAny(lower, positionWords) {
			p.Position.Value = line
			continue
		}
		if p.Company.Value == "" && containsAny(lower, companyWords) {
			p.Company.Value = line
			continue
		}
		if p.FirstName.Value == "" {
			words := strings.Fields(line)
			if len(words) == 2 && alphaWordRe.MatchString(words[0]) && alphaWordRe.MatchString(words[1]) {
				p.FirstName.Value = words[0]
				p.LastName.Value = words[1]
			}
		}
	}
	return p
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

func digitCount(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}
