package ocr

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// fieldLabels is the vocabulary of label prefixes stripped from OCR
// pieces ("Tel. 081...", "Email: x@y.com"). Longer alternatives come
// before their prefixes so "Extension" is never half-stripped as "Ext".
var fieldLabels = []string{
	"Extension", "Ext",
	"E-mail", "Email", "Mail",
	"Mobile", "Office",
	"Phone", "Ph", "Tel", "Fax",
	"Line ID", "Line",
	"Wechat", "WhatsApp",
	"Facebook", "FB",
	"Instagram", "IG",
	"Twitter", "X",
	"LinkedIn",
}

var (
	segmentRe   = regexp.MustCompile(`[\n,;]`)
	gluedRe     = regexp.MustCompile(`\s{2,}|\t+`)
	phoneLikeRe = regexp.MustCompile(`\+?\d[\d\s()\-]{5,}`)
	alphaWordRe = regexp.MustCompile(`^[A-Za-z]+$`)

	labelPrefixRe = regexp.MustCompile(`(?i)^` + labelAlternation() + `[.:\s]*`)
	bareLabelRe   = regexp.MustCompile(`(?i)^` + labelAlternation() + `\.?$`)
)

func labelAlternation() string {
	alts := make([]string, len(fieldLabels))
	for i, w := range fieldLabels {
		// "Line ID" also appears glued as "LineID" in OCR output
		alts[i] = strings.ReplaceAll(regexp.QuoteMeta(w), " ", `\s*`)
	}
	return "(?:" + strings.Join(alts, "|") + ")"
}

// Tokenize turns one raw OCR text blob into the ordered, deduplicated
// token candidates the manual-fill screen offers for field assignment.
//
// The pipeline: split on newline/comma/semicolon, re-split segments
// glued by runs of spaces or tabs, strip one leading field label, drop
// fragments of one character and lone labels, break apart pieces that
// hold several phone-shaped substrings, expand two-alphabetic-word
// pieces into the pair plus each word, then dedupe case-insensitively
// keeping first-seen order.
//
// Note: the two-word expansion treats any alphabetic pair as a
// personal name, so "Acme Industries" also yields "Acme" and
// "Industries". That is the observed behavior of the feature and is
// kept as-is.
//
// Tokenize is pure and total: malformed input degrades to fewer
// tokens, never a panic.
func Tokenize(raw string) []string {
	var pieces []string
	for _, seg := range segmentRe.Split(raw, -1) {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}
		for _, p := range gluedRe.Split(seg, -1) {
			pieces = append(pieces, strings.TrimSpace(p))
		}
	}

	var kept []string
	for _, p := range pieces {
		p = strings.TrimSpace(labelPrefixRe.ReplaceAllString(p, ""))
		if utf8.RuneCountInString(p) <= 1 || bareLabelRe.MatchString(p) {
			continue
		}
		kept = append(kept, p)
	}

	var split []string
	for _, p := range kept {
		nums := phoneLikeRe.FindAllString(p, -1)
		if len(nums) > 1 {
			for _, n := range nums {
				split = append(split, strings.TrimSpace(n))
			}
			continue
		}
		split = append(split, p)
	}

	var expanded []string
	for _, p := range split {
		words := strings.Fields(p)
		if len(words) == 2 && alphaWordRe.MatchString(words[0]) && alphaWordRe.MatchString(words[1]) {
			expanded = append(expanded, p, words[0], words[1])
			continue
		}
		expanded = append(expanded, p)
	}

	seen := make(map[string]struct{}, len(expanded))
	tokens := make([]string, 0, len(expanded))
	for _, t := range expanded {
		key := strings.ToLower(t)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		tokens = append(tokens, t)
	}
	return tokens
}
