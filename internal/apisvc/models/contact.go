package models

import (
	"strings"
	"time"
)

// Contact represents the contacts table in the database. JSON names
// follow the mobile client wire contract, including the "_id" key.
type Contact struct {
	ID               string    `json:"_id"`
	UserID           string    `json:"-"`
	FirstName        string    `json:"firstName"`
	LastName         string    `json:"lastName"`
	Nickname         string    `json:"nickname,omitempty"`
	Position         string    `json:"position,omitempty"`
	Phone            string    `json:"phone,omitempty"`
	AdditionalPhones []string  `json:"additionalPhones"`
	Email            string    `json:"email,omitempty"`
	Company          string    `json:"company,omitempty"`
	Website          string    `json:"website,omitempty"`
	Notes            string    `json:"notes,omitempty"`
	IsFavorite       bool      `json:"isFavorite"`
	CardImage        string    `json:"cardImage,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// FullName joins first and last name, trimming when one is empty.
func (c Contact) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// AllNumbers returns the primary phone followed by the additional
// numbers, trimmed and deduplicated, preserving order.
func (c Contact) AllNumbers() []string {
	seen := make(map[string]struct{})
	var nums []string
	for _, n := range append([]string{c.Phone}, c.AdditionalPhones...) {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		nums = append(nums, n)
	}
	return nums
}
