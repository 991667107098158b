package domain

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var folioPattern = regexp.MustCompile(`^NV-\d{14}-[A-Z0-9]{4}$`)

func TestNewFolio_Format(t *testing.T) {
	now := time.Date(2026, 3, 15, 18, 4, 5, 0, time.UTC)

	folio := NewFolio(now)

	assert.Regexp(t, folioPattern, folio)
	assert.Equal(t, "NV-20260315180405-", folio[:18])
}

func TestNewFolio_UsesUTC(t *testing.T) {
	loc := time.FixedZone("UTC-6", -6*60*60)
	now := time.Date(2026, 3, 15, 18, 0, 0, 0, loc)

	folio := NewFolio(now)

	// 18:00 UTC-6 is midnight UTC the next day.
	assert.Equal(t, "NV-20260316000000-", folio[:18])
}

func TestNewFolio_SuffixVaries(t *testing.T) {
	now := time.Now()
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		seen[NewFolio(now)] = true
	}

	// Collisions in 50 draws of a 4-char random suffix are implausible.
	assert.Greater(t, len(seen), 1)
}
