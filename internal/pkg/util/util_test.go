package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDay_UsesOwnCalendarDate(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*3600)
	local := time.Date(2025, 12, 16, 1, 30, 0, 0, loc)

	assert.Equal(t, time.Date(2025, 12, 16, 0, 0, 0, 0, time.UTC), Day(local))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-12-16")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 12, 16, 0, 0, 0, 0, time.UTC), d)
	assert.Equal(t, "2025-12-16", FormatDate(d))

	_, err = ParseDate("16/12/2025")
	assert.Error(t, err)
}

func TestDirtyMember_RoundTrip(t *testing.T) {
	date := time.Date(2025, 12, 16, 0, 0, 0, 0, time.UTC)
	member := DirtyMember(42, date)
	assert.Equal(t, "42:2025-12-16", member)

	userID, parsed, err := ParseDirtyMember(member)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), userID)
	assert.Equal(t, date, parsed)
}

func TestParseDirtyMember_Malformed(t *testing.T) {
	for _, in := range []string{"", "42", "x:2025-12-16", "42:yesterday"} {
		_, _, err := ParseDirtyMember(in)
		assert.Error(t, err, in)
	}
}

type sampleDTO struct {
	Mood int `validate:"min=1,max=5"`
}

func TestValidateDTO(t *testing.T) {
	assert.NoError(t, ValidateDTO(&sampleDTO{Mood: 3}))

	err := ValidateDTO(&sampleDTO{Mood: 9})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Mood")
	assert.Contains(t, err.Error(), "max")
}
