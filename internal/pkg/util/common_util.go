package util

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// PtrInt returns a pointer to i.
func PtrInt(i int) *int {
	return &i
}

// PtrString returns a pointer to s.
func PtrString(s string) *string {
	return &s
}

// DirtyMember encodes a (user, date) pair as stored in the insight dirty set.
func DirtyMember(userID uint64, date time.Time) string {
	return strconv.FormatUint(userID, 10) + ":" + FormatDate(date)
}

// ParseDirtyMember is the inverse of DirtyMember.
func ParseDirtyMember(member string) (uint64, time.Time, error) {
	idPart, datePart, ok := strings.Cut(member, ":")
	if !ok {
		return 0, time.Time{}, fmt.Errorf("malformed dirty member %q", member)
	}
	userID, err := strconv.ParseUint(idPart, 10, 64)
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("malformed user id in %q: %w", member, err)
	}
	date, err := ParseDate(datePart)
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("malformed date in %q: %w", member, err)
	}
	return userID, date, nil
}
