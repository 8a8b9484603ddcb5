package utils

import (
	"errors"
	"strconv"
)

var ErrInvalidNumber = errors.New("invalid number")

// ParseID parses a positive path id.
func ParseID(value string) (int64, error) {
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil || id < 1 {
		return 0, ErrInvalidNumber
	}
	return id, nil
}

// ParseOptionalInt returns defaultValue for an empty string and fails on anything
// that is not an integer. Range checks are left to the caller.
func ParseOptionalInt(value string, defaultValue int) (int, error) {
	if value == "" {
		return defaultValue, nil
	}
	result, err := strconv.Atoi(value)
	if err != nil {
		return 0, ErrInvalidNumber
	}
	return result, nil
}
