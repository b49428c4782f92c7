package utils

import (
	"strconv"

	"github.com/google/uuid"
)

func GenerateSessionToken() uuid.UUID {
	return uuid.New()
}

// ParseUUIDPtr parses an optional id. Empty input yields nil.
func ParseUUIDPtr(s *string) (*uuid.UUID, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	id, err := uuid.Parse(*s)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// ParseInt converts string to int with default value
func ParseInt(value string, defaultValue int) int {
	if value == "" {
		return defaultValue
	}

	result, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	if result < 1 {
		return defaultValue
	}

	return result
}
