package validate

import "github.com/google/uuid"

// Uuid checks that the input parses as a UUID, used on path and query
// parameters before they reach a database query
func Uuid(input string) error {
	if _, err := uuid.Parse(input); err != nil {
		return ErrorInvalidUuid
	}
	return nil
}
