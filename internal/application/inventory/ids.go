package inventory

import "github.com/google/uuid"

// newID genera un UUIDv7 (ordenable por tiempo) para registros del libro y del diario.
func newID() string {
	return uuid.Must(uuid.NewV7()).String()
}
