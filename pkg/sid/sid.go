// Package sid issues time-sortable identifiers for every persisted entity.
// UUIDv7 keeps primary-key index locality good while staying globally
// unique, and presents externally as standard 128-bit UUID text.
package sid

import "github.com/google/uuid"

func New() uuid.UUID {
	id, err := uuid.NewV7()
	if err != nil {
		// NewV7 only fails when the entropy source does; a random v4
		// keeps uniqueness at the cost of ordering.
		return uuid.New()
	}
	return id
}
