package ports

import (
	"context"

	"github.com/mobilectl/core/internal/domain/entities"
)

// ContactRepository defines the interface for phonebook persistence
type ContactRepository interface {
	// List returns every contact in stored order. Read problems degrade to an
	// empty result; the only error is a done context.
	List(ctx context.Context) ([]entities.Contact, error)

	// Add stores a new contact. Name and phone must already be validated.
	// Returns entities.ErrContactExists if the name is taken.
	Add(ctx context.Context, contact entities.Contact) error

	// Delete removes a contact and returns its prior value.
	// Returns entities.ErrContactNotFound if the name is absent.
	Delete(ctx context.Context, name string) (*entities.Contact, error)
}
