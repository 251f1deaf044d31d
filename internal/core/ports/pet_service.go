package ports

import (
	"context"

	"github.com/sserranom/virtualpets-api/internal/core/domain"
)

// CreatePetInput carries the data needed to create a pet. Mood, EnergyLevel
// and HungerLevel are optional; defaults apply when nil.
type CreatePetInput struct {
	Name        string
	Type        string
	Mood        *string
	EnergyLevel *int
	HungerLevel *int
}

// UpdatePetInput carries a partial update. Only non-nil fields overwrite the
// stored pet.
type UpdatePetInput struct {
	Name        *string
	Mood        *string
	EnergyLevel *int
	HungerLevel *int
}

// PetService defines use-case operations for pets. Every operation that
// touches a specific pet receives the caller identity and applies the
// owner-or-admin scoping rule.
type PetService interface {
	Create(ctx context.Context, identity *domain.AuthenticatedIdentity, input CreatePetInput) (*domain.Pet, error)
	ListAll(ctx context.Context) ([]domain.Pet, error)
	ListMine(ctx context.Context, identity *domain.AuthenticatedIdentity) ([]domain.Pet, error)
	Get(ctx context.Context, id string, identity *domain.AuthenticatedIdentity) (*domain.Pet, error)
	Update(ctx context.Context, id string, identity *domain.AuthenticatedIdentity, input UpdatePetInput) (*domain.Pet, error)
	Delete(ctx context.Context, id string, identity *domain.AuthenticatedIdentity) error
}
