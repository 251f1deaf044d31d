package ports

import (
	"context"

	"github.com/sserranom/virtualpets-api/internal/core/domain"
)

// PetCache is a read cache for pet lookups. A miss is reported as (nil, nil);
// errors are advisory, callers fall back to the repository.
// Writes to a pet must invalidate both its id entry and its owner's list
// entry synchronously.
type PetCache interface {
	GetPet(ctx context.Context, id string) (*domain.Pet, error)
	SetPet(ctx context.Context, pet *domain.Pet) error
	GetOwnerList(ctx context.Context, ownerID string) ([]domain.Pet, error)
	SetOwnerList(ctx context.Context, ownerID string, pets []domain.Pet) error
	Invalidate(ctx context.Context, id string, ownerID string) error
}
