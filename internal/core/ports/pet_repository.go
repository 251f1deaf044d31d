package ports

import (
	"context"

	"github.com/sserranom/virtualpets-api/internal/core/domain"
)

// PetRepository defines persistence operations for pets.
type PetRepository interface {
	Create(ctx context.Context, pet *domain.Pet) (*domain.Pet, error)
	// FindByID retrieves a pet by id. When ownerID is non-empty, the query
	// is additionally filtered by owner, so a pet belonging to someone else
	// is indistinguishable from a missing one.
	FindByID(ctx context.Context, id string, ownerID string) (*domain.Pet, error)
	FindAll(ctx context.Context) ([]domain.Pet, error)
	FindByOwner(ctx context.Context, ownerID string) ([]domain.Pet, error)
	// Update persists the merged pet. The filter follows the same owner
	// scoping rule as FindByID.
	Update(ctx context.Context, pet *domain.Pet, ownerID string) (*domain.Pet, error)
	Delete(ctx context.Context, id string, ownerID string) error
}
