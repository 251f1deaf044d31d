package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/sserranom/virtualpets-api/internal/core/domain"
	"github.com/sserranom/virtualpets-api/internal/core/ports"
)

const maxPetNameLen = 50

// PetService implements the pet use cases. Lookups for a specific pet are
// authority-scoped: admins query by id alone, everyone else by id and owner,
// so a foreign pet reads as not found.
type PetService struct {
	pets   ports.PetRepository
	users  ports.AuthRepository
	cache  ports.PetCache
	logger zerolog.Logger
}

func NewPetService(pets ports.PetRepository, users ports.AuthRepository, cache ports.PetCache, logger zerolog.Logger) *PetService {
	return &PetService{pets: pets, users: users, cache: cache, logger: logger}
}

// resolveCaller maps the request identity back to its stored user.
func (s *PetService) resolveCaller(ctx context.Context, identity *domain.AuthenticatedIdentity) (*domain.User, error) {
	if identity == nil || identity.Username == "" {
		return nil, domain.ErrUnauthenticated
	}
	return s.users.FindByUsername(ctx, identity.Username)
}

// ownerScope returns the owner filter for the caller: empty for admins
// (unscoped), the caller's own id otherwise.
func ownerScope(identity *domain.AuthenticatedIdentity, caller *domain.User) string {
	if identity.IsAdmin() {
		return ""
	}
	return caller.ID
}

func validateLevels(energy, hunger *int) error {
	if energy != nil && (*energy < 0 || *energy > 100) {
		return domain.ErrInvalidPet
	}
	if hunger != nil && (*hunger < 0 || *hunger > 100) {
		return domain.ErrInvalidPet
	}
	return nil
}

// Create persists a new pet owned by the caller. Mood, energy and hunger
// default to HAPPY, 100 and 0 unless given.
func (s *PetService) Create(ctx context.Context, identity *domain.AuthenticatedIdentity, input ports.CreatePetInput) (*domain.Pet, error) {
	caller, err := s.resolveCaller(ctx, identity)
	if err != nil {
		return nil, err
	}

	if input.Name == "" || len(input.Name) > maxPetNameLen {
		return nil, domain.ErrInvalidPet
	}
	petType := domain.PetType(input.Type)
	if !domain.ValidPetType(petType) {
		return nil, domain.ErrInvalidPet
	}
	if err := validateLevels(input.EnergyLevel, input.HungerLevel); err != nil {
		return nil, err
	}

	mood := domain.DefaultMood
	if input.Mood != nil {
		mood = domain.Mood(*input.Mood)
		if !domain.ValidMood(mood) {
			return nil, domain.ErrInvalidPet
		}
	}
	energy := domain.DefaultEnergy
	if input.EnergyLevel != nil {
		energy = *input.EnergyLevel
	}
	hunger := domain.DefaultHunger
	if input.HungerLevel != nil {
		hunger = *input.HungerLevel
	}

	now := time.Now().UTC()
	pet := &domain.Pet{
		Name:          input.Name,
		Type:          petType,
		Mood:          mood,
		EnergyLevel:   energy,
		HungerLevel:   hunger,
		OwnerID:       caller.ID,
		OwnerUsername: caller.Username,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	created, err := s.pets.Create(ctx, pet)
	if err != nil {
		s.logger.Error().Err(err).Str("owner", caller.Username).Msg("failed to create pet")
		return nil, err
	}

	s.evict(ctx, created.ID, created.OwnerID)
	s.logger.Info().Str("pet_id", created.ID).Str("owner", caller.Username).Msg("pet created")

	return created, nil
}

// ListAll returns every pet in the system, unfiltered. The route is
// admin-gated upstream.
func (s *PetService) ListAll(ctx context.Context) ([]domain.Pet, error) {
	return s.pets.FindAll(ctx)
}

// ListMine returns the caller's own pets.
func (s *PetService) ListMine(ctx context.Context, identity *domain.AuthenticatedIdentity) ([]domain.Pet, error) {
	caller, err := s.resolveCaller(ctx, identity)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if pets, err := s.cache.GetOwnerList(ctx, caller.ID); err != nil {
			s.logger.Warn().Err(err).Msg("pet cache read failed")
		} else if pets != nil {
			return pets, nil
		}
	}

	pets, err := s.pets.FindByOwner(ctx, caller.ID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetOwnerList(ctx, caller.ID, pets); err != nil {
			s.logger.Warn().Err(err).Msg("pet cache write failed")
		}
	}
	return pets, nil
}

// Get returns a single pet, owner-or-admin scoped.
func (s *PetService) Get(ctx context.Context, id string, identity *domain.AuthenticatedIdentity) (*domain.Pet, error) {
	caller, err := s.resolveCaller(ctx, identity)
	if err != nil {
		return nil, err
	}
	scope := ownerScope(identity, caller)

	if s.cache != nil {
		if pet, err := s.cache.GetPet(ctx, id); err != nil {
			s.logger.Warn().Err(err).Msg("pet cache read failed")
		} else if pet != nil {
			// The cached copy still honours the scoping rule.
			if scope != "" && pet.OwnerID != scope {
				return nil, domain.ErrPetNotFound
			}
			return pet, nil
		}
	}

	pet, err := s.pets.FindByID(ctx, id, scope)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetPet(ctx, pet); err != nil {
			s.logger.Warn().Err(err).Msg("pet cache write failed")
		}
	}
	return pet, nil
}

// Update merges the non-nil fields of input into the stored pet and
// persists the result. Absent fields are left unchanged.
func (s *PetService) Update(ctx context.Context, id string, identity *domain.AuthenticatedIdentity, input ports.UpdatePetInput) (*domain.Pet, error) {
	caller, err := s.resolveCaller(ctx, identity)
	if err != nil {
		return nil, err
	}
	scope := ownerScope(identity, caller)

	pet, err := s.pets.FindByID(ctx, id, scope)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if *input.Name == "" || len(*input.Name) > maxPetNameLen {
			return nil, domain.ErrInvalidPet
		}
		pet.Name = *input.Name
	}
	if input.Mood != nil {
		mood := domain.Mood(*input.Mood)
		if !domain.ValidMood(mood) {
			return nil, domain.ErrInvalidPet
		}
		pet.Mood = mood
	}
	if err := validateLevels(input.EnergyLevel, input.HungerLevel); err != nil {
		return nil, err
	}
	if input.EnergyLevel != nil {
		pet.EnergyLevel = *input.EnergyLevel
	}
	if input.HungerLevel != nil {
		pet.HungerLevel = *input.HungerLevel
	}
	pet.UpdatedAt = time.Now().UTC()

	updated, err := s.pets.Update(ctx, pet, scope)
	if err != nil {
		return nil, err
	}

	s.evict(ctx, updated.ID, updated.OwnerID)
	s.logger.Info().Str("pet_id", updated.ID).Msg("pet updated")

	return updated, nil
}

// Delete removes a pet, owner-or-admin scoped.
func (s *PetService) Delete(ctx context.Context, id string, identity *domain.AuthenticatedIdentity) error {
	caller, err := s.resolveCaller(ctx, identity)
	if err != nil {
		return err
	}
	scope := ownerScope(identity, caller)

	pet, err := s.pets.FindByID(ctx, id, scope)
	if err != nil {
		return err
	}

	if err := s.pets.Delete(ctx, id, scope); err != nil {
		return err
	}

	s.evict(ctx, pet.ID, pet.OwnerID)
	s.logger.Info().Str("pet_id", id).Msg("pet deleted")

	return nil
}

// evict drops the cache entries touched by a write. Failures only log.
func (s *PetService) evict(ctx context.Context, id, ownerID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, id, ownerID); err != nil {
		s.logger.Warn().Err(err).Str("pet_id", id).Msg("pet cache invalidation failed")
	}
}
