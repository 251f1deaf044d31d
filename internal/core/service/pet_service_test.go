package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/sserranom/virtualpets-api/internal/core/domain"
	"github.com/sserranom/virtualpets-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stubs
// ---------------------------------------------------------------------------

type stubPetRepo struct {
	pets      map[string]*domain.Pet
	nextID    int
	lastScope string // ownerID passed to the last scoped call
}

func newStubPetRepo() *stubPetRepo {
	return &stubPetRepo{pets: make(map[string]*domain.Pet)}
}

func clonePet(p *domain.Pet) *domain.Pet {
	if p == nil {
		return nil
	}
	clone := *p
	return &clone
}

func (r *stubPetRepo) Create(_ context.Context, pet *domain.Pet) (*domain.Pet, error) {
	r.nextID++
	created := clonePet(pet)
	created.ID = fmt.Sprintf("pet-%d", r.nextID)
	r.pets[created.ID] = clonePet(created)
	return created, nil
}

func (r *stubPetRepo) FindByID(_ context.Context, id string, ownerID string) (*domain.Pet, error) {
	r.lastScope = ownerID
	p, ok := r.pets[id]
	if !ok {
		return nil, domain.ErrPetNotFound
	}
	// Enforce the owner filter (mirrors the real Mongo query).
	if ownerID != "" && p.OwnerID != ownerID {
		return nil, domain.ErrPetNotFound
	}
	return clonePet(p), nil
}

func (r *stubPetRepo) FindAll(_ context.Context) ([]domain.Pet, error) {
	out := make([]domain.Pet, 0, len(r.pets))
	for _, p := range r.pets {
		out = append(out, *p)
	}
	return out, nil
}

func (r *stubPetRepo) FindByOwner(_ context.Context, ownerID string) ([]domain.Pet, error) {
	out := make([]domain.Pet, 0)
	for _, p := range r.pets {
		if p.OwnerID == ownerID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubPetRepo) Update(_ context.Context, pet *domain.Pet, ownerID string) (*domain.Pet, error) {
	r.lastScope = ownerID
	p, ok := r.pets[pet.ID]
	if !ok || (ownerID != "" && p.OwnerID != ownerID) {
		return nil, domain.ErrPetNotFound
	}
	r.pets[pet.ID] = clonePet(pet)
	return clonePet(pet), nil
}

func (r *stubPetRepo) Delete(_ context.Context, id string, ownerID string) error {
	r.lastScope = ownerID
	p, ok := r.pets[id]
	if !ok || (ownerID != "" && p.OwnerID != ownerID) {
		return domain.ErrPetNotFound
	}
	delete(r.pets, id)
	return nil
}

type stubPetCache struct {
	pets        map[string]*domain.Pet
	lists       map[string][]domain.Pet
	invalidated []string // "<id>/<ownerID>" per call
}

func newStubPetCache() *stubPetCache {
	return &stubPetCache{
		pets:  make(map[string]*domain.Pet),
		lists: make(map[string][]domain.Pet),
	}
}

func (c *stubPetCache) GetPet(_ context.Context, id string) (*domain.Pet, error) {
	return clonePet(c.pets[id]), nil
}

func (c *stubPetCache) SetPet(_ context.Context, pet *domain.Pet) error {
	c.pets[pet.ID] = clonePet(pet)
	return nil
}

func (c *stubPetCache) GetOwnerList(_ context.Context, ownerID string) ([]domain.Pet, error) {
	return c.lists[ownerID], nil
}

func (c *stubPetCache) SetOwnerList(_ context.Context, ownerID string, pets []domain.Pet) error {
	c.lists[ownerID] = pets
	return nil
}

func (c *stubPetCache) Invalidate(_ context.Context, id string, ownerID string) error {
	c.invalidated = append(c.invalidated, id+"/"+ownerID)
	delete(c.pets, id)
	delete(c.lists, ownerID)
	return nil
}

// ---------------------------------------------------------------------------
// Fixtures
// ---------------------------------------------------------------------------

func seedUser(repo *stubAuthRepo, username string, roles ...domain.RoleName) *domain.User {
	u := &domain.User{
		ID:                    "id-" + username,
		Username:              username,
		Enabled:               true,
		AccountNonExpired:     true,
		AccountNonLocked:      true,
		CredentialsNonExpired: true,
		Roles:                 roles,
	}
	repo.users[username] = u
	return u
}

func seedPet(repo *stubPetRepo, id, name, ownerID, ownerUsername string) *domain.Pet {
	now := time.Now().UTC()
	p := &domain.Pet{
		ID:            id,
		Name:          name,
		Type:          domain.TypeSanBernardo,
		Mood:          domain.MoodHappy,
		EnergyLevel:   100,
		HungerLevel:   0,
		OwnerID:       ownerID,
		OwnerUsername: ownerUsername,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	repo.pets[id] = p
	return p
}

type petFixture struct {
	users *stubAuthRepo
	pets  *stubPetRepo
	cache *stubPetCache
	svc   *PetService
}

func newPetFixture() *petFixture {
	users := newStubAuthRepo()
	pets := newStubPetRepo()
	cache := newStubPetCache()
	return &petFixture{
		users: users,
		pets:  pets,
		cache: cache,
		svc:   NewPetService(pets, users, cache, discardLogger),
	}
}

// ---------------------------------------------------------------------------
// Create
// ---------------------------------------------------------------------------

func TestPetService_Create_Defaults(t *testing.T) {
	f := newPetFixture()
	owner := seedUser(f.users, "alice", domain.RoleUser)

	pet, err := f.svc.Create(context.Background(), owner.Identity(), ports.CreatePetInput{
		Name: "Rex",
		Type: "SAN_BERNARDO",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if pet.Mood != domain.MoodHappy {
		t.Errorf("default mood: want HAPPY, got %s", pet.Mood)
	}
	if pet.EnergyLevel != 100 {
		t.Errorf("default energy: want 100, got %d", pet.EnergyLevel)
	}
	if pet.HungerLevel != 0 {
		t.Errorf("default hunger: want 0, got %d", pet.HungerLevel)
	}
	if pet.OwnerID != owner.ID || pet.OwnerUsername != "alice" {
		t.Errorf("pet must be owned by the caller, got %s/%s", pet.OwnerID, pet.OwnerUsername)
	}
	if pet.ID == "" {
		t.Error("expected a generated id")
	}
}

func TestPetService_Create_ExplicitFields(t *testing.T) {
	f := newPetFixture()
	owner := seedUser(f.users, "alice", domain.RoleUser)

	mood := "SAD"
	energy := 40
	hunger := 60
	pet, err := f.svc.Create(context.Background(), owner.Identity(), ports.CreatePetInput{
		Name:        "Mishi",
		Type:        "SIAMES",
		Mood:        &mood,
		EnergyLevel: &energy,
		HungerLevel: &hunger,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if pet.Mood != domain.MoodSad || pet.EnergyLevel != 40 || pet.HungerLevel != 60 {
		t.Errorf("explicit fields not applied: %+v", pet)
	}
}

func TestPetService_Create_Invalid(t *testing.T) {
	f := newPetFixture()
	owner := seedUser(f.users, "alice", domain.RoleUser)
	badEnergy := 150
	badMood := "EUPHORIC"

	cases := []ports.CreatePetInput{
		{Name: "", Type: "SAN_BERNARDO"},
		{Name: "Rex", Type: "DRAGON"},
		{Name: "Rex", Type: "SAN_BERNARDO", EnergyLevel: &badEnergy},
		{Name: "Rex", Type: "SAN_BERNARDO", Mood: &badMood},
	}
	for i, input := range cases {
		if _, err := f.svc.Create(context.Background(), owner.Identity(), input); !errors.Is(err, domain.ErrInvalidPet) {
			t.Errorf("case %d: expected ErrInvalidPet, got %v", i, err)
		}
	}
}

func TestPetService_Create_NoIdentity(t *testing.T) {
	f := newPetFixture()

	if _, err := f.svc.Create(context.Background(), nil, ports.CreatePetInput{Name: "Rex", Type: "SAN_BERNARDO"}); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Get, owner-or-admin scoping
// ---------------------------------------------------------------------------

func TestPetService_Get_AdminUnscoped(t *testing.T) {
	f := newPetFixture()
	admin := seedUser(f.users, "root", domain.RoleAdmin)
	seedUser(f.users, "bob", domain.RoleUser)
	seedPet(f.pets, "pet-1", "Rex", "id-bob", "bob")

	pet, err := f.svc.Get(context.Background(), "pet-1", admin.Identity())
	if err != nil {
		t.Fatalf("admin should see any pet, got error: %v", err)
	}
	if pet.OwnerUsername != "bob" {
		t.Errorf("unexpected pet: %+v", pet)
	}
	if f.pets.lastScope != "" {
		t.Errorf("admin query must not pass an owner filter, got %q", f.pets.lastScope)
	}
}

func TestPetService_Get_OwnerScoped(t *testing.T) {
	f := newPetFixture()
	bob := seedUser(f.users, "bob", domain.RoleUser)
	seedPet(f.pets, "pet-1", "Rex", "id-bob", "bob")

	if _, err := f.svc.Get(context.Background(), "pet-1", bob.Identity()); err != nil {
		t.Fatalf("owner should see own pet, got error: %v", err)
	}
	if f.pets.lastScope != "id-bob" {
		t.Errorf("expected owner filter %q, got %q", "id-bob", f.pets.lastScope)
	}
}

func TestPetService_Get_ForeignPetIsNotFound(t *testing.T) {
	f := newPetFixture()
	seedUser(f.users, "bob", domain.RoleUser)
	mallory := seedUser(f.users, "mallory", domain.RoleUser)
	seedPet(f.pets, "pet-1", "Rex", "id-bob", "bob")

	// A pet owned by someone else must read exactly like a missing pet.
	if _, err := f.svc.Get(context.Background(), "pet-1", mallory.Identity()); !errors.Is(err, domain.ErrPetNotFound) {
		t.Fatalf("expected ErrPetNotFound, got %v", err)
	}
}

func TestPetService_Get_CachedPetStillScoped(t *testing.T) {
	f := newPetFixture()
	seedUser(f.users, "bob", domain.RoleUser)
	mallory := seedUser(f.users, "mallory", domain.RoleUser)
	pet := seedPet(f.pets, "pet-1", "Rex", "id-bob", "bob")
	_ = f.cache.SetPet(context.Background(), pet)

	if _, err := f.svc.Get(context.Background(), "pet-1", mallory.Identity()); !errors.Is(err, domain.ErrPetNotFound) {
		t.Fatalf("cached pet must honour the owner scope, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Listing
// ---------------------------------------------------------------------------

func TestPetService_ListMine_FiltersByOwner(t *testing.T) {
	f := newPetFixture()
	bob := seedUser(f.users, "bob", domain.RoleUser)
	seedUser(f.users, "alice", domain.RoleUser)
	seedPet(f.pets, "pet-1", "Rex", "id-bob", "bob")
	seedPet(f.pets, "pet-2", "Mishi", "id-alice", "alice")
	seedPet(f.pets, "pet-3", "Piolin", "id-bob", "bob")

	pets, err := f.svc.ListMine(context.Background(), bob.Identity())
	if err != nil {
		t.Fatalf("ListMine failed: %v", err)
	}
	if len(pets) != 2 {
		t.Fatalf("expected 2 pets, got %d", len(pets))
	}
	for _, p := range pets {
		if p.OwnerID != "id-bob" {
			t.Errorf("foreign pet in result: %+v", p)
		}
	}
}

func TestPetService_ListMine_ServesFromCache(t *testing.T) {
	f := newPetFixture()
	bob := seedUser(f.users, "bob", domain.RoleUser)
	cached := []domain.Pet{{ID: "pet-9", Name: "Cached", OwnerID: "id-bob"}}
	_ = f.cache.SetOwnerList(context.Background(), "id-bob", cached)

	pets, err := f.svc.ListMine(context.Background(), bob.Identity())
	if err != nil {
		t.Fatalf("ListMine failed: %v", err)
	}
	if len(pets) != 1 || pets[0].ID != "pet-9" {
		t.Fatalf("expected the cached list, got %+v", pets)
	}
}

func TestPetService_ListAll_Unfiltered(t *testing.T) {
	f := newPetFixture()
	seedPet(f.pets, "pet-1", "Rex", "id-bob", "bob")
	seedPet(f.pets, "pet-2", "Mishi", "id-alice", "alice")

	pets, err := f.svc.ListAll(context.Background())
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
	if len(pets) != 2 {
		t.Fatalf("expected 2 pets, got %d", len(pets))
	}
}

// ---------------------------------------------------------------------------
// Update
// ---------------------------------------------------------------------------

func TestPetService_Update_PartialMerge(t *testing.T) {
	f := newPetFixture()
	bob := seedUser(f.users, "bob", domain.RoleUser)
	seedPet(f.pets, "pet-1", "Rex", "id-bob", "bob")

	energy := 90
	hunger := 10
	updated, err := f.svc.Update(context.Background(), "pet-1", bob.Identity(), ports.UpdatePetInput{
		EnergyLevel: &energy,
		HungerLevel: &hunger,
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}

	// Absent fields stay untouched.
	if updated.Name != "Rex" {
		t.Errorf("name must be unchanged, got %q", updated.Name)
	}
	if updated.Mood != domain.MoodHappy {
		t.Errorf("mood must be unchanged, got %s", updated.Mood)
	}
	if updated.EnergyLevel != 90 || updated.HungerLevel != 10 {
		t.Errorf("levels not applied: energy=%d hunger=%d", updated.EnergyLevel, updated.HungerLevel)
	}
	if !updated.UpdatedAt.After(updated.CreatedAt) {
		t.Error("updated_at must be bumped")
	}
}

func TestPetService_Update_InvalidLevels(t *testing.T) {
	f := newPetFixture()
	bob := seedUser(f.users, "bob", domain.RoleUser)
	seedPet(f.pets, "pet-1", "Rex", "id-bob", "bob")

	bad := -1
	if _, err := f.svc.Update(context.Background(), "pet-1", bob.Identity(), ports.UpdatePetInput{EnergyLevel: &bad}); !errors.Is(err, domain.ErrInvalidPet) {
		t.Fatalf("expected ErrInvalidPet, got %v", err)
	}

	// And the stored pet is untouched.
	stored := f.pets.pets["pet-1"]
	if stored.EnergyLevel != 100 {
		t.Fatalf("stored pet mutated by rejected update: %+v", stored)
	}
}

func TestPetService_Update_ForeignPetIsNotFound(t *testing.T) {
	f := newPetFixture()
	seedUser(f.users, "bob", domain.RoleUser)
	mallory := seedUser(f.users, "mallory", domain.RoleUser)
	seedPet(f.pets, "pet-1", "Rex", "id-bob", "bob")

	name := "Stolen"
	if _, err := f.svc.Update(context.Background(), "pet-1", mallory.Identity(), ports.UpdatePetInput{Name: &name}); !errors.Is(err, domain.ErrPetNotFound) {
		t.Fatalf("expected ErrPetNotFound, got %v", err)
	}
}

func TestPetService_Update_AdminCanUpdateAnyPet(t *testing.T) {
	f := newPetFixture()
	admin := seedUser(f.users, "root", domain.RoleAdmin)
	seedUser(f.users, "bob", domain.RoleUser)
	seedPet(f.pets, "pet-1", "Rex", "id-bob", "bob")

	name := "Rexito"
	updated, err := f.svc.Update(context.Background(), "pet-1", admin.Identity(), ports.UpdatePetInput{Name: &name})
	if err != nil {
		t.Fatalf("admin update failed: %v", err)
	}
	if updated.Name != "Rexito" {
		t.Errorf("name not applied: %q", updated.Name)
	}
	if updated.OwnerID != "id-bob" {
		t.Errorf("ownership must not change on admin update, got %q", updated.OwnerID)
	}
}

// ---------------------------------------------------------------------------
// Delete
// ---------------------------------------------------------------------------

func TestPetService_Delete_Owner(t *testing.T) {
	f := newPetFixture()
	bob := seedUser(f.users, "bob", domain.RoleUser)
	seedPet(f.pets, "pet-1", "Rex", "id-bob", "bob")

	if err := f.svc.Delete(context.Background(), "pet-1", bob.Identity()); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, ok := f.pets.pets["pet-1"]; ok {
		t.Fatal("pet must be gone")
	}
}

func TestPetService_Delete_ForeignPetIsNotFound(t *testing.T) {
	f := newPetFixture()
	seedUser(f.users, "bob", domain.RoleUser)
	mallory := seedUser(f.users, "mallory", domain.RoleUser)
	seedPet(f.pets, "pet-1", "Rex", "id-bob", "bob")

	if err := f.svc.Delete(context.Background(), "pet-1", mallory.Identity()); !errors.Is(err, domain.ErrPetNotFound) {
		t.Fatalf("expected ErrPetNotFound, got %v", err)
	}
	if _, ok := f.pets.pets["pet-1"]; !ok {
		t.Fatal("pet must still exist")
	}
}

// ---------------------------------------------------------------------------
// Cache invalidation
// ---------------------------------------------------------------------------

func TestPetService_WritesInvalidateCache(t *testing.T) {
	f := newPetFixture()
	bob := seedUser(f.users, "bob", domain.RoleUser)

	pet, err := f.svc.Create(context.Background(), bob.Identity(), ports.CreatePetInput{Name: "Rex", Type: "SAN_BERNARDO"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if len(f.cache.invalidated) != 1 || f.cache.invalidated[0] != pet.ID+"/id-bob" {
		t.Fatalf("create must invalidate the cache, got %v", f.cache.invalidated)
	}

	energy := 50
	if _, err := f.svc.Update(context.Background(), pet.ID, bob.Identity(), ports.UpdatePetInput{EnergyLevel: &energy}); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if err := f.svc.Delete(context.Background(), pet.ID, bob.Identity()); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if len(f.cache.invalidated) != 3 {
		t.Fatalf("expected 3 invalidations, got %d", len(f.cache.invalidated))
	}
}
