package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/sserranom/virtualpets-api/internal/core/domain"
)

const petsCollection = "pets"

type PetRepository struct {
	coll *mongo.Collection
}

func NewPetRepository(db *mongo.Database) *PetRepository {
	return &PetRepository{coll: db.Collection(petsCollection)}
}

type mongoPet struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Name          string             `bson:"name"`
	Type          string             `bson:"type"`
	Mood          string             `bson:"mood"`
	EnergyLevel   int                `bson:"energy_level"`
	HungerLevel   int                `bson:"hunger_level"`
	OwnerID       string             `bson:"owner_id"`
	OwnerUsername string             `bson:"owner_username"`
	CreatedAt     int64              `bson:"created_at"`
	UpdatedAt     int64              `bson:"updated_at"`
}

func toMongoPet(p *domain.Pet) mongoPet {
	return mongoPet{
		Name:          p.Name,
		Type:          string(p.Type),
		Mood:          string(p.Mood),
		EnergyLevel:   p.EnergyLevel,
		HungerLevel:   p.HungerLevel,
		OwnerID:       p.OwnerID,
		OwnerUsername: p.OwnerUsername,
		CreatedAt:     p.CreatedAt.Unix(),
		UpdatedAt:     p.UpdatedAt.Unix(),
	}
}

func (mp *mongoPet) toDomain() domain.Pet {
	return domain.Pet{
		ID:            mp.ID.Hex(),
		Name:          mp.Name,
		Type:          domain.PetType(mp.Type),
		Mood:          domain.Mood(mp.Mood),
		EnergyLevel:   mp.EnergyLevel,
		HungerLevel:   mp.HungerLevel,
		OwnerID:       mp.OwnerID,
		OwnerUsername: mp.OwnerUsername,
		CreatedAt:     unixToTime(mp.CreatedAt),
		UpdatedAt:     unixToTime(mp.UpdatedAt),
	}
}

// scopedFilter builds the lookup filter for a pet id. When ownerID is
// non-empty the filter also matches on owner, so a pet belonging to another
// user behaves exactly like a missing document.
func scopedFilter(id, ownerID string) (bson.M, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrPetNotFound
	}
	filter := bson.M{"_id": oid}
	if ownerID != "" {
		filter["owner_id"] = ownerID
	}
	return filter, nil
}

// Create inserts a new pet document and returns it with its generated id.
func (r *PetRepository) Create(ctx context.Context, pet *domain.Pet) (*domain.Pet, error) {
	res, err := r.coll.InsertOne(ctx, toMongoPet(pet))
	if err != nil {
		return nil, fmt.Errorf("insert pet: %w", err)
	}

	created := *pet
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

// FindByID retrieves a pet by id, owner-scoped when ownerID is non-empty.
func (r *PetRepository) FindByID(ctx context.Context, id string, ownerID string) (*domain.Pet, error) {
	filter, err := scopedFilter(id, ownerID)
	if err != nil {
		return nil, err
	}

	var mp mongoPet
	if err := r.coll.FindOne(ctx, filter).Decode(&mp); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPetNotFound
		}
		return nil, fmt.Errorf("find pet: %w", err)
	}

	pet := mp.toDomain()
	return &pet, nil
}

// FindAll returns every pet in the collection.
func (r *PetRepository) FindAll(ctx context.Context) ([]domain.Pet, error) {
	return r.findMany(ctx, bson.M{})
}

// FindByOwner returns the pets owned by the given user.
func (r *PetRepository) FindByOwner(ctx context.Context, ownerID string) ([]domain.Pet, error) {
	return r.findMany(ctx, bson.M{"owner_id": ownerID})
}

func (r *PetRepository) findMany(ctx context.Context, filter bson.M) ([]domain.Pet, error) {
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find pets: %w", err)
	}
	defer cursor.Close(ctx)

	pets := make([]domain.Pet, 0)
	for cursor.Next(ctx) {
		var mp mongoPet
		if err := cursor.Decode(&mp); err != nil {
			return nil, fmt.Errorf("decode pet: %w", err)
		}
		pets = append(pets, mp.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate pets: %w", err)
	}
	return pets, nil
}

// Update replaces the stored document with the merged pet, honouring the
// same owner scoping as FindByID.
func (r *PetRepository) Update(ctx context.Context, pet *domain.Pet, ownerID string) (*domain.Pet, error) {
	filter, err := scopedFilter(pet.ID, ownerID)
	if err != nil {
		return nil, err
	}

	res, err := r.coll.ReplaceOne(ctx, filter, toMongoPet(pet))
	if err != nil {
		return nil, fmt.Errorf("update pet: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrPetNotFound
	}
	return pet, nil
}

// Delete removes a pet, owner-scoped when ownerID is non-empty.
func (r *PetRepository) Delete(ctx context.Context, id string, ownerID string) error {
	filter, err := scopedFilter(id, ownerID)
	if err != nil {
		return err
	}

	res, err := r.coll.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("delete pet: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrPetNotFound
	}
	return nil
}

// EnsureIndexes creates the owner lookup index.
func (r *PetRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "owner_id", Value: 1}},
	})
	return err
}
