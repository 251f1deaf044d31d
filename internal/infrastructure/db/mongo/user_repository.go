package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sserranom/virtualpets-api/internal/core/domain"
)

const usersCollection = "users"

type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection(usersCollection)}
}

type mongoUser struct {
	ID                    primitive.ObjectID `bson:"_id,omitempty"`
	Username              string             `bson:"username"`
	PasswordHash          string             `bson:"password_hash"`
	Enabled               bool               `bson:"enabled"`
	AccountNonExpired     bool               `bson:"account_non_expired"`
	AccountNonLocked      bool               `bson:"account_non_locked"`
	CredentialsNonExpired bool               `bson:"credentials_non_expired"`
	Roles                 []string           `bson:"roles"`
	CreatedAt             int64              `bson:"created_at"`
	UpdatedAt             int64              `bson:"updated_at"`
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	roles := make([]string, 0, len(user.Roles))
	for _, role := range user.Roles {
		roles = append(roles, string(role))
	}

	doc := mongoUser{
		Username:              user.Username,
		PasswordHash:          user.PasswordHash,
		Enabled:               user.Enabled,
		AccountNonExpired:     user.AccountNonExpired,
		AccountNonLocked:      user.AccountNonLocked,
		CredentialsNonExpired: user.CredentialsNonExpired,
		Roles:                 roles,
		CreatedAt:             user.CreatedAt.Unix(),
		UpdatedAt:             user.UpdatedAt.Unix(),
	}

	_, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	// fetch back to get ID
	created, err := r.FindByUsername(ctx, user.Username)
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	var mu mongoUser
	if err := r.coll.FindOne(ctx, bson.M{"username": username}).Decode(&mu); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	roles := make([]domain.RoleName, 0, len(mu.Roles))
	for _, role := range mu.Roles {
		roles = append(roles, domain.RoleName(role))
	}

	return &domain.User{
		ID:                    mu.ID.Hex(),
		Username:              mu.Username,
		PasswordHash:          mu.PasswordHash,
		Enabled:               mu.Enabled,
		AccountNonExpired:     mu.AccountNonExpired,
		AccountNonLocked:      mu.AccountNonLocked,
		CredentialsNonExpired: mu.CredentialsNonExpired,
		Roles:                 roles,
		CreatedAt:             unixToTime(mu.CreatedAt),
		UpdatedAt:             unixToTime(mu.UpdatedAt),
	}, nil
}

// EnsureIndexes creates the unique username index.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}
