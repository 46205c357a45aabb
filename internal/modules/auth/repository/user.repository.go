package repository

import (
	"context"
	"fmt"
	"time"

	"clinic-core/internal/infrastructure/database/mongodb"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const usersCollection = "users"

// User is the persisted user document.
type User struct {
	ID             string    `bson:"_id"`
	Email          string    `bson:"email"`
	HashedPassword string    `bson:"hashedPassword"`
	Role           string    `bson:"role"`
	CreatedAt      time.Time `bson:"createdAt"`
}

type UserRepository struct {
	db *mongodb.Client
}

// NewUserRepository creates a new user repository.
func NewUserRepository(db *mongodb.Client) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) collection() *mongo.Collection {
	return r.db.Collection(usersCollection)
}

// Insert persists a new user. The caller maps duplicate-key errors onto the
// domain taxonomy via IsDuplicateKey.
func (r *UserRepository) Insert(ctx context.Context, user *User) error {
	if _, err := r.collection().InsertOne(ctx, user); err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

// FindByEmail returns the user or (nil, nil) when no user matches.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	err := r.collection().FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	return &user, nil
}

// FindByID returns the user or (nil, nil) when no user matches.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*User, error) {
	var user User
	err := r.collection().FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user by id: %w", err)
	}
	return &user, nil
}

// Count returns the total number of users.
func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	return r.collection().CountDocuments(ctx, bson.M{})
}

// IsDuplicateKey reports whether err is a unique-index violation.
func IsDuplicateKey(err error) bool {
	return mongo.IsDuplicateKeyError(err)
}
