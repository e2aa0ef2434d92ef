package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ncissues/civic-api/internal/core/domain"
)

const collectionPublicUsers = "public_users"

// PublicUserRepository implements ports.PublicUserRepository. Uniqueness of
// phone_number is enforced by the index declared in EnsureIndexes, not by a
// prior read.
type PublicUserRepository struct {
	col *mongo.Collection
}

func NewPublicUserRepository(db *mongo.Database) *PublicUserRepository {
	return &PublicUserRepository{col: db.Collection(collectionPublicUsers)}
}

func (r *PublicUserRepository) Create(ctx context.Context, u *domain.PublicUser) (*domain.PublicUser, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	out := *u
	out.ID = primitive.NewObjectID().Hex()
	out.CreatedAt = time.Now().UTC()
	out.LastLogin = out.CreatedAt

	if _, err := r.col.InsertOne(ctx, &out); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrPhoneExists
		}
		return nil, err
	}
	return &out, nil
}

func (r *PublicUserRepository) FindByID(ctx context.Context, id string) (*domain.PublicUser, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var u domain.PublicUser
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}
