package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ncissues/civic-api/internal/core/domain"
)

const collectionAdminUsers = "admin_users"

// AdminRepository implements ports.AdminRepository over the admin_users
// collection.
type AdminRepository struct {
	col *mongo.Collection
}

func NewAdminRepository(db *mongo.Database) *AdminRepository {
	return &AdminRepository{col: db.Collection(collectionAdminUsers)}
}

func (r *AdminRepository) findOne(ctx context.Context, filter bson.M) (*domain.AdminUser, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var a domain.AdminUser
	if err := r.col.FindOne(ctx, filter).Decode(&a); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *AdminRepository) FindByID(ctx context.Context, id string) (*domain.AdminUser, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *AdminRepository) FindActiveByUsername(ctx context.Context, username string) (*domain.AdminUser, error) {
	return r.findOne(ctx, bson.M{"username": username, "is_active": true})
}

func (r *AdminRepository) UpdateLastLogin(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"last_login": time.Now().UTC()}},
	)
	return err
}
