package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ncissues/civic-api/internal/core/domain"
)

const collectionContactMessages = "contact_messages"

// ContactRepository implements ports.ContactRepository over the
// contact_messages collection.
type ContactRepository struct {
	col *mongo.Collection
}

func NewContactRepository(db *mongo.Database) *ContactRepository {
	return &ContactRepository{col: db.Collection(collectionContactMessages)}
}

func (r *ContactRepository) Create(ctx context.Context, m *domain.ContactMessage) (*domain.ContactMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	out := *m
	out.ID = primitive.NewObjectID().Hex()
	if out.SentAt.IsZero() {
		out.SentAt = time.Now().UTC()
	}

	if _, err := r.col.InsertOne(ctx, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
