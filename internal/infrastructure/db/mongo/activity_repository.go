package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ncissues/civic-api/internal/core/domain"
)

const collectionMemberActivity = "member_activity"

// ActivityRepository is the persistence sink for the async activity
// recorder.
type ActivityRepository struct {
	col *mongo.Collection
}

func NewActivityRepository(db *mongo.Database) *ActivityRepository {
	return &ActivityRepository{col: db.Collection(collectionMemberActivity)}
}

func (r *ActivityRepository) InsertActivity(ctx context.Context, entry *domain.ActivityEntry) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := *entry
	doc.ID = primitive.NewObjectID().Hex()
	_, err := r.col.InsertOne(ctx, &doc)
	return err
}
