package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ncissues/civic-api/internal/core/domain"
)

const collectionTrackedBills = "tracked_bills"

// TrackedBillRepository implements ports.TrackedBillRepository. The
// (member_id, bill_id) pair is unique via the index in EnsureIndexes, so a
// concurrent double-track resolves to exactly one insert.
type TrackedBillRepository struct {
	col *mongo.Collection
}

func NewTrackedBillRepository(db *mongo.Database) *TrackedBillRepository {
	return &TrackedBillRepository{col: db.Collection(collectionTrackedBills)}
}

func (r *TrackedBillRepository) Create(ctx context.Context, t *domain.TrackedBill) (*domain.TrackedBill, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	out := *t
	out.ID = primitive.NewObjectID().Hex()
	out.TrackedAt = time.Now().UTC()

	if _, err := r.col.InsertOne(ctx, &out); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrAlreadyTracked
		}
		return nil, err
	}
	return &out, nil
}

func (r *TrackedBillRepository) Find(ctx context.Context, memberID, billID string) (*domain.TrackedBill, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var tracked domain.TrackedBill
	err := r.col.FindOne(ctx, bson.M{"member_id": memberID, "bill_id": billID}).Decode(&tracked)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTrackedNotFound
		}
		return nil, err
	}
	return &tracked, nil
}

func (r *TrackedBillRepository) ListByMember(ctx context.Context, memberID string) ([]*domain.TrackedBill, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "tracked_at", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{"member_id": memberID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var tracked []*domain.TrackedBill
	if err := cur.All(ctx, &tracked); err != nil {
		return nil, err
	}
	return tracked, nil
}

func (r *TrackedBillRepository) Delete(ctx context.Context, memberID, billID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"member_id": memberID, "bill_id": billID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrTrackedNotFound
	}
	return nil
}
