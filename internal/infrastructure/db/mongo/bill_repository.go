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
	"github.com/ncissues/civic-api/internal/core/ports"
)

const (
	collectionBills           = "bills"
	collectionBillHistory     = "bill_history"
	collectionBillVotes       = "bill_votes"
	collectionBillVoteRecords = "bill_vote_records"
	collectionBillVersions    = "bill_versions"
)

// BillRepository implements ports.BillRepository over the bills collection
// and its satellite collections (history, votes, versions).
type BillRepository struct {
	bills       *mongo.Collection
	history     *mongo.Collection
	votes       *mongo.Collection
	voteRecords *mongo.Collection
	versions    *mongo.Collection
}

func NewBillRepository(db *mongo.Database) *BillRepository {
	return &BillRepository{
		bills:       db.Collection(collectionBills),
		history:     db.Collection(collectionBillHistory),
		votes:       db.Collection(collectionBillVotes),
		voteRecords: db.Collection(collectionBillVoteRecords),
		versions:    db.Collection(collectionBillVersions),
	}
}

// Create inserts the bill. Uniqueness of bill_number is enforced by the
// index declared in EnsureIndexes.
func (r *BillRepository) Create(ctx context.Context, b *domain.Bill) (*domain.Bill, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	out := *b
	out.ID = primitive.NewObjectID().Hex()
	now := time.Now().UTC()
	out.CreatedAt = now
	out.UpdatedAt = now

	if _, err := r.bills.InsertOne(ctx, &out); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrBillExists
		}
		return nil, err
	}
	return &out, nil
}

func (r *BillRepository) FindByID(ctx context.Context, id string) (*domain.Bill, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var b domain.Bill
	if err := r.bills.FindOne(ctx, bson.M{"_id": id}).Decode(&b); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrBillNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (r *BillRepository) FindByIDs(ctx context.Context, ids []string) ([]*domain.Bill, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.bills.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var bills []*domain.Bill
	if err := cur.All(ctx, &bills); err != nil {
		return nil, err
	}
	return bills, nil
}

func (r *BillRepository) Update(ctx context.Context, id string, update ports.BillUpdate) (*domain.Bill, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{"updated_at": time.Now().UTC()}
	setString := func(field string, v *string) {
		if v != nil {
			set[field] = *v
		}
	}
	setString("title", update.Title)
	setString("chamber", update.Chamber)
	setString("status", update.Status)
	setString("topic", update.Topic)
	setString("summary", update.Summary)
	setString("full_text", update.FullText)
	setString("introduced_date", update.IntroducedDate)
	setString("primary_sponsor", update.PrimarySponsor)
	setString("ncleg_url", update.NCLegURL)
	setString("last_action", update.LastAction)
	setString("last_action_date", update.LastActionDate)
	if update.Cosponsors != nil {
		set["cosponsors"] = update.Cosponsors
	}
	if update.Keywords != nil {
		set["keywords"] = update.Keywords
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var b domain.Bill
	err := r.bills.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&b)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrBillNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (r *BillRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.bills.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrBillNotFound
	}
	return nil
}

// listBillsQuery builds the public list filter and options. The public list
// orders by introduced_date; only the admin list orders by last_action_date.
func listBillsQuery(filter ports.ListBillsFilter) (bson.M, *options.FindOptions) {
	query := bson.M{}
	if filter.Chamber != "" {
		query["chamber"] = filter.Chamber
	}
	if filter.Topic != "" {
		query["topic"] = filter.Topic
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.Search != "" {
		re := containsFilter(filter.Search)
		query["$or"] = bson.A{
			bson.M{"title": re},
			bson.M{"bill_number": re},
		}
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "introduced_date", Value: -1}}).
		SetSkip(int64(filter.Offset)).
		SetLimit(int64(filter.Limit))
	return query, opts
}

func (r *BillRepository) List(ctx context.Context, filter ports.ListBillsFilter) ([]*domain.Bill, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query, opts := listBillsQuery(filter)
	cur, err := r.bills.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var bills []*domain.Bill
	if err := cur.All(ctx, &bills); err != nil {
		return nil, err
	}
	return bills, nil
}

func (r *BillRepository) ListPaged(ctx context.Context, filter ports.AdminListBillsFilter) ([]*domain.Bill, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	total, err := r.bills.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "last_action_date", Value: -1}}).
		SetSkip(int64((filter.Page - 1) * filter.Limit)).
		SetLimit(int64(filter.Limit))

	cur, err := r.bills.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var bills []*domain.Bill
	if err := cur.All(ctx, &bills); err != nil {
		return nil, 0, err
	}
	return bills, total, nil
}

func (r *BillRepository) History(ctx context.Context, billID string) ([]*domain.BillAction, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "action_date", Value: -1}})
	cur, err := r.history.Find(ctx, bson.M{"bill_id": billID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var actions []*domain.BillAction
	if err := cur.All(ctx, &actions); err != nil {
		return nil, err
	}
	return actions, nil
}

func (r *BillRepository) Votes(ctx context.Context, billID string) ([]*domain.BillVote, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "vote_date", Value: -1}})
	cur, err := r.votes.Find(ctx, bson.M{"bill_id": billID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var votes []*domain.BillVote
	if err := cur.All(ctx, &votes); err != nil {
		return nil, err
	}
	return votes, nil
}

func (r *BillRepository) VoteRecords(ctx context.Context, voteIDs []string) ([]*domain.BillVoteRecord, error) {
	if len(voteIDs) == 0 {
		return nil, nil
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.voteRecords.Find(ctx, bson.M{"vote_id": bson.M{"$in": voteIDs}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var records []*domain.BillVoteRecord
	if err := cur.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (r *BillRepository) Versions(ctx context.Context, billID string) ([]*domain.BillVersion, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "version_date", Value: -1}})
	cur, err := r.versions.Find(ctx, bson.M{"bill_id": billID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var versions []*domain.BillVersion
	if err := cur.All(ctx, &versions); err != nil {
		return nil, err
	}
	return versions, nil
}
