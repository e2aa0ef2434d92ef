package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ncissues/civic-api/internal/core/domain"
	"github.com/ncissues/civic-api/internal/core/ports"
)

const (
	collectionCommittees       = "committees"
	collectionElectedOfficials = "elected_officials"
	collectionLegislators      = "legislators"
)

// DirectoryRepository serves the read-mostly reference collections:
// committees, elected officials, and legislators.
type DirectoryRepository struct {
	committees  *mongo.Collection
	officials   *mongo.Collection
	legislators *mongo.Collection
}

func NewDirectoryRepository(db *mongo.Database) *DirectoryRepository {
	return &DirectoryRepository{
		committees:  db.Collection(collectionCommittees),
		officials:   db.Collection(collectionElectedOfficials),
		legislators: db.Collection(collectionLegislators),
	}
}

// listCommitteesQuery answers the committee directory, grouped by chamber
// and alphabetical inside each chamber.
func listCommitteesQuery(filter ports.ListCommitteesFilter) (bson.M, *options.FindOptions) {
	query := bson.M{"is_active": true}
	if filter.Chamber != "" {
		query["chamber"] = filter.Chamber
	}
	if filter.Type != "" {
		query["committee_type"] = filter.Type
	}
	if filter.Search != "" {
		re := containsFilter(filter.Search)
		query["$or"] = bson.A{
			bson.M{"name": re},
			bson.M{"description": re},
		}
	}

	opts := options.Find().SetSort(bson.D{
		{Key: "chamber", Value: 1},
		{Key: "name", Value: 1},
	})
	return query, opts
}

func (r *DirectoryRepository) ListCommittees(ctx context.Context, filter ports.ListCommitteesFilter) ([]*domain.Committee, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query, opts := listCommitteesQuery(filter)
	cur, err := r.committees.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var committees []*domain.Committee
	if err := cur.All(ctx, &committees); err != nil {
		return nil, err
	}
	return committees, nil
}

func (r *DirectoryRepository) FindCommittee(ctx context.Context, id string) (*domain.Committee, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var c domain.Committee
	if err := r.committees.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCommitteeNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *DirectoryRepository) ListOfficials(ctx context.Context, filter ports.ListOfficialsFilter) ([]*domain.ElectedOfficial, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{"is_active": true}
	if filter.OfficeType != "" {
		query["office_type"] = filter.OfficeType
	}
	if filter.County != "" {
		query["county"] = filter.County
	}
	if filter.District != "" {
		query["district"] = filter.District
	}
	if filter.Search != "" {
		re := containsFilter(filter.Search)
		query["$or"] = bson.A{
			bson.M{"full_name": re},
			bson.M{"office_title": re},
		}
	}

	opts := options.Find().SetSort(bson.D{
		{Key: "office_type", Value: 1},
		{Key: "last_name", Value: 1},
	})
	cur, err := r.officials.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var officials []*domain.ElectedOfficial
	if err := cur.All(ctx, &officials); err != nil {
		return nil, err
	}
	return officials, nil
}

func (r *DirectoryRepository) ListLegislators(ctx context.Context, filter ports.ListLegislatorsFilter) ([]*domain.Legislator, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{"is_active": true}
	if filter.District != "" {
		query["district"] = filter.District
	}
	if filter.Chamber != "" {
		query["chamber"] = filter.Chamber
	}
	if filter.Search != "" {
		re := containsFilter(filter.Search)
		query["$or"] = bson.A{
			bson.M{"first_name": re},
			bson.M{"last_name": re},
			bson.M{"full_name": re},
		}
	}

	opts := options.Find().SetSort(bson.D{{Key: "last_name", Value: 1}})
	cur, err := r.legislators.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var legislators []*domain.Legislator
	if err := cur.All(ctx, &legislators); err != nil {
		return nil, err
	}
	return legislators, nil
}

func (r *DirectoryRepository) FindLegislator(ctx context.Context, id string) (*domain.Legislator, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var l domain.Legislator
	if err := r.legislators.FindOne(ctx, bson.M{"_id": id}).Decode(&l); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrLegislatorNotFound
		}
		return nil, err
	}
	return &l, nil
}
