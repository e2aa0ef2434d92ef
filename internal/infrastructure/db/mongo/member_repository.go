package mongo

import (
	"context"
	"errors"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ncissues/civic-api/internal/core/domain"
	"github.com/ncissues/civic-api/internal/core/ports"
)

const collectionMembers = "members"

// MemberRepository implements ports.MemberRepository over the members
// collection.
type MemberRepository struct {
	col *mongo.Collection
}

func NewMemberRepository(db *mongo.Database) *MemberRepository {
	return &MemberRepository{col: db.Collection(collectionMembers)}
}

// containsFilter builds the case-insensitive substring match used wherever
// the API offers ilike-style search.
func containsFilter(q string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(q), Options: "i"}
}

func (r *MemberRepository) findOne(ctx context.Context, filter bson.M) (*domain.Member, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var m domain.Member
	if err := r.col.FindOne(ctx, filter).Decode(&m); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrMemberNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *MemberRepository) FindByID(ctx context.Context, id string) (*domain.Member, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *MemberRepository) FindByEmail(ctx context.Context, email string) (*domain.Member, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *MemberRepository) FindByVoterRegNum(ctx context.Context, voterRegNum string) (*domain.Member, error) {
	return r.findOne(ctx, bson.M{"voter_reg_num": voterRegNum})
}

func (r *MemberRepository) FindByNCID(ctx context.Context, ncid string) (*domain.Member, error) {
	return r.findOne(ctx, bson.M{"ncid": ncid})
}

func (r *MemberRepository) FindByPhone(ctx context.Context, phone string) (*domain.Member, error) {
	return r.findOne(ctx, bson.M{"phone": phone})
}

func (r *MemberRepository) UpdateLastLogin(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"last_login": time.Now().UTC()}},
	)
	return err
}

// UpdateContact applies the self-service claim fields. Changing email or
// phone resets its verified flag.
func (r *MemberRepository) UpdateContact(ctx context.Context, id string, update ports.MemberContactUpdate) (*domain.Member, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{"account_updated_at": time.Now().UTC()}
	if update.Email != "" {
		set["email"] = update.Email
		set["email_verified"] = false
	}
	if update.Phone != "" {
		set["phone"] = update.Phone
		set["phone_verified"] = false
	}
	if update.PasswordHash != "" {
		set["password_hash"] = update.PasswordHash
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var m domain.Member
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&m)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrMemberNotFound
		}
		return nil, err
	}
	return &m, nil
}

// List returns a page of members matching filter and the total count.
func (r *MemberRepository) List(ctx context.Context, filter ports.ListMembersFilter) ([]*domain.Member, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.Search != "" {
		re := containsFilter(filter.Search)
		query["$or"] = bson.A{
			bson.M{"first_name": re},
			bson.M{"last_name": re},
			bson.M{"full_name": re},
			bson.M{"email": re},
			bson.M{"voter_reg_num": re},
		}
	}
	if filter.Party != "" {
		query["party_cd"] = filter.Party
	}
	if filter.District != "" {
		query["$and"] = bson.A{bson.M{"$or": bson.A{
			bson.M{"nc_senate_dist": filter.District},
			bson.M{"nc_house_dist": filter.District},
		}}}
	}

	total, err := r.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "last_name", Value: 1}}).
		SetSkip(int64((filter.Page - 1) * filter.Limit)).
		SetLimit(int64(filter.Limit))

	cur, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var members []*domain.Member
	if err := cur.All(ctx, &members); err != nil {
		return nil, 0, err
	}
	return members, total, nil
}

// Stats aggregates the admin dashboard counters.
func (r *MemberRepository) Stats(ctx context.Context) (*ports.MemberStats, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	stats := &ports.MemberStats{PartyBreakdown: map[string]int64{}}

	var err error
	if stats.TotalMembers, err = r.col.CountDocuments(ctx, bson.M{}); err != nil {
		return nil, err
	}
	notEmpty := func(field string) bson.M {
		return bson.M{field: bson.M{"$exists": true, "$nin": bson.A{nil, ""}}}
	}
	if stats.MembersWithEmail, err = r.col.CountDocuments(ctx, notEmpty("email")); err != nil {
		return nil, err
	}
	if stats.MembersWithPassword, err = r.col.CountDocuments(ctx, notEmpty("password_hash")); err != nil {
		return nil, err
	}

	// Party breakdown via a single $group pass.
	cur, err := r.col.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"party_cd": bson.M{"$nin": bson.A{nil, ""}}}}},
		{{Key: "$group", Value: bson.M{"_id": "$party_cd", "count": bson.M{"$sum": 1}}}},
	})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	for cur.Next(ctx) {
		var row struct {
			Party string `bson:"_id"`
			Count int64  `bson:"count"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, err
		}
		stats.PartyBreakdown[row.Party] = row.Count
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}

	senate, err := r.col.Distinct(ctx, "nc_senate_dist", bson.M{"nc_senate_dist": bson.M{"$nin": bson.A{nil, ""}}})
	if err != nil {
		return nil, err
	}
	house, err := r.col.Distinct(ctx, "nc_house_dist", bson.M{"nc_house_dist": bson.M{"$nin": bson.A{nil, ""}}})
	if err != nil {
		return nil, err
	}
	stats.SenateDistricts = len(senate)
	stats.HouseDistricts = len(house)

	return stats, nil
}
