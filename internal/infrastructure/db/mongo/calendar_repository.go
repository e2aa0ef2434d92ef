package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ncissues/civic-api/internal/core/domain"
	"github.com/ncissues/civic-api/internal/core/ports"
)

const (
	collectionEvents             = "legislative_events"
	collectionEventSubscriptions = "event_subscriptions"
)

// CalendarRepository implements ports.CalendarRepository over the event and
// subscription collections.
type CalendarRepository struct {
	events        *mongo.Collection
	subscriptions *mongo.Collection
}

func NewCalendarRepository(db *mongo.Database) *CalendarRepository {
	return &CalendarRepository{
		events:        db.Collection(collectionEvents),
		subscriptions: db.Collection(collectionEventSubscriptions),
	}
}

// ListPublic returns public events in chronological order. Date bounds are
// ISO yyyy-mm-dd strings, so lexical comparison matches chronological.
func (r *CalendarRepository) ListPublic(ctx context.Context, filter ports.ListEventsFilter) ([]*domain.LegislativeEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{"is_public": true}
	dateRange := bson.M{}
	if filter.StartDate != "" {
		dateRange["$gte"] = filter.StartDate
	}
	if filter.EndDate != "" {
		dateRange["$lte"] = filter.EndDate
	}
	if len(dateRange) > 0 {
		query["event_date"] = dateRange
	}
	if filter.EventType != "" {
		query["event_type"] = filter.EventType
	}
	if filter.Chamber != "" {
		query["chamber"] = filter.Chamber
	}
	if filter.CommitteeID != "" {
		query["committee_id"] = filter.CommitteeID
	}

	opts := options.Find().SetSort(bson.D{
		{Key: "event_date", Value: 1},
		{Key: "start_time", Value: 1},
	})
	cur, err := r.events.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var events []*domain.LegislativeEvent
	if err := cur.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (r *CalendarRepository) CreateEvent(ctx context.Context, e *domain.LegislativeEvent) (*domain.LegislativeEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	out := *e
	out.ID = primitive.NewObjectID().Hex()
	out.CreatedAt = time.Now().UTC()

	if _, err := r.events.InsertOne(ctx, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *CalendarRepository) CreateSubscription(ctx context.Context, s *domain.EventSubscription) (*domain.EventSubscription, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	out := *s
	out.ID = primitive.NewObjectID().Hex()
	out.CreatedAt = time.Now().UTC()

	if _, err := r.subscriptions.InsertOne(ctx, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *CalendarRepository) ListSubscriptions(ctx context.Context, memberID string) ([]*domain.EventSubscription, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.subscriptions.Find(ctx, bson.M{"member_id": memberID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var subs []*domain.EventSubscription
	if err := cur.All(ctx, &subs); err != nil {
		return nil, err
	}
	return subs, nil
}

func (r *CalendarRepository) DeleteSubscription(ctx context.Context, id, memberID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.subscriptions.DeleteOne(ctx, bson.M{"_id": id, "member_id": memberID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrSubscriptionNotFound
	}
	return nil
}
