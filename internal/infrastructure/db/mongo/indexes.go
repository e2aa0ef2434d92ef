package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes declares the indexes the API relies on. The unique ones are
// load-bearing: duplicate inserts surface as driver duplicate-key errors and
// map to conflict responses, so no handler ever does a read-then-write
// uniqueness check.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	unique := options.Index().SetUnique(true)

	specs := map[string][]mongo.IndexModel{
		collectionBills: {
			{Keys: bson.D{{Key: "bill_number", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "introduced_date", Value: -1}}},
			{Keys: bson.D{{Key: "last_action_date", Value: -1}}},
			{Keys: bson.D{{Key: "chamber", Value: 1}, {Key: "status", Value: 1}}},
		},
		collectionTrackedBills: {
			{Keys: bson.D{{Key: "member_id", Value: 1}, {Key: "bill_id", Value: 1}}, Options: unique},
		},
		collectionPublicUsers: {
			{Keys: bson.D{{Key: "phone_number", Value: 1}}, Options: unique},
		},
		collectionMembers: {
			{Keys: bson.D{{Key: "voter_reg_num", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true).SetSparse(true)},
			{Keys: bson.D{{Key: "ncid", Value: 1}}},
		},
		collectionAdminUsers: {
			{Keys: bson.D{{Key: "username", Value: 1}}, Options: unique},
		},
		collectionIssues: {
			{Keys: bson.D{{Key: "slug", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "status", Value: 1}, {Key: "published_at", Value: -1}}},
		},
		collectionIssueTags: {
			{Keys: bson.D{{Key: "slug", Value: 1}}, Options: unique},
		},
		collectionBillComments: {
			{Keys: bson.D{{Key: "bill_id", Value: 1}, {Key: "created_at", Value: -1}}},
		},
		collectionIssueComments: {
			{Keys: bson.D{{Key: "issue_id", Value: 1}, {Key: "created_at", Value: -1}}},
		},
		collectionBillHistory: {
			{Keys: bson.D{{Key: "bill_id", Value: 1}, {Key: "action_date", Value: -1}}},
		},
		collectionBillVotes: {
			{Keys: bson.D{{Key: "bill_id", Value: 1}}},
		},
		collectionBillVoteRecords: {
			{Keys: bson.D{{Key: "vote_id", Value: 1}}},
		},
		collectionBillVersions: {
			{Keys: bson.D{{Key: "bill_id", Value: 1}}},
		},
		collectionEvents: {
			{Keys: bson.D{{Key: "event_date", Value: 1}, {Key: "start_time", Value: 1}}},
		},
		collectionEventSubscriptions: {
			{Keys: bson.D{{Key: "member_id", Value: 1}}},
		},
		collectionMemberActivity: {
			{Keys: bson.D{{Key: "member_id", Value: 1}, {Key: "created_at", Value: -1}}},
		},
	}

	for name, models := range specs {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("ensure indexes on %s: %w", name, err)
		}
	}
	return nil
}
