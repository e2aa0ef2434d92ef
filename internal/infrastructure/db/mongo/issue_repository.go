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
	collectionIssues    = "issues"
	collectionIssueTags = "issue_tags"
)

// issueDoc is the stored shape of an issue. Tag ids live on the issue
// document; the tags themselves are a separate collection keyed by slug.
type issueDoc struct {
	domain.Issue `bson:",inline"`
	TagIDs       []string `bson:"tag_ids,omitempty"`
}

// IssueRepository implements ports.IssueRepository over the issues and
// issue_tags collections.
type IssueRepository struct {
	issues *mongo.Collection
	tags   *mongo.Collection
}

func NewIssueRepository(db *mongo.Database) *IssueRepository {
	return &IssueRepository{
		issues: db.Collection(collectionIssues),
		tags:   db.Collection(collectionIssueTags),
	}
}

func (r *IssueRepository) Create(ctx context.Context, issue *domain.Issue, tagIDs []string) (*domain.Issue, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := issueDoc{Issue: *issue, TagIDs: tagIDs}
	doc.ID = primitive.NewObjectID().Hex()
	now := time.Now().UTC()
	doc.CreatedAt = now
	doc.UpdatedAt = now

	if _, err := r.issues.InsertOne(ctx, &doc); err != nil {
		return nil, err
	}
	return &doc.Issue, nil
}

func (r *IssueRepository) findOne(ctx context.Context, filter bson.M) (*domain.Issue, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc issueDoc
	if err := r.issues.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrIssueNotFound
		}
		return nil, err
	}
	return &doc.Issue, nil
}

func (r *IssueRepository) FindBySlug(ctx context.Context, slug string) (*domain.Issue, error) {
	return r.findOne(ctx, bson.M{"slug": slug})
}

func (r *IssueRepository) FindPublishedBySlug(ctx context.Context, slug string) (*domain.Issue, error) {
	return r.findOne(ctx, bson.M{"slug": slug, "status": domain.IssueStatusPublished})
}

func (r *IssueRepository) ListPublished(ctx context.Context, filter ports.ListIssuesFilter) ([]*domain.Issue, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{"status": domain.IssueStatusPublished}
	if filter.Featured {
		query["featured"] = true
	}
	if filter.Tag != "" {
		var tag domain.IssueTag
		err := r.tags.FindOne(ctx, bson.M{"slug": filter.Tag}).Decode(&tag)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return nil, nil
			}
			return nil, err
		}
		query["tag_ids"] = tag.ID
	}

	opts := options.Find().SetSort(bson.D{{Key: "published_at", Value: -1}})
	cur, err := r.issues.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []issueDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	issues := make([]*domain.Issue, 0, len(docs))
	for i := range docs {
		issues = append(issues, &docs[i].Issue)
	}
	return issues, nil
}

func (r *IssueRepository) TagsForIssue(ctx context.Context, issueID string) ([]*domain.IssueTag, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc issueDoc
	if err := r.issues.FindOne(ctx, bson.M{"_id": issueID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrIssueNotFound
		}
		return nil, err
	}
	if len(doc.TagIDs) == 0 {
		return nil, nil
	}

	cur, err := r.tags.Find(ctx, bson.M{"_id": bson.M{"$in": doc.TagIDs}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var tags []*domain.IssueTag
	if err := cur.All(ctx, &tags); err != nil {
		return nil, err
	}
	return tags, nil
}

func (r *IssueRepository) ListTags(ctx context.Context) ([]*domain.IssueTag, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cur, err := r.tags.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var tags []*domain.IssueTag
	if err := cur.All(ctx, &tags); err != nil {
		return nil, err
	}
	return tags, nil
}

func (r *IssueRepository) IncrementViewCount(ctx context.Context, issueID string, delta int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.issues.UpdateOne(ctx,
		bson.M{"_id": issueID},
		bson.M{"$inc": bson.M{"view_count": delta}},
	)
	return err
}

func (r *IssueRepository) IncrementCommentCount(ctx context.Context, issueID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.issues.UpdateOne(ctx,
		bson.M{"_id": issueID},
		bson.M{"$inc": bson.M{"comment_count": 1}},
	)
	return err
}
