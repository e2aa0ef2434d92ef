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

const (
	collectionBillComments  = "bill_comments"
	collectionIssueComments = "issue_comments"
)

// CommentRepository implements ports.CommentRepository. Bill and issue
// comments live in separate collections so a parent reference can never
// cross threads by construction of the scoped queries.
type CommentRepository struct {
	billComments  *mongo.Collection
	issueComments *mongo.Collection
}

func NewCommentRepository(db *mongo.Database) *CommentRepository {
	return &CommentRepository{
		billComments:  db.Collection(collectionBillComments),
		issueComments: db.Collection(collectionIssueComments),
	}
}

func listTopLevel(ctx context.Context, col *mongo.Collection, filter bson.M) ([]*domain.Comment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter["is_approved"] = true
	filter["parent_comment_id"] = bson.M{"$in": bson.A{nil, ""}}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var comments []*domain.Comment
	if err := cur.All(ctx, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *CommentRepository) ListTopLevelForBill(ctx context.Context, billID string) ([]*domain.Comment, error) {
	return listTopLevel(ctx, r.billComments, bson.M{"bill_id": billID})
}

func (r *CommentRepository) ListTopLevelForIssue(ctx context.Context, issueID string) ([]*domain.Comment, error) {
	return listTopLevel(ctx, r.issueComments, bson.M{"issue_id": issueID})
}

func insertComment(ctx context.Context, col *mongo.Collection, c *domain.Comment) (*domain.Comment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	out := *c
	out.ID = primitive.NewObjectID().Hex()
	out.CreatedAt = time.Now().UTC()

	if _, err := col.InsertOne(ctx, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *CommentRepository) CreateForBill(ctx context.Context, c *domain.Comment) (*domain.Comment, error) {
	return insertComment(ctx, r.billComments, c)
}

func (r *CommentRepository) CreateForIssue(ctx context.Context, c *domain.Comment) (*domain.Comment, error) {
	return insertComment(ctx, r.issueComments, c)
}

func findComment(ctx context.Context, col *mongo.Collection, filter bson.M) (*domain.Comment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var c domain.Comment
	if err := col.FindOne(ctx, filter).Decode(&c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCommentNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *CommentRepository) FindBillComment(ctx context.Context, billID, commentID string) (*domain.Comment, error) {
	return findComment(ctx, r.billComments, bson.M{"_id": commentID, "bill_id": billID})
}

func (r *CommentRepository) FindIssueComment(ctx context.Context, issueID, commentID string) (*domain.Comment, error) {
	return findComment(ctx, r.issueComments, bson.M{"_id": commentID, "issue_id": issueID})
}
