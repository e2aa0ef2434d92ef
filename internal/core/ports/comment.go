package ports

import (
	"context"

	"github.com/ncissues/civic-api/internal/core/domain"
)

// CommentRepository stores bill and issue comments in their respective
// collections. Thread is either a bill id or an issue id; the repository
// scopes every query to it.
type CommentRepository interface {
	// ListTopLevel returns approved comments with no parent, newest first.
	ListTopLevelForBill(ctx context.Context, billID string) ([]*domain.Comment, error)
	ListTopLevelForIssue(ctx context.Context, issueID string) ([]*domain.Comment, error)
	CreateForBill(ctx context.Context, c *domain.Comment) (*domain.Comment, error)
	CreateForIssue(ctx context.Context, c *domain.Comment) (*domain.Comment, error)
	// FindBillComment / FindIssueComment look up a comment scoped to its
	// thread, used to validate parent references.
	FindBillComment(ctx context.Context, billID, commentID string) (*domain.Comment, error)
	FindIssueComment(ctx context.Context, issueID, commentID string) (*domain.Comment, error)
}

// CreateCommentInput carries a new comment from the transport layer. The
// Author snapshot is resolved by the service from the member record.
type CreateCommentInput struct {
	MemberID        string
	Text            string
	ParentCommentID string
}

// CommentService implements listing and posting for both comment surfaces.
type CommentService interface {
	ListBillComments(ctx context.Context, billID string) ([]*domain.Comment, error)
	PostBillComment(ctx context.Context, billID string, in CreateCommentInput) (*domain.Comment, error)
	// Issue comments are addressed by slug; a missing issue yields
	// domain.ErrIssueNotFound.
	ListIssueComments(ctx context.Context, slug string) ([]*domain.Comment, error)
	PostIssueComment(ctx context.Context, slug string, in CreateCommentInput) (*domain.Comment, error)
}
