package ports

import (
	"context"

	"github.com/ncissues/civic-api/internal/core/domain"
)

// ListIssuesFilter selects published issues for the public list.
type ListIssuesFilter struct {
	Tag      string // tag slug
	Featured bool
}

// IssueRepository defines persistence for issues and their tags.
type IssueRepository interface {
	Create(ctx context.Context, issue *domain.Issue, tagIDs []string) (*domain.Issue, error)
	FindBySlug(ctx context.Context, slug string) (*domain.Issue, error)
	FindPublishedBySlug(ctx context.Context, slug string) (*domain.Issue, error)
	ListPublished(ctx context.Context, filter ListIssuesFilter) ([]*domain.Issue, error)
	TagsForIssue(ctx context.Context, issueID string) ([]*domain.IssueTag, error)
	ListTags(ctx context.Context) ([]*domain.IssueTag, error)
	IncrementViewCount(ctx context.Context, issueID string, delta int64) error
	IncrementCommentCount(ctx context.Context, issueID string) error
}

// CreateIssueInput carries a contributor's new issue. Slug and excerpt are
// derived by the service when absent.
type CreateIssueInput struct {
	AuthorID string
	Title    string
	Content  string
	Excerpt  string
	ImageURL string
	TagIDs   []string
	Status   string // draft (default) or published
}

// IssueDetail is the issue page payload.
type IssueDetail struct {
	Issue *domain.Issue
	Tags  []*domain.IssueTag
}

// IssueService implements the community issue use cases.
type IssueService interface {
	ListIssues(ctx context.Context, filter ListIssuesFilter) ([]*domain.Issue, error)
	// GetIssue returns a published issue with tags and counts a view.
	GetIssue(ctx context.Context, slug string) (*IssueDetail, error)
	CreateIssue(ctx context.Context, in CreateIssueInput) (*domain.Issue, error)
	ListTags(ctx context.Context) ([]*domain.IssueTag, error)
}
