package ports

import "context"

// IssueCardInput feeds the issue Open Graph card template.
type IssueCardInput struct {
	Title   string
	Author  string
	Excerpt string
	Tags    []string
}

// CommentCardInput feeds the comment Open Graph card template.
type CommentCardInput struct {
	Comment    string
	Author     string
	Party      string
	IssueTitle string
}

// ShareService renders fixed-size social-preview cards as styled HTML.
// Rendering is pure string templating; no image encoding happens in-process.
type ShareService interface {
	IssueCard(ctx context.Context, in IssueCardInput) (string, error)
	CommentCard(ctx context.Context, in CommentCardInput) (string, error)
	ShareCard(ctx context.Context, in CommentCardInput) (string, error)
}

// ActivityRecorder accepts fire-and-forget activity entries; recording never
// blocks a request path.
type ActivityRecorder interface {
	Record(memberID, activityType string, data map[string]any)
}
