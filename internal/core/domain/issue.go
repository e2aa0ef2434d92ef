package domain

import "time"

const (
	IssueStatusDraft     = "draft"
	IssueStatusPublished = "published"
)

// Issue is a community-authored discussion article, distinct from a
// legislative bill. The slug is derived from the title.
type Issue struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	Slug         string    `json:"slug" bson:"slug"`
	Title        string    `json:"title" bson:"title"`
	Content      string    `json:"content" bson:"content"`
	Excerpt      string    `json:"excerpt,omitempty" bson:"excerpt,omitempty"`
	ImageURL     string    `json:"image_url,omitempty" bson:"image_url,omitempty"`
	AuthorID     string    `json:"author_id" bson:"author_id"`
	Status       string    `json:"status" bson:"status"`
	Featured     bool      `json:"featured" bson:"featured"`
	ViewCount    int64     `json:"view_count" bson:"view_count"`
	CommentCount int64     `json:"comment_count" bson:"comment_count"`
	PublishedAt  time.Time `json:"published_at,omitempty" bson:"published_at,omitempty"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}

// IssueTag labels issues; tag slugs are used as list filters.
type IssueTag struct {
	ID   string `json:"id" bson:"_id,omitempty"`
	Name string `json:"name" bson:"name"`
	Slug string `json:"slug" bson:"slug"`
}

// CommentAuthor is the embedded author view attached to comments.
type CommentAuthor struct {
	ID        string `json:"id" bson:"id"`
	FullName  string `json:"full_name" bson:"full_name"`
	PartyCode string `json:"party_cd" bson:"party_cd"`
	ResCity   string `json:"res_city,omitempty" bson:"res_city,omitempty"`
}

// Comment is a member comment on either a bill or an issue. Exactly one of
// BillID/IssueID is set. Threading is via the optional parent reference,
// which must point at a comment on the same bill or issue.
type Comment struct {
	ID              string        `json:"id" bson:"_id,omitempty"`
	BillID          string        `json:"bill_id,omitempty" bson:"bill_id,omitempty"`
	IssueID         string        `json:"issue_id,omitempty" bson:"issue_id,omitempty"`
	MemberID        string        `json:"member_id" bson:"member_id"`
	ParentCommentID string        `json:"parent_comment_id,omitempty" bson:"parent_comment_id,omitempty"`
	Text            string        `json:"comment_text" bson:"comment_text"`
	IsApproved      bool          `json:"is_approved" bson:"is_approved"`
	Author          CommentAuthor `json:"member" bson:"member"`
	CreatedAt       time.Time     `json:"created_at" bson:"created_at"`
}

// MaxCommentLength bounds comment text before it ever reaches the database.
const MaxCommentLength = 2000
