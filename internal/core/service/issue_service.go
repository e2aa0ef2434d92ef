package service

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/ncissues/civic-api/internal/core/domain"
	"github.com/ncissues/civic-api/internal/core/ports"
)

const excerptLength = 200

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// ViewCounter buffers issue view increments outside the request path.
// Backed by Redis; flushed to the issue store periodically.
type ViewCounter interface {
	Bump(ctx context.Context, issueID string) error
	// Drain returns and resets all buffered counts.
	Drain(ctx context.Context) (map[string]int64, error)
}

// IssueService implements the community issue use cases.
type IssueService struct {
	repo  ports.IssueRepository
	views ViewCounter
	log   zerolog.Logger
}

func NewIssueService(repo ports.IssueRepository, views ViewCounter, log zerolog.Logger) *IssueService {
	return &IssueService{repo: repo, views: views, log: log}
}

func (s *IssueService) ListIssues(ctx context.Context, filter ports.ListIssuesFilter) ([]*domain.Issue, error) {
	return s.repo.ListPublished(ctx, filter)
}

// GetIssue returns a published issue with its tags and counts a view. The
// view bump goes through the Redis buffer so a hot issue page does not write
// to the issue store on every request.
func (s *IssueService) GetIssue(ctx context.Context, slug string) (*ports.IssueDetail, error) {
	issue, err := s.repo.FindPublishedBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	tags, err := s.repo.TagsForIssue(ctx, issue.ID)
	if err != nil {
		s.log.Warn().Err(err).Str("issue_id", issue.ID).Msg("failed to load issue tags")
		tags = nil
	}

	if err := s.views.Bump(ctx, issue.ID); err != nil {
		s.log.Warn().Err(err).Str("issue_id", issue.ID).Msg("failed to buffer view count")
	}

	return &ports.IssueDetail{Issue: issue, Tags: tags}, nil
}

// CreateIssue stores a contributor's issue. The slug is derived from the
// title and the excerpt from the content when absent.
func (s *IssueService) CreateIssue(ctx context.Context, in ports.CreateIssueInput) (*domain.Issue, error) {
	status := in.Status
	if status != domain.IssueStatusPublished {
		status = domain.IssueStatusDraft
	}

	excerpt := in.Excerpt
	if excerpt == "" {
		excerpt = truncateRunes(in.Content, excerptLength) + "..."
	}

	now := time.Now().UTC()
	issue := &domain.Issue{
		Slug:      Slugify(in.Title),
		Title:     in.Title,
		Content:   in.Content,
		Excerpt:   excerpt,
		ImageURL:  in.ImageURL,
		AuthorID:  in.AuthorID,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if status == domain.IssueStatusPublished {
		issue.PublishedAt = now
	}

	created, err := s.repo.Create(ctx, issue, in.TagIDs)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("issue_id", created.ID).Str("slug", created.Slug).Str("author_id", in.AuthorID).Msg("issue created")
	return created, nil
}

func (s *IssueService) ListTags(ctx context.Context) ([]*domain.IssueTag, error) {
	return s.repo.ListTags(ctx)
}

// FlushViews drains the Redis view buffer into the issue store. Run
// periodically from main.
func (s *IssueService) FlushViews(ctx context.Context) {
	counts, err := s.views.Drain(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("failed to drain view counts")
		return
	}
	for issueID, n := range counts {
		if err := s.repo.IncrementViewCount(ctx, issueID, n); err != nil {
			s.log.Warn().Err(err).Str("issue_id", issueID).Msg("failed to flush view count")
		}
	}
}

// Slugify lowercases the title and collapses every non-alphanumeric run into
// a single dash. Slugs are not guaranteed unique.
func Slugify(title string) string {
	slug := slugPattern.ReplaceAllString(strings.ToLower(title), "-")
	return strings.Trim(slug, "-")
}

// truncateRunes cuts s at n runes without splitting a multibyte character.
func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
