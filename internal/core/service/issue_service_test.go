package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/ncissues/civic-api/internal/core/domain"
	"github.com/ncissues/civic-api/internal/core/ports"
)

type stubViewCounter struct {
	bumps  map[string]int64
	failed bool
}

func newStubViewCounter() *stubViewCounter {
	return &stubViewCounter{bumps: make(map[string]int64)}
}

func (c *stubViewCounter) Bump(_ context.Context, issueID string) error {
	if c.failed {
		return errors.New("redis down")
	}
	c.bumps[issueID]++
	return nil
}

func (c *stubViewCounter) Drain(_ context.Context) (map[string]int64, error) {
	if c.failed {
		return nil, errors.New("redis down")
	}
	out := c.bumps
	c.bumps = make(map[string]int64)
	return out, nil
}

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Hello, World!", "hello-world"},
		{"  School   Funding 2025 ", "school-funding-2025"},
		{"UPPER lower", "upper-lower"},
		{"---", ""},
	}
	for _, tc := range cases {
		if got := Slugify(tc.in); got != tc.want {
			t.Errorf("Slugify(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestIssueService_CreateIssue(t *testing.T) {
	repo := newStubIssueRepo()
	svc := NewIssueService(repo, newStubViewCounter(), zerolog.Nop())

	long := strings.Repeat("x", excerptLength+50)
	issue, err := svc.CreateIssue(context.Background(), ports.CreateIssueInput{
		AuthorID: "m1",
		Title:    "Fix Our Roads!",
		Content:  long,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if issue.Slug != "fix-our-roads" {
		t.Errorf("got slug %q", issue.Slug)
	}
	if issue.Status != domain.IssueStatusDraft {
		t.Errorf("unspecified status should default to draft, got %q", issue.Status)
	}
	if !issue.PublishedAt.IsZero() {
		t.Errorf("draft must not carry a publish time")
	}
	want := strings.Repeat("x", excerptLength) + "..."
	if issue.Excerpt != want {
		t.Errorf("excerpt not derived from content: got %d chars", len(issue.Excerpt))
	}

	published, err := svc.CreateIssue(context.Background(), ports.CreateIssueInput{
		AuthorID: "m1",
		Title:    "Second",
		Content:  "body",
		Excerpt:  "hand-written",
		Status:   domain.IssueStatusPublished,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if published.PublishedAt.IsZero() {
		t.Errorf("published issue must carry a publish time")
	}
	if published.Excerpt != "hand-written" {
		t.Errorf("explicit excerpt overridden: %q", published.Excerpt)
	}

	// Anything that is not "published" is stored as a draft.
	odd, err := svc.CreateIssue(context.Background(), ports.CreateIssueInput{Title: "t", Content: "c", Status: "archived"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if odd.Status != domain.IssueStatusDraft {
		t.Errorf("unknown status should collapse to draft, got %q", odd.Status)
	}
}

func TestIssueService_GetIssue_CountsView(t *testing.T) {
	repo := newStubIssueRepo()
	repo.issues["i1"] = &domain.Issue{ID: "i1", Slug: "roads", Status: domain.IssueStatusPublished}
	repo.issues["i2"] = &domain.Issue{ID: "i2", Slug: "hidden", Status: domain.IssueStatusDraft}
	repo.tags["t1"] = &domain.IssueTag{ID: "t1", Slug: "transport", Name: "Transport"}
	repo.issueTags["i1"] = []string{"t1"}
	views := newStubViewCounter()
	svc := NewIssueService(repo, views, zerolog.Nop())

	detail, err := svc.GetIssue(context.Background(), "roads")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if detail.Issue.ID != "i1" {
		t.Fatalf("got issue %s", detail.Issue.ID)
	}
	if len(detail.Tags) != 1 || detail.Tags[0].Slug != "transport" {
		t.Fatalf("tags not resolved: %+v", detail.Tags)
	}
	if views.bumps["i1"] != 1 {
		t.Fatalf("view not buffered: %v", views.bumps)
	}

	// Drafts are invisible to the public read path.
	if _, err := svc.GetIssue(context.Background(), "hidden"); !errors.Is(err, domain.ErrIssueNotFound) {
		t.Fatalf("expected ErrIssueNotFound for draft, got %v", err)
	}

	// A failing view buffer must not fail the page.
	views.failed = true
	if _, err := svc.GetIssue(context.Background(), "roads"); err != nil {
		t.Fatalf("view buffer failure leaked: %v", err)
	}
}

func TestIssueService_FlushViews(t *testing.T) {
	repo := newStubIssueRepo()
	repo.issues["i1"] = &domain.Issue{ID: "i1", Slug: "roads", Status: domain.IssueStatusPublished}
	views := newStubViewCounter()
	views.bumps["i1"] = 3
	views.bumps["i2"] = 7
	svc := NewIssueService(repo, views, zerolog.Nop())

	svc.FlushViews(context.Background())

	if repo.viewIncrement["i1"] != 3 || repo.viewIncrement["i2"] != 7 {
		t.Fatalf("counts not flushed: %v", repo.viewIncrement)
	}
	if len(views.bumps) != 0 {
		t.Fatalf("buffer not reset: %v", views.bumps)
	}

	// A second flush with an empty buffer is a no-op.
	svc.FlushViews(context.Background())
	if repo.viewIncrement["i1"] != 3 {
		t.Fatalf("empty flush changed counts: %v", repo.viewIncrement)
	}
}
