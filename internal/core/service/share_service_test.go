package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/ncissues/civic-api/internal/core/ports"
)

type stubCardCache struct {
	cards  map[string]string
	gets   int
	sets   int
	failed bool
}

func newStubCardCache() *stubCardCache {
	return &stubCardCache{cards: make(map[string]string)}
}

func (c *stubCardCache) Get(_ context.Context, key string) (string, bool, error) {
	if c.failed {
		return "", false, errors.New("redis down")
	}
	c.gets++
	html, ok := c.cards[key]
	return html, ok, nil
}

func (c *stubCardCache) Set(_ context.Context, key, html string) error {
	if c.failed {
		return errors.New("redis down")
	}
	c.sets++
	c.cards[key] = html
	return nil
}

func TestEllipsize(t *testing.T) {
	cases := []struct {
		in   string
		n    int
		want string
	}{
		{"short", 10, "short"},
		{"exactly-10", 10, "exactly-10"},
		{"much longer text", 4, "much..."},
		{"héllo wörld", 5, "héllo..."},
	}
	for _, tc := range cases {
		if got := ellipsize(tc.in, tc.n); got != tc.want {
			t.Errorf("ellipsize(%q, %d) = %q, want %q", tc.in, tc.n, got, tc.want)
		}
	}
}

func TestPartyLabel(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"REP", "Republican"},
		{"rep", "Republican"},
		{"DEM", "Democrat"},
		{"UNA", "UNA"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := partyLabel(tc.in); got != tc.want {
			t.Errorf("partyLabel(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestShareService_IssueCard(t *testing.T) {
	svc := NewShareService(newStubCardCache(), zerolog.Nop())

	html, err := svc.IssueCard(context.Background(), ports.IssueCardInput{
		Title:   "School Funding",
		Author:  "Jane Voter",
		Excerpt: "We need to talk about school funding.",
		Tags:    []string{"education", "budget", "k12", "extra"},
	})
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	for _, want := range []string{"School Funding", "Jane Voter", "education", "k12"} {
		if !strings.Contains(html, want) {
			t.Errorf("card missing %q", want)
		}
	}
	if strings.Contains(html, "extra") {
		t.Errorf("tags beyond the cap should be dropped")
	}

	// Empty titles fall back to the site name.
	html, err = svc.IssueCard(context.Background(), ports.IssueCardInput{})
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if !strings.Contains(html, "NC Issues") {
		t.Errorf("fallback title missing")
	}
}

func TestShareService_IssueCard_DoesNotMutateTags(t *testing.T) {
	svc := NewShareService(newStubCardCache(), zerolog.Nop())

	tags := []string{"  education  ", "budget"}
	if _, err := svc.IssueCard(context.Background(), ports.IssueCardInput{
		Title: "School Funding",
		Tags:  tags,
	}); err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if tags[0] != "  education  " {
		t.Fatalf("caller's tag slice was rewritten: %q", tags[0])
	}
}

func TestShareService_CommentCard_EscapesInput(t *testing.T) {
	svc := NewShareService(newStubCardCache(), zerolog.Nop())

	html, err := svc.CommentCard(context.Background(), ports.CommentCardInput{
		Comment:    `<script>alert("x")</script>`,
		Author:     "Jane Voter",
		Party:      "DEM",
		IssueTitle: "Roads",
	})
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if strings.Contains(html, "<script>") {
		t.Fatalf("comment text not escaped")
	}
	if !strings.Contains(html, "Democrat") {
		t.Errorf("party code not expanded")
	}
	// The avatar shows the author's initial.
	if !strings.Contains(html, `<div class="avatar">J</div>`) {
		t.Errorf("avatar initial missing")
	}
}

func TestShareService_CardCache(t *testing.T) {
	cache := newStubCardCache()
	svc := NewShareService(cache, zerolog.Nop())
	in := ports.CommentCardInput{Comment: "hello", Author: "Jane", IssueTitle: "Roads"}

	first, err := svc.CommentCard(context.Background(), in)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if cache.sets != 1 {
		t.Fatalf("expected one cache write, got %d", cache.sets)
	}

	second, err := svc.CommentCard(context.Background(), in)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if second != first {
		t.Fatalf("cache hit returned different html")
	}
	if cache.sets != 1 {
		t.Fatalf("cache hit should not rewrite, got %d writes", cache.sets)
	}

	// The standalone share variant keys separately from the OG card.
	share, err := svc.ShareCard(context.Background(), in)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if share == first {
		t.Fatalf("share card should use its own template")
	}

	// Cache failures degrade to plain rendering.
	cache.failed = true
	degraded, err := svc.CommentCard(context.Background(), in)
	if err != nil {
		t.Fatalf("render with broken cache failed: %v", err)
	}
	if degraded != first {
		t.Fatalf("degraded render differs from cached output")
	}
}
