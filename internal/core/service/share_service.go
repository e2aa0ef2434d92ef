package service

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"html/template"
	"strings"

	"github.com/rs/zerolog"

	"github.com/ncissues/civic-api/internal/api/metrics"
	"github.com/ncissues/civic-api/internal/core/ports"
)

// CardCache abstracts the rendered-card store (Redis). Cards are immutable
// for a given input, so hits avoid re-rendering entirely.
type CardCache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, html string) error
}

// ShareService renders 1200x630 social-preview cards as styled HTML.
type ShareService struct {
	cache CardCache
	log   zerolog.Logger

	issueTmpl   *template.Template
	commentTmpl *template.Template
	shareTmpl   *template.Template
}

func NewShareService(cache CardCache, log zerolog.Logger) *ShareService {
	return &ShareService{
		cache:       cache,
		log:         log,
		issueTmpl:   template.Must(template.New("issue_card").Parse(issueCardHTML)),
		commentTmpl: template.Must(template.New("comment_card").Parse(commentCardHTML)),
		shareTmpl:   template.Must(template.New("share_card").Parse(shareCardHTML)),
	}
}

const (
	cardTitleMax   = 100
	cardExcerptMax = 150
	cardCommentMax = 280
	cardMaxTags    = 3
)

type issueCardData struct {
	Title   string
	Author  string
	Excerpt string
	Tags    []string
}

type commentCardData struct {
	Comment    string
	Author     string
	Initial    string
	Party      string
	PartyClass string
	IssueTitle string
}

// IssueCard renders the Open Graph card for an issue.
func (s *ShareService) IssueCard(ctx context.Context, in ports.IssueCardInput) (string, error) {
	title := in.Title
	if title == "" {
		title = "NC Issues"
	}

	shown := len(in.Tags)
	if shown > cardMaxTags {
		shown = cardMaxTags
	}
	// Copy before trimming so the caller's slice stays untouched.
	tags := make([]string, shown)
	for i, t := range in.Tags[:shown] {
		tags[i] = strings.TrimSpace(t)
	}

	data := issueCardData{
		Title:   ellipsize(title, cardTitleMax),
		Author:  in.Author,
		Excerpt: ellipsize(in.Excerpt, cardExcerptMax),
		Tags:    tags,
	}
	return s.render(ctx, s.issueTmpl, "issue", data)
}

// CommentCard renders the Open Graph card for a comment.
func (s *ShareService) CommentCard(ctx context.Context, in ports.CommentCardInput) (string, error) {
	return s.render(ctx, s.commentTmpl, "comment", s.commentData(in))
}

// ShareCard renders the standalone white-card variant used by the share
// endpoint.
func (s *ShareService) ShareCard(ctx context.Context, in ports.CommentCardInput) (string, error) {
	return s.render(ctx, s.shareTmpl, "share", s.commentData(in))
}

func (s *ShareService) commentData(in ports.CommentCardInput) commentCardData {
	initial := ""
	if in.Author != "" {
		initial = strings.ToUpper(string([]rune(in.Author)[0]))
	}
	return commentCardData{
		Comment:    ellipsize(in.Comment, cardCommentMax),
		Author:     in.Author,
		Initial:    initial,
		Party:      partyLabel(in.Party),
		PartyClass: strings.ToLower(in.Party),
		IssueTitle: ellipsize(in.IssueTitle, cardTitleMax),
	}
}

// render serves from the card cache when possible; a cache failure degrades
// to a plain render.
func (s *ShareService) render(ctx context.Context, tmpl *template.Template, kind string, data any) (string, error) {
	key := cardKey(kind, data)
	if cached, ok, err := s.cache.Get(ctx, key); err != nil {
		s.log.Warn().Err(err).Str("kind", kind).Msg("card cache read failed")
	} else if ok {
		metrics.ShareCardsRenderedTotal.WithLabelValues(kind, "hit").Inc()
		return cached, nil
	}

	var b strings.Builder
	if err := tmpl.Execute(&b, data); err != nil {
		return "", err
	}
	html := b.String()

	if err := s.cache.Set(ctx, key, html); err != nil {
		s.log.Warn().Err(err).Str("kind", kind).Msg("card cache write failed")
	}
	metrics.ShareCardsRenderedTotal.WithLabelValues(kind, "miss").Inc()
	return html, nil
}

func cardKey(kind string, data any) string {
	h := sha1.New()
	switch d := data.(type) {
	case issueCardData:
		h.Write([]byte(d.Title + "|" + d.Author + "|" + d.Excerpt + "|" + strings.Join(d.Tags, ",")))
	case commentCardData:
		h.Write([]byte(d.Comment + "|" + d.Author + "|" + d.Party + "|" + d.IssueTitle))
	}
	return "ogcard:" + kind + ":" + hex.EncodeToString(h.Sum(nil))
}

// partyLabel expands the NC voter-file party codes shown on cards.
func partyLabel(code string) string {
	switch strings.ToUpper(code) {
	case "REP":
		return "Republican"
	case "DEM":
		return "Democrat"
	default:
		return code
	}
}

// ellipsize truncates at n runes, appending an ellipsis when cut.
func ellipsize(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}

const issueCardHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<style>
  * { margin: 0; padding: 0; box-sizing: border-box; }
  body {
    width: 1200px; height: 630px;
    font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', 'Roboto', sans-serif;
    background: linear-gradient(135deg, #1e3a8a 0%, #3b82f6 100%);
    display: flex; flex-direction: column; justify-content: space-between;
    padding: 60px; color: white;
  }
  .header { display: flex; justify-content: space-between; align-items: center; }
  .logo { font-size: 36px; font-weight: bold; }
  .tags { display: flex; gap: 12px; }
  .tag { background: rgba(255,255,255,0.2); padding: 8px 20px; border-radius: 20px; font-size: 18px; }
  .content { flex: 1; display: flex; flex-direction: column; justify-content: center; max-width: 900px; }
  .title { font-size: 56px; font-weight: bold; line-height: 1.2; margin-bottom: 24px; text-shadow: 0 2px 4px rgba(0,0,0,0.2); }
  .excerpt { font-size: 28px; line-height: 1.4; opacity: 0.9; margin-bottom: 32px; }
  .footer { display: flex; justify-content: space-between; align-items: center; padding-top: 24px; border-top: 2px solid rgba(255,255,255,0.3); }
  .author { font-size: 24px; font-weight: 600; }
  .cta { font-size: 20px; opacity: 0.8; }
</style>
</head>
<body>
  <div class="header">
    <div class="logo">NC Issues</div>
    {{if .Tags}}<div class="tags">{{range .Tags}}<div class="tag">{{.}}</div>{{end}}</div>{{end}}
  </div>
  <div class="content">
    <div class="title">{{.Title}}</div>
    {{if .Excerpt}}<div class="excerpt">{{.Excerpt}}</div>{{end}}
  </div>
  <div class="footer">
    {{if .Author}}<div class="author">By {{.Author}}</div>{{else}}<div></div>{{end}}
    <div class="cta">Read full issue on NC Issues</div>
  </div>
</body>
</html>`

const commentCardHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<style>
  * { margin: 0; padding: 0; box-sizing: border-box; }
  body {
    width: 1200px; height: 630px;
    font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', 'Roboto', sans-serif;
    background: linear-gradient(135deg, #1e3a8a 0%, #3b82f6 100%);
    display: flex; flex-direction: column; justify-content: space-between;
    padding: 60px; color: white;
  }
  .header { display: flex; justify-content: space-between; align-items: center; }
  .logo { font-size: 36px; font-weight: bold; }
  .badge { background: rgba(255,255,255,0.2); padding: 8px 24px; border-radius: 20px; font-size: 20px; font-weight: 600; }
  .content { flex: 1; display: flex; flex-direction: column; justify-content: center; }
  .quote-icon { font-size: 80px; opacity: 0.3; margin-bottom: -20px; }
  .comment-text { font-size: 38px; line-height: 1.4; font-weight: 500; margin-bottom: 32px; text-shadow: 0 2px 4px rgba(0,0,0,0.2); }
  .author-section { display: flex; align-items: center; gap: 16px; margin-bottom: 24px; }
  .avatar { width: 60px; height: 60px; background: white; border-radius: 50%; display: flex; align-items: center; justify-content: center; font-size: 28px; font-weight: bold; color: #1e3a8a; }
  .author-name { font-size: 28px; font-weight: 600; margin-bottom: 4px; }
  .party { font-size: 20px; opacity: 0.9; }
  .party.rep { color: #fca5a5; }
  .party.dem { color: #93c5fd; }
  .footer { padding-top: 24px; border-top: 2px solid rgba(255,255,255,0.3); }
  .issue-title { font-size: 20px; opacity: 0.8; margin-bottom: 8px; }
  .cta { font-size: 18px; opacity: 0.7; }
</style>
</head>
<body>
  <div class="header">
    <div class="logo">NC Issues</div>
    <div class="badge">Community Voice</div>
  </div>
  <div class="content">
    <div class="quote-icon">&ldquo;</div>
    <div class="comment-text">{{.Comment}}</div>
    <div class="author-section">
      <div class="avatar">{{.Initial}}</div>
      <div class="author-info">
        <div class="author-name">{{.Author}}</div>
        {{if .Party}}<div class="party {{.PartyClass}}">{{.Party}}</div>{{end}}
      </div>
    </div>
  </div>
  <div class="footer">
    <div class="issue-title">On: {{.IssueTitle}}</div>
    <div class="cta">Join the conversation on NC Issues</div>
  </div>
</body>
</html>`

const shareCardHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<style>
  * { margin: 0; padding: 0; box-sizing: border-box; }
  body {
    width: 1200px; height: 630px;
    font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', sans-serif;
    background: linear-gradient(135deg, #1e3a8a 0%, #1e40af 100%);
    display: flex; align-items: center; justify-content: center;
    padding: 60px;
  }
  .card { background: white; border-radius: 24px; padding: 60px; box-shadow: 0 25px 50px -12px rgba(0,0,0,0.5); max-width: 100%; }
  .quote { font-size: 32px; line-height: 1.6; color: #1f2937; margin-bottom: 32px; font-weight: 500; position: relative; }
  .quote::before { content: '"'; font-size: 72px; color: #1e3a8a; position: absolute; left: -20px; top: -20px; opacity: 0.3; }
  .author { font-size: 24px; color: #4b5563; margin-bottom: 8px; font-weight: 600; }
  .party { font-size: 20px; color: #6b7280; margin-bottom: 24px; }
  .party.rep { color: #dc2626; }
  .party.dem { color: #2563eb; }
  .issue { font-size: 18px; color: #9ca3af; padding-top: 24px; border-top: 2px solid #e5e7eb; }
  .logo { position: absolute; top: 40px; right: 60px; font-size: 28px; font-weight: bold; color: white; }
</style>
</head>
<body>
  <div class="logo">NC Issues</div>
  <div class="card">
    <div class="quote">{{.Comment}}</div>
    <div class="author">{{.Author}}</div>
    {{if .Party}}<div class="party {{.PartyClass}}">{{.Party}}</div>{{end}}
    <div class="issue">On: {{.IssueTitle}}</div>
  </div>
</body>
</html>`
