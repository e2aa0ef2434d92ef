package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/ncissues/civic-api/internal/core/ports"
)

// cardCacheControl marks rendered cards immutable: they are content-addressed
// by their inputs, so a given URL never changes meaning.
const cardCacheControl = "public, max-age=31536000, immutable"

// ShareHandler serves the Open Graph preview cards and the share-card
// endpoint. Responses are styled HTML sized 1200x630 for social crawlers.
type ShareHandler struct {
	share ports.ShareService
	log   zerolog.Logger
}

func NewShareHandler(share ports.ShareService, log zerolog.Logger) *ShareHandler {
	return &ShareHandler{share: share, log: log}
}

type shareCommentRequest struct {
	CommentText string `json:"comment_text" validate:"required"`
	AuthorName  string `json:"author_name" validate:"required"`
	IssueTitle  string `json:"issue_title" validate:"required"`
	Party       string `json:"party"`
}

// IssueCard godoc
// @Summary      Issue Open Graph card
// @Tags         share
// @Produce      html
// @Param        title   query string false "issue title"
// @Param        author  query string false "author name"
// @Param        excerpt query string false "issue excerpt"
// @Param        tags    query string false "comma-separated tag names"
// @Success      200 {string} string "HTML card"
// @Router       /api/og/issue [get]
func (h *ShareHandler) IssueCard(c echo.Context) error {
	var tags []string
	if raw := c.QueryParam("tags"); raw != "" {
		tags = strings.Split(raw, ",")
	}

	html, err := h.share.IssueCard(c.Request().Context(), ports.IssueCardInput{
		Title:   c.QueryParam("title"),
		Author:  c.QueryParam("author"),
		Excerpt: c.QueryParam("excerpt"),
		Tags:    tags,
	})
	if err != nil {
		return err
	}

	c.Response().Header().Set("Cache-Control", cardCacheControl)
	return c.HTML(http.StatusOK, html)
}

// CommentCard godoc
// @Summary      Comment Open Graph card
// @Tags         share
// @Produce      html
// @Param        comment query string true "comment text"
// @Param        author  query string true "author name"
// @Param        party   query string false "party code"
// @Param        issue   query string true "issue title"
// @Success      200 {string} string "HTML card"
// @Failure      400 {object} map[string]string
// @Router       /api/og/comment [get]
func (h *ShareHandler) CommentCard(c echo.Context) error {
	comment := c.QueryParam("comment")
	author := c.QueryParam("author")
	issue := c.QueryParam("issue")
	if comment == "" || author == "" || issue == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "comment, author, and issue are required")
	}

	html, err := h.share.CommentCard(c.Request().Context(), ports.CommentCardInput{
		Comment:    comment,
		Author:     author,
		Party:      c.QueryParam("party"),
		IssueTitle: issue,
	})
	if err != nil {
		return err
	}

	c.Response().Header().Set("Cache-Control", cardCacheControl)
	return c.HTML(http.StatusOK, html)
}

// ShareComment godoc
// @Summary      Render a shareable comment card
// @Tags         share
// @Accept       json
// @Produce      html
// @Param        request body shareCommentRequest true "comment"
// @Success      200 {string} string "HTML card"
// @Failure      400 {object} map[string]string
// @Router       /api/share/comment [post]
func (h *ShareHandler) ShareComment(c echo.Context) error {
	var req shareCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	html, err := h.share.ShareCard(c.Request().Context(), ports.CommentCardInput{
		Comment:    req.CommentText,
		Author:     req.AuthorName,
		Party:      req.Party,
		IssueTitle: req.IssueTitle,
	})
	if err != nil {
		return err
	}
	return c.HTML(http.StatusOK, html)
}
