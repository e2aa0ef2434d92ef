package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/ncissues/civic-api/internal/api/middleware"
	"github.com/ncissues/civic-api/internal/core/domain"
	"github.com/ncissues/civic-api/internal/core/ports"
)

// IssueHandler serves the community issues surface: published articles,
// tags, contributor submissions, and issue comments.
type IssueHandler struct {
	issues   ports.IssueService
	comments ports.CommentService
	log      zerolog.Logger
}

func NewIssueHandler(issues ports.IssueService, comments ports.CommentService, log zerolog.Logger) *IssueHandler {
	return &IssueHandler{issues: issues, comments: comments, log: log}
}

type createIssueRequest struct {
	Title    string   `json:"title" validate:"required"`
	Content  string   `json:"content" validate:"required"`
	Excerpt  string   `json:"excerpt"`
	ImageURL string   `json:"image_url"`
	TagIDs   []string `json:"tag_ids"`
	Status   string   `json:"status" validate:"omitempty,oneof=draft published"`
}

type issueDetailResponse struct {
	Issue *domain.Issue     `json:"issue"`
	Tags  []*domain.IssueTag `json:"tags"`
}

// List godoc
// @Summary      List published issues
// @Tags         issues
// @Produce      json
// @Param        tag      query string false "tag slug filter"
// @Param        featured query bool   false "featured only"
// @Success      200 {array} domain.Issue
// @Router       /api/issues [get]
func (h *IssueHandler) List(c echo.Context) error {
	issues, err := h.issues.ListIssues(c.Request().Context(), ports.ListIssuesFilter{
		Tag:      c.QueryParam("tag"),
		Featured: c.QueryParam("featured") == "true",
	})
	if err != nil {
		return err
	}
	if issues == nil {
		issues = []*domain.Issue{}
	}
	return c.JSON(http.StatusOK, issues)
}

// Get godoc
// @Summary      Issue detail
// @Description  Returns a published issue with its tags and counts a view.
// @Tags         issues
// @Produce      json
// @Param        slug path string true "issue slug"
// @Success      200 {object} issueDetailResponse
// @Failure      404 {object} map[string]string
// @Router       /api/issues/{slug} [get]
func (h *IssueHandler) Get(c echo.Context) error {
	detail, err := h.issues.GetIssue(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return err
	}
	tags := detail.Tags
	if tags == nil {
		tags = []*domain.IssueTag{}
	}
	return c.JSON(http.StatusOK, issueDetailResponse{Issue: detail.Issue, Tags: tags})
}

// Create godoc
// @Summary      Submit an issue
// @Description  Creates a draft or published issue. Contributor tier required.
// @Tags         issues
// @Accept       json
// @Produce      json
// @Param        request body createIssueRequest true "issue"
// @Success      201 {object} domain.Issue
// @Failure      403 {object} map[string]string
// @Router       /api/issues [post]
func (h *IssueHandler) Create(c echo.Context) error {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		return domain.ErrUnauthenticated
	}

	var req createIssueRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	issue, err := h.issues.CreateIssue(c.Request().Context(), ports.CreateIssueInput{
		AuthorID: claims.ID,
		Title:    req.Title,
		Content:  req.Content,
		Excerpt:  req.Excerpt,
		ImageURL: req.ImageURL,
		TagIDs:   req.TagIDs,
		Status:   req.Status,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, issue)
}

// ListTags godoc
// @Summary      List issue tags
// @Tags         issues
// @Produce      json
// @Success      200 {array} domain.IssueTag
// @Router       /api/issues/tags [get]
func (h *IssueHandler) ListTags(c echo.Context) error {
	tags, err := h.issues.ListTags(c.Request().Context())
	if err != nil {
		return err
	}
	if tags == nil {
		tags = []*domain.IssueTag{}
	}
	return c.JSON(http.StatusOK, tags)
}

// ListComments godoc
// @Summary      List issue comments
// @Tags         issues
// @Produce      json
// @Param        slug path string true "issue slug"
// @Success      200 {array} domain.Comment
// @Failure      404 {object} map[string]string
// @Router       /api/issues/{slug}/comments [get]
func (h *IssueHandler) ListComments(c echo.Context) error {
	comments, err := h.comments.ListIssueComments(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return err
	}
	if comments == nil {
		comments = []*domain.Comment{}
	}
	return c.JSON(http.StatusOK, comments)
}

// PostComment godoc
// @Summary      Comment on an issue
// @Tags         issues
// @Accept       json
// @Produce      json
// @Param        slug path string true "issue slug"
// @Param        request body createCommentRequest true "comment"
// @Success      201 {object} domain.Comment
// @Failure      400 {object} map[string]string
// @Router       /api/issues/{slug}/comments [post]
func (h *IssueHandler) PostComment(c echo.Context) error {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		return domain.ErrUnauthenticated
	}

	var req createCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	comment, err := h.comments.PostIssueComment(c.Request().Context(), c.Param("slug"), ports.CreateCommentInput{
		MemberID:        claims.ID,
		Text:            req.Text,
		ParentCommentID: req.ParentCommentID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, comment)
}
