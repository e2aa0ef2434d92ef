package service

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/ncissues/civic-api/internal/api/metrics"
	"github.com/ncissues/civic-api/internal/core/domain"
	"github.com/ncissues/civic-api/internal/core/ports"
)

// CommentService implements bill and issue comment threads. Text is trimmed
// and length-checked before any repository call, and parent references are
// validated against the same thread.
type CommentService struct {
	comments ports.CommentRepository
	bills    ports.BillRepository
	issues   ports.IssueRepository
	members  ports.MemberRepository
	activity ports.ActivityRecorder
	log      zerolog.Logger
}

func NewCommentService(
	comments ports.CommentRepository,
	bills ports.BillRepository,
	issues ports.IssueRepository,
	members ports.MemberRepository,
	activity ports.ActivityRecorder,
	log zerolog.Logger,
) *CommentService {
	return &CommentService{
		comments: comments,
		bills:    bills,
		issues:   issues,
		members:  members,
		activity: activity,
		log:      log,
	}
}

func (s *CommentService) ListBillComments(ctx context.Context, billID string) ([]*domain.Comment, error) {
	return s.comments.ListTopLevelForBill(ctx, billID)
}

func (s *CommentService) PostBillComment(ctx context.Context, billID string, in ports.CreateCommentInput) (*domain.Comment, error) {
	text, err := validateCommentText(in.Text)
	if err != nil {
		return nil, err
	}

	if _, err := s.bills.FindByID(ctx, billID); err != nil {
		return nil, err
	}
	if in.ParentCommentID != "" {
		if _, err := s.comments.FindBillComment(ctx, billID, in.ParentCommentID); err != nil {
			if errors.Is(err, domain.ErrCommentNotFound) {
				return nil, domain.ErrCommentParentMissing
			}
			return nil, err
		}
	}

	author, err := s.authorSnapshot(ctx, in.MemberID)
	if err != nil {
		return nil, err
	}

	comment, err := s.comments.CreateForBill(ctx, &domain.Comment{
		BillID:          billID,
		MemberID:        in.MemberID,
		ParentCommentID: in.ParentCommentID,
		Text:            text,
		IsApproved:      true,
		Author:          author,
		CreatedAt:       time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	metrics.CommentsCreatedTotal.WithLabelValues("bill").Inc()
	s.activity.Record(in.MemberID, "comment", map[string]any{
		"bill_id":    billID,
		"comment_id": comment.ID,
	})
	return comment, nil
}

func (s *CommentService) ListIssueComments(ctx context.Context, slug string) ([]*domain.Comment, error) {
	issue, err := s.issues.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return s.comments.ListTopLevelForIssue(ctx, issue.ID)
}

func (s *CommentService) PostIssueComment(ctx context.Context, slug string, in ports.CreateCommentInput) (*domain.Comment, error) {
	text, err := validateCommentText(in.Text)
	if err != nil {
		return nil, err
	}

	issue, err := s.issues.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if in.ParentCommentID != "" {
		if _, err := s.comments.FindIssueComment(ctx, issue.ID, in.ParentCommentID); err != nil {
			if errors.Is(err, domain.ErrCommentNotFound) {
				return nil, domain.ErrCommentParentMissing
			}
			return nil, err
		}
	}

	author, err := s.authorSnapshot(ctx, in.MemberID)
	if err != nil {
		return nil, err
	}

	comment, err := s.comments.CreateForIssue(ctx, &domain.Comment{
		IssueID:         issue.ID,
		MemberID:        in.MemberID,
		ParentCommentID: in.ParentCommentID,
		Text:            text,
		IsApproved:      true,
		Author:          author,
		CreatedAt:       time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	if err := s.issues.IncrementCommentCount(ctx, issue.ID); err != nil {
		s.log.Warn().Err(err).Str("issue_id", issue.ID).Msg("failed to bump comment count")
	}

	metrics.CommentsCreatedTotal.WithLabelValues("issue").Inc()
	s.activity.Record(in.MemberID, "comment", map[string]any{
		"issue_id":   issue.ID,
		"comment_id": comment.ID,
	})
	return comment, nil
}

// authorSnapshot embeds the commenting member's display fields so list
// responses need no join.
func (s *CommentService) authorSnapshot(ctx context.Context, memberID string) (domain.CommentAuthor, error) {
	member, err := s.members.FindByID(ctx, memberID)
	if err != nil {
		return domain.CommentAuthor{}, err
	}
	return domain.CommentAuthor{
		ID:        member.ID,
		FullName:  member.FullName,
		PartyCode: member.PartyCode,
		ResCity:   member.ResCity,
	}, nil
}

// validateCommentText trims and bounds the text before the database is ever
// touched.
func validateCommentText(text string) (string, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", domain.ErrCommentEmpty
	}
	if utf8.RuneCountInString(trimmed) > domain.MaxCommentLength {
		return "", domain.ErrCommentTooLong
	}
	return trimmed, nil
}
