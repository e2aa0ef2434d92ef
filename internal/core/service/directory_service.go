package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/ncissues/civic-api/internal/core/domain"
	"github.com/ncissues/civic-api/internal/core/ports"
)

// DirectoryService serves the read-mostly reference lists: committees,
// elected officials, and legislators.
type DirectoryService struct {
	repo ports.DirectoryRepository
}

func NewDirectoryService(repo ports.DirectoryRepository) *DirectoryService {
	return &DirectoryService{repo: repo}
}

func (s *DirectoryService) ListCommittees(ctx context.Context, filter ports.ListCommitteesFilter) ([]*domain.Committee, error) {
	return s.repo.ListCommittees(ctx, filter)
}

func (s *DirectoryService) ListOfficials(ctx context.Context, filter ports.ListOfficialsFilter) ([]*domain.ElectedOfficial, error) {
	return s.repo.ListOfficials(ctx, filter)
}

func (s *DirectoryService) ListLegislators(ctx context.Context, filter ports.ListLegislatorsFilter) ([]*domain.Legislator, error) {
	return s.repo.ListLegislators(ctx, filter)
}

// ContactService records constituent messages to legislators.
type ContactService struct {
	contacts  ports.ContactRepository
	directory ports.DirectoryRepository
	log       zerolog.Logger
}

func NewContactService(contacts ports.ContactRepository, directory ports.DirectoryRepository, log zerolog.Logger) *ContactService {
	return &ContactService{contacts: contacts, directory: directory, log: log}
}

// Send validates that the addressed legislator exists and stores the message.
func (s *ContactService) Send(ctx context.Context, in ports.ContactInput) (*domain.ContactMessage, error) {
	if _, err := s.directory.FindLegislator(ctx, in.LegislatorID); err != nil {
		return nil, err
	}

	msg, err := s.contacts.Create(ctx, &domain.ContactMessage{
		UserID:       in.UserID,
		LegislatorID: in.LegislatorID,
		BillID:       in.BillID,
		Subject:      in.Subject,
		Message:      in.Message,
		Position:     in.Position,
		SentAt:       time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("legislator_id", in.LegislatorID).Str("user_id", in.UserID).Msg("contact message sent")
	return msg, nil
}
