package service

import (
	"context"

	"github.com/talentpipehq/talentpipe/internal/ats/domain"
	"github.com/talentpipehq/talentpipe/internal/ats/store"
	"github.com/talentpipehq/talentpipe/pkg/idx"
)

type CandidateService struct {
	Store store.Store
}

func (s *CandidateService) CreateCandidate(ctx context.Context, orgID string, c domain.Candidate) (domain.Candidate, error) {
	c.ID = idx.New().String()
	c.OrgID = orgID
	if err := s.Store.Candidates().CreateCandidate(ctx, c); err != nil {
		return domain.Candidate{}, err
	}
	return s.Store.Candidates().GetCandidateByID(ctx, orgID, c.ID)
}

func (s *CandidateService) GetCandidate(ctx context.Context, orgID, id string) (domain.Candidate, error) {
	return s.Store.Candidates().GetCandidateByID(ctx, orgID, id)
}

func (s *CandidateService) ListCandidates(ctx context.Context, orgID string, f store.CandidateFilter) ([]domain.Candidate, error) {
	return s.Store.Candidates().ListCandidates(ctx, orgID, f)
}

func (s *CandidateService) UpdateCandidate(ctx context.Context, orgID, id string, c domain.Candidate) (domain.Candidate, error) {
	c.ID = id
	c.OrgID = orgID
	if err := s.Store.Candidates().UpdateCandidate(ctx, c); err != nil {
		return domain.Candidate{}, err
	}
	return s.Store.Candidates().GetCandidateByID(ctx, orgID, id)
}

func (s *CandidateService) DeleteCandidate(ctx context.Context, orgID, id string) error {
	return s.Store.Candidates().SoftDeleteCandidate(ctx, orgID, id)
}
