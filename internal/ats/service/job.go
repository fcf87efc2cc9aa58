package service

import (
	"context"
	"errors"

	"github.com/talentpipehq/talentpipe/internal/ats/domain"
	"github.com/talentpipehq/talentpipe/internal/ats/store"
	"github.com/talentpipehq/talentpipe/pkg/idx"
)

var (
	ErrClientNotFound   = errors.New("service: client not found")
	ErrInvalidJobStatus = errors.New("service: invalid job status")
	ErrSalaryRange      = errors.New("service: salary_min exceeds salary_max")
)

type JobService struct {
	Store store.Store
}

// CreateJob opens a new role. The client must belong to the same
// organization; a job can never point across tenants.
func (s *JobService) CreateJob(ctx context.Context, orgID string, j domain.Job) (domain.Job, error) {
	if j.Status == "" {
		j.Status = domain.JobOpen
	}
	if err := s.validate(ctx, orgID, j); err != nil {
		return domain.Job{}, err
	}

	j.ID = idx.New().String()
	j.OrgID = orgID
	if err := s.Store.Jobs().CreateJob(ctx, j); err != nil {
		return domain.Job{}, err
	}
	return s.Store.Jobs().GetJobByID(ctx, orgID, j.ID)
}

func (s *JobService) GetJob(ctx context.Context, orgID, id string) (domain.Job, error) {
	return s.Store.Jobs().GetJobByID(ctx, orgID, id)
}

func (s *JobService) ListJobs(ctx context.Context, orgID string, f store.JobFilter) ([]domain.Job, error) {
	return s.Store.Jobs().ListJobs(ctx, orgID, f)
}

func (s *JobService) UpdateJob(ctx context.Context, orgID, id string, j domain.Job) (domain.Job, error) {
	if err := s.validate(ctx, orgID, j); err != nil {
		return domain.Job{}, err
	}

	j.ID = id
	j.OrgID = orgID
	if err := s.Store.Jobs().UpdateJob(ctx, j); err != nil {
		return domain.Job{}, err
	}
	return s.Store.Jobs().GetJobByID(ctx, orgID, id)
}

func (s *JobService) DeleteJob(ctx context.Context, orgID, id string) error {
	return s.Store.Jobs().SoftDeleteJob(ctx, orgID, id)
}

func (s *JobService) validate(ctx context.Context, orgID string, j domain.Job) error {
	if !j.Status.Valid() {
		return ErrInvalidJobStatus
	}
	if j.SalaryMin > 0 && j.SalaryMax > 0 && j.SalaryMin > j.SalaryMax {
		return ErrSalaryRange
	}
	if _, err := s.Store.Clients().GetClientByID(ctx, orgID, j.ClientID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrClientNotFound
		}
		return err
	}
	return nil
}
