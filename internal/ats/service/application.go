package service

import (
	"context"
	"errors"

	"github.com/talentpipehq/talentpipe/internal/ats/domain"
	"github.com/talentpipehq/talentpipe/internal/ats/store"
	"github.com/talentpipehq/talentpipe/pkg/idx"
)

var (
	ErrJobNotFound          = errors.New("service: job not found")
	ErrCandidateNotFound    = errors.New("service: candidate not found")
	ErrDuplicateApplication = errors.New("service: candidate already applied to this job")
	ErrInvalidStage         = errors.New("service: invalid stage")
)

type ApplicationService struct {
	Store store.Store
}

// CreateApplication puts a candidate into a job's pipeline at the applied
// stage. Both records must exist in the same organization and only one live
// application per candidate/job pair is allowed.
func (s *ApplicationService) CreateApplication(ctx context.Context, orgID, jobID, candidateID string) (domain.Application, error) {
	if _, err := s.Store.Jobs().GetJobByID(ctx, orgID, jobID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Application{}, ErrJobNotFound
		}
		return domain.Application{}, err
	}
	if _, err := s.Store.Candidates().GetCandidateByID(ctx, orgID, candidateID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Application{}, ErrCandidateNotFound
		}
		return domain.Application{}, err
	}

	a := domain.Application{
		ID:          idx.New().String(),
		OrgID:       orgID,
		JobID:       jobID,
		CandidateID: candidateID,
		Stage:       domain.StageApplied,
	}
	if err := s.Store.Applications().CreateApplication(ctx, a); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.Application{}, ErrDuplicateApplication
		}
		return domain.Application{}, err
	}
	return s.Store.Applications().GetApplicationByID(ctx, orgID, a.ID)
}

func (s *ApplicationService) GetApplication(ctx context.Context, orgID, id string) (domain.Application, error) {
	return s.Store.Applications().GetApplicationByID(ctx, orgID, id)
}

func (s *ApplicationService) ListApplications(ctx context.Context, orgID string, f store.ApplicationFilter) ([]domain.Application, error) {
	return s.Store.Applications().ListApplications(ctx, orgID, f)
}

// MoveStage advances an application along the pipeline graph. Moving to the
// current stage is a no-op; anything off the graph is an ErrStageTransition.
// reason is only persisted on moves into rejected.
func (s *ApplicationService) MoveStage(ctx context.Context, orgID, id string, next domain.Stage, reason string) (domain.Application, error) {
	if !next.Valid() {
		return domain.Application{}, ErrInvalidStage
	}

	app, err := s.Store.Applications().GetApplicationByID(ctx, orgID, id)
	if err != nil {
		return domain.Application{}, err
	}

	if app.Stage == next {
		return app, nil
	}
	if !app.Stage.CanTransition(next) {
		return domain.Application{}, &domain.ErrStageTransition{From: app.Stage, To: next}
	}

	if next != domain.StageRejected {
		reason = ""
	}
	if err := s.Store.Applications().UpdateApplicationStage(ctx, orgID, id, next, reason); err != nil {
		return domain.Application{}, err
	}
	return s.Store.Applications().GetApplicationByID(ctx, orgID, id)
}

func (s *ApplicationService) DeleteApplication(ctx context.Context, orgID, id string) error {
	return s.Store.Applications().SoftDeleteApplication(ctx, orgID, id)
}

// StageColumn is one kanban board column.
type StageColumn struct {
	Stage        domain.Stage
	Applications []domain.Application
}

// Pipeline groups a job's applications into board columns in display order,
// with rejected applications in a trailing column.
func (s *ApplicationService) Pipeline(ctx context.Context, orgID, jobID string) ([]StageColumn, error) {
	apps, err := s.Store.Applications().ListApplications(ctx, orgID, store.ApplicationFilter{JobID: jobID})
	if err != nil {
		return nil, err
	}

	byStage := make(map[domain.Stage][]domain.Application)
	for _, a := range apps {
		byStage[a.Stage] = append(byStage[a.Stage], a)
	}

	columns := make([]StageColumn, 0, len(domain.PipelineStages)+1)
	for _, stage := range domain.PipelineStages {
		apps := byStage[stage]
		if apps == nil {
			apps = []domain.Application{}
		}
		columns = append(columns, StageColumn{Stage: stage, Applications: apps})
	}

	rejected := byStage[domain.StageRejected]
	if rejected == nil {
		rejected = []domain.Application{}
	}
	columns = append(columns, StageColumn{Stage: domain.StageRejected, Applications: rejected})

	return columns, nil
}
