package service

import (
	"context"

	"github.com/talentpipehq/talentpipe/internal/ats/domain"
	"github.com/talentpipehq/talentpipe/internal/ats/store"
)

// recentApplicationsLimit bounds the dashboard activity feed.
const recentApplicationsLimit = 5

type DashboardService struct {
	Store store.Store
}

// Overview is the organization home screen summary.
type Overview struct {
	Clients             int
	Candidates          int
	OpenJobs            int
	ApplicationsByStage map[domain.Stage]int
	RecentApplications  []domain.Application
}

func (s *DashboardService) Overview(ctx context.Context, orgID string) (Overview, error) {
	clients, err := s.Store.Clients().CountClients(ctx, orgID)
	if err != nil {
		return Overview{}, err
	}
	candidates, err := s.Store.Candidates().CountCandidates(ctx, orgID)
	if err != nil {
		return Overview{}, err
	}
	openJobs, err := s.Store.Jobs().CountJobsByStatus(ctx, orgID, domain.JobOpen)
	if err != nil {
		return Overview{}, err
	}
	byStage, err := s.Store.Applications().CountApplicationsByStage(ctx, orgID)
	if err != nil {
		return Overview{}, err
	}
	recent, err := s.Store.Applications().ListRecentApplications(ctx, orgID, recentApplicationsLimit)
	if err != nil {
		return Overview{}, err
	}

	return Overview{
		Clients:             clients,
		Candidates:          candidates,
		OpenJobs:            openJobs,
		ApplicationsByStage: byStage,
		RecentApplications:  recent,
	}, nil
}
