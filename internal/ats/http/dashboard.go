package http

import (
	"net/http"

	"github.com/talentpipehq/talentpipe/internal/ats/domain"
	"github.com/talentpipehq/talentpipe/internal/ats/service"
	"github.com/talentpipehq/talentpipe/pkg/httpx"
)

type DashboardHandler struct {
	DashboardService *service.DashboardService
}

type dashboardResponse struct {
	Clients             int                   `json:"clients"`
	Candidates          int                   `json:"candidates"`
	OpenJobs            int                   `json:"open_jobs"`
	ApplicationsByStage map[string]int        `json:"applications_by_stage"`
	RecentApplications  []applicationResponse `json:"recent_applications"`
}

// HandleOverview handles GET /api/dashboard.
func (h *DashboardHandler) HandleOverview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	overview, err := h.DashboardService.Overview(ctx, httpx.OrgIDFromCtx(ctx))
	if err != nil {
		writeServerError(w, r, "failed to load dashboard", err)
		return
	}

	// Every stage appears, zero or not, so the UI never has missing tiles.
	byStage := make(map[string]int, len(domain.PipelineStages)+1)
	for _, stage := range domain.PipelineStages {
		byStage[string(stage)] = overview.ApplicationsByStage[stage]
	}
	byStage[string(domain.StageRejected)] = overview.ApplicationsByStage[domain.StageRejected]

	recent := make([]applicationResponse, len(overview.RecentApplications))
	for i, a := range overview.RecentApplications {
		recent[i] = toApplicationResponse(a)
	}

	httpx.WriteJSON(w, http.StatusOK, dashboardResponse{
		Clients:             overview.Clients,
		Candidates:          overview.Candidates,
		OpenJobs:            overview.OpenJobs,
		ApplicationsByStage: byStage,
		RecentApplications:  recent,
	})
}
