package service

import (
	"context"

	"github.com/talentpipehq/talentpipe/internal/ats/domain"
	"github.com/talentpipehq/talentpipe/internal/ats/store"
	"github.com/talentpipehq/talentpipe/pkg/idx"
)

type ClientService struct {
	Store store.Store
}

// CreateClient stores a new client company for the organization. The id is
// assigned here; any id in the input is ignored.
func (s *ClientService) CreateClient(ctx context.Context, orgID string, c domain.Client) (domain.Client, error) {
	c.ID = idx.New().String()
	c.OrgID = orgID
	if err := s.Store.Clients().CreateClient(ctx, c); err != nil {
		return domain.Client{}, err
	}
	return s.Store.Clients().GetClientByID(ctx, orgID, c.ID)
}

func (s *ClientService) GetClient(ctx context.Context, orgID, id string) (domain.Client, error) {
	return s.Store.Clients().GetClientByID(ctx, orgID, id)
}

func (s *ClientService) ListClients(ctx context.Context, orgID string, f store.ClientFilter) ([]domain.Client, error) {
	return s.Store.Clients().ListClients(ctx, orgID, f)
}

// UpdateClient replaces the mutable fields of an existing client.
func (s *ClientService) UpdateClient(ctx context.Context, orgID, id string, c domain.Client) (domain.Client, error) {
	c.ID = id
	c.OrgID = orgID
	if err := s.Store.Clients().UpdateClient(ctx, c); err != nil {
		return domain.Client{}, err
	}
	return s.Store.Clients().GetClientByID(ctx, orgID, id)
}

func (s *ClientService) DeleteClient(ctx context.Context, orgID, id string) error {
	return s.Store.Clients().SoftDeleteClient(ctx, orgID, id)
}
