package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/aipaas/console/internal/domain"
	apperrors "github.com/aipaas/console/internal/pkg/errors"
	"github.com/aipaas/console/internal/pkg/pagination"
)

// ServiceRepository defines all service repository operations
type ServiceRepository interface {
	Create(ctx context.Context, svc *domain.Service) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Service, error)
	GetDetail(ctx context.Context, id uuid.UUID) (*domain.ServiceDetail, error)
	List(ctx context.Context, filter domain.ServiceFilter, limit, offset int) ([]domain.Service, int64, error)
	Update(ctx context.Context, svc *domain.Service) error
	SoftDelete(ctx context.Context, id uuid.UUID, at time.Time) error
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

// WorkflowRepository lists workflows owned by a service
type WorkflowRepository interface {
	ListByService(ctx context.Context, serviceID uuid.UUID, limit, offset int) ([]domain.ServiceWorkflow, int64, error)
}

// DatasetRepository lists datasets owned by a service
type DatasetRepository interface {
	ListByService(ctx context.Context, serviceID uuid.UUID, limit, offset int) ([]domain.ServiceDataset, int64, error)
}

// ModelRepository lists models owned by a service
type ModelRepository interface {
	ListByService(ctx context.Context, serviceID uuid.UUID, limit, offset int) ([]domain.ServiceModel, int64, error)
}

// PromptRepository lists prompts owned by a service
type PromptRepository interface {
	ListByService(ctx context.Context, serviceID uuid.UUID, limit, offset int) ([]domain.ServicePrompt, int64, error)
}

// MonitoringRepository lists monitoring records owned by a service
type MonitoringRepository interface {
	ListByService(ctx context.Context, serviceID uuid.UUID, limit, offset int) ([]domain.ServiceMonitoring, int64, error)
}

// CatalogService handles service catalog operations
type CatalogService struct {
	serviceRepo    ServiceRepository
	workflowRepo   WorkflowRepository
	datasetRepo    DatasetRepository
	modelRepo      ModelRepository
	promptRepo     PromptRepository
	monitoringRepo MonitoringRepository
}

// NewCatalogService creates a new catalog service
func NewCatalogService(
	serviceRepo ServiceRepository,
	workflowRepo WorkflowRepository,
	datasetRepo DatasetRepository,
	modelRepo ModelRepository,
	promptRepo PromptRepository,
	monitoringRepo MonitoringRepository,
) *CatalogService {
	return &CatalogService{
		serviceRepo:    serviceRepo,
		workflowRepo:   workflowRepo,
		datasetRepo:    datasetRepo,
		modelRepo:      modelRepo,
		promptRepo:     promptRepo,
		monitoringRepo: monitoringRepo,
	}
}

// Create creates a new service
func (s *CatalogService) Create(ctx context.Context, input *domain.ServiceInput) (*domain.Service, error) {
	now := time.Now().UTC()

	svc := &domain.Service{
		ID:        uuid.New(),
		Name:      input.Name,
		Status:    domain.ServiceStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if input.Description != nil {
		svc.Description = *input.Description
	}
	if input.Tag != nil {
		svc.Tag = *input.Tag
	}

	if err := s.serviceRepo.Create(ctx, svc); err != nil {
		if apperrors.IsAppError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create service: %w", err)
	}

	return svc, nil
}

// Get retrieves a live service by ID
func (s *CatalogService) Get(ctx context.Context, id uuid.UUID) (*domain.Service, error) {
	return s.serviceRepo.GetByID(ctx, id)
}

// GetDetail retrieves a live service together with all child collections
func (s *CatalogService) GetDetail(ctx context.Context, id uuid.UUID) (*domain.ServiceDetail, error) {
	return s.serviceRepo.GetDetail(ctx, id)
}

// List retrieves a page of live services
func (s *CatalogService) List(ctx context.Context, filter domain.ServiceFilter, page pagination.Page) (*domain.ServiceList, error) {
	services, total, err := s.serviceRepo.List(ctx, filter, page.Limit(), page.Offset())
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}

	return &domain.ServiceList{
		Services: services,
		Total:    total,
		Page:     page.Page,
		Size:     page.Size,
	}, nil
}

// Update applies the supplied fields to a live service. Nil fields are
// left unchanged; the modification timestamp is always bumped.
func (s *CatalogService) Update(ctx context.Context, id uuid.UUID, input *domain.ServiceUpdateInput) (*domain.Service, error) {
	svc, err := s.serviceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		svc.Name = *input.Name
	}
	if input.Description != nil {
		svc.Description = *input.Description
	}
	if input.Tag != nil {
		svc.Tag = *input.Tag
	}
	svc.UpdatedAt = time.Now().UTC()

	if err := s.serviceRepo.Update(ctx, svc); err != nil {
		if apperrors.IsAppError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update service: %w", err)
	}

	return svc, nil
}

// Delete soft-deletes a live service. Child rows are untouched.
func (s *CatalogService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.serviceRepo.SoftDelete(ctx, id, time.Now().UTC())
}

// ListWorkflows retrieves a page of workflows for a live service
func (s *CatalogService) ListWorkflows(ctx context.Context, serviceID uuid.UUID, page pagination.Page) ([]domain.ServiceWorkflow, int64, error) {
	if err := s.requireLive(ctx, serviceID); err != nil {
		return nil, 0, err
	}
	return s.workflowRepo.ListByService(ctx, serviceID, page.Limit(), page.Offset())
}

// ListDatasets retrieves a page of datasets for a live service
func (s *CatalogService) ListDatasets(ctx context.Context, serviceID uuid.UUID, page pagination.Page) ([]domain.ServiceDataset, int64, error) {
	if err := s.requireLive(ctx, serviceID); err != nil {
		return nil, 0, err
	}
	return s.datasetRepo.ListByService(ctx, serviceID, page.Limit(), page.Offset())
}

// ListModels retrieves a page of models for a live service
func (s *CatalogService) ListModels(ctx context.Context, serviceID uuid.UUID, page pagination.Page) ([]domain.ServiceModel, int64, error) {
	if err := s.requireLive(ctx, serviceID); err != nil {
		return nil, 0, err
	}
	return s.modelRepo.ListByService(ctx, serviceID, page.Limit(), page.Offset())
}

// ListPrompts retrieves a page of prompts for a live service
func (s *CatalogService) ListPrompts(ctx context.Context, serviceID uuid.UUID, page pagination.Page) ([]domain.ServicePrompt, int64, error) {
	if err := s.requireLive(ctx, serviceID); err != nil {
		return nil, 0, err
	}
	return s.promptRepo.ListByService(ctx, serviceID, page.Limit(), page.Offset())
}

// ListMonitoring retrieves a page of monitoring records for a live service
func (s *CatalogService) ListMonitoring(ctx context.Context, serviceID uuid.UUID, page pagination.Page) ([]domain.ServiceMonitoring, int64, error) {
	if err := s.requireLive(ctx, serviceID); err != nil {
		return nil, 0, err
	}
	return s.monitoringRepo.ListByService(ctx, serviceID, page.Limit(), page.Offset())
}

// requireLive returns NotFound unless a live service with the ID exists.
// Children of a soft-deleted parent are treated the same as children of a
// missing parent, matching the basic and detail reads.
func (s *CatalogService) requireLive(ctx context.Context, serviceID uuid.UUID) error {
	exists, err := s.serviceRepo.Exists(ctx, serviceID)
	if err != nil {
		return fmt.Errorf("failed to check service: %w", err)
	}
	if !exists {
		return apperrors.NotFound("service")
	}
	return nil
}
