package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aipaas/console/internal/domain"
	apperrors "github.com/aipaas/console/internal/pkg/errors"
	"github.com/aipaas/console/internal/service"
)

// mockServiceRepo mocks the service repository behind the catalog service.
type mockServiceRepo struct {
	mock.Mock
}

func (m *mockServiceRepo) Create(ctx context.Context, svc *domain.Service) error {
	args := m.Called(ctx, svc)
	return args.Error(0)
}

func (m *mockServiceRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Service, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Service), args.Error(1)
}

func (m *mockServiceRepo) GetDetail(ctx context.Context, id uuid.UUID) (*domain.ServiceDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ServiceDetail), args.Error(1)
}

func (m *mockServiceRepo) List(ctx context.Context, filter domain.ServiceFilter, limit, offset int) ([]domain.Service, int64, error) {
	args := m.Called(ctx, filter, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.Service), args.Get(1).(int64), args.Error(2)
}

func (m *mockServiceRepo) Update(ctx context.Context, svc *domain.Service) error {
	args := m.Called(ctx, svc)
	return args.Error(0)
}

func (m *mockServiceRepo) SoftDelete(ctx context.Context, id uuid.UUID, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

func (m *mockServiceRepo) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// mockWorkflowRepo mocks the workflow listing repository.
type mockWorkflowRepo struct {
	mock.Mock
}

func (m *mockWorkflowRepo) ListByService(ctx context.Context, serviceID uuid.UUID, limit, offset int) ([]domain.ServiceWorkflow, int64, error) {
	args := m.Called(ctx, serviceID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.ServiceWorkflow), args.Get(1).(int64), args.Error(2)
}

type mockDatasetRepo struct {
	mock.Mock
}

func (m *mockDatasetRepo) ListByService(ctx context.Context, serviceID uuid.UUID, limit, offset int) ([]domain.ServiceDataset, int64, error) {
	args := m.Called(ctx, serviceID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.ServiceDataset), args.Get(1).(int64), args.Error(2)
}

type mockModelRepo struct {
	mock.Mock
}

func (m *mockModelRepo) ListByService(ctx context.Context, serviceID uuid.UUID, limit, offset int) ([]domain.ServiceModel, int64, error) {
	args := m.Called(ctx, serviceID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.ServiceModel), args.Get(1).(int64), args.Error(2)
}

type mockPromptRepo struct {
	mock.Mock
}

func (m *mockPromptRepo) ListByService(ctx context.Context, serviceID uuid.UUID, limit, offset int) ([]domain.ServicePrompt, int64, error) {
	args := m.Called(ctx, serviceID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.ServicePrompt), args.Get(1).(int64), args.Error(2)
}

type mockMonitoringRepo struct {
	mock.Mock
}

func (m *mockMonitoringRepo) ListByService(ctx context.Context, serviceID uuid.UUID, limit, offset int) ([]domain.ServiceMonitoring, int64, error) {
	args := m.Called(ctx, serviceID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.ServiceMonitoring), args.Get(1).(int64), args.Error(2)
}

type testMocks struct {
	serviceRepo    *mockServiceRepo
	workflowRepo   *mockWorkflowRepo
	datasetRepo    *mockDatasetRepo
	modelRepo      *mockModelRepo
	promptRepo     *mockPromptRepo
	monitoringRepo *mockMonitoringRepo
}

func setupServicesTestApp() (*fiber.App, *testMocks) {
	mocks := &testMocks{
		serviceRepo:    new(mockServiceRepo),
		workflowRepo:   new(mockWorkflowRepo),
		datasetRepo:    new(mockDatasetRepo),
		modelRepo:      new(mockModelRepo),
		promptRepo:     new(mockPromptRepo),
		monitoringRepo: new(mockMonitoringRepo),
	}

	catalog := service.NewCatalogService(
		mocks.serviceRepo,
		mocks.workflowRepo,
		mocks.datasetRepo,
		mocks.modelRepo,
		mocks.promptRepo,
		mocks.monitoringRepo,
	)

	app := fiber.New()
	h := NewServicesHandler(catalog, zap.NewNop())
	h.RegisterRoutes(app.Group("/api/v1"))
	return app, mocks
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var decoded map[string]any
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp, decoded
}

func TestServicesHandler_CreateService(t *testing.T) {
	t.Run("creates service", func(t *testing.T) {
		app, mocks := setupServicesTestApp()

		mocks.serviceRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Service")).Return(nil)

		resp, body := doJSON(t, app, http.MethodPost, "/api/v1/services/", fiber.Map{
			"name":        "chat-gateway",
			"description": "serves the chat gateway",
			"tag":         "chat",
		})

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		assert.Equal(t, "chat-gateway", body["name"])
		assert.Equal(t, "serves the chat gateway", body["description"])
		assert.Equal(t, "active", body["status"])
		assert.NotEmpty(t, body["id"])
		mocks.serviceRepo.AssertExpectations(t)
	})

	t.Run("rejects missing name", func(t *testing.T) {
		app, mocks := setupServicesTestApp()

		resp, body := doJSON(t, app, http.MethodPost, "/api/v1/services/", fiber.Map{
			"description": "no name",
		})

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "Validation failed", body["message"])
		mocks.serviceRepo.AssertNotCalled(t, "Create")
	})

	t.Run("rejects malformed body", func(t *testing.T) {
		app, _ := setupServicesTestApp()

		req := httptest.NewRequest(http.MethodPost, "/api/v1/services/", bytes.NewReader([]byte("{not json")))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req, -1)
		require.NoError(t, err)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("duplicate name conflicts", func(t *testing.T) {
		app, mocks := setupServicesTestApp()

		mocks.serviceRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Service")).
			Return(apperrors.Conflict("service name already in use"))

		resp, body := doJSON(t, app, http.MethodPost, "/api/v1/services/", fiber.Map{
			"name": "dup",
		})

		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		assert.Equal(t, "Conflict", body["error"])
	})
}

func TestServicesHandler_ListServices(t *testing.T) {
	t.Run("returns page with defaults", func(t *testing.T) {
		app, mocks := setupServicesTestApp()

		services := []domain.Service{
			{ID: uuid.New(), Name: "a", Status: domain.ServiceStatusActive},
			{ID: uuid.New(), Name: "b", Status: domain.ServiceStatusActive},
		}
		mocks.serviceRepo.On("List", mock.Anything, domain.ServiceFilter{}, 20, 0).
			Return(services, int64(2), nil)

		resp, body := doJSON(t, app, http.MethodGet, "/api/v1/services/", nil)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Len(t, body["services"], 2)
		assert.Equal(t, float64(2), body["total"])
		assert.Equal(t, float64(1), body["page"])
		assert.Equal(t, float64(20), body["size"])
	})

	t.Run("passes search and page params", func(t *testing.T) {
		app, mocks := setupServicesTestApp()

		mocks.serviceRepo.On("List", mock.Anything, domain.ServiceFilter{Search: "chat"}, 10, 10).
			Return([]domain.Service{}, int64(0), nil)

		resp, body := doJSON(t, app, http.MethodGet, "/api/v1/services/?search=chat&page=2&size=10", nil)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, float64(2), body["page"])
		mocks.serviceRepo.AssertExpectations(t)
	})

	t.Run("empty page is a JSON array", func(t *testing.T) {
		app, mocks := setupServicesTestApp()

		mocks.serviceRepo.On("List", mock.Anything, domain.ServiceFilter{}, 20, 0).
			Return([]domain.Service{}, int64(0), nil)

		resp, body := doJSON(t, app, http.MethodGet, "/api/v1/services/", nil)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		services, ok := body["services"].([]any)
		require.True(t, ok)
		assert.Empty(t, services)
	})
}

func TestServicesHandler_GetService(t *testing.T) {
	id := uuid.New()

	t.Run("returns service", func(t *testing.T) {
		app, mocks := setupServicesTestApp()

		mocks.serviceRepo.On("GetByID", mock.Anything, id).
			Return(&domain.Service{ID: id, Name: "chat-gateway", Status: domain.ServiceStatusActive}, nil)

		resp, body := doJSON(t, app, http.MethodGet, "/api/v1/services/"+id.String(), nil)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, id.String(), body["id"])
	})

	t.Run("not found", func(t *testing.T) {
		app, mocks := setupServicesTestApp()

		mocks.serviceRepo.On("GetByID", mock.Anything, id).
			Return(nil, apperrors.NotFound("service"))

		resp, body := doJSON(t, app, http.MethodGet, "/api/v1/services/"+id.String(), nil)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "Not Found", body["error"])
	})

	t.Run("invalid id", func(t *testing.T) {
		app, _ := setupServicesTestApp()

		resp, _ := doJSON(t, app, http.MethodGet, "/api/v1/services/not-a-uuid", nil)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestServicesHandler_GetServiceDetail(t *testing.T) {
	id := uuid.New()

	t.Run("returns service with children", func(t *testing.T) {
		app, mocks := setupServicesTestApp()

		detail := &domain.ServiceDetail{
			Service:    domain.Service{ID: id, Name: "chat-gateway", Status: domain.ServiceStatusActive},
			Workflows:  []domain.ServiceWorkflow{{ID: uuid.New(), ServiceID: id, Name: "ingest"}},
			Datasets:   []domain.ServiceDataset{},
			Models:     []domain.ServiceModel{},
			Prompts:    []domain.ServicePrompt{},
			Monitoring: []domain.ServiceMonitoring{},
		}
		mocks.serviceRepo.On("GetDetail", mock.Anything, id).Return(detail, nil)

		resp, body := doJSON(t, app, http.MethodGet, "/api/v1/services/"+id.String()+"/detail", nil)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Len(t, body["workflows"], 1)
		datasets, ok := body["datasets"].([]any)
		require.True(t, ok)
		assert.Empty(t, datasets)
	})

	t.Run("not found", func(t *testing.T) {
		app, mocks := setupServicesTestApp()

		mocks.serviceRepo.On("GetDetail", mock.Anything, id).
			Return(nil, apperrors.NotFound("service"))

		resp, _ := doJSON(t, app, http.MethodGet, "/api/v1/services/"+id.String()+"/detail", nil)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestServicesHandler_UpdateService(t *testing.T) {
	id := uuid.New()

	existing := &domain.Service{
		ID:          id,
		Name:        "chat-gateway",
		Description: "old",
		Status:      domain.ServiceStatusActive,
		CreatedAt:   time.Now().UTC().Add(-time.Hour),
		UpdatedAt:   time.Now().UTC().Add(-time.Hour),
	}

	t.Run("applies partial update", func(t *testing.T) {
		app, mocks := setupServicesTestApp()

		svc := *existing
		mocks.serviceRepo.On("GetByID", mock.Anything, id).Return(&svc, nil)
		mocks.serviceRepo.On("Update", mock.Anything, mock.AnythingOfType("*domain.Service")).Return(nil)

		resp, body := doJSON(t, app, http.MethodPut, "/api/v1/services/"+id.String(), fiber.Map{
			"description": "new",
		})

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "chat-gateway", body["name"])
		assert.Equal(t, "new", body["description"])
	})

	t.Run("not found", func(t *testing.T) {
		app, mocks := setupServicesTestApp()

		mocks.serviceRepo.On("GetByID", mock.Anything, id).
			Return(nil, apperrors.NotFound("service"))

		resp, _ := doJSON(t, app, http.MethodPut, "/api/v1/services/"+id.String(), fiber.Map{
			"name": "renamed",
		})

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("rename conflict", func(t *testing.T) {
		app, mocks := setupServicesTestApp()

		svc := *existing
		mocks.serviceRepo.On("GetByID", mock.Anything, id).Return(&svc, nil)
		mocks.serviceRepo.On("Update", mock.Anything, mock.AnythingOfType("*domain.Service")).
			Return(apperrors.Conflict("service name already in use"))

		resp, _ := doJSON(t, app, http.MethodPut, "/api/v1/services/"+id.String(), fiber.Map{
			"name": "taken",
		})

		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		app, mocks := setupServicesTestApp()

		resp, _ := doJSON(t, app, http.MethodPut, "/api/v1/services/"+id.String(), fiber.Map{
			"name": "",
		})

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		mocks.serviceRepo.AssertNotCalled(t, "Update")
	})
}

func TestServicesHandler_DeleteService(t *testing.T) {
	id := uuid.New()

	t.Run("soft-deletes", func(t *testing.T) {
		app, mocks := setupServicesTestApp()

		mocks.serviceRepo.On("SoftDelete", mock.Anything, id, mock.AnythingOfType("time.Time")).Return(nil)

		resp, _ := doJSON(t, app, http.MethodDelete, "/api/v1/services/"+id.String(), nil)

		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
		mocks.serviceRepo.AssertExpectations(t)
	})

	t.Run("already deleted", func(t *testing.T) {
		app, mocks := setupServicesTestApp()

		mocks.serviceRepo.On("SoftDelete", mock.Anything, id, mock.AnythingOfType("time.Time")).
			Return(apperrors.NotFound("service"))

		resp, _ := doJSON(t, app, http.MethodDelete, "/api/v1/services/"+id.String(), nil)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestServicesHandler_ListWorkflows(t *testing.T) {
	serviceID := uuid.New()

	t.Run("returns envelope", func(t *testing.T) {
		app, mocks := setupServicesTestApp()

		mocks.serviceRepo.On("Exists", mock.Anything, serviceID).Return(true, nil)
		workflows := []domain.ServiceWorkflow{{ID: uuid.New(), ServiceID: serviceID, Name: "ingest"}}
		mocks.workflowRepo.On("ListByService", mock.Anything, serviceID, 20, 0).
			Return(workflows, int64(1), nil)

		resp, body := doJSON(t, app, http.MethodGet, "/api/v1/services/"+serviceID.String()+"/workflows", nil)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Len(t, body["data"], 1)
		assert.Equal(t, float64(1), body["total"])
		assert.Equal(t, float64(1), body["page"])
		assert.Equal(t, float64(20), body["size"])
	})

	t.Run("missing parent", func(t *testing.T) {
		app, mocks := setupServicesTestApp()

		mocks.serviceRepo.On("Exists", mock.Anything, serviceID).Return(false, nil)

		resp, _ := doJSON(t, app, http.MethodGet, "/api/v1/services/"+serviceID.String()+"/workflows", nil)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		mocks.workflowRepo.AssertNotCalled(t, "ListByService")
	})

	t.Run("size is capped", func(t *testing.T) {
		app, mocks := setupServicesTestApp()

		mocks.serviceRepo.On("Exists", mock.Anything, serviceID).Return(true, nil)
		mocks.workflowRepo.On("ListByService", mock.Anything, serviceID, 100, 0).
			Return([]domain.ServiceWorkflow{}, int64(0), nil)

		resp, body := doJSON(t, app, http.MethodGet, "/api/v1/services/"+serviceID.String()+"/workflows?size=500", nil)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, float64(100), body["size"])
		mocks.workflowRepo.AssertExpectations(t)
	})
}

func TestServicesHandler_ListChildCollections(t *testing.T) {
	serviceID := uuid.New()

	t.Run("datasets", func(t *testing.T) {
		app, mocks := setupServicesTestApp()

		mocks.serviceRepo.On("Exists", mock.Anything, serviceID).Return(true, nil)
		mocks.datasetRepo.On("ListByService", mock.Anything, serviceID, 20, 0).
			Return([]domain.ServiceDataset{{ID: uuid.New(), ServiceID: serviceID, Name: "faq", Type: "qna"}}, int64(1), nil)

		resp, body := doJSON(t, app, http.MethodGet, "/api/v1/services/"+serviceID.String()+"/datasets", nil)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Len(t, body["data"], 1)
	})

	t.Run("models", func(t *testing.T) {
		app, mocks := setupServicesTestApp()

		mocks.serviceRepo.On("Exists", mock.Anything, serviceID).Return(true, nil)
		mocks.modelRepo.On("ListByService", mock.Anything, serviceID, 20, 0).
			Return([]domain.ServiceModel{}, int64(0), nil)

		resp, body := doJSON(t, app, http.MethodGet, "/api/v1/services/"+serviceID.String()+"/models", nil)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		data, ok := body["data"].([]any)
		require.True(t, ok)
		assert.Empty(t, data)
	})

	t.Run("prompts", func(t *testing.T) {
		app, mocks := setupServicesTestApp()

		mocks.serviceRepo.On("Exists", mock.Anything, serviceID).Return(true, nil)
		mocks.promptRepo.On("ListByService", mock.Anything, serviceID, 20, 0).
			Return([]domain.ServicePrompt{{ID: uuid.New(), ServiceID: serviceID, Name: "greeting", Content: "hi"}}, int64(1), nil)

		resp, body := doJSON(t, app, http.MethodGet, "/api/v1/services/"+serviceID.String()+"/prompts", nil)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, float64(1), body["total"])
	})

	t.Run("monitoring", func(t *testing.T) {
		app, mocks := setupServicesTestApp()

		mocks.serviceRepo.On("Exists", mock.Anything, serviceID).Return(true, nil)
		mocks.monitoringRepo.On("ListByService", mock.Anything, serviceID, 20, 0).
			Return([]domain.ServiceMonitoring{{ID: uuid.New(), ServiceID: serviceID, Name: "lat", Type: "latency"}}, int64(1), nil)

		resp, body := doJSON(t, app, http.MethodGet, "/api/v1/services/"+serviceID.String()+"/monitoring", nil)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Len(t, body["data"], 1)
	})
}
