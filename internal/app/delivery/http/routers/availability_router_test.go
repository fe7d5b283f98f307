package routers

import (
	"availability-service/internal/app/config"
	"availability-service/internal/app/delivery/http/controllers"
	"availability-service/internal/app/delivery/http/middlewares"
	"availability-service/internal/app/models"
	"availability-service/internal/app/services/shared/jwtmanager"
	"availability-service/internal/pkg/constvars"
	"availability-service/internal/pkg/dto/requests"
	"availability-service/internal/pkg/dto/responses"
	"availability-service/internal/pkg/exceptions"
	"availability-service/internal/pkg/utils"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockAvailabilityUsecase struct {
	mock.Mock
}

func (m *MockAvailabilityUsecase) GetSlotTemplate(ctx context.Context) (*responses.SlotTemplate, error) {
	args := m.Called(ctx)
	result, _ := args.Get(0).(*responses.SlotTemplate)
	return result, args.Error(1)
}

func (m *MockAvailabilityUsecase) GetWeekSchedule(ctx context.Context, weekOffset int, expandedDays []int) (*responses.WeekSchedule, error) {
	args := m.Called(ctx, weekOffset, expandedDays)
	result, _ := args.Get(0).(*responses.WeekSchedule)
	return result, args.Error(1)
}

func (m *MockAvailabilityUsecase) ToggleSlot(ctx context.Context, request *requests.ToggleSlot) (*responses.ToggleSlot, error) {
	args := m.Called(ctx, request)
	result, _ := args.Get(0).(*responses.ToggleSlot)
	return result, args.Error(1)
}

func (m *MockAvailabilityUsecase) RefreshSlots(ctx context.Context) (*responses.RefreshSlots, error) {
	args := m.Called(ctx)
	result, _ := args.Get(0).(*responses.RefreshSlots)
	return result, args.Error(1)
}

func (m *MockAvailabilityUsecase) ExportWeekSchedule(ctx context.Context, weekOffset int) (*responses.ExportWeekSchedule, error) {
	args := m.Called(ctx, weekOffset)
	result, _ := args.Get(0).(*responses.ExportWeekSchedule)
	return result, args.Error(1)
}

func (m *MockAvailabilityUsecase) ListAudits(ctx context.Context, limit int) ([]models.ToggleAudit, error) {
	args := m.Called(ctx, limit)
	result, _ := args.Get(0).([]models.ToggleAudit)
	return result, args.Error(1)
}

const basePath = "/api/v1/availability"

type testServer struct {
	handler    http.Handler
	usecase    *MockAvailabilityUsecase
	jwtManager *jwtmanager.JWTManager
}

func newTestServer(t *testing.T, mutationsPerMinute int) *testServer {
	t.Helper()
	cfg := &config.InternalConfig{
		App: config.App{
			Env:                        constvars.AppEnvDevelopment,
			Version:                    "v1",
			EndpointPrefix:             "api",
			Timezone:                   "UTC",
			AllowedOrigins:             []string{"*"},
			MaxRequests:                1000,
			MaxMutationsPerMinute:      mutationsPerMinute,
			MutationBurst:              1,
			MutationLimiterSize:        16,
			RequestBodyLimitInMegabyte: 1,
		},
	}
	jwtManager, err := jwtmanager.NewJWTManager("test-secret", zap.NewNop())
	require.NoError(t, err)

	accessLogger := logrus.New()
	accessLogger.SetOutput(io.Discard)

	usecase := new(MockAvailabilityUsecase)
	mws, err := middlewares.NewMiddlewares(zap.NewNop(), jwtManager, cfg)
	require.NoError(t, err)
	router := chi.NewRouter()
	SetupRoutes(router, cfg, accessLogger, mws, controllers.NewAvailabilityController(zap.NewNop(), usecase))
	return &testServer{handler: router, usecase: usecase, jwtManager: jwtManager}
}

func (s *testServer) token(t *testing.T, roles ...string) string {
	t.Helper()
	out, err := s.jwtManager.CreateToken(context.Background(), &jwtmanager.CreateTokenInput{
		Subject: "prac-1",
		Roles:   roles,
		TTL:     time.Hour,
	})
	require.NoError(t, err)
	return out.Token
}

func (s *testServer) do(t *testing.T, method, path, token, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	var decoded map[string]interface{}
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded), rec.Body.String())
	}
	return rec, decoded
}

func authenticatedAs(token string) interface{} {
	return mock.MatchedBy(func(ctx context.Context) bool {
		return utils.PractitionerIDFromContext(ctx) == "prac-1" &&
			utils.AccessTokenFromContext(ctx) == token &&
			utils.RequestIDFromContext(ctx) != ""
	})
}

func TestAvailabilityRoutes_Authentication(t *testing.T) {
	t.Run("Missing token", func(t *testing.T) {
		server := newTestServer(t, 60)

		rec, body := server.do(t, http.MethodGet, basePath+"/template", "", "")

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, false, body["success"])
		server.usecase.AssertNotCalled(t, "GetSlotTemplate", mock.Anything)
	})

	t.Run("Invalid token", func(t *testing.T) {
		server := newTestServer(t, 60)

		rec, _ := server.do(t, http.MethodGet, basePath+"/template", "not.a.token", "")

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("Patients cannot manage availability", func(t *testing.T) {
		server := newTestServer(t, 60)

		rec, _ := server.do(t, http.MethodGet, basePath+"/template", server.token(t, constvars.RolePatient), "")

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("Request id is echoed", func(t *testing.T) {
		server := newTestServer(t, 60)
		server.usecase.On("GetSlotTemplate", mock.Anything).Return(&responses.SlotTemplate{Timezone: "UTC"}, nil).Once()
		req := httptest.NewRequest(http.MethodGet, basePath+"/template", nil)
		req.Header.Set("Authorization", "Bearer "+server.token(t, constvars.RolePractitioner))
		req.Header.Set("X-Request-ID", "client-req-1")
		rec := httptest.NewRecorder()

		server.handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "client-req-1", rec.Header().Get("X-Request-ID"))
	})
}

func TestAvailabilityRoutes_GetWeekSchedule(t *testing.T) {
	t.Run("Passes week and expanded days", func(t *testing.T) {
		server := newTestServer(t, 60)
		token := server.token(t, constvars.RolePractitioner)
		server.usecase.On("GetWeekSchedule", authenticatedAs(token), 1, []int{0, 3}).
			Return(&responses.WeekSchedule{WeekOffset: 1}, nil).Once()

		rec, body := server.do(t, http.MethodGet, basePath+"/schedule?week=1&expanded=0,3", token, "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, true, body["success"])
		assert.Equal(t, float64(1), body["data"].(map[string]interface{})["weekOffset"])
		server.usecase.AssertExpectations(t)
	})

	t.Run("Bad week param", func(t *testing.T) {
		server := newTestServer(t, 60)

		rec, _ := server.do(t, http.MethodGet, basePath+"/schedule?week=next", server.token(t, constvars.RolePractitioner), "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		server.usecase.AssertNotCalled(t, "GetWeekSchedule", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Week outside the supported range", func(t *testing.T) {
		for _, week := range []string{"521", "-521", "4611686018427387904"} {
			server := newTestServer(t, 60)

			rec, body := server.do(t, http.MethodGet, basePath+"/schedule?week="+week, server.token(t, constvars.RolePractitioner), "")

			assert.Equal(t, http.StatusBadRequest, rec.Code, week)
			assert.Equal(t, false, body["success"])
			server.usecase.AssertNotCalled(t, "GetWeekSchedule", mock.Anything, mock.Anything, mock.Anything)
		}
	})

	t.Run("Week at the edge of the range", func(t *testing.T) {
		server := newTestServer(t, 60)
		server.usecase.On("GetWeekSchedule", mock.Anything, -constvars.MaxWeekOffset, []int(nil)).
			Return(&responses.WeekSchedule{WeekOffset: -constvars.MaxWeekOffset}, nil).Once()

		rec, _ := server.do(t, http.MethodGet, basePath+"/schedule?week=-520", server.token(t, constvars.RolePractitioner), "")

		assert.Equal(t, http.StatusOK, rec.Code)
		server.usecase.AssertExpectations(t)
	})

	t.Run("Remote store down", func(t *testing.T) {
		server := newTestServer(t, 60)
		server.usecase.On("GetWeekSchedule", mock.Anything, 0, []int(nil)).
			Return(nil, exceptions.ErrSlotStoreUnavailable(nil)).Once()

		rec, body := server.do(t, http.MethodGet, basePath+"/schedule", server.token(t, constvars.RolePractitioner), "")

		assert.Equal(t, http.StatusBadGateway, rec.Code)
		assert.Equal(t, constvars.ErrClientSlotStoreUnavailable, body["message"])
	})
}

func TestAvailabilityRoutes_ToggleSlot(t *testing.T) {
	const path = basePath + "/schedule/toggle"
	request := &requests.ToggleSlot{WeekOffset: 0, DayIndex: 2, SlotIndex: 36}

	tests := []struct {
		name     string
		action   string
		wantCode int
		wantMsg  string
	}{
		{"Created", "created", http.StatusCreated, constvars.SlotCreatedSuccessMessage},
		{"Deleted", "deleted", http.StatusOK, constvars.SlotDeletedSuccessMessage},
		{"Already in progress", "in_progress", http.StatusAccepted, constvars.SlotToggleInProgressMessage},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			server := newTestServer(t, 60)
			token := server.token(t, constvars.RolePractitioner)
			server.usecase.On("ToggleSlot", authenticatedAs(token), request).
				Return(&responses.ToggleSlot{Action: tc.action}, nil).Once()

			rec, body := server.do(t, http.MethodPost, path, token, `{"weekOffset":0,"dayIndex":2,"slotIndex":36}`)

			assert.Equal(t, tc.wantCode, rec.Code)
			assert.Equal(t, tc.wantMsg, body["message"])
			server.usecase.AssertExpectations(t)
		})
	}

	t.Run("Remote message reaches the client verbatim", func(t *testing.T) {
		server := newTestServer(t, 60)
		server.usecase.On("ToggleSlot", mock.Anything, request).
			Return(nil, exceptions.ErrToggleRemoteFailure(nil, http.StatusConflict, "Slot overlaps with an existing appointment")).Once()

		rec, body := server.do(t, http.MethodPost, path, server.token(t, constvars.RolePractitioner), `{"dayIndex":2,"slotIndex":36}`)

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, "Slot overlaps with an existing appointment", body["message"])
	})

	t.Run("Day index out of range", func(t *testing.T) {
		server := newTestServer(t, 60)

		rec, _ := server.do(t, http.MethodPost, path, server.token(t, constvars.RolePractitioner), `{"dayIndex":7,"slotIndex":0}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		server.usecase.AssertNotCalled(t, "ToggleSlot", mock.Anything, mock.Anything)
	})

	t.Run("Malformed body", func(t *testing.T) {
		server := newTestServer(t, 60)

		rec, _ := server.do(t, http.MethodPost, path, server.token(t, constvars.RolePractitioner), `{"dayIndex":`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Mutations are rate limited per practitioner", func(t *testing.T) {
		server := newTestServer(t, 1)
		token := server.token(t, constvars.RolePractitioner)
		server.usecase.On("ToggleSlot", mock.Anything, request).Return(&responses.ToggleSlot{Action: "created"}, nil).Once()

		first, _ := server.do(t, http.MethodPost, path, token, `{"dayIndex":2,"slotIndex":36}`)
		second, _ := server.do(t, http.MethodPost, path, token, `{"dayIndex":2,"slotIndex":36}`)

		assert.Equal(t, http.StatusCreated, first.Code)
		assert.Equal(t, http.StatusTooManyRequests, second.Code)
		server.usecase.AssertNumberOfCalls(t, "ToggleSlot", 1)
	})
}

func TestAvailabilityRoutes_Other(t *testing.T) {
	t.Run("Refresh", func(t *testing.T) {
		server := newTestServer(t, 60)
		server.usecase.On("RefreshSlots", mock.Anything).Return(&responses.RefreshSlots{SlotCount: 4}, nil).Once()

		rec, body := server.do(t, http.MethodPost, basePath+"/schedule/refresh", server.token(t, constvars.RolePractitioner), "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, float64(4), body["data"].(map[string]interface{})["slotCount"])
	})

	t.Run("Export", func(t *testing.T) {
		server := newTestServer(t, 60)
		server.usecase.On("ExportWeekSchedule", mock.Anything, -1).
			Return(&responses.ExportWeekSchedule{ObjectName: "availability/prac-1/2024-05-06.json", PresignedURL: "https://minio.local/x"}, nil).Once()

		rec, body := server.do(t, http.MethodPost, basePath+"/schedule/export?week=-1", server.token(t, constvars.RolePractitioner), "")

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, "https://minio.local/x", body["data"].(map[string]interface{})["presignedUrl"])
	})

	t.Run("Export week outside the supported range", func(t *testing.T) {
		for _, week := range []string{"521", "-521"} {
			server := newTestServer(t, 60)

			rec, _ := server.do(t, http.MethodPost, basePath+"/schedule/export?week="+week, server.token(t, constvars.RolePractitioner), "")

			assert.Equal(t, http.StatusBadRequest, rec.Code, week)
			server.usecase.AssertNotCalled(t, "ExportWeekSchedule", mock.Anything, mock.Anything)
		}
	})

	t.Run("Audits", func(t *testing.T) {
		server := newTestServer(t, 60)
		server.usecase.On("ListAudits", mock.Anything, 5).Return([]models.ToggleAudit{{ID: "a1", Action: "created"}}, nil).Once()

		rec, body := server.do(t, http.MethodGet, basePath+"/audits?limit=5", server.token(t, constvars.RolePractitioner), "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Len(t, body["data"], 1)
	})

	t.Run("Usecase deadline", func(t *testing.T) {
		server := newTestServer(t, 60)
		server.usecase.On("GetSlotTemplate", mock.Anything).Return(nil, context.DeadlineExceeded).Once()

		rec, _ := server.do(t, http.MethodGet, basePath+"/template", server.token(t, constvars.RolePractitioner), "")

		assert.Equal(t, http.StatusGatewayTimeout, rec.Code)
	})
}
