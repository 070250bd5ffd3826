package toggle

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/users-table/internal/lib/logger"
	"github.com/magabrotheeeer/users-table/internal/usertable"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) ToggleStatus(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func TestToggleHandler(t *testing.T) {
	tests := []struct {
		name           string
		id             string
		active         bool
		err            error
		expectedStatus int
		expectedBody   string
	}{
		{name: "activated", id: "5", active: true, expectedStatus: http.StatusOK, expectedBody: `{"status":"OK","data":{"active":true,"id":"5"}}`},
		{name: "deactivated", id: "6", active: false, expectedStatus: http.StatusOK, expectedBody: `{"status":"OK","data":{"active":false,"id":"6"}}`},
		{name: "not found", id: "999", err: usertable.ErrUserNotFound, expectedStatus: http.StatusNotFound, expectedBody: `{"status":"Error","error":"user not found"}`},
		{name: "loading", id: "1", err: usertable.ErrLoading, expectedStatus: http.StatusConflict, expectedBody: `{"status":"Error","error":"users are still loading"}`},
		{name: "unexpected", id: "1", err: errors.New("boom"), expectedStatus: http.StatusInternalServerError, expectedBody: `{"status":"Error","error":"failed to toggle status"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			svc.On("ToggleStatus", mock.Anything, tt.id).Return(tt.active, tt.err)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/users/"+tt.id+"/toggle", nil)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.id)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

			w := httptest.NewRecorder()
			New(logger.Discard(), svc).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
			svc.AssertExpectations(t)
		})
	}
}
