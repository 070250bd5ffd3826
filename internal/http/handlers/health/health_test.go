package health

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/magabrotheeeer/users-table/internal/lib/logger"
	"github.com/magabrotheeeer/users-table/internal/usertable"
)

type viewStub usertable.View

func (v viewStub) View() usertable.View { return usertable.View(v) }

func TestHealthHandler(t *testing.T) {
	tests := []struct {
		name         string
		view         usertable.View
		expectedBody string
	}{
		{
			name:         "таблица загружена",
			view:         usertable.View{Total: 100},
			expectedBody: `{"status":"OK","data":{"status":"ok","loading":false,"users":100}}`,
		},
		{
			name:         "идёт загрузка",
			view:         usertable.View{Loading: true},
			expectedBody: `{"status":"OK","data":{"status":"ok","loading":true,"users":0}}`,
		},
		{
			name:         "ошибка загрузки",
			view:         usertable.View{Error: "load timed out after 10s"},
			expectedBody: `{"status":"OK","data":{"status":"degraded","loading":false,"users":0}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			New(logger.Discard(), viewStub(tt.view)).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

			assert.Equal(t, http.StatusOK, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}
