package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/contable/backoffice/internal/domain/shared"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func TestReferenceHandler_CheckRUT(t *testing.T) {
	engine := newTestEngine()
	h := NewReferenceHandler(nil)
	engine.GET("/rut/:rut", h.CheckRUT)

	t.Run("valid identifier", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/rut/76523829-3", nil)
		engine.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var resp struct {
			Success bool `json:"success"`
			Data    struct {
				Valid     bool   `json:"valid"`
				Compact   string `json:"compact"`
				Formatted string `json:"formatted"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.True(t, resp.Data.Valid)
		assert.Equal(t, "76523829-3", resp.Data.Compact)
		assert.Equal(t, "76.523.829-3", resp.Data.Formatted)
	})

	t.Run("wrong check digit", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/rut/76523829-8", nil)
		engine.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var resp struct {
			Data struct {
				Valid bool `json:"valid"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.False(t, resp.Data.Valid)
	})
}

func TestBaseHandler_HandleError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"validation", shared.NewValidationError("rut", "check digit does not match"), http.StatusBadRequest, shared.CodeValidation},
		{"missing parameter", shared.NewMissingParameterError("TAX_UNIT", "2026-03"), http.StatusUnprocessableEntity, shared.CodeMissingParameter},
		{"account not found", shared.NewAccountNotFoundError("VAT-Payable"), http.StatusUnprocessableEntity, shared.CodeAccountNotFound},
		{"imbalance", shared.NewImbalanceError(100, 99), http.StatusUnprocessableEntity, shared.CodeImbalance},
		{"not found", shared.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"already centralized", shared.ErrAlreadyCentralized, http.StatusConflict, "ALREADY_CENTRALIZED"},
		{"unknown", assert.AnError, http.StatusInternalServerError, "ERR_INTERNAL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := newTestEngine()
			var h BaseHandler
			engine.GET("/boom", func(c *gin.Context) {
				h.HandleError(c, tt.err)
			})

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/boom", nil)
			engine.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			var resp struct {
				Error struct {
					Code string `json:"code"`
				} `json:"error"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantCode, resp.Error.Code)
		})
	}
}
