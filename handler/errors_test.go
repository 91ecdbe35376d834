package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"main/usecase"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRespondErrorStatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", usecase.ErrNotFound, http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("%w: no such note", usecase.ErrNotFound), http.StatusNotFound},
		{"forbidden", fmt.Errorf("%w: edit permission required", usecase.ErrForbidden), http.StatusForbidden},
		{"validation", fmt.Errorf("%w: note title is required", usecase.ErrValidation), http.StatusBadRequest},
		{"conflict", fmt.Errorf("%w: note was modified by someone else", usecase.ErrConflict), http.StatusConflict},
		{"unknown error stays opaque", errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			respondError(c, tt.err)

			assert.Equal(t, tt.want, w.Code)
			if tt.want == http.StatusInternalServerError {
				// Store failures never leak their message.
				assert.NotContains(t, w.Body.String(), "connection reset")
			}
		})
	}
}
