package handlers

import (
	"errors"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coreerrors "linkoff-engine/core/errors"
	"linkoff-engine/linkoff"
)

func TestToHumaError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{
			name:       "validation error",
			err:        &coreerrors.ValidationError{Field: "hide-polls", Message: "must be a boolean"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "library validation error",
			err:        linkoff.NewError(linkoff.ErrorTypeValidation, "URL is required"),
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "not found error",
			err:        &coreerrors.NotFoundError{Resource: "item", ID: "x"},
			wantStatus: http.StatusNotFound,
		},
		{
			name: "wrong page wrapped by the library",
			err: linkoff.NewError(linkoff.ErrorTypeWrongPage, "unfollow failed").
				WithCause(&coreerrors.WrongPageError{Command: "unfollow-all"}),
			wantStatus: http.StatusConflict,
		},
		{
			name:       "parsing error",
			err:        linkoff.NewError(linkoff.ErrorTypeParsing, "failed to parse feed"),
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "network error",
			err:        linkoff.NewError(linkoff.ErrorTypeNetwork, "failed to load feed"),
			wantStatus: http.StatusBadGateway,
		},
		{
			name:       "store error",
			err:        &coreerrors.StoreError{Backend: "redis", Op: "get", Err: errors.New("refused")},
			wantStatus: http.StatusServiceUnavailable,
		},
		{
			name:       "unknown error",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := toHumaError(tt.err)

			var statusErr huma.StatusError
			require.True(t, errors.As(result, &statusErr))
			assert.Equal(t, tt.wantStatus, statusErr.GetStatus())
		})
	}
}

func TestToHumaError_Nil(t *testing.T) {
	assert.NoError(t, toHumaError(nil))
}
