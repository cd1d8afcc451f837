package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		code string
		want int
	}{
		{"not found maps to 404", ErrCodeNotFound, http.StatusNotFound},
		{"feature denied maps to 403", ErrCodeFeatureDenied, http.StatusForbidden},
		{"rate limited maps to 429", ErrCodeRateLimited, http.StatusTooManyRequests},
		{"storage unavailable maps to 503", ErrCodeStorageUnavailable, http.StatusServiceUnavailable},
		{"unknown code falls back to 500", "ERR_SOMETHING_ELSE", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetHTTPStatus(tt.code))
		})
	}
}

func TestNormalizeErrorCode(t *testing.T) {
	tests := []struct {
		name string
		code string
		want string
	}{
		{"tenant not found", "TENANT_NOT_FOUND", ErrCodeNotFound},
		{"feature denied", "FEATURE_DENIED", ErrCodeFeatureDenied},
		{"quota exceeded", "QUOTA_EXCEEDED", ErrCodeRateLimited},
		{"option group mismatch", "OPTION_GROUP_MISMATCH", ErrCodeBusinessRule},
		{"unmapped INVALID code becomes validation", "INVALID_ITEM_PRICE", ErrCodeValidation},
		{"unknown code passes through", "SOMETHING_ELSE", "SOMETHING_ELSE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeErrorCode(tt.code))
		})
	}
}
