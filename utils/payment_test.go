package utils

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinorUnits(t *testing.T) {
	tests := []struct {
		name      string
		totalCost float64
		want      int64
	}{
		{"cents preserved", 19.99, 1999},
		{"whole dollars", 10, 1000},
		{"single cent", 0.01, 1},
		{"large total", 249.50, 24950},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MinorUnits(tt.totalCost)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMinorUnits_Invalid(t *testing.T) {
	for _, totalCost := range []float64{0, -5, -0.01} {
		_, err := MinorUnits(totalCost)
		require.Error(t, err)

		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, http.StatusBadRequest, apiErr.Status)
		assert.Equal(t, "totalCost", apiErr.Field)
	}
}
