package salon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/MrsLondon/vivahub-api/pkg/errors"
)

func TestValidateOpeningHours(t *testing.T) {
	valid := [][2]string{
		{"09:00", "18:00"},
		{"00:00", "23:59"},
		{"08:30", "08:45"},
	}
	for _, pair := range valid {
		assert.NoError(t, validateOpeningHours(pair[0], pair[1]), "%s-%s", pair[0], pair[1])
	}

	invalid := [][2]string{
		{"18:00", "09:00"},
		{"09:00", "09:00"},
		{"9am", "18:00"},
		{"09:00", "25:00"},
		{"", "18:00"},
	}
	for _, pair := range invalid {
		err := validateOpeningHours(pair[0], pair[1])
		require.Error(t, err, "%s-%s", pair[0], pair[1])
		appErr, ok := apperrors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.ErrBadRequest, appErr.Code)
	}
}
