package validation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/reelpulse/reelpulse/internal/errors"
	"github.com/reelpulse/reelpulse/internal/validation"
)

type testSettings struct {
	Media  string  `config:"media" validate:"oneof=all movie tv"`
	Sample int     `config:"cast-sample" validate:"gte=0"`
	Base   string  `config:"TMDB_BASE_URL" validate:"required,url"`
	RPS    float64 `config:"TMDB_MAX_RPS" validate:"gt=0"`
}

func TestValidator_ValidateSuccess(t *testing.T) {
	v := validation.New()

	err := v.Validate(testSettings{
		Media:  "movie",
		Sample: 8,
		Base:   "https://api.themoviedb.org/3",
		RPS:    20,
	})
	assert.NoError(t, err)
}

func TestValidator_ValidateErrors(t *testing.T) {
	v := validation.New()

	tests := []struct {
		name      string
		settings  testSettings
		wantField string
		wantMsg   string
	}{
		{
			name:      "media outside enum",
			settings:  testSettings{Media: "person", Base: "https://x.test", RPS: 1},
			wantField: "media",
			wantMsg:   "must be one of: all movie tv",
		},
		{
			name:      "negative cast sample",
			settings:  testSettings{Media: "all", Sample: -1, Base: "https://x.test", RPS: 1},
			wantField: "cast-sample",
			wantMsg:   "must be greater than or equal to 0",
		},
		{
			name:      "missing base url",
			settings:  testSettings{Media: "all", RPS: 1},
			wantField: "TMDB_BASE_URL",
			wantMsg:   "is required",
		},
		{
			name:      "zero rps",
			settings:  testSettings{Media: "all", Base: "https://x.test"},
			wantField: "TMDB_MAX_RPS",
			wantMsg:   "must be greater than 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.settings)
			require.Error(t, err)
			assert.True(t, domainerrors.Is(err, domainerrors.ErrValidation))

			var domainErr *domainerrors.Error
			require.True(t, domainerrors.As(err, &domainErr))
			details, ok := domainErr.Details.(map[string]string)
			require.True(t, ok)
			assert.Equal(t, tt.wantMsg, details[tt.wantField])
			assert.Contains(t, err.Error(), tt.wantField)
		})
	}
}
