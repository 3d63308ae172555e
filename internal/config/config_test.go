package config

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kei-arima/github-contrib-tracker/internal/domain"
)

func TestLoad(t *testing.T) {
	testCases := []struct {
		name        string
		token       string
		username    string
		expectError bool
		errContains []string
	}{
		{
			name:     "both variables set",
			token:    "ghp_token",
			username: "octocat",
		},
		{
			name:        "missing token",
			token:       "",
			username:    "octocat",
			expectError: true,
			errContains: []string{"GITHUB_TOKEN"},
		},
		{
			name:        "missing username",
			token:       "ghp_token",
			username:    "",
			expectError: true,
			errContains: []string{"GITHUB_USERNAME"},
		},
		{
			name:        "both missing - every variable is named",
			expectError: true,
			errContains: []string{"GITHUB_TOKEN", "GITHUB_USERNAME"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("GITHUB_TOKEN", tc.token)
			t.Setenv("GITHUB_USERNAME", tc.username)

			cfg, err := Load()

			if tc.expectError {
				assert.Error(t, err)
				assert.ErrorIs(t, err, domain.ErrMissingConfig)
				for _, name := range tc.errContains {
					assert.Contains(t, err.Error(), name)
				}
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.token, cfg.Token)
			assert.Equal(t, tc.username, cfg.Username)
		})
	}
}
