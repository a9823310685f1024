package config_test

import (
	"testing"
	"time"

	"taskboard/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredSecrets(t *testing.T) {
	t.Setenv("JWT_CONFIRMATION_SECRET_KEY", "conf")
	t.Setenv("JWT_SECRET_KEY", "access")
	t.Setenv("JWT_REFRESH_SECRET_KEY", "refresh")
	t.Setenv("JWT_INVITE_MEMBER_SECRET_KEY", "member")
	t.Setenv("JWT_INVITE_OWNER_SECRET_KEY", "owner")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredSecrets(t)

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "jwt", cfg.CookieName)
	assert.Equal(t, 8, cfg.MinPasswordLength)
	assert.Equal(t, 25, cfg.MaxPasswordLength)
	assert.Equal(t, 12, cfg.MaxColumnsPerProject)
	assert.Equal(t, 100, cfg.MaxTasksPerProject)
	assert.Equal(t, 5*time.Hour, cfg.AccessTTL)
	assert.Equal(t, 5*24*time.Hour, cfg.RefreshTTL)
}

func TestLoadOverrides(t *testing.T) {
	setRequiredSecrets(t)
	t.Setenv("PORT", "8080")
	t.Setenv("JWT_EXPIRE_TIME", "60")
	t.Setenv("MAX_COLUMN_NUMBER_PER_PROJECT", "4")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, time.Minute, cfg.AccessTTL)
	assert.Equal(t, 4, cfg.MaxColumnsPerProject)
}

func TestLoadRequiresSecrets(t *testing.T) {
	setRequiredSecrets(t)
	t.Setenv("JWT_REFRESH_SECRET_KEY", "")

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_REFRESH_SECRET_KEY")
}
