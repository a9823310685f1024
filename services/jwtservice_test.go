package services_test

import (
	"testing"
	"time"

	"taskboard/config"
	"taskboard/model"
	"taskboard/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tokenConfig() *config.Config {
	return &config.Config{
		ConfirmationSecret: "conf-secret",
		AccessSecret:       "access-secret",
		RefreshSecret:      "refresh-secret",
		MemberInviteSecret: "member-secret",
		OwnerInviteSecret:  "owner-secret",
		ConfirmationTTL:    time.Hour,
		AccessTTL:          time.Hour,
		RefreshTTL:         time.Hour,
		InviteTTL:          time.Hour,
	}
}

const testUserID = "3f2a8f1e-6c1d-4e6a-9b53-1f6d2f1c9a01"

func TestTokenRoundTrips(t *testing.T) {
	cfg := tokenConfig()

	tests := []struct {
		name   string
		create func(*config.Config, string) (string, error)
		decode func(*config.Config, string) (string, bool)
	}{
		{"confirmation", services.CreateConfToken, services.DecodeConfToken},
		{"refresh", services.CreateRefreshToken, services.DecodeRefreshToken},
		{"member invite", services.CreateMemberInviteToken, services.DecodeMemberInviteToken},
		{"owner invite", services.CreateOwnerInviteToken, services.DecodeOwnerInviteToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := tt.create(cfg, testUserID)
			require.NoError(t, err)
			uid, ok := tt.decode(cfg, token)
			assert.True(t, ok)
			assert.Equal(t, testUserID, uid)
		})
	}
}

func TestTokensMintedTogetherDiffer(t *testing.T) {
	cfg := tokenConfig()

	first, err := services.CreateRefreshToken(cfg, testUserID)
	require.NoError(t, err)
	second, err := services.CreateRefreshToken(cfg, testUserID)
	require.NoError(t, err)
	assert.NotEqual(t, first, second, "back-to-back tokens for one user must not collide")
}

func TestTokenKindsAreNotInterchangeable(t *testing.T) {
	cfg := tokenConfig()

	memberToken, err := services.CreateMemberInviteToken(cfg, testUserID)
	require.NoError(t, err)
	_, ok := services.DecodeOwnerInviteToken(cfg, memberToken)
	assert.False(t, ok, "member token must not decode as an owner token")

	refreshToken, err := services.CreateRefreshToken(cfg, testUserID)
	require.NoError(t, err)
	_, ok = services.DecodeAccessToken(cfg, refreshToken, false)
	assert.False(t, ok, "refresh token must not decode as an access token")
}

func TestDecodeGarbage(t *testing.T) {
	cfg := tokenConfig()
	_, ok := services.DecodeAccessToken(cfg, "not-a-jwt", false)
	assert.False(t, ok)
	_, ok = services.DecodeAccessToken(cfg, "", true)
	assert.False(t, ok)
}

func TestExpiredAccessToken(t *testing.T) {
	cfg := tokenConfig()
	cfg.AccessTTL = -time.Minute

	token, err := services.CreateAccessToken(cfg, testUserID)
	require.NoError(t, err)

	_, ok := services.DecodeAccessToken(cfg, token, false)
	assert.False(t, ok, "expired token must fail normal validation")

	uid, ok := services.DecodeAccessToken(cfg, token, true)
	assert.True(t, ok, "expired token must still decode when expiry is ignored")
	assert.Equal(t, testUserID, uid)
}

func TestFilterUserTokens(t *testing.T) {
	cfg := tokenConfig()

	live, err := services.CreateRefreshToken(cfg, testUserID)
	require.NoError(t, err)
	consumed, err := services.CreateRefreshToken(cfg, testUserID)
	require.NoError(t, err)

	expiredCfg := tokenConfig()
	expiredCfg.RefreshTTL = -time.Minute
	expired, err := services.CreateRefreshToken(expiredCfg, testUserID)
	require.NoError(t, err)

	user := &model.User{UserID: testUserID, Tokens: []string{live, consumed, expired, "garbage"}}
	services.FilterUserTokens(cfg, user, consumed)
	assert.Equal(t, []string{live}, user.Tokens)
}

func TestGenerateUserTokensRotates(t *testing.T) {
	cfg := tokenConfig()
	user := &model.User{UserID: testUserID}

	access, refresh, err := services.GenerateUserTokens(cfg, user, "")
	require.NoError(t, err)
	assert.Equal(t, []string{refresh}, user.Tokens)

	uid, ok := services.DecodeAccessToken(cfg, access, false)
	require.True(t, ok)
	assert.Equal(t, testUserID, uid)

	_, refresh2, err := services.GenerateUserTokens(cfg, user, refresh)
	require.NoError(t, err)
	assert.Equal(t, []string{refresh2}, user.Tokens, "consumed refresh token is dropped")
}

func TestFilterProjectTokens(t *testing.T) {
	cfg := tokenConfig()

	memberToken, err := services.CreateMemberInviteToken(cfg, testUserID)
	require.NoError(t, err)
	ownerToken, err := services.CreateOwnerInviteToken(cfg, testUserID)
	require.NoError(t, err)
	consumed, err := services.CreateMemberInviteToken(cfg, "4a1b2c3d-5e6f-4a1b-8c9d-0e1f2a3b4c5d")
	require.NoError(t, err)

	project := &model.Project{Tokens: []string{memberToken, ownerToken, consumed, "garbage"}}
	services.FilterProjectTokens(cfg, project, consumed)
	assert.Equal(t, []string{memberToken, ownerToken}, project.Tokens)
}
