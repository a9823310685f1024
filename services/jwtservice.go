package services

import (
	"time"

	"taskboard/config"
	"taskboard/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const tokenIssuer = "taskboard"

// The jti claim makes every token unique even when two are minted for the
// same user within one second; rotation relies on old and new refresh
// tokens never comparing equal.
func createToken(secret string, ttl time.Duration, userID string) (string, error) {
	claims := &model.TokenClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Issuer:    tokenIssuer,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// decodeToken verifies the signature and claims and returns the subject
// user id. With ignoreExpiry set only the signature is checked; the refresh
// flow uses that to read the subject of an already-expired access token.
func decodeToken(secret, tokenString string, ignoreExpiry bool) (string, bool) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{"HS256"})}
	if ignoreExpiry {
		opts = append(opts, jwt.WithoutClaimsValidation())
	}
	parser := jwt.NewParser(opts...)
	claims := &model.TokenClaims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil || !token.Valid || claims.UserID == "" {
		return "", false
	}
	return claims.UserID, true
}

func CreateConfToken(cfg *config.Config, userID string) (string, error) {
	return createToken(cfg.ConfirmationSecret, cfg.ConfirmationTTL, userID)
}

func DecodeConfToken(cfg *config.Config, token string) (string, bool) {
	return decodeToken(cfg.ConfirmationSecret, token, false)
}

func CreateAccessToken(cfg *config.Config, userID string) (string, error) {
	return createToken(cfg.AccessSecret, cfg.AccessTTL, userID)
}

func DecodeAccessToken(cfg *config.Config, token string, ignoreExpiry bool) (string, bool) {
	return decodeToken(cfg.AccessSecret, token, ignoreExpiry)
}

func CreateRefreshToken(cfg *config.Config, userID string) (string, error) {
	return createToken(cfg.RefreshSecret, cfg.RefreshTTL, userID)
}

func DecodeRefreshToken(cfg *config.Config, token string) (string, bool) {
	return decodeToken(cfg.RefreshSecret, token, false)
}

func CreateMemberInviteToken(cfg *config.Config, userID string) (string, error) {
	return createToken(cfg.MemberInviteSecret, cfg.InviteTTL, userID)
}

func DecodeMemberInviteToken(cfg *config.Config, token string) (string, bool) {
	return decodeToken(cfg.MemberInviteSecret, token, false)
}

func CreateOwnerInviteToken(cfg *config.Config, userID string) (string, error) {
	return createToken(cfg.OwnerInviteSecret, cfg.InviteTTL, userID)
}

func DecodeOwnerInviteToken(cfg *config.Config, token string) (string, bool) {
	return decodeToken(cfg.OwnerInviteSecret, token, false)
}

// FilterUserTokens drops excessToken from the user's stored refresh set
// along with every token that no longer decodes (expired or malformed).
func FilterUserTokens(cfg *config.Config, user *model.User, excessToken string) {
	kept := user.Tokens[:0]
	for _, token := range user.Tokens {
		if token == excessToken {
			continue
		}
		if _, ok := DecodeRefreshToken(cfg, token); ok {
			kept = append(kept, token)
		}
	}
	user.Tokens = kept
}

// GenerateUserTokens rotates the user's session: the consumed refresh token
// (may be empty) is dropped, a fresh access+refresh pair is issued and the
// new refresh token is stored. The caller persists the user.
func GenerateUserTokens(cfg *config.Config, user *model.User, expiredToken string) (string, string, error) {
	FilterUserTokens(cfg, user, expiredToken)
	accessToken, err := CreateAccessToken(cfg, user.UserID)
	if err != nil {
		return "", "", err
	}
	refreshToken, err := CreateRefreshToken(cfg, user.UserID)
	if err != nil {
		return "", "", err
	}
	user.Tokens = append(user.Tokens, refreshToken)
	return accessToken, refreshToken, nil
}

// FilterProjectTokens drops the consumed invitation token and every stored
// token that decodes under neither invite secret.
func FilterProjectTokens(cfg *config.Config, project *model.Project, excessToken string) {
	kept := project.Tokens[:0]
	for _, token := range project.Tokens {
		if token == excessToken {
			continue
		}
		_, asMember := DecodeMemberInviteToken(cfg, token)
		_, asOwner := DecodeOwnerInviteToken(cfg, token)
		if asMember || asOwner {
			kept = append(kept, token)
		}
	}
	project.Tokens = kept
}
