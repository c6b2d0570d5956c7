package credential

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/chartpacket/chartpacket/internal/platform/auth"
	"github.com/chartpacket/chartpacket/internal/platform/drchrono"
)

// Refresher exchanges a refresh token for a fresh access token.
type Refresher interface {
	Refresh(ctx context.Context, refreshToken string) (*drchrono.Token, error)
}

// Service owns the stored DrChrono credential for each user and hands
// out access tokens that are known to be unexpired.
type Service struct {
	creds     Repository
	refresher Refresher
	now       func() time.Time
}

func NewService(creds Repository, refresher Refresher) *Service {
	return &Service{creds: creds, refresher: refresher, now: time.Now}
}

// ValidToken returns a usable access token for userID. A token that has
// not expired is returned as-is with no network traffic; an expired one
// is refreshed and the stored credential updated. Every failure mode
// that requires the user to reconnect comes back as *auth.Error.
func (s *Service) ValidToken(ctx context.Context, userID uuid.UUID) (string, error) {
	cred, err := s.creds.GetByUserID(ctx, userID)
	if err == ErrNotFound {
		return "", &auth.Error{Reason: "no ehr connection for user"}
	}
	if err != nil {
		return "", fmt.Errorf("load credential: %w", err)
	}

	if !cred.IsExpired(s.now()) {
		return cred.AccessToken, nil
	}

	if cred.RefreshToken == nil || *cred.RefreshToken == "" {
		return "", &auth.Error{Reason: "token expired and no refresh token on file"}
	}

	tok, err := s.refresher.Refresh(ctx, *cred.RefreshToken)
	if err != nil {
		if drchrono.StatusIn(err, 400, 401) {
			return "", &auth.Error{Reason: "refresh rejected, reconnect required", Err: err}
		}
		return "", &auth.Error{Reason: "refresh failed", Err: err}
	}

	cred.AccessToken = tok.AccessToken
	if tok.RefreshToken != "" {
		cred.RefreshToken = &tok.RefreshToken
	}
	expiresAt := s.now().Add(time.Duration(tok.ExpiresIn) * time.Second)
	cred.ExpiresAt = &expiresAt
	if tok.Scope != "" {
		cred.Scope = tok.Scope
	}

	if err := s.creds.Upsert(ctx, cred); err != nil {
		log.Error().Err(err).Stringer("user_id", userID).Msg("failed to persist refreshed credential")
		return "", fmt.Errorf("store refreshed credential: %w", err)
	}
	return cred.AccessToken, nil
}

// SaveFromOAuth stores the token obtained during the OAuth callback.
// expiresAt may be nil when the provider did not report a lifetime; the
// credential is then treated as already expired and refreshed on first use.
func (s *Service) SaveFromOAuth(ctx context.Context, userID uuid.UUID, accessToken, refreshToken, scope string, expiresAt *time.Time) error {
	cred := &Credential{
		UserID:      userID,
		AccessToken: accessToken,
		ExpiresAt:   expiresAt,
		Scope:       scope,
	}
	if refreshToken != "" {
		cred.RefreshToken = &refreshToken
	}
	return s.creds.Upsert(ctx, cred)
}
