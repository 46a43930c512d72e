package integrations

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/deikotec/socialflow/internal/domain/company"
	"github.com/deikotec/socialflow/internal/domain/docstore"
	"github.com/deikotec/socialflow/internal/utils/platformerrors"
)

// StateTTL bounds how long a login link stays valid.
const StateTTL = 10 * time.Minute

// RefreshWindow is how close to expiry a TikTok token gets refreshed.
const RefreshWindow = time.Hour

// Dashboard redirect codes.
const (
	SuccessDrive     = "drive_connected"
	SuccessInstagram = "instagram_connected"
	SuccessTikTok    = "tiktok_connected"

	FailOAuthDenied          = "oauth_denied"
	FailMissingParams        = "missing_params"
	FailInvalidState         = "invalid_state"
	FailExchangeFailed       = "exchange_failed"
	FailNoRefreshToken       = "no_refresh_token"
	FailMetaAuthFailed       = "meta_auth_failed"
	FailNoInstagramConnected = "no_instagram_connected"
	FailTikTokAuthFailed     = "tiktok_auth_failed"
)

// CompanyAccess resolves a company the caller owns.
type CompanyAccess interface {
	Get(ctx context.Context, userID, companyID string) (*company.Company, error)
}

// CompanyStore reads and writes connection fields.
type CompanyStore interface {
	Update(ctx context.Context, id string, fields map[string]any) error
	ListWithTikTok(ctx context.Context) ([]*company.Company, error)
}

// CallbackParams are the query parameters a provider redirects back with.
type CallbackParams struct {
	Code  string `form:"code"`
	State string `form:"state"`
	Error string `form:"error"`
}

// Options carries the URLs the service redirects through.
type Options struct {
	DashboardURL string
	// CallbackURL returns the public callback URL registered with provider.
	CallbackURL func(provider string) string
}

// Service runs the OAuth connect flows for Drive, Instagram and TikTok.
type Service struct {
	companies CompanyAccess
	store     CompanyStore
	drive     DriveOAuth
	meta      MetaOAuth
	tiktok    TikTokOAuth
	states    StateStore
	opts      Options
	now       func() time.Time
	log       zerolog.Logger
}

// NewService wires the integrations service. Nil provider clients leave that provider unavailable.
func NewService(companies CompanyAccess, store CompanyStore, drive DriveOAuth, meta MetaOAuth, tiktok TikTokOAuth, states StateStore, opts Options, log zerolog.Logger) *Service {
	return &Service{
		companies: companies,
		store:     store,
		drive:     drive,
		meta:      meta,
		tiktok:    tiktok,
		states:    states,
		opts:      opts,
		now:       func() time.Time { return time.Now().UTC() },
		log:       log.With().Str("component", "integrations-service").Logger(),
	}
}

// LoginURL returns the provider consent URL for a company the caller owns.
func (s *Service) LoginURL(ctx context.Context, userID, provider, companyID string) (string, error) {
	companyID = strings.TrimSpace(companyID)
	if companyID == "" {
		return "", platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"Company ID is required", nil, "c3e5a7c9-1d3f-4b5c-8e7a-9c1d3e5f7a20")
	}
	if err := s.available(ctx, provider); err != nil {
		return "", err
	}
	if _, err := s.companies.Get(ctx, userID, companyID); err != nil {
		return "", err
	}

	state := uuid.NewString()
	if err := s.states.Put(ctx, stateKey(state), provider+":"+companyID, StateTTL); err != nil {
		return "", platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "store oauth state")
	}

	redirectURI := s.opts.CallbackURL(provider)
	switch provider {
	case ProviderGoogle:
		return s.drive.AuthURL(state), nil
	case ProviderMeta:
		return s.meta.AuthURL(redirectURI, state), nil
	default:
		return s.tiktok.AuthURL(redirectURI, state), nil
	}
}

// Callback completes a flow and returns the dashboard URL to redirect to.
// Failures never surface as errors; they become an error code on the redirect.
func (s *Service) Callback(ctx context.Context, provider string, params CallbackParams) string {
	if params.Error != "" {
		s.log.Warn().Str("provider", provider).Str("error", params.Error).Msg("oauth consent denied")
		return s.redirect("error", FailOAuthDenied)
	}
	if params.Code == "" || params.State == "" {
		return s.redirect("error", FailMissingParams)
	}

	companyID, err := s.consumeState(ctx, provider, params.State)
	if err != nil {
		s.log.Warn().Err(err).Str("provider", provider).Msg("oauth state rejected")
		return s.redirect("error", FailInvalidState)
	}

	log := s.log.With().Str("provider", provider).Str("company_id", companyID).Logger()
	switch provider {
	case ProviderGoogle:
		return s.completeDrive(ctx, log, companyID, params.Code)
	case ProviderMeta:
		return s.completeMeta(ctx, log, companyID, params.Code)
	case ProviderTikTok:
		return s.completeTikTok(ctx, log, companyID, params.Code)
	}
	return s.redirect("error", FailMissingParams)
}

func (s *Service) completeDrive(ctx context.Context, log zerolog.Logger, companyID, code string) string {
	refreshToken, err := s.drive.Exchange(ctx, code)
	if err != nil {
		log.Error().Err(err).Msg("drive code exchange failed")
		return s.redirect("error", FailExchangeFailed)
	}
	if refreshToken == "" {
		log.Warn().Msg("no refresh token received")
		return s.redirect("error", FailNoRefreshToken)
	}

	err = s.store.Update(ctx, companyID, map[string]any{
		"drive_refresh_token": refreshToken,
		"updatedAt":           docstore.Now(),
	})
	if err != nil {
		log.Error().Err(err).Msg("store drive credential")
		return s.redirect("error", FailExchangeFailed)
	}
	log.Info().Msg("drive connected")
	return s.redirect("success", SuccessDrive)
}

func (s *Service) completeMeta(ctx context.Context, log zerolog.Logger, companyID, code string) string {
	conn, err := s.discoverInstagram(ctx, log, code)
	if err != nil {
		log.Error().Err(err).Msg("meta auth failed")
		return s.redirect("error", FailMetaAuthFailed)
	}
	if conn == nil {
		return s.redirect("error", FailNoInstagramConnected)
	}

	if err := s.store.Update(ctx, companyID, map[string]any{"socialConnections.instagram": conn}); err != nil {
		log.Error().Err(err).Msg("store instagram connection")
		return s.redirect("error", FailMetaAuthFailed)
	}
	log.Info().Str("instagram_user_id", conn.InstagramUserID).Msg("instagram connected")
	return s.redirect("success", SuccessInstagram)
}

// discoverInstagram returns nil when no managed page links a business account.
func (s *Service) discoverInstagram(ctx context.Context, log zerolog.Logger, code string) (*company.InstagramConnection, error) {
	shortLived, err := s.meta.ExchangeCode(ctx, code, s.opts.CallbackURL(ProviderMeta))
	if err != nil {
		return nil, err
	}
	token, err := s.meta.LongLivedToken(ctx, shortLived)
	if err != nil {
		return nil, err
	}
	pages, err := s.meta.Pages(ctx, token)
	if err != nil {
		return nil, err
	}

	for _, page := range pages {
		igID, err := s.meta.InstagramAccountID(ctx, page.ID, token)
		if err != nil {
			log.Warn().Err(err).Str("page_id", page.ID).Msg("page lookup failed")
			continue
		}
		if igID == "" {
			continue
		}
		username, err := s.meta.InstagramUsername(ctx, igID, token)
		if err != nil {
			return nil, err
		}
		return &company.InstagramConnection{
			AccessToken:     token,
			InstagramUserID: igID,
			PageID:          page.ID,
			Username:        username,
			UpdatedAt:       s.now(),
		}, nil
	}
	return nil, nil
}

func (s *Service) completeTikTok(ctx context.Context, log zerolog.Logger, companyID, code string) string {
	tokens, err := s.tiktok.ExchangeCode(ctx, code, s.opts.CallbackURL(ProviderTikTok))
	if err != nil {
		log.Error().Err(err).Msg("tiktok code exchange failed")
		return s.redirect("error", FailTikTokAuthFailed)
	}
	username, err := s.tiktok.DisplayName(ctx, tokens.AccessToken)
	if err != nil {
		log.Error().Err(err).Msg("tiktok user info failed")
		return s.redirect("error", FailTikTokAuthFailed)
	}

	conn := s.tiktokConnection(tokens, username)
	if err := s.store.Update(ctx, companyID, map[string]any{"socialConnections.tiktok": conn}); err != nil {
		log.Error().Err(err).Msg("store tiktok connection")
		return s.redirect("error", FailTikTokAuthFailed)
	}
	log.Info().Str("open_id", conn.OpenID).Msg("tiktok connected")
	return s.redirect("success", SuccessTikTok)
}

// RefreshExpiringTikTok renews TikTok tokens expiring within RefreshWindow and
// returns how many were refreshed. One failing company does not stop the rest.
func (s *Service) RefreshExpiringTikTok(ctx context.Context) (int, error) {
	if s.tiktok == nil {
		return 0, nil
	}
	companies, err := s.store.ListWithTikTok(ctx)
	if err != nil {
		return 0, err
	}

	deadline := s.now().Add(RefreshWindow)
	refreshed := 0
	for _, c := range companies {
		conn := c.SocialConnections.TikTok
		if !conn.Connected() || conn.RefreshToken == "" {
			continue
		}
		if !conn.ExpiresAt.IsZero() && conn.ExpiresAt.After(deadline) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return refreshed, err
		}

		tokens, err := s.tiktok.RefreshToken(ctx, conn.RefreshToken)
		if err != nil {
			s.log.Error().Err(err).Str("company_id", c.ID).Msg("tiktok token refresh failed")
			continue
		}
		next := s.tiktokConnection(tokens, conn.Username)
		if next.RefreshToken == "" {
			next.RefreshToken = conn.RefreshToken
		}
		if next.OpenID == "" {
			next.OpenID = conn.OpenID
		}
		if err := s.store.Update(ctx, c.ID, map[string]any{"socialConnections.tiktok": next}); err != nil {
			s.log.Error().Err(err).Str("company_id", c.ID).Msg("store refreshed tiktok token")
			continue
		}
		refreshed++
	}
	return refreshed, nil
}

func (s *Service) tiktokConnection(tokens TikTokTokens, username string) *company.TikTokConnection {
	now := s.now()
	return &company.TikTokConnection{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		ExpiresIn:    tokens.ExpiresIn,
		ExpiresAt:    now.Add(time.Duration(tokens.ExpiresIn) * time.Second),
		OpenID:       tokens.OpenID,
		Username:     username,
		UpdatedAt:    now,
	}
}

func (s *Service) available(ctx context.Context, provider string) error {
	configured := false
	switch provider {
	case ProviderGoogle:
		configured = s.drive != nil
	case ProviderMeta:
		configured = s.meta != nil
	case ProviderTikTok:
		configured = s.tiktok != nil
	default:
		return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"Unsupported provider: "+provider, nil, "d4f6b8d0-2e4a-4c6d-9f8b-0d2e4f6a8b31")
	}
	if !configured {
		return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotImplemented,
			provider+" integration is not configured", nil, "e5a7c9e1-3f5b-4d7e-8a9c-1e3f5a7b9c42")
	}
	return nil
}

func (s *Service) consumeState(ctx context.Context, provider, state string) (string, error) {
	value, ok, err := s.states.Take(ctx, stateKey(state))
	if err != nil {
		return "", err
	}
	owner, companyID, found := strings.Cut(value, ":")
	if !ok || !found || owner != provider || companyID == "" {
		return "", platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeUnauthorized,
			"unknown or expired oauth state", nil, "f6b8d0f2-4a6c-4e8f-9b0d-2f4a6b8c0d53")
	}
	return companyID, nil
}

func (s *Service) redirect(key, code string) string {
	return strings.TrimRight(s.opts.DashboardURL, "/") + "/settings?" + url.Values{key: {code}}.Encode()
}

func stateKey(state string) string {
	return "oauth_state:" + state
}
