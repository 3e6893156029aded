package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/fleetrent/fleetrent/internal/domain"
	"github.com/fleetrent/fleetrent/internal/pkg/crypto"
	"github.com/fleetrent/fleetrent/internal/repository"
)

// DefaultTokenCacheTTL bounds how long a validated token is served from
// cache before the database is consulted again.
const DefaultTokenCacheTTL = 5 * time.Minute

// TokenService issues and validates bearer tokens.
// Tokens are opaque random keys stored server-side; there is no
// self-describing payload and no expiry.
type TokenService struct {
	tokenRepo repository.TokenRepository
	userRepo  repository.UserRepository
	users     *UserService
	cache     repository.Cache
	cacheTTL  time.Duration
	keys      repository.CacheKey
	logger    zerolog.Logger
}

// NewTokenService creates a new TokenService.
func NewTokenService(
	tokenRepo repository.TokenRepository,
	userRepo repository.UserRepository,
	users *UserService,
	cache repository.Cache,
	logger zerolog.Logger,
) *TokenService {
	return &TokenService{
		tokenRepo: tokenRepo,
		userRepo:  userRepo,
		users:     users,
		cache:     cache,
		cacheTTL:  DefaultTokenCacheTTL,
		logger:    logger.With().Str("service", "token").Logger(),
	}
}

// Issue authenticates the credentials and returns a token key.
// A user keeps a single active token: repeated issues return the
// existing key instead of minting a new one.
func (s *TokenService) Issue(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.Authenticate(ctx, email, password)
	if err != nil {
		return "", err
	}

	existing, err := s.tokenRepo.GetByUserID(ctx, user.ID)
	if err == nil {
		return existing.Key, nil
	}
	if !errors.Is(err, domain.ErrTokenNotFound) {
		s.logger.Error().Err(err).Int64("user_id", user.ID).Msg("failed to look up existing token")
		return "", err
	}

	key, err := crypto.GenerateTokenKey()
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to generate token key")
		return "", err
	}

	token := domain.NewToken(key, user.ID)
	if err := s.tokenRepo.Create(ctx, token); err != nil {
		s.logger.Error().Err(err).Int64("user_id", user.ID).Msg("failed to store token")
		return "", err
	}

	s.logger.Info().Int64("user_id", user.ID).Msg("token issued")
	return key, nil
}

// Validate resolves a token key to its user.
// The key-to-user mapping is cached; the user row itself is always
// loaded fresh so deactivation takes effect within one request.
func (s *TokenService) Validate(ctx context.Context, key string) (*domain.User, error) {
	if key == "" {
		return nil, domain.ErrTokenNotFound
	}

	userID, ok := s.cachedUserID(ctx, key)
	if !ok {
		token, err := s.tokenRepo.GetByKey(ctx, key)
		if err != nil {
			return nil, err
		}
		userID = token.UserID
		s.cacheUserID(ctx, key, userID)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		// Token points at a deleted user; drop the stale cache entry.
		_ = s.cache.Delete(ctx, s.keys.Token(key))
		return nil, domain.ErrTokenNotFound
	}

	if !user.CanAuthenticate() {
		return nil, domain.ErrUserInactive
	}

	return user, nil
}

// Revoke deletes a token and its cache entry.
func (s *TokenService) Revoke(ctx context.Context, key string) error {
	if err := s.tokenRepo.DeleteByKey(ctx, key); err != nil {
		return err
	}
	if err := s.cache.Delete(ctx, s.keys.Token(key)); err != nil {
		s.logger.Warn().Err(err).Msg("failed to evict revoked token from cache")
	}
	return nil
}

func (s *TokenService) cachedUserID(ctx context.Context, key string) (int64, bool) {
	value, err := s.cache.Get(ctx, s.keys.Token(key))
	if err != nil {
		if !errors.Is(err, repository.ErrCacheMiss) {
			s.logger.Warn().Err(err).Msg("token cache lookup failed")
		}
		return 0, false
	}

	userID, err := strconv.ParseInt(string(value), 10, 64)
	if err != nil {
		return 0, false
	}
	return userID, true
}

func (s *TokenService) cacheUserID(ctx context.Context, key string, userID int64) {
	value := []byte(strconv.FormatInt(userID, 10))
	if err := s.cache.Set(ctx, s.keys.Token(key), value, s.cacheTTL); err != nil {
		s.logger.Warn().Err(err).Msg("failed to cache token")
	}
}
