package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/makersmarket/marketplace-api/internal/api/metrics"
	"github.com/makersmarket/marketplace-api/internal/core/domain"
	"github.com/makersmarket/marketplace-api/internal/core/ports"
)

// AccountService implements signup, login, role transitions and approval.
type AccountService struct {
	repo      ports.UserRepository
	jwtSecret string
	tokenTTL  time.Duration
	log       zerolog.Logger
}

func NewAccountService(repo ports.UserRepository, jwtSecret string, tokenTTL time.Duration, log zerolog.Logger) *AccountService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AccountService{repo: repo, jwtSecret: jwtSecret, tokenTTL: tokenTTL, log: log}
}

// SignUp registers a new account with role "user" and a freshly generated
// referral code. A supplied referral code that matches an existing user links
// the new account to its referrer; an unrecognised code is silently ignored.
func (s *AccountService) SignUp(ctx context.Context, input ports.SignUpInput) (*domain.User, error) {
	if input.Username == "" || input.Email == "" || input.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	var referredBy *int64
	if input.ReferralCode != "" {
		referrer, err := s.repo.FindByReferralCode(ctx, input.ReferralCode)
		if err == nil {
			referredBy = &referrer.ID
		} else if !errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
		Approved:     false,
		ReferralCode: uuid.NewString(),
		ReferredBy:   referredBy,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	source := "organic"
	if referredBy != nil {
		source = "referred"
	}
	metrics.SignupsTotal.WithLabelValues(source).Inc()
	s.log.Info().Int64("user_id", created.ID).Str("username", created.Username).Str("source", source).Msg("user created")

	return created, nil
}

// LogIn verifies the password and returns the user plus a signed bearer token.
// Unknown username and wrong password both surface as ErrInvalidCredentials so
// the response never reveals which check failed.
func (s *AccountService) LogIn(ctx context.Context, username, password string) (*domain.User, string, error) {
	if username == "" || password == "" {
		return nil, "", domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
			return nil, "", domain.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, "", domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, "", err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return user, token, nil
}

// RequestCreator transitions a plain user to an unapproved creator. The
// operation is deliberately not idempotent: a second call while already
// creator (or any call as admin) is a conflict.
func (s *AccountService) RequestCreator(ctx context.Context, userID int64) error {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.Role != domain.RoleUser {
		return domain.ErrRoleConflict
	}

	if err := s.repo.UpdateRole(ctx, userID, domain.RoleCreator, false); err != nil {
		return err
	}

	metrics.CreatorRequestsTotal.Inc()
	s.log.Info().Int64("user_id", userID).Msg("creator status requested")
	return nil
}

// ApproveCreator sets approved=true on the target. The target's role is not
// checked: approving a plain user succeeds and acts as a reinstate shortcut
// for previously demoted creators.
func (s *AccountService) ApproveCreator(ctx context.Context, targetID int64) error {
	if _, err := s.repo.FindByID(ctx, targetID); err != nil {
		return err
	}

	if err := s.repo.SetApproved(ctx, targetID, true); err != nil {
		return err
	}

	metrics.CreatorApprovalsTotal.Inc()
	s.log.Info().Int64("user_id", targetID).Msg("creator approved")
	return nil
}

// ListUsers returns the admin projection of every account.
func (s *AccountService) ListUsers(ctx context.Context) ([]ports.UserSummary, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]ports.UserSummary, len(users))
	for i, u := range users {
		out[i] = ports.UserSummary{
			ID:       u.ID,
			Username: u.Username,
			Role:     u.Role,
			Approved: u.Approved,
		}
	}
	return out, nil
}

func (s *AccountService) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":      strconv.FormatInt(user.ID, 10),
		"username": user.Username,
		"exp":      time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

// EnsureAdmin seeds the administrative account when it does not exist yet.
// The password comes from configuration; when it is empty no account is
// created and the caller is expected to have logged a warning.
func EnsureAdmin(ctx context.Context, repo ports.UserRepository, email, password string, log zerolog.Logger) error {
	if _, err := repo.FindByUsername(ctx, "admin"); err == nil {
		return nil
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	admin := &domain.User{
		Username:     "admin",
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
		Approved:     true,
		ReferralCode: uuid.NewString(),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := repo.Create(ctx, admin); err != nil {
		return err
	}
	log.Info().Str("username", "admin").Msg("admin account seeded")
	return nil
}
