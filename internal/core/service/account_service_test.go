package service

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/makersmarket/marketplace-api/internal/core/domain"
	"github.com/makersmarket/marketplace-api/internal/core/ports"
)

type stubUserRepo struct {
	users  map[int64]*domain.User
	nextID int64
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[int64]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, existing := range r.users {
		if existing.Username == user.Username || existing.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	r.nextID++
	created := cloneUser(user)
	created.ID = r.nextID
	r.users[created.ID] = cloneUser(created)
	return cloneUser(created), nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByReferralCode(_ context.Context, code string) (*domain.User, error) {
	for _, u := range r.users {
		if u.ReferralCode == code {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) UpdateRole(_ context.Context, id int64, role string, approved bool) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Role = role
	u.Approved = approved
	return nil
}

func (r *stubUserRepo) SetApproved(_ context.Context, id int64, approved bool) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Approved = approved
	return nil
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, cloneUser(u))
	}
	return out, nil
}

func newTestAccountService(repo ports.UserRepository) *AccountService {
	return NewAccountService(repo, "secret", time.Hour, zerolog.Nop())
}

func TestAccountService_SignUp_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAccountService(repo)

	user, err := svc.SignUp(context.Background(), ports.SignUpInput{
		Username: "alice", Email: "alice@example.com", Password: "pw1",
	})
	if err != nil {
		t.Fatalf("SignUp returned error: %v", err)
	}
	if user.Role != domain.RoleUser || user.Approved {
		t.Fatalf("expected unapproved user role, got %s approved=%v", user.Role, user.Approved)
	}
	if user.PasswordHash == "pw1" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pw1")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if user.ReferralCode == "" {
		t.Fatalf("expected a generated referral code")
	}
	if user.ReferredBy != nil {
		t.Fatalf("expected no referrer, got %v", *user.ReferredBy)
	}
}

func TestAccountService_SignUp_UniqueReferralCodes(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAccountService(repo)

	seen := make(map[string]bool)
	for _, name := range []string{"a", "b", "c", "d"} {
		u, err := svc.SignUp(context.Background(), ports.SignUpInput{
			Username: name, Email: name + "@example.com", Password: "pw",
		})
		if err != nil {
			t.Fatalf("SignUp(%s) failed: %v", name, err)
		}
		if seen[u.ReferralCode] {
			t.Fatalf("referral code %q issued twice", u.ReferralCode)
		}
		seen[u.ReferralCode] = true
	}
}

func TestAccountService_SignUp_MissingFields(t *testing.T) {
	svc := newTestAccountService(newStubUserRepo())

	cases := []ports.SignUpInput{
		{Email: "a@example.com", Password: "pw"},
		{Username: "a", Password: "pw"},
		{Username: "a", Email: "a@example.com"},
	}
	for i, in := range cases {
		if _, err := svc.SignUp(context.Background(), in); !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Fatalf("case %d: expected ErrInvalidCredentials, got %v", i, err)
		}
	}
}

func TestAccountService_SignUp_Duplicate(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAccountService(repo)

	if _, err := svc.SignUp(context.Background(), ports.SignUpInput{Username: "bob", Email: "bob@example.com", Password: "pw"}); err != nil {
		t.Fatalf("first signup failed: %v", err)
	}
	if _, err := svc.SignUp(context.Background(), ports.SignUpInput{Username: "bob", Email: "other@example.com", Password: "pw"}); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists for duplicate username, got %v", err)
	}
	if _, err := svc.SignUp(context.Background(), ports.SignUpInput{Username: "other", Email: "bob@example.com", Password: "pw"}); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists for duplicate email, got %v", err)
	}
}

func TestAccountService_SignUp_ReferralLinking(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAccountService(repo)

	referrer, err := svc.SignUp(context.Background(), ports.SignUpInput{Username: "x", Email: "x@example.com", Password: "pw"})
	if err != nil {
		t.Fatalf("referrer signup failed: %v", err)
	}

	linked, err := svc.SignUp(context.Background(), ports.SignUpInput{
		Username: "friend", Email: "friend@example.com", Password: "pw",
		ReferralCode: referrer.ReferralCode,
	})
	if err != nil {
		t.Fatalf("referred signup failed: %v", err)
	}
	if linked.ReferredBy == nil || *linked.ReferredBy != referrer.ID {
		t.Fatalf("expected referred_by=%d, got %v", referrer.ID, linked.ReferredBy)
	}
}

func TestAccountService_SignUp_UnknownReferralCodeIgnored(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAccountService(repo)

	user, err := svc.SignUp(context.Background(), ports.SignUpInput{
		Username: "solo", Email: "solo@example.com", Password: "pw",
		ReferralCode: "not-a-real-code",
	})
	if err != nil {
		t.Fatalf("signup with unknown code failed: %v", err)
	}
	if user.ReferredBy != nil {
		t.Fatalf("expected referred_by to stay unset, got %v", *user.ReferredBy)
	}
}

func TestAccountService_LogIn_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAccountService(repo)

	created, err := svc.SignUp(context.Background(), ports.SignUpInput{Username: "carol", Email: "carol@example.com", Password: "s3cret"})
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	user, token, err := svc.LogIn(context.Background(), "carol", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if user.Username != "carol" {
		t.Fatalf("unexpected user: %+v", user)
	}
	if token == "" {
		t.Fatalf("expected bearer token")
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["sub"] != strconv.FormatInt(created.ID, 10) {
		t.Fatalf("expected sub %d, got %v", created.ID, claims["sub"])
	}
}

func TestAccountService_LogIn_FailureIndistinguishable(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAccountService(repo)

	if _, err := svc.SignUp(context.Background(), ports.SignUpInput{Username: "dave", Email: "dave@example.com", Password: "goodpass"}); err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	_, _, badPass := svc.LogIn(context.Background(), "dave", "badpass")
	_, _, noUser := svc.LogIn(context.Background(), "ghost", "whatever")

	if !errors.Is(badPass, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for bad password, got %v", badPass)
	}
	if !errors.Is(noUser, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", noUser)
	}
	if badPass.Error() != noUser.Error() {
		t.Fatalf("login failures must be indistinguishable: %q vs %q", badPass, noUser)
	}
}

func TestAccountService_RequestCreator_TransitionsOnce(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAccountService(repo)

	user, _ := svc.SignUp(context.Background(), ports.SignUpInput{Username: "eve", Email: "eve@example.com", Password: "pw"})

	if err := svc.RequestCreator(context.Background(), user.ID); err != nil {
		t.Fatalf("request creator failed: %v", err)
	}
	got, _ := repo.FindByID(context.Background(), user.ID)
	if got.Role != domain.RoleCreator || got.Approved {
		t.Fatalf("expected unapproved creator, got role=%s approved=%v", got.Role, got.Approved)
	}

	if err := svc.RequestCreator(context.Background(), user.ID); !errors.Is(err, domain.ErrRoleConflict) {
		t.Fatalf("expected ErrRoleConflict on second request, got %v", err)
	}
	after, _ := repo.FindByID(context.Background(), user.ID)
	if after.Role != domain.RoleCreator || after.Approved {
		t.Fatalf("conflicting request must not mutate state: %+v", after)
	}
}

func TestAccountService_RequestCreator_AdminRejected(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAccountService(repo)

	admin, _ := repo.Create(context.Background(), &domain.User{
		Username: "admin", Email: "admin@example.com", Role: domain.RoleAdmin, Approved: true,
	})
	if err := svc.RequestCreator(context.Background(), admin.ID); !errors.Is(err, domain.ErrRoleConflict) {
		t.Fatalf("expected ErrRoleConflict for admin, got %v", err)
	}
}

func TestAccountService_ApproveCreator(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAccountService(repo)

	user, _ := svc.SignUp(context.Background(), ports.SignUpInput{Username: "frank", Email: "frank@example.com", Password: "pw"})
	_ = svc.RequestCreator(context.Background(), user.ID)

	if err := svc.ApproveCreator(context.Background(), user.ID); err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	got, _ := repo.FindByID(context.Background(), user.ID)
	if got.Role != domain.RoleCreator || !got.Approved {
		t.Fatalf("expected approved creator, got %+v", got)
	}
}

// Approval does not check the target's role: approving a plain user flips the
// flag and acts as a reinstate shortcut for previously demoted creators.
func TestAccountService_ApproveCreator_PlainUser(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAccountService(repo)

	user, _ := svc.SignUp(context.Background(), ports.SignUpInput{Username: "gina", Email: "gina@example.com", Password: "pw"})

	if err := svc.ApproveCreator(context.Background(), user.ID); err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	got, _ := repo.FindByID(context.Background(), user.ID)
	if got.Role != domain.RoleUser || !got.Approved {
		t.Fatalf("expected approved=true with role unchanged, got %+v", got)
	}
}

func TestAccountService_ApproveCreator_UnknownTarget(t *testing.T) {
	svc := newTestAccountService(newStubUserRepo())

	if err := svc.ApproveCreator(context.Background(), 999); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAccountService_ListUsers(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAccountService(repo)

	_, _ = svc.SignUp(context.Background(), ports.SignUpInput{Username: "u1", Email: "u1@example.com", Password: "pw"})
	_, _ = svc.SignUp(context.Background(), ports.SignUpInput{Username: "u2", Email: "u2@example.com", Password: "pw"})

	users, err := svc.ListUsers(context.Background())
	if err != nil {
		t.Fatalf("list users failed: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
	for _, u := range users {
		if u.ID == 0 || u.Username == "" {
			t.Fatalf("incomplete projection: %+v", u)
		}
	}
}

func TestEnsureAdmin(t *testing.T) {
	repo := newStubUserRepo()

	if err := EnsureAdmin(context.Background(), repo, "admin@example.com", "pw", zerolog.Nop()); err != nil {
		t.Fatalf("EnsureAdmin failed: %v", err)
	}
	admin, err := repo.FindByUsername(context.Background(), "admin")
	if err != nil {
		t.Fatalf("admin not seeded: %v", err)
	}
	if admin.Role != domain.RoleAdmin || !admin.Approved {
		t.Fatalf("unexpected admin account: %+v", admin)
	}

	// Second call must be a no-op, not a duplicate error.
	if err := EnsureAdmin(context.Background(), repo, "admin@example.com", "pw", zerolog.Nop()); err != nil {
		t.Fatalf("EnsureAdmin second call failed: %v", err)
	}
}
