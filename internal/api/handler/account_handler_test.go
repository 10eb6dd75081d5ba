package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/makersmarket/marketplace-api/internal/core/domain"
)

func TestAccountHandler_RequestCreator_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubAccountService{
		requestCreatorFn: func(ctx context.Context, userID int64) error {
			if userID != 7 {
				t.Fatalf("unexpected user id: %d", userID)
			}
			return nil
		},
	}
	h := NewAccountHandler(stub, "")

	req := httptest.NewRequest(http.MethodPost, "/api/request_creator", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user", &domain.User{ID: 7, Role: domain.RoleUser})

	if err := h.RequestCreator(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["message"] != "Request sent for approval" {
		t.Fatalf("unexpected body: %+v", resp)
	}
}

func TestAccountHandler_RequestCreator_Conflict(t *testing.T) {
	e := newTestEcho()
	stub := &stubAccountService{
		requestCreatorFn: func(ctx context.Context, userID int64) error {
			return domain.ErrRoleConflict
		},
	}
	h := NewAccountHandler(stub, "")

	req := httptest.NewRequest(http.MethodPost, "/api/request_creator", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user", &domain.User{ID: 7, Role: domain.RoleCreator})

	if err := h.RequestCreator(c); !errors.Is(err, domain.ErrRoleConflict) {
		t.Fatalf("expected ErrRoleConflict to propagate, got %v", err)
	}
}

func TestAccountHandler_Referral_RequestHost(t *testing.T) {
	e := newTestEcho()
	h := NewAccountHandler(&stubAccountService{}, "")

	req := httptest.NewRequest(http.MethodGet, "/api/referral", nil)
	req.Host = "market.example.com"
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user", &domain.User{ID: 7, ReferralCode: "code-123"})

	if err := h.Referral(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["referral_code"] != "code-123" {
		t.Fatalf("unexpected code: %+v", resp)
	}
	if resp["referral_link"] != "https://market.example.com/signup?ref=code-123" {
		t.Fatalf("unexpected link: %v", resp["referral_link"])
	}
}

func TestAccountHandler_Referral_ConfiguredBaseURL(t *testing.T) {
	e := newTestEcho()
	h := NewAccountHandler(&stubAccountService{}, "https://makersmarket.io")

	req := httptest.NewRequest(http.MethodGet, "/api/referral", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user", &domain.User{ID: 7, ReferralCode: "code-123"})

	if err := h.Referral(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["referral_link"] != "https://makersmarket.io/signup?ref=code-123" {
		t.Fatalf("unexpected link: %v", resp["referral_link"])
	}
}
