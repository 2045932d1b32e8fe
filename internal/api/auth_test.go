package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sahay-labs/sahay/internal/models"
	"github.com/sahay-labs/sahay/internal/repository"
	"go.uber.org/zap"
)

type stubAccountRepo struct {
	existing  *models.Account
	createErr error
}

func (s *stubAccountRepo) Create(_ context.Context, email, name, passwordHash string) (*models.Account, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	return &models.Account{
		ID:           uuid.New(),
		Email:        email,
		Name:         name,
		PasswordHash: passwordHash,
	}, nil
}

func (s *stubAccountRepo) GetByEmail(_ context.Context, _ string) (*models.Account, error) {
	return s.existing, nil
}

func (s *stubAccountRepo) GetByID(_ context.Context, _ uuid.UUID) (*models.Account, error) {
	return nil, nil
}

func (s *stubAccountRepo) Count(_ context.Context) (int, error) {
	return 0, nil
}

func performSignup(t *testing.T, accounts repository.AccountRepository) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	h := NewAuthHandler(accounts, "test-secret", zap.NewNop())
	r := gin.New()
	r.POST("/v1/auth/signup", h.Signup)

	body, _ := json.Marshal(map[string]string{
		"email":    "arjun@example.com",
		"password": "long-enough-pw",
		"name":     "Arjun",
	})
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/signup", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSignupIssuesToken(t *testing.T) {
	w := performSignup(t, &stubAccountRepo{})

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", w.Code, w.Body.String())
	}
	var resp authResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Token == "" || resp.Name != "Arjun" {
		t.Fatalf("response = %+v, want a token and the display name", resp)
	}
}

func TestSignupDuplicateEmailPreCheck(t *testing.T) {
	repo := &stubAccountRepo{existing: &models.Account{ID: uuid.New(), Email: "arjun@example.com"}}

	if w := performSignup(t, repo); w.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409 for a registered email", w.Code)
	}
}

// Two concurrent signups can both pass the pre-check; the losing insert
// must come back as the same 409, not a retryable 503.
func TestSignupDuplicateEmailRace(t *testing.T) {
	repo := &stubAccountRepo{createErr: repository.ErrDuplicateEmail}

	w := performSignup(t, repo)
	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409 when the insert loses the race", w.Code)
	}
	if !bytes.Contains(w.Body.Bytes(), []byte("email already registered")) {
		t.Fatalf("body = %s, want the duplicate-email message", w.Body.String())
	}
}
