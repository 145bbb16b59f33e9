package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/placementdrive/listing-server-go/internal/model"
	"github.com/placementdrive/listing-server-go/internal/service"
	"github.com/placementdrive/listing-server-go/internal/token"
	"github.com/placementdrive/listing-server-go/internal/util"
)

type mockAdminRepo struct {
	mock.Mock
}

func (m *mockAdminRepo) FindByUsername(ctx context.Context, username string) (*model.AdminAccount, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AdminAccount), args.Error(1)
}

func (m *mockAdminRepo) Create(ctx context.Context, params model.CreateAdminParams) (*model.AdminAccount, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AdminAccount), args.Error(1)
}

func (m *mockAdminRepo) UpdateSessionToken(ctx context.Context, username, tok string, expiry time.Time) error {
	args := m.Called(ctx, username, tok, expiry)
	return args.Error(0)
}

func (m *mockAdminRepo) ClearExpiredTokens(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func testIssuer(t *testing.T) *token.Issuer {
	t.Helper()
	issuer, err := token.NewIssuer("0123456789abcdef0123456789abcdef", "HS256")
	require.NoError(t, err)
	return issuer
}

func postJSON(t *testing.T, handler http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestCreateAccountEndpoint(t *testing.T) {
	issuer := testIssuer(t)

	t.Run("creates an account and echoes the username", func(t *testing.T) {
		repo := new(mockAdminRepo)
		repo.On("Create", mock.Anything, mock.MatchedBy(func(params model.CreateAdminParams) bool {
			return params.Username == "alice" && util.CheckPassword("pw1", params.PasswordHash)
		})).Return(&model.AdminAccount{ID: 1, Username: "alice"}, nil)

		h := NewAuthHandler(service.NewAuthService(repo, issuer, time.Hour))
		rec := postJSON(t, h.Routes(), "/admins", map[string]string{"username": "alice", "password": "pw1"})

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Body.String(), "alice created")
		repo.AssertExpectations(t)
	})

	t.Run("rejects missing fields", func(t *testing.T) {
		h := NewAuthHandler(service.NewAuthService(new(mockAdminRepo), issuer, time.Hour))

		rec := postJSON(t, h.Routes(), "/admins", map[string]string{"username": "alice"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		rec = postJSON(t, h.Routes(), "/admins", map[string]string{"password": "pw1"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("store failure maps to 500", func(t *testing.T) {
		repo := new(mockAdminRepo)
		repo.On("Create", mock.Anything, mock.Anything).Return(nil, errors.New("write rejected"))

		h := NewAuthHandler(service.NewAuthService(repo, issuer, time.Hour))
		rec := postJSON(t, h.Routes(), "/admins", map[string]string{"username": "alice", "password": "pw1"})

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestLoginEndpoint(t *testing.T) {
	issuer := testIssuer(t)

	hashed := func(t *testing.T, password string) string {
		t.Helper()
		h, err := util.HashPassword(password)
		require.NoError(t, err)
		return h
	}

	t.Run("returns a verifiable token on success", func(t *testing.T) {
		repo := new(mockAdminRepo)
		repo.On("FindByUsername", mock.Anything, "alice").
			Return(&model.AdminAccount{ID: 1, Username: "alice", PasswordHash: hashed(t, "pw1")}, nil)
		repo.On("UpdateSessionToken", mock.Anything, "alice", mock.Anything, mock.Anything).Return(nil)

		h := NewAuthHandler(service.NewAuthService(repo, issuer, time.Hour))
		rec := postJSON(t, h.Routes(), "/auth", map[string]string{"username": "alice", "password": "pw1"})

		require.Equal(t, http.StatusOK, rec.Code)

		var resp map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		claims, err := issuer.Verify(resp["token"])
		require.NoError(t, err)
		assert.Equal(t, "alice", claims.Subject)
	})

	t.Run("wrong password and unknown username return identical status", func(t *testing.T) {
		repo := new(mockAdminRepo)
		repo.On("FindByUsername", mock.Anything, "alice").
			Return(&model.AdminAccount{ID: 1, Username: "alice", PasswordHash: hashed(t, "pw1")}, nil)
		repo.On("FindByUsername", mock.Anything, "nobody").Return(nil, nil)

		h := NewAuthHandler(service.NewAuthService(repo, issuer, time.Hour))

		wrongPw := postJSON(t, h.Routes(), "/auth", map[string]string{"username": "alice", "password": "bad"})
		unknown := postJSON(t, h.Routes(), "/auth", map[string]string{"username": "nobody", "password": "bad"})

		assert.Equal(t, http.StatusUnauthorized, wrongPw.Code)
		assert.Equal(t, http.StatusUnauthorized, unknown.Code)
		assert.Equal(t, wrongPw.Body.String(), unknown.Body.String())
	})

	t.Run("token persistence failure maps to 500", func(t *testing.T) {
		repo := new(mockAdminRepo)
		repo.On("FindByUsername", mock.Anything, "alice").
			Return(&model.AdminAccount{ID: 1, Username: "alice", PasswordHash: hashed(t, "pw1")}, nil)
		repo.On("UpdateSessionToken", mock.Anything, "alice", mock.Anything, mock.Anything).
			Return(errors.New("write rejected"))

		h := NewAuthHandler(service.NewAuthService(repo, issuer, time.Hour))
		rec := postJSON(t, h.Routes(), "/auth", map[string]string{"username": "alice", "password": "pw1"})

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("rejects malformed body", func(t *testing.T) {
		h := NewAuthHandler(service.NewAuthService(new(mockAdminRepo), issuer, time.Hour))

		req := httptest.NewRequest(http.MethodPost, "/auth", bytes.NewReader([]byte("{not json")))
		rec := httptest.NewRecorder()
		h.Routes().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
