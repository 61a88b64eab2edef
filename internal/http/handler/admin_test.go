package handler

import (
	"context"
	"net/http"
	"testing"
	"time"

	"weshow/internal/auth"
	"weshow/internal/domain/studio"
	"weshow/pkg/password"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAdminFixture(t *testing.T) (*AdminHandler, *fakeStudioRepo) {
	t.Helper()

	hash, err := password.Hash("operator-pass-1")
	require.NoError(t, err)

	admins := &fakeAdminRepo{byEmail: map[string]*studio.MasterAdmin{
		"ops@weshow.app": {
			ID:           uuid.New(),
			Email:        "ops@weshow.app",
			PasswordHash: hash,
			CreatedAt:    time.Now(),
		},
	}}
	studios := newFakeStudioRepo()

	return NewAdminHandler(admins, studios, newTestTokens(), false), studios
}

func TestAdminLoginSetsAdminCookie(t *testing.T) {
	e := echo.New()
	h, _ := newAdminFixture(t)

	c, rec := newJSONContext(t, e, http.MethodPost, "/api/master-admin/login",
		`{"email":"ops@weshow.app","password":"operator-pass-1"}`)

	require.NoError(t, h.Login(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp AdminLoginResponse
	decodeBody(t, rec, &resp)
	require.NotEmpty(t, resp.Token)

	claims, err := newTestTokens().VerifyAdminToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, studio.RoleMasterAdmin, claims.Role)

	cookie := findCookie(rec, auth.AdminCookieName)
	require.NotNil(t, cookie)
	assert.Equal(t, resp.Token, cookie.Value)
}

func TestAdminLoginWrongPassword(t *testing.T) {
	e := echo.New()
	h, _ := newAdminFixture(t)

	c, rec := newJSONContext(t, e, http.MethodPost, "/api/master-admin/login",
		`{"email":"ops@weshow.app","password":"wrong-pass-11"}`)

	require.NoError(t, h.Login(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSetStudioActiveTogglesGate(t *testing.T) {
	e := echo.New()
	h, studios := newAdminFixture(t)

	s, err := studios.Create(context.Background(), studio.CreateStudioInput{
		Email:        "tenant@atelier.studio",
		PasswordHash: "$2a$12$irrelevant",
		Name:         "Atelier",
	})
	require.NoError(t, err)
	require.True(t, s.Active)

	c, rec := newJSONContext(t, e, http.MethodPatch, "/api/master-admin/studios/x/active", `{"active":false}`)
	c.SetParamNames("id")
	c.SetParamValues(s.ID.String())

	require.NoError(t, h.SetStudioActive(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp StudioResponse
	decodeBody(t, rec, &resp)
	assert.False(t, resp.Active)

	updated, err := studios.GetByID(context.Background(), s.ID)
	require.NoError(t, err)
	assert.False(t, updated.Active)
}

func TestSetStudioActiveUnknownID(t *testing.T) {
	e := echo.New()
	h, _ := newAdminFixture(t)

	c, rec := newJSONContext(t, e, http.MethodPatch, "/api/master-admin/studios/x/active", `{"active":true}`)
	c.SetParamNames("id")
	c.SetParamValues(uuid.NewString())

	require.NoError(t, h.SetStudioActive(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
