package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"weshow/internal/auth"
	"weshow/internal/domain/studio"
	apperrors "weshow/pkg/errors"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const testJWTSecret = "k9J2mQ8xR4vB7nC1pW5tY0aZ3dF6hL9s"

type fakeStudioRepo struct {
	byID map[uuid.UUID]*studio.Studio
}

func newFakeStudioRepo() *fakeStudioRepo {
	return &fakeStudioRepo{byID: make(map[uuid.UUID]*studio.Studio)}
}

func (f *fakeStudioRepo) Create(ctx context.Context, input studio.CreateStudioInput) (*studio.Studio, error) {
	for _, s := range f.byID {
		if s.Email == input.Email {
			return nil, apperrors.Conflict("a studio with this email already exists")
		}
	}

	now := time.Now()
	s := &studio.Studio{
		ID:           uuid.New(),
		Email:        strings.ToLower(input.Email),
		PasswordHash: input.PasswordHash,
		Name:         input.Name,
		Phone:        input.Phone,
		Website:      input.Website,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	f.byID[s.ID] = s

	copied := *s
	return &copied, nil
}

func (f *fakeStudioRepo) GetByID(ctx context.Context, id uuid.UUID) (*studio.Studio, error) {
	s, ok := f.byID[id]
	if !ok {
		return nil, apperrors.NotFound("studio not found")
	}
	copied := *s
	return &copied, nil
}

func (f *fakeStudioRepo) GetByEmail(ctx context.Context, email string) (*studio.Studio, error) {
	for _, s := range f.byID {
		if s.Email == strings.ToLower(email) {
			copied := *s
			return &copied, nil
		}
	}
	return nil, apperrors.NotFound("studio not found")
}

func (f *fakeStudioRepo) List(ctx context.Context) ([]*studio.Studio, error) {
	var studios []*studio.Studio
	for _, s := range f.byID {
		copied := *s
		studios = append(studios, &copied)
	}
	return studios, nil
}

func (f *fakeStudioRepo) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	s, ok := f.byID[id]
	if !ok {
		return apperrors.NotFound("studio not found")
	}
	s.Active = active
	return nil
}

func (f *fakeStudioRepo) Update(ctx context.Context, id uuid.UUID, input studio.UpdateStudioInput) error {
	s, ok := f.byID[id]
	if !ok {
		return apperrors.NotFound("studio not found")
	}
	if input.Name != nil {
		s.Name = *input.Name
	}
	if input.LogoURL != nil {
		s.LogoURL = *input.LogoURL
	}
	if input.Phone != nil {
		s.Phone = *input.Phone
	}
	if input.Website != nil {
		s.Website = *input.Website
	}
	s.UpdatedAt = time.Now()
	return nil
}

type fakeAdminRepo struct {
	byEmail map[string]*studio.MasterAdmin
}

func (f *fakeAdminRepo) GetByEmail(ctx context.Context, email string) (*studio.MasterAdmin, error) {
	a, ok := f.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, apperrors.NotFound("master admin not found")
	}
	copied := *a
	return &copied, nil
}

func (f *fakeAdminRepo) GetByID(ctx context.Context, id uuid.UUID) (*studio.MasterAdmin, error) {
	for _, a := range f.byEmail {
		if a.ID == id {
			copied := *a
			return &copied, nil
		}
	}
	return nil, apperrors.NotFound("master admin not found")
}

func newTestTokens() *auth.TokenService {
	return auth.NewTokenService(testJWTSecret, 7*24*time.Hour, 24*time.Hour)
}

// newJSONContext builds an echo context carrying a JSON body, the way every
// API request reaches a handler after the gateway has run.
func newJSONContext(t *testing.T, e *echo.Echo, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func authenticate(c echo.Context, studioID uuid.UUID) {
	c.Set(auth.ContextKeyStudioID, studioID)
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()

	if err := json.Unmarshal(rec.Body.Bytes(), dst); err != nil {
		t.Fatalf("failed to decode response body %q: %v", rec.Body.String(), err)
	}
}

func findCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	res := rec.Result()
	defer res.Body.Close()

	for _, cookie := range res.Cookies() {
		if cookie.Name == name {
			return cookie
		}
	}

	return nil
}
