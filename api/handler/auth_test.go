package handler

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	"github.com/taskboard/backend/domain"
	authcore "github.com/taskboard/backend/internal/auth"
	authUC "github.com/taskboard/backend/usecase/auth"
)

type stubUsers struct {
	byEmail map[string]*domain.User
}

func (s *stubUsers) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	for _, u := range s.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (s *stubUsers) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if u, ok := s.byEmail[email]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (s *stubUsers) List(ctx context.Context) ([]domain.User, error) { return nil, nil }
func (s *stubUsers) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	return u, nil
}
func (s *stubUsers) Update(ctx context.Context, u *domain.User) error { return nil }
func (s *stubUsers) Delete(ctx context.Context, id int64) error      { return nil }

func newLoginHandler(t *testing.T) (*AuthHandler, *authcore.TokenCodec) {
	t.Helper()
	hasher := authcore.NewPasswordHasher()
	hash, err := hasher.Hash("s3cret")
	require.NoError(t, err)

	users := &stubUsers{byEmail: map[string]*domain.User{
		"a@x.com": {ID: 1, Email: "a@x.com", PasswordHash: hash},
	}}
	codec := authcore.NewTokenCodec("test-secret", "taskboard")
	uc := authUC.New(users, codec, hasher, nil, time.Hour, nil)
	return NewAuthHandler(uc, nil, nil), codec
}

func postLogin(h *AuthHandler, body string) *fasthttp.RequestCtx {
	ctx := &fasthttp.RequestCtx{}
	ctx.Request.SetBodyString(body)
	h.Login(ctx)
	return ctx
}

func TestLogin_ReturnsRawToken(t *testing.T) {
	h, codec := newLoginHandler(t)

	ctx := postLogin(h, `{"email":"a@x.com","password":"s3cret"}`)

	assert.Equal(t, http.StatusOK, ctx.Response.StatusCode())
	// The body is the bare token, verifiable with the same codec.
	subject, err := codec.Verify(string(ctx.Response.Body()))
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", subject)
}

func TestLogin_UniformUnauthorized(t *testing.T) {
	h, _ := newLoginHandler(t)

	cases := map[string]string{
		"unknown email":  `{"email":"nobody@x.com","password":"s3cret"}`,
		"wrong password": `{"email":"a@x.com","password":"wrong"}`,
		"blank fields":   `{"email":"","password":""}`,
		"malformed body": `{not json`,
	}

	var bodies []string
	for name, body := range cases {
		ctx := postLogin(h, body)
		assert.Equal(t, http.StatusUnauthorized, ctx.Response.StatusCode(), name)
		bodies = append(bodies, string(ctx.Response.Body()))
	}
	// Every failure mode produces the same response body.
	for _, b := range bodies[1:] {
		assert.Equal(t, bodies[0], b)
	}
}
