package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/taskboard/backend/api/transport"
	authcore "github.com/taskboard/backend/internal/auth"

	"github.com/taskboard/backend/domain"
)

// SubjectKey is the fasthttp user-value under which the authenticated
// identity (the verified token subject) is bound for the request.
const SubjectKey = "auth_subject"

// Authenticate wraps a handler with bearer-token verification. On any failure
// the request is rejected with 401 and the handler never runs; on success the
// verified subject is bound into the request context for the handler.
func Authenticate(codec *authcore.TokenCodec, logger *zap.Logger) func(fasthttp.RequestHandler) fasthttp.RequestHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			tokenString := extractToken(ctx)
			if tokenString == "" {
				reject(ctx)
				return
			}

			subject, err := codec.Verify(tokenString)
			if err != nil {
				logger.Warn("rejected bearer token", zap.Error(err))
				reject(ctx)
				return
			}

			ctx.SetUserValue(SubjectKey, subject)
			next(ctx)
		}
	}
}

// Subject returns the authenticated identity bound by Authenticate, or "".
func Subject(ctx *fasthttp.RequestCtx) string {
	subject, _ := ctx.UserValue(SubjectKey).(string)
	return subject
}

func extractToken(ctx *fasthttp.RequestCtx) string {
	header := string(ctx.Request.Header.Peek("Authorization"))
	if header == "" {
		return ""
	}
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return header
}

func reject(ctx *fasthttp.RequestCtx) {
	ctx.Response.Header.SetContentType("application/json")
	ctx.SetStatusCode(http.StatusUnauthorized)
	body, _ := json.Marshal(transport.NewError(string(domain.ErrCodeUnauthorized), domain.ErrInvalidToken.Message, nil))
	ctx.SetBody(body)
}
