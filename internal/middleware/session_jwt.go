package middleware

import (
	"net/http"
	"strings"
	"time"

	"storefront/internal/session"

	"github.com/labstack/echo/v4"
)

const (
	CtxSessionIDKey = "session_id" // string

	SessionCookieName = "cart_session"
)

// Cookie属性
type CookieOptions struct {
	Secure bool
	Domain string
}

// SessionJWT はセッショントークンを検証して session_id を context に入れる。
// トークンが無い/不正なら新しいセッションを発行して cookie にセットする。
func SessionJWT(issuer *session.TokenIssuer, opts CookieOptions) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			//cookie優先、無ければBearer
			if raw := rawSessionToken(c); raw != "" {
				if sid, err := issuer.Parse(raw); err == nil {
					c.Set(CtxSessionIDKey, sid)
					return next(c)
				}
			}

			//新規発行
			sid, token, expiresAt, err := issuer.Issue(time.Now())
			if err != nil {
				return c.JSON(http.StatusInternalServerError, errorJSON("session error"))
			}
			c.SetCookie(sessionCookie(token, expiresAt, opts))

			c.Set(CtxSessionIDKey, sid)
			return next(c)
		}
	}
}

// セッション終了時にcookieを消す（発行時と同じ属性）
func ExpireSessionCookie(c echo.Context, opts CookieOptions) {
	ck := sessionCookie("", time.Unix(0, 0), opts)
	ck.MaxAge = -1
	c.SetCookie(ck)
}

func sessionCookie(value string, expires time.Time, opts CookieOptions) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    value,
		Path:     "/",
		Domain:   opts.Domain,
		Expires:  expires,
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}

func rawSessionToken(c echo.Context) string {
	if ck, err := c.Cookie(SessionCookieName); err == nil && ck.Value != "" {
		return ck.Value
	}

	authz := c.Request().Header.Get("Authorization")
	parts := strings.SplitN(authz, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

type errorResponse struct {
	Error string `json:"error"`
}

func errorJSON(msg string) errorResponse {
	return errorResponse{Error: msg}
}
