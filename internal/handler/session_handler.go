package handler

import (
	"net/http"

	"storefront/internal/middleware"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /session（ログアウト相当：カートを破棄してcookieを消す）
type SessionHandler struct {
	uc     *usecase.CartUsecase
	cookie middleware.CookieOptions
}

// DI
func NewSessionHandler(uc *usecase.CartUsecase, cookie middleware.CookieOptions) *SessionHandler {
	return &SessionHandler{uc: uc, cookie: cookie}
}

func (h *SessionHandler) RegisterRoutes(e *echo.Echo, sessionMW echo.MiddlewareFunc) {
	e.DELETE("/session", h.end, sessionMW)
}

func (h *SessionHandler) end(c echo.Context) error {
	sid, ok := getSessionIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "no session"})
	}

	if err := h.uc.EndSession(c.Request().Context(), sid); err != nil {
		return writeError(c, err)
	}
	middleware.ExpireSessionCookie(c, h.cookie)

	return c.JSON(http.StatusOK, SuccessResponse{Message: "ok"})
}
