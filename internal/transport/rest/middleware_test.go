package rest

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"glow/internal/domain"
)

func newMiddlewareContext(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/admin/bookings", nil)
	return c, w
}

func TestAdminMiddleware(t *testing.T) {
	h := &Handler{}

	t.Run("админ проходит", func(t *testing.T) {
		c, _ := newMiddlewareContext(t)
		c.Set(userRoleCtx, domain.UserRoleAdmin)

		h.adminMiddleware()(c)

		if c.IsAborted() {
			t.Error("запрос администратора не должен прерываться")
		}
	})

	t.Run("клиент получает 403", func(t *testing.T) {
		c, w := newMiddlewareContext(t)
		c.Set(userRoleCtx, domain.UserRoleClient)

		h.adminMiddleware()(c)

		if !c.IsAborted() {
			t.Error("запрос без роли администратора должен прерываться")
		}
		if w.Code != http.StatusForbidden {
			t.Errorf("статус %d, ожидался %d", w.Code, http.StatusForbidden)
		}
	})

	t.Run("мастер получает 403", func(t *testing.T) {
		c, w := newMiddlewareContext(t)
		c.Set(userRoleCtx, domain.UserRoleProvider)

		h.adminMiddleware()(c)

		if !c.IsAborted() {
			t.Error("запрос без роли администратора должен прерываться")
		}
		if w.Code != http.StatusForbidden {
			t.Errorf("статус %d, ожидался %d", w.Code, http.StatusForbidden)
		}
	})

	t.Run("без авторизации 401", func(t *testing.T) {
		c, w := newMiddlewareContext(t)

		h.adminMiddleware()(c)

		if !c.IsAborted() {
			t.Error("неавторизованный запрос должен прерываться")
		}
		if w.Code != http.StatusUnauthorized {
			t.Errorf("статус %d, ожидался %d", w.Code, http.StatusUnauthorized)
		}
	})
}
