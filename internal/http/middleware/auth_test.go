package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

func firmarToken(t *testing.T, secret string, id int64, tipo string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"user_id": id,
		"id":      id,
		"tipo":    tipo,
		"exp":     time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("no se pudo firmar el token: %v", err)
	}
	return token
}

func routerConAuth(secret string, extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers := append([]gin.HandlerFunc{Auth(secret)}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		p, _ := GetPrincipal(c)
		c.JSON(http.StatusOK, gin.H{"id": p.ID, "tipo": p.Tipo})
	})
	r.GET("/protegido", handlers...)
	return r
}

func TestAuthSinToken(t *testing.T) {
	r := routerConAuth("clave")
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protegido", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestAuthTokenInvalido(t *testing.T) {
	r := routerConAuth("clave")
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protegido", nil)
	req.Header.Set("Authorization", "Bearer "+firmarToken(t, "otra-clave", 3, "admin"))
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestAuthTokenValido(t *testing.T) {
	r := routerConAuth("clave")
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protegido", nil)
	req.Header.Set("Authorization", "Bearer "+firmarToken(t, "clave", 3, "profesor"))
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", w.Code, w.Body.String())
	}
}

func TestRequireRolesCortaTipoNoPermitido(t *testing.T) {
	r := routerConAuth("clave", RequireRoles("admin"))
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protegido", nil)
	req.Header.Set("Authorization", "Bearer "+firmarToken(t, "clave", 3, "estudiante"))
	r.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestRequireRolesDejaPasarAlAdmin(t *testing.T) {
	r := routerConAuth("clave", RequireRoles("admin"))
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protegido", nil)
	req.Header.Set("Authorization", "Bearer "+firmarToken(t, "clave", 1, "admin"))
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", w.Code, w.Body.String())
	}
}

func TestRequestIDConservaElEntrante(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, GetRequestID(c))
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-ID", "req-123")
	r.ServeHTTP(w, req)
	if w.Body.String() != "req-123" {
		t.Fatalf("request id = %q", w.Body.String())
	}
	if w.Header().Get("X-Request-ID") != "req-123" {
		t.Fatalf("response header = %q", w.Header().Get("X-Request-ID"))
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	r.ServeHTTP(w, req)
	if w.Body.String() == "" {
		t.Fatalf("a missing request id should be generated")
	}
}
