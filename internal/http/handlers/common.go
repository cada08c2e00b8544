package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	intdb "pgat/internal/db"
	"pgat/internal/domain"
	"pgat/internal/http/middleware"
)

// Respond envía el sobre estándar {success, data, message}.
func Respond(c *gin.Context, status int, data any, message string) {
	payload := gin.H{
		"success": status < http.StatusBadRequest,
		"message": message,
	}
	if data != nil {
		payload["data"] = data
	}
	c.JSON(status, payload)
}

// RespondError envía el sobre de error con el request_id para trazabilidad.
func RespondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"success":    false,
		"message":    message,
		"request_id": middleware.GetRequestID(c),
	})
}

// BindJSONOrError asegura que el cuerpo exista y sea parseable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil {
		RespondError(c, http.StatusBadRequest, "el cuerpo de la petición está vacío")
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		RespondError(c, http.StatusBadRequest, "payload inválido")
		return false
	}
	return true
}

// ParseIDParam lee el :id de la ruta como entero positivo.
func ParseIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "identificador inválido")
		return 0, false
	}
	return id, true
}

// ParseOptionalID lee un filtro numérico opcional de la query. Un valor
// presente pero no numérico es un error de validación, nunca se ignora.
func ParseOptionalID(c *gin.Context, name string) (int64, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return 0, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ValidationError{Field: name, Msg: "debe ser un número válido"}
	}
	return id, nil
}

// PageFromQuery arma la ventana de paginación desde page y limit.
func PageFromQuery(c *gin.Context) intdb.PageRequest {
	return intdb.ParsePageRequest(c.Query("page"), c.Query("limit"))
}
