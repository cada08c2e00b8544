package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"pgat/internal/domain"
	"pgat/internal/http/middleware"
)

// RespondDomainError traduce la taxonomía de errores de dominio al sobre
// HTTP. Los conflictos de estado responden 400 con el mensaje que nombra el
// estado actual; el detalle de los errores internos queda en bitácora.
func RespondDomainError(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err):
		RespondError(c, http.StatusBadRequest, err.Error())
	case domain.IsNotFound(err):
		RespondError(c, http.StatusNotFound, err.Error())
	case domain.IsConflict(err):
		RespondError(c, http.StatusBadRequest, err.Error())
	default:
		log.Printf("[ERROR] request_id=%s err=%v", middleware.GetRequestID(c), err)
		RespondError(c, http.StatusInternalServerError, "ocurrió un error interno")
	}
}
