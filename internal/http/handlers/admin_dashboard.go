package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"pgat/internal/http/middleware"
	"pgat/internal/repositories"
	"pgat/internal/services"
)

func dashboardService(c *gin.Context) services.DashboardService {
	return services.DashboardService{
		ReportRepo: repositories.ReportRepository{},
		RequestID:  middleware.GetRequestID(c),
	}
}

func GetDashboardStats(c *gin.Context) {
	d, err := dashboardService(c).Stats(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusOK, d, "estadísticas del dashboard obtenidas correctamente")
}

func GetRecentActivity(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	days, _ := strconv.Atoi(c.Query("days"))

	items, err := dashboardService(c).Actividad(c.Request.Context(), limit, days)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusOK, items, "actividad reciente obtenida correctamente")
}
