package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"pgat/internal/http/middleware"
	"pgat/internal/repositories"
	"pgat/internal/services"
)

func reportsService(c *gin.Context) services.ReportsService {
	return services.ReportsService{
		ReportRepo: repositories.ReportRepository{},
		RequestID:  middleware.GetRequestID(c),
	}
}

func wantsPDF(c *gin.Context) bool {
	return strings.EqualFold(strings.TrimSpace(c.Query("format")), "pdf")
}

func respondReport(c *gin.Context, titulo string, rep services.Report, mensaje string) {
	if !wantsPDF(c) {
		Respond(c, http.StatusOK, rep, mensaje)
		return
	}
	pdf, filename, err := services.BuildReportPDF(titulo, rep)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

func GetUsersReport(c *gin.Context) {
	rep, err := reportsService(c).UsersReport(c.Request.Context(), services.UsersReportFilter{
		Period: strings.TrimSpace(c.Query("period")),
		Tipo:   strings.TrimSpace(c.Query("tipo")),
		Estado: strings.TrimSpace(c.Query("estado")),
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondReport(c, "Reporte de usuarios", rep, "reporte de usuarios generado correctamente")
}

func GetOffersReport(c *gin.Context) {
	rep, err := reportsService(c).OffersReport(c.Request.Context(), strings.TrimSpace(c.Query("period")))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondReport(c, "Reporte de ofertas", rep, "reporte de ofertas generado correctamente")
}

func GetApplicationsReport(c *gin.Context) {
	rep, err := reportsService(c).ApplicationsReport(c.Request.Context(), strings.TrimSpace(c.Query("period")))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondReport(c, "Reporte de postulaciones", rep, "reporte de postulaciones generado correctamente")
}

func GetBenefitsReport(c *gin.Context) {
	rep, err := reportsService(c).BenefitsReport(c.Request.Context(), strings.TrimSpace(c.Query("period")))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondReport(c, "Reporte de beneficios económicos", rep, "reporte de beneficios económicos generado correctamente")
}

func GetActivityReport(c *gin.Context) {
	rep, err := reportsService(c).Activity(c.Request.Context(), strings.TrimSpace(c.Query("period")))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusOK, rep, "reporte de actividad del sistema generado correctamente")
}
