package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pgat/internal/config"
)

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "backend PGAT-TEC en ejecución"})
}

func DBCheck(c *gin.Context) {
	if config.DB == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "la base de datos no está conectada"})
		return
	}
	var count int
	err := config.DB.QueryRowContext(c.Request.Context(), "SELECT COUNT(*) FROM usuarios").Scan(&count)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "fallo al consultar la base de datos"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "conexión a la base de datos OK", "usuarios_en_db": count})
}
