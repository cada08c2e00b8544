package api

import (
	"log"
	stdhttp "net/http"

	"github.com/gin-gonic/gin"

	intconfig "pgat/internal/config"
	"pgat/internal/domain/models"
	h "pgat/internal/http/handlers"
	"pgat/internal/http/middleware"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	h.SetAuthEnv(env)

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS())

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: no se pudieron fijar los proxies de confianza: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"success": false,
			"message": "ruta no encontrada",
			"path":    c.Request.URL.Path,
			"method":  c.Request.Method,
		})
	})

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)

		auth := api.Group("/auth")
		auth.POST("/login", h.Login)
		auth.POST("/logout", h.Logout)

		autenticado := api.Group("")
		autenticado.Use(middleware.Auth(env.JWTSecret))
		{
			ofertas := autenticado.Group("/ofertas")
			ofertas.GET("", h.GetOfertas)
			ofertas.GET("/:id", h.GetOfertaByID)
			ofertas.POST("", middleware.RequireRoles(models.TipoProfesor, models.TipoEscuela, models.TipoAdmin), h.CreateOferta)
			ofertas.PUT("/:id", middleware.RequireRoles(models.TipoProfesor, models.TipoEscuela, models.TipoAdmin), h.UpdateOferta)
			ofertas.DELETE("/:id", middleware.RequireRoles(models.TipoEscuela, models.TipoAdmin), h.DeleteOferta)

			postulaciones := autenticado.Group("/postulaciones")
			postulaciones.GET("", h.GetPostulaciones)
			postulaciones.GET("/:id", h.GetPostulacionByID)
			postulaciones.POST("", h.CreatePostulacion)
			postulaciones.PUT("/:id", h.UpdatePostulacion)
			postulaciones.DELETE("/:id", h.DeletePostulacion)

			evaluaciones := autenticado.Group("/evaluaciones")
			evaluaciones.GET("", h.GetEvaluaciones)
			evaluaciones.GET("/:id", h.GetEvaluacionByID)
			evaluaciones.POST("", h.CreateEvaluacion)

			horas := autenticado.Group("/horas")
			horas.GET("", h.GetRegistrosHoras)
			horas.GET("/:id", h.GetRegistroHorasByID)
			horas.POST("", h.CreateRegistroHoras)
			horas.PUT("/:id", h.UpdateRegistroHoras)
			horas.DELETE("/:id", h.DeleteRegistroHoras)

			beneficios := autenticado.Group("/beneficios")
			beneficios.GET("", h.GetBeneficios)
			beneficios.GET("/:id", h.GetBeneficioByID)
			beneficios.POST("", middleware.RequireRoles(models.TipoEscuela, models.TipoAdmin), h.CreateBeneficio)
			beneficios.PUT("/:id", middleware.RequireRoles(models.TipoEscuela, models.TipoAdmin), h.UpdateBeneficio)
			beneficios.DELETE("/:id", middleware.RequireRoles(models.TipoAdmin), h.DeleteBeneficio)

			proyectos := autenticado.Group("/projects")
			proyectos.GET("", h.GetProyectos)
			proyectos.GET("/:id", h.GetProyectoByID)
			proyectos.POST("", middleware.RequireRoles(models.TipoProfesor, models.TipoEscuela, models.TipoAdmin), h.CreateProyecto)
			proyectos.PUT("/:id", middleware.RequireRoles(models.TipoProfesor, models.TipoEscuela, models.TipoAdmin), h.UpdateProyecto)
			proyectos.DELETE("/:id", middleware.RequireRoles(models.TipoAdmin), h.DeleteProyecto)

			estudiantes := autenticado.Group("/estudiantes")
			estudiantes.GET("", h.GetEstudiantes)
			estudiantes.GET("/:id", h.GetEstudianteByID)
			estudiantes.POST("", middleware.RequireRoles(models.TipoAdmin), h.CreateEstudiante)
			estudiantes.PUT("/:id", h.UpdateEstudiante)
			estudiantes.DELETE("/:id", middleware.RequireRoles(models.TipoAdmin), h.DeleteEstudiante)

			profesores := autenticado.Group("/profesores")
			profesores.GET("", h.GetProfesores)
			profesores.GET("/:id", h.GetProfesorByID)
			profesores.POST("", middleware.RequireRoles(models.TipoAdmin), h.CreateProfesor)
			profesores.PUT("/:id", h.UpdateProfesor)
			profesores.DELETE("/:id", middleware.RequireRoles(models.TipoAdmin), h.DeleteProfesor)

			usuarios := autenticado.Group("/usuarios")
			usuarios.GET("", middleware.RequireRoles(models.TipoAdmin), h.GetUsuarios)
			usuarios.GET("/:id", h.GetUsuarioByID)
			usuarios.POST("", middleware.RequireRoles(models.TipoAdmin), h.CreateUsuario)
			usuarios.PUT("/:id", middleware.RequireRoles(models.TipoAdmin), h.UpdateUsuario)
			usuarios.DELETE("/:id", middleware.RequireRoles(models.TipoAdmin), h.DeleteUsuario)
		}

		admin := api.Group("/admin")
		admin.Use(middleware.Auth(env.JWTSecret), middleware.RequireRoles(models.TipoAdmin))
		{
			admin.GET("/dashboard/stats", h.GetDashboardStats)
			admin.GET("/dashboard/activity", h.GetRecentActivity)

			admin.GET("/users", h.GetUsuarios)
			admin.GET("/users/:id", h.GetUsuarioByID)
			admin.POST("/users", h.CreateUsuario)
			admin.PUT("/users/:id", h.UpdateUsuario)
			admin.PATCH("/users/:id/status", h.ChangeUsuarioStatus)
			admin.DELETE("/users/:id", h.DeleteUsuario)

			admin.GET("/content/pending", h.GetPendingContent)
			admin.GET("/content", h.GetAllContent)
			admin.GET("/content/:id", h.GetContentByID)
			admin.PATCH("/content/:id/approve", h.ApproveContent)
			admin.PATCH("/content/:id/reject", h.RejectContent)

			admin.GET("/reports/users", h.GetUsersReport)
			admin.GET("/reports/offers", h.GetOffersReport)
			admin.GET("/reports/applications", h.GetApplicationsReport)
			admin.GET("/reports/benefits", h.GetBenefitsReport)
			admin.GET("/reports/activity", h.GetActivityReport)

			admin.GET("/profile", h.GetProfile)
			admin.PUT("/profile", h.UpdateProfile)
			admin.PUT("/profile/password", h.ChangeProfilePassword)
		}
	}

	return r
}
