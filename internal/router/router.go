package router

import (
	"time"

	"github.com/JoseMiguel2005of/gestion-de-un-dojo-3--sub001/internal/config"
	"github.com/JoseMiguel2005of/gestion-de-un-dojo-3--sub001/internal/handler"
	"github.com/JoseMiguel2005of/gestion-de-un-dojo-3--sub001/internal/middleware"
	"github.com/JoseMiguel2005of/gestion-de-un-dojo-3--sub001/internal/repository"
	"github.com/JoseMiguel2005of/gestion-de-un-dojo-3--sub001/internal/service"
	"github.com/JoseMiguel2005of/gestion-de-un-dojo-3--sub001/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	bloqueoRepo := repository.NewBloqueoRepository(db)
	alumnoRepo := repository.NewAlumnoRepository(db)
	categoriaRepo := repository.NewCategoriaRepository(db)
	representanteRepo := repository.NewRepresentanteRepository(db)
	pagoRepo := repository.NewPagoRepository(db)
	horarioRepo := repository.NewHorarioRepository(db)
	evaluacionRepo := repository.NewEvaluacionRepository(db)
	configuracionRepo := repository.NewConfiguracionRepository(db)

	// Worker dispatcher — injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	// ── Services ─────────────────────────────────────────────────────────────
	bloqueoSvc := service.NewBloqueoService(bloqueoRepo, dispatcher, cfg)
	authSvc := service.NewAuthService(usuarioRepo, bloqueoSvc, cfg)
	alumnoSvc := service.NewAlumnoService(alumnoRepo, categoriaRepo, representanteRepo)
	categoriaSvc := service.NewCategoriaService(categoriaRepo)
	representanteSvc := service.NewRepresentanteService(representanteRepo)
	pagoSvc := service.NewPagoService(pagoRepo, alumnoRepo, dispatcher)
	horarioSvc := service.NewHorarioService(horarioRepo, rdb)
	evaluacionSvc := service.NewEvaluacionService(evaluacionRepo, alumnoRepo, categoriaRepo, service.DefaultPreparacionConfig())
	configuracionSvc := service.NewConfiguracionService(configuracionRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usuariosH := handler.NewUsuariosHandler(authSvc)
	alumnosH := handler.NewAlumnosHandler(alumnoSvc)
	categoriasH := handler.NewCategoriasHandler(categoriaSvc)
	representantesH := handler.NewRepresentantesHandler(representanteSvc)
	pagosH := handler.NewPagosHandler(pagoSvc, alumnoSvc)
	horariosH := handler.NewHorariosHandler(horarioSvc, rdb, cfg.HorarioCacheTTLMin)
	evaluacionesH := handler.NewEvaluacionesHandler(evaluacionSvc)
	configuracionH := handler.NewConfiguracionHandler(configuracionSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public) — incluye el flujo de desbloqueo por codigo, que debe ser
	// accesible sin token porque la cuenta esta bloqueada.
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
		auth.POST("/desbloquear", middleware.LoginRateLimiter(), authH.VerificarCodigo)
		auth.POST("/desbloquear/reenviar", middleware.LoginRateLimiter(), authH.ReenviarCodigo)
	}

	// Public schedule listing — no auth required
	r.GET("/v1/horarios", horariosH.ListarPublico)

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	staff := []string{"administrador", "instructor", "recepcionista"}
	v1 := r.Group("/v1", jwtMW)
	{
		// Alumnos — staff manage; recepcion handles day-to-day registration
		v1.GET("/alumnos", middleware.RequireRole(staff...), alumnosH.Listar)
		v1.GET("/alumnos/:id", middleware.RequireRole(staff...), alumnosH.Obtener)
		v1.POST("/alumnos", middleware.RequireRole("administrador", "recepcionista"), alumnosH.Crear)
		v1.PUT("/alumnos/:id", middleware.RequireRole("administrador", "recepcionista"), alumnosH.Actualizar)
		v1.DELETE("/alumnos/:id", middleware.RequireRole("administrador"), alumnosH.Desactivar)
		v1.PATCH("/alumnos/:id/reactivar", middleware.RequireRole("administrador"), alumnosH.Reactivar)

		// Sub-resources of alumnos
		v1.GET("/alumnos/:id/pagos", middleware.RequireRole(staff...), pagosH.Historial)
		v1.GET("/alumnos/:id/evaluaciones", middleware.RequireRole("administrador", "instructor"), evaluacionesH.ListarPorAlumno)
		v1.GET("/alumnos/:id/preparacion", middleware.RequireRole("administrador", "instructor"), evaluacionesH.EstimarPreparacion)

		// Pagos — rol "usuario" may register and consult its own payments
		v1.POST("/pagos", middleware.RequireRole("administrador", "recepcionista", "usuario"), pagosH.Registrar)
		v1.GET("/pagos", middleware.RequireRole(staff...), pagosH.Listar)
		v1.GET("/pagos/:id", middleware.RequireRole(staff...), pagosH.Obtener)
		v1.POST("/pagos/:id/confirmar", middleware.RequireRole("administrador", "recepcionista"), pagosH.Confirmar)
		v1.GET("/mis-pagos", middleware.RequireRole("usuario"), pagosH.MiHistorial)

		// Representantes
		rep := v1.Group("/representantes", middleware.RequireRole("administrador", "recepcionista"))
		{
			rep.POST("", representantesH.Crear)
			rep.GET("", representantesH.Listar)
			rep.GET("/:id", representantesH.Obtener)
			rep.PUT("/:id", representantesH.Actualizar)
			rep.DELETE("/:id", representantesH.Eliminar)
		}

		// Categorias — todos los autenticados leen, administrador escribe
		v1.GET("/categorias", categoriasH.Listar)
		categorias := v1.Group("/categorias", middleware.RequireRole("administrador"))
		{
			categorias.POST("", categoriasH.Crear)
			categorias.PUT("/:id", categoriasH.Actualizar)
			categorias.DELETE("/:id", categoriasH.Desactivar)
		}

		// Horarios — write operations invalidate the public cache
		horarios := v1.Group("/horarios", middleware.RequireRole("administrador", "instructor"))
		{
			horarios.POST("", horariosH.Crear)
			horarios.PUT("/:id", horariosH.Actualizar)
			horarios.DELETE("/:id", horariosH.Desactivar)
		}

		// Evaluaciones de cinturon
		eval := v1.Group("/evaluaciones", middleware.RequireRole("administrador", "instructor"))
		{
			eval.POST("", evaluacionesH.Crear)
			eval.GET("/pendientes", evaluacionesH.ListarPendientes)
			eval.POST("/:id/resultado", evaluacionesH.RegistrarResultado)
		}

		// Usuarios y desbloqueo manual — administrador only
		usuarios := v1.Group("/usuarios", middleware.RequireRole("administrador"))
		{
			usuarios.POST("", usuariosH.Crear)
			usuarios.GET("", usuariosH.Listar)
			usuarios.PUT("/:id", usuariosH.Actualizar)
			usuarios.DELETE("/:id", usuariosH.Desactivar)
			usuarios.PATCH("/:id/reactivar", usuariosH.Reactivar)
			usuarios.POST("/:id/desbloquear", usuariosH.Desbloquear)
		}

		// Configuracion del sistema
		v1.GET("/configuracion", middleware.RequireRole(staff...), configuracionH.Listar)
		v1.GET("/configuracion/:clave", middleware.RequireRole(staff...), configuracionH.Obtener)
		v1.PUT("/configuracion", middleware.RequireRole("administrador"), configuracionH.Actualizar)
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
