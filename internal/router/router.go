package router

import (
	"context"
	"time"

	"jerosmotos/internal/config"
	"jerosmotos/internal/handler"
	"jerosmotos/internal/infra"
	"jerosmotos/internal/middleware"
	"jerosmotos/internal/model"
	"jerosmotos/internal/repository"
	"jerosmotos/internal/service"
	"jerosmotos/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis.
// rdb may be nil, in which case receipts are not queued. ctx bounds the
// background purge of the rate limiters.
func New(ctx context.Context, cfg *config.Config, db *gorm.DB, rdb *redis.Client, smtpCB *infra.CircuitBreaker) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	apiLimiter := middleware.NewLimiter(1000, time.Minute)
	loginLimiter := middleware.NewLimiter(5, time.Minute)
	apiLimiter.StartPurge(ctx, 5*time.Minute)
	loginLimiter.StartPurge(ctx, 5*time.Minute)

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS(cfg.AllowedOrigins()))
	r.Use(middleware.ErrorHandler())
	r.Use(apiLimiter.Middleware("Demasiadas solicitudes. Intente de nuevo más tarde."))

	// ── Infrastructure ───────────────────────────────────────────────────────
	// Typed nils must not leak into interfaces.
	var (
		queue   redis.Cmdable
		recibos service.ReciboDispatcher
	)
	if rdb != nil {
		queue = rdb
		recibos = worker.NewDispatcher(rdb)
	}
	loc := cfg.Location()

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	sedeRepo := repository.NewSedeRepository(db)
	vehiculoRepo := repository.NewVehiculoRepository(db)
	articuloRepo := repository.NewArticuloRepository(db)
	mantenimientoRepo := repository.NewMantenimientoRepository(db)
	transaccionRepo := repository.NewTransaccionRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, cfg)
	sedeSvc := service.NewSedeService(sedeRepo)
	vehiculoSvc := service.NewVehiculoService(vehiculoRepo, sedeRepo)
	articuloSvc := service.NewArticuloService(articuloRepo, sedeRepo, loc, nil)
	mantenimientoSvc := service.NewMantenimientoService(mantenimientoRepo, vehiculoRepo)
	empenoSvc := service.NewEmpenoService(vehiculoRepo, articuloRepo, transaccionRepo, recibos, loc, nil)
	transaccionSvc := service.NewTransaccionService(transaccionRepo, vehiculoRepo, articuloRepo, recibos, loc, nil)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usuariosH := handler.NewUsuariosHandler(authSvc)
	sedesH := handler.NewSedesHandler(sedeSvc)
	vehiculosH := handler.NewVehiculosHandler(vehiculoSvc)
	articulosH := handler.NewArticulosHandler(articuloSvc)
	mantenimientosH := handler.NewMantenimientosHandler(mantenimientoSvc)
	empenoVehiculoH := handler.NewEmpenosHandler(empenoSvc, model.ClaseVehiculo)
	empenoArticuloH := handler.NewEmpenosHandler(empenoSvc, model.ClaseArticulo)
	transaccionesH := handler.NewTransaccionesHandler(transaccionSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/ping", handler.Ping)
	r.GET("/health", handler.Health(db, queue, smtpCB))

	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", loginLimiter.Middleware("Demasiados intentos de login. Intente de nuevo en un minuto."), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes: every authenticated role unless stated otherwise.
	admin := middleware.RequireRole(model.RolAdministrador)
	v1 := r.Group("/v1", middleware.JWTAuth(cfg.JWTSecret))
	{
		v1.GET("/usuarios/me", usuariosH.Me)
		usuarios := v1.Group("/usuarios", admin)
		{
			usuarios.POST("", usuariosH.Crear)
			usuarios.GET("", usuariosH.Listar)
			usuarios.PUT("/:id", usuariosH.Actualizar)
			usuarios.DELETE("/:id", usuariosH.Desactivar)
		}

		sedes := v1.Group("/sedes")
		{
			sedes.GET("", sedesH.Listar)
			sedes.GET("/:id", sedesH.Obtener)
			sedes.POST("", admin, sedesH.Crear)
			sedes.PUT("/:id", admin, sedesH.Actualizar)
			sedes.DELETE("/:id", admin, sedesH.Eliminar)
		}

		vehiculos := v1.Group("/vehiculos")
		{
			vehiculos.GET("", vehiculosH.Listar)
			vehiculos.POST("", vehiculosH.Crear)
			vehiculos.GET("/empenos/activos", empenoVehiculoH.ListarActivos)
			vehiculos.GET("/:id", vehiculosH.Obtener)
			vehiculos.PUT("/:id", vehiculosH.Actualizar)
			vehiculos.DELETE("/:id", admin, vehiculosH.Eliminar)
			vehiculos.POST("/:id/empenar", empenoVehiculoH.Empenar)
			vehiculos.PATCH("/:id/abono", empenoVehiculoH.Abonar)
			vehiculos.GET("/:id/empeno", empenoVehiculoH.Consultar)
		}

		articulos := v1.Group("/articulos")
		{
			articulos.GET("", articulosH.Listar)
			articulos.POST("", articulosH.Crear)
			articulos.GET("/empenos/activos", empenoArticuloH.ListarActivos)
			articulos.GET("/:id", articulosH.Obtener)
			articulos.PUT("/:id", articulosH.Actualizar)
			articulos.DELETE("/:id", admin, articulosH.Eliminar)
			articulos.POST("/:id/empenar", empenoArticuloH.Empenar)
			articulos.PATCH("/:id/abono", empenoArticuloH.Abonar)
			articulos.GET("/:id/empeno", empenoArticuloH.Consultar)
		}

		mant := v1.Group("/mantenimientos")
		{
			mant.POST("", mantenimientosH.Crear)
			mant.GET("/vehiculo/:id", mantenimientosH.ListarPorVehiculo)
			mant.GET("/:id", mantenimientosH.Obtener)
			mant.PUT("/:id", mantenimientosH.Actualizar)
			mant.DELETE("/:id", admin, mantenimientosH.Eliminar)
		}

		tx := v1.Group("/transacciones")
		{
			tx.POST("", transaccionesH.Registrar)
			tx.GET("", transaccionesH.Listar)
			tx.GET("/estadisticas", transaccionesH.Estadisticas)
			tx.DELETE("/:id", admin, transaccionesH.Revertir)
		}
	}

	// Swagger UI only outside production
	if !cfg.IsProduction() {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
