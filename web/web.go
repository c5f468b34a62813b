package web

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kavia-common/netdevice-api/config"
	"github.com/kavia-common/netdevice-api/model/database"
	"github.com/kavia-common/netdevice-api/ping"

	_ "github.com/kavia-common/netdevice-api/docs"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Store is the persistence surface the handlers need. *db.DB satisfies it;
// tests substitute an in-memory fake.
type Store interface {
	CreateDevice(ctx context.Context, device *database.Device) error
	GetDeviceByID(ctx context.Context, id string) (database.Device, error)
	GetDevices(ctx context.Context, status, name string) ([]database.Device, error)
	UpdateDevice(ctx context.Context, id string, patch map[string]any) (database.Device, error)
	DeleteDevice(ctx context.Context, id string) error
	Ping(ctx context.Context) error
}

// @title			Network Device Management API
// @version		1.0
// @description	A REST API to manage network device records with liveness checking
// @BasePath	/
type Web struct {
	Router *gin.Engine
	Store  Store
	Prober ping.Prober

	port string
}

func New(store Store, prober ping.Prober, cfg *config.Config) *Web {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(), cors.Default())

	w := &Web{
		Router: router,
		Store:  store,
		Prober: prober,
		port:   cfg.Port,
	}
	w.routes()
	return w
}

func (w *Web) routes() {
	w.Router.GET("/health", w.health)

	api := w.Router.Group("/devices")
	{
		// Create a new device
		api.POST("", w.newDevice)

		// Fetch all devices, optionally filtered by status and/or name.
		api.GET("", w.listDevices)

		// Fetch a single device (by ID).
		api.GET("/:id", w.getDeviceByID)

		// Partially update an existing device.
		api.PUT("/:id", w.updateDevice)

		// Delete a single device.
		api.DELETE("/:id", w.deleteDevice)

		// Probe a device and update its status.
		api.POST("/:id/ping", w.pingDevice)
	}

	w.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

// Serve runs the HTTP server until an error or a shutdown signal.
func (w *Web) Serve() error {
	srv := &http.Server{
		Addr:         ":" + w.port,
		Handler:      w.Router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	slog.Info("server listening", "port", w.port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		slog.Info("shutting down", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	}
}

// requestLogger tags every request with an id and logs it on completion.
func requestLogger() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		requestID := uuid.NewString()
		ctx.Set("request_id", requestID)
		ctx.Header("X-Request-ID", requestID)

		ctx.Next()

		slog.Info("request",
			"request_id", requestID,
			"method", ctx.Request.Method,
			"path", ctx.Request.URL.Path,
			"status", ctx.Writer.Status(),
			"duration", time.Since(start).String(),
		)
	}
}

// health godoc
// @Summary      Health check
// @Description  Liveness probe for the service and its storage dependency.
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      500  {object}  model.RestError
// @Router       /health [get]
func (w *Web) health(ctx *gin.Context) {
	if err := w.Store.Ping(ctx.Request.Context()); err != nil {
		slog.Error("health check failed", "error", err)
		internalError(ctx, "Database unreachable")
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}
