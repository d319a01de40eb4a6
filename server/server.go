package server

import (
	"energy-monitor/confs"
	"energy-monitor/db"
	"energy-monitor/handlers"
	httpHandler "energy-monitor/handlers/http"
	"energy-monitor/repositories"
	"energy-monitor/usecases"
	"energy-monitor/ws"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Server struct {
	app *gin.Engine
	cfg *confs.Config
	db  db.Database
	log *zap.Logger
}

func NewServer(cfg *confs.Config, database db.Database, logger *zap.Logger) *Server {
	return &Server{
		app: gin.Default(),
		cfg: cfg,
		db:  database,
		log: logger,
	}
}

// Routes wires repositories, use cases and handlers onto the gin engine.
// Split from Start so tests can drive the full router without binding a port.
func (s *Server) Routes() *gin.Engine {
	// Devices and dashboards call in from arbitrary origins
	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	s.app.Use(cors.New(config))

	// Liveness route
	s.app.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Energy Monitoring API is running!",
		})
	})

	// Initialize repositories
	meterRepo := repositories.NewMeterPgRepository(s.db)
	readingRepo := repositories.NewReadingPgRepository(s.db)
	statusRepo := repositories.NewStatusPgRepository(s.db)

	// Initialize use cases
	meterUseCase := usecases.NewMeterUseCase(meterRepo, readingRepo, statusRepo)

	// WebSocket manager for the dashboard live feed
	manager := ws.NewManager()
	wsHandler := handlers.NewWSHandler(manager, s.log)

	// Initialize handlers
	meterHandler := httpHandler.NewMeterHandler(meterUseCase, s.log)
	meterDataHandler := httpHandler.NewMeterDataHandler(meterUseCase, manager, s.log)

	// Setup API routes
	api := s.app.Group("/api")
	{
		api.POST("/meter-data", meterDataHandler.ReceiveMeterData)

		meters := api.Group("/meters")
		{
			meters.GET("", meterHandler.GetMeters)
			meters.POST("", meterHandler.CreateMeter)
		}

		api.GET("/meter/:meter_id/readings", meterHandler.GetMeterReadings)
		api.GET("/dashboards/connected", wsHandler.GetConnectedClients)
	}

	s.app.GET("/ws", wsHandler.HandleDashboardWS)

	return s.app
}

func (s *Server) Start() {
	s.Routes()
	if err := s.app.Run(s.cfg.ListenAddr); err != nil {
		panic(err)
	}
}
