// Package web serves the rover's dashboard and control API: mission
// start and status, manual drive, captures, the photo gallery, the
// MJPEG stream and the live websocket feeds.
package web

import (
	"fmt"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"

	"github.com/gni-robotics/fieldrover/internal/log"
	"github.com/gni-robotics/fieldrover/pkg/camera"
	"github.com/gni-robotics/fieldrover/pkg/hub"
	"github.com/gni-robotics/fieldrover/pkg/mission"
	"github.com/gni-robotics/fieldrover/pkg/motion"
	"github.com/gni-robotics/fieldrover/pkg/photos"
)

// frameInterval paces the websocket camera feed at roughly 10 fps.
const frameInterval = 100 * time.Millisecond

// Config wires the server to the rest of the rover.
type Config struct {
	Port   string
	WebDir string
	// Mock is surfaced to the dashboard so nobody drives a real
	// mower thinking it is the simulator.
	Mock     bool
	Defaults mission.Params

	Runner *mission.Runner
	Sink   motion.Sink
	Camera camera.FrameSource
	Photos *photos.Service
	Store  *photos.Store

	// CamManager enables the /api/camera settings endpoints. Nil when
	// the frame source is fixed (tests, exotic setups).
	CamManager *camera.Manager
}

// Server is the rover's web boundary.
type Server struct {
	app *fiber.App
	cfg Config

	statusHub *hub.Hub
	cameraHub *hub.Hub
	eventHub  *hub.Hub

	stop     chan struct{}
	stopOnce sync.Once
}

// New builds the server and claims the runner's status callback for
// live broadcasting.
func New(cfg Config) *Server {
	s := &Server{
		cfg:       cfg,
		statusHub: hub.NewReplay("status"),
		cameraHub: hub.New("camera"),
		eventHub:  hub.New("events"),
		stop:      make(chan struct{}),
	}

	cfg.Runner.OnStatus = func(st mission.Status) {
		if err := s.statusHub.BroadcastJSON(st); err != nil {
			log.Warn("status broadcast failed", "error", err)
		}
	}

	app := fiber.New(fiber.Config{
		AppName:               "Field Rover",
		DisableStartupMessage: true,
	})

	app.Use(cors.New())

	if cfg.WebDir != "" {
		app.Static("/", cfg.WebDir)
	}

	api := app.Group("/api")
	api.Get("/status", s.handleStatus)
	api.Get("/config", s.handleConfig)
	api.Post("/mission/start", s.handleMissionStart)
	api.Post("/drive", s.handleDrive)
	api.Post("/capture", s.handleCapture)
	api.Get("/photos", s.handlePhotos)
	api.Get("/camera", s.handleCameraGet)
	api.Post("/camera", s.handleCameraSet)

	app.Get("/photos/:name", s.handlePhoto)
	app.Get("/stream.mjpg", s.handleStream)

	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/status", websocket.New(func(c *websocket.Conn) {
		hub.Serve(s.statusHub, c)
	}))
	app.Get("/ws/camera", websocket.New(func(c *websocket.Conn) {
		hub.Serve(s.cameraHub, c)
	}))
	app.Get("/ws/events", websocket.New(func(c *websocket.Conn) {
		hub.Serve(s.eventHub, c)
	}))

	s.app = app
	return s
}

// Start runs the hubs, the camera pump and the listener. It blocks
// until the server shuts down.
func (s *Server) Start() error {
	go s.statusHub.Run()
	go s.cameraHub.Run()
	go s.eventHub.Run()
	go s.cameraPump()

	fmt.Printf("🌐 Rover dashboard: http://localhost:%s\n", s.cfg.Port)
	return s.app.Listen(":" + s.cfg.Port)
}

// Shutdown stops the pumps and the listener.
func (s *Server) Shutdown() error {
	s.stopOnce.Do(func() { close(s.stop) })
	return s.app.Shutdown()
}

// PhotoAdded announces a new photo on the events feed. The directory
// watcher calls this for every JPEG that lands, however it got there.
func (s *Server) PhotoAdded(name string) {
	event := struct {
		Type string `json:"type"`
		Name string `json:"name"`
		URL  string `json:"url"`
	}{Type: "photo", Name: name, URL: "/photos/" + name}

	if err := s.eventHub.BroadcastJSON(event); err != nil {
		log.Warn("photo event broadcast failed", "error", err)
	}
}

// cameraPump feeds the websocket camera hub. Frames are only grabbed
// while someone is watching.
func (s *Server) cameraPump() {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			if s.cameraHub.ClientCount() == 0 {
				continue
			}
			frame, err := s.cfg.Camera.Frame()
			if err != nil {
				log.Debug("frame grab failed", "error", err)
				continue
			}
			s.cameraHub.BroadcastFrame(frame)
		}
	}
}
