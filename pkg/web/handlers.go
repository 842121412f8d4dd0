package web

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/gni-robotics/fieldrover/internal/log"
	"github.com/gni-robotics/fieldrover/pkg/camera"
	"github.com/gni-robotics/fieldrover/pkg/drive"
	"github.com/gni-robotics/fieldrover/pkg/photos"
)

// handleStatus returns the runner's current status record.
func (s *Server) handleStatus(c *fiber.Ctx) error {
	return c.JSON(s.cfg.Runner.Observe())
}

// handleConfig tells the dashboard how this rover is set up.
func (s *Server) handleConfig(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"mock":     s.cfg.Mock,
		"defaults": s.cfg.Defaults,
	})
}

// handleMissionStart launches a mission. The posted JSON overrides
// the configured defaults field by field; everything is clamped to
// the operating ranges before it reaches the runner.
func (s *Server) handleMissionStart(c *fiber.Ctx) error {
	params := s.cfg.Defaults
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&params); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"started": false,
				"error":   "invalid mission parameters",
			})
		}
	}
	params = params.Clamp()

	if !s.cfg.Runner.Start(params) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"started": false,
			"error":   "mission already running",
		})
	}

	log.Info("mission started from dashboard", "rows", params.NumRows)
	return c.JSON(fiber.Map{"started": true, "params": params})
}

type driveRequest struct {
	Cmd    string `json:"cmd"`
	Power  int    `json:"power"`
	TimeMS int    `json:"t_ms"`
}

// handleDrive issues one manual motor command. The response arrives
// after the command's duration has elapsed; the pad in the dashboard
// relies on that pacing between nudges. Manual commands share the
// sink with a running mission without coordination.
func (s *Server) handleDrive(c *fiber.Ctx) error {
	req := driveRequest{Power: 60, TimeMS: 500}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"ok":    false,
				"error": "invalid drive request",
			})
		}
	}

	cmd, err := drive.Nudge(req.Cmd, req.Power, time.Duration(req.TimeMS)*time.Millisecond)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"ok":    false,
			"error": err.Error(),
		})
	}

	if err := s.cfg.Sink.Send(cmd); err != nil {
		log.Warn("manual drive failed", "cmd", req.Cmd, "error", err)
		return c.JSON(fiber.Map{"ok": false})
	}
	return c.JSON(fiber.Map{"ok": true})
}

type captureRequest struct {
	Tag string `json:"tag"`
}

// handleCapture takes a photo right now.
func (s *Server) handleCapture(c *fiber.Ctx) error {
	req := captureRequest{}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"ok":    false,
				"error": "invalid capture request",
			})
		}
	}
	if req.Tag == "" {
		req.Tag = "manual"
	}

	name, err := s.cfg.Photos.Capture(req.Tag)
	if err != nil {
		log.Warn("manual capture failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"ok": false})
	}
	return c.JSON(fiber.Map{
		"ok":   true,
		"name": name,
		"url":  "/photos/" + name,
	})
}

// handleCameraGet reports the live camera configuration and the
// presets it can switch to.
func (s *Server) handleCameraGet(c *fiber.Ctx) error {
	if s.cfg.CamManager == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "camera is not reconfigurable",
		})
	}
	return c.JSON(fiber.Map{
		"config":  s.cfg.CamManager.Config(),
		"presets": camera.PresetNames(),
	})
}

// handleCameraSet applies a preset or individual fields and reopens
// the camera.
func (s *Server) handleCameraSet(c *fiber.Ctx) error {
	if s.cfg.CamManager == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "camera is not reconfigurable",
		})
	}

	params := map[string]any{}
	if err := c.BodyParser(&params); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid camera settings",
		})
	}

	if err := s.cfg.CamManager.Update(params); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	log.Info("camera reconfigured", "config", s.cfg.CamManager.Config())
	return c.JSON(fiber.Map{"ok": true, "config": s.cfg.CamManager.Config()})
}

// handlePhotos lists recent captures, newest first.
func (s *Server) handlePhotos(c *fiber.Ctx) error {
	list, err := s.cfg.Store.List(c.QueryInt("limit", 24))
	if err != nil {
		log.Warn("photo listing failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "listing photos failed",
		})
	}
	if list == nil {
		list = []photos.Photo{}
	}
	return c.JSON(list)
}

// handlePhoto serves one stored capture.
func (s *Server) handlePhoto(c *fiber.Ctx) error {
	path, err := s.cfg.Store.Path(c.Params("name"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "photo not found",
		})
	}
	return c.SendFile(path)
}
