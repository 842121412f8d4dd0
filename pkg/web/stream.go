package web

import (
	"bufio"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
)

// handleStream serves the camera as multipart MJPEG, one part per
// frame. Browsers render it with a plain img tag, no script needed.
func (s *Server) handleStream(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, "multipart/x-mixed-replace; boundary=frame")

	c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		for {
			frame, err := s.cfg.Camera.Frame()
			if err == nil {
				if _, err := fmt.Fprintf(w,
					"--frame\r\nContent-Type: image/jpeg\r\nContent-Length: %d\r\n\r\n",
					len(frame)); err != nil {
					return
				}
				if _, err := w.Write(frame); err != nil {
					return
				}
				if _, err := w.WriteString("\r\n"); err != nil {
					return
				}
				if err := w.Flush(); err != nil {
					return
				}
			}

			select {
			case <-s.stop:
				return
			case <-time.After(frameInterval):
			}
		}
	})
	return nil
}
