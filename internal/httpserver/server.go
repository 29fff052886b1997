package httpserver

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	cartsvc "printcart/internal/service/cart"
)

// Deps carries the collaborators the router needs.
type Deps struct {
	CartSvc *cartsvc.Service
	DataDir string
}

// Server wraps the HTTP server setup.
type Server struct {
	httpServer *http.Server
	logger     *log.Logger
}

// New builds a Server with the cart routes wired.
func New(addr string, logger *log.Logger, deps Deps) (*Server, error) {
	router := buildRouter(logger, deps)

	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return &Server{
		httpServer: httpSrv,
		logger:     logger,
	}, nil
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func readyHandler(dataDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := os.MkdirAll(dataDir, 0o755); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "reason": "data dir not usable"})
			return
		}
		probe, err := os.CreateTemp(dataDir, ".readyz-*")
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "reason": "data dir not writable"})
			return
		}
		probe.Close()
		os.Remove(probe.Name())
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	}
}
