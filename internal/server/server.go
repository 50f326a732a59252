package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-logr/logr"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"profilewizard/internal/domain"
	domaintypes "profilewizard/internal/domain/types"
	"profilewizard/internal/wizard"
)

// Deps are the services the HTTP API is built on.
type Deps struct {
	Locations    domain.LocationService
	Availability domain.AvailabilityService
	Uploads      domain.UploadService
	Profiles     domain.ProfileService
	// Photos serves /uploads/{name}; nil disables the route.
	Photos domain.PhotoStore
	Log    logr.Logger

	Debounce    time.Duration
	SessionIdle time.Duration
	// MaxSessions caps open wizard sessions; 0 means unlimited.
	MaxSessions int
}

// Server is the profile wizard HTTP API.
type Server struct {
	locations    domain.LocationService
	availability domain.AvailabilityService
	uploads      domain.UploadService
	profiles     domain.ProfileService
	photos       domain.PhotoStore
	log          logr.Logger

	sessions *sessionRegistry
	handler  http.Handler
}

// New builds a Server and its routes.
func New(deps Deps) *Server {
	s := &Server{
		locations:    instrumentedLocations{next: deps.Locations},
		availability: deps.Availability,
		uploads:      deps.Uploads,
		profiles:     deps.Profiles,
		photos:       deps.Photos,
		log:          deps.Log.WithName("server"),
	}
	s.sessions = newSessionRegistry(deps.SessionIdle, deps.MaxSessions, func() *wizard.Controller {
		return wizard.New(wizard.Deps{
			Locations:    s.locations,
			Availability: s.availability,
			Profiles:     s.profiles,
			Debounce:     deps.Debounce,
			Log:          s.log,
		})
	})

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/upload", s.handleUpload)
	mux.HandleFunc("POST /api/profile", s.handleProfile)
	mux.HandleFunc("GET /api/username/{name}/availability", s.handleAvailability)
	mux.HandleFunc("GET /api/locations/countries", s.handleLocations(domaintypes.TierCountry))
	mux.HandleFunc("GET /api/locations/states/{parent}", s.handleLocations(domaintypes.TierState))
	mux.HandleFunc("GET /api/locations/cities/{parent}", s.handleLocations(domaintypes.TierCity))

	mux.HandleFunc("POST /api/sessions", s.handleSessionCreate)
	mux.HandleFunc("GET /api/sessions/{id}", s.handleSessionGet)
	mux.HandleFunc("POST /api/sessions/{id}/fields", s.handleSessionField)
	mux.HandleFunc("POST /api/sessions/{id}/photo", s.handleSessionPhoto)
	mux.HandleFunc("POST /api/sessions/{id}/advance", s.handleSessionAdvance)
	mux.HandleFunc("POST /api/sessions/{id}/retreat", s.handleSessionRetreat)
	mux.HandleFunc("POST /api/sessions/{id}/submit", s.handleSessionSubmit)
	mux.HandleFunc("DELETE /api/sessions/{id}", s.handleSessionDelete)

	if s.photos != nil {
		mux.HandleFunc("GET /uploads/{name}", s.handlePhoto)
	}
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.HandlerFor(Registry, promhttp.HandlerOpts{}))

	s.handler = s.accessLog(mux)
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.handler }

// Close ends every open wizard session.
func (s *Server) Close() { s.sessions.closeAll() }

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	httpServer := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	stopSweep := s.sessions.startSweeper()
	defer stopSweep()
	defer s.Close()

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", "addr", ln.Addr().String())
		errCh <- httpServer.Serve(ln)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(shutdownCtx)
		return nil
	case err := <-errCh:
		if err == nil || errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
