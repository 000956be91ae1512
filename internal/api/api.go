package api

import (
	"chat-server-backend/internal/api/middleware"
	"chat-server-backend/internal/queue"
	roomservice "chat-server-backend/internal/service/room"
	userservice "chat-server-backend/internal/service/user"
	"chat-server-backend/internal/websocket"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
)

type RouteRegistrar func(mux *http.ServeMux, s *APIServer)

type APIServer struct {
	listenAddr      string
	requestQueue    *queue.Manager
	users           *userservice.Service
	rooms           *roomservice.Service
	wsHandler       *websocket.Handler
	routeRegistrars []RouteRegistrar
	rateLimiter     *middleware.RateLimiter
	metrics         *metrics
}

func NewAPIServer(listenAddr string, rqm *queue.Manager, users *userservice.Service, rooms *roomservice.Service, wsHandler *websocket.Handler, registrars ...RouteRegistrar) *APIServer {
	return &APIServer{
		listenAddr:      listenAddr,
		requestQueue:    rqm,
		users:           users,
		rooms:           rooms,
		wsHandler:       wsHandler,
		routeRegistrars: registrars,
		metrics:         newMetrics(prometheus.DefaultRegisterer, listenAddr, rqm),
	}
}

// UseRateLimiter installs an optional per-client request limiter in front of
// every registered route.
func (s *APIServer) UseRateLimiter(rl *middleware.RateLimiter) {
	s.rateLimiter = rl
}

func (s *APIServer) Run() error {
	mux := http.NewServeMux()

	for _, reg := range s.routeRegistrars {
		reg(mux, s)
	}

	mux.Handle("/metrics", s.metrics.metricsHandler())

	fmt.Printf("Server listening on http://localhost%s\n", s.listenAddr)

	if err := http.ListenAndServe(s.listenAddr, s.metrics.instrument(mux)); err != nil {
		return fmt.Errorf("server stopped: %w", err)
	}
	return nil
}

func (s *APIServer) Users() *userservice.Service {
	return s.users
}

func (s *APIServer) Rooms() *roomservice.Service {
	return s.rooms
}

func (s *APIServer) WSHandler() *websocket.Handler {
	return s.wsHandler
}
