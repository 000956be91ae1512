package router

import (
	"chat-server-backend/internal/api"
	"net/http"
)

func WebsocketRoutes(path string) api.RouteRegistrar {
	return func(mux *http.ServeMux, s *api.APIServer) {
		mux.HandleFunc(path, s.MakeHTTPHandleFunc(s.WSHandler().ServeWS))
	}
}
