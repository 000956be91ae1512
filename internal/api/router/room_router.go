package router

import (
	"chat-server-backend/internal/api"
	"chat-server-backend/internal/api/endpoints"
	"net/http"
	"strings"
)

func RoomRoutes(prefix string) api.RouteRegistrar {
	return func(mux *http.ServeMux, s *api.APIServer) {
		paths := endpoints.RoomPaths{
			RoomsPath:  strings.TrimRight(prefix, "/") + "/rooms",
			RoomPrefix: strings.TrimRight(prefix, "/") + "/rooms/",
		}
		roomEndpoints := endpoints.NewRoomEndpoints(s.Rooms(), paths)

		mux.HandleFunc(prefix+"/rooms", s.MakeHTTPHandleFunc(roomEndpoints.Rooms))
		mux.HandleFunc(prefix+"/rooms/", s.MakeHTTPHandleFunc(roomEndpoints.RoomMessages))
	}
}
