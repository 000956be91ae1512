package router

import (
	"chat-server-backend/internal/api"
	"chat-server-backend/internal/api/endpoints"
	"net/http"
	"strings"
)

func UserRoutes(prefix string) api.RouteRegistrar {
	return func(mux *http.ServeMux, s *api.APIServer) {
		paths := endpoints.UserPaths{
			UsersPath:  strings.TrimRight(prefix, "/") + "/users",
			UserPrefix: strings.TrimRight(prefix, "/") + "/users/",
		}
		userEndpoints := endpoints.NewUserEndpoints(s.Users(), paths)

		// exact paths win over the /users/ subtree, so register and login
		// never parse as usernames
		mux.HandleFunc(prefix+"/users/register", s.MakeHTTPHandleFunc(userEndpoints.Register))
		mux.HandleFunc(prefix+"/users/login", s.MakeHTTPHandleFunc(userEndpoints.Login))
		mux.HandleFunc(prefix+"/users", s.MakeHTTPHandleFunc(userEndpoints.Users))
		mux.HandleFunc(prefix+"/users/", s.MakeHTTPHandleFunc(userEndpoints.User))
	}
}
