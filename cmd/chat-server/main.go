package main

import (
	"chat-server-backend/internal/api"
	"chat-server-backend/internal/api/middleware"
	"chat-server-backend/internal/api/router"
	"chat-server-backend/internal/database"
	"chat-server-backend/internal/env"
	"chat-server-backend/internal/queue"
	roomservice "chat-server-backend/internal/service/room"
	userservice "chat-server-backend/internal/service/user"
	"chat-server-backend/internal/store"
	"chat-server-backend/internal/websocket"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
)

func newRepository() (store.Repository, error) {
	switch env.GetOrDefault(env.StoreBackend, "file") {
	case "dynamo":
		db, err := database.NewDatabase()
		if err != nil {
			return nil, err
		}
		return store.NewDynamoRepository(db), nil
	default:
		return store.NewFileRepository(env.GetOrDefault(env.DBPath, "db.json")), nil
	}
}

func main() {
	repo, err := newRepository()
	if err != nil {
		log.Fatalf("store init failed: %v", err)
	}

	users := userservice.New(repo)
	rooms := roomservice.New(repo)

	registry := websocket.NewRegistry()
	hub := websocket.NewHub(registry)
	wsHandler := websocket.NewHandler(hub, registry, users, rooms)

	queueManager := queue.NewManager(10, 10)

	server := api.NewAPIServer(
		env.GetOrDefault(env.ListenAddr, ":3000"),
		queueManager,
		users,
		rooms,
		wsHandler,
		router.UtilsRoutes("/api/v1"),
		router.UserRoutes("/api/v1"),
		router.RoomRoutes("/api/v1"),
		router.WebsocketRoutes("/ws"),
	)

	if redisURL := env.Get(env.RedisURL); redisURL != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     redisURL,
			Password: env.Get(env.RedisPass),
		})
		server.UseRateLimiter(middleware.NewRateLimiter(client, 100, time.Minute))
	}

	if err := server.Run(); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
