package api

import (
	"fmt"
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"log/slog"

	"gramlite/internal/config"
	"gramlite/internal/http-server/handlers/chats"
	"gramlite/internal/http-server/handlers/errors"
	"gramlite/internal/http-server/middleware/timeout"
	"gramlite/internal/lib/sl"
	"gramlite/internal/ws"
)

type Server struct {
	conf       *config.Config
	httpServer *http.Server
	log        *slog.Logger
}

// Handler aggregates the core interfaces required by every handler package.
type Handler interface {
	chats.Core
}

// New builds the router and serves it. Blocks until the listener fails.
func New(conf *config.Config, log *slog.Logger, handler Handler, hub *ws.Hub) error {

	server := Server{
		conf: conf,
		log:  log.With(sl.Module("api.server")),
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)

	router.NotFound(errors.NotFound(log))
	router.MethodNotAllowed(errors.NotAllowed(log))

	router.Route("/api/v1", func(v1 chi.Router) {
		v1.Use(timeout.Timeout(5))
		v1.Use(render.SetContentType(render.ContentTypeJSON))

		v1.Route("/chats", func(r chi.Router) {
			r.Get("/", chats.GetChats(log, handler))
			r.Post("/", chats.CreateChat(log, handler))
			r.Get("/{id}/messages", chats.GetMessages(log, handler))
			r.Post("/{id}/select", chats.SelectChat(log, handler))
			r.Post("/{id}/read", chats.MarkRead(log, handler))
		})
		v1.Post("/messages", chats.SendMessage(log, handler))
		v1.Get("/state", chats.GetState(log, handler))
	})

	// The upgrade lives outside the timeout group: the socket stays open.
	router.Get("/ws", func(w http.ResponseWriter, r *http.Request) {
		ws.ServeWs(hub, log, w, r)
	})

	router.Handle("/metrics", promhttp.Handler())

	httpLog := slog.NewLogLogger(log.Handler(), slog.LevelError)
	server.httpServer = &http.Server{
		Handler:  router,
		ErrorLog: httpLog,
	}

	serverAddress := fmt.Sprintf("%s:%s", conf.Listen.BindIP, conf.Listen.Port)
	listener, err := net.Listen("tcp", serverAddress)
	if err != nil {
		return err
	}

	server.log.Info("starting api server", slog.String("address", serverAddress))

	return server.httpServer.Serve(listener)
}
