package server

import (
	"context"
	"errors"
	"net/http"
	"os"

	"github.com/akolanti/DocChatAPI/internal/adapter/utils"
	"github.com/akolanti/DocChatAPI/internal/config"
	"github.com/akolanti/DocChatAPI/internal/handlers"
	"github.com/akolanti/DocChatAPI/internal/middleware"
	"github.com/akolanti/DocChatAPI/internal/query"
	"github.com/akolanti/DocChatAPI/pkg/logger_i"
)

var (
	server *http.Server

	// assigned eagerly: ShutDownHandler may run before CreateServer
	_logger = logger_i.NewLogger("Server")
)

type ShutdownParams struct {
	GracefulShutdown chan os.Signal
	StopExecution    chan bool
	CloseServices    context.CancelFunc
}

func CreateServer(listenAddr string) {
	r := utils.GetRouter()

	//upload and list share the stricter file-route window; Ask throttles
	//itself inside the query service so it only takes the transport chain
	r.Router.Post("/files/upload", middleware.WrapThrottled("/files/upload", handlers.UploadFileHandler))
	r.Router.Get("/files", middleware.WrapThrottled("/files", handlers.ListFilesHandler))
	r.Router.Post("/files/evaluate", middleware.Wrap(handlers.EvaluateFilesHandler))
	r.Router.Delete("/files", middleware.Wrap(handlers.DeleteFileHandler))
	r.Router.Put("/files/tags", middleware.Wrap(handlers.UpdateFileTagsHandler))

	r.Router.Post(query.AskRoute, middleware.Wrap(handlers.AskHandler))
	r.Router.Get("/chat", middleware.Wrap(handlers.ChatHistoryHandler))
	r.Router.Put("/chat/featureChat", middleware.Wrap(handlers.FeatureChatHandler))

	r.Router.Put("/models/apiKey", middleware.Wrap(handlers.UpdateApiKeyHandler))

	server = &http.Server{
		Addr:         listenAddr,
		Handler:      r.Router,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
		IdleTimeout:  config.IdleTimeout,
	}

	_logger.Info("Server is listening at", "address", listenAddr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		_logger.Error("Server crashed", "error :", err.Error(), "addr", listenAddr)
	}
}

func ShutDownHandler(shutdownParams ShutdownParams) {
	state := <-shutdownParams.GracefulShutdown
	println("\nServer is shutting down", state)

	ctx, cancel := context.WithTimeout(context.Background(), config.ShutdownContextTimeout)
	defer cancel()

	done := make(chan struct{})

	go func() {
		// a signal can land before the server goroutine ever starts
		if server != nil {
			server.SetKeepAlivesEnabled(false)

			if err := server.Shutdown(ctx); err != nil {
				_logger.Error("Could not shutdown gracefully: %s", err)
			}
		}

		shutdownParams.CloseServices()
		close(shutdownParams.StopExecution)
		close(done)
	}()

	select {
	case <-done:
		_logger.Info("Gracefully is shutting down")
	case <-ctx.Done():
		_logger.Info("Force Shut down")
		os.Exit(1)
	}
}
