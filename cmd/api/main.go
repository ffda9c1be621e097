// @title           Document Chat API
// @version         1.0
// @description     This API admits, ingests, and answers questions over user documents
// @termsOfService  http://swagger.io/terms/

// @contact.name    me lol
// @contact.url
// @contact.email

// @license.name    Apache 2.0
// @license.url     http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:3000
// @BasePath  /
// @schemes   http https
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/akolanti/DocChatAPI/internal/admission"
	"github.com/akolanti/DocChatAPI/internal/config"
	"github.com/akolanti/DocChatAPI/internal/data/postgres"
	"github.com/akolanti/DocChatAPI/internal/data/store"
	"github.com/akolanti/DocChatAPI/internal/domain/chatModel"
	"github.com/akolanti/DocChatAPI/internal/domain/fileModel"
	"github.com/akolanti/DocChatAPI/internal/engine"
	"github.com/akolanti/DocChatAPI/internal/handlers"
	"github.com/akolanti/DocChatAPI/internal/ingestion"
	"github.com/akolanti/DocChatAPI/internal/middleware"
	"github.com/akolanti/DocChatAPI/internal/query"
	"github.com/akolanti/DocChatAPI/internal/resolver"
	"github.com/akolanti/DocChatAPI/internal/server"
	"github.com/akolanti/DocChatAPI/pkg/logger_i"
)

var listenAddr string

func main() {

	logger_i.Init()
	var logger = logger_i.NewLogger("main")

	//config
	env := config.LoadEnv()
	flag.StringVar(&listenAddr, "listen-addr", env.ListenAddr, "server listen address")
	flag.Parse()

	serviceContext, closeExternalServices := context.WithCancel(context.Background())
	defer closeExternalServices()

	//durable stores: postgres when configured, in-memory otherwise
	var files fileModel.FileStore
	var chats chatModel.ChatStore
	var models chatModel.ModelStore

	if env.DatabaseURL != "" {
		db, err := postgres.Connect(env.DatabaseURL)
		if err != nil {
			logger.Error("Postgres is offline", "error", err)
		} else {
			files = postgres.NewFileRepository(db)
			chats = postgres.NewChatRepository(db)
			models = postgres.NewModelRepository(db)
		}
	}
	if files == nil {
		logger.Warn("Using in-memory stores; records will not survive a restart")
		files = store.InitInMemoryFileStore()
		chats = store.InitInMemoryChatStore()
		models = store.InitInMemoryModelStore(nil)
	}

	//rate windows: redis when reachable, in-memory otherwise
	var windows admission.WindowStore
	if redisWindows := store.GetRedisWindowStore(serviceContext); redisWindows != nil {
		windows = redisWindows
	} else {
		logger.Warn("Redis is offline, rate windows are process-local")
		windows = admission.InitInMemoryWindowStore()
	}

	gate := admission.NewController(windows, files)

	//both engine shapes share one bounded slot pool
	slots := engine.NewSlots(env.MaxEngineProcesses)
	ingestEngine := engine.NewEngine(env.IngestEngineCommand, []string{env.IngestEngineScript}, "ingest", config.EngineCallTimeout, slots)
	queryEngine := engine.NewEngine(env.QueryEngineCommand, []string{env.QueryEngineScript}, "query", config.EngineCallTimeout, slots)

	ingestService := ingestion.NewService(files, gate, ingestEngine, env.UploadDir)
	queryService := query.NewService(files, chats, models, gate, resolver.NewResolver(files), queryEngine)

	ingestService.StartCleanupSweeper(serviceContext, config.CleanupSweepInterval)

	middleware.Init(gate, env.AuthToken)
	handlers.InitHandlers(ingestService, queryService, models)

	//server handling
	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)
	stopExecution := make(chan bool, 1)

	shutdownParams := server.ShutdownParams{
		GracefulShutdown: gracefulShutdown,
		StopExecution:    stopExecution,
		CloseServices:    closeExternalServices,
	}
	go server.ShutDownHandler(shutdownParams)
	go server.CreateServer(listenAddr)

	<-stopExecution
	logger.Info("Server stopped")
}
