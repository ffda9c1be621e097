package config

import (
	"log/slog"
	"time"
)

const (
	IS_PROD        = false
	LOG_LEVEL_PROD = slog.LevelInfo
	TRACE_ID_KEY   = "traceId"

	//server
	ServerListenAddr       = ":3000"
	ReadTimeout            = 5 * time.Second
	WriteTimeout           = 30 * time.Second
	IdleTimeout            = 120 * time.Second
	ShutdownContextTimeout = 10 * time.Second

	//coarse transport guard - per IP, before identity is known
	RATE_LIMIT_PER_SECOND       = 2
	BURST_RATE_LIMIT_PER_SECOND = 5

	//per-user fixed window defaults; routes may declare stricter overrides
	DefaultThrottleLimit      = 10
	DefaultThrottleTTLSeconds = 60

	//uploads
	UploadDir         = "uploads"
	MaxUploadBytes    = 10 << 20 //10MB single file cap
	MaxMultipartBytes = 32 << 20

	//plan quota ceilings - total stored bytes per user
	BasicPlanQuotaBytes    int64 = 1000 * 1000 * 100
	StandardPlanQuotaBytes int64 = 1000 * 1000 * 1000
	PremiumPlanQuotaBytes  int64 = 1000 * 1000 * 10000

	//processing engine
	IngestEngineCommand = "python"
	IngestEngineScript  = "./scripts/fileProcessing.py"
	QueryEngineCommand  = "python"
	QueryEngineScript   = "./scripts/processQuery.py"
	MaxEngineProcesses  = 10
	EngineCallTimeout   = 120 * time.Second

	//cleanup sweep for uploads whose unlink failed after processing
	CleanupSweepInterval = 5 * time.Minute

	//redis
	redisHost = "127.0.0.1"
	redisPort = "6379"
	RedisAddr = redisHost + ":" + redisPort

	RedisPassword    = ""
	RedisWindowStore = 0 //redis DB index for rate windows

	//postgres
	PostgresMaxOpenConns = 25
	PostgresMaxIdleConns = 5
)

// ThrottleRule is the per-route fixed-window declaration consumed by the
// admission controller. Routes absent from RouteThrottleRules fall back to
// DefaultThrottleLimit/DefaultThrottleTTLSeconds.
type ThrottleRule struct {
	Limit      int
	TTLSeconds int
}

var RouteThrottleRules = map[string]ThrottleRule{
	"/files/upload": {Limit: 50, TTLSeconds: 6000},
	"/files":        {Limit: 50, TTLSeconds: 6000},
}
