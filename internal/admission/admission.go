package admission

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/akolanti/DocChatAPI/internal/config"
	"github.com/akolanti/DocChatAPI/internal/domain/fileModel"
	"github.com/akolanti/DocChatAPI/internal/metrics"
	"github.com/akolanti/DocChatAPI/pkg/logger_i"
)

// ErrQuotaExceeded is a hard stop: no retry hint, the user must remove
// files or upgrade the plan.
var ErrQuotaExceeded = errors.New("storage quota exceeded")

// DeniedError reports a rate-limit rejection with the wait until the
// window resets.
type DeniedError struct {
	RetryAfter time.Duration
}

func (e *DeniedError) Error() string {
	return fmt.Sprintf("rate limit exceeded, retry in %d seconds", e.RetryAfterSeconds())
}

func (e *DeniedError) RetryAfterSeconds() int {
	return int((e.RetryAfter + time.Second - 1) / time.Second)
}

// Controller is the gate every upload and query passes before any engine
// process is spawned. It owns no I/O beyond the injected stores.
type Controller struct {
	windows WindowStore
	files   fileModel.FileStore
	rules   map[string]config.ThrottleRule
	logger  *logger_i.Logger
}

func NewController(windows WindowStore, files fileModel.FileStore) *Controller {
	return &Controller{
		windows: windows,
		files:   files,
		rules:   config.RouteThrottleRules,
		logger:  logger_i.NewLogger("Admission"),
	}
}

// CheckAndConsume applies the fixed-window limiter for (subject, route).
// The route's declared rule wins over the process-wide default. Returns a
// *DeniedError when the window is exhausted.
func (c *Controller) CheckAndConsume(ctx context.Context, subject string, route string) error {
	rule, declared := c.rules[route]
	if !declared {
		rule = config.ThrottleRule{
			Limit:      config.DefaultThrottleLimit,
			TTLSeconds: config.DefaultThrottleTTLSeconds,
		}
	}

	key := subject + ":" + route
	window := time.Duration(rule.TTLSeconds) * time.Second
	count, resetAt, err := c.windows.Increment(ctx, key, window)
	if err != nil {
		// A broken window store must not let traffic through unmetered.
		c.logger.Error("window store failure", "key", key, "error", err)
		return &DeniedError{RetryAfter: window}
	}

	if count > rule.Limit {
		retryAfter := time.Until(resetAt)
		if retryAfter < 0 {
			retryAfter = 0
		}
		c.logger.Warn("rate limit exceeded", "subject", subject, "route", route, "count", count, "limit", rule.Limit)
		metrics.IncrementAdmissionDenied("rate_limit")
		return &DeniedError{RetryAfter: retryAfter}
	}
	return nil
}

// QuotaOK sums the committed non-removed file bytes for the user, adds the
// incoming size as a look-ahead, and compares against the plan ceiling. It
// must run before the incoming file is durably linked to the user.
func (c *Controller) QuotaOK(ctx context.Context, userId string, plan fileModel.SubscriptionPlan, incomingBytes int64) error {
	files, err := c.files.GetUserFiles(ctx, userId)
	if err != nil {
		return err
	}

	var total int64
	for _, f := range files {
		if !f.Removed {
			total += f.SizeBytes
		}
	}

	if total+incomingBytes > quotaCeiling(plan) {
		c.logger.Warn("quota exceeded", "userId", userId, "plan", plan, "committed", total, "incoming", incomingBytes)
		metrics.IncrementAdmissionDenied("quota")
		return ErrQuotaExceeded
	}
	return nil
}

func quotaCeiling(plan fileModel.SubscriptionPlan) int64 {
	switch plan {
	case fileModel.PlanStandard:
		return config.StandardPlanQuotaBytes
	case fileModel.PlanPremium:
		return config.PremiumPlanQuotaBytes
	default:
		return config.BasicPlanQuotaBytes
	}
}
