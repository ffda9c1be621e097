package middleware

import (
	"context"
	"crypto/subtle"
	"errors"
	"net"
	"net/http"
	"strings"

	"github.com/akolanti/DocChatAPI/internal/adapter/utils"
	"github.com/akolanti/DocChatAPI/internal/admission"
	"github.com/akolanti/DocChatAPI/internal/config"
	"github.com/akolanti/DocChatAPI/internal/domain/fileModel"
	"github.com/akolanti/DocChatAPI/internal/domain/userModel"
)

func injectTrace(re requestResponseStruct) requestResponseStruct {
	req := re.req
	if req == nil {
		re.failure.httpCode = http.StatusBadRequest
		re.failure.errorMessage = "request is empty"
		re.failure.isFailure = true
		return re
	}
	trace := req.Header.Get("X-Trace-Id")
	if trace == "" {
		trace = utils.GetNewUUID()
	}
	re.logger = re.logger.With("traceId", trace)
	ctx := context.WithValue(req.Context(), config.TRACE_ID_KEY, trace)
	req.Header.Set("X-Trace-Id", trace)
	re.req = req.WithContext(ctx)
	return re
}

func ipLimiter(re requestResponseStruct) requestResponseStruct {
	ip, _, err := net.SplitHostPort(re.req.RemoteAddr)
	if err != nil {
		ip = re.req.RemoteAddr
	}

	if !limiterInstance.GetLimiter(ip).Allow() {
		re.logger.Warn("too many requests from address", "ip", ip)
		re.failure = failureStruct{
			isFailure:    true,
			httpCode:     http.StatusTooManyRequests,
			errorMessage: "Too many requests",
		}
	}
	return re
}

// authenticate validates the bearer token and resolves the caller identity
// injected by the upstream auth layer. Token verification mechanics live
// outside this core.
func authenticate(re requestResponseStruct) requestResponseStruct {
	if !isValidBearerToken(re.req.Header.Get("Authorization")) {
		re.failure = failureStruct{
			isFailure:    true,
			httpCode:     http.StatusUnauthorized,
			errorMessage: "Unauthorized",
		}
		return re
	}

	userId := re.req.Header.Get("X-User-Id")
	if userId == "" {
		re.failure = failureStruct{
			isFailure:    true,
			httpCode:     http.StatusBadRequest,
			errorMessage: "User ID not found in request",
		}
		return re
	}

	identity := userModel.Identity{
		UserId: userId,
		Plan:   fileModel.SubscriptionPlan(re.req.Header.Get("X-User-Plan")),
	}
	re.req = re.req.WithContext(userModel.WithIdentity(re.req.Context(), identity))
	return re
}

func isValidBearerToken(authHeader string) bool {
	if authToken == "" {
		return false
	}
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(strings.TrimPrefix(authHeader, "Bearer ")), []byte(authToken)) == 1
}

// throttle applies the per-(user, route) fixed window declared for route.
func throttle(re requestResponseStruct, route string) requestResponseStruct {
	identity, ok := userModel.IdentityFromContext(re.req.Context())
	if !ok {
		re.failure = failureStruct{
			isFailure:    true,
			httpCode:     http.StatusBadRequest,
			errorMessage: "User ID not found in request",
		}
		return re
	}

	if err := gate.CheckAndConsume(re.req.Context(), identity.UserId, route); err != nil {
		var denied *admission.DeniedError
		if errors.As(err, &denied) {
			re.retryAfter = denied.RetryAfterSeconds()
		}
		re.failure = failureFromAdmission(err)
	}
	return re
}
