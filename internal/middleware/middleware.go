package middleware

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/akolanti/DocChatAPI/internal/admission"
	"github.com/akolanti/DocChatAPI/internal/handlers"
	"github.com/akolanti/DocChatAPI/internal/metrics"
	"github.com/akolanti/DocChatAPI/pkg/logger_i"
)

var (
	gate      *admission.Controller
	authToken string
)

// Init wires the admission gate and the transport token. Must run before
// any wrapped handler serves traffic.
func Init(admissionGate *admission.Controller, token string) {
	gate = admissionGate
	authToken = token
}

type requestResponseStruct struct {
	writer     http.ResponseWriter
	req        *http.Request
	failure    failureStruct
	retryAfter int
	logger     *logger_i.Logger
}

type failureStruct struct {
	isFailure    bool
	httpCode     int
	errorMessage string
}

// Wrap runs the transport chain: IP guard, trace injection, bearer auth +
// identity resolution. Routes with a declared throttle rule go through
// WrapThrottled instead.
func Wrap(next http.HandlerFunc) http.HandlerFunc {
	return wrap(next, "")
}

// WrapThrottled additionally consumes the caller's fixed window for route
// before the handler runs.
func WrapThrottled(route string, next http.HandlerFunc) http.HandlerFunc {
	return wrap(next, route)
}

func wrap(next http.HandlerFunc, throttleRoute string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec := &metrics.HttpStatusRecorder{ResponseWriter: w, Status: 200}
		re := processRequest(requestResponseStruct{req: r, writer: rec}, throttleRoute)

		if re.failure.isFailure {
			handleFailure(re)
		} else {
			next(rec, re.req)
		}

		metrics.HttpRequestsTotal.WithLabelValues(r.URL.Path, strconv.Itoa(rec.Status)).Inc()
	}
}

func processRequest(re requestResponseStruct, throttleRoute string) requestResponseStruct {
	re.logger = logger_i.NewLogger("middleware")

	re = ipLimiter(re)
	if re.failure.isFailure {
		return re
	}
	re = injectTrace(re)
	if re.failure.isFailure {
		return re
	}
	re = authenticate(re)
	if re.failure.isFailure {
		return re
	}
	if throttleRoute != "" {
		re = throttle(re, throttleRoute)
	}
	return re
}

func failureFromAdmission(err error) failureStruct {
	var denied *admission.DeniedError
	if errors.As(err, &denied) {
		return failureStruct{
			isFailure:    true,
			httpCode:     http.StatusTooManyRequests,
			errorMessage: denied.Error(),
		}
	}
	return failureStruct{
		isFailure:    true,
		httpCode:     http.StatusInternalServerError,
		errorMessage: "Internal Server Error",
	}
}

func handleFailure(re requestResponseStruct) {
	re.logger.Warn("request rejected", "httpCode", re.failure.httpCode, "errorMessage", re.failure.errorMessage, "IP", re.req.RemoteAddr)
	if re.failure.httpCode == http.StatusTooManyRequests {
		handlers.WriteThrottledResponse(re.writer, re.failure.errorMessage, re.retryAfter)
		return
	}
	handlers.WriteErrorResponse(re.writer, re.failure.httpCode, re.failure.errorMessage)
}
