package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/alzentdigital/website/pkg/logger"
	"github.com/alzentdigital/website/pkg/requestid"
)

// ErrorInfo is the classified form of a handler error.
type ErrorInfo struct {
	StatusCode int
	Code       string
	Message    string
	Details    map[string][]string
	LogLevel   slog.Level
}

// ErrorHandlerConfig configures NewErrorHandler.
type ErrorHandlerConfig struct {
	// Body builds the response body. Nil renders the JSONResponse envelope.
	Body func(info ErrorInfo, requestID string) any
}

// ClassifyError maps err onto a status code and a client-safe message.
// Server errors never expose err's text.
func ClassifyError(err error) ErrorInfo {
	info := ErrorInfo{
		StatusCode: http.StatusInternalServerError,
		Code:       ErrInternal.Key,
		Message:    "An error occurred processing your request",
	}

	var (
		httpErr HTTPError
		valErr  ValidationError
	)
	switch {
	case errors.As(err, &valErr):
		info.StatusCode = http.StatusBadRequest
		info.Code = "validation_error"
		info.Message = valErr.Error()
		info.Details = valErr
	case errors.As(err, &httpErr):
		info.StatusCode = httpErr.Code
		info.Code = httpErr.Key
		info.Message = http.StatusText(httpErr.Code)
	case errors.Is(err, ErrUnsupportedMedia):
		info.StatusCode = http.StatusUnsupportedMediaType
		info.Code = "unsupported_media_type"
		info.Message = err.Error()
	case errors.Is(err, ErrMissingContentType), errors.Is(err, ErrInvalidBody):
		info.StatusCode = http.StatusBadRequest
		info.Code = ErrBadRequest.Key
		info.Message = err.Error()
	}

	info.LogLevel = slog.LevelError
	if info.StatusCode < http.StatusInternalServerError {
		info.LogLevel = slog.LevelWarn
	}
	return info
}

// NewErrorHandler returns an ErrorHandler that logs err and answers with
// JSON, or with patched signals for DataStar requests.
func NewErrorHandler(log *slog.Logger, cfg ErrorHandlerConfig) ErrorHandler[Context] {
	if log == nil {
		log = slog.Default()
	}

	return func(ctx Context, err error) {
		r := ctx.Request()
		requestID := requestid.FromContext(r.Context())
		info := ClassifyError(err)

		log.LogAttrs(r.Context(), info.LogLevel, "request error",
			logger.RequestID(requestID),
			logger.Error(err),
			slog.Int("status_code", info.StatusCode),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Bool("is_datastar", IsDataStar(r)),
			logger.Component("error_handler"),
		)

		var body any = JSONResponse{Error: &ErrorDetail{
			Code:    info.Code,
			Message: info.Message,
			Details: info.Details,
		}}
		if cfg.Body != nil {
			body = cfg.Body(info, requestID)
		}

		resp := Signals(body, WithJSONStatus(info.StatusCode))
		if renderErr := resp.Render(ctx.ResponseWriter(), r); renderErr != nil {
			log.Error("failed to render error response",
				logger.RequestID(requestID),
				logger.Error(renderErr),
				logger.Event("render_error"),
			)
		}
	}
}

type failResponse struct{ err error }

func (f failResponse) Render(http.ResponseWriter, *http.Request) error { return f.err }

// Fail hands err to the wrapped handler's ErrorHandler, so a handler can
// report failures with the same logging and status mapping as bind errors.
func Fail(err error) Response {
	if err == nil {
		err = ErrInternal
	}
	return failResponse{err: err}
}
