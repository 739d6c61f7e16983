package response

import (
	"net/http"
	"runtime/debug"

	"github.com/labstack/echo/v4"

	"github.com/Sujeet-Kumar0/Coffee-Serverless-App/pkg/errorbank"
)

// Builder helps construct consistent HTTP responses. Successful responses
// carry the top-level fields attached with WithMessage/WithField; error
// responses carry the error message, plus cause detail when debug mode is on.
type Builder struct {
	ctx    echo.Context
	status int
	fields map[string]any
	err    error
	debug  bool
}

// New instantiates a Builder for the provided request context.
func New(ctx echo.Context) *Builder {
	return &Builder{ctx: ctx, status: http.StatusOK}
}

// Debug toggles exposure of error detail in the response body.
func (b *Builder) Debug(enabled bool) *Builder {
	b.debug = enabled
	return b
}

// WithStatus overrides the response status code.
func (b *Builder) WithStatus(status int) *Builder {
	if status > 0 {
		b.status = status
	}
	return b
}

// WithMessage attaches a human-readable message.
func (b *Builder) WithMessage(message string) *Builder {
	return b.WithField("message", message)
}

// WithField attaches a named top-level field. A nil value is kept so the
// field renders as JSON null rather than being dropped.
func (b *Builder) WithField(key string, value any) *Builder {
	if key == "" {
		return b
	}
	if b.fields == nil {
		b.fields = make(map[string]any)
	}
	b.fields[key] = value
	return b
}

// WithError records an error to be rendered.
func (b *Builder) WithError(err error) *Builder {
	b.err = err
	return b
}

// Build finalises and emits the HTTP response.
func (b *Builder) Build() error {
	if b.err != nil {
		return b.buildError()
	}
	if b.status == 0 {
		b.status = http.StatusOK
	}
	if b.fields == nil {
		b.fields = make(map[string]any)
	}
	return b.ctx.JSON(b.status, b.fields)
}

func (b *Builder) buildError() error {
	appErr := errorbank.From(b.err)
	status := b.status
	if status < http.StatusBadRequest {
		status = appErr.StatusCode()
	}

	payload := map[string]any{
		"message": appErr.Message(),
	}
	if b.debug {
		if cause := appErr.Unwrap(); cause != nil {
			payload["error"] = cause.Error()
			payload["stack"] = string(debug.Stack())
		}
	}

	return b.ctx.JSON(status, payload)
}
