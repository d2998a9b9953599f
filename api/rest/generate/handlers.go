package generate

import (
	"errors"
	"net/http"
	"time"

	apierrors "codeberg.org/uigen/server/internal/errors"
	"codeberg.org/uigen/server/internal/llm"
	"codeberg.org/uigen/server/internal/logger"
	"codeberg.org/uigen/server/internal/metrics"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// GenerateUIHandler godoc
// @Summary Generate UI code with AI
// @Description Streams the model's raw output (a JSON object with html and react keys) as plain text
// @Tags generate
// @Accept json
// @Produce plain
// @Param request body Request true "UI description"
// @Success 200 {string} string "streamed completion text"
// @Failure 400 {object} errors.ErrorResponse
// @Failure 429 {object} errors.ErrorResponse
// @Failure 502 {object} errors.ErrorResponse
// @Router /api/generate-ui [post]
func Handler(completer llm.Completer) gin.HandlerFunc {
	provider := string(completer.Provider())

	return func(c *gin.Context) {
		req, ok := boundRequest(c)
		if !ok {
			return
		}

		start := time.Now()
		log := logger.FromContext(c.Request.Context())

		stream, err := completer.StreamCompletion(c.Request.Context(), llm.NewUIRequest(req.Prompt))
		if err != nil {
			metrics.IncGeneration(provider, resultUpstreamError)
			captureError(c, err)
			apierrors.UpstreamError(c, "failed to start generation", err)
			return
		}

		defer stream.Close() //nolint:errcheck

		c.Header("Content-Type", "text/plain; charset=utf-8")
		c.Header("Cache-Control", "no-cache")
		c.Header("X-Accel-Buffering", "no")
		c.Status(http.StatusOK)

		written, err := llm.Relay(stream, c.Writer, c.Writer.Flush)

		metrics.AddStreamBytes(written)
		metrics.ObserveGenerationDuration(provider, time.Since(start))

		if err == nil {
			metrics.IncGeneration(provider, resultSuccess)
			log.Info("generation completed",
				"model", completer.Model(),
				"bytes", written,
				"duration_ms", time.Since(start).Milliseconds(),
			)
			return
		}

		// a client that goes away cancels the request context, which surfaces
		// from Recv as context.Canceled rather than as a failed write
		if errors.Is(err, llm.ErrDownstream) || c.Request.Context().Err() != nil {
			metrics.IncGeneration(provider, resultClientClosed)
			log.Info("client closed stream", "bytes", written)
			return
		}

		metrics.IncGeneration(provider, resultStreamError)
		captureError(c, err)

		// nothing sent yet, so a proper error response is still possible
		if !c.Writer.Written() {
			c.Writer.Header().Del("Content-Type")
			apierrors.UpstreamError(c, "generation failed", err)
			return
		}

		log.Error("stream failed mid-response",
			"error", err,
			"category", apierrors.Category(err),
			"bytes", written,
		)

		// the client must see a broken transfer, not a clean end of a truncated body
		panic(http.ErrAbortHandler)
	}
}

// binds and validates the request body, storing it for the handler.
// runs ahead of the rate limiter so malformed requests never use up quota
func BindRequest() gin.HandlerFunc {
	return func(c *gin.Context) {
		req, ok := bindRequest(c)
		if !ok {
			c.Abort()
			return
		}

		c.Set(requestKey, req)
		c.Next()
	}
}

// returns the request stored by BindRequest, binding it here when the
// handler is mounted without it
func boundRequest(c *gin.Context) (Request, bool) {
	if v, ok := c.Get(requestKey); ok {
		if req, ok := v.(Request); ok {
			return req, true
		}
	}

	return bindRequest(c)
}

// writes a 400 and returns false when the body is not a valid Request
func bindRequest(c *gin.Context) (Request, bool) {
	var req Request

	if err := c.ShouldBindJSON(&req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			apierrors.ValidationError(c, err)
			return Request{}, false
		}

		apierrors.BadRequest(c, "request body must be a JSON object with a prompt", err)
		return Request{}, false
	}

	return req, true
}

func captureError(c *gin.Context, err error) {
	if hub := sentrygin.GetHubFromContext(c); hub != nil {
		hub.CaptureException(err)
	}
}
