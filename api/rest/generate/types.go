package generate

// Request represents the request body for UI generation
type Request struct {
	Prompt string `json:"prompt" binding:"required"`
}

// context key for the bound Request
const requestKey = "generate_request"

// generation outcomes recorded in metrics
const (
	resultSuccess       = "success"
	resultUpstreamError = "upstream_error"
	resultStreamError   = "stream_error"
	resultClientClosed  = "client_closed"
)
