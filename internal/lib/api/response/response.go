package response

// Response is the JSON envelope returned by every API handler.
type Response struct {
	Status string `json:"status"`
	Data   any    `json:"data,omitempty"`
	Error  string `json:"error,omitempty"`
}

const (
	statusOk    = "ok"
	statusError = "error"
)

// Ok wraps a successful payload.
func Ok(data any) Response {
	return Response{
		Status: statusOk,
		Data:   data,
	}
}

// Error wraps an error message.
func Error(msg string) Response {
	return Response{
		Status: statusError,
		Error:  msg,
	}
}
