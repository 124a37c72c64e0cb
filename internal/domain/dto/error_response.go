package dto

// ErrorResponse is the body of every non-2xx response.
//
//	{"detail": "yahoo: No data found, symbol may be delisted"}
type ErrorResponse struct {
	Detail string `json:"detail" example:"symbol_list: must contain at least 1 item"`
}

// Error implements the error interface so an ErrorResponse can travel through
// gin's error list.
func (e ErrorResponse) Error() string {
	return e.Detail
}

// NewErrorResponse builds an ErrorResponse. When both are given the detail is
// "message: err"; when message is empty the error text is used verbatim.
func NewErrorResponse(message string, err error) ErrorResponse {
	switch {
	case err == nil:
		return ErrorResponse{Detail: message}
	case message == "":
		return ErrorResponse{Detail: err.Error()}
	default:
		return ErrorResponse{Detail: message + ": " + err.Error()}
	}
}
