package response

type ErrorBody struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

type Envelope struct {
	Success bool      `json:"success"`
	Error   ErrorBody `json:"error"`
}

func Error(code, message string, details interface{}) Envelope {
	return Envelope{
		Success: false,
		Error: ErrorBody{
			Code:    code,
			Message: message,
			Details: details,
		},
	}
}
