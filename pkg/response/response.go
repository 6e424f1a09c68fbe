package response

type Body struct {
	Status  string `json:"status"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func Success(message string, data any) Body {
	return Body{
		Status:  "success",
		Message: message,
		Data:    data,
	}
}

func Error(code, message string, data any) Body {
	return Body{
		Status:  "error",
		Code:    code,
		Message: message,
		Data:    data,
	}
}
