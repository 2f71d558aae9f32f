package responses

import "fmt"

// Error is the structured error payload the service reports, either inside a
// failed response, in a terminal error stream event, or as the body of a
// non-2xx reply. It implements error so it can travel through ordinary error
// returns and be recovered with errors.As.
type Error struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
	Param   string `json:"param,omitempty"`
	Type    string `json:"type,omitempty"`
}

func (e *Error) Error() string {
	if e == nil {
		return "responses: error"
	}
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return e.Message
}
