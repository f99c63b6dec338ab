package types

type SuccessEnvelope struct {
	Data any         `json:"data"`
	Meta *Pagination `json:"meta,omitempty"`
}

// Pagination carries offset paging metadata for list responses.
type Pagination struct {
	Total  int64 `json:"total"`
	Offset int   `json:"offset"`
	Limit  int   `json:"limit"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}
