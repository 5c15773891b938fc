package client

import "encoding/json"

// The backend wraps most responses in {success, data, message?, error?}, but
// not all of them: some endpoints return bare payloads and the list endpoints
// add a pagination block. All unwrapping goes through this file so that no
// second convention leaks past the service boundary.

type envelope struct {
	Success    *bool           `json:"success,omitempty"`
	Data       json.RawMessage `json:"data,omitempty"`
	Message    string          `json:"message,omitempty"`
	Error      string          `json:"error,omitempty"`
	Pagination *wirePagination `json:"pagination,omitempty"`
}

type wirePagination struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"totalPages"`
	HasNext    bool `json:"hasNext"`
	HasPrev    bool `json:"hasPrev"`
}

// failureMessage picks the human-readable message for a failed response,
// preferring the server's message field, then its error field.
func (e *envelope) failureMessage() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Error != "" {
		return e.Error
	}
	return "request failed"
}

// decodeEnvelope normalizes a response body into out. Rules, applied
// uniformly across all service modules:
//
//   - payload has a boolean success field: on success decode data into out
//     (or, when there is no data field, the raw payload, so that sibling
//     fields like "recommendations" stay reachable); on failure return an
//     APIError carrying the server message.
//   - no success field: decode data if present, else the raw payload.
func decodeEnvelope(body []byte, out any) error {
	if len(body) == 0 {
		return nil
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		// Not an object (bare array, string, ...): the payload is the value.
		if out == nil {
			return nil
		}
		return json.Unmarshal(body, out)
	}

	if env.Success != nil && !*env.Success {
		return &APIError{Message: env.failureMessage()}
	}

	if out == nil {
		return nil
	}
	if len(env.Data) > 0 {
		return json.Unmarshal(env.Data, out)
	}
	return json.Unmarshal(body, out)
}

// PageResult is the flat pagination shape used throughout the client,
// adapted from the backend's nested pagination block.
type PageResult[T any] struct {
	Items      []T `json:"items"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

// decodePage adapts a list response into a PageResult. A wrapped response
// with a pagination block maps field for field; a bare array synthesizes a
// single page from its length, keeping the caller's requested limit.
func decodePage[T any](body []byte, limit int) (*PageResult[T], error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err == nil && (env.Success != nil || len(env.Data) > 0) {
		if env.Success != nil && !*env.Success {
			return nil, &APIError{Message: env.failureMessage()}
		}
		var items []T
		if len(env.Data) > 0 {
			if err := json.Unmarshal(env.Data, &items); err != nil {
				return nil, err
			}
		}
		if env.Pagination != nil {
			return &PageResult[T]{
				Items:      items,
				Total:      env.Pagination.Total,
				Page:       env.Pagination.Page,
				Limit:      env.Pagination.Limit,
				TotalPages: env.Pagination.TotalPages,
			}, nil
		}
		return singlePage(items, limit), nil
	}

	var items []T
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, err
	}
	return singlePage(items, limit), nil
}

func singlePage[T any](items []T, limit int) *PageResult[T] {
	return &PageResult[T]{
		Items:      items,
		Total:      len(items),
		Page:       1,
		Limit:      limit,
		TotalPages: 1,
	}
}
