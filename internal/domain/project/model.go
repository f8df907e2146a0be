package project

import (
	"encoding/json"
	"fmt"
)

// Status is the lifecycle state of a project.
type Status string

const (
	StatusOpen       Status = "Open"
	StatusInProgress Status = "InProgress"
	StatusCompleted  Status = "Completed"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusCompleted:
		return true
	default:
		return false
	}
}

// UnmarshalJSON rejects unknown statuses.
func (s *Status) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidStatus, string(data))
	}
	status := Status(raw)
	if !status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
	}
	*s = status
	return nil
}

// Project is a single live project record.
type Project struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Owner          string   `json:"owner"`
	SkillsRequired []string `json:"skills_required"`
	Status         Status   `json:"status"`
	IsPaid         bool     `json:"is_paid"`
}

// Config holds the values fixed at instantiation.
type Config struct {
	Admin string `json:"admin"`
}

// Attribute is a single key/value pair emitted by an operation.
type Attribute struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Response is the outcome of a successful state-changing operation.
// The first attribute is always the method name.
type Response struct {
	Attributes []Attribute `json:"attributes"`
}

// NewResponse starts a response for the given method.
func NewResponse(method string) *Response {
	return &Response{Attributes: []Attribute{{Key: "method", Value: method}}}
}

// Add appends an attribute and returns the response for chaining.
func (r *Response) Add(key, value string) *Response {
	r.Attributes = append(r.Attributes, Attribute{Key: key, Value: value})
	return r
}

// Attr returns the value of the first attribute with the given key.
func (r *Response) Attr(key string) (string, bool) {
	for _, attr := range r.Attributes {
		if attr.Key == key {
			return attr.Value, true
		}
	}
	return "", false
}

// Method returns the method attribute.
func (r *Response) Method() string {
	method, _ := r.Attr("method")
	return method
}
