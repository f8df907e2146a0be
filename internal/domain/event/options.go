package event

// ListOptions provides filtering options for listing events.
type ListOptions struct {
	ProjectID string
	Caller    string
	Method    string
	Limit     int
	Offset    int
}
