package models

// ValidationError reports one structural problem with the graph. NodeID is
// empty for graph-level errors. The full error list is recomputed on every
// validation pass and replaces the previous one.
type ValidationError struct {
	NodeID  string `json:"nodeId,omitempty"`
	Message string `json:"message"`
}
