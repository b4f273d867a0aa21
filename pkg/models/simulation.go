package models

import "time"

// StepStatus defines the possible states of a simulated execution step.
type StepStatus string

const (
	StepStatusPending   StepStatus = "pending"
	StepStatusRunning   StepStatus = "running"
	StepStatusCompleted StepStatus = "completed"
	StepStatusFailed    StepStatus = "failed"
)

// ExecutionStep is one recorded node visitation during a simulation run.
// NodeTitle is a snapshot taken at execution time, not a live reference.
type ExecutionStep struct {
	NodeID    string     `json:"nodeId"`
	NodeTitle string     `json:"nodeTitle"`
	NodeType  NodeType   `json:"nodeType"`
	Status    StepStatus `json:"status"`
	Timestamp time.Time  `json:"timestamp"`
	Message   string     `json:"message"`
}

// SimulationResult is the trace of one simulation run. It is replaced
// wholesale on the next run, never patched.
type SimulationResult struct {
	Success       bool            `json:"success"`
	Steps         []ExecutionStep `json:"steps"`
	TotalDuration string          `json:"totalDuration"`
}
