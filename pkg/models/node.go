// Package models defines the core domain models for the workflow designer graph.
package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// NodeType discriminates the five kinds of workflow nodes.
type NodeType string

const (
	NodeTypeStart     NodeType = "start"
	NodeTypeTask      NodeType = "task"
	NodeTypeApproval  NodeType = "approval"
	NodeTypeAutomated NodeType = "automated"
	NodeTypeEnd       NodeType = "end"
)

// NodeTypes lists every valid node type in declaration order.
var NodeTypes = []NodeType{
	NodeTypeStart,
	NodeTypeTask,
	NodeTypeApproval,
	NodeTypeAutomated,
	NodeTypeEnd,
}

// Valid reports whether t is one of the five known node types.
func (t NodeType) Valid() bool {
	switch t {
	case NodeTypeStart, NodeTypeTask, NodeTypeApproval, NodeTypeAutomated, NodeTypeEnd:
		return true
	default:
		return false
	}
}

// ApproverRole identifies who signs off an approval step.
type ApproverRole string

const (
	ApproverRoleManager  ApproverRole = "manager"
	ApproverRoleHRBP     ApproverRole = "hrbp"
	ApproverRoleDirector ApproverRole = "director"
)

// CustomFieldType is the input kind of a task custom field.
type CustomFieldType string

const (
	CustomFieldTypeText   CustomFieldType = "text"
	CustomFieldTypeNumber CustomFieldType = "number"
	CustomFieldTypeDate   CustomFieldType = "date"
	CustomFieldTypeSelect CustomFieldType = "select"
)

// Position holds x/y canvas coordinates for rendering a node.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// MetadataItem is one key/value pair attached to a Start node. Order is
// significant for display; duplicate keys are allowed.
type MetadataItem struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// CustomField is one user-defined field on a Task node.
type CustomField struct {
	Name  string          `json:"name"`
	Type  CustomFieldType `json:"type"  validate:"oneof=text number date select"`
	Value string          `json:"value"`
}

// NodeData is the configuration payload of a node. Exactly one concrete
// payload type exists per NodeType; the set is closed and every consumer
// switches over it exhaustively.
type NodeData interface {
	// Kind returns the discriminant this payload belongs to.
	Kind() NodeType
	// NodeTitle returns the display title of the node.
	NodeTitle() string
	// Clone returns a deep copy sharing no mutable state with the receiver.
	Clone() NodeData
}

// StartData configures a Start node.
type StartData struct {
	Title    string         `json:"title"    validate:"required"`
	Metadata []MetadataItem `json:"metadata"`
}

func (d StartData) Kind() NodeType    { return NodeTypeStart }
func (d StartData) NodeTitle() string { return d.Title }

func (d StartData) Clone() NodeData {
	if d.Metadata != nil {
		d.Metadata = append([]MetadataItem{}, d.Metadata...)
	}

	return d
}

// TaskData configures a human Task node. An empty Assignee means unassigned.
type TaskData struct {
	Title        string        `json:"title"        validate:"required"`
	Description  string        `json:"description"`
	Assignee     string        `json:"assignee"`
	DueDate      string        `json:"dueDate"`
	CustomFields []CustomField `json:"customFields"`
}

func (d TaskData) Kind() NodeType    { return NodeTypeTask }
func (d TaskData) NodeTitle() string { return d.Title }

func (d TaskData) Clone() NodeData {
	if d.CustomFields != nil {
		d.CustomFields = append([]CustomField{}, d.CustomFields...)
	}

	return d
}

// ApprovalData configures an Approval node. An AutoApproveThreshold of 0
// means auto-approval is disabled.
type ApprovalData struct {
	Title                string       `json:"title"                validate:"required"`
	ApproverRole         ApproverRole `json:"approverRole"         validate:"oneof=manager hrbp director"`
	AutoApproveThreshold float64      `json:"autoApproveThreshold" validate:"gte=0"`
}

func (d ApprovalData) Kind() NodeType    { return NodeTypeApproval }
func (d ApprovalData) NodeTitle() string { return d.Title }
func (d ApprovalData) Clone() NodeData   { return d }

// AutomatedData configures an Automated node. An empty ActionID means no
// catalog action has been selected yet.
type AutomatedData struct {
	Title      string            `json:"title"      validate:"required"`
	ActionID   string            `json:"actionId"`
	Parameters map[string]string `json:"parameters"`
}

func (d AutomatedData) Kind() NodeType    { return NodeTypeAutomated }
func (d AutomatedData) NodeTitle() string { return d.Title }

func (d AutomatedData) Clone() NodeData {
	if d.Parameters != nil {
		params := make(map[string]string, len(d.Parameters))
		for k, v := range d.Parameters {
			params[k] = v
		}

		d.Parameters = params
	}

	return d
}

// EndData configures an End node.
type EndData struct {
	Title       string `json:"title"       validate:"required"`
	EndMessage  string `json:"endMessage"`
	ShowSummary bool   `json:"showSummary"`
}

func (d EndData) Kind() NodeType    { return NodeTypeEnd }
func (d EndData) NodeTitle() string { return d.Title }
func (d EndData) Clone() NodeData   { return d }

// Node is a typed vertex in the workflow graph.
type Node struct {
	ID       string   `json:"id"       validate:"required"`
	Type     NodeType `json:"type"     validate:"required"`
	Position Position `json:"position"`
	Data     NodeData `json:"data"     validate:"required"`
}

// Clone returns a deep copy of the node.
func (n *Node) Clone() *Node {
	clone := *n
	if n.Data != nil {
		clone.Data = n.Data.Clone()
	}

	return &clone
}

// UnmarshalJSON decodes a node strictly: unknown fields are rejected and the
// data payload is decoded into the concrete type selected by the node's type
// discriminant.
func (n *Node) UnmarshalJSON(b []byte) error {
	var raw struct {
		ID       string          `json:"id"`
		Type     NodeType        `json:"type"`
		Position Position        `json:"position"`
		Data     json.RawMessage `json:"data"`
	}

	dec := json.NewDecoder(bytes.NewReader(b))
	dec.DisallowUnknownFields()

	if err := dec.Decode(&raw); err != nil {
		return fmt.Errorf("decode node: %w", err)
	}

	data, err := UnmarshalNodeData(raw.Type, raw.Data)
	if err != nil {
		return fmt.Errorf("decode node %q: %w", raw.ID, err)
	}

	n.ID = raw.ID
	n.Type = raw.Type
	n.Position = raw.Position
	n.Data = data

	return nil
}

// UnmarshalNodeData decodes raw JSON into the payload type selected by
// nodeType. Unknown fields fail the decode, keeping the payload union closed
// on the wire as well as in the type system.
func UnmarshalNodeData(nodeType NodeType, raw json.RawMessage) (NodeData, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("missing data payload for %q node", nodeType)
	}

	decode := func(v any) error {
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.DisallowUnknownFields()

		return dec.Decode(v)
	}

	switch nodeType {
	case NodeTypeStart:
		var d StartData
		if err := decode(&d); err != nil {
			return nil, fmt.Errorf("start payload: %w", err)
		}

		return d, nil
	case NodeTypeTask:
		var d TaskData
		if err := decode(&d); err != nil {
			return nil, fmt.Errorf("task payload: %w", err)
		}

		return d, nil
	case NodeTypeApproval:
		var d ApprovalData
		if err := decode(&d); err != nil {
			return nil, fmt.Errorf("approval payload: %w", err)
		}

		return d, nil
	case NodeTypeAutomated:
		var d AutomatedData
		if err := decode(&d); err != nil {
			return nil, fmt.Errorf("automated payload: %w", err)
		}

		return d, nil
	case NodeTypeEnd:
		var d EndData
		if err := decode(&d); err != nil {
			return nil, fmt.Errorf("end payload: %w", err)
		}

		return d, nil
	default:
		return nil, fmt.Errorf("unknown node type %q", nodeType)
	}
}

// Edge is a directed connection between two nodes. Self-loops and parallel
// edges between the same pair are permitted.
type Edge struct {
	ID     string `json:"id"     validate:"required"`
	Source string `json:"source" validate:"required"`
	Target string `json:"target" validate:"required"`
}

// Workflow is a snapshot of the full graph. It is the unit of validation,
// simulation, and export.
type Workflow struct {
	Nodes []*Node `json:"nodes"`
	Edges []*Edge `json:"edges"`
}

// NodeByID returns the node with the given id, or nil.
func (w Workflow) NodeByID(id string) *Node {
	for _, node := range w.Nodes {
		if node.ID == id {
			return node
		}
	}

	return nil
}
