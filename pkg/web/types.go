package web

import (
	"github.com/stafflow/stafflow/pkg/catalog"
	"github.com/stafflow/stafflow/pkg/models"
	"github.com/stafflow/stafflow/pkg/store"
)

// CreateNodeRequest adds a node of the given type at a canvas position.
type CreateNodeRequest struct {
	Type     models.NodeType `json:"type"     validate:"required,oneof=start task approval automated end"`
	Position models.Position `json:"position"`
}

// ConnectRequest creates a directed edge between two existing nodes.
type ConnectRequest struct {
	Source string `json:"source" validate:"required"`
	Target string `json:"target" validate:"required"`
}

// SelectionRequest sets or clears the selected node. A null or empty nodeId
// clears the selection.
type SelectionRequest struct {
	NodeID *string `json:"nodeId"`
}

// ApplyChangesRequest carries a batch of incremental canvas updates.
type ApplyChangesRequest struct {
	Nodes []store.NodeChange `json:"nodes"`
	Edges []store.EdgeChange `json:"edges"`
}

// GraphResponse is the full editor state returned after reads and mutations.
type GraphResponse struct {
	Nodes            []*models.Node           `json:"nodes"`
	Edges            []*models.Edge           `json:"edges"`
	SelectedNodeID   string                   `json:"selectedNodeId,omitempty"`
	ValidationErrors []models.ValidationError `json:"validationErrors"`
}

// ValidateResponse reports the outcome of a validation pass.
type ValidateResponse struct {
	Valid  bool                     `json:"valid"`
	Errors []models.ValidationError `json:"errors"`
}

// ActionsResponse lists the automation catalog. Notice is set when the
// catalog provider failed and the list is served empty.
type ActionsResponse struct {
	Actions []catalog.Action `json:"actions"`
	Notice  string           `json:"notice,omitempty"`
}
