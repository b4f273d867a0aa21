// Package validation computes the structural correctness of a workflow graph.
package validation

import (
	"fmt"

	"github.com/stafflow/stafflow/pkg/models"
)

// Error messages surfaced to the designer UI.
const (
	msgNoStartNode      = "Workflow must have a Start node"
	msgMultipleStart    = "Workflow can only have one Start node"
	msgNoEndNode        = "Workflow must have an End node"
	msgStartHasIncoming = "Start node cannot have incoming connections"
	msgNodeNotConnected = "Node %q is not connected"
)

// Validate inspects the graph and returns the complete ordered list of
// structural errors. The result is recomputed in full on every call and
// replaces any previous one; an empty list means the graph is valid.
//
// Rules, in reporting order: Start-node cardinality, End-node presence,
// Start-node in-degree, and connectivity. A single-node graph is never
// flagged as disconnected.
func Validate(workflow models.Workflow) []models.ValidationError {
	errs := []models.ValidationError{}

	var startNodes []*models.Node

	endCount := 0

	for _, node := range workflow.Nodes {
		switch node.Type {
		case models.NodeTypeStart:
			startNodes = append(startNodes, node)
		case models.NodeTypeEnd:
			endCount++
		}
	}

	switch {
	case len(startNodes) == 0:
		errs = append(errs, models.ValidationError{Message: msgNoStartNode})
	case len(startNodes) > 1:
		errs = append(errs, models.ValidationError{Message: msgMultipleStart})
	}

	if endCount == 0 {
		errs = append(errs, models.ValidationError{Message: msgNoEndNode})
	}

	if len(startNodes) == 1 {
		start := startNodes[0]
		for _, edge := range workflow.Edges {
			if edge.Target == start.ID {
				errs = append(errs, models.ValidationError{
					NodeID:  start.ID,
					Message: msgStartHasIncoming,
				})

				break
			}
		}
	}

	connected := make(map[string]bool, len(workflow.Nodes))
	for _, edge := range workflow.Edges {
		connected[edge.Source] = true
		connected[edge.Target] = true
	}

	for _, node := range workflow.Nodes {
		if len(workflow.Nodes) > 1 && !connected[node.ID] {
			errs = append(errs, models.ValidationError{
				NodeID:  node.ID,
				Message: fmt.Sprintf(msgNodeNotConnected, node.Data.NodeTitle()),
			})
		}
	}

	return errs
}
