package store

import "github.com/stafflow/stafflow/pkg/models"

// NodeChangeType enumerates the incremental node updates produced by
// interactive editing on the canvas.
type NodeChangeType string

const (
	NodeChangePosition NodeChangeType = "position"
	NodeChangeSelect   NodeChangeType = "select"
	NodeChangeRemove   NodeChangeType = "remove"
)

// NodeChange is one incremental update to a single node, typically emitted in
// bulk while dragging. Changes referencing missing nodes are ignored.
type NodeChange struct {
	Type     NodeChangeType   `json:"type"     validate:"required,oneof=position select remove"`
	NodeID   string           `json:"nodeId"   validate:"required"`
	Position *models.Position `json:"position,omitempty"`
	Selected *bool            `json:"selected,omitempty"`
}

// EdgeChangeType enumerates incremental edge updates.
type EdgeChangeType string

const (
	EdgeChangeRemove EdgeChangeType = "remove"
)

// EdgeChange is one incremental update to a single edge.
type EdgeChange struct {
	Type   EdgeChangeType `json:"type"   validate:"required,oneof=remove"`
	EdgeID string         `json:"edgeId" validate:"required"`
}

// ApplyNodeChanges applies a batch of incremental node updates atomically.
// Position changes touch only the position of the targeted node; every other
// field of every other node is preserved. Removals cascade like DeleteNode.
func (s *Store) ApplyNodeChanges(changes []NodeChange) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, change := range changes {
		switch change.Type {
		case NodeChangePosition:
			node := s.findNode(change.NodeID)
			if node != nil && change.Position != nil {
				node.Position = *change.Position
			}
		case NodeChangeSelect:
			if change.Selected != nil && !*change.Selected {
				if s.selectedNodeID == change.NodeID {
					s.selectedNodeID = ""
				}

				continue
			}

			if s.findNode(change.NodeID) != nil {
				s.selectedNodeID = change.NodeID
			}
		case NodeChangeRemove:
			s.deleteNodeLocked(change.NodeID)
		}
	}
}

// ApplyEdgeChanges applies a batch of incremental edge updates atomically.
func (s *Store) ApplyEdgeChanges(changes []EdgeChange) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, change := range changes {
		if change.Type == EdgeChangeRemove {
			s.deleteEdgeLocked(change.EdgeID)
		}
	}
}
