// Package store owns the mutable workflow graph: nodes, edges, and the
// current selection. It is the single source of truth for the designer; the
// validator, simulation engine, and export path all work on snapshots taken
// from it.
package store

import (
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"github.com/stafflow/stafflow/pkg/models"
)

// LoadMode controls how an imported document is hydrated into the store.
type LoadMode string

const (
	// LoadModeReplace discards the current graph and keeps the imported ids,
	// giving an exact export/import round trip.
	LoadModeReplace LoadMode = "replace"
	// LoadModeMerge appends the imported graph with freshly generated ids so
	// the result never collides with existing nodes or edges.
	LoadModeMerge LoadMode = "merge"
)

// Store holds the graph being edited. Every mutation is atomic with respect
// to every other mutation: no partial graph state is ever observable. All
// operations are total; references to missing nodes or edges are absorbed as
// no-ops rather than errors.
type Store struct {
	mu               sync.Mutex
	nodes            []*models.Node // creation order, used only for stable iteration
	edges            []*models.Edge
	selectedNodeID   string // empty = no selection
	validationErrors []models.ValidationError
}

// New returns an empty store.
func New() *Store {
	return &Store{
		nodes: []*models.Node{},
		edges: []*models.Edge{},
	}
}

// AddNode creates a node of the given type at the given position with
// type-appropriate default data and a fresh id. It panics if nodeType is not
// one of the five known types; callers validate user input before reaching
// this point.
func (s *Store) AddNode(nodeType models.NodeType, position models.Position) *models.Node {
	node := &models.Node{
		ID:       uuid.NewString(),
		Type:     nodeType,
		Position: position,
		Data:     models.DefaultNodeData(nodeType),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.nodes = append(s.nodes, node)

	return node.Clone()
}

// UpdateNodeData merges the given fields into the node's payload by shallow
// key overwrite; fields absent from partial are preserved and the node's type
// never changes. A missing node id is a silent no-op. A partial that does not
// fit the payload shape is rejected with an error and leaves the node
// untouched.
func (s *Store) UpdateNodeData(nodeID string, partial map[string]json.RawMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	node := s.findNode(nodeID)
	if node == nil {
		return nil
	}

	merged, err := models.MergeNodeData(node.Data, partial)
	if err != nil {
		return err
	}

	node.Data = merged

	return nil
}

// DeleteNode removes the node and cascades to every edge touching it. If the
// node was selected, the selection is cleared. Missing ids are a no-op.
func (s *Store) DeleteNode(nodeID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.deleteNodeLocked(nodeID)
}

func (s *Store) deleteNodeLocked(nodeID string) {
	if s.findNode(nodeID) == nil {
		return
	}

	nodes := s.nodes[:0]

	for _, node := range s.nodes {
		if node.ID != nodeID {
			nodes = append(nodes, node)
		}
	}

	s.nodes = nodes

	edges := s.edges[:0]

	for _, edge := range s.edges {
		if edge.Source != nodeID && edge.Target != nodeID {
			edges = append(edges, edge)
		}
	}

	s.edges = edges

	if s.selectedNodeID == nodeID {
		s.selectedNodeID = ""
	}
}

// DeleteEdge removes the edge; missing ids are a no-op.
func (s *Store) DeleteEdge(edgeID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.deleteEdgeLocked(edgeID)
}

func (s *Store) deleteEdgeLocked(edgeID string) {
	edges := s.edges[:0]

	for _, edge := range s.edges {
		if edge.ID != edgeID {
			edges = append(edges, edge)
		}
	}

	s.edges = edges
}

// Connect creates a new edge between two existing nodes and returns it. When
// either endpoint is not in the node set the connection is rejected and ok is
// false; edges must never reference missing nodes. Self-loops and duplicate
// parallel edges are permitted.
func (s *Store) Connect(sourceID, targetID string) (*models.Edge, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findNode(sourceID) == nil || s.findNode(targetID) == nil {
		return nil, false
	}

	edge := &models.Edge{
		ID:     uuid.NewString(),
		Source: sourceID,
		Target: targetID,
	}

	s.edges = append(s.edges, edge)

	return &models.Edge{ID: edge.ID, Source: edge.Source, Target: edge.Target}, true
}

// Node returns a copy of the node with the given id, or false when it does
// not exist.
func (s *Store) Node(nodeID string) (*models.Node, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	node := s.findNode(nodeID)
	if node == nil {
		return nil, false
	}

	return node.Clone(), true
}

// SelectNode sets the selection to the given node id, or clears it when the
// id is empty or no longer references an existing node.
func (s *Store) SelectNode(nodeID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if nodeID == "" || s.findNode(nodeID) == nil {
		s.selectedNodeID = ""

		return
	}

	s.selectedNodeID = nodeID
}

// SelectedNode returns a copy of the currently selected node, or false when
// nothing is selected.
func (s *Store) SelectedNode() (*models.Node, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	node := s.findNode(s.selectedNodeID)
	if node == nil {
		return nil, false
	}

	return node.Clone(), true
}

// SelectedNodeID returns the id of the selected node, or empty.
func (s *Store) SelectedNodeID() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.selectedNodeID
}

// Clear empties nodes, edges, selection, and cached validation errors in one
// atomic operation.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nodes = []*models.Node{}
	s.edges = []*models.Edge{}
	s.selectedNodeID = ""
	s.validationErrors = nil
}

// Snapshot returns a deep copy of the current graph. Long-running consumers
// (the simulation engine, export) operate on the snapshot so concurrent edits
// cannot corrupt their view.
func (s *Store) Snapshot() models.Workflow {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() models.Workflow {
	nodes := make([]*models.Node, 0, len(s.nodes))
	for _, node := range s.nodes {
		nodes = append(nodes, node.Clone())
	}

	edges := make([]*models.Edge, 0, len(s.edges))
	for _, edge := range s.edges {
		copied := *edge
		edges = append(edges, &copied)
	}

	return models.Workflow{Nodes: nodes, Edges: edges}
}

// SetValidationErrors replaces the cached validation result wholesale.
func (s *Store) SetValidationErrors(errs []models.ValidationError) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.validationErrors = errs
}

// ValidationErrors returns the cached result of the last validation pass.
// The result is never nil so callers serialize it as an empty list.
func (s *Store) ValidationErrors() []models.ValidationError {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]models.ValidationError{}, s.validationErrors...)
}

// Load hydrates an imported workflow into the store. Replace mode swaps the
// whole graph and preserves imported ids; merge mode appends the imported
// graph under freshly generated ids, remapping edge endpoints accordingly.
// In both modes edges whose endpoints are not part of the resulting node set
// are dropped, selection is cleared, and cached validation errors are reset.
func (s *Store) Load(workflow models.Workflow, mode LoadMode) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if mode == LoadModeReplace {
		s.nodes = []*models.Node{}
		s.edges = []*models.Edge{}
	}

	idMap := make(map[string]string, len(workflow.Nodes))

	for _, node := range workflow.Nodes {
		imported := node.Clone()
		if mode == LoadModeMerge {
			imported.ID = uuid.NewString()
		}

		idMap[node.ID] = imported.ID
		s.nodes = append(s.nodes, imported)
	}

	for _, edge := range workflow.Edges {
		source, sourceOK := idMap[edge.Source]
		target, targetOK := idMap[edge.Target]

		if !sourceOK || !targetOK {
			continue
		}

		imported := &models.Edge{ID: edge.ID, Source: source, Target: target}
		if mode == LoadModeMerge {
			imported.ID = uuid.NewString()
		}

		s.edges = append(s.edges, imported)
	}

	s.selectedNodeID = ""
	s.validationErrors = nil
}

func (s *Store) findNode(nodeID string) *models.Node {
	if nodeID == "" {
		return nil
	}

	for _, node := range s.nodes {
		if node.ID == nodeID {
			return node
		}
	}

	return nil
}
