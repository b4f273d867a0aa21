package store

import (
	"testing"

	"github.com/stafflow/stafflow/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyNodeChanges_Position(t *testing.T) {
	s := New()
	moved := s.AddNode(models.NodeTypeTask, models.Position{X: 1, Y: 2})
	fixed := s.AddNode(models.NodeTypeEnd, models.Position{X: 5, Y: 6})

	s.ApplyNodeChanges([]NodeChange{
		{Type: NodeChangePosition, NodeID: moved.ID, Position: &models.Position{X: 100, Y: 200}},
	})

	snapshot := s.Snapshot()
	require.Len(t, snapshot.Nodes, 2)
	assert.InDelta(t, 100, snapshot.Nodes[0].Position.X, 0.001)
	assert.InDelta(t, 200, snapshot.Nodes[0].Position.Y, 0.001)

	// Untouched nodes keep all their fields.
	assert.Equal(t, fixed.ID, snapshot.Nodes[1].ID)
	assert.InDelta(t, 5, snapshot.Nodes[1].Position.X, 0.001)
	assert.Equal(t, "End", snapshot.Nodes[1].Data.NodeTitle())
}

func TestApplyNodeChanges_PositionPreservesData(t *testing.T) {
	s := New()
	node := s.AddNode(models.NodeTypeApproval, models.Position{})

	s.ApplyNodeChanges([]NodeChange{
		{Type: NodeChangePosition, NodeID: node.ID, Position: &models.Position{X: 42}},
	})

	approval, ok := s.Snapshot().Nodes[0].Data.(models.ApprovalData)
	require.True(t, ok)
	assert.Equal(t, models.ApproverRoleManager, approval.ApproverRole)
}

func TestApplyNodeChanges_Select(t *testing.T) {
	s := New()
	node := s.AddNode(models.NodeTypeTask, models.Position{})

	selected := true
	s.ApplyNodeChanges([]NodeChange{
		{Type: NodeChangeSelect, NodeID: node.ID, Selected: &selected},
	})
	assert.Equal(t, node.ID, s.SelectedNodeID())

	deselected := false
	s.ApplyNodeChanges([]NodeChange{
		{Type: NodeChangeSelect, NodeID: node.ID, Selected: &deselected},
	})
	assert.Empty(t, s.SelectedNodeID())
}

func TestApplyNodeChanges_Remove(t *testing.T) {
	s := New()
	a := s.AddNode(models.NodeTypeStart, models.Position{})
	b := s.AddNode(models.NodeTypeEnd, models.Position{})
	s.Connect(a.ID, b.ID)

	s.ApplyNodeChanges([]NodeChange{
		{Type: NodeChangeRemove, NodeID: b.ID},
	})

	snapshot := s.Snapshot()
	assert.Len(t, snapshot.Nodes, 1)
	assert.Empty(t, snapshot.Edges, "removal cascades to touching edges")
}

func TestApplyNodeChanges_MissingNodeIgnored(t *testing.T) {
	s := New()
	s.AddNode(models.NodeTypeStart, models.Position{})

	s.ApplyNodeChanges([]NodeChange{
		{Type: NodeChangePosition, NodeID: "ghost", Position: &models.Position{X: 1}},
	})

	assert.Len(t, s.Snapshot().Nodes, 1)
}

func TestApplyEdgeChanges_Remove(t *testing.T) {
	s := New()
	a := s.AddNode(models.NodeTypeStart, models.Position{})
	b := s.AddNode(models.NodeTypeEnd, models.Position{})
	edge, _ := s.Connect(a.ID, b.ID)

	s.ApplyEdgeChanges([]EdgeChange{
		{Type: EdgeChangeRemove, EdgeID: edge.ID},
		{Type: EdgeChangeRemove, EdgeID: "missing"},
	})

	assert.Empty(t, s.Snapshot().Edges)
}
