package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultNodeData_Start(t *testing.T) {
	data := DefaultNodeData(NodeTypeStart)

	start, ok := data.(StartData)
	require.True(t, ok)
	assert.Equal(t, "Start", start.Title)
	assert.Empty(t, start.Metadata)
	assert.Equal(t, NodeTypeStart, start.Kind())
}

func TestDefaultNodeData_Task(t *testing.T) {
	data := DefaultNodeData(NodeTypeTask)

	task, ok := data.(TaskData)
	require.True(t, ok)
	assert.Equal(t, "New Task", task.Title)
	assert.Empty(t, task.Assignee)
	assert.Empty(t, task.DueDate)
	assert.Empty(t, task.CustomFields)
}

func TestDefaultNodeData_Approval(t *testing.T) {
	data := DefaultNodeData(NodeTypeApproval)

	approval, ok := data.(ApprovalData)
	require.True(t, ok)
	assert.Equal(t, "Approval Required", approval.Title)
	assert.Equal(t, ApproverRoleManager, approval.ApproverRole)
	assert.Zero(t, approval.AutoApproveThreshold)
}

func TestDefaultNodeData_Automated(t *testing.T) {
	data := DefaultNodeData(NodeTypeAutomated)

	automated, ok := data.(AutomatedData)
	require.True(t, ok)
	assert.Equal(t, "Automated Step", automated.Title)
	assert.Empty(t, automated.ActionID)
	assert.Empty(t, automated.Parameters)
}

func TestDefaultNodeData_End(t *testing.T) {
	data := DefaultNodeData(NodeTypeEnd)

	end, ok := data.(EndData)
	require.True(t, ok)
	assert.Equal(t, "End", end.Title)
	assert.Equal(t, "Workflow completed", end.EndMessage)
	assert.True(t, end.ShowSummary)
}

func TestDefaultNodeData_UnknownTypePanics(t *testing.T) {
	assert.Panics(t, func() {
		DefaultNodeData(NodeType("gateway"))
	})
}

func TestNodeType_Valid(t *testing.T) {
	for _, nodeType := range NodeTypes {
		assert.True(t, nodeType.Valid(), "expected %q to be valid", nodeType)
	}

	assert.False(t, NodeType("decision").Valid())
	assert.False(t, NodeType("").Valid())
}

func TestNode_UnmarshalJSON(t *testing.T) {
	raw := `{
		"id": "node-1",
		"type": "task",
		"position": {"x": 120.5, "y": 80},
		"data": {
			"title": "Collect paperwork",
			"description": "Gather signed forms",
			"assignee": "maria",
			"dueDate": "2026-09-15",
			"customFields": [{"name": "office", "type": "select", "value": "berlin"}]
		}
	}`

	var node Node
	require.NoError(t, json.Unmarshal([]byte(raw), &node))

	assert.Equal(t, "node-1", node.ID)
	assert.Equal(t, NodeTypeTask, node.Type)
	assert.InDelta(t, 120.5, node.Position.X, 0.001)

	task, ok := node.Data.(TaskData)
	require.True(t, ok)
	assert.Equal(t, "Collect paperwork", task.Title)
	assert.Equal(t, "maria", task.Assignee)
	require.Len(t, task.CustomFields, 1)
	assert.Equal(t, CustomFieldTypeSelect, task.CustomFields[0].Type)
}

func TestNode_UnmarshalJSON_UnknownNodeType(t *testing.T) {
	raw := `{"id": "n1", "type": "decision", "position": {"x": 0, "y": 0}, "data": {"title": "?"}}`

	var node Node
	err := json.Unmarshal([]byte(raw), &node)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown node type")
}

func TestNode_UnmarshalJSON_UnknownPayloadField(t *testing.T) {
	raw := `{"id": "n1", "type": "end", "position": {"x": 0, "y": 0}, "data": {"title": "End", "endMessage": "done", "showSummary": false, "color": "red"}}`

	var node Node
	err := json.Unmarshal([]byte(raw), &node)
	assert.Error(t, err)
}

func TestNode_UnmarshalJSON_MissingData(t *testing.T) {
	raw := `{"id": "n1", "type": "start", "position": {"x": 0, "y": 0}}`

	var node Node
	err := json.Unmarshal([]byte(raw), &node)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing data payload")
}

func TestNode_Clone_Independence(t *testing.T) {
	node := &Node{
		ID:   "n1",
		Type: NodeTypeStart,
		Data: StartData{
			Title:    "Start",
			Metadata: []MetadataItem{{Key: "department", Value: "people"}},
		},
	}

	clone := node.Clone()

	start, ok := clone.Data.(StartData)
	require.True(t, ok)
	start.Metadata[0].Value = "finance"

	original, ok := node.Data.(StartData)
	require.True(t, ok)
	assert.Equal(t, "people", original.Metadata[0].Value)
}

func TestMergeNodeData_PreservesUnspecifiedFields(t *testing.T) {
	data := TaskData{
		Title:       "Review contract",
		Description: "Legal review",
		Assignee:    "sam",
	}

	partial := map[string]json.RawMessage{
		"assignee": json.RawMessage(`"lee"`),
	}

	merged, err := MergeNodeData(data, partial)
	require.NoError(t, err)

	task, ok := merged.(TaskData)
	require.True(t, ok)
	assert.Equal(t, "lee", task.Assignee)
	assert.Equal(t, "Review contract", task.Title)
	assert.Equal(t, "Legal review", task.Description)
}

func TestMergeNodeData_RejectsUnknownField(t *testing.T) {
	data := DefaultNodeData(NodeTypeApproval)

	partial := map[string]json.RawMessage{
		"escalation": json.RawMessage(`"cfo"`),
	}

	_, err := MergeNodeData(data, partial)
	assert.Error(t, err)
}

func TestMergeNodeData_EmptyPartialIsNoop(t *testing.T) {
	data := DefaultNodeData(NodeTypeEnd)

	merged, err := MergeNodeData(data, nil)
	require.NoError(t, err)
	assert.Equal(t, data, merged)
}

func TestMergeNodeData_KindNeverChanges(t *testing.T) {
	data := DefaultNodeData(NodeTypeAutomated)

	partial := map[string]json.RawMessage{
		"actionId": json.RawMessage(`"send_email"`),
	}

	merged, err := MergeNodeData(data, partial)
	require.NoError(t, err)
	assert.Equal(t, NodeTypeAutomated, merged.Kind())
}

func TestWorkflow_NodeByID(t *testing.T) {
	wf := Workflow{
		Nodes: []*Node{
			{ID: "a", Type: NodeTypeStart, Data: DefaultNodeData(NodeTypeStart)},
			{ID: "b", Type: NodeTypeEnd, Data: DefaultNodeData(NodeTypeEnd)},
		},
	}

	require.NotNil(t, wf.NodeByID("b"))
	assert.Equal(t, NodeTypeEnd, wf.NodeByID("b").Type)
	assert.Nil(t, wf.NodeByID("missing"))
}
