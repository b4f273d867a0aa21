package exchange_test

import (
	"testing"

	"github.com/stafflow/stafflow/pkg/exchange"
	"github.com/stafflow/stafflow/pkg/models"
	"github.com/stafflow/stafflow/pkg/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildGraph(t *testing.T) *store.Store {
	t.Helper()

	s := store.New()
	start := s.AddNode(models.NodeTypeStart, models.Position{X: 0, Y: 0})
	task := s.AddNode(models.NodeTypeTask, models.Position{X: 200, Y: 100})
	automated := s.AddNode(models.NodeTypeAutomated, models.Position{X: 400, Y: 100})
	end := s.AddNode(models.NodeTypeEnd, models.Position{X: 600, Y: 0})

	_, ok := s.Connect(start.ID, task.ID)
	require.True(t, ok)
	_, ok = s.Connect(task.ID, automated.ID)
	require.True(t, ok)
	_, ok = s.Connect(automated.ID, end.ID)
	require.True(t, ok)

	return s
}

func TestExportImport_RoundTrip(t *testing.T) {
	s := buildGraph(t)
	original := s.Snapshot()

	data, err := exchange.Export(original)
	require.NoError(t, err)

	imported, err := exchange.Import(data)
	require.NoError(t, err)

	// Replace mode preserves ids, so the round trip is exact.
	assert.Equal(t, original, *imported)
}

func TestExport_EmptyGraph(t *testing.T) {
	data, err := exchange.Export(models.Workflow{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"nodes": [], "edges": []}`, string(data))
}

func TestExport_IsPrettyPrinted(t *testing.T) {
	s := buildGraph(t)

	data, err := exchange.Export(s.Snapshot())
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n  \"nodes\"")
}

func TestImport_MalformedJSON(t *testing.T) {
	_, err := exchange.Import([]byte(`{"nodes": [`))
	require.Error(t, err)
	assert.True(t, exchange.IsInvalidDocument(err))
}

func TestImport_UnknownTopLevelField(t *testing.T) {
	_, err := exchange.Import([]byte(`{"nodes": [], "edges": [], "viewport": {}}`))
	require.Error(t, err)
	assert.True(t, exchange.IsInvalidDocument(err))
}

func TestImport_MissingPayloadField(t *testing.T) {
	doc := `{
		"nodes": [
			{"id": "n1", "type": "end", "position": {"x": 0, "y": 0}, "data": {"title": "End"}}
		],
		"edges": []
	}`

	_, err := exchange.Import([]byte(doc))
	require.Error(t, err)
	assert.True(t, exchange.IsInvalidDocument(err))
}

func TestImport_UnknownNodeType(t *testing.T) {
	doc := `{
		"nodes": [
			{"id": "n1", "type": "gateway", "position": {"x": 0, "y": 0}, "data": {"title": "?"}}
		],
		"edges": []
	}`

	_, err := exchange.Import([]byte(doc))
	assert.Error(t, err)
}

func TestImport_InvalidApproverRole(t *testing.T) {
	doc := `{
		"nodes": [
			{"id": "n1", "type": "approval", "position": {"x": 0, "y": 0},
			 "data": {"title": "Approve", "approverRole": "ceo", "autoApproveThreshold": 0}}
		],
		"edges": []
	}`

	_, err := exchange.Import([]byte(doc))
	assert.Error(t, err)
}

func TestImport_DanglingEdge(t *testing.T) {
	doc := `{
		"nodes": [
			{"id": "n1", "type": "start", "position": {"x": 0, "y": 0},
			 "data": {"title": "Start", "metadata": []}}
		],
		"edges": [{"id": "e1", "source": "n1", "target": "ghost"}]
	}`

	_, err := exchange.Import([]byte(doc))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing target node")
}

func TestImport_DuplicateNodeID(t *testing.T) {
	doc := `{
		"nodes": [
			{"id": "n1", "type": "start", "position": {"x": 0, "y": 0},
			 "data": {"title": "Start", "metadata": []}},
			{"id": "n1", "type": "end", "position": {"x": 0, "y": 0},
			 "data": {"title": "End", "endMessage": "", "showSummary": false}}
		],
		"edges": []
	}`

	_, err := exchange.Import([]byte(doc))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate node id")
}

func TestImport_ThenLoadRoundTripThroughStore(t *testing.T) {
	s := buildGraph(t)

	data, err := exchange.Export(s.Snapshot())
	require.NoError(t, err)

	imported, err := exchange.Import(data)
	require.NoError(t, err)

	fresh := store.New()
	fresh.Load(*imported, store.LoadModeReplace)

	assert.Equal(t, s.Snapshot(), fresh.Snapshot())
}
