// Package exchange encodes workflows for file download and decodes
// user-supplied documents back into graphs. Import is strict: a document that
// does not match the export schema exactly is rejected as a whole, so the
// store is never left holding a partial import.
package exchange

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/stafflow/stafflow/pkg/models"
)

// FileName is the suggested download name for exported workflows.
const FileName = "workflow.json"

// ErrInvalidDocument marks any import failure caused by the document itself.
var ErrInvalidDocument = errors.New("invalid workflow document")

// IsInvalidDocument reports whether err stems from a malformed import.
func IsInvalidDocument(err error) bool {
	return errors.Is(err, ErrInvalidDocument)
}

var workflowSchema = mustCompileSchema()

func mustCompileSchema() *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(workflowSchemaJSON))
	if err != nil {
		panic(fmt.Sprintf("exchange: workflow schema does not compile: %v", err))
	}

	return schema
}

// Export serializes the workflow as pretty-printed UTF-8 JSON in the same
// shape Import accepts.
func Export(workflow models.Workflow) ([]byte, error) {
	if workflow.Nodes == nil {
		workflow.Nodes = []*models.Node{}
	}

	if workflow.Edges == nil {
		workflow.Edges = []*models.Edge{}
	}

	data, err := json.MarshalIndent(workflow, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode workflow: %w", err)
	}

	return data, nil
}

// Import parses and validates a workflow document. The document must match
// the export schema exactly: unknown or missing fields, unknown node types,
// duplicate node ids, and edges referencing missing nodes are all rejected.
func Import(data []byte) (*models.Workflow, error) {
	result, err := workflowSchema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}

	if !result.Valid() {
		details := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			details = append(details, desc.String())
		}

		return nil, fmt.Errorf("%w: %s", ErrInvalidDocument, strings.Join(details, "; "))
	}

	var workflow models.Workflow

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	if err := dec.Decode(&workflow); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}

	if err := checkIntegrity(workflow); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}

	return &workflow, nil
}

func checkIntegrity(workflow models.Workflow) error {
	ids := make(map[string]bool, len(workflow.Nodes))

	for _, node := range workflow.Nodes {
		if ids[node.ID] {
			return fmt.Errorf("duplicate node id %q", node.ID)
		}

		ids[node.ID] = true
	}

	edgeIDs := make(map[string]bool, len(workflow.Edges))

	for _, edge := range workflow.Edges {
		if edgeIDs[edge.ID] {
			return fmt.Errorf("duplicate edge id %q", edge.ID)
		}

		edgeIDs[edge.ID] = true

		if !ids[edge.Source] {
			return fmt.Errorf("edge %q references missing source node %q", edge.ID, edge.Source)
		}

		if !ids[edge.Target] {
			return fmt.Errorf("edge %q references missing target node %q", edge.ID, edge.Target)
		}
	}

	return nil
}
