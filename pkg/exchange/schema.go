package exchange

// workflowSchemaJSON is the JSON Schema every imported document must satisfy.
// It mirrors the export format exactly: unknown fields are rejected and every
// payload field is required, so a document either round-trips cleanly or is
// refused before it can touch the store.
const workflowSchemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "title": "Workflow",
  "type": "object",
  "required": ["nodes", "edges"],
  "additionalProperties": false,
  "properties": {
    "nodes": {
      "type": "array",
      "items": {"$ref": "#/definitions/node"}
    },
    "edges": {
      "type": "array",
      "items": {"$ref": "#/definitions/edge"}
    }
  },
  "definitions": {
    "node": {
      "type": "object",
      "required": ["id", "type", "position", "data"],
      "additionalProperties": false,
      "properties": {
        "id": {"type": "string", "minLength": 1},
        "type": {"enum": ["start", "task", "approval", "automated", "end"]},
        "position": {
          "type": "object",
          "required": ["x", "y"],
          "additionalProperties": false,
          "properties": {
            "x": {"type": "number"},
            "y": {"type": "number"}
          }
        },
        "data": {"type": "object"}
      },
      "allOf": [
        {
          "if": {"properties": {"type": {"const": "start"}}},
          "then": {"properties": {"data": {"$ref": "#/definitions/startData"}}}
        },
        {
          "if": {"properties": {"type": {"const": "task"}}},
          "then": {"properties": {"data": {"$ref": "#/definitions/taskData"}}}
        },
        {
          "if": {"properties": {"type": {"const": "approval"}}},
          "then": {"properties": {"data": {"$ref": "#/definitions/approvalData"}}}
        },
        {
          "if": {"properties": {"type": {"const": "automated"}}},
          "then": {"properties": {"data": {"$ref": "#/definitions/automatedData"}}}
        },
        {
          "if": {"properties": {"type": {"const": "end"}}},
          "then": {"properties": {"data": {"$ref": "#/definitions/endData"}}}
        }
      ]
    },
    "edge": {
      "type": "object",
      "required": ["id", "source", "target"],
      "additionalProperties": false,
      "properties": {
        "id": {"type": "string", "minLength": 1},
        "source": {"type": "string", "minLength": 1},
        "target": {"type": "string", "minLength": 1}
      }
    },
    "startData": {
      "type": "object",
      "required": ["title", "metadata"],
      "additionalProperties": false,
      "properties": {
        "title": {"type": "string"},
        "metadata": {
          "type": "array",
          "items": {
            "type": "object",
            "required": ["key", "value"],
            "additionalProperties": false,
            "properties": {
              "key": {"type": "string"},
              "value": {"type": "string"}
            }
          }
        }
      }
    },
    "taskData": {
      "type": "object",
      "required": ["title", "description", "assignee", "dueDate", "customFields"],
      "additionalProperties": false,
      "properties": {
        "title": {"type": "string"},
        "description": {"type": "string"},
        "assignee": {"type": "string"},
        "dueDate": {"type": "string"},
        "customFields": {
          "type": "array",
          "items": {
            "type": "object",
            "required": ["name", "type", "value"],
            "additionalProperties": false,
            "properties": {
              "name": {"type": "string"},
              "type": {"enum": ["text", "number", "date", "select"]},
              "value": {"type": "string"}
            }
          }
        }
      }
    },
    "approvalData": {
      "type": "object",
      "required": ["title", "approverRole", "autoApproveThreshold"],
      "additionalProperties": false,
      "properties": {
        "title": {"type": "string"},
        "approverRole": {"enum": ["manager", "hrbp", "director"]},
        "autoApproveThreshold": {"type": "number", "minimum": 0}
      }
    },
    "automatedData": {
      "type": "object",
      "required": ["title", "actionId", "parameters"],
      "additionalProperties": false,
      "properties": {
        "title": {"type": "string"},
        "actionId": {"type": "string"},
        "parameters": {
          "type": "object",
          "additionalProperties": {"type": "string"}
        }
      }
    },
    "endData": {
      "type": "object",
      "required": ["title", "endMessage", "showSummary"],
      "additionalProperties": false,
      "properties": {
        "title": {"type": "string"},
        "endMessage": {"type": "string"},
        "showSummary": {"type": "boolean"}
      }
    }
  }
}`
