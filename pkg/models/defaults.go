package models

import "fmt"

// DefaultNodeData returns the configuration payload a freshly created node of
// the given type starts with. It is total over the five node types; any other
// value is a programming error and panics.
func DefaultNodeData(nodeType NodeType) NodeData {
	switch nodeType {
	case NodeTypeStart:
		return StartData{
			Title:    "Start",
			Metadata: []MetadataItem{},
		}
	case NodeTypeTask:
		return TaskData{
			Title:        "New Task",
			Description:  "",
			Assignee:     "",
			DueDate:      "",
			CustomFields: []CustomField{},
		}
	case NodeTypeApproval:
		return ApprovalData{
			Title:                "Approval Required",
			ApproverRole:         ApproverRoleManager,
			AutoApproveThreshold: 0,
		}
	case NodeTypeAutomated:
		return AutomatedData{
			Title:      "Automated Step",
			ActionID:   "",
			Parameters: map[string]string{},
		}
	case NodeTypeEnd:
		return EndData{
			Title:       "End",
			EndMessage:  "Workflow completed",
			ShowSummary: true,
		}
	default:
		panic(fmt.Sprintf("models: no default data for node type %q", nodeType))
	}
}
