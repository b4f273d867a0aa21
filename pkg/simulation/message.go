package simulation

import (
	"fmt"

	"github.com/stafflow/stafflow/pkg/models"
)

// StepMessage renders the human-readable trace line for one node visit. It is
// a pure function of the node's payload. The payload union is closed; a
// payload type outside it is a programming error and panics.
func StepMessage(data models.NodeData) string {
	switch d := data.(type) {
	case models.StartData:
		return "Workflow started: " + d.Title
	case models.TaskData:
		assignee := d.Assignee
		if assignee == "" {
			assignee = "unassigned"
		}

		return fmt.Sprintf("Task \"%s\" assigned to %s", d.Title, assignee)
	case models.ApprovalData:
		role := d.ApproverRole
		if role == "" {
			role = models.ApproverRoleManager
		}

		return "Awaiting approval from " + string(role)
	case models.AutomatedData:
		actionID := d.ActionID
		if actionID == "" {
			actionID = "none selected"
		}

		return "Executing automated action: " + actionID
	case models.EndData:
		if d.EndMessage != "" {
			return d.EndMessage
		}

		return "Workflow completed successfully"
	default:
		panic(fmt.Sprintf("simulation: unknown node data payload %T", data))
	}
}
