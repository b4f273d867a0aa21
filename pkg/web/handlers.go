// Package web provides the HTTP handlers the designer front end talks to.
package web

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"

	"github.com/stafflow/stafflow/pkg/catalog"
	"github.com/stafflow/stafflow/pkg/exchange"
	"github.com/stafflow/stafflow/pkg/simulation"
	"github.com/stafflow/stafflow/pkg/store"
	"github.com/stafflow/stafflow/pkg/validation"
)

// APIHandlers serves the graph editing, validation, simulation, catalog, and
// export/import endpoints on top of a single graph store.
type APIHandlers struct {
	store     *store.Store
	catalog   catalog.Provider
	engine    *simulation.Engine
	validator *validator.Validate
	logger    *slog.Logger
}

// NewAPIHandlers wires the handler set.
func NewAPIHandlers(
	graphStore *store.Store,
	catalogProvider catalog.Provider,
	engine *simulation.Engine,
	validate *validator.Validate,
	logger *slog.Logger,
) *APIHandlers {
	return &APIHandlers{
		store:     graphStore,
		catalog:   catalogProvider,
		engine:    engine,
		validator: validate,
		logger:    logger,
	}
}

// Register mounts every route on the app.
func (h *APIHandlers) Register(app *fiber.App) {
	graph := app.Group("/graph")
	graph.Get("/", h.GetGraph)
	graph.Delete("/", h.ClearGraph)
	graph.Post("/nodes", h.CreateNode)
	graph.Patch("/nodes/:id", h.UpdateNodeData)
	graph.Delete("/nodes/:id", h.DeleteNode)
	graph.Post("/edges", h.CreateEdge)
	graph.Delete("/edges/:id", h.DeleteEdge)
	graph.Post("/changes", h.ApplyChanges)
	graph.Put("/selection", h.UpdateSelection)
	graph.Post("/validate", h.ValidateGraph)
	graph.Post("/simulate", h.Simulate)
	graph.Get("/export", h.ExportGraph)
	graph.Post("/import", h.ImportGraph)

	app.Get("/actions", h.ListActions)
	app.Get("/actions/:id", h.GetAction)
	app.Get("/health", h.HealthCheck)
}

// GetAction returns a single catalog action by id.
func (h *APIHandlers) GetAction(c fiber.Ctx) error {
	actions, err := h.catalog.List(c.Context())
	if err != nil {
		return internalError(c, err)
	}

	action, ok := catalog.Lookup(actions, c.Params("id"))
	if !ok {
		return notFound(c, "Unknown automation action")
	}

	return c.JSON(action)
}

// HealthCheck reports whether the action catalog is reachable alongside the
// current graph size.
func (h *APIHandlers) HealthCheck(c fiber.Ctx) error {
	_, err := h.catalog.List(c.Context())

	status := "healthy"
	message := "Stafflow API is healthy"
	httpStatus := http.StatusOK

	if err != nil {
		status = "unhealthy"
		message = "Stafflow API is unhealthy"
		httpStatus = http.StatusInternalServerError
	}

	snapshot := h.store.Snapshot()

	return c.Status(httpStatus).JSON(fiber.Map{
		"status":  status,
		"message": message,
		"checkers": fiber.Map{
			"catalog": status,
			"graph": fiber.Map{
				"nodes": len(snapshot.Nodes),
				"edges": len(snapshot.Edges),
			},
		},
		"timestamp": time.Now().UTC(),
	})
}

func (h *APIHandlers) graphResponse() GraphResponse {
	snapshot := h.store.Snapshot()

	return GraphResponse{
		Nodes:            snapshot.Nodes,
		Edges:            snapshot.Edges,
		SelectedNodeID:   h.store.SelectedNodeID(),
		ValidationErrors: h.store.ValidationErrors(),
	}
}

// GetGraph returns the complete editor state.
func (h *APIHandlers) GetGraph(c fiber.Ctx) error {
	return c.JSON(h.graphResponse())
}

// CreateNode adds a node with type-appropriate default data.
func (h *APIHandlers) CreateNode(c fiber.Ctx) error {
	var req CreateNodeRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	node := h.store.AddNode(req.Type, req.Position)

	h.logger.Info("Node created", "node_id", node.ID, "node_type", node.Type)

	return c.Status(fiber.StatusCreated).JSON(node)
}

// UpdateNodeData merges a partial payload into the node's data. Fields absent
// from the body are preserved; the node's type never changes.
func (h *APIHandlers) UpdateNodeData(c fiber.Ctx) error {
	nodeID := c.Params("id")

	if _, ok := h.store.Node(nodeID); !ok {
		return notFound(c, "Node not found")
	}

	var partial map[string]json.RawMessage
	if err := json.Unmarshal(c.Body(), &partial); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.store.UpdateNodeData(nodeID, partial); err != nil {
		return badRequest(c, err.Error())
	}

	node, ok := h.store.Node(nodeID)
	if !ok {
		return notFound(c, "Node not found")
	}

	return c.JSON(node)
}

// DeleteNode removes a node and every edge touching it.
func (h *APIHandlers) DeleteNode(c fiber.Ctx) error {
	h.store.DeleteNode(c.Params("id"))

	return c.SendStatus(fiber.StatusNoContent)
}

// CreateEdge connects two existing nodes.
func (h *APIHandlers) CreateEdge(c fiber.Ctx) error {
	var req ConnectRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	edge, ok := h.store.Connect(req.Source, req.Target)
	if !ok {
		return unprocessable(c, "Both edge endpoints must reference existing nodes")
	}

	return c.Status(fiber.StatusCreated).JSON(edge)
}

// DeleteEdge removes a single edge.
func (h *APIHandlers) DeleteEdge(c fiber.Ctx) error {
	h.store.DeleteEdge(c.Params("id"))

	return c.SendStatus(fiber.StatusNoContent)
}

// ApplyChanges applies a batch of incremental canvas updates (drag positions,
// selection toggles, removals).
func (h *APIHandlers) ApplyChanges(c fiber.Ctx) error {
	var req ApplyChangesRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	for _, change := range req.Nodes {
		if err := h.validator.Struct(change); err != nil {
			return badRequest(c, err.Error())
		}
	}

	for _, change := range req.Edges {
		if err := h.validator.Struct(change); err != nil {
			return badRequest(c, err.Error())
		}
	}

	h.store.ApplyNodeChanges(req.Nodes)
	h.store.ApplyEdgeChanges(req.Edges)

	return c.JSON(h.graphResponse())
}

// UpdateSelection sets or clears the selected node.
func (h *APIHandlers) UpdateSelection(c fiber.Ctx) error {
	var req SelectionRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	nodeID := ""
	if req.NodeID != nil {
		nodeID = *req.NodeID
	}

	h.store.SelectNode(nodeID)

	return c.JSON(h.graphResponse())
}

// ClearGraph empties the whole graph.
func (h *APIHandlers) ClearGraph(c fiber.Ctx) error {
	h.store.Clear()

	return c.SendStatus(fiber.StatusNoContent)
}

// ValidateGraph recomputes the structural error list and caches it for
// display.
func (h *APIHandlers) ValidateGraph(c fiber.Ctx) error {
	errs := validation.Validate(h.store.Snapshot())
	h.store.SetValidationErrors(errs)

	return c.JSON(ValidateResponse{
		Valid:  len(errs) == 0,
		Errors: errs,
	})
}

// Simulate validates the graph and, when it passes, runs a mock execution
// trace over a snapshot of it.
func (h *APIHandlers) Simulate(c fiber.Ctx) error {
	snapshot := h.store.Snapshot()

	errs := validation.Validate(snapshot)
	h.store.SetValidationErrors(errs)

	if len(errs) > 0 {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(ValidateResponse{
			Valid:  false,
			Errors: errs,
		})
	}

	result := h.engine.Run(c.Context(), snapshot)

	return c.JSON(result)
}

// ListActions serves the automation catalog. A provider failure degrades to
// an empty catalog with a notice instead of blocking the editor.
func (h *APIHandlers) ListActions(c fiber.Ctx) error {
	actions, err := h.catalog.List(c.Context())
	if err != nil {
		h.logger.Warn("Catalog fetch failed", "error", err)

		return c.JSON(ActionsResponse{
			Actions: []catalog.Action{},
			Notice:  "Automation catalog is unavailable",
		})
	}

	return c.JSON(ActionsResponse{Actions: actions})
}

// ExportGraph serves the current graph as a pretty-printed JSON download.
func (h *APIHandlers) ExportGraph(c fiber.Ctx) error {
	data, err := exchange.Export(h.store.Snapshot())
	if err != nil {
		return internalError(c, err)
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+exchange.FileName+`"`)

	return c.Send(data)
}

// ImportGraph parses an uploaded workflow document and hydrates it into the
// store. Replace mode (the default) preserves the document's ids; merge mode
// regenerates them. A malformed document leaves the store untouched.
func (h *APIHandlers) ImportGraph(c fiber.Ctx) error {
	mode := store.LoadMode(c.Query("mode", string(store.LoadModeReplace)))
	if mode != store.LoadModeReplace && mode != store.LoadModeMerge {
		return badRequest(c, "Import mode must be \"replace\" or \"merge\"")
	}

	workflow, err := exchange.Import(c.Body())
	if err != nil {
		if exchange.IsInvalidDocument(err) {
			return badRequest(c, err.Error())
		}

		return internalError(c, err)
	}

	h.store.Load(*workflow, mode)

	h.logger.Info("Workflow imported",
		"mode", mode,
		"nodes", len(workflow.Nodes),
		"edges", len(workflow.Edges))

	return c.JSON(h.graphResponse())
}
