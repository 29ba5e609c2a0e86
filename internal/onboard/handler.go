package onboard

import (
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// problemType returns the problem URI for a status, kebab-cased like
// the server package's problem type constants.
func problemType(status int) string {
	slug := strings.ToLower(strings.ReplaceAll(http.StatusText(status), " ", "-"))
	return "https://gangway.dev/problems/" + slug
}

// writeError writes an RFC 7807 problem detail response.
func writeError(w http.ResponseWriter, status int, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"type":   problemType(status),
		"title":  http.StatusText(status),
		"status": status,
		"detail": detail,
	})
}

// statusForReason maps a failure reason to an HTTP status. Operator
// mistakes are client errors; device-side failures are upstream errors.
func statusForReason(reason Reason) int {
	if reason == ReasonConfig {
		return http.StatusBadRequest
	}
	return http.StatusBadGateway
}

// OnboardResponse is returned for a completed onboarding request.
type OnboardResponse struct {
	Task     *Task `json:"task"`
	DeviceID int   `json:"device_id,omitempty"`
}

// Handler serves the onboarding HTTP API.
type Handler struct {
	pipeline *Pipeline
	tasks    *TaskStore
	logger   *zap.Logger
}

// NewHandler creates a handler over the given pipeline and task log.
func NewHandler(pipeline *Pipeline, tasks *TaskStore, logger *zap.Logger) *Handler {
	return &Handler{pipeline: pipeline, tasks: tasks, logger: logger}
}

// Routes registers the onboarding endpoints on the given mux.
func (h *Handler) Routes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/onboard", h.handleOnboard)
	mux.HandleFunc("GET /api/v1/tasks", h.handleListTasks)
	mux.HandleFunc("GET /api/v1/tasks/{id}", h.handleGetTask)
}

// handleOnboard runs the pipeline synchronously and records the attempt
// in the task log. The response carries the final task state either way.
func (h *Handler) handleOnboard(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	ctx := r.Context()
	task, err := h.tasks.CreateTask(ctx, req)
	if err != nil {
		h.logger.Error("task create failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to record task")
		return
	}
	if err := h.tasks.MarkRunning(ctx, task.ID); err != nil {
		h.logger.Error("task update failed", zap.String("task_id", task.ID), zap.Error(err))
	}

	device, err := h.pipeline.Run(ctx, req)
	if err != nil {
		reason := ReasonOf(err)
		if markErr := h.tasks.MarkFailed(ctx, task.ID, reason, err.Error()); markErr != nil {
			h.logger.Error("task update failed", zap.String("task_id", task.ID), zap.Error(markErr))
		}
		writeError(w, statusForReason(reason), err.Error())
		return
	}

	if err := h.tasks.MarkSucceeded(ctx, task.ID, device.ID); err != nil {
		h.logger.Error("task update failed", zap.String("task_id", task.ID), zap.Error(err))
	}

	task, err = h.tasks.GetTask(ctx, task.ID)
	if err != nil {
		h.logger.Error("task reload failed", zap.Error(err))
	}
	writeJSON(w, http.StatusCreated, OnboardResponse{Task: task, DeviceID: device.ID})
}

func (h *Handler) handleListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.tasks.ListTasks(r.Context(), 100)
	if err != nil {
		h.logger.Error("task list failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to list tasks")
		return
	}
	if tasks == nil {
		tasks = []Task{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"tasks": tasks, "count": len(tasks)})
}

func (h *Handler) handleGetTask(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	task, err := h.tasks.GetTask(r.Context(), id)
	if err != nil {
		h.logger.Error("task get failed", zap.String("task_id", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to load task")
		return
	}
	if task == nil {
		writeError(w, http.StatusNotFound, "task not found: "+id)
		return
	}
	writeJSON(w, http.StatusOK, task)
}
