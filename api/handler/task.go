package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/taskboard/backend/api/transport"
	"github.com/taskboard/backend/domain"
	"github.com/taskboard/backend/pkg/httpcontext"
	"github.com/taskboard/backend/repository"
	taskUC "github.com/taskboard/backend/usecase/task"
)

type TaskHandler struct {
	baseHandler
	uc *taskUC.UseCase
}

func NewTaskHandler(uc *taskUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary List tasks matching the query filter
// @Tags tasks
// @Router /api/tasks [get]
func (h *TaskHandler) List(ctx *fasthttp.RequestCtx) {
	filter, ok := h.filterFromQuery(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	tasks, err := h.uc.List(stdCtx, filter)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, tasks)
}

// @Summary Get task by id
// @Tags tasks
// @Router /api/tasks/{id} [get]
func (h *TaskHandler) Get(ctx *fasthttp.RequestCtx) {
	id, ok := h.pathID(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	task, err := h.uc.Get(stdCtx, id)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, task)
}

// @Summary Create task authored by the caller
// @Tags tasks
// @Router /api/tasks [post]
func (h *TaskHandler) Create(ctx *fasthttp.RequestCtx) {
	subject := h.subject(ctx)
	if subject == "" {
		return
	}
	input, ok := h.parseInput(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	created, err := h.uc.Create(stdCtx, subject, input)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, created)
}

// @Summary Update task
// @Tags tasks
// @Router /api/tasks/{id} [put]
func (h *TaskHandler) Update(ctx *fasthttp.RequestCtx) {
	subject := h.subject(ctx)
	if subject == "" {
		return
	}
	id, ok := h.pathID(ctx)
	if !ok {
		return
	}
	input, ok := h.parseInput(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	updated, err := h.uc.Update(stdCtx, subject, id, input)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, updated)
}

// @Summary Delete task (author only)
// @Tags tasks
// @Router /api/tasks/{id} [delete]
func (h *TaskHandler) Delete(ctx *fasthttp.RequestCtx) {
	subject := h.subject(ctx)
	if subject == "" {
		return
	}
	id, ok := h.pathID(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.Delete(stdCtx, subject, id); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, nil)
}

func (h *TaskHandler) parseInput(ctx *fasthttp.RequestCtx) (taskUC.Input, bool) {
	var req transport.TaskRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest,
			transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return taskUC.Input{}, false
	}
	return taskUC.Input{
		Name:        req.Name,
		Description: req.Description,
		StatusID:    req.StatusID,
		ExecutorID:  req.ExecutorID,
		LabelIDs:    req.LabelIDs,
	}, true
}

// filterFromQuery collects the optional list predicates. Unknown parameters
// are ignored; a present but non-numeric value rejects the request.
func (h *TaskHandler) filterFromQuery(ctx *fasthttp.RequestCtx) (repository.TaskFilter, bool) {
	var filter repository.TaskFilter
	args := ctx.QueryArgs()

	for _, p := range []struct {
		name string
		dst  **int64
	}{
		{"statusId", &filter.StatusID},
		{"executorId", &filter.ExecutorID},
		{"authorId", &filter.AuthorID},
		{"labelId", &filter.LabelID},
	} {
		raw := args.Peek(p.name)
		if len(raw) == 0 {
			continue
		}
		id, err := strconv.ParseInt(string(raw), 10, 64)
		if err != nil || id <= 0 {
			h.respondJSON(ctx, http.StatusBadRequest,
				transport.NewError(string(domain.ErrCodeInvalid), "invalid "+p.name, nil))
			return repository.TaskFilter{}, false
		}
		*p.dst = &id
	}
	return filter, true
}
