package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/taskboard/backend/pkg/httpcontext"
	statusUC "github.com/taskboard/backend/usecase/status"
)

type TaskStatusHandler struct {
	baseHandler
	uc *statusUC.UseCase
}

func NewTaskStatusHandler(uc *statusUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *TaskStatusHandler {
	return &TaskStatusHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Get task status by id
// @Tags statuses
// @Router /api/statuses/{id} [get]
func (h *TaskStatusHandler) Get(ctx *fasthttp.RequestCtx) {
	id, ok := h.pathID(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	status, err := h.uc.Get(stdCtx, id)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, status)
}

// @Summary List task statuses
// @Tags statuses
// @Router /api/statuses [get]
func (h *TaskStatusHandler) List(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	statuses, err := h.uc.List(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, statuses)
}

// @Summary Create task status
// @Tags statuses
// @Router /api/statuses [post]
func (h *TaskStatusHandler) Create(ctx *fasthttp.RequestCtx) {
	name, ok := h.parseName(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	created, err := h.uc.Create(stdCtx, name)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, created)
}

// @Summary Rename task status
// @Tags statuses
// @Router /api/statuses/{id} [put]
func (h *TaskStatusHandler) Update(ctx *fasthttp.RequestCtx) {
	id, ok := h.pathID(ctx)
	if !ok {
		return
	}
	name, ok := h.parseName(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	updated, err := h.uc.Update(stdCtx, id, name)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, updated)
}

// @Summary Delete task status
// @Tags statuses
// @Router /api/statuses/{id} [delete]
func (h *TaskStatusHandler) Delete(ctx *fasthttp.RequestCtx) {
	id, ok := h.pathID(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.Delete(stdCtx, id); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, nil)
}
