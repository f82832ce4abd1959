package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
)

func queryCtx(uri string) *fasthttp.RequestCtx {
	ctx := &fasthttp.RequestCtx{}
	ctx.Request.SetRequestURI(uri)
	return ctx
}

func TestFilterFromQuery(t *testing.T) {
	h := NewTaskHandler(nil, nil, nil)

	t.Run("empty query", func(t *testing.T) {
		filter, ok := h.filterFromQuery(queryCtx("/api/tasks"))
		require.True(t, ok)
		assert.True(t, filter.Empty())
	})

	t.Run("all predicates", func(t *testing.T) {
		filter, ok := h.filterFromQuery(queryCtx("/api/tasks?statusId=1&executorId=2&authorId=3&labelId=4"))
		require.True(t, ok)
		require.NotNil(t, filter.StatusID)
		require.NotNil(t, filter.ExecutorID)
		require.NotNil(t, filter.AuthorID)
		require.NotNil(t, filter.LabelID)
		assert.Equal(t, int64(1), *filter.StatusID)
		assert.Equal(t, int64(2), *filter.ExecutorID)
		assert.Equal(t, int64(3), *filter.AuthorID)
		assert.Equal(t, int64(4), *filter.LabelID)
	})

	t.Run("subset leaves others unset", func(t *testing.T) {
		filter, ok := h.filterFromQuery(queryCtx("/api/tasks?statusId=7&labelId=9"))
		require.True(t, ok)
		assert.NotNil(t, filter.StatusID)
		assert.Nil(t, filter.ExecutorID)
		assert.Nil(t, filter.AuthorID)
		assert.NotNil(t, filter.LabelID)
	})

	t.Run("non-numeric value rejects", func(t *testing.T) {
		ctx := queryCtx("/api/tasks?statusId=abc")
		_, ok := h.filterFromQuery(ctx)
		assert.False(t, ok)
		assert.Equal(t, http.StatusBadRequest, ctx.Response.StatusCode())
	})

	t.Run("unknown parameter ignored", func(t *testing.T) {
		filter, ok := h.filterFromQuery(queryCtx("/api/tasks?page=2"))
		require.True(t, ok)
		assert.True(t, filter.Empty())
	})
}
