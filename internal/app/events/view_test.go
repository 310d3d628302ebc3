package events

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"siemctl/internal/app/api"
	"siemctl/internal/app/errors"
	"siemctl/internal/config"
	"siemctl/internal/config/logger"
)

func newTestLogger(ctrl *gomock.Controller) logger.Logger {
	log := logger.NewMockLogger(ctrl)
	log.EXPECT().WithComponent(gomock.Any()).Return(log).AnyTimes()
	log.EXPECT().Debug().Return(nil).AnyTimes()
	log.EXPECT().Info().Return(nil).AnyTimes()
	log.EXPECT().Warn().Return(nil).AnyTimes()
	log.EXPECT().Error().Return(nil).AnyTimes()

	return log
}

func page(n, totalPages, total int, types ...string) *api.EventsResponse {
	data := make([]api.Event, 0, len(types))
	for i, t := range types {
		data = append(data, api.Event{
			"agent_id":   fmt.Sprintf("p%d-%d", n, i),
			"event_type": t,
			"message":    fmt.Sprintf("event %d on page %d", i, n),
		})
	}

	return &api.EventsResponse{
		Status:     api.StatusSuccess,
		Count:      len(data),
		Total:      total,
		Page:       n,
		Limit:      config.PageSize,
		TotalPages: totalPages,
		Data:       data,
	}
}

func Test_NewView(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	v := NewView("bogus", newTestLogger(ctrl))

	assert.Equal(t, config.ModeScroll, v.Mode())
	assert.Equal(t, 1, v.Page())
	assert.Equal(t, 1, v.TotalPages())
	assert.Equal(t, config.PageSize, v.PageSize())
	assert.Equal(t, StatusIdle, v.Status())
	assert.False(t, v.Loading())
	assert.Empty(t, v.Events())
}

func Test_View_ScrollFlow(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	v := NewView(config.ModeScroll, newTestLogger(ctrl))

	req, ok := v.Start(ctx)
	require.True(t, ok)
	assert.True(t, req.Append)
	assert.Equal(t, 1, req.Page)
	assert.Equal(t, config.PageSize, req.Limit)
	assert.True(t, v.Loading())
	assert.Equal(t, StatusLoading, v.Status())

	_, ok = v.LoadScroll(ctx)
	assert.False(t, ok, "a fetch in flight blocks new fetches")

	_, ok = v.LoadMore(ctx)
	assert.False(t, ok)
	assert.Equal(t, 1, v.Page())

	assert.Equal(t, OutcomeApplied, v.Apply(req, page(1, 3, 120, "auth", "process"), nil))
	assert.False(t, v.Loading())
	assert.Equal(t, StatusReady, v.Status())
	assert.Len(t, v.Events(), 2)
	assert.Equal(t, 120, v.Total())
	assert.Equal(t, 3, v.TotalPages())
	assert.True(t, v.HasMore())
	assert.True(t, v.SentinelVisible())

	req, ok = v.LoadMore(ctx)
	require.True(t, ok)
	assert.Equal(t, 2, req.Page)
	assert.Equal(t, StatusReady, v.Status(), "appending keeps rows visible")
	assert.True(t, v.SentinelVisible())

	assert.Equal(t, OutcomeApplied, v.Apply(req, page(2, 3, 120, "file"), nil))
	assert.Len(t, v.Events(), 3)
	assert.Equal(t, "p1-0", v.Events()[0].String(FieldAgentID))
	assert.Equal(t, "p2-0", v.Events()[2].String(FieldAgentID))

	req, ok = v.LoadMore(ctx)
	require.True(t, ok)
	assert.Equal(t, OutcomeApplied, v.Apply(req, page(3, 3, 120, "auth"), nil))

	assert.False(t, v.HasMore())
	assert.False(t, v.SentinelVisible())
	assert.Equal(t, 4, v.Accumulated())
	assert.Equal(t, []string{"auth", "file", "process"}, v.Types())

	_, ok = v.LoadMore(ctx)
	assert.False(t, ok, "no pages remain")
}

func Test_View_PagedFlow(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	v := NewView(config.ModePaged, newTestLogger(ctrl))

	assert.False(t, v.SentinelVisible())

	req, ok := v.Start(ctx)
	require.True(t, ok)
	assert.False(t, req.Append)
	assert.False(t, v.PrevEnabled())
	assert.False(t, v.NextEnabled(), "disabled while loading")

	v.Apply(req, page(1, 2, 60, "auth", "auth"), nil)

	assert.False(t, v.PrevEnabled())
	assert.True(t, v.NextEnabled())

	_, ok = v.PrevPage(ctx)
	assert.False(t, ok)

	req, ok = v.NextPage(ctx)
	require.True(t, ok)
	assert.Equal(t, 2, req.Page)
	assert.Equal(t, StatusLoading, v.Status())

	v.Apply(req, page(2, 2, 60, "file"), nil)

	assert.Len(t, v.Events(), 1, "classic mode replaces the list")
	assert.Equal(t, "p2-0", v.Events()[0].String(FieldAgentID))
	assert.True(t, v.PrevEnabled())
	assert.False(t, v.NextEnabled())
	assert.Equal(t, []string{"auth", "file"}, v.Types(), "types accumulate across pages")

	_, ok = v.NextPage(ctx)
	assert.False(t, ok)

	req, ok = v.PrevPage(ctx)
	require.True(t, ok)
	assert.Equal(t, 1, req.Page)
}

func Test_View_NoData(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()

	t.Run("classic", func(t *testing.T) {
		v := NewView(config.ModePaged, newTestLogger(ctrl))

		req, _ := v.Start(ctx)
		v.Apply(req, page(1, 1, 10, "auth"), nil)

		req, _ = v.LoadPage(ctx)
		outcome := v.Apply(req, &api.EventsResponse{Status: api.StatusFailed}, nil)

		assert.Equal(t, OutcomeNoData, outcome)
		assert.Equal(t, StatusNoData, v.Status())
		assert.Equal(t, 0, v.Total())
		assert.Empty(t, v.Events())
		assert.False(t, v.Loading())
	})

	t.Run("scroll", func(t *testing.T) {
		v := NewView(config.ModeScroll, newTestLogger(ctrl))

		req, _ := v.Start(ctx)
		outcome := v.Apply(req, &api.EventsResponse{Status: api.StatusSuccess}, nil)

		assert.Equal(t, OutcomeNoData, outcome)
		assert.Equal(t, StatusReady, v.Status())
		assert.False(t, v.Loading())
	})
}

func Test_View_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	v := NewView(config.ModeScroll, newTestLogger(ctrl))

	req, _ := v.Start(ctx)
	v.Apply(req, page(1, 2, 60, "auth"), nil)

	req, _ = v.LoadMore(ctx)
	outcome := v.Apply(req, nil, errors.ErrRequestFailed)

	assert.Equal(t, OutcomeFailed, outcome)
	assert.Equal(t, StatusError, v.Status())
	assert.False(t, v.Loading(), "loading is cleared on failure")
	assert.Equal(t, 1, v.Accumulated())
	assert.Equal(t, 1, v.Page(), "the failed page is not skipped")
	assert.True(t, v.HasMore())

	v.SetFilter(Filter{Search: "event"})
	assert.Equal(t, StatusReady, v.Status(), "re-filtering re-renders the rows")

	req, ok := v.LoadMore(ctx)
	require.True(t, ok)
	assert.Equal(t, 2, req.Page, "the next scroll retries the failed page")

	assert.Equal(t, OutcomeApplied, v.Apply(req, page(2, 2, 60, "file"), nil))
	assert.Equal(t, 2, v.Accumulated())
	assert.False(t, v.HasMore())
}

func Test_View_ErrorOnFirstPageKeepsPage(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()

	for _, mode := range []string{config.ModeScroll, config.ModePaged} {
		t.Run(mode, func(t *testing.T) {
			v := NewView(mode, newTestLogger(ctrl))

			req, _ := v.Start(ctx)
			assert.Equal(t, OutcomeFailed, v.Apply(req, nil, errors.ErrRequestFailed))
			assert.Equal(t, 1, v.Page())
		})
	}
}

func Test_View_StaleResponse(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	v := NewView(config.ModeScroll, newTestLogger(ctrl))

	first, _ := v.Start(ctx)

	second, ok := v.SetRegex(ctx, true)
	require.True(t, ok)
	assert.True(t, v.Filter().Regex)
	assert.NotEqual(t, first.Token, second.Token)
	assert.ErrorIs(t, first.Ctx.Err(), context.Canceled, "reset cancels the abandoned request")

	assert.Equal(t, OutcomeStale, v.Apply(first, page(1, 5, 250, "stale"), nil))
	assert.True(t, v.Loading(), "a stale response does not clear the newer request")
	assert.Empty(t, v.Events())
	assert.Empty(t, v.Types())

	assert.Equal(t, OutcomeApplied, v.Apply(second, page(1, 1, 1, "fresh"), nil))
	assert.Equal(t, []string{"fresh"}, v.Types())
	assert.False(t, v.Loading())
}

func Test_View_Reset(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	v := NewView(config.ModeScroll, newTestLogger(ctrl))

	req, _ := v.Start(ctx)
	v.Apply(req, page(1, 3, 150, "auth"), nil)

	req, _ = v.LoadMore(ctx)
	v.Apply(req, page(2, 3, 150, "file"), nil)

	v.Reset()

	assert.Equal(t, 1, v.Page())
	assert.Empty(t, v.Events())
	assert.Equal(t, 0, v.Accumulated())
	assert.False(t, v.Loading())
	assert.Equal(t, []string{"auth", "file"}, v.Types(), "known types survive a reset")

	req, ok := v.Start(ctx)
	require.True(t, ok)
	assert.Equal(t, 1, req.Page)
}

func Test_View_SetFilter(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	v := NewView(config.ModeScroll, newTestLogger(ctrl))

	req, _ := v.Start(ctx)
	v.Apply(req, page(1, 1, 3, "auth", "file", "auth"), nil)

	v.SetFilter(Filter{Types: []string{"auth"}})
	assert.Len(t, v.Events(), 2)

	e, ok := v.Event(1)
	require.True(t, ok)
	assert.Equal(t, "p1-2", e.String(FieldAgentID))

	_, ok = v.Event(2)
	assert.False(t, ok)

	v.SetFilter(Filter{Search: "([", Regex: true})
	assert.Len(t, v.Events(), 3)
	assert.ErrorIs(t, v.FilterErr(), errors.ErrInvalidRegexPattern)

	v.SetFilter(Filter{})
	assert.NoError(t, v.FilterErr())
	assert.Equal(t, 3, v.Total())
}
