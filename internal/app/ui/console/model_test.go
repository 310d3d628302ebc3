package console

import (
	"context"
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"siemctl/internal/app/api"
	"siemctl/internal/app/auth"
	"siemctl/internal/app/errors"
	"siemctl/internal/app/events"
	"siemctl/internal/app/export"
	"siemctl/internal/app/monitor"
	"siemctl/internal/app/telemetry"
	"siemctl/internal/config"
	"siemctl/internal/config/logger"
)

var testCreds = &api.Credentials{Username: "admin", Password: "secret"}

type fixture struct {
	auth      *auth.MockAuth
	client    *api.MockClient
	exporter  *export.MockExporter
	telemetry *telemetry.MockTelemetry
	monitor   *monitor.MockMonitor
}

func newTestLogger(ctrl *gomock.Controller) logger.Logger {
	log := logger.NewMockLogger(ctrl)
	log.EXPECT().WithComponent(gomock.Any()).Return(log).AnyTimes()
	log.EXPECT().Debug().Return(nil).AnyTimes()
	log.EXPECT().Info().Return(nil).AnyTimes()
	log.EXPECT().Warn().Return(nil).AnyTimes()
	log.EXPECT().Error().Return(nil).AnyTimes()

	return log
}

func newFixture(ctrl *gomock.Controller) fixture {
	f := fixture{
		auth:      auth.NewMockAuth(ctrl),
		client:    api.NewMockClient(ctrl),
		exporter:  export.NewMockExporter(ctrl),
		telemetry: telemetry.NewMockTelemetry(ctrl),
		monitor:   monitor.NewMockMonitor(ctrl),
	}

	f.auth.EXPECT().RequireAuth().Return(true).AnyTimes()
	f.auth.EXPECT().Credentials().Return(testCreds, true).AnyTimes()

	return f
}

func newTestModel(ctrl *gomock.Controller, f fixture, mode string) Model {
	cfg := config.DefaultConfig()
	cfg.Events.Mode = mode

	m := NewModel(context.Background(), cfg, Deps{
		Auth:      f.auth,
		Client:    f.client,
		Exporter:  f.exporter,
		Telemetry: f.telemetry,
		Monitor:   f.monitor,
	}, newTestLogger(ctrl))

	return m
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()

	next, cmd := m.Update(msg)

	updated, ok := next.(Model)
	require.True(t, ok)

	return updated, cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func eventPage(page, totalPages int, severities ...string) *api.EventsResponse {
	data := make([]api.Event, 0, len(severities))
	for i, s := range severities {
		data = append(data, api.Event{
			"agent_id":   fmt.Sprintf("agent-%d-%d", page, i),
			"event_type": "auth",
			"severity":   s,
			"message":    fmt.Sprintf("message %d-%d", page, i),
		})
	}

	return &api.EventsResponse{Status: api.StatusSuccess, Count: len(data), Total: totalPages * len(data), Page: page, TotalPages: totalPages, Data: data}
}

// loaded returns a sized model with the first page applied
func loaded(t *testing.T, f fixture, m Model, resp *api.EventsResponse, height int) (Model, tea.Cmd) {
	t.Helper()

	f.client.EXPECT().Events(gomock.Any(), *testCreds, 1, config.PageSize).Return(resp, nil)

	cmd := m.start()
	require.NotNil(t, cmd)

	msg := cmd()

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 140, Height: height})

	return update(t, m, msg)
}

func Test_Start_RequiresAuth(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	a := auth.NewMockAuth(ctrl)
	a.EXPECT().RequireAuth().Return(false)

	m := newTestModel(ctrl, fixture{auth: a}, config.ModeScroll)

	cmd := m.start()
	require.NotNil(t, cmd)
	assert.Equal(t, LogoutMsg{}, cmd())
}

func Test_Scroll_LoadsFirstPageAndContinues(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(ctrl)
	m := newTestModel(ctrl, f, config.ModeScroll)

	m, cmd := loaded(t, f, m, eventPage(1, 2, "high", "low"), 40)

	assert.Len(t, m.Events().Events(), 2)
	assert.Contains(t, m.View(), "agent-1-0")
	assert.Contains(t, m.View(), "Всего: 4")
	assert.Contains(t, m.View(), "Загрузка событий...", "sentinel shown while pages remain")

	require.NotNil(t, cmd, "a short table shows the sentinel and loads the next page")

	f.client.EXPECT().Events(gomock.Any(), *testCreds, 2, config.PageSize).Return(eventPage(2, 2, "critical"), nil)

	m, cmd = update(t, m, cmd())

	assert.Nil(t, cmd)
	assert.Equal(t, 3, m.Events().Accumulated())
	assert.False(t, m.Events().HasMore())
	assert.NotContains(t, m.View(), "Загрузка событий...")
}

func Test_Scroll_WaitsUntilEndIsVisible(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	severities := make([]string, 30)
	for i := range severities {
		severities[i] = "info"
	}

	f := newFixture(ctrl)
	m := newTestModel(ctrl, f, config.ModeScroll)

	m, cmd := loaded(t, f, m, eventPage(1, 3, severities...), 20)
	assert.Nil(t, cmd, "end of a long table is off screen")

	m, cmd = update(t, m, runes("G"))
	require.NotNil(t, cmd)

	f.client.EXPECT().Events(gomock.Any(), *testCreds, 2, config.PageSize).Return(eventPage(2, 3, "low"), nil)
	m, _ = update(t, m, cmd())

	assert.Equal(t, 31, m.Events().Accumulated())
}

func Test_Scroll_NoMatchesKeepsLoading(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	severities := make([]string, 30)
	for i := range severities {
		severities[i] = "info"
	}

	f := newFixture(ctrl)
	m := newTestModel(ctrl, f, config.ModeScroll)

	m, cmd := loaded(t, f, m, eventPage(1, 3, severities...), 20)
	require.Nil(t, cmd)

	m.view.SetFilter(events.Filter{Severities: []string{"critical"}})
	m.refreshTable()
	require.Empty(t, m.Events().Events())

	cmd = m.maybeLoadMore()
	require.NotNil(t, cmd, "an empty result looks for matches on the next page")

	f.client.EXPECT().Events(gomock.Any(), *testCreds, 2, config.PageSize).Return(eventPage(2, 3, "info"), nil)
	m, cmd = update(t, m, cmd())
	require.NotNil(t, cmd)

	f.client.EXPECT().Events(gomock.Any(), *testCreds, 3, config.PageSize).Return(eventPage(3, 3, "critical"), nil)
	m, cmd = update(t, m, cmd())

	assert.Nil(t, cmd, "no pages remain")
	assert.Equal(t, 32, m.Events().Accumulated())
	assert.Len(t, m.Events().Events(), 1)
}

func Test_RegexToggle_DropsStaleResponse(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(ctrl)
	m := newTestModel(ctrl, f, config.ModeScroll)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 140, Height: 40})

	f.client.EXPECT().Events(gomock.Any(), *testCreds, 1, config.PageSize).Return(eventPage(1, 1, "high"), nil).Times(2)

	first := m.start()().(eventsMsg)

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlR})
	require.NotNil(t, cmd)
	assert.True(t, m.Events().Filter().Regex)

	second := cmd().(eventsMsg)

	m, _ = update(t, m, first)
	assert.Empty(t, m.Events().Events(), "late response of the abandoned request is ignored")
	assert.True(t, m.Events().Loading())

	m, _ = update(t, m, second)
	assert.Len(t, m.Events().Events(), 1)
	assert.False(t, m.Events().Loading())
}

func Test_Search_Debounced(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(ctrl)
	m := newTestModel(ctrl, f, config.ModeScroll)
	m, _ = loaded(t, f, m, eventPage(1, 1, "high", "low"), 40)

	m, _ = update(t, m, runes("/"))
	assert.Equal(t, focusSearch, m.state.focus)

	m, cmd := update(t, m, runes("1-1"))
	require.NotNil(t, cmd)
	assert.Len(t, m.Events().Events(), 2, "nothing applies before the debounce fires")

	m, _ = update(t, m, debounceMsg{seq: m.state.searchSeq - 1})
	assert.Len(t, m.Events().Events(), 2, "an outdated tick is ignored")

	m, _ = update(t, m, debounceMsg{seq: m.state.searchSeq})
	require.Len(t, m.Events().Events(), 1)
	assert.Equal(t, "agent-1-1", m.Events().Events()[0].String("agent_id"))

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, focusTable, m.state.focus)
}

func Test_InvalidRegex_ShowsWarning(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(ctrl)
	m := newTestModel(ctrl, f, config.ModeScroll)
	m, _ = loaded(t, f, m, eventPage(1, 1, "high", "low"), 40)

	m.ui.search.SetValue("([")
	m.Events().SetFilter(events.Filter{Regex: true})
	m.applyFilter()

	assert.Len(t, m.Events().Events(), 2)
	assert.Contains(t, m.View(), "шаблон не применён")
}

func Test_SeverityPicker(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(ctrl)
	m := newTestModel(ctrl, f, config.ModeScroll)
	m, _ = loaded(t, f, m, eventPage(1, 1, "high", "low", "high"), 40)

	m, _ = update(t, m, runes("s"))
	assert.Equal(t, focusSeverity, m.state.focus)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeySpace})

	assert.Equal(t, []string{"high"}, m.Events().Filter().Severities)
	assert.Len(t, m.Events().Events(), 2)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeySpace})
	assert.Len(t, m.Events().Events(), 3, "unchecking restores every row")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, focusTable, m.state.focus)
}

func Test_TypePicker(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(ctrl)
	m := newTestModel(ctrl, f, config.ModeScroll)
	m, _ = loaded(t, f, m, eventPage(1, 1, "high"), 40)

	m, _ = update(t, m, runes("t"))
	assert.Contains(t, m.View(), "[ ] auth")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeySpace})
	assert.Equal(t, []string{"auth"}, m.Events().Filter().Types)
	assert.Contains(t, m.View(), "[✓] auth")
}

func Test_DetailModal(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(ctrl)
	m := newTestModel(ctrl, f, config.ModeScroll)
	m, _ = loaded(t, f, m, eventPage(1, 1, "high", "low"), 40)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	require.Equal(t, focusModal, m.state.focus)
	assert.Contains(t, m.View(), `"agent_id": "agent-1-1"`)

	m, _ = update(t, m, runes("j"))
	assert.Equal(t, focusModal, m.state.focus, "keys scroll the modal, not the table")
	assert.Equal(t, 1, m.state.cursor)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, focusTable, m.state.focus)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = update(t, m, tea.MouseMsg{X: 70, Y: 20, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	assert.Equal(t, focusModal, m.state.focus, "a click inside keeps the modal open")

	m, _ = update(t, m, tea.MouseMsg{X: 0, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	assert.Equal(t, focusTable, m.state.focus, "a click on the background closes it")
}

func Test_RowClickOpensModal(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(ctrl)
	m := newTestModel(ctrl, f, config.ModeScroll)
	m, _ = loaded(t, f, m, eventPage(1, 1, "high", "low"), 40)

	m, _ = update(t, m, tea.MouseMsg{X: 10, Y: 5, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})

	assert.Equal(t, focusModal, m.state.focus)
	assert.Equal(t, 1, m.state.cursor)
}

func Test_LoadError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(ctrl)
	m := newTestModel(ctrl, f, config.ModeScroll)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 140, Height: 40})

	failure := fmt.Errorf("%w: connection refused", errors.ErrRequestFailed)
	f.client.EXPECT().Events(gomock.Any(), *testCreds, 1, config.PageSize).Return(nil, failure)
	f.telemetry.EXPECT().CaptureError(failure, "LOADER")

	m, cmd := update(t, m, m.start()())

	assert.Nil(t, cmd)
	assert.False(t, m.Events().Loading())
	assert.Contains(t, m.View(), "Ошибка загрузки данных")
}

func Test_LoadUnauthorized(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(ctrl)
	m := newTestModel(ctrl, f, config.ModeScroll)

	f.client.EXPECT().Events(gomock.Any(), *testCreds, 1, config.PageSize).Return(nil, &api.StatusError{Code: 401, Message: "Unauthorized"})
	f.auth.EXPECT().Logout().Return(nil)

	_, cmd := update(t, m, m.start()())

	require.NotNil(t, cmd)
	assert.Equal(t, LogoutMsg{}, cmd())
}

func Test_Export(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("success shows the path", func(t *testing.T) {
		f := newFixture(ctrl)
		m := newTestModel(ctrl, f, config.ModeScroll)
		m, _ = loaded(t, f, m, eventPage(1, 1, "high"), 40)

		f.exporter.EXPECT().Export(gomock.Any(), "csv", export.Options{}).Return("/tmp/events.csv", nil)

		m, cmd := update(t, m, runes("E"))
		require.NotNil(t, cmd)

		_, again := update(t, m, runes("E"))
		assert.Nil(t, again, "one export at a time")

		m, _ = update(t, m, cmd())
		assert.Contains(t, m.View(), "Файл сохранён: /tmp/events.csv")
	})

	t.Run("failure raises a blocking alert", func(t *testing.T) {
		f := newFixture(ctrl)
		m := newTestModel(ctrl, f, config.ModeScroll)
		m, _ = loaded(t, f, m, eventPage(1, 1, "high"), 40)

		failure := fmt.Errorf("%w: %w", errors.ErrExportFailed, &api.StatusError{Code: 500, Message: "db down"})
		f.exporter.EXPECT().Export(gomock.Any(), "json", export.Options{}).Return("", failure)

		m, cmd := update(t, m, runes("e"))
		m, _ = update(t, m, cmd())

		assert.Equal(t, focusAlert, m.state.focus)
		assert.Contains(t, m.View(), "Ошибка экспорта данных: db down")

		m, _ = update(t, m, runes("j"))
		assert.Equal(t, focusAlert, m.state.focus, "the alert blocks other input")

		m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
		assert.Equal(t, focusTable, m.state.focus)
	})

	t.Run("missing credentials return to login", func(t *testing.T) {
		f := newFixture(ctrl)
		m := newTestModel(ctrl, f, config.ModeScroll)

		_, cmd := update(t, m, exportMsg{format: "json", err: errors.ErrNotAuthenticated})

		require.NotNil(t, cmd)
		assert.Equal(t, LogoutMsg{}, cmd())
	})
}

func Test_Logout(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(ctrl)
	m := newTestModel(ctrl, f, config.ModeScroll)
	m, _ = loaded(t, f, m, eventPage(1, 1, "high"), 40)

	f.auth.EXPECT().Logout().Return(nil)

	m, cmd := update(t, m, runes("L"))

	require.NotNil(t, cmd)
	assert.Equal(t, LogoutMsg{}, cmd())
	assert.Equal(t, 0, m.Events().Accumulated())
}

func Test_PagedMode(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(ctrl)
	m := newTestModel(ctrl, f, config.ModePaged)
	m, cmd := loaded(t, f, m, eventPage(1, 2, "high", "low"), 40)

	assert.Nil(t, cmd, "paged mode never loads on its own")
	assert.Contains(t, m.View(), "Показано 1-4 из 4")

	m, cmd = update(t, m, runes("["))
	assert.Nil(t, cmd, "no page before the first")

	f.client.EXPECT().Events(gomock.Any(), *testCreds, 2, config.PageSize).Return(eventPage(2, 2, "medium"), nil)

	m, cmd = update(t, m, runes("]"))
	require.NotNil(t, cmd)

	m, _ = update(t, m, cmd())
	assert.Equal(t, 2, m.Events().Page())
	assert.Len(t, m.Events().Events(), 1)
}

func Test_Quit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(ctrl)
	m := newTestModel(ctrl, f, config.ModeScroll)

	_, cmd := update(t, m, runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())

	_, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func Test_Stats(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(ctrl)
	m := newTestModel(ctrl, f, config.ModeScroll)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 140, Height: 40})

	m, cmd := update(t, m, statsMsg{stats: monitor.Stats{CPU: 1.5, MEM: 20}})

	assert.NotNil(t, cmd)
	assert.Contains(t, m.View(), "cpu 1.5% · mem 20.0 MB")
}
