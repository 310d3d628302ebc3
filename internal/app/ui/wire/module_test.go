package wire

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"siemctl/internal/app/api"
	"siemctl/internal/app/auth"
	"siemctl/internal/app/export"
	"siemctl/internal/app/monitor"
	"siemctl/internal/app/telemetry"
	"siemctl/internal/app/ui/navigation"
	"siemctl/internal/app/watcher"
	"siemctl/internal/config"
	"siemctl/internal/config/logger"
)

func newParams(ctrl *gomock.Controller) (UIParams, *auth.MockAuth) {
	mockAuth := auth.NewMockAuth(ctrl)
	mockLogger := logger.NewMockLogger(ctrl)

	mockLogger.EXPECT().WithComponent(gomock.Any()).Return(mockLogger).AnyTimes()
	mockLogger.EXPECT().Debug().Return(nil).AnyTimes()

	return UIParams{
		Config:    config.DefaultConfig(),
		Auth:      mockAuth,
		Client:    api.NewMockClient(ctrl),
		Exporter:  export.NewMockExporter(ctrl),
		Telemetry: telemetry.NewMockTelemetry(ctrl),
		Monitor:   monitor.NewMockMonitor(ctrl),
		Watcher:   watcher.NewMockWatcher(ctrl),
		Navigator: navigation.NewNavigator(),
		Logger:    mockLogger,
	}, mockAuth
}

func Test_NewUI(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	params, _ := newParams(ctrl)

	factory := NewUI(params)
	assert.NotNil(t, factory)
}

func Test_UI_CreateProgram(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name          string
		authenticated bool
		expected      navigation.View
	}{
		{name: "Signed in", authenticated: true, expected: navigation.ViewConsole},
		{name: "Signed out", authenticated: false, expected: navigation.ViewLogin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params, mockAuth := newParams(ctrl)
			mockAuth.EXPECT().IsAuthenticated().Return(tt.authenticated)

			program, err := NewUI(params)(context.Background())

			assert.NoError(t, err)
			assert.NotNil(t, program)
			assert.Equal(t, tt.expected, params.Navigator.CurrentView())
		})
	}
}
