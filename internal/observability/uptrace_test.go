package observability

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/matchboard/internal/config"
	"github.com/riskibarqy/matchboard/internal/platform/logging"
)

func TestInitUptrace_Disabled(t *testing.T) {
	tests := []config.Config{
		{UptraceEnabled: false, ServiceName: "matchboard", ServiceVersion: "dev", AppEnv: config.EnvDev},
		{UptraceEnabled: true, UptraceDSN: "  ", ServiceName: "matchboard", ServiceVersion: "dev", AppEnv: config.EnvDev},
	}

	for _, cfg := range tests {
		shutdown, err := InitUptrace(cfg, logging.NewNop())
		require.NoError(t, err)
		require.NoError(t, shutdown(context.Background()))
	}
}

func TestInitPyroscope_Disabled(t *testing.T) {
	stop, err := InitPyroscope(config.Config{PyroscopeEnabled: false}, nil)
	require.NoError(t, err)
	require.NoError(t, stop())
}
