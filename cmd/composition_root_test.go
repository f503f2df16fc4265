package cmd

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) Config {
	t.Helper()
	cfg, err := loadConfig(envFrom(nil), nil)
	require.NoError(t, err)
	return cfg
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewCompositionRoot_FeeScale(t *testing.T) {
	tests := []struct {
		name        string
		deliveryFee string
		platformFee string
		wantErr     bool
	}{
		{name: "whole amounts", deliveryFee: "30", platformFee: "10"},
		{name: "cents", deliveryFee: "29.99", platformFee: "0.50"},
		{name: "trailing zeros beyond cents", deliveryFee: "30.000", platformFee: "10"},
		{name: "sub-cent delivery fee", deliveryFee: "0.005", platformFee: "10", wantErr: true},
		{name: "sub-cent platform fee", deliveryFee: "30", platformFee: "0.005", wantErr: true},
		{name: "not a number", deliveryFee: "thirty", platformFee: "10", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t)
			cfg.DeliveryFee = tt.deliveryFee
			cfg.PlatformFee = tt.platformFee

			root, err := NewCompositionRoot(cfg, nil, nil, nil, discardLogger())

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, root)
				return
			}
			assert.NoError(t, err)
			assert.NotNil(t, root)
		})
	}
}

func TestNewCompositionRoot_UnknownItemPolicy(t *testing.T) {
	cfg := testConfig(t)
	cfg.UnknownItemPolicy = "ignore"

	_, err := NewCompositionRoot(cfg, nil, nil, nil, discardLogger())

	assert.Error(t, err)
}

func TestCompositionRoot_JobManagerWithoutLocker(t *testing.T) {
	root, err := NewCompositionRoot(testConfig(t), nil, nil, nil, discardLogger())
	require.NoError(t, err)

	manager := root.CreateJobManager()

	assert.NotNil(t, manager)
	assert.Same(t, root.NotificationFanout(), root.NotificationFanout())
}
