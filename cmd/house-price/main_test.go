package main

import (
	"bytes"
	"context"
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/iwvelando/house-price/internal/cache"
	"github.com/iwvelando/house-price/internal/config"
	"github.com/iwvelando/house-price/internal/features"
	"github.com/iwvelando/house-price/internal/model"
	"github.com/iwvelando/house-price/internal/predict"
	"github.com/iwvelando/house-price/internal/server"
	"github.com/iwvelando/house-price/pkg/constants"
	"github.com/iwvelando/house-price/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRootCommand_HasSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	for _, name := range []string{"serve", "predict", "features"} {
		assert.True(t, names[name], "expected subcommand %q not found", name)
	}
}

func TestCommandFlags(t *testing.T) {
	flag := rootCmd.PersistentFlags().Lookup("config")
	require.NotNil(t, flag)
	assert.Equal(t, constants.DefaultConfigFile, flag.DefValue)

	require.NotNil(t, serveCmd.Flags().Lookup("address"))
	require.NotNil(t, serveCmd.Flags().Lookup("model"))
	require.NotNil(t, predictCmd.Flags().Lookup("set"))
	require.NotNil(t, predictCmd.Flags().Lookup("server"))

	format := featuresCmd.Flags().Lookup("output-format")
	require.NotNil(t, format)
	assert.Equal(t, constants.OutputFormatPretty, format.DefValue)
}

func TestFeaturesCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{
		"features",
		"--config", filepath.Join(t.TempDir(), "missing.yaml"),
		"--output-format", constants.OutputFormatCSV,
	})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
		featuresOutputFormat = constants.OutputFormatPretty
	})

	require.NoError(t, rootCmd.Execute())
	assert.True(t, strings.HasPrefix(out.String(), "name,kind,min,max,step,default,value,label,description\n"))
	assert.Contains(t, out.String(), "CRIME_RATE,numeric,0,10,0.1,0.6")
}

func TestParseAssignments(t *testing.T) {
	got, err := parseAssignments([]string{"crime_rate=1.2", " LOCALITY_RANK = 1 ", "GREEN_AREA="})
	require.NoError(t, err)
	assert.Equal(t, []assignment{
		{name: "CRIME_RATE", value: "1.2"},
		{name: "LOCALITY_RANK", value: "1"},
		{name: "GREEN_AREA", value: ""},
	}, got)

	for _, bad := range []string{"CRIME_RATE", "=1"} {
		_, err := parseAssignments([]string{bad})
		assert.Error(t, err, "expected error for %q", bad)
	}
}

func TestRunPredictAgainstServer(t *testing.T) {
	srv := httptest.NewServer(server.NewHandler(nil, server.Options{}))
	defer srv.Close()

	var out bytes.Buffer
	err := runPredict(context.Background(), &out, srv.URL, 5*time.Second,
		[]assignment{{name: features.CrimeRate, value: "1.2"}, {name: features.LocalityRank, value: "1"}}, zap.NewNop())
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "LOCALITY_RANK = 1 (Premium areas like Nayapalli, Saheed Nagar)")
	assert.Contains(t, text, "RIVER_PROXIMITY = 0 (Property is not near Kuakhai River)")
	assert.Contains(t, text, "Calculating...")
	assert.Contains(t, text, "Estimated Price\n₹45.5 lakhs\nBased on current market trends")
}

func TestRunPredictServerFailure(t *testing.T) {
	srv := httptest.NewServer(server.NewHandler(nil, server.Options{}))
	defer srv.Close()

	var out bytes.Buffer
	err := runPredict(context.Background(), &out, srv.URL, 5*time.Second,
		[]assignment{{name: features.CrimeRate, value: "abc"}}, zap.NewNop())
	assert.ErrorIs(t, err, errPredictionFailed)
	assert.Contains(t, out.String(), "Error\n"+server.FailureMessage)
}

func TestRunPredictUnknownField(t *testing.T) {
	var out bytes.Buffer
	err := runPredict(context.Background(), &out, "http://127.0.0.1:1", time.Second,
		[]assignment{{name: "BALCONIES", value: "2"}}, zap.NewNop())
	assert.Error(t, err)
	assert.Empty(t, out.String())
}

func TestRunPredictUnreachableServer(t *testing.T) {
	srv := httptest.NewServer(nil)
	url := srv.URL
	srv.Close()

	var out bytes.Buffer
	err := runPredict(context.Background(), &out, url, time.Second, nil, zap.NewNop())
	assert.True(t, errors.Is(err, predict.ErrTransport), "expected transport error, got %v", err)
	assert.Contains(t, out.String(), "Network Error\nPlease try again")
}

func TestInitializeLogger(t *testing.T) {
	l, err := initializeLogger(config.LoggingConfig{}, "")
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zap.InfoLevel))
	assert.False(t, l.Core().Enabled(zap.DebugLevel))

	l, err = initializeLogger(config.LoggingConfig{Level: "error", Format: "console"}, "debug")
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zap.DebugLevel))

	_, err = initializeLogger(config.LoggingConfig{Level: "verbose"}, "")
	assert.Error(t, err)

	_, err = initializeLogger(config.LoggingConfig{Format: "xml"}, "")
	assert.Error(t, err)
}

func TestInitializeLoggerOutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "house-price.log")

	l, err := initializeLogger(config.LoggingConfig{OutputFile: path}, "")
	require.NoError(t, err)
	l.Info("hello")
	_ = l.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello")
}

func TestBuildModel(t *testing.T) {
	catalog := features.Default()

	m, err := buildModel(config.ModelConfig{}, catalog, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, model.Fallback(), m)

	order := catalog.ModelOrder()
	path := testutil.WriteTempFile(t, "model.yaml", "features: ["+strings.Join(order, ", ")+"]\n"+
		"intercept: 20\n"+
		"coefficients: ["+strings.TrimSuffix(strings.Repeat("0, ", len(order)), ", ")+"]\n")

	m, err = buildModel(config.ModelConfig{Path: path}, catalog, zap.NewNop())
	require.NoError(t, err)
	price, err := m.Predict(context.Background(), make([]float64, len(order)))
	require.NoError(t, err)
	assert.Equal(t, 20.0, price)

	short := testutil.WriteTempFile(t, "short.yaml", "coefficients: [1, 2]\n")
	_, err = buildModel(config.ModelConfig{Path: short}, catalog, zap.NewNop())
	assert.Error(t, err)
}

func TestBuildCache(t *testing.T) {
	repo, closeFn, err := buildCache(context.Background(), config.CacheConfig{Driver: constants.CacheDriverNone}, zap.NewNop())
	require.NoError(t, err)
	assert.Nil(t, repo)
	closeFn()

	repo, closeFn, err = buildCache(context.Background(), config.CacheConfig{Driver: constants.CacheDriverMemory, TTL: time.Minute}, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &cache.Memory{}, repo)
	closeFn()
}
