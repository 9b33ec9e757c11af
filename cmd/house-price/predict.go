package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/iwvelando/house-price/internal/features"
	"github.com/iwvelando/house-price/internal/form"
	"github.com/iwvelando/house-price/internal/predict"
	"github.com/iwvelando/house-price/internal/render"
	"github.com/iwvelando/house-price/internal/submit"
	"github.com/iwvelando/house-price/pkg/validation"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// errPredictionFailed marks a prediction the server declined.
var errPredictionFailed = errors.New("prediction failed")

var (
	predictAssignments []string
	predictServer      string
	predictTimeout     time.Duration
)

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Submit an estimate to a running server",
	Example: "  house-price predict --set CRIME_RATE=1.2 --set LOCALITY_RANK=1\n" +
		"  house-price predict --server http://estimator:5110",
	RunE: func(cmd *cobra.Command, args []string) error {
		baseURL := conf.Client.BaseURL
		if predictServer != "" {
			baseURL = predictServer
		}
		timeout := conf.Client.Timeout
		if predictTimeout > 0 {
			timeout = predictTimeout
		}

		assignments, err := parseAssignments(predictAssignments)
		if err != nil {
			return err
		}
		return runPredict(cmd.Context(), cmd.OutOrStdout(), baseURL, timeout, assignments, logger)
	},
}

func init() {
	predictCmd.Flags().StringArrayVar(&predictAssignments, "set", nil, "form value as NAME=VALUE (repeatable)")
	predictCmd.Flags().StringVar(&predictServer, "server", "", "prediction server base URL (default from config)")
	predictCmd.Flags().DurationVar(&predictTimeout, "timeout", 0, "request timeout (default from config)")
	rootCmd.AddCommand(predictCmd)
}

type assignment struct {
	name  string
	value string
}

// parseAssignments splits NAME=VALUE pairs. Names are upper-cased.
func parseAssignments(raw []string) ([]assignment, error) {
	out := make([]assignment, 0, len(raw))
	for _, item := range raw {
		name, value, ok := strings.Cut(item, "=")
		name = strings.ToUpper(strings.TrimSpace(name))
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid form value %q, expected NAME=VALUE", item)
		}
		out = append(out, assignment{name: name, value: strings.TrimSpace(value)})
	}
	return out, nil
}

// runPredict fills the form, submits it and prints the verdict. A declined
// prediction returns errPredictionFailed after it is rendered.
func runPredict(ctx context.Context, out io.Writer, baseURL string, timeout time.Duration, assignments []assignment, logger *zap.Logger) error {
	catalog := features.Default()
	surface := form.NewMemorySurface()
	f := form.New(catalog, surface)
	provided := make(map[string]string, len(assignments))
	for _, a := range assignments {
		if err := f.Set(a.name, a.value); err != nil {
			return err
		}
		provided[a.name] = a.value
	}

	for _, warning := range validation.ValidateFormValues(catalog, provided) {
		logger.Warn("Form warning: "+warning,
			zap.String("op", "main.runPredict"),
		)
	}

	for _, cat := range catalog.Categoricals {
		value, _ := f.Value(cat.Name)
		desc, _ := surface.Text(cat.Name + form.DescriptionSuffix)
		fmt.Fprintf(out, "%s = %s (%s)\n", cat.Name, value, desc)
	}

	client := predict.NewClient(baseURL, &http.Client{Timeout: timeout}, logger)
	logger.Debug("submitting estimate",
		zap.String("op", "main.runPredict"),
		zap.String("endpoint", client.Endpoint()),
	)
	submitter := submit.New(f, client, render.NewRenderer(render.NewWriterDisplay(out)), logger)

	outcome, err := submitter.Submit(ctx)
	if err != nil {
		return err
	}
	if _, ok := outcome.(predict.Failure); ok {
		return errPredictionFailed
	}
	return nil
}
