package main

import (
	"github.com/iwvelando/house-price/internal/features"
	"github.com/iwvelando/house-price/pkg/constants"
	"github.com/iwvelando/house-price/pkg/output"
	"github.com/iwvelando/house-price/pkg/validation"
	"github.com/spf13/cobra"
)

var featuresOutputFormat string

var featuresCmd = &cobra.Command{
	Use:   "features",
	Short: "List the form inputs, their ranges and descriptions",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := validation.ValidateOutputFormat(featuresOutputFormat); err != nil {
			return err
		}

		catalog := features.Default()
		switch featuresOutputFormat {
		case constants.OutputFormatCSV:
			return output.CsvFormat(cmd.OutOrStdout(), catalog)
		default:
			output.PrettyFormat(cmd.OutOrStdout(), catalog)
		}
		return nil
	},
}

func init() {
	featuresCmd.Flags().StringVar(&featuresOutputFormat, "output-format", constants.OutputFormatPretty, "type of output: pretty, csv")
	rootCmd.AddCommand(featuresCmd)
}
