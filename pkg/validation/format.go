// Package validation provides common validation utilities.
package validation

import (
	"fmt"

	"github.com/iwvelando/house-price/pkg/constants"
)

// ValidateOutputFormat checks if the output format is one of the supported formats.
func ValidateOutputFormat(format string) error {
	if format != constants.OutputFormatPretty && format != constants.OutputFormatCSV {
		return fmt.Errorf("expected output format of %s or %s, got %s",
			constants.OutputFormatPretty, constants.OutputFormatCSV, format)
	}
	return nil
}

// ValidateCacheDriver checks if the cache driver is one of the supported drivers.
func ValidateCacheDriver(driver string) error {
	switch driver {
	case constants.CacheDriverNone, constants.CacheDriverMemory, constants.CacheDriverRedis:
		return nil
	}
	return fmt.Errorf("expected cache driver of %s, %s or %s, got %s",
		constants.CacheDriverNone, constants.CacheDriverMemory, constants.CacheDriverRedis, driver)
}
