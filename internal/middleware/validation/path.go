package validation

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

// ValidatePathParameters path parameters validation
func ValidatePathParameters(r *http.Request, pathValidation map[string]string) error {
	vars := mux.Vars(r)

	for paramName, validationRule := range pathValidation {
		paramValue, exists := vars[paramName]
		if !exists {
			continue
		}

		if paramValue == "" {
			return fmt.Errorf("path parameter '%s' boş olamaz", paramName)
		}

		switch validationRule {
		case "integer":
			if err := validateInteger(paramName, paramValue); err != nil {
				return err
			}
		case "positive_integer":
			if err := validatePositiveInteger(paramName, paramValue); err != nil {
				return err
			}
		}
	}

	return nil
}

// validateInteger integer validation
func validateInteger(paramName, paramValue string) error {
	if _, err := strconv.ParseInt(paramValue, 10, 64); err != nil {
		return fmt.Errorf("path parameter '%s' integer olmalı, alınan: '%s'", paramName, paramValue)
	}
	return nil
}

// validatePositiveInteger positive integer validation
func validatePositiveInteger(paramName, paramValue string) error {
	val, err := strconv.ParseInt(paramValue, 10, 64)
	if err != nil || val <= 0 {
		return fmt.Errorf("path parameter '%s' pozitif integer olmalı, alınan: '%s'", paramName, paramValue)
	}
	return nil
}
