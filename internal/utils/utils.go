// Package utils contains general helper functions used across ptree.
package utils

import (
	"path/filepath"
	"strings"
)

// DeduplicateStrings removes duplicate values from a slice while preserving order.
// The first occurrence of each unique value is kept. Comparison is case-sensitive.
func DeduplicateStrings(values []string) []string {
	encounteredValues := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))
	for _, value := range values {
		if _, exists := encounteredValues[value]; !exists {
			encounteredValues[value] = struct{}{}
			result = append(result, value)
		}
	}
	return result
}

// ContainsString checks if a slice of strings contains a specific target string.
func ContainsString(stringSlice []string, targetString string) bool {
	for _, currentString := range stringSlice {
		if currentString == targetString {
			return true
		}
	}
	return false
}

// IsBlank reports whether the value is empty or consists only of whitespace.
func IsBlank(value string) bool {
	return strings.TrimSpace(value) == EmptyString
}

// ResolvePath joins a relative path onto base and returns the cleaned absolute result.
// Absolute paths are only cleaned.
func ResolvePath(base string, path string) (string, error) {
	if filepath.IsAbs(path) {
		return filepath.Clean(path), nil
	}
	if base == EmptyString {
		return filepath.Abs(path)
	}
	return filepath.Abs(filepath.Join(base, path))
}
