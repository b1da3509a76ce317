package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/temirov/ptree/internal/utils"
)

const commentPrefix = "#"

// LoadIgnoreFileNames reads the ignore file in directory and returns its names in order.
// A missing file yields no names. Blank lines and lines starting with # are skipped.
//
// #nosec G304
func LoadIgnoreFileNames(directory string) ([]string, error) {
	ignoreFilePath := filepath.Join(directory, utils.IgnoreFileName)
	fileHandle, openFileError := os.Open(ignoreFilePath)
	if openFileError != nil {
		if os.IsNotExist(openFileError) {
			return nil, nil
		}
		return nil, fmt.Errorf("open ignore file %s: %w", ignoreFilePath, openFileError)
	}
	defer func() {
		_ = fileHandle.Close()
	}()

	var names []string
	scanner := bufio.NewScanner(fileHandle)
	for scanner.Scan() {
		trimmedLine := strings.TrimSpace(scanner.Text())
		if trimmedLine == utils.EmptyString || strings.HasPrefix(trimmedLine, commentPrefix) {
			continue
		}
		names = append(names, trimmedLine)
	}
	if scanError := scanner.Err(); scanError != nil {
		return nil, fmt.Errorf("read ignore file %s: %w", ignoreFilePath, scanError)
	}
	return utils.DeduplicateStrings(names), nil
}
