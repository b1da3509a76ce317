package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/temirov/ptree/internal/utils"
)

func TestLoadIgnoreFileNames(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name     string
		content  *string
		expected []string
	}{
		{name: "missing_file", content: nil, expected: nil},
		{name: "comments_and_blanks", content: stringPointer("# build output\n\nbin\n  dist  \n#obj\nbin\n"), expected: []string{"bin", "dist"}},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			directory := t.TempDir()
			if testCase.content != nil {
				if err := os.WriteFile(filepath.Join(directory, utils.IgnoreFileName), []byte(*testCase.content), 0o600); err != nil {
					t.Fatalf("write ignore file: %v", err)
				}
			}
			names, err := LoadIgnoreFileNames(directory)
			if err != nil {
				t.Fatalf("LoadIgnoreFileNames error: %v", err)
			}
			if !reflect.DeepEqual(names, testCase.expected) {
				t.Fatalf("expected %v, got %v", testCase.expected, names)
			}
		})
	}
}

func stringPointer(value string) *string {
	return &value
}
