package utils

import (
	"runtime/debug"
	"testing"
)

func TestVersionFromBuildInfo(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name      string
		buildInfo debug.BuildInfo
		expected  string
	}{
		{
			name:      "tagged module",
			buildInfo: debug.BuildInfo{Main: debug.Module{Version: "v1.2.3"}},
			expected:  "v1.2.3",
		},
		{
			name: "devel with revision",
			buildInfo: debug.BuildInfo{
				Main:     debug.Module{Version: develVersion},
				Settings: []debug.BuildSetting{{Key: revisionSettingKey, Value: "0123456789abcdef"}},
			},
			expected: "0123456789ab",
		},
		{
			name: "modified tree",
			buildInfo: debug.BuildInfo{
				Main: debug.Module{Version: develVersion},
				Settings: []debug.BuildSetting{
					{Key: revisionSettingKey, Value: "abc"},
					{Key: modifiedSettingKey, Value: "true"},
				},
			},
			expected: "abc-dirty",
		},
		{
			name:      "nothing recorded",
			buildInfo: debug.BuildInfo{Main: debug.Module{Version: develVersion}},
			expected:  unknownVersion,
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			if version := versionFromBuildInfo(&testCase.buildInfo); version != testCase.expected {
				t.Fatalf("versionFromBuildInfo() = %q, want %q", version, testCase.expected)
			}
		})
	}
}
