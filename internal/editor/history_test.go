package editor

import (
	"reflect"
	"testing"
)

func TestHistoryRecallPositions(t *testing.T) {
	t.Parallel()

	history := NewHistory()
	for _, line := range []string{"A", " ", "B", "", "C"} {
		history.Add(line)
	}

	if history.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", history.Len())
	}
	if !reflect.DeepEqual(history.Entries(), []string{"C", "B", "A"}) {
		t.Fatalf("Entries() = %v", history.Entries())
	}
	testCases := []struct {
		position int
		expected string
		found    bool
	}{
		{position: 0, expected: "C", found: true},
		{position: 2, expected: "A", found: true},
		{position: 3, found: false},
		{position: -1, found: false},
	}
	for _, testCase := range testCases {
		entry, found := history.Recall(testCase.position)
		if entry != testCase.expected || found != testCase.found {
			t.Errorf("Recall(%d) = (%q, %v), want (%q, %v)", testCase.position, entry, found, testCase.expected, testCase.found)
		}
	}
}
