package dataset

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linefit/internal/model"
)

func TestLoad(t *testing.T) {
	tests := map[string]struct {
		input    string
		expected []model.Point
	}{
		"plain rows": {
			input:    "1,2\n2,4\n3,6\n",
			expected: []model.Point{{X: 1, Y: 2}, {X: 2, Y: 4}, {X: 3, Y: 6}},
		},
		"no trailing newline": {
			input:    "32.502345269453031,31.70700584656992\n53.426804033275019,68.77759598163891",
			expected: []model.Point{{X: 32.502345269453031, Y: 31.70700584656992}, {X: 53.426804033275019, Y: 68.77759598163891}},
		},
		"whitespace and blank lines": {
			input:    "\n 1.5 , -2\n\n   \n-3e2,4\r\n",
			expected: []model.Point{{X: 1.5, Y: -2}, {X: -300, Y: 4}},
		},
		"empty input": {
			input:    "",
			expected: nil,
		},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			points, err := Load(context.Background(), strings.NewReader(tc.input))
			require.NoError(t, err)
			assert.Equal(t, tc.expected, points)
		})
	}
}

func TestLoadRejectsMalformedRows(t *testing.T) {
	tests := map[string]struct {
		input    string
		contains string
	}{
		"too many fields": {input: "1,2\n3,4,5\n", contains: "line 2"},
		"too few fields":  {input: "1\n", contains: "line 1"},
		"bad x":           {input: "1,2\nx,4\n", contains: "line 2: x"},
		"bad y":           {input: "1,2\n3,4\n5,y\n", contains: "line 3: y"},
		"header row":      {input: "x,y\n1,2\n", contains: "line 1"},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(context.Background(), strings.NewReader(tc.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.contains)
		})
	}
}

func TestLoadLargeInputFailsLate(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 1000; i++ {
		fmt.Fprintf(&sb, "%d,%d\n", i, 2*i)
	}
	sb.WriteString("oops\n")
	for i := 0; i < 1000; i++ {
		fmt.Fprintf(&sb, "%d,%d\n", i, 2*i)
	}
	_, err := Load(context.Background(), strings.NewReader(sb.String()))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 1001")
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte("0,1\n1,3\n"), 0o644))

	points, err := LoadFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, []model.Point{{X: 0, Y: 1}, {X: 1, Y: 3}}, points)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(context.Background(), filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

