package fileutil

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckPathTraversal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		root      string
		target    string
		expectErr bool
	}{
		{
			name:      "Safe child",
			root:      "/tmp/safe",
			target:    "/tmp/safe/child.txt",
			expectErr: false,
		},
		{
			name:      "Safe deep child",
			root:      "/tmp/safe",
			target:    "/tmp/safe/dir/child.txt",
			expectErr: false,
		},
		{
			name:      "Root itself",
			root:      "/tmp/safe",
			target:    "/tmp/safe",
			expectErr: false,
		},
		{
			name:      "Traversal attempt",
			root:      "/tmp/safe",
			target:    "/tmp/safe/../evil.txt",
			expectErr: true,
		},
		{
			name:      "Direct parent traversal",
			root:      "/tmp/safe",
			target:    "/tmp/evil.txt",
			expectErr: true,
		},
		{
			name:      "Root prefix but not child",
			root:      "/tmp/safe",
			target:    "/tmp/safe_suffix_is_not_child",
			expectErr: true,
		},
		{
			name:      "Relative paths safe",
			root:      "safe",
			target:    "safe/child",
			expectErr: false,
		},
		{
			name:      "Relative paths unsafe",
			root:      "safe",
			target:    "safe/../evil",
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// Normalize for OS (Windows vs Unix)
			root := filepath.FromSlash(tt.root)
			target := filepath.FromSlash(tt.target)

			err := CheckPathTraversal(root, target)
			if tt.expectErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "illegal file path")
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCheckName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		valid bool
	}{
		{"plain", "cmds.json", true},
		{"dotted", ".hidden", true},
		{"empty", "", false},
		{"dot", ".", false},
		{"dot dot", "..", false},
		{"slash", "a/b", false},
		{"backslash", `a\b`, false},
		{"parent escape", "../evil.json", false},
		{"nul", "a\x00b", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := CheckName(tt.input)
			if tt.valid {
				require.NoError(t, err)

				return
			}

			require.ErrorIs(t, err, ErrInvalidName)
		})
	}
}

func TestJoinChild(t *testing.T) {
	t.Parallel()

	root := t.TempDir()

	got, err := JoinChild(root, "cmds.json")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "cmds.json"), got)

	_, err = JoinChild(root, "..")
	require.ErrorIs(t, err, ErrInvalidName)
}

func TestSanitizeName(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"TestFoo":                    "TestFoo",
		"TestFoo/sub_case":           "TestFoo_sub_case",
		"TestFoo/with spaces/and#$%": "TestFoo_with_spaces_and",
		"../../etc":                  "etc",
		"///":                        "_",
		"Test/ünïcode":               "Test_ünïcode",
	}

	for input, want := range tests {
		assert.Equal(t, want, SanitizeName(input), input)
		require.NoError(t, CheckName(SanitizeName(input)))
	}
}
