package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

func TestIsValidInput(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"hello", true},
		{"don't", true},
		{"new-york", true},
		{"école", true},
		{"", false},
		{"12345", false},
		{"a$b", false},
		{"aaa", false},
		{"aa", true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsValidInput(tt.in), "input %q", tt.in)
	}
}

func TestFormatWithCommas(t *testing.T) {
	assert.Equal(t, "0", FormatWithCommas(0))
	assert.Equal(t, "999", FormatWithCommas(999))
	assert.Equal(t, "1,000", FormatWithCommas(1000))
	assert.Equal(t, "65,535", FormatWithCommas(65535))
	assert.Equal(t, "1,234,567", FormatWithCommas(1234567))
	assert.Equal(t, "-1,234", FormatWithCommas(-1234))
}

func TestFormatScore(t *testing.T) {
	assert.Equal(t, "12,000", FormatScore(12000))
	assert.Equal(t, "1.50", FormatScore(1.5))
}

func TestCreateRankList(t *testing.T) {
	assert.Equal(t, []uint16{1, 2, 3}, CreateRankList(3))
	assert.Empty(t, CreateRankList(0))
}

func TestTOMLRoundTrip(t *testing.T) {
	type section struct {
		Name  string   `toml:"name"`
		Limit int      `toml:"limit"`
		Paths []string `toml:"paths"`
	}
	type doc struct {
		Main section `toml:"main"`
	}

	path := filepath.Join(t.TempDir(), "c.toml")
	in := doc{Main: section{Name: "x", Limit: 4, Paths: []string{"a.json", "b.txt"}}}
	require.NoError(t, SaveTOMLFile(in, path))

	var out doc
	require.NoError(t, LoadTOMLFile(path, &out))
	assert.Equal(t, in, out)

	raw, err := ParseTOMLWithRecovery(path)
	require.NoError(t, err)
	main, ok := ExtractSection(raw, "main")
	require.True(t, ok)

	name, ok := ExtractString(main, "name")
	assert.True(t, ok)
	assert.Equal(t, "x", name)
	limit, ok := ExtractInt64(main, "limit")
	assert.True(t, ok)
	assert.Equal(t, 4, limit)
	f, ok := ExtractFloat(main, "limit")
	assert.True(t, ok)
	assert.Equal(t, 4.0, f)
	paths, ok := ExtractStrings(main, "paths")
	assert.True(t, ok)
	assert.Equal(t, []string{"a.json", "b.txt"}, paths)
	_, ok = ExtractBool(main, "name")
	assert.False(t, ok)
}

func TestPathResolverResolve(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)

	pr, err := NewPathResolver("wordindex")
	require.NoError(t, err)

	dataDir := filepath.Join(pr.ConfigDir(), "data")
	require.NoError(t, os.MkdirAll(dataDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "words.txt"), []byte("a\n"), 0o644))

	assert.Equal(t, filepath.Join(dataDir, "words.txt"), pr.Resolve("words.txt"))
	assert.Equal(t, "nowhere.txt", pr.Resolve("nowhere.txt"))
	assert.Equal(t, "/abs/file.json", pr.Resolve("/abs/file.json"))
	assert.Len(t, pr.ResolveAll([]string{"a", "b"}), 2)
}
