package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/bastiangx/wordindex/pkg/api"
	"github.com/bastiangx/wordindex/pkg/config"
	"github.com/bastiangx/wordindex/pkg/server"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

type fixture struct {
	config string
	vocab  string
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	dir := t.TempDir()

	cfg := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(cfg, []byte("[log]\nlevel = \"error\"\n"), 0o644))

	vocab := filepath.Join(dir, "words_dictionary.json")
	require.NoError(t, os.WriteFile(vocab, []byte(`{"happy": 1, "happen": 1, "happily": 1, "cat": 1}`), 0o644))

	return fixture{config: cfg, vocab: vocab}
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(bytes.NewBufferString(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestRootCmdUnknownCommand(t *testing.T) {
	_, err := execute(t, "", "nonexistent")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown command "nonexistent" for "wordindex"`)
}

func TestVersionCmd(t *testing.T) {
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "wordindex")
	assert.Contains(t, out, Version)
}

func TestQueryCmd(t *testing.T) {
	f := newFixture(t)

	out, err := execute(t, "", "--config", f.config, "--vocab", f.vocab, "query", "happ")
	require.NoError(t, err)
	assert.Equal(t, "Autocomplete suggestions for 'happ': ['happy', 'happen', 'happily']\n", out)

	out, err = execute(t, "", "--config", f.config, "--vocab", f.vocab, "query", "happ", "--limit", "1")
	require.NoError(t, err)
	assert.Equal(t, "Autocomplete suggestions for 'happ': ['happy']\n", out)

	out, err = execute(t, "", "--config", f.config, "--vocab", f.vocab, "query", "xyz")
	require.NoError(t, err)
	assert.Equal(t, "Autocomplete suggestions for 'xyz': []\n", out)
}

func TestQueryCmdErrors(t *testing.T) {
	f := newFixture(t)

	_, err := execute(t, "", "--config", f.config, "query")
	assert.Error(t, err, "prefix argument is required")

	_, err = execute(t, "", "--config", f.config, "--vocab", filepath.Join(t.TempDir(), "missing.json"), "query", "happ")
	assert.Error(t, err)
}

func TestServeCmd(t *testing.T) {
	f := newFixture(t)

	var in bytes.Buffer
	require.NoError(t, msgpack.NewEncoder(&in).Encode(server.Request{ID: "r1", Prefix: "hap", Limit: 2}))

	out, err := execute(t, in.String(), "--config", f.config, "--vocab", f.vocab, "serve")
	require.NoError(t, err)

	dec := msgpack.NewDecoder(bytes.NewBufferString(out))
	var ready server.StatusResponse
	require.NoError(t, dec.Decode(&ready))
	assert.Equal(t, "ready", ready.Status)

	var resp server.CompletionResponse
	require.NoError(t, dec.Decode(&resp))
	assert.Equal(t, "r1", resp.ID)
	require.Len(t, resp.Suggestions, 2)
	assert.Equal(t, "happy", resp.Suggestions[0].Word)
	assert.Equal(t, uint16(1), resp.Suggestions[0].Rank)
}

func TestCliCmd(t *testing.T) {
	f := newFixture(t)

	out, err := execute(t, "ca\n:quit\n", "--config", f.config, "--vocab", f.vocab, "cli", "--limit", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "Found 1 suggestions for prefix 'ca':")
	assert.Contains(t, out, "cat")
}

func TestAPIHandlerFromOptions(t *testing.T) {
	f := newFixture(t)
	opts := &options{configPath: f.config, vocab: []string{f.vocab}}
	require.NoError(t, opts.load())

	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())
	h, err := opts.newAPIHandler(cmd)
	require.NoError(t, err)
	router := h.Router()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/suggest?prefix=hap&limit=1", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var resp api.SuggestResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.Len(t, resp.Suggestions, 1)
	assert.Equal(t, "happy", resp.Suggestions[0].Term)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/reload", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "wordindex_index_terms 4")
}

func TestVocabularyFallsBackToConfig(t *testing.T) {
	f := newFixture(t)
	opts := &options{configPath: f.config}
	require.NoError(t, opts.load())
	assert.Nil(t, opts.builder())

	opts.cfg.Index.Vocabulary = []string{f.vocab}
	assert.Equal(t, []string{f.vocab}, opts.vocabulary())
	assert.NotNil(t, opts.builder())
}

func TestFormatList(t *testing.T) {
	assert.Equal(t, "[]", formatList(nil))
	assert.Equal(t, "['a', 'b']", formatList([]string{"a", "b"}))
}

func TestBuildCmd(t *testing.T) {
	f := newFixture(t)
	out := filepath.Join(t.TempDir(), "chunks")

	stdout, err := execute(t, "", "--config", f.config, "--vocab", f.vocab, "build", "--out", out, "--chunk", "3")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Wrote 4 words into 2 chunks")
	assert.FileExists(t, filepath.Join(out, "dict_0001.bin"))
	assert.FileExists(t, filepath.Join(out, "dict_0002.bin"))

	stdout, err = execute(t, "", "--config", f.config, "--vocab", out, "query", "happ")
	require.NoError(t, err)
	assert.Equal(t, "Autocomplete suggestions for 'happ': ['happy', 'happen', 'happily']\n", stdout)

	_, err = execute(t, "", "--config", f.config, "build", "--out", out)
	assert.Error(t, err, "nothing to build without a vocabulary")
}

func TestConfigCmd(t *testing.T) {
	f := newFixture(t)

	stdout, err := execute(t, "", "--config", f.config, "config")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Max limit:      64")
	assert.Contains(t, stdout, "Filter:         false")

	stdout, err = execute(t, "", "--config", f.config, "config", "--max-limit", "5", "--enable-filter")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Max limit:      5")
	assert.Contains(t, stdout, "Filter:         true")

	saved, err := config.LoadConfig(f.config)
	require.NoError(t, err)
	assert.Equal(t, 5, saved.Server.MaxLimit)
	assert.True(t, saved.Server.EnableFilter)
	assert.Equal(t, "error", saved.Log.Level)
}
