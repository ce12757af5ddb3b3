package commands

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sonemaro/btrls/cmd/btrls/app"
	"github.com/sonemaro/btrls/internal/version"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, fs afero.Fs, args ...string) (string, error) {
	t.Helper()
	for _, env := range []string{"BTRLS_CONFIG", "BTRLS_WORKERS", "BTRLS_RATE_LIMIT", "BTRLS_NO_COLOR", "BTRLS_VERBOSE", "BTRLS_DEPTH"} {
		t.Setenv(env, "")
	}
	t.Setenv("BTRLS_CONFIG", "/no/such/btrls.toml")

	var out, errOut bytes.Buffer
	cmd := NewRootCommand(app.WithFs(fs))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func setupFS(t *testing.T) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/srv/app.log", make([]byte, 2048), 0644))
	require.NoError(t, afero.WriteFile(fs, "/srv/.env", []byte("K=V"), 0644))
	require.NoError(t, afero.WriteFile(fs, "/srv/data/one/two.bin", make([]byte, 10), 0644))
	return fs
}

func TestRootCommand(t *testing.T) {
	fs := setupFS(t)

	tests := []struct {
		name     string
		args     []string
		wantErr  string
		validate func(*testing.T, string)
	}{
		{
			name: "json listing",
			args: []string{"-j", "/srv"},
			validate: func(t *testing.T, out string) {
				var rows []map[string]interface{}
				require.NoError(t, json.Unmarshal([]byte(out), &rows))
				require.Len(t, rows, 2)
				assert.Equal(t, "data", rows[0]["name"])
				assert.Equal(t, "2.00 KB", rows[1]["len_bytes"])
			},
		},
		{
			name: "long flags",
			args: []string{"--json", "--all", "--byte-size", "/srv"},
			validate: func(t *testing.T, out string) {
				var rows []map[string]interface{}
				require.NoError(t, json.Unmarshal([]byte(out), &rows))
				assert.Len(t, rows, 3)
				assert.Contains(t, out, `"len_bytes":"2048"`)
			},
		},
		{
			name: "tree uses default depth",
			args: []string{"-r", "/srv"},
			validate: func(t *testing.T, out string) {
				assert.Equal(t, "/srv\n├──> app.log\n├──> data\n│    ├──> one\n", out)
			},
		},
		{
			name: "tree depth flag",
			args: []string{"-r", "-d", "2", "/srv"},
			validate: func(t *testing.T, out string) {
				assert.Contains(t, out, "│    │    ├──> two.bin")
			},
		},
		{
			name: "file info",
			args: []string{"-f", "/srv/app.log"},
			validate: func(t *testing.T, out string) {
				assert.Contains(t, out, "app.log")
				assert.Contains(t, out, "Read_Only")
			},
		},
		{
			name: "missing path exits cleanly",
			args: []string{"/missing"},
			validate: func(t *testing.T, out string) {
				assert.Equal(t, "Path does not exist\n", out)
			},
		},
		{
			name:    "negative depth",
			args:    []string{"-r", "--depth=-1", "/srv"},
			wantErr: "depth must be non-negative",
		},
		{
			name: "zero workers means cpu count",
			args: []string{"-w", "0", "-j", "-s", "/srv"},
			validate: func(t *testing.T, out string) {
				var rows []map[string]interface{}
				require.NoError(t, json.Unmarshal([]byte(out), &rows))
				require.Len(t, rows, 2)
				assert.Equal(t, "10.00 B", rows[0]["len_bytes"])
			},
		},
		{
			name:    "negative workers",
			args:    []string{"--workers=-2", "/srv"},
			wantErr: "workers count must be positive",
		},
		{
			name:    "too many workers",
			args:    []string{"-w", "100000", "/srv"},
			wantErr: "workers count cannot exceed",
		},
		{
			name:    "too many arguments",
			args:    []string{"/srv", "/tmp"},
			wantErr: "accepts at most 1 arg",
		},
		{
			name: "version",
			args: []string{"version"},
			validate: func(t *testing.T, out string) {
				assert.Equal(t, version.Version+"\n", out)
			},
		},
		{
			name: "full version",
			args: []string{"version", "-f"},
			validate: func(t *testing.T, out string) {
				assert.Contains(t, out, "btrls "+version.Version)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, fs, tt.args...)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.validate(t, out)
		})
	}
}

func TestEnvironmentDepth(t *testing.T) {
	fs := setupFS(t)
	t.Setenv("BTRLS_DEPTH", "0")

	var out bytes.Buffer
	cmd := NewRootCommand(app.WithFs(fs))
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"-r", "/srv"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "/srv\n├──> app.log\n├──> data\n", out.String())
}
