package entry

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sonemaro/btrls/pkg/size"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

var modTime = time.Date(2024, 3, 7, 9, 41, 0, 0, time.Local)

func setupFS(t *testing.T) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()

	require.NoError(t, fs.MkdirAll("/root/sub/nested", 0755))
	require.NoError(t, afero.WriteFile(fs, "/root/a.txt", make([]byte, 100), 0644))
	require.NoError(t, afero.WriteFile(fs, "/root/.secret", make([]byte, 10), 0600))
	require.NoError(t, afero.WriteFile(fs, "/root/.gitignore", []byte("bin/\n"), 0644))
	require.NoError(t, afero.WriteFile(fs, "/root/run.sh", []byte("#!/bin/sh\n"), 0755))
	require.NoError(t, afero.WriteFile(fs, "/root/locked.txt", make([]byte, 2048), 0444))
	require.NoError(t, afero.WriteFile(fs, "/root/sub/one.bin", make([]byte, 1024), 0644))
	require.NoError(t, afero.WriteFile(fs, "/root/sub/nested/two.bin", make([]byte, 1024), 0644))

	for _, p := range []string{"/root/a.txt", "/root/sub", "/root/run.sh"} {
		require.NoError(t, fs.Chtimes(p, modTime, modTime))
	}

	return fs
}

func TestIsHidden(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{name: ".secret", want: true},
		{name: ".config", want: true},
		{name: ".gitignore", want: false},
		{name: "a.txt", want: false},
		{name: "dot.in.middle", want: false},
		{name: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsHidden(tt.name))
		})
	}

	assert.True(t, IsSpecial(".gitignore"))
	assert.False(t, IsSpecial(".secret"))
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "résumé.pdf", DisplayName("résumé.pdf"))
	assert.Equal(t, UnknownName, DisplayName("bad\xffname"))
}

func TestExtract(t *testing.T) {
	fs := setupFS(t)
	x := NewExtractor(fs, size.NewResolver(fs, size.Config{}, nil), nil)
	ctx := context.Background()

	tests := []struct {
		name   string
		file   string
		mode   SizeMode
		verify func(*testing.T, Entry)
	}{
		{
			name: "regular file",
			file: "a.txt",
			verify: func(t *testing.T, e Entry) {
				assert.Equal(t, File, e.Kind)
				assert.Equal(t, "a.txt", e.Name)
				assert.Equal(t, "100.00 B", e.Size)
				assert.Equal(t, modTime.Format(TimeLayout), e.Modified)
				assert.Equal(t, "Mar  7 2024 09:41", e.Modified)
				assert.False(t, e.ReadOnly)
				assert.False(t, e.Hidden)
				assert.False(t, e.Executable)
			},
		},
		{
			name: "byte size mode",
			file: "locked.txt",
			mode: SizeMode{ByteSize: true},
			verify: func(t *testing.T, e Entry) {
				assert.Equal(t, "2048", e.Size)
				assert.True(t, e.ReadOnly)
			},
		},
		{
			name: "hidden file",
			file: ".secret",
			verify: func(t *testing.T, e Entry) {
				assert.True(t, e.Hidden)
				assert.Equal(t, "10.00 B", e.Size)
			},
		},
		{
			name: "allow-listed dot file",
			file: ".gitignore",
			verify: func(t *testing.T, e Entry) {
				assert.False(t, e.Hidden)
			},
		},
		{
			name: "executable file",
			file: "run.sh",
			verify: func(t *testing.T, e Entry) {
				assert.True(t, e.Executable)
				assert.Equal(t, File, e.Kind)
			},
		},
		{
			name: "directory is never executable",
			file: "sub",
			verify: func(t *testing.T, e Entry) {
				assert.Equal(t, Dir, e.Kind)
				assert.True(t, e.IsDir())
				assert.False(t, e.Executable)
			},
		},
		{
			name: "recursive directory size",
			file: "sub",
			mode: SizeMode{DirectorySize: true},
			verify: func(t *testing.T, e Entry) {
				assert.Equal(t, "2.00 KB", e.Size)
			},
		},
		{
			name: "recursive directory size in bytes",
			file: "sub",
			mode: SizeMode{DirectorySize: true, ByteSize: true},
			verify: func(t *testing.T, e Entry) {
				assert.Equal(t, "2048", e.Size)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, ok := x.Extract(ctx, "/root", tt.file, tt.mode)
			require.True(t, ok)
			tt.verify(t, e)
		})
	}
}

func TestExtractMissing(t *testing.T) {
	fs := setupFS(t)
	x := NewExtractor(fs, nil, nil)

	_, ok := x.Extract(context.Background(), "/root", "gone.txt", SizeMode{})
	assert.False(t, ok)
}

func TestExtractWithoutResolverKeepsInodeSize(t *testing.T) {
	fs := setupFS(t)
	x := NewExtractor(fs, nil, nil)

	info, err := fs.Stat("/root/sub")
	require.NoError(t, err)

	e, ok := x.Extract(context.Background(), "/root", "sub", SizeMode{DirectorySize: true, ByteSize: true})
	require.True(t, ok)
	assert.Equal(t, size.Display(info.Size(), true), e.Size)
}

func TestFromInfoZeroModTime(t *testing.T) {
	x := NewExtractor(afero.NewMemMapFs(), nil, nil)
	e := x.FromInfo(context.Background(), "/x", "x", zeroTimeInfo{}, SizeMode{})
	assert.Equal(t, NoModified, e.Modified)
}

func TestDescribe(t *testing.T) {
	fs := setupFS(t)
	x := NewExtractor(fs, size.NewResolver(fs, size.Config{}, nil), nil)
	ctx := context.Background()

	e, err := x.Describe(ctx, "/root/a.txt", SizeMode{})
	require.NoError(t, err)
	assert.Equal(t, "a.txt", e.Name)
	assert.Equal(t, File, e.Kind)

	e, err = x.Describe(ctx, "/root/sub", SizeMode{DirectorySize: true})
	require.NoError(t, err)
	assert.Equal(t, Dir, e.Kind)
	assert.Equal(t, "sub", e.Name)
	assert.Equal(t, "2.00 KB", e.Size)

	_, err = x.Describe(ctx, "/root/nope", SizeMode{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestDescribeRealExecutable(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tool")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"), 0755))

	x := NewExtractor(afero.NewOsFs(), nil, nil)
	e, err := x.Describe(context.Background(), path, SizeMode{ByteSize: true})
	require.NoError(t, err)
	assert.True(t, e.Executable)
	assert.Equal(t, "10", e.Size)
	assert.NotEmpty(t, e.Modified)
}

func TestEntryEncoding(t *testing.T) {
	e := Entry{
		Kind:     Dir,
		Name:     "sub",
		Size:     "4.00 KB",
		Modified: "Mar  7 2024 09:41",
	}

	data, err := json.Marshal(e)
	require.NoError(t, err)

	var obj map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &obj))
	assert.Equal(t, "Dir", obj["e_type"])
	for _, key := range []string{"e_type", "name", "len_bytes", "modified", "read_only", "hidden", "is_exec"} {
		assert.Contains(t, obj, key)
	}

	out, err := yaml.Marshal(e)
	require.NoError(t, err)
	assert.Contains(t, string(out), "e_type: Dir")

	var k Kind
	assert.Error(t, k.UnmarshalText([]byte("Socket")))
	require.NoError(t, k.UnmarshalText([]byte("File")))
	assert.Equal(t, File, k)
	assert.Equal(t, "Kind(9)", Kind(9).String())
}

type zeroTimeInfo struct{}

func (zeroTimeInfo) Name() string       { return "x" }
func (zeroTimeInfo) Size() int64        { return 1 }
func (zeroTimeInfo) Mode() os.FileMode  { return 0644 }
func (zeroTimeInfo) ModTime() time.Time { return time.Time{} }
func (zeroTimeInfo) IsDir() bool        { return false }
func (zeroTimeInfo) Sys() interface{}   { return nil }
