package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
}

func TestLoad_Defaults(t *testing.T) {
	resetViper(t)
	dir := t.TempDir()

	s, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, dir, s.BaseDir)
	assert.Equal(t, [3]string{"A", "skip", "B"}, s.LabelFolders)
	assert.False(t, s.RenameOnConflict)
	assert.Empty(t, s.HistoryDB)
}

func TestLoad_ConfiguredLabels(t *testing.T) {
	resetViper(t)
	dir := t.TempDir()
	viper.Set("labels.a", "Cats")
	viper.Set("labels.b", "Dogs")
	viper.Set("sort.rename_on_conflict", true)

	s, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, [3]string{"Cats", "skip", "Dogs"}, s.LabelFolders)
	assert.True(t, s.RenameOnConflict)
}

func TestLoad_BaseDirFromConfig(t *testing.T) {
	resetViper(t)
	dir := t.TempDir()
	viper.Set("sort.base_dir", dir)

	s, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, dir, s.BaseDir)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		setup   func(t *testing.T) string
		name    string
		wantErr string
	}{
		{
			name:    "no base dir anywhere",
			setup:   func(*testing.T) string { return "" },
			wantErr: "no base directory",
		},
		{
			name: "base dir missing",
			setup: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "nope")
			},
			wantErr: "base directory",
		},
		{
			name: "base dir is a file",
			setup: func(t *testing.T) string {
				f := filepath.Join(t.TempDir(), "file.jpg")
				require.NoError(t, os.WriteFile(f, []byte("x"), 0o600))
				return f
			},
			wantErr: "not a directory",
		},
		{
			name: "label folder is a path",
			setup: func(t *testing.T) string {
				viper.Set("labels.a", filepath.Join("nested", "Cats"))
				return t.TempDir()
			},
			wantErr: "plain name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetViper(t)
			_, err := Load(tt.setup(t))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	t.Setenv("IMGSIEVE_TEST_DIR", "/data")

	tests := []struct {
		name string
		path string
		want string
	}{
		{name: "empty", path: "", want: ""},
		{name: "tilde prefix", path: "~/pics", want: filepath.Join(home, "pics")},
		{name: "bare tilde", path: "~", want: home},
		{name: "env var", path: "$IMGSIEVE_TEST_DIR/pics", want: "/data/pics"},
		{name: "plain", path: "/tmp/pics", want: "/tmp/pics"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandPath(tt.path))
		})
	}
}
