package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/tend/pkg/page"
	"tableflip.dev/tend/pkg/stage"
	"tableflip.dev/tend/pkg/store"
)

func TestDefaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	c, err := FromViper(v)
	require.NoError(t, err)

	assert.Equal(t, store.BackendDiskv, c.Backend())
	assert.Equal(t, stage.Planning, c.Stage)
	assert.Equal(t, 30, c.Retention)
	assert.Equal(t, 500*time.Millisecond, c.Debounce)
	assert.Equal(t, 25.0, c.Threshold)
	assert.Equal(t, page.Mood, c.Done)
	assert.True(t, filepath.IsAbs(c.BasePath()), "home is expanded: %s", c.BasePath())
}

func TestLoadFromFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	data := []byte("path: " + dir + "\nstage: treatment\nretention: 14\ndebounce: 250ms\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".tend.yaml"), data, 0o644))
	t.Setenv("TEND_CONFIG_PATH", dir)
	t.Setenv("TEND_BACKEND", "sqlite")

	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, dir, c.Path)
	assert.Equal(t, stage.Treatment, c.Stage)
	assert.Equal(t, 14, c.Retention)
	assert.Equal(t, 250*time.Millisecond, c.Debounce)
	assert.Equal(t, store.BackendSQLite, c.Store)
}

func TestRejectsBadValues(t *testing.T) {
	tests := map[string]func(v *viper.Viper){
		"stage":     func(v *viper.Viper) { v.Set(keyStage, "retired") },
		"retention": func(v *viper.Viper) { v.Set(keyRetention, 0) },
		"threshold": func(v *viper.Viper) { v.Set(keyThreshold, 120) },
		"settle":    func(v *viper.Viper) { v.Set(keySettle, "-1s") },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			v := viper.New()
			SetDefaults(v)
			mutate(v)
			_, err := FromViper(v)
			assert.Error(t, err)
		})
	}
}
