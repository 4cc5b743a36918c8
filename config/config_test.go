package config

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, UnitDictionary, cfg.Units[0].Name)
	assert.Equal(t, UnitUnknown, cfg.Units[len(cfg.Units)-1].Name)
	assert.Contains(t, cfg.KnownPrefixes, "псевдо")

	subs, err := cfg.Substitutes()
	require.NoError(t, err)
	require.Len(t, subs['е'], 1)
	assert.Equal(t, "ё", subs['е'][0].Text)
}

func TestParseOverridesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
units:
  - name: dictionary
    score: 1
    terminate: true
  - name: unknown
    score: 1
    terminate: true
cache_size: 5000
paradigms_byte_order: little
`))
	require.NoError(t, err)
	assert.Len(t, cfg.Units, 2)
	assert.Equal(t, 5000, cfg.CacheSize)
	assert.Equal(t, 16, cfg.CacheShards)
	assert.NotEmpty(t, cfg.KnownPrefixes)

	order, err := cfg.ByteOrder()
	require.NoError(t, err)
	assert.Equal(t, binary.LittleEndian, order)
}

func TestParseEmptyDocument(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default().Units, cfg.Units)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		is   error
	}{
		{"unknown unit", "units: [{name: magic, score: 1}]", ErrUnknownUnit},
		{"long substitution key", "char_substitutes: {ее: [ё]}", ErrSubstitution},
		{"empty substitution", "char_substitutes: {е: ['']}", ErrSubstitution},
		{"zero score", "units: [{name: unknown}]", nil},
		{"bad byte order", "paradigms_byte_order: middle", nil},
		{"unknown field", "cache: 1", nil},
		{"bad particle", "hyphen_particles: [то]", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			require.Error(t, err)
			if tt.is != nil {
				assert.ErrorIs(t, err, tt.is)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "morphy.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cache_size: 10\n"), 0o644))
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.CacheSize)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("MORPHY_DICT_PATH", "/dicts/ru")
	t.Setenv("MORPHY_CACHE_SIZE", "100")
	t.Setenv("MORPHY_WORKERS", "4")

	env, err := LoadEnv()
	require.NoError(t, err)
	assert.Equal(t, "/dicts/ru", env.DictPath)
	assert.Equal(t, 4, env.Workers)

	cfg := Default()
	cfg.ApplyEnv(env)
	assert.Equal(t, 100, cfg.CacheSize)
	assert.Equal(t, 16, cfg.CacheShards)
}
