package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"go-smf/smf"
)

func TestLoad_Missing(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, DefaultConfig(), cfg)
}

func TestSaveLoad(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg := DefaultConfig()
	cfg.Decoder.RunningStatus = true
	cfg.Decoder.SysEx = "legacy"
	cfg.Text.Encoding = "shift-jis"
	cfg.UI.LastFile = "/tmp/song.mid"
	require.NoError(t, cfg.Save())

	path, err := ConfigPath()
	require.NoError(t, err)
	require.FileExists(t, path)

	loaded, err := Load()
	require.NoError(t, err)
	require.Equal(t, cfg, loaded)
}

func TestLoadFile_PartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"decoder":{"verifyTrackLength":true}}`), 0644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	require.True(t, cfg.Decoder.VerifyTrackLength)
	require.Equal(t, "utf-8", cfg.Text.Encoding)
}

func TestLoadFile_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{`), 0644))

	_, err := LoadFile(path)
	require.Error(t, err)
}

func TestDecoderOptions(t *testing.T) {
	cfg := DefaultConfig()
	opts, err := cfg.DecoderOptions()
	require.NoError(t, err)
	require.Equal(t, smf.Options{}, opts)

	cfg.Decoder = DecoderConfig{RunningStatus: true, SysEx: "legacy", VerifyTrackLength: true, SplitChannelMode: true}
	opts, err = cfg.DecoderOptions()
	require.NoError(t, err)
	require.Equal(t, smf.Options{RunningStatus: true, SysEx: smf.SysExLegacy, VerifyTrackLength: true, SplitChannelMode: true}, opts)

	cfg.Decoder.SysEx = "bogus"
	_, err = cfg.DecoderOptions()
	require.Error(t, err)
}
