package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadAppliesDefaultsWithNoConfigFile(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, uint32(4096), cfg.BlockSize)
	require.Equal(t, uint32(16), cfg.ProgramBlockSize)
	require.Equal(t, uint32(DefaultNameMax), cfg.NameMax)
	require.Equal(t, uint32(DefaultFileMax), cfg.FileMax)
	require.Equal(t, uint32(DefaultAttrMax), cfg.AttrMax)
}

func TestLoadHonorsEnvironmentOverride(t *testing.T) {
	t.Setenv("LFS_BLOCK_SIZE", "512")
	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, uint32(512), cfg.BlockSize)
}

func TestLoadReadsConfigFileFromWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	oldwd, err := os.Getwd()
	require.NoError(t, err)
	defer os.Chdir(oldwd)
	require.NoError(t, os.Chdir(dir))

	require.NoError(t, os.WriteFile("lfs-config.yaml", []byte("block_size: 8192\nlookahead_size: 2048\n"), 0o644))

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, uint32(8192), cfg.BlockSize)
	require.Equal(t, uint32(2048), cfg.LookaheadSize)
}
