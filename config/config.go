// Package config loads mount-time configuration using viper, grounded on
// the teacher's internal/device.LoadDMGConfig pattern.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// MountConfig carries the parameters format/connect need, mirroring the
// on-disk superblock's own fields (§6).
type MountConfig struct {
	DevicePath       string `mapstructure:"device_path"`
	BlockSize        uint32 `mapstructure:"block_size"`
	ProgramBlockSize uint32 `mapstructure:"program_block_size"`
	LookaheadSize    uint32 `mapstructure:"lookahead_size"`
	NameMax          uint32 `mapstructure:"name_max"`
	FileMax          uint32 `mapstructure:"file_max"`
	AttrMax          uint32 `mapstructure:"attr_max"`
}

// Defaults mirror the superblock defaults from spec.md §6.
const (
	DefaultNameMax = 32
	DefaultFileMax = 2_147_483_647
	DefaultAttrMax = 1022
)

// Load reads mount configuration from (in order of precedence) the LFS_*
// environment variables, an lfs-config.yaml in the search path, and
// defaults, exactly as LoadDMGConfig does for APFS_* / apfs-config.yaml.
func Load() (*MountConfig, error) {
	v := viper.New()
	v.SetConfigName("lfs-config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("$HOME/.littlefs")
	v.AddConfigPath("/etc/littlefs")

	v.SetDefault("block_size", 4096)
	v.SetDefault("program_block_size", 16)
	v.SetDefault("lookahead_size", 1024)
	v.SetDefault("name_max", DefaultNameMax)
	v.SetDefault("file_max", DefaultFileMax)
	v.SetDefault("attr_max", DefaultAttrMax)

	v.SetEnvPrefix("LFS")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("config: read config file: %w", err)
		}
	}

	var cfg MountConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	return &cfg, nil
}
