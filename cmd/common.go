package cmd

import (
	"fmt"

	"github.com/deploymenttheory/go-littlefs/config"
	"github.com/deploymenttheory/go-littlefs/pkg/blockdev"
	"github.com/deploymenttheory/go-littlefs/pkg/fs"
)

// openVolume opens devicePath and mounts it, loading block-size parameters
// from the on-disk config search path (or LFS_* environment overrides).
func openVolume(devicePath string) (*fs.Handle, *blockdev.FileDevice, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	dev, err := blockdev.OpenExistingFileDevice(devicePath, cfg.ProgramBlockSize)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", devicePath, err)
	}

	h, err := fs.Connect(dev, cfg.BlockSize, cfg.ProgramBlockSize)
	if err != nil {
		dev.Close()
		return nil, nil, fmt.Errorf("connect: %w", err)
	}
	return h, dev, nil
}
