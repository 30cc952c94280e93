package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/deploymenttheory/go-littlefs/config"
	"github.com/deploymenttheory/go-littlefs/pkg/blockdev"
	"github.com/deploymenttheory/go-littlefs/pkg/fs"
)

var (
	formatBlockSize        uint32
	formatProgramBlockSize uint32
	formatBlockCount       uint64
)

var formatCmd = &cobra.Command{
	Use:   "format [device-path]",
	Short: "Format a block device or image file as a littlefs volume",
	Long: `Format writes a fresh superblock to a block device or regular file,
creating a new, empty littlefs volume.

Examples:
  # Format a 16MB image file with 4096-byte blocks
  go-littlefs format ./volume.img --block-size 4096 --block-count 4096`,

	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runFormat(args[0])
	},
}

func init() {
	rootCmd.AddCommand(formatCmd)

	formatCmd.Flags().Uint32Var(&formatBlockSize, "block-size", 4096, "logical block size in bytes")
	formatCmd.Flags().Uint32Var(&formatProgramBlockSize, "program-block-size", 16, "program alignment in bytes")
	formatCmd.Flags().Uint64Var(&formatBlockCount, "block-count", 1024, "number of blocks to allocate for a new image file")
}

func runFormat(devicePath string) error {
	sectorSize := formatProgramBlockSize
	sectorCount := formatBlockCount * uint64(formatBlockSize) / uint64(sectorSize)
	dev, err := blockdev.OpenFileDevice(devicePath, sectorSize, sectorCount)
	if err != nil {
		return fmt.Errorf("open %s: %w", devicePath, err)
	}
	defer dev.Close()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg.DevicePath = devicePath
	cfg.BlockSize = formatBlockSize
	cfg.ProgramBlockSize = formatProgramBlockSize

	if err := fs.Format(dev, formatBlockSize, formatProgramBlockSize, cfg); err != nil {
		return fmt.Errorf("format: %w", err)
	}

	fmt.Printf("formatted %s (%d blocks of %d bytes)\n", devicePath, formatBlockCount, formatBlockSize)
	return nil
}
