package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var fsckCmd = &cobra.Command{
	Use:   "fsck [device-path]",
	Short: "Check a littlefs volume for consistency",
	Long: `Fsck walks every metadata block and file reachable from the root,
verifying commit CRCs along the way, and confirms the superblock is
present. It makes no repairs.

Examples:
  go-littlefs fsck ./volume.img`,

	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runFsck(args[0])
	},
}

func init() {
	rootCmd.AddCommand(fsckCmd)
}

func runFsck(devicePath string) error {
	h, dev, err := openVolume(devicePath)
	if err != nil {
		return err
	}
	defer dev.Close()

	report, err := h.Fsck()
	if err != nil {
		return fmt.Errorf("fsck: %w", err)
	}

	fmt.Printf("superblock: ok\nlive blocks: %d\n", report.LiveBlocks)
	return nil
}
