package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var mkdirCmd = &cobra.Command{
	Use:   "mkdir [device-path] [directory]",
	Short: "Create a directory within a littlefs volume",
	Long: `Mkdir creates every missing directory along the given "/"-delimited
path, descending into directories that already exist.

Examples:
  go-littlefs mkdir ./volume.img /etc/ssh`,

	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMkdir(args[0], args[1])
	},
}

func init() {
	rootCmd.AddCommand(mkdirCmd)
}

func runMkdir(devicePath, dir string) error {
	h, dev, err := openVolume(devicePath)
	if err != nil {
		return err
	}
	defer dev.Close()

	if _, err := h.Mkdir(dir); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return nil
}
