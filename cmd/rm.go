package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var rmCmd = &cobra.Command{
	Use:   "rm [device-path] [key]",
	Short: "Delete the value stored at key",
	Long: `Rm deletes key. Deleting a key that doesn't exist succeeds without
effect.

Examples:
  go-littlefs rm ./volume.img /etc/hostname`,

	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRm(args[0], args[1])
	},
}

func init() {
	rootCmd.AddCommand(rmCmd)
}

func runRm(devicePath, key string) error {
	h, dev, err := openVolume(devicePath)
	if err != nil {
		return err
	}
	defer dev.Close()

	if err := h.Delete(key); err != nil {
		return fmt.Errorf("rm %s: %w", key, err)
	}
	return nil
}
