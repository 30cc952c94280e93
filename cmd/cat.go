package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var catCmd = &cobra.Command{
	Use:   "cat [device-path] [key]",
	Short: "Print the value stored at key",
	Long: `Cat resolves key to a value and writes its raw bytes to standard
output.

Examples:
  go-littlefs cat ./volume.img /etc/hostname`,

	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCat(args[0], args[1])
	},
}

func init() {
	rootCmd.AddCommand(catCmd)
}

func runCat(devicePath, key string) error {
	h, dev, err := openVolume(devicePath)
	if err != nil {
		return err
	}
	defer dev.Close()

	data, err := h.Get(key)
	if err != nil {
		return fmt.Errorf("cat %s: %w", key, err)
	}
	_, err = os.Stdout.Write(data)
	return err
}
