package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var writeStdin bool

var writeCmd = &cobra.Command{
	Use:   "write [device-path] [key] [value]",
	Short: "Set the value stored at key",
	Long: `Write sets key to value, creating it if absent or replacing it
atomically if present.

Examples:
  go-littlefs write ./volume.img /etc/hostname myhost
  echo myhost | go-littlefs write ./volume.img /etc/hostname --stdin`,

	Args: cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		var data []byte
		var err error
		switch {
		case writeStdin:
			data, err = io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("read stdin: %w", err)
			}
		case len(args) == 3:
			data = []byte(args[2])
		default:
			return fmt.Errorf("write: a value or --stdin is required")
		}
		return runWrite(args[0], args[1], data)
	},
}

func init() {
	rootCmd.AddCommand(writeCmd)
	writeCmd.Flags().BoolVar(&writeStdin, "stdin", false, "read the value from standard input")
}

func runWrite(devicePath, key string, data []byte) error {
	h, dev, err := openVolume(devicePath)
	if err != nil {
		return err
	}
	defer dev.Close()

	if err := h.Set(key, data); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}
