package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var lsCmd = &cobra.Command{
	Use:   "ls [device-path] [directory]",
	Short: "List the entries of a directory within a littlefs volume",
	Long: `Ls lists the live entries of a directory, marking sub-directories
with a trailing slash.

Examples:
  go-littlefs ls ./volume.img /etc`,

	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "/"
		if len(args) == 2 {
			dir = args[1]
		}
		return runLs(args[0], dir)
	},
}

func init() {
	rootCmd.AddCommand(lsCmd)
}

func runLs(devicePath, dir string) error {
	h, dev, err := openVolume(devicePath)
	if err != nil {
		return err
	}
	defer dev.Close()

	entries, err := h.List(dir)
	if err != nil {
		return fmt.Errorf("ls %s: %w", dir, err)
	}

	for _, e := range entries {
		if e.IsDir {
			fmt.Printf("%s/\n", e.Name)
		} else {
			fmt.Println(e.Name)
		}
	}
	return nil
}
