package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global output flags only
	verbose      bool
	quiet        bool
	outputFormat string
)

var rootCmd = &cobra.Command{
	Use:   "go-littlefs",
	Short: "A command-line tool for littlefs volumes",
	Long: `go-littlefs formats, mounts, and inspects littlefs volumes: a
log-structured, power-loss-resilient key-value filesystem designed for
small flash devices.

Works directly against raw block devices or plain image files.

Commands:
  format    Write a fresh superblock to a device or image file
  mkdir     Create a directory
  ls        List a directory's entries
  cat       Print the value stored at a key
  write     Set the value stored at a key
  rm        Delete the value stored at a key
  fsck      Check a volume for consistency`,
	Version: "0.1.0-dev",
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	// Only global output control flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (accepted; no subcommand reads it)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress output except errors (accepted; no subcommand reads it)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "table", "output format: table, json, yaml (accepted; no subcommand reads it)")
}

// GetVerbose returns the verbose flag value
func GetVerbose() bool {
	return verbose
}

// GetQuiet returns the quiet flag value
func GetQuiet() bool {
	return quiet
}

// GetOutputFormat returns the output format
func GetOutputFormat() string {
	return outputFormat
}
