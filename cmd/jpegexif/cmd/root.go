// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

// Package cmd implements the jpegexif command line tool.
package cmd

import (
	"github.com/bep/jpegexif"
	"github.com/spf13/cobra"
)

const AppName = "jpegexif"

func Execute() error {
	return NewRootCommand().Execute()
}

// NewRootCommand returns the root command with all sub commands added.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   AppName,
		Short: AppName + " - read and strip Exif metadata in JPEG images",
	}

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "print decoder warnings to stderr")

	rootCmd.AddCommand(DefineDumpCommand())
	rootCmd.AddCommand(DefineStripCommand())

	return rootCmd
}

// decodeOptions returns the decode options set up from the command flags.
func decodeOptions(cmd *cobra.Command) jpegexif.Options {
	var opts jpegexif.Options
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		opts.Warnf = func(format string, args ...any) {
			cmd.PrintErrf("warning: "+format+"\n", args...)
		}
	}
	return opts
}
