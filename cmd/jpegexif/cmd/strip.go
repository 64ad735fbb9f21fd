// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bep/jpegexif"
	"github.com/spf13/cobra"
)

func DefineStripCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "strip <image_path>",
		Short: "Remove the Exif metadata from a JPEG image",
		Long: `The 'strip' command writes a copy of a JPEG image where the Exif segment is
replaced by one holding only the orientation tag, or removed completely with --all.
Every other byte of the image is kept as is.
The result is written next to the input as <name>.stripped.jpg unless --output is set.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE:         RunStrip,
	}

	cmd.Flags().Bool("all", false, "remove the orientation tag too")
	cmd.Flags().StringP("output", "o", "", "path to the output file")
	return cmd
}

func RunStrip(cmd *cobra.Command, args []string) error {
	b, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}

	m, err := jpegexif.Decode(b, decodeOptions(cmd))
	if err != nil {
		return fmt.Errorf("failed to decode %q: %w", args[0], err)
	}

	stripAll, _ := cmd.Flags().GetBool("all")
	out, err := m.Encode(b, stripAll)
	if err != nil {
		return fmt.Errorf("failed to encode %q: %w", args[0], err)
	}

	filename, _ := cmd.Flags().GetString("output")
	if filename == "" {
		filename = strippedFilename(args[0])
	}

	if err := os.WriteFile(filename, out, 0o644); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d bytes to %s (%d removed)\n", len(out), filename, len(b)-len(out))
	return nil
}

func strippedFilename(filename string) string {
	ext := filepath.Ext(filename)
	return strings.TrimSuffix(filename, ext) + ".stripped.jpg"
}
