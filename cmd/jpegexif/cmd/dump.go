// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/bep/jpegexif"
	"github.com/spf13/cobra"
)

func DefineDumpCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump <image_path>",
		Short: "Print the Exif metadata of a JPEG image",
		Long: `The 'dump' command prints the image dimensions, the orientation and the
fields of the main, camera and GPS groups of a JPEG image's Exif block.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE:         RunDump,
	}

	cmd.Flags().Bool("json", false, "print the result as JSON")
	cmd.Flags().Bool("unknown", false, "include tags without a known name")
	return cmd
}

func RunDump(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	opts := decodeOptions(cmd)
	opts.IncludeUnknown, _ = cmd.Flags().GetBool("unknown")

	m, err := jpegexif.DecodeReader(f, opts)
	if err != nil {
		return fmt.Errorf("failed to decode %q: %w", args[0], err)
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return writeDumpJSON(cmd.OutOrStdout(), m)
	}
	return writeDumpText(cmd.OutOrStdout(), m)
}

type dumpField struct {
	ID        uint16 `json:"id"`
	Tag       string `json:"tag"`
	Namespace string `json:"namespace"`
	Value     string `json:"value"`
}

type dumpResult struct {
	Width       int         `json:"width"`
	Height      int         `json:"height"`
	HasEXIF     bool        `json:"hasExif"`
	ByteOrder   string      `json:"byteOrder,omitempty"`
	Orientation uint16      `json:"orientation,omitempty"`
	Main        []dumpField `json:"main"`
	Camera      []dumpField `json:"camera"`
	GPS         []dumpField `json:"gps"`
	DMS         string      `json:"dms,omitempty"`
}

func newDumpResult(m *jpegexif.Metadata) dumpResult {
	fields := func(ff []jpegexif.Field) []dumpField {
		out := make([]dumpField, len(ff))
		for i, f := range ff {
			out[i] = dumpField{ID: f.ID, Tag: f.Tag, Namespace: f.Namespace, Value: f.Formatted}
		}
		return out
	}

	r := dumpResult{
		Width:       m.Width,
		Height:      m.Height,
		HasEXIF:     m.HasEXIF,
		Orientation: uint16(m.Orientation),
		Main:        fields(m.Main),
		Camera:      fields(m.Camera),
		GPS:         fields(m.GPS),
		DMS:         m.DMS,
	}
	if m.HasEXIF {
		r.ByteOrder = byteOrderName(m.BigEndian)
	}
	return r
}

func byteOrderName(bigEndian bool) string {
	if bigEndian {
		return "big endian"
	}
	return "little endian"
}

func writeDumpJSON(w io.Writer, m *jpegexif.Metadata) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(newDumpResult(m))
}

func writeDumpText(w io.Writer, m *jpegexif.Metadata) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "Dimensions:\t%dx%d\n", m.Width, m.Height)
	if !m.HasEXIF {
		fmt.Fprintln(tw, "Exif:\tnone")
		return tw.Flush()
	}

	fmt.Fprintf(tw, "Byte order:\t%s\n", byteOrderName(m.BigEndian))
	if m.Orientation.IsValid() {
		fmt.Fprintf(tw, "Orientation:\t%d\n", m.Orientation)
	}
	if m.DMS != "" {
		fmt.Fprintf(tw, "Position:\t%s\n", m.DMS)
	}

	for _, group := range []struct {
		name   string
		fields []jpegexif.Field
	}{
		{"Main", m.Main},
		{"Camera", m.Camera},
		{"GPS", m.GPS},
	} {
		if len(group.fields) == 0 {
			continue
		}
		fmt.Fprintf(tw, "\n[%s]\n", group.name)
		for _, f := range group.fields {
			fmt.Fprintf(tw, "%s\t%s\n", f.Tag, f.Formatted)
		}
	}

	return tw.Flush()
}
