package main

import (
	"fmt"
	"os"

	"acpigen/acpi/table"

	"github.com/spf13/cobra"
)

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file>...",
		Short: "Validate generated tables and print their headers",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, path := range args {
				hdr, err := inspectFile(path)
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}

				fmt.Fprintf(out, "%s: %s rev %d, %d bytes, oem %q %q rev %d, creator %q rev %d, checksum 0x%02x\n",
					path,
					string(hdr.Signature[:]),
					hdr.Revision,
					hdr.Length,
					string(hdr.OEMID[:]),
					string(hdr.OEMTableID[:]),
					hdr.OEMRevision,
					string(hdr.CreatorID[:]),
					hdr.CreatorRevision,
					hdr.Checksum,
				)
			}
			return nil
		},
	}
}

// inspectFile reads a table, decompressing it if needed, and validates its
// header and checksum.
func inspectFile(path string) (table.SDTHeader, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return table.SDTHeader{}, err
	}

	if isZstdFile(path) {
		if data, err = decompressZstd(data); err != nil {
			return table.SDTHeader{}, fmt.Errorf("failed to decompress: %w", err)
		}
	}

	return table.ValidateTable(data)
}
