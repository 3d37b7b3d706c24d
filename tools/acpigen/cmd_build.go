package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"acpigen/acpi"
	"acpigen/internal/config"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type buildOptions struct {
	configPath string
	outDir     string
	compress   bool
	jobs       int
}

// builtTable records where a generated table was written.
type builtTable struct {
	path     string
	length   int
	checksum uint8
}

func newBuildCmd(a *app) *cobra.Command {
	opts := buildOptions{}

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Generate the tables described by a platform file",
		Long: `Reads a platform description (.yaml, .yml or .toml) and writes one
file per table into the output directory. AML tables (DSDT, SSDT) are
written as <signature>.aml; every other table as <signature>.dat.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd, a.logger, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "platform description file")
	cmd.Flags().StringVarP(&opts.outDir, "out", "o", ".", "output directory")
	cmd.Flags().BoolVar(&opts.compress, "zstd", false, "compress the generated tables with zstd")
	cmd.Flags().IntVarP(&opts.jobs, "jobs", "j", runtime.NumCPU(), "number of tables to build concurrently")
	_ = cmd.MarkFlagRequired("config")

	return cmd
}

func runBuild(cmd *cobra.Command, logger *zap.Logger, opts buildOptions) error {
	if opts.jobs < 1 {
		return fmt.Errorf("invalid job count %d", opts.jobs)
	}

	p, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	if err := p.Validate(); err != nil {
		return fmt.Errorf("invalid platform config: %w", err)
	}

	b, err := acpi.NewBuilder(append(p.BuilderOptions(), acpi.WithLogger(logger))...)
	if err != nil {
		return fmt.Errorf("invalid platform identification: %w", err)
	}

	if err := os.MkdirAll(opts.outDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	names := outputNames(p.Tables)
	results := make([]builtTable, len(p.Tables))

	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(opts.jobs)
	for i := range p.Tables {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			tc := &p.Tables[i]
			tbl, err := buildTable(b, p, tc)
			if err != nil {
				return fmt.Errorf("table %s: %w", tc.Signature, err)
			}

			path := filepath.Join(opts.outDir, names[i])
			data := tbl.Bytes()
			if opts.compress {
				if data, err = compressZstd(data); err != nil {
					return fmt.Errorf("table %s: failed to compress: %w", tc.Signature, err)
				}
				path += zstdExt
			}

			results[i].path = path
			if err := os.WriteFile(path, data, 0644); err != nil {
				return fmt.Errorf("table %s: failed to write: %w", tc.Signature, err)
			}

			results[i].length, results[i].checksum = tbl.Len(), tbl.Checksum()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		removeOutputs(logger, results)
		return err
	}

	out := cmd.OutOrStdout()
	for _, res := range results {
		fmt.Fprintf(out, "wrote %s (%d bytes, checksum 0x%02x)\n", res.path, res.length, res.checksum)
	}

	return nil
}

// removeOutputs deletes the files written by a build that did not complete so
// that the output directory never holds a partial set of tables.
func removeOutputs(logger *zap.Logger, results []builtTable) {
	for _, res := range results {
		if res.path == "" {
			continue
		}
		if err := os.Remove(res.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			logger.Warn("failed to remove partial output", zap.String("path", res.path), zap.Error(err))
		}
	}
}

// buildTable generates a single table from its description.
func buildTable(b *acpi.Builder, p *config.Platform, tc *config.TableConfig) (*acpi.Table, error) {
	if tc.IsAML() && tc.Body == "" {
		terms, err := tc.Terms()
		if err != nil {
			return nil, err
		}
		return b.BuildAML(tc.Signature, tc.Revision, terms...)
	}

	var body []byte
	if path := p.BodyPath(tc); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read body: %w", err)
		}
		body = data
	}

	return b.Build(tc.Signature, tc.Revision, body)
}

// outputNames returns the file name of each table. Repeated signatures get a
// numeric suffix starting at 2.
func outputNames(tables []config.TableConfig) []string {
	var (
		names = make([]string, len(tables))
		seen  = make(map[string]int)
	)

	for i := range tables {
		tc := &tables[i]

		ext := ".dat"
		if tc.IsAML() {
			ext = ".aml"
		}

		base := strings.ToLower(tc.Signature)
		seen[base]++
		if n := seen[base]; n > 1 {
			base = fmt.Sprintf("%s%d", base, n)
		}

		names[i] = base + ext
	}

	return names
}
