package main

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/leadlist-cli/internal/campaign"
	"github.com/sells-group/leadlist-cli/internal/fetcher"
	"github.com/sells-group/leadlist-cli/internal/model"
	"github.com/sells-group/leadlist-cli/internal/pipeline"
	"github.com/sells-group/leadlist-cli/internal/store"
)

var (
	normalizeSource       string
	normalizeCampaignFile string
	normalizeCampaignKey  string
	normalizeOutDir       string
	normalizeFormat       string
	normalizeSheetName    string
	normalizeConcurrency  int
	normalizeRecordRuns   bool
)

var normalizeCmd = &cobra.Command{
	Use:   "normalize [inputs...]",
	Short: "Normalize list exports into the CRM import schema",
	Long:  "Reads one or more realtor, neighbor, or investor exports (CSV, XLSX, ZIP, local or remote), deduplicates contacts, and writes the 20-column CRM import sheet.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		src := model.SourceType(normalizeSource)
		if !src.Valid() {
			return eris.Errorf("normalize: unknown source %q (want realtor, neighbor, or investor)", normalizeSource)
		}

		camp, err := resolveCampaign(cmd)
		if err != nil {
			return err
		}

		var st store.Store
		if normalizeRecordRuns {
			st, err = initStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close() //nolint:errcheck
			if err := st.SaveCampaign(ctx, *camp); err != nil {
				return err
			}
		}

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(normalizeConcurrency)

		for _, input := range args {
			g.Go(func() error {
				return normalizeOne(gctx, st, input, src, *camp)
			})
		}

		return g.Wait()
	},
}

// resolveCampaign loads the campaign context from a file or from the
// store by street address key. Exactly one of the two must be given.
func resolveCampaign(cmd *cobra.Command) (*model.CampaignContext, error) {
	switch {
	case normalizeCampaignFile != "" && normalizeCampaignKey != "":
		return nil, eris.New("normalize: --campaign-file and --campaign-key are mutually exclusive")
	case normalizeCampaignFile != "":
		return campaign.LoadFile(normalizeCampaignFile)
	case normalizeCampaignKey != "":
		st, err := initStore(cmd.Context())
		if err != nil {
			return nil, err
		}
		defer st.Close() //nolint:errcheck
		return st.GetCampaign(cmd.Context(), campaign.DeriveKey(normalizeCampaignKey))
	default:
		return nil, eris.New("normalize: either --campaign-file or --campaign-key is required")
	}
}

func normalizeOne(ctx context.Context, st store.Store, input string, src model.SourceType, camp model.CampaignContext) error {
	opts := fetchOptions()
	opts.XLSX.SheetName = normalizeSheetName

	sheet, err := fetcher.LoadRows(ctx, input, opts)
	if err != nil {
		return err
	}

	result, err := pipeline.Normalize(sheet, src, camp)
	if err != nil {
		return eris.Wrapf(err, "normalize %s", input)
	}

	outPath, err := writeResult(input, result)
	if err != nil {
		return err
	}

	zap.L().Info("normalized input",
		zap.String("input", input),
		zap.String("output", outPath),
		zap.Int("contacts", result.Stats.Contacts),
		zap.Int("skipped", result.Stats.SkippedRows),
	)

	if st != nil {
		run, err := st.RecordImportRun(ctx, store.ImportRun{
			StreetAddressKey: camp.StreetAddressKey,
			Source:           string(src),
			InputFile:        input,
			TotalRows:        result.Stats.TotalRows,
			SkippedRows:      result.Stats.SkippedRows,
			Contacts:         result.Stats.Contacts,
		})
		if err != nil {
			return err
		}
		if _, err := st.ArchiveContacts(ctx, run.ID, result.Rows); err != nil {
			return err
		}
	}

	return nil
}

// writeResult writes the projected sheet next to outDir, named after
// the input, and returns the output path.
func writeResult(input string, result *pipeline.Result) (string, error) {
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	outPath := filepath.Join(normalizeOutDir, base+"_normalized."+normalizeFormat)

	switch normalizeFormat {
	case "csv":
		f, err := os.Create(outPath)
		if err != nil {
			return "", eris.Wrapf(err, "normalize: create %s", outPath)
		}
		defer f.Close() //nolint:errcheck
		if err := pipeline.WriteCSV(f, result); err != nil {
			return "", err
		}
	case "xlsx":
		if err := pipeline.WriteXLSX(outPath, "Contacts", result); err != nil {
			return "", err
		}
	case "json":
		data, err := json.MarshalIndent(map[string]any{
			"header": result.Header,
			"rows":   result.Rows,
			"stats":  result.Stats,
		}, "", "  ")
		if err != nil {
			return "", eris.Wrap(err, "normalize: marshal json")
		}
		if err := os.WriteFile(outPath, data, 0o644); err != nil {
			return "", eris.Wrapf(err, "normalize: write %s", outPath)
		}
	default:
		return "", eris.Errorf("normalize: unknown format %q (want csv, xlsx, or json)", normalizeFormat)
	}

	return outPath, nil
}

func init() {
	normalizeCmd.Flags().StringVar(&normalizeSource, "source", "", "input schema: realtor, neighbor, or investor (required)")
	normalizeCmd.Flags().StringVar(&normalizeCampaignFile, "campaign-file", "", "campaign definition YAML")
	normalizeCmd.Flags().StringVar(&normalizeCampaignKey, "campaign-key", "", "street address key of a stored campaign")
	normalizeCmd.Flags().StringVar(&normalizeOutDir, "out", ".", "output directory")
	normalizeCmd.Flags().StringVar(&normalizeFormat, "format", "csv", "output format: csv, xlsx, or json")
	normalizeCmd.Flags().StringVar(&normalizeSheetName, "sheet", "", "XLSX sheet name (default first sheet)")
	normalizeCmd.Flags().IntVar(&normalizeConcurrency, "concurrency", 4, "max inputs processed in parallel")
	normalizeCmd.Flags().BoolVar(&normalizeRecordRuns, "record", false, "record import runs and archive contacts in the store")
	_ = normalizeCmd.MarkFlagRequired("source")
	rootCmd.AddCommand(normalizeCmd)
}
