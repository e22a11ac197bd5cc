package main

import (
	"encoding/csv"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/leadlist-cli/internal/campaign"
	"github.com/sells-group/leadlist-cli/internal/model"
	"github.com/sells-group/leadlist-cli/internal/store"
	notionpkg "github.com/sells-group/leadlist-cli/pkg/notion"
	sfpkg "github.com/sells-group/leadlist-cli/pkg/salesforce"
)

var pushCmd = &cobra.Command{
	Use:   "push",
	Short: "Push a normalized contact sheet to a CRM",
}

var pushSalesforceCmd = &cobra.Command{
	Use:   "salesforce [normalized-csv]",
	Short: "Insert normalized contacts as Salesforce leads",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rows, err := readNormalizedCSV(args[0])
		if err != nil {
			return err
		}

		client, err := initSalesforce()
		if err != nil {
			return err
		}

		result, err := sfpkg.PushLeads(cmd.Context(), client, rows)
		if err != nil {
			return err
		}
		if result.Failed > 0 {
			return eris.Errorf("push: %d of %d leads failed", result.Failed, result.Inserted+result.Failed)
		}
		return nil
	},
}

var pushNotionCmd = &cobra.Command{
	Use:   "notion [normalized-csv]",
	Short: "Create normalized contacts as Notion database pages",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rows, err := readNormalizedCSV(args[0])
		if err != nil {
			return err
		}

		client, err := initNotion()
		if err != nil {
			return err
		}

		result, err := notionpkg.PushContacts(cmd.Context(), client, cfg.Notion.ContactDB, rows)
		if err != nil {
			return err
		}
		if result.Failed > 0 {
			return eris.Errorf("push: %d of %d contacts failed", result.Failed, result.Created+result.Failed)
		}
		return nil
	},
}

var pushArchiveCampaignKey string

var pushArchiveCmd = &cobra.Command{
	Use:   "archive [normalized-csv]",
	Short: "Record an import run and archive normalized contacts in the store",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		rows, err := readNormalizedCSV(args[0])
		if err != nil {
			return err
		}

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		key := campaign.DeriveKey(pushArchiveCampaignKey)
		if _, err := st.GetCampaign(ctx, key); err != nil {
			return err
		}

		run, err := st.RecordImportRun(ctx, store.ImportRun{
			StreetAddressKey: key,
			Source:           "archive",
			InputFile:        args[0],
			TotalRows:        len(rows),
			Contacts:         len(rows),
		})
		if err != nil {
			return err
		}

		n, err := st.ArchiveContacts(ctx, run.ID, rows)
		if err != nil {
			return err
		}

		zap.L().Info("contacts archived",
			zap.String("run_id", run.ID),
			zap.Int64("archived", n),
		)
		return nil
	},
}

// readNormalizedCSV loads a normalized sheet and checks its header
// against the output schema so a raw export can't be pushed by mistake.
func readNormalizedCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "push: open %s", path)
	}
	defer f.Close() //nolint:errcheck

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, eris.Wrapf(err, "push: read %s", path)
	}
	if len(records) == 0 {
		return nil, eris.Errorf("push: %s is empty", path)
	}

	header := records[0]
	if len(header) != len(model.OutputColumns) {
		return nil, eris.Errorf("push: %s has %d columns, want %d (is it normalized?)", path, len(header), len(model.OutputColumns))
	}
	for i, want := range model.OutputColumns {
		if header[i] != want {
			return nil, eris.Errorf("push: %s column %d is %q, want %q (is it normalized?)", path, i, header[i], want)
		}
	}

	zap.L().Info("loaded normalized sheet",
		zap.String("file", path),
		zap.Int("contacts", len(records)-1),
	)
	return records[1:], nil
}

func init() {
	pushArchiveCmd.Flags().StringVar(&pushArchiveCampaignKey, "campaign-key", "", "street address key of the campaign (required)")
	_ = pushArchiveCmd.MarkFlagRequired("campaign-key")

	pushCmd.AddCommand(pushSalesforceCmd, pushNotionCmd, pushArchiveCmd)
	rootCmd.AddCommand(pushCmd)
}
