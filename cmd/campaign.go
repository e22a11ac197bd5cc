package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/leadlist-cli/internal/campaign"
	"github.com/sells-group/leadlist-cli/internal/store"
)

var (
	campaignSaveFile   string
	campaignListLimit  int
	campaignRunsSource string
)

var campaignCmd = &cobra.Command{
	Use:   "campaign",
	Short: "Manage stored campaign contexts",
}

var campaignSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Validate a campaign YAML and store it by street address key",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		camp, err := campaign.LoadFile(campaignSaveFile)
		if err != nil {
			return err
		}

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		if err := st.SaveCampaign(ctx, *camp); err != nil {
			return err
		}

		zap.L().Info("campaign saved",
			zap.String("key", camp.StreetAddressKey),
			zap.String("tag", camp.CampaignTag),
		)
		return nil
	},
}

var campaignGetCmd = &cobra.Command{
	Use:   "get [street-address]",
	Short: "Print a stored campaign as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		camp, err := st.GetCampaign(ctx, campaign.DeriveKey(args[0]))
		if err != nil {
			return err
		}
		return printJSON(camp)
	},
}

var campaignListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored campaigns",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		camps, err := st.ListCampaigns(ctx)
		if err != nil {
			return err
		}
		if campaignListLimit > 0 && len(camps) > campaignListLimit {
			camps = camps[:campaignListLimit]
		}
		return printJSON(camps)
	},
}

var campaignRunsCmd = &cobra.Command{
	Use:   "runs [street-address]",
	Short: "List import runs recorded for a campaign",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		runs, err := st.ListImportRuns(ctx, store.RunFilter{
			StreetAddressKey: campaign.DeriveKey(args[0]),
			Source:           campaignRunsSource,
		})
		if err != nil {
			return err
		}
		return printJSON(runs)
	},
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return eris.Wrap(err, "encode json")
	}
	return nil
}

func init() {
	campaignSaveCmd.Flags().StringVar(&campaignSaveFile, "file", "", "campaign definition YAML (required)")
	_ = campaignSaveCmd.MarkFlagRequired("file")

	campaignListCmd.Flags().IntVar(&campaignListLimit, "limit", 0, "max campaigns to print (0 = all)")
	campaignRunsCmd.Flags().StringVar(&campaignRunsSource, "source", "", "filter runs by source type")

	campaignCmd.AddCommand(campaignSaveCmd, campaignGetCmd, campaignListCmd, campaignRunsCmd)
	rootCmd.AddCommand(campaignCmd)
}
