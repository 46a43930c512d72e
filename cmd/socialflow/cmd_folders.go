package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/deikotec/socialflow/internal/app"
)

var foldersCmd = &cobra.Command{
	Use:   "folders <companyId>",
	Short: "Resolve or provision the Drive folder for a company",
	Long: `Resolve the company root folder, or the month/day folder for --date, creating any
missing folder on the company's Google Drive. Prints the resolved folder id.`,
	Args: cobra.ExactArgs(1),
	RunE: runFolders,
}

func init() {
	foldersCmd.Flags().String("date", "", "Scheduled date (YYYY-MM-DD) to resolve the day folder for")
}

func runFolders(cmd *cobra.Command, args []string) error {
	rawDate, _ := cmd.Flags().GetString("date")

	return withComponents(cmd, func(ctx context.Context, components *app.Components) error {
		var scheduled *time.Time
		if rawDate != "" {
			date, err := time.ParseInLocation(time.DateOnly, rawDate, components.Config.FolderLocation())
			if err != nil {
				return fmt.Errorf("invalid --date %q: %w", rawDate, err)
			}
			scheduled = &date
		}

		c, err := components.Companies.Get(ctx, args[0])
		if err != nil {
			return err
		}
		folderID, err := components.Hierarchy.ResolveTargetFolder(ctx, c, scheduled)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), folderID)
		return nil
	})
}
