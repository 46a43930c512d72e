package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/deikotec/socialflow/internal/app"
)

var publishCmd = &cobra.Command{
	Use:   "publish <companyId> <contentId>",
	Short: "Publish a content piece to its platforms",
	Long:  `Run the publishing orchestrator for one content piece and print the per-platform results as JSON.`,
	Args:  cobra.ExactArgs(2),
	RunE:  runPublish,
}

func runPublish(cmd *cobra.Command, args []string) error {
	companyID, contentID := args[0], args[1]
	return withComponents(cmd, func(ctx context.Context, components *app.Components) error {
		result, err := components.Orchestrator.Publish(ctx, companyID, contentID)
		if err != nil {
			return err
		}

		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(result); err != nil {
			return err
		}
		if !result.Success {
			return fmt.Errorf("publish failed: %s", result.Message)
		}
		return nil
	})
}
