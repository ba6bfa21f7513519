package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/Faclon-Labs/connector-go/internal/constants"
	"github.com/Faclon-Labs/connector-go/pkg/ioconnect"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewInsightsCommand creates the insights command group.
func NewInsightsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "insights",
		Aliases: []string{"insight"},
		Short:   "Manage insights",
		Long:    "List saved insights and fetch their results",
	}

	cmd.AddCommand(newInsightsListCommand())
	cmd.AddCommand(newInsightsResultsCommand())

	return cmd
}

func newInsightsListCommand() *cobra.Command {
	var (
		tags    []string
		search  string
		page    int
		perPage int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List insights",
		Long:  "List the account's saved insights, optionally filtered by tag or name",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInsightsListCommand(&ioconnect.InsightFetchRequest{
				Tags:   tags,
				Search: search,
				Pagination: &ioconnect.PageRequest{
					Page:  page,
					Limit: perPage,
				},
			})
		},
	}

	cmd.Flags().StringSliceVar(&tags, "tag", nil, "filter by tag (repeatable)")
	cmd.Flags().StringVar(&search, "search", "", "filter by name")
	cmd.Flags().IntVar(&page, "page", 1, "page to fetch")
	cmd.Flags().IntVar(&perPage, "per-page", constants.DefaultPageSize, "results per page")

	return cmd
}

func runInsightsListCommand(request *ioconnect.InsightFetchRequest) error {
	client, err := createClient()
	if err != nil {
		return err
	}

	list, err := client.Insights().FetchUserInsights(context.Background(), request)
	if err != nil {
		return fmt.Errorf("failed to list insights: %w", err)
	}

	output := viper.GetString("output")
	switch output {
	case OutputFormatJSON:
		return StandardJSONRenderer(list.Data)
	case OutputFormatYAML:
		return StandardYAMLRenderer(list.Data)
	default:
		return renderInsightTable(list)
	}
}

func renderInsightTable(list *ioconnect.InsightList) error {
	if len(list.Data) == 0 {
		_, _ = os.Stdout.WriteString("No insights found\n")

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("ID", "Name", "Source", "Tags", "Updated")

	for _, insight := range list.Data {
		_ = table.Append(insight.ID, insight.Name, insight.Source,
			strings.Join(insight.Tags, ", "),
			insight.UpdatedOn.Format(dateFormat))
	}

	_ = table.Render()

	return nil
}

func newInsightsResultsCommand() *cobra.Command {
	var (
		page    int
		perPage int
	)

	cmd := &cobra.Command{
		Use:   "results INSIGHT_ID",
		Short: "List results of an insight",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			list, err := client.Insights().GetResults(context.Background(), args[0],
				&ioconnect.PageRequest{Page: page, Limit: perPage})
			if err != nil {
				return fmt.Errorf("failed to get insight results: %w", err)
			}

			output := viper.GetString("output")
			switch output {
			case OutputFormatJSON:
				return StandardJSONRenderer(list.Data)
			case OutputFormatYAML:
				return StandardYAMLRenderer(list.Data)
			default:
				return renderInsightResults(list)
			}
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "page to fetch")
	cmd.Flags().IntVar(&perPage, "per-page", constants.DefaultPageSize, "results per page")

	return cmd
}

func renderInsightResults(list *ioconnect.InsightResultList) error {
	if len(list.Data) == 0 {
		_, _ = os.Stdout.WriteString("No results found\n")

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("ID", "Tags", "Added")

	for _, result := range list.Data {
		_ = table.Append(result.ID, strings.Join(result.Tags, ", "),
			result.AddedOn.Format(dateTimeFormat))
	}

	_ = table.Render()

	return nil
}
