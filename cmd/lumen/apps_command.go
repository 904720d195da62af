package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"lumen/internal/ipc"
)

func newAppsCommand(ctx *commandContext) *cobra.Command {
	appsCmd := &cobra.Command{
		Use:   "apps",
		Short: "Query the application index",
	}

	var searchLimit int
	searchCmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search indexed applications",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := ""
			if len(args) > 0 {
				query = args[0]
			}
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.SearchApps(query, searchLimit)
				if err != nil {
					return err
				}
				stdout := cmd.OutOrStdout()
				if len(resp.Entries) == 0 {
					fmt.Fprintln(stdout, "No matching applications")
					return nil
				}
				rows := make([][]string, 0, len(resp.Entries))
				for _, entry := range resp.Entries {
					rows = append(rows, []string{entry.Name, entry.Exec, truncate(entry.Comment, 60)})
				}
				table := renderTable([]string{"Name", "Exec", "Comment"}, rows, []columnAlignment{alignLeft, alignLeft, alignLeft})
				fmt.Fprintln(stdout, table)
				return nil
			})
		},
	}
	searchCmd.Flags().IntVar(&searchLimit, "limit", 20, "Maximum number of results")

	appsCmd.AddCommand(searchCmd)
	return appsCmd
}

// truncate shortens value to at most max characters, counting runes so a
// multibyte comment is never cut mid-character.
func truncate(value string, max int) string {
	value = strings.TrimSpace(value)
	if max <= 3 {
		return value
	}
	runes := []rune(value)
	if len(runes) <= max {
		return value
	}
	return string(runes[:max-3]) + "..."
}
