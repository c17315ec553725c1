package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func newProgressCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "progress",
		Short: "Game progress commands",
	}

	cmd.AddCommand(newProgressGetCmd())
	cmd.AddCommand(newProgressUpdateCmd())

	return cmd
}

func newProgressGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get",
		Short: "Show the authenticated account's progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			var me User
			if err := client.Get("/api/v1/users/me", &me); err != nil {
				return err
			}

			var result Progress
			if err := client.Get("/api/v1/users/"+me.UserID+"/progress", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newProgressUpdateCmd() *cobra.Command {
	var level int
	var items []string

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Apply a progress update",
		Long: `Apply a partial progress update.

Item flags are deltas added to the stored amounts, for example:

  playerctl progress update --level 3 --item shield=2 --item booster=-1`,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{}

			if cmd.Flags().Changed("level") {
				req["passedLevel"] = level
			}

			if len(items) > 0 {
				deltas := make([]map[string]any, 0, len(items))
				for _, spec := range items {
					name, amount, err := parseItemSpec(spec)
					if err != nil {
						return err
					}
					deltas = append(deltas, map[string]any{"name": name, "amount": amount})
				}
				req["items"] = deltas
			}

			var me User
			if err := client.Get("/api/v1/users/me", &me); err != nil {
				return err
			}

			var result ProgressUpdateResult
			if err := client.Patch("/api/v1/users/"+me.UserID+"/progress", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&level, "level", 0, "New passed level")
	cmd.Flags().StringArrayVar(&items, "item", nil, "Item delta as name=amount (repeatable)")

	return cmd
}

// parseItemSpec parses a name=amount item flag
func parseItemSpec(spec string) (string, int, error) {
	name, amountStr, ok := strings.Cut(spec, "=")
	if !ok || name == "" {
		return "", 0, fmt.Errorf("invalid item %q: expected name=amount", spec)
	}

	amount, err := strconv.Atoi(amountStr)
	if err != nil {
		return "", 0, fmt.Errorf("invalid item amount %q: %w", amountStr, err)
	}

	return name, amount, nil
}
