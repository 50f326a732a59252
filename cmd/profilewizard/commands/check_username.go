package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"profilewizard/internal/domain"
	"profilewizard/internal/services/validation"
)

func checkUsernameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check-username <name>",
		Short: "Validate a username and check its availability",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if msg := validation.CheckUsername(name); msg != "" {
				fmt.Fprintln(cmd.OutOrStdout(), msg)
				return nil
			}

			_, availability, _, done, err := services(cmd.Context())
			if err != nil {
				return err
			}
			defer done()

			if availability.CheckAvailability(cmd.Context(), domain.Username(name)).Available {
				fmt.Fprintf(cmd.OutOrStdout(), "%s is available\n", name)
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), validation.MsgUsernameTaken)
			}
			return nil
		},
	}
	return cmd
}
