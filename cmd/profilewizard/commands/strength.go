package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"profilewizard/internal/services/validation"
)

func strengthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "strength <password>",
		Short: "Score a password the way the wizard does",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pw := args[0]
			score := validation.PasswordStrength(pw)
			fmt.Fprintf(cmd.OutOrStdout(), "Strength: %s (%.1f)\n", validation.StrengthLabel(score), score)
			if !validation.IsStrongPassword(pw) {
				fmt.Fprintln(cmd.OutOrStdout(), validation.MsgPasswordWeak)
			}
			return nil
		},
	}
	return cmd
}
