package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	domaintypes "profilewizard/internal/domain/types"
)

func locationsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "locations [country [state]]",
		Short: "List countries, states of a country, or cities of a state",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			locations, _, _, done, err := services(cmd.Context())
			if err != nil {
				return err
			}
			defer done()

			tier, parent := domaintypes.TierCountry, ""
			switch len(args) {
			case 1:
				tier, parent = domaintypes.TierState, args[0]
			case 2:
				tier, parent = domaintypes.TierCity, args[1]
			}
			opts, err := locations.FetchChildren(cmd.Context(), tier, parent)
			if err != nil {
				return err
			}
			if len(opts) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No %s options\n", tier)
				return nil
			}
			for _, o := range opts {
				fmt.Fprintf(cmd.OutOrStdout(), "%-4s %s\n", o.ID, o.Name)
			}
			return nil
		},
	}
	return cmd
}
