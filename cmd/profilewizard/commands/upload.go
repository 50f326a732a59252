package commands

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"profilewizard/internal/domain"
)

func uploadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "upload <file>",
		Short: "Store a JPG or PNG profile photo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			_, _, uploads, done, err := services(cmd.Context())
			if err != nil {
				return err
			}
			defer done()

			stored, err := uploads.UploadPhoto(cmd.Context(), domain.Photo{
				Filename:    filepath.Base(args[0]),
				ContentType: http.DetectContentType(data),
				Data:        data,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Stored %s at %s\n", stored.Filename, stored.URL)
			return nil
		},
	}
	return cmd
}
