package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the web interface and JSON API",
	Long: `Serves the browser interface, the JSON API under /api/v1 and Prometheus
metrics until interrupted. The offline notice is shown as a page banner.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	svc, err := loadServices(cmd, false)
	if err != nil {
		return err
	}
	if svc.Serve == nil {
		return errors.New("serving is not configured")
	}
	return svc.Serve(cmd.Context())
}
