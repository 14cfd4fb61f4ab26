// Package cli implements the command-line driving adapter using cobra.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ericfisherdev/trailtail/internal/application"
	"github.com/ericfisherdev/trailtail/internal/domain/port/driven"
)

// Services is the application surface the commands drive.
type Services struct {
	Routes         *application.RouteService
	Narratives     *application.NarrativeService
	Users          *application.UserService
	Safety         *application.SafetyService
	Encounters     *application.EncounterService
	Session        *application.Session
	BackendEnabled bool

	// Serve runs the HTTP surface until ctx is cancelled.
	Serve func(ctx context.Context) error
	// Close releases what the opener acquired. May be nil.
	Close func() error
}

// Opener wires the services for one invocation. A nil notifier means the
// caller wants the HTTP banner to carry the offline notice.
type Opener func(ctx context.Context, notifier driven.OfflineNotifier) (*Services, error)

var (
	opener   Opener
	services *Services
)

var rootCmd = &cobra.Command{
	Use:   "trailtail",
	Short: "Family trail finder with history and fantasy stories",
	Long: `TrailTail finds family-friendly trails and tells stories along the way.
When the trail service cannot be reached it keeps working with demo trails
and stories.`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		return validateOutput()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", formatText,
		"output format: text, json or yaml")
}

// Execute runs the command line with opener supplying the services.
// Results go to stdout; prompts, notices and errors go to stderr.
func Execute(ctx context.Context, o Opener) error {
	opener = o
	defer closeServices()
	rootCmd.SetOut(os.Stdout)
	rootCmd.SetErr(os.Stderr)
	return rootCmd.ExecuteContext(ctx)
}

// loadServices opens the services on first use. Commands that print help
// never reach it, so they never touch the database.
func loadServices(cmd *cobra.Command, interactive bool) (*Services, error) {
	if services != nil {
		return services, nil
	}
	if opener == nil {
		return nil, errors.New("services not configured")
	}

	var notifier driven.OfflineNotifier
	if interactive {
		notifier = newConsoleNotifier(cmd.ErrOrStderr())
	}

	s, err := opener(cmd.Context(), notifier)
	if err != nil {
		return nil, fmt.Errorf("open services: %w", err)
	}
	services = s
	return s, nil
}

func closeServices() {
	if services == nil {
		return
	}
	if services.Close != nil {
		if err := services.Close(); err != nil {
			rootCmd.PrintErrln("closing services:", err)
		}
	}
	services = nil
}
