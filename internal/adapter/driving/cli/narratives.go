package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ericfisherdev/trailtail/internal/domain/model"
)

var (
	narrativeMode     string
	narrativeChildAge int
	narrativeLanguage string
)

var narrativesCmd = &cobra.Command{
	Use:   "narratives",
	Short: "Tell stories along a trail",
}

var narrativesGenerateCmd = &cobra.Command{
	Use:   "generate [route-id]",
	Short: "Generate the story segments for a trail",
	Long: `Generates one story segment per waypoint of a trail.
History mode tells local history; fantasy mode tells an adventure.`,
	Args: cobra.ExactArgs(1),
	RunE: runNarrativesGenerate,
}

var narrativesPreviewCmd = &cobra.Command{
	Use:   "preview [route-id]",
	Short: "Preview the stories for a trail",
	Args:  cobra.ExactArgs(1),
	RunE:  runNarrativesPreview,
}

func init() {
	for _, c := range []*cobra.Command{narrativesGenerateCmd, narrativesPreviewCmd} {
		c.Flags().StringVarP(&narrativeMode, "mode", "m", string(model.NarrativeModeHistory),
			"story mode: history or fantasy")
	}
	narrativesGenerateCmd.Flags().IntVar(&narrativeChildAge, "child-age", 0, "age of the youngest listener")
	narrativesGenerateCmd.Flags().StringVar(&narrativeLanguage, "language", "", "story language, e.g. en")

	narrativesCmd.AddCommand(narrativesGenerateCmd, narrativesPreviewCmd)
	rootCmd.AddCommand(narrativesCmd)
}

func parseMode() (model.NarrativeMode, error) {
	mode := model.NarrativeMode(narrativeMode)
	if !mode.Valid() {
		return "", fmt.Errorf("invalid mode %q (want history or fantasy)", narrativeMode)
	}
	return mode, nil
}

func runNarrativesGenerate(cmd *cobra.Command, args []string) error {
	mode, err := parseMode()
	if err != nil {
		return err
	}
	if narrativeChildAge < 0 {
		return fmt.Errorf("child age must not be negative, got %d", narrativeChildAge)
	}

	svc, err := loadServices(cmd, true)
	if err != nil {
		return err
	}

	segments := svc.Narratives.Generate(cmd.Context(), args[0], model.NarrativeOptions{
		Mode:     mode,
		ChildAge: narrativeChildAge,
		Language: narrativeLanguage,
	})
	return render(cmd, segments, func(cmd *cobra.Command) {
		for i, seg := range segments {
			if i > 0 {
				cmd.Println()
			}
			cmd.Printf("## %s\n\n%s\n", seg.Title, seg.Story)
			for _, fact := range seg.Facts {
				cmd.Printf("  * %s\n", fact)
			}
		}
	})
}

func runNarrativesPreview(cmd *cobra.Command, args []string) error {
	mode, err := parseMode()
	if err != nil {
		return err
	}

	svc, err := loadServices(cmd, true)
	if err != nil {
		return err
	}

	preview := svc.Narratives.Preview(cmd.Context(), args[0], mode)
	return render(cmd, preview, func(cmd *cobra.Command) {
		cmd.Printf("Content rating: %s\n", preview.ContentRating)
		if preview.Disclaimer != "" {
			cmd.Printf("%s\n", preview.Disclaimer)
		}
		for _, n := range preview.Narratives {
			cmd.Printf("\n## %s\n\n%s\n", n.Title, n.Story)
		}
	})
}
