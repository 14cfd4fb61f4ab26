package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ericfisherdev/trailtail/internal/domain/model"
)

var (
	encounterMode     string
	encounterChildAge int
	encounterCount    int
)

var encountersCmd = &cobra.Command{
	Use:   "encounters",
	Short: "Find AR encounters along a trail",
}

var encountersGenerateCmd = &cobra.Command{
	Use:   "generate [route-id]",
	Short: "Place AR encounters along a trail",
	Args:  cobra.ExactArgs(1),
	RunE:  runEncountersGenerate,
}

var encountersGetCmd = &cobra.Command{
	Use:   "get [encounter-id]",
	Short: "Show one AR encounter",
	Args:  cobra.ExactArgs(1),
	RunE:  runEncountersGet,
}

func init() {
	f := encountersGenerateCmd.Flags()
	f.StringVarP(&encounterMode, "mode", "m", string(model.NarrativeModeFantasy), "theme: history or fantasy")
	f.IntVar(&encounterChildAge, "child-age", 10, "age of the youngest explorer")
	f.IntVarP(&encounterCount, "count", "n", 5, "number of encounters")

	encountersCmd.AddCommand(encountersGenerateCmd, encountersGetCmd)
	rootCmd.AddCommand(encountersCmd)
}

func runEncountersGenerate(cmd *cobra.Command, args []string) error {
	mode := model.NarrativeMode(encounterMode)
	if !mode.Valid() {
		return fmt.Errorf("invalid mode %q (want history or fantasy)", encounterMode)
	}
	if encounterCount <= 0 {
		return fmt.Errorf("count must be positive, got %d", encounterCount)
	}

	svc, err := loadServices(cmd, true)
	if err != nil {
		return err
	}

	encounters := svc.Encounters.Generate(cmd.Context(), args[0], model.EncounterOptions{
		Mode:     mode,
		ChildAge: encounterChildAge,
		Count:    encounterCount,
	})
	return render(cmd, encounters, func(cmd *cobra.Command) {
		for _, e := range encounters {
			cmd.Printf("%-22s %-10s %-7s %s\n", e.ID, e.Type, e.Difficulty, e.Title)
		}
	})
}

func runEncountersGet(cmd *cobra.Command, args []string) error {
	svc, err := loadServices(cmd, true)
	if err != nil {
		return err
	}

	d := svc.Encounters.Details(cmd.Context(), args[0])
	return render(cmd, d, func(cmd *cobra.Command) {
		cmd.Printf("%s (%s)\n\n%s\n\n", d.Title, d.Type, d.Description)
		cmd.Printf("goal:   %s\n", d.CompletionCriteria)
		if d.Reward != "" {
			cmd.Printf("reward: %s\n", d.Reward)
		}
		printList(cmd, "hints", d.Hints)
		printList(cmd, "facts", d.Facts)
	})
}
