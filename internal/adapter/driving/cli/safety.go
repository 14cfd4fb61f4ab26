package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ericfisherdev/trailtail/internal/domain/model"
)

var (
	checkChildAge int

	controlsModes         string
	controlsFilter        string
	controlsMaxDifficulty string
	controlsPreview       bool
	controlsSocial        bool

	issueCategory    string
	issueDescription string
	issueSeverity    string
)

var safetyCmd = &cobra.Command{
	Use:   "safety",
	Short: "Check trails and stories before heading out",
}

var safetyRouteCmd = &cobra.Command{
	Use:   "route [route-id]",
	Short: "Show the safety briefing for a trail",
	Args:  cobra.ExactArgs(1),
	RunE:  runSafetyRoute,
}

var safetyCheckCmd = &cobra.Command{
	Use:   "check [text...]",
	Short: "Check whether text suits a child",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSafetyCheck,
}

var safetyControlsCmd = &cobra.Command{
	Use:   "controls",
	Short: "Show or change a family's parental controls",
}

var safetyControlsGetCmd = &cobra.Command{
	Use:   "get [family-id]",
	Short: "Show a family's parental controls",
	Args:  cobra.ExactArgs(1),
	RunE:  runControlsGet,
}

var safetyControlsSetCmd = &cobra.Command{
	Use:   "set [family-id]",
	Short: "Replace a family's parental controls (requires login)",
	Args:  cobra.ExactArgs(1),
	RunE:  runControlsSet,
}

var safetyReportCmd = &cobra.Command{
	Use:   "report [route-id]",
	Short: "Report a safety issue on a trail (requires login)",
	Args:  cobra.ExactArgs(1),
	RunE:  runSafetyReport,
}

func init() {
	safetyCheckCmd.Flags().IntVar(&checkChildAge, "child-age", 0, "age of the child (default 10)")

	f := safetyControlsSetCmd.Flags()
	f.StringVar(&controlsModes, "modes", "history,fantasy", "allowed story modes, comma separated")
	f.StringVar(&controlsFilter, "filter", string(model.ContentFilterMild), "content filter: none, mild or strict")
	f.StringVar(&controlsMaxDifficulty, "max-difficulty", string(model.DifficultyModerate), "hardest trail allowed")
	f.BoolVar(&controlsPreview, "preview", true, "require a parent preview of stories")
	f.BoolVar(&controlsSocial, "social", false, "allow social features")

	safetyReportCmd.Flags().StringVar(&issueCategory, "category", "trail", "issue category")
	safetyReportCmd.Flags().StringVarP(&issueDescription, "description", "d", "", "what is wrong")
	safetyReportCmd.Flags().StringVar(&issueSeverity, "severity", "", `severity; "urgent" alerts maintenance`)
	_ = safetyReportCmd.MarkFlagRequired("description")

	safetyControlsCmd.AddCommand(safetyControlsGetCmd, safetyControlsSetCmd)
	safetyCmd.AddCommand(safetyRouteCmd, safetyCheckCmd, safetyControlsCmd, safetyReportCmd)
	rootCmd.AddCommand(safetyCmd)
}

func runSafetyRoute(cmd *cobra.Command, args []string) error {
	svc, err := loadServices(cmd, true)
	if err != nil {
		return err
	}

	info := svc.Safety.RouteSafety(cmd.Context(), args[0])
	return render(cmd, info, func(cmd *cobra.Command) {
		cmd.Printf("difficulty: %s\n", info.DifficultyRating)
		cmd.Printf("condition:  %s\n", info.TrailConditions.Condition)
		cmd.Printf("help:       %s\n", info.EmergencyInfo.NearestHelp)
		printList(cmd, "hazards", info.TrailConditions.Hazards)
		printList(cmd, "recommendations", info.Recommendations)
	})
}

func runSafetyCheck(cmd *cobra.Command, args []string) error {
	if checkChildAge < 0 {
		return fmt.Errorf("child age must not be negative, got %d", checkChildAge)
	}

	svc, err := loadServices(cmd, true)
	if err != nil {
		return err
	}

	check := svc.Safety.CheckContent(cmd.Context(), strings.Join(args, " "), checkChildAge)
	return render(cmd, check, func(cmd *cobra.Command) {
		if check.Appropriate {
			cmd.Printf("ok: %s\n", check.AgeRating)
		} else {
			cmd.Printf("not appropriate: %s\n", check.AgeRating)
		}
		if check.Reason != "" {
			cmd.Println(check.Reason)
		}
		if len(check.FlaggedTerms) > 0 {
			cmd.Printf("flagged: %s\n", strings.Join(check.FlaggedTerms, ", "))
		}
	})
}

func runControlsGet(cmd *cobra.Command, args []string) error {
	svc, err := loadServices(cmd, true)
	if err != nil {
		return err
	}

	c := svc.Safety.ParentalControls(cmd.Context(), args[0])
	return render(cmd, c, func(cmd *cobra.Command) {
		modes := make([]string, 0, len(c.NarrativeModes))
		for _, m := range c.NarrativeModes {
			modes = append(modes, string(m))
		}
		cmd.Printf("modes:          %s\n", strings.Join(modes, ", "))
		cmd.Printf("filter:         %s\n", c.ContentFilter)
		cmd.Printf("max difficulty: %s\n", c.MaxDifficulty)
		cmd.Printf("preview:        %t\n", c.PreviewRequired)
		cmd.Printf("social:         %t\n", c.AllowSocialFeatures)
	})
}

func runControlsSet(cmd *cobra.Command, args []string) error {
	controls, err := parseControls()
	if err != nil {
		return err
	}

	svc, err := loadServices(cmd, true)
	if err != nil {
		return err
	}
	return renderAction(cmd, svc.Safety.UpdateParentalControls(cmd.Context(), args[0], controls))
}

func parseControls() (model.ParentalControls, error) {
	c := model.ParentalControls{
		ContentFilter:       model.ContentFilter(controlsFilter),
		MaxDifficulty:       model.Difficulty(controlsMaxDifficulty),
		PreviewRequired:     controlsPreview,
		AllowSocialFeatures: controlsSocial,
	}
	if !c.ContentFilter.Valid() {
		return c, fmt.Errorf("invalid filter %q (want none, mild or strict)", controlsFilter)
	}
	if !c.MaxDifficulty.Valid() {
		return c, fmt.Errorf("invalid max difficulty %q (want easy, moderate or hard)", controlsMaxDifficulty)
	}
	for _, raw := range strings.Split(controlsModes, ",") {
		mode := model.NarrativeMode(strings.TrimSpace(raw))
		if !mode.Valid() {
			return c, fmt.Errorf("invalid mode %q (want history or fantasy)", raw)
		}
		c.NarrativeModes = append(c.NarrativeModes, mode)
	}
	return c, nil
}

func runSafetyReport(cmd *cobra.Command, args []string) error {
	svc, err := loadServices(cmd, true)
	if err != nil {
		return err
	}

	issue := model.SafetyIssue{Category: issueCategory, Description: issueDescription, Severity: issueSeverity}
	return renderAction(cmd, svc.Safety.ReportIssue(cmd.Context(), args[0], issue))
}

func printList(cmd *cobra.Command, title string, items []string) {
	if len(items) == 0 {
		return
	}
	cmd.Printf("%s:\n", title)
	for _, item := range items {
		cmd.Printf("  - %s\n", item)
	}
}
