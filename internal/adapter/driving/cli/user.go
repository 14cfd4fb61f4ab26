package cli

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ericfisherdev/trailtail/internal/domain/model"
)

var (
	loginEmail     string
	registerName   string
	registerMember []string

	completeDate     string
	completeDuration int
	completeDistance float64
	completeBadges   []string
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show login and connection state",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to the trail service",
	Long: `Signs in with an email address and password. The password is read from
the terminal without echo, or from the first line of stdin when piped.`,
	Args: cobra.NoArgs,
	RunE: runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored credentials",
	Args:  cobra.NoArgs,
	RunE:  runLogout,
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Register a family",
	Long: `Registers a family account. Members are given as name:role or
name:role:age, for example --member Alex:parent --member Sam:child:8.`,
	Args: cobra.NoArgs,
	RunE: runRegister,
}

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show the signed-in user's profile",
	Args:  cobra.NoArgs,
	RunE:  runProfile,
}

var preferencesCmd = &cobra.Command{
	Use:   "preferences key=value...",
	Short: "Update your preferences (requires login)",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runPreferences,
}

var familyCmd = &cobra.Command{
	Use:   "family",
	Short: "Inspect a family",
}

var familyGetCmd = &cobra.Command{
	Use:   "get [family-id]",
	Short: "Show a family and its members",
	Args:  cobra.ExactArgs(1),
	RunE:  runFamilyGet,
}

var familyProgressCmd = &cobra.Command{
	Use:   "progress [family-id]",
	Short: "Show a family's hiking achievements",
	Args:  cobra.ExactArgs(1),
	RunE:  runFamilyProgress,
}

var familyCompleteCmd = &cobra.Command{
	Use:   "complete [family-id] [route-id]",
	Short: "Record a finished trail (requires login)",
	Args:  cobra.ExactArgs(2),
	RunE:  runFamilyComplete,
}

func init() {
	loginCmd.Flags().StringVarP(&loginEmail, "email", "e", "", "account email")
	_ = loginCmd.MarkFlagRequired("email")

	registerCmd.Flags().StringVar(&registerName, "name", "", "family name")
	registerCmd.Flags().StringArrayVar(&registerMember, "member", nil, "member as name:role[:age]")
	_ = registerCmd.MarkFlagRequired("name")

	f := familyCompleteCmd.Flags()
	f.StringVar(&completeDate, "date", "", "completion date as YYYY-MM-DD (default today)")
	f.IntVar(&completeDuration, "duration", 0, "minutes on the trail")
	f.Float64Var(&completeDistance, "distance", 0, "kilometres walked")
	f.StringArrayVar(&completeBadges, "badge", nil, "badge earned; repeatable")

	familyCmd.AddCommand(familyGetCmd, familyProgressCmd, familyCompleteCmd)
	rootCmd.AddCommand(statusCmd, loginCmd, logoutCmd, registerCmd, profileCmd, preferencesCmd, familyCmd)
}

type statusView struct {
	AuthState      model.AuthState `json:"auth_state"`
	BackendEnabled bool            `json:"backend_enabled"`
	Attempted      bool            `json:"attempted"`
	Reachable      bool            `json:"reachable"`
	Offline        bool            `json:"offline"`
}

func runStatus(cmd *cobra.Command, _ []string) error {
	svc, err := loadServices(cmd, true)
	if err != nil {
		return err
	}

	conn := svc.Session.Connection()
	v := statusView{
		AuthState:      svc.Session.AuthState(cmd.Context()),
		BackendEnabled: svc.BackendEnabled,
		Attempted:      conn.Attempted,
		Reachable:      conn.Reachable,
		Offline:        !svc.BackendEnabled || conn.CircuitOpen(),
	}
	return render(cmd, v, func(cmd *cobra.Command) {
		cmd.Printf("auth:    %s\n", v.AuthState)
		switch {
		case !v.BackendEnabled:
			cmd.Println("backend: disabled (demo mode)")
		case v.Offline:
			cmd.Println("backend: unreachable (offline mode)")
		case v.Attempted:
			cmd.Println("backend: reachable")
		default:
			cmd.Println("backend: not contacted yet")
		}
	})
}

func runLogin(cmd *cobra.Command, _ []string) error {
	svc, err := loadServices(cmd, true)
	if err != nil {
		return err
	}

	cmd.PrintErr("Password: ")
	password, err := readPassword(cmd.InOrStdin())
	cmd.PrintErrln()
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}

	res := svc.Users.Login(cmd.Context(), loginEmail, password)
	if !res.Success {
		if outputFormat != formatText {
			if err := render(cmd, res, func(*cobra.Command) {}); err != nil {
				return err
			}
		}
		return errors.New(res.Message)
	}
	return render(cmd, res, func(cmd *cobra.Command) {
		if res.User != nil && res.User.Name != "" {
			cmd.Printf("%s as %s\n", res.Message, res.User.Name)
			return
		}
		cmd.Println(res.Message)
	})
}

func runLogout(cmd *cobra.Command, _ []string) error {
	svc, err := loadServices(cmd, true)
	if err != nil {
		return err
	}
	return renderAction(cmd, svc.Users.Logout(cmd.Context()))
}

func runRegister(cmd *cobra.Command, _ []string) error {
	family := model.Family{Name: registerName}
	for _, raw := range registerMember {
		m, err := parseMember(raw)
		if err != nil {
			return err
		}
		family.Members = append(family.Members, m)
	}

	svc, err := loadServices(cmd, true)
	if err != nil {
		return err
	}

	res := svc.Users.Register(cmd.Context(), family)
	return render(cmd, res, func(cmd *cobra.Command) {
		if res.Message != "" {
			cmd.Println(res.Message)
		}
		cmd.Printf("family id: %s\n", res.FamilyID)
	})
}

func parseMember(raw string) (model.FamilyMember, error) {
	parts := strings.Split(raw, ":")
	if len(parts) < 2 || len(parts) > 3 || parts[0] == "" || parts[1] == "" {
		return model.FamilyMember{}, fmt.Errorf("invalid member %q (want name:role[:age])", raw)
	}

	m := model.FamilyMember{Name: parts[0], Role: parts[1]}
	if len(parts) == 3 {
		age, err := strconv.Atoi(parts[2])
		if err != nil || age < 0 {
			return model.FamilyMember{}, fmt.Errorf("invalid age in member %q", raw)
		}
		m.Age = age
	}
	return m, nil
}

func runProfile(cmd *cobra.Command, _ []string) error {
	svc, err := loadServices(cmd, true)
	if err != nil {
		return err
	}

	user, ok := svc.Users.FetchProfile(cmd.Context())
	if !ok {
		return errors.New(model.AuthRequiredMessage)
	}
	return render(cmd, user, func(cmd *cobra.Command) {
		cmd.Printf("%s (%s)\n", user.Name, user.ID)
		if user.Email != "" {
			cmd.Printf("  email:  %s\n", user.Email)
		}
		if user.FamilyID != "" {
			cmd.Printf("  family: %s\n", user.FamilyID)
		}
	})
}

func runPreferences(cmd *cobra.Command, args []string) error {
	prefs, err := parsePreferences(args)
	if err != nil {
		return err
	}

	svc, err := loadServices(cmd, true)
	if err != nil {
		return err
	}
	return renderAction(cmd, svc.Users.UpdatePreferences(cmd.Context(), prefs))
}

// parsePreferences turns key=value pairs into preferences. Values that look
// like booleans or numbers are sent as such.
func parsePreferences(args []string) (model.Preferences, error) {
	prefs := model.Preferences{}
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid preference %q (want key=value)", arg)
		}
		switch value {
		case "true", "false":
			prefs[key] = value == "true"
			continue
		}
		if n, err := strconv.ParseFloat(value, 64); err == nil {
			prefs[key] = n
			continue
		}
		prefs[key] = value
	}
	return prefs, nil
}

func runFamilyGet(cmd *cobra.Command, args []string) error {
	svc, err := loadServices(cmd, true)
	if err != nil {
		return err
	}

	family := svc.Users.GetFamily(cmd.Context(), args[0])
	return render(cmd, family, func(cmd *cobra.Command) {
		cmd.Printf("%s (%s)\n", family.Name, family.ID)
		for _, m := range family.Members {
			if m.Age > 0 {
				cmd.Printf("  %-12s %-8s %d\n", m.Name, m.Role, m.Age)
				continue
			}
			cmd.Printf("  %-12s %s\n", m.Name, m.Role)
		}
	})
}

func runFamilyProgress(cmd *cobra.Command, args []string) error {
	svc, err := loadServices(cmd, true)
	if err != nil {
		return err
	}

	p := svc.Users.GetFamilyProgress(cmd.Context(), args[0])
	return render(cmd, p, func(cmd *cobra.Command) {
		cmd.Printf("%d trails, %.1f km\n", p.TotalRoutes, p.TotalDistance)
		if len(p.Badges) > 0 {
			badges := append([]string(nil), p.Badges...)
			sort.Strings(badges)
			cmd.Printf("badges: %s\n", strings.Join(badges, ", "))
		}
		if p.NextMilestone != "" {
			cmd.Printf("next:   %s\n", p.NextMilestone)
		}
	})
}

func runFamilyComplete(cmd *cobra.Command, args []string) error {
	date := completeDate
	if date == "" {
		date = time.Now().Format(time.DateOnly)
	} else if _, err := time.Parse(time.DateOnly, date); err != nil {
		return fmt.Errorf("invalid date %q (want YYYY-MM-DD)", date)
	}
	if completeDuration < 0 || completeDistance < 0 {
		return errors.New("duration and distance must not be negative")
	}

	svc, err := loadServices(cmd, true)
	if err != nil {
		return err
	}

	activity := model.CompletedActivity{
		CompletionDate: date,
		Duration:       completeDuration,
		Distance:       completeDistance,
		BadgesEarned:   completeBadges,
	}
	return renderAction(cmd, svc.Users.CompleteRoute(cmd.Context(), args[0], args[1], activity))
}
