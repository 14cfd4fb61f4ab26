package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ericfisherdev/trailtail/internal/domain/model"
)

var (
	routesLat          float64
	routesLng          float64
	routesRadius       float64
	routesDistance     float64
	routesDifficulty   string
	routesWithChildren bool
)

var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "Find, inspect and save trails",
}

var routesNearbyCmd = &cobra.Command{
	Use:   "nearby",
	Short: "List trails near a point",
	Args:  cobra.NoArgs,
	RunE:  runRoutesNearby,
}

var routesGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a trail from a starting point",
	Args:  cobra.NoArgs,
	RunE:  runRoutesGenerate,
}

var routesGetCmd = &cobra.Command{
	Use:   "get [route-id]",
	Short: "Show a trail's details",
	Args:  cobra.ExactArgs(1),
	RunE:  runRoutesGet,
}

var routesSaveCmd = &cobra.Command{
	Use:   "save [route-id]",
	Short: "Save a trail to your favorites (requires login)",
	Args:  cobra.ExactArgs(1),
	RunE:  runRoutesSave,
}

func init() {
	for _, c := range []*cobra.Command{routesNearbyCmd, routesGenerateCmd} {
		c.Flags().Float64Var(&routesLat, "lat", 0, "latitude")
		c.Flags().Float64Var(&routesLng, "lng", 0, "longitude")
		_ = c.MarkFlagRequired("lat")
		_ = c.MarkFlagRequired("lng")
	}
	routesNearbyCmd.Flags().Float64VarP(&routesRadius, "radius", "r", 10, "search radius in km")

	routesGenerateCmd.Flags().Float64VarP(&routesDistance, "distance", "d", 3, "trail length in km")
	routesGenerateCmd.Flags().StringVar(&routesDifficulty, "difficulty", string(model.DifficultyEasy),
		"easy, moderate or hard")
	routesGenerateCmd.Flags().BoolVar(&routesWithChildren, "with-children", true, "plan for children")

	routesCmd.AddCommand(routesNearbyCmd, routesGenerateCmd, routesGetCmd, routesSaveCmd)
	rootCmd.AddCommand(routesCmd)
}

func runRoutesNearby(cmd *cobra.Command, _ []string) error {
	svc, err := loadServices(cmd, true)
	if err != nil {
		return err
	}

	routes := svc.Routes.NearbyRoutes(cmd.Context(), routesLat, routesLng, routesRadius)
	return render(cmd, routes, func(cmd *cobra.Command) {
		if len(routes) == 0 {
			cmd.Println("No trails found.")
			return
		}
		for _, r := range routes {
			cmd.Printf("%-12s %-30s %5.1f km  %-8s ~%d min\n",
				r.ID, r.Name, r.Distance, r.Difficulty, r.EstimatedTime)
		}
	})
}

func runRoutesGenerate(cmd *cobra.Command, _ []string) error {
	difficulty := model.Difficulty(routesDifficulty)
	if !difficulty.Valid() {
		return fmt.Errorf("invalid difficulty %q (want easy, moderate or hard)", routesDifficulty)
	}
	if routesDistance <= 0 {
		return fmt.Errorf("distance must be positive, got %v", routesDistance)
	}

	svc, err := loadServices(cmd, true)
	if err != nil {
		return err
	}

	route := svc.Routes.GenerateRoute(cmd.Context(), model.RouteParams{
		StartLat:     routesLat,
		StartLng:     routesLng,
		Distance:     routesDistance,
		Difficulty:   difficulty,
		WithChildren: routesWithChildren,
	})
	return render(cmd, route, func(cmd *cobra.Command) { printRoute(cmd, route) })
}

func runRoutesGet(cmd *cobra.Command, args []string) error {
	svc, err := loadServices(cmd, true)
	if err != nil {
		return err
	}

	route := svc.Routes.GetRoute(cmd.Context(), args[0])
	return render(cmd, route, func(cmd *cobra.Command) { printRoute(cmd, route) })
}

func runRoutesSave(cmd *cobra.Command, args []string) error {
	svc, err := loadServices(cmd, true)
	if err != nil {
		return err
	}

	return renderAction(cmd, svc.Routes.SaveRoute(cmd.Context(), args[0]))
}

func printRoute(cmd *cobra.Command, r model.Route) {
	cmd.Printf("%s (%s)\n", r.Name, r.ID)
	cmd.Printf("  %.1f km, %s, about %d min, %.0f m climb\n",
		r.Distance, r.Difficulty, r.EstimatedTime, r.ElevationGain)
	if r.Description != "" {
		cmd.Printf("  %s\n", r.Description)
	}
	for _, f := range r.Features {
		cmd.Printf("  - %s\n", f)
	}
	if r.SafetyInfo != nil {
		for _, rec := range r.SafetyInfo.Recommendations {
			cmd.Printf("  ! %s\n", rec)
		}
	}
}
