package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var routesCmd = &cobra.Command{
	Use:   "routes <itineraryId> <day>",
	Short: "List the routes between a day's destinations",
	Long: `List the route between every pair of consecutive destinations of a day.
Days are counted from 1. Routes the service does not know yet are created
with the default transportation mode.`,
	Args:    cobra.ExactArgs(2),
	GroupID: "itinerary",
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseIndex("itinerary id", args[0])
		if err != nil {
			return err
		}
		day, err := parseIndex("day", args[1])
		if err != nil {
			return err
		}
		if day == 0 {
			return fmt.Errorf("invalid day %q: days start at 1", args[1])
		}

		svc, _, err := newService()
		if err != nil {
			return err
		}
		defer svc.Store().Close()

		ctx := cmd.Context()
		if err := svc.LoadItinerary(ctx, id); err != nil {
			return err
		}
		routes, err := svc.DayRoutes(ctx, day-1)
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		if jsonOutput {
			return outputJSON(w, routes)
		}

		printSection(w, fmt.Sprintf("Day %d routes", day))
		if len(routes) == 0 {
			printDim(w, "  fewer than two destinations")
			return nil
		}

		names := map[int]string{}
		for _, d := range svc.Store().Destinations.Get()[day-1] {
			names[d.ID] = d.Name
		}
		for _, r := range routes {
			fmt.Fprintf(w, "  %s -> %s ", names[r.OriginID], names[r.DestinationID])
			_, _ = modeColor.Fprintf(w, "[%s]", r.TransportationMode)
			_, _ = dimColor.Fprintf(w, " %s, %s (route %d)\n", formatDistance(r.DistanceMeters), formatDuration(r.DurationSeconds), r.ID)
		}
		return nil
	},
}
