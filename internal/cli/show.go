package cli

import (
	"fmt"

	"trip-planner/internal/models"

	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:     "show <itineraryId>",
	Short:   "Show an itinerary's destinations day by day",
	Args:    cobra.ExactArgs(1),
	GroupID: "itinerary",
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseIndex("itinerary id", args[0])
		if err != nil {
			return err
		}

		svc, _, err := newService()
		if err != nil {
			return err
		}
		defer svc.Store().Close()

		if err := svc.LoadItinerary(cmd.Context(), id); err != nil {
			return err
		}
		snap := svc.Store().Snapshot()

		w := cmd.OutOrStdout()
		if jsonOutput {
			return outputJSON(w, snap)
		}

		it := snap.Itinerary
		printSection(w, it.Title)
		if it.Description != "" {
			printLabelValue(w, "Description", it.Description)
		}
		printLabelValue(w, "Dates", fmt.Sprintf("%s to %s", it.StartDate.Format(models.DateLayout), it.EndDate.Format(models.DateLayout)))

		dates := it.Dates()
		for i, day := range snap.Destinations {
			fmt.Fprintln(w)
			title := fmt.Sprintf("Day %d", i+1)
			if i < len(dates) {
				title += " (" + dates[i].Format(models.DateLayout) + ")"
			}
			printSection(w, title)
			if len(day) == 0 {
				printDim(w, "  no destinations")
				continue
			}
			for _, d := range day {
				_, _ = timeColor.Fprintf(w, "  %s ", d.Date.Format("15:04"))
				fmt.Fprintf(w, "%s", d.Name)
				if d.Address != "" {
					_, _ = dimColor.Fprintf(w, "  %s", d.Address)
				}
				fmt.Fprintln(w)
			}
		}
		return nil
	},
}
