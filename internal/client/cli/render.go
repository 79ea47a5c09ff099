package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dmitrijs2005/growlog/internal/api"
)

func orDash(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}

func days(n *int) string {
	if n == nil {
		return "-"
	}
	if *n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", *n)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func renderPlantList(w io.Writer, plants []api.Plant) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tGENETICS\tPHASE\tAGE\tPHOTO")
	for _, p := range plants {
		age := p.AgeDays
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			p.ID, p.Name, orDash(p.Genetics), p.PhaseLabel, days(&age), yesNo(p.HasPhoto))
	}
	return tw.Flush()
}

func renderPlant(w io.Writer, p *api.Plant) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	age := p.AgeDays

	fmt.Fprintf(tw, "ID:\t%s\n", p.ID)
	fmt.Fprintf(tw, "Name:\t%s\n", p.Name)
	fmt.Fprintf(tw, "Genetics:\t%s\n", orDash(p.Genetics))
	fmt.Fprintf(tw, "Phase:\t%s (%s)\n", p.PhaseLabel, p.Phase)
	fmt.Fprintf(tw, "Germination date:\t%s\n", orDash(p.GerminationDate))
	fmt.Fprintf(tw, "Vegetation date:\t%s\n", orDash(p.VegetationDate))
	fmt.Fprintf(tw, "Flowering date:\t%s\n", orDash(p.FloweringDate))
	fmt.Fprintf(tw, "Age:\t%s\n", days(&age))
	if p.Timeline != nil {
		fmt.Fprintf(tw, "Days in germination:\t%s\n", days(p.Timeline.GerminationDays))
		fmt.Fprintf(tw, "Days in vegetation:\t%s\n", days(p.Timeline.VegetationDays))
		fmt.Fprintf(tw, "Days in flowering:\t%s\n", days(p.Timeline.FloweringDays))
	}
	fmt.Fprintf(tw, "Photo:\t%s\n", yesNo(p.HasPhoto))

	return tw.Flush()
}

func renderSummary(w io.Writer, s *api.SummaryResponse) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, pc := range s.Phases {
		fmt.Fprintf(tw, "%s:\t%d\n", pc.Label, pc.Count)
	}
	fmt.Fprintf(tw, "Total:\t%d\n", s.Total)
	return tw.Flush()
}
