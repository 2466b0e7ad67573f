package main

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"example.com/fitnessclient/internal/domain"
	"example.com/fitnessclient/internal/viewstate"
)

// dateLabel renders t relative to now: "Today", "Yesterday" or "Mon, Jan 2".
func dateLabel(t, now time.Time) string {
	if t.IsZero() {
		return "-"
	}
	t = t.In(now.Location())
	y, m, d := t.Date()
	ty, tm, td := now.Date()
	if y == ty && m == tm && d == td {
		return "Today"
	}
	yy, ym, yd := now.AddDate(0, 0, -1).Date()
	if y == yy && m == ym && d == yd {
		return "Yesterday"
	}
	return t.Format("Mon, Jan 2")
}

func displayType(t domain.ActivityType) string {
	lower := strings.ToLower(string(t))
	if lower == "" {
		return lower
	}
	return strings.ToUpper(lower[:1]) + lower[1:]
}

func printActivities(w io.Writer, st viewstate.ListState, now time.Time) {
	switch st.Phase {
	case viewstate.PhaseFailed:
		fmt.Fprintln(w, st.Message)
		return
	case viewstate.PhaseReady:
	default:
		fmt.Fprintln(w, "Loading...")
		return
	}
	if len(st.Data) == 0 {
		fmt.Fprintln(w, viewstate.EmptyListMessage)
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTYPE\tDURATION\tCALORIES\tDATE")
	for _, a := range st.Data {
		when := a.CreatedAt
		if a.StartTime != nil {
			when = *a.StartTime
		}
		fmt.Fprintf(tw, "%s\t%s\t%d min\t%d\t%s\n", a.ID, displayType(a.Type), a.Duration, a.CaloriesBurned, dateLabel(when, now))
	}
	_ = tw.Flush()
}

func printDetail(w io.Writer, st viewstate.DetailState) {
	switch st.Phase {
	case viewstate.PhaseFailed:
		fmt.Fprintln(w, st.Message)
		return
	case viewstate.PhaseReady:
	default:
		fmt.Fprintln(w, "Loading...")
		return
	}

	d := st.Data
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Activity\t%s\n", displayType(d.Type))
	fmt.Fprintf(tw, "Duration\t%d min\n", d.Duration)
	fmt.Fprintf(tw, "Calories\t%d\n", d.CaloriesBurned)
	fmt.Fprintf(tw, "Pace\t%.1f cal/min\n", d.CaloriesPerMinute())
	if d.StartTime != nil {
		fmt.Fprintf(tw, "Started\t%s\n", d.StartTime.Local().Format(time.RFC1123))
	}
	if !d.CreatedAt.IsZero() {
		fmt.Fprintf(tw, "Logged\t%s\n", d.CreatedAt.Local().Format(time.RFC1123))
	}
	keys := make([]string, 0, len(d.AdditionalMetrics))
	for k := range d.AdditionalMetrics {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(tw, "%s\t%v\n", k, d.AdditionalMetrics[k])
	}
	_ = tw.Flush()

	fmt.Fprintln(w)
	if !d.HasRecommendation() {
		fmt.Fprintln(w, "No recommendation yet.")
		return
	}
	fmt.Fprintln(w, "AI Recommendation")
	fmt.Fprintln(w, *d.Recommendation)
	printSection(w, "Improvements", d.Improvements)
	printSection(w, "Suggestions", d.Suggestions)
	printSection(w, "Safety", d.Safety)
}

func printSection(w io.Writer, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%s\n", title)
	for _, item := range items {
		fmt.Fprintf(w, "  - %s\n", item)
	}
}

func printRecommendations(w io.Writer, recs []domain.Recommendation) {
	if len(recs) == 0 {
		fmt.Fprintln(w, "No recommendations yet")
		return
	}
	for i, rec := range recs {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s (%s)\n", rec.ActivityID, displayType(rec.ActivityType))
		fmt.Fprintln(w, rec.Recommendation)
		printSection(w, "Improvements", rec.Improvements)
		printSection(w, "Suggestions", rec.Suggestions)
		printSection(w, "Safety", rec.Safety)
	}
}
