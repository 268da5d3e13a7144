package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/secmon-lab/riskreg/pkg/domain/model"
	"github.com/secmon-lab/riskreg/pkg/domain/types"
)

var levelColors = map[types.Level]*color.Color{
	types.LevelLow:      color.New(color.FgGreen),
	types.LevelModerate: color.New(color.FgYellow),
	types.LevelHigh:     color.New(color.FgRed),
	types.LevelCritical: color.New(color.FgHiRed, color.Bold),
}

func colorLevel(level types.Level) string {
	if c, ok := levelColors[level]; ok {
		return c.Sprint(level.String())
	}
	return level.String()
}

var headerColor = color.New(color.Bold)

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func renderAdded(w io.Writer, r *model.Risk) error {
	_, err := fmt.Fprintf(w, "Added %s | %s (%d) - %s\n", r.ID, colorLevel(r.Level), r.Score, r.Title)
	return err
}

func renderRiskLine(w io.Writer, r *model.Risk) error {
	_, err := fmt.Fprintf(w, "%s | %s(%d) L%dxI%d | %s (cat:%s owner:%s) [%s]\n",
		r.ID, colorLevel(r.Level), r.Score, r.Likelihood, r.Impact, r.Title,
		orDash(r.Category.String()), orDash(r.Owner), r.Status)
	return err
}

func renderRiskList(w io.Writer, risks []*model.Risk) error {
	if len(risks) == 0 {
		_, err := fmt.Fprintln(w, "No risks found.")
		return err
	}
	for _, r := range risks {
		if err := renderRiskLine(w, r); err != nil {
			return err
		}
	}
	return nil
}

func renderBuckets(w io.Writer, title string, buckets []model.Bucket, label func(string) string) error {
	if _, err := fmt.Fprintln(w, headerColor.Sprintf("== %s ==", title)); err != nil {
		return err
	}
	for _, b := range buckets {
		if _, err := fmt.Fprintf(w, "- %s: %d\n", label(b.Label), b.Count); err != nil {
			return err
		}
	}
	return nil
}

func renderStats(w io.Writer, stats *model.RiskStats) error {
	if stats.Total == 0 {
		_, err := fmt.Fprintln(w, "No risks yet.")
		return err
	}

	levelLabel := func(s string) string { return colorLevel(types.Level(s)) }
	plain := func(s string) string { return s }

	if err := renderBuckets(w, "By Level", stats.ByLevel, levelLabel); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	return renderBuckets(w, "By Category", stats.ByCategory, plain)
}
