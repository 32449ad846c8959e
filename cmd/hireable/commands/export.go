package commands

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"hireable-backend/pkg/content"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// ExportCmd downloads the filtered directory for recruiters.
var ExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Download the candidate directory as a spreadsheet",
	Long: `Download the filtered candidate directory. Requires a recruiter token.

Examples:
  hireable export --out candidates.xlsx
  hireable export --format csv --location Dubai --out dubai.csv`,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := LoadSettings()
		if err != nil {
			return err
		}
		f, err := filterFromFlags(cmd)
		if err != nil {
			return err
		}
		format, _ := cmd.Flags().GetString("format")
		format = strings.ToLower(format)
		out, _ := cmd.Flags().GetString("out")
		if out == "" {
			out = "candidates." + format
		}

		data, err := settings.Client().Export(cmd.Context(), f, format)
		if err != nil {
			return err
		}
		if err := os.WriteFile(out, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", out, err)
		}
		pterm.Success.Printf("Wrote %s (%d bytes)\n", out, len(data))
		return nil
	},
}

// StatsCmd prints the dashboard statistics.
var StatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show directory statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := LoadSettings()
		if err != nil {
			return err
		}
		stats, err := settings.Client().Stats(cmd.Context())
		if err != nil {
			return err
		}
		res := content.MustLoad().For(settings.locale())

		summary := pterm.TableData{
			{res.Resolve(content.KeyStatsTotalCandidates, nil), strconv.FormatInt(stats.TotalCandidates, 10)},
			{res.Resolve(content.KeyStatsSkillsAvailable, nil), strconv.FormatInt(stats.TotalSkills, 10)},
			{res.Resolve(content.KeyStatsLocations, nil), strconv.FormatInt(stats.TotalLocations, 10)},
		}
		if err := pterm.DefaultTable.WithData(summary).Render(); err != nil {
			return err
		}

		bars := make([]pterm.Bar, 0, len(stats.DailySignups))
		for _, d := range stats.DailySignups {
			bars = append(bars, pterm.Bar{Label: d.Date, Value: int(d.Count)})
		}
		if len(bars) == 0 {
			return nil
		}
		return pterm.DefaultBarChart.WithBars(bars).WithHorizontal().WithShowValue().Render()
	},
}

func init() {
	ExportCmd.Flags().String("format", "xlsx", "xlsx or csv")
	ExportCmd.Flags().String("out", "", "Output file (default candidates.<format>)")
	ExportCmd.Flags().String("search", "", "Free-text search")
	ExportCmd.Flags().String("location", "", "Emirate")
	ExportCmd.Flags().String("nationality", "", "Nationality")
	ExportCmd.Flags().String("experience", "", "Experience bracket (0-3, 4-8, 8-12, 13+)")
	ExportCmd.Flags().String("profession", "", "Profession")
}
