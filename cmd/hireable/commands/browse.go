package commands

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"hireable-backend/internal/listing"
	"hireable-backend/pkg/content"
	"hireable-backend/pkg/logger"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// BrowseCmd lists the candidate directory page by page.
var BrowseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse the candidate directory",
	Long: `Browse the candidate directory with the same filters as the dashboard.

Each additional page is loaded the way the dashboard does when the bottom of
the list scrolls into view. Without a token, or with --public, only the first
page is shown.

Examples:
  hireable browse
  hireable browse --location Dubai --experience 4-8 --pages 3
  hireable browse --search "react" --public`,
	RunE: runBrowse,
}

func init() {
	BrowseCmd.Flags().String("search", "", "Free-text search")
	BrowseCmd.Flags().String("location", "", "Emirate")
	BrowseCmd.Flags().String("nationality", "", "Nationality")
	BrowseCmd.Flags().String("experience", "", "Experience bracket (0-3, 4-8, 8-12, 13+)")
	BrowseCmd.Flags().String("profession", "", "Profession")
	BrowseCmd.Flags().Int("pages", 1, "Number of pages to load")
	BrowseCmd.Flags().Bool("public", false, "Browse as an anonymous visitor")
}

func runBrowse(cmd *cobra.Command, args []string) error {
	settings, err := LoadSettings()
	if err != nil {
		return err
	}
	public, _ := cmd.Flags().GetBool("public")
	if public {
		settings.Token = ""
	}
	pages, _ := cmd.Flags().GetInt("pages")

	f, err := filterFromFlags(cmd)
	if err != nil {
		return err
	}

	cl := settings.Client()
	res := content.MustLoad().For(settings.locale())
	b := newBrowser(cl, f, !cl.Authenticated())
	defer b.Close()

	if err := b.Run(cmd.Context(), pages); err != nil {
		return err
	}
	return b.Render(cmd.OutOrStdout(), res)
}

func filterFromFlags(cmd *cobra.Command) (listing.Filter, error) {
	var f listing.Filter
	for _, field := range []listing.Field{
		listing.FieldSearch,
		listing.FieldLocation,
		listing.FieldNationality,
		listing.FieldExperience,
		listing.FieldProfession,
	} {
		value, _ := cmd.Flags().GetString(string(field))
		next, err := f.With(field, value)
		if err != nil {
			return f, fmt.Errorf("--%s: %w", field, err)
		}
		f = next
	}
	return f, nil
}

// terminalObserver stands in for viewport observation. The sentinel
// "becomes visible" when the browse loop asks for another page.
type terminalObserver struct {
	mu      sync.Mutex
	seq     uint64
	pending func()
}

type terminalSubscription struct {
	obs *terminalObserver
	seq uint64
}

func (o *terminalObserver) Observe(target string, onVisible func()) (listing.Subscription, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.seq++
	o.pending = onVisible
	return terminalSubscription{obs: o, seq: o.seq}, nil
}

func (s terminalSubscription) Disconnect() {
	s.obs.mu.Lock()
	defer s.obs.mu.Unlock()
	if s.obs.seq == s.seq {
		s.obs.pending = nil
	}
}

// Reveal fires the live observation. Like a viewport observer it stays
// armed until disconnected. It reports false when nothing is observed,
// meaning there is nothing more to load.
func (o *terminalObserver) Reveal() bool {
	o.mu.Lock()
	fn := o.pending
	o.mu.Unlock()
	if fn == nil {
		return false
	}
	fn()
	return true
}

type browser struct {
	ctrl   *listing.Controller
	driver *listing.ScrollDriver
	obs    *terminalObserver
	public bool
}

func newBrowser(q listing.Query, f listing.Filter, public bool) *browser {
	return &browser{
		ctrl: listing.NewController(q,
			listing.WithMode(listing.ModeClientFetch),
			listing.WithInitialFilter(f),
			listing.WithLogger(logger.Log),
		),
		obs:    &terminalObserver{},
		public: public,
	}
}

// Run fetches the first page and then reveals the sentinel until pages
// have been loaded or the list is exhausted.
func (b *browser) Run(ctx context.Context, pages int) error {
	if err := b.ctrl.Refresh(ctx); err != nil {
		return err
	}
	var opts []listing.ScrollOption
	if b.public {
		opts = append(opts, listing.ReadOnly())
	}
	b.driver = listing.NewScrollDriver(ctx, b.ctrl, b.obs, opts...)
	for loaded := 1; loaded < pages; loaded++ {
		if !b.obs.Reveal() {
			break
		}
	}
	return nil
}

func (b *browser) Close() {
	if b.driver != nil {
		b.driver.Close()
	}
	b.ctrl.Close()
}

func (b *browser) Render(w io.Writer, res content.Resolver) error {
	snap := b.ctrl.Snapshot()
	switch b.ctrl.EmptyState() {
	case listing.EmptyNoMatches:
		pterm.Info.WithWriter(w).Println(res.Resolve(content.KeyDashboardNoMatches, nil))
		pterm.Info.WithWriter(w).Println(res.Resolve(content.KeyDashboardNoMatchesHint, nil))
		return nil
	case listing.EmptyNoCandidates:
		pterm.Info.WithWriter(w).Println(res.Resolve(content.KeyDashboardNoCandidates, nil))
		return nil
	}

	data := pterm.TableData{{"Name", "Profession", "Job title", "Location", "Nationality", "Years", "Skills"}}
	for _, c := range snap.Items {
		data = append(data, []string{
			c.FullName,
			c.Profession,
			c.JobTitle,
			c.Location,
			c.Nationality,
			strconv.Itoa(c.YearsOfExperience),
			strings.Join(c.Skills, ", "),
		})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithWriter(w).WithData(data).Render(); err != nil {
		return err
	}
	if footer := footerText(b.driver.Prompt(), snap, res); footer != "" {
		pterm.Info.WithWriter(w).Println(footer)
	}
	return nil
}

// footerText is the line shown under the table for a prompt.
func footerText(p listing.Prompt, snap listing.Snapshot, res content.Resolver) string {
	switch p {
	case listing.PromptLoading:
		return res.Resolve(content.KeyDashboardLoading, nil)
	case listing.PromptLogin:
		return res.Resolve(content.KeyDashboardLoginToSeeMore, nil)
	case listing.PromptLoadMore:
		return fmt.Sprintf("%d / %d. %s: --pages", len(snap.Items), snap.Total, res.Resolve(content.KeyDashboardLoadMore, nil))
	case listing.PromptEnd:
		return res.Resolve(content.KeyDashboardEndOfList, map[string]string{"count": strconv.Itoa(snap.Total)})
	}
	return ""
}
