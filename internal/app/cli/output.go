package cli

import (
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/x/ansi"
	xterm "github.com/charmbracelet/x/term"

	"siemctl/internal/app/api"
	"siemctl/internal/app/colors"
	"siemctl/internal/app/errors"
	"siemctl/internal/app/events"
	"siemctl/internal/app/render"
	"siemctl/internal/config"
)

const (
	defaultTermWidth = 120
	tableFixedWidth  = 86
	minMessageWidth  = 20
)

// filter builds the event filter from the command flags
func (c *cli) filter() events.Filter {
	return events.Filter{
		Search:     c.opts.Search,
		Regex:      c.opts.Regex,
		Severities: c.opts.Severities,
		Types:      c.opts.Types,
		Agent:      c.opts.Agent,
	}
}

// fetchPage loads the requested page and applies the command's filter
func (c *cli) fetchPage(ctx context.Context) (*api.EventsResponse, []api.Event, error) {
	creds, err := c.credentials()
	if err != nil {
		return nil, nil, err
	}

	resp, err := c.client.Events(ctx, creds, c.opts.Page, config.PageSize)
	if err != nil {
		return nil, nil, err
	}

	filtered, err := events.Apply(resp.Data, c.filter())
	if err != nil {
		fmt.Fprintf(c.errOut, "%s %v\n", colors.Warning("Warning:"), err)
	}

	if filtered == nil {
		filtered = []api.Event{}
	}

	return resp, filtered, nil
}

// handleEvents prints one page of filtered events
func (c *cli) handleEvents(ctx context.Context) error {
	resp, filtered, err := c.fetchPage(ctx)
	if err != nil {
		return err
	}

	total := 0
	if resp.OK() {
		total = resp.TotalEvents()
	}

	switch c.opts.Output {
	case OutputJSON:
		enc := json.NewEncoder(c.out)
		enc.SetIndent("", "  ")

		return enc.Encode(filtered)

	case OutputHTML:
		fmt.Fprintf(c.out, "<table>\n<tbody>\n%s\n</tbody>\n</table>\n", render.HTMLTable(render.Rows(filtered)))
		fmt.Fprintf(c.out, "<p>%s</p>\n<p>%s</p>\n",
			render.EscapeHTML(render.CountLabel(total)),
			render.EscapeHTML(render.PaginationLabel(c.opts.Page, config.PageSize, total)))

		return nil

	case OutputTable:
		if err := c.printTable(filtered); err != nil {
			return err
		}

		fmt.Fprintf(c.out, "\n%s  %s\n",
			colors.Primary(render.CountLabel(total)),
			colors.Muted(render.PaginationLabel(c.opts.Page, config.PageSize, total)))

		return nil
	}

	return fmt.Errorf("%w: unknown output '%s'", errors.ErrUnknownCommand, c.opts.Output)
}

func (c *cli) printTable(list []api.Event) error {
	if len(list) == 0 {
		_, err := fmt.Fprintln(c.out, render.EmptyText)
		return err
	}

	width := max(terminalWidth(c.out)-tableFixedWidth, minMessageWidth)

	tw := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tTIME\tAGENT\tTYPE\tSEVERITY\tUSER\tMESSAGE")

	for _, r := range render.Rows(list) {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.Index+1,
			r.Timestamp,
			render.Sanitize(r.AgentID),
			render.Sanitize(r.Type),
			render.Sanitize(r.Badge),
			render.Sanitize(r.User),
			ansi.Truncate(render.Sanitize(r.Message), width, "…"),
		)
	}

	return tw.Flush()
}

// handleShow prints one event of the filtered page as highlighted JSON
func (c *cli) handleShow(ctx context.Context) error {
	_, filtered, err := c.fetchPage(ctx)
	if err != nil {
		return err
	}

	if c.opts.Index > len(filtered) {
		return fmt.Errorf("%w: #%d on page %d (%d shown)", errors.ErrEventNotFound, c.opts.Index, c.opts.Page, len(filtered))
	}

	var painter render.Painter = render.NewTermPainter()
	if c.opts.HTML {
		painter = render.HTMLPainter{}
	}

	out, err := render.HighlightJSON(filtered[c.opts.Index-1], painter)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(c.out, out)

	return err
}

// handleStats prints the backend's aggregate statistics
func (c *cli) handleStats(ctx context.Context) error {
	creds, err := c.credentials()
	if err != nil {
		return err
	}

	stats, err := c.client.Stats(ctx, creds)
	if err != nil {
		return err
	}

	c.printCounts("Severity", stats.SeverityDist)
	c.printCounts("Event types", stats.EventsByType)
	c.printCounts("Top users", stats.TopUsers)
	c.printCounts("Top processes", stats.TopProcesses)
	c.printAgents(stats.ActiveAgents)
	c.printHours(stats.EventsPerHour)

	return nil
}

// printCounts prints a section sorted by descending count
func (c *cli) printCounts(title string, counts map[string]int) {
	fmt.Fprintln(c.out, colors.Subtitle(title))

	if len(counts) == 0 {
		fmt.Fprintln(c.out, colors.Muted("  -"))
		fmt.Fprintln(c.out)

		return
	}

	keys := slices.SortedFunc(maps.Keys(counts), func(a, b string) int {
		if n := cmp.Compare(counts[b], counts[a]); n != 0 {
			return n
		}

		return cmp.Compare(a, b)
	})

	tw := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	for _, k := range keys {
		fmt.Fprintf(tw, "  %s\t%d\n", render.Sanitize(k), counts[k])
	}

	_ = tw.Flush()

	fmt.Fprintln(c.out)
}

func (c *cli) printAgents(agents map[string]time.Time) {
	fmt.Fprintln(c.out, colors.Subtitle("Active agents"))

	if len(agents) == 0 {
		fmt.Fprintln(c.out, colors.Muted("  -"))
		fmt.Fprintln(c.out)

		return
	}

	tw := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	for _, id := range slices.Sorted(maps.Keys(agents)) {
		fmt.Fprintf(tw, "  %s\t%s\n", render.Sanitize(id), render.FormatTimestamp(agents[id].Format(time.RFC3339Nano)))
	}

	_ = tw.Flush()

	fmt.Fprintln(c.out)
}

func (c *cli) printHours(hours map[int]int) {
	if len(hours) == 0 {
		return
	}

	fmt.Fprintln(c.out, colors.Subtitle("Events per hour"))

	tw := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	for _, h := range slices.Sorted(maps.Keys(hours)) {
		fmt.Fprintf(tw, "  %s\t%d\n", fmt.Sprintf("%02d:00", h), hours[h])
	}

	_ = tw.Flush()

	fmt.Fprintln(c.out)
}

// terminalWidth returns the width of out when it is a terminal
func terminalWidth(out io.Writer) int {
	f, ok := out.(*os.File)
	if !ok {
		return defaultTermWidth
	}

	w, _, err := xterm.GetSize(f.Fd())
	if err != nil || w <= 0 {
		return defaultTermWidth
	}

	return w
}
