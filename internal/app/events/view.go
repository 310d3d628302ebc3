package events

import (
	"context"
	"maps"
	"slices"

	"github.com/looplab/fsm"

	"siemctl/internal/app/api"
	"siemctl/internal/config"
	"siemctl/internal/config/logger"
)

// Status describes what the table area should show
type Status int

// Status values
const (
	StatusIdle Status = iota
	StatusLoading
	StatusReady
	StatusNoData
	StatusError
)

// Outcome tells the caller what Apply did with a response
type Outcome int

// Outcome values
const (
	OutcomeApplied Outcome = iota
	OutcomeNoData
	OutcomeFailed
	OutcomeStale
)

// Request is a page fetch handed out by View; only the most recent one is applied
type Request struct {
	Ctx    context.Context
	Token  uint64
	Page   int
	Limit  int
	Append bool
}

// View owns the console's event state: the accumulated list, the filter, pagination and the in-flight request
type View struct {
	mode   string
	loader *fsm.FSM
	cancel context.CancelFunc
	token  uint64

	all       []api.Event
	filtered  []api.Event
	filter    Filter
	filterErr error
	types     map[string]struct{}

	page       int
	totalPages int
	total      int
	status     Status

	log logger.Logger
}

// NewView creates an empty View in scroll or paged mode
func NewView(mode string, log logger.Logger) *View {
	log = log.WithComponent("LOADER")

	if mode != config.ModePaged {
		mode = config.ModeScroll
	}

	return &View{
		mode:       mode,
		loader:     newLoaderFSM(log),
		types:      make(map[string]struct{}),
		page:       1,
		totalPages: 1,
		log:        log,
	}
}

// Start issues the initial load for the configured mode
func (v *View) Start(ctx context.Context) (Request, bool) {
	if v.mode == config.ModePaged {
		return v.LoadPage(ctx)
	}

	return v.LoadScroll(ctx)
}

// LoadPage fetches the current page and replaces the list when it arrives
func (v *View) LoadPage(ctx context.Context) (Request, bool) {
	return v.begin(ctx, false)
}

// LoadScroll fetches the current page and appends it when it arrives
func (v *View) LoadScroll(ctx context.Context) (Request, bool) {
	return v.begin(ctx, true)
}

// LoadMore advances to the next page in scroll mode when more pages remain
func (v *View) LoadMore(ctx context.Context) (Request, bool) {
	if v.mode != config.ModeScroll || v.Loading() || !v.HasMore() {
		return Request{}, false
	}

	v.page++

	return v.LoadScroll(ctx)
}

// PrevPage moves one page back in paged mode
func (v *View) PrevPage(ctx context.Context) (Request, bool) {
	if !v.PrevEnabled() {
		return Request{}, false
	}

	v.page--

	return v.LoadPage(ctx)
}

// NextPage moves one page forward in paged mode
func (v *View) NextPage(ctx context.Context) (Request, bool) {
	if !v.NextEnabled() {
		return Request{}, false
	}

	v.page++

	return v.LoadPage(ctx)
}

// Reset drops the accumulated list and abandons any in-flight request
func (v *View) Reset() {
	v.token++

	if v.cancel != nil {
		v.cancel()
		v.cancel = nil
	}

	if v.loader.Is(Loading) {
		_ = v.loader.Event(context.Background(), Abort)
	}

	v.page = 1
	v.all = nil
	v.filtered = nil
	v.status = StatusIdle
}

// SetRegex switches regex mode, which resets the list and reloads from page 1
func (v *View) SetRegex(ctx context.Context, regex bool) (Request, bool) {
	v.filter.Regex = regex
	v.Reset()

	return v.Start(ctx)
}

// SetFilter replaces the filter and recomputes the visible subset
func (v *View) SetFilter(f Filter) {
	v.filter = f

	if v.status == StatusError {
		v.status = StatusReady
	}

	v.refilter()
}

// Apply folds a response into the view unless a newer request has superseded it
func (v *View) Apply(req Request, resp *api.EventsResponse, err error) Outcome {
	if req.Token != v.token {
		v.log.Debug().Uint64("token", req.Token).Int("page", req.Page).Msg("Dropping stale response")
		return OutcomeStale
	}

	if v.cancel != nil {
		v.cancel()
		v.cancel = nil
	}

	if err != nil {
		_ = v.loader.Event(context.Background(), Fail)
		v.status = StatusError

		// a failed continuation is retried by the next scroll instead of skipped
		if req.Append && req.Page > 1 && v.page == req.Page {
			v.page--
		}

		return OutcomeFailed
	}

	_ = v.loader.Event(context.Background(), Done)

	if !resp.OK() {
		if req.Append {
			if v.status == StatusLoading {
				v.status = StatusReady
			}

			return OutcomeNoData
		}

		v.all = nil
		v.filtered = nil
		v.total = 0
		v.status = StatusNoData

		return OutcomeNoData
	}

	if req.Append {
		v.all = append(v.all, resp.Data...)
	} else {
		v.all = slices.Clone(resp.Data)
	}

	v.totalPages = resp.Pages()
	v.total = resp.TotalEvents()
	v.status = StatusReady

	for _, e := range resp.Data {
		if t := e.String(FieldType); t != "" {
			v.types[t] = struct{}{}
		}
	}

	v.refilter()

	v.log.Debug().
		Int("page", req.Page).
		Int("received", len(resp.Data)).
		Int("accumulated", len(v.all)).
		Int("total_pages", v.totalPages).
		Msg("Applied page")

	return OutcomeApplied
}

// Events returns the filtered events in display order
func (v *View) Events() []api.Event {
	return v.filtered
}

// Event returns the filtered event at index
func (v *View) Event(index int) (api.Event, bool) {
	if index < 0 || index >= len(v.filtered) {
		return nil, false
	}

	return v.filtered[index], true
}

// Accumulated returns the number of loaded events before filtering
func (v *View) Accumulated() int {
	return len(v.all)
}

// Types returns every event type seen so far, sorted
func (v *View) Types() []string {
	return slices.Sorted(maps.Keys(v.types))
}

// Filter returns the current filter
func (v *View) Filter() Filter {
	return v.filter
}

// FilterErr returns the error from the last filter pass, if a pattern was invalid
func (v *View) FilterErr() error {
	return v.filterErr
}

// Mode returns scroll or paged
func (v *View) Mode() string {
	return v.mode
}

// Status returns what the table area should show
func (v *View) Status() Status {
	return v.status
}

// Loading reports whether a fetch is in flight
func (v *View) Loading() bool {
	return v.loader.Is(Loading)
}

// Page returns the current page number, starting at 1
func (v *View) Page() int {
	return v.page
}

// PageSize returns the fixed page size
func (v *View) PageSize() int {
	return config.PageSize
}

// TotalPages returns the page count reported by the last response
func (v *View) TotalPages() int {
	return v.totalPages
}

// Total returns the event count reported by the last response
func (v *View) Total() int {
	return v.total
}

// HasMore reports whether pages beyond the current one exist
func (v *View) HasMore() bool {
	return v.page < v.totalPages
}

// SentinelVisible reports whether the "loading more" indicator is shown
func (v *View) SentinelVisible() bool {
	if v.mode != config.ModeScroll {
		return false
	}

	return (v.Loading() && len(v.all) > 0) || v.HasMore()
}

// PrevEnabled reports whether the previous page control is active
func (v *View) PrevEnabled() bool {
	return v.mode == config.ModePaged && v.page > 1 && !v.Loading()
}

// NextEnabled reports whether the next page control is active
func (v *View) NextEnabled() bool {
	return v.mode == config.ModePaged && v.page < v.totalPages && !v.Loading()
}

func (v *View) begin(ctx context.Context, appendPage bool) (Request, bool) {
	if v.Loading() {
		return Request{}, false
	}

	if err := v.loader.Event(context.Background(), Fetch); err != nil {
		v.log.Warn().Err(err).Msg("Failed to start fetch")
		return Request{}, false
	}

	v.token++

	reqCtx, cancel := context.WithCancel(ctx)
	v.cancel = cancel

	if !appendPage || len(v.all) == 0 {
		v.status = StatusLoading
	}

	return Request{
		Ctx:    reqCtx,
		Token:  v.token,
		Page:   v.page,
		Limit:  config.PageSize,
		Append: appendPage,
	}, true
}

func (v *View) refilter() {
	v.filtered, v.filterErr = Apply(v.all, v.filter)

	if v.filterErr != nil {
		v.log.Warn().Err(v.filterErr).Msg("Filter pattern ignored")
	}
}
