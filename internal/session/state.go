// Package session holds the dashboard's view state: the active coin filter,
// view, time range, search term, sort selection, and display toggles. All
// mutations go through named entry points driven by parsed Command values, so
// every mutation site is enumerable and testable.
package session

// View selects the main content area.
type View string

const (
	ViewOverview View = "overview"
	ViewTop      View = "top"
	ViewDetail   View = "detail"
)

// TimeRange selects the chart clipping window.
type TimeRange string

const (
	Range1D  TimeRange = "1D"
	Range1W  TimeRange = "1W"
	Range1M  TimeRange = "1M"
	Range3M  TimeRange = "3M"
	RangeAll TimeRange = "ALL"
)

// SortColumn is the closed set of sortable table columns.
type SortColumn string

const (
	ColNone      SortColumn = ""
	ColSymbol    SortColumn = "symbol"
	ColBucket    SortColumn = "bucket"
	ColPair      SortColumn = "pair"
	ColFreshness SortColumn = "freshness"
	ColPrice     SortColumn = "price"
	ColPosition  SortColumn = "position"
	ColReturn    SortColumn = "return"
	ColChange24h SortColumn = "change24h"
	ColChange7d  SortColumn = "change7d"
	ColMaxReturn SortColumn = "maxReturn"
	ColStreak    SortColumn = "streak"
)

// SortDirection orders a sorted column.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// DefaultDirection returns the direction used the first time a column is
// selected. Return and price columns start descending so the largest values
// surface first; everything else starts ascending.
func DefaultDirection(col SortColumn) SortDirection {
	switch col {
	case ColReturn, ColChange24h, ColChange7d, ColPrice:
		return SortDesc
	default:
		return SortAsc
	}
}

// State is the explicit session-state object. It is owned by the controller
// and mutated only on the controller goroutine; derivation and rendering read
// it through value copies.
type State struct {
	Coin          string
	View          View
	Range         TimeRange
	Search        string
	SortColumn    SortColumn
	SortDirection SortDirection
	ChartVisible  bool
	LogScale      bool

	// Detail-view address, meaningful only when View == ViewDetail.
	DetailBucket string
	DetailTSID   string

	// Persisted preferences.
	Theme  string
	Accent string
}

// NewState returns a State with load-time defaults, overlaid with persisted
// theme/accent preferences.
func NewState(prefs Prefs) *State {
	s := &State{
		Coin:          "all",
		View:          ViewOverview,
		Range:         RangeAll,
		SortColumn:    ColNone,
		SortDirection: SortAsc,
		ChartVisible:  true,
		Theme:         "dark",
		Accent:        "green",
	}
	if prefs.Theme != "" {
		s.Theme = prefs.Theme
	}
	if prefs.Accent != "" {
		s.Accent = prefs.Accent
	}
	return s
}

// SetCoin changes the active coin filter ("all" or a coin code).
func (s *State) SetCoin(coin string) {
	if coin == "" {
		coin = "all"
	}
	s.Coin = coin
}

// SetView switches between the overview and top-performers views. The detail
// view is entered through Select, not here.
func (s *State) SetView(v View) {
	if v != ViewOverview && v != ViewTop {
		return
	}
	s.View = v
}

// SetRange changes the chart time range.
func (s *State) SetRange(r TimeRange) {
	switch r {
	case Range1D, Range1W, Range1M, Range3M, RangeAll:
		s.Range = r
	}
}

// SetSearch replaces the free-text search term.
func (s *State) SetSearch(term string) {
	s.Search = term
}

// ToggleSort selects a sort column. Selecting the current column flips its
// direction; selecting a new column applies that column's default direction.
func (s *State) ToggleSort(col SortColumn) {
	if col == ColNone {
		s.SortColumn = ColNone
		s.SortDirection = SortAsc
		return
	}
	if s.SortColumn == col {
		if s.SortDirection == SortAsc {
			s.SortDirection = SortDesc
		} else {
			s.SortDirection = SortAsc
		}
		return
	}
	s.SortColumn = col
	s.SortDirection = DefaultDirection(col)
}

// ToggleChart shows or hides the chart panel.
func (s *State) ToggleChart() {
	s.ChartVisible = !s.ChartVisible
}

// ToggleLogScale flips the chart between log and linear scale.
func (s *State) ToggleLogScale() {
	s.LogScale = !s.LogScale
}

// SetTheme changes the theme preference.
func (s *State) SetTheme(theme string) {
	if theme != "" {
		s.Theme = theme
	}
}

// SetAccent changes the accent-color preference.
func (s *State) SetAccent(accent string) {
	if accent != "" {
		s.Accent = accent
	}
}

// EnterDetail navigates to the detail view for one strategy.
func (s *State) EnterDetail(bucket, tsID string) {
	s.View = ViewDetail
	s.DetailBucket = bucket
	s.DetailTSID = tsID
}

// LeaveDetail returns to the overview.
func (s *State) LeaveDetail() {
	s.View = ViewOverview
	s.DetailBucket = ""
	s.DetailTSID = ""
}

// PrefsSnapshot extracts the persistable preferences.
func (s *State) PrefsSnapshot() Prefs {
	return Prefs{Theme: s.Theme, Accent: s.Accent}
}
