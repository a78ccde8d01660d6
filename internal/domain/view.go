package domain

// SortColumn selects which listing column a table sort applies to.
type SortColumn int

const (
	SortNone SortColumn = iota
	SortName
	SortSymbol
	SortPrice
	SortPriceChange
	SortVolume
)

// SortDirection is only meaningful when the column is not SortNone.
type SortDirection int

const (
	SortAsc SortDirection = iota
	SortDesc
)

// PageSize is the fixed number of listing rows per table page.
const PageSize = 15

// TimeFormat is the axis-label granularity for a chart interval.
type TimeFormat int

const (
	FormatHour TimeFormat = iota
	FormatDay
	FormatWeek
	FormatMonth
)

// Interval is a selectable chart lookback window.
type Interval string

const (
	Interval1Day    Interval = "1d"
	Interval7Days   Interval = "7d"
	Interval1Month  Interval = "1m"
	Interval3Months Interval = "3m"
	Interval1Year   Interval = "1y"
)

// DefaultInterval is what a coin page starts on; its series is pre-fetched
// server-side and restored without a network call when reselected.
const DefaultInterval = Interval1Day

// IntervalConfig maps an interval to its provider lookback and label format.
type IntervalConfig struct {
	Label      string
	Days       int
	TimeFormat TimeFormat
}

// Intervals is the fixed set of selectable chart windows.
var Intervals = map[Interval]IntervalConfig{
	Interval1Day:    {Label: "1 Day", Days: 1, TimeFormat: FormatHour},
	Interval7Days:   {Label: "7 Days", Days: 7, TimeFormat: FormatDay},
	Interval1Month:  {Label: "1 Month", Days: 30, TimeFormat: FormatDay},
	Interval3Months: {Label: "3 Months", Days: 90, TimeFormat: FormatDay},
	Interval1Year:   {Label: "1 Year", Days: 365, TimeFormat: FormatWeek},
}

// IntervalOrder is the display order of the interval buttons.
var IntervalOrder = []Interval{
	Interval1Day, Interval7Days, Interval1Month, Interval3Months, Interval1Year,
}
