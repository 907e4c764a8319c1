// Package availability computes bookable date/package rows from the
// catalog. The blackout rule (dates whose text ends in "05" or "25") and
// the slot-shrink rule (dates ending in "1" drop to 2 slots) are
// deterministic placeholder policies carried over unchanged; they are not
// calendar-aware.
package availability

import (
	"fmt"
	"strings"
	"time"

	"scoutai/models"
	"scoutai/services/catalog"
)

const (
	windowDays = 30 // how far ahead the engine looks
	maxDates   = 3  // qualifying dates offered per query
)

// Engine derives availability rows from the catalog.
type Engine struct {
	Catalog *catalog.Store
	// Now is injectable for tests; defaults to time.Now.
	Now func() time.Time
}

func NewEngine(store *catalog.Store) *Engine {
	return &Engine{Catalog: store, Now: time.Now}
}

func (e *Engine) today() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

// blackout reports whether a raw "YYYY-MM-DD" date is excluded by the
// synthetic suffix rule.
func blackout(rawDate string) bool {
	return strings.HasSuffix(rawDate, "05") || strings.HasSuffix(rawDate, "25")
}

// slotsFor applies the slot-shrink rule to a package's nominal capacity.
func slotsFor(pkg catalog.Package, rawDate string) int {
	if strings.HasSuffix(rawDate, "1") {
		return 2
	}
	return pkg.Capacity
}

func slotStatus(slots int) string {
	if slots > 5 {
		return fmt.Sprintf("%d Slots", slots)
	}
	return fmt.Sprintf("Only %d left", slots)
}

// validDates collects the next qualifying weekend dates: Friday/Saturday
// within the window, skipping blackout dates, at most maxDates.
func (e *Engine) validDates() [][2]string {
	var dates [][2]string
	today := e.today()
	for i := 0; i < windowDays; i++ {
		d := today.AddDate(0, 0, i)
		if wd := d.Weekday(); wd != time.Friday && wd != time.Saturday {
			continue
		}
		raw := d.Format("2006-01-02")
		if !blackout(raw) {
			dates = append(dates, [2]string{raw, d.Format("02-Jan (Mon)")})
		}
		if len(dates) >= maxDates {
			break
		}
	}
	return dates
}

// Rows returns the bookable package/date combinations for a location,
// optionally narrowed to a single package key. Packages iterate outer and
// dates inner, both in catalog declared order.
func (e *Engine) Rows(location, filterModule string) ([]models.AvailabilityRow, error) {
	loc, err := e.Catalog.Location(strings.ToLower(location))
	if err != nil {
		return nil, err
	}

	packages := loc.Packages()
	if filterModule != "" && loc.Has(filterModule) {
		pkg, _ := loc.Package(filterModule)
		packages = []catalog.Package{pkg}
	}

	dates := e.validDates()
	rows := make([]models.AvailabilityRow, 0, len(packages)*len(dates))
	for _, pkg := range packages {
		for _, d := range dates {
			raw, pretty := d[0], d[1]
			rows = append(rows, models.AvailabilityRow{
				PackageName: pkg.Name,
				DisplayDate: pretty,
				RawDate:     raw,
				Price:       pkg.Price,
				ModuleKey:   pkg.Key,
				SlotStatus:  slotStatus(slotsFor(pkg, raw)),
			})
		}
	}
	return rows, nil
}

// Check validates a concrete date/guest-count request against the blackout
// rule and the package capacity. It fails closed on unknown locations or
// packages.
func (e *Engine) Check(location, moduleKey, date string, guests int) (bool, string) {
	loc, err := e.Catalog.Location(strings.ToLower(location))
	if err != nil {
		return false, fmt.Sprintf("Sorry, I don't recognise the destination %q.", location)
	}
	pkg, err := loc.Package(moduleKey)
	if err != nil {
		return false, fmt.Sprintf("Sorry, that package is not offered in %s.", loc.Key)
	}

	if blackout(date) {
		return false, fmt.Sprintf("Sorry, %s is sold out! (Max capacity: %d)", date, pkg.Capacity)
	}
	if guests > pkg.Capacity {
		return false, fmt.Sprintf("We only have %d slots left. You asked for %d.", pkg.Capacity, guests)
	}
	return true, fmt.Sprintf("Available! (%d slots open)", pkg.Capacity)
}

// Preview returns the next few open weekend dates as a display string,
// used to enrich knowledge answers about upcoming availability.
func (e *Engine) Preview() string {
	var parts []string
	today := e.today()
	for i := 0; i < windowDays; i++ {
		d := today.AddDate(0, 0, i)
		if wd := d.Weekday(); wd != time.Friday && wd != time.Saturday {
			continue
		}
		raw := d.Format("2006-01-02")
		if !blackout(raw) {
			parts = append(parts, d.Format("02-Jan (Mon)"))
			if len(parts) >= 4 {
				break
			}
		}
	}
	return strings.Join(parts, ", ")
}
