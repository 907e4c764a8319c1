package models

// AvailabilityRow is one bookable package/date combination, produced fresh
// per query. It only exists to bridge a table-row selection in the UI back
// into the booking draft; it is never persisted.
type AvailabilityRow struct {
	PackageName string  `json:"package"`
	DisplayDate string  `json:"date"`     // e.g. "13-Sep (Sat)"
	RawDate     string  `json:"raw_date"` // "YYYY-MM-DD", what the draft stores
	Price       float64 `json:"price"`
	ModuleKey   string  `json:"module_key"`
	SlotStatus  string  `json:"status"` // "N Slots" or "Only N left"
}
