package model

import "time"

// DataIncluded selects which record kinds an export report contains.
type DataIncluded struct {
	IncludeDividends    bool `json:"includeDividends"`
	IncludeInterest     bool `json:"includeInterest"`
	IncludeOrders       bool `json:"includeOrders"`
	IncludeTransactions bool `json:"includeTransactions"`
}

// IncludeAll selects every record kind.
func IncludeAll() DataIncluded {
	return DataIncluded{IncludeDividends: true, IncludeInterest: true, IncludeOrders: true, IncludeTransactions: true}
}

func (d DataIncluded) Any() bool {
	return d.IncludeDividends || d.IncludeInterest || d.IncludeOrders || d.IncludeTransactions
}

// ExportPayload requests an asynchronous CSV export over [TimeFrom, TimeTo].
type ExportPayload struct {
	DataIncluded DataIncluded `json:"dataIncluded"`
	TimeFrom     time.Time    `json:"timeFrom"`
	TimeTo       time.Time    `json:"timeTo"`
}

func (p ExportPayload) Validate() error {
	if p.TimeFrom.IsZero() || p.TimeTo.IsZero() {
		return invalid("timeFrom/timeTo", "both bounds are required")
	}
	if !p.TimeFrom.Before(p.TimeTo) {
		return invalid("timeFrom", "must be before timeTo")
	}
	if !p.DataIncluded.Any() {
		return invalid("dataIncluded", "select at least one record kind")
	}
	return nil
}

// ExportReportResponse is the job handle returned when an export is queued.
type ExportReportResponse struct {
	ReportID *int64 `json:"reportId,omitempty"`
}

// ExportReport is one entry of the export listing. DownloadLink is set once the
// job has finished; callers poll the listing for it.
type ExportReport struct {
	ReportID     *int64        `json:"reportId,omitempty"`
	Status       ExportStatus  `json:"status,omitempty"`
	DataIncluded *DataIncluded `json:"dataIncluded,omitempty"`
	DownloadLink *string       `json:"downloadLink,omitempty"`
	TimeFrom     *time.Time    `json:"timeFrom,omitempty"`
	TimeTo       *time.Time    `json:"timeTo,omitempty"`
}
