package model

// Instrument is static metadata of a tradable asset. Ticker is unique.
type Instrument struct {
	Ticker            string  `json:"ticker"`
	Name              string  `json:"name"`
	Isin              string  `json:"isin"`
	CurrencyCode      string  `json:"currencyCode"`
	Type              string  `json:"type"`
	AddedOn           string  `json:"addedOn"`
	WorkingScheduleID int64   `json:"workingScheduleId"`
	MinTradeQuantity  float64 `json:"minTradeQuantity"`
	MaxOpenQuantity   float64 `json:"maxOpenQuantity"`
	ShortName         *string `json:"shortname,omitempty"`
}

// Exchange describes a venue and its trading-session schedules.
type Exchange struct {
	ID               int64             `json:"id"`
	Name             string            `json:"name"`
	WorkingSchedules []WorkingSchedule `json:"workingSchedules,omitempty"`
}

// WorkingSchedule holds session events in chronological order. The order is
// significant and is kept exactly as received.
type WorkingSchedule struct {
	ID         int64       `json:"id"`
	TimeEvents []TimeEvent `json:"timeEvents"`
}

type TimeEvent struct {
	Date string        `json:"date"`
	Type TimeEventType `json:"type"`
}

// ScheduleByID returns the working schedule with the given id, or nil.
func (e Exchange) ScheduleByID(id int64) *WorkingSchedule {
	for i := range e.WorkingSchedules {
		if e.WorkingSchedules[i].ID == id {
			return &e.WorkingSchedules[i]
		}
	}
	return nil
}

func (i *Instrument) Check() error {
	if i.Ticker == "" {
		return invalid("ticker", "missing from instrument")
	}
	return nil
}
