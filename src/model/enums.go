package model

// Enumerated API values are plain string types. Every enumeration carries an
// explicit Unknown variant (the empty string) and values the server adds later
// decode without error and are kept verbatim, so a decode/encode round trip
// never loses them. IsKnown reports whether the value is one we model.

func isOneOf[T ~string](v T, known []T) bool {
	for _, k := range known {
		if v == k {
			return true
		}
	}
	return false
}

// OrderStatus is the lifecycle state reported by the broker. The client never
// enforces transitions, it only reports what the server sends.
type OrderStatus string

const (
	OrderStatusUnknown         OrderStatus = ""
	OrderStatusLocal           OrderStatus = "LOCAL"
	OrderStatusUnconfirmed     OrderStatus = "UNCONFIRMED"
	OrderStatusConfirmed       OrderStatus = "CONFIRMED"
	OrderStatusNew             OrderStatus = "NEW"
	OrderStatusCancelling      OrderStatus = "CANCELLING"
	OrderStatusCancelled       OrderStatus = "CANCELLED"
	OrderStatusPartiallyFilled OrderStatus = "PARTIALLY_FILLED"
	OrderStatusFilled          OrderStatus = "FILLED"
	OrderStatusRejected        OrderStatus = "REJECTED"
	OrderStatusReplacing       OrderStatus = "REPLACING"
	OrderStatusReplaced        OrderStatus = "REPLACED"
)

var orderStatuses = []OrderStatus{
	OrderStatusLocal, OrderStatusUnconfirmed, OrderStatusConfirmed, OrderStatusNew,
	OrderStatusCancelling, OrderStatusCancelled, OrderStatusPartiallyFilled,
	OrderStatusFilled, OrderStatusRejected, OrderStatusReplacing, OrderStatusReplaced,
}

func (s OrderStatus) IsKnown() bool { return isOneOf(s, orderStatuses) }

// IsTerminal reports whether no further status change is expected.
func (s OrderStatus) IsTerminal() bool {
	switch s {
	case OrderStatusFilled, OrderStatusCancelled, OrderStatusRejected, OrderStatusReplaced:
		return true
	default:
		return false
	}
}

type OrderType string

const (
	OrderTypeUnknown   OrderType = ""
	OrderTypeMarket    OrderType = "MARKET"
	OrderTypeLimit     OrderType = "LIMIT"
	OrderTypeStop      OrderType = "STOP"
	OrderTypeStopLimit OrderType = "STOP_LIMIT"
)

func (t OrderType) IsKnown() bool {
	return isOneOf(t, []OrderType{OrderTypeMarket, OrderTypeLimit, OrderTypeStop, OrderTypeStopLimit})
}

type TimeValidity string

const (
	TimeValidityUnknown        TimeValidity = ""
	TimeValidityDay            TimeValidity = "DAY"
	TimeValidityGoodTillCancel TimeValidity = "GOOD_TILL_CANCEL"
)

func (v TimeValidity) IsKnown() bool {
	return isOneOf(v, []TimeValidity{TimeValidityDay, TimeValidityGoodTillCancel})
}

type PieIcon string

const (
	PieIconUnknown       PieIcon = ""
	PieIconHome          PieIcon = "Home"
	PieIconPiggyBank     PieIcon = "PiggyBank"
	PieIconIceberg       PieIcon = "Iceberg"
	PieIconAirplane      PieIcon = "Airplane"
	PieIconRV            PieIcon = "RV"
	PieIconUnicorn       PieIcon = "Unicorn"
	PieIconWhale         PieIcon = "Whale"
	PieIconConvertible   PieIcon = "Convertible"
	PieIconFamily        PieIcon = "Family"
	PieIconCoins         PieIcon = "Coins"
	PieIconEducation     PieIcon = "Education"
	PieIconBillsAndCoins PieIcon = "BillsAndCoins"
	PieIconBills         PieIcon = "Bills"
	PieIconWater         PieIcon = "Water"
	PieIconWind          PieIcon = "Wind"
	PieIconCar           PieIcon = "Car"
	PieIconBriefcase     PieIcon = "Briefcase"
	PieIconMedical       PieIcon = "Medical"
	PieIconLandscape     PieIcon = "Landscape"
	PieIconChild         PieIcon = "Child"
	PieIconVault         PieIcon = "Vault"
	PieIconTravel        PieIcon = "Travel"
	PieIconCabin         PieIcon = "Cabin"
	PieIconApartments    PieIcon = "Apartments"
	PieIconBurger        PieIcon = "Burger"
	PieIconBus           PieIcon = "Bus"
	PieIconEnergy        PieIcon = "Energy"
	PieIconFactory       PieIcon = "Factory"
	PieIconGlobal        PieIcon = "Global"
	PieIconLeaf          PieIcon = "Leaf"
	PieIconMaterials     PieIcon = "Materials"
	PieIconPill          PieIcon = "Pill"
	PieIconRing          PieIcon = "Ring"
	PieIconShipping      PieIcon = "Shipping"
	PieIconStorefront    PieIcon = "Storefront"
	PieIconTech          PieIcon = "Tech"
	PieIconUmbrella      PieIcon = "Umbrella"
)

var pieIcons = []PieIcon{
	PieIconHome, PieIconPiggyBank, PieIconIceberg, PieIconAirplane, PieIconRV,
	PieIconUnicorn, PieIconWhale, PieIconConvertible, PieIconFamily, PieIconCoins,
	PieIconEducation, PieIconBillsAndCoins, PieIconBills, PieIconWater, PieIconWind,
	PieIconCar, PieIconBriefcase, PieIconMedical, PieIconLandscape, PieIconChild,
	PieIconVault, PieIconTravel, PieIconCabin, PieIconApartments, PieIconBurger,
	PieIconBus, PieIconEnergy, PieIconFactory, PieIconGlobal, PieIconLeaf,
	PieIconMaterials, PieIconPill, PieIconRing, PieIconShipping, PieIconStorefront,
	PieIconTech, PieIconUmbrella,
}

func (i PieIcon) IsKnown() bool { return isOneOf(i, pieIcons) }

type PieIssueName string

const (
	PieIssueNameUnknown                      PieIssueName = ""
	PieIssueDelisted                         PieIssueName = "DELISTED"
	PieIssueSuspended                        PieIssueName = "SUSPENDED"
	PieIssueNoLongerTradable                 PieIssueName = "NO_LONGER_TRADABLE"
	PieIssueMaxPositionSizeReached           PieIssueName = "MAX_POSITION_SIZE_REACHED"
	PieIssueApproachingMaxPositionSize       PieIssueName = "APPROACHING_MAX_POSITION_SIZE"
	PieIssueComplexInstrumentAppTestRequired PieIssueName = "COMPLEX_INSTRUMENT_APP_TEST_REQUIRED"
)

func (n PieIssueName) IsKnown() bool {
	return isOneOf(n, []PieIssueName{
		PieIssueDelisted, PieIssueSuspended, PieIssueNoLongerTradable,
		PieIssueMaxPositionSizeReached, PieIssueApproachingMaxPositionSize,
		PieIssueComplexInstrumentAppTestRequired,
	})
}

type PieIssueSeverity string

const (
	PieIssueSeverityUnknown      PieIssueSeverity = ""
	PieIssueSeverityIrreversible PieIssueSeverity = "IRREVERSIBLE"
	PieIssueSeverityReversible   PieIssueSeverity = "REVERSIBLE"
	PieIssueSeverityInformative  PieIssueSeverity = "INFORMATIVE"
)

func (s PieIssueSeverity) IsKnown() bool {
	return isOneOf(s, []PieIssueSeverity{PieIssueSeverityIrreversible, PieIssueSeverityReversible, PieIssueSeverityInformative})
}

// DividendCashAction decides what a pie does with received dividends. Older
// accounts report REINVESTED, current ones REINVEST; both are known.
type DividendCashAction string

const (
	DividendCashActionUnknown       DividendCashAction = ""
	DividendCashActionReinvest      DividendCashAction = "REINVEST"
	DividendCashActionReinvested    DividendCashAction = "REINVESTED"
	DividendCashActionToAccountCash DividendCashAction = "TO_ACCOUNT_CASH"
)

func (a DividendCashAction) IsKnown() bool {
	return isOneOf(a, []DividendCashAction{DividendCashActionReinvest, DividendCashActionReinvested, DividendCashActionToAccountCash})
}

// PieStatus is the progress of a pie against its goal.
type PieStatus string

const (
	PieStatusUnknown PieStatus = ""
	PieStatusAhead   PieStatus = "AHEAD"
	PieStatusOnTrack PieStatus = "ON_TRACK"
	PieStatusBehind  PieStatus = "BEHIND"
)

func (s PieStatus) IsKnown() bool {
	return isOneOf(s, []PieStatus{PieStatusAhead, PieStatusOnTrack, PieStatusBehind})
}

type TransactionType string

const (
	TransactionTypeUnknown  TransactionType = ""
	TransactionTypeWithdraw TransactionType = "WITHDRAW"
	TransactionTypeDeposit  TransactionType = "DEPOSIT"
	TransactionTypeFee      TransactionType = "FEE"
	TransactionTypeTransfer TransactionType = "TRANSFER"
)

func (t TransactionType) IsKnown() bool {
	return isOneOf(t, []TransactionType{TransactionTypeWithdraw, TransactionTypeDeposit, TransactionTypeFee, TransactionTypeTransfer})
}

type ExportStatus string

const (
	ExportStatusUnknown    ExportStatus = ""
	ExportStatusQueued     ExportStatus = "Queued"
	ExportStatusProcessing ExportStatus = "Processing"
	ExportStatusRunning    ExportStatus = "Running"
	ExportStatusCanceled   ExportStatus = "Canceled"
	ExportStatusFailed     ExportStatus = "Failed"
	ExportStatusFinished   ExportStatus = "Finished"
)

func (s ExportStatus) IsKnown() bool {
	return isOneOf(s, []ExportStatus{
		ExportStatusQueued, ExportStatusProcessing, ExportStatusRunning,
		ExportStatusCanceled, ExportStatusFailed, ExportStatusFinished,
	})
}

// IsDone reports whether polling can stop.
func (s ExportStatus) IsDone() bool {
	return s == ExportStatusFinished || s == ExportStatusFailed || s == ExportStatusCanceled
}

type TimeEventType string

const (
	TimeEventUnknown         TimeEventType = ""
	TimeEventOpen            TimeEventType = "OPEN"
	TimeEventClose           TimeEventType = "CLOSE"
	TimeEventBreakStart      TimeEventType = "BREAK_START"
	TimeEventBreakEnd        TimeEventType = "BREAK_END"
	TimeEventPreMarketOpen   TimeEventType = "PRE_MARKET_OPEN"
	TimeEventAfterHoursOpen  TimeEventType = "AFTER_HOURS_OPEN"
	TimeEventAfterHoursClose TimeEventType = "AFTER_HOURS_CLOSE"
	TimeEventOvernightOpen   TimeEventType = "OVERNIGHT_OPEN"
)

func (t TimeEventType) IsKnown() bool {
	return isOneOf(t, []TimeEventType{
		TimeEventOpen, TimeEventClose, TimeEventBreakStart, TimeEventBreakEnd,
		TimeEventPreMarketOpen, TimeEventAfterHoursOpen, TimeEventAfterHoursClose,
		TimeEventOvernightOpen,
	})
}
