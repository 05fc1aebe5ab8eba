package sharepoint

// RegionalSettings describes the SP.RegionalSettings object of a web
type RegionalSettings struct {
	AdjustHijriDays       int    `json:"AdjustHijriDays"`
	AlternateCalendarType int    `json:"AlternateCalendarType"`
	AM                    string `json:"AM"`
	CalendarType          int    `json:"CalendarType"`
	Collation             int    `json:"Collation"`
	CollationLCID         int    `json:"CollationLCID"`
	DateFormat            int    `json:"DateFormat"`
	DateSeparator         string `json:"DateSeparator"`
	DecimalSeparator      string `json:"DecimalSeparator"`
	DigitGrouping         string `json:"DigitGrouping"`
	FirstDayOfWeek        int    `json:"FirstDayOfWeek"`
	FirstWeekOfYear       int    `json:"FirstWeekOfYear"`
	IsEastAsia            bool   `json:"IsEastAsia"`
	IsRightToLeft         bool   `json:"IsRightToLeft"`
	IsUIRightToLeft       bool   `json:"IsUIRightToLeft"`
	ListSeparator         string `json:"ListSeparator"`
	LocaleID              int    `json:"LocaleId"`
	NegativeSign          string `json:"NegativeSign"`
	NegNumberMode         int    `json:"NegNumberMode"`
	PM                    string `json:"PM"`
	PositiveSign          string `json:"PositiveSign"`
	ShowWeeks             bool   `json:"ShowWeeks"`
	ThousandSeparator     string `json:"ThousandSeparator"`
	Time24                bool   `json:"Time24"`
	TimeMarkerPosition    int    `json:"TimeMarkerPosition"`
	TimeSeparator         string `json:"TimeSeparator"`
	WorkDayEndHour        int    `json:"WorkDayEndHour"`
	WorkDays              int    `json:"WorkDays"`
	WorkDayStartHour      int    `json:"WorkDayStartHour"`
}

// TimeZoneInformation holds the bias values (in minutes) of a time zone
type TimeZoneInformation struct {
	Bias         int `json:"Bias"`
	DaylightBias int `json:"DaylightBias"`
	StandardBias int `json:"StandardBias"`
}

// TimeZone describes an SP.TimeZone
type TimeZone struct {
	ID          int                 `json:"Id"`
	Description string              `json:"Description"`
	Information TimeZoneInformation `json:"Information"`
}

// Language is an installed UI language of the farm/tenant
type Language struct {
	DisplayName string `json:"DisplayName"`
	LanguageTag string `json:"LanguageTag"`
	LCID        int    `json:"Lcid"`
}
