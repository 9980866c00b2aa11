package domain

import "time"

type ServiceType string

const (
	ServiceSundayAM  ServiceType = "Sunday_AM"
	ServiceSundayPM  ServiceType = "Sunday_PM"
	ServiceWednesday ServiceType = "Wednesday"
	// ServiceMonthly is the pseudo-service used for monthly duties that
	// carry no morning/evening/Wednesday flag.
	ServiceMonthly ServiceType = "Monthly"
)

type DutyCategory string

const (
	CategoryWorship     DutyCategory = "Worship"
	CategoryAudioVisual DutyCategory = "AudioVisual"
	CategoryHospitality DutyCategory = "Hospitality"
	CategoryFacilities  DutyCategory = "Facilities"
)

type MonthlyDutyFrequency string

const (
	FrequencyStartOfMonth MonthlyDutyFrequency = "StartOfMonth"
	FrequencyEachWeek     MonthlyDutyFrequency = "EachWeek"
	FrequencyEndOfMonth   MonthlyDutyFrequency = "EndOfMonth"
)

type ManualAssignmentType string

const (
	ManualMemberSelection ManualAssignmentType = "MemberSelection"
	ManualTextInput       ManualAssignmentType = "TextInput"
)

type DutyType struct {
	ID                    int64                 `json:"id"`
	Name                  string                `json:"name"`
	Description           string                `json:"description"`
	Category              DutyCategory          `json:"category"`
	IsMorningDuty         bool                  `json:"isMorningDuty"`
	IsEveningDuty         bool                  `json:"isEveningDuty"`
	IsWednesdayDuty       bool                  `json:"isWednesdayDuty"`
	OrderIndexAM          int32                 `json:"orderIndexAM"`
	OrderIndexPM          int32                 `json:"orderIndexPM"`
	OrderIndexWednesday   int32                 `json:"orderIndexWednesday"`
	ExemptFromServiceMax  bool                  `json:"exemptFromServiceMax"`
	ManuallyScheduled     bool                  `json:"manuallyScheduled"`
	ManualAssignmentType  *ManualAssignmentType `json:"manualAssignmentType"`
	IsMonthlyDuty         bool                  `json:"isMonthlyDuty"`
	MonthlyDutyFrequency  *MonthlyDutyFrequency `json:"monthlyDutyFrequency"`
	SkipLastSundayEvening bool                  `json:"skipLastSundayEvening"`
	CreatedAt             time.Time             `json:"createdAt"`
	Version               int32                 `json:"-"`
}

// IsServiceIndependentMonthly reports whether the duty is evaluated against
// the Monthly pseudo-service instead of a concrete service.
func (dt *DutyType) IsServiceIndependentMonthly() bool {
	return dt.IsMonthlyDuty && !dt.IsMorningDuty && !dt.IsEveningDuty && !dt.IsWednesdayDuty
}

func (dt *DutyType) ParticipatesIn(service ServiceType) bool {
	switch service {
	case ServiceSundayAM:
		return dt.IsMorningDuty
	case ServiceSundayPM:
		return dt.IsEveningDuty
	case ServiceWednesday:
		return dt.IsWednesdayDuty
	case ServiceMonthly:
		return dt.IsServiceIndependentMonthly()
	default:
		return false
	}
}

func (dt *DutyType) OrderIndexFor(service ServiceType) int32 {
	switch service {
	case ServiceSundayAM:
		return dt.OrderIndexAM
	case ServiceSundayPM:
		return dt.OrderIndexPM
	case ServiceWednesday:
		return dt.OrderIndexWednesday
	default:
		return 0
	}
}
