package domain

import (
	"slices"
	"time"
)

type Member struct {
	ID                    int64     `json:"id"`
	FirstName             string    `json:"firstName"`
	LastName              string    `json:"lastName"`
	HasSubmittedForm      bool      `json:"hasSubmittedForm"`
	ExcludeFromScheduling bool      `json:"excludeFromScheduling"`
	AvailableDutyIDs      []int64   `json:"availableDutyIDs"`
	CreatedAt             time.Time `json:"createdAt"`
	Version               int32     `json:"-"`
}

func (m *Member) FullName() string {
	return m.FirstName + " " + m.LastName
}

func (m *Member) IsAvailableForDuty(dutyTypeID int64) bool {
	return slices.Contains(m.AvailableDutyIDs, dutyTypeID)
}
