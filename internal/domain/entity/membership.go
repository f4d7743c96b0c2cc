package entity

import (
	"strings"
	"time"
)

type MembershipPlan string

const (
	PlanVIP     MembershipPlan = "VIP"
	PlanPrime   MembershipPlan = "PRIME"
	PlanRegular MembershipPlan = "REGULAR"
)

// ParsePlan normalizes a stored plan. Unknown and empty values read as PRIME.
func ParsePlan(raw string) MembershipPlan {
	switch MembershipPlan(strings.ToUpper(strings.TrimSpace(raw))) {
	case PlanVIP:
		return PlanVIP
	case PlanRegular:
		return PlanRegular
	default:
		return PlanPrime
	}
}

// Rank orders tiers for listing: lower ranks first.
func (p MembershipPlan) Rank() int {
	switch p {
	case PlanVIP:
		return 1
	case PlanRegular:
		return 3
	default:
		return 2
	}
}

// Fee is the membership fee in KES. Registration and payment verification
// both read it from here.
func (p MembershipPlan) Fee() int64 {
	switch p {
	case PlanVIP:
		return 2000
	case PlanRegular:
		return 1000
	default:
		return 1500
	}
}

// MinorUnitFee is Fee in the gateway's minor unit (cents).
func (p MembershipPlan) MinorUnitFee() int64 {
	return p.Fee() * 100
}

// AddOneMonth moves t forward one calendar month, clamping the day to the end
// of the target month (Jan 31 -> Feb 28/29).
func AddOneMonth(t time.Time) time.Time {
	year, month, day := t.Date()
	firstOfTarget := time.Date(year, month+1, 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	lastDay := firstOfTarget.AddDate(0, 1, -1).Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}
