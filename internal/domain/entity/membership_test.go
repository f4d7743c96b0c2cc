package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParsePlan(t *testing.T) {
	assert.Equal(t, PlanVIP, ParsePlan("vip"))
	assert.Equal(t, PlanRegular, ParsePlan(" Regular "))
	assert.Equal(t, PlanPrime, ParsePlan("PRIME"))
	assert.Equal(t, PlanPrime, ParsePlan(""))
	assert.Equal(t, PlanPrime, ParsePlan("gold"))
}

func TestPlanRankAndFee(t *testing.T) {
	assert.Less(t, PlanVIP.Rank(), PlanPrime.Rank())
	assert.Less(t, PlanPrime.Rank(), PlanRegular.Rank())

	assert.Equal(t, int64(2000), PlanVIP.Fee())
	assert.Equal(t, int64(1500), PlanPrime.Fee())
	assert.Equal(t, int64(1000), PlanRegular.Fee())
	assert.Equal(t, int64(150000), PlanPrime.MinorUnitFee())
}

func TestAddOneMonth(t *testing.T) {
	cases := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{"mid month", date(2024, time.March, 15), date(2024, time.April, 15)},
		{"clamps to leap february", date(2024, time.January, 31), date(2024, time.February, 29)},
		{"clamps to february", date(2023, time.January, 31), date(2023, time.February, 28)},
		{"clamps to thirty days", date(2024, time.March, 31), date(2024, time.April, 30)},
		{"rolls the year", date(2024, time.December, 31), date(2025, time.January, 31)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, AddOneMonth(tc.in))
		})
	}
}

func TestAddOneMonthKeepsClock(t *testing.T) {
	in := time.Date(2024, time.May, 10, 13, 45, 7, 0, time.UTC)
	assert.Equal(t, time.Date(2024, time.June, 10, 13, 45, 7, 0, time.UTC), AddOneMonth(in))
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 9, 30, 0, 0, time.UTC)
}
