package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hairconnect/internal/domain/entity"
)

func TestDecodeHairdresserRepairsLegacyShapes(t *testing.T) {
	paidAt := time.Date(2024, time.March, 5, 10, 0, 0, 0, time.UTC)

	h := decodeHairdresser("p1", map[string]interface{}{
		"fullName":        "Wanjiku",
		"townId":          "1",
		"estateId":        float64(101),
		"subEstateId":     int64(2),
		"services":        []interface{}{`["Braids","Weaves"]`, "Braids"},
		"isPaid":          "true",
		"isVerified":      false,
		"views":           float64(12),
		"paymentDate":     paidAt.UnixMilli(),
		"nextPaymentDate": "2024-04-05T10:00:00Z",
		"createdAt":       paidAt,
		"viewSessions":    map[string]interface{}{"s1": true, "s2": false},
		"verification": map[string]interface{}{
			"status":   "approved",
			"idNumber": "123",
		},
	})

	assert.Equal(t, "p1", h.ID)
	assert.Equal(t, 1, h.TownID)
	assert.Equal(t, 101, h.EstateID)
	assert.Equal(t, 2, h.SubEstateID)
	assert.Equal(t, []string{"Braids", "Weaves"}, h.Services)
	assert.True(t, h.IsPaid)
	require.NotNil(t, h.IsVerified)
	assert.False(t, *h.IsVerified)
	assert.Equal(t, int64(12), h.Views)
	require.NotNil(t, h.PaymentDate)
	assert.True(t, paidAt.Equal(*h.PaymentDate))
	require.NotNil(t, h.NextPaymentDate)
	assert.Equal(t, time.April, h.NextPaymentDate.Month())
	assert.Equal(t, map[string]bool{"s1": true}, h.ViewSessions)
	require.NotNil(t, h.Verification)
	assert.Equal(t, entity.VerificationApproved, h.Verification.Status)
	assert.Equal(t, entity.PaymentStatusPaid, h.PaymentStatus)
}

func TestDecodeHairdresserDegradesBadValues(t *testing.T) {
	h := decodeHairdresser("p2", map[string]interface{}{
		"townId":      "eldoret",
		"services":    42,
		"paymentDate": "yesterday",
		"isVerified":  nil,
	})

	assert.Zero(t, h.TownID)
	assert.Empty(t, h.Services)
	assert.Nil(t, h.PaymentDate)
	assert.Nil(t, h.IsVerified)
	assert.Equal(t, entity.PaymentStatusUnpaid, h.PaymentStatus)
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	now := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)
	verified := true
	photo := "https://cdn.test/p.jpg"
	in := &entity.Hairdresser{
		ID:             "p3",
		FirebaseUID:    "uid-3",
		FullName:       "Amina",
		MembershipPlan: "PRIME",
		TownID:         2,
		Services:       []string{"Locs"},
		ProfilePhoto:   &photo,
		IsPaid:         true,
		IsVerified:     &verified,
		Views:          4,
		ViewSessions:   map[string]bool{"s1": true},
		PaymentStatus:  entity.PaymentStatusPaid,
		CreatedAt:      &now,
		Verification:   entity.PendingVerification(),
	}

	out := decodeHairdresser("p3", encodeHairdresser(in))
	assert.Equal(t, in.FirebaseUID, out.FirebaseUID)
	assert.Equal(t, in.TownID, out.TownID)
	assert.Equal(t, in.Services, out.Services)
	assert.Equal(t, photo, *out.ProfilePhoto)
	assert.Equal(t, in.ViewSessions, out.ViewSessions)
	assert.Equal(t, in.Views, out.Views)
	assert.True(t, *out.IsVerified)
	assert.Equal(t, entity.VerificationPending, out.Verification.Status)
	assert.True(t, now.Equal(*out.CreatedAt))
}
