package repository

import (
	"strconv"
	"strings"
	"time"

	"hairconnect/internal/domain/entity"
)

// decodeHairdresser maps a raw Firestore document onto a profile, repairing
// fields that older writes stored in other shapes (string dates, string ids,
// double-encoded service tags). It never fails; unusable values are dropped
// to their zero value so one bad record cannot abort a listing.
func decodeHairdresser(id string, data map[string]interface{}) *entity.Hairdresser {
	h := &entity.Hairdresser{
		ID:             id,
		FirebaseUID:    asString(data["firebaseUid"]),
		FullName:       asString(data["fullName"]),
		NickName:       asString(data["nickName"]),
		Age:            asString(data["age"]),
		Gender:         asString(data["gender"]),
		Orientation:    asString(data["orientation"]),
		PhoneNumber:    asString(data["phoneNumber"]),
		WhatsappNumber: asString(data["whatsappNumber"]),
		Email:          asString(data["email"]),
		IsAdult:        asBool(data["isAdult"]),
		MembershipPlan: asString(data["membershipPlan"]),

		TownID:      asInt(data["townId"]),
		EstateID:    asInt(data["estateId"]),
		SubEstateID: asInt(data["subEstateId"]),

		Services:      entity.NormalizeServices(data["services"]),
		ProfilePhoto:  asStringPtr(data["profilePhoto"]),
		ServiceImages: asStringSlice(data["serviceImages"]),

		IsPaid:     asBool(data["isPaid"]),
		IsVerified: asBoolPtr(data["isVerified"]),
		Views:      int64(asInt(data["views"])),

		PaymentStatus:    asString(data["paymentStatus"]),
		PaymentReference: asString(data["paymentReference"]),
		PaymentDate:      asTime(data["paymentDate"]),
		NextPaymentDate:  asTime(data["nextPaymentDate"]),
		NextPaymentFee:   int64(asInt(data["nextPaymentFee"])),
		RegistrationFee:  int64(asInt(data["registrationFee"])),

		CreatedAt: asTime(data["createdAt"]),
		UpdatedAt: asTime(data["updatedAt"]),
	}

	if sessions, ok := data["viewSessions"].(map[string]interface{}); ok {
		h.ViewSessions = make(map[string]bool, len(sessions))
		for sid, v := range sessions {
			if asBool(v) {
				h.ViewSessions[sid] = true
			}
		}
	}

	switch v := data["verification"].(type) {
	case *entity.Verification:
		if v != nil {
			copied := *v
			h.Verification = &copied
		}
	case map[string]interface{}:
		h.Verification = &entity.Verification{
			Country:     asStringPtr(v["country"]),
			IDType:      asStringPtr(v["idType"]),
			IDNumber:    asStringPtr(v["idNumber"]),
			IDFront:     asStringPtr(v["idFront"]),
			IDBack:      asStringPtr(v["idBack"]),
			Selfie:      asStringPtr(v["selfie"]),
			Status:      asString(v["status"]),
			SubmittedAt: asTime(v["submittedAt"]),
			ReviewedAt:  asTime(v["reviewedAt"]),
			ReviewedBy:  asString(v["reviewedBy"]),
			Notes:       asString(v["notes"]),
		}
	}

	if h.PaymentStatus == "" {
		if h.IsPaid {
			h.PaymentStatus = entity.PaymentStatusPaid
		} else {
			h.PaymentStatus = entity.PaymentStatusUnpaid
		}
	}

	return h
}

func asString(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case *string:
		if t != nil {
			return *t
		}
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	}
	return ""
}

func asStringPtr(v interface{}) *string {
	s := asString(v)
	if s == "" {
		return nil
	}
	return &s
}

func asInt(v interface{}) int {
	switch t := v.(type) {
	case int64:
		return int(t)
	case int:
		return t
	case int32:
		return int(t)
	case float64:
		return int(t)
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(t))
		if err == nil {
			return n
		}
	}
	return 0
}

func asBool(v interface{}) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return t == "true"
	}
	return false
}

func asBoolPtr(v interface{}) *bool {
	switch t := v.(type) {
	case *bool:
		if t == nil {
			return nil
		}
		b := *t
		return &b
	case bool, string:
		b := asBool(t)
		return &b
	}
	return nil
}

func asStringSlice(v interface{}) []string {
	out := make([]string, 0)
	switch t := v.(type) {
	case []interface{}:
		for _, item := range t {
			if s, ok := item.(string); ok && s != "" {
				out = append(out, s)
			}
		}
	case []string:
		out = append(out, t...)
	}
	return out
}

// asTime accepts Firestore timestamps, RFC3339 strings and epoch millis.
func asTime(v interface{}) *time.Time {
	var t time.Time
	switch raw := v.(type) {
	case time.Time:
		t = raw
	case *time.Time:
		if raw == nil {
			return nil
		}
		t = *raw
	case string:
		parsed, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return nil
		}
		t = parsed
	case int64:
		t = time.UnixMilli(raw)
	case float64:
		t = time.UnixMilli(int64(raw))
	default:
		return nil
	}
	if t.IsZero() {
		return nil
	}
	return &t
}

// encodeHairdresser is the inverse of decodeHairdresser for backends that keep
// raw documents.
func encodeHairdresser(h *entity.Hairdresser) map[string]interface{} {
	doc := map[string]interface{}{
		"firebaseUid":      h.FirebaseUID,
		"fullName":         h.FullName,
		"nickName":         h.NickName,
		"age":              h.Age,
		"gender":           h.Gender,
		"orientation":      h.Orientation,
		"phoneNumber":      h.PhoneNumber,
		"whatsappNumber":   h.WhatsappNumber,
		"email":            h.Email,
		"isAdult":          h.IsAdult,
		"membershipPlan":   h.MembershipPlan,
		"townId":           int64(h.TownID),
		"estateId":         int64(h.EstateID),
		"subEstateId":      int64(h.SubEstateID),
		"services":         append([]string(nil), h.Services...),
		"profilePhoto":     h.ProfilePhoto,
		"serviceImages":    append([]string(nil), h.ServiceImages...),
		"isPaid":           h.IsPaid,
		"views":            h.Views,
		"paymentStatus":    h.PaymentStatus,
		"paymentReference": h.PaymentReference,
		"paymentDate":      h.PaymentDate,
		"nextPaymentDate":  h.NextPaymentDate,
		"nextPaymentFee":   h.NextPaymentFee,
		"registrationFee":  h.RegistrationFee,
		"createdAt":        h.CreatedAt,
		"updatedAt":        h.UpdatedAt,
	}
	if h.IsVerified != nil {
		doc["isVerified"] = *h.IsVerified
	}
	if h.Verification != nil {
		doc["verification"] = h.Verification
	}
	if len(h.ViewSessions) > 0 {
		sessions := make(map[string]interface{}, len(h.ViewSessions))
		for sid, seen := range h.ViewSessions {
			sessions[sid] = seen
		}
		doc["viewSessions"] = sessions
	}
	return doc
}
