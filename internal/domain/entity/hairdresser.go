package entity

import "time"

// Payment lifecycle of a profile. PAID is terminal.
const (
	PaymentStatusUnpaid    = "UNPAID"
	PaymentStatusInitiated = "INITIATED"
	PaymentStatusPaid      = "PAID"
)

const DefaultRegistrationFee = 500

type Hairdresser struct {
	ID          string `json:"id" firestore:"-"`
	FirebaseUID string `json:"firebaseUid,omitempty" firestore:"firebaseUid,omitempty"`

	FullName       string `json:"fullName" firestore:"fullName"`
	NickName       string `json:"nickName,omitempty" firestore:"nickName,omitempty"`
	Age            string `json:"age,omitempty" firestore:"age,omitempty"`
	Gender         string `json:"gender,omitempty" firestore:"gender,omitempty"`
	Orientation    string `json:"orientation,omitempty" firestore:"orientation,omitempty"`
	PhoneNumber    string `json:"phoneNumber" firestore:"phoneNumber"`
	WhatsappNumber string `json:"whatsappNumber,omitempty" firestore:"whatsappNumber,omitempty"`
	Email          string `json:"email,omitempty" firestore:"email,omitempty"`
	IsAdult        bool   `json:"isAdult" firestore:"isAdult"`

	// MembershipPlan is stored as written; use Plan() for ranking and fees.
	MembershipPlan string `json:"membershipPlan" firestore:"membershipPlan"`

	TownID      int `json:"townId" firestore:"townId"`
	EstateID    int `json:"estateId" firestore:"estateId"`
	SubEstateID int `json:"subEstateId" firestore:"subEstateId"`

	Services      []string `json:"services" firestore:"services"`
	ProfilePhoto  *string  `json:"profilePhoto" firestore:"profilePhoto"`
	ServiceImages []string `json:"serviceImages" firestore:"serviceImages"`

	IsPaid       bool            `json:"isPaid" firestore:"isPaid"`
	IsVerified   *bool           `json:"isVerified,omitempty" firestore:"isVerified,omitempty"`
	Views        int64           `json:"views" firestore:"views"`
	ViewSessions map[string]bool `json:"-" firestore:"viewSessions,omitempty"`

	PaymentStatus    string     `json:"paymentStatus,omitempty" firestore:"paymentStatus,omitempty"`
	PaymentReference string     `json:"paymentReference,omitempty" firestore:"paymentReference,omitempty"`
	PaymentDate      *time.Time `json:"paymentDate,omitempty" firestore:"paymentDate,omitempty"`
	NextPaymentDate  *time.Time `json:"nextPaymentDate,omitempty" firestore:"nextPaymentDate,omitempty"`
	NextPaymentFee   int64      `json:"nextPaymentFee" firestore:"nextPaymentFee"`
	RegistrationFee  int64      `json:"registrationFee" firestore:"registrationFee"`

	Verification *Verification `json:"verification,omitempty" firestore:"verification,omitempty"`

	CreatedAt *time.Time `json:"createdAt,omitempty" firestore:"createdAt,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty" firestore:"updatedAt,omitempty"`
}

func (h *Hairdresser) Plan() MembershipPlan {
	return ParsePlan(h.MembershipPlan)
}

// Listable reports base eligibility for the public listing: paid, and either
// verified or a legacy record that predates verification.
func (h *Hairdresser) Listable() bool {
	if !h.IsPaid {
		return false
	}
	return h.IsVerified == nil || *h.IsVerified
}

func (h *Hairdresser) DisplayName() string {
	if h.NickName != "" {
		return h.NickName
	}
	return h.FullName
}

// HairdresserWithLocation is the read model returned by the API.
type HairdresserWithLocation struct {
	*Hairdresser
	Town      Town      `json:"town"`
	Estate    Estate    `json:"estate"`
	SubEstate SubEstate `json:"subEstate"`
}
