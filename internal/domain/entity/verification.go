package entity

import "time"

const (
	VerificationPending  = "pending"
	VerificationApproved = "approved"
	VerificationRejected = "rejected"
)

type Verification struct {
	Country     *string    `json:"country" firestore:"country"`
	IDType      *string    `json:"idType" firestore:"idType"`
	IDNumber    *string    `json:"idNumber" firestore:"idNumber"`
	IDFront     *string    `json:"idFront" firestore:"idFront"`
	IDBack      *string    `json:"idBack" firestore:"idBack"`
	Selfie      *string    `json:"selfie" firestore:"selfie"`
	Status      string     `json:"status" firestore:"status"`
	SubmittedAt *time.Time `json:"submittedAt" firestore:"submittedAt"`
	ReviewedAt  *time.Time `json:"reviewedAt,omitempty" firestore:"reviewedAt,omitempty"`
	ReviewedBy  string     `json:"reviewedBy,omitempty" firestore:"reviewedBy,omitempty"`
	Notes       string     `json:"notes,omitempty" firestore:"notes,omitempty"`
}

// PendingVerification is the record every new profile starts with.
func PendingVerification() *Verification {
	return &Verification{Status: VerificationPending}
}
