package usecase

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hairconnect/internal/domain/entity"
	"hairconnect/pkg/errors"
)

func TestSubmitVerification(t *testing.T) {
	ctx := context.Background()
	repo := newHairdresserRepo(t, map[string]map[string]interface{}{"p1": {"fullName": "Wanjiku"}})
	uploader := &fakeUploader{}
	uc := NewVerificationUseCase(repo, uploader)
	uc.now = func() time.Time { return t1 }

	v, err := uc.Submit(ctx, SubmitVerificationInput{
		HairdresserID: "p1",
		Country:       "Kenya",
		IDType:        "national_id",
		IDNumber:      " 12345678 ",
		IDFront:       &Upload{Filename: "front.jpg", ContentType: "image/jpeg", Size: 10, Reader: bytes.NewReader([]byte("x"))},
		Selfie:        &Upload{Filename: "selfie.png", ContentType: "image/png", Size: 10, Reader: bytes.NewReader([]byte("x"))},
	})
	require.NoError(t, err)

	assert.Equal(t, entity.VerificationPending, v.Status)
	require.NotNil(t, v.IDNumber)
	assert.Equal(t, "12345678", *v.IDNumber)
	assert.NotNil(t, v.IDFront)
	assert.Nil(t, v.IDBack)
	assert.NotNil(t, v.Selfie)
	assert.Equal(t, []string{FolderVerification, FolderVerification}, uploader.folders)

	stored, err := repo.GetByID(ctx, "p1")
	require.NoError(t, err)
	require.NotNil(t, stored.Verification)
	assert.Equal(t, entity.VerificationPending, stored.Verification.Status)
	assert.Equal(t, t1, *stored.Verification.SubmittedAt)
}

func TestSubmitVerificationErrors(t *testing.T) {
	ctx := context.Background()
	repo := newHairdresserRepo(t, map[string]map[string]interface{}{"p1": {"fullName": "Wanjiku"}})
	uploader := &fakeUploader{}
	uc := NewVerificationUseCase(repo, uploader)

	t.Run("missing profile id", func(t *testing.T) {
		_, err := uc.Submit(ctx, SubmitVerificationInput{})
		assert.Equal(t, 400, errors.StatusOf(err))
	})

	t.Run("non image file", func(t *testing.T) {
		_, err := uc.Submit(ctx, SubmitVerificationInput{
			HairdresserID: "p1",
			IDBack:        &Upload{Filename: "id.pdf", ContentType: "application/pdf", Size: 10, Reader: bytes.NewReader(nil)},
		})
		assert.Equal(t, 400, errors.StatusOf(err))
	})

	t.Run("unknown profile", func(t *testing.T) {
		_, err := uc.Submit(ctx, SubmitVerificationInput{HairdresserID: "missing"})
		assert.Equal(t, 404, errors.StatusOf(err))
	})

	assert.Empty(t, uploader.folders)
}

func TestReviewVerification(t *testing.T) {
	ctx := context.Background()

	for _, tc := range []struct {
		status   string
		verified bool
	}{
		{entity.VerificationApproved, true},
		{entity.VerificationRejected, false},
	} {
		t.Run(tc.status, func(t *testing.T) {
			repo := newHairdresserRepo(t, map[string]map[string]interface{}{"p1": {"fullName": "Wanjiku"}})
			uc := NewVerificationUseCase(repo, nil)
			uc.now = func() time.Time { return t1 }

			v, err := uc.Review(ctx, "p1", "admin-uid", ReviewVerificationInput{Status: tc.status, Notes: "checked"})
			require.NoError(t, err)
			assert.Equal(t, tc.status, v.Status)
			assert.Equal(t, "admin-uid", v.ReviewedBy)

			stored, err := repo.GetByID(ctx, "p1")
			require.NoError(t, err)
			require.NotNil(t, stored.IsVerified)
			assert.Equal(t, tc.verified, *stored.IsVerified)
			assert.Equal(t, tc.status, stored.Verification.Status)
			assert.Equal(t, "checked", stored.Verification.Notes)
		})
	}

	t.Run("invalid status", func(t *testing.T) {
		repo := newHairdresserRepo(t, map[string]map[string]interface{}{"p1": {}})
		uc := NewVerificationUseCase(repo, nil)
		_, err := uc.Review(ctx, "p1", "admin-uid", ReviewVerificationInput{Status: entity.VerificationPending})
		assert.Equal(t, 400, errors.StatusOf(err))
	})
}
