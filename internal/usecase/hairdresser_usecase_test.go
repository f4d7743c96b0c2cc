package usecase

import (
	"bytes"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hairconnect/internal/domain/entity"
	"hairconnect/internal/domain/repository"
	"hairconnect/pkg/errors"
)

const testLinkSecret = "link-secret"

func newHairdresserUseCase(t *testing.T, repo repository.HairdresserRepository, uploader *fakeUploader) *HairdresserUseCase {
	t.Helper()
	if uploader == nil {
		return NewHairdresserUseCase(repo, newLocations(t), nil, testLinkSecret, 30*time.Minute)
	}
	return NewHairdresserUseCase(repo, newLocations(t), uploader, testLinkSecret, 30*time.Minute)
}

func paidProfileDoc(owner string) map[string]interface{} {
	return map[string]interface{}{
		"fullName":    "Wanjiku",
		"firebaseUid": owner,
		"isPaid":      true,
		"views":       int64(0),
	}
}

func viewsOf(t *testing.T, repo repository.HairdresserRepository, id string) int64 {
	t.Helper()
	h, err := repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	return h.Views
}

func TestRecordViewCountsSessionOnce(t *testing.T) {
	ctx := context.Background()
	repo := newHairdresserRepo(t, map[string]map[string]interface{}{"p1": paidProfileDoc("owner-uid")})
	uc := newHairdresserUseCase(t, repo, nil)

	for i := 0; i < 3; i++ {
		_, err := uc.RecordView(ctx, "p1", "", "s1")
		require.NoError(t, err)
	}
	assert.Equal(t, int64(1), viewsOf(t, repo, "p1"))

	for i := 0; i < 4; i++ {
		counted, err := uc.RecordView(ctx, "p1", "", fmt.Sprintf("session-%d", i))
		require.NoError(t, err)
		assert.True(t, counted)
	}
	assert.Equal(t, int64(5), viewsOf(t, repo, "p1"))
}

func TestRecordViewExcludesOwner(t *testing.T) {
	ctx := context.Background()
	repo := newHairdresserRepo(t, map[string]map[string]interface{}{"p1": paidProfileDoc("owner-uid")})
	uc := newHairdresserUseCase(t, repo, nil)

	for _, sid := range []string{"", "s1", "s2"} {
		counted, err := uc.RecordView(ctx, "p1", "owner-uid", sid)
		require.NoError(t, err)
		assert.False(t, counted)
	}
	assert.Equal(t, int64(0), viewsOf(t, repo, "p1"))
}

func TestRecordViewWithoutSessionAlwaysCounts(t *testing.T) {
	ctx := context.Background()
	repo := newHairdresserRepo(t, map[string]map[string]interface{}{"p1": paidProfileDoc("")})
	uc := newHairdresserUseCase(t, repo, nil)

	for i := 0; i < 3; i++ {
		_, err := uc.RecordView(ctx, "p1", "", "")
		require.NoError(t, err)
	}
	assert.Equal(t, int64(3), viewsOf(t, repo, "p1"))
}

func TestRecordViewSkipsUnpaidAndMissing(t *testing.T) {
	ctx := context.Background()
	doc := paidProfileDoc("")
	doc["isPaid"] = false
	repo := newHairdresserRepo(t, map[string]map[string]interface{}{"p1": doc})
	uc := newHairdresserUseCase(t, repo, nil)

	counted, err := uc.RecordView(ctx, "p1", "", "s1")
	require.NoError(t, err)
	assert.False(t, counted)

	counted, err = uc.RecordView(ctx, "missing", "", "s1")
	require.NoError(t, err)
	assert.False(t, counted)
}

func TestShouldCountView(t *testing.T) {
	h := &entity.Hairdresser{IsPaid: true, FirebaseUID: "owner", ViewSessions: map[string]bool{"seen": true}}

	assert.True(t, ShouldCountView(h, "", "fresh"))
	assert.True(t, ShouldCountView(h, "someone", ""))
	assert.False(t, ShouldCountView(h, "owner", "fresh"))
	assert.False(t, ShouldCountView(h, "", "seen"))
	assert.False(t, ShouldCountView(nil, "", "fresh"))
	assert.False(t, ShouldCountView(&entity.Hairdresser{}, "", "fresh"))
}

func imageUpload(name string) *Upload {
	return &Upload{Filename: name, ContentType: "image/jpeg", Size: 1024, Reader: bytes.NewReader([]byte("jpeg"))}
}

func TestCreateHairdresser(t *testing.T) {
	ctx := context.Background()
	repo := newHairdresserRepo(t, nil)
	uploader := &fakeUploader{}
	uc := newHairdresserUseCase(t, repo, uploader)

	result, err := uc.Create(ctx, CreateHairdresserInput{
		FullName:       " Achieng Otieno ",
		PhoneNumber:    "0712345678",
		MembershipPlan: "vip",
		TownID:         1,
		EstateID:       101,
		SubEstateID:    2,
		Services:       []string{`["Braids","Weaves"]`, "Braids"},
		ProfilePhoto:   imageUpload("me.jpg"),
		ServiceImages:  []*Upload{imageUpload("a.jpg"), imageUpload("b.jpg")},
	})
	require.NoError(t, err)

	h := result.Hairdresser
	assert.NotEmpty(t, h.ID)
	assert.Equal(t, "Achieng Otieno", h.FullName)
	assert.Equal(t, "VIP", h.MembershipPlan)
	assert.False(t, h.IsPaid)
	require.NotNil(t, h.IsVerified)
	assert.False(t, *h.IsVerified)
	assert.True(t, h.IsAdult)
	assert.Equal(t, int64(0), h.Views)
	assert.Equal(t, int64(entity.DefaultRegistrationFee), h.RegistrationFee)
	assert.Equal(t, int64(2000), h.NextPaymentFee)
	assert.Equal(t, entity.PaymentStatusUnpaid, h.PaymentStatus)
	assert.Equal(t, []string{"Braids", "Weaves"}, h.Services)
	require.NotNil(t, h.Verification)
	assert.Equal(t, entity.VerificationPending, h.Verification.Status)
	assert.Equal(t, "Eldoret", h.Town.Name)

	require.NotNil(t, h.ProfilePhoto)
	assert.Len(t, h.ServiceImages, 2)
	assert.Equal(t, []string{FolderProfile, FolderServices, FolderServices}, uploader.folders)

	linked, err := uc.ParseLinkToken(result.LinkToken)
	require.NoError(t, err)
	assert.Equal(t, h.ID, linked)

	stored, err := repo.GetByID(ctx, h.ID)
	require.NoError(t, err)
	assert.Equal(t, "VIP", stored.MembershipPlan)
	assert.False(t, stored.IsPaid)
}

func TestCreateHairdresserRejectsBadImages(t *testing.T) {
	uc := newHairdresserUseCase(t, newHairdresserRepo(t, nil), &fakeUploader{})

	t.Run("non-image", func(t *testing.T) {
		doc := &Upload{Filename: "x.pdf", ContentType: "application/pdf", Size: 10}
		_, err := uc.Create(context.Background(), CreateHairdresserInput{FullName: "x", ProfilePhoto: doc})
		assert.Equal(t, 400, errors.StatusOf(err))
	})

	t.Run("too large", func(t *testing.T) {
		big := imageUpload("big.jpg")
		big.Size = MaxImageSize + 1
		_, err := uc.Create(context.Background(), CreateHairdresserInput{FullName: "x", ServiceImages: []*Upload{big}})
		assert.Equal(t, 400, errors.StatusOf(err))
	})

	t.Run("too many", func(t *testing.T) {
		images := make([]*Upload, MaxServiceImages+1)
		for i := range images {
			images[i] = imageUpload("x.jpg")
		}
		_, err := uc.Create(context.Background(), CreateHairdresserInput{FullName: "x", ServiceImages: images})
		assert.Equal(t, 400, errors.StatusOf(err))
	})
}

func TestCreateHairdresserWithoutStorage(t *testing.T) {
	uc := newHairdresserUseCase(t, newHairdresserRepo(t, nil), nil)

	_, err := uc.Create(context.Background(), CreateHairdresserInput{FullName: "x", ProfilePhoto: imageUpload("me.jpg")})
	assert.Equal(t, 500, errors.StatusOf(err))

	result, err := uc.Create(context.Background(), CreateHairdresserInput{FullName: "y", MembershipPlan: ""})
	require.NoError(t, err)
	assert.Equal(t, string(entity.PlanRegular), result.Hairdresser.MembershipPlan)
}

func TestGetByIDFallsBackToUID(t *testing.T) {
	repo := newHairdresserRepo(t, map[string]map[string]interface{}{"doc-1": paidProfileDoc("uid-1")})
	uc := newHairdresserUseCase(t, repo, nil)

	h, err := uc.GetByID(context.Background(), "uid-1")
	require.NoError(t, err)
	assert.Equal(t, "doc-1", h.ID)

	_, err = uc.GetByID(context.Background(), "nobody")
	assert.True(t, errors.Is(err, "NOT_FOUND"))
}

func TestLinkAuth(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*HairdresserUseCase, repository.HairdresserRepository, string) {
		repo := newHairdresserRepo(t, map[string]map[string]interface{}{
			"p1":    {"fullName": "New"},
			"taken": {"fullName": "Other", "firebaseUid": "uid-other"},
		})
		uc := newHairdresserUseCase(t, repo, nil)
		token, err := uc.IssueLinkToken("p1")
		require.NoError(t, err)
		return uc, repo, token
	}

	t.Run("links the verified uid", func(t *testing.T) {
		uc, repo, token := setup(t)
		h, err := uc.LinkAuth(ctx, "p1", "uid-1", LinkAuthInput{FirebaseUID: "uid-1", LinkToken: token})
		require.NoError(t, err)
		assert.Equal(t, "uid-1", h.FirebaseUID)

		stored, err := repo.GetByFirebaseUID(ctx, "uid-1")
		require.NoError(t, err)
		assert.Equal(t, "p1", stored.ID)

		again, err := uc.LinkAuth(ctx, "p1", "uid-1", LinkAuthInput{FirebaseUID: "uid-1", LinkToken: token})
		require.NoError(t, err)
		assert.Equal(t, "uid-1", again.FirebaseUID)
	})

	t.Run("uid mismatch is forbidden", func(t *testing.T) {
		uc, _, token := setup(t)
		_, err := uc.LinkAuth(ctx, "p1", "uid-1", LinkAuthInput{FirebaseUID: "uid-2", LinkToken: token})
		assert.Equal(t, 403, errors.StatusOf(err))
	})

	t.Run("token for another profile is rejected", func(t *testing.T) {
		uc, _, _ := setup(t)
		other, err := uc.IssueLinkToken("taken")
		require.NoError(t, err)
		_, err = uc.LinkAuth(ctx, "p1", "uid-1", LinkAuthInput{FirebaseUID: "uid-1", LinkToken: other})
		assert.Equal(t, 401, errors.StatusOf(err))
	})

	t.Run("garbage token is rejected", func(t *testing.T) {
		uc, _, _ := setup(t)
		_, err := uc.LinkAuth(ctx, "p1", "uid-1", LinkAuthInput{FirebaseUID: "uid-1", LinkToken: "nope"})
		assert.Equal(t, 401, errors.StatusOf(err))
	})

	t.Run("expired token is rejected", func(t *testing.T) {
		repo := newHairdresserRepo(t, map[string]map[string]interface{}{"p1": {"fullName": "New"}})
		uc := NewHairdresserUseCase(repo, newLocations(t), nil, testLinkSecret, -time.Minute)
		token, err := uc.IssueLinkToken("p1")
		require.NoError(t, err)
		_, err = uc.LinkAuth(ctx, "p1", "uid-1", LinkAuthInput{FirebaseUID: "uid-1", LinkToken: token})
		assert.Equal(t, 401, errors.StatusOf(err))
	})

	t.Run("profile linked elsewhere conflicts", func(t *testing.T) {
		uc, _, _ := setup(t)
		token, err := uc.IssueLinkToken("taken")
		require.NoError(t, err)
		_, err = uc.LinkAuth(ctx, "taken", "uid-1", LinkAuthInput{FirebaseUID: "uid-1", LinkToken: token})
		assert.Equal(t, 409, errors.StatusOf(err))
	})

	t.Run("uid already owning a profile conflicts", func(t *testing.T) {
		uc, _, token := setup(t)
		_, err := uc.LinkAuth(ctx, "p1", "uid-other", LinkAuthInput{FirebaseUID: "uid-other", LinkToken: token})
		assert.Equal(t, 409, errors.StatusOf(err))
	})
}
