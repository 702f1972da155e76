package member

import (
	"context"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
)

func TestService_Register(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockRepo := NewMockRepository(ctrl)
	mockLoans := NewMockLoanCounter(ctrl)
	mockFiles := NewMockProfileFiles(ctrl)
	svc := NewService(mockRepo, mockLoans, mockFiles)

	t.Run("success without profile", func(t *testing.T) {
		mockRepo.EXPECT().ExistsByEmail(gomock.Any(), "abc@naver.com").Return(false, nil)
		mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, m *Member) error {
				m.ID = 1
				return nil
			})

		m, err := svc.Register(context.Background(), "Hong Gildong", "abc@naver.com", nil)

		assert.NoError(t, err)
		assert.Equal(t, int64(1), m.ID)
		assert.Empty(t, m.ProfileKey)
	})

	t.Run("success with profile upload", func(t *testing.T) {
		mockRepo.EXPECT().ExistsByEmail(gomock.Any(), "abc@naver.com").Return(false, nil)
		mockFiles.EXPECT().
			Upload(gomock.Any(), "members/profile/", "me.png", "image/png", gomock.Any()).
			Return("members/profile/uuid_me.png", nil)
		mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, m *Member) error {
				assert.Equal(t, "members/profile/uuid_me.png", m.ProfileKey)
				m.ID = 2
				return nil
			})

		m, err := svc.Register(context.Background(), "Hong Gildong", "abc@naver.com", &ProfileUpload{
			Filename:    "me.png",
			ContentType: "image/png",
			Body:        strings.NewReader("png-bytes"),
		})

		assert.NoError(t, err)
		assert.Equal(t, "members/profile/uuid_me.png", m.ProfileKey)
	})

	t.Run("duplicate email", func(t *testing.T) {
		mockRepo.EXPECT().ExistsByEmail(gomock.Any(), "abc@naver.com").Return(true, nil)

		_, err := svc.Register(context.Background(), "Hong Gildong", "abc@naver.com", nil)

		assert.ErrorIs(t, err, ErrDuplicateEmail)
	})

	t.Run("invalid email never reaches the repo", func(t *testing.T) {
		_, err := svc.Register(context.Background(), "Hong Gildong", "bad-email", nil)

		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockRepo := NewMockRepository(ctrl)
	mockLoans := NewMockLoanCounter(ctrl)
	svc := NewService(mockRepo, mockLoans, nil)

	t.Run("success when no active loans", func(t *testing.T) {
		mockRepo.EXPECT().GetByID(gomock.Any(), int64(1)).Return(Member{ID: 1}, nil)
		mockLoans.EXPECT().CountActiveByMember(gomock.Any(), int64(1)).Return(0, nil)
		mockRepo.EXPECT().Delete(gomock.Any(), int64(1)).Return(nil)

		err := svc.Delete(context.Background(), 1)

		assert.NoError(t, err)
	})

	t.Run("blocked while member holds books", func(t *testing.T) {
		mockRepo.EXPECT().GetByID(gomock.Any(), int64(1)).Return(Member{ID: 1}, nil)
		mockLoans.EXPECT().CountActiveByMember(gomock.Any(), int64(1)).Return(2, nil)

		err := svc.Delete(context.Background(), 1)

		assert.ErrorIs(t, err, ErrHasActiveLoans)
	})

	t.Run("unknown member", func(t *testing.T) {
		mockRepo.EXPECT().GetByID(gomock.Any(), int64(9)).Return(Member{}, ErrNotFound)

		err := svc.Delete(context.Background(), 9)

		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestService_UpdateName(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockRepo := NewMockRepository(ctrl)
	svc := NewService(mockRepo, NewMockLoanCounter(ctrl), nil)

	t.Run("success", func(t *testing.T) {
		mockRepo.EXPECT().GetByID(gomock.Any(), int64(1)).Return(Member{ID: 1, Name: "Old"}, nil)
		mockRepo.EXPECT().UpdateName(gomock.Any(), int64(1), "New Name").Return(nil)

		m, err := svc.UpdateName(context.Background(), 1, "New Name")

		assert.NoError(t, err)
		assert.Equal(t, "New Name", m.Name)
	})

	t.Run("blank name rejected before repo write", func(t *testing.T) {
		mockRepo.EXPECT().GetByID(gomock.Any(), int64(1)).Return(Member{ID: 1, Name: "Old"}, nil)

		_, err := svc.UpdateName(context.Background(), 1, "  ")

		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
