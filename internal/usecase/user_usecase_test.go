package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/paisavault/paisavault/internal/domain"
	"github.com/paisavault/paisavault/internal/usecase"
	"github.com/paisavault/paisavault/internal/usecase/mocks"
)

func TestUserUseCase_Register(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userRepo := mocks.NewMockUserRepository(ctrl)
	idGen := mocks.NewMockIDGenerator(ctrl)

	userRepo.EXPECT().GetByEmail(gomock.Any(), "asha@example.com").Return(nil, domain.ErrUserNotFound)
	idGen.EXPECT().Generate().Return("user-1")
	userRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, user *domain.User) error {
			if user.HashedPassword == "" || user.HashedPassword == "Secret123" {
				t.Error("password must be stored hashed")
			}
			return nil
		},
	)

	uc := usecase.NewUserUseCase(userRepo, idGen)

	user, err := uc.Register(context.Background(), usecase.RegisterInput{
		Email:       "asha@example.com",
		DisplayName: "Asha",
		Password:    "Secret123",
	})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != "user-1" {
		t.Errorf("expected id user-1, got %s", user.ID)
	}
	if user.HashedPassword != "" {
		t.Error("hashed password must not leak out of the usecase")
	}
	if !user.Active {
		t.Error("new users start active")
	}
}

func TestUserUseCase_RegisterDuplicateEmail(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userRepo := mocks.NewMockUserRepository(ctrl)
	idGen := mocks.NewMockIDGenerator(ctrl)

	userRepo.EXPECT().GetByEmail(gomock.Any(), "asha@example.com").Return(&domain.User{ID: "user-1"}, nil)

	uc := usecase.NewUserUseCase(userRepo, idGen)

	_, err := uc.Register(context.Background(), usecase.RegisterInput{
		Email:    "asha@example.com",
		Password: "Secret123",
	})

	if !errors.Is(err, domain.ErrUserAlreadyExists) {
		t.Fatalf("expected ErrUserAlreadyExists, got %v", err)
	}
}

func TestUserUseCase_RegisterWeakPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc := usecase.NewUserUseCase(mocks.NewMockUserRepository(ctrl), mocks.NewMockIDGenerator(ctrl))

	_, err := uc.Register(context.Background(), usecase.RegisterInput{
		Email:    "asha@example.com",
		Password: "short",
	})

	if err == nil {
		t.Fatal("expected password validation error")
	}
}

func TestUserUseCase_Authenticate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	hash, err := bcrypt.GenerateFromPassword([]byte("Secret123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt setup: %v", err)
	}

	userRepo := mocks.NewMockUserRepository(ctrl)
	userRepo.EXPECT().GetByEmail(gomock.Any(), "asha@example.com").Return(&domain.User{
		ID:             "user-1",
		Email:          "asha@example.com",
		HashedPassword: string(hash),
		Active:         true,
	}, nil).Times(2)

	uc := usecase.NewUserUseCase(userRepo, mocks.NewMockIDGenerator(ctrl))

	user, err := uc.Authenticate(context.Background(), usecase.AuthenticateInput{
		Email:    "asha@example.com",
		Password: "Secret123",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != "user-1" {
		t.Errorf("expected user-1, got %s", user.ID)
	}

	_, err = uc.Authenticate(context.Background(), usecase.AuthenticateInput{
		Email:    "asha@example.com",
		Password: "WrongPass1",
	})
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for wrong password, got %v", err)
	}
}

func TestUserUseCase_AuthenticateInactiveUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userRepo := mocks.NewMockUserRepository(ctrl)
	userRepo.EXPECT().GetByEmail(gomock.Any(), "asha@example.com").Return(&domain.User{
		ID:     "user-1",
		Active: false,
	}, nil)

	uc := usecase.NewUserUseCase(userRepo, mocks.NewMockIDGenerator(ctrl))

	_, err := uc.Authenticate(context.Background(), usecase.AuthenticateInput{
		Email:    "asha@example.com",
		Password: "Secret123",
	})
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for inactive user, got %v", err)
	}
}

func TestUserUseCase_UpdateProfileBudget(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userRepo := mocks.NewMockUserRepository(ctrl)
	userRepo.EXPECT().GetByID(gomock.Any(), "user-1").Return(&domain.User{
		ID:          "user-1",
		DisplayName: "Asha",
		Active:      true,
	}, nil)
	userRepo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)

	uc := usecase.NewUserUseCase(userRepo, mocks.NewMockIDGenerator(ctrl))

	budget := decimal.NewFromInt(5000)
	user, err := uc.UpdateProfile(context.Background(), usecase.UpdateProfileInput{
		ID:            "user-1",
		MonthlyBudget: &budget,
	})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !user.MonthlyBudget.Equal(budget) {
		t.Errorf("expected budget 5000, got %s", user.MonthlyBudget)
	}
	if user.DisplayName != "Asha" {
		t.Errorf("untouched fields must survive, got %q", user.DisplayName)
	}
}

func TestUserUseCase_UpdateProfileNegativeBudget(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userRepo := mocks.NewMockUserRepository(ctrl)
	userRepo.EXPECT().GetByID(gomock.Any(), "user-1").Return(&domain.User{ID: "user-1"}, nil)

	uc := usecase.NewUserUseCase(userRepo, mocks.NewMockIDGenerator(ctrl))

	budget := decimal.NewFromInt(-1)
	_, err := uc.UpdateProfile(context.Background(), usecase.UpdateProfileInput{
		ID:            "user-1",
		MonthlyBudget: &budget,
	})

	if err == nil {
		t.Fatal("expected budget validation error")
	}
}
