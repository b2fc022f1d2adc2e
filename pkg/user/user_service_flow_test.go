package user

import (
	"context"
	"strings"
	"testing"

	"Foodgram-Backend/domain"
	"Foodgram-Backend/entities"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeUserRepository struct {
	getByID      func(id string) (*entities.User, error)
	createFollow func(follow *entities.Follow) error
	deleteFollow func(followerID, followeeID uuid.UUID) (int64, error)
}

func (f *fakeUserRepository) CreateUser(ctx context.Context, user *entities.User) error { return nil }

func (f *fakeUserRepository) GetUserByID(ctx context.Context, id string) (*entities.User, error) {
	return f.getByID(id)
}

func (f *fakeUserRepository) GetUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepository) GetUsers(ctx context.Context, page, limit int) ([]*entities.User, int64, error) {
	return nil, 0, nil
}

func (f *fakeUserRepository) UpdateUser(ctx context.Context, user *entities.User) error { return nil }

func (f *fakeUserRepository) CreateFollow(ctx context.Context, follow *entities.Follow) error {
	return f.createFollow(follow)
}

func (f *fakeUserRepository) DeleteFollow(ctx context.Context, followerID, followeeID uuid.UUID) (int64, error) {
	return f.deleteFollow(followerID, followeeID)
}

func (f *fakeUserRepository) IsFollowing(ctx context.Context, followerID, followeeID uuid.UUID) (bool, error) {
	return false, nil
}

func (f *fakeUserRepository) GetFollowedAuthorIDs(ctx context.Context, followerID uuid.UUID, authorIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	return map[uuid.UUID]bool{}, nil
}

func (f *fakeUserRepository) GetFollowees(ctx context.Context, followerID uuid.UUID, page, limit int) ([]*entities.User, int64, error) {
	return nil, 0, nil
}

func (f *fakeUserRepository) GetAuthorRecipes(ctx context.Context, authorID uuid.UUID, limit int) ([]*entities.Recipe, error) {
	return nil, nil
}

func (f *fakeUserRepository) CountAuthorRecipes(ctx context.Context, authorID uuid.UUID) (int64, error) {
	return 0, nil
}

func TestRegisterRejectsReservedUsername(t *testing.T) {
	svc := NewUserService(&fakeUserRepository{}, nil, nil)

	_, err := svc.Register(context.Background(), domain.UserRegisterRequest{
		Username:  domain.ReservedUsername,
		Email:     "me@example.com",
		FirstName: "M",
		LastName:  "E",
		Password:  "password123",
	})

	var verr *domain.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestSubscribeRejectsSelfFollow(t *testing.T) {
	svc := NewUserService(&fakeUserRepository{}, nil, nil)
	id := uuid.NewString()

	_, err := svc.Subscribe(context.Background(), id, id, 0)

	var verr *domain.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestSubscribeRejectsSelfFollowCaseInsensitive(t *testing.T) {
	svc := NewUserService(&fakeUserRepository{}, nil, nil)
	id := uuid.New()

	// uuid.Parse accepts uppercase hex, so the two ids name the same user
	_, err := svc.Subscribe(context.Background(), strings.ToUpper(id.String()), id.String(), 0)

	var verr *domain.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestSubscribeUnknownUser(t *testing.T) {
	repo := &fakeUserRepository{
		getByID: func(id string) (*entities.User, error) { return nil, gorm.ErrRecordNotFound },
	}
	svc := NewUserService(repo, nil, nil)

	_, err := svc.Subscribe(context.Background(), uuid.NewString(), uuid.NewString(), 0)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestSubscribeDuplicate(t *testing.T) {
	followee := &entities.User{ID: uuid.New(), Username: "author"}
	repo := &fakeUserRepository{
		getByID:      func(id string) (*entities.User, error) { return followee, nil },
		createFollow: func(follow *entities.Follow) error { return gorm.ErrDuplicatedKey },
	}
	svc := NewUserService(repo, nil, nil)

	_, err := svc.Subscribe(context.Background(), followee.ID.String(), uuid.NewString(), 0)
	assert.ErrorIs(t, err, domain.ErrAlreadySubscribed)
}

func TestUnsubscribeWhenNotSubscribed(t *testing.T) {
	repo := &fakeUserRepository{
		deleteFollow: func(followerID, followeeID uuid.UUID) (int64, error) { return 0, nil },
	}
	svc := NewUserService(repo, nil, nil)

	err := svc.Unsubscribe(context.Background(), uuid.NewString(), uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrNotSubscribed)
}
