package user

import (
	"Foodgram-Backend/domain"
	"Foodgram-Backend/entities"
	"Foodgram-Backend/internal/utils/mailing"
	"Foodgram-Backend/internal/utils/storage"
	"Foodgram-Backend/pkg/jwt"
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type (
	UserService interface {
		Register(ctx context.Context, req domain.UserRegisterRequest) (domain.UserRegisterResponse, error)
		Login(ctx context.Context, req domain.UserLoginRequest) (domain.UserLoginResponse, error)
		GetProfile(ctx context.Context, targetID string, actingUserID string) (domain.UserProfileResponse, error)
		GetUsers(ctx context.Context, page, limit int, actingUserID string) ([]domain.UserProfileResponse, int64, error)
		UpdatePassword(ctx context.Context, req domain.UpdatePasswordRequest, userID string) error
		ForgotPassword(ctx context.Context, req domain.ForgotPasswordRequest) error
		ResetPassword(ctx context.Context, req domain.ResetPasswordRequest) error
		UploadAvatar(ctx context.Context, req domain.UploadAvatarRequest, userID string) (string, error)
		Subscribe(ctx context.Context, followeeID string, userID string, recipesLimit int) (domain.SubscriptionResponse, error)
		Unsubscribe(ctx context.Context, followeeID string, userID string) error
		GetSubscriptions(ctx context.Context, userID string, page, limit, recipesLimit int) (domain.SubscriptionListResponse, error)
	}

	userService struct {
		userRepository UserRepository
		jwtService     jwt.JWTService
		s3             storage.AwsS3
	}
)

func NewUserService(userRepository UserRepository, jwtService jwt.JWTService, s3 storage.AwsS3) UserService {
	return &userService{
		userRepository: userRepository,
		jwtService:     jwtService,
		s3:             s3,
	}
}

func (s *userService) Register(ctx context.Context, req domain.UserRegisterRequest) (domain.UserRegisterResponse, error) {
	if req.Username == domain.ReservedUsername {
		return domain.UserRegisterResponse{}, domain.NewValidationError(
			"username", "this username is reserved",
		)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.UserRegisterResponse{}, err
	}

	user := &entities.User{
		ID:        uuid.New(),
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  string(hashed),
	}

	if err := s.userRepository.CreateUser(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.UserRegisterResponse{}, domain.ErrUserAlreadyExists
		}
		return domain.UserRegisterResponse{}, err
	}

	return domain.UserRegisterResponse{
		ID:        user.ID.String(),
		Username:  user.Username,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}, nil
}

func (s *userService) Login(ctx context.Context, req domain.UserLoginRequest) (domain.UserLoginResponse, error) {
	user, err := s.userRepository.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.UserLoginResponse{}, domain.ErrInvalidCredentials
		}
		return domain.UserLoginResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return domain.UserLoginResponse{}, domain.ErrInvalidCredentials
	}

	token := s.jwtService.GenerateTokenUser(user.ID.String(), RoleForUser(user))
	return domain.UserLoginResponse{Token: token}, nil
}

func (s *userService) GetProfile(ctx context.Context, targetID string, actingUserID string) (domain.UserProfileResponse, error) {
	user, err := s.userRepository.GetUserByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.UserProfileResponse{}, domain.ErrUserNotFound
		}
		return domain.UserProfileResponse{}, err
	}

	isSubscribed := false
	if actingUserID != "" && actingUserID != targetID {
		actingUUID, err := uuid.Parse(actingUserID)
		if err != nil {
			return domain.UserProfileResponse{}, domain.ErrParseUUID
		}
		isSubscribed, err = s.userRepository.IsFollowing(ctx, actingUUID, user.ID)
		if err != nil {
			return domain.UserProfileResponse{}, err
		}
	}

	return ProfileToResponse(user, isSubscribed), nil
}

func (s *userService) GetUsers(ctx context.Context, page, limit int, actingUserID string) ([]domain.UserProfileResponse, int64, error) {
	users, count, err := s.userRepository.GetUsers(ctx, page, limit)
	if err != nil {
		return nil, 0, err
	}

	followed := map[uuid.UUID]bool{}
	if actingUserID != "" {
		actingUUID, err := uuid.Parse(actingUserID)
		if err != nil {
			return nil, 0, domain.ErrParseUUID
		}
		ids := make([]uuid.UUID, 0, len(users))
		for _, u := range users {
			ids = append(ids, u.ID)
		}
		followed, err = s.userRepository.GetFollowedAuthorIDs(ctx, actingUUID, ids)
		if err != nil {
			return nil, 0, err
		}
	}

	res := make([]domain.UserProfileResponse, 0, len(users))
	for _, u := range users {
		res = append(res, ProfileToResponse(u, followed[u.ID]))
	}
	return res, count, nil
}

func (s *userService) UpdatePassword(ctx context.Context, req domain.UpdatePasswordRequest, userID string) error {
	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.CurrentPassword)); err != nil {
		return domain.ErrPasswordNotMatch
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user.Password = string(hashed)
	return s.userRepository.UpdateUser(ctx, user)
}

func (s *userService) ForgotPassword(ctx context.Context, req domain.ForgotPasswordRequest) error {
	user, err := s.userRepository.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	token, err := s.jwtService.GenerateTokenResetPassword(map[string]any{
		"user_id": user.ID.String(),
		"email":   user.Email,
	}, time.Minute*30)
	if err != nil {
		return err
	}

	return mailing.SendResetPasswordMail(user.Email, token)
}

func (s *userService) ResetPassword(ctx context.Context, req domain.ResetPasswordRequest) error {
	claims, err := s.jwtService.ValidateTokenResetPassword(req.Token)
	if err != nil {
		return err
	}

	userID, ok := claims["user_id"].(string)
	if !ok {
		return domain.ErrTokenInvalid
	}

	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user.Password = string(hashed)
	return s.userRepository.UpdateUser(ctx, user)
}

func (s *userService) UploadAvatar(ctx context.Context, req domain.UploadAvatarRequest, userID string) (string, error) {
	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", domain.ErrUserNotFound
		}
		return "", err
	}

	if user.AvatarURL != "" {
		existingKey := s.s3.GetObjectKeyFromLink(user.AvatarURL)
		_ = s.s3.DeleteFile(existingKey)
	}

	objectKey, err := s.s3.UploadBase64(user.ID.String(), req.Avatar, "avatars", storage.AllowImage...)
	if err != nil {
		return "", domain.NewValidationError("avatar", err.Error())
	}

	user.AvatarURL = s.s3.GetPublicLinkKey(objectKey)
	if err := s.userRepository.UpdateUser(ctx, user); err != nil {
		return "", err
	}
	return user.AvatarURL, nil
}

func (s *userService) Subscribe(ctx context.Context, followeeID string, userID string, recipesLimit int) (domain.SubscriptionResponse, error) {
	followerUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.SubscriptionResponse{}, domain.ErrParseUUID
	}
	followeeUUID, err := uuid.Parse(followeeID)
	if err != nil {
		return domain.SubscriptionResponse{}, domain.ErrParseUUID
	}

	// compare parsed values, a string compare misses case variants
	if followerUUID == followeeUUID {
		return domain.SubscriptionResponse{}, domain.NewValidationError(
			"followee", "cannot subscribe to yourself",
		)
	}

	followee, err := s.userRepository.GetUserByID(ctx, followeeUUID.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.SubscriptionResponse{}, domain.ErrUserNotFound
		}
		return domain.SubscriptionResponse{}, err
	}

	follow := &entities.Follow{
		ID:         uuid.New(),
		FollowerID: followerUUID,
		FolloweeID: followee.ID,
	}
	if err := s.userRepository.CreateFollow(ctx, follow); err != nil {
		// the unique index is the authority under concurrent subscribes
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.SubscriptionResponse{}, domain.ErrAlreadySubscribed
		}
		return domain.SubscriptionResponse{}, err
	}

	return s.buildSubscription(ctx, followee, recipesLimit)
}

func (s *userService) Unsubscribe(ctx context.Context, followeeID string, userID string) error {
	followerUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.ErrParseUUID
	}
	followeeUUID, err := uuid.Parse(followeeID)
	if err != nil {
		return domain.ErrParseUUID
	}

	affected, err := s.userRepository.DeleteFollow(ctx, followerUUID, followeeUUID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotSubscribed
	}
	return nil
}

func (s *userService) GetSubscriptions(ctx context.Context, userID string, page, limit, recipesLimit int) (domain.SubscriptionListResponse, error) {
	followerUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.SubscriptionListResponse{}, domain.ErrParseUUID
	}

	followees, count, err := s.userRepository.GetFollowees(ctx, followerUUID, page, limit)
	if err != nil {
		return domain.SubscriptionListResponse{}, err
	}

	subscriptions := make([]domain.SubscriptionResponse, 0, len(followees))
	for _, followee := range followees {
		sub, err := s.buildSubscription(ctx, followee, recipesLimit)
		if err != nil {
			return domain.SubscriptionListResponse{}, err
		}
		subscriptions = append(subscriptions, sub)
	}

	return domain.SubscriptionListResponse{
		Subscriptions: subscriptions,
		Total:         count,
	}, nil
}

// buildSubscription assembles the followee view: profile, recipe previews
// capped by recipesLimit (full set when the cap is absent or invalid),
// and the author's total recipe count.
func (s *userService) buildSubscription(ctx context.Context, followee *entities.User, recipesLimit int) (domain.SubscriptionResponse, error) {
	recipes, err := s.userRepository.GetAuthorRecipes(ctx, followee.ID, ClampRecipesLimit(recipesLimit))
	if err != nil {
		return domain.SubscriptionResponse{}, err
	}

	count, err := s.userRepository.CountAuthorRecipes(ctx, followee.ID)
	if err != nil {
		return domain.SubscriptionResponse{}, err
	}

	previews := make([]domain.RecipePreview, 0, len(recipes))
	for _, r := range recipes {
		previews = append(previews, domain.RecipePreview{
			ID:          r.ID.String(),
			Name:        r.Name,
			ImageURL:    r.ImageURL,
			CookingTime: r.CookingTime,
		})
	}

	return domain.SubscriptionResponse{
		UserProfileResponse: ProfileToResponse(followee, true),
		Recipes:             previews,
		RecipesCount:        count,
	}, nil
}

// ClampRecipesLimit normalizes the caller-supplied preview cap: zero or
// negative means "no cap".
func ClampRecipesLimit(limit int) int {
	if limit < 0 {
		return 0
	}
	return limit
}

func RoleForUser(user *entities.User) string {
	if user.IsStaff {
		return domain.RoleStaff
	}
	return domain.RoleUser
}

func ProfileToResponse(user *entities.User, isSubscribed bool) domain.UserProfileResponse {
	return domain.UserProfileResponse{
		ID:           user.ID.String(),
		Username:     user.Username,
		Email:        user.Email,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		AvatarURL:    user.AvatarURL,
		IsSubscribed: isSubscribed,
	}
}
