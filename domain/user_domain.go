package domain

import (
	"errors"
)

// ReservedUsername cannot be registered because /users/me is routed to the
// acting user's own profile.
const ReservedUsername = "me"

var (
	MessageSuccessRegister         = "user registered successfully"
	MessageSuccessLogin            = "login success"
	MessageSuccessGetProfile       = "success get user profile"
	MessageSuccessGetUsers         = "success get users"
	MessageSuccessUpdatePassword   = "password updated successfully"
	MessageSuccessForgotPassword   = "reset password link sent"
	MessageSuccessResetPassword    = "password reset successfully"
	MessageSuccessUploadAvatar     = "avatar uploaded successfully"
	MessageSuccessSubscribe        = "subscribed successfully"
	MessageSuccessUnsubscribe      = "unsubscribed successfully"
	MessageSuccessGetSubscriptions = "success get subscriptions"

	MessageFailedRegister         = "failed to register user"
	MessageFailedLogin            = "failed to login"
	MessageFailedGetProfile       = "failed to get user profile"
	MessageFailedGetUsers         = "failed to get users"
	MessageFailedUpdatePassword   = "failed to update password"
	MessageFailedForgotPassword   = "failed to send reset password link"
	MessageFailedResetPassword    = "failed to reset password"
	MessageFailedUploadAvatar     = "failed to upload avatar"
	MessageFailedSubscribe        = "failed to subscribe"
	MessageFailedUnsubscribe      = "failed to unsubscribe"
	MessageFailedGetSubscriptions = "failed to get subscriptions"

	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("email or username already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrPasswordNotMatch   = errors.New("current password does not match")
	ErrAlreadySubscribed  = errors.New("already subscribed to this author")
	ErrNotSubscribed      = errors.New("not subscribed to this author")
)

type (
	UserRegisterRequest struct {
		Username  string `json:"username" validate:"required,max=150"`
		Email     string `json:"email" validate:"required,email,max=254"`
		FirstName string `json:"first_name" validate:"required,max=150"`
		LastName  string `json:"last_name" validate:"required,max=150"`
		Password  string `json:"password" validate:"required,min=8"`
	}

	UserRegisterResponse struct {
		ID        string `json:"id"`
		Username  string `json:"username"`
		Email     string `json:"email"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
	}

	UserLoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	UserLoginResponse struct {
		Token string `json:"auth_token"`
	}

	UserProfileResponse struct {
		ID           string `json:"id"`
		Username     string `json:"username"`
		Email        string `json:"email"`
		FirstName    string `json:"first_name"`
		LastName     string `json:"last_name"`
		AvatarURL    string `json:"avatar_url,omitempty"`
		IsSubscribed bool   `json:"is_subscribed"`
	}

	UpdatePasswordRequest struct {
		CurrentPassword string `json:"current_password" validate:"required"`
		NewPassword     string `json:"new_password" validate:"required,min=8"`
	}

	ForgotPasswordRequest struct {
		Email string `json:"email" validate:"required,email"`
	}

	ResetPasswordRequest struct {
		Token       string `json:"token" validate:"required"`
		NewPassword string `json:"new_password" validate:"required,min=8"`
	}

	UploadAvatarRequest struct {
		Avatar string `json:"avatar" validate:"required"`
	}

	RecipePreview struct {
		ID          string `json:"id"`
		Name        string `json:"name"`
		ImageURL    string `json:"image_url,omitempty"`
		CookingTime int    `json:"cooking_time"`
	}

	SubscriptionResponse struct {
		UserProfileResponse
		Recipes      []RecipePreview `json:"recipes"`
		RecipesCount int64           `json:"recipes_count"`
	}

	SubscriptionListResponse struct {
		Subscriptions []SubscriptionResponse `json:"subscriptions"`
		Total         int64                  `json:"total"`
	}
)
