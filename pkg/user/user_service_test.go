package user

import (
	"testing"

	"Foodgram-Backend/domain"
	"Foodgram-Backend/entities"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestClampRecipesLimit(t *testing.T) {
	assert.Equal(t, 0, ClampRecipesLimit(-5))
	assert.Equal(t, 0, ClampRecipesLimit(0))
	assert.Equal(t, 3, ClampRecipesLimit(3))
}

func TestRoleForUser(t *testing.T) {
	assert.Equal(t, domain.RoleStaff, RoleForUser(&entities.User{IsStaff: true}))
	assert.Equal(t, domain.RoleUser, RoleForUser(&entities.User{}))
}

func TestProfileToResponse(t *testing.T) {
	id := uuid.New()
	u := &entities.User{
		ID:        id,
		Username:  "chef",
		Email:     "chef@example.com",
		FirstName: "Ada",
		LastName:  "Lovelace",
		AvatarURL: "https://bucket.s3.region.amazonaws.com/avatars/chef.png",
	}

	res := ProfileToResponse(u, true)
	assert.Equal(t, id.String(), res.ID)
	assert.Equal(t, "chef", res.Username)
	assert.Equal(t, "chef@example.com", res.Email)
	assert.Equal(t, "Ada", res.FirstName)
	assert.Equal(t, "Lovelace", res.LastName)
	assert.True(t, res.IsSubscribed)

	assert.False(t, ProfileToResponse(u, false).IsSubscribed)
}
