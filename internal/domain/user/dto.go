package user

type CreateUserDTO struct {
	Email         string  `json:"email" form:"email" binding:"required,email"`
	Password      string  `json:"password" form:"password" binding:"required,min=8"`
	FirstName     string  `json:"first_name" form:"first_name" binding:"required"`
	LastName      string  `json:"last_name" form:"last_name" binding:"required"`
	ProfileImage  *string `json:"profile_image,omitempty" form:"profile_image,omitempty"`
	ExpoPushToken *string `json:"expo_push_token,omitempty" form:"expo_push_token,omitempty"`
}

type UpdateUserDTO struct {
	Email         *string `json:"email,omitempty"`
	FirstName     *string `json:"first_name,omitempty"`
	LastName      *string `json:"last_name,omitempty"`
	Role          *string `json:"role,omitempty"`
	ProfileImage  *string `json:"profile_image,omitempty"`
	ExpoPushToken *string `json:"expo_push_token,omitempty"`
	Password      *string `json:"password,omitempty"`
	OldPassword   *string `json:"old_password,omitempty"`
}
