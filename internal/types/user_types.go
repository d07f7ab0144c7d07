package types

// CreateUserRequest 创建用户请求
type CreateUserRequest struct {
	Name       string `json:"name" validate:"required,min=2"`
	Email      string `json:"email" validate:"required,email"`
	Role       string `json:"role" validate:"required,enum=user_role"`
	Status     string `json:"status" validate:"omitempty,enum=user_status"`
	Department string `json:"department"`
}

// ValidationMessages 字段校验提示
func (CreateUserRequest) ValidationMessages() map[string]string {
	return map[string]string{
		"name.required": "Name must be at least 2 characters.",
		"name.min":      "Name must be at least 2 characters.",
		"email.email":   "Please enter a valid email address.",
		"role.required": "Please select a role.",
		"role.enum":     "Please select a role.",
		"status.enum":   "Please select a status.",
	}
}

// UpdateUserRequest 更新用户请求，未提供的字段保持不变
type UpdateUserRequest struct {
	Name       *string `json:"name" validate:"omitempty,min=2"`
	Email      *string `json:"email" validate:"omitempty,email"`
	Role       *string `json:"role" validate:"omitempty,enum=user_role"`
	Status     *string `json:"status" validate:"omitempty,enum=user_status"`
	Department *string `json:"department"`
}

// ValidationMessages 字段校验提示
func (UpdateUserRequest) ValidationMessages() map[string]string {
	return CreateUserRequest{}.ValidationMessages()
}
