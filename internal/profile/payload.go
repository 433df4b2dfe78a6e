package profile

type UpdateRequest struct {
	FullName     *string `json:"full_name"`
	Role         *string `json:"role"`
	Organization *string `json:"organization"`
	Bio          *string `json:"bio"`
}

type AvatarResponse struct {
	ProfilePic string `json:"profile_pic"`
}
