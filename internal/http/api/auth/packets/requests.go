package packets

type LoginRequest struct {
	Password string `json:"password" binding:"required"`
}
