package dto

// RegisterRequest — тело регистрации.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required"`
	Handle   string `json:"handle" binding:"required"`
	FullName string `json:"full_name" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest — тело входа.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest — тело обновления токенов.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// UpdateProfileRequest — тело обновления анкеты специалиста.
// Skills — свободный ввод через запятую.
type UpdateProfileRequest struct {
	Specialization string `json:"specialization" binding:"required"`
	Skills         string `json:"skills" binding:"required"`
	Experience     string `json:"experience" binding:"required"`
	PortfolioURL   string `json:"portfolio_url" binding:"required"`
	Contact        string `json:"contact" binding:"required"`
	Activate       bool   `json:"activate"`
}

// UpdateNameRequest — тело смены отображаемого имени.
type UpdateNameRequest struct {
	FullName string `json:"full_name" binding:"required"`
}

// CreateEngagementRequest — тело создания заказа.
type CreateEngagementRequest struct {
	SpecialistID string `json:"specialist_id" binding:"required,uuid"`
}

// SubmitRatingRequest — тело выставления оценки по заказу.
type SubmitRatingRequest struct {
	EngagementID string `json:"engagement_id" binding:"required,uuid"`
	Score        int    `json:"score" binding:"required"`
}
