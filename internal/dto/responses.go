package dto

// ErrorResponse — единый формат ошибки API.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// SkillsNormalizeResponse — результат нормализации навыков.
type SkillsNormalizeResponse struct {
	Normalized []string `json:"normalized"`
	Invalid    []string `json:"invalid"`
}

// UnreadCountResponse — число непрочитанных уведомлений.
type UnreadCountResponse struct {
	Unread int `json:"unread"`
}
