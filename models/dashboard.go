package models

// DashboardStats, admin ana sayfasındaki sayaçlar.
type DashboardStats struct {
	ProjectsCount int `json:"projects_count"`
	MessagesCount int `json:"messages_count"`
	UnreadCount   int `json:"unread_count"`
	BlogCount     int `json:"blog_count"`
}

// UploadResult, backend'in upload endpoint'lerinin yanıtı.
// /resources/upload "url", /projects/upload-image "image_url" döner;
// ikisi de URL alanına normalize edilir.
type UploadResult struct {
	URL string `json:"url"`
}
