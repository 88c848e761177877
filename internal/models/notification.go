package models

// NotificationType 알림 분류
type NotificationType string

const (
	NotifySuccess NotificationType = "success"
	NotifyWarning NotificationType = "warning"
	NotifyInfo    NotificationType = "info"
)

// SystemNotification 시스템 알림 (읽음 처리되는 사용자 노출 알림)
type SystemNotification struct {
	ID        string           `json:"id"`
	Message   string           `json:"message"`
	Type      NotificationType `json:"type"`
	Timestamp string           `json:"timestamp"`
	Read      bool             `json:"read"`
}

// SystemAlert 외부 경보 (소리/시스템 알림) 페이로드
type SystemAlert struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// ChatMessage 실시간 채팅 메시지
type ChatMessage struct {
	ID         string   `json:"id"`
	Text       string   `json:"text"`
	UserRole   UserRole `json:"userRole"`
	Timestamp  int64    `json:"timestamp"` // Unix 밀리초
	SenderName string   `json:"senderName,omitempty"`
}
