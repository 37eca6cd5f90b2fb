package domain

// User represents the authenticated identity returned by the backend.
// The password field is only ever carried on the wire; the client never
// inspects it.
type User struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password,omitempty"`
	AvatarColor string `json:"avatarColor"`
	CreatedAt   int64  `json:"createdAt"`
}
