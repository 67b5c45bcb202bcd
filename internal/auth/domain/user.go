package domain

// UnauthenticatedMessage is the fixed user-facing text for any request
// that arrives without a valid credential.
const UnauthenticatedMessage = "Iltimos, avval tizimga kiring."

// User is the caller identity resolved from an access token.
// Accounts live with the identity provider; nothing here is persisted.
type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
	Provider  string `json:"provider,omitempty"` // e.g. "google"
}
