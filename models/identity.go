package models

// Identity is who the conversation belongs to. A freshly started session
// carries a generated guest identity; a completed login upgrades it in
// place without replacing the session.
type Identity struct {
	RegisterID    string `json:"registerId"`
	Email         string `json:"email,omitempty"`
	Phone         string `json:"phone,omitempty"`
	Name          string `json:"name,omitempty"`
	AuthProvider  string `json:"authProvider,omitempty"` // "phone", "email", "google"
	Authenticated bool   `json:"authenticated"`
}
