package models

// StoreAdmin is the identity held by a session. The password hash never
// leaves the server.
type StoreAdmin struct {
	ID            string `json:"_id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Mobile        string `json:"mobileNumber,omitempty"`
	ColdStorageID string `json:"coldStorageId"`
	PasswordHash  string `json:"-"`
}

// ColdStorage is the organization a store admin works for.
type ColdStorage struct {
	ID      string `json:"_id"`
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
	Mobile  string `json:"mobileNumber,omitempty"`
}

// Preferences holds the commodity and report configuration of a cold storage.
type Preferences struct {
	Commodities  []string          `json:"commodities"`
	BagSizes     []string          `json:"bagSizes,omitempty"`
	ReportFormat string            `json:"reportFormat,omitempty"`
	CustomFields map[string]string `json:"customFields,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries everything a client session needs after login.
type LoginResponse struct {
	Admin       StoreAdmin  `json:"admin"`
	ColdStorage ColdStorage `json:"coldStorage"`
	Preferences Preferences `json:"preferences"`
	Token       string      `json:"token"`
}
