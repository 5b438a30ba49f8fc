package api

// Procedure paths, in Connect's "/package.Service/Method" form.
const (
	AuthServiceName      = "stockkeeper.v1.AuthService"
	InventoryServiceName = "stockkeeper.v1.InventoryService"

	RegisterProcedure       = "/" + AuthServiceName + "/Register"
	LoginProcedure          = "/" + AuthServiceName + "/Login"
	LogoutProcedure         = "/" + AuthServiceName + "/Logout"
	GetCurrentUserProcedure = "/" + AuthServiceName + "/GetCurrentUser"

	AddItemProcedure             = "/" + InventoryServiceName + "/AddItem"
	ListItemsProcedure           = "/" + InventoryServiceName + "/ListItems"
	UpdateItemProcedure          = "/" + InventoryServiceName + "/UpdateItem"
	DeleteItemProcedure          = "/" + InventoryServiceName + "/DeleteItem"
	ClearItemsProcedure          = "/" + InventoryServiceName + "/ClearItems"
	GetSmsPreferenceProcedure    = "/" + InventoryServiceName + "/GetSmsPreference"
	UpdateSmsPreferenceProcedure = "/" + InventoryServiceName + "/UpdateSmsPreference"
)

// User is the public view of an account. The password hash never leaves the server.
type User struct {
	ID          int64  `json:"id"`
	Username    string `json:"username"`
	SMSEnabled  bool   `json:"sms_enabled"`
	PhoneNumber string `json:"phone_number,omitempty"`
}

// Item is one inventory entry.
type Item struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

type RegisterRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	PhoneNumber string `json:"phone_number"`
}

type RegisterResponse struct{}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

type LogoutRequest struct{}

type LogoutResponse struct{}

type GetCurrentUserRequest struct{}

type GetCurrentUserResponse struct {
	User User `json:"user"`
}

type AddItemRequest struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

type AddItemResponse struct{}

type ListItemsRequest struct{}

type ListItemsResponse struct {
	Items []Item `json:"items"`
}

type UpdateItemRequest struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

type UpdateItemResponse struct{}

type DeleteItemRequest struct {
	ID int64 `json:"id"`
}

type DeleteItemResponse struct{}

type ClearItemsRequest struct{}

type ClearItemsResponse struct{}

type GetSmsPreferenceRequest struct{}

type GetSmsPreferenceResponse struct {
	Enabled bool `json:"enabled"`
}

type UpdateSmsPreferenceRequest struct {
	Enabled bool `json:"enabled"`
}

type UpdateSmsPreferenceResponse struct{}
