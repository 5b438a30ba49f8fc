package api

import (
	"context"
	"strings"

	"connectrpc.com/connect"
)

// Client is a typed client for both stockkeeper services.
type Client struct {
	token string

	register            *connect.Client[RegisterRequest, RegisterResponse]
	login               *connect.Client[LoginRequest, LoginResponse]
	logout              *connect.Client[LogoutRequest, LogoutResponse]
	getCurrentUser      *connect.Client[GetCurrentUserRequest, GetCurrentUserResponse]
	addItem             *connect.Client[AddItemRequest, AddItemResponse]
	listItems           *connect.Client[ListItemsRequest, ListItemsResponse]
	updateItem          *connect.Client[UpdateItemRequest, UpdateItemResponse]
	deleteItem          *connect.Client[DeleteItemRequest, DeleteItemResponse]
	clearItems          *connect.Client[ClearItemsRequest, ClearItemsResponse]
	getSmsPreference    *connect.Client[GetSmsPreferenceRequest, GetSmsPreferenceResponse]
	updateSmsPreference *connect.Client[UpdateSmsPreferenceRequest, UpdateSmsPreferenceResponse]
}

// NewClient creates a client for the server at baseURL (e.g. "http://localhost:8080").
func NewClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *Client {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(Codec{})}, opts...)

	return &Client{
		register:            connect.NewClient[RegisterRequest, RegisterResponse](httpClient, baseURL+RegisterProcedure, opts...),
		login:               connect.NewClient[LoginRequest, LoginResponse](httpClient, baseURL+LoginProcedure, opts...),
		logout:              connect.NewClient[LogoutRequest, LogoutResponse](httpClient, baseURL+LogoutProcedure, opts...),
		getCurrentUser:      connect.NewClient[GetCurrentUserRequest, GetCurrentUserResponse](httpClient, baseURL+GetCurrentUserProcedure, opts...),
		addItem:             connect.NewClient[AddItemRequest, AddItemResponse](httpClient, baseURL+AddItemProcedure, opts...),
		listItems:           connect.NewClient[ListItemsRequest, ListItemsResponse](httpClient, baseURL+ListItemsProcedure, opts...),
		updateItem:          connect.NewClient[UpdateItemRequest, UpdateItemResponse](httpClient, baseURL+UpdateItemProcedure, opts...),
		deleteItem:          connect.NewClient[DeleteItemRequest, DeleteItemResponse](httpClient, baseURL+DeleteItemProcedure, opts...),
		clearItems:          connect.NewClient[ClearItemsRequest, ClearItemsResponse](httpClient, baseURL+ClearItemsProcedure, opts...),
		getSmsPreference:    connect.NewClient[GetSmsPreferenceRequest, GetSmsPreferenceResponse](httpClient, baseURL+GetSmsPreferenceProcedure, opts...),
		updateSmsPreference: connect.NewClient[UpdateSmsPreferenceRequest, UpdateSmsPreferenceResponse](httpClient, baseURL+UpdateSmsPreferenceProcedure, opts...),
	}
}

// SetToken sets the bearer token sent with every subsequent call.
func (c *Client) SetToken(token string) {
	c.token = token
}

func (c *Client) Register(ctx context.Context, req *RegisterRequest) (*RegisterResponse, error) {
	return call(ctx, c.token, c.register, req)
}

func (c *Client) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	return call(ctx, c.token, c.login, req)
}

func (c *Client) Logout(ctx context.Context, req *LogoutRequest) (*LogoutResponse, error) {
	return call(ctx, c.token, c.logout, req)
}

func (c *Client) GetCurrentUser(ctx context.Context, req *GetCurrentUserRequest) (*GetCurrentUserResponse, error) {
	return call(ctx, c.token, c.getCurrentUser, req)
}

func (c *Client) AddItem(ctx context.Context, req *AddItemRequest) (*AddItemResponse, error) {
	return call(ctx, c.token, c.addItem, req)
}

func (c *Client) ListItems(ctx context.Context, req *ListItemsRequest) (*ListItemsResponse, error) {
	return call(ctx, c.token, c.listItems, req)
}

func (c *Client) UpdateItem(ctx context.Context, req *UpdateItemRequest) (*UpdateItemResponse, error) {
	return call(ctx, c.token, c.updateItem, req)
}

func (c *Client) DeleteItem(ctx context.Context, req *DeleteItemRequest) (*DeleteItemResponse, error) {
	return call(ctx, c.token, c.deleteItem, req)
}

func (c *Client) ClearItems(ctx context.Context, req *ClearItemsRequest) (*ClearItemsResponse, error) {
	return call(ctx, c.token, c.clearItems, req)
}

func (c *Client) GetSmsPreference(ctx context.Context, req *GetSmsPreferenceRequest) (*GetSmsPreferenceResponse, error) {
	return call(ctx, c.token, c.getSmsPreference, req)
}

func (c *Client) UpdateSmsPreference(ctx context.Context, req *UpdateSmsPreferenceRequest) (*UpdateSmsPreferenceResponse, error) {
	return call(ctx, c.token, c.updateSmsPreference, req)
}

func call[Req, Res any](ctx context.Context, token string, client *connect.Client[Req, Res], msg *Req) (*Res, error) {
	req := connect.NewRequest(msg)
	if token != "" {
		req.Header().Set("Authorization", "Bearer "+token)
	}

	resp, err := client.CallUnary(ctx, req)
	if err != nil {
		return nil, err
	}
	return resp.Msg, nil
}
