package service

import (
	"context"
	"log/slog"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/stockkeeper/internal/auth"
	"github.com/mmynk/stockkeeper/internal/inventory"
	"github.com/mmynk/stockkeeper/internal/middleware"
	"github.com/mmynk/stockkeeper/pkg/api"
)

// InventoryService implements the stockkeeper.v1.InventoryService procedures.
// Every procedure acts on the authenticated caller's own data.
type InventoryService struct {
	controller *inventory.Controller
	jwtManager *auth.JWTManager
	logger     *slog.Logger
}

// NewInventoryService creates a new InventoryService.
func NewInventoryService(controller *inventory.Controller, jwtManager *auth.JWTManager, logger *slog.Logger) *InventoryService {
	return &InventoryService{
		controller: controller,
		jwtManager: jwtManager,
		logger:     logger,
	}
}

// Handler returns the path prefix and HTTP handler serving this service.
func (s *InventoryService) Handler(opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{
		connect.WithCodec(api.Codec{}),
		connect.WithInterceptors(middleware.RequireAuth(s.jwtManager), middleware.LoggingInterceptor()),
	}, opts...)

	mux := http.NewServeMux()
	mux.Handle(api.AddItemProcedure, connect.NewUnaryHandler(api.AddItemProcedure, s.AddItem, opts...))
	mux.Handle(api.ListItemsProcedure, connect.NewUnaryHandler(api.ListItemsProcedure, s.ListItems, opts...))
	mux.Handle(api.UpdateItemProcedure, connect.NewUnaryHandler(api.UpdateItemProcedure, s.UpdateItem, opts...))
	mux.Handle(api.DeleteItemProcedure, connect.NewUnaryHandler(api.DeleteItemProcedure, s.DeleteItem, opts...))
	mux.Handle(api.ClearItemsProcedure, connect.NewUnaryHandler(api.ClearItemsProcedure, s.ClearItems, opts...))
	mux.Handle(api.GetSmsPreferenceProcedure, connect.NewUnaryHandler(api.GetSmsPreferenceProcedure, s.GetSmsPreference, opts...))
	mux.Handle(api.UpdateSmsPreferenceProcedure, connect.NewUnaryHandler(api.UpdateSmsPreferenceProcedure, s.UpdateSmsPreference, opts...))
	return "/" + api.InventoryServiceName + "/", mux
}

// AddItem creates an item for the caller.
func (s *InventoryService) AddItem(ctx context.Context, req *connect.Request[api.AddItemRequest]) (*connect.Response[api.AddItemResponse], error) {
	session, err := requireSession(ctx)
	if err != nil {
		return nil, err
	}

	added, err := s.controller.AddItem(ctx, req.Msg.Name, req.Msg.Quantity, session.UserID)
	if err != nil {
		return nil, toConnectError(err)
	}
	if !added {
		return nil, connect.NewError(connect.CodeInternal, errItemNotAdded)
	}

	s.logger.Info("Item added", "user_id", session.UserID, "name", req.Msg.Name, "quantity", req.Msg.Quantity)
	return connect.NewResponse(&api.AddItemResponse{}), nil
}

// ListItems returns the caller's items in storage order.
func (s *InventoryService) ListItems(ctx context.Context, req *connect.Request[api.ListItemsRequest]) (*connect.Response[api.ListItemsResponse], error) {
	session, err := requireSession(ctx)
	if err != nil {
		return nil, err
	}

	items, err := s.controller.GetAllItems(ctx, session.UserID)
	if err != nil {
		return nil, toConnectError(err)
	}

	// Convert to API format
	apiItems := make([]api.Item, len(items))
	for i, item := range items {
		apiItems[i] = api.Item{
			ID:       item.ID,
			Name:     item.Name,
			Quantity: item.Quantity,
		}
	}

	return connect.NewResponse(&api.ListItemsResponse{Items: apiItems}), nil
}

// UpdateItem rewrites one of the caller's items. Low-stock alerts are raised
// by the store's update hook, not here.
func (s *InventoryService) UpdateItem(ctx context.Context, req *connect.Request[api.UpdateItemRequest]) (*connect.Response[api.UpdateItemResponse], error) {
	session, err := requireSession(ctx)
	if err != nil {
		return nil, err
	}

	updated, err := s.controller.UpdateItem(ctx, req.Msg.ID, req.Msg.Name, req.Msg.Quantity, session.UserID)
	if err != nil {
		return nil, toConnectError(err)
	}
	if !updated {
		return nil, connect.NewError(connect.CodeNotFound, errItemNotFound)
	}

	s.logger.Info("Item updated", "user_id", session.UserID, "item_id", req.Msg.ID, "quantity", req.Msg.Quantity)
	return connect.NewResponse(&api.UpdateItemResponse{}), nil
}

// DeleteItem removes one of the caller's items.
func (s *InventoryService) DeleteItem(ctx context.Context, req *connect.Request[api.DeleteItemRequest]) (*connect.Response[api.DeleteItemResponse], error) {
	session, err := requireSession(ctx)
	if err != nil {
		return nil, err
	}

	deleted, err := s.controller.DeleteItem(ctx, req.Msg.ID, session.UserID)
	if err != nil {
		return nil, toConnectError(err)
	}
	if !deleted {
		return nil, connect.NewError(connect.CodeNotFound, errItemNotFound)
	}

	s.logger.Info("Item deleted", "user_id", session.UserID, "item_id", req.Msg.ID)
	return connect.NewResponse(&api.DeleteItemResponse{}), nil
}

// ClearItems deletes all of the caller's items.
func (s *InventoryService) ClearItems(ctx context.Context, req *connect.Request[api.ClearItemsRequest]) (*connect.Response[api.ClearItemsResponse], error) {
	session, err := requireSession(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.controller.ClearItemsForUser(ctx, session.UserID); err != nil {
		return nil, toConnectError(err)
	}

	s.logger.Info("Items cleared", "user_id", session.UserID)
	return connect.NewResponse(&api.ClearItemsResponse{}), nil
}

// GetSmsPreference returns whether the caller receives low-stock alerts.
func (s *InventoryService) GetSmsPreference(ctx context.Context, req *connect.Request[api.GetSmsPreferenceRequest]) (*connect.Response[api.GetSmsPreferenceResponse], error) {
	session, err := requireSession(ctx)
	if err != nil {
		return nil, err
	}

	enabled, err := s.controller.GetSmsPreference(ctx, session.UserID)
	if err != nil {
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.GetSmsPreferenceResponse{Enabled: enabled}), nil
}

// UpdateSmsPreference turns the caller's low-stock alerts on or off.
func (s *InventoryService) UpdateSmsPreference(ctx context.Context, req *connect.Request[api.UpdateSmsPreferenceRequest]) (*connect.Response[api.UpdateSmsPreferenceResponse], error) {
	session, err := requireSession(ctx)
	if err != nil {
		return nil, err
	}

	updated, err := s.controller.UpdateSmsPreference(ctx, session.UserID, req.Msg.Enabled)
	if err != nil {
		return nil, toConnectError(err)
	}
	if !updated {
		return nil, connect.NewError(connect.CodeNotFound, errUserNotFound)
	}

	s.logger.Info("SMS preference updated", "user_id", session.UserID, "enabled", req.Msg.Enabled)
	return connect.NewResponse(&api.UpdateSmsPreferenceResponse{}), nil
}
