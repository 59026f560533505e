// ABOUTME: Sync handler for the Huma API
// ABOUTME: GET /sync returns the shared snapshot, PUT /sync stores the fields a client sends

package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"feeds-app-api/api/dto/mappers"
	"feeds-app-api/api/dto/requests"
	"feeds-app-api/api/dto/responses"
	"feeds-app-api/core/domain"
	"feeds-app-api/core/interfaces"
	"feeds-app-api/core/reconcile"
)

// SnapshotStore is the server-side copy of the synchronized state
type SnapshotStore interface {
	Load(ctx context.Context) (domain.Snapshot, error)
	Apply(ctx context.Context, u reconcile.Update) error
}

// SyncHandler serves the shared snapshot that clients reconcile against
type SyncHandler struct {
	store  SnapshotStore
	logger interfaces.Logger
}

// NewSyncHandler creates a new sync handler
func NewSyncHandler(store SnapshotStore, logger interfaces.Logger) *SyncHandler {
	if logger == nil {
		logger = interfaces.NopLogger{}
	}
	return &SyncHandler{store: store, logger: logger}
}

// RegisterRoutes registers the sync routes
func (h *SyncHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "getSyncSnapshot",
		Method:      http.MethodGet,
		Path:        "/sync",
		Summary:     "Get the shared sync snapshot",
		Tags:        []string{"Sync"},
	}, h.Get)

	huma.Register(api, huma.Operation{
		OperationID: "putSyncSnapshot",
		Method:      http.MethodPut,
		Path:        "/sync",
		Summary:     "Store sync snapshot fields",
		Description: "Only the fields present in the body are written. Clients merge before pushing, so the server stores what it receives.",
		Tags:        []string{"Sync"},
	}, h.Put)
}

// SyncGetOutput defines the output for the Get operation
type SyncGetOutput struct {
	Body responses.SyncSnapshot
}

// SyncPutInput defines the input for the Put operation
type SyncPutInput struct {
	Body requests.SyncUpdateRequest
}

// SyncPutOutput defines the output for the Put operation
type SyncPutOutput struct {
	Body responses.OKResponse
}

// Get handles GET /sync
func (h *SyncHandler) Get(ctx context.Context, _ *struct{}) (*SyncGetOutput, error) {
	snap, err := h.store.Load(ctx)
	if err != nil {
		h.logger.Error("Failed to load sync snapshot", map[string]interface{}{"error": err.Error()})
		return nil, newError(http.StatusInternalServerError, err.Error())
	}
	return &SyncGetOutput{Body: mappers.ToSyncSnapshot(snap)}, nil
}

// Put handles PUT /sync
func (h *SyncHandler) Put(ctx context.Context, input *SyncPutInput) (*SyncPutOutput, error) {
	if err := h.store.Apply(ctx, mappers.ToSyncUpdate(input.Body)); err != nil {
		h.logger.Error("Failed to store sync snapshot", map[string]interface{}{"error": err.Error()})
		return nil, newError(http.StatusInternalServerError, err.Error())
	}
	return &SyncPutOutput{Body: responses.OKResponse{OK: true}}, nil
}
