package structurehandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"hrms/internal/domain/structure"
	"hrms/internal/transport/http/api"
	"hrms/internal/transport/http/middleware"
)

type Handler struct {
	Store *structure.Store
}

func NewHandler(store *structure.Store) *Handler {
	return &Handler{Store: store}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/groups", func(r chi.Router) {
		r.Get("/", h.handleListGroups)
		r.Post("/", h.handleCreateGroup)
		r.Get("/{groupID}", h.handleGetGroup)
		r.Put("/{groupID}", h.handleUpdateGroup)
		r.Delete("/{groupID}", h.handleDeleteGroup)
		r.Get("/{groupID}/subgroups", h.handleListSubGroupsByGroup)
		r.Get("/{groupID}/items", h.handleListItemsByGroup)
	})
	r.Route("/subgroups", func(r chi.Router) {
		r.Get("/", h.handleListSubGroups)
		r.Post("/", h.handleCreateSubGroup)
		r.Put("/{subGroupID}", h.handleUpdateSubGroup)
		r.Delete("/{subGroupID}", h.handleDeleteSubGroup)
		r.Get("/{subGroupID}/items", h.handleListItemsBySubGroup)
	})
	r.Route("/items", func(r chi.Router) {
		r.Post("/", h.handleCreateItem)
		r.Put("/{itemID}", h.handleUpdateItem)
		r.Delete("/{itemID}", h.handleDeleteItem)
	})
}

func (h *Handler) handleListGroups(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	groups, err := h.Store.ListGroups(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "groups_list_failed", "failed to list groups", requestID)
		return
	}
	api.Success(w, groups, requestID)
}

func (h *Handler) handleGetGroup(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	groupID, err := pathID(r, "groupID")
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "invalid group id", requestID)
		return
	}
	group, err := h.Store.GetGroup(r.Context(), groupID)
	if err != nil {
		if errors.Is(err, structure.ErrGroupNotFound) {
			api.Fail(w, http.StatusNotFound, "group_not_found", "group not found", requestID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "group_get_failed", "failed to load group", requestID)
		return
	}
	api.Success(w, group, requestID)
}

func (h *Handler) handleCreateGroup(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	var g structure.Group
	if err := json.NewDecoder(r.Body).Decode(&g); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_body", "invalid request body", requestID)
		return
	}
	if strings.TrimSpace(g.Name) == "" {
		api.Fail(w, http.StatusBadRequest, "missing_name", "group name is required", requestID)
		return
	}
	id, err := h.Store.CreateGroup(r.Context(), g)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "group_create_failed", "failed to create group", requestID)
		return
	}
	g.GroupID = id
	api.Created(w, g, requestID)
}

func (h *Handler) handleUpdateGroup(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	groupID, err := pathID(r, "groupID")
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "invalid group id", requestID)
		return
	}
	var g structure.Group
	if err := json.NewDecoder(r.Body).Decode(&g); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_body", "invalid request body", requestID)
		return
	}
	g.GroupID = groupID
	if err := h.Store.UpdateGroup(r.Context(), g); err != nil {
		if errors.Is(err, structure.ErrGroupNotFound) {
			api.Fail(w, http.StatusNotFound, "group_not_found", "group not found", requestID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "group_update_failed", "failed to update group", requestID)
		return
	}
	api.Success(w, g, requestID)
}

func (h *Handler) handleDeleteGroup(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	groupID, err := pathID(r, "groupID")
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "invalid group id", requestID)
		return
	}
	if err := h.Store.DeleteGroup(r.Context(), groupID); err != nil {
		switch {
		case errors.Is(err, structure.ErrGroupNotFound):
			api.Fail(w, http.StatusNotFound, "group_not_found", "group not found", requestID)
		case errors.Is(err, structure.ErrGroupHasSubGroups):
			api.Fail(w, http.StatusConflict, "group_has_subgroups", err.Error(), requestID)
		default:
			api.Fail(w, http.StatusInternalServerError, "group_delete_failed", "failed to delete group", requestID)
		}
		return
	}
	api.Success(w, map[string]any{"deleted": true}, requestID)
}

func (h *Handler) handleListSubGroups(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	subgroups, err := h.Store.ListSubGroups(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "subgroups_list_failed", "failed to list subgroups", requestID)
		return
	}
	api.Success(w, subgroups, requestID)
}

func (h *Handler) handleListSubGroupsByGroup(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	groupID, err := pathID(r, "groupID")
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "invalid group id", requestID)
		return
	}
	subgroups, err := h.Store.ListSubGroupsByGroup(r.Context(), groupID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "subgroups_list_failed", "failed to list subgroups", requestID)
		return
	}
	api.Success(w, subgroups, requestID)
}

func (h *Handler) handleCreateSubGroup(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	var sg structure.SubGroup
	if err := json.NewDecoder(r.Body).Decode(&sg); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_body", "invalid request body", requestID)
		return
	}
	if sg.GroupID == 0 || strings.TrimSpace(sg.Name) == "" {
		api.Fail(w, http.StatusBadRequest, "missing_fields", "groupId and name are required", requestID)
		return
	}
	id, err := h.Store.CreateSubGroup(r.Context(), sg)
	if err != nil {
		if errors.Is(err, structure.ErrGroupNotFound) {
			api.Fail(w, http.StatusNotFound, "group_not_found", "group not found", requestID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "subgroup_create_failed", "failed to create subgroup", requestID)
		return
	}
	sg.SubGroupID = id
	api.Created(w, sg, requestID)
}

func (h *Handler) handleUpdateSubGroup(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	subGroupID, err := pathID(r, "subGroupID")
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "invalid subgroup id", requestID)
		return
	}
	var sg structure.SubGroup
	if err := json.NewDecoder(r.Body).Decode(&sg); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_body", "invalid request body", requestID)
		return
	}
	sg.SubGroupID = subGroupID
	if err := h.Store.UpdateSubGroup(r.Context(), sg); err != nil {
		if errors.Is(err, structure.ErrSubGroupNotFound) {
			api.Fail(w, http.StatusNotFound, "subgroup_not_found", "subgroup not found", requestID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "subgroup_update_failed", "failed to update subgroup", requestID)
		return
	}
	api.Success(w, sg, requestID)
}

func (h *Handler) handleDeleteSubGroup(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	subGroupID, err := pathID(r, "subGroupID")
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "invalid subgroup id", requestID)
		return
	}
	if err := h.Store.DeleteSubGroup(r.Context(), subGroupID); err != nil {
		if errors.Is(err, structure.ErrSubGroupNotFound) {
			api.Fail(w, http.StatusNotFound, "subgroup_not_found", "subgroup not found", requestID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "subgroup_delete_failed", "failed to delete subgroup", requestID)
		return
	}
	api.Success(w, map[string]any{"deleted": true}, requestID)
}

func (h *Handler) handleListItemsBySubGroup(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	subGroupID, err := pathID(r, "subGroupID")
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "invalid subgroup id", requestID)
		return
	}
	items, err := h.Store.ListItemsBySubGroup(r.Context(), subGroupID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "items_list_failed", "failed to list items", requestID)
		return
	}
	api.Success(w, items, requestID)
}

func (h *Handler) handleListItemsByGroup(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	groupID, err := pathID(r, "groupID")
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "invalid group id", requestID)
		return
	}
	items, err := h.Store.ListItemsByGroup(r.Context(), groupID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "items_list_failed", "failed to list items", requestID)
		return
	}
	api.Success(w, items, requestID)
}

func (h *Handler) handleCreateItem(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	var it structure.Item
	if err := json.NewDecoder(r.Body).Decode(&it); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_body", "invalid request body", requestID)
		return
	}
	if strings.TrimSpace(it.Description) == "" {
		api.Fail(w, http.StatusBadRequest, "missing_description", "item description is required", requestID)
		return
	}
	id, err := h.Store.CreateItem(r.Context(), it)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "item_create_failed", "failed to create item", requestID)
		return
	}
	it.ItemID = id
	api.Created(w, it, requestID)
}

func (h *Handler) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	itemID, err := pathID(r, "itemID")
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "invalid item id", requestID)
		return
	}
	var it structure.Item
	if err := json.NewDecoder(r.Body).Decode(&it); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_body", "invalid request body", requestID)
		return
	}
	it.ItemID = itemID
	if err := h.Store.UpdateItem(r.Context(), it); err != nil {
		if errors.Is(err, structure.ErrItemNotFound) {
			api.Fail(w, http.StatusNotFound, "item_not_found", "item not found", requestID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "item_update_failed", "failed to update item", requestID)
		return
	}
	api.Success(w, it, requestID)
}

func (h *Handler) handleDeleteItem(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	itemID, err := pathID(r, "itemID")
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "invalid item id", requestID)
		return
	}
	cascade := r.URL.Query().Get("cascade") == "true"
	if err := h.Store.DeleteItem(r.Context(), itemID, cascade); err != nil {
		switch {
		case errors.Is(err, structure.ErrItemNotFound):
			api.Fail(w, http.StatusNotFound, "item_not_found", "item not found", requestID)
		case errors.Is(err, structure.ErrItemHasScores):
			api.Fail(w, http.StatusConflict, "item_has_scores", err.Error(), requestID)
		default:
			api.Fail(w, http.StatusInternalServerError, "item_delete_failed", "failed to delete item", requestID)
		}
		return
	}
	api.Success(w, map[string]any{"deleted": true}, requestID)
}

func pathID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, name), 10, 64)
}
