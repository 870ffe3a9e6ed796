package handlers

import (
	"net/http"

	service "github.com/aaravmahajanofficial/ecommerce-backend/internal/services"
	"github.com/aaravmahajanofficial/ecommerce-backend/internal/utils"
	"github.com/aaravmahajanofficial/ecommerce-backend/internal/utils/response"
)

type ItemHandler struct {
	itemService service.ItemService
}

func NewItemHandler(itemService service.ItemService) *ItemHandler {
	return &ItemHandler{itemService: itemService}
}

// ListItems godoc
//
//	@Summary	List all items
//	@Tags		Items
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{array}		models.Item
//	@Failure	401	{object}	response.APIResponse	"Unauthorized"
//	@Router		/api/item [get]
func (h *ItemHandler) ListItems() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		items, err := h.itemService.ListItems(r.Context())
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, items)
	}
}

// GetItemByID godoc
//
//	@Summary	Get an item
//	@Tags		Items
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		int	true	"Item ID"
//	@Success	200	{object}	models.Item
//	@Failure	400	{object}	response.APIResponse	"Invalid id"
//	@Failure	404	"Item not found"
//	@Router		/api/item/{id} [get]
func (h *ItemHandler) GetItemByID() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		item, err := h.itemService.GetItemByID(r.Context(), id)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, item)
	}
}

// GetItemsByName godoc
//
//	@Summary	Find items by name
//	@Tags		Items
//	@Produce	json
//	@Security	BearerAuth
//	@Param		name	path		string	true	"Item name"
//	@Success	200		{array}		models.Item
//	@Failure	404		"No items with that name"
//	@Router		/api/item/name/{name} [get]
func (h *ItemHandler) GetItemsByName() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		name, err := utils.PathString(r, "name")
		if err != nil {
			response.Error(w, err)
			return
		}

		items, err := h.itemService.GetItemsByName(r.Context(), name)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, items)
	}
}
