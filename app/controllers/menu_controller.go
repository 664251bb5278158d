package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/chefmenu/app/catalog"
	"github.com/shashiranjanraj/chefmenu/app/views"
	"github.com/shashiranjanraj/chefmenu/pkg/bind"
	"github.com/shashiranjanraj/chefmenu/pkg/ctx"
	"github.com/shashiranjanraj/chefmenu/pkg/resource"
)

// MenuItemRequest is the add-dish form. Price accepts "285.00" or 285.
type MenuItemRequest struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Course      string    `json:"course"`
	Price       bind.Text `json:"price"`
}

// FieldError is one inline form error.
type FieldError struct {
	Code    catalog.Violation `json:"code"`
	Message string            `json:"message"`
}

// FieldErrors maps each invalid form field to its error.
func FieldErrors(verr *catalog.ValidationError) map[string]FieldError {
	out := make(map[string]FieldError, len(verr.Violations()))
	for _, v := range verr.Violations() {
		out[v.Field()] = FieldError{Code: v, Message: v.Message()}
	}
	return out
}

type MenuController struct {
	menu *catalog.Catalog
}

func NewMenuController(menu *catalog.Catalog) *MenuController {
	return &MenuController{menu: menu}
}

// Index lists every dish with the menu totals.
func (h *MenuController) Index(c *ctx.Context) {
	items := h.menu.AllItems()
	c.Success(resource.CollectionOf(views.Item, items).WithMeta(resource.Map{
		"total":   len(items),
		"average": catalog.AveragePrice(items),
	}))
}

// Store adds a dish. Invalid input gets a 422 naming every broken field.
func (h *MenuController) Store(c *ctx.Context) {
	var in MenuItemRequest
	if !c.Decode(&in) {
		return
	}

	item, err := h.menu.AddItem(catalog.Candidate{
		Name:        in.Name,
		Description: in.Description,
		Course:      in.Course,
		Price:       string(in.Price),
	})
	if verr, ok := catalog.IsValidationError(err); ok {
		c.ValidationError(FieldErrors(verr))
		return
	}
	if err != nil {
		c.Logger().Error("add menu item", "error", err)
		c.Error(http.StatusInternalServerError, "Could not add menu item")
		return
	}

	c.Created(resource.New(views.Item, item))
}

// Destroy removes a dish. Unknown ids are not an error.
func (h *MenuController) Destroy(c *ctx.Context) {
	c.Success(map[string]bool{"removed": h.menu.RemoveItem(c.Param("id"))})
}
