package controllers

import (
	"errors"
	"net/http"

	"github.com/shashiranjanraj/chefmenu/app/catalog"
	"github.com/shashiranjanraj/chefmenu/app/services"
	"github.com/shashiranjanraj/chefmenu/app/views"
	"github.com/shashiranjanraj/chefmenu/pkg/ctx"
)

// PublishRequest selects the menu card to write. Both fields are optional.
type PublishRequest struct {
	Course string `json:"course"`
	Format string `json:"format"`
}

type GuestController struct {
	menu  *catalog.Catalog
	cards *services.CardPublisher
}

func NewGuestController(menu *catalog.Catalog, cards *services.CardPublisher) *GuestController {
	return &GuestController{menu: menu, cards: cards}
}

// Menu is the diner's view. ?course= narrows it to one course.
func (h *GuestController) Menu(c *ctx.Context) {
	c.Success(views.Guest(h.menu, c.Query("course")))
}

// Publish renders the guest menu as a plain-text card and stores it on the
// default disk.
func (h *GuestController) Publish(c *ctx.Context) {
	var in PublishRequest
	if !c.DecodeOptional(&in) {
		return
	}
	if in.Format != "" && in.Format != "text" {
		c.Error(http.StatusBadRequest, "Unsupported card format")
		return
	}

	card, err := h.cards.Publish(c.Context(), in.Course)
	switch {
	case errors.Is(err, services.ErrUnknownCourse):
		c.ValidationError(map[string]FieldError{
			"course": {Code: catalog.CourseNotSelected, Message: catalog.CourseNotSelected.Message()},
		})
	case err != nil:
		c.Logger().Error("publish menu card", "error", err)
		c.Error(http.StatusInternalServerError, "Could not publish menu card")
	default:
		c.Created(card)
	}
}
