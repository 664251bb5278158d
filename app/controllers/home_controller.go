package controllers

import (
	"github.com/shashiranjanraj/chefmenu/app/catalog"
	"github.com/shashiranjanraj/chefmenu/app/models"
	"github.com/shashiranjanraj/chefmenu/app/views"
	"github.com/shashiranjanraj/chefmenu/pkg/ctx"
)

type HomeController struct {
	menu *catalog.Catalog
	chef string
}

func NewHomeController(menu *catalog.Catalog, chef string) *HomeController {
	return &HomeController{menu: menu, chef: chef}
}

func (h *HomeController) Show(c *ctx.Context) {
	c.Success(views.Home(h.menu, h.chef))
}

type CourseController struct {
	menu *catalog.Catalog
}

func NewCourseController(menu *catalog.Catalog) *CourseController {
	return &CourseController{menu: menu}
}

func (h *CourseController) Index(c *ctx.Context) {
	c.Success(models.Courses())
}

func (h *CourseController) Show(c *ctx.Context) {
	v, ok := views.Course(h.menu, models.CourseID(c.Param("course")))
	if !ok {
		c.NotFound("Course not found")
		return
	}
	c.Success(v)
}
