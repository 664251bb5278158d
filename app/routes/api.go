package routes

import (
	"net/http"
	"time"

	"github.com/graphql-go/graphql"

	"github.com/shashiranjanraj/chefmenu/app/catalog"
	"github.com/shashiranjanraj/chefmenu/app/controllers"
	"github.com/shashiranjanraj/chefmenu/app/services"
	"github.com/shashiranjanraj/chefmenu/pkg/ctx"
	gql "github.com/shashiranjanraj/chefmenu/pkg/graphql"
	"github.com/shashiranjanraj/chefmenu/pkg/response"
	"github.com/shashiranjanraj/chefmenu/pkg/router"
	"github.com/shashiranjanraj/chefmenu/pkg/storage"
)

// Deps is everything the HTTP routes read from or write to. A nil Cards
// publishes through a new publisher over Menu and Disks.
type Deps struct {
	Menu   *catalog.Catalog
	Disks  *storage.Manager
	Cards  *services.CardPublisher
	Schema graphql.Schema
	Chef   string
	Now    func() time.Time
}

func RegisterAPI(r *router.Router, d Deps) {
	home := controllers.NewHomeController(d.Menu, d.Chef)
	courses := controllers.NewCourseController(d.Menu)
	menu := controllers.NewMenuController(d.Menu)
	cards := d.Cards
	if cards == nil {
		cards = services.NewCardPublisher(d.Menu, d.Disks, d.Now)
	}
	guest := controllers.NewGuestController(d.Menu, cards)

	r.Get("/health", "health", func(w http.ResponseWriter, _ *http.Request) {
		response.Success(w, map[string]string{"status": "ok"})
	})

	api := r.Group("/api")
	api.Get("/home", "home.show", ctx.Wrap(home.Show))

	api.Get("/courses", "courses.index", ctx.Wrap(courses.Index))
	api.Get("/courses/{course}", "courses.show", ctx.Wrap(courses.Show))

	api.Get("/menu", "menu.index", ctx.Wrap(menu.Index))
	api.Post("/menu", "menu.store", ctx.Wrap(menu.Store))
	api.Delete("/menu/{id}", "menu.destroy", ctx.Wrap(menu.Destroy))

	api.Get("/guest/menu", "guest.menu", ctx.Wrap(guest.Menu))
	api.Post("/guest/menu/publish", "guest.publish", ctx.Wrap(guest.Publish))

	graph := gql.Handler(d.Schema)
	r.Handle(http.MethodGet, "/graphql", "", graph)
	r.Handle(http.MethodPost, "/graphql", "graphql", graph)
}
