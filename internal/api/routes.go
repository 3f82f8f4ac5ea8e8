package api

import (
	"net/http"

	"github.com/JaimeStill/scribe/pkg/routes"
)

func registerRoutes(mux *http.ServeMux, domain *Domain) {
	routes.Register(
		mux,
		domain.Posts.Handler().Routes(),
	)
}
