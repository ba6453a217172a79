package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mvcarvalho/flixcatalog-backend/api/controllers"
	"github.com/mvcarvalho/flixcatalog-backend/api/middleware"
	"github.com/mvcarvalho/flixcatalog-backend/internal/castmember"
	"github.com/mvcarvalho/flixcatalog-backend/internal/category"
	"github.com/mvcarvalho/flixcatalog-backend/internal/genre"
	"github.com/mvcarvalho/flixcatalog-backend/internal/video"
	"github.com/mvcarvalho/flixcatalog-backend/pkg/config"
	"github.com/mvcarvalho/flixcatalog-backend/pkg/logger"
)

// Services groups the catalog services exposed over HTTP.
type Services struct {
	Categories  category.Service
	Genres      genre.Service
	CastMembers castmember.Service
	Videos      video.Service
}

// NewRouter assembles the catalog API.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	deps map[string]controllers.Pinger,
	svcs Services,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.HTTP.ExtraCORSOrigins...),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/categories", func(r chi.Router) {
			r.Post("/", controllers.CategoryCreate(svcs.Categories, logg))
			r.Get("/", controllers.CategoryList(svcs.Categories, logg))
			r.Get("/{categoryId}", controllers.CategoryGet(svcs.Categories, logg))
			r.Put("/{categoryId}", controllers.CategoryUpdate(svcs.Categories, logg))
			r.Delete("/{categoryId}", controllers.CategoryDelete(svcs.Categories, logg))
		})

		r.Route("/genres", func(r chi.Router) {
			r.Post("/", controllers.GenreCreate(svcs.Genres, logg))
			r.Get("/", controllers.GenreList(svcs.Genres, logg))
			r.Get("/{genreId}", controllers.GenreGet(svcs.Genres, logg))
			r.Put("/{genreId}", controllers.GenreUpdate(svcs.Genres, logg))
			r.Delete("/{genreId}", controllers.GenreDelete(svcs.Genres, logg))
		})

		r.Route("/cast-members", func(r chi.Router) {
			r.Post("/", controllers.CastMemberCreate(svcs.CastMembers, logg))
			r.Get("/", controllers.CastMemberList(svcs.CastMembers, logg))
			r.Get("/{castMemberId}", controllers.CastMemberGet(svcs.CastMembers, logg))
			r.Put("/{castMemberId}", controllers.CastMemberUpdate(svcs.CastMembers, logg))
			r.Delete("/{castMemberId}", controllers.CastMemberDelete(svcs.CastMembers, logg))
		})

		r.Route("/videos", func(r chi.Router) {
			r.Post("/", controllers.VideoCreate(svcs.Videos, cfg.Media, logg))
			r.Get("/", controllers.VideoList(svcs.Videos, logg))
			r.Get("/{videoId}", controllers.VideoGet(svcs.Videos, logg))
			r.Put("/{videoId}", controllers.VideoUpdate(svcs.Videos, cfg.Media, logg))
			r.Delete("/{videoId}", controllers.VideoDelete(svcs.Videos, logg))
		})
	})

	return r
}
