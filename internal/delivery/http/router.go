package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"trackmygig/internal/delivery/http/controllers"
	"trackmygig/internal/delivery/http/middleware"
	"trackmygig/internal/domain"
)

// Controllers bundles every controller the router mounts.
type Controllers struct {
	Auth         *controllers.AuthController
	Concert      *controllers.ConcertController
	Favorite     *controllers.FavoriteController
	Wishlist     *controllers.WishlistController
	Review       *controllers.ReviewController
	Journal      *controllers.JournalController
	Notification *controllers.NotificationController
	Profile      *controllers.ProfileController
	Chat         *controllers.ChatController
}

// NewRouter initializes the HTTP router with all application routes
func NewRouter(c Controllers, verifier domain.TokenVerifier) *http.ServeMux {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(verifier)

	// Auth
	mux.HandleFunc("POST /auth/signup", c.Auth.SignUp)
	mux.HandleFunc("POST /auth/login", c.Auth.Login)

	// Concerts
	mux.HandleFunc("GET /concerts/search", c.Concert.Search)
	mux.HandleFunc("GET /concerts/recommended", auth(c.Concert.Recommended))
	mux.HandleFunc("GET /concerts/{concertID}", c.Concert.GetByID)
	mux.HandleFunc("GET /concerts/{concertID}/summary", c.Concert.Summary)

	// Reviews
	mux.HandleFunc("POST /concerts/{concertID}/reviews", auth(c.Review.Save))
	mux.HandleFunc("GET /concerts/{concertID}/reviews", c.Review.List)

	// Favorites
	mux.HandleFunc("POST /favorites", auth(c.Favorite.Add))
	mux.HandleFunc("GET /favorites", auth(c.Favorite.List))
	mux.HandleFunc("DELETE /favorites/{favoriteID}", auth(c.Favorite.Remove))

	// Wishlist
	mux.HandleFunc("POST /wishlist", auth(c.Wishlist.Add))
	mux.HandleFunc("GET /wishlist", auth(c.Wishlist.List))
	mux.HandleFunc("DELETE /wishlist/{wishlistID}", auth(c.Wishlist.Remove))

	// Journal
	mux.HandleFunc("POST /journal", auth(c.Journal.Create))
	mux.HandleFunc("GET /journal", auth(c.Journal.List))
	mux.HandleFunc("PATCH /journal/{entryID}", auth(c.Journal.Update))
	mux.HandleFunc("DELETE /journal/{entryID}", auth(c.Journal.Delete))

	// Notifications
	mux.HandleFunc("GET /notifications", auth(c.Notification.List))
	mux.HandleFunc("PATCH /notifications/read", auth(c.Notification.MarkRead))
	mux.HandleFunc("DELETE /notifications", auth(c.Notification.Delete))

	// Profile
	mux.HandleFunc("GET /profile", auth(c.Profile.Get))
	mux.HandleFunc("PATCH /profile", auth(c.Profile.Update))

	// Chat assistant
	mux.HandleFunc("POST /chat", auth(c.Chat.Reply))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
