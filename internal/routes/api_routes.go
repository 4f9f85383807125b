package routes

import (
	"github.com/go-chi/chi/v5"

	"campus-experiment/clubdesk/internal/api"
	"campus-experiment/clubdesk/internal/auth"
	"campus-experiment/clubdesk/internal/middleware"
)

// RegisterAPIRoutes registers all API v1 routes and handlers.
// This keeps API route registration separate from the main router setup.
func RegisterAPIRoutes(r chi.Router, verifier *auth.TokenVerifier, handlers *api.Handlers) {

	r.Route("/api/v1", func(v1 chi.Router) {
		v1.Use(middleware.AuthMiddleware(verifier)) // global: all routes must be authenticated

		// Member routes: reads plus client-local state
		v1.Get("/catalog", handlers.GetCatalog())
		v1.Get("/wallets", handlers.GetWallets())
		v1.Post("/wallets/select", handlers.SelectWallet())
		v1.Get("/wallets/{wallet_id}/transactions", handlers.GetTransactions())
		v1.Post("/redeem", handlers.Redeem())
		v1.Get("/activity", handlers.GetActivity())
		v1.Get("/prefs/position", handlers.GetPosition())
		v1.Post("/prefs/position", handlers.SavePosition())
		v1.Post("/logout", handlers.Logout())

		// Leader-only group: attendance and point distribution
		v1.Group(func(leader chi.Router) {
			leader.Use(middleware.IsLeaderMiddleware())

			leader.Get("/attendance/roster", handlers.GetRoster())
			leader.Post("/attendance/refresh", handlers.RefreshRoster())
			leader.Post("/attendance/session", handlers.CreateSession())
			leader.Post("/attendance/mark", handlers.MarkEntry())
			leader.Post("/attendance/bulkMark", handlers.BulkMark())
			leader.Post("/attendance/commit", handlers.Commit())

			leader.Get("/wallets/club", handlers.GetClubWallet())
			leader.Post("/points/distribute", handlers.DistributePoints())

			// Staff-only group: catalog administration
			leader.Group(func(staff chi.Router) {
				staff.Use(middleware.IsStaffMiddleware())

				staff.Post("/catalog/items", handlers.CreateItem())
				staff.Patch("/catalog/items/{item_id}", handlers.UpdateItem())
				staff.Post("/catalog/items/{item_id}/stock", handlers.AdjustStock())
				staff.Post("/catalog/items/{item_id}/archive", handlers.ArchiveItem())
				staff.Delete("/catalog/items/{item_id}", handlers.DeleteItem())
			})
		})
	})
}
