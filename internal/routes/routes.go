package routes

import (
	"net/http"
	"time"

	"github.com/objectifs/objectifs/internal/app"
	"github.com/objectifs/objectifs/internal/handler"
	"github.com/objectifs/objectifs/internal/middleware"
)

// SetupRoutes builds the API router. Closing done stops the rate limiter's
// background cleanup.
func SetupRoutes(app *app.App, done <-chan struct{}) http.Handler {
	// Handlers
	auth := handler.NewAuthHandler(app.AuthService, app.UserService)
	objectives := handler.NewObjectiveHandler(app.ObjectiveService)
	resources := handler.NewResourceHandler(app.ResourceService)
	finances := handler.NewFinanceHandler(app.FinanceService)
	quran := handler.NewQuranHandler(app.QuranService)
	culture := handler.NewCultureHandler(app.ArticleService)
	assistant := handler.NewAIHandler(app.ConversationService)
	export := handler.NewExportHandler(app.ExportService, app.FileService)

	h := handler.Handle
	requireAuth := middleware.RequireAuth(app.AuthService)
	requireAuthOrQuery := middleware.RequireAuthOrQueryToken(app.AuthService)
	protected := func(fn func(http.ResponseWriter, *http.Request) error) http.HandlerFunc {
		return requireAuth(h(fn))
	}

	// Auth: 20 requests per 15 minutes per IP
	rateLimiter := middleware.NewRateLimiter(20, 15*time.Minute, done)

	mux := http.NewServeMux()

	// ============================================================================
	// PUBLIC ROUTES
	// ============================================================================

	mux.HandleFunc("GET /health", h(handler.Health))

	mux.HandleFunc("POST /api/auth/register", rateLimiter.Limit(h(auth.Register)))
	mux.HandleFunc("POST /api/auth/login", rateLimiter.Limit(h(auth.Login)))

	// Quran
	mux.HandleFunc("GET /api/quran/surahs", h(quran.Surahs))
	mux.HandleFunc("GET /api/quran/surahs/{surah}", h(quran.Verses))
	mux.HandleFunc("GET /api/quran/surahs/{surah}/verses/{verse}", h(quran.Verse))
	mux.HandleFunc("GET /api/quran/search", h(quran.Search))

	// Culture (writes are checked against the user's role)
	mux.HandleFunc("GET /api/culture", h(culture.List))
	mux.HandleFunc("GET /api/culture/{id}", h(culture.Get))

	// ============================================================================
	// PROTECTED ROUTES
	// ============================================================================

	mux.HandleFunc("GET /api/auth/me", protected(auth.Me))

	mux.HandleFunc("POST /api/culture", protected(culture.Create))
	mux.HandleFunc("PUT /api/culture/{id}", protected(culture.Update))
	mux.HandleFunc("DELETE /api/culture/{id}", protected(culture.Delete))

	// Objectives
	mux.HandleFunc("GET /api/objectives", protected(objectives.List))
	mux.HandleFunc("POST /api/objectives", protected(objectives.Create))
	mux.HandleFunc("GET /api/objectives/statistics", protected(objectives.Statistics))
	mux.HandleFunc("POST /api/objectives/reconcile", protected(objectives.Reconcile))
	mux.HandleFunc("GET /api/objectives/{id}", protected(objectives.Get))
	mux.HandleFunc("PUT /api/objectives/{id}", protected(objectives.Update))
	mux.HandleFunc("DELETE /api/objectives/{id}", protected(objectives.Delete))
	mux.HandleFunc("PATCH /api/objectives/{id}/progress", protected(objectives.SetProgress))
	mux.HandleFunc("PATCH /api/objectives/{id}/status", protected(objectives.SetStatus))
	mux.HandleFunc("PATCH /api/objectives/{id}/comment", protected(objectives.SetComment))

	// Resources
	mux.HandleFunc("GET /api/objectives/{id}/resources", protected(resources.List))
	mux.HandleFunc("POST /api/objectives/{id}/resources", protected(resources.Create))
	mux.HandleFunc("GET /api/resources/{id}", protected(resources.Get))
	mux.HandleFunc("PUT /api/resources/{id}", protected(resources.Update))
	mux.HandleFunc("DELETE /api/resources/{id}", protected(resources.Delete))

	// Finances
	mux.HandleFunc("GET /api/finances", protected(finances.List))
	mux.HandleFunc("POST /api/finances", protected(finances.Create))
	mux.HandleFunc("GET /api/finances/stats", protected(finances.Stats))
	mux.HandleFunc("GET /api/finances/settings", protected(finances.Settings))
	mux.HandleFunc("PUT /api/finances/settings", protected(finances.UpdateSettings))
	mux.HandleFunc("GET /api/finances/{id}", protected(finances.Get))
	mux.HandleFunc("PUT /api/finances/{id}", protected(finances.Update))
	mux.HandleFunc("DELETE /api/finances/{id}", protected(finances.Delete))

	// AI assistant
	mux.HandleFunc("GET /api/ai/conversations", protected(assistant.Conversations))
	mux.HandleFunc("POST /api/ai/conversations", protected(assistant.CreateConversation))
	mux.HandleFunc("GET /api/ai/conversations/{id}", protected(assistant.Conversation))
	mux.HandleFunc("DELETE /api/ai/conversations/{id}", protected(assistant.DeleteConversation))
	mux.HandleFunc("POST /api/ai/conversations/{id}/messages", protected(assistant.AddMessage))
	mux.HandleFunc("GET /api/ai/objectives/{id}/suggestions", protected(assistant.Suggestions))
	mux.HandleFunc("GET /api/ai/objectives/{id}/news", protected(assistant.News))

	// Export (downloads may carry the token in the query string)
	mux.HandleFunc("GET /api/export/pdf", requireAuthOrQuery(h(export.PDF)))
	mux.HandleFunc("GET /api/export/excel", requireAuthOrQuery(h(export.Excel)))
	mux.HandleFunc("GET /api/export/template", requireAuthOrQuery(h(export.Template)))
	mux.HandleFunc("POST /api/export/archive", protected(export.Archive))
	mux.HandleFunc("GET /api/export/archives", protected(export.Archives))
	mux.HandleFunc("DELETE /api/export/archives/{id}", protected(export.DeleteArchive))

	mux.HandleFunc("/", h(handler.NotFound))

	return middleware.Chain(mux,
		middleware.Recover,
		middleware.RequestLogging,
		middleware.CORS(app.Cfg.CORSOrigins),
	)
}
