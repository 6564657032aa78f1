package routes

import (
	"net/http"

	"github.com/pixelgram/pixelgram/internal/app"
	"github.com/pixelgram/pixelgram/internal/handler"
	"github.com/pixelgram/pixelgram/internal/middleware"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	auth := handler.NewAuthHandler(app.UserService, app.Tokens)
	user := handler.NewUserHandler(app.UserService)
	post := handler.NewPostHandler(app.PostService)
	comment := handler.NewCommentHandler(app.CommentService)
	story := handler.NewStoryHandler(app.StoryService)

	requireAuth := middleware.RequireAuth(app.Gate)
	rateLimiter := middleware.RateLimitAuth()

	mux := http.NewServeMux()

	// ============================================================================
	// PUBLIC ROUTES
	// ============================================================================

	// Uploaded media (served under the same prefixes stored in the records)
	mux.Handle("GET /profile_images/", http.StripPrefix("/profile_images/", http.FileServer(http.Dir(app.Cfg.ProfileUploadPath))))
	mux.Handle("GET /story_images/", http.StripPrefix("/story_images/", http.FileServer(http.Dir(app.Cfg.StoryUploadPath))))
	mux.Handle("GET /post_images/", http.StripPrefix("/post_images/", http.FileServer(http.Dir(app.Cfg.PostUploadPath))))

	// Health
	mux.HandleFunc("GET /healthz", handler.Health)

	// Auth (rate limited)
	mux.HandleFunc("POST /api/auth/signup", rateLimiter(auth.Signup))
	mux.HandleFunc("POST /api/auth/login", rateLimiter(auth.Login))

	// ============================================================================
	// PROTECTED ROUTES (/api/*)
	// ============================================================================

	// Users
	mux.HandleFunc("GET /api/users/userId/{userId}", requireAuth(user.ByID))
	mux.HandleFunc("GET /api/users/username/{userName}", requireAuth(user.ByUsername))
	mux.HandleFunc("GET /api/users/search", requireAuth(user.Search))
	mux.HandleFunc("PUT /api/users", requireAuth(user.Update))

	// Posts
	mux.HandleFunc("GET /api/posts", requireAuth(post.Feed))
	mux.HandleFunc("POST /api/posts", requireAuth(post.Create))
	mux.HandleFunc("GET /api/posts/userId/{userId}", requireAuth(post.ByUser))
	mux.HandleFunc("GET /api/posts/postId/{postId}", requireAuth(post.ByID))
	mux.HandleFunc("DELETE /api/posts/{postId}", requireAuth(post.Delete))
	mux.HandleFunc("POST /api/posts/{postId}/like", requireAuth(post.Like))
	mux.HandleFunc("DELETE /api/posts/{postId}/like", requireAuth(post.Unlike))

	// Comments
	mux.HandleFunc("GET /api/posts/{postId}/comments", requireAuth(comment.ByPost))
	mux.HandleFunc("POST /api/posts/{postId}/comments", requireAuth(comment.Create))
	mux.HandleFunc("PUT /api/comments/{commentId}", requireAuth(comment.Update))
	mux.HandleFunc("DELETE /api/comments/{commentId}", requireAuth(comment.Delete))

	// Stories
	mux.HandleFunc("GET /api/stories", requireAuth(story.Active))
	mux.HandleFunc("POST /api/stories", requireAuth(story.Create))
	mux.HandleFunc("GET /api/stories/user/{userId}", requireAuth(story.ByUser))
	mux.HandleFunc("DELETE /api/stories/{storyId}", requireAuth(story.Delete))

	// Global middleware - executed in order (top to bottom)
	return middleware.Chain(
		mux,
		middleware.RequestLogging,
		middleware.CORS(app.Cfg.CORSAllowedOrigins),
	)
}
