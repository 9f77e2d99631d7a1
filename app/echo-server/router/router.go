package router

import (
	"youthBanking/internal/rest"

	"github.com/labstack/echo/v4"
)

func SetupUserRoutes(api *echo.Group, handler *rest.UserHandler, authRequired echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	users := api.Group("/users")

	users.GET("/email-verification/:code", handler.VerifyEmail)
	users.POST("/register", handler.Register)
	users.POST("/login", handler.Login)
	users.POST("/logout", handler.Logout, authRequired)

	users.GET("", handler.GetAllUsers, authRequired, adminOnly)
	users.GET("/:id", handler.GetUserByID, authRequired, adminOnly)
	users.DELETE("/:id", handler.DeleteUser, authRequired, adminOnly)
}

func SetupProfileRoutes(api *echo.Group, handler *rest.ProfileHandler, authRequired echo.MiddlewareFunc) {
	profile := api.Group("/profile", authRequired)

	profile.GET("", handler.GetProfile)
	profile.PUT("", handler.UpdateProfile)
	profile.POST("/subscriptions", handler.Subscribe)
	profile.DELETE("/subscriptions/:kind/:code", handler.Unsubscribe)
}

func SetupProductRoutes(api *echo.Group, handler *rest.ProductHandler, authRequired echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	api.GET("/banks", handler.ListBanks)

	products := api.Group("/products")
	products.POST("/sync", handler.SyncProducts, authRequired, adminOnly)
	products.GET("/:kind", handler.ListProducts)
	products.GET("/:kind/:code", handler.GetProduct)
}

func SetupRecommendationRoutes(api *echo.Group, handler *rest.RecommendationHandler, authRequired echo.MiddlewareFunc) {
	api.GET("/recommendations", handler.Recommend, authRequired)
}

func SetupCommunityRoutes(api *echo.Group, handler *rest.CommunityHandler, authRequired echo.MiddlewareFunc, optionalAuth echo.MiddlewareFunc) {
	posts := api.Group("/community/posts")

	posts.GET("", handler.ListPosts)
	posts.GET("/:id", handler.GetPost, optionalAuth)
	posts.GET("/:id/comments", handler.ListComments)

	posts.POST("", handler.CreatePost, authRequired)
	posts.PUT("/:id", handler.UpdatePost, authRequired)
	posts.DELETE("/:id", handler.DeletePost, authRequired)
	posts.POST("/:id/like", handler.ToggleLike, authRequired)
	posts.POST("/:id/comments", handler.CreateComment, authRequired)
	posts.DELETE("/:id/comments/:comment_id", handler.DeleteComment, authRequired)
}

func SetupAcademyRoutes(api *echo.Group, quizHandler *rest.QuizHandler, categoryHandler *rest.CategoryHandler, authRequired echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	academy := api.Group("/academy")

	academy.GET("/difficulties", quizHandler.Difficulties)
	academy.GET("/quiz/:difficulty", quizHandler.GetQuiz)
	academy.POST("/quiz", quizHandler.SubmitQuiz, authRequired)
	academy.GET("/history", quizHandler.History, authRequired)

	academy.GET("/questions", quizHandler.ListQuestions)
	academy.GET("/questions/:id", quizHandler.GetQuestion)
	academy.POST("/questions/:id/answer", quizHandler.CheckAnswer, authRequired)

	academy.GET("/concepts/:difficulty", categoryHandler.CategoriesByDifficulty)
	academy.GET("/concepts/:difficulty/:category_id", quizHandler.ConceptStudy)

	academy.POST("/attempts/:attempt_id/certificate", quizHandler.IssueCertificate, authRequired)
	academy.GET("/certificates", quizHandler.ListCertificates, authRequired)
	academy.GET("/certificates/:id/download", quizHandler.DownloadCertificate, authRequired)

	categories := academy.Group("/categories")
	categories.GET("", categoryHandler.GetAllCategories)
	categories.GET("/:id", categoryHandler.GetCategoryByID)
	categories.POST("", categoryHandler.CreateCategory, authRequired, adminOnly)
	categories.PUT("/:id", categoryHandler.UpdateCategory, authRequired, adminOnly)
	categories.DELETE("/:id", categoryHandler.DeleteCategory, authRequired, adminOnly)
}

func SetupMetalRoutes(api *echo.Group, handler *rest.MetalHandler, authRequired echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	metal := api.Group("/metal-prices")

	metal.GET("", handler.ListPrices)
	metal.POST("/load", handler.LoadPrices, authRequired, adminOnly)
}
