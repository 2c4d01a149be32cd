package main

import "github.com/gin-gonic/gin"

func setupRoutes(r *gin.Engine) {
	api := r.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/register", registerHandler)
	auth.POST("/login", loginHandler)
	auth.GET("/profile", jwtAuthMiddleware(), getProfileHandler)
	auth.PUT("/profile", jwtAuthMiddleware(), updateProfileHandler)
	auth.PUT("/change-password", jwtAuthMiddleware(), changePasswordHandler)

	claims := api.Group("/claims")
	claims.POST("", optionalAuthMiddleware(), createClaimHandler)
	claims.GET("/user", jwtAuthMiddleware(), userClaimsHandler)
	claims.GET("/search/:query", searchClaimHandler)
	claims.GET("/:claimId/documents/:documentId", claimDocumentHandler)
	claims.GET("", jwtAuthMiddleware(), adminOnly(), listClaimsHandler)
	claims.PUT("/:id/status", jwtAuthMiddleware(), adminOnly(), updateClaimStatusHandler)
	claims.POST("/:id/transfer-proof", jwtAuthMiddleware(), adminOnly(), transferProofHandler)
	claims.DELETE("/:id", jwtAuthMiddleware(), adminOnly(), deleteClaimHandler)

	verifications := api.Group("/verifications")
	verifications.POST("", createVerificationHandler)
	verifications.GET("/search/:query", searchVerificationHandler)
	verifications.GET("/:verificationId/documents/:documentId", verificationDocumentHandler)
	verifications.GET("", jwtAuthMiddleware(), adminOnly(), listVerificationsHandler)
	verifications.PUT("/:id/status", jwtAuthMiddleware(), adminOnly(), updateVerificationStatusHandler)
	verifications.DELETE("/:id", jwtAuthMiddleware(), adminOnly(), deleteVerificationHandler)

	notifications := api.Group("/notifications", jwtAuthMiddleware())
	notifications.GET("", listNotificationsHandler)
	notifications.PUT("/read-all", markAllNotificationsReadHandler)
	notifications.PUT("/:id/read", markNotificationReadHandler)
	notifications.DELETE("/:id", deleteNotificationHandler)

	stats := api.Group("/stats")
	stats.GET("/public", publicStatsHandler)
	stats.GET("/dashboard", jwtAuthMiddleware(), adminOnly(), dashboardStatsHandler)
}
