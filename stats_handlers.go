package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"santunan/models"
)

func countWhere(model any, query string, args ...any) int64 {
	var n int64
	q := db.Model(model)
	if query != "" {
		q = q.Where(query, args...)
	}
	if err := q.Count(&n).Error; err != nil {
		logrus.WithError(err).Warn("stats count failed")
	}
	return n
}

func dashboardStatsHandler(c *gin.Context) {
	claimStats := gin.H{
		"total":      countWhere(&models.Claim{}, ""),
		"pending":    countWhere(&models.Claim{}, "status = ?", models.ClaimStatusPending),
		"processing": countWhere(&models.Claim{}, "status = ?", models.ClaimStatusProcessing),
		"approved":   countWhere(&models.Claim{}, "status = ?", models.ClaimStatusApproved),
		"rejected":   countWhere(&models.Claim{}, "status = ?", models.ClaimStatusRejected),
		"completed":  countWhere(&models.Claim{}, "status = ?", models.ClaimStatusCompleted),
	}
	verificationStats := gin.H{
		"total":    countWhere(&models.Verification{}, ""),
		"pending":  countWhere(&models.Verification{}, "status = ?", models.VerificationStatusPending),
		"approved": countWhere(&models.Verification{}, "status = ?", models.VerificationStatusApproved),
		"rejected": countWhere(&models.Verification{}, "status = ?", models.VerificationStatusRejected),
	}
	userStats := gin.H{
		"total":  countWhere(&models.User{}, ""),
		"admins": countWhere(&models.User{}, "role = ?", models.RoleAdmin),
		"users":  countWhere(&models.User{}, "role = ?", models.RoleUser),
	}

	type monthlyRow struct {
		Month    string `json:"month"`
		Total    int64  `json:"total"`
		Approved int64  `json:"approved"`
	}
	var monthly []monthlyRow
	since := time.Now().AddDate(0, -6, 0)
	err := db.Model(&models.Claim{}).
		Select(`to_char(submitted_at, 'YYYY-MM') AS month,
			count(*) AS total,
			sum(CASE WHEN status IN ('approved', 'completed') THEN 1 ELSE 0 END) AS approved`).
		Where("submitted_at >= ?", since).
		Group("month").
		Order("month ASC").
		Scan(&monthly).Error
	if err != nil {
		logrus.WithError(err).Error("monthly stats query failed")
		respondError(c, http.StatusInternalServerError, "Terjadi kesalahan server")
		return
	}

	var recentClaims []models.Claim
	db.Select("id", "full_name", "status", "submitted_at").
		Order("submitted_at DESC").Limit(5).Find(&recentClaims)
	var recentVerifications []models.Verification
	db.Select("id", "full_name", "status", "submitted_at").
		Order("submitted_at DESC").Limit(5).Find(&recentVerifications)

	respondOK(c, "", gin.H{
		"claims":              claimStats,
		"verifications":       verificationStats,
		"users":               userStats,
		"monthlyData":         monthly,
		"recentClaims":        recentClaims,
		"recentVerifications": recentVerifications,
	})
}

func publicStatsHandler(c *gin.Context) {
	respondOK(c, "", gin.H{
		"totalClaims": countWhere(&models.Claim{}, ""),
		"totalUsers":  countWhere(&models.User{}, "role = ?", models.RoleUser),
		"processedClaims": countWhere(&models.Claim{},
			"status IN ?", []models.ClaimStatus{models.ClaimStatusApproved, models.ClaimStatusCompleted}),
	})
}
