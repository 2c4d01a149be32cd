package main

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"santunan/pkg/notify"
)

func listNotificationsHandler(c *gin.Context) {
	user, _ := currentUser(c)
	items, err := notifier.ListForUser(user.ID)
	if err != nil {
		logrus.WithError(err).Error("list notifications failed")
		respondError(c, http.StatusInternalServerError, "Terjadi kesalahan server")
		return
	}
	respondOK(c, "", items)
}

func notificationIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "ID notifikasi tidak valid")
		return 0, false
	}
	return uint(id), true
}

func markNotificationReadHandler(c *gin.Context) {
	user, _ := currentUser(c)
	id, ok := notificationIDParam(c)
	if !ok {
		return
	}
	if err := notifier.MarkRead(user.ID, id); err != nil {
		if errors.Is(err, notify.ErrNotFound) {
			respondError(c, http.StatusNotFound, "Notifikasi tidak ditemukan")
			return
		}
		respondError(c, http.StatusInternalServerError, "Terjadi kesalahan server")
		return
	}
	respondOK(c, "Notifikasi ditandai sudah dibaca", nil)
}

func markAllNotificationsReadHandler(c *gin.Context) {
	user, _ := currentUser(c)
	if err := notifier.MarkAllRead(user.ID); err != nil {
		respondError(c, http.StatusInternalServerError, "Terjadi kesalahan server")
		return
	}
	respondOK(c, "Semua notifikasi ditandai sudah dibaca", nil)
}

func deleteNotificationHandler(c *gin.Context) {
	user, _ := currentUser(c)
	id, ok := notificationIDParam(c)
	if !ok {
		return
	}
	if err := notifier.Delete(user.ID, id); err != nil {
		if errors.Is(err, notify.ErrNotFound) {
			respondError(c, http.StatusNotFound, "Notifikasi tidak ditemukan")
			return
		}
		respondError(c, http.StatusInternalServerError, "Terjadi kesalahan server")
		return
	}
	respondOK(c, "Notifikasi berhasil dihapus", nil)
}
