package main

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"santunan/models"
	"santunan/pkg/lifecycle"
)

var verificationFileFields = map[string]models.DocumentType{
	"ktpFile":          models.DocumentKTP,
	"policeReportFile": models.DocumentPoliceReport,
	"stnkFile":         models.DocumentSTNK,
	"medicalFile":      models.DocumentMedicalReport,
}

func createVerificationHandler(c *gin.Context) {
	input := lifecycle.VerificationInput{
		FullName: c.PostForm("fullName"),
		NIK:      c.PostForm("nik"),
		Phone:    c.PostForm("phone"),
	}
	if email := c.PostForm("email"); email != "" {
		input.Email = &email
	}
	// The pre-check payload arrives as a JSON string field; anything that
	// does not parse is stored as-is and surfaces through the raw branch on
	// read.
	if raw := c.PostForm("preCheckResults"); raw != "" {
		var decoded any
		if err := json.Unmarshal([]byte(raw), &decoded); err == nil {
			input.PreCheck = decoded
		} else {
			input.PreCheck = raw
		}
	}

	verification, err := verificationSvc.Create(input, collectUploads(c, verificationFileFields))
	if err != nil {
		respondServiceError(c, err, "Data verifikasi tidak ditemukan")
		return
	}
	respondCreated(c, "Dokumen berhasil dikirim untuk verifikasi", gin.H{
		"verificationId": verification.ID,
		"status":         verification.Status,
	})
}

func searchVerificationHandler(c *gin.Context) {
	view, err := verificationSvc.Lookup(c.Param("query"))
	if err != nil {
		respondServiceError(c, err, "Data verifikasi tidak ditemukan")
		return
	}
	respondOK(c, "", view)
}

func listVerificationsHandler(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	filter := lifecycle.ListFilter{
		Status: c.Query("status"),
		Search: c.Query("search"),
	}
	views, total, err := verificationSvc.List(filter, page, limit)
	if err != nil {
		respondServiceError(c, err, "Data verifikasi tidak ditemukan")
		return
	}
	respondOK(c, "", gin.H{
		"verifications": views,
		"pagination":    paginationMeta(total, page, limit),
	})
}

func updateVerificationStatusHandler(c *gin.Context) {
	var req struct {
		Status     string `json:"status"`
		AdminNotes string `json:"adminNotes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Format permintaan tidak valid")
		return
	}
	user, _ := currentUser(c)
	err := verificationSvc.Transition(
		c.Param("id"),
		models.VerificationStatus(req.Status),
		user.Name,
		req.AdminNotes,
	)
	if err != nil {
		respondServiceError(c, err, "Verifikasi tidak ditemukan")
		return
	}
	respondOK(c, "Status verifikasi berhasil diupdate", nil)
}

func deleteVerificationHandler(c *gin.Context) {
	if err := verificationSvc.Delete(c.Param("id")); err != nil {
		respondServiceError(c, err, "Verifikasi tidak ditemukan")
		return
	}
	respondOK(c, "Verifikasi berhasil dihapus", nil)
}

func verificationDocumentHandler(c *gin.Context) {
	documentID, err := strconv.ParseUint(c.Param("documentId"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "ID dokumen tidak valid")
		return
	}
	doc, err := verificationSvc.Document(c.Param("verificationId"), uint(documentID))
	if err != nil {
		respondServiceError(c, err, "Dokumen tidak ditemukan")
		return
	}
	if !fileStore.Exists(doc.FilePath) {
		respondError(c, http.StatusNotFound, "File tidak ditemukan")
		return
	}
	c.File(fileStore.Abs(doc.FilePath))
}
