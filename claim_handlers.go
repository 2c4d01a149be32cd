package main

import (
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"santunan/models"
	"santunan/pkg/lifecycle"
)

// claimFileFields maps multipart field names to document type tags, as the
// frontend submits them.
var claimFileFields = map[string]models.DocumentType{
	"ktpFile":           models.DocumentKTP,
	"policeReportFile":  models.DocumentPoliceReport,
	"stnkFile":          models.DocumentSTNK,
	"medicalReportFile": models.DocumentMedicalReport,
	"bankBookFile":      models.DocumentBankBook,
}

func collectUploads(c *gin.Context, fields map[string]models.DocumentType) map[models.DocumentType]*multipart.FileHeader {
	uploads := make(map[models.DocumentType]*multipart.FileHeader)
	for field, docType := range fields {
		if fh, err := c.FormFile(field); err == nil {
			uploads[docType] = fh
		}
	}
	return uploads
}

func parseDecimalForm(c *gin.Context, field string) *decimal.Decimal {
	raw := c.PostForm(field)
	if raw == "" {
		return nil
	}
	if d, err := decimal.NewFromString(raw); err == nil {
		return &d
	}
	return nil
}

func createClaimHandler(c *gin.Context) {
	input := lifecycle.ClaimInput{
		FullName:             c.PostForm("fullName"),
		NIK:                  c.PostForm("nik"),
		Phone:                c.PostForm("phone"),
		Address:              c.PostForm("address"),
		IncidentDate:         c.PostForm("incidentDate"),
		IncidentTime:         c.PostForm("incidentTime"),
		IncidentLocation:     c.PostForm("incidentLocation"),
		IncidentDescription:  c.PostForm("incidentDescription"),
		VehicleType:          c.PostForm("vehicleType"),
		VehicleNumber:        c.PostForm("vehicleNumber"),
		BankName:             c.PostForm("bankName"),
		BankBranch:           c.PostForm("bankBranch"),
		AccountNumber:        c.PostForm("accountNumber"),
		AccountHolderName:    c.PostForm("accountHolderName"),
		HospitalName:         c.PostForm("hospitalName"),
		TreatmentDescription: c.PostForm("treatmentDescription"),
		EstimatedCost:        parseDecimalForm(c, "estimatedCost"),
	}
	if user, ok := currentUser(c); ok {
		input.UserID = &user.ID
	}

	claim, err := claimSvc.Create(input, collectUploads(c, claimFileFields))
	if err != nil {
		respondServiceError(c, err, "Klaim tidak ditemukan")
		return
	}
	respondCreated(c, "Klaim berhasil diajukan", gin.H{
		"claimId": claim.ID,
		"status":  claim.Status,
	})
}

func searchClaimHandler(c *gin.Context) {
	claim, err := claimSvc.Lookup(c.Param("query"))
	if err != nil {
		respondServiceError(c, err, "Klaim tidak ditemukan")
		return
	}
	respondOK(c, "", claim)
}

func userClaimsHandler(c *gin.Context) {
	user, _ := currentUser(c)
	claims, err := claimSvc.UserClaims(user.ID)
	if err != nil {
		respondServiceError(c, err, "Klaim tidak ditemukan")
		return
	}
	respondOK(c, "", claims)
}

func listClaimsHandler(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	filter := lifecycle.ListFilter{
		Status: c.Query("status"),
		Search: c.Query("search"),
	}
	claims, total, err := claimSvc.List(filter, page, limit)
	if err != nil {
		respondServiceError(c, err, "Klaim tidak ditemukan")
		return
	}
	respondOK(c, "", gin.H{
		"claims":     claims,
		"pagination": paginationMeta(total, page, limit),
	})
}

func paginationMeta(total int64, page, limit int) gin.H {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	totalPages := total / int64(limit)
	if total%int64(limit) != 0 {
		totalPages++
	}
	return gin.H{"total": total, "page": page, "limit": limit, "totalPages": totalPages}
}

func updateClaimStatusHandler(c *gin.Context) {
	var req struct {
		Status     string `json:"status"`
		AdminNotes string `json:"adminNotes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Format permintaan tidak valid")
		return
	}
	err := claimSvc.Transition(c.Param("id"), models.ClaimStatus(req.Status), req.AdminNotes)
	if err != nil {
		respondServiceError(c, err, "Klaim tidak ditemukan")
		return
	}
	respondOK(c, "Status klaim berhasil diupdate", nil)
}

func transferProofHandler(c *gin.Context) {
	proof, _ := c.FormFile("transferProof")
	amount := parseDecimalForm(c, "transferAmount")
	claim, err := claimSvc.RecordTransferProof(
		c.Param("id"),
		proof,
		amount,
		c.PostForm("transferDate"),
		c.PostForm("transferNotes"),
	)
	if err != nil {
		respondServiceError(c, err, "Klaim tidak ditemukan")
		return
	}
	respondOK(c, "Bukti transfer berhasil diupload", gin.H{
		"transferProofPath": claim.TransferProofPath,
		"transferAmount":    claim.TransferAmount,
		"transferDate":      claim.TransferDate,
	})
}

func deleteClaimHandler(c *gin.Context) {
	if err := claimSvc.Delete(c.Param("id")); err != nil {
		respondServiceError(c, err, "Klaim tidak ditemukan")
		return
	}
	respondOK(c, "Klaim berhasil dihapus", nil)
}

func claimDocumentHandler(c *gin.Context) {
	documentID, err := strconv.ParseUint(c.Param("documentId"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "ID dokumen tidak valid")
		return
	}
	doc, err := claimSvc.Document(c.Param("claimId"), uint(documentID))
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
