package main

import (
	"net/http"
	"regexp"
	"time"
	"unicode"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"santunan/models"
)

var (
	phoneRE = regexp.MustCompile(`^(\+62|62|0)8[1-9][0-9]{6,10}$`)
	emailRE = regexp.MustCompile(`(?i)^[A-Z0-9._%+-]+@[A-Z0-9.-]+\.[A-Z]{2,}$`)
)

func generateToken(userID uint) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId": userID,
		"exp":    time.Now().Add(7 * 24 * time.Hour).Unix(),
	})
	return token.SignedString(jwtSecret)
}

// validatePassword applies the registration password policy: 6-10 chars,
// starts with a capital letter, contains at least one letter.
func validatePassword(password string) string {
	if len(password) == 0 || !unicode.IsUpper(rune(password[0])) {
		return "Password harus diawali dengan huruf kapital"
	}
	hasLetter := false
	for _, r := range password {
		if unicode.IsLetter(r) {
			hasLetter = true
			break
		}
	}
	if !hasLetter {
		return "Password harus mengandung huruf"
	}
	if len(password) < 6 {
		return "Password minimal 6 karakter"
	}
	if len(password) > 10 {
		return "Password maksimal 10 karakter"
	}
	return ""
}

func sanitizeUser(u *models.User) gin.H {
	return gin.H{
		"id":        u.ID,
		"name":      u.Name,
		"email":     u.Email,
		"phone":     u.Phone,
		"role":      u.Role,
		"createdAt": u.CreatedAt,
	}
}

func registerHandler(c *gin.Context) {
	var req struct {
		Name     string  `json:"name"`
		Email    *string `json:"email"` // optional
		Password string  `json:"password"`
		Phone    string  `json:"phone"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Format permintaan tidak valid")
		return
	}
	if req.Name == "" || req.Password == "" || req.Phone == "" {
		respondError(c, http.StatusBadRequest, "Nama, No. Telepon, dan password wajib diisi")
		return
	}
	if !phoneRE.MatchString(req.Phone) {
		respondError(c, http.StatusBadRequest, "Format No. Telepon tidak valid")
		return
	}
	if msg := validatePassword(req.Password); msg != "" {
		respondError(c, http.StatusBadRequest, msg)
		return
	}
	if req.Email != nil && *req.Email != "" {
		var existing models.User
		if err := db.Where("email = ?", *req.Email).First(&existing).Error; err == nil {
			respondError(c, http.StatusBadRequest, "Email sudah terdaftar")
			return
		}
	} else {
		req.Email = nil
	}
	var existing models.User
	if err := db.Where("phone = ?", req.Phone).First(&existing).Error; err == nil {
		respondError(c, http.StatusBadRequest, "No. Telepon sudah terdaftar")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Terjadi kesalahan server")
		return
	}
	user := models.User{
		Name:           req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
		HashedPassword: hashed,
		Role:           models.RoleUser,
	}
	if err := db.Create(&user).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Terjadi kesalahan server")
		return
	}
	token, err := generateToken(user.ID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Terjadi kesalahan server")
		return
	}
	respondCreated(c, "Registrasi berhasil", gin.H{"user": sanitizeUser(&user), "token": token})
}

func loginHandler(c *gin.Context) {
	var req struct {
		Identifier string `json:"identifier"`
		Email      string `json:"email"` // legacy field name
		Password   string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Format permintaan tidak valid")
		return
	}
	identifier := req.Identifier
	if identifier == "" {
		identifier = req.Email
	}
	if identifier == "" || req.Password == "" {
		respondError(c, http.StatusBadRequest, "Email/No. Telepon dan password wajib diisi")
		return
	}

	var user models.User
	var err error
	switch {
	case emailRE.MatchString(identifier):
		err = db.Where("email = ?", identifier).First(&user).Error
	case phoneRE.MatchString(identifier):
		err = db.Where("phone = ?", identifier).First(&user).Error
	default:
		respondError(c, http.StatusBadRequest, "Format email atau nomor telepon tidak valid")
		return
	}
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Akun tidak ditemukan")
		return
	}
	if bcrypt.CompareHashAndPassword(user.HashedPassword, []byte(req.Password)) != nil {
		respondError(c, http.StatusUnauthorized, "Password salah")
		return
	}
	token, err := generateToken(user.ID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Terjadi kesalahan server")
		return
	}
	respondOK(c, "Login berhasil", gin.H{"user": sanitizeUser(&user), "token": token})
}

func getProfileHandler(c *gin.Context) {
	user, _ := currentUser(c)
	respondOK(c, "", sanitizeUser(user))
}

func updateProfileHandler(c *gin.Context) {
	user, _ := currentUser(c)
	var req struct {
		Name  string `json:"name"`
		Phone string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Format permintaan tidak valid")
		return
	}
	updates := map[string]any{"name": req.Name, "phone": req.Phone}
	if err := db.Model(user).Updates(updates).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Terjadi kesalahan server")
		return
	}
	respondOK(c, "Profil berhasil diperbarui", sanitizeUser(user))
}

func changePasswordHandler(c *gin.Context) {
	user, _ := currentUser(c)
	var req struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Format permintaan tidak valid")
		return
	}
	if req.CurrentPassword == "" || req.NewPassword == "" {
		respondError(c, http.StatusBadRequest, "Password lama dan baru wajib diisi")
		return
	}
	if len(req.NewPassword) < 6 {
		respondError(c, http.StatusBadRequest, "Password baru minimal 6 karakter")
		return
	}
	if bcrypt.CompareHashAndPassword(user.HashedPassword, []byte(req.CurrentPassword)) != nil {
		respondError(c, http.StatusBadRequest, "Password lama tidak sesuai")
		return
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Terjadi kesalahan server")
		return
	}
	err = db.Model(&models.User{}).Where("id = ?", user.ID).
		Update("hashed_password", hashed).Error
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Terjadi kesalahan server")
		return
	}
	respondOK(c, "Password berhasil diubah", nil)
}
