package main

import (
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"santunan/models"
	"santunan/pkg/docstore"
	"santunan/pkg/lifecycle"
	"santunan/pkg/notify"
)

var (
	db              *gorm.DB
	fileStore       *docstore.Store
	notifier        *notify.Emitter
	claimSvc        *lifecycle.ClaimService
	verificationSvc *lifecycle.VerificationService
)

func initDB() {
	var err error
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		logrus.Fatal("DB_DSN is not set. This project requires a Postgres DSN in DB_DSN.")
	}
	db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		logrus.WithError(err).Fatal("failed to connect postgres database")
	}
	// Control schema migrations with env DB_AUTO_MIGRATE (default true). Any permission errors will be logged and ignored.
	shouldMigrate := true
	if v := os.Getenv("DB_AUTO_MIGRATE"); v != "" {
		lv := strings.ToLower(v)
		if lv == "false" || lv == "0" || lv == "no" {
			shouldMigrate = false
		}
	}
	if shouldMigrate {
		// Migrate models individually so a failure on one doesn't block others
		for _, m := range []any{
			&models.User{},
			&models.Claim{},
			&models.ClaimDocument{},
			&models.TimelineEntry{},
			&models.Verification{},
			&models.VerificationDocument{},
			&models.Notification{},
		} {
			if err := db.AutoMigrate(m); err != nil {
				logrus.WithError(err).Warnf("migration warning (%T)", m)
			}
		}
	}
	seedDB()
}

func initServices() {
	fileStore = docstore.New(uploadBaseDir(), maxUploadSize())
	notifier = notify.NewEmitter(db, logrus.StandardLogger())
	claimSvc = lifecycle.NewClaimService(db, fileStore, notifier, logrus.StandardLogger())
	verificationSvc = lifecycle.NewVerificationService(db, fileStore, logrus.StandardLogger())
}

func seedDB() {
	// Default admin account (same credentials the frontend documents for dev)
	var count int64
	db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count)
	if count == 0 {
		hashed, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
		email := "admin@jasaraharja.co.id"
		admin := models.User{
			Name:           "Administrator",
			Email:          &email,
			Phone:          "0800000000",
			HashedPassword: hashed,
			Role:           models.RoleAdmin,
		}
		if err := db.Create(&admin).Error; err != nil {
			logrus.WithError(err).Warn("failed to seed admin user")
		} else {
			logrus.Info("seeded admin user: admin@jasaraharja.co.id / admin123")
		}
	}
	ensureUploadBase()
}

// ensureUploadBase creates the base uploads directory with its per-kind subdirectories.
func ensureUploadBase() {
	base := uploadBaseDir()
	for _, sub := range []string{"claims", "verifications"} {
		if err := os.MkdirAll(base+"/"+sub, 0o755); err != nil {
			logrus.WithError(err).Warnf("failed to create upload dir %s/%s", base, sub)
		}
	}
}

// uploadBaseDir returns the base directory for local uploads (configurable via UPLOAD_BASE env)
func uploadBaseDir() string {
	if v := os.Getenv("UPLOAD_BASE"); v != "" {
		return v
	}
	return "uploads"
}

// maxUploadSize reads MAX_FILE_SIZE in bytes, defaulting to the docstore cap.
func maxUploadSize() int64 {
	if v := os.Getenv("MAX_FILE_SIZE"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			return n
		}
	}
	return docstore.DefaultMaxSize
}
