// Pre-check watcher: observes the verification upload directory and runs
// KTP OCR on newly stored identity documents. When a pending verification
// has no pre-check results yet, the scan outcome (extracted NIK, whether it
// matches the claimed NIK, confidence) is attached to the record so
// reviewers see it before opening the image.
//
// Run alongside the API server:
//
//	DB_DSN=... go run ./process/cmd_precheck -dir uploads/verifications
package main

import (
	"errors"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"santunan/models"
	"santunan/pkg/ktpocr"
	"santunan/pkg/lifecycle"
)

var (
	watchDir = flag.String("dir", "uploads/verifications", "verification upload directory to watch")
	scanAll  = flag.Bool("scan-existing", true, "scan files already present at startup")
	verbose  = flag.Bool("verbose", false, "log skipped files")
)

var imageExts = map[string]bool{".jpg": true, ".jpeg": true, ".png": true}

func main() {
	flag.Parse()
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	dsn := os.Getenv("DB_DSN")
	if strings.TrimSpace(dsn) == "" {
		logrus.Fatal("DB_DSN not set in environment")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		logrus.WithError(err).Fatal("failed to open db")
	}
	svc := lifecycle.NewVerificationService(db, nil, logrus.StandardLogger())

	if *scanAll {
		entries, err := os.ReadDir(*watchDir)
		if err != nil {
			logrus.WithError(err).Fatalf("cannot read %s", *watchDir)
		}
		for _, entry := range entries {
			if !entry.IsDir() {
				handleFile(db, svc, filepath.Join(*watchDir, entry.Name()))
			}
		}
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		logrus.WithError(err).Fatal("fsnotify init failed")
	}
	defer watcher.Close()
	if err := watcher.Add(*watchDir); err != nil {
		logrus.WithError(err).Fatalf("cannot watch %s", *watchDir)
	}
	logrus.WithField("dir", *watchDir).Info("pre-check watcher running")

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			// let the upload finish before opening it
			time.Sleep(500 * time.Millisecond)
			handleFile(db, svc, event.Name)
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logrus.WithError(err).Warn("watch error")
		}
	}
}

func handleFile(db *gorm.DB, svc *lifecycle.VerificationService, path string) {
	if !imageExts[strings.ToLower(filepath.Ext(path))] {
		if *verbose {
			logrus.WithField("file", path).Info("skipped: not an image")
		}
		return
	}
	relPath := "verifications/" + filepath.Base(path)

	var doc models.VerificationDocument
	err := db.Where("file_path = ? AND document_type = ?", relPath, models.DocumentKTP).
		First(&doc).Error
	if err != nil {
		if *verbose {
			logrus.WithField("file", path).Info("skipped: no ktp document row")
		}
		return
	}
	var verification models.Verification
	if err := db.First(&verification, "id = ?", doc.VerificationID).Error; err != nil {
		return
	}
	// never clobber a payload the claimant (or a previous scan) supplied
	if verification.Status != models.VerificationStatusPending || verification.PreCheckResults != "" {
		if *verbose {
			logrus.WithField("verification", verification.ID).Info("skipped: already pre-checked or reviewed")
		}
		return
	}

	result, err := ktpocr.ExtractNIK(path)
	if err != nil {
		if errors.Is(err, ktpocr.ErrNoNIK) {
			logrus.WithField("verification", verification.ID).Info("no NIK found on KTP scan")
		} else {
			logrus.WithError(err).WithField("file", path).Warn("ocr failed")
		}
		return
	}

	payload := map[string]any{
		"source":     "ocr",
		"nik":        result.NIK,
		"nikMatches": result.NIK == verification.NIK,
		"confidence": result.Confidence,
		"scannedAt":  time.Now().Format(time.RFC3339),
	}
	if err := svc.SetPreCheck(verification.ID, payload); err != nil {
		logrus.WithError(err).WithField("verification", verification.ID).Warn("pre-check update failed")
		return
	}
	logrus.WithFields(logrus.Fields{
		"verification": verification.ID,
		"nik_matches":  payload["nikMatches"],
		"confidence":   result.Confidence,
	}).Info("pre-check attached")
}
