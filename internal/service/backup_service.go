package service

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"digitalseekho/internal/models"
	"digitalseekho/internal/progress"
)

// BackupVersion is written into every export and checked on import
const BackupVersion = "1.0"

// KeyValueStore is a progress storage that can list its keys
type KeyValueStore interface {
	progress.Storage
	Keys() ([]string, error)
}

// BackupData represents a complete progress backup
type BackupData struct {
	Version     string           `json:"version"`
	ExportedAt  time.Time        `json:"exported_at"`
	StorageType string           `json:"storage_type"`
	Records     []ProgressBackup `json:"records"`
}

// ProgressBackup is one learner's record under its storage key
type ProgressBackup struct {
	Key      string               `json:"key"`
	Progress *models.UserProgress `json:"progress"`
}

// BackupService copies progress records between a storage backend and JSON backup files
type BackupService struct {
	store       KeyValueStore
	storageType string
	now         func() time.Time
}

// NewBackupService creates a new backup service
func NewBackupService(store KeyValueStore, storageType string) *BackupService {
	return &BackupService{store: store, storageType: storageType, now: time.Now}
}

// Export writes every readable record to a file
func (s *BackupService) Export(outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	if err := s.ExportToWriter(file); err != nil {
		return err
	}

	log.Printf("Progress exported successfully to %s", outputPath)
	return nil
}

// ExportToWriter writes every readable record as indented JSON.
// Records that cannot be decoded are skipped with a warning.
func (s *BackupService) ExportToWriter(w io.Writer) error {
	keys, err := s.store.Keys()
	if err != nil {
		return fmt.Errorf("failed to list progress keys: %w", err)
	}

	backup := &BackupData{
		Version:     BackupVersion,
		ExportedAt:  s.now().UTC(),
		StorageType: s.storageType,
		Records:     []ProgressBackup{},
	}

	for _, key := range keys {
		raw, ok, err := s.store.Get(key)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", key, err)
		}
		if !ok {
			continue
		}
		p, err := progress.DecodeProgress(raw)
		if err != nil {
			log.Printf("Warning: skipping unreadable progress %s: %v", key, err)
			continue
		}
		backup.Records = append(backup.Records, ProgressBackup{Key: key, Progress: p})
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(backup); err != nil {
		return fmt.Errorf("failed to encode backup: %w", err)
	}

	log.Printf("Exported: %d progress records", len(backup.Records))
	return nil
}

// Import restores records from a backup file
func (s *BackupService) Import(inputPath string) (int, error) {
	log.Printf("Starting progress import from %s...", inputPath)

	file, err := os.Open(inputPath)
	if err != nil {
		return 0, fmt.Errorf("failed to open input file: %w", err)
	}
	defer file.Close()

	return s.ImportFromReader(file)
}

// ImportFromReader checks every record before writing any, then stores them.
// A record replaces whatever is stored under the same key.
func (s *BackupService) ImportFromReader(reader io.Reader) (int, error) {
	var backup BackupData
	if err := json.NewDecoder(reader).Decode(&backup); err != nil {
		return 0, fmt.Errorf("failed to decode backup: %w", err)
	}
	if backup.Version != BackupVersion {
		return 0, fmt.Errorf("unsupported backup version %q", backup.Version)
	}

	encoded := make([]string, len(backup.Records))
	for i, record := range backup.Records {
		if record.Key == "" || record.Progress == nil {
			return 0, fmt.Errorf("record %d is missing its key or progress", i)
		}
		data, err := progress.EncodeProgress(record.Progress)
		if err != nil {
			return 0, fmt.Errorf("record %s: %w", record.Key, err)
		}
		// Round trip through the decoder so the same rules apply as when a learner's record is read
		if _, err := progress.DecodeProgress(data); err != nil {
			return 0, fmt.Errorf("record %s is invalid: %w", record.Key, err)
		}
		encoded[i] = data
	}

	for i, record := range backup.Records {
		if err := s.store.Set(record.Key, encoded[i]); err != nil {
			return i, fmt.Errorf("failed to import %s: %w", record.Key, err)
		}
	}

	log.Printf("Imported: %d progress records", len(backup.Records))
	return len(backup.Records), nil
}

// Clear removes every stored record
func (s *BackupService) Clear() error {
	keys, err := s.store.Keys()
	if err != nil {
		return fmt.Errorf("failed to list progress keys: %w", err)
	}
	for _, key := range keys {
		if err := s.store.Remove(key); err != nil {
			return fmt.Errorf("failed to clear %s: %w", key, err)
		}
		log.Printf("Cleared progress: %s", key)
	}
	return nil
}
