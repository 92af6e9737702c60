package samples

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// SummaryVersion is the current schema version for the summary file.
const SummaryVersion = 1

// Summary records the identifiers generated by the setup sample so the
// other samples (and the operator) can reuse them.
type Summary struct {
	Version        int       `json:"version"`
	ResourceGroup  string    `json:"resource_group"`
	VaultName      string    `json:"vault_name"`
	VaultURL       string    `json:"vault_url"`
	TenantID       string    `json:"tenant_id"`
	SubscriptionID string    `json:"subscription_id"`
	SecretName     string    `json:"secret_name"`
	SecretWritten  bool      `json:"secret_written"`
	CreatedAt      time.Time `json:"created_at"`
}

// DefaultSummaryPath returns the default location of the summary file.
func DefaultSummaryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".cloud-samples", "config.json")
}

// WriteSummary writes the summary to path atomically.
func WriteSummary(path string, s *Summary) error {
	s.Version = SummaryVersion
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now()
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal summary: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create summary directory: %w", err)
	}

	// Write atomically using temp file
	tmpFile := path + ".tmp"
	if err := os.WriteFile(tmpFile, data, 0600); err != nil {
		return fmt.Errorf("failed to write temp summary file: %w", err)
	}

	if err := os.Rename(tmpFile, path); err != nil {
		os.Remove(tmpFile) // Clean up temp file
		return fmt.Errorf("failed to rename summary file: %w", err)
	}

	return nil
}

// LoadSummary reads a summary previously written by the setup sample.
func LoadSummary(path string) (*Summary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var s Summary
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("invalid summary file format: %w", err)
	}
	return &s, nil
}
