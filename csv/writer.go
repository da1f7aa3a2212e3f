package csv

import (
	"bytes"
	"encoding/csv"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/DefiantLabs/crypto-tax/config"
	"github.com/DefiantLabs/crypto-tax/csv/parsers"
	"github.com/cespare/xxhash/v2"
)

// Create the CSV and write it to byte buffer
func ToCsv(rows []parsers.CsvRow, headers []string) (bytes.Buffer, error) {
	var b bytes.Buffer
	w := csv.NewWriter(&b)

	if err := w.Write(headers); err != nil {
		config.Log.Error("Error writing header to csv", err)
		return b, err
	}

	for _, row := range rows {
		csvForRow := row.GetRowForCsv()
		if err := w.Write(csvForRow); err != nil {
			config.Log.Error("Error writing row to csv", err)
			return b, err
		}
	}

	// Write any buffered data to the underlying writer (standard output).
	w.Flush()

	if err := w.Error(); err != nil {
		config.Log.Error("Error flushing csv", err)
		return b, err
	}

	return b, nil
}

// Checksum identifies a rendered report. Identical input always produces identical output,
// so the same export yields the same checksum.
func Checksum(data []byte) string {
	digest := xxhash.New()
	digest.Write(data)
	return hex.EncodeToString(digest.Sum(nil))
}

// WriteFile writes data to path atomically: readers see either the previous file or the
// complete new one, and a failed write leaves nothing behind.
func WriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("error creating temp file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()

	cleanup := func() {
		if rmErr := os.Remove(tmpName); rmErr != nil && !os.IsNotExist(rmErr) {
			config.Log.Warnf("Could not remove temp file %s: %v", tmpName, rmErr)
		}
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		cleanup()
		return fmt.Errorf("error writing %s: %w", tmpName, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		cleanup()
		return fmt.Errorf("error syncing %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("error closing %s: %w", tmpName, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		cleanup()
		return fmt.Errorf("error setting permissions on %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return fmt.Errorf("error moving report into %s: %w", path, err)
	}
	return nil
}
