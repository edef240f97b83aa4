package platform

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCreateDirectoryIfNotExists(t *testing.T) {
	tempDir := t.TempDir()
	testDir := filepath.Join(tempDir, "test_dir")

	if _, err := os.Stat(testDir); !os.IsNotExist(err) {
		t.Fatalf("Test directory already exists: %s", testDir)
	}

	if err := CreateDirectoryIfNotExists(testDir); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}

	if _, err := os.Stat(testDir); os.IsNotExist(err) {
		t.Fatalf("Directory was not created: %s", testDir)
	}

	// Second call should not fail
	if err := CreateDirectoryIfNotExists(testDir); err != nil {
		t.Fatalf("Failed to handle existing directory: %v", err)
	}
}

func TestGetHomeDownloadsDir(t *testing.T) {
	downloadsDir, err := GetHomeDownloadsDir()
	if err != nil {
		t.Fatalf("Failed to get downloads directory: %v", err)
	}

	if filepath.Base(downloadsDir) != "Downloads" {
		t.Errorf("Expected directory to end with 'Downloads', got: %s", downloadsDir)
	}
}

func TestOpenFileInManager_NonExistentFile(t *testing.T) {
	nonExistentFile := filepath.Join(t.TempDir(), "nonexistent.mp4")

	err := OpenFileInManager(nonExistentFile)
	if err == nil {
		t.Fatal("Expected error for non-existent file")
	}
	if !strings.Contains(err.Error(), "does not exist") {
		t.Errorf("Unexpected error message: %v", err)
	}

	if err := OpenFileInManager(""); err == nil {
		t.Error("Expected error for empty path")
	}
}

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		expected string
	}{
		{"plain", "My Video", "My Video"},
		{"separators", "AC/DC: Live?", "AC_DC_ Live_"},
		{"dots trimmed", "...hidden.", "hidden"},
		{"empty", "   ", DefaultOutputName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeFileName(tt.title); got != tt.expected {
				t.Errorf("SanitizeFileName(%q) = %q, expected %q", tt.title, got, tt.expected)
			}
		})
	}

	long := strings.Repeat("a", MaxOutputNameLen+40)
	if got := SanitizeFileName(long); len(got) != MaxOutputNameLen {
		t.Errorf("Expected truncation to %d chars, got %d", MaxOutputNameLen, len(got))
	}
}

func TestDefaultOutputPath(t *testing.T) {
	got := DefaultOutputPath("/tmp/out", "My Video", "mp4")
	if got != filepath.Join("/tmp/out", "My Video.mp4") {
		t.Errorf("DefaultOutputPath() = %q", got)
	}
}
