package fs

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

func CloseOrLog(c io.Closer, what string) {
	if err := c.Close(); err != nil {
		slog.Error("failed to close: "+what, "err", err)
	}
}

// ReadText reads a whole file as text with any leading UTF-8 BOM removed.
func ReadText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimPrefix(string(data), "\ufeff"), nil
}

func WriteFile(r io.Reader, destPath string) error {
	out, err := os.Create(destPath)
	if err != nil {
		return err
	}
	defer CloseOrLog(out, destPath)
	if _, err := io.Copy(out, r); err != nil {
		return err
	}
	return nil
}
