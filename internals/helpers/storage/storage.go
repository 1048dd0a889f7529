package helper

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"regexp"
	"time"

	"github.com/google/uuid"

	"autoescola_backend/internals/configs"
)

var unsafeFilenameRe = regexp.MustCompile(`[^a-zA-Z0-9.\-_]+`)

func sanitizeFilename(filename string) string {
	return unsafeFilenameRe.ReplaceAllString(filename, "_")
}

// GenerateUniqueFilename evita colisão: pasta/data-uuid-nome
func GenerateUniqueFilename(folder, originalFilename string) string {
	timestamp := time.Now().Format("20060102")
	return fmt.Sprintf("%s/%s-%s-%s", folder, timestamp, uuid.New().String(), sanitizeFilename(originalFilename))
}

// UploadPhoto recebe o arquivo multipart, converte para webp e sobe no
// backend configurado. Retorna a URL pública.
func UploadPhoto(folder string, fileHeader *multipart.FileHeader) (string, error) {
	if fileHeader.Size > MaxPhotoSize {
		return "", fmt.Errorf("a foto deve ter no máximo 5MB")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("falha ao abrir arquivo: %w", err)
	}
	defer src.Close()

	buf := new(bytes.Buffer)
	if _, err := io.Copy(buf, src); err != nil {
		return "", fmt.Errorf("falha ao ler arquivo: %w", err)
	}

	converted, err := ConvertToWebP(buf.Bytes())
	if err != nil {
		return "", err
	}

	filename := GenerateUniqueFilename(folder, fileHeader.Filename) + ".webp"

	if configs.StorageBackend == "oss" {
		return uploadToOSS(filename, "image/webp", converted)
	}
	return uploadToSupabase("photos", filename, "image/webp", converted)
}
