package helper

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"
)

// Upload via REST do Supabase Storage (service role key).

func uploadToSupabase(bucket, filename, contentType string, data []byte) (string, error) {
	supabaseURL := os.Getenv("SUPABASE_PROJECT_URL")
	supabaseKey := os.Getenv("SUPABASE_SERVICE_ROLE_KEY")

	if supabaseURL == "" || supabaseKey == "" {
		return "", fmt.Errorf("SUPABASE_PROJECT_URL ou SUPABASE_SERVICE_ROLE_KEY não configurado")
	}

	endpoint := fmt.Sprintf("%s/storage/v1/object/%s/%s", supabaseURL, bucket, filename)

	req, err := http.NewRequest(http.MethodPut, endpoint, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("falha ao montar request de upload: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+supabaseKey)
	req.Header.Set("Content-Type", contentType)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("falha ao enviar upload: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("upload falhou status %d: %s", resp.StatusCode, string(body))
	}

	// filename já passou pelo sanitize; escapar aqui quebraria as barras
	publicURL := fmt.Sprintf("%s/storage/v1/object/public/%s/%s",
		supabaseURL, bucket, filename)
	return publicURL, nil
}

// ParsePublicURL extrai bucket e caminho de uma URL pública do Storage
func ParsePublicURL(publicURL string) (bucket, path string, ok bool) {
	const marker = "/storage/v1/object/public/"
	idx := strings.Index(publicURL, marker)
	if idx < 0 {
		return "", "", false
	}
	parts := strings.SplitN(publicURL[idx+len(marker):], "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	unescaped, err := url.PathUnescape(parts[1])
	if err != nil {
		return "", "", false
	}
	return parts[0], unescaped, true
}

// RemovePhotoByURL apaga a foto apontada pela URL pública (troca de foto
// ou exclusão do dono). Melhor esforço: falha vira log, nunca bloqueia
// o chamador.
func RemovePhotoByURL(publicURL string) {
	bucket, path, ok := ParsePublicURL(publicURL)
	if !ok {
		return
	}
	if err := DeleteFromSupabase(bucket, path); err != nil {
		log.Printf("[STORAGE] ⚠️ falha ao remover foto antiga %s/%s: %v", bucket, path, err)
	}
}

// DeleteFromSupabase remove um objeto do bucket
func DeleteFromSupabase(bucket, path string) error {
	endpoint := fmt.Sprintf("%s/storage/v1/object/%s/%s",
		os.Getenv("SUPABASE_PROJECT_URL"), bucket, path)

	req, err := http.NewRequest(http.MethodDelete, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+os.Getenv("SUPABASE_SERVICE_ROLE_KEY"))

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("delete falhou status %d: %s", resp.StatusCode, string(body))
	}
	return nil
}
