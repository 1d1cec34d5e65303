package backup

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

const (
	filePrefix       = "carwash_backup_"
	manualFilePrefix = "carwash_manual_backup_"

	// Сколько автоматических бэкапов держим на диске
	KeepAutomatic = 10
)

// FileInfo описывает файл бэкапа в каталоге
type FileInfo struct {
	Filename  string    `json:"filename"`
	Path      string    `json:"path"`
	Timestamp time.Time `json:"timestamp"`
	Size      int64     `json:"size"`
}

// Filename строит имя файла: ISO-метка времени, двоеточия заменены на тире
func Filename(manual bool, t time.Time) string {
	stamp := strings.ReplaceAll(t.Format(time.RFC3339), ":", "-")
	prefix := filePrefix
	if manual {
		prefix = manualFilePrefix
	}
	return prefix + stamp + ".json"
}

// WriteToDir экспортирует базу и кладёт снимок в каталог бэкапов
func (e *Engine) WriteToDir(dir string, manual bool) (*FileInfo, error) {
	snap, err := e.Export()
	if err != nil {
		return nil, err
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create backup dir: %w", err)
	}

	name := Filename(manual, snap.Timestamp)
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, fmt.Errorf("write backup file: %w", err)
	}

	return &FileInfo{
		Filename:  name,
		Path:      path,
		Timestamp: snap.Timestamp,
		Size:      int64(len(data)),
	}, nil
}

// ListBackups возвращает файлы бэкапов, свежие первыми
func ListBackups(dir string) ([]FileInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []FileInfo{}, nil
		}
		return nil, err
	}

	files := make([]FileInfo, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !isBackupFile(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, FileInfo{
			Filename:  entry.Name(),
			Path:      filepath.Join(dir, entry.Name()),
			Timestamp: info.ModTime(),
			Size:      info.Size(),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Timestamp.After(files[j].Timestamp)
	})

	return files, nil
}

// PruneAutomatic удаляет автоматические бэкапы сверх лимита, старые первыми.
// Ручные бэкапы не трогаем.
func PruneAutomatic(dir string, keep int) (int, error) {
	files, err := ListBackups(dir)
	if err != nil {
		return 0, err
	}

	automatic := make([]FileInfo, 0, len(files))
	for _, f := range files {
		if strings.HasPrefix(f.Filename, filePrefix) {
			automatic = append(automatic, f)
		}
	}

	if len(automatic) <= keep {
		return 0, nil
	}

	removed := 0
	for _, f := range automatic[keep:] {
		if err := os.Remove(f.Path); err != nil {
			return removed, err
		}
		removed++
	}
	return removed, nil
}

func isBackupFile(name string) bool {
	if !strings.HasSuffix(name, ".json") {
		return false
	}
	return strings.HasPrefix(name, filePrefix) || strings.HasPrefix(name, manualFilePrefix)
}
