package store

import (
	"os"
	"path/filepath"
)

func ensureDir(path string) error {
	return os.MkdirAll(path, 0755)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// writeBytesAtomic 先写同目录下的唯一临时文件再 rename，读者只会看到旧文件或完整的新文件
func writeBytesAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := ensureDir(dir); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmp := f.Name()
	_ = f.Close()

	if err := osWriteFile(tmp, data); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	if err := osRename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}

var (
	osWriteFile = func(path string, data []byte) error { return os.WriteFile(path, data, 0644) }
	osRename    = func(old string, new string) error { return os.Rename(old, new) }
)
