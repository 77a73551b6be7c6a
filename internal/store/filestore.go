package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrInvalidName 文件名为空或指向目录本身
var ErrInvalidName = errors.New("invalid file name")

// FileStore 基于文件的研究数据存储
// 所有写入都限制在 root 目录内，不会自动创建子目录
type FileStore struct {
	root string
}

// NewFileStore 创建文件存储
func NewFileStore(root string) *FileStore {
	return &FileStore{root: root}
}

// Root 返回根目录
func (s *FileStore) Root() string {
	return s.root
}

// Path 返回文件的展示路径，如 research/sub/a.json
// dir 为空时为 research/a.json
func (s *FileStore) Path(dir, name string) string {
	return filepath.Join(s.root, dir, name)
}

// Write 写入文件，存在则覆盖
// dir 和 name 应该已经过 basename 处理；dir 不存在时返回错误
func (s *FileStore) Write(dir, name string, content []byte) error {
	if name == "" || name == "." || name == ".." {
		return fmt.Errorf("write %q: %w", s.Path(dir, name), ErrInvalidName)
	}

	root, err := os.OpenRoot(s.root)
	if err != nil {
		return fmt.Errorf("failed to open research root: %w", err)
	}
	defer root.Close()

	if err := root.WriteFile(filepath.Join(dir, name), content, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", s.Path(dir, name), err)
	}
	return nil
}
