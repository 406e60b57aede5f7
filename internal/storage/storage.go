package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rizaldinur/crowdfunding-api/internal/config"
)

// Store 本地上传文件存储, 按用户slug分目录
type Store struct {
	root    string
	baseUrl string
}

// New 创建文件存储
func New(cfg config.StorageConfig) *Store {
	return &Store{
		root:    cfg.RootDir,
		baseUrl: cfg.BaseUrl,
	}
}

// proofDir 学生证明目录, 每个用户只保留一份证明文件
func (s *Store) proofDir(userSlug string) string {
	return filepath.Join(s.root, "users", userSlug, "proof")
}

// SaveProof 保存证明文件并返回访问URL, 写入前先清空目录中的旧文件
func (s *Store) SaveProof(userSlug, originalName string, src io.Reader) (string, error) {
	dir := s.proofDir(userSlug)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("创建上传目录失败: %w", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("读取上传目录失败: %w", err)
	}
	for _, entry := range entries {
		if entry.Type().IsRegular() {
			if err := os.Remove(filepath.Join(dir, entry.Name())); err != nil {
				return "", fmt.Errorf("清理旧文件失败: %w", err)
			}
		}
	}

	filename := userSlug + "-" + filepath.Base(originalName)
	dst, err := os.Create(filepath.Join(dir, filename))
	if err != nil {
		return "", fmt.Errorf("创建文件失败: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("写入文件失败: %w", err)
	}

	return s.baseUrl + "/" + filepath.ToSlash(filepath.Join(dir, filename)), nil
}

// RemoveProofDir 删除用户的证明目录(项目删除后的清理)
func (s *Store) RemoveProofDir(userSlug string) error {
	return os.RemoveAll(s.proofDir(userSlug))
}
