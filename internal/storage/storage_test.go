package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rizaldinur/crowdfunding-api/internal/config"
	"github.com/stretchr/testify/require"
)

func TestSaveProofReplacesPreviousFile(t *testing.T) {
	root := t.TempDir()
	store := New(config.StorageConfig{RootDir: root, BaseUrl: "http://localhost:8080"})

	url, err := store.SaveProof("budi-santoso", "ktm.jpg", strings.NewReader("first"))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(url, "http://localhost:8080/"))
	require.True(t, strings.HasSuffix(url, "budi-santoso-ktm.jpg"))

	// 新文件写入前清空旧证明
	_, err = store.SaveProof("budi-santoso", "new-ktm.png", strings.NewReader("second"))
	require.NoError(t, err)

	dir := filepath.Join(root, "users", "budi-santoso", "proof")
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "budi-santoso-new-ktm.png", entries[0].Name())

	content, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	require.NoError(t, err)
	require.Equal(t, "second", string(content))
}

func TestSaveProofStripsPathFromName(t *testing.T) {
	store := New(config.StorageConfig{RootDir: t.TempDir(), BaseUrl: "http://localhost:8080"})

	// 上传文件名里的路径不落到磁盘路径上
	url, err := store.SaveProof("budi-santoso", "../../etc/passwd", strings.NewReader("x"))
	require.NoError(t, err)
	require.True(t, strings.HasSuffix(url, "budi-santoso-passwd"))
}

func TestRemoveProofDir(t *testing.T) {
	root := t.TempDir()
	store := New(config.StorageConfig{RootDir: root, BaseUrl: "http://localhost:8080"})

	_, err := store.SaveProof("budi-santoso", "ktm.jpg", strings.NewReader("proof"))
	require.NoError(t, err)

	require.NoError(t, store.RemoveProofDir("budi-santoso"))
	_, err = os.Stat(filepath.Join(root, "users", "budi-santoso", "proof"))
	require.True(t, os.IsNotExist(err))

	// 目录不存在时也不报错
	require.NoError(t, store.RemoveProofDir("nobody"))
}
