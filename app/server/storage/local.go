package storage

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
)

var _ ImageStore = (*Local)(nil)

// Local 把文件存放在 root 目录下，由 echo 的静态文件服务以 urlPrefix 提供访问
type Local struct {
	root      string
	urlPrefix string
}

func NewLocal(root string, urlPrefix string) *Local {
	return &Local{
		root:      root,
		urlPrefix: urlPrefix,
	}
}

func (l *Local) path(key string) string {
	return filepath.Join(l.root, filepath.FromSlash(key))
}

func (l *Local) Save(_ context.Context, key string, _ string, data []byte) error {
	p := l.path(key)

	// 先创建目录
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		return fmt.Errorf("create parent directory: %w", err)
	}

	if err := os.WriteFile(p, data, 0644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	return nil
}

func (l *Local) Delete(_ context.Context, key string) error {
	if err := os.Remove(l.path(key)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove file: %w", err)
	}

	return nil
}

func (l *Local) URL(key string) string {
	u, err := url.JoinPath(l.urlPrefix, key)
	if err != nil {
		return l.urlPrefix + key
	}
	return u
}
