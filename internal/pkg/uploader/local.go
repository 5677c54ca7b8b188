package uploader

import (
	"errors"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"garden_feed/internal/pkg/config"

	"github.com/google/uuid"
)

// 上传约束错误，处理器据此返回具体的失败原因
var (
	ErrFileTooLarge = errors.New("file too large")
	ErrNotImage     = errors.New("only image files are allowed")
)

// Uploader 文件上传接口
type Uploader interface {
	UploadFile(file *multipart.FileHeader) (string, error)
}

// LocalUploader 保存到本地磁盘，文件由静态路由回传
type LocalUploader struct {
	dir          string
	publicPrefix string
	maxSize      int64
}

// NewLocalUploader 创建本地上传器并确保目录存在
func NewLocalUploader(cfg config.UploadConfig) (*LocalUploader, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, err
	}
	return &LocalUploader{
		dir:          cfg.Dir,
		publicPrefix: cfg.PublicPrefix,
		maxSize:      cfg.MaxFileSize,
	}, nil
}

// UploadFile 校验大小和类型后落盘，返回公开访问路径
// 只接受 Content-Type 以 image/ 开头的文件，上限默认 5MB
func (u *LocalUploader) UploadFile(file *multipart.FileHeader) (string, error) {
	if file.Size > u.maxSize {
		return "", ErrFileTooLarge
	}
	if !strings.HasPrefix(file.Header.Get("Content-Type"), "image/") {
		return "", ErrNotImage
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	// 唯一文件名：uuid + 原扩展名
	name := uuid.New().String() + filepath.Ext(file.Filename)
	dst, err := os.Create(filepath.Join(u.dir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}

	return u.publicPrefix + "/" + name, nil
}
