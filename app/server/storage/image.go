package storage

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"path"
	"path/filepath"
	"strings"

	"recipe-app-api/app/server/constants"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	_ "golang.org/x/image/webp"
)

var ErrNotImage = errors.New("upload a valid image, the file you uploaded was either not an image or a corrupted image")

// InspectImage 检查上传内容是否为可以解码的图片，返回嗅探到的 MIME 类型和对应的扩展名
func InspectImage(data []byte) (string, string, error) {
	mt := mimetype.Detect(data)
	if !strings.HasPrefix(mt.String(), "image/") {
		return "", "", fmt.Errorf("%w: detected %s", ErrNotImage, mt.String())
	}

	if _, _, err := image.DecodeConfig(bytes.NewReader(data)); err != nil {
		return "", "", fmt.Errorf("%w: %w", ErrNotImage, err)
	}

	return mt.String(), mt.Extension(), nil
}

// ImageKey 生成 uploads/recipe/<随机 ID>.<扩展名> 形式的存储路径，扩展名优先使用原文件名中的
func ImageKey(filename string, fallbackExt string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" || ext == "." {
		ext = fallbackExt
	}

	return path.Join(constants.RecipeImagePathPrefix, uuid.NewString()+ext)
}
