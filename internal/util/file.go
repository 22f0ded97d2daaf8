package util

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"regexp"
	"strings"
)

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// maxNameAttempts 限制同名文件的重命名次数
const maxNameAttempts = 1000

// SecureFilename 只保留安全字符，去掉目录部分
func SecureFilename(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = path.Base(path.Clean("/" + name))
	name = strings.Join(strings.Fields(name), "_")
	name = unsafeFilenameChars.ReplaceAllString(name, "")
	name = strings.Trim(name, "._")
	if name == "" {
		return "upload"
	}
	return name
}

// UniqueObjectName 在 dir 下找到未被占用的文件名，冲突时追加 _1、_2 ...
func UniqueObjectName(dir, filename string, exists func(string) (bool, error)) (string, error) {
	ext := path.Ext(filename)
	base := strings.TrimSuffix(filename, ext)

	candidate := path.Join(dir, filename)
	for i := 1; i <= maxNameAttempts; i++ {
		taken, err := exists(candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = path.Join(dir, fmt.Sprintf("%s_%d%s", base, i, ext))
	}
	return "", errors.New("too many files with the same name")
}

// DetectMimeType 读取文件头部探测 MIME 类型
func DetectMimeType(reader io.Reader) (string, error) {
	buffer := make([]byte, 512)
	n, err := reader.Read(buffer)
	if err != nil && err != io.EOF {
		return "", err
	}
	return http.DetectContentType(buffer[:n]), nil
}

// IsImage 检测是否为图片
func IsImage(mimeType string) bool {
	return strings.HasPrefix(mimeType, "image/")
}
