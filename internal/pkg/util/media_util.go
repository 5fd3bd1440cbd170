package util

import (
	"io"
	"mime/multipart"
	"net/http"
)

// GetSafeContentType 基于文件头嗅探真实 MIME，不信任客户端声明。
// 嗅探后把读取位置复位，后续上传可从头读取。
func GetSafeContentType(reader multipart.File) (string, error) {
	buf := make([]byte, 512)
	n, err := reader.Read(buf)
	if err != nil && err != io.EOF {
		return "", err
	}

	if _, err = reader.Seek(0, io.SeekStart); err != nil {
		return "", err
	}

	return http.DetectContentType(buf[:n]), nil
}
