package utils

import (
	"strings"

	"github.com/google/uuid"
)

// GenUUID16 生成16位的请求id
func GenUUID16() string {
	s := strings.ReplaceAll(uuid.NewString(), "-", "")
	return s[:16]
}
