package util

import (
	"crypto/rand"
	"math/big"
	"regexp"
	"strings"
)

const (
	ClassCodeLength   = 6
	classCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

var (
	classCodePattern = regexp.MustCompile(`^[A-Z0-9]{4,8}$`)
	colorPattern     = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)
)

// GenerateClassCode 生成随机班级码，唯一性由调用方检查
func GenerateClassCode() (string, error) {
	var sb strings.Builder
	max := big.NewInt(int64(len(classCodeAlphabet)))
	for i := 0; i < ClassCodeLength; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		sb.WriteByte(classCodeAlphabet[n.Int64()])
	}
	return sb.String(), nil
}

// NormalizeClassCode 去空白并转大写
func NormalizeClassCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func IsValidClassCode(code string) bool {
	return classCodePattern.MatchString(NormalizeClassCode(code))
}

func IsValidColor(color string) bool {
	return colorPattern.MatchString(strings.TrimSpace(color))
}
