package utils

import "strings"

// NormalizePhone 登录查询前只保留数字（空格/横线/加号全部去掉）
func NormalizePhone(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
