package utils

import "golang.org/x/crypto/bcrypt"

// bcrypt 成本固定用默认值；注册是低频操作，不值得做成配置项
const bcryptCost = bcrypt.DefaultCost

// HashPassword 失败时返回空串，调用方按“无密文”处理
func HashPassword(pw string) string {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), bcryptCost)
	if err != nil {
		return ""
	}
	return string(b)
}

func CheckPassword(pw, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(pw)) == nil
}
