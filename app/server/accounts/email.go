package accounts

import "strings"

// NormalizeEmail 去掉首尾空白，并把 @ 之后的域名部分转为小写；本地部分保持原样
func NormalizeEmail(email string) string {
	email = strings.TrimSpace(email)

	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}

	return email[:at] + "@" + strings.ToLower(email[at+1:])
}
