package utils

import "strings"

// Basename 返回路径的最后一段，去掉所有前导目录
// 与 filepath.Base 不同：空串和 "/" 都返回 ""，而不是 "." 或 "/"
func Basename(p string) string {
	p = strings.TrimRight(p, "/")
	if i := strings.LastIndexByte(p, '/'); i >= 0 {
		return p[i+1:]
	}
	return p
}
