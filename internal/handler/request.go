package handler

import (
	"encoding/json"
	"unicode/utf8"

	"github.com/tidwall/gjson"

	"research-saver/internal/model"
)

// ParseSaveRequest 解析保存请求体 {"fileName": "...", "directory": "...", "data": ...}
// 第二个返回值为 false 表示 fileName 或 data 缺失：
// JSON不合法、顶层不是对象、key不存在或值为null 都算缺失
// 非UTF-8和嵌套超过 MaxDepth 层的请求体也算JSON不合法
// directory 不检查，缺失时为 ""
func ParseSaveRequest(body []byte) (*model.SaveRequest, bool) {
	if !utf8.Valid(body) || exceedsDepth(body, MaxDepth) {
		return nil, false
	}
	// gjson的校验是递归的，必须先限制深度
	if !gjson.ValidBytes(body) {
		return nil, false
	}
	root := gjson.ParseBytes(body)
	if !root.IsObject() {
		return nil, false
	}

	// 重复的key以最后一个为准
	fields := root.Map()

	fileName, ok := fields["fileName"]
	if !ok || fileName.Type == gjson.Null {
		return nil, false
	}
	data, ok := fields["data"]
	if !ok || data.Type == gjson.Null {
		return nil, false
	}

	name, ok := scalarString(fileName)
	if !ok {
		return nil, false
	}
	dir, ok := scalarString(fields["directory"])
	if !ok {
		return nil, false
	}

	return &model.SaveRequest{
		FileName:  name,
		Directory: dir,
		Data:      json.RawMessage(data.Raw),
	}, true
}

// scalarString 把标量转成路径字符串：数字用原始字面量，true为"1"，false和null为""
// 对象和数组无法作为路径，返回 false
func scalarString(r gjson.Result) (string, bool) {
	switch r.Type {
	case gjson.Null, gjson.False:
		return "", true
	case gjson.True:
		return "1", true
	case gjson.Number:
		return r.Raw, true
	case gjson.String:
		return r.Str, true
	default:
		return "", false
	}
}

// MaxDepth 请求体允许的最大嵌套层数（顶层对象算第1层）
const MaxDepth = 512

// exceedsDepth 不递归地扫描一遍，跳过字符串内容，统计 [ 和 { 的嵌套层数
func exceedsDepth(body []byte, max int) bool {
	depth := 0
	inString, escaped := false, false
	for _, c := range body {
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '[', '{':
			depth++
			if depth > max {
				return true
			}
		case ']', '}':
			depth--
		}
	}
	return false
}
