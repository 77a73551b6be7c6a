package model

import "encoding/json"

// 响应消息，状态码统一为200
const (
	MsgSaved         = "Data saved successfully"
	MsgMissingFields = "Invalid request: fileName or data missing"
	MsgInvalidMethod = "Invalid request method"
	MsgSaveFailed    = "Failed to save data"
)

// SaveRequest 解析后的保存请求
// FileName 和 Directory 是原始值（未取basename），Data 是原始JSON
type SaveRequest struct {
	FileName  string          `json:"fileName"`
	Directory string          `json:"directory"`
	Data      json.RawMessage `json:"data"`
}

// SaveResult 保存结果
type SaveResult struct {
	Path  string `json:"path"`  // research/<dir>/<name>
	Bytes int    `json:"bytes"` // 写入的字节数
}

// Outcome 一次请求的处理结果，用于日志和指标
type Outcome string

const (
	OutcomeSaved          Outcome = "saved"
	OutcomeWriteFailed    Outcome = "write_failed"
	OutcomeInvalidRequest Outcome = "invalid_request"
	OutcomeInvalidMethod  Outcome = "invalid_method"
)

// AllOutcomes 所有结果类型
var AllOutcomes = []Outcome{
	OutcomeSaved, OutcomeWriteFailed, OutcomeInvalidRequest, OutcomeInvalidMethod,
}
