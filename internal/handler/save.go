package handler

import (
	"io"
	"net/http"

	"github.com/sirupsen/logrus"

	"research-saver/internal/logging"
	"research-saver/internal/metrics"
	"research-saver/internal/model"
	"research-saver/internal/service"
)

// SaveHandler 保存接口HTTP处理器
type SaveHandler struct {
	service *service.ResearchService
	metrics *metrics.Metrics
	logger  *logrus.Logger
	strict  bool // 写入失败时返回500
}

// NewSaveHandler 创建处理器
func NewSaveHandler(svc *service.ResearchService, m *metrics.Metrics, logger *logrus.Logger, strict bool) *SaveHandler {
	return &SaveHandler{
		service: svc,
		metrics: m,
		logger:  logger,
		strict:  strict,
	}
}

// Save 处理保存请求
// POST /
// Body: {"fileName": "a.json", "directory": "sub", "data": {...}}
// 所有响应都是纯文本，默认状态码200
func (h *SaveHandler) Save(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	log := logging.FromContext(r.Context(), h.logger)

	if r.Method != http.MethodPost {
		h.metrics.RecordOutcome(model.OutcomeInvalidMethod)
		log.WithField("method", r.Method).Debug("Rejected non-POST request")
		io.WriteString(w, model.MsgInvalidMethod)
		return
	}

	// 读取失败按不合法的JSON处理
	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.WithError(err).Warn("Failed to read request body")
		body = nil
	}

	req, ok := ParseSaveRequest(body)
	if !ok {
		h.metrics.RecordOutcome(model.OutcomeInvalidRequest)
		log.Debug("Request missing fileName or data")
		io.WriteString(w, model.MsgMissingFields)
		return
	}

	if _, err := h.service.Save(r.Context(), req); err != nil {
		h.metrics.RecordOutcome(model.OutcomeWriteFailed)
		if h.strict {
			http.Error(w, model.MsgSaveFailed, http.StatusInternalServerError)
			return
		}
	} else {
		h.metrics.RecordOutcome(model.OutcomeSaved)
	}

	io.WriteString(w, model.MsgSaved)
}

// Health 健康检查
func (h *SaveHandler) Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}
