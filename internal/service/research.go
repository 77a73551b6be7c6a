package service

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/tidwall/pretty"

	"research-saver/internal/journal"
	"research-saver/internal/logging"
	"research-saver/internal/metrics"
	"research-saver/internal/model"
	"research-saver/internal/store"
	"research-saver/internal/utils"
)

// prettyOptions 4空格缩进，保持key顺序；Width为0时数组总是展开成多行
var prettyOptions = &pretty.Options{
	Width:    0,
	Prefix:   "",
	Indent:   "    ",
	SortKeys: false,
}

// PrettyJSON 格式化JSON，原样保留数字字面量和key顺序
func PrettyJSON(raw []byte) []byte {
	return pretty.PrettyOptions(raw, prettyOptions)
}

// ResearchService 研究数据保存服务
type ResearchService struct {
	store   *store.FileStore
	journal journal.Journal
	metrics *metrics.Metrics
	logger  *logrus.Logger
}

// NewResearchService 创建服务
// j 为 nil 时使用 journal.Discard
func NewResearchService(st *store.FileStore, j journal.Journal, m *metrics.Metrics, logger *logrus.Logger) *ResearchService {
	if j == nil {
		j = journal.Discard
	}
	return &ResearchService{
		store:   st,
		journal: j,
		metrics: m,
		logger:  logger,
	}
}

// Save 把 req.Data 格式化后写到 research/<basename(dir)>/<basename(fileName)>
// 写入失败时返回错误，由调用方决定是否告诉客户端
func (s *ResearchService) Save(ctx context.Context, req *model.SaveRequest) (*model.SaveResult, error) {
	dir := utils.Basename(req.Directory)
	name := utils.Basename(req.FileName)
	path := s.store.Path(dir, name)
	content := PrettyJSON(req.Data)

	log := logging.FromContext(ctx, s.logger).WithFields(logrus.Fields{
		"path":  path,
		"bytes": len(content),
	})

	start := time.Now()
	err := s.store.Write(dir, name, content)
	s.metrics.RecordWrite(len(content), time.Since(start), err == nil)

	entry := journal.Entry{
		RequestID: logging.RequestID(ctx),
		Directory: dir,
		FileName:  name,
		Path:      path,
		Bytes:     len(content),
		Outcome:   model.OutcomeSaved,
		SavedAt:   time.Now(),
	}
	if err != nil {
		entry.Outcome = model.OutcomeWriteFailed
		entry.Error = err.Error()
		log.WithError(err).Warn("Failed to write research file")
	} else {
		log.Info("Research file saved")
	}

	// 客户端断开也要把记录写完
	if jerr := s.journal.Record(context.WithoutCancel(ctx), entry); jerr != nil {
		log.WithError(jerr).Warn("Failed to record save in journal")
	}

	if err != nil {
		return nil, err
	}
	return &model.SaveResult{Path: path, Bytes: len(content)}, nil
}
