package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"gcgviz/internal/logging"
	"gcgviz/internal/metrics"
	"gcgviz/internal/model"
	"gcgviz/internal/parser"
	"gcgviz/internal/service/scoring"
)

// ErrUnreadableWorkbook 上传内容不是可读取的 xlsx
var ErrUnreadableWorkbook = errors.New("unreadable workbook")

// maxSheetWorkers 并发解析 Sheet 的上限
const maxSheetWorkers = 4

// ProgressEvent 进度事件
type ProgressEvent struct {
	Type      string      `json:"type"`      // start/sheet_done/done
	Message   string      `json:"message"`   // 事件消息
	Data      interface{} `json:"data"`      // 附加数据
	Timestamp time.Time   `json:"timestamp"` // 时间戳
}

// Coordinator 上传解析协调器：只提取，不落盘
type Coordinator struct {
	mapper     *parser.FieldMapper
	recognizer *parser.SheetRecognizer
	logger     *zap.Logger
	progress   func(ProgressEvent)
}

// NewCoordinator 创建协调器
func NewCoordinator(logger *zap.Logger) *Coordinator {
	mapper := parser.NewFieldMapper()
	return &Coordinator{
		mapper:     mapper,
		recognizer: parser.NewSheetRecognizer(mapper),
		logger:     logging.OrNop(logger),
	}
}

// OnProgress 设置进度回调（可选）
func (c *Coordinator) OnProgress(fn func(ProgressEvent)) {
	c.progress = fn
}

func (c *Coordinator) sendProgress(evt ProgressEvent) {
	if c.progress == nil {
		return
	}
	evt.Timestamp = time.Now()
	c.progress(evt)
}

// sheetResult 单个 Sheet 的解析结果
type sheetResult struct {
	report  model.SheetReport
	records []model.Record
}

// Extract 解析上传的工作簿
//
// 逐个 Sheet 识别表头、判定可用性与形态；第一个可用 Sheet（按工作簿顺序）的记录作为结果。
func (c *Coordinator) Extract(ctx context.Context, filename string, r io.Reader) (*model.ExtractReport, error) {
	file, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableWorkbook, err)
	}
	defer file.Close()

	sheets := file.GetSheetList()
	report := &model.ExtractReport{
		Filename:    filepath.Base(filename),
		TotalSheets: len(sheets),
		Sheets:      make([]model.SheetReport, len(sheets)),
	}
	c.sendProgress(ProgressEvent{
		Type:    "start",
		Message: fmt.Sprintf("发现 %d 个 Sheet", len(sheets)),
		Data:    map[string]any{"filename": report.Filename, "total_sheets": len(sheets)},
	})

	// excelize 的读取不是并发安全的，先串行取出全部行
	rawRows := make([][][]string, len(sheets))
	for i, name := range sheets {
		rows, err := file.GetRows(name)
		if err != nil {
			c.logger.Warn("failed to read sheet", zap.String("sheet", name), zap.Error(err))
			continue
		}
		rawRows[i] = rows
	}

	results := make([]sheetResult, len(sheets))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxSheetWorkers)
	for i, name := range sheets {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = c.processSheet(name, rawRows[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("extract cancelled: %w", err)
	}

	for i, res := range results {
		report.Sheets[i] = res.report
		c.sendProgress(ProgressEvent{
			Type:    "sheet_done",
			Message: fmt.Sprintf("Sheet \"%s\": %d 行, 形态 %s", res.report.SheetName, res.report.RowCount, res.report.FormatType),
			Data:    res.report,
		})
		if report.SourceSheet == "" && res.report.Eligible && len(res.records) > 0 {
			report.SourceSheet = res.report.SheetName
			report.FormatType = res.report.FormatType
			report.Records = res.records
		}
	}

	if report.SourceSheet == "" {
		report.FormatType = model.FormatBrief
		report.Records = []model.Record{}
	}
	report.AspectSummary = aspectSummary(report.Records)

	metrics.UploadTotal.WithLabelValues(string(report.FormatType)).Inc()
	c.logger.Info("workbook extracted",
		zap.String("filename", report.Filename),
		zap.Int("sheets", report.TotalSheets),
		zap.String("source_sheet", report.SourceSheet),
		zap.Int("records", len(report.Records)),
	)
	c.sendProgress(ProgressEvent{Type: "done", Message: "解析完成", Data: report})
	return report, nil
}

// processSheet 识别并映射单个 Sheet
func (c *Coordinator) processSheet(name string, rows [][]string) sheetResult {
	sheet := c.recognizer.BuildSheet(name, rows)
	res := sheetResult{report: c.recognizer.Recognize(sheet)}
	if !res.report.Eligible {
		return res
	}

	for rec := range c.mapper.Map(sheet) {
		res.records = append(res.records, fillScores(rec))
	}
	res.report.Mapped = len(res.records)
	return res
}

// fillScores 补全缺失的达成率与说明
func fillScores(r model.Record) model.Record {
	if r.Achievement == 0 && r.Weight != 0 {
		r.Achievement = scoring.Achievement(r.Score, r.Weight)
	}
	if strings.TrimSpace(r.Explanation) == "" {
		r.Explanation = scoring.Label(r.Score, r.Weight)
	}
	return r
}

// aspectSummary 同一 section 出现多行时按方面汇总，否则每行即一个方面
func aspectSummary(records []model.Record) []model.AspectSummary {
	seen := make(map[string]bool, len(records))
	repeated := false
	for _, r := range records {
		if seen[r.Section] {
			repeated = true
			break
		}
		seen[r.Section] = true
	}
	if repeated {
		return scoring.SummarizeAspects(records)
	}

	out := make([]model.AspectSummary, 0, len(records))
	for _, r := range records {
		out = append(out, model.AspectSummary{
			Section:        r.Section,
			Description:    r.Description,
			ParameterCount: r.ParameterCount,
			Weight:         r.Weight,
			Score:          r.Score,
			Achievement:    r.Achievement,
			Explanation:    r.Explanation,
		})
	}
	return out
}

// ToSubmission 把提取结果转换为整年提交（方面汇总形态）
// 没有描述的方面使用 "Aspek <section>"，否则会被保存流程当作未编辑的模板行丢弃。
func ToSubmission(report *model.ExtractReport, year int, assessor, assessmentKind string) model.Submission {
	sub := model.Submission{
		Year:           year,
		Assessor:       assessor,
		AssessmentKind: assessmentKind,
		Method:         "otomatis",
	}
	for _, a := range report.AspectSummary {
		desc := strings.TrimSpace(a.Description)
		if desc == "" {
			desc = "Aspek " + a.Section
		}
		sub.AspectSummary = append(sub.AspectSummary, model.SubmissionRow{
			Section:        a.Section,
			Description:    desc,
			ParameterCount: a.ParameterCount,
			Weight:         a.Weight,
			Score:          a.Score,
			Achievement:    a.Achievement,
			Explanation:    a.Explanation,
		})
	}
	return sub
}
