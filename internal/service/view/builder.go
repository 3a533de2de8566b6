// Package view 把存储的记录表投影为单年编辑视图与全年份仪表盘
package view

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"go.uber.org/zap"

	"gcgviz/internal/logging"
	"gcgviz/internal/metrics"
	"gcgviz/internal/model"
	"gcgviz/internal/service/classify"
	"gcgviz/internal/service/reconcile"
	"gcgviz/internal/service/scoring"
	"gcgviz/internal/store"
)

// ErrYearNotFound 年份没有任何记录
var ErrYearNotFound = errors.New("year not found")

// Builder 视图构建器（只读，不加锁）
type Builder struct {
	store  store.TableStore
	logger *zap.Logger
}

// NewBuilder 创建视图构建器
func NewBuilder(ts store.TableStore, logger *zap.Logger) *Builder {
	return &Builder{store: ts, logger: logging.OrNop(logger)}
}

// load 读取全表；读取失败按空表处理
func (b *Builder) load(ctx context.Context, caller string) []model.Record {
	start := time.Now()
	records, err := b.store.Load(ctx)
	metrics.StoreLoadDuration.WithLabelValues(caller).Observe(time.Since(start).Seconds())
	if err != nil {
		b.logger.Warn("failed to load table, treating as empty", zap.String("caller", caller), zap.Error(err))
		return nil
	}
	return records
}

// Year 构建单年视图
func (b *Builder) Year(ctx context.Context, year int) (*model.YearView, error) {
	slice := reconcile.YearSlice(b.load(ctx, "year"), year)
	if len(slice) == 0 {
		return nil, fmt.Errorf("%w: %d", ErrYearNotFound, year)
	}
	return BuildYear(year, slice), nil
}

// BuildYear 由某年份的记录构建视图
func BuildYear(year int, slice []model.Record) *model.YearView {
	auditor, kind := metadata(slice)
	v := &model.YearView{
		Year:           year,
		FormatType:     classify.ClassifyRecords(slice),
		Auditor:        auditor,
		AssessmentKind: kind,
		Rows:           []model.Record{},
		AspectSummary:  []model.AspectSummary{},
	}

	if v.IsDetailed() {
		headers := make(map[string]string)
		for _, r := range slice {
			if r.Kind == model.KindHeader && headers[r.Section] == "" {
				headers[r.Section] = r.Description
			}
		}
		for _, r := range slice {
			switch r.Kind {
			case model.KindIndicator:
				v.Rows = append(v.Rows, displayRecord(r))
			case model.KindSubtotal:
				v.AspectSummary = append(v.AspectSummary, subtotalSummary(r, headers[r.Section]))
			}
		}
		v.Summary = fmt.Sprintf("%s (%d indikator + %d aspek)", v.FormatType, len(v.Rows), len(v.AspectSummary))
		return v
	}

	for _, r := range slice {
		if r.Kind == model.KindHeader || r.Kind == model.KindIndicator {
			v.Rows = append(v.Rows, displayRecord(r))
		}
	}
	v.Summary = fmt.Sprintf("%s (%d baris)", v.FormatType, len(v.Rows))
	return v
}

// Dashboard 全年份聚合
func (b *Builder) Dashboard(ctx context.Context) (*model.Dashboard, error) {
	return BuildDashboard(b.load(ctx, "dashboard")), nil
}

// BuildDashboard 由全表构建仪表盘
func BuildDashboard(records []model.Record) *model.Dashboard {
	byYear := make(map[int][]model.Record)
	for _, r := range records {
		byYear[r.Year] = append(byYear[r.Year], r)
	}

	d := &model.Dashboard{
		Years:          make(map[int]*model.YearBucket, len(byYear)),
		AvailableYears: make([]int, 0, len(byYear)),
	}
	for year, slice := range byYear {
		auditor, kind := metadata(slice)
		bucket := &model.YearBucket{
			Auditor:        auditor,
			AssessmentKind: kind,
			Records:        make([]model.Record, 0, len(slice)),
		}
		for _, r := range slice {
			bucket.Records = append(bucket.Records, displayRecord(r))
		}
		bucket.Sections, bucket.TotalScore = sectionAchievements(slice)
		d.Years[year] = bucket
		d.AvailableYears = append(d.AvailableYears, year)
	}
	slices.Sort(d.AvailableYears)
	return d
}

// sectionAchievements 每个方面的达成率与总分
// 有小计行时取小计行；旧版 BRIEF 数据没有小计，取带分值的 header 行。旧版 total 行存在时作为总分。
func sectionAchievements(slice []model.Record) ([]model.SectionAchievement, float64) {
	source := model.KindSubtotal
	if classify.CountKinds(slice).Subtotals == 0 {
		source = model.KindHeader
	}

	var (
		sections []model.SectionAchievement
		total    float64
		legacy   *float64
	)
	for _, r := range slice {
		r = r.Sanitized()
		if r.Kind == model.KindTotal {
			score := r.Score
			legacy = &score
			continue
		}
		if r.Kind != source {
			continue
		}
		if source == model.KindHeader && r.Weight == 0 && r.Score == 0 {
			continue
		}
		achievement := r.Achievement
		if achievement == 0 && r.Weight != 0 {
			achievement = scoring.Achievement(r.Score, r.Weight)
		}
		sections = append(sections, model.SectionAchievement{
			Section:     r.Section,
			Weight:      r.Weight,
			Score:       r.Score,
			Achievement: achievement,
		})
		total += r.Score
	}
	if legacy != nil {
		total = *legacy
	}
	if sections == nil {
		sections = []model.SectionAchievement{}
	}
	return sections, total
}

func subtotalSummary(r model.Record, headerDescription string) model.AspectSummary {
	r = displayRecord(r)
	desc := headerDescription
	if desc == "" {
		desc = strings.TrimSpace(strings.TrimPrefix(r.Description, model.SubtotalPrefix))
	}
	return model.AspectSummary{
		Section:        r.Section,
		Description:    desc,
		ParameterCount: r.ParameterCount,
		Weight:         r.Weight,
		Score:          r.Score,
		Achievement:    r.Achievement,
		Explanation:    r.Explanation,
	}
}

// displayRecord 展示前兜底：非有限数值归零，空说明用占位符
func displayRecord(r model.Record) model.Record {
	r = r.Sanitized()
	if strings.TrimSpace(r.Explanation) == "" {
		r.Explanation = model.FallbackExplanation
	}
	return r
}

// metadata 审计方与评估类型取该年份第一行
func metadata(slice []model.Record) (auditor, kind string) {
	if len(slice) == 0 {
		return model.FallbackAssessor, model.FallbackAssessmentKind
	}
	return model.OrDefault(slice[0].Assessor, model.FallbackAssessor),
		model.OrDefault(slice[0].AssessmentKind, model.FallbackAssessmentKind)
}
