package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"sort"
	"time"

	"fablink/internal/models/db_models"
	"fablink/internal/models/response_models"
	"fablink/internal/repositories"
	"fablink/pkg/utils"
)

const trendMonths = 6

type DashboardServiceInterface interface {
	BuildReport(ctx context.Context, user *db_models.User) (*response_models.DashboardReport, error)
	// ExportCSV returns the file name and RFC 4180 content for the viewer's
	// feedback.
	ExportCSV(ctx context.Context, user *db_models.User) (string, []byte, error)
}

type DashboardService struct {
	feedbackRepo repositories.FeedbackRepository
}

func NewDashboardService(feedbackRepo repositories.FeedbackRepository) DashboardServiceInterface {
	return &DashboardService{feedbackRepo: feedbackRepo}
}

func (s *DashboardService) BuildReport(ctx context.Context, user *db_models.User) (*response_models.DashboardReport, error) {
	items, err := s.fetch(ctx, user)
	if err != nil {
		return nil, err
	}
	return Aggregate(items, time.Now()), nil
}

func (s *DashboardService) fetch(ctx context.Context, user *db_models.User) ([]db_models.Feedback, error) {
	var (
		items []db_models.Feedback
		err   error
	)
	if user.IsManufacturer() {
		items, err = s.feedbackRepo.FindByManufacturer(ctx, user.ID)
	} else {
		items, err = s.feedbackRepo.FindByConsumer(ctx, user.ID)
	}
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	return items, nil
}

// Aggregate builds the dashboard numbers from a feedback slice. Status and
// type maps always carry every key, zeroed when absent, so the chart axes
// stay stable.
func Aggregate(items []db_models.Feedback, now time.Time) *response_models.DashboardReport {
	report := &response_models.DashboardReport{
		TotalFeedback: int64(len(items)),
		ByStatus: map[string]int64{
			string(db_models.FeedbackPending):      0,
			string(db_models.FeedbackAcknowledged): 0,
			string(db_models.FeedbackResponded):    0,
		},
		ByType: map[string]int64{
			string(db_models.TypeSuggestion): 0,
			string(db_models.TypeComplaint):  0,
			string(db_models.TypePraise):     0,
		},
	}

	// Trailing six calendar months, oldest first, including the current one.
	buckets := make([]response_models.MonthBucket, trendMonths)
	bucketIdx := make(map[string]int, trendMonths)
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	for i := 0; i < trendMonths; i++ {
		key := first.AddDate(0, i-(trendMonths-1), 0).Format("Jan 2006")
		buckets[i] = response_models.MonthBucket{Month: key}
		bucketIdx[key] = i
	}

	productCounts := map[string]int64{}
	var productOrder []string

	for _, f := range items {
		report.ByStatus[string(f.Status)]++
		report.ByType[string(f.FeedbackType)]++

		if i, ok := bucketIdx[f.CreatedAt.Format("Jan 2006")]; ok {
			buckets[i].Count++
		}

		if f.Product != "" {
			if _, seen := productCounts[f.Product]; !seen {
				productOrder = append(productOrder, f.Product)
			}
			productCounts[f.Product]++
		}
	}

	// Top five products by count; equal counts keep first-seen order.
	sort.SliceStable(productOrder, func(i, j int) bool {
		return productCounts[productOrder[i]] > productCounts[productOrder[j]]
	})
	if len(productOrder) > 5 {
		productOrder = productOrder[:5]
	}
	for _, name := range productOrder {
		report.TopProducts = append(report.TopProducts, response_models.ProductCount{
			Name:  name,
			Count: productCounts[name],
		})
	}

	report.MonthlyTrend = buckets
	return report
}

var csvHeader = []string{"Feedback ID", "Consumer", "Date", "Type", "Status", "Product", "Message"}

func (s *DashboardService) ExportCSV(ctx context.Context, user *db_models.User) (string, []byte, error) {
	items, err := s.fetch(ctx, user)
	if err != nil {
		return "", nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return "", nil, utils.ErrDatabaseError
	}
	for _, f := range items {
		record := []string{
			f.ID.String(),
			f.ConsumerName,
			f.CreatedAt.Format("2006-01-02"),
			string(f.FeedbackType),
			string(f.Status),
			f.Product,
			f.Message,
		}
		if err := w.Write(record); err != nil {
			return "", nil, utils.ErrDatabaseError
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", nil, utils.ErrDatabaseError
	}

	name := "feedback-export-" + time.Now().Format("2006-01-02") + ".csv"
	return name, buf.Bytes(), nil
}
