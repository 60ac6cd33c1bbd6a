package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/FarahAbdullah11/NU-CLUBS/internal/policy"
	"github.com/FarahAbdullah11/NU-CLUBS/internal/repository"
)

var ErrExportGenerateFail = errors.New("failed to generate spreadsheet")

// ExportService spreadsheet export of the admin request listing.
// The file comes back as a buffer; the handler sets headers and writes it.
type ExportService interface {
	ExportRequests(ctx context.Context, session policy.Session, status string) (*bytes.Buffer, string, error)
}

type exportService struct {
	policy policy.Policy
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService creates an ExportService
func NewExportService(pol policy.Policy, repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{policy: pol, repo: repo, logger: logger}
}

var exportHeaders = []string{
	"Request ID", "Club", "Title", "Type", "Status",
	"Event Date", "Start", "End", "Location", "Room", "Submitted", "Decided",
}

func (s *exportService) ExportRequests(ctx context.Context, session policy.Session, status string) (*bytes.Buffer, string, error) {
	if err := s.policy.CanViewAllRequests(session); err != nil {
		return nil, "", err
	}

	filterStatus, err := parseStatusFilter(status)
	if err != nil {
		return nil, "", err
	}

	list, err := s.repo.Request.List(ctx, repository.RequestFilter{Status: filterStatus})
	if err != nil {
		return nil, "", storeError(s.logger, "list requests for export failed", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Requests"
	idx, err := f.NewSheet(sheet)
	if err != nil {
		s.logger.Error("create sheet failed", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}
	f.SetActiveSheet(idx)
	_ = f.DeleteSheet("Sheet1")

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#1F3864"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	for i, h := range exportHeaders {
		_ = f.SetCellValue(sheet, cellName(i+1, 1), h)
	}
	_ = f.SetCellStyle(sheet, cellName(1, 1), cellName(len(exportHeaders), 1), headerStyle)
	_ = f.SetColWidth(sheet, "A", "A", 11)
	_ = f.SetColWidth(sheet, "B", "B", 14)
	_ = f.SetColWidth(sheet, "C", "C", 36)
	_ = f.SetColWidth(sheet, "D", "L", 16)
	_ = f.SetPanes(sheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})

	for i, r := range toRequestResponses(list) {
		row := i + 2
		values := []interface{}{
			r.RequestID, r.ClubName, r.Title, r.Type, r.Status,
			deref(r.EventDate), deref(r.StartTime), deref(r.EndTime),
			deref(r.Location), r.RoomName, r.CreatedAt, deref(r.DecidedAt),
		}
		if err := f.SetSheetRow(sheet, cellName(1, row), &values); err != nil {
			s.logger.Error("write export row failed", zap.Int("row", row), zap.Error(err))
			return nil, "", ErrExportGenerateFail
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("write xlsx failed", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := "club_requests.xlsx"
	if filterStatus != "" {
		filename = fmt.Sprintf("club_requests_%s.xlsx", filterStatus)
	}
	return buf, filename, nil
}

// ── helpers ──

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

func deref(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
