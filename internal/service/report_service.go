package service

import (
	"fmt"
	"io"
	"strconv"

	"digitalseekho/internal/i18n"
	"digitalseekho/internal/lesson"
	"digitalseekho/internal/models"
	"digitalseekho/internal/progress"

	"github.com/xuri/excelize/v2"
)

const (
	summarySheet = "Summary"
	lessonsSheet = "Lessons"
	badgesSheet  = "Badges"
)

var lessonHeaders = []string{"Level", "Lesson ID", "Lesson", "Completed", "Quiz Score", "Minutes Spent", "Completed At"}

// ReportService builds a spreadsheet of one learner's progress for teachers and volunteers
type ReportService struct {
	catalog *lesson.Catalog
	mode    i18n.Mode
}

// NewReportService creates a report service that titles lessons in the given language mode
func NewReportService(catalog *lesson.Catalog, mode i18n.Mode) *ReportService {
	return &ReportService{catalog: catalog, mode: mode}
}

// WriteReport writes the workbook for p to w
func (s *ReportService) WriteReport(w io.Writer, key string, p *models.UserProgress) error {
	f, err := s.build(key, p)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// SaveReport writes the workbook for p to an .xlsx file
func (s *ReportService) SaveReport(path, key string, p *models.UserProgress) error {
	f, err := s.build(key, p)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}
	return nil
}

func (s *ReportService) build(key string, p *models.UserProgress) (*excelize.File, error) {
	f := excelize.NewFile()
	f.SetSheetName("Sheet1", summarySheet)
	if _, err := f.NewSheet(lessonsSheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	if _, err := f.NewSheet(badgesSheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create style: %w", err)
	}

	for _, write := range []func(*excelize.File, int, string, *models.UserProgress) error{
		s.writeSummary,
		s.writeLessons,
		s.writeBadges,
	} {
		if err := write(f, bold, key, p); err != nil {
			f.Close()
			return nil, err
		}
	}
	return f, nil
}

func (s *ReportService) writeSummary(f *excelize.File, bold int, key string, p *models.UserProgress) error {
	rows := [][]interface{}{
		{"Learner", key},
		{"Points", p.Points},
		{"Current Level", p.CurrentLevel},
		{"Lessons Completed", p.TotalCompleted()},
		{"Last Active", p.LastActive.Format("2006-01-02 15:04")},
		{},
		{"Level", "Title", "Completed", "Total", "Percent"},
	}
	for _, level := range s.catalog.Levels() {
		completed := p.CompletedLessons(level.ID)
		total := len(level.Lessons)
		rows = append(rows, []interface{}{level.ID, i18n.T(level.Title, s.mode), completed, total, progress.LevelPercent(completed, total)})
	}

	if err := writeRows(f, summarySheet, rows); err != nil {
		return err
	}
	if err := f.SetCellStyle(summarySheet, "A1", "A5", bold); err != nil {
		return err
	}
	if err := f.SetCellStyle(summarySheet, "A7", "E7", bold); err != nil {
		return err
	}
	return f.SetColWidth(summarySheet, "A", "B", 24)
}

func (s *ReportService) writeLessons(f *excelize.File, bold int, _ string, p *models.UserProgress) error {
	header := make([]interface{}, len(lessonHeaders))
	for i, h := range lessonHeaders {
		header[i] = h
	}
	rows := [][]interface{}{header}

	for _, level := range s.catalog.Levels() {
		for _, l := range level.Lessons {
			row := []interface{}{level.ID, l.ID, i18n.T(l.Title, s.mode), "No", "", "", ""}
			if lp := p.FindLesson(level.ID, l.ID); lp != nil && lp.Completed {
				row[3] = "Yes"
				if lp.QuizScore != nil {
					row[4] = *lp.QuizScore
				}
				row[5] = strconv.FormatFloat(float64(lp.TimeSpent)/60000, 'f', 1, 64)
				row[6] = lp.CompletedAt.Format("2006-01-02 15:04")
			}
			rows = append(rows, row)
		}
	}

	if err := writeRows(f, lessonsSheet, rows); err != nil {
		return err
	}
	if err := f.SetCellStyle(lessonsSheet, "A1", "G1", bold); err != nil {
		return err
	}
	return f.SetColWidth(lessonsSheet, "B", "C", 28)
}

func (s *ReportService) writeBadges(f *excelize.File, bold int, _ string, p *models.UserProgress) error {
	rows := [][]interface{}{{"Badge", "Name", "Requirement", "Earned"}}
	for _, badge := range progress.GetAllBadges() {
		earned := "No"
		if p.HasBadge(badge.ID) {
			earned = "Yes"
		}
		rows = append(rows, []interface{}{
			string(badge.ID),
			badge.Icon + " " + i18n.T(badge.Name, s.mode),
			i18n.T(badge.Requirement, s.mode),
			earned,
		})
	}

	if err := writeRows(f, badgesSheet, rows); err != nil {
		return err
	}
	if err := f.SetCellStyle(badgesSheet, "A1", "D1", bold); err != nil {
		return err
	}
	return f.SetColWidth(badgesSheet, "B", "C", 32)
}

// writeRows fills a sheet from A1 down, one slice per row
func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for r, row := range rows {
		for c, value := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return fmt.Errorf("failed to write %s!%s: %w", sheet, cell, err)
			}
		}
	}
	return nil
}
