package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/quizforge/quiz-service/internal/models"
	"github.com/quizforge/quiz-service/internal/repositories"
)

const exportTimeLayout = "2006-01-02 15:04:05"

// ExportRow is one exported session with its answer detail
type ExportRow struct {
	SessionID      string         `json:"session_id"`
	UserName       string         `json:"user_name"`
	TotalScore     int            `json:"total_score"`
	TotalPossible  int            `json:"total_possible"`
	Percentage     string         `json:"percentage"`
	CompletionTime string         `json:"completion_time"`
	Answers        []ExportAnswer `json:"answers"`
}

type ExportAnswer struct {
	Question     string `json:"question"`
	Answer       string `json:"answer"`
	IsCorrect    bool   `json:"is_correct"`
	PointsEarned int    `json:"points_earned"`
}

type exportService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewExportService(repo repositories.Repository, logger *slog.Logger) ExportService {
	return &exportService{
		repo:   repo,
		logger: logger,
	}
}

func (s *exportService) ExportResults(ctx context.Context, quizID uint, format ExportFormat) (*ExportResult, error) {
	rows, err := s.collectRows(ctx, quizID)
	if err != nil {
		return nil, err
	}

	switch format {
	case ExportFormatCSV:
		return renderCSV(quizID, rows)
	case ExportFormatJSON:
		return renderJSON(quizID, rows)
	case ExportFormatXLSX:
		return renderXLSX(quizID, rows)
	default:
		return nil, ValidationErrors{*NewValidationError("format", "must be one of csv, json, xlsx", string(format))}
	}
}

func (s *exportService) collectRows(ctx context.Context, quizID uint) ([]ExportRow, error) {
	quiz, err := s.repo.Quiz().GetByIDWithQuestions(ctx, quizID)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, ErrQuizNotFound
		}
		return nil, fmt.Errorf("failed to load quiz %d: %w", quizID, err)
	}

	sessions, err := s.repo.Session().GetCompletedByQuiz(ctx, quizID)
	if err != nil {
		return nil, fmt.Errorf("failed to load sessions for quiz %d: %w", quizID, err)
	}

	answers, err := s.repo.Answer().GetByQuiz(ctx, quizID)
	if err != nil {
		return nil, fmt.Errorf("failed to load answers for quiz %d: %w", quizID, err)
	}

	questionText := make(map[uint]string, len(quiz.Questions))
	for _, question := range quiz.Questions {
		questionText[question.ID] = question.Text
	}

	answersBySession := make(map[string][]*models.Answer)
	for _, answer := range answers {
		answersBySession[answer.SessionID] = append(answersBySession[answer.SessionID], answer)
	}

	rows := make([]ExportRow, 0, len(sessions))
	for _, session := range sessions {
		row := ExportRow{
			SessionID:     session.SessionID,
			UserName:      session.UserName,
			TotalScore:    session.Score,
			TotalPossible: session.TotalPoints,
			Percentage:    fmt.Sprintf("%.2f%%", rawPercentage(session)),
		}
		if session.CompletedAt != nil {
			row.CompletionTime = session.CompletedAt.Format(exportTimeLayout)
		}

		for _, answer := range answersBySession[session.SessionID] {
			text, ok := questionText[answer.QuestionID]
			if !ok {
				text = "Unknown"
			}
			row.Answers = append(row.Answers, ExportAnswer{
				Question:     text,
				Answer:       answer.Answer,
				IsCorrect:    answer.IsCorrect,
				PointsEarned: answer.PointsEarned,
			})
		}

		rows = append(rows, row)
	}

	return rows, nil
}

func renderCSV(quizID uint, rows []ExportRow) (*ExportResult, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"Session ID", "Score", "Possible Score", "Percentage", "Completion Time"}
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, row := range rows {
		record := []string{
			row.SessionID,
			strconv.Itoa(row.TotalScore),
			strconv.Itoa(row.TotalPossible),
			row.Percentage,
			row.CompletionTime,
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush CSV: %w", err)
	}

	return &ExportResult{
		FileName:    fmt.Sprintf("quiz-%d-results.csv", quizID),
		ContentType: "text/csv",
		Data:        buf.Bytes(),
	}, nil
}

func renderJSON(quizID uint, rows []ExportRow) (*ExportResult, error) {
	data, err := json.Marshal(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal export rows: %w", err)
	}

	return &ExportResult{
		FileName:    fmt.Sprintf("quiz-%d-results.json", quizID),
		ContentType: "application/json",
		Data:        data,
	}, nil
}

func renderXLSX(quizID uint, rows []ExportRow) (*ExportResult, error) {
	f := excelize.NewFile()
	sheetName := "Results"

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"Session ID", "User Name", "Score", "Possible Score", "Percentage", "Completion Time"}
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
	}

	for rowIndex, row := range rows {
		values := []interface{}{
			row.SessionID,
			row.UserName,
			row.TotalScore,
			row.TotalPossible,
			row.Percentage,
			row.CompletionTime,
		}
		for colIndex, value := range values {
			cell := fmt.Sprintf("%c%d", 'A'+colIndex, rowIndex+2)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}

	return &ExportResult{
		FileName:    fmt.Sprintf("quiz-%d-results.xlsx", quizID),
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Data:        buf.Bytes(),
	}, nil
}
