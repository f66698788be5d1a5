package service

import (
	"context"

	"github.com/noah-isme/exam-portal/internal/models"
)

type evaluationRepository interface {
	ListAnswerSheets(ctx context.Context, status string) ([]models.AnswerSheet, error)
	ListResults(ctx context.Context, status string) ([]models.Result, error)
}

// EvaluationService lists work queued for valuators.
type EvaluationService struct {
	repo evaluationRepository
}

// NewEvaluationService constructs an EvaluationService.
func NewEvaluationService(repo evaluationRepository) *EvaluationService {
	return &EvaluationService{repo: repo}
}

// ListPendingSheets returns answer sheets awaiting evaluation.
func (s *EvaluationService) ListPendingSheets(ctx context.Context) ([]models.AnswerSheet, error) {
	sheets, err := s.repo.ListAnswerSheets(ctx, models.AnswerSheetPendingEvaluation)
	if err != nil {
		return nil, internalError(err, "failed to list answer sheets")
	}
	return sheets, nil
}

// ListPendingResults returns results awaiting approval.
func (s *EvaluationService) ListPendingResults(ctx context.Context) ([]models.Result, error) {
	results, err := s.repo.ListResults(ctx, models.ResultPendingApproval)
	if err != nil {
		return nil, internalError(err, "failed to list results")
	}
	return results, nil
}
