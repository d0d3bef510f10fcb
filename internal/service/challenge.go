package service

import (
	"context"
	"errors"

	"github.com/utafrali/ProfileGo/internal/domain"
	"github.com/utafrali/ProfileGo/internal/repository"
	apperrors "github.com/utafrali/ProfileGo/pkg/errors"
)

// ChallengeQuestionService exposes the challenge question reference data.
type ChallengeQuestionService struct {
	questionRepo repository.ChallengeQuestionRepository
}

// NewChallengeQuestionService creates a new challenge question service.
func NewChallengeQuestionService(questionRepo repository.ChallengeQuestionRepository) *ChallengeQuestionService {
	return &ChallengeQuestionService{questionRepo: questionRepo}
}

// ReadChallengeQuestions returns all challenge questions.
func (s *ChallengeQuestionService) ReadChallengeQuestions(ctx context.Context) ([]domain.ChallengeQuestion, error) {
	return s.questionRepo.List(ctx)
}

// ReadChallengeQuestionByID retrieves a challenge question, returning nil
// when absent.
func (s *ChallengeQuestionService) ReadChallengeQuestionByID(ctx context.Context, id string) (*domain.ChallengeQuestion, error) {
	question, err := s.questionRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return question, nil
}
