package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/utafrali/ProfileGo/internal/domain"
	apperrors "github.com/utafrali/ProfileGo/pkg/errors"
)

// ChallengeQuestionRepository implements repository.ChallengeQuestionRepository
// using PostgreSQL.
type ChallengeQuestionRepository struct {
	db DB
}

// NewChallengeQuestionRepository creates a new PostgreSQL-backed challenge
// question repository.
func NewChallengeQuestionRepository(db DB) *ChallengeQuestionRepository {
	return &ChallengeQuestionRepository{db: db}
}

// GetByID retrieves a challenge question by its ID.
func (r *ChallengeQuestionRepository) GetByID(ctx context.Context, id string) (*domain.ChallengeQuestion, error) {
	var q domain.ChallengeQuestion
	err := r.db.QueryRow(ctx,
		`SELECT id, question FROM challenge_questions WHERE id = $1`, id).
		Scan(&q.ID, &q.Question)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("find challenge question: %w", err)
	}
	return &q, nil
}

// List returns all challenge questions.
func (r *ChallengeQuestionRepository) List(ctx context.Context) ([]domain.ChallengeQuestion, error) {
	rows, err := r.db.Query(ctx, `SELECT id, question FROM challenge_questions ORDER BY question`)
	if err != nil {
		return nil, fmt.Errorf("list challenge questions: %w", err)
	}
	defer rows.Close()

	var questions []domain.ChallengeQuestion
	for rows.Next() {
		var q domain.ChallengeQuestion
		if err := rows.Scan(&q.ID, &q.Question); err != nil {
			return nil, fmt.Errorf("scan challenge question: %w", err)
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate challenge questions: %w", err)
	}

	return questions, nil
}
