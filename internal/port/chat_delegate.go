package port

import (
	"context"

	"shipdesk/internal/domain"
)

// ChatDelegate abstracts the question-answering collaborator.
// Nothing from the table is attached to the question.
type ChatDelegate interface {
	Ask(ctx context.Context, question string) (*domain.ChatReply, error)
}
