package repository

import (
	"time"

	"go.uber.org/zap"
)

type Repository struct {
	Tour  TourRepository
	Draft DraftRepository
}

func NewRepository(draftTTL time.Duration, log *zap.Logger) *Repository {
	return &Repository{
		Tour:  NewTourRepository(DefaultCatalog(), log),
		Draft: NewDraftRepository(draftTTL, time.Now, log),
	}
}
