package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/nocturnal/nocturnal-api/internal/core/domain"
	"github.com/nocturnal/nocturnal-api/internal/core/ports"
	"github.com/nocturnal/nocturnal-api/internal/metrics"
)

const messagesCollection = "messages"

type MessageService struct {
	repo   ports.MessageRepository
	idem   ports.IdempotencyStore
	logger zerolog.Logger
}

// NewMessageService wires the message use cases. idem may be nil, in which
// case Idempotency-Key values are ignored.
func NewMessageService(repo ports.MessageRepository, idem ports.IdempotencyStore, logger zerolog.Logger) *MessageService {
	return &MessageService{repo: repo, idem: idem, logger: logger}
}

// CreateMessage posts content under author. Content is stored verbatim and the
// author is not checked against the users collection.
//
// With an idempotency key the key is reserved before the insert, so concurrent
// retries produce one message. A reused key with a different payload yields
// domain.ErrIdempotencyKeyReused; a key whose first request is still running
// yields domain.ErrRequestInProgress.
func (s *MessageService) CreateMessage(ctx context.Context, in ports.CreateMessageInput) (*ports.MessageResult, error) {
	author, err := parseID(in.Author)
	if err != nil {
		return nil, fmt.Errorf("author: %w", err)
	}

	key := in.IdempotencyKey
	if s.idem == nil {
		key = ""
	}
	fp := fingerprint(author, in.Content)

	// 1. Reserve the key. A failing store never blocks the write.
	if key != "" {
		rec, owned, err := s.idem.Reserve(ctx, key, fp)
		switch {
		case err != nil:
			s.logger.Warn().Err(err).Str("idempotency_key", key).Msg("idempotency reserve failed, creating without key")
			key = ""
		case !owned && rec.Fingerprint != fp:
			return nil, domain.ErrIdempotencyKeyReused
		case !owned && rec.ID == "":
			return nil, domain.ErrRequestInProgress
		case !owned:
			metrics.IdempotentReplaysTotal.Inc()
			s.logger.Info().Str("idempotency_key", key).Str("message_id", rec.ID).Msg("idempotent replay")
			return &ports.MessageResult{ID: rec.ID, AlreadyExisted: true}, nil
		}
	}

	// 2. Insert.
	start := time.Now()
	id, err := s.repo.Create(ctx, in.Content, author)
	metrics.ObserveStore(messagesCollection, "insert", start, err)
	if err != nil {
		s.logger.Error().Err(err).Str("author", in.Author).Msg("failed to create message")
		if key != "" {
			if relErr := s.idem.Release(ctx, key); relErr != nil {
				s.logger.Warn().Err(relErr).Str("idempotency_key", key).Msg("failed to release idempotency key")
			}
		}
		return nil, err
	}
	metrics.MessagesCreatedTotal.Inc()

	// 3. Record the id (non-fatal; the reservation expires with its TTL).
	if key != "" {
		if err := s.idem.Complete(ctx, key, fp, id.Hex()); err != nil {
			s.logger.Warn().Err(err).Str("idempotency_key", key).Msg("failed to store idempotency result")
		}
	}

	s.logger.Info().Str("message_id", id.Hex()).Str("author", in.Author).Msg("message created")
	return &ports.MessageResult{ID: id.Hex()}, nil
}

// fingerprint identifies a create payload so a reused key can be told apart
// from a genuine retry.
func fingerprint(author primitive.ObjectID, content string) string {
	h := sha256.New()
	h.Write(author[:])
	h.Write([]byte(content))
	return hex.EncodeToString(h.Sum(nil))
}
