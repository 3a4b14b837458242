package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/klauspost/compress/zstd"

	appctx "ventasapi/internal/core/context"
	"ventasapi/internal/domain/sales"
	"ventasapi/pkg/logger"
)

// CompressionAlgo specifies the compression algorithm used for a stored
// audit payload.
type CompressionAlgo string

const (
	CompressionNone CompressionAlgo = "none"
	CompressionZstd CompressionAlgo = "zstd"
)

// AuditService records which reporting queries ran and which branch
// scope they were resolved to. Recording is best-effort: a failed
// insert is logged, never surfaced to the caller.
type AuditService struct {
	db                *pgxpool.Pool
	encoder           *zstd.Encoder
	compressThreshold int
}

// NewAuditService creates an audit service on the auth pool.
func NewAuditService(db *pgxpool.Pool) (*AuditService, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}
	return &AuditService{
		db:                db,
		encoder:           encoder,
		compressThreshold: 10 * 1024,
	}, nil
}

type accessPayload struct {
	Requested sales.Filter `json:"solicitado"`
	Effective sales.Filter `json:"efectivo"`
}

// RecordAccess implements sales.AccessRecorder.
func (s *AuditService) RecordAccess(ctx context.Context, action string, requested, effective sales.Filter) {
	var userID int64
	var username string
	if user := appctx.GetUser(ctx); user != nil {
		userID = user.UserID
		username = user.Username
	}

	payload, err := json.Marshal(accessPayload{Requested: requested, Effective: effective})
	if err != nil {
		logger.Warn(ctx, "audit payload marshal failed", "action", action, "error", err)
		return
	}

	var compressed []byte
	algo := CompressionNone
	if len(payload) > s.compressThreshold {
		compressed = s.encoder.EncodeAll(payload, nil)
		payload = nil
		algo = CompressionZstd
	}

	query := `
		INSERT INTO auditoria_consultas (
			user_id, usuario, accion,
			sucursal_solicitada, sucursal_efectiva,
			filtros, filtros_comprimidos, compresion, creado_en
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err = s.db.Exec(ctx, query,
		userID, username, action,
		requested.Branch, effective.Branch,
		payload, compressed, string(algo), time.Now().UTC(),
	)
	if err != nil {
		logger.Warn(ctx, "audit insert failed", "action", action, "error", err)
	}
}
