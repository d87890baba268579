package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/m04kA/EquipShare-BookingService/pkg/dbmetrics"
)

const (
	sqlStateSerializationFailure = "40001"
	sqlStateDeadlockDetected     = "40P01"
	sqlStateExclusionViolation   = "23P01"
	sqlStateForeignKeyViolation  = "23503"
)

var (
	ErrBeginTx              = errors.New("txmanager: failed to begin transaction")
	ErrCommitTx             = errors.New("txmanager: failed to commit transaction")
	ErrSerializationFailure = errors.New("txmanager: serialization failure")
)

// Beginner opens transactions, *dbmetrics.DB implements it
type Beginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// TxManager запускает функции внутри транзакции, транзакция передаётся через контекст
type TxManager struct {
	db     Beginner
	logger Logger
}

func New(db Beginner, logger Logger) *TxManager {
	return &TxManager{db: db, logger: logger}
}

// Do выполняет fn в транзакции с уровнем изоляции по умолчанию
func (m *TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, nil, fn)
}

// DoSerializable выполняет fn в транзакции SERIALIZABLE.
// Ошибки сериализации PostgreSQL оборачиваются в ErrSerializationFailure.
func (m *TxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable}, fn)
}

func (m *TxManager) run(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) (err error) {
	// Вложенный вызов присоединяется к уже открытой транзакции
	if dbmetrics.IsInTransaction(ctx) {
		return fn(ctx)
	}

	tx, err := m.db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBeginTx, err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err = fn(dbmetrics.WithTx(ctx, tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) && m.logger != nil {
			m.logger.Error("txmanager: rollback failed: %v", rbErr)
		}
		if IsSerializationFailure(err) {
			return fmt.Errorf("%w: %v", ErrSerializationFailure, err)
		}
		return err
	}

	if err = tx.Commit(); err != nil {
		if IsSerializationFailure(err) {
			if m.logger != nil {
				m.logger.Warn("txmanager: commit aborted by serialization conflict: %v", err)
			}
			return fmt.Errorf("%w: %v", ErrSerializationFailure, err)
		}
		return fmt.Errorf("%w: %v", ErrCommitTx, err)
	}

	return nil
}

func sqlState(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}

// IsSerializationFailure сообщает, что транзакция прервана из-за конфликта сериализации или дедлока
func IsSerializationFailure(err error) bool {
	if errors.Is(err, ErrSerializationFailure) {
		return true
	}
	code := sqlState(err)
	return code == sqlStateSerializationFailure || code == sqlStateDeadlockDetected
}

// IsExclusionViolation сообщает о нарушении exclusion-ограничения
func IsExclusionViolation(err error) bool {
	return sqlState(err) == sqlStateExclusionViolation
}

// IsForeignKeyViolation сообщает о нарушении внешнего ключа
func IsForeignKeyViolation(err error) bool {
	return sqlState(err) == sqlStateForeignKeyViolation
}
