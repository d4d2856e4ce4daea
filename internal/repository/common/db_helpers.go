package common

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"
)

// GetByID читает одну строку по первичному ключу id. Отсутствие строки
// превращается в notFoundErr, чтобы адаптеры возвращали доменные ошибки.
func GetByID[T any](ctx context.Context, q sqlx.QueryerContext, table, columns string, id any, notFoundErr error) (*T, error) {
	var row T
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", columns, table)

	if err := sqlx.GetContext(ctx, q, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFoundErr
		}
		return nil, fmt.Errorf("get by id from %s: %w", table, err)
	}

	return &row, nil
}

// BatchInserter копит строки и вставляет их одним INSERT ... VALUES (...), (...).
// Суффикс (например, ON CONFLICT DO NOTHING) добавляется в конец каждого запроса.
type BatchInserter struct {
	exec        sqlx.ExecerContext
	query       string
	suffix      string
	batchSize   int
	values      []any
	rowCount    int
	fieldsCount int
}

// NewBatchInserter создает новый batch inserter
func NewBatchInserter(exec sqlx.ExecerContext, baseQuery string, fieldsCount int, batchSize int) *BatchInserter {
	if batchSize <= 0 {
		batchSize = 100
	}
	return &BatchInserter{
		exec:        exec,
		query:       baseQuery,
		batchSize:   batchSize,
		values:      make([]any, 0, batchSize*fieldsCount),
		fieldsCount: fieldsCount,
	}
}

// WithSuffix задаёт хвост запроса после списка VALUES.
func (bi *BatchInserter) WithSuffix(suffix string) *BatchInserter {
	bi.suffix = suffix
	return bi
}

// Add добавляет строку для вставки
func (bi *BatchInserter) Add(ctx context.Context, rowValues ...any) error {
	if len(rowValues) != bi.fieldsCount {
		return fmt.Errorf("expected %d fields, got %d", bi.fieldsCount, len(rowValues))
	}

	bi.values = append(bi.values, rowValues...)
	bi.rowCount++

	if bi.rowCount >= bi.batchSize {
		return bi.Flush(ctx)
	}
	return nil
}

// Flush выполняет вставку накопленных значений
func (bi *BatchInserter) Flush(ctx context.Context) error {
	if bi.rowCount == 0 {
		return nil
	}

	query := bi.query + " VALUES " + placeholders(bi.rowCount, bi.fieldsCount)
	if bi.suffix != "" {
		query += " " + bi.suffix
	}

	if _, err := bi.exec.ExecContext(ctx, query, bi.values...); err != nil {
		return fmt.Errorf("batch insert: %w", err)
	}

	bi.values = bi.values[:0]
	bi.rowCount = 0
	return nil
}

// placeholders строит ($1, $2), ($3, $4), ...
func placeholders(rows, fields int) string {
	var b strings.Builder
	n := 1
	for i := 0; i < rows; i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteByte('(')
		for j := 0; j < fields; j++ {
			if j > 0 {
				b.WriteString(", ")
			}
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			n++
		}
		b.WriteByte(')')
	}
	return b.String()
}

// TxBeginner - источник транзакций (*sqlx.DB).
type TxBeginner interface {
	BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error)
}

// ReadSnapshot - параметры транзакции для согласованного чтения нескольких таблиц.
var ReadSnapshot = &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}

// WithTransaction выполняет функцию внутри транзакции с правильной обработкой ошибок
func WithTransaction(ctx context.Context, db TxBeginner, fn func(*sqlx.Tx) error) error {
	return WithTxOptions(ctx, db, nil, fn)
}

// WithReadSnapshot выполняет чтения в одном снимке базы: все запросы внутри fn
// видят одно и то же зафиксированное состояние.
func WithReadSnapshot(ctx context.Context, db TxBeginner, fn func(*sqlx.Tx) error) error {
	return WithTxOptions(ctx, db, ReadSnapshot, fn)
}

func WithTxOptions(ctx context.Context, db TxBeginner, opts *sql.TxOptions, fn func(*sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, opts)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("tx error: %w, rollback error: %v", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
