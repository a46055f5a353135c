package database

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestConstraintDetection(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		unique  bool
		foreign bool
	}{
		{"nil", nil, false, false},
		{"普通错误", errors.New("connection refused"), false, false},
		{"pgx 唯一约束", fmt.Errorf("wrap: %w", &pgconn.PgError{Code: "23505"}), true, false},
		{"pgx 外键", &pgconn.PgError{Code: "23503"}, false, true},
		{"pq 唯一约束", &pq.Error{Code: "23505"}, true, false},
		{"sqlite 唯一约束", errors.New("UNIQUE constraint failed: product_skus.sku_code"), true, false},
		{"sqlite 外键", errors.New("FOREIGN KEY constraint failed"), false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.unique, IsUniqueViolation(tt.err))
			assert.Equal(t, tt.foreign, IsForeignKeyViolation(tt.err))
			assert.Equal(t, tt.unique || tt.foreign, IsConstraintViolation(tt.err))
		})
	}
}
