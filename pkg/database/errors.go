package database

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

// PostgreSQL SQLSTATE
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
)

// IsUniqueViolation 唯一约束冲突
func IsUniqueViolation(err error) bool {
	return hasCode(err, codeUniqueViolation) || sqliteMessage(err, "UNIQUE constraint failed")
}

// IsForeignKeyViolation 外键约束冲突
func IsForeignKeyViolation(err error) bool {
	return hasCode(err, codeForeignKeyViolation) || sqliteMessage(err, "FOREIGN KEY constraint failed")
}

// IsCheckViolation CHECK 约束冲突 (如评分范围)
func IsCheckViolation(err error) bool {
	return hasCode(err, codeCheckViolation) || sqliteMessage(err, "CHECK constraint failed")
}

// IsConstraintViolation 任意约束冲突
func IsConstraintViolation(err error) bool {
	return IsUniqueViolation(err) || IsForeignKeyViolation(err) || IsCheckViolation(err)
}

// hasCode 同时兼容 pgx (gorm postgres 驱动) 与 lib/pq
func hasCode(err error, code string) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == code
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == code
	}
	return false
}

// sqliteMessage 测试环境 (sqlite) 只能按错误文本判断
func sqliteMessage(err error, fragment string) bool {
	return err != nil && strings.Contains(err.Error(), fragment)
}
