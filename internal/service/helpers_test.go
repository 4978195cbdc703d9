package service

import (
	"computer-maintenance-api/internal/repository"
	apperrors "computer-maintenance-api/pkg/errors"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

var (
	testNow = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	computerCols    = []string{"id", "marca", "modelo", "numero_serie", "data_aquisicao", "created_at", "updated_at"}
	employeeCols    = []string{"id", "nome", "cargo", "departamento", "created_at", "updated_at"}
	problemCols     = []string{"id", "descricao", "categoria", "created_at", "updated_at"}
	partCols        = []string{"id", "nome_peca", "numero_serie_peca", "fabricante", "data_aquisicao_peca", "custo", "manutencao_id", "created_at", "updated_at"}
	maintenanceCols = []string{"id", "computador_id", "funcionario_id", "problema_id", "data_manutencao",
		"tipo_manutencao", "descricao_problema", "solucao_aplicada", "created_at", "updated_at"}
)

func newTestStore(t testing.TB) (*sql.DB, sqlmock.Sqlmock, *repository.Store) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock, repository.NewStore(db)
}

func maintenanceRow(id int64) *sqlmock.Rows {
	return sqlmock.NewRows(maintenanceCols).
		AddRow(id, int64(1), int64(1), int64(1), testNow, "Reparo", "Nao liga", "Troca da fonte", testNow, testNow)
}

func partRows(maintenanceID int64, ids ...int64) *sqlmock.Rows {
	rows := sqlmock.NewRows(partCols)
	for _, id := range ids {
		rows.AddRow(id, "Peca", nil, "Acme", testNow, 10.0, maintenanceID, testNow, testNow)
	}
	return rows
}

// expectHydration queues the four batch reads issued for a maintenance whose
// computer, employee and problem all have ID 1.
func expectHydration(mock sqlmock.Sqlmock, parts *sqlmock.Rows) {
	mock.ExpectQuery(regexp.QuoteMeta(`FROM computadores WHERE id = ANY($1)`)).
		WillReturnRows(sqlmock.NewRows(computerCols).AddRow(int64(1), "Dell", "XPS", "SN1", testNow, testNow, testNow))
	mock.ExpectQuery(regexp.QuoteMeta(`FROM funcionarios WHERE id = ANY($1)`)).
		WillReturnRows(sqlmock.NewRows(employeeCols).AddRow(int64(1), "Ana", "Tech", "TI", testNow, testNow))
	mock.ExpectQuery(regexp.QuoteMeta(`FROM problemas WHERE id = ANY($1)`)).
		WillReturnRows(sqlmock.NewRows(problemCols).AddRow(int64(1), "No boot", "Hardware", testNow, testNow))
	mock.ExpectQuery(regexp.QuoteMeta(`FROM pecas WHERE manutencao_id = ANY($1)`)).
		WillReturnRows(parts)
}

func int64Ptr(v int64) *int64 { return &v }
func strPtr(s string) *string { return &s }

// assertCode fails unless err carries an AppError with the given code.
func assertCode(t *testing.T, err error, code apperrors.ErrorCode) {
	t.Helper()
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok, "expected an AppError, got %v", err)
	require.Equal(t, code, appErr.Code)
}
