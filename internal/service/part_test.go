package service

import (
	"computer-maintenance-api/internal/model"
	apperrors "computer-maintenance-api/pkg/errors"
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func partInput(cost float64) model.PartInput {
	name, maker := "SSD", "Kingston"
	acquired := model.NewDate(2024, time.February, 10)
	return model.PartInput{NomePeca: &name, Fabricante: &maker, DataAquisicaoPeca: &acquired, Custo: &cost}
}

func TestPartCreate_CostOverflowIsValidationError(t *testing.T) {
	_, mock, store := newTestStore(t)
	svc := NewPartService(store, nil)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO pecas`)).
		WillReturnError(&pq.Error{Code: "22003", Message: "numeric field overflow"})

	_, err := svc.Create(context.Background(), partInput(1e12))

	assertCode(t, err, apperrors.ErrorCodeValidation)
	appErr, _ := apperrors.AsAppError(err)
	assert.Equal(t, 400, appErr.GetHTTPStatus())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPartCreate_BlankNameRejected(t *testing.T) {
	_, mock, store := newTestStore(t)
	svc := NewPartService(store, nil)

	in := partInput(10)
	blank := "   "
	in.NomePeca = &blank

	_, err := svc.Create(context.Background(), in)

	assertCode(t, err, apperrors.ErrorCodeValidation)
	appErr, _ := apperrors.AsAppError(err)
	require.Contains(t, appErr.Details, "nome_peca")
	assert.Equal(t, "nome_peca is required", appErr.Details["nome_peca"])
	assert.NoError(t, mock.ExpectationsWereMet())
}
