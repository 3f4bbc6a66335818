package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/RishiPrasath/time-deposit-take-home-kata/internal/domain"
	"github.com/RishiPrasath/time-deposit-take-home-kata/internal/usecase"
	"github.com/RishiPrasath/time-deposit-take-home-kata/internal/usecase/gomocks"
)

func TestDepositUseCase_UpdateAllBalances_PersistsAccruedBalances(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	deposits := []*domain.TimeDeposit{
		{ID: "dep-1", PlanType: domain.PlanBasic, Balance: decimal.RequireFromString("1000.0"), Days: 45},
		{ID: "dep-2", PlanType: domain.PlanStudent, Balance: decimal.RequireFromString("2000.0"), Days: 180},
	}

	tx := gomocks.NewMockTransaction(ctrl)
	tx.EXPECT().Commit(gomock.Any()).Return(nil)
	tx.EXPECT().Rollback(gomock.Any()).Return(nil)

	txManager := gomocks.NewMockTransactionManager(ctrl)
	txManager.EXPECT().Begin(gomock.Any()).Return(tx, nil)

	repo := gomocks.NewMockDepositRepository(ctrl)
	repo.EXPECT().GetAllForUpdate(gomock.Any(), tx).Return(deposits, nil)
	repo.EXPECT().
		UpdateBalances(gomock.Any(), tx, gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ usecase.Transaction, updated []*domain.TimeDeposit, _ time.Time) error {
			require.Len(t, updated, 2)
			require.Equal(t, "1000.83", updated[0].Balance.String())
			require.Equal(t, "2005.83", updated[1].Balance.String())
			return nil
		})

	idGen := gomocks.NewMockIDGenerator(ctrl)

	uc := usecase.NewDepositUseCase(txManager, repo, idGen, nil, nil, 0)

	result, err := uc.UpdateAllBalances(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, result.Total)
	require.Equal(t, 2, result.UpdatedCount)
}
