package inmemory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tdex-network/luckyspind/internal/core/domain"
	"github.com/tdex-network/luckyspind/internal/infrastructure/storage/db/inmemory"
)

func TestProgramAccountRepository(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := inmemory.NewRepoManager().ProgramAccountRepository()
	account := domain.NewProgramAccount(domain.Pubkey{0x01}, 16)

	_, err := repo.GetAccount(ctx, account.Key)
	require.ErrorIs(t, err, domain.ErrAccountNotFound)
	require.ErrorIs(
		t, repo.UpdateAccountData(ctx, account.Key, nil), domain.ErrAccountNotFound,
	)

	require.NoError(t, repo.AddAccount(ctx, *account))
	require.ErrorIs(t, repo.AddAccount(ctx, *account), domain.ErrAccountAlreadyExists)

	data := make([]byte, 16)
	data[0] = 1
	require.NoError(t, repo.UpdateAccountData(ctx, account.Key, data))
	data[1] = 2

	got, err := repo.GetAccount(ctx, account.Key)
	require.NoError(t, err)
	require.Equal(t, byte(1), got.Data[0])
	require.Zero(t, got.Data[1])

	got.Data[2] = 3
	again, err := repo.GetAccount(ctx, account.Key)
	require.NoError(t, err)
	require.Zero(t, again.Data[2])
}

func TestSigningDirectiveRepository(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := inmemory.NewRepoManager().SigningDirectiveRepository()

	directives := []domain.SigningDirective{
		{ID: "1", Account: "aa", Txid: "t1"},
		{ID: "2", Account: "bb", Txid: "t2"},
		{ID: "3", Account: "aa", Txid: "t3"},
	}
	for _, d := range directives {
		require.NoError(t, repo.AddSigningDirective(ctx, d))
	}
	err := repo.AddSigningDirective(ctx, directives[0])
	require.ErrorIs(t, err, inmemory.ErrSigningDirectiveAlreadyExists)

	all, err := repo.GetAllSigningDirectives(ctx)
	require.NoError(t, err)
	require.Equal(t, directives, all)

	forAccount, err := repo.GetSigningDirectivesForAccount(ctx, "aa")
	require.NoError(t, err)
	require.Len(t, forAccount, 2)
	require.Equal(t, "t3", forAccount[1].Txid)

	none, err := repo.GetSigningDirectivesForAccount(ctx, "cc")
	require.NoError(t, err)
	require.Empty(t, none)
}
