package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/pixbank-app/pixbank-backend/internal/core/domain"
)

func TestTransferLockOrder_AscendingRegardlessOfDirection(t *testing.T) {
	forward := domain.Transfer{FromAccountID: "acc-a", ToAccountID: "acc-b"}
	reverse := domain.Transfer{FromAccountID: "acc-b", ToAccountID: "acc-a"}

	// Opposing transfers between the same pair must agree on lock order.
	assert.Equal(t, forward.LockOrder(), reverse.LockOrder())
	assert.Equal(t, [2]string{"acc-a", "acc-b"}, forward.LockOrder())
}

func TestTransferLockOrder_SourceFirstWhenAlreadyAscending(t *testing.T) {
	tr := domain.Transfer{FromAccountID: "acc-1", ToAccountID: "acc-2"}
	assert.Equal(t, [2]string{"acc-1", "acc-2"}, tr.LockOrder())
}

func TestTransactionValidate(t *testing.T) {
	valid := domain.Transaction{
		TransactionID: "txn-1",
		AccountID:     "acc-1",
		Direction:     domain.Debit,
		Amount:        decimal.NewFromInt(10),
	}
	assert.NoError(t, valid.Validate())

	missingID := valid
	missingID.TransactionID = ""
	assert.Error(t, missingID.Validate())

	badDirection := valid
	badDirection.Direction = "SIDEWAYS"
	assert.Error(t, badDirection.Validate())

	zeroAmount := valid
	zeroAmount.Amount = decimal.Zero
	assert.Error(t, zeroAmount.Validate())

	negativeAmount := valid
	negativeAmount.Amount = decimal.NewFromInt(-5)
	assert.Error(t, negativeAmount.Validate())
}

func TestAccountTypeValid(t *testing.T) {
	assert.True(t, domain.Individual.Valid())
	assert.True(t, domain.Company.Valid())
	assert.True(t, domain.MicroEntrepeneur.Valid())
	assert.False(t, domain.AccountType("LLC").Valid())
}

func TestPixKeyTypeValid(t *testing.T) {
	assert.True(t, domain.KeyTypeCPF.Valid())
	assert.True(t, domain.KeyTypePhone.Valid())
	assert.True(t, domain.KeyTypeEmail.Valid())
	assert.True(t, domain.KeyTypeRandom.Valid())
	assert.False(t, domain.PixKeyType("CNPJ").Valid())
}
