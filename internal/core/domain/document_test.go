package domain_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atosolution/cash_treasury_backend/internal/core/domain"
)

func strPtr(s string) *string { return &s }

func idr() domain.Currency {
	return domain.Currency{CurrencyCode: "IDR", DecimalPlaces: 2}
}

func TestCashDocument_AmountSource(t *testing.T) {
	alloc := []domain.AllocationLine{
		{InvoiceID: "inv-1", Selected: true, Amount: decimal.NewFromInt(150)},
		{InvoiceID: "inv-2", Selected: false, Amount: decimal.NewFromInt(999)},
		{InvoiceID: "inv-3", Selected: true, Amount: decimal.Zero},
	}
	multi := []domain.MultiAccountLine{
		{AccountID: "acc-1", Amount: decimal.NewFromInt(40)},
		{AccountID: "acc-2", Amount: decimal.NewFromInt(60)},
	}

	tests := []struct {
		name string
		doc  domain.CashDocument
		want decimal.Decimal
	}{
		{
			name: "manual amount by default",
			doc: domain.CashDocument{
				CounterpartyMode: domain.CounterpartyAccount,
				AmountManual:     decimal.NewFromInt(500),
			},
			want: decimal.NewFromInt(500),
		},
		{
			name: "allocations override the manual amount",
			doc: domain.CashDocument{
				CounterpartyMode:  domain.CounterpartyPartner,
				AmountManual:      decimal.NewFromInt(500),
				AllocationsLoaded: true,
				AllocationLines:   alloc,
			},
			want: decimal.NewFromInt(150),
		},
		{
			name: "loaded allocations are ignored outside partner mode",
			doc: domain.CashDocument{
				CounterpartyMode:  domain.CounterpartyAccount,
				AmountManual:      decimal.NewFromInt(500),
				AllocationsLoaded: true,
				AllocationLines:   alloc,
			},
			want: decimal.NewFromInt(500),
		},
		{
			name: "multi-account sum wins over everything",
			doc: domain.CashDocument{
				CounterpartyMode:  domain.CounterpartyAccount,
				MultiAccount:      true,
				MultiAccountLines: multi,
			},
			want: decimal.NewFromInt(100),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.want.Equal(tt.doc.Amount()), "got %s", tt.doc.Amount())
		})
	}
}

func TestCashDocument_SetAmount(t *testing.T) {
	doc := domain.CashDocument{Direction: domain.Outbound, MultiAccount: true}
	err := doc.SetAmount(decimal.NewFromInt(10))
	assert.ErrorIs(t, err, domain.ErrManualAmountInMultiAccount)

	doc.MultiAccount = false
	require.NoError(t, doc.SetAmount(decimal.NewFromInt(10)))
	assert.True(t, decimal.NewFromInt(10).Equal(doc.AmountManual))
}

func TestCashDocument_LeaveMultiAccount(t *testing.T) {
	doc := domain.CashDocument{
		Direction:    domain.Outbound,
		MultiAccount: true,
		MultiAccountLines: []domain.MultiAccountLine{
			{AccountID: "acc-1", Amount: decimal.NewFromInt(75)},
			{AccountID: "acc-2", Amount: decimal.NewFromInt(25)},
		},
	}
	doc.LeaveMultiAccount()

	assert.False(t, doc.MultiAccount)
	assert.Nil(t, doc.MultiAccountLines)
	assert.True(t, decimal.NewFromInt(100).Equal(doc.AmountManual))
}

func TestAllocationLine_Clamp(t *testing.T) {
	tests := []struct {
		name        string
		line        domain.AllocationLine
		wantAmount  decimal.Decimal
		wantWarning bool
	}{
		{
			name: "amount on unselected line is zeroed",
			line: domain.AllocationLine{
				InvoiceNumber:   "INV/001",
				Selected:        false,
				Amount:          decimal.NewFromInt(50),
				InvoiceResidual: decimal.NewFromInt(100),
			},
			wantAmount:  decimal.Zero,
			wantWarning: true,
		},
		{
			name: "amount above the residual is clamped",
			line: domain.AllocationLine{
				InvoiceNumber:   "INV/002",
				Selected:        true,
				Amount:          decimal.NewFromInt(150),
				InvoiceResidual: decimal.NewFromInt(100),
			},
			wantAmount:  decimal.NewFromInt(100),
			wantWarning: true,
		},
		{
			name: "valid line is untouched",
			line: domain.AllocationLine{
				InvoiceNumber:   "INV/003",
				Selected:        true,
				Amount:          decimal.NewFromInt(80),
				InvoiceResidual: decimal.NewFromInt(100),
			},
			wantAmount:  decimal.NewFromInt(80),
			wantWarning: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			warning := tt.line.Clamp()
			assert.True(t, tt.wantAmount.Equal(tt.line.Amount), "got %s", tt.line.Amount)
			assert.Equal(t, tt.wantWarning, warning != "")
		})
	}
}

func TestCashDocument_DestinationAccountID(t *testing.T) {
	partner := &domain.Partner{
		Name:                "PT Maju",
		ReceivableAccountID: "acc-ar",
		PayableAccountID:    "acc-ap",
	}

	tests := []struct {
		name    string
		doc     domain.CashDocument
		partner *domain.Partner
		want    string
		wantErr bool
	}{
		{
			name: "direct account mode uses the chosen account",
			doc: domain.CashDocument{
				Direction:        domain.Inbound,
				CounterpartyMode: domain.CounterpartyAccount,
				AccountID:        strPtr("acc-rev"),
			},
			want: "acc-rev",
		},
		{
			name: "inbound partner mode uses the receivable account",
			doc: domain.CashDocument{
				Direction:        domain.Inbound,
				CounterpartyMode: domain.CounterpartyPartner,
			},
			partner: partner,
			want:    "acc-ar",
		},
		{
			name: "outbound partner mode uses the payable account",
			doc: domain.CashDocument{
				Direction:        domain.Outbound,
				CounterpartyMode: domain.CounterpartyPartner,
			},
			partner: partner,
			want:    "acc-ap",
		},
		{
			name: "partner mode without a partner fails",
			doc: domain.CashDocument{
				Direction:        domain.Inbound,
				CounterpartyMode: domain.CounterpartyPartner,
			},
			wantErr: true,
		},
		{
			name: "multi-account documents have no single destination",
			doc: domain.CashDocument{
				Direction:        domain.Outbound,
				CounterpartyMode: domain.CounterpartyAccount,
				MultiAccount:     true,
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.doc.DestinationAccountID(tt.partner)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCashDocument_Validate(t *testing.T) {
	tests := []struct {
		name    string
		doc     domain.CashDocument
		wantErr error
	}{
		{
			name: "draft with zero amount is fine",
			doc: domain.CashDocument{
				State:        domain.StateDraft,
				AmountManual: decimal.Zero,
			},
		},
		{
			name: "non-draft needs a positive amount",
			doc: domain.CashDocument{
				State:        domain.StateApproved,
				AmountManual: decimal.Zero,
			},
			wantErr: domain.ErrAmountNotPositive,
		},
		{
			name: "allocations must add up to the amount",
			doc: domain.CashDocument{
				State:             domain.StateApproved,
				Direction:         domain.Outbound,
				CounterpartyMode:  domain.CounterpartyAccount,
				AmountManual:      decimal.NewFromInt(100),
				AllocationsLoaded: true,
				AllocationLines: []domain.AllocationLine{
					{Selected: true, Amount: decimal.NewFromInt(60)},
				},
			},
			wantErr: domain.ErrAllocationMismatch,
		},
		{
			name: "multi-account is outbound only",
			doc: domain.CashDocument{
				State:            domain.StateDraft,
				Direction:        domain.Inbound,
				CounterpartyMode: domain.CounterpartyAccount,
				MultiAccount:     true,
			},
			wantErr: domain.ErrMultiAccountExclusive,
		},
		{
			name: "multi-account excludes partner mode",
			doc: domain.CashDocument{
				State:            domain.StateDraft,
				Direction:        domain.Outbound,
				CounterpartyMode: domain.CounterpartyPartner,
				MultiAccount:     true,
			},
			wantErr: domain.ErrMultiAccountExclusive,
		},
		{
			name: "multi-account excludes a manual amount",
			doc: domain.CashDocument{
				State:            domain.StateDraft,
				Direction:        domain.Outbound,
				CounterpartyMode: domain.CounterpartyAccount,
				MultiAccount:     true,
				AmountManual:     decimal.NewFromInt(5),
			},
			wantErr: domain.ErrManualAmountInMultiAccount,
		},
		{
			name: "valid multi-account document",
			doc: domain.CashDocument{
				State:            domain.StateApproved,
				Direction:        domain.Outbound,
				CounterpartyMode: domain.CounterpartyAccount,
				MultiAccount:     true,
				MultiAccountLines: []domain.MultiAccountLine{
					{AccountID: "acc-1", Amount: decimal.NewFromInt(30)},
					{AccountID: "acc-2", Amount: decimal.NewFromInt(70)},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.doc.Validate(idr())
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestCashDocument_TerminalState(t *testing.T) {
	in := domain.CashDocument{Direction: domain.Inbound}
	out := domain.CashDocument{Direction: domain.Outbound}
	assert.Equal(t, domain.StatePosted, in.TerminalState())
	assert.Equal(t, domain.StatePaid, out.TerminalState())
}

func TestFormatDocumentNumber(t *testing.T) {
	anchor := time.Date(2025, time.July, 9, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "CSH1/IN/2025-07/0042", domain.FormatDocumentNumber("CSH1", domain.Inbound, anchor, 42))
	assert.Equal(t, "BNK1/OUT/2025-07/0007", domain.FormatDocumentNumber("BNK1", domain.Outbound, anchor, 7))
}

func TestCurrency_AmountsEqual(t *testing.T) {
	c := idr()
	assert.True(t, c.AmountsEqual(decimal.NewFromFloat(100.004), decimal.NewFromInt(100)))
	assert.False(t, c.AmountsEqual(decimal.NewFromFloat(100.02), decimal.NewFromInt(100)))
}

func TestTreasuryRole_AtLeast(t *testing.T) {
	assert.True(t, domain.RoleAdmin.AtLeast(domain.RoleSuperApprover))
	assert.True(t, domain.RoleApprover.AtLeast(domain.RoleReviewer))
	assert.False(t, domain.RoleEntry.AtLeast(domain.RoleReviewer))
	assert.False(t, domain.RoleReviewer.AtLeast(domain.RoleApprover))
}

func TestBalancedLines(t *testing.T) {
	assert.True(t, domain.BalancedLines([]domain.NewLedgerLine{
		{AccountID: "a", Debit: decimal.NewFromInt(100)},
		{AccountID: "b", Credit: decimal.NewFromInt(100)},
	}))
	assert.False(t, domain.BalancedLines([]domain.NewLedgerLine{
		{AccountID: "a", Debit: decimal.NewFromInt(100)},
		{AccountID: "b", Credit: decimal.NewFromInt(90)},
	}))
}
