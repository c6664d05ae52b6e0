package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePlayerStatus(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    PlayerStatus
		wantErr bool
	}{
		{"starter", "Titulaire", StatusStarter, false},
		{"precomposed accent", "Remplaçant", StatusSubstitute, false},
		{"decomposed accent", "Re\u0301serve", StatusReserve, false},
		{"leading capital accent", "À vendre", StatusForSale, false},
		{"surrounding spaces", "  Prêt ", StatusOnLoan, false},
		{"lower case", "titulaire", StatusStarter, false},
		{"upper case decomposed", "RE\u0301SERVE", StatusReserve, false},
		{"lower case accented capital", "à vendre", StatusForSale, false},
		{"english label", "Starter", "", true},
		{"empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePlayerStatus(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParsePlayerOrigin(t *testing.T) {
	got, err := ParsePlayerOrigin("Académie")
	require.NoError(t, err)
	assert.Equal(t, OriginAcademy, got)

	got, err = ParsePlayerOrigin("Acheté")
	require.NoError(t, err)
	assert.Equal(t, OriginPurchased, got)

	got, err = ParsePlayerOrigin("ACHETÉ")
	require.NoError(t, err)
	assert.Equal(t, OriginPurchased, got)

	_, err = ParsePlayerOrigin("Loan")
	assert.Error(t, err)
}

// Every enum parser ignores case and returns the canonical spelling.
func TestParseIgnoresCase(t *testing.T) {
	status, err := ParsePlayerStatus("REMPLAÇANT")
	require.NoError(t, err)
	assert.Equal(t, StatusSubstitute, status)

	origin, err := ParsePlayerOrigin("initial")
	require.NoError(t, err)
	assert.Equal(t, OriginInitial, origin)

	transfer, err := ParseTransferType("SALE")
	require.NoError(t, err)
	assert.Equal(t, TransferSale, transfer)

	project, err := ParseProjectType("Trophees")
	require.NoError(t, err)
	assert.Equal(t, ProjectTrophies, project)
}

func TestParseTransferType(t *testing.T) {
	got, err := ParseTransferType("Purchase")
	require.NoError(t, err)
	assert.Equal(t, TransferPurchase, got)

	assert.True(t, TransferSale.Valid())
	assert.False(t, TransferType("loan").Valid())
}

func TestParseProjectType(t *testing.T) {
	for _, p := range []string{"academie", "trophees", "budget", "custom", "CUSTOM"} {
		assert.True(t, ProjectType(p).Valid(), p)
	}
	assert.False(t, ProjectType("rebuild").Valid())
}

func TestUpdatePlayerInput_Apply(t *testing.T) {
	p := Player{FirstName: "Kylian", OVR: 70, Status: StatusReserve}
	ovr := 74
	status := StatusStarter
	UpdatePlayerInput{OVR: &ovr, Status: &status}.Apply(&p)

	assert.Equal(t, "Kylian", p.FirstName)
	assert.Equal(t, 74, p.OVR)
	assert.Equal(t, StatusStarter, p.Status)
}

func TestUpdateBudgetInput_Apply(t *testing.T) {
	b := BudgetEntry{InitialBudget: 10, WageExpenses: 4}
	wages := 6.5
	UpdateBudgetInput{WageExpenses: &wages}.Apply(&b)

	assert.Equal(t, 10.0, b.InitialBudget)
	assert.Equal(t, 6.5, b.WageExpenses)
}
