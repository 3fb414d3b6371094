package apportion

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fjacquet/casa-ledger/internal/models"
)

func sharedParent() models.Transaction {
	payment := time.Date(2023, time.May, 25, 0, 0, 0, 0, time.UTC)
	return models.Transaction{
		ID:          "tx-parent",
		ProfileID:   "p-1",
		Type:        models.TypeExpense,
		Description: "groceries",
		IsShared:    true,
		Planned:     decimal.NewFromInt(400),
		Actual:      decimal.NewFromInt(380),
		Date:        time.Date(2023, time.May, 10, 0, 0, 0, 0, time.UTC),
		PaymentDate: &payment,
		Paid:        true,
		LabelIDs:    []string{"food"},
	}
}

func TestBuildChildren(t *testing.T) {
	props := map[string]decimal.Decimal{
		"sp-ben": decimal.NewFromFloat(0.75),
		"sp-ana": decimal.NewFromFloat(0.25),
	}
	parent := sharedParent()
	children := BuildChildren(parent, props)
	require.Len(t, children, 2)

	// Deterministic order by subprofile id.
	assert.Equal(t, "sp-ana", children[0].SubprofileID)
	assert.Equal(t, "sp-ben", children[1].SubprofileID)

	ana := children[0]
	assert.Empty(t, ana.ID)
	assert.Equal(t, "p-1", ana.ProfileID)
	assert.Equal(t, models.TypeExpense, ana.Type)
	assert.Equal(t, "Allocation: groceries", ana.Description)
	assert.False(t, ana.IsShared)
	assert.True(t, ana.IsApportioned)
	assert.Equal(t, "tx-parent", ana.ParentID)
	assert.True(t, ana.Planned.Equal(decimal.NewFromInt(100)), "got %s", ana.Planned)
	assert.True(t, ana.Actual.Equal(decimal.NewFromInt(95)), "got %s", ana.Actual)
	assert.Equal(t, parent.Date, ana.Date)
	assert.True(t, ana.Paid)
	require.NotNil(t, ana.PaymentDate)
	assert.Equal(t, *parent.PaymentDate, *ana.PaymentDate)
	assert.Nil(t, ana.DueDate)
	assert.Equal(t, []string{"food"}, ana.LabelIDs)
}

func TestBuildChildrenSumToParent(t *testing.T) {
	third := decimal.NewFromInt(1).Div(decimal.NewFromInt(3))
	props := map[string]decimal.Decimal{
		"sp-a": third,
		"sp-b": third,
		"sp-c": third,
	}
	parent := sharedParent()
	parent.Planned = decimal.NewFromInt(100)
	parent.Actual = decimal.NewFromInt(100)

	children := BuildChildren(parent, props)
	require.Len(t, children, 3)

	sum := decimal.Zero
	for _, c := range children {
		sum = sum.Add(c.Actual)
	}
	diff := sum.Sub(parent.Actual).Abs()
	assert.True(t, diff.LessThan(decimal.New(1, -2)), "children off by %s", diff)
}

func TestBuildChildrenEmptyProps(t *testing.T) {
	assert.Nil(t, BuildChildren(sharedParent(), nil))
	assert.Nil(t, BuildChildren(sharedParent(), map[string]decimal.Decimal{}))
}

func TestBuildChildrenLabelCopyIsIndependent(t *testing.T) {
	parent := sharedParent()
	children := BuildChildren(parent, map[string]decimal.Decimal{"sp-ana": decimal.NewFromInt(1)})
	require.Len(t, children, 1)

	children[0].LabelIDs[0] = "mutated"
	assert.Equal(t, "food", parent.LabelIDs[0])
}
