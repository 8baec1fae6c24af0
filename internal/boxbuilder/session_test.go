package boxbuilder

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sweetshop-service/internal/entity"
)

func testContainer(widthCm float64) entity.Container {
	return entity.Container{
		ID:        "box-test",
		Kind:      entity.ContainerBox,
		NameAr:    "علبة",
		HeightCm:  17,
		WidthCm:   widthCm,
		BasePrice: decimal.NewFromFloat(1.0),
	}
}

func sweet(id string, widthCm float64, price float64) entity.Sweet {
	return entity.Sweet{
		ID:          id,
		NameAr:      id,
		WidthCm:     widthCm,
		WeightGrams: 100,
		Price:       decimal.NewFromFloat(price),
	}
}

func TestTryAdd_NeverExceedsWidth(t *testing.T) {
	s := NewSession(testContainer(30))

	widths := []float64{9, 9, 9, 5.5, 4, 3.5, 0.5}
	for i, w := range widths {
		_, err := s.TryAdd(sweet("s", w, 1))
		// invariant must hold after every operation, not just at the end
		assert.LessOrEqual(t, s.Totals().WidthCm, 30.0, "after add %d", i)
		_ = err
	}
}

func TestTryAdd_RejectsOverflow(t *testing.T) {
	s := NewSession(testContainer(10))

	_, err := s.TryAdd(sweet("a", 6, 1))
	require.NoError(t, err)

	_, err = s.TryAdd(sweet("b", 5, 1))
	require.Error(t, err)

	var capErr *CapacityError
	require.ErrorAs(t, err, &capErr)
	assert.False(t, capErr.Full)
	assert.InDelta(t, 4.0, capErr.RemainingCm, 1e-9)
	assert.Len(t, s.Placements(), 1)
}

func TestTryAdd_FullContainer(t *testing.T) {
	s := NewSession(testContainer(30))

	for i := 0; i < 3; i++ {
		_, err := s.TryAdd(sweet("ten", 10, 1))
		require.NoError(t, err)
	}
	assert.InDelta(t, 100.0, s.FillPercent(), 1e-9)
	assert.True(t, s.CheckoutEligible())

	_, err := s.TryAdd(sweet("one", 1, 1))
	var capErr *CapacityError
	require.ErrorAs(t, err, &capErr)
	assert.True(t, capErr.Full, "remaining <= 0 reports the container as full")
}

func TestFillPercent_MinFillBoundary(t *testing.T) {
	s := NewSession(testContainer(20))
	_, err := s.TryAdd(sweet("a", 17, 1))
	require.NoError(t, err)

	assert.InDelta(t, 85.0, s.FillPercent(), 1e-9)
	assert.True(t, s.CheckoutEligible(), "85.0 is eligible")

	s.Clear()
	_, err = s.TryAdd(sweet("b", 16.99, 1))
	require.NoError(t, err)
	assert.False(t, s.CheckoutEligible(), "just below 85 is not eligible")
}

func TestEligibility_ScenarioFromSmallBox(t *testing.T) {
	s := NewSession(testContainer(30))

	_, err := s.TryAdd(sweet("a", 9, 1))
	require.NoError(t, err)
	_, err = s.TryAdd(sweet("b", 11, 1))
	require.NoError(t, err)
	assert.False(t, s.CheckoutEligible(), "20cm of 30cm is below min fill")

	_, err = s.TryAdd(sweet("c", 6, 1))
	require.NoError(t, err)
	assert.InDelta(t, 86.666, s.FillPercent(), 0.01)
	assert.True(t, s.CheckoutEligible())
}

func TestFillPercent_Monotonic(t *testing.T) {
	s := NewSession(testContainer(30))

	var last float64
	var placed []uuid.UUID
	for i := 0; i < 5; i++ {
		p, err := s.TryAdd(sweet("s", 4, 1))
		require.NoError(t, err)
		placed = append(placed, p.PlacementID)
		assert.GreaterOrEqual(t, s.FillPercent(), last)
		last = s.FillPercent()
	}

	for _, id := range placed {
		s.Remove(id)
		assert.LessOrEqual(t, s.FillPercent(), last)
		last = s.FillPercent()
	}
	assert.Zero(t, s.FillPercent())
}

func TestRemove_UnknownIDIsNoop(t *testing.T) {
	s := NewSession(testContainer(30))
	_, err := s.TryAdd(sweet("a", 5, 1))
	require.NoError(t, err)

	before := s.Placements()
	s.Remove(uuid.New())
	assert.Equal(t, before, s.Placements())
}

func TestTotals_SeparatorCountsWidthAndPriceNotWeight(t *testing.T) {
	s := NewSession(testContainer(30))

	separator := entity.Sweet{
		ID:        "separator",
		NameAr:    "فاصل",
		WidthCm:   0.5,
		Price:     decimal.NewFromFloat(0.05),
		Separator: true,
	}
	_, err := s.TryAdd(separator)
	require.NoError(t, err)

	totals := s.Totals()
	assert.Equal(t, 0, totals.WeightGrams)
	assert.InDelta(t, 0.5, totals.WidthCm, 1e-9)
	// container base 1.00 plus the separator
	assert.Equal(t, "1.05", totals.Price.StringFixed(2))
}

func TestToCartLine_BakesTotals(t *testing.T) {
	s := NewSession(testContainer(30))
	for i := 0; i < 3; i++ {
		_, err := s.TryAdd(sweet("ten", 10, 2.5))
		require.NoError(t, err)
	}

	line := s.ToCartLine()
	assert.Equal(t, "8.50", line.TotalPrice.StringFixed(2))
	assert.Equal(t, 300, line.TotalWeightGrams)
	assert.InDelta(t, 100.0, line.FillPercent, 1e-9)
	assert.Len(t, line.Placements, 3)
	assert.NotEqual(t, uuid.Nil, line.ID)
}
