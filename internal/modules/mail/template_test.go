package mail

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderConfirmation(t *testing.T) {
	html, err := OrderConfirmation("Amara Banda", []OrderLine{
		{Item: "Copper Bracelet", Quantity: 2, UnitPrice: 200, Subtotal: 400},
		{Item: "Beaded Necklace", Quantity: 1, UnitPrice: 400, Subtotal: 400},
	}, 800)
	require.NoError(t, err)

	assert.Contains(t, html, "Hi Amara Banda,")
	assert.Contains(t, html, "Your bill has arrived!")
	assert.Contains(t, html, "Copper Bracelet")
	assert.Contains(t, html, "Quantity: 2")
	assert.Contains(t, html, "Rs 800.00")
	assert.Contains(t, html, "Thank you for ordering from us!")
}

func TestOrderConfirmationEscapesMarkup(t *testing.T) {
	html, err := OrderConfirmation("<script>x</script>", nil, 0)
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>")
}
