package mail

import (
	"bytes"
	"fmt"
	"html/template"
)

// OrderLine is one row of the confirmation email's itemized table.
type OrderLine struct {
	Item      string
	Quantity  int
	UnitPrice float64
	Subtotal  float64
}

var confirmationTmpl = template.Must(template.New("order_confirmation").Parse(`
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <h2>GlitzHand</h2>
  <p>Hi {{.Name}},</p>
  <p>Your bill has arrived!</p>
  <table style="border-collapse: collapse; width: 100%;">
    <tr>
      <th style="text-align: left; border-bottom: 1px solid #ddd; padding: 8px;">Item</th>
      <th style="text-align: left; border-bottom: 1px solid #ddd; padding: 8px;">Description</th>
      <th style="text-align: right; border-bottom: 1px solid #ddd; padding: 8px;">Subtotal</th>
    </tr>
    {{range .Lines}}
    <tr>
      <td style="padding: 8px;">{{.Item}}</td>
      <td style="padding: 8px;">Quantity: {{.Quantity}} &times; Rs {{printf "%.2f" .UnitPrice}}</td>
      <td style="padding: 8px; text-align: right;">Rs {{printf "%.2f" .Subtotal}}</td>
    </tr>
    {{end}}
    <tr>
      <td style="padding: 8px;"></td>
      <td style="padding: 8px; font-weight: bold;">Total</td>
      <td style="padding: 8px; text-align: right; font-weight: bold;">Rs {{printf "%.2f" .Total}}</td>
    </tr>
  </table>
  <p>Thank you for ordering from us!</p>
</body>
</html>`))

// OrderConfirmation renders the itemized confirmation email body.
func OrderConfirmation(name string, lines []OrderLine, total float64) (string, error) {
	var buf bytes.Buffer
	err := confirmationTmpl.Execute(&buf, struct {
		Name  string
		Lines []OrderLine
		Total float64
	}{Name: name, Lines: lines, Total: total})
	if err != nil {
		return "", fmt.Errorf("render confirmation: %w", err)
	}
	return buf.String(), nil
}
