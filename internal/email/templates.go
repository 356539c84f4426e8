package email

import (
	"fmt"
	"strings"
)

// Receipt is the data rendered into a payment receipt email.
type Receipt struct {
	OrderID   string
	PaymentID string
	Items     []ReceiptItem
	Total     string // formatted, e.g. "49.98 USD"
}

// ReceiptItem is one order line for email purposes
type ReceiptItem struct {
	ProductID string
	Quantity  int
	LineTotal string
}

// BuildPaymentReceiptBody builds the HTML body for a payment receipt email
func BuildPaymentReceiptBody(receipt Receipt) string {
	var itemsHTML strings.Builder
	for _, item := range receipt.Items {
		itemsHTML.WriteString(fmt.Sprintf(
			`<tr>
				<td style="padding: 12px; border-bottom: 1px solid #eee;">%s</td>
				<td style="padding: 12px; border-bottom: 1px solid #eee; text-align: center;">%d</td>
				<td style="padding: 12px; border-bottom: 1px solid #eee; text-align: right;">%s</td>
			</tr>`,
			item.ProductID,
			item.Quantity,
			item.LineTotal,
		))
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
	<meta charset="UTF-8">
	<meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
	<div style="background: linear-gradient(135deg, #667eea 0%%, #764ba2 100%%); padding: 30px; border-radius: 10px 10px 0 0;">
		<h1 style="color: white; margin: 0; font-size: 24px;">Payment received</h1>
	</div>

	<div style="background: #fff; padding: 30px; border: 1px solid #eee; border-top: none; border-radius: 0 0 10px 10px;">
		<p style="margin-top: 0;">Thank you — your payment has been processed.</p>

		<div style="background: #f8f9fa; padding: 15px; border-radius: 5px; margin: 20px 0;">
			<p style="margin: 0; font-size: 14px; color: #666;">Order number</p>
			<p style="margin: 5px 0 0 0; font-size: 18px; font-weight: bold; font-family: monospace;">%s</p>
			<p style="margin: 10px 0 0 0; font-size: 14px; color: #666;">Payment reference</p>
			<p style="margin: 5px 0 0 0; font-family: monospace;">%s</p>
		</div>

		<h2 style="font-size: 18px; border-bottom: 2px solid #667eea; padding-bottom: 10px;">Order summary</h2>

		<table style="width: 100%%; border-collapse: collapse; margin: 20px 0;">
			<thead>
				<tr style="background: #f8f9fa;">
					<th style="padding: 12px; text-align: left;">Product</th>
					<th style="padding: 12px; text-align: center;">Qty</th>
					<th style="padding: 12px; text-align: right;">Line total</th>
				</tr>
			</thead>
			<tbody>
				%s
			</tbody>
		</table>

		<div style="text-align: right; font-size: 18px; font-weight: bold; padding: 15px 0; border-top: 2px solid #667eea;">
			Total charged: %s
		</div>
	</div>
</body>
</html>`,
		receipt.OrderID,
		receipt.PaymentID,
		itemsHTML.String(),
		receipt.Total,
	)
}
