package notifications

import (
	"bytes"
	"html/template"
	"strconv"
	"strings"

	"github.com/borealis-store/borealis-backend/pkg/types"
)

var passwordResetTemplate = template.Must(template.New("password_reset").Parse(`<div style="font-family: sans-serif; padding: 20px; color: #333; text-align: center;">
  <h1 style="color: #111;">Password Reset Request</h1>
  <p>You are receiving this because you (or someone else) requested a reset of the password for your account.</p>
  <p>Click the button below, or paste this link into your browser to complete the process:</p>
  <p><a href="{{.URL}}">{{.URL}}</a></p>
  <a href="{{.URL}}" style="display: inline-block; margin: 10px 0; padding: 12px 25px; background-color: #D4AF37; color: #111; text-decoration: none; border-radius: 5px; font-weight: bold;">Reset Your Password</a>
  <p>This link is only valid for the next {{.ValidFor}}.</p>
  <p>If you did not request this, ignore this email and your password will remain unchanged.</p>
</div>`))

var orderConfirmationTemplate = template.Must(template.New("order_confirmation").Parse(`<div style="font-family: sans-serif; max-width: 600px; margin: auto; border: 1px solid #ddd; padding: 20px;">
  <h1 style="color: #111;">Thank you for your order, {{.CustomerName}}!</h1>
  <p>We've received your order and will begin processing it shortly. You'll receive another notification once it ships.</p>
  <h3 style="border-bottom: 2px solid #eee; padding-bottom: 5px;">Order Summary (ID: {{.OrderID}})</h3>
  <ul>{{range .Items}}<li>{{.Name}} (x{{.Quantity}}) - {{.Price}}</li>{{end}}</ul>
  <hr>
  <p style="font-size: 1.2em; text-align: right;"><strong>Total: ${{.TotalPrice}}</strong></p>
  <h3>Shipping Address</h3>
  <p>{{.Address.FullName}}<br>{{.Address.Address}}<br>{{.Address.City}}, {{.Address.PostalCode}}</p>
</div>`))

type passwordResetView struct {
	URL      string
	ValidFor string
}

type orderConfirmationView struct {
	CustomerName string
	OrderID      string
	Items        []types.OrderItem
	TotalPrice   string
	Address      types.ShippingAddress
}

func render(tmpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func orderConfirmationText(view orderConfirmationView) string {
	var b strings.Builder
	b.WriteString("Thank you for your order, " + view.CustomerName + "!\n\n")
	b.WriteString("Order " + view.OrderID + "\n")
	for _, item := range view.Items {
		b.WriteString("- " + item.Name + " x" + strconv.Itoa(item.Quantity) + " " + item.Price + "\n")
	}
	b.WriteString("\nTotal: $" + view.TotalPrice + "\n")
	return b.String()
}
