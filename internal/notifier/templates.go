package notifier

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"
)

// OrderConfirmation is the data behind the order confirmation email
type OrderConfirmation struct {
	CustomerName    string
	OrderID         string
	Items           []OrderLine
	TotalAmount     float64
	ShippingAddress string
}

// OrderLine is one purchased item in the confirmation
type OrderLine struct {
	ProductName string
	Quantity    int
	Price       float64
}

// LineTotal is the extended price of the line
func (l OrderLine) LineTotal() float64 {
	return l.Price * float64(l.Quantity)
}

// ShortID shortens an order id for the subject line and header
func (o OrderConfirmation) ShortID() string {
	id := o.OrderID
	if len(id) > 8 {
		id = id[:8]
	}
	return id
}

// ContactMessage is a contact form submission
type ContactMessage struct {
	Name     string
	Email    string
	Subject  string
	Message  string
	Received time.Time
}

var orderConfirmationTmpl = template.Must(template.New("order_confirmation").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; background-color: #f9fafb; margin: 0; padding: 20px;">
  <div style="max-width: 600px; margin: 0 auto; background-color: #ffffff; border-radius: 12px; overflow: hidden;">
    <div style="background: linear-gradient(135deg, #1a1a2e 0%, #16213e 100%); color: #ffffff; padding: 40px 30px; text-align: center;">
      <h1 style="margin: 0; font-size: 28px; font-weight: 600;">Thank You for Your Order!</h1>
      <p style="margin: 10px 0 0; opacity: 0.9;">Order #{{.ShortID}}</p>
    </div>
    <div style="padding: 30px;">
      <p style="color: #374151; font-size: 16px;">Hi {{.CustomerName}},</p>
      <p style="color: #374151; font-size: 16px;">We're excited to confirm your order has been received and is being processed. Here's a summary of your purchase:</p>
      <table style="width: 100%; border-collapse: collapse; margin: 20px 0;">
        <thead>
          <tr style="background-color: #f3f4f6;">
            <th style="padding: 12px; text-align: left;">Product</th>
            <th style="padding: 12px; text-align: center;">Qty</th>
            <th style="padding: 12px; text-align: right;">Price</th>
          </tr>
        </thead>
        <tbody>
          {{range .Items}}<tr>
            <td style="padding: 12px; border-bottom: 1px solid #eee;">{{.ProductName}}</td>
            <td style="padding: 12px; border-bottom: 1px solid #eee; text-align: center;">{{.Quantity}}</td>
            <td style="padding: 12px; border-bottom: 1px solid #eee; text-align: right;">${{printf "%.2f" .LineTotal}}</td>
          </tr>{{end}}
        </tbody>
        <tfoot>
          <tr>
            <td colspan="2" style="padding: 16px 12px; font-weight: 700; font-size: 18px;">Total</td>
            <td style="padding: 16px 12px; text-align: right; font-weight: 700; font-size: 18px;">${{printf "%.2f" .TotalAmount}}</td>
          </tr>
        </tfoot>
      </table>
      <div style="background-color: #f3f4f6; border-radius: 8px; padding: 20px; margin: 20px 0;">
        <h3 style="margin: 0 0 10px; font-size: 14px; text-transform: uppercase;">Shipping Address</h3>
        <p style="margin: 0; color: #6b7280;">{{.ShippingAddress}}</p>
      </div>
      <p style="color: #6b7280; font-size: 14px;">You'll receive another email when your order ships. If you have any questions, feel free to reply to this email.</p>
    </div>
    <div style="background-color: #f3f4f6; padding: 20px 30px; text-align: center;">
      <p style="margin: 0; color: #6b7280; font-size: 14px;">Thank you for shopping with us!</p>
    </div>
  </div>
</body>
</html>`))

var newsletterWelcomeTmpl = template.Must(template.New("newsletter_welcome").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
  <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
    <div style="background: linear-gradient(135deg, #d946a6, #e879b9); color: white; padding: 40px 20px; text-align: center; border-radius: 10px 10px 0 0;">
      <h1 style="margin: 0; font-size: 32px;">Welcome to Essence!</h1>
      <p style="margin: 10px 0 0 0; font-size: 16px;">Your journey to finding the perfect scent begins here</p>
    </div>
    <div style="background: #ffffff; padding: 40px 20px; border: 1px solid #e5e5e5;">
      <h2 style="color: #d946a6;">Thank You for Subscribing!</h2>
      <p>We're thrilled to have you join our fragrance-loving community. You've taken the first step towards discovering scents that will become part of your signature style.</p>
      <div style="background: #fdf2f8; padding: 20px; border-radius: 8px; margin: 20px 0;">
        <h3 style="color: #d946a6; margin-top: 0;">As a subscriber, you'll receive:</h3>
        <p>Exclusive early access to new fragrance launches</p>
        <p>Special subscriber-only discounts and promotions</p>
        <p>Expert tips on choosing and wearing fragrances</p>
        <p>Seasonal scent recommendations tailored to trends</p>
      </div>
      <p>Explore our collection and find your perfect match:</p>
      <div style="text-align: center;">
        <a href="{{.ShopURL}}" style="display: inline-block; background: #d946a6; color: white; padding: 12px 30px; text-decoration: none; border-radius: 5px;">Shop Now</a>
      </div>
    </div>
    <div style="background: #f9f9f9; padding: 20px; text-align: center; font-size: 12px; color: #666; border-radius: 0 0 10px 10px;">
      <p><strong>Essence Fragrance Haven</strong></p>
      <p>Discover. Experience. Embrace.</p>
      <p style="margin-top: 15px;">If you didn't subscribe to our newsletter, you can safely ignore this email.</p>
    </div>
  </div>
</body>
</html>`))

var contactCustomerTmpl = template.Must(template.New("contact_customer").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
  <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
    <div style="background: linear-gradient(135deg, #d946a6, #e879b9); color: white; padding: 30px 20px; text-align: center; border-radius: 10px 10px 0 0;">
      <h1 style="margin: 0; font-size: 28px;">Thank You for Contacting Us!</h1>
    </div>
    <div style="background: #ffffff; padding: 30px 20px; border: 1px solid #e5e5e5;">
      <p>Dear {{.Name}},</p>
      <p>We've received your message and our team will get back to you within 24-48 hours. We appreciate you taking the time to reach out to us.</p>
      <div style="background: #fdf2f8; padding: 20px; border-left: 4px solid #d946a6; margin: 20px 0; border-radius: 4px;">
        <h3 style="margin-top: 0; color: #d946a6;">Your Message:</h3>
        <p><strong>Subject:</strong> {{.Subject}}</p>
        <p><strong>Message:</strong><br>{{.Message}}</p>
      </div>
      <p style="margin-top: 30px;">Best regards,<br><strong>The Essence Team</strong></p>
    </div>
    <div style="background: #f9f9f9; padding: 20px; text-align: center; font-size: 12px; color: #666; border-radius: 0 0 10px 10px;">
      <p><strong>Essence Fragrance Haven</strong></p>
      <p>Questions? Reply to this email or visit our FAQ page</p>
    </div>
  </div>
</body>
</html>`))

var contactAdminTmpl = template.Must(template.New("contact_admin").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
  <div style="max-width: 600px; margin: 0 auto; padding: 20px; background: #f9f9f9;">
    <div style="background: #d946a6; color: white; padding: 20px; border-radius: 8px 8px 0 0;">
      <h2 style="margin: 0;">New Contact Form Submission</h2>
    </div>
    <div style="background: white; padding: 30px; border: 1px solid #e5e5e5;">
      <p><strong style="color: #d946a6;">Name:</strong> {{.Name}}</p>
      <p><strong style="color: #d946a6;">Email:</strong> {{.Email}}</p>
      <p><strong style="color: #d946a6;">Subject:</strong> {{.Subject}}</p>
      <p><strong style="color: #d946a6;">Message:</strong></p>
      <p style="margin: 10px 0; padding: 15px; background: #fdf2f8; border-radius: 4px;">{{.Message}}</p>
      <p><strong style="color: #d946a6;">Received:</strong> {{.Received.Format "Jan 2, 2006 3:04 PM"}}</p>
    </div>
  </div>
</body>
</html>`))

// RenderOrderConfirmation renders the order confirmation email body
func RenderOrderConfirmation(data OrderConfirmation) (subject, body string, err error) {
	var buf bytes.Buffer
	if err := orderConfirmationTmpl.Execute(&buf, data); err != nil {
		return "", "", fmt.Errorf("failed to render order confirmation: %w", err)
	}
	return fmt.Sprintf("Order Confirmation #%s", data.ShortID()), buf.String(), nil
}

// RenderNewsletterWelcome renders the newsletter welcome email body
func RenderNewsletterWelcome(shopURL string) (subject, body string, err error) {
	if strings.TrimSpace(shopURL) == "" {
		shopURL = "https://essence.lovable.app/products"
	}
	var buf bytes.Buffer
	data := struct{ ShopURL string }{ShopURL: shopURL}
	if err := newsletterWelcomeTmpl.Execute(&buf, data); err != nil {
		return "", "", fmt.Errorf("failed to render newsletter welcome: %w", err)
	}
	return "Welcome to Essence Fragrance Community!", buf.String(), nil
}

// RenderContactEmails renders the customer acknowledgement and the admin
// notification for one contact submission
func RenderContactEmails(msg ContactMessage) (customerBody, adminBody string, err error) {
	var customer, admin bytes.Buffer
	if err := contactCustomerTmpl.Execute(&customer, msg); err != nil {
		return "", "", fmt.Errorf("failed to render contact acknowledgement: %w", err)
	}
	if err := contactAdminTmpl.Execute(&admin, msg); err != nil {
		return "", "", fmt.Errorf("failed to render contact notification: %w", err)
	}
	return customer.String(), admin.String(), nil
}
