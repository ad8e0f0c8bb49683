// internal/pkg/email/types.go
package email

// Message represents one outbound email
type Message struct {
	To          []string
	Subject     string
	HTMLContent string
	TextContent string
}
