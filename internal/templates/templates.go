// Package templates holds the mail bodies rendered by the mailer.
package templates

import "embed"

//go:embed *.html
var FS embed.FS
