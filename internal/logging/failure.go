// Copyright (c) 2025 Passgate
// Licensed under the MIT License. See LICENSE file in the project root for details.

package logging

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"

	"passgate/cli/internal/errs"
)

// FormatFailure formats an authentication failure in a user-friendly way.
// The guidance shown depends on the error kind.
func FormatFailure(title string, err error) string {
	var builder strings.Builder

	builder.WriteString(pterm.NewStyle(pterm.FgRed, pterm.Bold).Sprint(title))
	builder.WriteString("\n\n")

	switch errs.KindOf(err) {
	case errs.KindNetwork:
		builder.WriteString("Passgate could not reach the credential service.\n")
		builder.WriteString("This usually happens when:\n")
		builder.WriteString("  • Your internet connection was disrupted\n")
		builder.WriteString("  • The service host could not be resolved or reached\n")
		builder.WriteString("  • A firewall or proxy blocked the connection\n")

	case errs.KindUnauthorized:
		builder.WriteString("The credential service rejected your credentials.\n")
		builder.WriteString("This could mean:\n")
		builder.WriteString("  • The email or password is wrong\n")
		builder.WriteString("  • The account is locked or disabled\n")
		builder.WriteString("  • A saved session has expired\n")

	case errs.KindServer:
		builder.WriteString("The credential service reported a failure.\n")
		builder.WriteString("Possible reasons:\n")
		builder.WriteString("  • The service is under maintenance\n")
		builder.WriteString("  • The service is temporarily overloaded\n")
		builder.WriteString("  • There's a service outage\n")

	case errs.KindMalformedData:
		builder.WriteString("The service response could not be understood.\n")
		builder.WriteString("This could mean:\n")
		builder.WriteString("  • Your passgate version is out of date\n")
		builder.WriteString("  • A proxy altered the response on the way\n")

	case errs.KindConcurrentOperation:
		builder.WriteString("Another authentication operation is still running.\n")

	case errs.KindValidation:
		builder.WriteString(errs.MessageOf(err))
		builder.WriteString("\n")

	default:
		builder.WriteString("The operation was interrupted.\n")
	}

	builder.WriteString("\n")

	switch errs.KindOf(err) {
	case errs.KindUnauthorized:
		builder.WriteString(pterm.NewStyle(pterm.FgYellow).Sprint("→ Check your email and password, then run 'passgate login' again"))
	case errs.KindNetwork:
		builder.WriteString(pterm.NewStyle(pterm.FgYellow).Sprint("→ Check your connection and try again"))
	case errs.KindConcurrentOperation:
		builder.WriteString(pterm.NewStyle(pterm.FgYellow).Sprint("→ Wait for the running operation to finish and try again"))
	default:
		builder.WriteString(pterm.NewStyle(pterm.FgYellow).Sprint("→ Please try again in a moment"))
	}

	builder.WriteString("\n")

	if err != nil && strings.TrimSpace(err.Error()) != "" {
		builder.WriteString("\n")
		builder.WriteString(pterm.NewStyle(pterm.FgGray).Sprint("Technical details: " + Mask(err.Error())))
	}

	return builder.String()
}

// PresentFailure displays a formatted failure.
func PresentFailure(title string, err error) {
	fmt.Println()
	fmt.Println(FormatFailure(title, err))
	fmt.Println()
}
