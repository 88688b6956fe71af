// Package tracking pattern-matches carrier tracking numbers and builds
// carrier web-tracking links. Detection is heuristic: a false negative only
// costs the UI a hyperlink, so unknown formats resolve to CarrierNone rather
// than an error.
package tracking

import (
	"fmt"
	"regexp"
	"strings"
)

// Carrier identifies a shipping carrier detected from a tracking number.
type Carrier string

const (
	CarrierNone   Carrier = ""
	CarrierUPS    Carrier = "ups"
	CarrierFedEx  Carrier = "fedex"
	CarrierUSPS   Carrier = "usps"
	CarrierDHL    Carrier = "dhl"
	CarrierOnTrac Carrier = "ontrac"
)

var (
	upsPattern    = regexp.MustCompile(`^1Z[A-Z0-9]{16}$`)
	digitsPattern = regexp.MustCompile(`^\d+$`)
	ontracPattern = regexp.MustCompile(`^[CD]\d{13,14}$`)
)

// Detect classifies a tracking number by format. Matching order is UPS,
// FedEx, USPS, DHL, OnTrac; the first match wins.
func Detect(trackingNumber string) Carrier {
	num := strings.ToUpper(strings.TrimSpace(trackingNumber))
	if num == "" {
		return CarrierNone
	}

	if upsPattern.MatchString(num) {
		return CarrierUPS
	}

	if digitsPattern.MatchString(num) {
		switch len(num) {
		case 12, 15:
			return CarrierFedEx
		case 20, 22:
			// 20 and 22 digit sequences are ambiguous between FedEx and
			// USPS, even when they carry a USPS service prefix; FedEx
			// wins on exact length, matching the drawer's historical
			// behavior.
			return CarrierFedEx
		case 21:
			return CarrierUSPS
		case 10:
			return CarrierDHL
		}
		return CarrierNone
	}

	if ontracPattern.MatchString(num) {
		return CarrierOnTrac
	}

	return CarrierNone
}

var trackingURLTemplates = map[Carrier]string{
	CarrierUPS:    "https://www.ups.com/track?tracknum=%s",
	CarrierFedEx:  "https://www.fedex.com/fedextrack/?trknbr=%s",
	CarrierUSPS:   "https://tools.usps.com/go/TrackConfirmAction?tLabels=%s",
	CarrierDHL:    "https://www.dhl.com/us-en/home/tracking.html?tracking-id=%s",
	CarrierOnTrac: "https://www.ontrac.com/tracking/?number=%s",
}

// URL returns the carrier-specific tracking page for a number, or "" when
// the carrier is unrecognized so callers render a bare number without a
// link.
func URL(carrier Carrier, trackingNumber string) string {
	tpl, ok := trackingURLTemplates[carrier]
	if !ok {
		return ""
	}
	return fmt.Sprintf(tpl, trackingNumber)
}

// DetectURL detects the carrier and builds its tracking link in one step.
func DetectURL(trackingNumber string) (Carrier, string) {
	carrier := Detect(trackingNumber)
	return carrier, URL(carrier, trackingNumber)
}
