package tracking

import "testing"

func TestDetect(t *testing.T) {
	cases := []struct {
		name   string
		number string
		want   Carrier
	}{
		{"ups standard", "1Z999AA10123456784", CarrierUPS},
		{"ups lowercase input", "1z999aa10123456784", CarrierUPS},
		{"fedex 12 digits", "123456789012", CarrierFedEx},
		{"fedex 15 digits", "123456789012345", CarrierFedEx},
		{"fedex 20 digits", "12345678901234567890", CarrierFedEx},
		{"fedex 22 digits", "1234567890123456789012", CarrierFedEx},
		{"usps 21 digits", "940011189914283476110", CarrierUSPS},
		{"usps 21 digits no service prefix", "123456789012345678901", CarrierUSPS},
		{"fedex wins 22 digits despite usps prefix", "9400111899142834761100", CarrierFedEx},
		{"dhl 10 digits", "1234567890", CarrierDHL},
		{"ontrac C prefix", "C12345678901234", CarrierOnTrac},
		{"ontrac D prefix", "D1234567890123", CarrierOnTrac},
		{"unknown short", "12345", CarrierNone},
		{"unknown alpha", "TRACKME", CarrierNone},
		{"empty", "", CarrierNone},
		{"whitespace only", "   ", CarrierNone},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Detect(tc.number); got != tc.want {
				t.Errorf("Detect(%q) = %q, want %q", tc.number, got, tc.want)
			}
		})
	}
}

func TestURL(t *testing.T) {
	if got := URL(CarrierUPS, "1Z999AA10123456784"); got != "https://www.ups.com/track?tracknum=1Z999AA10123456784" {
		t.Errorf("unexpected UPS url: %s", got)
	}
	if got := URL(CarrierNone, "whatever"); got != "" {
		t.Errorf("unknown carrier should yield empty url, got %s", got)
	}
}

func TestDetectURL(t *testing.T) {
	carrier, link := DetectURL("1234567890")
	if carrier != CarrierDHL {
		t.Fatalf("expected DHL, got %q", carrier)
	}
	if link == "" {
		t.Fatal("expected link for detected carrier")
	}

	carrier, link = DetectURL("not-a-number")
	if carrier != CarrierNone || link != "" {
		t.Fatalf("undetected number must return no carrier and no link, got %q %q", carrier, link)
	}
}
