package categorize

import "testing"

func TestCategorize(t *testing.T) {
	cases := []struct {
		name string
		text string
		want string
	}{
		{name: "password maps to Passport", text: "please reset your PASSWORD now", want: "Passport"},
		{name: "invoice", text: "Invoice #42 due on receipt", want: "Invoice"},
		{name: "licence", text: "driving licence renewal notice", want: "Licence"},
		{name: "insurance", text: "Annual Insurance Policy", want: "Insurance"},
		{name: "case insensitive", text: "INSURANCE CERTIFICATE", want: "Insurance"},
		{name: "no keyword", text: "grocery list: eggs, milk", want: "Others"},
		{name: "empty text", text: "", want: "Others"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Categorize(tc.text); got != tc.want {
				t.Fatalf("Categorize(%q) = %q, want %q", tc.text, got, tc.want)
			}
		})
	}
}

func TestCategorizePrecedenceIsTableOrder(t *testing.T) {
	got := Categorize("this invoice covers your insurance premium")
	if got != "Invoice" {
		t.Fatalf("expected Invoice to win over Insurance, got %q", got)
	}

	got = Categorize("password for the insurance portal")
	if got != "Passport" {
		t.Fatalf("expected Passport to win over Insurance, got %q", got)
	}
}
