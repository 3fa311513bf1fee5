package formulas

import (
	"testing"

	"github.com/iwvelando/finance-calculators/internal/calculator"
	"github.com/iwvelando/finance-calculators/pkg/testutil"
)

func TestCurrentRatioAgreesWithWorkingCapital(t *testing.T) {
	cases := [][2]string{
		{"100", "50"}, {"50", "100"}, {"100", "100"}, {"0", "10"},
		{"1,250,000", "1,249,999.99"}, {"3.5k", "3,500.01"}, {"$7", "$0.50"},
	}

	for _, pair := range cases {
		t.Run(pair[0]+"/"+pair[1], func(t *testing.T) {
			view := evaluate(t, "current-ratio", "currentAssets", pair[0], "currentLiabilities", pair[1])
			ratio := raw(t, view, "currentRatio")
			wc := raw(t, view, "workingCapital")
			if (wc >= 0) != (ratio >= 1) {
				t.Errorf("sign disagreement: workingCapital = %v, ratio = %v", wc, ratio)
			}
		})
	}
}

func TestCurrentRatioLabels(t *testing.T) {
	tests := []struct {
		assets   string
		expected string
		status   calculator.Status
	}{
		{"250", "Strong", calculator.StatusHealthy},
		{"150", "Healthy", calculator.StatusHealthy},
		{"80", "Needs Attention", calculator.StatusWarning},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			view := evaluate(t, "current-ratio", "currentAssets", tt.assets, "currentLiabilities", "100")
			if view.Label != tt.expected || view.Status != tt.status {
				t.Errorf("label = %q/%q, expected %q/%q", view.Label, view.Status, tt.expected, tt.status)
			}
		})
	}
}

func TestCurrentRatioRejectsZeroLiabilities(t *testing.T) {
	expectRejected(t, "current-ratio", "currentLiabilities", "currentAssets", "100", "currentLiabilities", "0")
	expectRejected(t, "current-ratio", "currentLiabilities", "currentAssets", "100", "currentLiabilities", "-5")
	expectRejected(t, "current-ratio", "currentLiabilities", "currentAssets", "100", "currentLiabilities", "")
}

func TestWorkingCapitalIsPermissive(t *testing.T) {
	view := evaluate(t, "working-capital", "currentAssets", "5,000", "currentLiabilities", "")

	if got := display(t, view, "workingCapital"); got != "$5,000.00" {
		t.Errorf("workingCapital = %q, expected $5,000.00", got)
	}
	if _, ok := view.Value("currentRatio"); ok {
		t.Error("ratio should be omitted without liabilities")
	}
	if len(view.Defaulted) != 1 || view.Defaulted[0] != "currentLiabilities" {
		t.Errorf("Defaulted = %v", view.Defaulted)
	}

	view = evaluate(t, "working-capital", "currentAssets", "3000", "currentLiabilities", "4000")
	testutil.AssertClose(t, "currentRatio", raw(t, view, "currentRatio"), 0.75, 1e-9)
	if view.Status != calculator.StatusWarning {
		t.Errorf("negative working capital should warn, got %q", view.Status)
	}
}

func TestQuickRatio(t *testing.T) {
	view := evaluate(t, "quick-ratio", "currentAssets", "150", "inventory", "50", "currentLiabilities", "80")
	testutil.AssertClose(t, "quickRatio", raw(t, view, "quickRatio"), 1.25, 1e-9)
	if got := display(t, view, "quickRatio"); got != "1.25" {
		t.Errorf("quickRatio = %q, expected 1.25", got)
	}

	expectRejected(t, "quick-ratio", "inventory", "currentAssets", "100", "inventory", "150", "currentLiabilities", "80")
}

func TestDebtToEquity(t *testing.T) {
	tests := []struct {
		liabilities string
		expected    string
	}{
		{"50", "Conservative"},
		{"100", "Conservative"},
		{"150", "Moderate"},
		{"250", "High Leverage"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			view := evaluate(t, "debt-to-equity", "totalLiabilities", tt.liabilities, "shareholdersEquity", "100")
			if view.Label != tt.expected {
				t.Errorf("label = %q, expected %q", view.Label, tt.expected)
			}
		})
	}

	expectRejected(t, "debt-to-equity", "shareholdersEquity", "totalLiabilities", "100", "shareholdersEquity", "0")
	expectRejected(t, "debt-to-equity", "shareholdersEquity", "totalLiabilities", "100", "shareholdersEquity", "-100")
}

func TestReturnRatios(t *testing.T) {
	view := evaluate(t, "roe", "netIncome", "-20000", "shareholdersEquity", "100000")
	if got := display(t, view, "roe"); got != "-20.00%" {
		t.Errorf("roe = %q, expected -20.00%%", got)
	}
	if view.Label != "Negative" {
		t.Errorf("label = %q, expected Negative", view.Label)
	}

	view = evaluate(t, "roa", "netIncome", "5k", "totalAssets", "50k")
	if got := display(t, view, "roa"); got != "10.00%" {
		t.Errorf("roa = %q, expected 10.00%%", got)
	}

	view = evaluate(t, "roi", "initialInvestment", "1000", "finalValue", "2000")
	if got := display(t, view, "roi"); got != "100.00%" {
		t.Errorf("roi = %q, expected 100.00%%", got)
	}
	if _, ok := view.Value("annualizedRoi"); ok {
		t.Error("annualized return needs a holding period")
	}
	view = evaluate(t, "roi", "initialInvestment", "1000", "finalValue", "2000", "years", "5")
	testutil.AssertClose(t, "annualizedRoi", raw(t, view, "annualizedRoi"), 14.87, 0.01)

	view = evaluate(t, "payback-period", "initialInvestment", "10000", "annualCashFlow", "3000")
	if got := display(t, view, "paybackYears"); got != "3.33 years" {
		t.Errorf("paybackYears = %q, expected 3.33 years", got)
	}

	view = evaluate(t, "dividend-yield", "annualDividend", "2.40", "sharePrice", "60")
	if got := display(t, view, "dividendYield"); got != "4.00%" {
		t.Errorf("dividendYield = %q, expected 4.00%%", got)
	}

	expectRejected(t, "roa", "totalAssets", "netIncome", "1", "totalAssets", "0")
	expectRejected(t, "payback-period", "annualCashFlow", "initialInvestment", "1", "annualCashFlow", "0")
	expectRejected(t, "roi", "years", "initialInvestment", "0.01", "finalValue", "1b", "years", "0.0001")
}

func TestEVA(t *testing.T) {
	view := evaluate(t, "eva", "nopat", "150000", "investedCapital", "1,000,000", "wacc", "10")
	if got := display(t, view, "eva"); got != "$50,000.00" {
		t.Errorf("eva = %q, expected $50,000.00", got)
	}
	if got := display(t, view, "roic"); got != "15.00%" {
		t.Errorf("roic = %q, expected 15.00%%", got)
	}
	if view.Label != "Value Creating" {
		t.Errorf("label = %q", view.Label)
	}

	view = evaluate(t, "eva", "nopat", "50000", "investedCapital", "1m", "wacc", "10")
	if view.Label != "Value Destroying" || view.Status != calculator.StatusWarning {
		t.Errorf("label = %q/%q", view.Label, view.Status)
	}

	expectRejected(t, "eva", "wacc", "nopat", "1", "investedCapital", "1", "wacc", "101")
	expectRejected(t, "eva", "wacc", "nopat", "1", "investedCapital", "1", "wacc", "-1")
}
