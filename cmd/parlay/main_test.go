package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"parlay-fair-value/internal/odds"
	"parlay-fair-value/internal/parlay"
)

func TestParseLegFlag(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantLabel string
		wantSide  parlay.Side
		wantHome  odds.Price
		wantAway  odds.Price
		wantErr   bool
	}{
		{"American with label", "-150,+130,home,NYY", "NYY", parlay.SideHome, odds.American(-150), odds.American(130), false},
		{"decimal without label", "1.50,2.75,away", "", parlay.SideAway, odds.Decimal(1.50), odds.Decimal(2.75), false},
		{"mixed formats", "-110,1.91,a, LAD ", "LAD", parlay.SideAway, odds.American(-110), odds.Decimal(1.91), false},
		{"empty price kept as unquoted", ",+130,home", "", parlay.SideHome, odds.Price{}, odds.American(130), false},
		{"typo in price", "-150x,+130,home", "", "", odds.Price{}, odds.Price{}, true},
		{"too few parts", "-150,+130", "", "", odds.Price{}, odds.Price{}, true},
		{"too many parts", "-150,+130,home,NYY,extra", "", "", odds.Price{}, odds.Price{}, true},
		{"bad side", "-150,+130,draw", "", "", odds.Price{}, odds.Price{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel, err := parseLegFlag(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("parseLegFlag(%q) expected error, got %+v", tt.input, sel)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseLegFlag(%q) error: %v", tt.input, err)
			}
			if sel.Label != tt.wantLabel || sel.Side != tt.wantSide {
				t.Errorf("label/side = %q/%q, want %q/%q", sel.Label, sel.Side, tt.wantLabel, tt.wantSide)
			}
			if sel.Market.Home != tt.wantHome || sel.Market.Away != tt.wantAway {
				t.Errorf("market = %+v, want home %+v away %+v", sel.Market, tt.wantHome, tt.wantAway)
			}
		})
	}
}

func TestParseLegFlagBadSideIsInvalidSide(t *testing.T) {
	_, err := parseLegFlag("-150,+130,over")
	if !errors.Is(err, parlay.ErrInvalidSide) {
		t.Errorf("expected ErrInvalidSide, got %v", err)
	}
}

func TestParseLegFlagNamesBadPrice(t *testing.T) {
	_, err := parseLegFlag("-150,+13o,away,LAD")
	if !errors.Is(err, parlay.ErrLegUnusable) {
		t.Fatalf("expected ErrLegUnusable, got %v", err)
	}
	if !strings.Contains(err.Error(), `away price "+13o"`) {
		t.Errorf("error should quote the bad text: %v", err)
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadLegFile(t *testing.T) {
	path := writeFile(t, "legs.json", `[
		{"label": "NYY", "side": "home", "home": "-150", "away": "+130"},
		{"label": "LAD", "side": "away", "quotes": [
			{"book": "wide", "home": "-120", "away": "-120"},
			{"book": "sharp", "home": "-105", "away": "-105"},
			{"book": "broken", "home": "", "away": "+100"}
		]}
	]`)

	sels, err := loadLegFile(path)
	if err != nil {
		t.Fatalf("loadLegFile: %v", err)
	}
	if len(sels) != 2 {
		t.Fatalf("got %d selections, want 2", len(sels))
	}
	if sels[0].Label != "NYY" || sels[0].Market.Home != odds.American(-150) {
		t.Errorf("leg 1 = %+v", sels[0])
	}
	if sels[1].Side != parlay.SideAway {
		t.Errorf("leg 2 side = %q, want away", sels[1].Side)
	}
	if sels[1].Market.Home != odds.American(-105) {
		t.Errorf("leg 2 should use the lowest-vig quote, got %+v", sels[1].Market)
	}
}

func TestLoadLegFileErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"not json", `-150,+130,home`},
		{"bad side", `[{"side": "over", "home": "-150", "away": "+130"}]`},
		{"typo in price", `[{"side": "home", "home": "-150x", "away": "+130"}]`},
		{"typo in quote", `[{"side": "home", "quotes": [{"book": "b1", "home": "abc", "away": "+130"}]}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := loadLegFile(writeFile(t, "legs.json", tt.content)); err == nil {
				t.Error("expected error")
			}
		})
	}

	if _, err := loadLegFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
}

// execute runs the root command with a clean environment
func execute(t *testing.T, dbPath string, args ...string) (string, error) {
	t.Helper()
	return executeWithEnv(t, map[string]string{"DB_PATH": dbPath}, args...)
}

// executeWithEnv runs the root command with only the given variables set
func executeWithEnv(t *testing.T, env map[string]string, args ...string) (string, error) {
	t.Helper()
	chdir(t, t.TempDir()) // keep a developer's .env out of the test
	for _, key := range []string{"DB_PATH", "KELLY_FRACTION", "BANKROLL", "MAX_BET_DOLLARS", "EVAL_TIMEOUT_MS", "HISTORY_LIMIT"} {
		t.Setenv(key, env[key])
	}

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestEvalCommand(t *testing.T) {
	out, err := execute(t, "",
		"eval", "--leg=-150,+130,home,NYY", "--offered=+450", "--bankroll=1000")
	if err != nil {
		t.Fatalf("eval: %v\n%s", err, out)
	}

	for _, want := range []string{
		"1. NYY (home -150)",
		"fair American: -138",
		"offered:       5.500 (+450)",
		"bet size:",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestEvalCommandFailures(t *testing.T) {
	// valid on its own; two of them multiply past the float range
	longShot := "+1" + strings.Repeat("0", 300) + ",-100000,home"

	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{"bad offered", []string{"eval", "--leg=-150,+130,home", "--offered=abc"}, nil},
		{"offered at or below even", []string{"eval", "--leg=-150,+130,home", "--offered=0.95"}, nil},
		{"no legs", []string{"eval", "--offered=+450"}, nil},
		{"unusable leg", []string{"eval", "--leg=-150,+130,home", "--leg=,+130,home", "--offered=+450"}, parlay.ErrLegUnusable},
		{"fraction out of range", []string{"eval", "--leg=-150,+130,home", "--offered=+450", "--fraction=1.5"}, nil},
		{"typo in leg price", []string{"eval", "--leg=-150x,+130,home", "--offered=+450"}, parlay.ErrLegUnusable},
		{"parlay overflows", []string{"eval", "--leg=" + longShot, "--leg=" + longShot, "--offered=+450"}, parlay.ErrLegUnusable},
		{"infinite bankroll flag", []string{"eval", "--leg=-150,+130,home", "--offered=+450", "--bankroll=Inf"}, nil},
		{"NaN max bet flag", []string{"eval", "--leg=-150,+130,home", "--offered=+450", "--max-bet=NaN"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, "", tt.args...)
			if err == nil {
				t.Fatalf("expected error, output:\n%s", out)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
			if strings.Contains(out, "Kelly staking") {
				t.Errorf("no stake should be reported on failure:\n%s", out)
			}
		})
	}
}

func TestEvalRejectsNonFiniteBankrollEnv(t *testing.T) {
	for _, v := range []string{"Inf", "NaN"} {
		t.Run(v, func(t *testing.T) {
			out, err := executeWithEnv(t, map[string]string{"BANKROLL": v},
				"eval", "--leg=-150,+130,home", "--offered=+450")
			if err == nil {
				t.Fatalf("BANKROLL=%s should be rejected, output:\n%s", v, out)
			}
		})
	}
}

func TestEvalSaveAndHistory(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "journal.db")

	if _, err := execute(t, dbPath,
		"eval", "--leg=-150,+130,home,NYY", "--leg=+110,1.80,away,LAD", "--offered=+450", "--save"); err != nil {
		t.Fatalf("eval --save: %v", err)
	}

	out, err := execute(t, dbPath, "history", "--limit=5")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if !strings.Contains(out, "offered=+450") {
		t.Errorf("history should list the saved evaluation:\n%s", out)
	}
}

func TestHistoryRejectsNonPositiveLimit(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "journal.db")
	for _, limit := range []string{"--limit=0", "--limit=-1"} {
		t.Run(limit, func(t *testing.T) {
			if _, err := execute(t, dbPath, "history", limit); err == nil {
				t.Errorf("history %s should be rejected", limit)
			}
		})
	}
}

func TestHistoryRequiresDBPath(t *testing.T) {
	if _, err := execute(t, "", "history"); err == nil {
		t.Error("expected error without DB_PATH")
	}
}

func TestConvertCommand(t *testing.T) {
	tests := []struct {
		name  string
		price string
		want  []string
	}{
		{"negative American", "-150", []string{"(american)", "decimal:  1.667", "American: -150", "implied:  60.000%"}},
		{"positive American", "+130", []string{"decimal:  2.300", "American: +130"}},
		{"decimal", "2.75", []string{"(decimal)", "decimal:  2.750", "American: +175"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, "", "convert", "--", tt.price)
			if err != nil {
				t.Fatalf("convert %s: %v", tt.price, err)
			}
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q:\n%s", want, out)
				}
			}
		})
	}

	if _, err := execute(t, "", "convert", "garbage"); err == nil {
		t.Error("expected error for unparseable price")
	}
}

// chdir changes the working directory for the test and restores it on cleanup
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(wd); err != nil {
			t.Fatal(err)
		}
	})
}
