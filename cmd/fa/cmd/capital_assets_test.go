package cmd

import (
	"strings"
	"testing"
)

func TestBuildDepreciationProfile(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		frequency  string
		years      int
		percentage int
		wantErr    string
		check      func(t *testing.T, profile map[string]any)
	}{
		{
			name:   "straight line",
			method: "straight_line",
			years:  5,
			check: func(t *testing.T, profile map[string]any) {
				if profile["asset_life_years"] != 5 {
					t.Errorf("asset_life_years = %v", profile["asset_life_years"])
				}
			},
		},
		{
			name:      "straight line with frequency",
			method:    "straight_line",
			years:     2,
			frequency: "annually",
			check: func(t *testing.T, profile map[string]any) {
				if profile["frequency"] != "annually" {
					t.Errorf("frequency = %v", profile["frequency"])
				}
			},
		},
		{
			name:    "straight line missing years",
			method:  "straight_line",
			wantErr: "--asset-life-years is required",
		},
		{
			name:    "straight line years too low",
			method:  "straight_line",
			years:   1,
			wantErr: "between 2 and 25",
		},
		{
			name:    "straight line years too high",
			method:  "straight_line",
			years:   26,
			wantErr: "between 2 and 25",
		},
		{
			name:       "reducing balance",
			method:     "reducing_balance",
			percentage: 20,
			check: func(t *testing.T, profile map[string]any) {
				if profile["annual_depreciation_percentage"] != 20 {
					t.Errorf("annual_depreciation_percentage = %v", profile["annual_depreciation_percentage"])
				}
			},
		},
		{
			name:    "reducing balance missing percentage",
			method:  "reducing_balance",
			wantErr: "--annual-depreciation-percentage is required",
		},
		{
			name:       "reducing balance percentage out of range",
			method:     "reducing_balance",
			percentage: 100,
			wantErr:    "between 1 and 99",
		},
		{
			name:   "no depreciation",
			method: "no_depreciation",
			check: func(t *testing.T, profile map[string]any) {
				if _, ok := profile["asset_life_years"]; ok {
					t.Error("no_depreciation should not carry asset_life_years")
				}
			},
		},
		{
			name:    "no depreciation rejects years",
			method:  "no_depreciation",
			years:   5,
			wantErr: "not used for no_depreciation",
		},
		{
			name:       "no depreciation rejects percentage",
			method:     "no_depreciation",
			percentage: 10,
			wantErr:    "not used for no_depreciation",
		},
		{
			name:    "unknown method",
			method:  "double_declining",
			wantErr: "invalid method",
		},
		{
			name:      "invalid frequency",
			method:    "no_depreciation",
			frequency: "weekly",
			wantErr:   "invalid frequency",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile, err := buildDepreciationProfile(tt.method, tt.frequency, tt.years, tt.percentage)
			if tt.wantErr != "" {
				if err == nil {
					t.Fatalf("expected error containing %q, got profile %v", tt.wantErr, profile)
				}
				if !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("error = %q, expected it to contain %q", err.Error(), tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if profile["method"] != tt.method {
				t.Errorf("method = %v", profile["method"])
			}
			if tt.check != nil {
				tt.check(t, profile)
			}
		})
	}
}

func TestListParams(t *testing.T) {
	params := listParams(
		"view", "open",
		"search", "",
		"updated_since", "2026-01-01T00:00:00Z",
	)

	if got := params.Get("view"); got != "open" {
		t.Errorf("view = %q", got)
	}
	if params.Has("search") {
		t.Error("empty values should be dropped")
	}
	if got := params.Get("updated_since"); got != "2026-01-01T00:00:00Z" {
		t.Errorf("updated_since = %q", got)
	}
}

func TestUserPath(t *testing.T) {
	if got := userPath("me"); got != "/users/me" {
		t.Errorf("userPath(me) = %q", got)
	}
	if got := userPath("42"); got != "/users/42" {
		t.Errorf("userPath(42) = %q", got)
	}
}

func TestMarkedForReview(t *testing.T) {
	rows := []map[string]any{
		{"url": "1", "marked_for_review": true},
		{"url": "2", "marked_for_review": false},
		{"url": "3", "marked_for_review": "true"},
		{"url": "4"},
	}

	filtered := markedForReview(rows)
	if len(filtered) != 2 {
		t.Fatalf("markedForReview() kept %d rows, expected 2", len(filtered))
	}
	if filtered[0]["url"] != "1" || filtered[1]["url"] != "3" {
		t.Errorf("filtered = %v", filtered)
	}
}
