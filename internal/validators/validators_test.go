package validators

import "testing"

func TestCheckEmail(t *testing.T) {
	testCases := []struct {
		Name     string
		Email    string
		Expected bool
	}{
		{Name: "Valid email #1", Email: "player1@mail.test", Expected: true},
		{Name: "Valid email with padding #2", Email: "  player1@mail.test  ", Expected: true},
		{Name: "Missing at sign #3", Email: "player1.mail.test", Expected: false},
		{Name: "Missing domain dot #4", Email: "player1@mail", Expected: false},
		{Name: "Inner whitespace #5", Email: "player 1@mail.test", Expected: false},
		{Name: "Empty #6", Email: "", Expected: false},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			if got := CheckEmail(tc.Email); got != tc.Expected {
				t.Errorf("Expected %v for '%s', got: %v", tc.Expected, tc.Email, got)
			}
		})
	}
}

func TestCheckAmount(t *testing.T) {
	testCases := []struct {
		Name     string
		Amount   float64
		Expected bool
	}{
		{Name: "Whole amount #1", Amount: 500, Expected: true},
		{Name: "Two decimal places #2", Amount: 10.50, Expected: true},
		{Name: "Zero #3", Amount: 0, Expected: false},
		{Name: "Negative #4", Amount: -10, Expected: false},
		{Name: "Three decimal places #5", Amount: 10.001, Expected: false},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			if got := CheckAmount(tc.Amount); got != tc.Expected {
				t.Errorf("Expected %v for %v, got: %v", tc.Expected, tc.Amount, got)
			}
		})
	}
}

func TestCheckRequiredText(t *testing.T) {
	testCases := []struct {
		Name     string
		Text     string
		Expected bool
	}{
		{Name: "Filled #1", Text: "Alex", Expected: true},
		{Name: "Empty #2", Text: "", Expected: false},
		{Name: "Whitespace only #3", Text: "   ", Expected: false},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			if got := CheckRequiredText(tc.Text); got != tc.Expected {
				t.Errorf("Expected %v for '%s', got: %v", tc.Expected, tc.Text, got)
			}
		})
	}
}
